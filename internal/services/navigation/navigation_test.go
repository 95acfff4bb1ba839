package navigation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adilsaaly/trackport/internal/services/user"
)

func hrefs(cats []Category) []string {
	var out []string
	for _, c := range cats {
		for _, r := range c.Routes {
			out = append(out, r.Href)
		}
	}
	return out
}

func TestVisibleSoftwareEngineer(t *testing.T) {
	cats := Visible(user.RoleSoftwareEngineer, Catalog())
	require.NotEmpty(t, cats)

	for _, c := range cats {
		found := false
		for _, r := range c.Routes {
			if strings.HasPrefix(r.Href, "/se-dashboard/") {
				found = true
			}
		}
		assert.True(t, found, "category %q has no engineer route", c.Name)
	}
	assert.NotContains(t, hrefs(cats), "/portal-users")
}

func TestVisibleAdmin(t *testing.T) {
	cats := Visible(user.RoleAdmin, Catalog())
	require.NotEmpty(t, cats)

	for _, c := range cats {
		found := false
		for _, r := range c.Routes {
			if !strings.HasPrefix(r.Href, "/se-dashboard/") {
				found = true
			}
		}
		assert.True(t, found, "category %q is engineer-only", c.Name)
	}
	assert.Contains(t, hrefs(cats), "/portal-users")
}

func TestVisibleViewerFiltersRoutesInsideCategory(t *testing.T) {
	catalog := []Category{
		{
			Name: "Mixed",
			Routes: []Route{
				{Label: "Graphs", Href: "/analytics/graphs"},
				{Label: "Users", Href: "/portal-users"},
			},
		},
		{
			Name: "Hidden",
			Routes: []Route{
				{Label: "Users", Href: "/portal-users"},
			},
		},
	}

	cats := Visible(user.RoleViewer, catalog)
	require.Len(t, cats, 1)
	assert.Equal(t, "Mixed", cats[0].Name)
	require.Len(t, cats[0].Routes, 1)
	assert.Equal(t, "/analytics/graphs", cats[0].Routes[0].Href)
}

// A category mixing engineer and admin routes is shown to both roles but
// never to a viewer.
func TestVisibleMixedCategory(t *testing.T) {
	catalog := []Category{
		{
			Name: "Mixed",
			Routes: []Route{
				{Label: "SE", Href: "/se-dashboard/x"},
				{Label: "Admin", Href: "/dashboard/y"},
			},
		},
	}

	assert.Len(t, Visible(user.RoleSoftwareEngineer, catalog), 1)
	assert.Len(t, Visible(user.RoleAdmin, catalog), 1)
	assert.Empty(t, Visible(user.RoleViewer, catalog))
}

func TestVisibleUnknownRoleFailsClosed(t *testing.T) {
	assert.Empty(t, Visible(user.Role("operator"), Catalog()))
	assert.Empty(t, Visible(user.Role(""), Catalog()))
}

func TestLandingPath(t *testing.T) {
	assert.Equal(t, PathEngineerDashboard, LandingPath(user.RoleSoftwareEngineer))
	assert.Equal(t, PathRoamingQC, LandingPath(user.RoleRoamingInspector))
	assert.Equal(t, PathDashboard, LandingPath(user.RoleAdmin))
	assert.Equal(t, PathDashboard, LandingPath(user.RoleViewer))
	assert.Equal(t, PathSignIn, LandingPath(user.Role("unknown")))
}
