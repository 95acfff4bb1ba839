// Package navigation decides which menu categories a role may see and
// which dashboard a role lands on after sign-in. The rules key off href
// prefixes, so the catalog stays role-agnostic.
package navigation

import (
	"strings"

	"github.com/adilsaaly/trackport/internal/services/user"
)

const (
	engineerPrefix  = "/se-dashboard/"
	analyticsPrefix = "/analytics/"
)

const (
	PathSignIn            = "/sign-in"
	PathDashboard         = "/dashboard"
	PathEngineerDashboard = "/se-dashboard"
	PathRoamingQC         = "/roaming-qc"
)

// Visible filters the catalog for a role:
//
//   - software-engineer keeps categories with at least one /se-dashboard/ route
//   - admin keeps categories with at least one route outside /se-dashboard/
//   - viewer keeps categories with at least one /analytics/ route, and within
//     a kept category hides every route that is not itself under /analytics/
//   - any other role sees nothing
func Visible(role user.Role, catalog []Category) []Category {
	var out []Category
	for _, cat := range catalog {
		switch role {
		case user.RoleSoftwareEngineer:
			if hasPrefixedRoute(cat, engineerPrefix) {
				out = append(out, cat)
			}
		case user.RoleAdmin:
			if hasRouteOutside(cat, engineerPrefix) {
				out = append(out, cat)
			}
		case user.RoleViewer:
			if kept, ok := analyticsOnly(cat); ok {
				out = append(out, kept)
			}
		}
	}
	return out
}

// LandingPath is the post-sign-in redirect target for a role.
func LandingPath(role user.Role) string {
	switch role {
	case user.RoleSoftwareEngineer:
		return PathEngineerDashboard
	case user.RoleRoamingInspector:
		return PathRoamingQC
	case user.RoleAdmin, user.RoleViewer:
		return PathDashboard
	default:
		return PathSignIn
	}
}

func hasPrefixedRoute(cat Category, prefix string) bool {
	for _, r := range cat.Routes {
		if strings.HasPrefix(r.Href, prefix) {
			return true
		}
	}
	return false
}

func hasRouteOutside(cat Category, prefix string) bool {
	for _, r := range cat.Routes {
		if !strings.HasPrefix(r.Href, prefix) {
			return true
		}
	}
	return false
}

// analyticsOnly returns the category with only its /analytics/ routes, and
// whether any survived.
func analyticsOnly(cat Category) (Category, bool) {
	var routes []Route
	for _, r := range cat.Routes {
		if strings.HasPrefix(r.Href, analyticsPrefix) {
			routes = append(routes, r)
		}
	}
	if len(routes) == 0 {
		return Category{}, false
	}
	cat.Routes = routes
	return cat, true
}
