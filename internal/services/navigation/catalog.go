package navigation

// Route is one menu entry. Icon is a symbolic name the client maps to its
// icon set.
type Route struct {
	Label string `json:"label"`
	Href  string `json:"href"`
	Icon  string `json:"icon"`
}

// Category groups routes under one collapsible menu section. Categories are
// role-agnostic; visibility is decided per request from the href prefixes.
type Category struct {
	Name   string  `json:"categoryName"`
	Icon   string  `json:"icon"`
	Routes []Route `json:"routes"`
}

// Catalog returns the static menu in presentation order. The same category
// name can appear twice (once for the admin area, once for the engineer
// area); the prefix filter keeps each role's copy apart.
func Catalog() []Category {
	return []Category{
		{
			Name: "Dashboard",
			Icon: "layout-dashboard",
			Routes: []Route{
				{Label: "Dashboard", Href: "/dashboard", Icon: "user-round-plus"},
			},
		},
		{
			Name: "Timeline",
			Icon: "calendar-clock",
			Routes: []Route{
				{Label: "Task Timeline Manager", Href: "/analytics/timeline", Icon: "calendar-search"},
			},
		},
		{
			Name: "Portal Users",
			Icon: "user-round",
			Routes: []Route{
				{Label: "Add Portal User", Href: "/portal-users/create-new/", Icon: "user-round-plus"},
				{Label: "Manage Users", Href: "/portal-users", Icon: "file-cog"},
			},
		},
		{
			Name: "Projects",
			Icon: "boxes",
			Routes: []Route{
				{Label: "Add Project", Href: "/projects/create-new", Icon: "box"},
				{Label: "Manage Projects", Href: "/projects/", Icon: "file-box"},
			},
		},
		{
			Name: "Tasks",
			Icon: "terminal",
			Routes: []Route{
				{Label: "Add Task", Href: "/analytics/tasks/create-new", Icon: "terminal"},
				{Label: "Manage Tasks", Href: "/analytics/tasks/", Icon: "terminal-square"},
			},
		},
		{
			Name: "Analytics",
			Icon: "chart-scatter",
			Routes: []Route{
				{Label: "Projects", Href: "/analytics/graphs/projects", Icon: "chart-column-decreasing"},
			},
		},
		{
			Name: "Dashboard",
			Icon: "layout-dashboard",
			Routes: []Route{
				{Label: "Dashboard", Href: "/se-dashboard/", Icon: "gauge"},
			},
		},
		{
			Name: "User",
			Icon: "user",
			Routes: []Route{
				{Label: "Update Profile", Href: "/se-dashboard/profile/", Icon: "user-pen"},
			},
		},
		{
			Name: "Timeline",
			Icon: "calendar-clock",
			Routes: []Route{
				{Label: "Task Timeline Manager", Href: "/se-dashboard/timeline", Icon: "calendar-search"},
			},
		},
		{
			Name: "Analytics",
			Icon: "chart-scatter",
			Routes: []Route{
				{Label: "Projects", Href: "/se-dashboard/graphs/projects", Icon: "chart-column-decreasing"},
			},
		},
		{
			Name: "Tasks",
			Icon: "terminal",
			Routes: []Route{
				{Label: "Self Assign Tasks", Href: "/se-dashboard/tasks/create-new", Icon: "terminal-square"},
				{Label: "Manage Tasks", Href: "/se-dashboard/tasks/", Icon: "terminal-square"},
			},
		},
	}
}
