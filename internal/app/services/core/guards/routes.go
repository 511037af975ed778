package guards

import (
	"net/url"
	"strings"
)

type Route struct {
	Pattern    string
	Page       string
	Capability Capability
	segments   []string
}

// RouteTable matches paths against ordered chi-style patterns. The first match
// wins; "{name}" matches one segment and a trailing "*" matches the rest.
type RouteTable struct {
	routes   []Route
	fallback Capability
}

func NewRouteTable(fallback Capability, routes ...Route) *RouteTable {
	table := &RouteTable{fallback: fallback}
	for _, route := range routes {
		route.segments = splitPath(route.Pattern)
		table.routes = append(table.routes, route)
	}
	return table
}

// DefaultRouteTable lists every page of the portal.
func DefaultRouteTable() *RouteTable {
	return NewRouteTable(CapabilityAuthenticated,
		Route{Pattern: "/", Page: "home", Capability: CapabilityPublic},
		Route{Pattern: "/login", Page: "login", Capability: CapabilityPublic},
		Route{Pattern: "/register", Page: "register", Capability: CapabilityPublic},
		Route{Pattern: "/register/*", Page: "register", Capability: CapabilityPublic},
		Route{Pattern: "/forgot-password", Page: "forgot-password", Capability: CapabilityPublic},
		Route{Pattern: "/reset-password", Page: "reset-password", Capability: CapabilityPublic},
		Route{Pattern: "/activate_account", Page: "activate-account", Capability: CapabilityPublic},
		Route{Pattern: "/posts/{postId}", Page: "post", Capability: CapabilityPublic},

		Route{Pattern: "/receptionist/job-offers", Page: "receptionist-job-offers", Capability: CapabilityReceptionist},
		Route{Pattern: "/patient-search", Page: "patient-search", Capability: CapabilityAssignedReceptionist},
		Route{Pattern: "/receptionist-dashboard", Page: "receptionist-dashboard", Capability: CapabilityAssignedReceptionist},
		Route{Pattern: "/receptionist/*", Page: "receptionist", Capability: CapabilityAssignedReceptionist},

		Route{Pattern: "/appointments", Page: "appointments", Capability: CapabilityAuthenticated},
		Route{Pattern: "/records/*", Page: "records", Capability: CapabilityAuthenticated},
		Route{Pattern: "/Messages", Page: "messages", Capability: CapabilityAuthenticated},
		Route{Pattern: "/feed", Page: "feed", Capability: CapabilityAuthenticated},
		Route{Pattern: "/settings/{userId}", Page: "settings", Capability: CapabilityAuthenticated},
		Route{Pattern: "/profile", Page: "profile", Capability: CapabilityAuthenticated},
		Route{Pattern: "/profile/*", Page: "profile", Capability: CapabilityAuthenticated},
		Route{Pattern: "/patient-dashboard", Page: "patient-dashboard", Capability: CapabilityAuthenticated},

		Route{Pattern: "/create-post", Page: "create-post", Capability: CapabilityDoctor},
		Route{Pattern: "/ChatBot", Page: "chatbot", Capability: CapabilityDoctor},
		Route{Pattern: "/doctor-posts", Page: "doctor-posts", Capability: CapabilityDoctor},
		Route{Pattern: "/edit-post/{postId}", Page: "edit-post", Capability: CapabilityDoctor},
		Route{Pattern: "/medical-reports", Page: "medical-reports", Capability: CapabilityDoctor},
		Route{Pattern: "/medical-reports/*", Page: "medical-reports", Capability: CapabilityDoctor},
		Route{Pattern: "/staff", Page: "staff", Capability: CapabilityDoctor},
		Route{Pattern: "/staff/*", Page: "staff", Capability: CapabilityDoctor},
		Route{Pattern: "/doctor-dashboard", Page: "doctor-dashboard", Capability: CapabilityDoctor},
	)
}

// Match returns the first route matching path. Only the URL path is compared;
// a query string or fragment never changes the match. Unknown paths get the
// fallback capability and are reported as not found.
func (t *RouteTable) Match(path string) (Route, bool) {
	path = requestPath(path)
	segments := splitPath(path)
	for _, route := range t.routes {
		if matchSegments(route.segments, segments) {
			return route, true
		}
	}
	return Route{Pattern: path, Capability: t.fallback}, false
}

func matchSegments(pattern, path []string) bool {
	for i, segment := range pattern {
		if segment == "*" && i == len(pattern)-1 {
			return len(path) > i
		}
		if i >= len(path) {
			return false
		}
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			if path[i] == "" {
				return false
			}
			continue
		}
		if segment != path[i] {
			return false
		}
	}
	return len(pattern) == len(path)
}

func requestPath(rawPath string) string {
	parsed, err := url.Parse(rawPath)
	if err != nil {
		return rawPath
	}
	return parsed.Path
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
