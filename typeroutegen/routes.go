package typeroutegen

import "github.com/typeroute/typeroute"

// UnknownType is the sentinel type expression used wherever no type could be
// inferred for a route.
const UnknownType = "unknown"

// RouteNameEntry is one element of the generated runtime routes array, used
// by clients for reverse link generation.
type RouteNameEntry struct {
	// Params are the pattern's parameter names in left-to-right order.
	Params []string

	// Name is the route's stable identifier.
	Name string

	// Path is the route pattern.
	Path string

	// Methods are the route's HTTP verbs, HEAD included.
	Methods []string

	// TypeName is the synthesized type-entry name, or "unknown" when no
	// type entry exists for the route.
	TypeName string
}

// BuildRouteEntries folds the filtered routes into the named-routes array.
// Routes without a name are dropped; input order is preserved. Function
// handlers are eligible here even though they contribute no type entries.
func BuildRouteEntries(routes []*typeroute.Route, hasEntry func(name string) bool) []RouteNameEntry {
	var entries []RouteNameEntry
	for _, r := range routes {
		if r.RouteName == "" {
			continue
		}
		typeName := TypeName(r.Pattern, r.Methods)
		if !hasEntry(typeName) {
			typeName = UnknownType
		}
		entries = append(entries, RouteNameEntry{
			Params:   r.ParamNames(),
			Name:     r.RouteName,
			Path:     r.Pattern,
			Methods:  r.Methods,
			TypeName: typeName,
		})
	}
	return entries
}
