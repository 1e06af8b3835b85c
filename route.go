package typeroute

import "strings"

// ParamSigil prefixes dynamic segments in route patterns, e.g. "/users/:id".
const ParamSigil = ':'

// Route is a single entry in the route table.
//
// Handler is either a handler reference string in the form "module#Method"
// (resolved against the controller registry at runtime and against controller
// source at generation time) or an inline HandlerFunc. Inline handlers cannot
// be statically analyzed and are skipped by the generator's type inference.
type Route struct {
	// Pattern is the URL template, e.g. "/users/:id/comments".
	Pattern string

	// Methods are the HTTP verbs this route answers, in registration order.
	Methods []string

	// Handler is a reference string ("module#Method") or a HandlerFunc.
	Handler any

	// RouteName is the optional stable identifier for reverse link
	// generation. Routes without a name are omitted from the generated
	// routes array.
	RouteName string
}

// Name sets the route's stable identifier and returns the route for chaining.
func (r *Route) Name(name string) *Route {
	r.RouteName = name
	return r
}

// Ref returns the handler reference string, if the handler is one.
func (r *Route) Ref() (string, bool) {
	ref, ok := r.Handler.(string)
	return ref, ok
}

// Func returns the inline handler, if the handler is one.
func (r *Route) Func() (HandlerFunc, bool) {
	fn, ok := r.Handler.(HandlerFunc)
	return fn, ok
}

// ParamNames returns the names of the dynamic segments of the pattern,
// in left-to-right order and without the sigil.
func (r *Route) ParamNames() []string {
	var names []string
	for _, seg := range ParsePattern(r.Pattern) {
		if seg.Param {
			names = append(names, seg.Value)
		}
	}
	return names
}

// Segment is one element of a parsed route pattern.
type Segment struct {
	// Value is the literal text for static segments, or the parameter name
	// (without the sigil) for dynamic segments.
	Value string

	// Param reports whether the segment is dynamic.
	Param bool
}

// ParsePattern splits a URL pattern into its segments. Empty segments
// produced by leading, trailing, or doubled slashes are dropped.
func ParsePattern(pattern string) []Segment {
	var segs []Segment
	for _, raw := range strings.Split(pattern, "/") {
		if raw == "" {
			continue
		}
		if raw[0] == ParamSigil {
			segs = append(segs, Segment{Value: raw[1:], Param: true})
			continue
		}
		segs = append(segs, Segment{Value: raw})
	}
	return segs
}

// matchPattern matches a request path against a pattern, returning the
// captured parameter values. A nil map with ok=true means the pattern has no
// parameters.
func matchPattern(pattern, path string) (params map[string]string, ok bool) {
	want := ParsePattern(pattern)
	got := splitPath(path)
	if len(want) != len(got) {
		return nil, false
	}
	for i, seg := range want {
		if seg.Param {
			if params == nil {
				params = make(map[string]string)
			}
			params[seg.Value] = got[i]
			continue
		}
		if seg.Value != got[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
