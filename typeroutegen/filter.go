package typeroutegen

import (
	"regexp"

	"github.com/typeroute/typeroute"
)

// FilterMode selects which config-driven route filter applies.
type FilterMode string

const (
	// ModeDefinitions filters routes contributing to the definition tree
	// and the type-entry map.
	ModeDefinitions FilterMode = "definitions"

	// ModeRoutes filters routes contributing to the named-routes array.
	ModeRoutes FilterMode = "routes"
)

// Matcher matches a route pattern either literally or by regular expression.
type Matcher struct {
	literal string
	re      *regexp.Regexp
}

// MatchLiteral returns a matcher requiring an exact pattern match.
func MatchLiteral(pattern string) Matcher {
	return Matcher{literal: pattern}
}

// MatchRegexp returns a matcher testing patterns against re.
func MatchRegexp(re *regexp.Regexp) Matcher {
	return Matcher{re: re}
}

// Match reports whether the route pattern matches.
func (m Matcher) Match(pattern string) bool {
	if m.re != nil {
		return m.re.MatchString(pattern)
	}
	return m.literal == pattern
}

type filterKind int

const (
	filterNone filterKind = iota
	filterPredicate
	filterOnly
	filterExcept
)

// RouteFilter is a config-driven route filter with four variants:
// unfiltered, predicate function, "only" allow-list, and "except" deny-list.
type RouteFilter struct {
	kind      filterKind
	predicate func(*typeroute.Route) bool
	matchers  []Matcher
}

// Unfiltered returns the identity filter.
func Unfiltered() RouteFilter {
	return RouteFilter{}
}

// Predicate returns a filter keeping routes for which fn reports true.
func Predicate(fn func(*typeroute.Route) bool) RouteFilter {
	return RouteFilter{kind: filterPredicate, predicate: fn}
}

// Only returns an allow-list filter: a route is kept iff its pattern matches
// any entry.
func Only(matchers ...Matcher) RouteFilter {
	return RouteFilter{kind: filterOnly, matchers: matchers}
}

// Except returns a deny-list filter: a route is kept iff its pattern matches
// no entry.
func Except(matchers ...Matcher) RouteFilter {
	return RouteFilter{kind: filterExcept, matchers: matchers}
}

// IsZero reports whether the filter is the identity filter.
func (f RouteFilter) IsZero() bool { return f.kind == filterNone }

// Apply filters routes, preserving input order.
func (f RouteFilter) Apply(routes []*typeroute.Route) []*typeroute.Route {
	if f.kind == filterNone {
		return routes
	}
	var kept []*typeroute.Route
	for _, r := range routes {
		if f.keep(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

func (f RouteFilter) keep(r *typeroute.Route) bool {
	switch f.kind {
	case filterPredicate:
		return f.predicate(r)
	case filterOnly:
		return matchesAny(f.matchers, r.Pattern)
	case filterExcept:
		return !matchesAny(f.matchers, r.Pattern)
	default:
		return true
	}
}

func matchesAny(matchers []Matcher, pattern string) bool {
	for _, m := range matchers {
		if m.Match(pattern) {
			return true
		}
	}
	return false
}
