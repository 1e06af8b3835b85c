package typeroutegen

import (
	"regexp"
	"testing"

	"github.com/typeroute/typeroute"
)

func routeTable(patterns ...string) []*typeroute.Route {
	routes := make([]*typeroute.Route, len(patterns))
	for i, p := range patterns {
		routes[i] = &typeroute.Route{Pattern: p, Methods: []string{"GET"}}
	}
	return routes
}

func patterns(routes []*typeroute.Route) []string {
	out := make([]string, len(routes))
	for i, r := range routes {
		out[i] = r.Pattern
	}
	return out
}

func TestUnfilteredKeepsEverything(t *testing.T) {
	routes := routeTable("/a", "/b", "/c")
	got := Unfiltered().Apply(routes)
	if len(got) != 3 {
		t.Fatalf("got %d routes, want 3", len(got))
	}
}

func TestOnlyFilter(t *testing.T) {
	routes := routeTable("/posts", "/posts/:id", "/internal/health")
	got := Only(MatchLiteral("/posts"), MatchLiteral("/posts/:id")).Apply(routes)

	want := []string{"/posts", "/posts/:id"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", patterns(got), want)
	}
	for i, p := range want {
		if got[i].Pattern != p {
			t.Errorf("route %d = %q, want %q", i, got[i].Pattern, p)
		}
	}
}

func TestExceptFilter(t *testing.T) {
	routes := routeTable("/posts", "/internal/health", "/internal/metrics")
	got := Except(MatchRegexp(regexp.MustCompile(`^/internal/`))).Apply(routes)

	if len(got) != 1 || got[0].Pattern != "/posts" {
		t.Fatalf("got %v, want [/posts]", patterns(got))
	}
}

func TestPredicateFilter(t *testing.T) {
	routes := routeTable("/a", "/bb", "/ccc")
	got := Predicate(func(r *typeroute.Route) bool {
		return len(r.Pattern) > 2
	}).Apply(routes)

	if len(got) != 2 {
		t.Fatalf("got %v, want 2 routes", patterns(got))
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	routes := routeTable("/c", "/a", "/b")
	got := Except(MatchLiteral("/a")).Apply(routes)

	want := []string{"/c", "/b"}
	for i, p := range want {
		if got[i].Pattern != p {
			t.Errorf("route %d = %q, want %q", i, got[i].Pattern, p)
		}
	}
}

func TestParseMatcherRegexDelimiters(t *testing.T) {
	m, err := parseMatcher("/^\\/admin/")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match("/admin/users") {
		t.Error("regex entry should match /admin/users")
	}
	if m.Match("/posts") {
		t.Error("regex entry should not match /posts")
	}

	// A plain pattern is a literal even though it starts with a slash.
	lit, err := parseMatcher("/admin/users")
	if err != nil {
		t.Fatal(err)
	}
	if !lit.Match("/admin/users") || lit.Match("/admin/users/2") {
		t.Error("literal entry should match exactly")
	}
}
