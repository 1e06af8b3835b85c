package typeroutegen

import (
	"reflect"
	"testing"

	"github.com/typeroute/typeroute"
)

func TestBuildRouteEntries(t *testing.T) {
	routes := []*typeroute.Route{
		{Pattern: "/posts", Methods: []string{"GET", "HEAD"}, RouteName: "posts.index"},
		{Pattern: "/posts", Methods: []string{"POST"}},
		{Pattern: "/posts/:id", Methods: []string{"GET", "HEAD"}, RouteName: "posts.show"},
	}

	known := map[string]bool{
		"PostsGetHead":   true,
		"PostsIdGetHead": true,
	}
	entries := BuildRouteEntries(routes, func(name string) bool { return known[name] })

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (unnamed route dropped)", len(entries))
	}

	first := entries[0]
	if first.Name != "posts.index" || first.Path != "/posts" || first.TypeName != "PostsGetHead" {
		t.Errorf("unexpected first entry: %+v", first)
	}
	if !reflect.DeepEqual(first.Methods, []string{"GET", "HEAD"}) {
		t.Errorf("methods = %v, HEAD must be kept", first.Methods)
	}
	if len(first.Params) != 0 {
		t.Errorf("params = %v, want none", first.Params)
	}

	second := entries[1]
	if !reflect.DeepEqual(second.Params, []string{"id"}) {
		t.Errorf("params = %v, want [id]", second.Params)
	}
}

func TestBuildRouteEntriesUnknownFallback(t *testing.T) {
	routes := []*typeroute.Route{
		{Pattern: "/inline", Methods: []string{"GET", "HEAD"}, RouteName: "inline",
			Handler: typeroute.HandlerFunc(func(c *typeroute.Context) error { return nil })},
	}

	entries := BuildRouteEntries(routes, func(string) bool { return false })
	if len(entries) != 1 {
		t.Fatalf("function-handler routes must still be eligible, got %d entries", len(entries))
	}
	if entries[0].TypeName != UnknownType {
		t.Errorf("type name = %q, want %q", entries[0].TypeName, UnknownType)
	}
}

func TestBuildRouteEntriesParamOrder(t *testing.T) {
	routes := []*typeroute.Route{
		{Pattern: "/users/:userId/posts/:postId", Methods: []string{"GET"}, RouteName: "users.posts.show"},
	}
	entries := BuildRouteEntries(routes, func(string) bool { return false })
	if !reflect.DeepEqual(entries[0].Params, []string{"userId", "postId"}) {
		t.Errorf("params = %v, want left-to-right pattern order", entries[0].Params)
	}
}
