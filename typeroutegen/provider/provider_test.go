package provider

import (
	"go/types"
	"testing"

	"golang.org/x/tools/go/packages"

	"github.com/typeroute/typeroute/typeroutegen/ir"
)

func loadFixtureTypes(t *testing.T) *types.Package {
	t.Helper()

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedTypes |
			packages.NeedTypesInfo | packages.NeedSyntax | packages.NeedDeps | packages.NeedImports,
		Dir: "../testdata/blogapp",
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	if len(pkgs) != 1 {
		t.Fatalf("expected one package, got %d", len(pkgs))
	}
	if len(pkgs[0].Errors) > 0 {
		t.Fatalf("fixture has errors: %v", pkgs[0].Errors[0])
	}
	return pkgs[0].Types
}

func lookupNamed(t *testing.T, pkg *types.Package, name string) *types.Named {
	t.Helper()

	obj := pkg.Scope().Lookup(name)
	if obj == nil {
		t.Fatalf("type %s not found in fixture", name)
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		t.Fatalf("%s is not a named type", name)
	}
	return named
}

// Distinct instantiations of a generic type are distinct types: each gets
// its own emitted interface and its own reference name.
func TestExtractGenericInstantiations(t *testing.T) {
	pkg := loadFixtureTypes(t)
	page := lookupNamed(t, pkg, "Page")
	post := lookupNamed(t, pkg, "Post")
	comment := lookupNamed(t, pkg, "Comment")

	pagePost, err := types.Instantiate(nil, page, []types.Type{post}, false)
	if err != nil {
		t.Fatalf("instantiate Page[Post]: %v", err)
	}
	pageComment, err := types.Instantiate(nil, page, []types.Type{comment}, false)
	if err != nil {
		t.Fatalf("instantiate Page[Comment]: %v", err)
	}

	schema := &ir.Schema{}
	e := NewExtractor(schema, nil, "")

	refPost, ok := e.Extract(pagePost).(*ir.ReferenceDescriptor)
	if !ok || refPost.Target.Name != "PagePost" {
		t.Fatalf("Page[Post] reference = %#v, want PagePost", refPost)
	}
	refComment, ok := e.Extract(pageComment).(*ir.ReferenceDescriptor)
	if !ok || refComment.Target.Name != "PageComment" {
		t.Fatalf("Page[Comment] reference = %#v, want PageComment", refComment)
	}

	for name, want := range map[string]string{
		"PagePost":    "Post",
		"PageComment": "Comment",
	} {
		desc, ok := schema.FindType(name).(*ir.StructDescriptor)
		if !ok {
			t.Fatalf("%s was not emitted as a struct", name)
		}
		if len(desc.Fields) != 2 || desc.Fields[0].Name != "Items" {
			t.Fatalf("%s fields = %#v", name, desc.Fields)
		}
		arr, ok := desc.Fields[0].Type.(*ir.ArrayDescriptor)
		if !ok {
			t.Fatalf("%s.Items is not an array", name)
		}
		elem, ok := arr.Element.(*ir.ReferenceDescriptor)
		if !ok || elem.Target.Name != want {
			t.Errorf("%s.Items element = %#v, want reference to %s", name, arr.Element, want)
		}
	}
}

// Repeated extraction of the same instantiation reuses the first descriptor.
func TestExtractGenericInstantiationDedupe(t *testing.T) {
	pkg := loadFixtureTypes(t)
	page := lookupNamed(t, pkg, "Page")
	post := lookupNamed(t, pkg, "Post")

	pagePost, err := types.Instantiate(nil, page, []types.Type{post}, false)
	if err != nil {
		t.Fatalf("instantiate Page[Post]: %v", err)
	}

	schema := &ir.Schema{}
	e := NewExtractor(schema, nil, "")
	e.Extract(pagePost)
	e.Extract(pagePost)

	seen := 0
	for _, d := range schema.Types {
		if s, ok := d.(*ir.StructDescriptor); ok && s.Name.Name == "PagePost" {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("PagePost emitted %d times, want 1", seen)
	}
}
