package analysis

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/typeroute/typeroute"
)

// HandlerData ties a resolved handler reference to its source declarations.
// It is ephemeral, scoped to the processing of a single route.
type HandlerData struct {
	Pkg        *packages.Package
	File       *ast.File
	Controller *ast.TypeSpec
	Method     *ast.FuncDecl
	MethodObj  *types.Func
}

// ResolveHandler maps a handler reference string "module#Method" to the
// controller declaration: the file whose path ends with "<module>.go", the
// controller struct named after the module, and the named method on it.
//
// Returns nil when the file, struct, or method cannot be found. This is a
// soft failure: the caller warns and skips the route.
func (ix *Index) ResolveHandler(ref string) *HandlerData {
	module, methodName, ok := typeroute.SplitRef(ref)
	if !ok {
		return nil
	}

	pkg, file, ok := ix.FileBySuffix(module + ".go")
	if !ok {
		return nil
	}

	controllerName := ControllerName(module)
	controller := findStructDecl(file, controllerName)
	if controller == nil {
		return nil
	}

	method := findMethodDecl(file, controllerName, methodName)
	if method == nil {
		return nil
	}

	methodObj, _ := pkg.TypesInfo.Defs[method.Name].(*types.Func)
	if methodObj == nil {
		return nil
	}

	return &HandlerData{
		Pkg:        pkg,
		File:       file,
		Controller: controller,
		Method:     method,
		MethodObj:  methodObj,
	}
}

// ControllerName derives the controller struct name from a module name:
// "posts_controller" resolves to "PostsController".
func ControllerName(module string) string {
	var b strings.Builder
	for _, part := range strings.FieldsFunc(module, func(r rune) bool {
		return r == '_' || r == '-'
	}) {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// findStructDecl returns the struct type declaration with the given name.
func findStructDecl(file *ast.File, name string) *ast.TypeSpec {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Name.Name != name {
				continue
			}
			if _, isStruct := ts.Type.(*ast.StructType); isStruct {
				return ts
			}
		}
	}
	return nil
}

// findMethodDecl returns the method declaration with the given name whose
// receiver is the named type (pointer or value receiver).
func findMethodDecl(file *ast.File, receiver, name string) *ast.FuncDecl {
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || fn.Name.Name != name {
			continue
		}
		if len(fn.Recv.List) == 1 && receiverTypeName(fn.Recv.List[0].Type) == receiver {
			return fn
		}
	}
	return nil
}

func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	default:
		return ""
	}
}
