package analysis

import (
	"fmt"
	"go/ast"
	"go/types"
	"strings"
)

// validateCallSubstring identifies the call that registers a validation
// schema inside a controller method body.
const validateCallSubstring = "ValidateUsing"

// RequestSchema inspects a method body for the first call expression whose
// callee text contains "ValidateUsing" and resolves its schema argument to
// the payload type T of a typeroute.Schema[T] declaration.
//
// A missing call, or a schema argument that is not a plain identifier,
// returns (nil, nil): the route simply has no statically known request type.
// An identifier that cannot be resolved to a schema declaration returns an
// error; the caller surfaces it as a warning and falls back to unknown.
func (ix *Index) RequestSchema(h *HandlerData) (types.Type, error) {
	call := findValidateCall(h.Method.Body)
	if call == nil {
		return nil, nil
	}

	arg := schemaArgument(call)
	ident, ok := arg.(*ast.Ident)
	if !ok {
		// Only plain references are supported; anything else degrades to
		// no schema found.
		return nil, nil
	}

	obj := h.Pkg.TypesInfo.Uses[ident]
	if obj == nil {
		return nil, fmt.Errorf("cannot resolve schema reference %q", ident.Name)
	}

	payload := schemaPayload(obj.Type())
	if payload == nil {
		return nil, fmt.Errorf("%q does not reference a typeroute.Schema declaration", ident.Name)
	}
	return payload, nil
}

// ResponseType returns the method's first non-error result type, or nil when
// the method returns no data.
func (ix *Index) ResponseType(h *HandlerData) types.Type {
	results := h.MethodObj.Signature().Results()
	if results.Len() == 0 {
		return nil
	}
	first := results.At(0).Type()
	if isErrorType(first) {
		return nil
	}
	return first
}

// findValidateCall performs a depth-first search of the body for the first
// matching call expression.
func findValidateCall(body *ast.BlockStmt) *ast.CallExpr {
	if body == nil {
		return nil
	}
	var found *ast.CallExpr
	ast.Inspect(body, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		if strings.Contains(calleeText(call.Fun), validateCallSubstring) {
			found = call
			return false
		}
		return true
	})
	return found
}

// schemaArgument returns the schema argument of a ValidateUsing call.
// ValidateUsing takes the schema first; later arguments carry the request.
func schemaArgument(call *ast.CallExpr) ast.Expr {
	if len(call.Args) == 0 {
		return nil
	}
	return call.Args[0]
}

// calleeText renders the callee expression as source-like text, unwrapping
// generic instantiations.
func calleeText(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		return calleeText(e.X) + "." + e.Sel.Name
	case *ast.IndexExpr:
		return calleeText(e.X)
	case *ast.IndexListExpr:
		return calleeText(e.X)
	case *ast.ParenExpr:
		return calleeText(e.X)
	default:
		return ""
	}
}

// schemaPayload extracts T from a (possibly pointer-to) typeroute.Schema[T].
func schemaPayload(t types.Type) types.Type {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok || named.Obj().Name() != "Schema" {
		return nil
	}
	pkg := named.Obj().Pkg()
	if pkg == nil || pkg.Path() != "github.com/typeroute/typeroute" {
		return nil
	}
	args := named.TypeArgs()
	if args == nil || args.Len() != 1 {
		return nil
	}
	return args.At(0)
}

func isErrorType(t types.Type) bool {
	named, ok := t.(*types.Named)
	return ok && named.Obj().Pkg() == nil && named.Obj().Name() == "error"
}
