package typeroute

import (
	"net/http"
	"reflect"
	"strings"
	"sync"
)

// SplitRef splits a handler reference "module#Method" into its parts.
func SplitRef(ref string) (module, method string, ok bool) {
	module, method, ok = strings.Cut(ref, "#")
	if !ok || module == "" || method == "" {
		return "", "", false
	}
	return module, method, true
}

// controllerRegistry maps module names to controller instances so handler
// reference strings can be dispatched at runtime.
type controllerRegistry struct {
	mu      sync.RWMutex
	modules map[string]reflect.Value
}

func newControllerRegistry() *controllerRegistry {
	return &controllerRegistry{modules: make(map[string]reflect.Value)}
}

func (cr *controllerRegistry) add(module string, controller any) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.modules[module] = reflect.ValueOf(controller)
}

// invoke calls the controller method named by ref.
//
// Supported method shapes:
//
//	func (c *PostsController) Index(ctx *Context) error
//	func (c *PostsController) Show(ctx *Context) (T, error)
//
// The second shape writes T as a 200 JSON response when the error is nil.
func (cr *controllerRegistry) invoke(ctx *Context, ref string) error {
	module, methodName, ok := SplitRef(ref)
	if !ok {
		return Errorf(CodeInternal, "malformed handler reference %q", ref)
	}

	cr.mu.RLock()
	controller, registered := cr.modules[module]
	cr.mu.RUnlock()
	if !registered {
		return Errorf(CodeInternal, "no controller registered for module %q", module)
	}

	method := controller.MethodByName(methodName)
	if !method.IsValid() {
		return Errorf(CodeInternal, "controller %q has no method %q", module, methodName)
	}

	mt := method.Type()
	if mt.NumIn() != 1 || mt.In(0) != reflect.TypeOf((*Context)(nil)) {
		return Errorf(CodeInternal, "method %s#%s must take a single *typeroute.Context", module, methodName)
	}

	results := method.Call([]reflect.Value{reflect.ValueOf(ctx)})
	switch len(results) {
	case 1:
		return asError(results[0])
	case 2:
		if err := asError(results[1]); err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, results[0].Interface())
	default:
		return Errorf(CodeInternal, "method %s#%s has unsupported result arity %d", module, methodName, len(results))
	}
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	err, ok := v.Interface().(error)
	if !ok {
		return Errorf(CodeInternal, "handler result %v is not an error", v.Type())
	}
	return err
}
