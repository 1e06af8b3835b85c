package typeroute

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
)

// App is the central router. It owns the ordered route table consumed by both
// the HTTP dispatcher and the code generator.
// Use Handler() to get an http.Handler for use with http.ListenAndServe.
type App struct {
	mu          sync.RWMutex
	routes      []*Route
	controllers *controllerRegistry
	middlewares []func(http.Handler) http.Handler
	logger      *slog.Logger
}

// NewApp returns an empty App.
func NewApp() *App {
	return &App{
		controllers: newControllerRegistry(),
	}
}

// WithLogger sets a custom logger for the app.
// If not set, slog.Default() is used.
func (a *App) WithLogger(logger *slog.Logger) *App {
	a.logger = logger
	return a
}

// WithMiddleware adds an HTTP middleware to wrap the app.
// Middleware is applied in the order added (first added is outermost).
func (a *App) WithMiddleware(mw func(http.Handler) http.Handler) *App {
	a.middlewares = append(a.middlewares, mw)
	return a
}

// Register binds a controller instance to its module name so handler
// reference strings like "posts_controller#Index" are dispatchable.
func (a *App) Register(module string, controller any) *App {
	a.controllers.add(module, controller)
	return a
}

// Get registers a route for GET. GET routes implicitly answer HEAD as well,
// mirroring net/http behavior; both verbs appear in the route table.
func (a *App) Get(pattern string, handler any) *Route {
	return a.Route([]string{http.MethodGet, http.MethodHead}, pattern, handler)
}

// Post registers a route for POST.
func (a *App) Post(pattern string, handler any) *Route {
	return a.Route([]string{http.MethodPost}, pattern, handler)
}

// Put registers a route for PUT.
func (a *App) Put(pattern string, handler any) *Route {
	return a.Route([]string{http.MethodPut}, pattern, handler)
}

// Patch registers a route for PATCH.
func (a *App) Patch(pattern string, handler any) *Route {
	return a.Route([]string{http.MethodPatch}, pattern, handler)
}

// Delete registers a route for DELETE.
func (a *App) Delete(pattern string, handler any) *Route {
	return a.Route([]string{http.MethodDelete}, pattern, handler)
}

// Any registers a route for an explicit verb list.
func (a *App) Any(methods []string, pattern string, handler any) *Route {
	return a.Route(methods, pattern, handler)
}

// Route registers a route and returns it for chaining.
func (a *App) Route(methods []string, pattern string, handler any) *Route {
	upper := make([]string, len(methods))
	for i, m := range methods {
		upper[i] = strings.ToUpper(m)
	}
	r := &Route{
		Pattern: pattern,
		Methods: upper,
		Handler: handler,
	}
	a.mu.Lock()
	a.routes = append(a.routes, r)
	a.mu.Unlock()
	return r
}

// Routes returns the route table in registration order.
// The returned slice is a copy; the routes themselves are shared.
func (a *App) Routes() []*Route {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*Route, len(a.routes))
	copy(out, a.routes)
	return out
}

// Handler returns an http.Handler dispatching over the route table,
// wrapped in any registered middleware.
func (a *App) Handler() http.Handler {
	var h http.Handler = http.HandlerFunc(a.dispatch)
	for i := len(a.middlewares) - 1; i >= 0; i-- {
		h = a.middlewares[i](h)
	}
	return h
}

func (a *App) log() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return slog.Default()
}

func (a *App) dispatch(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	routes := a.routes
	a.mu.RUnlock()

	pathMatched := false
	for _, rt := range routes {
		params, ok := matchPattern(rt.Pattern, r.URL.Path)
		if !ok {
			continue
		}
		pathMatched = true
		if !methodAllowed(rt.Methods, r.Method) {
			continue
		}
		ctx := newContext(a, w, r, rt, params)
		if err := a.invoke(ctx, rt); err != nil {
			WriteError(w, a.log(), err)
		}
		return
	}

	if pathMatched {
		WriteError(w, a.log(), NewError(CodeMethodNotAllowed, "method not allowed"))
		return
	}
	WriteError(w, a.log(), NewError(CodeNotFound, "no route matches "+r.URL.Path))
}

func (a *App) invoke(ctx *Context, rt *Route) error {
	if fn, ok := rt.Func(); ok {
		return fn(ctx)
	}
	if ref, ok := rt.Ref(); ok {
		return a.controllers.invoke(ctx, ref)
	}
	return NewError(CodeInternal, "route has no usable handler")
}

func methodAllowed(methods []string, method string) bool {
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}
