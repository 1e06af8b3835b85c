package typeroute

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Context carries one request through a handler.
type Context struct {
	app    *App
	w      http.ResponseWriter
	r      *http.Request
	route  *Route
	params map[string]string
}

func newContext(app *App, w http.ResponseWriter, r *http.Request, route *Route, params map[string]string) *Context {
	return &Context{app: app, w: w, r: r, route: route, params: params}
}

// Request returns the underlying HTTP request.
func (c *Context) Request() *http.Request { return c.r }

// Writer returns the underlying response writer.
func (c *Context) Writer() http.ResponseWriter { return c.w }

// Route returns the matched route.
func (c *Context) Route() *Route { return c.route }

// Logger returns the app logger.
func (c *Context) Logger() *slog.Logger { return c.app.log() }

// Param returns the value captured for a dynamic pattern segment,
// or "" if the pattern has no such parameter.
func (c *Context) Param(name string) string {
	return c.params[name]
}

// SetHeader sets a response header.
func (c *Context) SetHeader(key, value string) {
	c.w.Header().Set(key, value)
}

// JSON writes v as a JSON response with the given status code.
func (c *Context) JSON(code int, v any) error {
	c.w.Header().Set("Content-Type", "application/json")
	c.w.WriteHeader(code)
	return json.NewEncoder(c.w).Encode(v)
}

// NoContent writes an empty 204 response.
func (c *Context) NoContent() error {
	c.w.WriteHeader(http.StatusNoContent)
	return nil
}
