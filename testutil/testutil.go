// Package testutil provides helpers for testing typeroute apps and
// handlers over net/http/httptest.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/typeroute/typeroute"
)

// RequestBuilder constructs test HTTP requests with a fluent API.
type RequestBuilder struct {
	method  string
	path    string
	body    []byte
	headers map[string]string
	query   url.Values
}

// NewRequest returns a builder for a GET / request.
func NewRequest() *RequestBuilder {
	return &RequestBuilder{
		method:  http.MethodGet,
		path:    "/",
		headers: make(map[string]string),
		query:   make(url.Values),
	}
}

// GET targets the builder at a GET request for path.
func (b *RequestBuilder) GET(path string) *RequestBuilder {
	b.method = http.MethodGet
	b.path = path
	return b
}

// POST targets the builder at a POST request for path.
func (b *RequestBuilder) POST(path string) *RequestBuilder {
	b.method = http.MethodPost
	b.path = path
	return b
}

// PUT targets the builder at a PUT request for path.
func (b *RequestBuilder) PUT(path string) *RequestBuilder {
	b.method = http.MethodPut
	b.path = path
	return b
}

// DELETE targets the builder at a DELETE request for path.
func (b *RequestBuilder) DELETE(path string) *RequestBuilder {
	b.method = http.MethodDelete
	b.path = path
	return b
}

// JSON sets the request body to the JSON encoding of v and the matching
// Content-Type header.
func (b *RequestBuilder) JSON(t *testing.T, v any) *RequestBuilder {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	b.body = data
	b.headers["Content-Type"] = "application/json"
	return b
}

// Header sets a request header.
func (b *RequestBuilder) Header(key, value string) *RequestBuilder {
	b.headers[key] = value
	return b
}

// Query adds a query parameter.
func (b *RequestBuilder) Query(key, value string) *RequestBuilder {
	b.query.Add(key, value)
	return b
}

// Build materializes the request.
func (b *RequestBuilder) Build() *http.Request {
	target := b.path
	if len(b.query) > 0 {
		target += "?" + b.query.Encode()
	}
	req := httptest.NewRequest(b.method, target, bytes.NewReader(b.body))
	for k, v := range b.headers {
		req.Header.Set(k, v)
	}
	return req
}

// Do dispatches the request through the app and returns the recorded
// response.
func (b *RequestBuilder) Do(app *typeroute.App) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, b.Build())
	return rec
}

// DecodeJSON unmarshals a recorded response body into v.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response body %q: %v", rec.Body.String(), err)
	}
}

// DecodeError unmarshals a recorded error envelope.
func DecodeError(t *testing.T, rec *httptest.ResponseRecorder) *typeroute.Error {
	t.Helper()
	var e typeroute.Error
	DecodeJSON(t, rec, &e)
	return &e
}
