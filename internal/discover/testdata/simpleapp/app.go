// Package simpleapp is a discovery test fixture.
package simpleapp

import (
	"github.com/typeroute/typeroute"
	"github.com/typeroute/typeroute/typeroutegen"
)

// App is discovered by its signature.
func App() *typeroute.App {
	app := typeroute.NewApp()
	app.Get("/health", typeroute.HandlerFunc(func(c *typeroute.Context) error {
		return c.NoContent()
	})).Name("health")
	return app
}

// Configure is discovered as the config function.
func Configure(g *typeroutegen.Generator) *typeroutegen.Generator {
	return g.ClientModule("@simpleapp/client")
}

// helper must not be discovered: wrong return type.
func helper() string { return "" }

// TwoResults must not be discovered: wrong arity.
func TwoResults() (*typeroute.App, error) { return nil, nil }
