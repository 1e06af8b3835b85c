// Package blogapp is a small application wired up for end-to-end
// generation tests.
package blogapp

import "github.com/typeroute/typeroute"

// NewApp builds the fixture route table.
func NewApp() *typeroute.App {
	app := typeroute.NewApp()
	app.Register("posts_controller", &PostsController{})
	app.Register("comments_controller", &CommentsController{})

	app.Get("/posts", "posts_controller#Index").Name("posts.index")
	app.Post("/posts", "posts_controller#Store").Name("posts.store")
	app.Get("/posts/:id", "posts_controller#Show").Name("posts.show")
	app.Delete("/posts/:id", "posts_controller#Destroy")
	app.Get("/posts/:id/comments", "comments_controller#Index").Name("posts.comments.index")
	app.Get("/health", typeroute.HandlerFunc(func(c *typeroute.Context) error {
		return c.NoContent()
	})).Name("health")

	// Points at a controller file that does not exist.
	app.Get("/legacy", "ghost_controller#Index")

	return app
}
