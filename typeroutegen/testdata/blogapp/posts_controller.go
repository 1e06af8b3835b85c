package blogapp

import (
	"strconv"
	"time"

	"github.com/typeroute/typeroute"
)

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type StorePostPayload struct {
	Title string   `json:"title" validate:"required,min=3"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags,omitempty"`
}

var StorePostSchema = typeroute.NewSchema[StorePostPayload]()

type PostsController struct{}

func (p *PostsController) Index(c *typeroute.Context) ([]Post, error) {
	return []Post{}, nil
}

func (p *PostsController) Show(c *typeroute.Context) (Post, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return Post{}, typeroute.NewError(typeroute.CodeInvalidArgument, "invalid post id")
	}
	return Post{ID: id}, nil
}

func (p *PostsController) Store(c *typeroute.Context) (Post, error) {
	payload, err := typeroute.ValidateUsing(StorePostSchema, c)
	if err != nil {
		return Post{}, err
	}
	return Post{
		Title:     payload.Title,
		Body:      payload.Body,
		Tags:      payload.Tags,
		CreatedAt: time.Now(),
	}, nil
}

func (p *PostsController) Destroy(c *typeroute.Context) error {
	return c.NoContent()
}
