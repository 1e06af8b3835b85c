package blogapp

import "github.com/typeroute/typeroute"

type Comment struct {
	ID     int64  `json:"id"`
	PostID int64  `json:"postId"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

type ListCommentsQuery struct {
	Page    int `json:"page" schema:"page" validate:"gte=0"`
	PerPage int `json:"perPage" schema:"per_page" validate:"lte=100"`
}

var ListCommentsSchema = typeroute.NewSchema[ListCommentsQuery]()

type CommentsController struct{}

func (c *CommentsController) Index(ctx *typeroute.Context) ([]Comment, error) {
	if _, err := typeroute.ValidateUsing(ListCommentsSchema, ctx); err != nil {
		return nil, err
	}
	return []Comment{}, nil
}
