package testutil_test

import (
	"net/http"
	"testing"

	"github.com/typeroute/typeroute"
	"github.com/typeroute/typeroute/testutil"
)

type widget struct {
	Name string `json:"name" validate:"required"`
}

var widgetSchema = typeroute.NewSchema[widget]()

type widgetsController struct{}

func (c *widgetsController) Show(ctx *typeroute.Context) (widget, error) {
	return widget{Name: ctx.Param("name")}, nil
}

func (c *widgetsController) Store(ctx *typeroute.Context) (widget, error) {
	return typeroute.ValidateUsing(widgetSchema, ctx)
}

func newTestApp() *typeroute.App {
	app := typeroute.NewApp()
	app.Register("widgets_controller", &widgetsController{})
	app.Get("/widgets/:name", "widgets_controller#Show").Name("widgets.show")
	app.Post("/widgets", "widgets_controller#Store").Name("widgets.store")
	return app
}

func TestGetWithParam(t *testing.T) {
	rec := testutil.NewRequest().GET("/widgets/sprocket").Do(newTestApp())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var w widget
	testutil.DecodeJSON(t, rec, &w)
	if w.Name != "sprocket" {
		t.Errorf("name = %q", w.Name)
	}
}

func TestPostJSON(t *testing.T) {
	rec := testutil.NewRequest().
		POST("/widgets").
		JSON(t, widget{Name: "gear"}).
		Do(newTestApp())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestValidationErrorEnvelope(t *testing.T) {
	rec := testutil.NewRequest().
		POST("/widgets").
		JSON(t, widget{}).
		Do(newTestApp())

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	e := testutil.DecodeError(t, rec)
	if e.Code != typeroute.CodeInvalidArgument {
		t.Errorf("code = %s", e.Code)
	}
}
