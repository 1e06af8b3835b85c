package typeroute

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storePostPayload struct {
	Title string `json:"title" schema:"title" validate:"required,min=3"`
	Body  string `json:"body" schema:"body"`
	Draft bool   `json:"draft" schema:"draft"`
}

var storePostSchema = NewSchema[storePostPayload]()

func testContext(r *http.Request) *Context {
	return newContext(NewApp(), httptest.NewRecorder(), r, &Route{}, nil)
}

func TestValidateUsingJSONBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/posts",
		strings.NewReader(`{"title":"hello world","draft":true}`))

	payload, err := ValidateUsing(storePostSchema, testContext(r))
	require.NoError(t, err)
	assert.Equal(t, "hello world", payload.Title)
	assert.True(t, payload.Draft)
}

func TestValidateUsingQueryParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/posts?title=abc&draft=true", nil)

	payload, err := ValidateUsing(storePostSchema, testContext(r))
	require.NoError(t, err)
	assert.Equal(t, "abc", payload.Title)
	assert.True(t, payload.Draft)
}

func TestValidateUsingUnknownQueryKeysIgnored(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/posts?title=abc&utm_source=x", nil)

	_, err := ValidateUsing(storePostSchema, testContext(r))
	assert.NoError(t, err)
}

func TestValidateUsingMalformedBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"title":`))

	_, err := ValidateUsing(storePostSchema, testContext(r))
	require.Error(t, err)

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeInvalidArgument, svcErr.Code)
}

func TestValidateUsingValidationFailure(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"title":"ab"}`))

	_, err := ValidateUsing(storePostSchema, testContext(r))
	require.Error(t, err)

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeInvalidArgument, svcErr.Code)
	assert.Contains(t, svcErr.Details, "Title")
}

func TestValidateUsingEmptyBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(""))

	_, err := ValidateUsing(storePostSchema, testContext(r))
	// An empty body decodes to the zero payload; validation still applies.
	require.Error(t, err)

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeInvalidArgument, svcErr.Code)
}
