package typeroutegen

import (
	"strings"

	"github.com/typeroute/typeroute"
)

// TypeName derives a stable, collision-resistant identifier from a route's
// pattern and verb list. Pattern segments are PascalCased with every dynamic
// segment normalized to "id", then the PascalCased verb list is appended:
//
//	"/users/:id/comments/:commentId" + [GET]       -> "UsersIdCommentsIdGet"
//	"/users"                        + [GET, HEAD]  -> "UsersGetHead"
//
// HEAD is not filtered here; the definition tree drops it when assigning
// verb keys. Distinct patterns can normalize to the same name; the caller
// decides how to handle the collision.
func TypeName(pattern string, methods []string) string {
	var b strings.Builder
	for _, seg := range typeroute.ParsePattern(pattern) {
		if seg.Param {
			b.WriteString("Id")
			continue
		}
		b.WriteString(pascal(seg.Value))
	}
	for _, m := range methods {
		b.WriteString(pascal(m))
	}
	return b.String()
}

// pascal converts a word to PascalCase, treating '-', '_', '.' and spaces as
// word boundaries.
func pascal(word string) string {
	var b strings.Builder
	for _, part := range strings.FieldsFunc(word, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	}) {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}
	return b.String()
}
