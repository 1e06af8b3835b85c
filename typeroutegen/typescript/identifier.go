package typescript

import (
	"fmt"
	"unicode"
)

// reservedWords are TypeScript keywords that cannot name a type.
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "enum": true,
	"export": true, "extends": true, "false": true, "finally": true,
	"for": true, "function": true, "if": true, "implements": true,
	"import": true, "in": true, "instanceof": true, "interface": true,
	"let": true, "new": true, "null": true, "package": true,
	"private": true, "protected": true, "public": true, "return": true,
	"static": true, "super": true, "switch": true, "this": true,
	"throw": true, "true": true, "try": true, "type": true,
	"typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true,
}

// escapeReservedWord escapes a reserved word by appending an underscore.
func escapeReservedWord(name string) string {
	if reservedWords[name] {
		return name + "_"
	}
	return name
}

// needsQuoting reports whether a property name must be quoted in an object
// or interface literal. Dynamic pattern segments like ":id" always do.
func needsQuoting(name string) bool {
	if name == "" {
		return true
	}
	for i, r := range name {
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return true
	}
	return false
}

// propertyName renders a property name, quoting it when required.
func propertyName(name string) string {
	if needsQuoting(name) {
		return fmt.Sprintf("%q", name)
	}
	return name
}
