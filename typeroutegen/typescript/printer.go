package typescript

import (
	"bytes"
	"strings"
)

// Header is written at the top of every generated file.
const Header = "// Code generated by typeroute. DO NOT EDIT.\n"

// Document is an ordered list of declarations forming one output file.
type Document struct {
	Decls []Decl
}

// Add appends a declaration.
func (d *Document) Add(decl Decl) {
	d.Decls = append(d.Decls, decl)
}

// PrinterConfig controls serialization.
type PrinterConfig struct {
	// IndentSize is the number of indent characters per level.
	IndentSize int

	// UseTabs selects tab indentation instead of spaces.
	UseTabs bool
}

// Printer serializes a Document.
type Printer struct {
	config PrinterConfig
}

// NewPrinter returns a printer with the given config. A zero config means
// two-space indentation.
func NewPrinter(config PrinterConfig) *Printer {
	if config.IndentSize == 0 {
		config.IndentSize = 2
	}
	return &Printer{config: config}
}

// Print renders the document. Declarations are separated by one blank line.
func (p *Printer) Print(doc *Document) ([]byte, error) {
	indent := strings.Repeat(" ", p.config.IndentSize)
	if p.config.UseTabs {
		indent = strings.Repeat("\t", p.config.IndentSize)
	}
	e := NewEmitter(indent)

	var buf bytes.Buffer
	buf.WriteString(Header)
	for _, decl := range doc.Decls {
		buf.WriteString("\n")
		if err := decl.emit(&buf, e); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
