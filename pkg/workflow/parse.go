package workflow

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

// ParseError is returned when a file isn't valid YAML.
// Line and Column are zero if the parser doesn't report a position.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s as YAML at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse %s as YAML: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// tokenError is implemented by the errors of goccy/go-yaml.
type tokenError interface {
	error
	GetToken() *token.Token
	GetMessage() string
}

func newParseError(path string, err error) *ParseError {
	pe := &ParseError{
		Path:    path,
		Message: err.Error(),
		Err:     err,
	}
	var te tokenError
	if !errors.As(err, &te) {
		return pe
	}
	pe.Message = te.GetMessage()
	if tk := te.GetToken(); tk != nil && tk.Position != nil {
		pe.Line = tk.Position.Line
		pe.Column = tk.Position.Column
	}
	return pe
}

// utf8BOM is stripped before parsing. Otherwise it becomes part of the first key.
var utf8BOM = []byte("\ufeff") //nolint:gochecknoglobals

// Parse parses content as a YAML stream.
func Parse(path string, content []byte) (*Document, error) {
	file, err := parser.ParseBytes(bytes.TrimPrefix(content, utf8BOM), 0)
	if err != nil {
		return nil, newParseError(path, err)
	}
	c := &converter{
		anchors: map[string]*Scalar{},
	}
	doc := &Document{
		Path: path,
	}
	for _, d := range file.Docs {
		if d == nil || d.Body == nil {
			continue
		}
		if n := c.convert(d.Body); n != nil {
			doc.Roots = append(doc.Roots, n)
		}
	}
	return doc, nil
}

type converter struct {
	anchors map[string]*Scalar
}

func position(n ast.Node) Position {
	if n == nil {
		return Position{}
	}
	tk := n.GetToken()
	if tk == nil || tk.Position == nil {
		return Position{}
	}
	return Position{
		Line:   tk.Position.Line,
		Column: tk.Position.Column,
	}
}

func tokenValue(n ast.Node) string {
	if n == nil {
		return ""
	}
	if tk := n.GetToken(); tk != nil {
		return tk.Value
	}
	return ""
}

func (c *converter) convert(n ast.Node) Node { //nolint:cyclop
	switch n := n.(type) {
	case nil:
		return nil
	case *ast.MappingNode:
		m := &Mapping{
			Position: position(n),
			Entries:  make([]*Entry, 0, len(n.Values)),
		}
		for _, v := range n.Values {
			m.Entries = append(m.Entries, c.convertEntry(v))
		}
		return m
	case *ast.MappingValueNode:
		e := c.convertEntry(n)
		return &Mapping{
			Position: e.Key.Position,
			Entries:  []*Entry{e},
		}
	case *ast.SequenceNode:
		s := &Sequence{
			Position: position(n),
			Items:    make([]Node, 0, len(n.Values)),
		}
		for _, v := range n.Values {
			if item := c.convert(v); item != nil {
				s.Items = append(s.Items, item)
			}
		}
		return s
	case *ast.AnchorNode:
		v := c.convert(n.Value)
		if s, ok := v.(*Scalar); ok {
			c.anchors[tokenValue(n.Name)] = s
		}
		return v
	case *ast.AliasNode:
		// Collections behind an alias are visited at their anchor.
		s, ok := c.anchors[tokenValue(n.Value)]
		if !ok {
			return nil
		}
		return &Scalar{
			Position: position(n),
			Value:    s.Value,
			Null:     s.Null,
		}
	case *ast.TagNode:
		return c.convert(n.Value)
	case *ast.StringNode:
		return &Scalar{
			Position: position(n),
			Value:    n.Value,
		}
	case *ast.LiteralNode:
		s := &Scalar{
			Position: position(n),
		}
		if n.Value != nil {
			s.Value = n.Value.Value
		}
		return s
	case *ast.NullNode:
		return &Scalar{
			Position: position(n),
			Null:     true,
		}
	default:
		return &Scalar{
			Position: position(n),
			Value:    tokenValue(n),
		}
	}
}

func (c *converter) convertEntry(v *ast.MappingValueNode) *Entry {
	key, ok := c.convert(v.Key).(*Scalar)
	if !ok {
		key = &Scalar{
			Position: position(v.Key),
			Value:    v.Key.String(),
		}
	}
	e := &Entry{
		Key:   key,
		Value: c.convert(v.Value),
	}
	if s, ok := e.Value.(*Scalar); ok && s.Line == 0 {
		s.Position = key.Position
	}
	return e
}
