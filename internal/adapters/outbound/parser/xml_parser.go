package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"

	"github.com/abdidvp/moqlint/internal/domain/xmltree"
)

// ParseError reports markup the parser could not turn into a tree.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

var utf8BOM = []byte("\xef\xbb\xbf")

// XMLParser implements domain.DocumentParser using encoding/xml.
type XMLParser struct{}

func New() *XMLParser {
	return &XMLParser{}
}

// Parse builds an element tree from data. Comments, processing instructions
// and directives are dropped. Attribute names keep their namespace prefix.
func (p *XMLParser) Parse(path string, data []byte) (*xmltree.Node, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	d := xml.NewDecoder(bytes.NewReader(data))
	d.CharsetReader = charset.NewReaderLabel

	var (
		root  *xmltree.Node
		stack []*xmltree.Node
	)

	fail := func(msg string) error {
		line, _ := d.InputPos()
		return &ParseError{Path: path, Line: line, Msg: msg}
	}

	for {
		// RawToken keeps prefixes intact; tag balance is checked below.
		tok, err := d.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var syn *xml.SyntaxError
			if errors.As(err, &syn) {
				return nil, &ParseError{Path: path, Line: syn.Line, Msg: syn.Msg}
			}
			return nil, fail(err.Error())
		}

		switch t := tok.(type) {
		case xml.StartElement:
			line, _ := d.InputPos()
			node := &xmltree.Node{Tag: qualified(t.Name), Line: line}
			for _, a := range t.Attr {
				name := qualified(a.Name)
				if _, dup := node.Attr(name); dup {
					return nil, &ParseError{Path: path, Line: line, Msg: fmt.Sprintf("duplicate attribute %q on <%s>", name, node.Tag)}
				}
				node.Attrs = append(node.Attrs, xmltree.Attr{Name: name, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fail(fmt.Sprintf("multiple root elements: <%s> after <%s>", node.Tag, root.Tag))
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			name := qualified(t.Name)
			if len(stack) == 0 {
				return nil, fail(fmt.Sprintf("unexpected closing tag </%s>", name))
			}
			top := stack[len(stack)-1]
			if top.Tag != name {
				return nil, fail(fmt.Sprintf("element <%s> closed by </%s>", top.Tag, name))
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, fail("text outside the root element")
				}
				continue
			}
			top := stack[len(stack)-1]
			top.Text += string(t)
		}
	}

	if len(stack) > 0 {
		return nil, fail(fmt.Sprintf("unexpected end of document: <%s> is not closed", stack[len(stack)-1].Tag))
	}
	if root == nil {
		return nil, fail("no root element")
	}
	return root, nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// Detail renders the error without its path, for reports that already
// carry the path.
func (e *ParseError) Detail() string {
	if e.Line > 0 {
		return fmt.Sprintf("XML parse error: line %d: %s", e.Line, e.Msg)
	}
	return "XML parse error: " + e.Msg
}
