// Package xmltree is the read-only element tree the rule engine walks.
package xmltree

import "strings"

// Attr is a single attribute. Prefixed names keep their prefix, e.g.
// "xsi:noNamespaceSchemaLocation".
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Node is one parsed element.
type Node struct {
	Tag      string  `json:"tag"`
	Attrs    []Attr  `json:"attrs,omitempty"`
	Children []*Node `json:"children,omitempty"`
	Text     string  `json:"text,omitempty"`
	Line     int     `json:"line,omitempty"`
}

// Attr returns the attribute value and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Value returns the attribute value, or "" when absent.
func (n *Node) Value(name string) string {
	v, _ := n.Attr(name)
	return v
}

// ChildrenNamed returns the direct children with the given tag, in document order.
func (n *Node) ChildrenNamed(tag string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first direct child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// IsBlank reports whether the element has neither child elements nor
// non-whitespace character data.
func (n *Node) IsBlank() bool {
	return len(n.Children) == 0 && strings.TrimSpace(n.Text) == ""
}

// Builder is a convenience for constructing trees in code and tests.
type Builder struct {
	node *Node
}

// New starts a node with the given tag.
func New(tag string) *Builder {
	return &Builder{node: &Node{Tag: tag}}
}

// Attr appends an attribute.
func (b *Builder) Attr(name, value string) *Builder {
	b.node.Attrs = append(b.node.Attrs, Attr{Name: name, Value: value})
	return b
}

// Text sets the character data.
func (b *Builder) Text(s string) *Builder {
	b.node.Text = s
	return b
}

// Child appends children.
func (b *Builder) Child(children ...*Builder) *Builder {
	for _, c := range children {
		b.node.Children = append(b.node.Children, c.node)
	}
	return b
}

// Node returns the built node.
func (b *Builder) Node() *Node { return b.node }
