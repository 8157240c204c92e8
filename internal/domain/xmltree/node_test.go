package xmltree_test

import (
	"testing"

	"github.com/abdidvp/moqlint/internal/domain/xmltree"
	"github.com/stretchr/testify/assert"
)

func TestNode_AttrPresenceAndOrder(t *testing.T) {
	n := xmltree.New("field").Attr("name", "orderId").Attr("type", "").Node()

	v, ok := n.Attr("name")
	assert.True(t, ok)
	assert.Equal(t, "orderId", v)

	v, ok = n.Attr("type")
	assert.True(t, ok, "empty attribute is still present")
	assert.Empty(t, v)

	_, ok = n.Attr("is-pk")
	assert.False(t, ok)
	assert.Equal(t, "name", n.Attrs[0].Name)
	assert.Equal(t, "type", n.Attrs[1].Name)
}

func TestNode_ChildrenNamed(t *testing.T) {
	n := xmltree.New("entity").Child(
		xmltree.New("field").Attr("name", "a"),
		xmltree.New("relationship"),
		xmltree.New("field").Attr("name", "b"),
	).Node()

	fields := n.ChildrenNamed("field")
	assert.Len(t, fields, 2)
	assert.Equal(t, "a", fields[0].Value("name"))
	assert.Equal(t, "b", fields[1].Value("name"))
	assert.NotNil(t, n.Child("relationship"))
	assert.Nil(t, n.Child("index"))
}

func TestNode_IsBlank(t *testing.T) {
	assert.True(t, xmltree.New("actions").Node().IsBlank())
	assert.True(t, xmltree.New("actions").Text(" \n\t ").Node().IsBlank())
	assert.False(t, xmltree.New("actions").Text("x").Node().IsBlank())
	assert.False(t, xmltree.New("actions").Child(xmltree.New("script")).Node().IsBlank())
}

func TestNode_NilSafe(t *testing.T) {
	var n *xmltree.Node
	_, ok := n.Attr("x")
	assert.False(t, ok)
	assert.Nil(t, n.ChildrenNamed("x"))
	assert.Nil(t, n.Child("x"))
}
