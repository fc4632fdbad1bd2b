package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() *StaticContext {
	root := &Node{
		Tag: "body",
		Children: []*Node{
			{
				Tag: "div",
				Children: []*Node{
					{Tag: "span", Text: "Full Name"},
					{Tag: "span", Text: "Jane Cooper"},
				},
			},
			{Tag: "label", Text: "Phone", Children: []*Node{}},
			{Tag: "input", ID: "customer-search", Name: "search"},
			{
				Tag:    "div",
				Hidden: true,
				Children: []*Node{
					{Tag: "span", Text: "Secret"},
				},
			},
		},
	}
	return NewStaticContext(root, map[string]string{
		"Recent Transactions": "ledger text",
	})
}

func TestStaticContext_ByExactText(t *testing.T) {
	pg := testTree()

	el, ok := pg.ByExactText("Full Name")
	require.True(t, ok)
	assert.Equal(t, "Full Name", el.Text())

	_, ok = pg.ByExactText("full name")
	assert.False(t, ok)
}

func TestStaticContext_ByPartialText(t *testing.T) {
	pg := testTree()

	el, ok := pg.ByPartialText("full na")
	require.True(t, ok)
	assert.Equal(t, "Full Name", el.Text())
}

func TestStaticContext_ByAttribute(t *testing.T) {
	pg := testTree()

	_, ok := pg.ByAttribute("search")
	assert.True(t, ok)

	_, ok = pg.ByAttribute("missing-id")
	assert.False(t, ok)
}

func TestStaticContext_ByLabel(t *testing.T) {
	pg := testTree()

	el, ok := pg.ByLabel("phone")
	require.True(t, ok)
	assert.Equal(t, "Phone", el.Text())

	// Non-label elements never match, even on text.
	_, ok = pg.ByLabel("Full Name")
	assert.False(t, ok)
}

func TestStaticContext_SectionText(t *testing.T) {
	pg := testTree()

	text, ok := pg.SectionText("Recent Transactions")
	require.True(t, ok)
	assert.Equal(t, "ledger text", text)

	_, ok = pg.SectionText("Investigation History")
	assert.False(t, ok)
}

func TestStaticElement_Siblings(t *testing.T) {
	pg := testTree()

	label, ok := pg.ByExactText("Full Name")
	require.True(t, ok)

	next := label.Next()
	require.NotNil(t, next)
	assert.Equal(t, "Jane Cooper", next.Text())
	assert.Nil(t, next.Next())

	parent := label.Parent()
	require.NotNil(t, parent)
	assert.Equal(t, "Full NameJane Cooper", parent.Text())
}

func TestStaticElement_Visibility(t *testing.T) {
	pg := testTree()

	visible, ok := pg.ByExactText("Full Name")
	require.True(t, ok)
	assert.True(t, visible.Visible())

	// Hidden is inherited from ancestors.
	hidden, ok := pg.ByExactText("Secret")
	require.True(t, ok)
	assert.False(t, hidden.Visible())
}

func TestStaticContext_Active(t *testing.T) {
	pg := testTree()
	assert.True(t, pg.Active())

	pg.Inactive = true
	assert.False(t, pg.Active())
}

func TestStaticContext_EmptyTree(t *testing.T) {
	pg := NewStaticContext(nil, nil)

	_, ok := pg.ByExactText("anything")
	assert.False(t, ok)
	_, ok = pg.SectionText("anything")
	assert.False(t, ok)
}
