package locate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritide/compliance-cli/internal/page"
)

func detailPage() page.Context {
	root := &page.Node{
		Tag: "body",
		Children: []*page.Node{
			{
				Tag: "div",
				Children: []*page.Node{
					{Tag: "span", Text: "Date of Birth"},
					{Tag: "span", Text: "1985-03-12"},
				},
			},
			{
				Tag: "div",
				Children: []*page.Node{
					{Tag: "label", Text: "Phone"},
					{Tag: "input", Text: "+1 555 0147"},
				},
			},
			{
				Tag: "div",
				Children: []*page.Node{
					{Tag: "span", ID: "customer-email-field"},
					{Tag: "span", Text: "jane@example.com"},
				},
			},
		},
	}
	return page.NewStaticContext(root, nil)
}

func TestLocator_Locate_ExactText(t *testing.T) {
	loc := New(detailPage())
	assert.Equal(t, "1985-03-12", loc.Locate([]string{"Date of Birth"}))
}

func TestLocator_Locate_PartialText(t *testing.T) {
	loc := New(detailPage())
	// No exact "date of birth" node in this casing; partial match picks it up.
	assert.Equal(t, "1985-03-12", loc.Locate([]string{"date of birth"}))
}

func TestLocator_Locate_Attribute(t *testing.T) {
	loc := New(detailPage())
	assert.Equal(t, "jane@example.com", loc.Locate([]string{"email"}))
}

func TestLocator_Locate_LabelPriority(t *testing.T) {
	// The first label that yields a value wins, even when a later label
	// would also match.
	loc := New(detailPage())
	assert.Equal(t, "1985-03-12", loc.Locate([]string{"Date of Birth", "Phone"}))
}

func TestLocator_Locate_FallsThroughToLaterLabel(t *testing.T) {
	loc := New(detailPage())
	assert.Equal(t, "+1 555 0147", loc.Locate([]string{"Fax", "Phone"}))
}

func TestLocator_Locate_MissReturnsEmpty(t *testing.T) {
	loc := New(detailPage())
	assert.Equal(t, "", loc.Locate([]string{"Passport Number"}))
	assert.Equal(t, "", loc.Locate(nil))
}

func TestLocator_Locate_SkipsHiddenElements(t *testing.T) {
	root := &page.Node{
		Tag: "body",
		Children: []*page.Node{
			{
				Tag:    "div",
				Hidden: true,
				Children: []*page.Node{
					{Tag: "span", Text: "Address"},
					{Tag: "span", Text: "stale hidden value"},
				},
			},
		},
	}
	loc := New(page.NewStaticContext(root, nil))
	assert.Equal(t, "", loc.Locate([]string{"Address"}))
}

func TestLocator_Locate_ParentSiblingFallback(t *testing.T) {
	// The label is wrapped one level deep; the value lives in the parent's
	// next sibling.
	root := &page.Node{
		Tag: "body",
		Children: []*page.Node{
			{
				Tag: "div",
				Children: []*page.Node{
					{Tag: "span", Text: "Customer ID"},
				},
			},
			{Tag: "div", Text: "CUST-4471"},
		},
	}
	loc := New(page.NewStaticContext(root, nil))
	assert.Equal(t, "CUST-4471", loc.Locate([]string{"Customer ID"}))
}

func TestDefaultStrategies_Order(t *testing.T) {
	strategies := DefaultStrategies()
	require.Len(t, strategies, 4)
	assert.Equal(t, "exact_text", strategies[0].Name())
	assert.Equal(t, "partial_text", strategies[1].Name())
	assert.Equal(t, "attribute", strategies[2].Name())
	assert.Equal(t, "label_element", strategies[3].Name())
}

// recordingStrategy counts lookups so chain short-circuiting is observable.
type recordingStrategy struct {
	name  string
	el    page.Element
	found bool
	calls int
}

func (s *recordingStrategy) Name() string { return s.name }

func (s *recordingStrategy) Find(_ page.Context, _ string) (page.Element, bool) {
	s.calls++
	return s.el, s.found
}

func TestLocator_Locate_ShortCircuits(t *testing.T) {
	pg := detailPage().(*page.StaticContext)
	el, ok := pg.ByExactText("Date of Birth")
	require.True(t, ok)

	first := &recordingStrategy{name: "first", el: el, found: true}
	second := &recordingStrategy{name: "second"}

	loc := NewWithStrategies(pg, first, second)
	assert.Equal(t, "1985-03-12", loc.Locate([]string{"Date of Birth"}))
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}
