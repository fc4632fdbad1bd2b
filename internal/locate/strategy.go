package locate

import (
	"github.com/veritide/compliance-cli/internal/page"
)

// Strategy is one way of finding a labeled element on a page. Strategies
// are pure lookups; reading the adjacent value is the chain's job.
type Strategy interface {
	Name() string
	Find(pg page.Context, label string) (page.Element, bool)
}

// exactText matches an element whose text equals the label exactly.
type exactText struct{}

func (exactText) Name() string { return "exact_text" }

func (exactText) Find(pg page.Context, label string) (page.Element, bool) {
	return pg.ByExactText(label)
}

// partialText matches case-insensitively on a text substring.
type partialText struct{}

func (partialText) Name() string { return "partial_text" }

func (partialText) Find(pg page.Context, label string) (page.Element, bool) {
	return pg.ByPartialText(label)
}

// attribute matches elements whose identifiers contain the lowercased label.
type attribute struct{}

func (attribute) Name() string { return "attribute" }

func (attribute) Find(pg page.Context, label string) (page.Element, bool) {
	return pg.ByAttribute(label)
}

// labelElement matches an explicit <label> element for the field.
type labelElement struct{}

func (labelElement) Name() string { return "label_element" }

func (labelElement) Find(pg page.Context, label string) (page.Element, bool) {
	return pg.ByLabel(label)
}

// DefaultStrategies returns the fixed probe order: exact text first, then
// case-insensitive substring, then attribute heuristics, then explicit
// label elements.
func DefaultStrategies() []Strategy {
	return []Strategy{exactText{}, partialText{}, attribute{}, labelElement{}}
}
