// Package locate finds labeled field values on rendered pages using an
// ordered chain of lookup strategies evaluated short-circuit.
package locate

import (
	"strings"

	"go.uber.org/zap"

	"github.com/veritide/compliance-cli/internal/page"
)

// Locator probes a page for the value adjacent to a labeled element.
// Strategies are tried in order per label; the first non-empty value found
// by any (label, strategy, position) combination wins.
type Locator struct {
	pg         page.Context
	strategies []Strategy
}

// New creates a Locator with the default strategy order.
func New(pg page.Context) *Locator {
	return &Locator{pg: pg, strategies: DefaultStrategies()}
}

// NewWithStrategies creates a Locator with a custom strategy chain.
func NewWithStrategies(pg page.Context, strategies ...Strategy) *Locator {
	return &Locator{pg: pg, strategies: strategies}
}

// Locate tries each label in priority order against the strategy chain and
// returns the first non-empty adjacent value. Labels should be ordered
// most-specific-first so "Date of Birth" beats a generic "DOB" when both
// could match. Returns "" when every combination misses; a miss is never
// an error.
func (l *Locator) Locate(labels []string) string {
	for _, label := range labels {
		for _, s := range l.strategies {
			el, ok := s.Find(l.pg, label)
			if !ok || el == nil || !el.Visible() {
				continue
			}
			if v := adjacentValue(el); v != "" {
				zap.L().Debug("locate: field value found",
					zap.String("label", label),
					zap.String("strategy", s.Name()),
				)
				return v
			}
		}
	}
	return ""
}

// adjacentValue reads the value next to a matched label element, trying the
// element's next sibling first, then the parent's next sibling.
func adjacentValue(el page.Element) string {
	if next := el.Next(); next != nil {
		if v := strings.TrimSpace(next.Text()); v != "" {
			return v
		}
	}
	if parent := el.Parent(); parent != nil {
		if next := parent.Next(); next != nil {
			if v := strings.TrimSpace(next.Text()); v != "" {
				return v
			}
		}
	}
	return ""
}
