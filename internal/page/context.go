// Package page defines the read surface the extraction core consumes from a
// rendered browser page, plus the playwright-backed session that produces it.
package page

import (
	"context"

	"github.com/rotisserie/eris"
)

// ErrNoSession indicates there is no active browser session behind a
// Context. It is the only extraction-time failure that aborts an
// investigation; everything else degrades to empty data.
var ErrNoSession = eris.New("page: no active session")

// Element is a handle to one rendered DOM element. Implementations return
// zero values rather than errors for detached or unreadable elements.
type Element interface {
	// Text returns the element's flattened text content.
	Text() string
	// Visible reports whether the element is rendered and displayed.
	Visible() bool
	// Next returns the element's next sibling, or nil when it has none.
	Next() Element
	// Parent returns the element's parent, or nil at the document root.
	Parent() Element
}

// Context exposes element lookup against one settled page. All methods are
// non-blocking queries over already-rendered content; waiting for readiness
// is the session's job, not the caller's.
type Context interface {
	// ByExactText finds the first element whose text equals s.
	ByExactText(s string) (Element, bool)
	// ByPartialText finds the first element whose text contains s,
	// case-insensitively.
	ByPartialText(s string) (Element, bool)
	// ByAttribute finds the first element whose id, name, or data-field
	// attribute contains the lowercased s.
	ByAttribute(s string) (Element, bool)
	// ByLabel finds the first <label> element whose text contains s.
	ByLabel(s string) (Element, bool)
	// SectionText returns the flattened text of the region under the
	// given section heading. ok is false when the heading is not visible
	// on the page; that is a normal condition, not an error.
	SectionText(heading string) (string, bool)
	// Active reports whether the underlying session is still usable.
	Active() bool
	// URL returns the current navigation location.
	URL() string
}

// Session owns one exclusive browser session for the duration of one
// investigation. Sessions must not be shared across concurrent
// investigations.
type Session interface {
	// Login authenticates against the portal. Failure is fatal to the
	// investigation and is not retried here.
	Login(ctx context.Context) error
	// SearchCustomer runs the portal's customer search and reports
	// whether a matching record page was reached.
	SearchCustomer(ctx context.Context, name string) (bool, error)
	// Context returns the page context for the current view.
	Context() Context
	Close() error
}
