package page

import (
	"fmt"
	"strings"

	pw "github.com/playwright-community/playwright-go"
)

// pwContext implements Context over a live playwright page. All lookups
// resolve against already-settled content; the session is responsible for
// waiting out navigation before handing the context to the core.
type pwContext struct {
	page pw.Page
}

func (c pwContext) ByExactText(s string) (Element, bool) {
	return wrapLocator(c.page.GetByText(s, pw.PageGetByTextOptions{Exact: pw.Bool(true)}))
}

func (c pwContext) ByPartialText(s string) (Element, bool) {
	// Playwright text matching is case-insensitive substring by default.
	return wrapLocator(c.page.GetByText(s))
}

func (c pwContext) ByAttribute(s string) (Element, bool) {
	low := strings.ToLower(s)
	selector := fmt.Sprintf(`[id*="%s" i], [name*="%s" i], [data-field*="%s" i]`, low, low, low)
	return wrapLocator(c.page.Locator(selector))
}

func (c pwContext) ByLabel(s string) (Element, bool) {
	return wrapLocator(c.page.Locator("label", pw.PageLocatorOptions{HasText: s}))
}

func (c pwContext) SectionText(heading string) (string, bool) {
	loc := c.page.GetByText(heading, pw.PageGetByTextOptions{Exact: pw.Bool(true)}).First()
	if n, err := loc.Count(); err != nil || n == 0 {
		return "", false
	}
	if visible, err := loc.IsVisible(); err != nil || !visible {
		return "", false
	}

	// The heading's enclosing card holds the region content; fall back to
	// the immediate parent when no card-like ancestor exists.
	container := loc.Locator(`xpath=ancestor::*[self::section or contains(@class,"card") or contains(@class,"panel")][1]`)
	if n, err := container.Count(); err != nil || n == 0 {
		container = loc.Locator("xpath=..")
	}
	text, err := container.TextContent()
	if err != nil {
		return "", false
	}
	return text, true
}

func (c pwContext) Active() bool {
	return c.page != nil && !c.page.IsClosed()
}

func (c pwContext) URL() string {
	if c.page == nil {
		return ""
	}
	return c.page.URL()
}

// wrapLocator narrows a locator to its first match, reporting whether any
// match exists at all.
func wrapLocator(loc pw.Locator) (Element, bool) {
	n, err := loc.Count()
	if err != nil || n == 0 {
		return nil, false
	}
	return pwElement{loc: loc.First()}, true
}

// pwElement adapts one playwright locator to the Element interface.
// Read failures surface as zero values; the locator chain treats those the
// same as a miss.
type pwElement struct {
	loc pw.Locator
}

func (e pwElement) Text() string {
	text, err := e.loc.TextContent()
	if err != nil {
		return ""
	}
	return text
}

func (e pwElement) Visible() bool {
	visible, err := e.loc.IsVisible()
	return err == nil && visible
}

func (e pwElement) Next() Element {
	sibling := e.loc.Locator("xpath=following-sibling::*[1]")
	if n, err := sibling.Count(); err != nil || n == 0 {
		return nil
	}
	return pwElement{loc: sibling.First()}
}

func (e pwElement) Parent() Element {
	parent := e.loc.Locator("xpath=..")
	if n, err := parent.Count(); err != nil || n == 0 {
		return nil
	}
	return pwElement{loc: parent.First()}
}
