package page

import "strings"

// Node is one element in a static page tree. Used by tests and fixtures to
// stand in for a live browser page.
type Node struct {
	Tag      string
	ID       string
	Name     string
	Text     string // the node's own text, before descendants
	Hidden   bool
	Children []*Node

	parent *Node
	index  int
}

// StaticContext implements Context over an in-memory node tree. It behaves
// like a settled page: queries never block and never fail.
type StaticContext struct {
	Root     *Node
	Sections map[string]string
	Location string
	Inactive bool
}

// NewStaticContext links parent pointers and returns a ready context.
func NewStaticContext(root *Node, sections map[string]string) *StaticContext {
	if root != nil {
		link(root, nil, 0)
	}
	return &StaticContext{Root: root, Sections: sections}
}

func link(n *Node, parent *Node, index int) {
	n.parent = parent
	n.index = index
	for i, c := range n.Children {
		link(c, n, i)
	}
}

type staticElement struct {
	node *Node
}

func (e staticElement) Text() string {
	var b strings.Builder
	flatten(e.node, &b)
	return b.String()
}

func flatten(n *Node, b *strings.Builder) {
	b.WriteString(n.Text)
	for _, c := range n.Children {
		flatten(c, b)
	}
}

func (e staticElement) Visible() bool {
	for n := e.node; n != nil; n = n.parent {
		if n.Hidden {
			return false
		}
	}
	return true
}

func (e staticElement) Next() Element {
	p := e.node.parent
	if p == nil || e.node.index+1 >= len(p.Children) {
		return nil
	}
	return staticElement{node: p.Children[e.node.index+1]}
}

func (e staticElement) Parent() Element {
	if e.node.parent == nil {
		return nil
	}
	return staticElement{node: e.node.parent}
}

func (c *StaticContext) find(match func(*Node) bool) (Element, bool) {
	if c.Root == nil {
		return nil, false
	}
	var walk func(*Node) *Node
	walk = func(n *Node) *Node {
		if match(n) {
			return n
		}
		for _, child := range n.Children {
			if found := walk(child); found != nil {
				return found
			}
		}
		return nil
	}
	if n := walk(c.Root); n != nil {
		return staticElement{node: n}, true
	}
	return nil, false
}

func (c *StaticContext) ByExactText(s string) (Element, bool) {
	return c.find(func(n *Node) bool {
		return strings.TrimSpace(n.Text) == s
	})
}

func (c *StaticContext) ByPartialText(s string) (Element, bool) {
	needle := strings.ToLower(s)
	return c.find(func(n *Node) bool {
		return strings.Contains(strings.ToLower(n.Text), needle)
	})
}

func (c *StaticContext) ByAttribute(s string) (Element, bool) {
	needle := strings.ToLower(s)
	return c.find(func(n *Node) bool {
		return strings.Contains(strings.ToLower(n.ID), needle) ||
			strings.Contains(strings.ToLower(n.Name), needle)
	})
}

func (c *StaticContext) ByLabel(s string) (Element, bool) {
	needle := strings.ToLower(s)
	return c.find(func(n *Node) bool {
		return n.Tag == "label" && strings.Contains(strings.ToLower(n.Text), needle)
	})
}

func (c *StaticContext) SectionText(heading string) (string, bool) {
	text, ok := c.Sections[heading]
	return text, ok
}

func (c *StaticContext) Active() bool { return !c.Inactive }

func (c *StaticContext) URL() string { return c.Location }
