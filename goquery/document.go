// Package goquery implements the coprofile markup interfaces on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/coprofile"
	"golang.org/x/net/html"
)

// Ensure Parser implements coprofile.MarkupParser at compile time.
var _ coprofile.MarkupParser = (*Parser)(nil)

// Ensure Node implements coprofile.Node at compile time.
var _ coprofile.Node = (*Node)(nil)

// Parser builds goquery documents from raw HTML.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses html into a document node. Input the HTML tokenizer rejects
// produces an empty document instead of an error.
func (p *Parser) Parse(s string) coprofile.Node {
	return Parse(s)
}

// Parse parses html into a document node. See Parser.Parse.
func Parse(s string) *Node {
	root, err := html.Parse(strings.NewReader(s))
	if err != nil {
		root = &html.Node{Type: html.DocumentNode}
	}
	return &Node{sel: goquery.NewDocumentFromNode(root).Selection}
}

// Node wraps a single-element goquery selection.
type Node struct {
	sel *goquery.Selection
}

// Find returns the first descendant matching selector.
func (n *Node) Find(selector string) (coprofile.Node, bool) {
	sel := n.sel.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return &Node{sel: sel}, true
}

// FindAll returns all descendants matching selector in document order.
func (n *Node) FindAll(selector string) []coprofile.Node {
	return wrap(n.sel.Find(selector))
}

// Children returns the direct child elements matching selector.
func (n *Node) Children(selector string) []coprofile.Node {
	return wrap(n.sel.ChildrenFiltered(selector))
}

// Text returns the text content with runs of whitespace collapsed.
func (n *Node) Text() string {
	return CleanText(n.sel.Text())
}

// RawText returns the text content unmodified.
func (n *Node) RawText() string {
	return n.sel.Text()
}

// Attr returns the named attribute value.
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

func wrap(sel *goquery.Selection) []coprofile.Node {
	nodes := make([]coprofile.Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &Node{sel: s})
	})
	return nodes
}

// CleanText collapses whitespace runs (including non-breaking spaces) to a
// single space and trims the result.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
