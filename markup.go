package coprofile

// Markup is the raw HTML of a fetched profile page together with the URL it
// was fetched from. Parsers never modify it.
type Markup struct {
	URL  string
	HTML string
}

// Node is a read-only view of an element (or the document root) in a parsed
// markup tree. Selectors are CSS selector strings.
type Node interface {
	// Find returns the first descendant matching selector in document order.
	Find(selector string) (Node, bool)

	// FindAll returns every descendant matching selector in document order.
	FindAll(selector string) []Node

	// Children returns the direct child elements matching selector.
	Children(selector string) []Node

	// Text returns the node's text content with whitespace collapsed and
	// surrounding whitespace trimmed.
	Text() string

	// RawText returns the node's text content exactly as it appears in the
	// markup, e.g. the body of a script element.
	RawText() string

	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)
}

// MarkupParser builds a queryable tree from raw HTML.
// Parse never fails: input that cannot be parsed yields an empty document.
type MarkupParser interface {
	Parse(html string) Node
}

// ProfileExtractor turns a fetched page into a canonical CompanyProfile.
// Implementations must be safe for concurrent use.
type ProfileExtractor interface {
	Extract(m Markup) *CompanyProfile
}
