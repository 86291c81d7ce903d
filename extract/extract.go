// Package extract implements the heuristic field parsers that turn a parsed
// profile page into typed fragments, and the Extractor that assembles those
// fragments into a coprofile.CompanyProfile.
//
// Parsers are stateless functions over a coprofile.Node. They never fail:
// anything they cannot find or coerce comes back as nil or an empty slice.
// Each "try A, else B, else C" rule is an ordered slice of strategies so the
// fallback order can be read in one place.
package extract

import (
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/coprofile"
)

// Ensure Extractor implements coprofile.ProfileExtractor at compile time.
var _ coprofile.ProfileExtractor = (*Extractor)(nil)

// Extractor parses a page once and runs every field parser over it.
type Extractor struct {
	parser coprofile.MarkupParser
}

// NewExtractor creates an Extractor that builds trees with parser.
func NewExtractor(parser coprofile.MarkupParser) *Extractor {
	return &Extractor{parser: parser}
}

// Extract parses m and assembles the resulting CompanyProfile.
func (e *Extractor) Extract(m coprofile.Markup) *coprofile.CompanyProfile {
	doc := e.parser.Parse(m.HTML)

	basics := Basics(doc, m.URL)
	summary, investments, investors := Investments(doc)
	competitors := Competitors(doc)
	faq := FAQ(doc)

	return coprofile.Assemble(basics, summary, competitors, investments, faq, investors)
}

// textStrategy produces a candidate value from a node, reporting false when
// it has nothing to offer.
type textStrategy func(n coprofile.Node) (string, bool)

// firstText evaluates strategies in order and returns the first value found.
func firstText(n coprofile.Node, strategies ...textStrategy) *string {
	for _, strategy := range strategies {
		if s, ok := strategy(n); ok {
			return &s
		}
	}
	return nil
}

// selectText yields the text of the first element matching selector, if
// that text is non-empty. Later matches of the same selector are not tried.
func selectText(selector string) textStrategy {
	return func(n coprofile.Node) (string, bool) {
		el, ok := n.Find(selector)
		if !ok {
			return "", false
		}
		text := el.Text()
		return text, text != ""
	}
}

// selectTextContaining yields the text of the first element matching
// selector whose text contains substr.
func selectTextContaining(selector, substr string) textStrategy {
	return func(n coprofile.Node) (string, bool) {
		for _, el := range n.FindAll(selector) {
			if text := el.Text(); strings.Contains(text, substr) {
				return text, true
			}
		}
		return "", false
	}
}

// nodeStrategy locates a node relative to n.
type nodeStrategy func(n coprofile.Node) (coprofile.Node, bool)

func firstNode(n coprofile.Node, strategies ...nodeStrategy) (coprofile.Node, bool) {
	for _, strategy := range strategies {
		if found, ok := strategy(n); ok {
			return found, true
		}
	}
	return nil, false
}

// nodesStrategy lists candidate nodes relative to n.
type nodesStrategy func(n coprofile.Node) []coprofile.Node

// firstNodes returns the first non-empty result.
func firstNodes(n coprofile.Node, strategies ...nodesStrategy) []coprofile.Node {
	for _, strategy := range strategies {
		if nodes := strategy(n); len(nodes) > 0 {
			return nodes
		}
	}
	return nil
}

// optionalText returns the node's text, or nil when it is empty.
func optionalText(n coprofile.Node) *string {
	text := n.Text()
	if text == "" {
		return nil
	}
	return &text
}

// findTable returns the first table whose header cells satisfy match.
// Header cells are lower-cased before matching; tables without any th
// cells are skipped.
func findTable(doc coprofile.Node, match func(headers []string) bool) (coprofile.Node, bool) {
	for _, table := range doc.FindAll("table") {
		cells := table.FindAll("th")
		if len(cells) == 0 {
			continue
		}
		headers := make([]string, len(cells))
		for i, c := range cells {
			headers[i] = strings.ToLower(c.Text())
		}
		if match(headers) {
			return table, true
		}
	}
	return nil, false
}

// anyContains reports whether any header contains any of substrs.
func anyContains(headers []string, substrs ...string) bool {
	for _, h := range headers {
		for _, s := range substrs {
			if strings.Contains(h, s) {
				return true
			}
		}
	}
	return false
}

// ParseInt keeps only the ASCII digits of s and parses them as an integer.
// It returns nil when s has no digits or the digits overflow an int.
//
//	"1,967 (est.)" -> 1967
//	"n/a"          -> nil
func ParseInt(s string) *int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return nil
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return nil
	}
	return &n
}

// dateLayouts are tried in order; the first that parses wins.
var dateLayouts = []string{
	"2006-1-2",
	"2 Jan 2006",
	"Jan 2, 2006",
	"2006",
}

// isoDateTime is the layout dates are emitted in.
const isoDateTime = "2006-01-02T15:04:05"

// ParseDate parses a deal date in one of the supported layouts and returns
// it in ISO-8601 form, or nil when no layout matches.
func ParseDate(s string) *string {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		iso := t.Format(isoDateTime)
		return &iso
	}
	return nil
}
