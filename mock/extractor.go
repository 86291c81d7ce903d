package mock

import "github.com/fwojciec/coprofile"

var _ coprofile.ProfileExtractor = (*ProfileExtractor)(nil)

// ProfileExtractor is a mock implementation of coprofile.ProfileExtractor.
type ProfileExtractor struct {
	ExtractFn func(m coprofile.Markup) *coprofile.CompanyProfile
}

func (e *ProfileExtractor) Extract(m coprofile.Markup) *coprofile.CompanyProfile {
	return e.ExtractFn(m)
}

var _ coprofile.MarkupParser = (*MarkupParser)(nil)

// MarkupParser is a mock implementation of coprofile.MarkupParser.
type MarkupParser struct {
	ParseFn func(html string) coprofile.Node
}

func (p *MarkupParser) Parse(html string) coprofile.Node {
	return p.ParseFn(html)
}
