package extract

import (
	"encoding/json"
	"strings"

	"github.com/fwojciec/coprofile"
)

// organizationTypes are the structured-data @type values describing a company.
var organizationTypes = map[string]bool{
	"Organization": true,
	"Corporation":  true,
}

// socialDomains mark a hyperlink as a social profile. Matching is a
// case-insensitive substring test on the whole href.
var socialDomains = []string{"facebook.com", "linkedin.com", "twitter.com", "x.com"}

// Fallback selectors, most specific first.
var (
	nameSelectors = []textStrategy{
		selectText(`h1[data-test="company-name"]`),
		selectText(`h1.company-name`),
		selectText(`h1`),
	}
	descriptionSelectors = []textStrategy{
		selectText(`p[data-test="company-description"]`),
		selectText(`p.company-description`),
	}
)

// Basics extracts the company facts from doc. url is copied into the result
// unchanged.
func Basics(doc coprofile.Node, url string) *coprofile.CompanyBasics {
	org := organization(doc)

	b := &coprofile.CompanyBasics{
		URL:                url,
		ID:                 firstText(doc, org.field("@id")),
		CompanyName:        firstText(doc, append([]textStrategy{org.field("name")}, nameSelectors...)...),
		Description:        firstText(doc, append([]textStrategy{org.field("description")}, descriptionSelectors...)...),
		CompanySocials:     socials(doc),
		ContactInformation: contacts(doc),
	}
	scanFacts(doc, b)

	return b
}

// structuredData is a decoded JSON-LD object.
type structuredData map[string]any

// field yields the named member when it is a non-empty string.
func (d structuredData) field(name string) textStrategy {
	return func(coprofile.Node) (string, bool) {
		s, ok := d[name].(string)
		return s, ok && s != ""
	}
}

// organization returns the first JSON-LD object typed as an Organization or
// Corporation, either at the root of a script block or inside a root array.
// Blocks that are not valid JSON are skipped.
func organization(doc coprofile.Node) structuredData {
	for _, script := range doc.FindAll(`script[type="application/ld+json"]`) {
		var data any
		if err := json.Unmarshal([]byte(script.RawText()), &data); err != nil {
			continue
		}
		switch v := data.(type) {
		case map[string]any:
			if isOrganization(v) {
				return v
			}
		case []any:
			for _, item := range v {
				if obj, ok := item.(map[string]any); ok && isOrganization(obj) {
					return obj
				}
			}
		}
	}
	return structuredData{}
}

func isOrganization(obj map[string]any) bool {
	t, _ := obj["@type"].(string)
	return organizationTypes[t]
}

// factRule maps a key/value row onto one field of CompanyBasics.
type factRule struct {
	matches func(label string) bool
	isSet   func(b *coprofile.CompanyBasics) bool
	set     func(b *coprofile.CompanyBasics, value string)
}

// factRules are checked in order; a row is consumed by the first rule whose
// label matches and whose field is still unset.
var factRules = []factRule{
	{
		matches: labelContains("founded"),
		isSet:   func(b *coprofile.CompanyBasics) bool { return b.YearFounded != nil },
		set:     func(b *coprofile.CompanyBasics, v string) { b.YearFounded = ParseInt(v) },
	},
	{
		matches: labelContains("status", "ownership"),
		isSet:   func(b *coprofile.CompanyBasics) bool { return b.Status != nil },
		set: func(b *coprofile.CompanyBasics, v string) {
			if v != "" {
				b.Status = &v
			}
		},
	},
	{
		matches: labelContains("employees"),
		isSet:   func(b *coprofile.CompanyBasics) bool { return b.Employees != nil },
		set:     func(b *coprofile.CompanyBasics, v string) { b.Employees = ParseInt(v) },
	},
}

func labelContains(substrs ...string) func(string) bool {
	return func(label string) bool {
		for _, s := range substrs {
			if strings.Contains(label, s) {
				return true
			}
		}
		return false
	}
}

// scanFacts reads definition lists and table rows as label/value pairs.
func scanFacts(doc coprofile.Node, b *coprofile.CompanyBasics) {
	for _, row := range doc.FindAll("dl, table tr") {
		label, ok := row.Find("dt, th")
		if !ok {
			continue
		}
		value, ok := row.Find("dd, td")
		if !ok {
			continue
		}

		labelText := strings.ToLower(label.Text())
		for _, rule := range factRules {
			if rule.matches(labelText) && !rule.isSet(b) {
				rule.set(b, value.Text())
				break
			}
		}
	}
}

// socials returns every social profile link in document order.
func socials(doc coprofile.Node) []coprofile.Social {
	out := []coprofile.Social{}
	for _, a := range doc.FindAll("a[href]") {
		href, _ := a.Attr("href")
		if !isSocialLink(href) {
			continue
		}
		out = append(out, coprofile.Social{Domain: linkDomain(href), Link: href})
	}
	return out
}

func isSocialLink(href string) bool {
	lower := strings.ToLower(href)
	for _, domain := range socialDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}
	return false
}

// linkDomain returns the host segment of an absolute link, or the link
// itself when it has no scheme.
func linkDomain(href string) string {
	if !strings.Contains(href, "://") {
		return href
	}
	return strings.Split(href, "/")[2]
}

// contacts returns list items tagged with a data-type or data-label marker.
func contacts(doc coprofile.Node) []coprofile.Contact {
	out := []coprofile.Contact{}
	for _, li := range doc.FindAll("ul li[data-type], ul li[data-label]") {
		value := li.Text()
		if value == "" {
			continue
		}
		out = append(out, coprofile.Contact{Type: contactType(li), Value: value})
	}
	return out
}

func contactType(li coprofile.Node) string {
	for _, attr := range []string{"data-type", "data-label"} {
		if v, _ := li.Attr(attr); v != "" {
			return v
		}
	}
	return "Unknown"
}
