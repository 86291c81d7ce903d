package extract

import (
	"strings"

	"github.com/fwojciec/coprofile"
)

var (
	faqContainers = []nodeStrategy{
		func(doc coprofile.Node) (coprofile.Node, bool) {
			return doc.Find(`[data-test="faq-section"]`)
		},
		faqHeadedSection,
	}
	faqItems = []nodesStrategy{
		func(c coprofile.Node) []coprofile.Node { return c.FindAll(`[data-test="faq-item"]`) },
		func(c coprofile.Node) []coprofile.Node { return c.Children("div") },
	}
	faqQuestions = []textStrategy{
		selectText(`h3[data-test="faq-question"], h4[data-test="faq-question"]`),
		selectTextContaining("h3, h4", "?"),
	}
	faqAnswers = []textStrategy{
		selectText(`p[data-test="faq-answer"]`),
		selectText("p"),
	}
)

// FAQ extracts the FAQ section as a flat sequence of entries. Each item
// contributes its question (if any) followed by its answer (if any).
func FAQ(doc coprofile.Node) []coprofile.FAQEntry {
	entries := []coprofile.FAQEntry{}

	container, ok := firstNode(doc, faqContainers...)
	if !ok {
		return entries
	}

	for _, item := range firstNodes(container, faqItems...) {
		if q := firstText(item, faqQuestions...); q != nil {
			entries = append(entries, coprofile.FAQEntry{Type: coprofile.FAQQuestion, Value: *q})
		}
		if a := firstText(item, faqAnswers...); a != nil {
			entries = append(entries, coprofile.FAQEntry{Type: coprofile.FAQAnswer, Value: *a})
		}
	}
	return entries
}

// faqHeadedSection finds the first section whose leading h2/h3 mentions FAQ.
func faqHeadedSection(doc coprofile.Node) (coprofile.Node, bool) {
	for _, section := range doc.FindAll("section") {
		heading, ok := section.Find("h2, h3")
		if ok && strings.Contains(strings.ToLower(heading.Text()), "faq") {
			return section, true
		}
	}
	return nil, false
}
