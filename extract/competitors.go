package extract

import "github.com/fwojciec/coprofile"

// Competitors extracts the competitors table. Rows without a company name
// are dropped; cells after the location column are ignored.
func Competitors(doc coprofile.Node) []coprofile.CompetitorRecord {
	competitors := []coprofile.CompetitorRecord{}

	table, ok := findTable(doc, func(headers []string) bool {
		return anyContains(headers, "competitor", "company") && anyContains(headers, "location")
	})
	if !ok {
		return competitors
	}

	for _, row := range table.FindAll("tr") {
		cells := row.FindAll("td")
		if len(cells) < 3 {
			continue
		}
		name := cells[0].Text()
		if name == "" {
			continue
		}

		var link *string
		if a, ok := cells[0].Find("a[href]"); ok {
			href, _ := a.Attr("href")
			link = &href
		}

		competitors = append(competitors, coprofile.CompetitorRecord{
			CompanyName:     name,
			FinancingStatus: optionalText(cells[1]),
			Link:            link,
			Location:        optionalText(cells[2]),
		})
	}
	return competitors
}
