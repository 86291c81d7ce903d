package extract

import (
	"strings"

	"github.com/fwojciec/coprofile"
)

// Investments extracts the deal history table, the derived summary metrics
// and the investor names.
//
// FinancingRounds and Investments both carry the number of parsed deal rows
// and are nil when no rows were parsed.
func Investments(doc coprofile.Node) (coprofile.InvestmentsSummary, []coprofile.InvestmentRecord, []string) {
	records := investmentRecords(doc)

	var summary coprofile.InvestmentsSummary
	if n := len(records); n > 0 {
		rounds, investments := n, n
		summary.FinancingRounds = &rounds
		summary.Investments = &investments
	}

	summary.LatestDealType = latestDealType(doc)
	if summary.LatestDealType == nil && len(records) > 0 {
		summary.LatestDealType = records[0].DealType
	}

	return summary, records, investors(doc)
}

func investmentRecords(doc coprofile.Node) []coprofile.InvestmentRecord {
	records := []coprofile.InvestmentRecord{}

	table, ok := findTable(doc, func(headers []string) bool {
		return anyContains(headers, "deal") && anyContains(headers, "company", "target")
	})
	if !ok {
		return records
	}

	for _, row := range table.FindAll("tr") {
		cells := row.FindAll("td")
		if len(cells) < 3 {
			continue
		}

		record := coprofile.InvestmentRecord{
			CompanyName: optionalText(cells[0]),
			DealDate:    ParseDate(cells[1].Text()),
			DealSize:    optionalText(cells[2]),
		}
		if len(cells) > 3 {
			record.DealType = optionalText(cells[3])
		}
		if len(cells) > 4 {
			record.Industry = optionalText(cells[4])
		}
		records = append(records, record)
	}
	return records
}

// latestDealType reads the first "Latest deal type: X" badge in the deal
// summary region. The badge is matched and read lower-cased.
func latestDealType(doc coprofile.Node) *string {
	region, ok := doc.Find(`[data-test="deal-summary"]`)
	if !ok {
		return nil
	}
	for _, badge := range region.FindAll("span") {
		lower := strings.ToLower(badge.Text())
		if !strings.Contains(lower, "latest") || !strings.Contains(lower, "deal") {
			continue
		}
		_, value, found := strings.Cut(lower, ":")
		if !found {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			return &value
		}
	}
	return nil
}

// investors returns the link texts inside the investors region.
func investors(doc coprofile.Node) []string {
	names := []string{}
	region, ok := doc.Find(`[data-test="investors"]`)
	if !ok {
		return names
	}
	for _, a := range region.FindAll("a") {
		if name := a.Text(); name != "" {
			names = append(names, name)
		}
	}
	return names
}
