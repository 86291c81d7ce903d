package coprofile

// Social is a link to one of the company's social network profiles.
type Social struct {
	Domain string `json:"domain"`
	Link   string `json:"link"`
}

// Contact is a typed piece of contact information such as a website or phone.
type Contact struct {
	Type  string `json:"Type"`
	Value string `json:"value"`
}

// CompanyBasics holds the facts extracted from the page header, the
// structured-data block and the key/value tables.
//
// LatestDealType, FinancingRounds, Investments, Patents, ResearchAnalysis
// and PatentActivity are never populated by the basics parser. They exist so
// the assembler can fall back to them when the investments summary is empty.
type CompanyBasics struct {
	URL                string
	ID                 *string
	CompanyName        *string
	CompanySocials     []Social
	YearFounded        *int
	Status             *string
	Employees          *int
	LatestDealType     *string
	FinancingRounds    *int
	Investments        *int
	Description        *string
	ContactInformation []Contact
	Patents            any
	ResearchAnalysis   any
	PatentActivity     any
}

// InvestmentsSummary holds the deal metrics derived from the investments
// table and summary badges.
type InvestmentsSummary struct {
	LatestDealType  *string
	FinancingRounds *int
	Investments     *int
}

// InvestmentRecord is one row of the company's investment history.
// DealDate is an ISO-8601 string; DealSize is kept verbatim.
type InvestmentRecord struct {
	CompanyName *string `json:"company_name"`
	DealDate    *string `json:"deal_date"`
	DealSize    *string `json:"deal_size"`
	DealType    *string `json:"deal_type"`
	Industry    *string `json:"industry"`
}

// CompetitorRecord is one row of the competitors table.
type CompetitorRecord struct {
	CompanyName     string  `json:"company_name"`
	FinancingStatus *string `json:"financing_status"`
	Link            *string `json:"link"`
	Location        *string `json:"location"`
}

// FAQType distinguishes questions from answers in the FAQ sequence.
type FAQType string

// FAQ entry types.
const (
	FAQQuestion FAQType = "Question"
	FAQAnswer   FAQType = "Answer"
)

// FAQEntry is a single question or answer. Questions and answers are kept as
// a flat sequence rather than pairs.
type FAQEntry struct {
	Type  FAQType `json:"type"`
	Value string  `json:"value"`
}

// CompanyProfile is the canonical record produced for one profile page.
// Every field is always serialized: absent scalars become null and absent
// sequences become empty arrays.
type CompanyProfile struct {
	URL                string             `json:"url"`
	ID                 *string            `json:"id"`
	CompanyName        *string            `json:"company_name"`
	CompanySocials     []Social           `json:"company_socials"`
	YearFounded        *int               `json:"year_founded"`
	Status             *string            `json:"status"`
	Employees          *int               `json:"employees"`
	LatestDealType     *string            `json:"latest_deal_type"`
	FinancingRounds    *int               `json:"financing_rounds"`
	Investments        *int               `json:"investments"`
	Description        *string            `json:"description"`
	ContactInformation []Contact          `json:"contact_information"`
	Patents            any                `json:"patents"`
	Competitors        []CompetitorRecord `json:"competitors"`
	ResearchAnalysis   any                `json:"research_analysis"`
	PatentActivity     any                `json:"patent_activity"`
	AllInvestments     []InvestmentRecord `json:"all_investments"`
	FAQ                []FAQEntry         `json:"faq"`
	Investors          []string           `json:"investors"`
}

// Assemble merges the parser fragments for one page into a CompanyProfile.
//
// The deal metrics come from the investments summary when present and fall
// back to the matching basics fields otherwise. Sequence fields are never
// nil. Assemble does not modify its arguments.
func Assemble(
	basics *CompanyBasics,
	summary InvestmentsSummary,
	competitors []CompetitorRecord,
	investments []InvestmentRecord,
	faq []FAQEntry,
	investors []string,
) *CompanyProfile {
	if basics == nil {
		basics = &CompanyBasics{}
	}

	return &CompanyProfile{
		URL:                basics.URL,
		ID:                 basics.ID,
		CompanyName:        basics.CompanyName,
		CompanySocials:     orEmpty(basics.CompanySocials),
		YearFounded:        basics.YearFounded,
		Status:             basics.Status,
		Employees:          basics.Employees,
		LatestDealType:     coalesce(summary.LatestDealType, basics.LatestDealType),
		FinancingRounds:    coalesce(summary.FinancingRounds, basics.FinancingRounds),
		Investments:        coalesce(summary.Investments, basics.Investments),
		Description:        basics.Description,
		ContactInformation: orEmpty(basics.ContactInformation),
		Patents:            basics.Patents,
		Competitors:        orEmpty(competitors),
		ResearchAnalysis:   basics.ResearchAnalysis,
		PatentActivity:     basics.PatentActivity,
		AllInvestments:     orEmpty(investments),
		FAQ:                orEmpty(faq),
		Investors:          orEmpty(investors),
	}
}

// coalesce returns the first non-nil pointer.
func coalesce[T any](ptrs ...*T) *T {
	for _, p := range ptrs {
		if p != nil {
			return p
		}
	}
	return nil
}

// orEmpty returns a copy of s, or an empty non-nil slice when s is empty.
func orEmpty[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// ProfileWriter persists a batch of profiles.
type ProfileWriter interface {
	WriteAll(profiles []*CompanyProfile) error
}
