package extract_test

import (
	"testing"

	"github.com/fwojciec/coprofile"
	"github.com/fwojciec/coprofile/extract"
	"github.com/fwojciec/coprofile/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const badiaURL = "https://pitchbook.com/profiles/company/361831-87"

func TestBasics(t *testing.T) {
	t.Parallel()

	t.Run("extracts facts from structured data and tables", func(t *testing.T) {
		t.Parallel()

		b := extract.Basics(goquery.Parse(profilePage), badiaURL)

		assert.Equal(t, badiaURL, b.URL)
		assert.Equal(t, strPtr("361831-87"), b.ID)
		assert.Equal(t, strPtr("Badia Spices"), b.CompanyName)
		assert.Equal(t, strPtr("Manufacturer and distributor of food ingredients based in Doral, Florida."), b.Description)
		assert.Equal(t, intPtr(1967), b.YearFounded)
		assert.Equal(t, strPtr("Private"), b.Status)
		assert.Equal(t, intPtr(101), b.Employees)
		assert.GreaterOrEqual(t, len(b.CompanySocials), 3)
		require.Len(t, b.ContactInformation, 1)
		assert.Equal(t, coprofile.Contact{Type: "Website", Value: "www.badiaspices.com"}, b.ContactInformation[0])
	})

	t.Run("never populates placeholder fields", func(t *testing.T) {
		t.Parallel()

		b := extract.Basics(goquery.Parse(profilePage), badiaURL)

		assert.Nil(t, b.LatestDealType)
		assert.Nil(t, b.FinancingRounds)
		assert.Nil(t, b.Investments)
		assert.Nil(t, b.Patents)
		assert.Nil(t, b.ResearchAnalysis)
		assert.Nil(t, b.PatentActivity)
	})

	t.Run("structured data inside a list", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">[
  {"@type": "WebPage", "name": "Profile page"},
  {"@type": "Corporation", "name": "Acme Corp", "@id": "42"}
]</script><h1>Heading Name</h1>`

		b := extract.Basics(goquery.Parse(html), "u")

		assert.Equal(t, strPtr("Acme Corp"), b.CompanyName)
		assert.Equal(t, strPtr("42"), b.ID)
	})

	t.Run("structured data values are kept verbatim", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">{"@type": "Organization", "name": "Badia  Spices", "description": "A B   C"}</script>`

		b := extract.Basics(goquery.Parse(html), "u")

		assert.Equal(t, strPtr("Badia  Spices"), b.CompanyName)
		assert.Equal(t, strPtr("A B   C"), b.Description)
	})

	t.Run("skips malformed and unrelated structured data", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">{not json</script>
<script type="application/ld+json">{"@type": "Person", "name": "Jane"}</script>
<script type="application/ld+json">{"@type": "Organization", "name": "Second Block Inc"}</script>`

		b := extract.Basics(goquery.Parse(html), "u")

		assert.Equal(t, strPtr("Second Block Inc"), b.CompanyName)
		assert.Nil(t, b.ID)
	})

	t.Run("name falls back through heading selectors", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			html string
			want *string
		}{
			{
				name: "data-test attribute first",
				html: `<h1>Generic</h1><h1 class="company-name">By Class</h1><h1 data-test="company-name">By Attr</h1>`,
				want: strPtr("By Attr"),
			},
			{
				name: "class before generic heading",
				html: `<h1>Generic</h1><h1 class="title company-name">By Class</h1>`,
				want: strPtr("By Class"),
			},
			{
				name: "generic heading last",
				html: `<h1>Generic</h1>`,
				want: strPtr("Generic"),
			},
			{
				name: "empty structured name is ignored",
				html: `<script type="application/ld+json">{"@type": "Organization", "name": ""}</script><h1>Generic</h1>`,
				want: strPtr("Generic"),
			},
			{
				name: "empty first match does not try later matches",
				html: `<h1> </h1><h1>Second</h1>`,
				want: nil,
			},
			{
				name: "nothing found",
				html: `<h2>Not a name</h2>`,
				want: nil,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				b := extract.Basics(goquery.Parse(tt.html), "u")
				assert.Equal(t, tt.want, b.CompanyName)
			})
		}
	})

	t.Run("description falls back to marked paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<p>intro</p><p class="company-description">By class</p><p data-test="company-description">By attr</p>`

		b := extract.Basics(goquery.Parse(html), "u")

		assert.Equal(t, strPtr("By attr"), b.Description)
	})

	t.Run("first matching row wins for each fact", func(t *testing.T) {
		t.Parallel()

		html := `<dl><dt>Year Founded</dt><dd>1,967 (est.)</dd></dl>
<table>
  <tr><th>Founded</th><td>2001</td></tr>
  <tr><th>Status</th><td>Public</td></tr>
  <tr><th>Ownership</th><td>Private</td></tr>
  <tr><th>Employees</th><td>about 1,234 employees</td></tr>
  <tr><th>Employees</th><td>5</td></tr>
</table>`

		b := extract.Basics(goquery.Parse(html), "u")

		assert.Equal(t, intPtr(1967), b.YearFounded)
		assert.Equal(t, strPtr("Public"), b.Status)
		assert.Equal(t, intPtr(1234), b.Employees)
	})

	t.Run("non-numeric facts coerce to nil", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><th>Founded</th><td>unknown</td></tr><tr><th>Employees</th><td>n/a</td></tr></table>`

		b := extract.Basics(goquery.Parse(html), "u")

		assert.Nil(t, b.YearFounded)
		assert.Nil(t, b.Employees)
	})

	t.Run("rows without a value cell are ignored", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><th>Founded</th></tr><tr><td>1999</td></tr></table>`

		b := extract.Basics(goquery.Parse(html), "u")

		assert.Nil(t, b.YearFounded)
	})

	t.Run("collects social links in document order without dedup", func(t *testing.T) {
		t.Parallel()

		html := `<a href="https://example.com">home</a>
<a href="https://X.com/acme">x</a>
<a href="linkedin.com/company/acme">relative</a>
<a href="https://x.com/acme">x again</a>`

		b := extract.Basics(goquery.Parse(html), "u")

		assert.Equal(t, []coprofile.Social{
			{Domain: "X.com", Link: "https://X.com/acme"},
			{Domain: "linkedin.com/company/acme", Link: "linkedin.com/company/acme"},
			{Domain: "x.com", Link: "https://x.com/acme"},
		}, b.CompanySocials)
	})

	t.Run("contact items use marker attributes", func(t *testing.T) {
		t.Parallel()

		html := `<ul>
  <li data-type="Website">www.example.com</li>
  <li data-label="Phone">+1 555 0100</li>
  <li data-type="" data-label="">mystery</li>
  <li data-type="Email"> </li>
  <li>unmarked</li>
</ul>`

		b := extract.Basics(goquery.Parse(html), "u")

		assert.Equal(t, []coprofile.Contact{
			{Type: "Website", Value: "www.example.com"},
			{Type: "Phone", Value: "+1 555 0100"},
			{Type: "Unknown", Value: "mystery"},
		}, b.ContactInformation)
	})

	t.Run("empty markup", func(t *testing.T) {
		t.Parallel()

		b := extract.Basics(goquery.Parse(""), "u")

		assert.Equal(t, "u", b.URL)
		assert.Nil(t, b.ID)
		assert.Nil(t, b.CompanyName)
		assert.Nil(t, b.Description)
		assert.Empty(t, b.CompanySocials)
		assert.NotNil(t, b.CompanySocials)
		assert.Empty(t, b.ContactInformation)
	})
}
