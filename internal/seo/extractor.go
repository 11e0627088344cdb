package seo

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"seoengine/internal/domain"
)

// PageFeatures are the low-level parsed signals of a single page. All
// fields are derived from the HTML alone; a page that cannot be parsed
// yields the zero value, never an error.
type PageFeatures struct {
	Title        string
	TitlePresent bool

	H1Count       int
	ImageCount    int
	ImagesWithAlt int
	WordCount     int

	// Lowercased visible text, kept for site-level pattern checks that
	// depend on run context (e.g. brand tokens derived from the seed host).
	Text string

	MetaDescription bool
	Viewport        bool
	Noindex         bool
	HreflangEnIN    bool

	PrivacyLink bool
	TermsLink   bool
	AboutLink   bool

	// Trust / compliance text patterns.
	IRDAIRegistration bool
	LegalDetails      bool
	ClaimSettlement   bool
	RiskDisclaimer    bool
	PrivacyPolicy     bool
	TermsConditions   bool
	Grievance         bool
	PhysicalAddress   bool

	// Expertise markers.
	Expertise  bool
	Leadership bool
	Awards     bool

	FAQ        bool
	Calculator bool

	// Locale markers.
	INRCurrency bool
	TaxKeywords bool
	FreshYears  bool

	// schema.org type markers, matched on the raw markup.
	SchemaOrganization bool
	SchemaProduct      bool
	SchemaFAQ          bool
	SchemaBreadcrumb   bool
	SchemaReview       bool
}

var (
	reIRDAI      = regexp.MustCompile(`irdai|registration no|reg\.`)
	reLegal      = regexp.MustCompile(`cin|corporate identity|registered office`)
	reClaim      = regexp.MustCompile(`claim settlement|csr|claims paid`)
	reRisk       = regexp.MustCompile(`risk factors|disclaimer|terms.*conditions`)
	rePrivacy    = regexp.MustCompile(`privacy policy`)
	reTerms      = regexp.MustCompile(`terms of use`)
	reGrievance  = regexp.MustCompile(`grievance|contact us|customer care|support`)
	reAddress    = regexp.MustCompile(`pune|mumbai|road|floor|tower`)
	reExpertise  = regexp.MustCompile(`years of trust|legacy|expert|award`)
	reLeadership = regexp.MustCompile(`leadership|board of directors|management`)
	reAwards     = regexp.MustCompile(`award|winner|certified|iso`)
	reINR        = regexp.MustCompile(`₹|inr|rs\.|rupees`)
	reTax        = regexp.MustCompile(`80c|10\(10d\)|tax saving|income tax|section`)
	reFresh      = regexp.MustCompile(`2024|2025|2026`)
)

// ExtractPageFeatures maps one page's HTML to its parsed features. It is a
// pure function and total over arbitrary input.
func ExtractPageFeatures(rec domain.PageRecord) PageFeatures {
	var f PageFeatures

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Content))
	if err != nil {
		return f
	}

	title := doc.Find("title").First()
	if title.Length() > 0 {
		f.Title = strings.TrimSpace(title.Text())
		f.TitlePresent = f.Title != ""
	}

	f.H1Count = doc.Find("h1").Length()

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		f.ImageCount++
		if alt, ok := s.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			f.ImagesWithAlt++
		}
	})

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && desc != "" {
		f.MetaDescription = true
	}
	f.Viewport = doc.Find(`meta[name="viewport"]`).Length() > 0

	doc.Find("link[hreflang]").Each(func(_ int, s *goquery.Selection) {
		if v, _ := s.Attr("hreflang"); strings.EqualFold(v, "en-in") {
			f.HreflangEnIN = true
		}
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.ToLower(href)
		switch {
		case strings.Contains(href, "privacy"):
			f.PrivacyLink = true
		case strings.Contains(href, "terms"):
			f.TermsLink = true
		case strings.Contains(href, "about"):
			f.AboutLink = true
		}
	})

	rawLower := strings.ToLower(rec.Content)
	f.Noindex = strings.Contains(rawLower, "noindex")

	// schema.org markers are matched on the raw markup because they live
	// inside JSON-LD script blocks as often as in microdata attributes.
	f.SchemaOrganization = strings.Contains(rec.Content, "Organization")
	f.SchemaProduct = strings.Contains(rec.Content, "Product") || strings.Contains(rec.Content, "InsurancePlan")
	f.SchemaFAQ = strings.Contains(rec.Content, "FAQPage")
	f.SchemaBreadcrumb = strings.Contains(rec.Content, "BreadcrumbList")
	f.SchemaReview = strings.Contains(rec.Content, "Review")

	doc.Find("script, style").Remove()
	body := doc.Find("body")
	var text string
	if body.Length() > 0 {
		text = body.Text()
	} else {
		text = doc.Text()
	}
	f.WordCount = len(strings.Fields(text))
	f.Text = strings.ToLower(text)

	f.IRDAIRegistration = reIRDAI.MatchString(f.Text)
	f.LegalDetails = reLegal.MatchString(f.Text)
	f.ClaimSettlement = reClaim.MatchString(f.Text)
	f.RiskDisclaimer = reRisk.MatchString(f.Text)
	f.PrivacyPolicy = f.PrivacyLink || rePrivacy.MatchString(f.Text)
	f.TermsConditions = f.TermsLink || reTerms.MatchString(f.Text)
	f.Grievance = reGrievance.MatchString(f.Text)
	f.PhysicalAddress = reAddress.MatchString(f.Text)

	f.Expertise = reExpertise.MatchString(f.Text)
	f.Leadership = reLeadership.MatchString(f.Text)
	f.Awards = reAwards.MatchString(f.Text)

	f.FAQ = strings.Contains(f.Text, "faq")
	f.Calculator = strings.Contains(f.Text, "calculator")

	f.INRCurrency = reINR.MatchString(f.Text)
	f.TaxKeywords = reTax.MatchString(f.Text)
	f.FreshYears = reFresh.MatchString(f.Text)

	return f
}
