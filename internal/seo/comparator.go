package seo

import (
	"fmt"
	"math"
	"strconv"

	"seoengine/internal/domain"
)

// Gap statuses and technical-debt labels.
const (
	StatusOptimized = "Optimized"
	StatusWarning   = "Warning"

	TechDebtHigh = "High"
	TechDebtLow  = "Low"
)

// Authority radar fallback when the provider reports no figure.
const unknownAuthorityScore = 50.0

type paramKind int

const (
	numericParam paramKind = iota
	boolParam
)

// paramBinding binds one gap-table row to typed accessors over the record.
// Classification runs on the typed values; unit is display-only.
type paramBinding struct {
	label         string
	unit          string
	kind          paramKind
	lowerIsBetter bool
	num           func(*domain.SiteMetricsRecord) float64
	flag          func(*domain.SiteMetricsRecord) bool
}

func derefF(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefI(p *int) float64 {
	if p == nil {
		return 0
	}
	return float64(*p)
}

// gapTable is the fixed, ordered parameter list of the comparison report.
var gapTable = []paramBinding{
	// Domain
	{label: "Domain Authority", unit: "/100", kind: numericParam, num: func(r *domain.SiteMetricsRecord) float64 { return derefF(r.DomainAuthority.DomainAuthority) }},
	{label: "Backlinks", kind: numericParam, num: func(r *domain.SiteMetricsRecord) float64 { return derefI(r.DomainAuthority.TotalBacklinks) }},
	{label: "Referring Domains", kind: numericParam, num: func(r *domain.SiteMetricsRecord) float64 { return derefI(r.DomainAuthority.ReferringDomains) }},
	{label: "Organic Keywords", kind: numericParam, num: func(r *domain.SiteMetricsRecord) float64 { return derefI(r.DomainAuthority.OrganicKeywords) }},
	{label: "HTTPS Secured", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.DomainAuthority.HTTPSStatus }},

	// Crawlability
	{label: "Robots.txt", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.Crawlability.RobotsTxtExists }},
	{label: "XML Sitemap", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.Crawlability.XMLSitemapExists }},
	{label: "Orphan Pages", kind: numericParam, num: func(r *domain.SiteMetricsRecord) float64 { return float64(r.Crawlability.OrphanPages) }},
	{label: "Crawl Depth", kind: numericParam, num: func(r *domain.SiteMetricsRecord) float64 { return float64(r.Crawlability.CrawlDepth) }},

	// Content
	{label: "Avg Word Count", unit: " words", kind: numericParam, num: func(r *domain.SiteMetricsRecord) float64 { return float64(r.Content.AvgWordCount) }},
	{label: "Thin Content Ratio", unit: "%", kind: numericParam, lowerIsBetter: true, num: func(r *domain.SiteMetricsRecord) float64 { return r.Content.ThinContentRatio }},
	{label: "Readability Score", unit: "/1.0", kind: numericParam, num: func(r *domain.SiteMetricsRecord) float64 { return r.Content.ReadabilityScore }},
	{label: "FAQ Presence", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.Content.FAQPresence }},

	// YMYL trust
	{label: "IRDAI Reg. Display", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.YMYL.IRDAIRegistration }},
	{label: "Claim Settlement Ratio", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.YMYL.ClaimSettlementRatio }},
	{label: "Risk Disclaimer", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.YMYL.RiskDisclaimer }},
	{label: "Privacy Policy", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.YMYL.PrivacyPolicyQuality }},
	{label: "Contact/Grievance", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.YMYL.ContactGrievanceInfo }},

	// Technical
	{label: "Page Load Time", unit: "s", kind: numericParam, lowerIsBetter: true, num: func(r *domain.SiteMetricsRecord) float64 { return r.Technical.PageLoadTime }},
	{label: "TTFB", unit: "ms", kind: numericParam, num: func(r *domain.SiteMetricsRecord) float64 { return r.Technical.TTFB }},
	{label: "LCP Score", unit: "s", kind: numericParam, num: func(r *domain.SiteMetricsRecord) float64 { return r.Technical.LCPScore }},
	{label: "CLS Score", kind: numericParam, num: func(r *domain.SiteMetricsRecord) float64 { return r.Technical.CLSScore }},
	{label: "JS Bundle Size", unit: "KB", kind: numericParam, num: func(r *domain.SiteMetricsRecord) float64 { return r.Technical.JSBundleWeight }},

	// Mobile
	{label: "Mobile Responsiveness", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.Mobile.MobileResponsive }},
	{label: "Mobile Speed Score", unit: "/100", kind: numericParam, num: func(r *domain.SiteMetricsRecord) float64 { return r.Mobile.MobileSpeedScore }},
	{label: "Tap Target Spacing", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.Mobile.TapElementSpacing }},

	// India specific
	{label: "INR Currency Use", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.IndiaSpecific.INRCurrencyUse }},
	{label: "Tax Keywords (80C)", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.IndiaSpecific.IndiaTaxKeywords }},
	{label: "Hreflang en-IN", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.IndiaSpecific.HreflangEnIN }},

	// Structured data
	{label: "Organization Schema", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.SchemaData.OrganizationSchema }},
	{label: "Product/Plan Schema", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.SchemaData.ProductSchema }},
	{label: "FAQ Schema", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.SchemaData.FAQSchema }},

	// Meta signals
	{label: "Title Tag Optimized", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.MetaHTML.TitleLengthOptimized }},
	{label: "Meta Desc Presence", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.MetaHTML.MetaDescPresence }},
	{label: "H1 Hierarchy Valid", kind: boolParam, flag: func(r *domain.SiteMetricsRecord) bool { return r.MetaHTML.HeadingHierarchyValid }},
	{label: "Img Alt Coverage", unit: "%", kind: numericParam, num: func(r *domain.SiteMetricsRecord) float64 { return r.MetaHTML.ImageAltCoverage }},
}

// Compare produces the full comparison report between a baseline and a
// competitor record. It is pure and delivery-mode-agnostic: both the
// synchronous response path and the progress stream consume it.
func Compare(baseline, competitor domain.SiteMetricsRecord) domain.ComparisonReport {
	details := make([]domain.GapEntry, 0, len(gapTable))
	gaps := 0

	for _, p := range gapTable {
		entry := domain.GapEntry{Label: p.label, Status: StatusOptimized}
		switch p.kind {
		case numericParam:
			bv, cv := p.num(&baseline), p.num(&competitor)
			if p.lowerIsBetter {
				if bv > cv {
					entry.Status = StatusWarning
				}
			} else if bv < cv {
				entry.Status = StatusWarning
			}
			entry.Baseline = formatNumber(bv) + p.unit
			entry.Competitor = formatNumber(cv) + p.unit
		case boolParam:
			bv, cv := p.flag(&baseline), p.flag(&competitor)
			if !bv && cv {
				entry.Status = StatusWarning
			}
			entry.Baseline = formatBool(bv)
			entry.Competitor = formatBool(cv)
		}
		if entry.Status == StatusWarning {
			gaps++
		}
		details = append(details, entry)
	}

	techDebt := TechDebtLow
	if baseline.Technical.PageLoadTime > slowLoadSeconds || gaps > 3 {
		techDebt = TechDebtHigh
	}

	return domain.ComparisonReport{
		OverallScore:    fmt.Sprintf("%d/100", int(baseline.OverallScore)),
		CompetitorScore: fmt.Sprintf("%d/100", int(competitor.OverallScore)),
		Gaps:            gaps,
		TechDebt:        techDebt,
		Categories:      CategoryRadar(baseline),
		CompCategories:  CategoryRadar(competitor),
		Details:         details,
		BaselineURL:     baseline.URL,
		CompetitorURL:   competitor.URL,
	}
}

// CategoryRadar derives the five radar axes, each from a single
// representative field of its section.
func CategoryRadar(r domain.SiteMetricsRecord) domain.CategoryScores {
	tech := 100 - r.Technical.PageLoadTime*20
	if tech < 0 {
		tech = 0
	}

	trust := 60.0
	if r.YMYL.IRDAIRegistration && r.YMYL.ClaimSettlementRatio {
		trust = 100.0
	}

	authority := unknownAuthorityScore
	if r.DomainAuthority.DomainAuthority != nil {
		authority = *r.DomainAuthority.DomainAuthority
	}

	return domain.CategoryScores{
		Technical: round1(tech),
		Content:   round1(r.Content.ReadabilityScore * 100),
		Trust:     round1(trust),
		Mobile:    round1(r.Mobile.MobileSpeedScore),
		Authority: round1(authority),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
