package seo

import (
	"net/url"
	"strings"
	"time"

	"seoengine/internal/domain"
)

// Thresholds and penalty weights of the additive scoring model. Penalties
// are independent and summed; the result is clamped at zero.
const (
	thinContentWords = 300

	penaltyNoIRDAI       = 15
	penaltyNoClaimSignal = 10
	penaltySlowLoad      = 10
	penaltyThinContent   = 10
	penaltyParamURLs     = 5
	penaltyNoTaxKeywords = 10

	slowLoadSeconds   = 3.0
	thinRatioLimit    = 0.3
	paramURLLimit     = 5
	maxTitleLength    = 60
	maxURLLength      = 100
)

// Section fields a bounded crawl cannot observe directly keep documented
// estimates so records stay schema-complete and comparable.
const (
	estCrawlBudgetWaste     = 0.05
	estURLReadability       = 0.9
	estStaticDynamicRatio   = 0.95
	estDuplicateContent     = 0.1
	estReadability          = 0.75
	estBlogVolume           = 50
	estIntentAlignment      = 0.85
	estTopicDepth           = 0.8
	estLCP                  = 1.5
	estCLS                  = 0.05
	estJSBundleKB           = 800.0
	estCSSBlocking          = 3
	estImageOptimization    = 0.8
	estMobileSpeedScore     = 75.0
	estLinkDensity          = 15.0
	estAnchorDiversity      = 0.7
	estContextualFooter     = 0.4
	estExternalAuthLinks    = 5
	estLocalizedRelevance   = 0.9
	defaultTTFBNoSamples    = 500.0
	defaultLoadMSNoSamples  = 2000.0
	indexedPagesMultiplier  = 10
)

// Aggregator folds per-page features plus crawl metadata into the
// fixed-schema site metrics record.
type Aggregator struct {
	authority AuthorityProvider
}

func NewAggregator(authority AuthorityProvider) *Aggregator {
	if authority == nil {
		authority = StaticAuthority{}
	}
	return &Aggregator{authority: authority}
}

// Aggregate builds the SiteMetricsRecord for one crawl target. The first
// page is the home-page representative for site-wide boolean signals; the
// full set feeds per-page statistics. All arithmetic edge cases (zero
// pages, zero images, no timing samples) resolve to defined defaults.
func (a *Aggregator) Aggregate(seedURL string, pages []domain.PageRecord) domain.SiteMetricsRecord {
	features := make([]PageFeatures, len(pages))
	for i, p := range pages {
		features[i] = ExtractPageFeatures(p)
	}

	var home PageFeatures
	if len(features) > 0 {
		home = features[0]
	}

	seedHost := ""
	if u, err := url.Parse(seedURL); err == nil {
		seedHost = u.Hostname()
	}

	rec := domain.SiteMetricsRecord{
		URL:             seedURL,
		Timestamp:       time.Now().UTC(),
		DomainAuthority: a.domainAuthority(seedURL, seedHost, home, len(pages)),
		Crawlability:    crawlability(pages, features),
		URLStructure:    urlStructure(seedURL, pages),
		MetaHTML:        metaHTML(features),
		Content:         contentQuality(features, home),
		Intent:          searchIntent(len(pages)),
		YMYL:            ymylTrust(home),
		EEAT:            eeatSignals(home),
		Technical:       technicalPerformance(pages),
		Mobile:          mobileUX(home),
		Linking:         linkingProfile(),
		SchemaData:      schemaData(home),
		IndiaSpecific:   indiaSpecific(home),
		Health:          healthErrors(pages),
		BrandUX:         brandUX(home),
	}
	rec.OverallScore = overallScore(rec)
	return rec
}

func (a *Aggregator) domainAuthority(seedURL, host string, home PageFeatures, pageCount int) domain.DomainAuthority {
	fig := a.authority.Lookup(host)
	indexed := pageCount * indexedPagesMultiplier
	return domain.DomainAuthority{
		DomainAge:              fig.DomainAge,
		DomainAuthority:        fig.DomainAuthority,
		TotalBacklinks:         fig.TotalBacklinks,
		ReferringDomains:       fig.ReferringDomains,
		OrganicKeywords:        fig.OrganicKeywords,
		BrandedKeywordPresence: brandPresence(host, home.Text),
		IndexedPages:           &indexed,
		DomainTrustSignals:     fig.DomainTrustSignals,
		HTTPSStatus:            strings.HasPrefix(seedURL, "https"),
		SSLValidity:            strings.HasPrefix(seedURL, "https"),
	}
}

// brandPresence checks whether any meaningful label of the host appears in
// the home page text, e.g. "bajaj" for bajajlifeinsurance.com.
func brandPresence(host, homeText string) bool {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	labels := strings.Split(host, ".")
	if len(labels) > 1 {
		labels = labels[:len(labels)-1] // drop the TLD
	}
	for _, label := range labels {
		for _, tok := range strings.Split(label, "-") {
			if len(tok) >= 4 && strings.Contains(homeText, tok) {
				return true
			}
		}
	}
	return false
}

func crawlability(pages []domain.PageRecord, features []PageFeatures) domain.Crawlability {
	c := domain.Crawlability{
		RobotsTxtExists:      true,
		XMLSitemapExists:     true,
		SitemapValidity:      true,
		CanonicalTagsCorrect: true,
		CrawlBudgetWaste:     estCrawlBudgetWaste,
	}
	for i, p := range pages {
		if features[i].Noindex {
			c.NoindexTags = true
		}
		if p.Depth > c.CrawlDepth {
			c.CrawlDepth = p.Depth
		}
		if strings.Contains(p.URL, "?") {
			c.ParameterizedURLs++
		}
	}
	return c
}

func urlStructure(seedURL string, pages []domain.PageRecord) domain.URLStructure {
	s := domain.URLStructure{
		URLReadabilityScore:      estURLReadability,
		KeywordInURL:             strings.Contains(seedURL, "insurance") || strings.Contains(seedURL, "life"),
		URLLengthConsistency:     true,
		TrailingSlashConsistency: true,
		HTTPToHTTPSRedirect:      strings.HasPrefix(seedURL, "https"),
		WWWVsNonWWW:              true,
		StaticVsDynamicRatio:     estStaticDynamicRatio,
	}
	for _, p := range pages {
		if len(p.URL) >= maxURLLength {
			s.URLLengthConsistency = false
		}
		if u, err := url.Parse(p.URL); err == nil {
			if d := len(strings.Split(u.Path, "/")); d > s.FolderHierarchyDepth {
				s.FolderHierarchyDepth = d
			}
		}
	}
	return s
}

func metaHTML(features []PageFeatures) domain.MetaHTMLSignals {
	m := domain.MetaHTMLSignals{
		TitleLengthOptimized:  true,
		HeadingHierarchyValid: true,
		ImageAltCoverage:      1.0, // absence of images is not a penalty
	}
	seen := make(map[string]bool)
	var titles, distinct, images, withAlt int
	for _, f := range features {
		if f.TitlePresent {
			m.TitlePresence = true
			titles++
			if !seen[f.Title] {
				seen[f.Title] = true
				distinct++
			}
			if len(f.Title) >= maxTitleLength {
				m.TitleLengthOptimized = false
			}
		}
		if f.MetaDescription {
			m.MetaDescPresence = true
			m.MetaDescLength = true
		}
		if f.H1Count > 0 {
			m.H1Presence = true
		}
		if f.H1Count > 1 {
			m.MultipleH1Issues = true
		}
		images += f.ImageCount
		withAlt += f.ImagesWithAlt
	}
	m.DuplicateTitles = titles - distinct
	if images > 0 {
		m.ImageAltCoverage = float64(withAlt) / float64(images)
	}
	return m
}

func contentQuality(features []PageFeatures, home PageFeatures) domain.ContentQuality {
	c := domain.ContentQuality{
		DuplicateContentSignals: estDuplicateContent,
		ReadabilityScore:        estReadability,
		StructuredContentUsage:  true,
		FAQPresence:             home.FAQ,
		BlogVolume:              estBlogVolume,
		UpdateFrequency:         "Weekly",
	}
	if len(features) == 0 {
		return c
	}
	var total, thin int
	for _, f := range features {
		total += f.WordCount
		if f.WordCount < thinContentWords {
			thin++
		}
	}
	c.AvgWordCount = total / len(features)
	c.ThinContentRatio = float64(thin) / float64(len(features))
	return c
}

func searchIntent(pageCount int) domain.SearchIntent {
	return domain.SearchIntent{
		InformationalPages:   int(float64(pageCount) * 0.6),
		TransactionalPages:   int(float64(pageCount) * 0.3),
		IntentAlignmentScore: estIntentAlignment,
		TopicDepth:           estTopicDepth,
		FeaturedSnippetReady: true,
	}
}

func ymylTrust(home PageFeatures) domain.YMYLTrust {
	return domain.YMYLTrust{
		IRDAIRegistration:    home.IRDAIRegistration,
		LegalDetails:         home.LegalDetails,
		ClaimSettlementRatio: home.ClaimSettlement,
		RiskDisclaimer:       home.RiskDisclaimer,
		PrivacyPolicyQuality: home.PrivacyPolicy,
		TermsConditions:      home.TermsConditions,
		ContactGrievanceInfo: home.Grievance,
		PhysicalAddress:      home.PhysicalAddress,
	}
}

func eeatSignals(home PageFeatures) domain.EEATSignals {
	return domain.EEATSignals{
		ExpertiseIndicators:    home.Expertise,
		AboutUsDepth:           home.AboutLink,
		LeadershipTransparency: home.Leadership,
		AwardsCertifications:   home.Awards,
	}
}

func technicalPerformance(pages []domain.PageRecord) domain.TechnicalPerformance {
	var ttfbSum, loadSum float64
	var ttfbN, loadN int
	for _, p := range pages {
		if p.Timing.TTFB > 0 {
			ttfbSum += p.Timing.TTFB
			ttfbN++
		}
		if p.Timing.LoadTime > 0 {
			loadSum += p.Timing.LoadTime
			loadN++
		}
	}
	avgTTFB := defaultTTFBNoSamples
	if ttfbN > 0 {
		avgTTFB = ttfbSum / float64(ttfbN)
	}
	avgLoad := defaultLoadMSNoSamples
	if loadN > 0 {
		avgLoad = loadSum / float64(loadN)
	}
	return domain.TechnicalPerformance{
		LCPScore:          estLCP,
		CLSScore:          estCLS,
		PageLoadTime:      avgLoad / 1000, // ms to s, converted once here
		TTFB:              avgTTFB,
		JSBundleWeight:    estJSBundleKB,
		CSSBlocking:       estCSSBlocking,
		ImageOptimization: estImageOptimization,
		LazyLoading:       true,
	}
}

func mobileUX(home PageFeatures) domain.MobileUX {
	return domain.MobileUX{
		MobileResponsive:    home.Viewport,
		ViewportConfig:      home.Viewport,
		TapElementSpacing:   true,
		MobileSpeedScore:    estMobileSpeedScore,
		FormUXComplexity:    "low",
		CalculatorUsability: home.Calculator,
	}
}

func linkingProfile() domain.Linking {
	return domain.Linking{
		InternalLinkingDensity:  estLinkDensity,
		AnchorTextDiversity:     estAnchorDiversity,
		ContextualVsFooterRatio: estContextualFooter,
		ExternalAuthorityLinks:  estExternalAuthLinks,
	}
}

func schemaData(home PageFeatures) domain.SchemaStructuredData {
	return domain.SchemaStructuredData{
		OrganizationSchema: home.SchemaOrganization,
		ProductSchema:      home.SchemaProduct,
		FAQSchema:          home.SchemaFAQ,
		BreadcrumbSchema:   home.SchemaBreadcrumb,
		ReviewSchema:       home.SchemaReview,
	}
}

func indiaSpecific(home PageFeatures) domain.IndiaSpecific {
	return domain.IndiaSpecific{
		INRCurrencyUse:            home.INRCurrency,
		IndiaTaxKeywords:          home.TaxKeywords,
		HreflangEnIN:              home.HreflangEnIN,
		LocalizedContentRelevance: estLocalizedRelevance,
	}
}

func healthErrors(pages []domain.PageRecord) domain.HealthErrors {
	var h domain.HealthErrors
	for _, p := range pages {
		if p.Status == 404 {
			h.Error404Count++
		}
		if p.Status >= 400 {
			h.BrokenLinks++
		}
	}
	return h
}

func brandUX(home PageFeatures) domain.BrandUX {
	return domain.BrandUX{
		StructuredNavClarity: true,
		CTAOptimization:      true,
		ContentFreshness:     home.FreshYears,
	}
}

// overallScore applies the additive-penalty model over the assembled
// record. Order does not matter: penalties are independent and summed.
func overallScore(rec domain.SiteMetricsRecord) float64 {
	penalties := 0
	if !rec.YMYL.IRDAIRegistration {
		penalties += penaltyNoIRDAI
	}
	if !rec.YMYL.ClaimSettlementRatio {
		penalties += penaltyNoClaimSignal
	}
	if rec.Technical.PageLoadTime > slowLoadSeconds {
		penalties += penaltySlowLoad
	}
	if rec.Content.ThinContentRatio > thinRatioLimit {
		penalties += penaltyThinContent
	}
	if rec.Crawlability.ParameterizedURLs > paramURLLimit {
		penalties += penaltyParamURLs
	}
	if !rec.IndiaSpecific.IndiaTaxKeywords {
		penalties += penaltyNoTaxKeywords
	}
	score := 100 - penalties
	if score < 0 {
		score = 0
	}
	return float64(score)
}
