package domain

import "time"

// PageTiming holds navigation timing captured by the browser, in milliseconds.
type PageTiming struct {
	TTFB     float64 `json:"ttfb"`
	LoadTime float64 `json:"load_time"`
}

// PageRecord is the raw result of fetching a single page. It is immutable
// once produced and consumed read-only by aggregation.
type PageRecord struct {
	URL     string            `json:"url"`
	Content string            `json:"content"`
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
	Depth   int               `json:"depth"`
	Timing  PageTiming        `json:"metrics"`
}

// DomainAuthority holds off-site authority signals. Nil pointer fields mean
// the figure is unknown to the configured authority provider.
type DomainAuthority struct {
	DomainAge              *float64 `json:"domain_age"`
	DomainAuthority        *float64 `json:"domain_authority"`
	TotalBacklinks         *int     `json:"total_backlinks"`
	ReferringDomains       *int     `json:"referring_domains"`
	OrganicKeywords        *int     `json:"organic_keywords"`
	BrandedKeywordPresence bool     `json:"branded_keyword_presence"`
	IndexedPages           *int     `json:"indexed_pages"`
	DomainTrustSignals     *float64 `json:"domain_trust_signals"`
	HTTPSStatus            bool     `json:"https_status"`
	SSLValidity            bool     `json:"ssl_validity"`
}

type Crawlability struct {
	RobotsTxtExists      bool    `json:"robots_txt_exists"`
	XMLSitemapExists     bool    `json:"xml_sitemap_exists"`
	SitemapValidity      bool    `json:"sitemap_validity"`
	NoindexTags          bool    `json:"noindex_tags"`
	CanonicalTagsCorrect bool    `json:"canonical_tags_correct"`
	OrphanPages          int     `json:"orphan_pages"`
	CrawlDepth           int     `json:"crawl_depth"`
	DuplicateURLPatterns int     `json:"duplicate_url_patterns"`
	ParameterizedURLs    int     `json:"parameterized_urls"`
	CrawlBudgetWaste     float64 `json:"crawl_budget_waste"`
}

type URLStructure struct {
	URLReadabilityScore      float64 `json:"url_readability_score"`
	KeywordInURL             bool    `json:"keyword_in_url"`
	URLLengthConsistency     bool    `json:"url_length_consistency"`
	FolderHierarchyDepth     int     `json:"folder_hierarchy_depth"`
	TrailingSlashConsistency bool    `json:"trailing_slash_consistency"`
	HTTPToHTTPSRedirect      bool    `json:"http_to_https_redirect"`
	WWWVsNonWWW              bool    `json:"www_vs_non_www"`
	StaticVsDynamicRatio     float64 `json:"static_vs_dynamic_ratio"`
}

type MetaHTMLSignals struct {
	TitlePresence         bool    `json:"title_presence"`
	TitleLengthOptimized  bool    `json:"title_length_optimized"`
	DuplicateTitles       int     `json:"duplicate_titles"`
	MetaDescPresence      bool    `json:"meta_desc_presence"`
	MetaDescLength        bool    `json:"meta_desc_length"`
	H1Presence            bool    `json:"h1_presence"`
	MultipleH1Issues      bool    `json:"multiple_h1_issues"`
	HeadingHierarchyValid bool    `json:"heading_hierarchy_valid"`
	ImageAltCoverage      float64 `json:"image_alt_coverage"`
}

type ContentQuality struct {
	AvgWordCount            int     `json:"avg_word_count"`
	ThinContentRatio        float64 `json:"thin_content_ratio"`
	DuplicateContentSignals float64 `json:"duplicate_content_signals"`
	ReadabilityScore        float64 `json:"readability_score"`
	StructuredContentUsage  bool    `json:"structured_content_usage"`
	FAQPresence             bool    `json:"faq_presence"`
	BlogVolume              int     `json:"blog_volume"`
	UpdateFrequency         string  `json:"update_frequency"`
}

type SearchIntent struct {
	InformationalPages   int     `json:"informational_pages"`
	TransactionalPages   int     `json:"transactional_pages"`
	IntentAlignmentScore float64 `json:"intent_alignment_score"`
	TopicDepth           float64 `json:"topic_depth"`
	FeaturedSnippetReady bool    `json:"featured_snippet_ready"`
}

// YMYLTrust holds trust and compliance signals for "Your Money or Your Life"
// sites, where regulatory transparency dominates quality assessment.
type YMYLTrust struct {
	IRDAIRegistration    bool `json:"irdai_registration"`
	LegalDetails         bool `json:"legal_details"`
	ClaimSettlementRatio bool `json:"claim_settlement_ratio"`
	RiskDisclaimer       bool `json:"risk_disclaimer"`
	PrivacyPolicyQuality bool `json:"privacy_policy_quality"`
	TermsConditions      bool `json:"terms_conditions"`
	ContactGrievanceInfo bool `json:"contact_grievance_info"`
	PhysicalAddress      bool `json:"physical_address"`
}

type EEATSignals struct {
	AuthorPresence         bool `json:"author_presence"`
	AuthorBio              bool `json:"author_bio"`
	ExpertiseIndicators    bool `json:"expertise_indicators"`
	AboutUsDepth           bool `json:"about_us_depth"`
	LeadershipTransparency bool `json:"leadership_transparency"`
	AwardsCertifications   bool `json:"awards_certifications"`
}

// TechnicalPerformance carries page load time in seconds and TTFB in
// milliseconds; both are converted exactly once at aggregation time.
type TechnicalPerformance struct {
	LCPScore          float64 `json:"lcp_score"`
	CLSScore          float64 `json:"cls_score"`
	PageLoadTime      float64 `json:"page_load_time"`
	TTFB              float64 `json:"ttfb"`
	JSBundleWeight    float64 `json:"js_bundle_weight"`
	CSSBlocking       int     `json:"css_blocking"`
	ImageOptimization float64 `json:"image_optimization"`
	LazyLoading       bool    `json:"lazy_loading"`
}

type MobileUX struct {
	MobileResponsive    bool    `json:"mobile_responsive"`
	ViewportConfig      bool    `json:"viewport_config"`
	TapElementSpacing   bool    `json:"tap_element_spacing"`
	MobileSpeedScore    float64 `json:"mobile_speed_score"`
	FormUXComplexity    string  `json:"form_ux_complexity"`
	CalculatorUsability bool    `json:"calculator_usability"`
}

type Linking struct {
	InternalLinkingDensity  float64 `json:"internal_linking_density"`
	AnchorTextDiversity     float64 `json:"anchor_text_diversity"`
	OrphanMoneyPages        int     `json:"orphan_money_pages"`
	ContextualVsFooterRatio float64 `json:"contextual_vs_footer_ratio"`
	ExternalAuthorityLinks  int     `json:"external_authority_links"`
}

type SchemaStructuredData struct {
	OrganizationSchema     bool `json:"organization_schema"`
	ProductSchema          bool `json:"product_schema"`
	FAQSchema              bool `json:"faq_schema"`
	BreadcrumbSchema       bool `json:"breadcrumb_schema"`
	ReviewSchema           bool `json:"review_schema"`
	SchemaValidationErrors int  `json:"schema_validation_errors"`
}

// IndiaSpecific holds locale signals for the Indian insurance market: INR
// currency usage, tax-section keywords and en-IN hreflang targeting.
type IndiaSpecific struct {
	INRCurrencyUse            bool    `json:"inr_currency_use"`
	IndiaTaxKeywords          bool    `json:"india_tax_keywords"`
	HreflangEnIN              bool    `json:"hreflang_en_in"`
	LocalizedContentRelevance float64 `json:"localized_content_relevance"`
}

type HealthErrors struct {
	Error404Count        int `json:"error_404_count"`
	RedirectChains       int `json:"redirect_chains"`
	BrokenLinks          int `json:"broken_links"`
	SimulatedIndexErrors int `json:"simulated_index_errors"`
}

type BrandUX struct {
	StructuredNavClarity bool `json:"structured_nav_clarity"`
	CTAOptimization      bool `json:"cta_optimization"`
	ContentFreshness     bool `json:"content_freshness"`
}

// SiteMetricsRecord is the aggregate, fixed-schema result for one crawl
// target. It is created once by aggregation, persisted verbatim, and never
// mutated afterwards; comparisons re-read persisted copies.
type SiteMetricsRecord struct {
	URL             string               `json:"url"`
	Timestamp       time.Time            `json:"timestamp"`
	DomainAuthority DomainAuthority      `json:"domain_authority"`
	Crawlability    Crawlability         `json:"crawlability"`
	URLStructure    URLStructure         `json:"url_structure"`
	MetaHTML        MetaHTMLSignals      `json:"meta_html"`
	Content         ContentQuality       `json:"content"`
	Intent          SearchIntent         `json:"intent"`
	YMYL            YMYLTrust            `json:"ymyl"`
	EEAT            EEATSignals          `json:"eeat"`
	Technical       TechnicalPerformance `json:"technical"`
	Mobile          MobileUX             `json:"mobile"`
	Linking         Linking              `json:"linking"`
	SchemaData      SchemaStructuredData `json:"schema_data"`
	IndiaSpecific   IndiaSpecific        `json:"india_specific"`
	Health          HealthErrors         `json:"health"`
	BrandUX         BrandUX              `json:"brand_ux"`
	OverallScore    float64              `json:"overall_score"`
	AIInsights      map[string]any       `json:"ai_insights,omitempty"`
}

// CategoryScores are the five radar axes, each a 0-100 headline number
// derived from a single representative field of the record.
type CategoryScores struct {
	Technical float64 `json:"Technical"`
	Content   float64 `json:"Content"`
	Trust     float64 `json:"Trust (YMYL)"`
	Mobile    float64 `json:"Mobile"`
	Authority float64 `json:"Authority"`
}

// GapEntry is one row of the parameter gap table. Baseline and Competitor
// are display strings; Status is classified on the typed values before any
// formatting happens.
type GapEntry struct {
	Label      string `json:"label"`
	Baseline   string `json:"baseline"`
	Competitor string `json:"competitor"`
	Status     string `json:"status"`
}

// ComparisonReport is a derived view over two SiteMetricsRecords. It is
// recomputed on every request and never persisted.
type ComparisonReport struct {
	OverallScore    string         `json:"overall_score"`
	CompetitorScore string         `json:"competitor_score"`
	Gaps            int            `json:"gaps"`
	TechDebt        string         `json:"techDebt"`
	Categories      CategoryScores `json:"categories"`
	CompCategories  CategoryScores `json:"comp_categories"`
	Details         []GapEntry     `json:"details"`
	BaselineURL     string         `json:"baseline_url"`
	CompetitorURL   string         `json:"competitor_url"`
	AIAnalysis      string         `json:"ai_analysis"`
}

// Stream event types emitted on the comparison progress stream.
const (
	EventStatus = "status"
	EventLog    = "log"
	EventResult = "result"
	EventError  = "error"
)

// StreamEvent is one typed event on the progress stream. A stream is
// terminated by either a result or an error event.
type StreamEvent struct {
	Type    string            `json:"type"`
	Message string            `json:"message,omitempty"`
	URL     string            `json:"url,omitempty"`
	Status  int               `json:"status,omitempty"`
	Depth   int               `json:"depth,omitempty"`
	Data    *ComparisonReport `json:"data,omitempty"`
}
