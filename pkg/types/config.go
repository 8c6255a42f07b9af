package types

import "time"

// HTTPConfig holds shared HTTP settings used by the source adapters.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "rank-eval/0.1"). Per prd013-sources R5.2.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SourceConfig holds settings for the source fetch stage.
// Per prd013-sources R1.3, R5.1-R5.5.
type SourceConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of records fetched per source (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// EnableADS controls whether the ADS adapter is used.
	EnableADS bool `json:"enable_ads" yaml:"enable_ads"`

	// EnableCrossref controls whether the Crossref adapter is used.
	EnableCrossref bool `json:"enable_crossref" yaml:"enable_crossref"`

	// ADSToken is the bearer token for the ADS API.
	ADSToken string `json:"ads_token,omitempty" yaml:"ads_token,omitempty"`

	// CrossrefMailto is the contact email sent to Crossref for polite
	// pool access.
	CrossrefMailto string `json:"crossref_mailto,omitempty" yaml:"crossref_mailto,omitempty"`

	// InterSourceDelay is the delay between API calls to different sources
	// (default 1s).
	InterSourceDelay time.Duration `json:"inter_source_delay" yaml:"inter_source_delay"`
}

// CompareConfig holds settings for the comparison stage.
// Per prd010-comparison R3.2.
type CompareConfig struct {
	// RBOPersistence is the p parameter of rank-biased overlap: the
	// probability of looking one result deeper (default 0.9).
	RBOPersistence float64 `json:"rbo_persistence" yaml:"rbo_persistence"`
}

// CombinationMethod selects how enabled boost factors combine into one value.
// Per prd011-boost R2.1-R2.3.
type CombinationMethod string

const (
	CombineSum     CombinationMethod = "sum"
	CombineProduct CombinationMethod = "product"
	CombineMax     CombinationMethod = "max"
)

// RecencyFunction selects the decay shape of the recency factor.
// Per prd011-boost R3.2.
type RecencyFunction string

const (
	RecencyExponential RecencyFunction = "exponential"
	RecencyLinear      RecencyFunction = "linear"
)

// BoostConfig holds one scoring pass's factor weights and combination rule.
// A BoostConfig is an immutable value: each pass receives its own copy and
// never mutates it mid-computation (prd011-boost R1.1).
type BoostConfig struct {
	// CiteBoostWeight scales the citation factor. 0 disables it.
	CiteBoostWeight float64 `json:"cite_boost_weight" yaml:"cite_boost_weight"`

	// RecencyBoostWeight scales the recency factor. 0 disables it.
	RecencyBoostWeight float64 `json:"recency_boost_weight" yaml:"recency_boost_weight"`

	// RecencyFunction selects the decay shape: exponential or linear
	// (default exponential).
	RecencyFunction RecencyFunction `json:"recency_function" yaml:"recency_function"`

	// RecencyMultiplier steepens or flattens the decay (default 1.0).
	RecencyMultiplier float64 `json:"recency_multiplier" yaml:"recency_multiplier"`

	// RecencyMidpointMonths is the age at which the decay reaches half
	// strength (default 36).
	RecencyMidpointMonths float64 `json:"recency_midpoint_months" yaml:"recency_midpoint_months"`

	// DoctypeBoostWeight is granted to records whose DocType appears in
	// DoctypeAllowList. 0 disables the factor.
	DoctypeBoostWeight float64 `json:"doctype_boost_weight" yaml:"doctype_boost_weight"`

	// DoctypeAllowList names the document types that earn the doctype
	// boost (e.g. "article", "eprint").
	DoctypeAllowList []string `json:"doctype_allow_list,omitempty" yaml:"doctype_allow_list,omitempty"`

	// RefereedBoostWeight is granted to records carrying the "refereed"
	// property. 0 disables the factor.
	RefereedBoostWeight float64 `json:"refereed_boost_weight" yaml:"refereed_boost_weight"`

	// CombinationMethod combines enabled factors: sum, product, or max
	// (default sum).
	CombinationMethod CombinationMethod `json:"combination_method" yaml:"combination_method"`

	// FieldBoosts are the per-field query boost weights applied by the
	// query transformer before a re-query.
	FieldBoosts FieldBoosts `json:"field_boosts" yaml:"field_boosts"`
}

// FieldBoosts holds per-field weights for the query field-boost rewrite.
// A weight of 0 omits the field. Per prd014-query R1.2.
type FieldBoosts struct {
	Title    float64 `json:"title" yaml:"title"`
	Abstract float64 `json:"abstract" yaml:"abstract"`
	Author   float64 `json:"author" yaml:"author"`
	Year     float64 `json:"year" yaml:"year"`
}

// IsZero reports whether every field weight is zero, in which case the
// transformer leaves the query untouched.
func (f FieldBoosts) IsZero() bool {
	return f.Title == 0 && f.Abstract == 0 && f.Author == 0 && f.Year == 0
}

// EvalConfig holds settings for the relevance evaluation stage.
// Per prd012-relevance R2.1-R2.3.
type EvalConfig struct {
	// K is the NDCG truncation depth (default 10).
	K int `json:"k" yaml:"k"`

	// ConsensusStrategy aggregates multi-rater scores: mean, median, or
	// trimmed (default mean).
	ConsensusStrategy string `json:"consensus_strategy" yaml:"consensus_strategy"`

	// JudgmentsDB is the path to the SQLite judgments database.
	JudgmentsDB string `json:"judgments_db" yaml:"judgments_db"`
}
