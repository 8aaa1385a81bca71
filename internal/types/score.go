package types

// CategoryBreakdown holds the five capped sub-scores of an ATS score.
type CategoryBreakdown struct {
	KeywordMatch        int `json:"keyword_match"`         // 0-40
	SectionCompleteness int `json:"section_completeness"`  // 0-20
	FormattingSafety    int `json:"formatting_safety"`     // 0-15
	ContentQuality      int `json:"content_quality"`       // 0-15
	JobMatchRelevance   int `json:"job_match_relevance"`   // 0-10
}

// KeywordMatch records where a job keyword was found in the profile.
type KeywordMatch struct {
	Keyword   string   `json:"keyword"`
	Locations []string `json:"locations"`
}

// AtsScoreResult is the deterministic ATS compatibility score for a profile
// against a job. The total is always the sum of the five category scores.
type AtsScoreResult struct {
	AtsScore          int               `json:"ats_score"`
	CategoryBreakdown CategoryBreakdown `json:"category_breakdown"`
	KeywordMatches    []KeywordMatch    `json:"keyword_matches"`
}
