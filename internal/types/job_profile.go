package types

// JobProfile represents a parsed job description. It is read-only ground truth
// for keyword legitimacy checks; nothing in the pipeline mutates it.
type JobProfile struct {
	RawText        string   `json:"raw_text"`
	Top10Keywords  []string `json:"top_10_keywords"`
	Top25Keywords  []string `json:"top_25_keywords"`
	RequiredSkills []string `json:"required_skills"`
}
