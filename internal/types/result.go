package types

// MergeResult is the output of the profile merge engine: the enriched profile,
// whether all integrity invariants held, and an itemized list of violations.
type MergeResult struct {
	Success    bool              `json:"success"`
	Violations []string          `json:"violations,omitempty"`
	Profile    *CandidateProfile `json:"profile"`

	AddedSkills         []string        `json:"added_skills,omitempty"`
	AddedCertifications []Certification `json:"added_certifications,omitempty"`
	AddedBullets        []string        `json:"added_bullets,omitempty"`
}

// OrchestrationResult is the full structured outcome of one resume-generation
// request. It always distinguishes "nothing usable was produced" from "a usable
// but imperfect result was produced with known issues".
type OrchestrationResult struct {
	Success               bool   `json:"success"`
	Error                 string `json:"error,omitempty"`
	NeedsUserConfirmation bool   `json:"needs_user_confirmation"`

	FinalText   string               `json:"final_text,omitempty"`
	FinalResume *ComposeResumeOutput `json:"final_resume,omitempty"`

	BaselineScore    *AtsScoreResult `json:"baseline_score,omitempty"`
	FinalScore       *AtsScoreResult `json:"final_score,omitempty"`
	ScoreExplanation string          `json:"score_explanation,omitempty"`

	Audit *IntegrityAuditOutput `json:"audit,omitempty"`

	Bullets      []BulletRewriteRecord `json:"bullets,omitempty"`
	KeywordsUsed []string              `json:"keywords_used,omitempty"`

	RawCalls []GenerationRecord `json:"raw_calls,omitempty"`
}
