package types

import "strings"

// ComposedExperience is an experience entry in a generated resume. When the
// generator drops a source entry, at least one retained entry must carry a
// removal reason naming what was dropped and why.
type ComposedExperience struct {
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	Location      string   `json:"location,omitempty"`
	Bullets       []string `json:"bullets"`
	RemovalReason string   `json:"removal_reason,omitempty"`
}

// ComposeResumeOutput is a fully generated structured resume. Section, skill,
// and experience counts must not shrink past defined thresholds relative to the
// source profile.
type ComposeResumeOutput struct {
	Basics     Basics               `json:"basics"`
	Summary    string               `json:"summary"`
	Skills     Skills               `json:"skills"`
	Experience []ComposedExperience `json:"experience"`
	Education  []Education          `json:"education"`
	Projects   []Project            `json:"projects"`
	Community  []CommunityEntry     `json:"community"`
}

// SectionCount returns the number of non-empty sections among summary, skills,
// experience, education, projects, and community.
func (o *ComposeResumeOutput) SectionCount() int {
	count := 0
	if strings.TrimSpace(o.Summary) != "" {
		count++
	}
	if o.Skills.Count() > 0 {
		count++
	}
	if len(o.Experience) > 0 {
		count++
	}
	if len(o.Education) > 0 {
		count++
	}
	if len(o.Projects) > 0 {
		count++
	}
	if len(o.Community) > 0 {
		count++
	}
	return count
}
