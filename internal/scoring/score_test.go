package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-guard/internal/types"
)

func sampleProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		Basics: types.Basics{
			Name:  "Jordan Fixture",
			Email: "jordan@example.com",
			Phone: "555-0100",
		},
		Summary: "Backend engineer focused on Go and distributed systems.",
		Skills: types.Skills{
			Technical: []string{"Go", "PostgreSQL", "Redis", "Kubernetes"},
			Tools:     []string{"Docker"},
			Soft:      []string{"Communication"},
		},
		Experience: []types.Experience{
			{
				Title:     "Senior Engineer",
				Company:   "Acme",
				StartDate: "2020-01",
				EndDate:   "present",
				Bullets: []string{
					"Led migration of 12 services to Kubernetes",
					"Reduced API latency by 40% with Redis caching",
					"Responsible for mentoring junior engineers",
				},
			},
		},
		Education: []types.Education{
			{Institution: "State University", Degree: "BS", Field: "Computer Science"},
		},
	}
}

func sampleJob() *types.JobProfile {
	return &types.JobProfile{
		RawText:        "We need a Go engineer with Kubernetes, Redis, and PostgreSQL experience.",
		Top10Keywords:  []string{"go", "kubernetes", "redis"},
		Top25Keywords:  []string{"go", "kubernetes", "redis", "postgresql", "docker"},
		RequiredSkills: []string{"Go", "Kubernetes", "Terraform"},
	}
}

func TestScore_Deterministic(t *testing.T) {
	profile := sampleProfile()
	job := sampleJob()

	first := Score(profile, job)
	second := Score(profile, job)
	assert.Equal(t, first, second)
}

func TestScore_TotalIsSumOfCategories(t *testing.T) {
	result := Score(sampleProfile(), sampleJob())
	b := result.CategoryBreakdown
	assert.Equal(t, b.KeywordMatch+b.SectionCompleteness+b.FormattingSafety+b.ContentQuality+b.JobMatchRelevance, result.AtsScore)
}

func TestScore_CategoryBounds(t *testing.T) {
	result := Score(sampleProfile(), sampleJob())
	b := result.CategoryBreakdown
	assert.GreaterOrEqual(t, b.KeywordMatch, 0)
	assert.LessOrEqual(t, b.KeywordMatch, 40)
	assert.GreaterOrEqual(t, b.SectionCompleteness, 0)
	assert.LessOrEqual(t, b.SectionCompleteness, 20)
	assert.GreaterOrEqual(t, b.FormattingSafety, 0)
	assert.LessOrEqual(t, b.FormattingSafety, 15)
	assert.GreaterOrEqual(t, b.ContentQuality, 0)
	assert.LessOrEqual(t, b.ContentQuality, 15)
	assert.GreaterOrEqual(t, b.JobMatchRelevance, 0)
	assert.LessOrEqual(t, b.JobMatchRelevance, 10)
}

func TestScore_NilInputs(t *testing.T) {
	result := Score(nil, nil)
	require.NotNil(t, result)
	assert.Equal(t, 0, result.CategoryBreakdown.KeywordMatch)
	assert.Equal(t, 0, result.CategoryBreakdown.SectionCompleteness)
	assert.Equal(t, 0, result.CategoryBreakdown.JobMatchRelevance)
}

func TestScoreKeywordMatch_PerKeywordCap(t *testing.T) {
	profile := &types.CandidateProfile{
		Summary:    "Go everywhere",
		Skills:     types.Skills{Technical: []string{"Go"}},
		Experience: []types.Experience{{Bullets: []string{"Shipped Go services"}}},
	}
	job := &types.JobProfile{Top25Keywords: []string{"go"}}

	score, matches := scoreKeywordMatch(profile, job)
	require.Len(t, matches, 1)
	assert.Equal(t, "go", matches[0].Keyword)
	assert.Equal(t, []string{"summary", "skills", "experience"}, matches[0].Locations)
	// 2.0 capped raw points out of 50 scales to floor(1.6) = 1.
	assert.Equal(t, 1, score)
}

func TestScoreSectionCompleteness_ContactPenalty(t *testing.T) {
	profile := sampleProfile()
	assert.Equal(t, 20, scoreSectionCompleteness(profile))

	profile.Basics.Email = ""
	profile.Basics.Phone = ""
	assert.Equal(t, 10, scoreSectionCompleteness(profile))
}

func TestScoreFormattingSafety_Deductions(t *testing.T) {
	assert.Equal(t, 15, scoreFormattingSafety(sampleProfile()))

	overlong := sampleProfile()
	long := ""
	for i := 0; i < 41; i++ {
		long += "word "
	}
	overlong.Experience[0].Bullets = append(overlong.Experience[0].Bullets, long)
	assert.Equal(t, 10, scoreFormattingSafety(overlong))

	duplicated := sampleProfile()
	duplicated.Experience[0].Bullets = append(duplicated.Experience[0].Bullets, "  led MIGRATION of 12 services to Kubernetes ")
	assert.Equal(t, 10, scoreFormattingSafety(duplicated))

	noEducation := sampleProfile()
	noEducation.Education = nil
	assert.Equal(t, 10, scoreFormattingSafety(noEducation))
}

func TestScoreContentQuality_ActionVerbAndDigit(t *testing.T) {
	profile := sampleProfile()
	// Two bullets lead with an action verb and carry a digit; the third does neither.
	assert.Equal(t, 2, scoreContentQuality(profile))
}

func TestScoreJobMatchRelevance_PartialMatch(t *testing.T) {
	profile := &types.CandidateProfile{
		Skills: types.Skills{Technical: []string{"Python"}, Soft: []string{"SQL"}},
	}
	job := &types.JobProfile{RequiredSkills: []string{"Python", "Go", "Rust"}}
	assert.Equal(t, 3, scoreJobMatchRelevance(profile, job))
}

func TestScoreJobMatchRelevance_NoRequiredSkills(t *testing.T) {
	assert.Equal(t, 0, scoreJobMatchRelevance(sampleProfile(), &types.JobProfile{}))
}

func TestIsActionVerb(t *testing.T) {
	assert.True(t, IsActionVerb("Led"))
	assert.True(t, IsActionVerb("reduced"))
	assert.False(t, IsActionVerb("responsible"))
	assert.False(t, IsActionVerb(""))
}
