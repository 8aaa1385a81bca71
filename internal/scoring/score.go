// Package scoring computes the deterministic ATS compatibility score for a
// candidate profile against a job profile. Scoring is pure: no I/O, no
// randomness, malformed input treated as zero-valued absent fields.
package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/resume-guard/internal/textutil"
	"github.com/jonathan/resume-guard/internal/types"
)

// Sub-score caps
const (
	keywordMatchCap        = 40
	sectionCompletenessCap = 20
	formattingSafetyCap    = 15
	contentQualityCap      = 15
	jobMatchRelevanceCap   = 10

	maxBulletWords = 40
	minSkillCount  = 5

	// Raw points per keyword location
	pointsSummary = 1.5
	pointsSkills  = 1.5
	pointsBullets = 1.0
	perKeywordCap = 2.0
)

// Score computes the full ATS score. Calling it twice with identical inputs
// yields an identical result.
func Score(profile *types.CandidateProfile, job *types.JobProfile) *types.AtsScoreResult {
	if profile == nil {
		profile = &types.CandidateProfile{}
	}
	if job == nil {
		job = &types.JobProfile{}
	}

	keywordScore, matches := scoreKeywordMatch(profile, job)
	breakdown := types.CategoryBreakdown{
		KeywordMatch:        keywordScore,
		SectionCompleteness: scoreSectionCompleteness(profile),
		FormattingSafety:    scoreFormattingSafety(profile),
		ContentQuality:      scoreContentQuality(profile),
		JobMatchRelevance:   scoreJobMatchRelevance(profile, job),
	}

	total := breakdown.KeywordMatch +
		breakdown.SectionCompleteness +
		breakdown.FormattingSafety +
		breakdown.ContentQuality +
		breakdown.JobMatchRelevance

	return &types.AtsScoreResult{
		AtsScore:          total,
		CategoryBreakdown: breakdown,
		KeywordMatches:    matches,
	}
}

// scoreKeywordMatch awards up to 2.0 raw points per top-25 keyword based on
// where it appears, then scales raw/(25*2.0) to the 0-40 range.
func scoreKeywordMatch(profile *types.CandidateProfile, job *types.JobProfile) (int, []types.KeywordMatch) {
	if len(job.Top25Keywords) == 0 {
		return 0, nil
	}

	skillsText := strings.Join(profile.Skills.All(), " ")
	var bulletsText strings.Builder
	for _, exp := range profile.Experience {
		for _, b := range exp.Bullets {
			bulletsText.WriteString(b)
			bulletsText.WriteString(" ")
		}
	}

	raw := 0.0
	matches := make([]types.KeywordMatch, 0, len(job.Top25Keywords))
	for _, keyword := range job.Top25Keywords {
		points := 0.0
		var locations []string
		if textutil.ContainsFold(profile.Summary, keyword) {
			points += pointsSummary
			locations = append(locations, "summary")
		}
		if textutil.ContainsFold(skillsText, keyword) {
			points += pointsSkills
			locations = append(locations, "skills")
		}
		if textutil.ContainsFold(bulletsText.String(), keyword) {
			points += pointsBullets
			locations = append(locations, "experience")
		}
		if points > perKeywordCap {
			points = perKeywordCap
		}
		raw += points
		if len(locations) > 0 {
			matches = append(matches, types.KeywordMatch{Keyword: keyword, Locations: locations})
		}
	}

	maxRaw := 25 * perKeywordCap
	score := int(math.Floor(raw / maxRaw * keywordMatchCap))
	if score > keywordMatchCap {
		score = keywordMatchCap
	}
	return score, matches
}

// scoreSectionCompleteness checks the presence of core sections and contact facts.
func scoreSectionCompleteness(profile *types.CandidateProfile) int {
	score := 0
	if strings.TrimSpace(profile.Summary) != "" {
		score += 5
	}
	if len(profile.Experience) > 0 {
		score += 5
	}
	if len(profile.Education) > 0 {
		score += 5
	}
	if profile.Skills.Count() >= minSkillCount {
		score += 5
	}
	if strings.TrimSpace(profile.Basics.Email) == "" && strings.TrimSpace(profile.Basics.Phone) == "" {
		score -= 10
	}
	return clamp(score, 0, sectionCompletenessCap)
}

// scoreFormattingSafety starts at the cap and deducts for overlong bullets,
// empty core sections, and duplicate bullets.
func scoreFormattingSafety(profile *types.CandidateProfile) int {
	score := formattingSafetyCap

	overlong := false
	seen := make(map[string]bool)
	duplicate := false
	for _, exp := range profile.Experience {
		for _, bullet := range exp.Bullets {
			if textutil.WordCount(bullet) > maxBulletWords {
				overlong = true
			}
			normalized := textutil.NormalizeLine(bullet)
			if normalized != "" && seen[normalized] {
				duplicate = true
			}
			seen[normalized] = true
		}
	}

	if overlong {
		score -= 5
	}
	if len(profile.Experience) == 0 || len(profile.Education) == 0 {
		score -= 5
	}
	if duplicate {
		score -= 5
	}
	return clamp(score, 0, formattingSafetyCap)
}

// scoreContentQuality rewards bullets that lead with an action verb and carry
// a quantified fact.
func scoreContentQuality(profile *types.CandidateProfile) int {
	score := 0
	for _, exp := range profile.Experience {
		for _, bullet := range exp.Bullets {
			if IsActionVerb(textutil.FirstWord(bullet)) && textutil.ContainsDigit(bullet) {
				score++
			}
		}
	}
	if score > contentQualityCap {
		score = contentQualityCap
	}
	return score
}

// scoreJobMatchRelevance counts required skills matched by exact,
// case-insensitive membership across the three skill categories. A job with
// zero required skills scores exactly 0.
func scoreJobMatchRelevance(profile *types.CandidateProfile, job *types.JobProfile) int {
	if len(job.RequiredSkills) == 0 {
		return 0
	}

	have := make(map[string]bool)
	for _, skill := range profile.Skills.All() {
		have[strings.ToLower(strings.TrimSpace(skill))] = true
	}

	matched := 0
	for _, required := range job.RequiredSkills {
		if have[strings.ToLower(strings.TrimSpace(required))] {
			matched++
		}
	}
	return int(math.Floor(float64(jobMatchRelevanceCap) * float64(matched) / float64(len(job.RequiredSkills))))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
