// Package merge deterministically enriches a candidate profile with verified
// facts from a secondary (network) profile. Enrichment never invents content:
// everything added must be traceable to the secondary profile's raw text, and
// five integrity invariants are checked independently after the merge.
package merge

import (
	"strings"

	"github.com/jonathan/resume-guard/internal/textutil"
	"github.com/jonathan/resume-guard/internal/types"
)

// Merge enriches resume with facts from secondary and verifies the result.
// With a nil secondary the profile passes through untouched (invariants are
// still checked, trivially). Violations are reported, never silently corrected.
func Merge(resume *types.CandidateProfile, job *types.JobProfile, secondary *types.SecondaryProfile) *types.MergeResult {
	if resume == nil {
		return &types.MergeResult{
			Success:    false,
			Violations: []string{"TEST M-0 FAILED: resume profile is nil"},
		}
	}
	if job == nil {
		job = &types.JobProfile{}
	}

	merged := cloneProfile(resume)
	result := &types.MergeResult{Profile: merged}

	if secondary != nil {
		enrichSkills(merged, job, secondary, result)
		enrichCertifications(merged, secondary, result)
		enrichBullets(merged, secondary, result)
	}

	result.Violations = checkInvariants(resume, merged, job, secondary, result)
	result.Success = len(result.Violations) == 0
	return result
}

// enrichSkills adds a secondary-profile skill only when it is absent from the
// resume, present in the job's top-25 keywords, and verbatim in the secondary
// raw text. Added skills land in the technical category.
func enrichSkills(merged *types.CandidateProfile, job *types.JobProfile, secondary *types.SecondaryProfile, result *types.MergeResult) {
	have := make(map[string]bool)
	for _, s := range merged.Skills.All() {
		have[strings.ToLower(strings.TrimSpace(s))] = true
	}
	keywords := make(map[string]bool)
	for _, k := range job.Top25Keywords {
		keywords[strings.ToLower(strings.TrimSpace(k))] = true
	}

	for _, skill := range secondary.Skills {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" || have[key] {
			continue
		}
		if !keywords[key] {
			continue
		}
		if !textutil.ContainsFold(secondary.RawText, skill) {
			continue
		}
		merged.Skills.Technical = append(merged.Skills.Technical, skill)
		result.AddedSkills = append(result.AddedSkills, skill)
		have[key] = true
	}
}

// enrichCertifications adds a secondary certification only when no resume
// certification shares its name and it appears verbatim in secondary raw text.
func enrichCertifications(merged *types.CandidateProfile, secondary *types.SecondaryProfile, result *types.MergeResult) {
	have := make(map[string]bool)
	for _, c := range merged.Certifications {
		have[strings.ToLower(strings.TrimSpace(c.Name))] = true
	}

	for _, cert := range secondary.Certifications {
		key := strings.ToLower(strings.TrimSpace(cert.Name))
		if key == "" || have[key] {
			continue
		}
		if !textutil.ContainsFold(secondary.RawText, cert.Name) {
			continue
		}
		merged.Certifications = append(merged.Certifications, cert)
		result.AddedCertifications = append(result.AddedCertifications, cert)
		have[key] = true
	}
}

// enrichBullets copies bullets from secondary positions at the same employer
// with overlapping date ranges, skipping duplicates and bullets whose digits
// cannot be found in the secondary raw text.
func enrichBullets(merged *types.CandidateProfile, secondary *types.SecondaryProfile, result *types.MergeResult) {
	secondaryNumbers := make(map[string]bool)
	for _, n := range textutil.Numbers(secondary.RawText) {
		secondaryNumbers[n] = true
	}

	for i := range merged.Experience {
		exp := &merged.Experience[i]

		existing := make(map[string]bool)
		for _, b := range exp.Bullets {
			existing[textutil.NormalizeLine(b)] = true
		}

		for _, pos := range secondary.Positions {
			if !strings.EqualFold(strings.TrimSpace(pos.Company), strings.TrimSpace(exp.Company)) {
				continue
			}
			if !rangesOverlap(exp.StartDate, exp.EndDate, pos.StartDate, pos.EndDate) {
				continue
			}
			for _, bullet := range pos.Bullets {
				normalized := textutil.NormalizeLine(bullet)
				if normalized == "" || existing[normalized] {
					continue
				}
				if !allNumbersKnown(bullet, secondaryNumbers) {
					continue
				}
				exp.Bullets = append(exp.Bullets, bullet)
				result.AddedBullets = append(result.AddedBullets, bullet)
				existing[normalized] = true
			}
		}
	}
}

// allNumbersKnown reports whether every numeric token in bullet appears in the
// secondary raw text's number set.
func allNumbersKnown(bullet string, known map[string]bool) bool {
	for _, n := range textutil.Numbers(bullet) {
		if !known[n] {
			return false
		}
	}
	return true
}

func cloneProfile(p *types.CandidateProfile) *types.CandidateProfile {
	clone := *p
	clone.Skills.Technical = append([]string(nil), p.Skills.Technical...)
	clone.Skills.Tools = append([]string(nil), p.Skills.Tools...)
	clone.Skills.Soft = append([]string(nil), p.Skills.Soft...)
	clone.Experience = make([]types.Experience, len(p.Experience))
	for i, exp := range p.Experience {
		clone.Experience[i] = exp
		clone.Experience[i].Bullets = append([]string(nil), exp.Bullets...)
	}
	clone.Education = append([]types.Education(nil), p.Education...)
	clone.Projects = make([]types.Project, len(p.Projects))
	for i, proj := range p.Projects {
		clone.Projects[i] = proj
		clone.Projects[i].Technologies = append([]string(nil), proj.Technologies...)
	}
	clone.Certifications = append([]types.Certification(nil), p.Certifications...)
	clone.Community = make([]types.CommunityEntry, len(p.Community))
	for i, c := range p.Community {
		clone.Community[i] = c
		clone.Community[i].Bullets = append([]string(nil), c.Bullets...)
	}
	return &clone
}
