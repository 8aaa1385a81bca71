package composing

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-guard/internal/types"
)

// checkInvariants runs the deterministic structural checks on a composed
// resume against its source profile. Each violation is an itemized failure
// string; an empty slice means the composition is acceptable.
func checkInvariants(output *types.ComposeResumeOutput, source *types.CandidateProfile) []string {
	var failures []string

	if output.Skills.Count() == 0 {
		failures = append(failures, "TEST C-2 FAILED: composed resume has no skills")
	}
	if len(output.Experience) == 0 {
		failures = append(failures, "TEST C-2 FAILED: composed resume has no experience entries")
	}
	if len(output.Education) == 0 {
		failures = append(failures, "TEST C-2 FAILED: composed resume has no education entries")
	}

	sourceSections := source.SectionCount()
	if sourceSections > 0 {
		minSections := (sourceSections + 1) / 2
		if got := output.SectionCount(); got < minSections {
			failures = append(failures, fmt.Sprintf(
				"TEST C-3 FAILED: composed resume has %d sections, source has %d; at least %d required",
				got, sourceSections, minSections))
		}
	}

	sourceSkills := source.Skills.Count()
	if sourceSkills > 0 {
		minSkills := (sourceSkills + 1) / 2
		if got := output.Skills.Count(); got < minSkills {
			failures = append(failures, fmt.Sprintf(
				"TEST C-4 FAILED: composed resume has %d skills, source has %d; at least %d required",
				got, sourceSkills, minSkills))
		}
	}

	if len(output.Experience) < len(source.Experience) {
		hasReason := false
		for _, exp := range output.Experience {
			if strings.TrimSpace(exp.RemovalReason) != "" {
				hasReason = true
				break
			}
		}
		if !hasReason {
			failures = append(failures, fmt.Sprintf(
				"TEST C-5 FAILED: %d of %d experience entries dropped without a removal reason",
				len(source.Experience)-len(output.Experience), len(source.Experience)))
		}
	}

	failures = append(failures, checkCommunity(output, source)...)
	failures = append(failures, checkCoursework(output, source)...)

	return failures
}

// checkCommunity verifies that source community involvement survives as a
// community section rather than disappearing or being absorbed into
// professional experience.
func checkCommunity(output *types.ComposeResumeOutput, source *types.CandidateProfile) []string {
	if len(source.Community) == 0 {
		return nil
	}

	var failures []string
	if len(output.Community) == 0 {
		failures = append(failures, "TEST C-6 FAILED: source community section dropped from composed resume")
		return failures
	}

	// A community organization showing up as an employer means the entry was
	// recast as a job, which misrepresents volunteer work.
	employers := make(map[string]bool, len(source.Experience))
	for _, exp := range source.Experience {
		employers[strings.ToLower(strings.TrimSpace(exp.Company))] = true
	}
	for _, c := range source.Community {
		org := strings.ToLower(strings.TrimSpace(c.Organization))
		if employers[org] {
			continue
		}
		for _, exp := range output.Experience {
			if strings.ToLower(strings.TrimSpace(exp.Company)) == org {
				failures = append(failures, fmt.Sprintf(
					"TEST C-6 FAILED: community organization %q appears as an employer in experience", c.Organization))
			}
		}
	}
	return failures
}

// checkCoursework verifies that relevant coursework listed in the source
// education stays attached to the same institution.
func checkCoursework(output *types.ComposeResumeOutput, source *types.CandidateProfile) []string {
	var failures []string
	for _, src := range source.Education {
		if strings.TrimSpace(src.Coursework) == "" {
			continue
		}
		retained := false
		for _, out := range output.Education {
			if strings.EqualFold(strings.TrimSpace(out.Institution), strings.TrimSpace(src.Institution)) &&
				strings.TrimSpace(out.Coursework) != "" {
				retained = true
				break
			}
		}
		if !retained {
			failures = append(failures, fmt.Sprintf(
				"TEST C-7 FAILED: relevant coursework for %q dropped from composed resume", src.Institution))
		}
	}
	return failures
}
