package composing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-guard/internal/types"
)

func validOutput() *types.ComposeResumeOutput {
	return &types.ComposeResumeOutput{
		Basics:  types.Basics{Name: "Robin Fixture"},
		Summary: "Engineer who mentors a robotics club.",
		Skills:  types.Skills{Technical: []string{"Go", "Kafka"}, Tools: []string{"Docker"}},
		Experience: []types.ComposedExperience{
			{Title: "Engineer", Company: "Acme", StartDate: "2020-01", EndDate: "present",
				Bullets: []string{"Built streaming pipelines"}},
		},
		Education: []types.Education{
			{Institution: "State University", Degree: "BS", Coursework: "Distributed Systems"},
		},
		Community: []types.CommunityEntry{
			{Organization: "Robotics Club", Role: "Mentor"},
		},
	}
}

func hasFailure(failures []string, tag string) bool {
	for _, f := range failures {
		if strings.Contains(f, tag) {
			return true
		}
	}
	return false
}

func TestCheckInvariants_ValidOutputPasses(t *testing.T) {
	assert.Empty(t, checkInvariants(validOutput(), composeSourceProfile()))
}

func TestCheckInvariants_EmptyCoreSections(t *testing.T) {
	output := validOutput()
	output.Skills = types.Skills{}
	output.Experience = nil
	output.Education = nil

	failures := checkInvariants(output, composeSourceProfile())
	assert.True(t, hasFailure(failures, "no skills"))
	assert.True(t, hasFailure(failures, "no experience"))
	assert.True(t, hasFailure(failures, "no education"))
}

func TestCheckInvariants_SectionShrinkBound(t *testing.T) {
	output := validOutput()
	output.Summary = ""
	output.Community = nil
	output.Education = nil

	// Source has 5 sections; the output keeps only 2, below the floor of 3.
	failures := checkInvariants(output, composeSourceProfile())
	assert.True(t, hasFailure(failures, "TEST C-3 FAILED"), "failures: %v", failures)
}

func TestCheckInvariants_SkillShrinkBound(t *testing.T) {
	output := validOutput()
	output.Skills = types.Skills{Technical: []string{"Go"}}

	// Source has 3 skills; 1 is below the floor of 2.
	failures := checkInvariants(output, composeSourceProfile())
	assert.True(t, hasFailure(failures, "TEST C-4 FAILED"), "failures: %v", failures)
}

func TestCheckInvariants_DroppedExperienceNeedsReason(t *testing.T) {
	source := composeSourceProfile()
	source.Experience = append(source.Experience, types.Experience{
		Title: "Intern", Company: "Globex", Bullets: []string{"Did intern things"},
	})

	output := validOutput()
	failures := checkInvariants(output, source)
	require.True(t, hasFailure(failures, "TEST C-5 FAILED"), "failures: %v", failures)

	output.Experience[0].RemovalReason = "Dropped Globex internship: unrelated to the target role"
	assert.Empty(t, checkInvariants(output, source))
}

func TestCheckInvariants_CommunityAbsorbedIntoExperience(t *testing.T) {
	output := validOutput()
	output.Experience = append(output.Experience, types.ComposedExperience{
		Title: "Mentor", Company: "Robotics Club", Bullets: []string{"Mentored 10 students"},
	})

	failures := checkInvariants(output, composeSourceProfile())
	assert.True(t, hasFailure(failures, "appears as an employer"), "failures: %v", failures)
}

func TestCheckInvariants_CourseworkDropped(t *testing.T) {
	output := validOutput()
	output.Education[0].Coursework = ""

	failures := checkInvariants(output, composeSourceProfile())
	assert.True(t, hasFailure(failures, "TEST C-7 FAILED"), "failures: %v", failures)
}
