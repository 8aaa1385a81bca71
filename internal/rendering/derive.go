package rendering

import (
	"strings"

	"github.com/jonathan/resume-guard/internal/types"
)

// DeriveProfile re-derives a structured profile from rendered markdown. The
// derivation is intentionally shallow; it feeds the final score so that the
// score reflects the rendered document, not the pre-render structure.
func DeriveProfile(markdown string) *types.CandidateProfile {
	profile := &types.CandidateProfile{RawText: markdown}

	section := ""
	var currentExp *types.Experience
	var currentEdu *types.Education
	var currentProj *types.Project
	var currentComm *types.CommunityEntry

	flush := func() {
		if currentExp != nil {
			profile.Experience = append(profile.Experience, *currentExp)
			currentExp = nil
		}
		if currentEdu != nil {
			profile.Education = append(profile.Education, *currentEdu)
			currentEdu = nil
		}
		if currentProj != nil {
			profile.Projects = append(profile.Projects, *currentProj)
			currentProj = nil
		}
		if currentComm != nil {
			profile.Community = append(profile.Community, *currentComm)
			currentComm = nil
		}
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue

		case strings.HasPrefix(trimmed, "## "):
			flush()
			section = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(trimmed, "## ")))

		case strings.HasPrefix(trimmed, "# "):
			profile.Basics.Name = strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))

		case strings.HasPrefix(trimmed, "### "):
			flush()
			heading := strings.TrimSpace(strings.TrimPrefix(trimmed, "### "))
			switch section {
			case "experience":
				currentExp = parseExperienceHeading(heading)
			case "education":
				currentEdu = parseEducationHeading(heading)
			case "projects":
				currentProj = parseProjectHeading(heading)
			case "community":
				currentComm = parseCommunityHeading(heading)
			}

		case strings.HasPrefix(trimmed, "- "):
			bullet := strings.TrimSpace(strings.TrimPrefix(trimmed, "- "))
			switch {
			case currentExp != nil:
				currentExp.Bullets = append(currentExp.Bullets, bullet)
			case currentComm != nil:
				currentComm.Bullets = append(currentComm.Bullets, bullet)
			}

		default:
			switch section {
			case "summary":
				if profile.Summary != "" {
					profile.Summary += " "
				}
				profile.Summary += trimmed
			case "skills":
				parseSkillLine(&profile.Skills, trimmed)
			case "education":
				if currentEdu != nil && strings.HasPrefix(trimmed, "Relevant coursework: ") {
					currentEdu.Coursework = strings.TrimPrefix(trimmed, "Relevant coursework: ")
				}
			case "projects":
				if currentProj != nil && currentProj.Description == "" {
					currentProj.Description = trimmed
				}
			case "":
				// Contact line under the name header.
				parseContactLine(&profile.Basics, trimmed)
			}
		}
	}
	flush()

	return profile
}

// parseExperienceHeading splits "Title, Company (start to end)".
func parseExperienceHeading(heading string) *types.Experience {
	exp := &types.Experience{}
	if open := strings.LastIndex(heading, "("); open >= 0 && strings.HasSuffix(heading, ")") {
		dates := heading[open+1 : len(heading)-1]
		heading = strings.TrimSpace(strings.TrimSuffix(heading[:open], " "))
		if parts := strings.SplitN(dates, " to ", 2); len(parts) == 2 {
			exp.StartDate = strings.TrimSpace(parts[0])
			exp.EndDate = strings.TrimSpace(parts[1])
		}
	}
	if parts := strings.SplitN(heading, ", ", 2); len(parts) == 2 {
		exp.Title = parts[0]
		exp.Company = parts[1]
	} else {
		exp.Title = heading
	}
	return exp
}

func parseEducationHeading(heading string) *types.Education {
	parts := strings.Split(heading, ", ")
	edu := &types.Education{Institution: parts[0]}
	if len(parts) > 1 {
		edu.Degree = parts[1]
	}
	if len(parts) > 2 {
		edu.Field = parts[2]
	}
	return edu
}

func parseProjectHeading(heading string) *types.Project {
	proj := &types.Project{Name: heading}
	if open := strings.LastIndex(heading, "("); open >= 0 && strings.HasSuffix(heading, ")") {
		proj.Name = strings.TrimSpace(heading[:open])
		for _, tech := range strings.Split(heading[open+1:len(heading)-1], ",") {
			if t := strings.TrimSpace(tech); t != "" {
				proj.Technologies = append(proj.Technologies, t)
			}
		}
	}
	return proj
}

func parseCommunityHeading(heading string) *types.CommunityEntry {
	parts := strings.SplitN(heading, ", ", 2)
	entry := &types.CommunityEntry{Organization: parts[0]}
	if len(parts) > 1 {
		entry.Role = parts[1]
	}
	return entry
}

func parseSkillLine(skills *types.Skills, line string) {
	label, rest, found := strings.Cut(line, ": ")
	if !found {
		return
	}
	var items []string
	for _, item := range strings.Split(rest, ",") {
		if s := strings.TrimSpace(item); s != "" {
			items = append(items, s)
		}
	}
	switch strings.ToLower(label) {
	case "technical":
		skills.Technical = items
	case "tools":
		skills.Tools = items
	case "soft":
		skills.Soft = items
	}
}

func parseContactLine(basics *types.Basics, line string) {
	for _, part := range strings.Split(line, " | ") {
		part = strings.TrimSpace(part)
		switch {
		case strings.Contains(part, "@"):
			basics.Email = part
		case strings.ContainsAny(part, "0123456789") && basics.Phone == "":
			basics.Phone = part
		case strings.Contains(part, "://") || strings.Contains(part, "www."):
			basics.Website = part
		case basics.Location == "":
			basics.Location = part
		}
	}
}
