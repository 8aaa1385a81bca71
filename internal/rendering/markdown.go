// Package rendering turns a composed resume into deterministic markdown and
// re-derives a structured profile from that markdown, so the final score is
// computed over what the reader will actually see.
package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-guard/internal/types"
)

// Section headers in fixed render order.
const (
	headerSummary    = "## Summary"
	headerSkills     = "## Skills"
	headerExperience = "## Experience"
	headerEducation  = "## Education"
	headerProjects   = "## Projects"
	headerCommunity  = "## Community"
)

// RenderMarkdown renders a composed resume as markdown. Section order is
// fixed; empty sections are omitted entirely. Rendering the same input always
// produces identical output.
func RenderMarkdown(resume *types.ComposeResumeOutput) string {
	var sb strings.Builder

	if name := strings.TrimSpace(resume.Basics.Name); name != "" {
		sb.WriteString("# " + name + "\n")
		contact := contactLine(resume.Basics)
		if contact != "" {
			sb.WriteString(contact + "\n")
		}
		sb.WriteString("\n")
	}

	if summary := strings.TrimSpace(resume.Summary); summary != "" {
		sb.WriteString(headerSummary + "\n")
		sb.WriteString(summary + "\n\n")
	}

	if resume.Skills.Count() > 0 {
		sb.WriteString(headerSkills + "\n")
		writeSkillLine(&sb, "Technical", resume.Skills.Technical)
		writeSkillLine(&sb, "Tools", resume.Skills.Tools)
		writeSkillLine(&sb, "Soft", resume.Skills.Soft)
		sb.WriteString("\n")
	}

	if len(resume.Experience) > 0 {
		sb.WriteString(headerExperience + "\n")
		for _, exp := range resume.Experience {
			sb.WriteString(fmt.Sprintf("### %s, %s (%s to %s)\n", exp.Title, exp.Company, exp.StartDate, exp.EndDate))
			for _, bullet := range exp.Bullets {
				sb.WriteString("- " + bullet + "\n")
			}
		}
		sb.WriteString("\n")
	}

	if len(resume.Education) > 0 {
		sb.WriteString(headerEducation + "\n")
		for _, edu := range resume.Education {
			line := "### " + edu.Institution
			if edu.Degree != "" {
				line += ", " + edu.Degree
			}
			if edu.Field != "" {
				line += ", " + edu.Field
			}
			sb.WriteString(line + "\n")
			if edu.Coursework != "" {
				sb.WriteString("Relevant coursework: " + edu.Coursework + "\n")
			}
		}
		sb.WriteString("\n")
	}

	if len(resume.Projects) > 0 {
		sb.WriteString(headerProjects + "\n")
		for _, proj := range resume.Projects {
			line := "### " + proj.Name
			if len(proj.Technologies) > 0 {
				line += " (" + strings.Join(proj.Technologies, ", ") + ")"
			}
			sb.WriteString(line + "\n")
			if proj.Description != "" {
				sb.WriteString(proj.Description + "\n")
			}
		}
		sb.WriteString("\n")
	}

	if len(resume.Community) > 0 {
		sb.WriteString(headerCommunity + "\n")
		for _, c := range resume.Community {
			line := "### " + c.Organization
			if c.Role != "" {
				line += ", " + c.Role
			}
			sb.WriteString(line + "\n")
			for _, bullet := range c.Bullets {
				sb.WriteString("- " + bullet + "\n")
			}
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func contactLine(b types.Basics) string {
	var parts []string
	for _, p := range []string{b.Email, b.Phone, b.Location, b.Website} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, " | ")
}

func writeSkillLine(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ": " + strings.Join(items, ", ") + "\n")
}
