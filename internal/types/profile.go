// Package types provides type definitions for structured data used throughout the resume-guard system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Basics holds the contact facts for a candidate.
type Basics struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Skills holds the three disjoint categorized skill lists.
type Skills struct {
	Technical []string `json:"technical"`
	Tools     []string `json:"tools"`
	Soft      []string `json:"soft"`
}

// All returns the union of the three skill categories in category order.
func (s Skills) All() []string {
	all := make([]string, 0, len(s.Technical)+len(s.Tools)+len(s.Soft))
	all = append(all, s.Technical...)
	all = append(all, s.Tools...)
	all = append(all, s.Soft...)
	return all
}

// Count returns the total number of skills across all categories.
func (s Skills) Count() int {
	return len(s.Technical) + len(s.Tools) + len(s.Soft)
}

// Experience represents one position held by the candidate.
type Experience struct {
	Title     string   `json:"title"`
	Company   string   `json:"company"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Location  string   `json:"location,omitempty"`
	Bullets   []string `json:"bullets"`
}

// Education represents one education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Coursework  string `json:"relevant_coursework,omitempty"`
}

// Project represents one project entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Certification represents one certification entry.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// CommunityEntry represents volunteer or community involvement.
type CommunityEntry struct {
	Organization string   `json:"organization"`
	Role         string   `json:"role,omitempty"`
	Bullets      []string `json:"bullets,omitempty"`
}

// CandidateProfile is the structured resume profile. Every fact present must be
// traceable to the original resume text or a verified secondary source.
type CandidateProfile struct {
	Basics         Basics           `json:"basics"`
	Summary        string           `json:"summary"`
	Skills         Skills           `json:"skills"`
	Experience     []Experience     `json:"experience"`
	Education      []Education      `json:"education"`
	Projects       []Project        `json:"projects"`
	Certifications []Certification  `json:"certifications"`
	Community      []CommunityEntry `json:"community,omitempty"`

	// RawText is the full text of the original resume, kept for
	// verbatim-match and hallucination checks.
	RawText string `json:"raw_text,omitempty"`
}

// SectionCount returns the number of non-empty sections among summary, skills,
// experience, education, projects, and community.
func (p *CandidateProfile) SectionCount() int {
	count := 0
	if strings.TrimSpace(p.Summary) != "" {
		count++
	}
	if p.Skills.Count() > 0 {
		count++
	}
	if len(p.Experience) > 0 {
		count++
	}
	if len(p.Education) > 0 {
		count++
	}
	if len(p.Projects) > 0 {
		count++
	}
	if len(p.Community) > 0 {
		count++
	}
	return count
}

// FullText concatenates every textual field value of the profile. It is the
// candidate-side source text for vocabulary and hallucination checks.
func (p *CandidateProfile) FullText() string {
	var sb strings.Builder
	write := func(fields ...string) {
		for _, f := range fields {
			if f != "" {
				sb.WriteString(f)
				sb.WriteString("\n")
			}
		}
	}
	write(p.Basics.Name, p.Basics.Email, p.Basics.Phone, p.Basics.Location, p.Basics.Website)
	write(p.Summary)
	write(p.Skills.All()...)
	for _, exp := range p.Experience {
		write(exp.Title, exp.Company, exp.StartDate, exp.EndDate, exp.Location)
		write(exp.Bullets...)
	}
	for _, edu := range p.Education {
		write(edu.Institution, edu.Degree, edu.Field, edu.StartDate, edu.EndDate, edu.Coursework)
	}
	for _, proj := range p.Projects {
		write(proj.Name, proj.Description)
		write(proj.Technologies...)
	}
	for _, cert := range p.Certifications {
		write(cert.Name, cert.Issuer, cert.Date)
	}
	for _, c := range p.Community {
		write(c.Organization, c.Role)
		write(c.Bullets...)
	}
	write(p.RawText)
	return sb.String()
}

// SecondaryPosition is a position listed on a secondary (network) profile.
type SecondaryPosition struct {
	Title     string   `json:"title"`
	Company   string   `json:"company"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Bullets   []string `json:"bullets,omitempty"`
}

// SecondaryProfile is an optional professional-network profile used only as a
// verified enrichment source; its RawText is the ground truth for every fact
// copied out of it.
type SecondaryProfile struct {
	RawText        string              `json:"raw_text"`
	Skills         []string            `json:"skills,omitempty"`
	Certifications []Certification     `json:"certifications,omitempty"`
	Positions      []SecondaryPosition `json:"positions,omitempty"`
}
