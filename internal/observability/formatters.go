package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-guard/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxIssuesToShow bounds how many audit issues are listed in verbose mode
	maxIssuesToShow = 5
)

// Printer handles formatted output for verbose CLI mode.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScore outputs a human-readable breakdown of an ATS score.
func (p *Printer) PrintScore(title string, score *types.AtsScoreResult) {
	if score == nil {
		return
	}

	var sb strings.Builder
	b := score.CategoryBreakdown
	sb.WriteString(fmt.Sprintf("Total:                %d / 100\n", score.AtsScore))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Keyword match:        %d / 40\n", b.KeywordMatch))
	sb.WriteString(fmt.Sprintf("Section completeness: %d / 20\n", b.SectionCompleteness))
	sb.WriteString(fmt.Sprintf("Formatting safety:    %d / 15\n", b.FormattingSafety))
	sb.WriteString(fmt.Sprintf("Content quality:      %d / 15\n", b.ContentQuality))
	sb.WriteString(fmt.Sprintf("Job match relevance:  %d / 10", b.JobMatchRelevance))

	p.printBox(title, sb.String())
}

// PrintAudit outputs a human-readable summary of the integrity audit.
func (p *Printer) PrintAudit(audit *types.IntegrityAuditOutput) {
	if audit == nil {
		return
	}

	var sb strings.Builder
	if audit.IntegrityPassed {
		sb.WriteString("Result:   passed\n")
	} else {
		sb.WriteString("Result:   FAILED\n")
	}
	sb.WriteString(fmt.Sprintf("Severity: %s\n", audit.Severity))
	sb.WriteString(fmt.Sprintf("Issues:   %d", len(audit.Issues)))

	shown := audit.Issues
	if len(shown) > maxIssuesToShow {
		shown = shown[:maxIssuesToShow]
	}
	for _, issue := range shown {
		sb.WriteString(fmt.Sprintf("\n- [%s] %s: %s", issue.Severity, issue.Check, issue.Detail))
	}
	if len(audit.Issues) > maxIssuesToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(audit.Issues)-maxIssuesToShow))
	}

	p.printBox("Integrity Audit", sb.String())
}

// PrintOutcome outputs the one-line outcome summary for a finished request.
func (p *Printer) PrintOutcome(result *types.OrchestrationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Success:            %t\n", result.Success))
	sb.WriteString(fmt.Sprintf("Needs confirmation: %t\n", result.NeedsUserConfirmation))
	sb.WriteString(fmt.Sprintf("Bullets rewritten:  %d\n", len(result.Bullets)))
	sb.WriteString(fmt.Sprintf("AI calls:           %d", len(result.RawCalls)))
	if result.Error != "" {
		sb.WriteString(fmt.Sprintf("\nError: %s", result.Error))
	}

	p.printBox("Generation Outcome", sb.String())
}
