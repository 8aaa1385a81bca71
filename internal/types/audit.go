package types

// AuditSeverity classifies the overall severity of an integrity audit.
// Ordering is monotonic: none < minor_issue < major_issue.
type AuditSeverity string

// Audit severity levels
const (
	SeverityNone  AuditSeverity = "none"
	SeverityMinor AuditSeverity = "minor_issue"
	SeverityMajor AuditSeverity = "major_issue"
)

// Rank returns the numeric rank of a severity for monotonic comparison.
func (s AuditSeverity) Rank() int {
	switch s {
	case SeverityMajor:
		return 2
	case SeverityMinor:
		return 1
	default:
		return 0
	}
}

// Max returns the more severe of two severities.
func (s AuditSeverity) Max(other AuditSeverity) AuditSeverity {
	if other.Rank() > s.Rank() {
		return other
	}
	return s
}

// IntegrityIssue is one finding from the integrity audit.
type IntegrityIssue struct {
	Check    string        `json:"check"`
	Detail   string        `json:"detail"`
	Severity AuditSeverity `json:"severity"`
}

// IntegrityAuditOutput is the terminal result of the post-hoc integrity scan.
type IntegrityAuditOutput struct {
	IntegrityPassed bool             `json:"integrity_passed"`
	Issues          []IntegrityIssue `json:"issues"`
	Severity        AuditSeverity    `json:"severity"`
}
