package goals

import "regexp"

// quantifiablePattern matches figures like "40%", "3x" or "1200 requests" in
// free-text evidence, so entries count as metric-backed even when the author
// did not fill the structured metrics field.
var quantifiablePattern = regexp.MustCompile(`\d+%|\d+x|\d+ (users|requests|ms|seconds|minutes)`)

func HasQuantifiableMetrics(text string) bool {
	return quantifiablePattern.MatchString(text)
}

// Summarize reduces an assignment's evidence logs to the summary consumed by
// scoring. Logs may arrive in any order.
func Summarize(logs []EvidenceLog) EvidenceSummary {
	summary := EvidenceSummary{Count: len(logs)}
	for _, log := range logs {
		if log.CreatedAt.After(summary.LastEvidenceAt) {
			summary.LastEvidenceAt = log.CreatedAt
		}
		if len(log.Metrics) > 0 || HasQuantifiableMetrics(log.Text) {
			summary.HasMetrics = true
		}
		if len(log.Links) > 0 {
			summary.HasLinks = true
		}
	}
	return summary
}
