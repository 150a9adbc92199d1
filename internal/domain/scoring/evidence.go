package scoring

import "time"

// evidenceWeight controls how much the evidence score contributes to the
// composite total: at most 0.2.
const evidenceWeight = 0.2

// CalculateEvidenceScore scores the freshness, volume and richness of evidence
// across the goals that currently carry a rating. Unrated goals are excluded;
// evidence quality is only meaningful for an evaluated goal. With no rated
// goals at all the result is zero across the board.
func CalculateEvidenceScore(goals []GoalInput, now time.Time) (float64, EvidenceDetail) {
	var rated []GoalInput
	for _, goal := range goals {
		if goal.Rating != "" {
			rated = append(rated, goal)
		}
	}
	if len(rated) == 0 {
		return 0, EvidenceDetail{}
	}

	var recency, completeness, quality float64
	for _, goal := range rated {
		recency += recencyScore(goal.LastEvidenceAt, now)
		completeness += completenessScore(goal.EvidenceCount)
		quality += qualityScore(goal)
	}
	count := float64(len(rated))
	detail := EvidenceDetail{
		RecencyScore:      recency / count,
		CompletenessScore: completeness / count,
		QualityScore:      quality / count,
	}

	// Weighted average: recency 40%, completeness 30%, quality 30%.
	weighted := detail.RecencyScore*0.4 + detail.CompletenessScore*0.3 + detail.QualityScore*0.3
	return weighted * evidenceWeight, detail
}

func recencyScore(lastEvidence, now time.Time) float64 {
	if lastEvidence.IsZero() {
		return 0
	}
	days := int(now.Sub(lastEvidence).Hours() / 24)
	switch {
	case days <= 0:
		return 1.0
	case days <= 7:
		return 0.8
	case days <= 14:
		return 0.6
	case days <= 21:
		return 0.4
	case days <= 30:
		return 0.2
	default:
		return 0
	}
}

func completenessScore(count int) float64 {
	switch {
	case count == 0:
		return 0
	case count >= 5:
		return 1.0
	case count >= 3:
		return 0.8
	case count >= 2:
		return 0.6
	default:
		return 0.4
	}
}

func qualityScore(goal GoalInput) float64 {
	if goal.EvidenceCount == 0 {
		return 0
	}
	score := 0.5
	if goal.HasMetrics {
		score += 0.25
	}
	if goal.HasLinks {
		score += 0.25
	}
	return score
}
