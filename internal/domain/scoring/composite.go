package scoring

import "time"

// Top-reason messages shown next to a user's score. The selection order is
// load-bearing for the guidance text users see; keep it in sync with the
// precedence in CalculateUserScore.
const (
	ReasonNoRatings         = "No ratings yet"
	ReasonTrendDeclining    = "Rating trend is declining"
	ReasonEvidenceMissing   = "Evidence is missing or outdated"
	ReasonBelowExpectations = "Current ratings are below expectations"
	ReasonTrendImproving    = "Rating trend is improving"
	ReasonMeeting           = "Performance is meeting expectations"
)

// CalculateUserScore combines goal, evidence and trend scoring into one
// breakdown. It is a pure function: identical inputs produce identical output.
func CalculateUserScore(goals []GoalInput, history []RatingSample, now time.Time) ScoreBreakdown {
	goalScore, goalDetails := CalculateGoalScore(goals)
	evidenceScore, evidenceDetail := CalculateEvidenceScore(goals, now)
	trendAdjustment, trendDirection := CalculateTrendAdjustment(history)

	breakdown := ScoreBreakdown{
		TotalScore:      goalScore + evidenceScore + trendAdjustment,
		GoalScore:       goalScore,
		EvidenceScore:   evidenceScore,
		TrendAdjustment: trendAdjustment,
		Goals:           goalDetails,
		Evidence:        evidenceDetail,
		Trend:           TrendDetail{Direction: trendDirection, Adjustment: trendAdjustment},
		TopReason:       topReason(goals, goalScore, evidenceScore, trendDirection),
	}
	return breakdown
}

func topReason(goals []GoalInput, goalScore, evidenceScore float64, direction TrendDirection) string {
	anyRated := false
	for _, goal := range goals {
		if goal.Rating != "" {
			anyRated = true
			break
		}
	}
	switch {
	case !anyRated:
		return ReasonNoRatings
	case direction == TrendDeclining:
		return ReasonTrendDeclining
	case evidenceScore < 0.1:
		return ReasonEvidenceMissing
	case goalScore < 0.5:
		return ReasonBelowExpectations
	case direction == TrendImproving:
		return ReasonTrendImproving
	default:
		return ReasonMeeting
	}
}
