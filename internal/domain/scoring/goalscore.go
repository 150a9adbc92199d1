package scoring

// CalculateGoalScore aggregates weighted rating contributions. Each rated goal
// contributes weightage/100 times its rating score; unrated goals contribute
// zero and are excluded from the detail list. The sum is deliberately not
// renormalized over the rated subset, so missing ratings lower the total.
func CalculateGoalScore(goals []GoalInput) (float64, []GoalContribution) {
	var total float64
	var details []GoalContribution

	for _, goal := range goals {
		if goal.Rating == "" {
			continue
		}
		ratingScore := goal.Rating.Score()
		contribution := (goal.Weightage / 100) * ratingScore
		total += contribution
		details = append(details, GoalContribution{
			GoalTitle:    goal.GoalTitle,
			Weightage:    goal.Weightage,
			Rating:       goal.Rating,
			RatingScore:  ratingScore,
			Contribution: contribution,
		})
	}

	return total, details
}
