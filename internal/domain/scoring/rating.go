package scoring

// Rating is the closed set of performance rating labels. The numeric scale is
// normalized so that OUTSTANDING maps to 1.0 and each step below is 0.2 lower.
type Rating string

const (
	RatingDoesNotMeet         Rating = "DOES_NOT_MEET"
	RatingImprovementNeeded   Rating = "IMPROVEMENT_NEEDED"
	RatingMeetsExpectations   Rating = "MEETS_EXPECTATIONS"
	RatingExceedsExpectations Rating = "EXCEEDS_EXPECTATIONS"
	RatingOutstanding         Rating = "OUTSTANDING"
)

var ratingScores = map[Rating]float64{
	RatingDoesNotMeet:         0.2,
	RatingImprovementNeeded:   0.4,
	RatingMeetsExpectations:   0.6,
	RatingExceedsExpectations: 0.8,
	RatingOutstanding:         1.0,
}

// Score maps a rating to its normalized numeric value. Unknown ratings score 0
// so that aggregation over partially bad data degrades instead of failing.
func (r Rating) Score() float64 {
	return ratingScores[r]
}

func (r Rating) Valid() bool {
	_, ok := ratingScores[r]
	return ok
}

// AllRatings lists the valid labels from worst to best.
func AllRatings() []Rating {
	return []Rating{
		RatingDoesNotMeet,
		RatingImprovementNeeded,
		RatingMeetsExpectations,
		RatingExceedsExpectations,
		RatingOutstanding,
	}
}
