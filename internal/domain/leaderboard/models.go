package leaderboard

import "perftrack/internal/domain/scoring"

// CohortMember is one user's scoring input, assembled from assignments,
// evidence, and rating history.
type CohortMember struct {
	UserID  string
	Name    string
	Role    string
	Goals   []scoring.GoalInput
	History []scoring.RatingSample
}

// RankedUser is a leaderboard row. Rank is 1-based and dense.
type RankedUser struct {
	Rank      int                    `json:"rank"`
	UserID    string                 `json:"userId"`
	Name      string                 `json:"name"`
	Role      string                 `json:"role"`
	Breakdown scoring.ScoreBreakdown `json:"breakdown"`
}
