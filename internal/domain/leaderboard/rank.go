package leaderboard

import (
	"sort"
	"time"

	"perftrack/internal/domain/scoring"
)

// RankCohort scores every member and orders them by total score descending.
// Equal scores are broken by user ID ascending so the ordering is stable
// across runs. Ranks are assigned 1..N with no gaps.
func RankCohort(members []CohortMember, now time.Time) []RankedUser {
	ranked := make([]RankedUser, 0, len(members))
	for _, m := range members {
		ranked = append(ranked, RankedUser{
			UserID:    m.UserID,
			Name:      m.Name,
			Role:      m.Role,
			Breakdown: scoring.CalculateUserScore(m.Goals, m.History, now),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Breakdown.TotalScore != ranked[j].Breakdown.TotalScore {
			return ranked[i].Breakdown.TotalScore > ranked[j].Breakdown.TotalScore
		}
		return ranked[i].UserID < ranked[j].UserID
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
