package scoring

import "sort"

type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// trendWindow is how many recent ratings the trajectory is judged on.
const trendWindow = 5

// CalculateTrendAdjustment detects whether a user's ratings are trending up or
// down and converts that into a bounded score adjustment in [-0.1, 0.1]. The
// history may arrive unsorted; it is ordered by time before windowing.
func CalculateTrendAdjustment(history []RatingSample) (float64, TrendDirection) {
	if len(history) < 2 {
		return 0, TrendStable
	}

	sorted := make([]RatingSample, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At.Before(sorted[j].At)
	})

	recent := sorted
	if len(recent) > trendWindow {
		recent = recent[len(recent)-trendWindow:]
	}

	scores := make([]float64, len(recent))
	for i, sample := range recent {
		scores[i] = sample.Rating.Score()
	}

	// Earlier half may be smaller when the window length is odd.
	midpoint := len(scores) / 2
	firstAvg := mean(scores[:midpoint])
	secondAvg := mean(scores[midpoint:])
	diff := secondAvg - firstAvg

	switch {
	case diff > 0.1:
		return min(diff*0.1, 0.1), TrendImproving
	case diff < -0.1:
		return max(diff*0.1, -0.1), TrendDeclining
	default:
		return 0, TrendStable
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
