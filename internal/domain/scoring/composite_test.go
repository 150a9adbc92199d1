package scoring

import (
	"reflect"
	"testing"
	"time"
)

func TestCalculateUserScoreCombinesComponents(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	goals := []GoalInput{
		{
			GoalTitle:      "Quality",
			Weightage:      40,
			Rating:         RatingExceedsExpectations,
			LastEvidenceAt: now.Add(-24 * time.Hour),
			EvidenceCount:  3,
			HasMetrics:     true,
			HasLinks:       true,
		},
	}
	history := []RatingSample{
		sampleAt(RatingMeetsExpectations, 1),
		sampleAt(RatingMeetsExpectations, 2),
		sampleAt(RatingOutstanding, 3),
	}

	breakdown := CalculateUserScore(goals, history, now)

	wantTotal := breakdown.GoalScore + breakdown.EvidenceScore + breakdown.TrendAdjustment
	if !almostEqual(breakdown.TotalScore, wantTotal) {
		t.Fatalf("expected total %v, got %v", wantTotal, breakdown.TotalScore)
	}
	if !almostEqual(breakdown.GoalScore, 0.32) {
		t.Fatalf("expected goal score 0.32, got %v", breakdown.GoalScore)
	}
	if breakdown.Trend.Direction != TrendImproving {
		t.Fatalf("expected improving trend, got %v", breakdown.Trend.Direction)
	}
	if !almostEqual(breakdown.TrendAdjustment, 0.02) {
		t.Fatalf("expected trend adjustment 0.02, got %v", breakdown.TrendAdjustment)
	}
}

func TestCalculateUserScoreIsDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	goals := []GoalInput{
		{GoalTitle: "A", Weightage: 60, Rating: RatingMeetsExpectations, EvidenceCount: 2, LastEvidenceAt: now.Add(-48 * time.Hour)},
		{GoalTitle: "B", Weightage: 40},
	}
	history := []RatingSample{
		sampleAt(RatingMeetsExpectations, 1),
		sampleAt(RatingImprovementNeeded, 2),
		sampleAt(RatingMeetsExpectations, 3),
	}

	first := CalculateUserScore(goals, history, now)
	second := CalculateUserScore(goals, history, now)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical breakdowns, got %+v vs %+v", first, second)
	}
}

func TestTopReasonPrecedence(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	richGoal := func(rating Rating, weightage float64) GoalInput {
		return GoalInput{
			GoalTitle:      "G",
			Weightage:      weightage,
			Rating:         rating,
			LastEvidenceAt: now,
			EvidenceCount:  5,
			HasMetrics:     true,
			HasLinks:       true,
		}
	}
	flatHistory := []RatingSample{
		sampleAt(RatingOutstanding, 1),
		sampleAt(RatingOutstanding, 2),
	}
	decliningHistory := []RatingSample{
		sampleAt(RatingOutstanding, 1),
		sampleAt(RatingOutstanding, 2),
		sampleAt(RatingDoesNotMeet, 3),
		sampleAt(RatingDoesNotMeet, 4),
	}
	improvingHistory := []RatingSample{
		sampleAt(RatingMeetsExpectations, 1),
		sampleAt(RatingMeetsExpectations, 2),
		sampleAt(RatingOutstanding, 3),
	}

	cases := []struct {
		name    string
		goals   []GoalInput
		history []RatingSample
		want    string
	}{
		{"no ratings", []GoalInput{{GoalTitle: "G", Weightage: 100}}, nil, ReasonNoRatings},
		{"declining wins over weak evidence", []GoalInput{{GoalTitle: "G", Weightage: 100, Rating: RatingOutstanding}}, decliningHistory, ReasonTrendDeclining},
		{"missing evidence", []GoalInput{{GoalTitle: "G", Weightage: 100, Rating: RatingOutstanding}}, flatHistory, ReasonEvidenceMissing},
		{"below expectations", []GoalInput{richGoal(RatingDoesNotMeet, 100)}, flatHistory, ReasonBelowExpectations},
		{"improving", []GoalInput{richGoal(RatingOutstanding, 100)}, improvingHistory, ReasonTrendImproving},
		{"meeting expectations", []GoalInput{richGoal(RatingOutstanding, 100)}, flatHistory, ReasonMeeting},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			breakdown := CalculateUserScore(tc.goals, tc.history, now)
			if breakdown.TopReason != tc.want {
				t.Fatalf("expected reason %q, got %q", tc.want, breakdown.TopReason)
			}
		})
	}
}
