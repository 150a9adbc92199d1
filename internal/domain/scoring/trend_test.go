package scoring

import (
	"testing"
	"time"
)

func sampleAt(rating Rating, day int) RatingSample {
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	return RatingSample{Rating: rating, At: base.AddDate(0, 0, day)}
}

func TestTrendTooLittleHistoryIsStable(t *testing.T) {
	adjustment, direction := CalculateTrendAdjustment([]RatingSample{sampleAt(RatingOutstanding, 1)})
	if adjustment != 0 || direction != TrendStable {
		t.Fatalf("expected stable/0 for single sample, got %v/%v", direction, adjustment)
	}

	adjustment, direction = CalculateTrendAdjustment(nil)
	if adjustment != 0 || direction != TrendStable {
		t.Fatalf("expected stable/0 for empty history, got %v/%v", direction, adjustment)
	}
}

func TestTrendImprovingThreeSamples(t *testing.T) {
	history := []RatingSample{
		sampleAt(RatingMeetsExpectations, 1),
		sampleAt(RatingMeetsExpectations, 2),
		sampleAt(RatingOutstanding, 3),
	}
	adjustment, direction := CalculateTrendAdjustment(history)
	if direction != TrendImproving {
		t.Fatalf("expected improving, got %v", direction)
	}
	// first half mean 0.6, second half mean 0.8, diff 0.2 -> adjustment 0.02
	if !almostEqual(adjustment, 0.02) {
		t.Fatalf("expected adjustment 0.02, got %v", adjustment)
	}
	if adjustment <= 0 || adjustment > 0.1 {
		t.Fatalf("adjustment %v out of (0, 0.1]", adjustment)
	}
}

func TestTrendDecliningIsBounded(t *testing.T) {
	history := []RatingSample{
		sampleAt(RatingOutstanding, 1),
		sampleAt(RatingOutstanding, 2),
		sampleAt(RatingDoesNotMeet, 3),
		sampleAt(RatingDoesNotMeet, 4),
	}
	adjustment, direction := CalculateTrendAdjustment(history)
	if direction != TrendDeclining {
		t.Fatalf("expected declining, got %v", direction)
	}
	if adjustment < -0.1 || adjustment >= 0 {
		t.Fatalf("adjustment %v out of [-0.1, 0)", adjustment)
	}
}

func TestTrendUsesOnlyLastFiveSamples(t *testing.T) {
	history := []RatingSample{
		sampleAt(RatingDoesNotMeet, 1),
		sampleAt(RatingDoesNotMeet, 2),
		sampleAt(RatingOutstanding, 3),
		sampleAt(RatingOutstanding, 4),
		sampleAt(RatingOutstanding, 5),
		sampleAt(RatingOutstanding, 6),
		sampleAt(RatingOutstanding, 7),
	}
	adjustment, direction := CalculateTrendAdjustment(history)
	// Only days 3..7 are considered and they are flat.
	if direction != TrendStable || adjustment != 0 {
		t.Fatalf("expected stable/0 over flat window, got %v/%v", direction, adjustment)
	}
}

func TestTrendSortsUnsortedInput(t *testing.T) {
	history := []RatingSample{
		sampleAt(RatingOutstanding, 3),
		sampleAt(RatingMeetsExpectations, 1),
		sampleAt(RatingMeetsExpectations, 2),
	}
	_, direction := CalculateTrendAdjustment(history)
	if direction != TrendImproving {
		t.Fatalf("expected improving after sorting by time, got %v", direction)
	}
}

func TestTrendStableWithinThreshold(t *testing.T) {
	history := []RatingSample{
		sampleAt(RatingMeetsExpectations, 1),
		sampleAt(RatingMeetsExpectations, 2),
	}
	adjustment, direction := CalculateTrendAdjustment(history)
	if direction != TrendStable || adjustment != 0 {
		t.Fatalf("expected stable/0, got %v/%v", direction, adjustment)
	}
}

func TestTrendThresholdIsExclusive(t *testing.T) {
	// Halves average 0.6 and 0.7, a diff of exactly 0.1. The threshold
	// requires strictly more than one step of movement.
	history := []RatingSample{
		sampleAt(RatingMeetsExpectations, 1),
		sampleAt(RatingMeetsExpectations, 2),
		sampleAt(RatingExceedsExpectations, 3),
	}
	adjustment, direction := CalculateTrendAdjustment(history)
	if direction != TrendStable || adjustment != 0 {
		t.Fatalf("expected stable/0 at the threshold, got %v/%v", direction, adjustment)
	}
}
