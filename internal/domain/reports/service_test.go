package reports

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"perftrack/internal/domain/leaderboard"
	"perftrack/internal/domain/scoring"
)

type fakeSource struct {
	members map[string]leaderboard.CohortMember
}

func (f *fakeSource) LoadMember(_ context.Context, userID string) (leaderboard.CohortMember, error) {
	m, ok := f.members[userID]
	if !ok {
		return leaderboard.CohortMember{}, leaderboard.ErrUserNotFound
	}
	return m, nil
}

func TestGenerateScorecardPDF(t *testing.T) {
	source := &fakeSource{members: map[string]leaderboard.CohortMember{
		"u-1": {
			UserID: "u-1",
			Name:   "Test Worker",
			Role:   "WIS",
			Goals: []scoring.GoalInput{
				{GoalID: "g1", GoalTitle: "Reduce intake backlog", Weightage: 100, Rating: scoring.RatingExceedsExpectations},
			},
		},
	}}
	svc := New(source)

	pdf, err := svc.GenerateScorecardPDF(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("expected non-empty PDF output")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected PDF header, got %q", pdf[:8])
	}
}

func TestGenerateScorecardPDFUnknownUser(t *testing.T) {
	svc := New(&fakeSource{members: map[string]leaderboard.CohortMember{}})
	if _, err := svc.GenerateScorecardPDF(context.Background(), "missing"); !errors.Is(err, leaderboard.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
