package leaderboard

import (
	"context"
	"errors"
	"testing"

	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/scoring"
)

type fakeStore struct {
	cohorts map[string][]CohortMember
}

func (f *fakeStore) LoadCohort(_ context.Context, role string) ([]CohortMember, error) {
	return f.cohorts[role], nil
}

func (f *fakeStore) LoadMember(_ context.Context, userID string) (CohortMember, error) {
	for _, members := range f.cohorts {
		for _, m := range members {
			if m.UserID == userID {
				return m, nil
			}
		}
	}
	return CohortMember{}, ErrUserNotFound
}

func TestLeaderboardRejectsUnknownRole(t *testing.T) {
	svc := NewService(&fakeStore{})
	if _, err := svc.Leaderboard(context.Background(), auth.Role("INTERN")); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestLeaderboardRanksCohort(t *testing.T) {
	store := &fakeStore{cohorts: map[string][]CohortMember{
		"WIS": {
			member("u-1", 100, scoring.RatingMeetsExpectations),
			member("u-2", 100, scoring.RatingOutstanding),
		},
	}}
	svc := NewService(store)

	ranked, err := svc.Leaderboard(context.Background(), auth.RoleWIS)
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ranked))
	}
	if ranked[0].UserID != "u-2" || ranked[0].Rank != 1 {
		t.Fatalf("expected u-2 first, got %+v", ranked[0])
	}
}

func TestUserScore(t *testing.T) {
	store := &fakeStore{cohorts: map[string][]CohortMember{
		"WIS": {member("u-1", 100, scoring.RatingExceedsExpectations)},
	}}
	svc := NewService(store)

	breakdown, err := svc.UserScore(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("user score failed: %v", err)
	}
	if breakdown.GoalScore != 0.8 {
		t.Fatalf("expected goal score 0.8, got %v", breakdown.GoalScore)
	}

	if _, err := svc.UserScore(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
