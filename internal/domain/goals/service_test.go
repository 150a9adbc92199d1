package goals

import (
	"context"
	"errors"
	"testing"
	"time"

	"perftrack/internal/domain/scoring"
)

type fakeStore struct {
	assignments map[string]GoalAssignment
	evidence    map[string][]EvidenceLog
	targets     map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		assignments: map[string]GoalAssignment{},
		evidence:    map[string][]EvidenceLog{},
		targets:     map[string]string{},
	}
}

func (f *fakeStore) ListAssignments(_ context.Context, userID string) ([]GoalAssignment, error) {
	var out []GoalAssignment
	for _, a := range f.assignments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) GetAssignment(_ context.Context, assignmentID string) (GoalAssignment, error) {
	a, ok := f.assignments[assignmentID]
	if !ok {
		return GoalAssignment{}, ErrAssignmentNotFound
	}
	return a, nil
}

func (f *fakeStore) InsertEvidence(_ context.Context, assignmentID, text string, links []string, metrics map[string]float64) (EvidenceLog, error) {
	log := EvidenceLog{
		ID:           "ev-1",
		AssignmentID: assignmentID,
		Text:         text,
		Links:        links,
		Metrics:      metrics,
		CreatedAt:    time.Now(),
	}
	f.evidence[assignmentID] = append(f.evidence[assignmentID], log)
	return log, nil
}

func (f *fakeStore) ListEvidence(_ context.Context, assignmentID string) ([]EvidenceLog, error) {
	return f.evidence[assignmentID], nil
}

func (f *fakeStore) SetTargetRating(_ context.Context, userID, target string) error {
	f.targets[userID] = target
	return nil
}

func TestAddEvidenceChecks(t *testing.T) {
	store := newFakeStore()
	store.assignments["as-1"] = GoalAssignment{ID: "as-1", UserID: "u1", Status: AssignmentStatusActive}
	store.assignments["as-2"] = GoalAssignment{ID: "as-2", UserID: "u1", Status: AssignmentStatusCompleted}
	svc := NewService(store)

	if _, err := svc.AddEvidence(context.Background(), "u1", "as-1", "  ", nil, nil); !errors.Is(err, ErrEmptyEvidenceText) {
		t.Fatalf("expected ErrEmptyEvidenceText, got %v", err)
	}
	if _, err := svc.AddEvidence(context.Background(), "u2", "as-1", "did things", nil, nil); !errors.Is(err, ErrNotAssignmentOwner) {
		t.Fatalf("expected ErrNotAssignmentOwner, got %v", err)
	}
	if _, err := svc.AddEvidence(context.Background(), "u1", "as-2", "did things", nil, nil); !errors.Is(err, ErrAssignmentNotActive) {
		t.Fatalf("expected ErrAssignmentNotActive, got %v", err)
	}
	if _, err := svc.AddEvidence(context.Background(), "u1", "as-missing", "did things", nil, nil); !errors.Is(err, ErrAssignmentNotFound) {
		t.Fatalf("expected ErrAssignmentNotFound, got %v", err)
	}

	log, err := svc.AddEvidence(context.Background(), "u1", "as-1", "closed 30 requests", []string{"https://tracker/9"}, nil)
	if err != nil {
		t.Fatalf("add evidence failed: %v", err)
	}
	if log.AssignmentID != "as-1" {
		t.Fatalf("unexpected log: %+v", log)
	}
}

func TestSetTargetRating(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	if err := svc.SetTargetRating(context.Background(), "u1", scoring.RatingDoesNotMeet); !errors.Is(err, ErrInvalidTargetRating) {
		t.Fatalf("expected ErrInvalidTargetRating, got %v", err)
	}
	if err := svc.SetTargetRating(context.Background(), "u1", scoring.Rating("WHATEVER")); !errors.Is(err, ErrInvalidTargetRating) {
		t.Fatalf("expected ErrInvalidTargetRating for unknown value, got %v", err)
	}
	if err := svc.SetTargetRating(context.Background(), "u1", scoring.RatingOutstanding); err != nil {
		t.Fatalf("set target failed: %v", err)
	}
	if store.targets["u1"] != string(scoring.RatingOutstanding) {
		t.Fatalf("target not persisted, got %q", store.targets["u1"])
	}
}
