package goals

import (
	"context"
	"strings"

	"perftrack/internal/domain/scoring"
)

// StoreAPI is the persistence contract for goal assignments and evidence.
type StoreAPI interface {
	ListAssignments(ctx context.Context, userID string) ([]GoalAssignment, error)
	GetAssignment(ctx context.Context, assignmentID string) (GoalAssignment, error)
	InsertEvidence(ctx context.Context, assignmentID, text string, links []string, metrics map[string]float64) (EvidenceLog, error)
	ListEvidence(ctx context.Context, assignmentID string) ([]EvidenceLog, error)
	SetTargetRating(ctx context.Context, userID, target string) error
}

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) ListAssignments(ctx context.Context, userID string) ([]GoalAssignment, error) {
	return s.store.ListAssignments(ctx, userID)
}

func (s *Service) GetAssignment(ctx context.Context, assignmentID string) (GoalAssignment, error) {
	return s.store.GetAssignment(ctx, assignmentID)
}

// AddEvidence appends an evidence log to the caller's own active assignment.
// Evidence is never mutated afterwards.
func (s *Service) AddEvidence(ctx context.Context, userID, assignmentID, text string, links []string, metrics map[string]float64) (EvidenceLog, error) {
	if strings.TrimSpace(text) == "" {
		return EvidenceLog{}, ErrEmptyEvidenceText
	}
	assignment, err := s.store.GetAssignment(ctx, assignmentID)
	if err != nil {
		return EvidenceLog{}, err
	}
	if assignment.UserID != userID {
		return EvidenceLog{}, ErrNotAssignmentOwner
	}
	if assignment.Status != AssignmentStatusActive {
		return EvidenceLog{}, ErrAssignmentNotActive
	}
	return s.store.InsertEvidence(ctx, assignmentID, text, links, metrics)
}

func (s *Service) ListEvidence(ctx context.Context, assignmentID string) ([]EvidenceLog, error) {
	return s.store.ListEvidence(ctx, assignmentID)
}

// SetTargetRating stores the user's aspiration for the cycle. Only the upper
// part of the scale is a sensible target.
func (s *Service) SetTargetRating(ctx context.Context, userID string, target scoring.Rating) error {
	switch target {
	case scoring.RatingMeetsExpectations, scoring.RatingExceedsExpectations, scoring.RatingOutstanding:
	default:
		return ErrInvalidTargetRating
	}
	return s.store.SetTargetRating(ctx, userID, string(target))
}
