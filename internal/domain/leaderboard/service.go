package leaderboard

import (
	"context"
	"errors"
	"time"

	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/scoring"
)

var ErrInvalidRole = errors.New("unknown role")

// StoreAPI loads scoring inputs from persistence.
type StoreAPI interface {
	LoadCohort(ctx context.Context, role string) ([]CohortMember, error)
	LoadMember(ctx context.Context, userID string) (CohortMember, error)
}

type Service struct {
	store StoreAPI
	now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, now: time.Now}
}

// Leaderboard ranks all active users of one role by their current score.
func (s *Service) Leaderboard(ctx context.Context, role auth.Role) ([]RankedUser, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	members, err := s.store.LoadCohort(ctx, string(role))
	if err != nil {
		return nil, err
	}
	return RankCohort(members, s.now()), nil
}

// UserScore computes the full score breakdown for a single user.
func (s *Service) UserScore(ctx context.Context, userID string) (scoring.ScoreBreakdown, error) {
	member, err := s.store.LoadMember(ctx, userID)
	if err != nil {
		return scoring.ScoreBreakdown{}, err
	}
	return scoring.CalculateUserScore(member.Goals, member.History, s.now()), nil
}
