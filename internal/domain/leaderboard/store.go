package leaderboard

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perftrack/internal/domain/goals"
	"perftrack/internal/domain/scoring"
)

var ErrUserNotFound = errors.New("user not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// LoadCohort assembles scoring inputs for every active user of one role.
func (s *Store) LoadCohort(ctx context.Context, role string) ([]CohortMember, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, role
    FROM users
    WHERE role = $1 AND status = 'ACTIVE'
    ORDER BY id
  `, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []CohortMember
	for rows.Next() {
		var m CohortMember
		if err := rows.Scan(&m.UserID, &m.Name, &m.Role); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range members {
		if err := s.fillMember(ctx, &members[i]); err != nil {
			return nil, err
		}
	}
	return members, nil
}

// LoadMember assembles scoring inputs for a single user.
func (s *Store) LoadMember(ctx context.Context, userID string) (CohortMember, error) {
	var m CohortMember
	err := s.DB.QueryRow(ctx, "SELECT id, name, role FROM users WHERE id = $1", userID).
		Scan(&m.UserID, &m.Name, &m.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return CohortMember{}, ErrUserNotFound
	}
	if err != nil {
		return CohortMember{}, err
	}
	if err := s.fillMember(ctx, &m); err != nil {
		return CohortMember{}, err
	}
	return m, nil
}

func (s *Store) fillMember(ctx context.Context, m *CohortMember) error {
	goalInputs, err := s.loadGoalInputs(ctx, m.UserID)
	if err != nil {
		return err
	}
	history, err := s.loadHistory(ctx, m.UserID)
	if err != nil {
		return err
	}
	m.Goals = goalInputs
	m.History = history
	return nil
}

func (s *Store) loadGoalInputs(ctx context.Context, userID string) ([]scoring.GoalInput, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.id, a.goal_id, g.title, g.weightage, COALESCE(r.rating, '')
    FROM goal_assignments a
    JOIN goals g ON a.goal_id = g.id
    LEFT JOIN LATERAL (
      SELECT rating
      FROM rating_events
      WHERE assignment_id = a.id
      ORDER BY created_at DESC
      LIMIT 1
    ) r ON true
    WHERE a.user_id = $1 AND a.status = 'ACTIVE'
    ORDER BY a.created_at
  `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type assignmentRow struct {
		assignmentID string
		input        scoring.GoalInput
	}
	var assignments []assignmentRow
	for rows.Next() {
		var row assignmentRow
		var rating string
		if err := rows.Scan(&row.assignmentID, &row.input.GoalID, &row.input.GoalTitle, &row.input.Weightage, &rating); err != nil {
			return nil, err
		}
		row.input.Rating = scoring.Rating(rating)
		assignments = append(assignments, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	inputs := make([]scoring.GoalInput, 0, len(assignments))
	for _, row := range assignments {
		summary, err := s.evidenceSummary(ctx, row.assignmentID)
		if err != nil {
			return nil, err
		}
		input := row.input
		input.LastEvidenceAt = summary.LastEvidenceAt
		input.EvidenceCount = summary.Count
		input.HasMetrics = summary.HasMetrics
		input.HasLinks = summary.HasLinks
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func (s *Store) evidenceSummary(ctx context.Context, assignmentID string) (goals.EvidenceSummary, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT text, links, metrics, created_at
    FROM evidence_logs
    WHERE assignment_id = $1
  `, assignmentID)
	if err != nil {
		return goals.EvidenceSummary{}, err
	}
	defer rows.Close()

	var logs []goals.EvidenceLog
	for rows.Next() {
		var log goals.EvidenceLog
		var rawMetrics []byte
		if err := rows.Scan(&log.Text, &log.Links, &rawMetrics, &log.CreatedAt); err != nil {
			return goals.EvidenceSummary{}, err
		}
		if len(rawMetrics) > 0 {
			if err := json.Unmarshal(rawMetrics, &log.Metrics); err != nil {
				return goals.EvidenceSummary{}, err
			}
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return goals.EvidenceSummary{}, err
	}
	return goals.Summarize(logs), nil
}

func (s *Store) loadHistory(ctx context.Context, userID string) ([]scoring.RatingSample, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT r.rating, r.created_at
    FROM rating_events r
    JOIN goal_assignments a ON r.assignment_id = a.id
    WHERE a.user_id = $1
    ORDER BY r.created_at
  `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []scoring.RatingSample
	for rows.Next() {
		var sample scoring.RatingSample
		var rating string
		if err := rows.Scan(&rating, &sample.At); err != nil {
			return nil, err
		}
		sample.Rating = scoring.Rating(rating)
		history = append(history, sample)
	}
	return history, rows.Err()
}
