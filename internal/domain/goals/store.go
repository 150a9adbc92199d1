package goals

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListAssignments(ctx context.Context, userID string) ([]GoalAssignment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.id, a.user_id, a.goal_id, g.title, a.cycle_id, g.weightage, a.status, a.due_date
    FROM goal_assignments a
    JOIN goals g ON a.goal_id = g.id
    WHERE a.user_id = $1
    ORDER BY a.created_at DESC
  `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []GoalAssignment
	for rows.Next() {
		var a GoalAssignment
		if err := rows.Scan(&a.ID, &a.UserID, &a.GoalID, &a.GoalTitle, &a.CycleID, &a.Weightage, &a.Status, &a.DueDate); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (s *Store) GetAssignment(ctx context.Context, assignmentID string) (GoalAssignment, error) {
	var a GoalAssignment
	err := s.DB.QueryRow(ctx, `
    SELECT a.id, a.user_id, a.goal_id, g.title, a.cycle_id, g.weightage, a.status, a.due_date
    FROM goal_assignments a
    JOIN goals g ON a.goal_id = g.id
    WHERE a.id = $1
  `, assignmentID).Scan(&a.ID, &a.UserID, &a.GoalID, &a.GoalTitle, &a.CycleID, &a.Weightage, &a.Status, &a.DueDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return GoalAssignment{}, ErrAssignmentNotFound
	}
	return a, err
}

func (s *Store) InsertEvidence(ctx context.Context, assignmentID, text string, links []string, metrics map[string]float64) (EvidenceLog, error) {
	var metricsJSON []byte
	if len(metrics) > 0 {
		payload, err := json.Marshal(metrics)
		if err != nil {
			return EvidenceLog{}, err
		}
		metricsJSON = payload
	}

	var log EvidenceLog
	var rawMetrics []byte
	err := s.DB.QueryRow(ctx, `
    INSERT INTO evidence_logs (assignment_id, text, links, metrics)
    VALUES ($1, $2, $3, $4)
    RETURNING id, assignment_id, text, links, metrics, created_at
  `, assignmentID, text, links, metricsJSON).Scan(&log.ID, &log.AssignmentID, &log.Text, &log.Links, &rawMetrics, &log.CreatedAt)
	if err != nil {
		return EvidenceLog{}, err
	}
	if len(rawMetrics) > 0 {
		if err := json.Unmarshal(rawMetrics, &log.Metrics); err != nil {
			return EvidenceLog{}, err
		}
	}
	return log, nil
}

func (s *Store) ListEvidence(ctx context.Context, assignmentID string) ([]EvidenceLog, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, assignment_id, text, links, metrics, created_at
    FROM evidence_logs
    WHERE assignment_id = $1
    ORDER BY created_at DESC
  `, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []EvidenceLog
	for rows.Next() {
		var log EvidenceLog
		var rawMetrics []byte
		if err := rows.Scan(&log.ID, &log.AssignmentID, &log.Text, &log.Links, &rawMetrics, &log.CreatedAt); err != nil {
			return nil, err
		}
		if len(rawMetrics) > 0 {
			if err := json.Unmarshal(rawMetrics, &log.Metrics); err != nil {
				return nil, err
			}
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (s *Store) SetTargetRating(ctx context.Context, userID, target string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET target_rating = $1 WHERE id = $2", target, userID)
	return err
}
