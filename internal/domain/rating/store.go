package rating

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perftrack/internal/domain/scoring"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const ratingEventColumns = "id, assignment_id, rating, COALESCE(notes, ''), submitted_by, is_approved, approved_at, approved_by, created_at"

func scanRatingEvent(row pgx.Row) (RatingEvent, error) {
	var evt RatingEvent
	err := row.Scan(&evt.ID, &evt.AssignmentID, &evt.Rating, &evt.Notes, &evt.SubmittedBy, &evt.IsApproved, &evt.ApprovedAt, &evt.ApprovedBy, &evt.CreatedAt)
	return evt, err
}

func (s *Store) AssignmentOwner(ctx context.Context, assignmentID string) (string, error) {
	var userID string
	err := s.DB.QueryRow(ctx, "SELECT user_id FROM goal_assignments WHERE id = $1", assignmentID).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrAssignmentNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *Store) InsertRatingEvent(ctx context.Context, assignmentID string, r scoring.Rating, notes, submittedBy string) (RatingEvent, error) {
	return scanRatingEvent(s.DB.QueryRow(ctx, `
    INSERT INTO rating_events (assignment_id, rating, notes, submitted_by)
    VALUES ($1, $2, NULLIF($3, ''), $4)
    RETURNING `+ratingEventColumns+`
  `, assignmentID, string(r), notes, submittedBy))
}

func (s *Store) GetRatingEvent(ctx context.Context, ratingEventID string) (RatingEvent, error) {
	evt, err := scanRatingEvent(s.DB.QueryRow(ctx, `
    SELECT `+ratingEventColumns+`
    FROM rating_events
    WHERE id = $1
  `, ratingEventID))
	if errors.Is(err, pgx.ErrNoRows) {
		return RatingEvent{}, ErrRatingNotFound
	}
	return evt, err
}

func (s *Store) ListRatingEvents(ctx context.Context, assignmentID string) ([]RatingEvent, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+ratingEventColumns+`
    FROM rating_events
    WHERE assignment_id = $1
    ORDER BY created_at DESC
  `, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []RatingEvent
	for rows.Next() {
		evt, err := scanRatingEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	return events, rows.Err()
}

// ApproveRatingEvent locks the row before flipping approval so two concurrent
// approvals cannot both write approval metadata.
func (s *Store) ApproveRatingEvent(ctx context.Context, ratingEventID, approverID string) (RatingEvent, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return RatingEvent{}, err
	}
	defer tx.Rollback(ctx)

	var approved bool
	err = tx.QueryRow(ctx, "SELECT is_approved FROM rating_events WHERE id = $1 FOR UPDATE", ratingEventID).Scan(&approved)
	if errors.Is(err, pgx.ErrNoRows) {
		return RatingEvent{}, ErrRatingNotFound
	}
	if err != nil {
		return RatingEvent{}, err
	}
	if approved {
		return RatingEvent{}, ErrAlreadyApproved
	}

	evt, err := scanRatingEvent(tx.QueryRow(ctx, `
    UPDATE rating_events
    SET is_approved = true, approved_at = now(), approved_by = $1
    WHERE id = $2
    RETURNING `+ratingEventColumns+`
  `, approverID, ratingEventID))
	if err != nil {
		return RatingEvent{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return RatingEvent{}, err
	}
	return evt, nil
}

// CreateChangeRequest checks "approved" and "no pending request" under a row
// lock on the rating event, then inserts, all in one transaction. Concurrent
// requests against the same rating serialize on the lock, so at most one
// PENDING request can exist.
func (s *Store) CreateChangeRequest(ctx context.Context, ratingEventID, requesterID, reason string) (ChangeRequest, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return ChangeRequest{}, err
	}
	defer tx.Rollback(ctx)

	var approved bool
	err = tx.QueryRow(ctx, "SELECT is_approved FROM rating_events WHERE id = $1 FOR UPDATE", ratingEventID).Scan(&approved)
	if errors.Is(err, pgx.ErrNoRows) {
		return ChangeRequest{}, ErrRatingNotFound
	}
	if err != nil {
		return ChangeRequest{}, err
	}
	if !approved {
		return ChangeRequest{}, ErrRatingNotApproved
	}

	var pending int
	if err := tx.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM rating_change_requests
    WHERE rating_event_id = $1 AND status = $2
  `, ratingEventID, ChangeRequestStatusPending).Scan(&pending); err != nil {
		return ChangeRequest{}, err
	}
	if pending > 0 {
		return ChangeRequest{}, ErrChangeRequestPending
	}

	req, err := scanChangeRequest(tx.QueryRow(ctx, `
    INSERT INTO rating_change_requests (rating_event_id, requested_by, reason, status)
    VALUES ($1, $2, $3, $4)
    RETURNING `+changeRequestColumns+`
  `, ratingEventID, requesterID, reason, ChangeRequestStatusPending))
	if err != nil {
		return ChangeRequest{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return ChangeRequest{}, err
	}
	return req, nil
}

// ReviewChangeRequest settles the request and, on approval, clears the target
// rating's approval state. Both writes commit together or not at all.
func (s *Store) ReviewChangeRequest(ctx context.Context, requestID string, approved bool, reviewerID, notes string) (ChangeRequest, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return ChangeRequest{}, err
	}
	defer tx.Rollback(ctx)

	var status, ratingEventID string
	err = tx.QueryRow(ctx, `
    SELECT status, rating_event_id
    FROM rating_change_requests
    WHERE id = $1
    FOR UPDATE
  `, requestID).Scan(&status, &ratingEventID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ChangeRequest{}, ErrChangeRequestNotFound
	}
	if err != nil {
		return ChangeRequest{}, err
	}
	if status != ChangeRequestStatusPending {
		return ChangeRequest{}, ErrChangeRequestClosed
	}

	newStatus := ChangeRequestStatusRejected
	if approved {
		newStatus = ChangeRequestStatusApproved
	}
	req, err := scanChangeRequest(tx.QueryRow(ctx, `
    UPDATE rating_change_requests
    SET status = $1, reviewed_by = $2, reviewed_at = now(), review_notes = NULLIF($3, '')
    WHERE id = $4
    RETURNING `+changeRequestColumns+`
  `, newStatus, reviewerID, notes, requestID))
	if err != nil {
		return ChangeRequest{}, err
	}

	if approved {
		if _, err := tx.Exec(ctx, `
      UPDATE rating_events
      SET is_approved = false, approved_at = NULL, approved_by = NULL
      WHERE id = $1
    `, ratingEventID); err != nil {
			return ChangeRequest{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return ChangeRequest{}, err
	}
	return req, nil
}

const changeRequestColumns = "id, rating_event_id, requested_by, reason, status, reviewed_by, reviewed_at, COALESCE(review_notes, ''), created_at"

func scanChangeRequest(row pgx.Row) (ChangeRequest, error) {
	var req ChangeRequest
	err := row.Scan(&req.ID, &req.RatingEventID, &req.RequestedBy, &req.Reason, &req.Status, &req.ReviewedBy, &req.ReviewedAt, &req.ReviewNotes, &req.CreatedAt)
	return req, err
}

func (s *Store) ListChangeRequests(ctx context.Context, status string) ([]ChangeRequest, error) {
	query := "SELECT " + changeRequestColumns + " FROM rating_change_requests"
	args := []any{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []ChangeRequest
	for rows.Next() {
		req, err := scanChangeRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
