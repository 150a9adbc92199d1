package rating

import (
	"context"

	"perftrack/internal/domain/scoring"
)

// StoreAPI is the persistence contract for the rating lifecycle. The
// change-request methods run their precondition checks and writes inside a
// single transaction; callers rely on that for the at-most-one-pending and
// review-unlock invariants.
type StoreAPI interface {
	AssignmentOwner(ctx context.Context, assignmentID string) (string, error)
	InsertRatingEvent(ctx context.Context, assignmentID string, r scoring.Rating, notes, submittedBy string) (RatingEvent, error)
	GetRatingEvent(ctx context.Context, ratingEventID string) (RatingEvent, error)
	ListRatingEvents(ctx context.Context, assignmentID string) ([]RatingEvent, error)
	ApproveRatingEvent(ctx context.Context, ratingEventID, approverID string) (RatingEvent, error)
	CreateChangeRequest(ctx context.Context, ratingEventID, requesterID, reason string) (ChangeRequest, error)
	ReviewChangeRequest(ctx context.Context, requestID string, approved bool, reviewerID, notes string) (ChangeRequest, error)
	ListChangeRequests(ctx context.Context, status string) ([]ChangeRequest, error)
}
