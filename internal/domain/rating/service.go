package rating

import (
	"context"
	"strings"

	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/scoring"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// Submit appends a new rating event for the assignment. Prior events are
// untouched; history is retained.
func (s *Service) Submit(ctx context.Context, actor Actor, assignmentID string, r scoring.Rating, notes string) (RatingEvent, error) {
	if !auth.HasPermission(actor.Role, auth.PermRatingsSubmit) {
		return RatingEvent{}, ErrSubmitNotPermitted
	}
	if !r.Valid() {
		return RatingEvent{}, ErrInvalidRating
	}
	if _, err := s.store.AssignmentOwner(ctx, assignmentID); err != nil {
		return RatingEvent{}, err
	}
	return s.store.InsertRatingEvent(ctx, assignmentID, r, notes, actor.UserID)
}

// BulkItem is one entry of a bulk submission.
type BulkItem struct {
	AssignmentID string         `json:"assignmentId"`
	Rating       scoring.Rating `json:"rating"`
	Notes        string         `json:"notes"`
}

// BulkResult reports the outcome of one bulk item. Err is a message rather
// than an error value so the result serializes cleanly.
type BulkResult struct {
	AssignmentID string       `json:"assignmentId"`
	Event        *RatingEvent `json:"event,omitempty"`
	Err          string       `json:"error,omitempty"`
}

// SubmitBulk submits many ratings and reports per-item outcomes. One bad item
// does not abort the rest.
func (s *Service) SubmitBulk(ctx context.Context, actor Actor, items []BulkItem) []BulkResult {
	results := make([]BulkResult, 0, len(items))
	for _, item := range items {
		event, err := s.Submit(ctx, actor, item.AssignmentID, item.Rating, item.Notes)
		result := BulkResult{AssignmentID: item.AssignmentID}
		if err != nil {
			result.Err = err.Error()
		} else {
			result.Event = &event
		}
		results = append(results, result)
	}
	return results
}

// Approve locks a rating event. Re-approving an approved event is rejected so
// approval metadata is written exactly once.
func (s *Service) Approve(ctx context.Context, actor Actor, ratingEventID string) (RatingEvent, error) {
	if !auth.HasPermission(actor.Role, auth.PermRatingsApprove) {
		return RatingEvent{}, ErrApproveNotPermitted
	}
	return s.store.ApproveRatingEvent(ctx, ratingEventID, actor.UserID)
}

// RequestChange opens a change request against an approved rating. The store
// enforces the at-most-one-pending invariant transactionally.
func (s *Service) RequestChange(ctx context.Context, actor Actor, ratingEventID, reason string) (ChangeRequest, error) {
	if !auth.HasPermission(actor.Role, auth.PermRatingsApprove) {
		return ChangeRequest{}, ErrRequestNotPermitted
	}
	if strings.TrimSpace(reason) == "" {
		return ChangeRequest{}, ErrEmptyReason
	}
	return s.store.CreateChangeRequest(ctx, ratingEventID, actor.UserID, reason)
}

// Review settles a pending change request. On approval the target rating is
// unlocked in the same transaction; on rejection the rating is left as is.
func (s *Service) Review(ctx context.Context, actor Actor, requestID string, approved bool, notes string) (ChangeRequest, error) {
	if !auth.HasPermission(actor.Role, auth.PermRatingsReviewChange) {
		return ChangeRequest{}, ErrReviewNotPermitted
	}
	return s.store.ReviewChangeRequest(ctx, requestID, approved, actor.UserID, notes)
}

func (s *Service) History(ctx context.Context, assignmentID string) ([]RatingEvent, error) {
	return s.store.ListRatingEvents(ctx, assignmentID)
}

func (s *Service) Get(ctx context.Context, ratingEventID string) (RatingEvent, error) {
	return s.store.GetRatingEvent(ctx, ratingEventID)
}

func (s *Service) PendingChangeRequests(ctx context.Context) ([]ChangeRequest, error) {
	return s.store.ListChangeRequests(ctx, ChangeRequestStatusPending)
}

// AssignmentOwner resolves who a rating belongs to, for notifications.
func (s *Service) AssignmentOwner(ctx context.Context, assignmentID string) (string, error) {
	return s.store.AssignmentOwner(ctx, assignmentID)
}
