package rating

import "errors"

// Validation errors.
var (
	ErrInvalidRating = errors.New("unknown rating value")
	ErrEmptyReason   = errors.New("change request reason is required")
)

// Authorization errors.
var (
	ErrSubmitNotPermitted  = errors.New("role has no rating authority")
	ErrApproveNotPermitted = errors.New("only supervisors can approve ratings")
	ErrRequestNotPermitted = errors.New("only supervisors can request rating changes")
	ErrReviewNotPermitted  = errors.New("only admins can review change requests")
)

// Conflict errors (invariant violations).
var (
	ErrAlreadyApproved      = errors.New("rating is already approved")
	ErrRatingNotApproved    = errors.New("rating must be approved before requesting changes")
	ErrChangeRequestPending = errors.New("a change request is already pending for this rating")
	ErrChangeRequestClosed  = errors.New("change request has already been reviewed")
)

// Not-found errors.
var (
	ErrAssignmentNotFound    = errors.New("goal assignment not found")
	ErrRatingNotFound        = errors.New("rating event not found")
	ErrChangeRequestNotFound = errors.New("change request not found")
)
