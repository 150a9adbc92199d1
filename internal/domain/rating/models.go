package rating

import (
	"time"

	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/scoring"
)

// RatingEvent is one rating submission for a goal assignment. Events are
// append-only; the most recent event is the assignment's current rating.
type RatingEvent struct {
	ID           string         `json:"id"`
	AssignmentID string         `json:"assignmentId"`
	Rating       scoring.Rating `json:"rating"`
	Notes        string         `json:"notes,omitempty"`
	SubmittedBy  string         `json:"submittedBy"`
	IsApproved   bool           `json:"isApproved"`
	ApprovedAt   *time.Time     `json:"approvedAt,omitempty"`
	ApprovedBy   *string        `json:"approvedBy,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// ChangeRequest asks to unlock an approved rating event for revision.
type ChangeRequest struct {
	ID            string     `json:"id"`
	RatingEventID string     `json:"ratingEventId"`
	RequestedBy   string     `json:"requestedBy"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	ReviewedBy    *string    `json:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`
	ReviewNotes   string     `json:"reviewNotes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Actor identifies who is attempting a lifecycle transition.
type Actor struct {
	UserID string
	Role   auth.Role
}
