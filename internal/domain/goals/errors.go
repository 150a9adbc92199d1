package goals

import "errors"

var (
	ErrAssignmentNotFound  = errors.New("goal assignment not found")
	ErrNotAssignmentOwner  = errors.New("evidence can only be added to your own assignments")
	ErrAssignmentNotActive = errors.New("assignment is not active")
	ErrEmptyEvidenceText   = errors.New("evidence text is required")
	ErrInvalidTargetRating = errors.New("target rating must be MEETS_EXPECTATIONS or better")
)
