package goals

import "time"

// GoalAssignment ties a goal to a user for a review cycle. Immutable once
// created except for its status.
type GoalAssignment struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	GoalID    string     `json:"goalId"`
	GoalTitle string     `json:"goalTitle"`
	CycleID   string     `json:"cycleId"`
	Weightage float64    `json:"weightage"`
	Status    string     `json:"status"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
}

// EvidenceLog is an append-only record of work attached to an assignment.
type EvidenceLog struct {
	ID           string             `json:"id"`
	AssignmentID string             `json:"assignmentId"`
	Text         string             `json:"text"`
	Links        []string           `json:"links,omitempty"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// EvidenceSummary condenses an assignment's evidence into the fields the
// scoring engine consumes.
type EvidenceSummary struct {
	LastEvidenceAt time.Time
	Count          int
	HasMetrics     bool
	HasLinks       bool
}
