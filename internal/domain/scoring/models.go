package scoring

import "time"

// GoalInput is one goal assignment prepared for scoring. Rating is empty when
// the goal has never been rated.
type GoalInput struct {
	GoalID         string
	GoalTitle      string
	Weightage      float64
	Rating         Rating
	LastEvidenceAt time.Time
	EvidenceCount  int
	HasMetrics     bool
	HasLinks       bool
}

// RatingSample is one point of a user's rating history, across all of their
// goal assignments.
type RatingSample struct {
	Rating Rating
	At     time.Time
}

type GoalContribution struct {
	GoalTitle    string  `json:"goalTitle"`
	Weightage    float64 `json:"weightage"`
	Rating       Rating  `json:"rating"`
	RatingScore  float64 `json:"ratingScore"`
	Contribution float64 `json:"contribution"`
}

type EvidenceDetail struct {
	RecencyScore      float64 `json:"recencyScore"`
	CompletenessScore float64 `json:"completenessScore"`
	QualityScore      float64 `json:"qualityScore"`
}

type TrendDetail struct {
	Direction  TrendDirection `json:"direction"`
	Adjustment float64        `json:"adjustment"`
}

// ScoreBreakdown is a derived value object. It is recomputed on demand and
// never stored as a source of truth.
type ScoreBreakdown struct {
	TotalScore      float64            `json:"totalScore"`
	GoalScore       float64            `json:"goalScore"`
	EvidenceScore   float64            `json:"evidenceScore"`
	TrendAdjustment float64            `json:"trendAdjustment"`
	Goals           []GoalContribution `json:"goals"`
	Evidence        EvidenceDetail     `json:"evidence"`
	Trend           TrendDetail        `json:"trend"`
	TopReason       string             `json:"topReason"`
}
