package notifications

const (
	TypeRatingSubmitted      = "rating_submitted"
	TypeRatingApproved       = "rating_approved"
	TypeRatingUnlocked       = "rating_unlocked"
	TypeChangeRequested      = "change_requested"
	TypeChangeRequestDecided = "change_request_decided"
	TypeGoalAssigned         = "goal_assigned"
)
