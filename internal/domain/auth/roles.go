package auth

// Role is the closed set of user roles. WIS, QC and PC are the individual
// contributor roles; they form leaderboard cohorts of their own.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleWIS        Role = "WIS"
	RoleQC         Role = "QC"
	RolePC         Role = "PC"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleWIS, RoleQC, RolePC:
		return true
	}
	return false
}

const (
	PermGoalsRead           = "goals.read"
	PermGoalsAssign         = "goals.assign"
	PermEvidenceRead        = "evidence.read"
	PermEvidenceWrite       = "evidence.write"
	PermRatingsRead         = "ratings.read"
	PermRatingsSubmit       = "ratings.submit"
	PermRatingsApprove      = "ratings.approve"
	PermRatingsReviewChange = "ratings.review_change"
	PermLeaderboardRead     = "leaderboard.read"
	PermReportsRead         = "reports.read"
	PermAuditRead           = "audit.read"
	PermTargetRatingWrite   = "target_rating.write"
)

// RolePermissions is the single source of truth for authorization decisions.
// Policy review and tests read this table directly instead of chasing helper
// functions.
var RolePermissions = map[Role][]string{
	RoleAdmin: {
		PermGoalsRead,
		PermGoalsAssign,
		PermEvidenceRead,
		PermRatingsRead,
		PermRatingsSubmit,
		PermRatingsReviewChange,
		PermLeaderboardRead,
		PermReportsRead,
		PermAuditRead,
		PermTargetRatingWrite,
	},
	RoleSupervisor: {
		PermGoalsRead,
		PermGoalsAssign,
		PermEvidenceRead,
		PermRatingsRead,
		PermRatingsSubmit,
		PermRatingsApprove,
		PermLeaderboardRead,
		PermReportsRead,
		PermTargetRatingWrite,
	},
	RoleWIS: {
		PermGoalsRead,
		PermEvidenceRead,
		PermEvidenceWrite,
		PermRatingsRead,
		PermLeaderboardRead,
		PermTargetRatingWrite,
	},
	RoleQC: {
		PermGoalsRead,
		PermEvidenceRead,
		PermEvidenceWrite,
		PermRatingsRead,
		PermLeaderboardRead,
		PermTargetRatingWrite,
	},
	RolePC: {
		PermGoalsRead,
		PermEvidenceRead,
		PermEvidenceWrite,
		PermRatingsRead,
		PermLeaderboardRead,
		PermTargetRatingWrite,
	},
}

func HasPermission(role Role, permission string) bool {
	for _, granted := range RolePermissions[role] {
		if granted == permission {
			return true
		}
	}
	return false
}
