package rating

const (
	ChangeRequestStatusPending  = "PENDING"
	ChangeRequestStatusApproved = "APPROVED"
	ChangeRequestStatusRejected = "REJECTED"
)
