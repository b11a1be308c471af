package rubix

type MembershipRole string

// Membership links a user identifier to a role, as delivered by the backend.
type Membership struct {
	ID     ID             `json:"id"`
	UserID ID             `json:"userId"`
	Role   MembershipRole `json:"role"`
}
