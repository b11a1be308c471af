package rubix

// UserMembership combines a membership with the user it references.
// User.ID always equals UserID.
type UserMembership struct {
	ID     ID             `json:"id"`
	UserID ID             `json:"userId"`
	Role   MembershipRole `json:"role"`
	User   User           `json:"user"`
}

func newUserMembership(m Membership, u User) UserMembership {
	return UserMembership{ID: m.ID, UserID: m.UserID, Role: m.Role, User: u}
}
