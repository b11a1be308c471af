package rubix

import (
	"encoding/json"
	"slices"
)

// MembershipList is an ordered set of memberships. The zero value is an empty list.
type MembershipList struct {
	memberships []Membership
}

func NewMembershipList(memberships ...Membership) MembershipList {
	return MembershipList{memberships: slices.Clone(memberships)}
}

// Memberships never returns nil.
func (l MembershipList) Memberships() []Membership {
	if l.memberships == nil {
		return []Membership{}
	}
	return slices.Clone(l.memberships)
}

func (l MembershipList) Len() int      { return len(l.memberships) }
func (l MembershipList) IsEmpty() bool { return len(l.memberships) == 0 }

func (l MembershipList) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Memberships []Membership `json:"memberships"`
	}{l.Memberships()})
}

func (l *MembershipList) UnmarshalJSON(data []byte) error {
	in := struct {
		Memberships []Membership `json:"memberships"`
	}{}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	l.memberships = in.Memberships
	return nil
}

// UserList is an ordered set of users. The zero value is an empty list.
type UserList struct {
	users []User
}

func NewUserList(users ...User) UserList {
	return UserList{users: slices.Clone(users)}
}

// Users never returns nil.
func (l UserList) Users() []User {
	if l.users == nil {
		return []User{}
	}
	return slices.Clone(l.users)
}

func (l UserList) Len() int      { return len(l.users) }
func (l UserList) IsEmpty() bool { return len(l.users) == 0 }

func (l UserList) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Users []User `json:"users"`
	}{l.Users()})
}

func (l *UserList) UnmarshalJSON(data []byte) error {
	in := struct {
		Users []User `json:"users"`
	}{}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	l.users = in.Users
	return nil
}

// UserMembershipList is the enriched result handed back to callers.
type UserMembershipList struct {
	memberships []UserMembership
}

func NewUserMembershipList(memberships ...UserMembership) UserMembershipList {
	return UserMembershipList{memberships: slices.Clone(memberships)}
}

// Memberships never returns nil.
func (l UserMembershipList) Memberships() []UserMembership {
	if l.memberships == nil {
		return []UserMembership{}
	}
	return slices.Clone(l.memberships)
}

func (l UserMembershipList) Len() int      { return len(l.memberships) }
func (l UserMembershipList) IsEmpty() bool { return len(l.memberships) == 0 }

func (l UserMembershipList) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Memberships []UserMembership `json:"memberships"`
	}{l.Memberships()})
}

func (l *UserMembershipList) UnmarshalJSON(data []byte) error {
	in := struct {
		Memberships []UserMembership `json:"memberships"`
	}{}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	l.memberships = in.Memberships
	return nil
}
