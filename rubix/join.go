package rubix

// UserIndex maps a user id to the first user carrying it.
type UserIndex map[ID]User

// IndexUsers builds the lookup used by Join. When several users share an id
// the earliest one in the slice wins.
func IndexUsers(users []User) UserIndex {
	index := make(UserIndex, len(users))
	for _, u := range users {
		if _, ok := index[u.ID]; !ok {
			index[u.ID] = u
		}
	}
	return index
}

// Join pairs every membership with the user it references, keeping membership order.
// Memberships whose user is missing are dropped.
func Join(memberships []Membership, users []User) []UserMembership {
	result := []UserMembership{}
	if len(memberships) == 0 || len(users) == 0 {
		return result
	}

	index := IndexUsers(users)
	for _, m := range memberships {
		if u, ok := index[m.UserID]; ok {
			result = append(result, newUserMembership(m, u))
		}
	}
	return result
}

// JoinLists is Join over the list wrappers.
func JoinLists(memberships MembershipList, users UserList) UserMembershipList {
	return UserMembershipList{memberships: Join(memberships.memberships, users.users)}
}
