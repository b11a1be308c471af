package datastore

import (
	"context"
	"fmt"

	"cloud.google.com/go/datastore"

	"github.com/kubex/rubix-membersearch/rubix"
)

func (p *Provider) FetchMemberships(ctx context.Context) (rubix.MembershipList, error) {
	if p.client == nil {
		return rubix.MembershipList{}, ErrNotConnected
	}

	var stored []membershipStore
	if _, err := p.client.GetAll(ctx, datastore.NewQuery(kindMembership), &stored); err != nil {
		return rubix.MembershipList{}, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}

	memberships := make([]rubix.Membership, 0, len(stored))
	for _, m := range stored {
		memberships = append(memberships, rubix.Membership{
			ID:     rubix.ID(m.ID),
			UserID: rubix.ID(m.UserID),
			Role:   rubix.MembershipRole(m.Role),
		})
	}
	return rubix.NewMembershipList(memberships...), nil
}

func (p *Provider) FetchUsers(ctx context.Context) (rubix.UserList, error) {
	if p.client == nil {
		return rubix.UserList{}, ErrNotConnected
	}

	var stored []userStore
	if _, err := p.client.GetAll(ctx, datastore.NewQuery(kindUser), &stored); err != nil {
		return rubix.UserList{}, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}

	users := make([]rubix.User, 0, len(stored))
	for _, u := range stored {
		users = append(users, rubix.User{ID: rubix.ID(u.ID), Name: u.Name, Email: u.Email})
	}
	return rubix.NewUserList(users...), nil
}
