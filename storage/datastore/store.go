package datastore

import (
	"context"

	"github.com/kubex/rubix-membersearch/rubix"
)

func (p *Provider) StoreUser(ctx context.Context, u rubix.User) error {
	if p.client == nil {
		return ErrNotConnected
	}
	if u.ID == "" {
		return rubix.ErrInvalidID
	}

	us := &userStore{ID: string(u.ID), Name: u.Name, Email: u.Email}
	_, err := p.client.Put(ctx, us.dsID(), us)
	return err
}

func (p *Provider) StoreMembership(ctx context.Context, m rubix.Membership) error {
	if p.client == nil {
		return ErrNotConnected
	}
	if m.ID == "" || m.UserID == "" {
		return rubix.ErrInvalidID
	}

	mem := &membershipStore{ID: string(m.ID), UserID: string(m.UserID), Role: string(m.Role)}
	_, err := p.client.Put(ctx, mem.dsID(), mem)
	return err
}

// Import stores every user and then every membership. Entities written before
// a failure are kept.
func (p *Provider) Import(ctx context.Context, memberships rubix.MembershipList, users rubix.UserList) error {
	for _, u := range users.Users() {
		if err := p.StoreUser(ctx, u); err != nil {
			return err
		}
	}
	for _, m := range memberships.Memberships() {
		if err := p.StoreMembership(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
