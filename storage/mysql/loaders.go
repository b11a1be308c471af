package mysql

import (
	"context"

	"github.com/kubex/rubix-membersearch/rubix"
)

func (p *Provider) FetchMemberships(ctx context.Context) (rubix.MembershipList, error) {
	if p.reader == nil {
		return rubix.MembershipList{}, ErrNotConnected
	}
	return p.reader.FetchMemberships(ctx)
}

func (p *Provider) FetchUsers(ctx context.Context) (rubix.UserList, error) {
	if p.reader == nil {
		return rubix.UserList{}, ErrNotConnected
	}
	return p.reader.FetchUsers(ctx)
}

// Import always writes to the primary.
func (p *Provider) Import(ctx context.Context, memberships rubix.MembershipList, users rubix.UserList) error {
	if p.primary == nil {
		return ErrNotConnected
	}
	return p.primary.Import(ctx, memberships, users)
}
