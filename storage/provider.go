package storage

import (
	"context"

	"github.com/kubex/rubix-membersearch/rubix"
)

// Provider is a source of membership and user collections.
type Provider interface {
	FetchMemberships(ctx context.Context) (rubix.MembershipList, error)
	FetchUsers(ctx context.Context) (rubix.UserList, error)

	Connect() error
	Close() error
}
