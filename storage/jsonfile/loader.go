package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kubex/rubix-membersearch/rubix"
)

const (
	dataMemberships = "memberships"
	dataUsers       = "users"
)

func (p *Provider) FetchMemberships(ctx context.Context) (rubix.MembershipList, error) {
	var list rubix.MembershipList
	err := p.decode(ctx, dataMemberships, &list)
	return list, err
}

func (p *Provider) FetchUsers(ctx context.Context) (rubix.UserList, error) {
	var list rubix.UserList
	err := p.decode(ctx, dataUsers, &list)
	return list, err
}

func (p *Provider) decode(ctx context.Context, dataType string, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	bytes, err := p.fileData(dataType)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(bytes, dst); err != nil {
		return fmt.Errorf("%w %s json: %w", ErrDecode, dataType, err)
	}
	return nil
}
