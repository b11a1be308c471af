package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/kubex/rubix-membersearch/rubix"
)

var ErrNotConnected = errors.New("backend: not connected")

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 32 << 20

func (p *Provider) FetchMemberships(ctx context.Context) (rubix.MembershipList, error) {
	var list rubix.MembershipList
	err := p.get(ctx, p.endpoint(p.MembershipsPath, defaultMembershipsPath), &list)
	return list, err
}

func (p *Provider) FetchUsers(ctx context.Context) (rubix.UserList, error) {
	var list rubix.UserList
	err := p.get(ctx, p.endpoint(p.UsersPath, defaultUsersPath), &list)
	return list, err
}

func (p *Provider) get(ctx context.Context, endpoint string, dst any) error {
	if p.httpClient == nil {
		return ErrNotConnected
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if p.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+p.AuthToken)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("backend: read %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, URL: endpoint, Body: body}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err = json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("backend: decode %s: %w", endpoint, err)
	}
	return nil
}
