// Package backend reads memberships and users from the membership backend's
// HTTP API (GET {baseUrl}/memberships and GET {baseUrl}/users).
package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const ProviderKey = "backend"

const (
	defaultMembershipsPath = "/memberships"
	defaultUsersPath       = "/users"
	defaultTimeout         = 10 * time.Second
)

var ErrInvalidConfig = errors.New("backend: invalid configuration")

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	URL        string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend: %s returned HTTP %d", e.URL, e.StatusCode)
}

type Provider struct {
	BaseURL         string `json:"baseUrl"`
	MembershipsPath string `json:"membershipsPath"`
	UsersPath       string `json:"usersPath"`
	AuthToken       string `json:"authToken"`
	Timeout         string `json:"timeout"` // e.g. "5s"

	httpClient *http.Client
}

func FromJson(data []byte) (*Provider, error) {
	p := &Provider{}
	if err := json.Unmarshal(data, p); err == nil {
		return p, nil
	} else {
		return nil, err
	}
}

// New returns a provider using client for every request. A nil client is
// replaced by one honouring Timeout on Connect.
func New(baseURL string, client *http.Client) *Provider {
	return &Provider{BaseURL: baseURL, httpClient: client}
}

func (p *Provider) Connect() error {
	u, err := url.Parse(p.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: baseUrl %q", ErrInvalidConfig, p.BaseURL)
	}

	if p.httpClient == nil {
		timeout := defaultTimeout
		if p.Timeout != "" {
			if timeout, err = time.ParseDuration(p.Timeout); err != nil {
				return fmt.Errorf("%w: timeout %q", ErrInvalidConfig, p.Timeout)
			}
		}
		p.httpClient = &http.Client{Timeout: timeout}
	}
	return nil
}

func (p *Provider) Close() error {
	if p.httpClient != nil {
		p.httpClient.CloseIdleConnections()
	}
	return nil
}

func (p *Provider) endpoint(path, fallback string) string {
	if path == "" {
		path = fallback
	}
	return strings.TrimRight(p.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
