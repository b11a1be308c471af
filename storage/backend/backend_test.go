package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubex/rubix-membersearch/rubix"
)

func newBackend(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := New(srv.URL, srv.Client())
	require.NoError(t, p.Connect())
	return p
}

func TestFetch(t *testing.T) {
	var auth string
	p := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/memberships":
			_, _ = w.Write([]byte(`{"memberships":[{"id":1,"userId":"u1","role":"admin"}]}`))
		case "/users":
			_, _ = w.Write([]byte(`{"users":[{"id":"u1","name":"Ann","email":"ann@x.com"}]}`))
		default:
			http.NotFound(w, r)
		}
	})
	p.AuthToken = "secret"

	memberships, err := p.FetchMemberships(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []rubix.Membership{{ID: "1", UserID: "u1", Role: "admin"}}, memberships.Memberships())
	assert.Equal(t, "Bearer secret", auth)

	users, err := p.FetchUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []rubix.User{{ID: "u1", Name: "Ann", Email: "ann@x.com"}}, users.Users())
}

func TestFetchAbsentCollections(t *testing.T) {
	type testCase struct {
		name string
		body string
	}

	testCases := []testCase{
		{name: "empty body", body: ""},
		{name: "null body", body: "null"},
		{name: "missing field", body: "{}"},
		{name: "null field", body: `{"memberships":null,"users":null}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})

			memberships, err := p.FetchMemberships(context.Background())
			require.NoError(t, err)
			assert.True(t, memberships.IsEmpty())

			users, err := p.FetchUsers(context.Background())
			require.NoError(t, err)
			assert.True(t, users.IsEmpty())
		})
	}
}

func TestFetchStatusError(t *testing.T) {
	p := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := p.FetchMemberships(context.Background())
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream down", string(statusErr.Body))
}

func TestFetchDecodeError(t *testing.T) {
	p := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"users":"nope"}`))
	})

	_, err := p.FetchUsers(context.Background())
	assert.ErrorContains(t, err, "backend: decode")
}

func TestCustomPaths(t *testing.T) {
	var paths []string
	p := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	})
	p.MembershipsPath = "api/v2/memberships"
	p.UsersPath = "/api/v2/users"

	_, err := p.FetchMemberships(context.Background())
	require.NoError(t, err)
	_, err = p.FetchUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/api/v2/memberships", "/api/v2/users"}, paths)
}

func TestFetchCancelled(t *testing.T) {
	p := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.FetchUsers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConnect(t *testing.T) {
	p, err := FromJson([]byte(`{"baseUrl":"http://backend.local","timeout":"3s"}`))
	require.NoError(t, err)
	require.NoError(t, p.Connect())
	assert.Equal(t, 3*time.Second, p.httpClient.Timeout)
	assert.NoError(t, p.Close())

	assert.ErrorIs(t, (&Provider{BaseURL: "not a url"}).Connect(), ErrInvalidConfig)
	assert.ErrorIs(t, (&Provider{BaseURL: "http://backend.local", Timeout: "soon"}).Connect(), ErrInvalidConfig)

	_, err = (&Provider{BaseURL: "http://backend.local"}).FetchUsers(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
}
