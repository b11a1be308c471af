package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubex/rubix-membersearch/rubix"
)

type fakeBackend struct {
	memberships    rubix.MembershipList
	users          rubix.UserList
	membershipsErr error
	usersErr       error

	membershipCalls int
	userCalls       int
}

func (f *fakeBackend) FetchMemberships(ctx context.Context) (rubix.MembershipList, error) {
	f.membershipCalls++
	return f.memberships, f.membershipsErr
}

func (f *fakeBackend) FetchUsers(ctx context.Context) (rubix.UserList, error) {
	f.userCalls++
	return f.users, f.usersErr
}

var (
	ann = rubix.User{ID: "u1", Name: "Ann", Email: "ann@x.com"}
	bob = rubix.User{ID: "u2", Name: "Bob", Email: "bob@y.org"}
)

func populated() *fakeBackend {
	return &fakeBackend{
		memberships: rubix.NewMembershipList(
			rubix.Membership{ID: "1", UserID: "u1", Role: "admin"},
			rubix.Membership{ID: "2", UserID: "u2", Role: "member"},
			rubix.Membership{ID: "3", UserID: "u9", Role: "member"},
		),
		users: rubix.NewUserList(ann, bob),
	}
}

func TestFetchAllMembershipsWithUsers(t *testing.T) {
	backend := populated()
	svc := NewMembershipService(backend, zerolog.Nop())

	got, err := svc.FetchAllMembershipsWithUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []rubix.UserMembership{
		{ID: "1", UserID: "u1", Role: "admin", User: ann},
		{ID: "2", UserID: "u2", Role: "member", User: bob},
	}, got.Memberships())
	assert.Equal(t, 1, backend.membershipCalls)
	assert.Equal(t, 1, backend.userCalls)
}

func TestFetchAllSkipsUsersWhenNoMemberships(t *testing.T) {
	var buf bytes.Buffer
	backend := &fakeBackend{users: rubix.NewUserList(ann)}
	svc := NewMembershipService(backend, zerolog.New(&buf))

	got, err := svc.FetchAllMembershipsWithUsers(context.Background())
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	assert.NotNil(t, got.Memberships())
	assert.Equal(t, 1, backend.membershipCalls)
	assert.Equal(t, 0, backend.userCalls)
	assert.Contains(t, buf.String(), "no memberships found")
}

func TestFetchAllEmptyUsers(t *testing.T) {
	var buf bytes.Buffer
	backend := &fakeBackend{memberships: rubix.NewMembershipList(rubix.Membership{ID: "1", UserID: "u1"})}
	svc := NewMembershipService(backend, zerolog.New(&buf))

	got, err := svc.FetchAllMembershipsWithUsers(context.Background())
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	assert.Equal(t, 1, backend.userCalls)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "no users returned")
}

func TestFetchErrorsPropagateUnchanged(t *testing.T) {
	membershipsErr := errors.New("memberships unavailable")
	usersErr := errors.New("users unavailable")

	type testCase struct {
		name      string
		backend   *fakeBackend
		expected  error
		userCalls int
	}

	testCases := []testCase{
		{
			name:      "membership fetch fails",
			backend:   &fakeBackend{membershipsErr: membershipsErr},
			expected:  membershipsErr,
			userCalls: 0,
		},
		{
			name: "user fetch fails",
			backend: &fakeBackend{
				memberships: rubix.NewMembershipList(rubix.Membership{ID: "1", UserID: "u1"}),
				usersErr:    usersErr,
			},
			expected:  usersErr,
			userCalls: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewMembershipService(tc.backend, zerolog.Nop())

			all, err := svc.FetchAllMembershipsWithUsers(context.Background())
			assert.Same(t, tc.expected, err)
			assert.True(t, all.IsEmpty())

			filtered, err := svc.FetchMembershipsWithUsers(context.Background(), "ann", "")
			assert.Same(t, tc.expected, err)
			assert.True(t, filtered.IsEmpty())
			assert.Equal(t, tc.userCalls*2, tc.backend.userCalls)
		})
	}
}

func TestFetchMembershipsWithUsers(t *testing.T) {
	type testCase struct {
		name     string
		query    string
		email    string
		expected []rubix.UserMembership
	}

	annM := rubix.UserMembership{ID: "1", UserID: "u1", Role: "admin", User: ann}
	bobM := rubix.UserMembership{ID: "2", UserID: "u2", Role: "member", User: bob}

	testCases := []testCase{
		{name: "by name", query: "ann", expected: []rubix.UserMembership{annM}},
		{name: "by email", email: "Y.ORG", expected: []rubix.UserMembership{bobM}},
		{name: "or semantics", query: "zz", email: "ann@x.com", expected: []rubix.UserMembership{annM}},
		{name: "both blank", expected: []rubix.UserMembership{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewMembershipService(populated(), zerolog.Nop())
			got, err := svc.FetchMembershipsWithUsers(context.Background(), tc.query, tc.email)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got.Memberships())
		})
	}
}

func TestFetchMembershipsWithUsersSkipsUsersWhenNoMemberships(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewMembershipService(backend, zerolog.Nop())

	got, err := svc.FetchMembershipsWithUsers(context.Background(), "ann", "ann")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	assert.Equal(t, 0, backend.userCalls)
}

func TestComparisonLoggingAtDebug(t *testing.T) {
	var buf bytes.Buffer
	svc := NewMembershipService(populated(), zerolog.New(&buf).Level(zerolog.DebugLevel))

	_, err := svc.FetchMembershipsWithUsers(context.Background(), "ann", "")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"field":"name"`)
	assert.Contains(t, buf.String(), `"run_id"`)

	buf.Reset()
	svc = NewMembershipService(populated(), zerolog.New(&buf).Level(zerolog.InfoLevel))
	_, err = svc.FetchMembershipsWithUsers(context.Background(), "ann", "")
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "compare")
}
