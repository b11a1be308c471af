package jsonfile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubex/rubix-membersearch/rubix"
)

func TestFromJson(t *testing.T) {
	p, err := FromJson([]byte(`{"dataDirectory":"_testdata/pass"}`))
	require.NoError(t, err)
	assert.Equal(t, "_testdata/pass", p.dataDirectory)

	_, err = FromJson([]byte(`{"dataDirectory":`))
	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	assert.NoError(t, New("_testdata/pass").Connect())
	assert.ErrorIs(t, New("xxx").Connect(), ErrLoad)
	assert.ErrorIs(t, New("_testdata/file/marker.txt").Connect(), ErrLoad)
}

func TestFilePath(t *testing.T) {
	assert.Equal(t, "data/users.json", New("data/").filePath("users"))
	assert.Equal(t, "data/memberships.json", New("data").filePath("memberships"))
}

func TestFetchMemberships(t *testing.T) {
	ctx := context.Background()

	list, err := New("_testdata/pass").FetchMemberships(ctx)
	require.NoError(t, err)
	assert.Equal(t, []rubix.Membership{
		{ID: "1", UserID: "u1", Role: "admin"},
		{ID: "2", UserID: "u2", Role: "member"},
		{ID: "3", UserID: "u9", Role: "member"},
	}, list.Memberships())

	for _, dir := range []string{"_testdata/empty", "_testdata/absent"} {
		t.Run(dir, func(t *testing.T) {
			list, err := New(dir).FetchMemberships(ctx)
			require.NoError(t, err)
			assert.True(t, list.IsEmpty())
		})
	}

	_, err = New("xxx").FetchMemberships(ctx)
	assert.ErrorIs(t, err, ErrLoad)

	_, err = New("_testdata/corrupt").FetchMemberships(ctx)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestFetchUsers(t *testing.T) {
	ctx := context.Background()

	list, err := New("_testdata/pass").FetchUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []rubix.User{
		{ID: "u1", Name: "Ann", Email: "ann@x.com"},
		{ID: "u2", Name: "Bob", Email: "bob@y.org"},
	}, list.Users())

	list, err = New("_testdata/absent").FetchUsers(ctx)
	require.NoError(t, err)
	assert.True(t, list.IsEmpty())

	_, err = New("_testdata/corrupt").FetchUsers(ctx)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestFetchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New("_testdata/pass").FetchUsers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
