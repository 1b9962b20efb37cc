package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/housekeeper/internal/client/client"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/housekeeper/internal/common"
	"github.com/dmitrijs2005/housekeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T) (AuthService, *fakeClient, *env) {
	t.Helper()
	e := newEnv(t)
	fc := &fakeClient{fakeRemote: e.remote}
	return NewAuthService(fc, e.repos, e.users, logging.Discard()), fc, e
}

func TestAuth_RegisterLoginRestoreLogout(t *testing.T) {
	ctx := context.Background()
	auth, fc, e := newAuth(t)

	id, err := auth.Register(ctx, "ann@example.com", "pw", "Ann")
	require.NoError(t, err)
	assert.Equal(t, "user-ann@example.com", id)

	session, err := auth.Login(ctx, "ann@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, id, session.UserID)

	token, err := e.repos.Metadata.GetString(ctx, metadata.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "token-ann@example.com", token)

	cached, err := e.repos.Users.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ann", cached.DisplayName)

	fc.token = ""
	restored, err := auth.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, session, restored)
	assert.Equal(t, "token-ann@example.com", fc.token)

	require.NoError(t, auth.Logout(ctx))
	assert.Empty(t, fc.token)
	_, err = auth.Restore(ctx)
	require.ErrorIs(t, err, ErrNotSignedIn)
}

func TestAuth_RegisterValidation(t *testing.T) {
	auth, _, _ := newAuth(t)
	_, err := auth.Register(context.Background(), " ", "pw", "x")
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestAuth_LoginFailureKeepsNoSession(t *testing.T) {
	ctx := context.Background()
	auth, fc, _ := newAuth(t)
	fc.loginErr = client.ErrUnauthorized

	_, err := auth.Login(ctx, "ann@example.com", "bad")
	require.ErrorIs(t, err, client.ErrUnauthorized)

	_, err = auth.Restore(ctx)
	require.ErrorIs(t, err, ErrNotSignedIn)
}

func TestAuth_Ping(t *testing.T) {
	auth, fc, _ := newAuth(t)
	require.NoError(t, auth.Ping(context.Background()))
	fc.setOffline(true)
	require.ErrorIs(t, auth.Ping(context.Background()), client.ErrUnavailable)
}
