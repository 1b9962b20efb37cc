package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/housekeeper/internal/client/client"
	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserUpdate_OnlineOnly(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	u := &models.User{ID: "u1", Email: "a@b.c", DisplayName: "Ann"}
	require.NoError(t, e.users.Update(ctx, u))
	doc, ok := e.remote.doc(models.UserPath("u1"))
	require.True(t, ok)
	assert.Equal(t, "Ann", doc.String("displayName"))

	e.remote.setOffline(true)
	u.DisplayName = "Annie"
	err := e.users.Update(ctx, u)
	require.ErrorIs(t, err, client.ErrUnavailable)

	cached, err := e.repos.Users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", cached.DisplayName)
}

func TestUserSetPushToken(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	seedUser(e, "u1")

	require.NoError(t, e.users.SetPushToken(ctx, "u1", "device-token"))
	doc, _ := e.remote.doc(models.UserPath("u1"))
	assert.Equal(t, "device-token", doc.String("fcmToken"))

	u, err := e.users.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "device-token", u.PushToken)

	require.NoError(t, e.users.SetPushToken(ctx, "u1", "rotated"))
	u, err = e.repos.Users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "rotated", u.PushToken)
}

func TestUserGetByID_Missing(t *testing.T) {
	e := newEnv(t)
	_, err := e.users.GetByID(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCurrentHousehold(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	seedUser(e, "u1")

	_, err := CurrentHousehold(ctx, e.users, nil)
	require.ErrorIs(t, err, ErrNotSignedIn)

	_, err = CurrentHousehold(ctx, e.users, &Session{UserID: "u1"})
	require.ErrorIs(t, err, ErrNoHousehold)

	require.NoError(t, e.users.SetHousehold(ctx, "u1", "h1"))
	u, err := CurrentHousehold(ctx, e.users, &Session{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "h1", u.HouseholdID)
}
