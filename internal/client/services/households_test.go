package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(e *env, id string) {
	e.remote.put(models.UserPath(id), (&models.User{ID: id, Email: id + "@example.com"}).Document())
}

func TestGenerateInviteCode_AvoidsExistingCodes(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	existing := make(map[string]struct{}, 900)
	for len(existing) < 900 {
		code, err := common.RandomCode(common.InviteCodeLength, common.InviteCodeAlphabet)
		require.NoError(t, err)
		if _, dup := existing[code]; dup {
			continue
		}
		existing[code] = struct{}{}
		require.NoError(t, e.repos.Households.Upsert(ctx, &models.Household{
			ID: fmt.Sprintf("h-%d", len(existing)), InviteCode: code,
		}))
	}

	for range 1000 {
		code, err := e.households.GenerateInviteCode(ctx)
		require.NoError(t, err)
		require.Len(t, code, common.InviteCodeLength)
		_, clash := existing[code]
		require.False(t, clash, "code %s collides", code)
	}
}

func TestGenerateInviteCode_GivesUpAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	require.NoError(t, e.repos.Households.Upsert(ctx, &models.Household{ID: "h1", InviteCode: "AAAAAA"}))

	calls := 0
	svc := e.households.(*householdService)
	svc.newCode = func() (string, error) {
		calls++
		return "AAAAAA", nil
	}

	_, err := svc.GenerateInviteCode(ctx)
	require.ErrorIs(t, err, ErrInviteCodes)
	assert.Equal(t, maxInviteCodeAttempts, calls)
}

func TestHouseholdCreate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	seedUser(e, "u1")

	h, err := e.households.Create(ctx, "Flat 4", "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, h.MemberIDs)
	assert.Len(t, h.InviteCode, common.InviteCodeLength)

	doc, ok := e.remote.doc(models.HouseholdPath(h.ID))
	require.True(t, ok)
	assert.Equal(t, h.InviteCode, doc.String("inviteCode"))

	u, err := e.users.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, h.ID, u.HouseholdID)

	userDoc, _ := e.remote.doc(models.UserPath("u1"))
	assert.Equal(t, h.ID, userDoc.String("householdId"))
}

func TestHouseholdCreate_OfflineFailsLoudly(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.remote.setOffline(true)

	_, err := e.households.Create(ctx, "Flat 4", "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrQueuedForSync)
}

func TestHouseholdJoin(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	seedUser(e, "u1")
	seedUser(e, "u2")

	h, err := e.households.Create(ctx, "Flat 4", "u1")
	require.NoError(t, err)

	joined, err := e.households.Join(ctx, " "+h.InviteCode+" ", "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, joined.MemberIDs)

	doc, _ := e.remote.doc(models.HouseholdPath(h.ID))
	assert.Equal(t, []string{"u1", "u2"}, doc.Strings("memberIds"))

	// Joining twice does not duplicate the member.
	again, err := e.households.Join(ctx, h.InviteCode, "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, again.MemberIDs)

	u2, err := e.users.GetByID(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, h.ID, u2.HouseholdID)
}

func TestHouseholdJoin_UnknownCode(t *testing.T) {
	e := newEnv(t)
	_, err := e.households.Join(context.Background(), "ZZZZZZ", "u2")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestHouseholdGetByID_RemoteFallback(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	h := &models.Household{ID: "h7", Name: "Cabin", InviteCode: "CABIN1", MemberIDs: []string{"u1"}}
	e.remote.put(models.HouseholdPath("h7"), h.Document())

	got, err := e.households.GetByID(ctx, "h7")
	require.NoError(t, err)
	assert.Equal(t, "Cabin", got.Name)

	e.remote.setOffline(true)
	got, err = e.households.GetByID(ctx, "h7")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, got.MemberIDs)
}
