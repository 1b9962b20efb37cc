package rejections

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejections_PutListDelete(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepository(repotest.NewDB(t))

	rej := &models.Rejection{
		ItemID:       "c1",
		Kind:         models.ItemKindChore,
		HouseholdID:  "h1",
		Reason:       "permission denied",
		LastModified: time.UnixMilli(2000).UTC(),
		CreatedAt:    time.UnixMilli(3000).UTC(),
	}
	require.NoError(t, r.Put(ctx, rej))

	// A second refusal of a newer version replaces the first.
	rej.LastModified = time.UnixMilli(4000).UTC()
	require.NoError(t, r.Put(ctx, rej))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, rej, list[0])

	require.NoError(t, r.Delete(ctx, models.ItemKindChore, "c1"))
	require.NoError(t, r.Delete(ctx, models.ItemKindChore, "c1"))

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRejections_KindIsPartOfKey(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepository(repotest.NewDB(t))

	require.NoError(t, r.Put(ctx, &models.Rejection{ItemID: "x", Kind: models.ItemKindChore, Reason: "a"}))
	require.NoError(t, r.Put(ctx, &models.Rejection{ItemID: "x", Kind: models.ItemKindNote, Reason: "b"}))

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
