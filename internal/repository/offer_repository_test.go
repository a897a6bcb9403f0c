package repository

import (
	"context"
	"testing"
	"time"

	"produce-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferRepository_CRUD(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOfferRepository(pool, zerolog.Nop())
	ctx := context.Background()

	end := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	offers := []model.Offer{
		{ID: "O1", ProductID: "P001", Title: "Mango week", Discount: 20, Price: 25, EndDate: end},
		{ID: "O2", Title: "Citrus crate", Discount: 10, Price: 40, EndDate: end},
		{ID: "O3", Title: "Berry bonanza", Discount: 15, Price: 30, EndDate: end},
		{ID: "O4", Title: "Juice Friday", Discount: 5, Price: 12, EndDate: end},
	}
	for i := range offers {
		require.NoError(t, repo.Create(ctx, &offers[i]))
	}

	t.Run("List all", func(t *testing.T) {
		got, err := repo.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "O1", got[0].ID)
	})

	t.Run("List limited", func(t *testing.T) {
		got, err := repo.List(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("GetByID", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "O1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Mango week", got.Title)
		assert.Equal(t, 20.0, got.Discount)
		assert.True(t, end.Equal(got.EndDate))

		missing, err := repo.GetByID(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Update", func(t *testing.T) {
		o := offers[1]
		o.Discount = 50
		require.NoError(t, repo.Update(ctx, &o))

		got, err := repo.GetByID(ctx, "O2")
		require.NoError(t, err)
		assert.Equal(t, 50.0, got.Discount)

		ghost := model.Offer{ID: "ghost", Title: "x", EndDate: end}
		assert.ErrorIs(t, repo.Update(ctx, &ghost), model.ErrOfferNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "O4"))
		assert.ErrorIs(t, repo.Delete(ctx, "O4"), model.ErrOfferNotFound)

		got, err := repo.List(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("List orders by creation time, not id", func(t *testing.T) {
		created := time.Date(2020, 1, 1, 8, 0, 0, 0, time.UTC)
		early := model.Offer{ID: "ZZ", Title: "Early bird", Discount: 5, Price: 10, EndDate: end, CreatedAt: created}
		require.NoError(t, repo.Create(ctx, &early))

		got, err := repo.List(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "ZZ", got[0].ID)
		assert.True(t, created.Equal(got[0].CreatedAt))

		early.Title = "Early bird renamed"
		early.CreatedAt = time.Time{}
		require.NoError(t, repo.Update(ctx, &early))

		fetched, err := repo.GetByID(ctx, "ZZ")
		require.NoError(t, err)
		assert.Equal(t, "Early bird renamed", fetched.Title)
		assert.True(t, created.Equal(fetched.CreatedAt), "update must keep the creation time")
	})
}
