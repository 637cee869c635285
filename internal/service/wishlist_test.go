package service

import (
	"context"
	"testing"

	"artisan_market/internal/apperr"
	"artisan_market/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistAddIsUnique(t *testing.T) {
	f := newFixture(t)
	vase := testutil.CreateArt(t, f.db, f.artist.ID, "Vase", 1200, "Pottery")
	svc := NewWishlistService(f.wishlists, f.arts)
	ctx := context.Background()

	_, err := svc.Add(ctx, f.buyer.ID, vase.ID)
	require.NoError(t, err)
	view, err := svc.Add(ctx, f.buyer.ID, vase.ID)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, "Vase", view.Items[0].Title)
	assert.Equal(t, "Meera", view.Items[0].ArtistName)
}

func TestWishlistAddUnknownArt(t *testing.T) {
	f := newFixture(t)
	svc := NewWishlistService(f.wishlists, f.arts)

	_, err := svc.Add(context.Background(), f.buyer.ID, 99)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestWishlistRemoveAndClear(t *testing.T) {
	f := newFixture(t)
	vase := testutil.CreateArt(t, f.db, f.artist.ID, "Vase", 1200, "Pottery")
	bowl := testutil.CreateArt(t, f.db, f.artist.ID, "Bowl", 300, "Pottery")
	svc := NewWishlistService(f.wishlists, f.arts)
	ctx := context.Background()

	_, err := svc.Remove(ctx, f.buyer.ID, vase.ID)
	assert.Equal(t, "Wishlist not found", apperr.As(err).Message)

	_, err = svc.Add(ctx, f.buyer.ID, vase.ID)
	require.NoError(t, err)
	_, err = svc.Add(ctx, f.buyer.ID, bowl.ID)
	require.NoError(t, err)

	view, err := svc.Remove(ctx, f.buyer.ID, vase.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, bowl.ID, view.Items[0].ID)

	require.NoError(t, svc.Clear(ctx, f.buyer.ID))
	view, err = svc.Get(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}
