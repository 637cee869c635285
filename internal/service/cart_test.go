package service

import (
	"context"
	"testing"

	"artisan_market/internal/apperr"
	"artisan_market/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestCartAddIncrementsExistingLine(t *testing.T) {
	f := newFixture(t)
	vase := testutil.CreateArt(t, f.db, f.artist.ID, "Vase", 1200, "Pottery")
	scarf := testutil.CreateArt(t, f.db, f.artist.ID, "Scarf", 850, "Textile")
	svc := NewCartService(f.carts, f.arts)
	ctx := context.Background()

	_, err := svc.Add(ctx, f.buyer.ID, vase.ID)
	require.NoError(t, err)
	_, err = svc.Add(ctx, f.buyer.ID, scarf.ID)
	require.NoError(t, err)
	view, err := svc.Add(ctx, f.buyer.ID, vase.ID)
	require.NoError(t, err)

	require.Len(t, view.Items, 2)
	assert.Equal(t, vase.ID, view.Items[0].ArtID)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 1, view.Items[1].Quantity)
	require.NotNil(t, view.Items[0].Art)
	assert.Equal(t, "Vase", view.Items[0].Art.Title)
	assert.Equal(t, "Meera", view.Items[0].Art.ArtistName)
}

func TestCartConcurrentAddsKeepEveryUnit(t *testing.T) {
	f := newFixture(t)
	vase := testutil.CreateArt(t, f.db, f.artist.ID, "Vase", 1200, "Pottery")
	svc := NewCartService(f.carts, f.arts)
	ctx := context.Background()
	_, err := svc.Get(ctx, f.buyer.ID)
	require.NoError(t, err)

	const adds = 12
	var g errgroup.Group
	for i := 0; i < adds; i++ {
		g.Go(func() error {
			_, err := svc.Add(ctx, f.buyer.ID, vase.ID)
			return err
		})
	}
	require.NoError(t, g.Wait())

	view, err := svc.Get(ctx, f.buyer.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, adds, view.Items[0].Quantity)
}

func TestCartAddUnknownArt(t *testing.T) {
	f := newFixture(t)
	svc := NewCartService(f.carts, f.arts)

	_, err := svc.Add(context.Background(), f.buyer.ID, 4242)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, "Artwork not found", apperr.As(err).Message)
}

func TestCartGetCreatesEmptyCart(t *testing.T) {
	f := newFixture(t)
	svc := NewCartService(f.carts, f.arts)

	view, err := svc.Get(context.Background(), f.buyer.ID)
	require.NoError(t, err)
	assert.NotZero(t, view.ID)
	assert.Empty(t, view.Items)

	again, err := svc.Get(context.Background(), f.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, view.ID, again.ID)
}

func TestCartUpdateQuantity(t *testing.T) {
	f := newFixture(t)
	vase := testutil.CreateArt(t, f.db, f.artist.ID, "Vase", 1200, "Pottery")
	svc := NewCartService(f.carts, f.arts)
	ctx := context.Background()

	_, err := svc.UpdateQuantity(ctx, f.buyer.ID, vase.ID, 3)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound), "no cart yet")

	_, err = svc.Add(ctx, f.buyer.ID, vase.ID)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(ctx, f.buyer.ID, vase.ID, 0)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.UpdateQuantity(ctx, f.buyer.ID, vase.ID+1, 2)
	assert.Equal(t, "Item not found in cart", apperr.As(err).Message)

	view, err := svc.UpdateQuantity(ctx, f.buyer.ID, vase.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Items[0].Quantity)
}

func TestCartRemoveAndClear(t *testing.T) {
	f := newFixture(t)
	vase := testutil.CreateArt(t, f.db, f.artist.ID, "Vase", 1200, "Pottery")
	scarf := testutil.CreateArt(t, f.db, f.artist.ID, "Scarf", 850, "Textile")
	svc := NewCartService(f.carts, f.arts)
	ctx := context.Background()

	require.NoError(t, svc.Clear(ctx, f.buyer.ID), "clearing a missing cart is a no-op")

	_, err := svc.Add(ctx, f.buyer.ID, vase.ID)
	require.NoError(t, err)
	_, err = svc.Add(ctx, f.buyer.ID, scarf.ID)
	require.NoError(t, err)

	view, err := svc.Remove(ctx, f.buyer.ID, vase.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, scarf.ID, view.Items[0].ArtID)

	require.NoError(t, svc.Clear(ctx, f.buyer.ID))
	view, err = svc.Get(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartShowsDeletedListingAsEmptyArt(t *testing.T) {
	f := newFixture(t)
	vase := testutil.CreateArt(t, f.db, f.artist.ID, "Vase", 1200, "Pottery")
	svc := NewCartService(f.carts, f.arts)
	ctx := context.Background()

	_, err := svc.Add(ctx, f.buyer.ID, vase.ID)
	require.NoError(t, err)
	require.NoError(t, f.arts.Delete(ctx, vase.ID))

	view, err := svc.Get(ctx, f.buyer.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Nil(t, view.Items[0].Art)
}
