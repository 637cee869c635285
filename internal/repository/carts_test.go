package repository

import (
	"context"
	"testing"

	"artisan_market/internal/domain"
	"artisan_market/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartLinesKeepInsertionOrderAndMissingListings(t *testing.T) {
	gdb := testutil.NewDB(t)
	carts := NewCartRepository(gdb)
	arts := NewArtRepository(gdb)
	artist := testutil.CreateUser(t, gdb, "Meera", domain.RoleArtist)
	buyer := testutil.CreateUser(t, gdb, "Arjun", domain.RoleBuyer)
	vase := testutil.CreateArt(t, gdb, artist.ID, "Vase", 1200, "Pottery")
	scarf := testutil.CreateArt(t, gdb, artist.ID, "Scarf", 850, "Textile")
	ctx := context.Background()

	cart, err := carts.GetOrCreate(ctx, buyer.ID)
	require.NoError(t, err)
	require.NoError(t, carts.AddItem(ctx, &domain.CartItem{CartID: cart.ID, ArtID: scarf.ID, Quantity: 1}))
	require.NoError(t, carts.AddItem(ctx, &domain.CartItem{CartID: cart.ID, ArtID: vase.ID, Quantity: 2}))
	require.NoError(t, arts.Delete(ctx, scarf.ID))

	lines, err := carts.Lines(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, scarf.ID, lines[0].ArtID)
	assert.Nil(t, lines[0].Art)
	require.NotNil(t, lines[1].Art)
	assert.Equal(t, 2, lines[1].Quantity)
	assert.Equal(t, "Vase", lines[1].Art.Title)
	assert.Equal(t, "Meera", lines[1].Art.ArtistName)
	assert.Equal(t, 1200.0, lines[1].Art.Price)

	again, err := carts.FindByUser(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
	assert.Len(t, again.Items, 2)

	_, err = carts.FindByUser(ctx, artist.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddUnitUpsertsOneLinePerArt(t *testing.T) {
	gdb := testutil.NewDB(t)
	carts := NewCartRepository(gdb)
	artist := testutil.CreateUser(t, gdb, "Meera", domain.RoleArtist)
	buyer := testutil.CreateUser(t, gdb, "Arjun", domain.RoleBuyer)
	vase := testutil.CreateArt(t, gdb, artist.ID, "Vase", 1200, "Pottery")
	ctx := context.Background()

	cart, err := carts.GetOrCreate(ctx, buyer.ID)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, carts.AddUnit(ctx, cart.ID, vase.ID))
	}

	lines, err := carts.Lines(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)

	// A second line for the same art is refused by the index
	assert.Error(t, carts.AddItem(ctx, &domain.CartItem{CartID: cart.ID, ArtID: vase.ID, Quantity: 1}))
}

func TestFindByIDsSkipsMissingAndCollapsesDuplicates(t *testing.T) {
	gdb := testutil.NewDB(t)
	arts := NewArtRepository(gdb)
	artist := testutil.CreateUser(t, gdb, "Meera", domain.RoleArtist)
	vase := testutil.CreateArt(t, gdb, artist.ID, "Vase", 1200, "Pottery")

	found, err := arts.FindByIDs(context.Background(), []uint{vase.ID, vase.ID, vase.ID + 10})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	none, err := arts.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
