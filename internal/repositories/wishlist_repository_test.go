package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOwnWishlist(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresWishlistRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	private := createCategory(t, db, "Private", alice.ID)
	shared := createCategory(t, db, "Shared", alice.ID, bob.ID)

	visible := addGift(t, db, private.ID, "socks", false)
	addGift(t, db, private.ID, "surprise", true)

	reserved := addGift(t, db, shared.ID, "hat", false)
	require.NoError(t, NewPostgresGiftRepository(db).Reserve(reserved.ID, bob.ID))

	wishlist, err := repo.GetOwnWishlist(alice.ID)
	require.NoError(t, err)
	require.Len(t, wishlist.Categories, 2)

	// Categories come back in Alice's personal order.
	assert.Equal(t, private.ID, wishlist.Categories[0].ID)
	assert.Equal(t, shared.ID, wishlist.Categories[1].ID)

	assert.Equal(t, []uint{}, wishlist.Categories[0].ShareWith)
	assert.Equal(t, []uint{bob.ID}, wishlist.Categories[1].ShareWith)

	// The secret gift never reaches the owner.
	require.Len(t, wishlist.Categories[0].Gifts, 1)
	assert.Equal(t, visible.ID, wishlist.Categories[0].Gifts[0].ID)

	// The reserved gift stays listed; the owner just never learns the claim.
	require.Len(t, wishlist.Categories[1].Gifts, 1)
	assert.Equal(t, reserved.ID, wishlist.Categories[1].Gifts[0].ID)
}

func TestGetOwnWishlistOrdersByPersonalRank(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresWishlistRepository(db)
	categories := NewPostgresCategoryRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	first := createCategory(t, db, "First", alice.ID, bob.ID)
	second := createCategory(t, db, "Second", alice.ID, bob.ID)

	require.NoError(t, categories.ReorderForUser(alice.ID, 0, []uint{second.ID, first.ID}))

	aliceList, err := repo.GetOwnWishlist(alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceList.Categories, 2)
	assert.Equal(t, second.ID, aliceList.Categories[0].ID)

	// Bob still sees his own ordering.
	bobList, err := repo.GetOwnWishlist(bob.ID)
	require.NoError(t, err)
	require.Len(t, bobList.Categories, 2)
	assert.Equal(t, first.ID, bobList.Categories[0].ID)
}

func TestGetFriendWishlist(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresWishlistRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	private := createCategory(t, db, "Private", alice.ID)
	createCategory(t, db, "Shared", alice.ID, bob.ID)

	visible := addGift(t, db, private.ID, "socks", false)
	secret := addGift(t, db, private.ID, "surprise", true)
	require.NoError(t, NewPostgresGiftRepository(db).Reserve(visible.ID, bob.ID))

	wishlist, err := repo.GetFriendWishlist(bob.ID, alice.ID)
	require.NoError(t, err)

	// The shared category already sits in Bob's own view and is skipped.
	require.Len(t, wishlist.Categories, 1)
	assert.Equal(t, private.ID, wishlist.Categories[0].ID)

	gifts := wishlist.Categories[0].Gifts
	require.Len(t, gifts, 2)

	assert.Equal(t, visible.ID, gifts[0].ID)
	assert.False(t, gifts[0].Secret)
	require.NotNil(t, gifts[0].ReservedBy)
	assert.Equal(t, bob.ID, *gifts[0].ReservedBy)

	assert.Equal(t, secret.ID, gifts[1].ID)
	assert.True(t, gifts[1].Secret)
	assert.Nil(t, gifts[1].ReservedBy)
}

func TestGetFriendWishlistEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresWishlistRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	// Everything Alice has is shared with Bob.
	createCategory(t, db, "Shared", alice.ID, bob.ID)

	wishlist, err := repo.GetFriendWishlist(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, wishlist.Categories)
}
