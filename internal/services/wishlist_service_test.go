package services

import (
	"sync"
	"testing"

	"github.com/avelines/giftwell/backend/internal/apperrors"
	"github.com/avelines/giftwell/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func memberRank(t *testing.T, db *gorm.DB, userID, categoryID uint) int64 {
	t.Helper()
	var member models.CategoryMember
	err := db.Where("user_id = ? AND category_id = ?", userID, categoryID).First(&member).Error
	require.NoError(t, err)
	return member.Rank
}

func giftByID(t *testing.T, db *gorm.DB, giftID uint) *models.Gift {
	t.Helper()
	var gift models.Gift
	require.NoError(t, db.First(&gift, giftID).Error)
	return &gift
}

func TestCreateCategory(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	makeFriends(t, db, alice.ID, bob.ID)

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{
		Name:      "Birthday",
		ShareWith: []uint{bob.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), memberRank(t, db, alice.ID, category.ID))
	assert.Equal(t, int64(0), memberRank(t, db, bob.ID, category.ID))
}

func TestCreateCategoryRejectsNonFriends(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	carol := createUser(t, db, "carol")

	// Carol exists but is no friend of Alice.
	_, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{
		Name:      "Birthday",
		ShareWith: []uint{carol.ID},
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Nothing was created.
	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEditCategoryReconcilesMembership(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	makeFriends(t, db, alice.ID, bob.ID)
	makeFriends(t, db, alice.ID, carol.ID)

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{
		Name:      "Birthday",
		ShareWith: []uint{bob.ID},
	})
	require.NoError(t, err)

	// Swap Bob for Carol and rename.
	err = wishlist.EditCategory(alice.ID, category.ID, models.CreateCategoryRequest{
		Name:      "Birthday 2027",
		ShareWith: []uint{carol.ID},
	})
	require.NoError(t, err)

	var updated models.Category
	require.NoError(t, db.First(&updated, category.ID).Error)
	assert.Equal(t, "Birthday 2027", updated.Name)

	var members []uint
	require.NoError(t, db.Model(&models.CategoryMember{}).
		Where("category_id = ?", category.ID).
		Order("user_id").
		Pluck("user_id", &members).Error)
	assert.Equal(t, []uint{alice.ID, carol.ID}, members)
}

func TestEditCategoryRequiresMembership(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	makeFriends(t, db, alice.ID, bob.ID)

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Private"})
	require.NoError(t, err)

	err = wishlist.EditCategory(bob.ID, category.ID, models.CreateCategoryRequest{Name: "Hijacked"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestReorderCategories(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	makeFriends(t, db, alice.ID, bob.ID)

	first, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "First", ShareWith: []uint{bob.ID}})
	require.NoError(t, err)
	second, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Second", ShareWith: []uint{bob.ID}})
	require.NoError(t, err)

	err = wishlist.ReorderCategories(alice.ID, models.ReorderCategoriesRequest{
		StartingRank: 0,
		Categories:   []uint{second.ID, first.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), memberRank(t, db, alice.ID, second.ID))
	assert.Equal(t, int64(1), memberRank(t, db, alice.ID, first.ID))

	// Bob's private ordering is untouched.
	assert.Equal(t, int64(0), memberRank(t, db, bob.ID, first.ID))
	assert.Equal(t, int64(1), memberRank(t, db, bob.ID, second.ID))
}

func TestReorderCategoriesRejectsForeign(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	mine, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Mine"})
	require.NoError(t, err)
	theirs, err := wishlist.CreateCategory(bob.ID, models.CreateCategoryRequest{Name: "Theirs"})
	require.NoError(t, err)

	err = wishlist.ReorderCategories(alice.ID, models.ReorderCategoriesRequest{
		StartingRank: 0,
		Categories:   []uint{mine.ID, theirs.ID},
	})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestDeleteCategory(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	makeFriends(t, db, alice.ID, bob.ID)

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{
		Name:      "Shared",
		ShareWith: []uint{bob.ID},
	})
	require.NoError(t, err)
	gift, err := wishlist.AddGift(alice.ID, category.ID, models.AddGiftRequest{Name: "socks"})
	require.NoError(t, err)

	// The first leaver only drops their membership.
	require.NoError(t, wishlist.DeleteCategory(alice.ID, category.ID))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The last leaver takes the category and its gifts with them.
	require.NoError(t, wishlist.DeleteCategory(bob.ID, category.ID))

	require.NoError(t, db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Gift{}).Where("id = ?", gift.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddGiftRequiresMembership(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Private"})
	require.NoError(t, err)

	_, err = wishlist.AddGift(bob.ID, category.ID, models.AddGiftRequest{Name: "socks"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAddSecretGift(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	makeFriends(t, db, alice.ID, bob.ID)

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Birthday"})
	require.NoError(t, err)
	_, err = wishlist.AddGift(alice.ID, category.ID, models.AddGiftRequest{Name: "socks"})
	require.NoError(t, err)

	secret, err := wishlist.AddSecretGift(bob.ID, alice.ID, category.ID, models.AddGiftRequest{Name: "surprise"})
	require.NoError(t, err)
	assert.True(t, secret.Secret)
	assert.Equal(t, models.SecretRankBase, secret.Rank)
}

func TestAddSecretGiftRequiresFriendship(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	carol := createUser(t, db, "carol")

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Birthday"})
	require.NoError(t, err)

	_, err = wishlist.AddSecretGift(carol.ID, alice.ID, category.ID, models.AddGiftRequest{Name: "surprise"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestEditGiftRefilesWithinOwnCategories(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	from, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "From"})
	require.NoError(t, err)
	to, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "To"})
	require.NoError(t, err)
	foreign, err := wishlist.CreateCategory(bob.ID, models.CreateCategoryRequest{Name: "Foreign"})
	require.NoError(t, err)

	gift, err := wishlist.AddGift(alice.ID, from.ID, models.AddGiftRequest{Name: "socks"})
	require.NoError(t, err)

	err = wishlist.EditGift(alice.ID, gift.ID, models.EditGiftRequest{Name: "wool socks", CategoryID: to.ID})
	require.NoError(t, err)
	assert.Equal(t, to.ID, giftByID(t, db, gift.ID).CategoryID)

	// Re-filing into somebody else's category is refused.
	err = wishlist.EditGift(alice.ID, gift.ID, models.EditGiftRequest{Name: "wool socks", CategoryID: foreign.ID})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestEditGiftRequiresMembershipOfCurrentCategory(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	mine, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Mine"})
	require.NoError(t, err)
	theirs, err := wishlist.CreateCategory(bob.ID, models.CreateCategoryRequest{Name: "Theirs"})
	require.NoError(t, err)

	gift, err := wishlist.AddGift(alice.ID, mine.ID, models.AddGiftRequest{Name: "socks"})
	require.NoError(t, err)

	err = wishlist.EditGift(bob.ID, gift.ID, models.EditGiftRequest{Name: "stolen", CategoryID: theirs.ID})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestReorderGifts(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Birthday"})
	require.NoError(t, err)

	first, err := wishlist.AddGift(alice.ID, category.ID, models.AddGiftRequest{Name: "socks"})
	require.NoError(t, err)
	second, err := wishlist.AddGift(alice.ID, category.ID, models.AddGiftRequest{Name: "hat"})
	require.NoError(t, err)

	err = wishlist.ReorderGifts(alice.ID, category.ID, models.ReorderGiftsRequest{
		StartingRank: 0,
		Gifts:        []uint{second.ID, first.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), giftByID(t, db, second.ID).Rank)
	assert.Equal(t, int64(1), giftByID(t, db, first.ID).Rank)
}

func TestReorderGiftsRejectsForeignGift(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	mine, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Mine"})
	require.NoError(t, err)
	theirs, err := wishlist.CreateCategory(bob.ID, models.CreateCategoryRequest{Name: "Theirs"})
	require.NoError(t, err)

	myGift, err := wishlist.AddGift(alice.ID, mine.ID, models.AddGiftRequest{Name: "socks"})
	require.NoError(t, err)
	theirGift, err := wishlist.AddGift(bob.ID, theirs.ID, models.AddGiftRequest{Name: "hat"})
	require.NoError(t, err)

	err = wishlist.ReorderGifts(alice.ID, mine.ID, models.ReorderGiftsRequest{
		StartingRank: 0,
		Gifts:        []uint{myGift.ID, theirGift.ID},
	})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// The foreign gift kept its rank.
	assert.Equal(t, int64(0), giftByID(t, db, theirGift.ID).Rank)
}

func TestDeleteGift(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Birthday"})
	require.NoError(t, err)
	gift, err := wishlist.AddGift(alice.ID, category.ID, models.AddGiftRequest{Name: "socks"})
	require.NoError(t, err)

	err = wishlist.DeleteGift(bob.ID, category.ID, gift.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	require.NoError(t, wishlist.DeleteGift(alice.ID, category.ID, gift.ID))

	var count int64
	require.NoError(t, db.Model(&models.Gift{}).Where("id = ?", gift.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSecretGiftFriendPath(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	makeFriends(t, db, alice.ID, bob.ID)

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Birthday"})
	require.NoError(t, err)

	secret, err := wishlist.AddSecretGift(bob.ID, alice.ID, category.ID, models.AddGiftRequest{Name: "surprise"})
	require.NoError(t, err)

	price := "30"
	err = wishlist.EditSecretGift(bob.ID, alice.ID, secret.ID, models.EditGiftRequest{
		Name:       "big surprise",
		Price:      &price,
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "big surprise", giftByID(t, db, secret.ID).Name)

	require.NoError(t, wishlist.DeleteSecretGift(bob.ID, alice.ID, category.ID, secret.ID))

	var count int64
	require.NoError(t, db.Model(&models.Gift{}).Where("id = ?", secret.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestToggleHeart(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Birthday"})
	require.NoError(t, err)
	gift, err := wishlist.AddGift(alice.ID, category.ID, models.AddGiftRequest{Name: "socks"})
	require.NoError(t, err)

	require.NoError(t, wishlist.ToggleHeart(alice.ID, category.ID, gift.ID))
	assert.True(t, giftByID(t, db, gift.ID).Heart)
}

func TestReserve(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	makeFriends(t, db, alice.ID, bob.ID)
	makeFriends(t, db, alice.ID, carol.ID)

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Birthday"})
	require.NoError(t, err)
	gift, err := wishlist.AddGift(alice.ID, category.ID, models.AddGiftRequest{Name: "socks"})
	require.NoError(t, err)

	require.NoError(t, wishlist.Reserve(bob.ID, alice.ID, gift.ID))

	reserved := giftByID(t, db, gift.ID)
	require.NotNil(t, reserved.ReservedBy)
	assert.Equal(t, bob.ID, *reserved.ReservedBy)

	// First reserver wins; Carol is too late.
	err = wishlist.Reserve(carol.ID, alice.ID, gift.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestReserveRequiresFriendship(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	carol := createUser(t, db, "carol")

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Birthday"})
	require.NoError(t, err)
	gift, err := wishlist.AddGift(alice.ID, category.ID, models.AddGiftRequest{Name: "socks"})
	require.NoError(t, err)

	err = wishlist.Reserve(carol.ID, alice.ID, gift.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestReserveRejectsCategoryMembers(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	makeFriends(t, db, alice.ID, bob.ID)

	shared, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{
		Name:      "Shared",
		ShareWith: []uint{bob.ID},
	})
	require.NoError(t, err)
	gift, err := wishlist.AddGift(alice.ID, shared.ID, models.AddGiftRequest{Name: "socks"})
	require.NoError(t, err)

	// Bob sees the category in his own view, so claiming from it would
	// leak through his own wishlist. The ledger refuses.
	err = wishlist.Reserve(bob.ID, alice.ID, gift.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Nil(t, giftByID(t, db, gift.ID).ReservedBy)
}

func TestConcurrentReserveSingleWinner(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	reservers := []*models.User{
		createUser(t, db, "bob"),
		createUser(t, db, "carol"),
		createUser(t, db, "dave"),
		createUser(t, db, "erin"),
	}
	for _, r := range reservers {
		makeFriends(t, db, alice.ID, r.ID)
	}

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Birthday"})
	require.NoError(t, err)
	gift, err := wishlist.AddGift(alice.ID, category.ID, models.AddGiftRequest{Name: "socks"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, len(reservers))
	for i, r := range reservers {
		wg.Add(1)
		go func(i int, userID uint) {
			defer wg.Done()
			results[i] = wishlist.Reserve(userID, alice.ID, gift.ID)
		}(i, r.ID)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, apperrors.ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, len(reservers)-1, conflicts)
}

func TestUnreserve(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	makeFriends(t, db, alice.ID, bob.ID)
	makeFriends(t, db, alice.ID, carol.ID)

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Birthday"})
	require.NoError(t, err)
	gift, err := wishlist.AddGift(alice.ID, category.ID, models.AddGiftRequest{Name: "socks"})
	require.NoError(t, err)

	require.NoError(t, wishlist.Reserve(bob.ID, alice.ID, gift.ID))

	// Only the reserver may release.
	err = wishlist.Unreserve(carol.ID, alice.ID, gift.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	require.NoError(t, wishlist.Unreserve(bob.ID, alice.ID, gift.ID))
	assert.Nil(t, giftByID(t, db, gift.ID).ReservedBy)

	// The gift is claimable again.
	require.NoError(t, wishlist.Reserve(carol.ID, alice.ID, gift.ID))
}

func TestOwnViewHidesSecretsAndClaims(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	makeFriends(t, db, alice.ID, bob.ID)

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Birthday"})
	require.NoError(t, err)

	visible, err := wishlist.AddGift(alice.ID, category.ID, models.AddGiftRequest{Name: "socks"})
	require.NoError(t, err)
	_, err = wishlist.AddSecretGift(bob.ID, alice.ID, category.ID, models.AddGiftRequest{Name: "surprise"})
	require.NoError(t, err)
	require.NoError(t, wishlist.Reserve(bob.ID, alice.ID, visible.ID))

	view, err := wishlist.GetOwnWishlist(alice.ID)
	require.NoError(t, err)
	require.Len(t, view.Categories, 1)

	// Alice sees her visible gift and nothing of Bob's doings.
	gifts := view.Categories[0].Gifts
	require.Len(t, gifts, 1)
	assert.Equal(t, visible.ID, gifts[0].ID)
}

func TestFriendViewScenario(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	makeFriends(t, db, alice.ID, bob.ID)
	makeFriends(t, db, alice.ID, carol.ID)

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Birthday"})
	require.NoError(t, err)
	shared, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{
		Name:      "Shared with Bob",
		ShareWith: []uint{bob.ID},
	})
	require.NoError(t, err)
	_, err = wishlist.AddGift(alice.ID, shared.ID, models.AddGiftRequest{Name: "board game"})
	require.NoError(t, err)

	// Bob plants a surprise and claims Alice's visible wish.
	visible, err := wishlist.AddGift(alice.ID, category.ID, models.AddGiftRequest{Name: "socks"})
	require.NoError(t, err)
	secret, err := wishlist.AddSecretGift(bob.ID, alice.ID, category.ID, models.AddGiftRequest{Name: "surprise"})
	require.NoError(t, err)
	require.NoError(t, wishlist.Reserve(bob.ID, alice.ID, visible.ID))

	// Carol coordinates: she sees the claim and the surprise.
	view, err := wishlist.GetFriendWishlist(carol.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, view.Categories, 2)

	gifts := view.Categories[0].Gifts
	require.Len(t, gifts, 2)
	assert.Equal(t, visible.ID, gifts[0].ID)
	require.NotNil(t, gifts[0].ReservedBy)
	assert.Equal(t, bob.ID, *gifts[0].ReservedBy)
	assert.Equal(t, secret.ID, gifts[1].ID)
	assert.True(t, gifts[1].Secret)

	// Bob's view skips the category he shares with Alice.
	bobView, err := wishlist.GetFriendWishlist(bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, bobView.Categories, 1)
	assert.Equal(t, category.ID, bobView.Categories[0].ID)
}

func TestGetFriendWishlistRequiresFriendship(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	carol := createUser(t, db, "carol")

	_, err := wishlist.GetFriendWishlist(carol.ID, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestExportFriendWishlistDropsClaimed(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	makeFriends(t, db, alice.ID, bob.ID)
	makeFriends(t, db, alice.ID, carol.ID)

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Birthday"})
	require.NoError(t, err)

	open, err := wishlist.AddGift(alice.ID, category.ID, models.AddGiftRequest{Name: "socks"})
	require.NoError(t, err)
	claimed, err := wishlist.AddGift(alice.ID, category.ID, models.AddGiftRequest{Name: "hat"})
	require.NoError(t, err)
	require.NoError(t, wishlist.Reserve(bob.ID, alice.ID, claimed.ID))

	export, err := wishlist.ExportFriendWishlist(carol.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, export.Categories, 1)

	gifts := export.Categories[0].Gifts
	require.Len(t, gifts, 1)
	assert.Equal(t, open.ID, gifts[0].ID)
}

func TestExportOwnWishlist(t *testing.T) {
	db, _, wishlist := newServices(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	makeFriends(t, db, alice.ID, bob.ID)

	category, err := wishlist.CreateCategory(alice.ID, models.CreateCategoryRequest{Name: "Birthday"})
	require.NoError(t, err)
	visible, err := wishlist.AddGift(alice.ID, category.ID, models.AddGiftRequest{Name: "socks"})
	require.NoError(t, err)
	_, err = wishlist.AddSecretGift(bob.ID, alice.ID, category.ID, models.AddGiftRequest{Name: "surprise"})
	require.NoError(t, err)

	export, err := wishlist.ExportOwnWishlist(alice.ID)
	require.NoError(t, err)
	require.Len(t, export.Categories, 1)
	require.Len(t, export.Categories[0].Gifts, 1)
	assert.Equal(t, visible.ID, export.Categories[0].Gifts[0].ID)
}
