package services

import (
	"github.com/avelines/giftwell/backend/internal/apperrors"
	"github.com/avelines/giftwell/backend/internal/models"
	"github.com/avelines/giftwell/backend/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WishlistService is the capability-checked facade over the category and
// gift store, the visibility policy and the reservation ledger. Handlers
// never reach the repositories directly: each operation here evaluates
// the relevant predicate (membership, friendship, gift location) and
// only then delegates, inside one transaction.
type WishlistService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewWishlistService creates a new WishlistService
func NewWishlistService(db *gorm.DB, logger *zap.Logger) *WishlistService {
	return &WishlistService{db: db, logger: logger}
}

func (s *WishlistService) inTx(op string, fn func(tx *gorm.DB) error) error {
	err := s.db.Transaction(fn)
	if err != nil && !apperrors.IsDomain(err) {
		s.logger.Error("wishlist operation failed", zap.String("op", op), zap.Error(err))
	}
	return err
}

// checkShareWith verifies that every id in shareWith is an accepted
// friend of the owner and returns the full membership set, owner
// included and deduplicated.
func checkShareWith(tx *gorm.DB, ownerID uint, shareWith []uint) ([]uint, error) {
	friendships := repositories.NewPostgresFriendshipRepository(tx)

	members := []uint{ownerID}
	seen := map[uint]bool{ownerID: true}
	for _, id := range shareWith {
		if seen[id] {
			continue
		}
		friends, err := friendships.AreFriends(ownerID, id)
		if err != nil {
			return nil, err
		}
		if !friends {
			return nil, apperrors.NotFoundf("user %d is not a friend", id)
		}
		seen[id] = true
		members = append(members, id)
	}
	return members, nil
}

func requireMember(tx *gorm.DB, userID, categoryID uint) error {
	categories := repositories.NewPostgresCategoryRepository(tx)
	member, err := categories.IsMember(userID, categoryID)
	if err != nil {
		return err
	}
	if !member {
		return apperrors.Unauthorizedf("user %d is not a member of category %d", userID, categoryID)
	}
	return nil
}

func requireFriends(tx *gorm.DB, a, b uint) error {
	friendships := repositories.NewPostgresFriendshipRepository(tx)
	friends, err := friendships.AreFriends(a, b)
	if err != nil {
		return err
	}
	if !friends {
		return apperrors.Unauthorizedf("users %d and %d are not friends", a, b)
	}
	return nil
}

// requireOwnGift checks IsOwnGift: the caller is a member of the
// category and the gift currently sits in it
func requireOwnGift(tx *gorm.DB, userID, categoryID, giftID uint) error {
	if err := requireMember(tx, userID, categoryID); err != nil {
		return err
	}
	gifts := repositories.NewPostgresGiftRepository(tx)
	in, err := gifts.InCategory(giftID, categoryID)
	if err != nil {
		return err
	}
	if !in {
		return apperrors.Unauthorizedf("gift %d is not in category %d", giftID, categoryID)
	}
	return nil
}

// requireEditableGift checks IsEditableGift: the user is a member of
// whatever category the gift currently sits in
func requireEditableGift(tx *gorm.DB, userID, giftID uint) error {
	gifts := repositories.NewPostgresGiftRepository(tx)
	categoryID, err := gifts.CategoryOf(giftID)
	if err != nil {
		return err
	}
	return requireMember(tx, userID, categoryID)
}

// CreateCategory creates a category shared with the given friends. Every
// share-with id must be an accepted friend of the owner; membership is
// shareWith plus the owner, each member appended at their personal next
// rank.
func (s *WishlistService) CreateCategory(ownerID uint, req models.CreateCategoryRequest) (*models.Category, error) {
	var category *models.Category
	err := s.inTx("create category", func(tx *gorm.DB) error {
		members, err := checkShareWith(tx, ownerID, req.ShareWith)
		if err != nil {
			return err
		}
		categories := repositories.NewPostgresCategoryRepository(tx)
		category, err = categories.Create(req.Name, members)
		return err
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// EditCategory renames a category and reconciles its membership against
// the new share list. New members are appended at their personal next
// rank; removed members lose only their own rank row for this category.
func (s *WishlistService) EditCategory(callerID, categoryID uint, req models.CreateCategoryRequest) error {
	return s.inTx("edit category", func(tx *gorm.DB) error {
		if err := requireMember(tx, callerID, categoryID); err != nil {
			return err
		}
		desired, err := checkShareWith(tx, callerID, req.ShareWith)
		if err != nil {
			return err
		}

		categories := repositories.NewPostgresCategoryRepository(tx)
		if err := categories.Rename(categoryID, req.Name); err != nil {
			return err
		}

		current, err := categories.MembersOf(categoryID)
		if err != nil {
			return err
		}
		currentSet := make(map[uint]bool, len(current))
		for _, id := range current {
			currentSet[id] = true
		}
		desiredSet := make(map[uint]bool, len(desired))

		var toAdd []uint
		for _, id := range desired {
			desiredSet[id] = true
			if !currentSet[id] {
				toAdd = append(toAdd, id)
			}
		}
		if err := categories.AddMembers(categoryID, toAdd); err != nil {
			return err
		}
		for _, id := range current {
			if !desiredSet[id] {
				if err := categories.RemoveMember(categoryID, id); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// ReorderCategories reassigns a contiguous rank block over the caller's
// own membership rows. Other members' orderings are untouched.
func (s *WishlistService) ReorderCategories(userID uint, req models.ReorderCategoriesRequest) error {
	return s.inTx("reorder categories", func(tx *gorm.DB) error {
		for _, categoryID := range req.Categories {
			if err := requireMember(tx, userID, categoryID); err != nil {
				return err
			}
		}
		categories := repositories.NewPostgresCategoryRepository(tx)
		return categories.ReorderForUser(userID, req.StartingRank, req.Categories)
	})
}

// DeleteCategory removes the caller's membership. The category and all
// its gifts are cascaded away once the membership set empties.
func (s *WishlistService) DeleteCategory(userID, categoryID uint) error {
	return s.inTx("delete category", func(tx *gorm.DB) error {
		if err := requireMember(tx, userID, categoryID); err != nil {
			return err
		}
		categories := repositories.NewPostgresCategoryRepository(tx)
		if err := categories.RemoveMember(categoryID, userID); err != nil {
			return err
		}
		count, err := categories.MemberCount(categoryID)
		if err != nil {
			return err
		}
		if count == 0 {
			return categories.DeleteCascade(categoryID)
		}
		return nil
	})
}

// AddGift adds a non-secret gift to one of the caller's categories
func (s *WishlistService) AddGift(callerID, categoryID uint, req models.AddGiftRequest) (*models.Gift, error) {
	return s.addGift(categoryID, req, false, func(tx *gorm.DB) error {
		return requireMember(tx, callerID, categoryID)
	})
}

// AddSecretGift adds a surprise gift to a friend's category. The caller
// must be an accepted friend of the target and the target a member of
// the category; the caller being a member as well is fine, the gift just
// stays hidden from the target.
func (s *WishlistService) AddSecretGift(callerID, targetID, categoryID uint, req models.AddGiftRequest) (*models.Gift, error) {
	return s.addGift(categoryID, req, true, func(tx *gorm.DB) error {
		if err := requireFriends(tx, callerID, targetID); err != nil {
			return err
		}
		return requireMember(tx, targetID, categoryID)
	})
}

func (s *WishlistService) addGift(categoryID uint, req models.AddGiftRequest, secret bool, check func(tx *gorm.DB) error) (*models.Gift, error) {
	gift := &models.Gift{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		WhereToBuy:  req.WhereToBuy,
		Picture:     req.Picture,
		Secret:      secret,
		CategoryID:  categoryID,
	}
	err := s.inTx("add gift", func(tx *gorm.DB) error {
		if err := check(tx); err != nil {
			return err
		}
		gifts := repositories.NewPostgresGiftRepository(tx)
		return gifts.Add(gift)
	})
	if err != nil {
		return nil, err
	}
	return gift, nil
}

// EditGift updates a gift in the caller's wishlist, possibly re-filing
// it into another category the caller is also a member of
func (s *WishlistService) EditGift(callerID, giftID uint, req models.EditGiftRequest) error {
	return s.inTx("edit gift", func(tx *gorm.DB) error {
		if err := requireEditableGift(tx, callerID, giftID); err != nil {
			return err
		}
		if err := requireMember(tx, callerID, req.CategoryID); err != nil {
			return err
		}
		gifts := repositories.NewPostgresGiftRepository(tx)
		return gifts.Edit(giftID, req)
	})
}

// EditSecretGift updates a surprise gift in a friend's category
func (s *WishlistService) EditSecretGift(callerID, targetID, giftID uint, req models.EditGiftRequest) error {
	return s.inTx("edit secret gift", func(tx *gorm.DB) error {
		if err := requireFriends(tx, callerID, targetID); err != nil {
			return err
		}
		if err := requireEditableGift(tx, targetID, giftID); err != nil {
			return err
		}
		if err := requireMember(tx, targetID, req.CategoryID); err != nil {
			return err
		}
		gifts := repositories.NewPostgresGiftRepository(tx)
		return gifts.Edit(giftID, req)
	})
}

// ReorderGifts reassigns a contiguous rank block to the listed gifts of
// one category. The secret and non-secret partitions reorder
// independently because a caller can only ever list gifts of one kind.
func (s *WishlistService) ReorderGifts(callerID, categoryID uint, req models.ReorderGiftsRequest) error {
	return s.inTx("reorder gifts", func(tx *gorm.DB) error {
		if err := requireMember(tx, callerID, categoryID); err != nil {
			return err
		}
		for _, giftID := range req.Gifts {
			if err := requireOwnGift(tx, callerID, categoryID, giftID); err != nil {
				return err
			}
		}
		gifts := repositories.NewPostgresGiftRepository(tx)
		return gifts.Reorder(req.StartingRank, req.Gifts)
	})
}

// DeleteGift removes a gift from one of the caller's categories
func (s *WishlistService) DeleteGift(callerID, categoryID, giftID uint) error {
	return s.inTx("delete gift", func(tx *gorm.DB) error {
		if err := requireOwnGift(tx, callerID, categoryID, giftID); err != nil {
			return err
		}
		gifts := repositories.NewPostgresGiftRepository(tx)
		return gifts.Delete(giftID)
	})
}

// DeleteSecretGift removes a surprise gift from a friend's category
func (s *WishlistService) DeleteSecretGift(callerID, targetID, categoryID, giftID uint) error {
	return s.inTx("delete secret gift", func(tx *gorm.DB) error {
		if err := requireFriends(tx, callerID, targetID); err != nil {
			return err
		}
		if err := requireOwnGift(tx, targetID, categoryID, giftID); err != nil {
			return err
		}
		gifts := repositories.NewPostgresGiftRepository(tx)
		return gifts.Delete(giftID)
	})
}

// ToggleHeart flips the heart flag on a gift in the caller's category
func (s *WishlistService) ToggleHeart(callerID, categoryID, giftID uint) error {
	return s.inTx("toggle heart", func(tx *gorm.DB) error {
		if err := requireOwnGift(tx, callerID, categoryID, giftID); err != nil {
			return err
		}
		gifts := repositories.NewPostgresGiftRepository(tx)
		return gifts.ToggleHeart(giftID)
	})
}

// Reserve claims a gift on a friend's wishlist. The ledger itself
// rejects reservation by any member of the gift's category, so a caller
// can never claim a gift on their own list even through a buggy route.
func (s *WishlistService) Reserve(callerID, targetID, giftID uint) error {
	return s.inTx("reserve", func(tx *gorm.DB) error {
		if err := requireFriends(tx, callerID, targetID); err != nil {
			return err
		}
		gifts := repositories.NewPostgresGiftRepository(tx)
		categoryID, err := gifts.CategoryOf(giftID)
		if err != nil {
			return err
		}
		if err := requireMember(tx, targetID, categoryID); err != nil {
			return err
		}
		categories := repositories.NewPostgresCategoryRepository(tx)
		member, err := categories.IsMember(callerID, categoryID)
		if err != nil {
			return err
		}
		if member {
			return apperrors.Unauthorizedf("user %d cannot reserve in category %d they belong to", callerID, categoryID)
		}
		return gifts.Reserve(giftID, callerID)
	})
}

// Unreserve releases the caller's claim on a gift
func (s *WishlistService) Unreserve(callerID, targetID, giftID uint) error {
	return s.inTx("unreserve", func(tx *gorm.DB) error {
		if err := requireFriends(tx, callerID, targetID); err != nil {
			return err
		}
		gifts := repositories.NewPostgresGiftRepository(tx)
		return gifts.Unreserve(giftID, callerID)
	})
}

// GetOwnWishlist returns the caller's own view
func (s *WishlistService) GetOwnWishlist(userID uint) (*models.Wishlist, error) {
	var wishlist *models.Wishlist
	err := s.inTx("own wishlist", func(tx *gorm.DB) error {
		var err error
		wishlist, err = repositories.NewPostgresWishlistRepository(tx).GetOwnWishlist(userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return wishlist, nil
}

// GetFriendWishlist returns the friend view of target for the caller
func (s *WishlistService) GetFriendWishlist(viewerID, targetID uint) (*models.FriendWishlist, error) {
	var wishlist *models.FriendWishlist
	err := s.inTx("friend wishlist", func(tx *gorm.DB) error {
		if err := requireFriends(tx, viewerID, targetID); err != nil {
			return err
		}
		var err error
		wishlist, err = repositories.NewPostgresWishlistRepository(tx).GetFriendWishlist(viewerID, targetID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return wishlist, nil
}

// ExportOwnWishlist returns the caller's shopping-export shape. The own
// view already excludes secret gifts and reservation state, so it is
// reused unchanged.
func (s *WishlistService) ExportOwnWishlist(userID uint) (*models.Wishlist, error) {
	return s.GetOwnWishlist(userID)
}

// ExportFriendWishlist returns the friend view projected for printing:
// gifts already claimed by someone are dropped, and the secret and
// reservation fields do not appear.
func (s *WishlistService) ExportFriendWishlist(viewerID, targetID uint) (*models.Wishlist, error) {
	friendWishlist, err := s.GetFriendWishlist(viewerID, targetID)
	if err != nil {
		return nil, err
	}
	wishlist := friendWishlist.Export()
	return &wishlist, nil
}
