package repositories

import (
	"github.com/avelines/giftwell/backend/internal/models"
	"gorm.io/gorm"
)

// WishlistRepository defines the two read shapes of the visibility
// policy. Which categories and which gift fields come back is decided
// entirely by these queries; there is no access-control object.
type WishlistRepository interface {
	GetOwnWishlist(userID uint) (*models.Wishlist, error)
	GetFriendWishlist(viewerID, targetID uint) (*models.FriendWishlist, error)
}

// PostgresWishlistRepository implements WishlistRepository for PostgreSQL
type PostgresWishlistRepository struct {
	db *gorm.DB
}

// NewPostgresWishlistRepository creates a new PostgresWishlistRepository
func NewPostgresWishlistRepository(db *gorm.DB) *PostgresWishlistRepository {
	return &PostgresWishlistRepository{db: db}
}

type wishlistCategoryRow struct {
	ID   uint
	Name string
}

func (r *PostgresWishlistRepository) memberCategories(userID uint) *gorm.DB {
	return r.db.Table("category_members").
		Select("categories.id AS id, categories.name AS name").
		Joins("JOIN categories ON categories.id = category_members.category_id").
		Where("category_members.user_id = ?", userID).
		Order("category_members.rank")
}

// GetOwnWishlist returns the caller's categories in their personal
// order. Secret gifts and reservation state never cross this boundary:
// the owner must not learn about surprises or who claimed them.
func (r *PostgresWishlistRepository) GetOwnWishlist(userID uint) (*models.Wishlist, error) {
	var rows []wishlistCategoryRow
	if err := r.memberCategories(userID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	categories := make([]models.WishlistCategory, 0, len(rows))
	for _, row := range rows {
		var shareWith []uint
		err := r.db.Model(&models.CategoryMember{}).
			Where("category_id = ? AND user_id != ?", row.ID, userID).
			Order("user_id").
			Pluck("user_id", &shareWith).Error
		if err != nil {
			return nil, err
		}
		if shareWith == nil {
			shareWith = []uint{}
		}

		var gifts []models.Gift
		err = r.db.Where("category_id = ? AND secret = ?", row.ID, false).
			Order("rank").
			Find(&gifts).Error
		if err != nil {
			return nil, err
		}

		category := models.WishlistCategory{
			ID:        row.ID,
			Name:      row.Name,
			ShareWith: shareWith,
			Gifts:     make([]models.WishlistGift, 0, len(gifts)),
		}
		for _, g := range gifts {
			category.Gifts = append(category.Gifts, models.WishlistGift{
				ID:          g.ID,
				Name:        g.Name,
				Description: g.Description,
				Price:       g.Price,
				WhereToBuy:  g.WhereToBuy,
				Picture:     g.Picture,
				Heart:       g.Heart,
			})
		}
		categories = append(categories, category)
	}

	return &models.Wishlist{Categories: categories}, nil
}

// GetFriendWishlist returns the target's categories the viewer is not a
// member of, in the target's personal order. Categories shared with the
// viewer are excluded here because they already appear in the viewer's
// own view. All gifts come back, secret ones and reservation state
// included; this is the only read path that exposes either.
func (r *PostgresWishlistRepository) GetFriendWishlist(viewerID, targetID uint) (*models.FriendWishlist, error) {
	viewerCategories := r.db.Table("category_members").
		Select("category_id").
		Where("user_id = ?", viewerID)

	var rows []wishlistCategoryRow
	err := r.memberCategories(targetID).
		Where("category_members.category_id NOT IN (?)", viewerCategories).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	categories := make([]models.FriendCategory, 0, len(rows))
	for _, row := range rows {
		var gifts []models.Gift
		err := r.db.Where("category_id = ?", row.ID).
			Order("rank").
			Find(&gifts).Error
		if err != nil {
			return nil, err
		}

		category := models.FriendCategory{
			ID:    row.ID,
			Name:  row.Name,
			Gifts: make([]models.FriendGift, 0, len(gifts)),
		}
		for _, g := range gifts {
			category.Gifts = append(category.Gifts, models.FriendGift{
				ID:          g.ID,
				Name:        g.Name,
				Description: g.Description,
				Price:       g.Price,
				WhereToBuy:  g.WhereToBuy,
				Picture:     g.Picture,
				Heart:       g.Heart,
				Secret:      g.Secret,
				ReservedBy:  g.ReservedBy,
			})
		}
		categories = append(categories, category)
	}

	return &models.FriendWishlist{Categories: categories}, nil
}
