package repositories

import (
	"database/sql"
	"errors"

	"github.com/avelines/giftwell/backend/internal/apperrors"
	"github.com/avelines/giftwell/backend/internal/models"
	"gorm.io/gorm"
)

// GiftRepository defines the interface for gift data operations,
// including the reservation ledger.
type GiftRepository interface {
	GetByID(giftID uint) (*models.Gift, error)
	Add(gift *models.Gift) error
	Edit(giftID uint, req models.EditGiftRequest) error
	Reorder(startingRank int64, giftIDs []uint) error
	Delete(giftID uint) error
	ToggleHeart(giftID uint) error
	Reserve(giftID, userID uint) error
	Unreserve(giftID, userID uint) error
	InCategory(giftID, categoryID uint) (bool, error)
	CategoryOf(giftID uint) (uint, error)
}

// PostgresGiftRepository implements GiftRepository for PostgreSQL
type PostgresGiftRepository struct {
	db *gorm.DB
}

// NewPostgresGiftRepository creates a new PostgresGiftRepository
func NewPostgresGiftRepository(db *gorm.DB) *PostgresGiftRepository {
	return &PostgresGiftRepository{db: db}
}

// GetByID retrieves a gift by ID
func (r *PostgresGiftRepository) GetByID(giftID uint) (*models.Gift, error) {
	var gift models.Gift
	if err := r.db.First(&gift, giftID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("gift %d", giftID)
		}
		return nil, err
	}
	return &gift, nil
}

// Add inserts a gift at the end of its rank partition. Non-secret gifts
// rank below SecretRankBase; the first secret gift of a category lands
// exactly on SecretRankBase so the two orderings never interleave.
func (r *PostgresGiftRepository) Add(gift *models.Gift) error {
	query := r.db.Model(&models.Gift{}).Where("category_id = ?", gift.CategoryID)
	if !gift.Secret {
		query = query.Where("rank < ?", models.SecretRankBase)
	}

	var maxRank sql.NullInt64
	if err := query.Select("MAX(rank)").Scan(&maxRank).Error; err != nil {
		return err
	}

	switch {
	case gift.Secret && (!maxRank.Valid || maxRank.Int64 < models.SecretRankBase):
		gift.Rank = models.SecretRankBase
	case !maxRank.Valid:
		gift.Rank = 0
	default:
		gift.Rank = maxRank.Int64 + 1
	}

	return r.db.Create(gift).Error
}

// Edit updates the descriptive fields of a gift, possibly re-filing it
// into another category. Rank, secret, heart and reservation state are
// not touched here.
func (r *PostgresGiftRepository) Edit(giftID uint, req models.EditGiftRequest) error {
	return r.db.Model(&models.Gift{}).Where("id = ?", giftID).Updates(map[string]interface{}{
		"name":         req.Name,
		"description":  req.Description,
		"price":        req.Price,
		"where_to_buy": req.WhereToBuy,
		"picture":      req.Picture,
		"category_id":  req.CategoryID,
	}).Error
}

// Reorder assigns startingRank+index to each listed gift
func (r *PostgresGiftRepository) Reorder(startingRank int64, giftIDs []uint) error {
	for index, giftID := range giftIDs {
		err := r.db.Model(&models.Gift{}).
			Where("id = ?", giftID).
			Update("rank", startingRank+int64(index)).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes a gift
func (r *PostgresGiftRepository) Delete(giftID uint) error {
	return r.db.Delete(&models.Gift{}, giftID).Error
}

// ToggleHeart flips the heart flag of a gift
func (r *PostgresGiftRepository) ToggleHeart(giftID uint) error {
	return r.db.Model(&models.Gift{}).
		Where("id = ?", giftID).
		Update("heart", gorm.Expr("NOT heart")).Error
}

// Reserve claims an unreserved gift for userID. The check-and-set is a
// single conditional UPDATE, so two concurrent reservers can never both
// succeed.
func (r *PostgresGiftRepository) Reserve(giftID, userID uint) error {
	res := r.db.Model(&models.Gift{}).
		Where("id = ? AND reserved_by IS NULL", giftID).
		Update("reserved_by", userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(giftID); err != nil {
			return err
		}
		return apperrors.ErrConflict
	}
	return nil
}

// Unreserve releases a gift previously claimed by userID
func (r *PostgresGiftRepository) Unreserve(giftID, userID uint) error {
	res := r.db.Model(&models.Gift{}).
		Where("id = ? AND reserved_by = ?", giftID, userID).
		Update("reserved_by", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(giftID); err != nil {
			return err
		}
		return apperrors.Unauthorizedf("gift %d is not reserved by user %d", giftID, userID)
	}
	return nil
}

// InCategory reports whether the gift currently belongs to the category
func (r *PostgresGiftRepository) InCategory(giftID, categoryID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Gift{}).
		Where("id = ? AND category_id = ?", giftID, categoryID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CategoryOf returns the id of the category the gift currently sits in
func (r *PostgresGiftRepository) CategoryOf(giftID uint) (uint, error) {
	gift, err := r.GetByID(giftID)
	if err != nil {
		return 0, err
	}
	return gift.CategoryID, nil
}
