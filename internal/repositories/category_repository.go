package repositories

import (
	"database/sql"
	"errors"

	"github.com/avelines/giftwell/backend/internal/apperrors"
	"github.com/avelines/giftwell/backend/internal/models"
	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category and membership
// data operations. Multi-row operations (create with members, cascade
// delete) expect to run on a transaction-scoped handle.
type CategoryRepository interface {
	Create(name string, memberIDs []uint) (*models.Category, error)
	GetByID(categoryID uint) (*models.Category, error)
	Rename(categoryID uint, name string) error
	AddMembers(categoryID uint, userIDs []uint) error
	RemoveMember(categoryID, userID uint) error
	MembersOf(categoryID uint) ([]uint, error)
	IsMember(userID, categoryID uint) (bool, error)
	ReorderForUser(userID uint, startingRank int64, categoryIDs []uint) error
	MemberCount(categoryID uint) (int64, error)
	DeleteCascade(categoryID uint) error
}

// PostgresCategoryRepository implements CategoryRepository for PostgreSQL
type PostgresCategoryRepository struct {
	db *gorm.DB
}

// NewPostgresCategoryRepository creates a new PostgresCategoryRepository
func NewPostgresCategoryRepository(db *gorm.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

// Create inserts a category and its initial membership rows. Each member
// gets the category appended at their personal next rank.
func (r *PostgresCategoryRepository) Create(name string, memberIDs []uint) (*models.Category, error) {
	category := &models.Category{Name: name}
	if err := r.db.Create(category).Error; err != nil {
		return nil, err
	}
	if err := r.AddMembers(category.ID, memberIDs); err != nil {
		return nil, err
	}
	return category, nil
}

// GetByID retrieves a category by ID
func (r *PostgresCategoryRepository) GetByID(categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("category %d", categoryID)
		}
		return nil, err
	}
	return &category, nil
}

// Rename updates the category name
func (r *PostgresCategoryRepository) Rename(categoryID uint, name string) error {
	return r.db.Model(&models.Category{}).Where("id = ?", categoryID).Update("name", name).Error
}

// AddMembers inserts membership rows, each at the member's personal next
// rank: max over that user's existing rows plus one, starting at zero.
func (r *PostgresCategoryRepository) AddMembers(categoryID uint, userIDs []uint) error {
	for _, userID := range userIDs {
		var maxRank sql.NullInt64
		err := r.db.Model(&models.CategoryMember{}).
			Where("user_id = ?", userID).
			Select("MAX(rank)").
			Scan(&maxRank).Error
		if err != nil {
			return err
		}
		rank := int64(0)
		if maxRank.Valid {
			rank = maxRank.Int64 + 1
		}
		member := models.CategoryMember{UserID: userID, CategoryID: categoryID, Rank: rank}
		if err := r.db.Create(&member).Error; err != nil {
			return err
		}
	}
	return nil
}

// RemoveMember drops one user's membership row. Other members' ranks for
// the category are untouched.
func (r *PostgresCategoryRepository) RemoveMember(categoryID, userID uint) error {
	return r.db.Where("user_id = ? AND category_id = ?", userID, categoryID).
		Delete(&models.CategoryMember{}).Error
}

// MembersOf lists the user ids of a category's members
func (r *PostgresCategoryRepository) MembersOf(categoryID uint) ([]uint, error) {
	var userIDs []uint
	err := r.db.Model(&models.CategoryMember{}).
		Where("category_id = ?", categoryID).
		Order("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}

// IsMember reports whether the user belongs to the category
func (r *PostgresCategoryRepository) IsMember(userID, categoryID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CategoryMember{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReorderForUser assigns startingRank+index to each listed category,
// scoped to the given user's membership rows only
func (r *PostgresCategoryRepository) ReorderForUser(userID uint, startingRank int64, categoryIDs []uint) error {
	for index, categoryID := range categoryIDs {
		err := r.db.Model(&models.CategoryMember{}).
			Where("user_id = ? AND category_id = ?", userID, categoryID).
			Update("rank", startingRank+int64(index)).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// MemberCount returns the number of remaining members of a category
func (r *PostgresCategoryRepository) MemberCount(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CategoryMember{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// DeleteCascade removes the category together with all its gifts. Called
// once the membership set is empty.
func (r *PostgresCategoryRepository) DeleteCascade(categoryID uint) error {
	if err := r.db.Where("category_id = ?", categoryID).Delete(&models.Gift{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Category{}, categoryID).Error
}
