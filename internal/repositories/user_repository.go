package repositories

import (
	"errors"

	"github.com/avelines/giftwell/backend/internal/apperrors"
	"github.com/avelines/giftwell/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for directory lookups. Name
// resolution backs friend-request creation; everything else is profile
// plumbing for the read shapes.
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByName(name string) (*models.User, error)
	UpdateUser(user *models.User) error
	SearchUsers(query string) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new directory entry
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user %d", id)
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByName resolves a user name to its directory entry
func (r *PostgresUserRepository) GetUserByName(name string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("name = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user %q", name)
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing directory entry
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// SearchUsers searches for users by name (case-insensitive)
func (r *PostgresUserRepository) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
