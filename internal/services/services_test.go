package services

import (
	"testing"

	"github.com/avelines/giftwell/backend/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// The pool is pinned to one connection because every :memory: connection
// is a separate database; this also serializes concurrent transactions.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Category{},
		&models.CategoryMember{},
		&models.Gift{},
	))
	return db
}

func newServices(t *testing.T) (*gorm.DB, *FriendsService, *WishlistService) {
	t.Helper()
	db := setupTestDB(t)
	nop := zap.NewNop()
	return db, NewFriendsService(db, nop), NewWishlistService(db, nop)
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name}
	require.NoError(t, db.Create(user).Error)
	return user
}

// makeFriends links the pair directly through an accepted request row.
func makeFriends(t *testing.T, db *gorm.DB, a, b uint) {
	t.Helper()
	req := &models.FriendRequest{UserOne: a, UserTwo: b, Status: models.RequestStatusAccepted}
	require.NoError(t, db.Create(req).Error)
}
