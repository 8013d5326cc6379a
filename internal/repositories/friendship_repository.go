package repositories

import (
	"errors"

	"github.com/avelines/giftwell/backend/internal/models"
	"gorm.io/gorm"
)

// FriendshipRepository defines the interface for friend-request data
// operations. The friendship relation itself is derived: two users are
// friends iff an accepted request links them, in either direction.
type FriendshipRepository interface {
	Create(req *models.FriendRequest) error
	GetActiveBetween(a, b uint) (*models.FriendRequest, error)
	DeleteDeclinedBetween(a, b uint) error
	GetPendingForReceiver(id, receiver uint) (*models.FriendRequest, error)
	GetPendingForSender(id, sender uint) (*models.FriendRequest, error)
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
	ListPendingSent(userID uint) ([]models.PendingRequest, error)
	ListPendingReceived(userID uint) ([]models.PendingRequest, error)
	AreFriends(a, b uint) (bool, error)
	ListFriends(userID uint) ([]models.User, error)
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// Create inserts a new friend request row
func (r *PostgresFriendshipRepository) Create(req *models.FriendRequest) error {
	return r.db.Create(req).Error
}

// GetActiveBetween returns the pending or accepted request linking the
// pair in either direction, or nil when none exists. At most one such
// row may exist at a time.
func (r *PostgresFriendshipRepository) GetActiveBetween(a, b uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.Where("((user_one = ? AND user_two = ?) OR (user_one = ? AND user_two = ?)) AND status IN ?",
		a, b, b, a, []string{models.RequestStatusPending, models.RequestStatusAccepted}).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// DeleteDeclinedBetween removes declined leftovers for the pair so a
// fresh request is not blocked by an old refusal
func (r *PostgresFriendshipRepository) DeleteDeclinedBetween(a, b uint) error {
	return r.db.Where("((user_one = ? AND user_two = ?) OR (user_one = ? AND user_two = ?)) AND status = ?",
		a, b, b, a, models.RequestStatusDeclined).
		Delete(&models.FriendRequest{}).Error
}

// GetPendingForReceiver returns the pending request with the given id
// addressed to receiver, or nil when no such row exists
func (r *PostgresFriendshipRepository) GetPendingForReceiver(id, receiver uint) (*models.FriendRequest, error) {
	return r.getPending("id = ? AND user_two = ? AND status = ?", id, receiver)
}

// GetPendingForSender returns the pending request with the given id sent
// by sender, or nil when no such row exists
func (r *PostgresFriendshipRepository) GetPendingForSender(id, sender uint) (*models.FriendRequest, error) {
	return r.getPending("id = ? AND user_one = ? AND status = ?", id, sender)
}

func (r *PostgresFriendshipRepository) getPending(cond string, id, user uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.Where(cond, id, user, models.RequestStatusPending).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// UpdateStatus updates the status of a friend request
func (r *PostgresFriendshipRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.FriendRequest{}).Where("id = ?", id).Update("status", status).Error
}

// Delete deletes a friend request
func (r *PostgresFriendshipRepository) Delete(id uint) error {
	return r.db.Delete(&models.FriendRequest{}, id).Error
}

type pendingRequestRow struct {
	RequestID   uint
	UserID      uint
	Name        string
	Picture     *string
	DateOfBirth *int64
}

// ListPendingSent lists the caller's pending requests with the
// receiver's profile summary attached
func (r *PostgresFriendshipRepository) ListPendingSent(userID uint) ([]models.PendingRequest, error) {
	return r.listPending("friend_requests.user_two", "friend_requests.user_one = ?", userID)
}

// ListPendingReceived lists pending requests addressed to the caller
// with the sender's profile summary attached
func (r *PostgresFriendshipRepository) ListPendingReceived(userID uint) ([]models.PendingRequest, error) {
	return r.listPending("friend_requests.user_one", "friend_requests.user_two = ?", userID)
}

func (r *PostgresFriendshipRepository) listPending(otherColumn, cond string, userID uint) ([]models.PendingRequest, error) {
	var rows []pendingRequestRow
	err := r.db.Table("friend_requests").
		Select("friend_requests.id AS request_id, users.id AS user_id, users.name AS name, users.picture AS picture, users.date_of_birth AS date_of_birth").
		Joins("JOIN users ON users.id = "+otherColumn).
		Where(cond+" AND friend_requests.status = ?", userID, models.RequestStatusPending).
		Order("friend_requests.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	requests := make([]models.PendingRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, models.PendingRequest{
			ID: row.RequestID,
			OtherUser: models.UserSummary{
				ID:          row.UserID,
				Name:        row.Name,
				Picture:     row.Picture,
				DateOfBirth: row.DateOfBirth,
			},
		})
	}
	return requests, nil
}

// AreFriends reports whether an accepted request links the pair, in
// either direction
func (r *PostgresFriendshipRepository) AreFriends(a, b uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.FriendRequest{}).
		Where("((user_one = ? AND user_two = ?) OR (user_one = ? AND user_two = ?)) AND status = ?",
			a, b, b, a, models.RequestStatusAccepted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFriends retrieves all users with an accepted request with userID
func (r *PostgresFriendshipRepository) ListFriends(userID uint) ([]models.User, error) {
	var friends []models.User
	subQuery1 := r.db.Table("friend_requests").Select("user_two").Where("user_one = ? AND status = ?", userID, models.RequestStatusAccepted)
	subQuery2 := r.db.Table("friend_requests").Select("user_one").Where("user_two = ? AND status = ?", userID, models.RequestStatusAccepted)

	if err := r.db.Where("id IN (?) OR id IN (?)", subQuery1, subQuery2).Order("id").Find(&friends).Error; err != nil {
		return nil, err
	}
	return friends, nil
}
