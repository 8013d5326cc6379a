// Package services holds the business layer between the HTTP handlers
// and the repositories. Every public operation runs as one database
// transaction and evaluates its authorization predicates inside that
// transaction, so a concurrent caller can never observe or exploit a
// half-applied operation.
package services

import (
	"github.com/avelines/giftwell/backend/internal/apperrors"
	"github.com/avelines/giftwell/backend/internal/models"
	"github.com/avelines/giftwell/backend/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FriendsService owns the friend-request state machine:
// pending -> accepted | declined (terminal), pending -> deleted (cancel).
type FriendsService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewFriendsService creates a new FriendsService
func NewFriendsService(db *gorm.DB, logger *zap.Logger) *FriendsService {
	return &FriendsService{db: db, logger: logger}
}

func (s *FriendsService) inTx(op string, fn func(tx *gorm.DB) error) error {
	err := s.db.Transaction(fn)
	if err != nil && !apperrors.IsDomain(err) {
		s.logger.Error("friends operation failed", zap.String("op", op), zap.Error(err))
	}
	return err
}

// CreateRequest resolves toName through the directory and inserts a
// pending request. A pending or accepted request between the pair, in
// either direction, blocks the insert; a declined leftover does not and
// is discarded.
func (s *FriendsService) CreateRequest(fromID uint, toName string) error {
	return s.inTx("create request", func(tx *gorm.DB) error {
		users := repositories.NewPostgresUserRepository(tx)
		friendships := repositories.NewPostgresFriendshipRepository(tx)

		to, err := users.GetUserByName(toName)
		if err != nil {
			return err
		}
		if to.ID == fromID {
			return apperrors.ErrSelfRequest
		}

		active, err := friendships.GetActiveBetween(fromID, to.ID)
		if err != nil {
			return err
		}
		if active != nil {
			return apperrors.ErrAlreadyExists
		}
		if err := friendships.DeleteDeclinedBetween(fromID, to.ID); err != nil {
			return err
		}

		return friendships.Create(&models.FriendRequest{
			UserOne: fromID,
			UserTwo: to.ID,
			Status:  models.RequestStatusPending,
		})
	})
}

// Respond accepts or declines a pending request. Only the receiver of a
// still-pending request may respond; anything else is NotFound so a
// probing caller cannot tell a foreign id from a missing one.
func (s *FriendsService) Respond(requestID, receiverID uint, status string) error {
	return s.inTx("respond", func(tx *gorm.DB) error {
		friendships := repositories.NewPostgresFriendshipRepository(tx)

		req, err := friendships.GetPendingForReceiver(requestID, receiverID)
		if err != nil {
			return err
		}
		if req == nil {
			return apperrors.NotFoundf("pending request %d for user %d", requestID, receiverID)
		}
		return friendships.UpdateStatus(requestID, status)
	})
}

// Cancel deletes a pending request. Only the sender may cancel, and only
// while the request is still pending.
func (s *FriendsService) Cancel(requestID, senderID uint) error {
	return s.inTx("cancel", func(tx *gorm.DB) error {
		friendships := repositories.NewPostgresFriendshipRepository(tx)

		req, err := friendships.GetPendingForSender(requestID, senderID)
		if err != nil {
			return err
		}
		if req == nil {
			return apperrors.NotFoundf("pending request %d from user %d", requestID, senderID)
		}
		return friendships.Delete(requestID)
	})
}

// ListRequests returns the caller's pending requests, sent and received,
// each carrying the counterpart's profile summary
func (s *FriendsService) ListRequests(userID uint) (*models.PendingRequests, error) {
	var requests models.PendingRequests
	err := s.inTx("list requests", func(tx *gorm.DB) error {
		friendships := repositories.NewPostgresFriendshipRepository(tx)

		sent, err := friendships.ListPendingSent(userID)
		if err != nil {
			return err
		}
		received, err := friendships.ListPendingReceived(userID)
		if err != nil {
			return err
		}
		requests = models.PendingRequests{Sent: sent, Received: received}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &requests, nil
}

// AreFriends reports whether an accepted request links the pair
func (s *FriendsService) AreFriends(a, b uint) (bool, error) {
	friendships := repositories.NewPostgresFriendshipRepository(s.db)
	return friendships.AreFriends(a, b)
}

// ListFriends returns the profile summaries of all accepted friends
func (s *FriendsService) ListFriends(userID uint) ([]models.UserSummary, error) {
	friendships := repositories.NewPostgresFriendshipRepository(s.db)
	friends, err := friendships.ListFriends(userID)
	if err != nil {
		s.logger.Error("friends operation failed", zap.String("op", "list friends"), zap.Error(err))
		return nil, err
	}
	summaries := make([]models.UserSummary, 0, len(friends))
	for i := range friends {
		summaries = append(summaries, friends[i].Summary())
	}
	return summaries, nil
}

// ResolveFriendID resolves a name to a user id, but only when the
// resolved user is already a friend of the caller; anything else is
// NotFound so the directory cannot be probed through this path.
func (s *FriendsService) ResolveFriendID(userID uint, name string) (uint, error) {
	var friendID uint
	err := s.inTx("resolve friend", func(tx *gorm.DB) error {
		users := repositories.NewPostgresUserRepository(tx)
		friendships := repositories.NewPostgresFriendshipRepository(tx)

		user, err := users.GetUserByName(name)
		if err != nil {
			return err
		}
		friends, err := friendships.AreFriends(userID, user.ID)
		if err != nil {
			return err
		}
		if !friends {
			return apperrors.NotFoundf("user %q", name)
		}
		friendID = user.ID
		return nil
	})
	return friendID, err
}
