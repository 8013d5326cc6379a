package models

import "time"

// Friend request statuses. A request leaves "pending" exactly once:
// accepted or declined by the receiver, or deleted by the sender.
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusDeclined = "declined"
)

// FriendRequest represents a friend request between two users.
// UserOne is the sender, UserTwo the receiver. Two users are friends
// iff an accepted request exists between them in either direction.
type FriendRequest struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserOne   uint      `json:"user_one" gorm:"index;not null"`
	UserTwo   uint      `json:"user_two" gorm:"index;not null"`
	Status    string    `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateFriendRequest defines the request body for sending a friend request.
// The receiver is addressed by name; resolution happens in the directory.
type CreateFriendRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

// RespondFriendRequest defines the request body for accepting/declining
type RespondFriendRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}

// PendingRequest is one entry of a request listing, carrying the
// counterpart's public profile instead of raw user ids.
type PendingRequest struct {
	ID        uint        `json:"id"`
	OtherUser UserSummary `json:"other_user"`
}

// PendingRequests groups the pending requests of a user by direction
type PendingRequests struct {
	Sent     []PendingRequest `json:"sent"`
	Received []PendingRequest `json:"received"`
}
