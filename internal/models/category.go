package models

import "time"

// Category is a named, shareable collection of gifts. It has no owner
// column: ownership is the membership relation below, so "my categories"
// and "categories shared with me" are the same shape.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryMember links a user to a category with that user's private
// display rank. Reordering one member's list never touches the rows of
// the other members.
type CategoryMember struct {
	UserID     uint  `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	CategoryID uint  `json:"category_id" gorm:"primaryKey;autoIncrement:false"`
	Rank       int64 `json:"rank" gorm:"not null"`
}

// CreateCategoryRequest defines the body for creating or editing a category.
// ShareWith lists the other members; the caller is always included.
type CreateCategoryRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	ShareWith []uint `json:"share_with"`
}

// ReorderCategoriesRequest assigns StartingRank+index to each listed
// category, scoped to the caller's own membership rows.
type ReorderCategoriesRequest struct {
	StartingRank int64  `json:"starting_rank" validate:"min=0"`
	Categories   []uint `json:"categories" validate:"required,min=1"`
}
