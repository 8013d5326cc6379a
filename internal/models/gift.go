package models

import "time"

// SecretRankBase splits a category's rank space in two: non-secret gifts
// rank in [0, SecretRankBase), secret gifts in [SecretRankBase, inf).
// Each half reorders independently, so surprise gifts never perturb the
// order the wishlist owner sees.
const SecretRankBase int64 = 100000

// Gift is one wishlist entry. Secret gifts are added by friends through
// the friend path and never reach the owner's own view. ReservedBy is a
// friend's claim and is likewise never surfaced to the owner.
type Gift struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description *string   `json:"description,omitempty"`
	Price       *string   `json:"price,omitempty"`
	WhereToBuy  *string   `json:"where_to_buy,omitempty"`
	Picture     *string   `json:"picture,omitempty"`
	Secret      bool      `json:"secret" gorm:"not null;default:false"`
	Heart       bool      `json:"heart" gorm:"not null;default:false"`
	Rank        int64     `json:"rank" gorm:"not null"`
	ReservedBy  *uint     `json:"reserved_by,omitempty"`
	CategoryID  uint      `json:"category_id" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AddGiftRequest defines the body for adding a gift. The secret flag is
// fixed by the route (own path vs friend path), never by the payload.
type AddGiftRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	WhereToBuy  *string `json:"where_to_buy,omitempty"`
	Picture     *string `json:"picture,omitempty"`
}

// EditGiftRequest defines the body for editing a gift. CategoryID allows
// re-filing the gift into another category of the same caller.
type EditGiftRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	WhereToBuy  *string `json:"where_to_buy,omitempty"`
	Picture     *string `json:"picture,omitempty"`
	CategoryID  uint    `json:"category_id" validate:"required"`
}

// ReorderGiftsRequest assigns StartingRank+index to each listed gift
// within one category.
type ReorderGiftsRequest struct {
	StartingRank int64  `json:"starting_rank" validate:"min=0"`
	Gifts        []uint `json:"gifts" validate:"required,min=1"`
}

// WishlistGift is the gift shape of the own view and of exports: no
// secret flag, no reservation state.
type WishlistGift struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	WhereToBuy  *string `json:"where_to_buy,omitempty"`
	Picture     *string `json:"picture,omitempty"`
	Heart       bool    `json:"heart"`
}

// WishlistCategory is one category of the own view, with the other
// members listed as ShareWith.
type WishlistCategory struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	ShareWith []uint         `json:"share_with"`
	Gifts     []WishlistGift `json:"gifts"`
}

// Wishlist is the own view: member categories in the caller's personal
// order, non-secret gifts only.
type Wishlist struct {
	Categories []WishlistCategory `json:"categories"`
}

// FriendGift is the gift shape of the friend view. This is the only
// place secret gifts and reservation state are exposed.
type FriendGift struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	WhereToBuy  *string `json:"where_to_buy,omitempty"`
	Picture     *string `json:"picture,omitempty"`
	Heart       bool    `json:"heart"`
	Secret      bool    `json:"secret"`
	ReservedBy  *uint   `json:"reserved_by,omitempty"`
}

// FriendCategory is one category of the friend view
type FriendCategory struct {
	ID    uint         `json:"id"`
	Name  string       `json:"name"`
	Gifts []FriendGift `json:"gifts"`
}

// FriendWishlist is the friend view: the target's categories the viewer
// is not a member of, in the target's personal order, all gifts included.
type FriendWishlist struct {
	Categories []FriendCategory `json:"categories"`
}

// Export projects a friend wishlist into the shopping-list shape:
// gifts already claimed by someone are dropped, and the secret and
// reservation fields do not survive the projection.
func (w FriendWishlist) Export() Wishlist {
	categories := make([]WishlistCategory, 0, len(w.Categories))
	for _, c := range w.Categories {
		gifts := make([]WishlistGift, 0, len(c.Gifts))
		for _, g := range c.Gifts {
			if g.ReservedBy != nil {
				continue
			}
			gifts = append(gifts, WishlistGift{
				ID:          g.ID,
				Name:        g.Name,
				Description: g.Description,
				Price:       g.Price,
				WhereToBuy:  g.WhereToBuy,
				Picture:     g.Picture,
				Heart:       g.Heart,
			})
		}
		categories = append(categories, WishlistCategory{
			ID:        c.ID,
			Name:      c.Name,
			ShareWith: []uint{},
			Gifts:     gifts,
		})
	}
	return Wishlist{Categories: categories}
}
