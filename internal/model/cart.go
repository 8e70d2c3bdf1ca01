package model

import "time"

// CartItem is a row of cart_items. The seeder never writes it; it only
// clears and migrates the table.
type CartItem struct {
	ID               uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID           uint      `json:"user_id" gorm:"not null;index"`
	ProductVariantID uint      `json:"product_variant_id" gorm:"not null"`
	Quantity         int       `json:"quantity" gorm:"not null"`
	AddedAt          time.Time `json:"added_at" gorm:"autoCreateTime"`
}

func (CartItem) TableName() string { return "cart_items" }

// WishlistItem is a row of wishlist_items, cleared and migrated like CartItem
type WishlistItem struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	ProductID uint      `json:"product_id" gorm:"not null"`
	AddedAt   time.Time `json:"added_at" gorm:"autoCreateTime"`
}

func (WishlistItem) TableName() string { return "wishlist_items" }
