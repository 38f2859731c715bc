package models

import "time"

// Review is unique per (user, car). The composite unique index is the
// authoritative guard; the service does a friendlier pre-check first.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_reviews_user_car" json:"user_id"`
	CarID     uint      `gorm:"uniqueIndex:idx_reviews_user_car" json:"car_id"`
	Review    string    `json:"review" validate:"required"`
	Rate      int       `json:"rate" validate:"required,min=1,max=5"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
