package models

import "time"

// User carries its profile fields directly; there is no separate profile
// entity, so every user has the same shape whether or not the optional
// fields are filled in. Verification state lives on the record itself.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `json:"name" gorm:"default:null"`
	Phone         string    `gorm:"unique" json:"phone"`
	Email         string    `gorm:"unique" json:"email"`
	Password      string    `json:"-"`
	Image         string    `json:"image"`
	Balance       float64   `json:"balance" gorm:"default:0"`
	PhoneVerified bool      `json:"phone_verified" gorm:"default:false"`
	EmailVerified bool      `json:"email_verified" gorm:"default:false"`
	ResetCode     string    `json:"-" gorm:"default:null"`
	APIToken      string    `gorm:"column:api_token;index" json:"-"`
	LocationID    *uint     `json:"location_id"`
	Location      *Location `gorm:"foreignKey:LocationID;constraint:OnDelete:RESTRICT" json:"location"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Reviews       []Review  `gorm:"foreignKey:UserID" json:"reviews,omitempty"`
}
