package models

type Color struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `json:"name" validate:"required"`
	HexValue string `json:"hex_value" validate:"required"`
}
