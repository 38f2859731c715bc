package models

// Location is shared by user profiles and cars. Rows stay around for as
// long as anything references them (RESTRICT on the referencing side).
type Location struct {
	ID   uint    `gorm:"primaryKey" json:"id"`
	Name string  `json:"name" validate:"required"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}
