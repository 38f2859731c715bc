package models

// FuelTypeFeature is the reserved feature name used for fuel filtering.
// A car's fuel type is whatever value its "Fuel Type" feature carries.
const FuelTypeFeature = "Fuel Type"

type CarFeature struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
	Image string `json:"image"`
}
