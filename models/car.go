package models

import "time"

const (
	CarTypeRegular = "regular"
	CarTypeLuxury  = "luxury"
)

// Car can be rentable, sellable, both, or neither. Price fields are
// nullable; when the matching flag is off they carry no meaning.
type Car struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	CarType     string `gorm:"default:regular" json:"car_type"`

	BrandID    uint  `json:"brand_id"`
	ColorID    uint  `json:"color_id"`
	OwnerID    uint  `json:"owner_id"`
	LocationID *uint `json:"location_id"`

	SeatingCapacity *int `json:"seating_capacity"`
	AverageRate     int  `json:"average_rate" validate:"omitempty,min=1,max=5"`

	IsForRent   bool     `json:"is_for_rent"`
	DailyRent   *float64 `json:"daily_rent"`
	WeeklyRent  *float64 `json:"weekly_rent"`
	MonthlyRent *float64 `json:"monthly_rent"`
	YearlyRent  *float64 `json:"yearly_rent"`

	IsForPay bool     `json:"is_for_pay"`
	Price    *float64 `json:"price"`

	AvailableToBook bool `json:"available_to_book"`

	SubscriptionStart *time.Time `json:"subscription_start"`
	SubscriptionEnd   *time.Time `json:"subscription_end"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Brand       Brand        `gorm:"foreignKey:BrandID" json:"brand"`
	Color       Color        `gorm:"foreignKey:ColorID" json:"color"`
	Location    *Location    `gorm:"foreignKey:LocationID;constraint:OnDelete:RESTRICT" json:"location"`
	CarFeatures []CarFeature `gorm:"many2many:car_car_features" json:"car_features"`
	Images      []CarImage   `gorm:"foreignKey:CarID" json:"images"`
	Reviews     []Review     `gorm:"foreignKey:CarID" json:"reviews,omitempty"`
}

// FuelTypes collects the values of the car's "Fuel Type" features.
func (c *Car) FuelTypes() []string {
	var fuels []string
	for _, f := range c.CarFeatures {
		if f.Name == FuelTypeFeature {
			fuels = append(fuels, f.Value)
		}
	}
	return fuels
}

type CarImage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	CarID    uint   `json:"car_id"`
	Image    string `json:"image" validate:"required"`
	Position int    `json:"position"`
}
