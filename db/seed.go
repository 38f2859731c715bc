package db

import (
	"log"
	"qent/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func uintPtr(v uint) *uint        { return &v }

// Seed fills an empty database with lookup data and a small car catalog.
// It is a no-op when cars already exist, so it is safe to run on boot.
func Seed() {
	var count int64
	DB.Model(&models.Car{}).Count(&count)
	if count > 0 {
		log.Println("Database already seeded, skipping")
		return
	}
	log.Println("Seeding database...")

	colors := []models.Color{
		{Name: "Red", HexValue: "#FF0000"},
		{Name: "Blue", HexValue: "#0000FF"},
		{Name: "Black", HexValue: "#000000"},
		{Name: "White", HexValue: "#FFFFFF"},
		{Name: "Silver", HexValue: "#C0C0C0"},
	}
	DB.Create(&colors)

	features := []models.CarFeature{
		{Name: "Transmission", Value: "Automatic", Image: "icons/gear.png"},
		{Name: "Air Conditioning", Value: "Available", Image: "icons/ac.png"},
		{Name: "GPS", Value: "Available", Image: "icons/gps.png"},
		{Name: "Bluetooth", Value: "Available", Image: "icons/bluetooth.png"},
	}
	DB.Create(&features)

	fuels := []models.CarFeature{
		{Name: models.FuelTypeFeature, Value: "Petrol", Image: "icons/fuel.png"},
		{Name: models.FuelTypeFeature, Value: "Diesel", Image: "icons/fuel.png"},
		{Name: models.FuelTypeFeature, Value: "Electric", Image: "icons/fuel.png"},
		{Name: models.FuelTypeFeature, Value: "Hybrid", Image: "icons/fuel.png"},
	}
	DB.Create(&fuels)

	locations := []models.Location{
		{Name: "Nasr City, Cairo", Lat: 30.0626, Lng: 31.2808},
		{Name: "Maadi, Cairo", Lat: 29.9714, Lng: 31.2764},
		{Name: "Heliopolis, Cairo", Lat: 30.0820, Lng: 31.3122},
		{Name: "Dokki, Giza", Lat: 30.0241, Lng: 31.2103},
		{Name: "Mohandessin, Giza", Lat: 30.0617, Lng: 31.2161},
		{Name: "Stanley, Alexandria", Lat: 31.2211, Lng: 29.9150},
		{Name: "East Bank, Luxor", Lat: 25.6980, Lng: 32.6413},
		{Name: "City Center, Aswan", Lat: 24.0890, Lng: 32.8998},
	}
	DB.Create(&locations)

	brands := []models.Brand{
		{Name: "BMW", Image: "brands/bmw.png"},
		{Name: "Ferrari", Image: "brands/ferrari.png"},
		{Name: "Toyota", Image: "brands/toyota.png"},
		{Name: "Hyundai", Image: "brands/hyundai.png"},
	}
	DB.Create(&brands)

	cars := []models.Car{
		{
			Name: "X5", Description: "Spacious luxury SUV", CarType: models.CarTypeLuxury,
			BrandID: brands[0].ID, ColorID: colors[2].ID, LocationID: uintPtr(locations[0].ID),
			SeatingCapacity: intPtr(5), AverageRate: 5,
			IsForRent: true, DailyRent: floatPtr(120), WeeklyRent: floatPtr(700), MonthlyRent: floatPtr(2500),
			IsForPay: true, Price: floatPtr(65000), AvailableToBook: true,
			CarFeatures: []models.CarFeature{features[0], features[1], fuels[0]},
			Images:      []models.CarImage{{Image: "cars/bmw/x5/front.jpg", Position: 0}},
		},
		{
			Name: "488 GTB", Description: "Mid-engine sports car", CarType: models.CarTypeLuxury,
			BrandID: brands[1].ID, ColorID: colors[0].ID, LocationID: uintPtr(locations[2].ID),
			SeatingCapacity: intPtr(2), AverageRate: 5,
			IsForRent: true, DailyRent: floatPtr(450),
			IsForPay: true, Price: floatPtr(280000),
			CarFeatures: []models.CarFeature{features[0], fuels[0]},
			Images:      []models.CarImage{{Image: "cars/ferrari/488-gtb/front.jpg", Position: 0}},
		},
		{
			Name: "Corolla", Description: "Reliable daily driver", CarType: models.CarTypeRegular,
			BrandID: brands[2].ID, ColorID: colors[3].ID, LocationID: uintPtr(locations[1].ID),
			SeatingCapacity: intPtr(5), AverageRate: 4,
			IsForRent: true, DailyRent: floatPtr(35), WeeklyRent: floatPtr(200), MonthlyRent: floatPtr(700), YearlyRent: floatPtr(7000),
			IsForPay: true, Price: floatPtr(21000), AvailableToBook: true,
			CarFeatures: []models.CarFeature{features[0], features[1], features[3], fuels[3]},
			Images:      []models.CarImage{{Image: "cars/toyota/corolla/front.jpg", Position: 0}},
		},
		{
			Name: "Elantra", Description: "Compact sedan", CarType: models.CarTypeRegular,
			BrandID: brands[3].ID, ColorID: colors[4].ID, LocationID: uintPtr(locations[4].ID),
			SeatingCapacity: intPtr(5), AverageRate: 3,
			IsForRent: true, DailyRent: floatPtr(30), MonthlyRent: floatPtr(600),
			AvailableToBook: true,
			CarFeatures:     []models.CarFeature{features[0], features[2], fuels[0]},
			Images:          []models.CarImage{{Image: "cars/hyundai/elantra/front.jpg", Position: 0}},
		},
		{
			Name: "Land Cruiser", Description: "Full-size off-roader", CarType: models.CarTypeRegular,
			BrandID: brands[2].ID, ColorID: colors[3].ID, LocationID: uintPtr(locations[5].ID),
			SeatingCapacity: intPtr(7), AverageRate: 4,
			IsForPay: true, Price: floatPtr(85000),
			CarFeatures: []models.CarFeature{features[0], features[1], fuels[1]},
			Images:      []models.CarImage{{Image: "cars/toyota/land-cruiser/front.jpg", Position: 0}},
		},
	}
	if err := DB.Create(&cars).Error; err != nil {
		log.Println("Failed to seed cars:", err)
		return
	}

	log.Printf("Seeded %d colors, %d features, %d locations, %d brands, %d cars",
		len(colors), len(features)+len(fuels), len(locations), len(brands), len(cars))
}
