package catalog

import (
	"sort"

	"qent/geo"
	"qent/models"
)

const (
	nearestLimit = 10
	bestLimit    = 6
)

// NearestCars ranks cars by great-circle distance from the user's
// location and returns the closest ten. A user without a location gets
// an empty list; cars without a location are left out. Equal distances
// keep the input order.
func NearestCars(user *models.User, cars []models.Car) []models.Car {
	if user == nil || user.Location == nil {
		return []models.Car{}
	}

	type carDistance struct {
		car  models.Car
		dist float64
	}

	ranked := make([]carDistance, 0, len(cars))
	for i := range cars {
		if cars[i].Location == nil {
			continue
		}
		d := geo.Distance(user.Location.Lat, user.Location.Lng,
			cars[i].Location.Lat, cars[i].Location.Lng)
		ranked = append(ranked, carDistance{car: cars[i], dist: d})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].dist < ranked[j].dist
	})

	if len(ranked) > nearestLimit {
		ranked = ranked[:nearestLimit]
	}

	nearest := make([]models.Car, len(ranked))
	for i, r := range ranked {
		nearest[i] = r.car
	}
	return nearest
}

// BestCars returns the top six cars by average rating, highest first.
// Ties keep the input order.
func BestCars(cars []models.Car) []models.Car {
	best := make([]models.Car, len(cars))
	copy(best, cars)

	sort.SliceStable(best, func(i, j int) bool {
		return best[i].AverageRate > best[j].AverageRate
	})

	if len(best) > bestLimit {
		best = best[:bestLimit]
	}
	return best
}
