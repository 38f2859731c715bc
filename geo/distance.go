package geo

import "math"

const earthRadiusKm = 6371

func degToRad(d float64) float64 {
	return d * (math.Pi / 180)
}

// Distance returns the great-circle distance in kilometers between two
// coordinates, using the haversine formula. Coordinates are not
// validated; out-of-range input yields a meaningless but finite result.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degToRad(lat2 - lat1)
	dLng := degToRad(lng2 - lng1)

	lat1Rad := degToRad(lat1)
	lat2Rad := degToRad(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
