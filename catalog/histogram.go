package catalog

import "qent/models"

const histogramBuckets = 20

type PriceBucket struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

type PriceHistogram struct {
	MinPrice float64       `json:"min_price"`
	MaxPrice float64       `json:"max_price"`
	Buckets  []PriceBucket `json:"buckets"`
}

// BuildPriceHistogram partitions the non-null sale prices into twenty
// equal-width buckets over [min, max]. Buckets are half-open on the
// right except the last, which is closed so the maximum price lands in
// it. With no priced cars the bucket list is empty and min=max=0.
func BuildPriceHistogram(cars []models.Car) PriceHistogram {
	var prices []float64
	for i := range cars {
		if cars[i].Price != nil {
			prices = append(prices, *cars[i].Price)
		}
	}

	if len(prices) == 0 {
		return PriceHistogram{Buckets: []PriceBucket{}}
	}

	min, max := prices[0], prices[0]
	for _, p := range prices[1:] {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}

	width := (max - min) / histogramBuckets

	buckets := make([]PriceBucket, histogramBuckets)
	for i := range buckets {
		buckets[i].Min = min + float64(i)*width
		buckets[i].Max = min + float64(i+1)*width
	}
	// Pin the last edge so the closed upper bound is exact.
	buckets[histogramBuckets-1].Max = max

	for _, p := range prices {
		idx := 0
		if width > 0 {
			idx = int((p - min) / width)
		}
		if idx >= histogramBuckets {
			idx = histogramBuckets - 1
		}
		buckets[idx].Count++
	}

	return PriceHistogram{MinPrice: min, MaxPrice: max, Buckets: buckets}
}
