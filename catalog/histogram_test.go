package catalog

import (
	"testing"

	"qent/models"
)

func pricedCars(prices ...float64) []models.Car {
	cars := make([]models.Car, len(prices))
	for i := range prices {
		p := prices[i]
		cars[i] = models.Car{Price: &p, IsForPay: true}
	}
	return cars
}

func bucketSum(h PriceHistogram) int {
	sum := 0
	for _, b := range h.Buckets {
		sum += b.Count
	}
	return sum
}

func TestHistogramEmptyCollection(t *testing.T) {
	h := BuildPriceHistogram(nil)
	if len(h.Buckets) != 0 {
		t.Errorf("expected no buckets, got %d", len(h.Buckets))
	}
	if h.MinPrice != 0 || h.MaxPrice != 0 {
		t.Errorf("expected min=max=0, got %f/%f", h.MinPrice, h.MaxPrice)
	}
}

func TestHistogramIgnoresUnpricedCars(t *testing.T) {
	cars := pricedCars(100, 200)
	cars = append(cars, models.Car{IsForRent: true}) // no sale price
	h := BuildPriceHistogram(cars)
	if got := bucketSum(h); got != 2 {
		t.Errorf("expected 2 counted cars, got %d", got)
	}
}

func TestHistogramThreeCarFixture(t *testing.T) {
	h := BuildPriceHistogram(pricedCars(100, 500, 1000))

	if len(h.Buckets) != 20 {
		t.Fatalf("expected 20 buckets, got %d", len(h.Buckets))
	}
	if h.MinPrice != 100 || h.MaxPrice != 1000 {
		t.Errorf("expected range [100,1000], got [%f,%f]", h.MinPrice, h.MaxPrice)
	}
	if got := bucketSum(h); got != 3 {
		t.Errorf("bucket counts should sum to 3, got %d", got)
	}
	if h.Buckets[0].Count != 1 {
		t.Errorf("price 100 should land in the first bucket, got %d", h.Buckets[0].Count)
	}
	// 1000 overflows the linear index and must clamp into the last bucket
	if h.Buckets[19].Count != 1 {
		t.Errorf("max price should land in the last bucket, got %d", h.Buckets[19].Count)
	}
	if h.Buckets[19].Max != 1000 {
		t.Errorf("last bucket should close at the max price, got %f", h.Buckets[19].Max)
	}
	if h.Buckets[0].Min != 100 {
		t.Errorf("first bucket should open at the min price, got %f", h.Buckets[0].Min)
	}
}

func TestHistogramSinglePrice(t *testing.T) {
	h := BuildPriceHistogram(pricedCars(250, 250, 250))
	if len(h.Buckets) != 20 {
		t.Fatalf("expected 20 buckets, got %d", len(h.Buckets))
	}
	if got := bucketSum(h); got != 3 {
		t.Errorf("zero-width range should still count every car, got %d", got)
	}
	if h.MinPrice != 250 || h.MaxPrice != 250 {
		t.Errorf("expected min=max=250, got %f/%f", h.MinPrice, h.MaxPrice)
	}
}

func TestHistogramCountInvariant(t *testing.T) {
	sets := [][]float64{
		{1},
		{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		{5, 5, 5, 1000000},
		{0.5, 0.75, 19.99},
	}
	for _, prices := range sets {
		h := BuildPriceHistogram(pricedCars(prices...))
		if got := bucketSum(h); got != len(prices) {
			t.Errorf("prices %v: expected sum %d, got %d", prices, len(prices), got)
		}
	}
}
