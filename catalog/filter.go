package catalog

import (
	"strings"

	"qent/models"
)

type SaleType string

const (
	SaleRent    SaleType = "rent"
	SalePay     SaleType = "pay"
	SaleRentPay SaleType = "rent_pay"
)

type RentalTime string

const (
	RentalDaily   RentalTime = "daily"
	RentalWeekly  RentalTime = "weekly"
	RentalMonthly RentalTime = "monthly"
	RentalYearly  RentalTime = "yearly"
)

// rentPriceField maps each rental time to the rent-price field it scopes.
// Field selection goes through this table only; filter keys are never
// assembled from request strings.
var rentPriceField = map[RentalTime]func(*models.Car) *float64{
	RentalDaily:   func(c *models.Car) *float64 { return c.DailyRent },
	RentalWeekly:  func(c *models.Car) *float64 { return c.WeeklyRent },
	RentalMonthly: func(c *models.Car) *float64 { return c.MonthlyRent },
	RentalYearly:  func(c *models.Car) *float64 { return c.YearlyRent },
}

func ValidSaleType(s SaleType) bool {
	return s == SaleRent || s == SalePay || s == SaleRentPay
}

func ValidRentalTime(r RentalTime) bool {
	_, ok := rentPriceField[r]
	return ok
}

// SearchQuery is the typed form of the /cars/search query string.
// Nil/zero fields are no-ops; all stages compose with AND.
type SearchQuery struct {
	Query           string
	BrandID         *uint
	CarType         string
	SaleType        SaleType
	RentalTime      RentalTime
	MinPrice        *float64
	MaxPrice        *float64
	LocationID      *uint
	ColorID         *uint
	SeatingCapacity *int
	FuelTypes       []string
}

type predicate func(*models.Car) bool

// FilterCars returns the subset of cars matching every active stage of
// the query. An empty result is a normal outcome, not an error.
func FilterCars(cars []models.Car, q SearchQuery) []models.Car {
	preds := q.predicates()
	matched := []models.Car{}
	for i := range cars {
		ok := true
		for _, p := range preds {
			if !p(&cars[i]) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, cars[i])
		}
	}
	return matched
}

func (q SearchQuery) predicates() []predicate {
	var preds []predicate

	if s := strings.ToLower(strings.TrimSpace(q.Query)); s != "" {
		preds = append(preds, func(c *models.Car) bool {
			return strings.Contains(strings.ToLower(c.Name), s) ||
				strings.Contains(strings.ToLower(c.Description), s) ||
				strings.Contains(strings.ToLower(c.Brand.Name), s) ||
				strings.Contains(strings.ToLower(c.Color.Name), s)
		})
	}

	if q.BrandID != nil {
		id := *q.BrandID
		preds = append(preds, func(c *models.Car) bool { return c.BrandID == id })
	}

	if t := strings.ToLower(q.CarType); t != "" {
		preds = append(preds, func(c *models.Car) bool {
			return strings.ToLower(c.CarType) == t
		})
	}

	if p := q.salePredicate(); p != nil {
		preds = append(preds, p)
	}

	if q.LocationID != nil {
		id := *q.LocationID
		preds = append(preds, func(c *models.Car) bool {
			return c.LocationID != nil && *c.LocationID == id
		})
	}

	if q.ColorID != nil {
		id := *q.ColorID
		preds = append(preds, func(c *models.Car) bool { return c.ColorID == id })
	}

	if q.SeatingCapacity != nil {
		seats := *q.SeatingCapacity
		preds = append(preds, func(c *models.Car) bool {
			return c.SeatingCapacity != nil && *c.SeatingCapacity >= seats
		})
	}

	if len(q.FuelTypes) > 0 {
		wanted := make(map[string]bool, len(q.FuelTypes))
		for _, f := range q.FuelTypes {
			wanted[f] = true
		}
		preds = append(preds, func(c *models.Car) bool {
			for _, fuel := range c.FuelTypes() {
				if wanted[fuel] {
					return true
				}
			}
			return false
		})
	}

	return preds
}

// salePredicate handles the sale-mode stage. The sale type gates which
// price field the min/max bounds apply to; rent_pay takes no bounds.
func (q SearchQuery) salePredicate() predicate {
	switch q.SaleType {
	case SaleRent:
		priceOf := rentPriceField[q.RentalTime]
		return func(c *models.Car) bool {
			if !c.IsForRent {
				return false
			}
			if priceOf == nil || (q.MinPrice == nil && q.MaxPrice == nil) {
				return true
			}
			return inBounds(priceOf(c), q.MinPrice, q.MaxPrice)
		}
	case SalePay:
		return func(c *models.Car) bool {
			if !c.IsForPay {
				return false
			}
			if q.MinPrice == nil && q.MaxPrice == nil {
				return true
			}
			return inBounds(c.Price, q.MinPrice, q.MaxPrice)
		}
	case SaleRentPay:
		return func(c *models.Car) bool {
			return c.IsForRent || c.IsForPay
		}
	}
	return nil
}

// inBounds requires a non-null price whenever a bound is present.
func inBounds(price, min, max *float64) bool {
	if price == nil {
		return false
	}
	if min != nil && *price < *min {
		return false
	}
	if max != nil && *price > *max {
		return false
	}
	return true
}
