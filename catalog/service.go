package catalog

import (
	"errors"
	"strings"
	"time"

	"qent/models"

	"gorm.io/gorm"
)

const (
	subscriptionCost = 10
	subscriptionDays = 30
)

// Service runs the catalog operations over the backing store. It holds
// no state of its own; every call reads or writes through the database.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) carQuery() *gorm.DB {
	return s.db.
		Preload("Brand").
		Preload("Color").
		Preload("Location").
		Preload("CarFeatures").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
}

// Cars returns the whole catalog with its lookups preloaded, in id order.
func (s *Service) Cars() ([]models.Car, error) {
	var cars []models.Car
	if err := s.carQuery().Order("id ASC").Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

func (s *Service) Car(id uint) (*models.Car, error) {
	var car models.Car
	err := s.carQuery().
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC").Preload("User")
		}).
		First(&car, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	return &car, nil
}

// Search loads the catalog and runs the filter pipeline over it.
func (s *Service) Search(q SearchQuery) ([]models.Car, error) {
	cars, err := s.Cars()
	if err != nil {
		return nil, err
	}
	return FilterCars(cars, q), nil
}

func (s *Service) Nearest(user *models.User) ([]models.Car, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	cars, err := s.Cars()
	if err != nil {
		return nil, err
	}
	return NearestCars(user, cars), nil
}

func (s *Service) Best() ([]models.Car, error) {
	cars, err := s.Cars()
	if err != nil {
		return nil, err
	}
	return BestCars(cars), nil
}

type Settings struct {
	PriceHistogram
	Colors []models.Color `json:"colors"`
}

// Settings aggregates the price histogram with the color lookup list for
// the search UI's filters.
func (s *Service) Settings() (*Settings, error) {
	var cars []models.Car
	if err := s.db.Order("id ASC").Find(&cars).Error; err != nil {
		return nil, err
	}

	var colors []models.Color
	if err := s.db.Order("id ASC").Find(&colors).Error; err != nil {
		return nil, err
	}

	return &Settings{
		PriceHistogram: BuildPriceHistogram(cars),
		Colors:         colors,
	}, nil
}

// AddReview creates a review for the car. The existence pre-check gives
// a clean Conflict for the common case; the unique index on
// (user_id, car_id) is what actually guarantees it under races.
func (s *Service) AddReview(user *models.User, carID uint, body string, rate int) (*models.Review, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}

	var car models.Car
	if err := s.db.First(&car, carID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}

	var existing models.Review
	err := s.db.Where("user_id = ? AND car_id = ?", user.ID, carID).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateReview
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := models.Review{
		UserID: user.ID,
		CarID:  carID,
		Review: body,
		Rate:   rate,
	}
	if err := s.db.Create(&review).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	review.User = *user
	return &review, nil
}

func (s *Service) Reviews(carID uint) ([]models.Review, error) {
	var car models.Car
	if err := s.db.First(&car, carID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}

	var reviews []models.Review
	err := s.db.Preload("User").
		Where("car_id = ?", carID).
		Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// Subscribe charges the owner's balance and opens a thirty-day listing
// window on the car. Runs in one transaction so the balance and the
// window never drift apart.
func (s *Service) Subscribe(user *models.User, carID uint) (*models.Car, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}

	var car models.Car
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&car, carID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCarNotFound
			}
			return err
		}

		if car.OwnerID != user.ID {
			return ErrNotOwner
		}

		today := time.Now().Truncate(24 * time.Hour)
		if car.SubscriptionEnd != nil && !car.SubscriptionEnd.Before(today) {
			return ErrActiveSubscription
		}

		var owner models.User
		if err := tx.First(&owner, user.ID).Error; err != nil {
			return err
		}
		if owner.Balance < subscriptionCost {
			return ErrInsufficientBalance
		}

		if err := tx.Model(&owner).Update("balance", owner.Balance-subscriptionCost).Error; err != nil {
			return err
		}

		end := today.AddDate(0, 0, subscriptionDays)
		car.SubscriptionStart = &today
		car.SubscriptionEnd = &end
		return tx.Model(&car).Updates(map[string]interface{}{
			"subscription_start": today,
			"subscription_end":   end,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (s *Service) Brands() ([]models.Brand, error) {
	var brands []models.Brand
	if err := s.db.Order("id ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (s *Service) Brand(id uint) (*models.Brand, error) {
	var brand models.Brand
	err := s.db.Preload("Cars").First(&brand, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}
	return &brand, nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
