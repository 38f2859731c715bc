package catalog

import (
	"errors"
	"fmt"
	"testing"

	"qent/db"
	"qent/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return conn
}

func seedCarWithOwner(t *testing.T, conn *gorm.DB, balance float64) (*models.User, *models.Car) {
	t.Helper()
	owner := models.User{Name: "Owner", Phone: "0100000001", Email: "owner@example.com", Balance: balance}
	if err := conn.Create(&owner).Error; err != nil {
		t.Fatalf("failed to seed owner: %v", err)
	}
	car := models.Car{Name: "Corolla", OwnerID: owner.ID, AverageRate: 4}
	if err := conn.Create(&car).Error; err != nil {
		t.Fatalf("failed to seed car: %v", err)
	}
	return &owner, &car
}

func TestServiceCarNotFound(t *testing.T) {
	svc := NewService(testDB(t))
	if _, err := svc.Car(99); !errors.Is(err, ErrCarNotFound) {
		t.Errorf("expected ErrCarNotFound, got %v", err)
	}
}

func TestServiceAddReviewAndDuplicate(t *testing.T) {
	conn := testDB(t)
	svc := NewService(conn)
	user, car := seedCarWithOwner(t, conn, 0)

	review, err := svc.AddReview(user, car.ID, "Great car", 5)
	if err != nil {
		t.Fatalf("first review should succeed, got %v", err)
	}
	if review.Rate != 5 || review.CarID != car.ID || review.UserID != user.ID {
		t.Errorf("review fields wrong: %+v", review)
	}

	if _, err := svc.AddReview(user, car.ID, "Again", 4); !errors.Is(err, ErrDuplicateReview) {
		t.Errorf("second review should conflict, got %v", err)
	}

	// a different user may still review the same car
	other := models.User{Name: "Other", Phone: "0100000002", Email: "other@example.com"}
	if err := conn.Create(&other).Error; err != nil {
		t.Fatalf("failed to seed second user: %v", err)
	}
	if _, err := svc.AddReview(&other, car.ID, "Nice", 4); err != nil {
		t.Errorf("different user review should succeed, got %v", err)
	}
}

func TestServiceAddReviewErrors(t *testing.T) {
	conn := testDB(t)
	svc := NewService(conn)
	user, _ := seedCarWithOwner(t, conn, 0)

	if _, err := svc.AddReview(nil, 1, "x", 3); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("nil user should be unauthenticated, got %v", err)
	}
	if _, err := svc.AddReview(user, 99, "x", 3); !errors.Is(err, ErrCarNotFound) {
		t.Errorf("missing car should be not found, got %v", err)
	}
}

func TestServiceReviews(t *testing.T) {
	conn := testDB(t)
	svc := NewService(conn)
	user, car := seedCarWithOwner(t, conn, 0)

	if _, err := svc.AddReview(user, car.ID, "Solid", 4); err != nil {
		t.Fatalf("review failed: %v", err)
	}

	reviews, err := svc.Reviews(car.ID)
	if err != nil {
		t.Fatalf("listing reviews failed: %v", err)
	}
	if len(reviews) != 1 || reviews[0].Review != "Solid" {
		t.Errorf("unexpected reviews: %+v", reviews)
	}

	if _, err := svc.Reviews(99); !errors.Is(err, ErrCarNotFound) {
		t.Errorf("missing car should be not found, got %v", err)
	}
}

func TestServiceSubscribe(t *testing.T) {
	conn := testDB(t)
	svc := NewService(conn)
	owner, car := seedCarWithOwner(t, conn, 50)

	subscribed, err := svc.Subscribe(owner, car.ID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if subscribed.SubscriptionStart == nil || subscribed.SubscriptionEnd == nil {
		t.Fatal("subscription window not set")
	}
	days := subscribed.SubscriptionEnd.Sub(*subscribed.SubscriptionStart).Hours() / 24
	if days != 30 {
		t.Errorf("expected a 30 day window, got %f", days)
	}

	var fresh models.User
	if err := conn.First(&fresh, owner.ID).Error; err != nil {
		t.Fatalf("failed to reload owner: %v", err)
	}
	if fresh.Balance != 40 {
		t.Errorf("expected balance 40 after subscribing, got %f", fresh.Balance)
	}

	if _, err := svc.Subscribe(owner, car.ID); !errors.Is(err, ErrActiveSubscription) {
		t.Errorf("second subscribe should fail, got %v", err)
	}
}

func TestServiceSubscribeGuards(t *testing.T) {
	conn := testDB(t)
	svc := NewService(conn)
	_, car := seedCarWithOwner(t, conn, 5)

	stranger := models.User{Name: "Stranger", Phone: "0100000003", Email: "s@example.com", Balance: 100}
	if err := conn.Create(&stranger).Error; err != nil {
		t.Fatalf("failed to seed stranger: %v", err)
	}
	if _, err := svc.Subscribe(&stranger, car.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("non-owner should be rejected, got %v", err)
	}

	var owner models.User
	if err := conn.First(&owner).Error; err != nil {
		t.Fatalf("failed to load owner: %v", err)
	}
	if _, err := svc.Subscribe(&owner, car.ID); !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("low balance should be rejected, got %v", err)
	}
}

func TestServiceSettings(t *testing.T) {
	conn := testDB(t)
	svc := NewService(conn)

	colors := []models.Color{{Name: "Red", HexValue: "#FF0000"}, {Name: "Black", HexValue: "#000000"}}
	if err := conn.Create(&colors).Error; err != nil {
		t.Fatalf("failed to seed colors: %v", err)
	}
	for i, price := range []float64{100, 500, 1000} {
		p := price
		car := models.Car{Name: fmt.Sprintf("Car %d", i+1), IsForPay: true, Price: &p}
		if err := conn.Create(&car).Error; err != nil {
			t.Fatalf("failed to seed car: %v", err)
		}
	}

	settings, err := svc.Settings()
	if err != nil {
		t.Fatalf("settings failed: %v", err)
	}
	if len(settings.Buckets) != 20 {
		t.Errorf("expected 20 buckets, got %d", len(settings.Buckets))
	}
	if settings.MinPrice != 100 || settings.MaxPrice != 1000 {
		t.Errorf("expected range [100,1000], got [%f,%f]", settings.MinPrice, settings.MaxPrice)
	}
	sum := 0
	for _, b := range settings.Buckets {
		sum += b.Count
	}
	if sum != 3 {
		t.Errorf("bucket counts should sum to 3, got %d", sum)
	}
	if len(settings.Colors) != 2 {
		t.Errorf("expected 2 colors, got %d", len(settings.Colors))
	}
}

func TestServiceSearchIntegration(t *testing.T) {
	conn := testDB(t)
	svc := NewService(conn)

	brand := models.Brand{Name: "Toyota"}
	if err := conn.Create(&brand).Error; err != nil {
		t.Fatalf("failed to seed brand: %v", err)
	}
	cars := []models.Car{
		{Name: "Corolla", CarType: models.CarTypeRegular, BrandID: brand.ID},
		{Name: "Roma", CarType: models.CarTypeLuxury},
	}
	if err := conn.Create(&cars).Error; err != nil {
		t.Fatalf("failed to seed cars: %v", err)
	}

	got, err := svc.Search(SearchQuery{Query: "toyota"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Corolla" {
		t.Errorf("brand keyword search failed: %+v", got)
	}

	got, err = svc.Search(SearchQuery{Query: "nothing matches this"})
	if err != nil {
		t.Fatalf("empty search should not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}
