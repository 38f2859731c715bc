package routes

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"qent/catalog"
	"qent/db"
	"qent/models"
	"qent/pagination"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production
	},
}

// Connected clients map with mutex for thread safety
var clients = make(map[*websocket.Conn]bool)
var broadcast = make(chan []byte, 100) // Buffered channel to prevent blocking
var mutex = &sync.Mutex{}
var validate = validator.New()

var svc *catalog.Service

const (
	listPageSize   = 5
	searchPageSize = 13
	detailReviews  = 3
)

// CarDetailResponse is the detail payload: the car plus its review
// aggregates and a convenience first image.
type CarDetailResponse struct {
	models.Car
	FirstImage   *string `json:"first_image"`
	ReviewsCount int     `json:"reviews_count"`
	ReviewsAvg   float64 `json:"reviews_avg"`
}

// SearchPage is the search envelope; Message flags an empty result set
// so clients can tell "no matches" apart from a failed request.
type SearchPage struct {
	pagination.Page[models.Car]
	Message string `json:"message,omitempty"`
}

type ReviewRequest struct {
	Review string `json:"review" validate:"required"`
	Rate   int    `json:"rate" validate:"required,min=1,max=5"`
}

type reviewEvent struct {
	Event  string        `json:"event"`
	CarID  uint          `json:"car_id"`
	Review models.Review `json:"review"`
}

func SetupRoutes(app *fiber.App) {
	svc = catalog.NewService(db.DB)

	wsHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("Error upgrading:", err)
			return
		}
		defer conn.Close()

		mutex.Lock()
		clients[conn] = true
		mutex.Unlock()
		log.Println("Client connected:", conn.RemoteAddr())

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket read error: %v", err)
				}
				mutex.Lock()
				delete(clients, conn)
				mutex.Unlock()
				log.Println("Client disconnected:", conn.RemoteAddr())
				break
			}
		}
	})

	// Handle broadcasting review events to all clients
	go func() {
		for message := range broadcast {
			mutex.Lock()
			for client := range clients {
				err := client.WriteMessage(websocket.TextMessage, message)
				if err != nil {
					log.Printf("WebSocket write error: %v", err)
					client.Close()
					delete(clients, client)
				}
			}
			mutex.Unlock()
		}
	}()

	// Mount WebSocket endpoint
	app.Get("/ws", wsHandler)
	// Image upload route
	app.Post("/upload", uploadImage)

	api := app.Group("/api")

	// Car routes; fixed paths before the :id parameter
	cars := api.Group("/cars")
	cars.Get("/", getAllCars)
	cars.Get("/search", searchCars)
	cars.Get("/best", getBestCars)
	cars.Get("/nearest", requireAuth, getNearestCars)
	cars.Get("/:id", getCar)
	cars.Get("/:id/reviews", getCarReviews)
	cars.Post("/:id/reviews/add", requireAuth, addCarReview)
	cars.Post("/:id/subscribe", requireAuth, subscribeCar)

	// Brand routes
	brands := api.Group("/brands")
	brands.Get("/", getAllBrands)
	brands.Get("/:id", getBrand)

	api.Get("/settings", getSettings)
}

// ---------- helpers ----------

// errorBody is the structured error shape shared by all failures:
// {"message": "Invalid Request", "errors": {"message": detail}}
func errorBody(message string) fiber.Map {
	return fiber.Map{
		"message": "Invalid Request",
		"errors":  fiber.Map{"message": message},
	}
}

func validationBody(fields map[string][]string) fiber.Map {
	return fiber.Map{
		"message": "Invalid Request",
		"errors":  fields,
	}
}

// validationFields turns validator.Struct errors into per-field messages.
func validationFields(err error) map[string][]string {
	fields := map[string][]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["message"] = []string{"Invalid request body"}
		return fields
	}
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		var msg string
		switch fe.Tag() {
		case "required":
			msg = fe.Field() + " is required"
		case "min":
			msg = fe.Field() + " must be at least " + fe.Param()
		case "max":
			msg = fe.Field() + " must be at most " + fe.Param()
		default:
			msg = fe.Field() + " is invalid"
		}
		fields[name] = append(fields[name], msg)
	}
	return fields
}

// respondError maps catalog errors onto statuses and the error body.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(validationBody(verr.Fields))
	case errors.Is(err, catalog.ErrCarNotFound), errors.Is(err, catalog.ErrBrandNotFound):
		return c.Status(fiber.StatusNotFound).JSON(errorBody(err.Error()))
	case errors.Is(err, catalog.ErrDuplicateReview):
		return c.Status(fiber.StatusConflict).JSON(errorBody(err.Error()))
	case errors.Is(err, catalog.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(errorBody(err.Error()))
	case errors.Is(err, catalog.ErrNotOwner),
		errors.Is(err, catalog.ErrActiveSubscription),
		errors.Is(err, catalog.ErrInsufficientBalance):
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(err.Error()))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(errorBody(fallback))
}

// requireAuth resolves the bearer token against the user's stored API
// token. The token lives on the user record, not in process memory.
func requireAuth(c *fiber.Ctx) error {
	token := strings.TrimSpace(strings.TrimPrefix(c.Get("Authorization"), "Bearer"))
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(errorBody("Authentication required"))
	}

	var user models.User
	err := db.DB.Preload("Location").Where("api_token = ?", token).First(&user).Error
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(errorBody("Authentication required"))
	}

	c.Locals("currentUser", &user)
	return c.Next()
}

func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("currentUser").(*models.User)
	return user
}

func pageRequest(c *fiber.Ctx, perPage int) pagination.Request {
	return pagination.Request{
		URL:     c.BaseURL() + c.OriginalURL(),
		Path:    c.BaseURL() + c.Path(),
		Page:    c.QueryInt("page", 1),
		PerPage: perPage,
	}
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, catalog.NewValidationError(name, name+" must be a number")
	}
	return uint(id), nil
}

// parseSearchQuery builds the typed query from the raw parameters,
// collecting every malformed field instead of stopping at the first.
func parseSearchQuery(c *fiber.Ctx) (catalog.SearchQuery, error) {
	q := catalog.SearchQuery{Query: c.Query("query")}
	verr := &catalog.ValidationError{}

	parseID := func(name string) *uint {
		raw := c.Query(name)
		if raw == "" {
			return nil
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			verr.Add(name, name+" must be a number")
			return nil
		}
		v := uint(id)
		return &v
	}
	parsePrice := func(name string) *float64 {
		raw := c.Query(name)
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			verr.Add(name, name+" must be a non-negative number")
			return nil
		}
		return &v
	}

	q.BrandID = parseID("brand_id")
	q.LocationID = parseID("location_id")
	q.ColorID = parseID("color_id")
	q.CarType = c.Query("car_type")
	q.MinPrice = parsePrice("min_price")
	q.MaxPrice = parsePrice("max_price")

	if raw := c.Query("type"); raw != "" {
		st := catalog.SaleType(raw)
		if !catalog.ValidSaleType(st) {
			verr.Add("type", "type must be one of rent, pay, rent_pay")
		} else {
			q.SaleType = st
		}
	}

	if raw := c.Query("rental_time"); raw != "" {
		rt := catalog.RentalTime(raw)
		if !catalog.ValidRentalTime(rt) {
			verr.Add("rental_time", "rental_time must be one of daily, weekly, monthly, yearly")
		} else {
			q.RentalTime = rt
		}
	}

	if raw := c.Query("seating_capacity"); raw != "" {
		seats, err := strconv.Atoi(raw)
		if err != nil || seats < 1 {
			verr.Add("seating_capacity", "seating_capacity must be a positive number")
		} else {
			q.SeatingCapacity = &seats
		}
	}

	for _, fuel := range c.Context().QueryArgs().PeekMulti("fuel_type") {
		if len(fuel) > 0 {
			q.FuelTypes = append(q.FuelTypes, string(fuel))
		}
	}

	if !verr.Empty() {
		return q, verr
	}
	return q, nil
}

// ---------- car handlers ----------

// GET /api/cars
func getAllCars(c *fiber.Ctx) error {
	cars, err := svc.Cars()
	if err != nil {
		return respondError(c, err, "Failed to get cars")
	}
	return c.JSON(pagination.Paginate(cars, pageRequest(c, listPageSize)))
}

// GET /api/cars/search
func searchCars(c *fiber.Ctx) error {
	query, err := parseSearchQuery(c)
	if err != nil {
		return respondError(c, err, "Failed to search cars")
	}

	cars, err := svc.Search(query)
	if err != nil {
		return respondError(c, err, "Failed to search cars")
	}

	page := SearchPage{Page: pagination.Paginate(cars, pageRequest(c, searchPageSize))}
	if len(cars) == 0 {
		page.Message = "No cars matched your search."
	}
	return c.JSON(page)
}

// GET /api/cars/best
func getBestCars(c *fiber.Ctx) error {
	cars, err := svc.Best()
	if err != nil {
		return respondError(c, err, "Failed to get best cars")
	}
	return c.JSON(fiber.Map{"data": cars})
}

// GET /api/cars/nearest
func getNearestCars(c *fiber.Ctx) error {
	cars, err := svc.Nearest(currentUser(c))
	if err != nil {
		return respondError(c, err, "Failed to get nearest cars")
	}
	return c.JSON(fiber.Map{"data": cars})
}

// GET /api/cars/:id
func getCar(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, err, "Failed to get car")
	}

	car, err := svc.Car(id)
	if err != nil {
		return respondError(c, err, "Failed to get car")
	}

	resp := CarDetailResponse{Car: *car}
	resp.ReviewsCount = len(car.Reviews)
	if resp.ReviewsCount > 0 {
		sum := 0
		for _, r := range car.Reviews {
			sum += r.Rate
		}
		resp.ReviewsAvg = math.Round(float64(sum)/float64(resp.ReviewsCount)*10) / 10
	}
	if len(resp.Reviews) > detailReviews {
		resp.Reviews = resp.Reviews[:detailReviews]
	}
	if len(car.Images) > 0 {
		url := c.BaseURL() + "/uploads/" + car.Images[0].Image
		resp.FirstImage = &url
	}

	return c.JSON(resp)
}

// GET /api/cars/:id/reviews
func getCarReviews(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, err, "Failed to get reviews")
	}

	reviews, err := svc.Reviews(id)
	if err != nil {
		return respondError(c, err, "Failed to get reviews")
	}
	return c.JSON(fiber.Map{"data": reviews})
}

// POST /api/cars/:id/reviews/add
func addCarReview(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, err, "Failed to add review")
	}

	req := new(ReviewRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody("Failed to parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(validationBody(validationFields(err)))
	}

	review, err := svc.AddReview(currentUser(c), id, req.Review, req.Rate)
	if err != nil {
		return respondError(c, err, "Failed to add review")
	}

	if payload, err := json.Marshal(reviewEvent{Event: "review.created", CarID: id, Review: *review}); err == nil {
		select {
		case broadcast <- payload:
		default: // feed is best effort, drop when full
		}
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// POST /api/cars/:id/subscribe
func subscribeCar(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, err, "Failed to subscribe")
	}

	car, err := svc.Subscribe(currentUser(c), id)
	if err != nil {
		return respondError(c, err, "Failed to subscribe")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Car subscribed successfully",
		"data":    car,
	})
}

// ---------- brand handlers ----------

// GET /api/brands
func getAllBrands(c *fiber.Ctx) error {
	brands, err := svc.Brands()
	if err != nil {
		return respondError(c, err, "Failed to get brands")
	}
	return c.JSON(fiber.Map{"data": brands})
}

// GET /api/brands/:id
func getBrand(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, err, "Failed to get brand")
	}

	brand, err := svc.Brand(id)
	if err != nil {
		return respondError(c, err, "Failed to get brand")
	}
	return c.JSON(brand)
}

// ---------- settings ----------

// GET /api/settings
func getSettings(c *fiber.Ctx) error {
	settings, err := svc.Settings()
	if err != nil {
		return respondError(c, err, "Failed to get settings")
	}
	return c.JSON(settings)
}

// ---------- uploads ----------

func uploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody("Failed to get uploaded file"))
	}

	// Generate unique filename
	ext := filepath.Ext(file.Filename)
	uniqueID := uuid.New().String()
	filename := uniqueID + ext
	filepath := "./uploads/" + filename

	// Save the file
	if err := c.SaveFile(file, filepath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errorBody("Failed to save file"))
	}

	// Return the file path that can be stored in the database
	return c.JSON(fiber.Map{
		"filename": filename,
		"path":     "/uploads/" + filename,
	})
}
