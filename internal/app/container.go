package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/clinicdesk/clinic-booking-backend/internal/api"
	"github.com/clinicdesk/clinic-booking-backend/internal/auth"
	"github.com/clinicdesk/clinic-booking-backend/internal/availability"
	"github.com/clinicdesk/clinic-booking-backend/internal/booking"
	"github.com/clinicdesk/clinic-booking-backend/internal/doctor"
	"github.com/clinicdesk/clinic-booking-backend/internal/notification"
	"github.com/clinicdesk/clinic-booking-backend/internal/specialty"
	"github.com/clinicdesk/clinic-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	RedisClient  *redis.Client
	Logger       *zap.Logger
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	RateLimit       int
	RateLimitWindow time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Specialty Module
	specialtyRepo := specialty.NewPgxRepository(cfg.DBPool)
	specialtyService := specialty.NewService(specialtyRepo)

	// Doctor Module
	doctorRepo := doctor.NewPgxRepository(cfg.DBPool)
	doctorService := doctor.NewService(doctorRepo, userService, specialtyService)

	// Availability Module
	availabilityRepo := availability.NewPgxRepository(cfg.DBPool)
	availabilityService := availability.NewService(availabilityRepo)

	// Notification Module
	notificationRepo := notification.NewPgxRepository(cfg.DBPool)
	notificationService := notification.NewService(notificationRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, availabilityService, doctorService, notificationService, cfg.Logger)

	// API Router Config
	routerParams := api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		Logger:              cfg.Logger,
		RedisClient:         cfg.RedisClient,
		RateLimit:           cfg.RateLimit,
		RateLimitWindow:     cfg.RateLimitWindow,
		UserService:         userService,
		SpecialtyService:    specialtyService,
		DoctorService:       doctorService,
		AvailabilityService: availabilityService,
		BookingService:      bookingService,
		NotificationService: notificationService,
		JWTManager:          jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
