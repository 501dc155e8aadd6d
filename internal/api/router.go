package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/clinicdesk/clinic-booking-backend/internal/auth"
	"github.com/clinicdesk/clinic-booking-backend/internal/availability"
	availabilityHttp "github.com/clinicdesk/clinic-booking-backend/internal/availability/http"
	"github.com/clinicdesk/clinic-booking-backend/internal/booking"
	bookingHttp "github.com/clinicdesk/clinic-booking-backend/internal/booking/http"
	"github.com/clinicdesk/clinic-booking-backend/internal/doctor"
	doctorHttp "github.com/clinicdesk/clinic-booking-backend/internal/doctor/http"
	"github.com/clinicdesk/clinic-booking-backend/internal/notification"
	notificationHttp "github.com/clinicdesk/clinic-booking-backend/internal/notification/http"
	"github.com/clinicdesk/clinic-booking-backend/internal/specialty"
	specialtyHttp "github.com/clinicdesk/clinic-booking-backend/internal/specialty/http"
	"github.com/clinicdesk/clinic-booking-backend/internal/user"
	userHttp "github.com/clinicdesk/clinic-booking-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *zap.Logger

	// RedisClient is optional; when nil the rate limiter is skipped.
	RedisClient     *redis.Client
	RateLimit       int
	RateLimitWindow time.Duration

	UserService         user.Service
	SpecialtyService    specialty.Service
	DoctorService       doctor.Service
	AvailabilityService availability.Service
	BookingService      booking.Service
	NotificationService notification.Service
	JWTManager          *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (logging, CORS, rate limiting,
// auth) and registering routes for the modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsCfg := cors.DefaultConfig()
	if cfg.IsProduction {
		corsCfg.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	if cfg.RedisClient != nil {
		limiter := NewRedisRateLimiter(cfg.RedisClient, cfg.RateLimit, cfg.RateLimitWindow, cfg.Logger)
		r.Use(limiter.Middleware())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the authenticated user is an admin.
	adminMiddleware := RequireAdmin()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	specialtyHandler := specialtyHttp.NewHandler(cfg.SpecialtyService)
	doctorHandler := doctorHttp.NewHandler(cfg.DoctorService)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService, cfg.DoctorService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.DoctorService)
	notificationHandler := notificationHttp.NewHandler(cfg.NotificationService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		specialtyHttp.RegisterRoutes(v1, specialtyHandler, authMiddleware, adminMiddleware)
		doctorHttp.RegisterRoutes(v1, doctorHandler, authMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		notificationHttp.RegisterRoutes(v1, notificationHandler, authMiddleware)
	}

	return r
}
