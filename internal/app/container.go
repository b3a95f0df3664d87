package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickcourt/quickcourt-backend/internal/api"
	"github.com/quickcourt/quickcourt-backend/internal/auth"
	"github.com/quickcourt/quickcourt-backend/internal/booking"
	"github.com/quickcourt/quickcourt-backend/internal/court"
	"github.com/quickcourt/quickcourt-backend/internal/facility"
	"github.com/quickcourt/quickcourt-backend/internal/media"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/storage"
	"github.com/quickcourt/quickcourt-backend/internal/sweep"
	"github.com/quickcourt/quickcourt-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction     bool
	ProdOrigins      string
	DBPool           *pgxpool.Pool
	JWTSecret        string
	JWTTTL           time.Duration
	BcryptCost       int
	MediaDir         string
	MediaMaxUploadMB int
	SweepCron        string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Sweeper    *sweep.Sweeper
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	localStorage, err := storage.NewLocalStorage(cfg.MediaDir)
	if err != nil {
		return nil, fmt.Errorf("init media storage: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Facility Module
	facilityRepo := facility.NewPgxRepository(cfg.DBPool)
	facilityService := facility.NewService(facilityRepo)

	// Court Module
	courtRepo := court.NewPgxRepository(cfg.DBPool)
	courtService := court.NewService(courtRepo, facilityService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, courtService, facilityService)

	// Media Module
	mediaRepo := media.NewPgxRepository(cfg.DBPool)
	mediaService := media.NewService(mediaRepo, localStorage, int64(cfg.MediaMaxUploadMB)<<20)

	sweeper, err := sweep.New(bookingService, cfg.SweepCron)
	if err != nil {
		return nil, fmt.Errorf("init completion sweep: %w", err)
	}

	router := api.NewRouter(api.RouterConfig{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     splitOrigins(cfg.ProdOrigins),
		JWTManager:      jwtManager,
		UserService:     userService,
		FacilityService: facilityService,
		CourtService:    courtService,
		BookingService:  bookingService,
		MediaService:    mediaService,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Sweeper:    sweeper,
	}, nil
}

// splitOrigins parses the comma-separated PROD_ORIGINS value.
func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
