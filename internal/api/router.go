package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quickcourt/quickcourt-backend/internal/auth"
	"github.com/quickcourt/quickcourt-backend/internal/booking"
	bookingHttp "github.com/quickcourt/quickcourt-backend/internal/booking/http"
	"github.com/quickcourt/quickcourt-backend/internal/court"
	courtHttp "github.com/quickcourt/quickcourt-backend/internal/court/http"
	"github.com/quickcourt/quickcourt-backend/internal/facility"
	facilityHttp "github.com/quickcourt/quickcourt-backend/internal/facility/http"
	"github.com/quickcourt/quickcourt-backend/internal/media"
	mediaHttp "github.com/quickcourt/quickcourt-backend/internal/media/http"
	"github.com/quickcourt/quickcourt-backend/internal/user"
	userHttp "github.com/quickcourt/quickcourt-backend/internal/user/http"
)

// RouterConfig carries everything the router needs to assemble middleware
// and routes.
type RouterConfig struct {
	IsProduction bool
	ProdOrigins  []string

	JWTManager      *auth.JWTManager
	UserService     user.Service
	FacilityService facility.Service
	CourtService    court.Service
	BookingService  booking.Service
	MediaService    media.Service
}

// NewRouter assembles the HTTP engine: global middleware, CORS and every
// module's routes under /api, plus file serving at the root.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	authMiddleware := Authenticated(cfg.JWTManager, cfg.UserService)
	adminMiddleware := RequireAdmin()

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	facilityHandler := facilityHttp.NewHandler(cfg.FacilityService)
	courtHandler := courtHttp.NewHandler(cfg.CourtService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	mediaHandler := mediaHttp.NewHandler(cfg.MediaService)

	api := r.Group("/api")
	{
		userHttp.RegisterRoutes(api, userHandler, authMiddleware, adminMiddleware)
		facilityHttp.RegisterRoutes(api, facilityHandler, authMiddleware, adminMiddleware)
		courtHttp.RegisterRoutes(api, courtHandler, authMiddleware)
		bookingHttp.RegisterRoutes(api, bookingHandler, authMiddleware)
		mediaHttp.RegisterRoutes(api, r, mediaHandler, authMiddleware)
	}

	return r
}
