package handler

import (
	"log/slog"
	"net/http"

	"starpro_store/internal/kv"
	"starpro_store/internal/middleware"
	"starpro_store/internal/repository"
	"starpro_store/internal/service"
	"starpro_store/internal/utils"
	"starpro_store/internal/view"

	"github.com/gin-gonic/gin"
)

// Deps is everything the router wires together.
type Deps struct {
	Auth      service.AuthService
	Customers service.CustomerService
	Orders    service.OrderService
	Pages     service.PageService
	Sessions  *repository.SessionHolder
	JWT       *utils.JWTUtil
	Formatter view.Formatter
	Backend   kv.Pinger
	Logger    *slog.Logger
}

// NewRouter builds the gin engine with every route under /api/v1.
func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(logger), middleware.Recovery(logger))

	// Simple CORS middleware (allow all for development)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	jwtAuthMW := middleware.JWTAuthMiddleware(d.JWT)
	sessionMW := middleware.SessionMiddleware(d.Sessions)
	ownerRoleMW := middleware.OwnerMiddleware()
	optionalMW := middleware.OptionalSession(d.JWT, d.Sessions)

	apiGroup := router.Group("/api/v1")
	NewAuthHandler(d.Auth).RegisterAuthRoutes(apiGroup, optionalMW, jwtAuthMW, sessionMW)
	NewPageHandler(d.Pages).RegisterPageRoutes(apiGroup, optionalMW)
	NewCustomerHandler(d.Customers, d.Formatter).RegisterCustomerRoutes(apiGroup, jwtAuthMW, sessionMW, ownerRoleMW)
	NewOrderHandler(d.Orders, d.Formatter).RegisterOrderRoutes(apiGroup, jwtAuthMW, sessionMW)

	router.GET("/health", func(c *gin.Context) {
		if d.Backend != nil {
			if err := d.Backend.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "store": "unhealthy"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": "healthy"})
	})

	return router
}
