package app

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"triphaven/internal/handler"
	"triphaven/internal/middleware"
	internalRedis "triphaven/internal/redis"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	CatalogHandler  *handler.CatalogHandler
	CartHandler     *handler.CartHandler
	PaymentHandler  *handler.PaymentHandler
	CheckoutHandler *handler.CheckoutHandler
	RedisClient     *redis.Client
	RequestLocker   internalRedis.RequestLocker
	NewRelicApp     *newrelic.Application
	Logger          *zap.Logger
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:   []string{"X-Request-ID"},
	}))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient, deps.RequestLocker, deps.Logger))

	// Liveness.
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server is running!")
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Catalog routes.
	router.GET("/trip", deps.CatalogHandler.ListTrips)
	router.GET("/view-trips/:id", deps.CatalogHandler.GetTrip)

	// Cart routes.
	router.GET("/carts", deps.CartHandler.ListCartItems)
	router.POST("/carts", deps.CartHandler.AddCartItem)
	router.DELETE("/delete-carts/:id", deps.CartHandler.RemoveCartItem)

	// Payment routes.
	router.POST("/create-payment-intent", deps.PaymentHandler.CreatePaymentIntent)
	router.POST("/payments", deps.CheckoutHandler.RecordPayment)

	return router
}
