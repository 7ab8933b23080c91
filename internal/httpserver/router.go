package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"tireshop/internal/domain"
	"tireshop/internal/notify"
	"tireshop/internal/service/catalog"
	"tireshop/internal/service/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the services the handlers dispatch to.
type Deps struct {
	CatalogSvc  CatalogService
	CartSvc     CartService
	SessionSvc  SessionService
	OrderSvc    OrderService
	Notifier    notify.Notifier
	CORSOrigins []string
	// MediaURLHost, when set, prefixes relative image paths in
	// responses.
	MediaURLHost string
}

type CatalogService interface {
	List(ctx context.Context, in catalog.ListInput) (*catalog.Page, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	FilterValues(ctx context.Context) (map[string][]domain.FilterValue, error)
}

type CartService interface {
	Add(ctx context.Context, sessionToken string, productID int64, quantity int) error
	Remove(ctx context.Context, sessionToken string, productID int64, removeAll bool) error
	List(ctx context.Context, sessionToken string) ([]domain.CartItem, int64, error)
}

type SessionService interface {
	Ensure(ctx context.Context, token string) (*session.Info, error)
}

type OrderService interface {
	Place(ctx context.Context, sessionToken string, contact domain.Contact, address domain.Address) (int64, error)
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.CORSOrigins) == 1 && deps.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else if len(deps.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = deps.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, sessionHeader)
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.GET("/filters", filterValuesHandler(deps))
	api.GET("/products", productListHandler(deps))
	api.GET("/products/:id", productDetailHandler(deps))
	api.GET("/session", sessionHandler(deps))
	api.GET("/cart", cartListHandler(deps))
	api.POST("/cart/add", cartAddHandler(deps))
	api.POST("/cart/remove", cartRemoveHandler(deps))
	api.POST("/order", orderHandler(deps))
	api.GET("/cities", citiesHandler)
	api.POST("/callback", callbackHandler(deps, logger))

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
