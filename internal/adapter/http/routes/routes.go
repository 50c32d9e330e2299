package routes

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "storefront/docs"
	"storefront/internal/adapter/http/handlers"
	"storefront/internal/adapter/http/middleware"
	"storefront/internal/config"
	"storefront/internal/usecase"
	"storefront/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 5 * time.Second

// RateLimits are the per-client budgets of the public write endpoints.
type RateLimits struct {
	Checkout   int
	Contact    int
	Newsletter int
	Window     time.Duration
}

// Dependencies is everything the router needs. Built by Wire in production
// and by hand in tests.
type Dependencies struct {
	Checkout      usecase.ICheckoutUseCase
	Webhook       usecase.IPaymentWebhookUseCase
	Contact       usecase.IContactUseCase
	Newsletter    usecase.INewsletterUseCase
	Catalog       usecase.ICatalogUseCase
	Notifications usecase.IOrderNotificationUseCase
	Limiter       interfaces.IRateLimiter
	Authenticator interfaces.IAuthenticator
	Limits        RateLimits

	// TrustedProxies are the only peers allowed to set X-Forwarded-For.
	// Nil keys rate limits on the connection address.
	TrustedProxies []string
}

// Run will start the server and block until SIGINT or SIGTERM.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	deps, cleanup, err := Wire(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to build dependencies: %v", err)
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[http] listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to startup the application: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[http] shutdown: %v", err)
	}
	log.Printf("[http] stopped")
}

// NewRouter mounts every route under /v1 plus the swagger UI.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(deps.TrustedProxies); err != nil {
		log.Printf("[http] invalid trusted proxies %v: %v; forwarded headers ignored", deps.TrustedProxies, err)
		_ = router.SetTrustedProxies(nil)
	}
	setMiddlewares(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addCatalogRoutes(v1, handlers.NewCatalogHandler(deps.Catalog))
	addCheckoutRoutes(v1, handlers.NewCheckoutHandler(deps.Checkout), deps.Limiter, deps.Limits)
	addWebhookRoutes(v1, handlers.NewPaymentWebhookHandler(deps.Webhook))
	addContactRoutes(v1,
		handlers.NewContactHandler(deps.Contact),
		handlers.NewNewsletterHandler(deps.Newsletter),
		deps.Limiter, deps.Limits)
	addAdminRoutes(v1, handlers.NewAdminOrderHandler(deps.Notifications), deps.Authenticator)
	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(middleware.Recovery())
}
