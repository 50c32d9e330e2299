package routes

import (
	"context"
	"errors"
	"fmt"
	"log"

	"storefront/internal/adapter/persistence/repository"
	"storefront/internal/config"
	"storefront/internal/infrastructure/auth"
	"storefront/internal/infrastructure/database"
	"storefront/internal/infrastructure/email"
	"storefront/internal/infrastructure/events"
	"storefront/internal/infrastructure/payments"
	"storefront/internal/infrastructure/ratelimit"
	"storefront/internal/usecase"
	"storefront/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

type repositories struct {
	products    interfaces.IProductRepository
	orders      interfaces.IOrderRepository
	customers   interfaces.ICustomerRepository
	subscribers interfaces.ISubscriberRepository
}

// Wire builds the production dependency graph from cfg. The returned cleanup
// releases background workers and connections.
func Wire(ctx context.Context, cfg config.AppConfig) (Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	repos, closeRepos, err := openRepositories(ctx, cfg)
	if err != nil {
		return Dependencies{}, cleanup, err
	}
	closers = append(closers, closeRepos)

	limiter, closeLimiter := newRateLimiter(cfg)
	closers = append(closers, closeLimiter)

	publisher, closePublisher := newEventPublisher(cfg)
	closers = append(closers, closePublisher)

	authenticator, err := auth.ParseTokens(cfg.AdminTokens)
	if err != nil {
		return Dependencies{}, cleanup, err
	}

	mailer := newMailer(cfg)
	gateway := newPaymentGateway(cfg)
	// Only providers that notify with a bare payment id implement the lookup.
	lookup, _ := gateway.(interfaces.IPaymentStatusLookup)
	store := usecase.StoreInfo{Name: cfg.StoreName, URL: cfg.StoreURL, AdminEmail: cfg.AdminEmail}

	checkout := usecase.NewCheckoutUseCase(
		usecase.NewOrderValidator(repos.products, cfg.ShippingCost),
		usecase.NewOrderWriter(repos.orders, repos.customers),
		usecase.NewInventoryDecrementer(repos.products),
		repos.orders,
		gateway,
		publisher,
		cfg.PaymentCurrency,
	)

	deps := Dependencies{
		Checkout:      checkout,
		Webhook:       usecase.NewPaymentWebhookUseCase(payments.NewSignatureVerifier(cfg.PaymentWebhookSecret), repos.orders, mailer, publisher, store, lookup),
		Contact:       usecase.NewContactUseCase(mailer, store),
		Newsletter:    usecase.NewNewsletterUseCase(repos.subscribers),
		Catalog:       usecase.NewCatalogUseCase(repos.products),
		Notifications: usecase.NewOrderNotificationUseCase(repos.orders, mailer, publisher, store),
		Limiter:       limiter,
		Authenticator: authenticator,
		Limits: RateLimits{
			Checkout:   cfg.CheckoutRateLimit,
			Contact:    cfg.ContactRateLimit,
			Newsletter: cfg.NewsletterRateLimit,
			Window:     cfg.RateLimitWindow,
		},
		TrustedProxies: cfg.TrustedProxies,
	}
	return deps, cleanup, nil
}

func openRepositories(ctx context.Context, cfg config.AppConfig) (repositories, func(), error) {
	switch cfg.StorageDriver {
	case "sqlite":
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return repositories{}, func() {}, err
		}
		if err := repository.AutoMigrate(db); err != nil {
			return repositories{}, func() {}, fmt.Errorf("migrate sqlite: %w", err)
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		log.Printf("[storage] sqlite path=%s", cfg.SQLitePath)
		return repositories{
			products:    repository.NewProductGormRepository(db),
			orders:      repository.NewOrderGormRepository(db),
			customers:   repository.NewCustomerGormRepository(db),
			subscribers: repository.NewSubscriberGormRepository(db),
		}, closeDB, nil
	case "dynamodb":
		ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBOptions{
			Region:   cfg.AWSRegion,
			Endpoint: cfg.DynamoDBEndpoint,
		})
		if err != nil {
			return repositories{}, func() {}, err
		}
		log.Printf("[storage] dynamodb region=%s endpoint=%q", cfg.AWSRegion, cfg.DynamoDBEndpoint)
		return repositories{
			products:    repository.NewProductDynamoRepository(ddb, cfg.Tables.Products),
			orders:      repository.NewOrderDynamoRepository(ddb, cfg.Tables.Orders, cfg.Tables.OrderItems),
			customers:   repository.NewCustomerDynamoRepository(ddb, cfg.Tables.Customers),
			subscribers: repository.NewSubscriberDynamoRepository(ddb, cfg.Tables.Subscribers),
		}, func() {}, nil
	default:
		return repositories{}, func() {}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func newRateLimiter(cfg config.AppConfig) (interfaces.IRateLimiter, func()) {
	if cfg.RateLimitBackend == "redis" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		log.Printf("[ratelimit] redis addr=%s db=%d", cfg.RedisAddr, cfg.RedisDB)
		return ratelimit.NewRedisLimiter(rdb, ""), func() { _ = rdb.Close() }
	}
	l := ratelimit.NewSlidingWindowLimiter()
	l.Start()
	return l, l.Stop
}

func newEventPublisher(cfg config.AppConfig) (interfaces.IOrderEventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		return events.NoopPublisher{}, func() {}
	}
	p := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
	log.Printf("[events] kafka brokers=%v topic=%s", cfg.KafkaBrokers, cfg.KafkaOrderTopic)
	return p, func() {
		if err := p.Close(); err != nil {
			log.Printf("[events] kafka close: %v", err)
		}
	}
}

func newMailer(cfg config.AppConfig) interfaces.IMailer {
	m, err := email.NewHTTPMailer(cfg.EmailAPIURL, cfg.EmailAPIKey, cfg.EmailFrom, nil)
	if err != nil {
		if errors.Is(err, email.ErrMissingAPIKey) {
			log.Printf("[email] EMAIL_API_KEY not set; emails will only be logged")
		} else {
			log.Printf("[email] mailer not configured: %v; emails will only be logged", err)
		}
		return email.LogMailer{}
	}
	return m
}

// newPaymentGateway returns nil when the provider is not configured; hosted
// payment sessions then answer 503.
func newPaymentGateway(cfg config.AppConfig) interfaces.IPaymentGateway {
	g, err := payments.NewGateway(payments.GatewayConfig{
		Provider:               cfg.PaymentProvider,
		APIURL:                 cfg.PaymentAPIURL,
		APISecret:              cfg.PaymentAPISecret,
		RedirectURL:            cfg.PaymentRedirectURL,
		NotificationURL:        cfg.PaymentNotificationURL,
		MercadoPagoAccessToken: cfg.MercadoPagoAccessToken,
		Mock:                   cfg.PaymentGatewayMock,
	})
	if err != nil {
		log.Printf("[payment] gateway not configured: %v", err)
		return nil
	}
	return g
}
