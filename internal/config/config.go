package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/config.yaml"

// Tables names the DynamoDB tables used by the document-store repositories.
type Tables struct {
	Products    string `yaml:"products"`
	Orders      string `yaml:"orders"`
	OrderItems  string `yaml:"order_items"`
	Customers   string `yaml:"customers"`
	Subscribers string `yaml:"subscribers"`
}

// AppConfig holds every runtime setting of the API and migrate commands.
type AppConfig struct {
	HTTPAddr string `yaml:"http_addr"`

	// TrustedProxies lists the proxy addresses or CIDRs whose
	// X-Forwarded-For header is honoured. Empty means the peer address is used.
	TrustedProxies []string `yaml:"trusted_proxies"`

	StorageDriver    string `yaml:"storage_driver"`
	SQLitePath       string `yaml:"sqlite_path"`
	AWSRegion        string `yaml:"aws_region"`
	DynamoDBEndpoint string `yaml:"dynamodb_endpoint"`
	Tables           Tables `yaml:"tables"`

	RateLimitBackend    string        `yaml:"rate_limit_backend"`
	RedisAddr           string        `yaml:"redis_addr"`
	RedisDB             int           `yaml:"redis_db"`
	CheckoutRateLimit   int           `yaml:"checkout_rate_limit"`
	ContactRateLimit    int           `yaml:"contact_rate_limit"`
	NewsletterRateLimit int           `yaml:"newsletter_rate_limit"`
	RateLimitWindowSec  int           `yaml:"rate_limit_window_sec"`
	RateLimitWindow     time.Duration `yaml:"-"`

	ShippingCost decimal.Decimal `yaml:"-"`
	ShippingRaw  string          `yaml:"shipping_cost"`

	PaymentProvider        string `yaml:"payment_provider"`
	PaymentAPIURL          string `yaml:"payment_api_url"`
	PaymentAPISecret       string `yaml:"payment_api_secret"`
	PaymentCurrency        string `yaml:"payment_currency"`
	PaymentRedirectURL     string `yaml:"payment_redirect_url"`
	PaymentNotificationURL string `yaml:"payment_notification_url"`
	PaymentWebhookSecret   string `yaml:"payment_webhook_secret"`
	MercadoPagoAccessToken string `yaml:"mercadopago_access_token"`
	PaymentGatewayMock     bool   `yaml:"payment_gateway_mock"`

	EmailAPIURL string `yaml:"email_api_url"`
	EmailAPIKey string `yaml:"email_api_key"`
	EmailFrom   string `yaml:"email_from"`
	AdminEmail  string `yaml:"admin_email"`
	AdminTokens string `yaml:"admin_tokens"`

	KafkaBrokers    []string `yaml:"kafka_brokers"`
	KafkaOrderTopic string   `yaml:"kafka_order_topic"`

	StoreName string `yaml:"store_name"`
	StoreURL  string `yaml:"store_url"`
}

func defaults() AppConfig {
	return AppConfig{
		HTTPAddr:      ":8080",
		StorageDriver: "dynamodb",
		SQLitePath:    "storefront.db",
		AWSRegion:     "us-east-1",
		Tables: Tables{
			Products:    "products",
			Orders:      "orders",
			OrderItems:  "order_items",
			Customers:   "customers",
			Subscribers: "newsletter_subscribers",
		},
		RateLimitBackend:    "memory",
		RedisAddr:           "localhost:6379",
		CheckoutRateLimit:   10,
		ContactRateLimit:    5,
		NewsletterRateLimit: 5,
		RateLimitWindowSec:  60,
		ShippingRaw:         "0",
		PaymentProvider:     "revolut",
		PaymentAPIURL:       "https://sandbox-merchant.revolut.com",
		PaymentCurrency:     "GBP",
		KafkaOrderTopic:     "storefront.orders",
		StoreName:           "Appliance Store",
		StoreURL:            "http://localhost:3000",
	}
}

// Load reads the optional YAML file at CONFIG_PATH (default
// configs/config.yaml), applies environment overrides and validates.
func Load() (AppConfig, error) {
	path := getEnv("CONFIG_PATH", defaultConfigPath)
	return LoadFile(path)
}

// LoadFile is Load with an explicit path. A missing file is not an error.
func LoadFile(path string) (AppConfig, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return AppConfig{}, fmt.Errorf("read %s: %w", path, err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return AppConfig{}, err
	}
	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) error {
	cfg.HTTPAddr = getEnv("HTTP_ADDR", cfg.HTTPAddr)
	if v := getEnv("TRUSTED_PROXIES", ""); v != "" {
		cfg.TrustedProxies = splitCSV(v)
	}
	cfg.StorageDriver = strings.ToLower(getEnv("STORAGE_DRIVER", cfg.StorageDriver))
	cfg.SQLitePath = getEnv("SQLITE_PATH", cfg.SQLitePath)
	cfg.AWSRegion = getEnv("AWS_REGION", cfg.AWSRegion)
	cfg.DynamoDBEndpoint = getEnv("DYNAMODB_ENDPOINT", cfg.DynamoDBEndpoint)
	cfg.Tables.Products = getEnv("PRODUCTS_TABLE", cfg.Tables.Products)
	cfg.Tables.Orders = getEnv("ORDERS_TABLE", cfg.Tables.Orders)
	cfg.Tables.OrderItems = getEnv("ORDER_ITEMS_TABLE", cfg.Tables.OrderItems)
	cfg.Tables.Customers = getEnv("CUSTOMERS_TABLE", cfg.Tables.Customers)
	cfg.Tables.Subscribers = getEnv("SUBSCRIBERS_TABLE", cfg.Tables.Subscribers)

	cfg.RateLimitBackend = strings.ToLower(getEnv("RATE_LIMIT_BACKEND", cfg.RateLimitBackend))
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)

	ints := []struct {
		key string
		dst *int
	}{
		{"REDIS_DB", &cfg.RedisDB},
		{"CHECKOUT_RATE_LIMIT", &cfg.CheckoutRateLimit},
		{"CONTACT_RATE_LIMIT", &cfg.ContactRateLimit},
		{"NEWSLETTER_RATE_LIMIT", &cfg.NewsletterRateLimit},
		{"RATE_LIMIT_WINDOW_SEC", &cfg.RateLimitWindowSec},
	}
	for _, it := range ints {
		v, err := getEnvInt(it.key, *it.dst)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", it.key, err)
		}
		*it.dst = v
	}

	cfg.ShippingRaw = getEnv("SHIPPING_COST", cfg.ShippingRaw)

	cfg.PaymentProvider = strings.ToLower(getEnv("PAYMENT_PROVIDER", cfg.PaymentProvider))
	cfg.PaymentAPIURL = getEnv("PAYMENT_API_URL", cfg.PaymentAPIURL)
	cfg.PaymentAPISecret = getEnv("PAYMENT_API_SECRET", cfg.PaymentAPISecret)
	cfg.PaymentCurrency = strings.ToUpper(getEnv("PAYMENT_CURRENCY", cfg.PaymentCurrency))
	cfg.PaymentRedirectURL = getEnv("PAYMENT_REDIRECT_URL", cfg.PaymentRedirectURL)
	cfg.PaymentNotificationURL = getEnv("PAYMENT_NOTIFICATION_URL", cfg.PaymentNotificationURL)
	cfg.PaymentWebhookSecret = getEnv("PAYMENT_WEBHOOK_SECRET", cfg.PaymentWebhookSecret)
	cfg.MercadoPagoAccessToken = getEnv("MERCADOPAGO_ACCESS_TOKEN", cfg.MercadoPagoAccessToken)
	cfg.PaymentGatewayMock = getEnvBool("PAYMENT_GATEWAY_MOCK", cfg.PaymentGatewayMock)

	cfg.EmailAPIURL = getEnv("EMAIL_API_URL", cfg.EmailAPIURL)
	cfg.EmailAPIKey = getEnv("EMAIL_API_KEY", cfg.EmailAPIKey)
	cfg.EmailFrom = getEnv("EMAIL_FROM", cfg.EmailFrom)
	cfg.AdminEmail = getEnv("ADMIN_EMAIL", cfg.AdminEmail)
	cfg.AdminTokens = getEnv("ADMIN_TOKENS", cfg.AdminTokens)

	if v := getEnv("KAFKA_BROKERS", ""); v != "" {
		cfg.KafkaBrokers = splitCSV(v)
	}
	cfg.KafkaOrderTopic = getEnv("KAFKA_ORDER_TOPIC", cfg.KafkaOrderTopic)

	cfg.StoreName = getEnv("STORE_NAME", cfg.StoreName)
	cfg.StoreURL = getEnv("STORE_URL", cfg.StoreURL)
	return nil
}

func (c *AppConfig) validate() error {
	switch c.StorageDriver {
	case "dynamodb":
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must not be empty")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be dynamodb or sqlite, got %q", c.StorageDriver)
	}

	switch c.RateLimitBackend {
	case "memory":
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR must not be empty")
		}
	default:
		return fmt.Errorf("RATE_LIMIT_BACKEND must be memory or redis, got %q", c.RateLimitBackend)
	}

	for key, v := range map[string]int{
		"CHECKOUT_RATE_LIMIT":   c.CheckoutRateLimit,
		"CONTACT_RATE_LIMIT":    c.ContactRateLimit,
		"NEWSLETTER_RATE_LIMIT": c.NewsletterRateLimit,
		"RATE_LIMIT_WINDOW_SEC": c.RateLimitWindowSec,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be > 0", key)
		}
	}
	c.RateLimitWindow = time.Duration(c.RateLimitWindowSec) * time.Second

	shipping, err := decimal.NewFromString(strings.TrimSpace(c.ShippingRaw))
	if err != nil {
		return fmt.Errorf("invalid SHIPPING_COST: %w", err)
	}
	if shipping.IsNegative() {
		return fmt.Errorf("SHIPPING_COST must be >= 0")
	}
	c.ShippingCost = shipping

	switch c.PaymentProvider {
	case "revolut", "mercadopago":
	default:
		return fmt.Errorf("PAYMENT_PROVIDER must be revolut or mercadopago, got %q", c.PaymentProvider)
	}
	if len(c.PaymentCurrency) != 3 {
		return fmt.Errorf("PAYMENT_CURRENCY must be an ISO 4217 code, got %q", c.PaymentCurrency)
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaOrderTopic == "" {
		return fmt.Errorf("KAFKA_ORDER_TOPIC must not be empty when KAFKA_BROKERS is set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
