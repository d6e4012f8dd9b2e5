package service

import (
	"os"
	"strconv"
)

type Config struct {
	Environment string
	Port        string
	BaseURL     string
	SiteURL     string
	DBPath      string

	Session struct {
		Secret string
	}

	Catalog struct {
		Source string
	}

	Cart struct {
		Backend     string // "sqlite" or "redis"
		MaxQuantity int64
	}

	Redis struct {
		Addr string
	}

	Checkout struct {
		Currency        string
		MinUnitAmount   int64
		ShippingCountry string
		WhatsAppNumber  string
	}

	Stripe struct {
		PublishableKey string
		SecretKey      string
		WebhookSecret  string
	}

	PayPal struct {
		ClientID     string
		ClientSecret string
		Env          string
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		SiteURL:     getEnv("SITE_URL", ""),
		DBPath:      getEnv("DB_PATH", "./db/faide.db"),
	}

	// Session
	config.Session.Secret = getEnv("SESSION_SECRET", "development-secret")

	// Catalog
	config.Catalog.Source = getEnv("CATALOG_SOURCE", "./public/assets/products.json")

	// Cart
	config.Cart.Backend = getEnv("CART_BACKEND", "sqlite")
	config.Cart.MaxQuantity = getEnvInt64("CART_MAX_QUANTITY", 99)

	// Redis
	config.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")

	// Checkout
	config.Checkout.Currency = getEnv("CHECKOUT_CURRENCY", "zar")
	config.Checkout.MinUnitAmount = getEnvInt64("CHECKOUT_MIN_UNIT_AMOUNT", 50)
	config.Checkout.ShippingCountry = getEnv("CHECKOUT_SHIPPING_COUNTRY", "ZA")
	config.Checkout.WhatsAppNumber = getEnv("WHATSAPP_NUMBER", "27695603929")

	// Stripe
	config.Stripe.PublishableKey = getEnv("STRIPE_PUBLISHABLE_KEY", "")
	config.Stripe.SecretKey = getEnv("STRIPE_SECRET_KEY", "")
	config.Stripe.WebhookSecret = getEnv("STRIPE_WEBHOOK_SECRET", "")

	// PayPal
	config.PayPal.ClientID = getEnv("PAYPAL_CLIENT_ID", "")
	config.PayPal.ClientSecret = getEnv("PAYPAL_CLIENT_SECRET", "")
	config.PayPal.Env = getEnv("PAYPAL_ENV", "live")

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
