package service

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/faideclothing/faide-store/internal/cart"
	"github.com/faideclothing/faide-store/internal/catalog"
	"github.com/faideclothing/faide-store/internal/handlers"
	"github.com/faideclothing/faide-store/internal/paypal"
	"github.com/faideclothing/faide-store/internal/session"
	"github.com/faideclothing/faide-store/views"
)

type Service struct {
	config         *Config
	catalog        *catalog.Catalog
	snapshots      cart.SnapshotStore
	sessions       *session.Manager
	paymentHandler *handlers.PaymentHandler
	paypalHandler  *handlers.PayPalHandler
	webhookHandler *handlers.WebhookHandler
}

func New(config *Config, cat *catalog.Catalog, snapshots cart.SnapshotStore) *Service {
	sessions := session.NewManager(config.Session.Secret)

	paymentHandler := handlers.NewPaymentHandler(handlers.PaymentConfig{
		StripeSecretKey: config.Stripe.SecretKey,
		SiteURL:         config.SiteURL,
		Currency:        config.Checkout.Currency,
		MinUnitAmount:   config.Checkout.MinUnitAmount,
		MaxQuantity:     config.Cart.MaxQuantity,
		ShippingCountry: config.Checkout.ShippingCountry,
	})

	paypalClient := paypal.NewClient(config.PayPal.ClientID, config.PayPal.ClientSecret, config.PayPal.Env)
	paypalHandler := handlers.NewPayPalHandler(paypalClient, sessions, snapshots, config.Checkout.Currency)

	return &Service{
		config:         config,
		catalog:        cat,
		snapshots:      snapshots,
		sessions:       sessions,
		paymentHandler: paymentHandler,
		paypalHandler:  paypalHandler,
		webhookHandler: handlers.NewWebhookHandler(config.Stripe.WebhookSecret),
	}
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	// Static files
	e.Static("/public", "public")

	// Storefront pages - a single index route dispatches on query params so
	// old deep links (/?page=product&id=3) keep working
	e.GET("/", s.handleIndex)

	// Legal pages
	e.GET("/privacy", s.handlePrivacy)
	e.GET("/terms", s.handleTerms)
	e.GET("/returns", s.handleReturns)
	e.GET("/shipping", s.handleShippingPolicy)

	// Cart API
	e.GET("/api/cart", s.handleGetCart)
	e.POST("/api/cart/items", s.handleAddItem)
	e.PUT("/api/cart/items/:key", s.handleUpdateItem)
	e.DELETE("/api/cart/items/:key", s.handleRemoveItem)
	e.DELETE("/api/cart", s.handleClearCart)

	// Visitor profile (prefill for the WhatsApp order form)
	e.GET("/api/profile", s.handleGetProfile)
	e.PUT("/api/profile", s.handlePutProfile)

	// Checkout
	e.POST("/api/create-checkout-session", s.paymentHandler.HandleCreateCheckoutSession)
	e.POST("/api/paypal-create-order", s.paypalHandler.HandleCreateOrder)
	e.POST("/api/paypal-capture-order", s.paypalHandler.HandleCaptureOrder)
	e.GET("/api/whatsapp-checkout", s.handleWhatsAppLink)
	e.GET("/api/whatsapp-checkout/qr", s.handleWhatsAppQR)
	e.GET("/api/order-form.pdf", s.handleOrderFormPDF)

	// Stripe webhook
	e.POST("/api/stripe/webhook", s.webhookHandler.HandleWebhook)

	// Health check
	e.GET("/health", s.handleHealth)
}

// handleIndex is the query-string router. ?page=lookbook and ?page=product
// render their own views; anything else falls through to the home page.
func (s *Service) handleIndex(c echo.Context) error {
	switch c.QueryParam("page") {
	case "lookbook":
		return s.handleLookbook(c)
	case "product":
		return s.handleProduct(c)
	default:
		return s.handleHome(c)
	}
}

func (s *Service) handleHome(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))

	products := s.catalog.Featured()
	if query != "" {
		products = s.catalog.Search(query)
	}

	return c.Render(http.StatusOK, "home", views.HomeData{
		Page:     views.Page{Title: "FAIDE", Query: query},
		Products: products,
		Lookbook: s.catalog.Lookbook,
	})
}

func (s *Service) handleLookbook(c echo.Context) error {
	requested, err := strconv.Atoi(c.QueryParam("i"))
	if err != nil {
		requested = 1
	}

	entry, index, total := s.catalog.LookbookImage(requested)

	prev := index - 1
	if prev < 1 {
		prev = total
	}
	next := index + 1
	if next > total {
		next = 1
	}

	return c.Render(http.StatusOK, "lookbook", views.LookbookData{
		Page:  views.Page{Title: "Lookbook | FAIDE"},
		Entry: entry,
		Index: index,
		Total: total,
		Prev:  prev,
		Next:  next,
	})
}

func (s *Service) handleProduct(c echo.Context) error {
	id := c.QueryParam("id")

	product, ok := s.catalog.ProductOrFirst(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no products available")
	}
	if id != "" && product.ID != id {
		slog.Debug("unknown product id, falling back to first product", "id", id)
	}

	thumbs := product.Images
	if len(thumbs) > 4 {
		thumbs = thumbs[:4]
	}

	return c.Render(http.StatusOK, "product", views.ProductData{
		Page:    views.Page{Title: product.Name + " | FAIDE"},
		Product: product,
		Thumbs:  thumbs,
	})
}

func (s *Service) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "ok",
		"products": len(s.catalog.Products),
	})
}
