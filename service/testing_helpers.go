package service

import (
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/faideclothing/faide-store/internal/catalog"
	"github.com/faideclothing/faide-store/storage"
	"github.com/faideclothing/faide-store/views"
)

// testCatalog returns a small fixed catalog so tests don't touch the filesystem.
func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Currency: "zar",
		Products: []catalog.Product{
			{
				ID:         "1",
				Name:       "Original Tee",
				Category:   "tees",
				PriceCents: 55000,
				Sizes:      []string{"S", "M", "L", "XL"},
				Colors:     []string{"Black", "White"},
				Images:     []string{"/public/assets/img/tee.jpg"},
				Label:      "New Drop",
				Rank:       1,
			},
			{
				ID:         "2",
				Name:       "Logo Hoodie",
				Category:   "hoodies",
				PriceCents: 110000,
				Sizes:      []string{"S", "M", "L"},
				Colors:     []string{"Black", "Grey"},
				Images:     []string{"/public/assets/img/hoodie.jpg"},
			},
		},
		Lookbook: []catalog.LookbookEntry{
			{Index: 1, Image: "/public/assets/img/look-1.jpg", Alt: "Look 1"},
			{Index: 2, Image: "/public/assets/img/look-2.jpg", Alt: "Look 2"},
			{Index: 3, Image: "/public/assets/img/look-3.jpg", Alt: "Look 3"},
		},
	}
}

// setupTestService creates a service backed by an in-memory database.
func setupTestService(t *testing.T) *Service {
	t.Helper()

	_, queries, cleanup, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(cleanup)

	config := &Config{
		Environment: "test",
		Port:        "8080",
	}
	config.Session.Secret = "test-session-secret"
	config.Cart.MaxQuantity = 99
	config.Checkout.Currency = "zar"
	config.Checkout.MinUnitAmount = 50
	config.Checkout.ShippingCountry = "ZA"
	config.Checkout.WhatsAppNumber = "27695603929"

	return New(config, testCatalog(), storage.NewSnapshots(queries))
}

// setupTestEcho creates an Echo instance with the renderer and routes wired.
func setupTestEcho(t *testing.T) (*echo.Echo, *Service) {
	t.Helper()

	e := echo.New()

	renderer, err := views.NewRenderer()
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}
	e.Renderer = renderer

	svc := setupTestService(t)
	svc.RegisterRoutes(e)

	return e, svc
}
