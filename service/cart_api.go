package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/faideclothing/faide-store/internal/cart"
	"github.com/faideclothing/faide-store/views/helpers"
)

type cartResponse struct {
	Items      []cart.LineItem `json:"items"`
	TotalCents int64           `json:"total_cents"`
	Total      string          `json:"total"`
	ItemCount  int64           `json:"item_count"`
	Toast      string          `json:"toast,omitempty"`
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int64  `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int64 `json:"quantity"`
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// loadCart resolves the visitor and decodes their persisted cart. A missing
// or corrupt snapshot yields an empty cart rather than an error.
func (s *Service) loadCart(c echo.Context) (*cart.Cart, string, error) {
	visitorID, err := s.sessions.VisitorID(c)
	if err != nil {
		return nil, "", err
	}

	payload, err := s.snapshots.Get(c.Request().Context(), cart.CartKeyPrefix+visitorID)
	if err != nil {
		return nil, "", err
	}

	return cart.DecodeSnapshot(payload), visitorID, nil
}

func (s *Service) saveCart(c echo.Context, visitorID string, ct *cart.Cart) error {
	payload, err := ct.Encode()
	if err != nil {
		return err
	}
	return s.snapshots.Put(c.Request().Context(), cart.CartKeyPrefix+visitorID, payload)
}

func (s *Service) respondCart(c echo.Context, ct *cart.Cart, toast string) error {
	total, count := ct.Totals()
	return c.JSON(http.StatusOK, cartResponse{
		Items:      ct.Items(),
		TotalCents: total,
		Total:      helpers.FormatPrice(total),
		ItemCount:  count,
		Toast:      toast,
	})
}

func (s *Service) handleGetCart(c echo.Context) error {
	ct, _, err := s.loadCart(c)
	if err != nil {
		slog.Error("failed to load cart", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to load cart")
	}
	return s.respondCart(c, ct, "")
}

func (s *Service) handleAddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	product, ok := s.catalog.Product(req.ProductID)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "Unknown product")
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity > s.config.Cart.MaxQuantity {
		req.Quantity = s.config.Cart.MaxQuantity
	}

	ct, visitorID, err := s.loadCart(c)
	if err != nil {
		slog.Error("failed to load cart", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to load cart")
	}

	item, err := ct.Add(cart.ItemParams{
		ProductID:  product.ID,
		Name:       product.Name,
		PriceCents: product.PriceCents,
		Size:       req.Size,
		Color:      req.Color,
		Quantity:   req.Quantity,
		Image:      product.PrimaryImage(),
	})
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrMissingSize):
			return errorJSON(c, http.StatusBadRequest, "Select a size first.")
		case errors.Is(err, cart.ErrMissingColor):
			return errorJSON(c, http.StatusBadRequest, "Select a color first.")
		case errors.Is(err, cart.ErrInvalidQuantity):
			return errorJSON(c, http.StatusBadRequest, "Invalid quantity")
		default:
			slog.Error("failed to add cart item", "error", err, "product_id", req.ProductID)
			return errorJSON(c, http.StatusInternalServerError, "Failed to update cart")
		}
	}

	// Merged lines can exceed the per-line cap; clamp after the merge
	if item.Quantity > s.config.Cart.MaxQuantity {
		item, _ = ct.SetQuantity(item.Key, s.config.Cart.MaxQuantity)
	}

	if err := s.saveCart(c, visitorID, ct); err != nil {
		slog.Error("failed to save cart", "error", err, "visitor_id", visitorID)
		return errorJSON(c, http.StatusInternalServerError, "Failed to save cart")
	}

	return s.respondCart(c, ct, cart.AddedToast(req.Quantity, product.Name, req.Size, req.Color))
}

func (s *Service) handleUpdateItem(c echo.Context) error {
	key := c.Param("key")

	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	quantity := req.Quantity
	if quantity > s.config.Cart.MaxQuantity {
		quantity = s.config.Cart.MaxQuantity
	}

	ct, visitorID, err := s.loadCart(c)
	if err != nil {
		slog.Error("failed to load cart", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to load cart")
	}

	if _, ok := ct.SetQuantity(key, quantity); !ok {
		return errorJSON(c, http.StatusNotFound, "Item not in cart")
	}

	if err := s.saveCart(c, visitorID, ct); err != nil {
		slog.Error("failed to save cart", "error", err, "visitor_id", visitorID)
		return errorJSON(c, http.StatusInternalServerError, "Failed to save cart")
	}

	return s.respondCart(c, ct, "")
}

func (s *Service) handleRemoveItem(c echo.Context) error {
	key := c.Param("key")

	ct, visitorID, err := s.loadCart(c)
	if err != nil {
		slog.Error("failed to load cart", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to load cart")
	}

	if !ct.Remove(key) {
		return errorJSON(c, http.StatusNotFound, "Item not in cart")
	}

	if err := s.saveCart(c, visitorID, ct); err != nil {
		slog.Error("failed to save cart", "error", err, "visitor_id", visitorID)
		return errorJSON(c, http.StatusInternalServerError, "Failed to save cart")
	}

	return s.respondCart(c, ct, "")
}

func (s *Service) handleClearCart(c echo.Context) error {
	visitorID, err := s.sessions.VisitorID(c)
	if err != nil {
		slog.Error("failed to resolve visitor", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to load cart")
	}

	if err := s.snapshots.Delete(c.Request().Context(), cart.CartKeyPrefix+visitorID); err != nil {
		slog.Error("failed to clear cart", "error", err, "visitor_id", visitorID)
		return errorJSON(c, http.StatusInternalServerError, "Failed to clear cart")
	}

	return s.respondCart(c, cart.New(), "")
}

// Profile is the delivery prefill a visitor fills in once.
type Profile struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (s *Service) handleGetProfile(c echo.Context) error {
	visitorID, err := s.sessions.VisitorID(c)
	if err != nil {
		slog.Error("failed to resolve visitor", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to load profile")
	}

	payload, err := s.snapshots.Get(c.Request().Context(), cart.ProfileKeyPrefix+visitorID)
	if err != nil {
		slog.Error("failed to load profile", "error", err, "visitor_id", visitorID)
		return errorJSON(c, http.StatusInternalServerError, "Failed to load profile")
	}

	var profile Profile
	if len(payload) > 0 {
		// A corrupt snapshot just means an empty profile
		if err := json.Unmarshal(payload, &profile); err != nil {
			slog.Warn("discarding corrupt profile snapshot", "visitor_id", visitorID, "error", err)
			profile = Profile{}
		}
	}

	return c.JSON(http.StatusOK, profile)
}

func (s *Service) handlePutProfile(c echo.Context) error {
	var profile Profile
	if err := c.Bind(&profile); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	visitorID, err := s.sessions.VisitorID(c)
	if err != nil {
		slog.Error("failed to resolve visitor", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to save profile")
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	if err := s.snapshots.Put(c.Request().Context(), cart.ProfileKeyPrefix+visitorID, payload); err != nil {
		slog.Error("failed to save profile", "error", err, "visitor_id", visitorID)
		return errorJSON(c, http.StatusInternalServerError, "Failed to save profile")
	}

	return c.JSON(http.StatusOK, profile)
}
