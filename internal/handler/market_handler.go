package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"storefront/marketplace/internal/model"
	"storefront/marketplace/internal/service"
)

// Browser is the read side of the marketplace exposed over HTTP.
type Browser interface {
	NearbyStores(ctx context.Context, userID int, radius float64) ([]model.StoreDistance, error)
	StoreProducts(ctx context.Context, storeID int) ([]model.Product, error)
	RecentOrders(ctx context.Context, customerID int) ([]model.Order, error)
}

// OrderPlacer is the write side.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, userID, storeID int, productName string, quantity int) (*model.OrderReceipt, error)
}

type MarketHandler struct {
	market Browser
	orders OrderPlacer
}

func NewMarketHandler(market Browser, orders OrderPlacer) *MarketHandler {
	return &MarketHandler{market: market, orders: orders}
}

func (h *MarketHandler) NearbyStores(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	radius := service.DefaultRadius
	if raw := r.URL.Query().Get("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			http.Error(w, "invalid radius", http.StatusBadRequest)
			return
		}
	}

	stores, err := h.market.NearbyStores(r.Context(), userID, radius)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stores)
}

func (h *MarketHandler) StoreProducts(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.Atoi(chi.URLParam(r, "storeID"))
	if err != nil {
		http.Error(w, "invalid store id", http.StatusBadRequest)
		return
	}
	products, err := h.market.StoreProducts(r.Context(), storeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *MarketHandler) RecentOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	orders, err := h.market.RecentOrders(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type PlaceOrderRequest struct {
	UserID      int    `json:"user_id"`
	StoreID     int    `json:"store_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"` // Optional, defaults to 1 if 0
}

func (h *MarketHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	receipt, err := h.orders.PlaceOrder(r.Context(), req.UserID, req.StoreID, req.ProductName, quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrStoreNotFound),
		errors.Is(err, model.ErrProductNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrStoreTooFar),
		errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidQuantity):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		// Log error internally in production
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
