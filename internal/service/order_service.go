package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"storefront/marketplace/internal/geo"
	"storefront/marketplace/internal/model"
)

// maxOrderDistance is the placement hard limit. The locator excludes stores
// at exactly DefaultRadius while placement allows exactly maxOrderDistance;
// the asymmetry matches the reference behavior and is kept deliberately.
const maxOrderDistance = 30.0

// OrderService runs the order placement pipeline.
type OrderService struct {
	repo    Repository
	counter *OrderCounter
	logger  *zap.Logger

	// now is swappable so tests can pin order timestamps.
	now func() time.Time
}

func NewOrderService(repo Repository, counter *OrderCounter, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		repo:    repo,
		counter: counter,
		logger:  logger,
		now:     time.Now,
	}
}

// PlaceOrder validates and persists an order. The gates run in sequence and
// the first failure aborts the rest. The checks and the insert are not one
// transaction; with a single interactive writer that is acceptable.
func (s *OrderService) PlaceOrder(ctx context.Context, userID, storeID int, productName string, quantity int) (*model.OrderReceipt, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%d: %w", quantity, ErrInvalidQuantity)
	}

	// 1. Resolve the requester's location
	userLat, userLon, err := s.repo.GetUserLocation(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}

	// 2. Resolve the target store
	store, err := s.repo.GetStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("store %d: %w", storeID, err)
	}

	// 3. Distance gate
	distance := geo.Distance(store.Latitude, store.Longitude, userLat, userLon)
	if distance > maxOrderDistance {
		return nil, fmt.Errorf("store %d at distance %.2f: %w", storeID, distance, ErrStoreTooFar)
	}

	// 4. Resolve the product
	product, err := s.repo.GetProduct(ctx, storeID, productName)
	if err != nil {
		return nil, fmt.Errorf("product %q at store %d: %w", productName, storeID, err)
	}

	// 5. Stock gate
	if product.Units == 0 {
		return nil, fmt.Errorf("product %q at store %d: %w", productName, storeID, ErrOutOfStock)
	}
	if quantity > product.Units {
		return nil, fmt.Errorf("requested %d of %d available: %w", quantity, product.Units, ErrInsufficientStock)
	}

	// 6. Allocate the order number
	number := s.counter.Next()

	// 7. Persist
	order := &model.Order{
		Number:      number,
		CustomerID:  userID,
		StoreID:     storeID,
		ProductName: productName,
		Units:       quantity,
		OrderedAt:   s.now(),
	}
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.Int("order_number", order.Number),
		zap.Int("customer_id", userID),
		zap.Int("store_id", storeID),
		zap.String("product", productName),
		zap.Int("units", quantity))

	return &model.OrderReceipt{
		OrderNumber: order.Number,
		CustomerID:  order.CustomerID,
		StoreID:     order.StoreID,
		ProductName: order.ProductName,
		Units:       order.Units,
		OrderedAt:   order.OrderedAt,
	}, nil
}
