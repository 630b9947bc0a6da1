package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"storefront/marketplace/internal/geo"
	"storefront/marketplace/internal/model"
)

const (
	// DefaultRadius bounds the store locator's geofilter, in grid miles.
	DefaultRadius = 30.0

	// ReportLimit caps the recent-orders and popularity reports.
	ReportLimit = 5
)

// MarketService covers accounts, store discovery, the catalog, and the
// manager-side analytics and inventory operations.
type MarketService struct {
	repo   Repository
	logger *zap.Logger
}

func NewMarketService(repo Repository, logger *zap.Logger) *MarketService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarketService{repo: repo, logger: logger}
}

// Register creates a customer account. Coordinates live on the [0,100] grid.
func (s *MarketService) Register(ctx context.Context, name, password string, latitude, longitude float64) error {
	if name == "" || password == "" {
		return fmt.Errorf("name and password are required")
	}
	if latitude < 0 || latitude > 100 || longitude < 0 || longitude > 100 {
		return fmt.Errorf("(%v, %v): %w", latitude, longitude, ErrInvalidCoordinates)
	}
	if err := s.repo.CreateUser(ctx, name, password, latitude, longitude, model.RoleCustomer); err != nil {
		return err
	}
	s.logger.Info("user registered", zap.String("name", name))
	return nil
}

// Login resolves credentials to a user. A miss is a typed error, never a
// fault on an empty row set.
func (s *MarketService) Login(ctx context.Context, name, password string) (*model.User, error) {
	u, err := s.repo.AuthenticateUser(ctx, name, password)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user logged in", zap.Int("user_id", u.ID), zap.String("role", u.Role))
	return u, nil
}

// NearbyStores lists the stores within radius of the user, in the order the
// store table returns them. A store at exactly radius is excluded.
func (s *MarketService) NearbyStores(ctx context.Context, userID int, radius float64) ([]model.StoreDistance, error) {
	if radius <= 0 {
		radius = DefaultRadius
	}
	userLat, userLon, err := s.repo.GetUserLocation(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}
	stores, err := s.repo.ListStores(ctx)
	if err != nil {
		return nil, err
	}

	var nearby []model.StoreDistance
	for _, st := range stores {
		d := geo.Distance(st.Latitude, st.Longitude, userLat, userLon)
		if d < radius {
			nearby = append(nearby, model.StoreDistance{StoreID: st.ID, Distance: d})
		}
	}
	return nearby, nil
}

// StoreProducts lists the inventory of one store.
func (s *MarketService) StoreProducts(ctx context.Context, storeID int) ([]model.Product, error) {
	return s.repo.ListProducts(ctx, storeID)
}

// RecentOrders returns the customer's five most recent orders.
func (s *MarketService) RecentOrders(ctx context.Context, customerID int) ([]model.Order, error) {
	return s.repo.RecentOrders(ctx, customerID, ReportLimit)
}

// ManagedStores lists the store ids the actor manages.
func (s *MarketService) ManagedStores(ctx context.Context, actor *model.User) ([]int, error) {
	if actor.Role != model.RoleManager {
		return nil, ErrPermissionDenied
	}
	return s.repo.StoresManagedBy(ctx, actor.ID)
}

// UpdateProduct sets a product's unit count and price at a store the actor
// manages, and appends an audit row.
func (s *MarketService) UpdateProduct(ctx context.Context, actor *model.User, storeID int, productName string, units int, price float64) error {
	if err := s.requireManagedStore(ctx, actor, storeID); err != nil {
		return err
	}
	if units < 0 || price < 0 {
		return fmt.Errorf("units and price must be non-negative")
	}
	if err := s.repo.UpdateProduct(ctx, storeID, productName, units, price); err != nil {
		return fmt.Errorf("product %q at store %d: %w", productName, storeID, err)
	}
	if err := s.repo.RecordProductUpdate(ctx, actor.ID, storeID, productName, time.Now()); err != nil {
		return err
	}
	s.logger.Info("product updated",
		zap.Int("manager_id", actor.ID),
		zap.Int("store_id", storeID),
		zap.String("product", productName),
		zap.Int("units", units),
		zap.Float64("price", price))
	return nil
}

// RecentProductUpdates returns the actor's five latest product updates.
func (s *MarketService) RecentProductUpdates(ctx context.Context, actor *model.User) ([]model.ProductUpdate, error) {
	if actor.Role != model.RoleManager {
		return nil, ErrPermissionDenied
	}
	return s.repo.RecentProductUpdates(ctx, actor.ID, ReportLimit)
}

// PopularProducts reports the top sellers at a store the actor manages.
func (s *MarketService) PopularProducts(ctx context.Context, actor *model.User, storeID int) ([]model.ProductPopularity, error) {
	if err := s.requireManagedStore(ctx, actor, storeID); err != nil {
		return nil, err
	}
	return s.repo.PopularProducts(ctx, storeID, ReportLimit)
}

// PopularCustomers reports the most frequent customers at a store the actor
// manages.
func (s *MarketService) PopularCustomers(ctx context.Context, actor *model.User, storeID int) ([]model.CustomerPopularity, error) {
	if err := s.requireManagedStore(ctx, actor, storeID); err != nil {
		return nil, err
	}
	return s.repo.PopularCustomers(ctx, storeID, ReportLimit)
}

// RequestSupply records a warehouse supply request and credits the units to
// the store's inventory. The reference schema fulfills requests immediately.
func (s *MarketService) RequestSupply(ctx context.Context, actor *model.User, storeID, warehouseID int, productName string, units int) error {
	if err := s.requireManagedStore(ctx, actor, storeID); err != nil {
		return err
	}
	if units <= 0 {
		return fmt.Errorf("%d: %w", units, ErrInvalidQuantity)
	}
	req := &model.SupplyRequest{
		ManagerID:   actor.ID,
		WarehouseID: warehouseID,
		StoreID:     storeID,
		ProductName: productName,
		Units:       units,
	}
	if err := s.repo.CreateSupplyRequest(ctx, req); err != nil {
		return err
	}
	if err := s.repo.AddProductUnits(ctx, storeID, productName, units); err != nil {
		return fmt.Errorf("product %q at store %d: %w", productName, storeID, err)
	}
	s.logger.Info("supply requested",
		zap.Int("manager_id", actor.ID),
		zap.Int("store_id", storeID),
		zap.Int("warehouse_id", warehouseID),
		zap.String("product", productName),
		zap.Int("units", units))
	return nil
}

func (s *MarketService) requireManagedStore(ctx context.Context, actor *model.User, storeID int) error {
	if actor.Role != model.RoleManager {
		return ErrPermissionDenied
	}
	st, err := s.repo.GetStore(ctx, storeID)
	if err != nil {
		return fmt.Errorf("store %d: %w", storeID, err)
	}
	if st.ManagerID != actor.ID {
		return fmt.Errorf("store %d: %w", storeID, ErrNotManagedStore)
	}
	return nil
}
