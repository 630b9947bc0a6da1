package service

import (
	"context"
	"time"

	"storefront/marketplace/internal/model"
)

// Repository is the data access surface the services depend on. The pgx
// implementation lives in internal/repository; tests substitute an
// in-memory fake.
type Repository interface {
	CreateUser(ctx context.Context, name, password string, latitude, longitude float64, role string) error
	AuthenticateUser(ctx context.Context, name, password string) (*model.User, error)
	GetUserLocation(ctx context.Context, userID int) (float64, float64, error)

	ListStores(ctx context.Context) ([]model.Store, error)
	GetStore(ctx context.Context, storeID int) (*model.Store, error)
	StoresManagedBy(ctx context.Context, managerID int) ([]int, error)

	ListProducts(ctx context.Context, storeID int) ([]model.Product, error)
	GetProduct(ctx context.Context, storeID int, productName string) (*model.Product, error)
	UpdateProduct(ctx context.Context, storeID int, productName string, units int, price float64) error
	AddProductUnits(ctx context.Context, storeID int, productName string, units int) error

	CreateOrder(ctx context.Context, o *model.Order) error
	RecentOrders(ctx context.Context, customerID, limit int) ([]model.Order, error)

	RecordProductUpdate(ctx context.Context, managerID, storeID int, productName string, updatedOn time.Time) error
	RecentProductUpdates(ctx context.Context, managerID, limit int) ([]model.ProductUpdate, error)
	PopularProducts(ctx context.Context, storeID, limit int) ([]model.ProductPopularity, error)
	PopularCustomers(ctx context.Context, storeID, limit int) ([]model.CustomerPopularity, error)
	CreateSupplyRequest(ctx context.Context, req *model.SupplyRequest) error
}
