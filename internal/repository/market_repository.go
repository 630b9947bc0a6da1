package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/marketplace/internal/model"
)

// MarketRepository is the single data access gateway. Every statement is
// parameterized; user-supplied values are never formatted into query text.
type MarketRepository struct {
	db *pgxpool.Pool
}

func NewMarketRepository(db *pgxpool.Pool) *MarketRepository {
	return &MarketRepository{db: db}
}

// CreateUser inserts a new user row. userID is assigned by the database.
func (r *MarketRepository) CreateUser(ctx context.Context, name, password string, latitude, longitude float64, role string) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO Users (name, password, latitude, longitude, type) VALUES ($1, $2, $3, $4, $5)",
		name, password, latitude, longitude, role)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// AuthenticateUser resolves a (name, password) pair to a user.
func (r *MarketRepository) AuthenticateUser(ctx context.Context, name, password string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(ctx,
		"SELECT userID, name, latitude, longitude, type FROM Users WHERE name = $1 AND password = $2",
		name, password).Scan(&u.ID, &u.Name, &u.Latitude, &u.Longitude, &u.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}
	return &u, nil
}

// GetUserLocation returns the stored coordinates for a user.
func (r *MarketRepository) GetUserLocation(ctx context.Context, userID int) (float64, float64, error) {
	var lat, lon float64
	err := r.db.QueryRow(ctx,
		"SELECT latitude, longitude FROM Users WHERE userID = $1", userID).Scan(&lat, &lon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, model.ErrUserNotFound
		}
		return 0, 0, fmt.Errorf("failed to get user location: %w", err)
	}
	return lat, lon, nil
}

// ListStores returns every store in discovery order.
func (r *MarketRepository) ListStores(ctx context.Context) ([]model.Store, error) {
	rows, err := r.db.Query(ctx, "SELECT storeID, latitude, longitude, managerID FROM Store")
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	var stores []model.Store
	for rows.Next() {
		var s model.Store
		if err := rows.Scan(&s.ID, &s.Latitude, &s.Longitude, &s.ManagerID); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stores: %w", err)
	}
	return stores, nil
}

// GetStore returns a single store by id.
func (r *MarketRepository) GetStore(ctx context.Context, storeID int) (*model.Store, error) {
	var s model.Store
	err := r.db.QueryRow(ctx,
		"SELECT storeID, latitude, longitude, managerID FROM Store WHERE storeID = $1",
		storeID).Scan(&s.ID, &s.Latitude, &s.Longitude, &s.ManagerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return &s, nil
}

// ListProducts returns a store's inventory.
func (r *MarketRepository) ListProducts(ctx context.Context, storeID int) ([]model.Product, error) {
	rows, err := r.db.Query(ctx,
		"SELECT storeID, productName, numberOfUnits, pricePerUnit FROM Product WHERE storeID = $1",
		storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.StoreID, &p.Name, &p.Units, &p.PricePerUnit); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}

// GetProduct returns a product by its (store, name) composite key.
func (r *MarketRepository) GetProduct(ctx context.Context, storeID int, productName string) (*model.Product, error) {
	var p model.Product
	err := r.db.QueryRow(ctx,
		"SELECT storeID, productName, numberOfUnits, pricePerUnit FROM Product WHERE storeID = $1 AND productName = $2",
		storeID, productName).Scan(&p.StoreID, &p.Name, &p.Units, &p.PricePerUnit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

// CreateOrder inserts a new order row with the caller-allocated number.
func (r *MarketRepository) CreateOrder(ctx context.Context, o *model.Order) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO Orders (orderNumber, customerID, storeID, productName, unitsOrdered, orderTime) VALUES ($1, $2, $3, $4, $5, $6)",
		o.Number, o.CustomerID, o.StoreID, o.ProductName, o.Units, o.OrderedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// RecentOrders returns a customer's most recent orders, newest first.
func (r *MarketRepository) RecentOrders(ctx context.Context, customerID, limit int) ([]model.Order, error) {
	rows, err := r.db.Query(ctx,
		"SELECT orderNumber, customerID, storeID, productName, unitsOrdered, orderTime FROM Orders WHERE customerID = $1 ORDER BY orderTime DESC LIMIT $2",
		customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.Number, &o.CustomerID, &o.StoreID, &o.ProductName, &o.Units, &o.OrderedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	return orders, nil
}

// StoresManagedBy returns the ids of stores managed by the given user.
func (r *MarketRepository) StoresManagedBy(ctx context.Context, managerID int) ([]int, error) {
	rows, err := r.db.Query(ctx, "SELECT storeID FROM Store WHERE managerID = $1", managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list managed stores: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan store id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read managed stores: %w", err)
	}
	return ids, nil
}

// UpdateProduct sets the unit count and price for a product.
func (r *MarketRepository) UpdateProduct(ctx context.Context, storeID int, productName string, units int, price float64) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE Product SET numberOfUnits = $1, pricePerUnit = $2 WHERE storeID = $3 AND productName = $4",
		units, price, storeID, productName)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// AddProductUnits increases a product's unit count, used when a supply
// request is fulfilled.
func (r *MarketRepository) AddProductUnits(ctx context.Context, storeID int, productName string, units int) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE Product SET numberOfUnits = numberOfUnits + $1 WHERE storeID = $2 AND productName = $3",
		units, storeID, productName)
	if err != nil {
		return fmt.Errorf("failed to add product units: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// RecordProductUpdate appends an audit row for a manager's product change.
// updateNumber is assigned by the database.
func (r *MarketRepository) RecordProductUpdate(ctx context.Context, managerID, storeID int, productName string, updatedOn time.Time) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO ProductUpdates (managerID, storeID, productName, updatedOn) VALUES ($1, $2, $3, $4)",
		managerID, storeID, productName, updatedOn)
	if err != nil {
		return fmt.Errorf("failed to record product update: %w", err)
	}
	return nil
}

// RecentProductUpdates returns the latest update audit rows for stores
// managed by the given user, newest first.
func (r *MarketRepository) RecentProductUpdates(ctx context.Context, managerID, limit int) ([]model.ProductUpdate, error) {
	rows, err := r.db.Query(ctx,
		"SELECT updateNumber, managerID, storeID, productName, updatedOn FROM ProductUpdates WHERE managerID = $1 ORDER BY updatedOn DESC LIMIT $2",
		managerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list product updates: %w", err)
	}
	defer rows.Close()

	var updates []model.ProductUpdate
	for rows.Next() {
		var u model.ProductUpdate
		if err := rows.Scan(&u.UpdateNumber, &u.ManagerID, &u.StoreID, &u.ProductName, &u.UpdatedOn); err != nil {
			return nil, fmt.Errorf("failed to scan product update: %w", err)
		}
		updates = append(updates, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product updates: %w", err)
	}
	return updates, nil
}

// PopularProducts returns the store's best sellers by total units ordered.
func (r *MarketRepository) PopularProducts(ctx context.Context, storeID, limit int) ([]model.ProductPopularity, error) {
	rows, err := r.db.Query(ctx,
		"SELECT productName, SUM(unitsOrdered) AS unitsSold FROM Orders WHERE storeID = $1 GROUP BY productName ORDER BY unitsSold DESC LIMIT $2",
		storeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular products: %w", err)
	}
	defer rows.Close()

	var top []model.ProductPopularity
	for rows.Next() {
		var p model.ProductPopularity
		if err := rows.Scan(&p.ProductName, &p.UnitsSold); err != nil {
			return nil, fmt.Errorf("failed to scan popular product: %w", err)
		}
		top = append(top, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read popular products: %w", err)
	}
	return top, nil
}

// PopularCustomers returns the store's most frequent customers by order count.
func (r *MarketRepository) PopularCustomers(ctx context.Context, storeID, limit int) ([]model.CustomerPopularity, error) {
	rows, err := r.db.Query(ctx,
		"SELECT u.userID, u.name, COUNT(o.orderNumber) AS orderCount FROM Users u JOIN Orders o ON u.userID = o.customerID WHERE o.storeID = $1 GROUP BY u.userID, u.name ORDER BY orderCount DESC LIMIT $2",
		storeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular customers: %w", err)
	}
	defer rows.Close()

	var top []model.CustomerPopularity
	for rows.Next() {
		var c model.CustomerPopularity
		if err := rows.Scan(&c.CustomerID, &c.Name, &c.OrderCount); err != nil {
			return nil, fmt.Errorf("failed to scan popular customer: %w", err)
		}
		top = append(top, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read popular customers: %w", err)
	}
	return top, nil
}

// CreateSupplyRequest records a warehouse supply request. requestNumber is
// assigned by the database.
func (r *MarketRepository) CreateSupplyRequest(ctx context.Context, req *model.SupplyRequest) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO ProductSupplyRequests (managerID, warehouseID, storeID, productName, unitsRequested) VALUES ($1, $2, $3, $4, $5)",
		req.ManagerID, req.WarehouseID, req.StoreID, req.ProductName, req.Units)
	if err != nil {
		return fmt.Errorf("failed to create supply request: %w", err)
	}
	return nil
}
