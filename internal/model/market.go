package model

import "time"

const (
	RoleCustomer = "customer"
	RoleManager  = "manager"
)

type User struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Role      string  `json:"role"`
}

type Store struct {
	ID        int     `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	ManagerID int     `json:"manager_id"`
}

type Product struct {
	StoreID      int     `json:"store_id"`
	Name         string  `json:"name"`
	Units        int     `json:"units"`
	PricePerUnit float64 `json:"price_per_unit"`
}

type Order struct {
	Number      int       `json:"number"`
	CustomerID  int       `json:"customer_id"`
	StoreID     int       `json:"store_id"`
	ProductName string    `json:"product_name"`
	Units       int       `json:"units"`
	OrderedAt   time.Time `json:"ordered_at"`
}

// StoreDistance pairs a store with its computed distance from a user.
type StoreDistance struct {
	StoreID  int     `json:"store_id"`
	Distance float64 `json:"distance"`
}

// OrderReceipt echoes the persisted order back to the caller.
type OrderReceipt struct {
	OrderNumber int       `json:"order_number"`
	CustomerID  int       `json:"customer_id"`
	StoreID     int       `json:"store_id"`
	ProductName string    `json:"product_name"`
	Units       int       `json:"units"`
	OrderedAt   time.Time `json:"ordered_at"`
}

type ProductUpdate struct {
	UpdateNumber int       `json:"update_number"`
	ManagerID    int       `json:"manager_id"`
	StoreID      int       `json:"store_id"`
	ProductName  string    `json:"product_name"`
	UpdatedOn    time.Time `json:"updated_on"`
}

type SupplyRequest struct {
	RequestNumber int    `json:"request_number"`
	ManagerID     int    `json:"manager_id"`
	WarehouseID   int    `json:"warehouse_id"`
	StoreID       int    `json:"store_id"`
	ProductName   string `json:"product_name"`
	Units         int    `json:"units"`
}

// ProductPopularity is one row of the top-products report.
type ProductPopularity struct {
	ProductName string `json:"product_name"`
	UnitsSold   int    `json:"units_sold"`
}

// CustomerPopularity is one row of the top-customers report.
type CustomerPopularity struct {
	CustomerID int    `json:"customer_id"`
	Name       string `json:"name"`
	OrderCount int    `json:"order_count"`
}
