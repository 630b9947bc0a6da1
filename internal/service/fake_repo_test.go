package service_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"storefront/marketplace/internal/model"
)

// fakeRepo is an in-memory stand-in for the pgx repository.
type fakeRepo struct {
	users    map[int]model.User
	passes   map[string]string // name -> password
	byName   map[string]int    // name -> id
	stores   []model.Store
	products map[string]*model.Product
	orders   []model.Order
	updates  []model.ProductUpdate
	supplies []model.SupplyRequest

	nextUserID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:      map[int]model.User{},
		passes:     map[string]string{},
		byName:     map[string]int{},
		products:   map[string]*model.Product{},
		nextUserID: 1,
	}
}

func productKey(storeID int, name string) string {
	return fmt.Sprintf("%d/%s", storeID, name)
}

func (f *fakeRepo) addUser(id int, name string, lat, lon float64, role string) {
	f.users[id] = model.User{ID: id, Name: name, Latitude: lat, Longitude: lon, Role: role}
	f.byName[name] = id
	f.passes[name] = "secret"
	if id >= f.nextUserID {
		f.nextUserID = id + 1
	}
}

func (f *fakeRepo) addStore(id int, lat, lon float64, managerID int) {
	f.stores = append(f.stores, model.Store{ID: id, Latitude: lat, Longitude: lon, ManagerID: managerID})
}

func (f *fakeRepo) addProduct(storeID int, name string, units int, price float64) {
	f.products[productKey(storeID, name)] = &model.Product{StoreID: storeID, Name: name, Units: units, PricePerUnit: price}
}

func (f *fakeRepo) CreateUser(_ context.Context, name, password string, lat, lon float64, role string) error {
	id := f.nextUserID
	f.nextUserID++
	f.users[id] = model.User{ID: id, Name: name, Latitude: lat, Longitude: lon, Role: role}
	f.byName[name] = id
	f.passes[name] = password
	return nil
}

func (f *fakeRepo) AuthenticateUser(_ context.Context, name, password string) (*model.User, error) {
	id, ok := f.byName[name]
	if !ok || f.passes[name] != password {
		return nil, model.ErrInvalidCredentials
	}
	u := f.users[id]
	return &u, nil
}

func (f *fakeRepo) GetUserLocation(_ context.Context, userID int) (float64, float64, error) {
	u, ok := f.users[userID]
	if !ok {
		return 0, 0, model.ErrUserNotFound
	}
	return u.Latitude, u.Longitude, nil
}

func (f *fakeRepo) ListStores(_ context.Context) ([]model.Store, error) {
	return append([]model.Store(nil), f.stores...), nil
}

func (f *fakeRepo) GetStore(_ context.Context, storeID int) (*model.Store, error) {
	for _, s := range f.stores {
		if s.ID == storeID {
			st := s
			return &st, nil
		}
	}
	return nil, model.ErrStoreNotFound
}

func (f *fakeRepo) StoresManagedBy(_ context.Context, managerID int) ([]int, error) {
	var ids []int
	for _, s := range f.stores {
		if s.ManagerID == managerID {
			ids = append(ids, s.ID)
		}
	}
	return ids, nil
}

func (f *fakeRepo) ListProducts(_ context.Context, storeID int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		if p.StoreID == storeID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRepo) GetProduct(_ context.Context, storeID int, productName string) (*model.Product, error) {
	p, ok := f.products[productKey(storeID, productName)]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) UpdateProduct(_ context.Context, storeID int, productName string, units int, price float64) error {
	p, ok := f.products[productKey(storeID, productName)]
	if !ok {
		return model.ErrProductNotFound
	}
	p.Units = units
	p.PricePerUnit = price
	return nil
}

func (f *fakeRepo) AddProductUnits(_ context.Context, storeID int, productName string, units int) error {
	p, ok := f.products[productKey(storeID, productName)]
	if !ok {
		return model.ErrProductNotFound
	}
	p.Units += units
	return nil
}

func (f *fakeRepo) CreateOrder(_ context.Context, o *model.Order) error {
	f.orders = append(f.orders, *o)
	return nil
}

func (f *fakeRepo) RecentOrders(_ context.Context, customerID, limit int) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderedAt.After(out[j].OrderedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) RecordProductUpdate(_ context.Context, managerID, storeID int, productName string, updatedOn time.Time) error {
	f.updates = append(f.updates, model.ProductUpdate{
		UpdateNumber: len(f.updates) + 1,
		ManagerID:    managerID,
		StoreID:      storeID,
		ProductName:  productName,
		UpdatedOn:    updatedOn,
	})
	return nil
}

func (f *fakeRepo) RecentProductUpdates(_ context.Context, managerID, limit int) ([]model.ProductUpdate, error) {
	var out []model.ProductUpdate
	for _, u := range f.updates {
		if u.ManagerID == managerID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedOn.After(out[j].UpdatedOn) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) PopularProducts(_ context.Context, storeID, limit int) ([]model.ProductPopularity, error) {
	sums := map[string]int{}
	for _, o := range f.orders {
		if o.StoreID == storeID {
			sums[o.ProductName] += o.Units
		}
	}
	var out []model.ProductPopularity
	for name, units := range sums {
		out = append(out, model.ProductPopularity{ProductName: name, UnitsSold: units})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UnitsSold > out[j].UnitsSold })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) PopularCustomers(_ context.Context, storeID, limit int) ([]model.CustomerPopularity, error) {
	counts := map[int]int{}
	for _, o := range f.orders {
		if o.StoreID == storeID {
			counts[o.CustomerID]++
		}
	}
	var out []model.CustomerPopularity
	for id, n := range counts {
		out = append(out, model.CustomerPopularity{CustomerID: id, Name: f.users[id].Name, OrderCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderCount > out[j].OrderCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) CreateSupplyRequest(_ context.Context, req *model.SupplyRequest) error {
	r := *req
	r.RequestNumber = len(f.supplies) + 1
	f.supplies = append(f.supplies, r)
	return nil
}
