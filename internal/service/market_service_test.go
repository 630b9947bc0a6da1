package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/marketplace/internal/model"
	"storefront/marketplace/internal/service"
)

func newMarketService(repo *fakeRepo) *service.MarketService {
	return service.NewMarketService(repo, nil)
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeRepo()
	svc := newMarketService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "hunter2", 10.0, 20.0))

	u, err := svc.Login(ctx, "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Name)
	assert.Equal(t, model.RoleCustomer, u.Role)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "hunter2")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestRegisterRejectsOffGridCoordinates(t *testing.T) {
	svc := newMarketService(newFakeRepo())
	ctx := context.Background()

	assert.ErrorIs(t, svc.Register(ctx, "bob", "pw", -1, 50), service.ErrInvalidCoordinates)
	assert.ErrorIs(t, svc.Register(ctx, "bob", "pw", 50, 100.5), service.ErrInvalidCoordinates)
	assert.NoError(t, svc.Register(ctx, "bob", "pw", 0, 100))
}

func TestNearbyStoresBoundary(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "alice", 10.0, 10.0, model.RoleCustomer)
	repo.addStore(2, 10.0, 40.0, 99)   // exactly 30.0: excluded
	repo.addStore(3, 10.0, 39.999, 99) // 29.999: included
	repo.addStore(4, 10.0, 10.02, 99)  // 0.02: included

	svc := newMarketService(repo)
	nearby, err := svc.NearbyStores(context.Background(), 1, 0)
	require.NoError(t, err)

	require.Len(t, nearby, 2)
	// fetch order preserved, no sort by distance
	assert.Equal(t, 3, nearby[0].StoreID)
	assert.Equal(t, 4, nearby[1].StoreID)
	assert.InDelta(t, 29.999, nearby[0].Distance, 1e-9)
}

func TestNearbyStoresUnknownUser(t *testing.T) {
	svc := newMarketService(newFakeRepo())
	_, err := svc.NearbyStores(context.Background(), 42, 0)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestUpdateProductRequiresManagedStore(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "carol", 5, 5, model.RoleManager)
	repo.addUser(2, "dave", 5, 5, model.RoleCustomer)
	repo.addStore(10, 5, 5, 1)
	repo.addStore(11, 6, 6, 3)
	repo.addProduct(10, "Widget", 5, 2.0)

	svc := newMarketService(repo)
	ctx := context.Background()
	manager := &model.User{ID: 1, Role: model.RoleManager}
	customer := &model.User{ID: 2, Role: model.RoleCustomer}

	assert.ErrorIs(t, svc.UpdateProduct(ctx, customer, 10, "Widget", 9, 3.0), service.ErrPermissionDenied)
	assert.ErrorIs(t, svc.UpdateProduct(ctx, manager, 11, "Widget", 9, 3.0), service.ErrNotManagedStore)

	require.NoError(t, svc.UpdateProduct(ctx, manager, 10, "Widget", 9, 3.0))
	p := repo.products[productKey(10, "Widget")]
	assert.Equal(t, 9, p.Units)
	assert.Equal(t, 3.0, p.PricePerUnit)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, "Widget", repo.updates[0].ProductName)
}

func TestRequestSupplyCreditsInventory(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "carol", 5, 5, model.RoleManager)
	repo.addStore(10, 5, 5, 1)
	repo.addProduct(10, "Widget", 2, 2.0)

	svc := newMarketService(repo)
	manager := &model.User{ID: 1, Role: model.RoleManager}

	require.NoError(t, svc.RequestSupply(context.Background(), manager, 10, 3, "Widget", 8))
	assert.Equal(t, 10, repo.products[productKey(10, "Widget")].Units)
	require.Len(t, repo.supplies, 1)
	assert.Equal(t, 3, repo.supplies[0].WarehouseID)

	err := svc.RequestSupply(context.Background(), manager, 10, 3, "Widget", 0)
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)
}

func TestPopularReportsRequireManager(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "carol", 5, 5, model.RoleManager)
	repo.addUser(2, "dave", 5, 5, model.RoleCustomer)
	repo.addUser(3, "erin", 5, 5, model.RoleCustomer)
	repo.addStore(10, 5, 5, 1)
	repo.addProduct(10, "Widget", 50, 1.0)
	repo.addProduct(10, "Gadget", 50, 1.0)

	orderSvc := newOrderService(repo)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := orderSvc.PlaceOrder(ctx, 2, 10, "Widget", 2)
		require.NoError(t, err)
	}
	_, err := orderSvc.PlaceOrder(ctx, 3, 10, "Gadget", 1)
	require.NoError(t, err)

	svc := newMarketService(repo)
	manager := &model.User{ID: 1, Role: model.RoleManager}
	customer := &model.User{ID: 2, Role: model.RoleCustomer}

	_, err = svc.PopularProducts(ctx, customer, 10)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	products, err := svc.PopularProducts(ctx, manager, 10)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Widget", products[0].ProductName)
	assert.Equal(t, 6, products[0].UnitsSold)

	customers, err := svc.PopularCustomers(ctx, manager, 10)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, 2, customers[0].CustomerID)
	assert.Equal(t, 3, customers[0].OrderCount)
}
