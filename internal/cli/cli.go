// Package cli implements the interactive menu loop. All I/O goes through
// the injected reader and writer so sessions can be scripted in tests.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"storefront/marketplace/internal/model"
	"storefront/marketplace/internal/service"
)

// Market is the slice of MarketService the menu needs.
type Market interface {
	Register(ctx context.Context, name, password string, latitude, longitude float64) error
	Login(ctx context.Context, name, password string) (*model.User, error)
	NearbyStores(ctx context.Context, userID int, radius float64) ([]model.StoreDistance, error)
	StoreProducts(ctx context.Context, storeID int) ([]model.Product, error)
	RecentOrders(ctx context.Context, customerID int) ([]model.Order, error)
	ManagedStores(ctx context.Context, actor *model.User) ([]int, error)
	UpdateProduct(ctx context.Context, actor *model.User, storeID int, productName string, units int, price float64) error
	RecentProductUpdates(ctx context.Context, actor *model.User) ([]model.ProductUpdate, error)
	PopularProducts(ctx context.Context, actor *model.User, storeID int) ([]model.ProductPopularity, error)
	PopularCustomers(ctx context.Context, actor *model.User, storeID int) ([]model.CustomerPopularity, error)
	RequestSupply(ctx context.Context, actor *model.User, storeID, warehouseID int, productName string, units int) error
}

// Orders is the slice of OrderService the menu needs.
type Orders interface {
	PlaceOrder(ctx context.Context, userID, storeID int, productName string, quantity int) (*model.OrderReceipt, error)
}

type CLI struct {
	in     *bufio.Reader
	out    io.Writer
	market Market
	orders Orders
	logger *zap.Logger
}

func New(in io.Reader, out io.Writer, market Market, orders Orders, logger *zap.Logger) *CLI {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CLI{
		in:     bufio.NewReader(in),
		out:    out,
		market: market,
		orders: orders,
		logger: logger,
	}
}

// Run drives the session until the user exits or input ends.
func (c *CLI) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "*******************************************************")
	fmt.Fprintln(c.out, "              Marketplace User Interface")
	fmt.Fprintln(c.out, "*******************************************************")

	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "MAIN MENU")
		fmt.Fprintln(c.out, "---------")
		fmt.Fprintln(c.out, "1. Create user")
		fmt.Fprintln(c.out, "2. Log in")
		fmt.Fprintln(c.out, "9. < EXIT")

		choice, err := c.readChoice()
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			c.createUser(ctx)
		case 2:
			user, err := c.logIn(ctx)
			if err != nil {
				continue
			}
			if err := c.userMenu(ctx, user); err != nil {
				return err
			}
		case 9:
			fmt.Fprintln(c.out, "Bye!")
			return nil
		default:
			fmt.Fprintln(c.out, "Unrecognized choice!")
		}
	}
}

func (c *CLI) userMenu(ctx context.Context, user *model.User) error {
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "MAIN MENU")
		fmt.Fprintln(c.out, "---------")
		fmt.Fprintln(c.out, "1. View stores within 30 miles")
		fmt.Fprintln(c.out, "2. View product list")
		fmt.Fprintln(c.out, "3. Place an order")
		fmt.Fprintln(c.out, "4. View 5 recent orders")
		fmt.Fprintln(c.out, "5. Update product")
		fmt.Fprintln(c.out, "6. View 5 recent product updates")
		fmt.Fprintln(c.out, "7. View 5 popular products")
		fmt.Fprintln(c.out, "8. View 5 popular customers")
		fmt.Fprintln(c.out, "9. Place product supply request")
		fmt.Fprintln(c.out, ".........................")
		fmt.Fprintln(c.out, "20. Log out")

		choice, err := c.readChoice()
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			c.viewStores(ctx, user)
		case 2:
			c.viewProducts(ctx)
		case 3:
			c.placeOrder(ctx, user)
		case 4:
			c.viewRecentOrders(ctx, user)
		case 5:
			c.updateProduct(ctx, user)
		case 6:
			c.viewRecentUpdates(ctx, user)
		case 7:
			c.viewPopularProducts(ctx, user)
		case 8:
			c.viewPopularCustomers(ctx, user)
		case 9:
			c.requestSupply(ctx, user)
		case 20:
			return nil
		default:
			fmt.Fprintln(c.out, "Unrecognized choice!")
		}
	}
}

func (c *CLI) createUser(ctx context.Context) {
	name, err := c.prompt("\tEnter name: ")
	if err != nil {
		return
	}
	password, err := c.prompt("\tEnter password: ")
	if err != nil {
		return
	}
	lat, err := c.promptFloat("\tEnter latitude [0-100]: ")
	if err != nil {
		return
	}
	lon, err := c.promptFloat("\tEnter longitude [0-100]: ")
	if err != nil {
		return
	}

	if err := c.market.Register(ctx, name, password, lat, lon); err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintln(c.out, "User successfully created!")
}

func (c *CLI) logIn(ctx context.Context) (*model.User, error) {
	name, err := c.prompt("\tEnter name: ")
	if err != nil {
		return nil, err
	}
	password, err := c.prompt("\tEnter password: ")
	if err != nil {
		return nil, err
	}

	user, err := c.market.Login(ctx, name, password)
	if err != nil {
		c.reportError(err)
		return nil, err
	}
	fmt.Fprintf(c.out, "Welcome, %s!\n", user.Name)
	return user, nil
}

func (c *CLI) viewStores(ctx context.Context, user *model.User) {
	stores, err := c.market.NearbyStores(ctx, user.ID, service.DefaultRadius)
	if err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintln(c.out, "Stores within 30 miles of you")
	fmt.Fprintln(c.out, "---------")
	for _, s := range stores {
		fmt.Fprintf(c.out, "Store ID: %d\tDistance: %.2f miles\n", s.StoreID, s.Distance)
	}
	if len(stores) == 0 {
		fmt.Fprintln(c.out, "No stores nearby.")
	}
}

func (c *CLI) viewProducts(ctx context.Context) {
	storeID, err := c.promptInt("Enter store ID: ")
	if err != nil {
		return
	}
	products, err := c.market.StoreProducts(ctx, storeID)
	if err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintf(c.out, "Items in store %d\n", storeID)
	fmt.Fprintln(c.out, "---------")
	for _, p := range products {
		fmt.Fprintf(c.out, "%s\t%d units\t$%.2f\n", p.Name, p.Units, p.PricePerUnit)
	}
	if len(products) == 0 {
		fmt.Fprintln(c.out, "No products found.")
	}
}

func (c *CLI) placeOrder(ctx context.Context, user *model.User) {
	storeID, err := c.promptInt("Enter store ID: ")
	if err != nil {
		return
	}
	productName, err := c.prompt("Enter product name: ")
	if err != nil {
		return
	}
	quantity, err := c.promptInt("Enter amount of units to purchase: ")
	if err != nil {
		return
	}

	receipt, err := c.orders.PlaceOrder(ctx, user.ID, storeID, productName, quantity)
	if err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintf(c.out, "Order placed! Order number: %d (%d x %s from store %d)\n",
		receipt.OrderNumber, receipt.Units, receipt.ProductName, receipt.StoreID)
}

func (c *CLI) viewRecentOrders(ctx context.Context, user *model.User) {
	orders, err := c.market.RecentOrders(ctx, user.ID)
	if err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintln(c.out, "Recent orders")
	fmt.Fprintln(c.out, "---------")
	for _, o := range orders {
		fmt.Fprintf(c.out, "#%d\tstore %d\t%d x %s\t%s\n",
			o.Number, o.StoreID, o.Units, o.ProductName, o.OrderedAt.Format("2006-01-02 15:04:05"))
	}
	if len(orders) == 0 {
		fmt.Fprintln(c.out, "No orders yet.")
	}
}

func (c *CLI) updateProduct(ctx context.Context, user *model.User) {
	storeID, err := c.promptInt("Enter store ID: ")
	if err != nil {
		return
	}
	productName, err := c.prompt("Enter product name: ")
	if err != nil {
		return
	}
	units, err := c.promptInt("Enter new number of units: ")
	if err != nil {
		return
	}
	price, err := c.promptFloat("Enter new price per unit: ")
	if err != nil {
		return
	}

	if err := c.market.UpdateProduct(ctx, user, storeID, productName, units, price); err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintln(c.out, "Product updated!")
}

func (c *CLI) viewRecentUpdates(ctx context.Context, user *model.User) {
	updates, err := c.market.RecentProductUpdates(ctx, user)
	if err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintln(c.out, "Recent product updates")
	fmt.Fprintln(c.out, "---------")
	for _, u := range updates {
		fmt.Fprintf(c.out, "#%d\tstore %d\t%s\t%s\n",
			u.UpdateNumber, u.StoreID, u.ProductName, u.UpdatedOn.Format("2006-01-02 15:04:05"))
	}
	if len(updates) == 0 {
		fmt.Fprintln(c.out, "No updates yet.")
	}
}

func (c *CLI) viewPopularProducts(ctx context.Context, user *model.User) {
	storeID, err := c.pickManagedStore(ctx, user)
	if err != nil {
		return
	}
	products, err := c.market.PopularProducts(ctx, user, storeID)
	if err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintf(c.out, "Most popular products at store %d\n", storeID)
	fmt.Fprintln(c.out, "---------")
	for _, p := range products {
		fmt.Fprintf(c.out, "%s\t%d units sold\n", p.ProductName, p.UnitsSold)
	}
}

func (c *CLI) viewPopularCustomers(ctx context.Context, user *model.User) {
	storeID, err := c.pickManagedStore(ctx, user)
	if err != nil {
		return
	}
	customers, err := c.market.PopularCustomers(ctx, user, storeID)
	if err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintf(c.out, "Most popular customers at store %d\n", storeID)
	fmt.Fprintln(c.out, "---------")
	for _, cust := range customers {
		fmt.Fprintf(c.out, "%d\t%s\t%d orders\n", cust.CustomerID, cust.Name, cust.OrderCount)
	}
}

func (c *CLI) requestSupply(ctx context.Context, user *model.User) {
	storeID, err := c.promptInt("Enter store ID: ")
	if err != nil {
		return
	}
	warehouseID, err := c.promptInt("Enter warehouse ID: ")
	if err != nil {
		return
	}
	productName, err := c.prompt("Enter product name: ")
	if err != nil {
		return
	}
	units, err := c.promptInt("Enter number of units: ")
	if err != nil {
		return
	}

	if err := c.market.RequestSupply(ctx, user, storeID, warehouseID, productName, units); err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintln(c.out, "Supply request placed!")
}

// pickManagedStore shows the stores the user manages and asks for one.
func (c *CLI) pickManagedStore(ctx context.Context, user *model.User) (int, error) {
	ids, err := c.market.ManagedStores(ctx, user)
	if err != nil {
		c.reportError(err)
		return 0, err
	}
	if len(ids) == 0 {
		fmt.Fprintln(c.out, "You do not manage any stores.")
		return 0, errors.New("no managed stores")
	}
	fmt.Fprintln(c.out, "Stores you manage:")
	for _, id := range ids {
		fmt.Fprintf(c.out, "Store ID: %d\n", id)
	}
	return c.promptInt("Enter store ID: ")
}

// readChoice re-prompts until a numeric selection arrives or input ends.
func (c *CLI) readChoice() (int, error) {
	for {
		fmt.Fprint(c.out, "Please make your choice: ")
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			return 0, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			fmt.Fprintln(c.out, "Your input is invalid!")
			if err != nil {
				return 0, err
			}
			continue
		}
		return n, nil
	}
}

func (c *CLI) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *CLI) promptInt(label string) (int, error) {
	raw, err := c.prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(c.out, "Your input is invalid!")
		return 0, err
	}
	return n, nil
}

func (c *CLI) promptFloat(label string) (float64, error) {
	raw, err := c.prompt(label)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fmt.Fprintln(c.out, "Your input is invalid!")
		return 0, err
	}
	return f, nil
}

func (c *CLI) reportError(err error) {
	fmt.Fprintf(c.out, "Error: %v\n", err)
	c.logger.Warn("operation failed", zap.Error(err))
}
