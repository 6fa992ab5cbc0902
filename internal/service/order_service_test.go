package service

import (
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"go-cafe-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ---- In-memory fakes ----

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: map[uuid.UUID]*model.Product{}}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindAll() ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) Update(p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) ReplaceRecipe(productID uuid.UUID, recipe []model.RecipeItem) error {
	if p, ok := r.products[productID]; ok {
		p.Recipe = recipe
	}
	return nil
}

func (r *fakeProductRepo) DeductStock(tx *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	p, ok := r.products[id]
	if !ok || p.StockQuantity < qty {
		return false, nil
	}
	p.StockQuantity -= qty
	return true, nil
}

func (r *fakeProductRepo) CountLowStock() (int64, error) {
	return 0, nil
}

func (r *fakeProductRepo) snapshotStock() map[uuid.UUID]int {
	snap := map[uuid.UUID]int{}
	for id, p := range r.products {
		snap[id] = p.StockQuantity
	}
	return snap
}

func (r *fakeProductRepo) restoreStock(snap map[uuid.UUID]int) {
	for id, qty := range snap {
		if p, ok := r.products[id]; ok {
			p.StockQuantity = qty
		}
	}
}

type fakeInventoryRepo struct {
	items map[uuid.UUID]*model.InventoryItem
}

func newFakeInventoryRepo(items ...*model.InventoryItem) *fakeInventoryRepo {
	repo := &fakeInventoryRepo{items: map[uuid.UUID]*model.InventoryItem{}}
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		repo.items[item.ID] = item
	}
	return repo
}

func (r *fakeInventoryRepo) Create(item *model.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeInventoryRepo) FindAll() ([]model.InventoryItem, error) {
	out := []model.InventoryItem{}
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *fakeInventoryRepo) FindByID(id uuid.UUID) (*model.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *fakeInventoryRepo) FindByName(name string) (*model.InventoryItem, error) {
	for _, item := range r.items {
		if strings.EqualFold(item.Name, name) {
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInventoryRepo) Update(item *model.InventoryItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeInventoryRepo) FindLowStock() ([]model.InventoryItem, error) {
	out := []model.InventoryItem{}
	for _, item := range r.items {
		if item.IsLow() {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) CountLowStock() (int64, error) {
	low, _ := r.FindLowStock()
	return int64(len(low)), nil
}

func (r *fakeInventoryRepo) FindAutoReorderDue() ([]model.InventoryItem, error) {
	out := []model.InventoryItem{}
	for _, item := range r.items {
		if item.AutoReorder && item.IsLow() {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) Deduct(tx *gorm.DB, id uuid.UUID, qty float64) (bool, error) {
	item, ok := r.items[id]
	if !ok || item.CurrentStock < qty {
		return false, nil
	}
	item.CurrentStock -= qty
	return true, nil
}

func (r *fakeInventoryRepo) Replenish(id uuid.UUID, qty float64) error {
	item, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.CurrentStock += qty
	return nil
}

func (r *fakeInventoryRepo) snapshotStock() map[uuid.UUID]float64 {
	snap := map[uuid.UUID]float64{}
	for id, item := range r.items {
		snap[id] = item.CurrentStock
	}
	return snap
}

func (r *fakeInventoryRepo) restoreStock(snap map[uuid.UUID]float64) {
	for id, qty := range snap {
		if item, ok := r.items[id]; ok {
			item.CurrentStock = qty
		}
	}
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]*model.Order{}}
}

func (r *fakeOrderRepo) Create(tx *gorm.DB, order *model.Order) error {
	order.ID = uuid.New()
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (r *fakeOrderRepo) FindForStaff(limit int, statuses []string) ([]model.Order, error) {
	out := []model.Order{}
	for _, order := range r.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (r *fakeOrderRepo) FindByCustomer(customerID string, limit int, statuses []string) ([]model.Order, error) {
	out := []model.Order{}
	for _, order := range r.orders {
		if order.CustomerID == customerID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(order *model.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) FindBetween(start, end time.Time) ([]model.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) CountAll() (int64, error)     { return int64(len(r.orders)), nil }
func (r *fakeOrderRepo) CountPending() (int64, error) { return 0, nil }
func (r *fakeOrderRepo) SumRevenue() (float64, error) { return 0, nil }

type fakeNotificationRepo struct {
	created []*model.Notification
}

func (r *fakeNotificationRepo) Create(n *model.Notification) error {
	r.created = append(r.created, n)
	return nil
}

func (r *fakeNotificationRepo) FindForRole(role string, limit int) ([]model.Notification, error) {
	return nil, nil
}
func (r *fakeNotificationRepo) FindForCustomer(customerID string, limit int) ([]model.Notification, error) {
	return nil, nil
}
func (r *fakeNotificationRepo) FindUnread() ([]model.Notification, error) { return nil, nil }
func (r *fakeNotificationRepo) CountUnread() (int64, error)               { return 0, nil }
func (r *fakeNotificationRepo) MarkRead(id uuid.UUID) error               { return nil }

type fakeDelivery struct {
	fee float64
}

func (d *fakeDelivery) FeeFor(address string) (float64, error) {
	if strings.TrimSpace(address) == "" {
		return 0, nil
	}
	return d.fee, nil
}

func (d *fakeDelivery) GetZones() ([]model.DeliveryZone, error)                 { return nil, nil }
func (d *fakeDelivery) CreateZone(z *model.DeliveryZone, userID string) error   { return nil }
func (d *fakeDelivery) DeleteZone(id uuid.UUID) error                           { return nil }
func (d *fakeDelivery) UpdateZone(id uuid.UUID, z *model.DeliveryZone, userID string) (*model.DeliveryZone, error) {
	return nil, nil
}

// fakeTxRunner mimics rollback by restoring stock snapshots when the
// wrapped function fails.
type fakeTxRunner struct {
	products  *fakeProductRepo
	inventory *fakeInventoryRepo
}

func (f *fakeTxRunner) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	productSnap := f.products.snapshotStock()
	invSnap := f.inventory.snapshotStock()
	if err := fc(nil); err != nil {
		f.products.restoreStock(productSnap)
		f.inventory.restoreStock(invSnap)
		return err
	}
	return nil
}

type orderFixture struct {
	service   OrderService
	products  *fakeProductRepo
	inventory *fakeInventoryRepo
	orders    *fakeOrderRepo
	notifs    *fakeNotificationRepo
}

func newOrderFixture(deliveryFee float64, products []*model.Product, items []*model.InventoryItem) *orderFixture {
	productRepo := newFakeProductRepo(products...)
	inventoryRepo := newFakeInventoryRepo(items...)
	orderRepo := newFakeOrderRepo()
	notifRepo := &fakeNotificationRepo{}
	tx := &fakeTxRunner{products: productRepo, inventory: inventoryRepo}

	svc := NewOrderService(productRepo, inventoryRepo, orderRepo, notifRepo, &fakeDelivery{fee: deliveryFee}, tx, nil)
	return &orderFixture{
		service:   svc,
		products:  productRepo,
		inventory: inventoryRepo,
		orders:    orderRepo,
		notifs:    notifRepo,
	}
}

// ---- PlaceOrder ----

func TestPlaceOrderWalkInSentinel(t *testing.T) {
	water := &model.Product{Name: "Bottled Water", Price: 25, IsAvailable: true}
	f := newOrderFixture(0, []*model.Product{water}, nil)

	order, err := f.service.PlaceOrder(&PlaceOrderRequest{
		Lines:       []OrderLineRequest{{ProductID: water.ID, Price: 25, Quantity: 1}},
		TotalAmount: 25,
	})

	require.NoError(t, err)
	assert.Equal(t, model.WalkInCustomerID, order.CustomerID)
	assert.Equal(t, model.WalkInEmail, order.CustomerEmail)
	assert.Equal(t, model.WalkInName, order.CustomerName)
	assert.Equal(t, model.StatusNew, order.Status)
	assert.False(t, order.IsCompleted)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD"))
}

func TestPlaceOrderDeductsPreMadeStock(t *testing.T) {
	cake := &model.Product{Name: "Banana Bread", Price: 80, StockQuantity: 10, IsAvailable: true}
	f := newOrderFixture(0, []*model.Product{cake}, nil)

	_, err := f.service.PlaceOrder(&PlaceOrderRequest{
		CustomerID:  "cust-1",
		Lines:       []OrderLineRequest{{ProductID: cake.ID, Price: 80, Quantity: 4}},
		TotalAmount: 320,
	})

	require.NoError(t, err)
	assert.Equal(t, 6, cake.StockQuantity)

	// Staff get notified about the committed order.
	require.Len(t, f.notifs.created, 1)
	assert.Equal(t, model.RoleStaff, f.notifs.created[0].TargetRole)
}

func TestPlaceOrderRejectsInsufficientPreMadeStock(t *testing.T) {
	latte := &model.Product{Name: "Latte", Price: 120, StockQuantity: 2, IsAvailable: true}
	f := newOrderFixture(0, []*model.Product{latte}, nil)

	_, err := f.service.PlaceOrder(&PlaceOrderRequest{
		CustomerID:  "cust-1",
		Lines:       []OrderLineRequest{{ProductID: latte.ID, Price: 120, Quantity: 3}},
		TotalAmount: 360,
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Latte", stockErr.Item)
	assert.Equal(t, 3.0, stockErr.Needed)
	assert.Equal(t, 2.0, stockErr.Available)
	assert.Contains(t, stockErr.Error(), "Not enough stock for 'Latte'")

	// Nothing persisted, nothing deducted.
	assert.Empty(t, f.orders.orders)
	assert.Equal(t, 2, latte.StockQuantity)
}

// A recipe does not rescue a pre-made shortfall: 2 on hand, 3 wanted,
// plenty of milk in stock, still rejected.
func TestPlaceOrderPreMadeShortfallNeverFallsBackToRecipe(t *testing.T) {
	milk := &model.InventoryItem{Name: "Milk", Unit: "ml", CurrentStock: 1000}
	milk.ID = uuid.New()
	latte := &model.Product{
		Name: "Latte", Price: 120, StockQuantity: 2, IsAvailable: true,
		Recipe: []model.RecipeItem{{InventoryItemID: milk.ID, QuantityRequired: 200, Unit: "ml"}},
	}
	f := newOrderFixture(0, []*model.Product{latte}, []*model.InventoryItem{milk})

	_, err := f.service.PlaceOrder(&PlaceOrderRequest{
		CustomerID:  "cust-1",
		Lines:       []OrderLineRequest{{ProductID: latte.ID, Price: 120, Quantity: 3}},
		TotalAmount: 360,
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Latte", stockErr.Item)
	assert.Equal(t, 1000.0, milk.CurrentStock, "ingredients must not be touched")
	assert.Equal(t, 2, latte.StockQuantity)
}

func TestPlaceOrderDeductsRecipeIngredients(t *testing.T) {
	teabag := &model.InventoryItem{Name: "Tea Bag", Unit: "pcs", CurrentStock: 10}
	teabag.ID = uuid.New()
	tea := &model.Product{
		Name: "House Tea", Price: 60, IsAvailable: true,
		Recipe: []model.RecipeItem{{InventoryItemID: teabag.ID, QuantityRequired: 1, Unit: "pcs"}},
	}
	f := newOrderFixture(0, []*model.Product{tea}, []*model.InventoryItem{teabag})

	order, err := f.service.PlaceOrder(&PlaceOrderRequest{
		CustomerID:  "cust-1",
		Lines:       []OrderLineRequest{{ProductID: tea.ID, Price: 60, Quantity: 4}},
		TotalAmount: 240,
	})

	require.NoError(t, err)
	assert.Equal(t, 6.0, teabag.CurrentStock)
	assert.Equal(t, model.StatusNew, order.Status)
	require.Len(t, f.orders.orders, 1)
}

func TestPlaceOrderRecipeShortfallRollsBackEverything(t *testing.T) {
	sugar := &model.InventoryItem{Name: "Sugar", Unit: "g", CurrentStock: 500}
	sugar.ID = uuid.New()
	milk := &model.InventoryItem{Name: "Milk", Unit: "ml", CurrentStock: 100}
	milk.ID = uuid.New()
	latte := &model.Product{
		Name: "Latte", Price: 120, IsAvailable: true,
		Recipe: []model.RecipeItem{
			{InventoryItemID: sugar.ID, QuantityRequired: 10, Unit: "g"},
			{InventoryItemID: milk.ID, QuantityRequired: 150, Unit: "ml"},
		},
	}
	f := newOrderFixture(0, []*model.Product{latte}, []*model.InventoryItem{sugar, milk})

	_, err := f.service.PlaceOrder(&PlaceOrderRequest{
		CustomerID:  "cust-1",
		Lines:       []OrderLineRequest{{ProductID: latte.ID, Price: 120, Quantity: 1}},
		TotalAmount: 120,
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Milk", stockErr.Item)
	assert.Equal(t, 150.0, stockErr.Needed)
	assert.Equal(t, 100.0, stockErr.Available)

	// The sugar deduction that succeeded before the milk shortfall is
	// rolled back with the transaction.
	assert.Equal(t, 500.0, sugar.CurrentStock)
	assert.Equal(t, 100.0, milk.CurrentStock)
	assert.Empty(t, f.orders.orders)
}

func TestPlaceOrderTotalMismatchRejectedBeforeDeduction(t *testing.T) {
	cake := &model.Product{Name: "Banana Bread", Price: 80, StockQuantity: 10, IsAvailable: true}
	f := newOrderFixture(0, []*model.Product{cake}, nil)

	_, err := f.service.PlaceOrder(&PlaceOrderRequest{
		CustomerID:  "cust-1",
		Lines:       []OrderLineRequest{{ProductID: cake.ID, Price: 80, Quantity: 1}},
		TotalAmount: 100, // client claims 100, server computes 80
	})

	var mismatch *TotalMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 100.0, mismatch.Claimed)
	assert.Equal(t, 80.0, mismatch.Computed)
	assert.Equal(t, 10, cake.StockQuantity)
	assert.Empty(t, f.orders.orders)
}

func TestPlaceOrderTotalToleratesRoundingNoise(t *testing.T) {
	cake := &model.Product{Name: "Banana Bread", Price: 79.99, StockQuantity: 10, IsAvailable: true}
	f := newOrderFixture(0, []*model.Product{cake}, nil)

	_, err := f.service.PlaceOrder(&PlaceOrderRequest{
		CustomerID:  "cust-1",
		Lines:       []OrderLineRequest{{ProductID: cake.ID, Price: 79.99, Quantity: 1}},
		TotalAmount: 79.985,
	})

	require.NoError(t, err)
}

func TestPlaceOrderIncludesDeliveryFee(t *testing.T) {
	cake := &model.Product{Name: "Banana Bread", Price: 80, StockQuantity: 10, IsAvailable: true}
	f := newOrderFixture(50, []*model.Product{cake}, nil)

	order, err := f.service.PlaceOrder(&PlaceOrderRequest{
		CustomerID:      "cust-1",
		Lines:           []OrderLineRequest{{ProductID: cake.ID, Price: 80, Quantity: 1}},
		DeliveryAddress: "123 Main St, Quezon City",
		TotalAmount:     130,
	})

	require.NoError(t, err)
	assert.Equal(t, 50.0, order.DeliveryFee)
	assert.Equal(t, 130.0, order.TotalAmount)
}

func TestPlaceOrderUnavailableProduct(t *testing.T) {
	special := &model.Product{Name: "Seasonal Special", Price: 150, StockQuantity: 5, IsAvailable: false}
	f := newOrderFixture(0, []*model.Product{special}, nil)

	_, err := f.service.PlaceOrder(&PlaceOrderRequest{
		CustomerID:  "cust-1",
		Lines:       []OrderLineRequest{{ProductID: special.ID, Price: 150, Quantity: 1}},
		TotalAmount: 150,
	})

	var unavailable *ProductUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "Seasonal Special", unavailable.Name)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	f := newOrderFixture(0, nil, nil)

	_, err := f.service.PlaceOrder(&PlaceOrderRequest{
		CustomerID:  "cust-1",
		Lines:       []OrderLineRequest{{ProductID: uuid.New(), Price: 50, Quantity: 1}},
		TotalAmount: 50,
	})

	assert.True(t, errors.Is(err, ErrProductNotFound))
}

func TestPlaceOrderEmptyCartRejected(t *testing.T) {
	f := newOrderFixture(0, nil, nil)

	_, err := f.service.PlaceOrder(&PlaceOrderRequest{CustomerID: "cust-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestPlaceOrderSnapshotsLineNames(t *testing.T) {
	cake := &model.Product{Name: "Banana Bread", Price: 80, StockQuantity: 10, IsAvailable: true}
	f := newOrderFixture(0, []*model.Product{cake}, nil)

	order, err := f.service.PlaceOrder(&PlaceOrderRequest{
		CustomerID:  "cust-1",
		Lines:       []OrderLineRequest{{ProductID: cake.ID, Price: 80, Quantity: 2, Size: "Large"}},
		TotalAmount: 160,
	})

	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, "Banana Bread", order.Lines[0].Name)
	assert.Equal(t, 80.0, order.Lines[0].Price)
	assert.Equal(t, "Large", order.Lines[0].Size)
}

// ---- UpdateStatus ----

func placeTestOrder(t *testing.T, f *orderFixture, productID uuid.UUID, price float64) *model.Order {
	t.Helper()
	order, err := f.service.PlaceOrder(&PlaceOrderRequest{
		CustomerID:  "cust-1",
		Lines:       []OrderLineRequest{{ProductID: productID, Price: price, Quantity: 1}},
		TotalAmount: price,
	})
	require.NoError(t, err)
	return order
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	cake := &model.Product{Name: "Banana Bread", Price: 80, StockQuantity: 10, IsAvailable: true}
	f := newOrderFixture(0, []*model.Product{cake}, nil)
	order := placeTestOrder(t, f, cake.ID, 80)

	_, err := f.service.UpdateStatus(order.ID, "Delivered")

	var invalid *InvalidStatusError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Delivered", invalid.Status)
}

func TestUpdateStatusServedCompletesAndNotifiesCustomer(t *testing.T) {
	cake := &model.Product{Name: "Banana Bread", Price: 80, StockQuantity: 10, IsAvailable: true}
	f := newOrderFixture(0, []*model.Product{cake}, nil)
	order := placeTestOrder(t, f, cake.ID, 80)
	f.notifs.created = nil // drop the order-placed notification

	updated, err := f.service.UpdateStatus(order.ID, model.StatusServed)

	require.NoError(t, err)
	assert.Equal(t, model.StatusServed, updated.Status)
	assert.True(t, updated.IsCompleted)

	require.Len(t, f.notifs.created, 1)
	pickup := f.notifs.created[0]
	assert.Equal(t, model.RoleCustomer, pickup.TargetRole)
	assert.Equal(t, "cust-1", pickup.CustomerID)
	assert.Contains(t, pickup.Message, "ready for pickup")
}

func TestUpdateStatusCompletedIsTerminal(t *testing.T) {
	cake := &model.Product{Name: "Banana Bread", Price: 80, StockQuantity: 10, IsAvailable: true}
	f := newOrderFixture(0, []*model.Product{cake}, nil)
	order := placeTestOrder(t, f, cake.ID, 80)

	updated, err := f.service.UpdateStatus(order.ID, model.StatusCompleted)

	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)
}

func TestUpdateStatusPreparingIsNotCompleted(t *testing.T) {
	cake := &model.Product{Name: "Banana Bread", Price: 80, StockQuantity: 10, IsAvailable: true}
	f := newOrderFixture(0, []*model.Product{cake}, nil)
	order := placeTestOrder(t, f, cake.ID, 80)

	updated, err := f.service.UpdateStatus(order.ID, model.StatusPreparing)

	require.NoError(t, err)
	assert.False(t, updated.IsCompleted)
	assert.Empty(t, f.notifs.created[1:]) // no pickup notification
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	f := newOrderFixture(0, nil, nil)

	_, err := f.service.UpdateStatus(uuid.New(), model.StatusReady)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}
