package service

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"time"

	"go-cafe-api/internal/model"
	"go-cafe-api/internal/repository"
	"go-cafe-api/internal/ws"
	"go-cafe-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// totalTolerance is the absolute tolerance, in currency units, when
// comparing the client-asserted total against the recomputed one.
const totalTolerance = 0.01

// txRunner is the transactional slice of *gorm.DB the workflow needs.
type txRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

type OrderService interface {
	PlaceOrder(req *PlaceOrderRequest) (*model.Order, error)
	UpdateStatus(orderID uuid.UUID, newStatus string) (*model.Order, error)
	GetOrderByID(id uuid.UUID) (*model.Order, error)
	GetOrdersForStaff(limit int, statuses []string) ([]model.Order, error)
	GetOrdersByCustomer(customerID string, limit int, statuses []string) ([]model.Order, error)
}

type PlaceOrderRequest struct {
	CustomerID      string             `json:"customer_id"`
	CustomerEmail   string             `json:"customer_email"`
	CustomerName    string             `json:"customer_name"`
	Lines           []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount     float64            `json:"total_amount" validate:"gte=0"`
	DeliveryAddress string             `json:"delivery_address"`
	PaymentMethod   string             `json:"payment_method"`
	PlacedByStaff   bool               `json:"placed_by_staff"`
	StaffID         string             `json:"staff_id"`
}

type OrderLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Price     float64   `json:"price" validate:"gte=0"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
	Size      string    `json:"size"`
	Mood      string    `json:"mood"`
	Sugar     string    `json:"sugar"`
}

type orderService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	orderRepo     repository.OrderRepository
	notifRepo     repository.NotificationRepository
	delivery      DeliveryService
	db            txRunner
	wsHub         *ws.Hub
}

func NewOrderService(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	orderRepo repository.OrderRepository,
	notifRepo repository.NotificationRepository,
	delivery DeliveryService,
	db txRunner,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		orderRepo:     orderRepo,
		notifRepo:     notifRepo,
		delivery:      delivery,
		db:            db,
		wsHub:         hub,
	}
}

// PlaceOrder turns a submitted cart into a persisted order.
//
// Validation and the total check are pure reads. The stock deduction
// and the order insert run in one database transaction: each decrement
// is still an independent conditional update whose RowsAffected outcome
// is authoritative, and the transaction guarantees that a failure
// partway through a multi-line order rolls back every deduction already
// applied.
func (s *orderService) PlaceOrder(req *PlaceOrderRequest) (*model.Order, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	customerID := req.CustomerID
	customerEmail := req.CustomerEmail
	customerName := req.CustomerName
	if customerID == "" {
		customerID = model.WalkInCustomerID
		customerEmail = model.WalkInEmail
		customerName = model.WalkInName
	}

	// 1. Per-line existence & availability check. Pure reads; the
	// authoritative stock check happens at deduction time.
	type cartLine struct {
		req     OrderLineRequest
		product *model.Product
	}
	lines := make([]cartLine, 0, len(req.Lines))
	for _, lr := range req.Lines {
		product, err := s.productRepo.FindByID(lr.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, lr.ProductID)
		}
		if !product.IsAvailable {
			return nil, &ProductUnavailableError{Name: product.Name}
		}
		lines = append(lines, cartLine{req: lr, product: product})
	}

	// 2. Total verification.
	computed := 0.0
	for _, l := range lines {
		computed += l.req.Price * float64(l.req.Quantity)
	}
	deliveryFee, err := s.delivery.FeeFor(req.DeliveryAddress)
	if err != nil {
		return nil, &PersistenceError{Op: "delivery fee lookup", Err: err}
	}
	computed += deliveryFee
	if math.Abs(computed-req.TotalAmount) > totalTolerance {
		return nil, &TotalMismatchError{Claimed: req.TotalAmount, Computed: computed}
	}

	order := &model.Order{
		OrderNumber:     model.NewOrderNumber(time.Now()),
		CustomerID:      customerID,
		CustomerEmail:   customerEmail,
		CustomerName:    customerName,
		TotalAmount:     computed,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryFee:     deliveryFee,
		PaymentMethod:   req.PaymentMethod,
		Status:          model.StatusNew,
		IsCompleted:     false,
		PlacedByStaff:   req.PlacedByStaff,
		StaffID:         req.StaffID,
	}
	for _, l := range lines {
		order.Lines = append(order.Lines, model.OrderLine{
			ProductID: l.product.ID,
			Name:      l.product.Name, // snapshot; later catalog edits do not track
			Price:     l.req.Price,
			Quantity:  l.req.Quantity,
			Size:      l.req.Size,
			Mood:      l.req.Mood,
			Sugar:     l.req.Sugar,
		})
	}

	// 3. Two-tier deduction + order insert, all-or-nothing.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, l := range lines {
			plan := planDeduction(l.product, l.req.Quantity)
			switch plan.tier {
			case tierPreMade:
				ok, err := s.productRepo.DeductStock(tx, l.product.ID, plan.preMadeQty)
				if err != nil {
					return err
				}
				if !ok {
					return &InsufficientStockError{
						Item:      l.product.Name,
						Needed:    float64(plan.preMadeQty),
						Available: float64(l.product.StockQuantity),
					}
				}
			case tierRecipe:
				for _, need := range plan.ingredients {
					item, err := s.inventoryRepo.FindByID(need.itemID)
					if err != nil {
						return fmt.Errorf("%w: recipe of '%s' references %s", ErrInventoryItemNotFound, l.product.Name, need.itemID)
					}
					ok, err := s.inventoryRepo.Deduct(tx, need.itemID, need.needed)
					if err != nil {
						return err
					}
					if !ok {
						return &InsufficientStockError{
							Item:      item.Name,
							Needed:    need.needed,
							Available: item.CurrentStock,
						}
					}
				}
			case tierUntracked:
				log.Printf("Warning: product '%s' has no stock tracking, fulfilling without deduction", l.product.Name)
			}
		}

		if err := s.orderRepo.Create(tx, order); err != nil {
			// Stock writes roll back with the transaction, but flag
			// this for reconciliation anyway.
			log.Printf("CRITICAL: order insert failed after stock deduction (order %s): %v", order.OrderNumber, err)
			return &PersistenceError{Op: "order insert", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. Notify staff. The order is already committed; a failed
	// notification must not fail the order.
	notification := &model.Notification{
		Message:    fmt.Sprintf("New order %s placed (%d items, total %.2f)", order.OrderNumber, len(order.Lines), order.TotalAmount),
		Type:       model.NotifInfo,
		Category:   "order",
		TargetRole: model.RoleStaff,
		RelatedID:  order.ID.String(),
	}
	if err := s.notifRepo.Create(notification); err != nil {
		log.Printf("Warning: failed to create order notification for %s: %v", order.OrderNumber, err)
	}

	if s.wsHub != nil {
		go s.wsHub.BroadcastEvent("order_created", map[string]interface{}{
			"order_number": order.OrderNumber,
			"customer":     order.CustomerName,
			"total":        order.TotalAmount,
			"items":        len(order.Lines),
		})
	}

	return order, nil
}

// UpdateStatus validates the new status against the fixed vocabulary
// and derives the completion flag. Transitions are permissive; there is
// no monotonicity guard.
func (s *orderService) UpdateStatus(orderID uuid.UUID, newStatus string) (*model.Order, error) {
	if !model.IsValidStatus(newStatus) {
		return nil, &InvalidStatusError{Status: newStatus}
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	order.Status = newStatus
	order.IsCompleted = model.IsDoneStatus(newStatus)
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	if newStatus == model.StatusServed {
		notification := &model.Notification{
			Message:    fmt.Sprintf("Your order %s is ready for pickup!", order.OrderNumber),
			Type:       model.NotifSuccess,
			Category:   "order",
			TargetRole: model.RoleCustomer,
			CustomerID: order.CustomerID,
			RelatedID:  order.ID.String(),
		}
		if err := s.notifRepo.Create(notification); err != nil {
			log.Printf("Warning: failed to create pickup notification for %s: %v", order.OrderNumber, err)
		}
	}

	if s.wsHub != nil {
		go s.wsHub.BroadcastEvent("order_status_changed", map[string]interface{}{
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"is_completed": order.IsCompleted,
		})
	}

	return order, nil
}

func (s *orderService) GetOrderByID(id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) GetOrdersForStaff(limit int, statuses []string) ([]model.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.orderRepo.FindForStaff(limit, statuses)
}

func (s *orderService) GetOrdersByCustomer(customerID string, limit int, statuses []string) ([]model.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.orderRepo.FindByCustomer(customerID, limit, statuses)
}
