package handler

import (
	"errors"
	"strings"

	"go-cafe-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// Helper untuk ambil User Info dari JWT Context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return ""
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return ""
	}
	return userName.(string)
}

func getUserEmail(c *fiber.Ctx) string {
	userEmail := c.Locals("user_email")
	if userEmail == nil {
		return ""
	}
	return userEmail.(string)
}

// Helper untuk parse UUID dari string
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// splitStatuses parses a comma-separated status filter ("New,Preparing").
func splitStatuses(filter string) []string {
	if filter == "" {
		return nil
	}
	parts := strings.Split(filter, ",")
	statuses := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			statuses = append(statuses, trimmed)
		}
	}
	return statuses
}

// orderErrorResponse translates workflow errors into caller-facing
// structured responses. Internals never leak; unanticipated faults
// become a generic server failure.
func orderErrorResponse(c *fiber.Ctx, err error) error {
	var insufficient *service.InsufficientStockError
	var unavailable *service.ProductUnavailableError
	var mismatch *service.TotalMismatchError
	var invalidStatus *service.InvalidStatusError
	var persistence *service.PersistenceError

	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrInventoryItemNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &insufficient):
		return c.Status(409).JSON(fiber.Map{
			"error":     insufficient.Error(),
			"item":      insufficient.Item,
			"needed":    insufficient.Needed,
			"available": insufficient.Available,
		})
	case errors.As(err, &unavailable), errors.As(err, &mismatch), errors.As(err, &invalidStatus):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &persistence):
		return c.Status(500).JSON(fiber.Map{"error": "Order could not be saved. Please retry or contact support."})
	default:
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
}

// PlaceOrder handles cart submission
// POST /api/v1/orders
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	var req service.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	// Authenticated customers order under their own identity.
	if req.CustomerID == "" && !req.PlacedByStaff {
		req.CustomerID = getUserID(c)
		req.CustomerEmail = getUserEmail(c)
		req.CustomerName = getUserName(c)
	}
	if req.PlacedByStaff && req.StaffID == "" {
		req.StaffID = getUserID(c)
	}

	order, err := h.service.PlaceOrder(&req)
	if err != nil {
		return orderErrorResponse(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Order placed", "data": order})
}

// UpdateStatus moves an order through its lifecycle
// PUT /api/v1/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Status == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Status is required"})
	}

	order, err := h.service.UpdateStatus(orderID, req.Status)
	if err != nil {
		return orderErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "Order status updated", "data": order})
}

// GetStaffOrders lists recent orders for the fulfillment queue
// GET /api/v1/orders/staff?limit=10&status=New,Preparing
func (h *OrderHandler) GetStaffOrders(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	statuses := splitStatuses(c.Query("status"))

	orders, err := h.service.GetOrdersForStaff(limit, statuses)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(orders)
}

// GetCustomerOrders lists the authenticated customer's own orders
// GET /api/v1/customer/orders?limit=3&status=Ready
func (h *OrderHandler) GetCustomerOrders(c *fiber.Ctx) error {
	customerID := getUserID(c)
	if customerID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	limit := c.QueryInt("limit", 3)
	statuses := splitStatuses(c.Query("status"))

	orders, err := h.service.GetOrdersByCustomer(customerID, limit, statuses)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(orders)
}

// GetOrder fetches one order
// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Order not found"})
	}
	return c.JSON(order)
}

// PrintReceipt queues a receipt for printing. Printing hardware is out
// of scope; the endpoint validates the order and acknowledges.
// POST /api/v1/orders/:id/print
func (h *OrderHandler) PrintReceipt(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Order not found"})
	}

	return c.JSON(fiber.Map{"message": "Receipt for order " + order.OrderNumber + " sent to printer"})
}
