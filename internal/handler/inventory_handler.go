package handler

import (
	"errors"
	"strings"

	"go-cafe-api/internal/model"
	"go-cafe-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// GetItems lists all stock items
// GET /api/v1/inventory
func (h *InventoryHandler) GetItems(c *fiber.Ctx) error {
	items, err := h.service.GetAllItems()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(items)
}

// GetItem fetches one stock item
// GET /api/v1/inventory/:id
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	itemID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	item, err := h.service.GetItemByID(itemID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Inventory item not found"})
	}
	return c.JSON(item)
}

// CreateItem registers a new stock item
// POST /api/v1/inventory
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var req model.InventoryItem
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateItem(&req, getUserID(c)); err != nil {
		if strings.HasPrefix(err.Error(), "validation failed") {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create inventory item"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Inventory item created", "data": req})
}

// UpdateItem edits a stock item (locks the row against order traffic)
// PUT /api/v1/inventory/:id
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	itemID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var req model.InventoryItem
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.UpdateItem(itemID, &req, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrInventoryItemNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Inventory item not found"})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Inventory item updated", "data": item})
}

// GetLowStock lists items at or below their reorder level
// GET /api/v1/inventory/low-stock
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	items, err := h.service.GetLowStockItems()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(items)
}

// SendLowStockAlert lets staff flag an ingredient by name
// POST /api/v1/inventory/low-stock-alert
func (h *InventoryHandler) SendLowStockAlert(c *fiber.Ctx) error {
	var req struct {
		ItemName string `json:"item_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.ItemName == "" {
		return c.Status(400).JSON(fiber.Map{"error": "item_name is required"})
	}

	if err := h.service.SendLowStockAlert(req.ItemName); err != nil {
		if errors.Is(err, service.ErrInventoryItemNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Inventory item not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to send alert"})
	}

	return c.JSON(fiber.Map{"message": "Low stock alert sent"})
}
