package handler

import (
	"errors"
	"strings"

	"go-cafe-api/internal/model"
	"go-cafe-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DeliveryZoneHandler struct {
	service service.DeliveryService
}

func NewDeliveryZoneHandler(s service.DeliveryService) *DeliveryZoneHandler {
	return &DeliveryZoneHandler{service: s}
}

// GetZones lists all delivery zones
// GET /api/v1/delivery-zones
func (h *DeliveryZoneHandler) GetZones(c *fiber.Ctx) error {
	zones, err := h.service.GetZones()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(zones)
}

// QuoteFee previews the delivery fee for an address before checkout
// GET /api/v1/delivery-zones/quote?address=...
func (h *DeliveryZoneHandler) QuoteFee(c *fiber.Ctx) error {
	address := c.Query("address")

	fee, err := h.service.FeeFor(address)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"address": address, "fee": fee})
}

// CreateZone adds a delivery zone
// POST /api/v1/delivery-zones
func (h *DeliveryZoneHandler) CreateZone(c *fiber.Ctx) error {
	var req model.DeliveryZone
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateZone(&req, getUserID(c)); err != nil {
		if strings.HasPrefix(err.Error(), "validation failed") {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create delivery zone"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Delivery zone created", "data": req})
}

// UpdateZone edits a delivery zone
// PUT /api/v1/delivery-zones/:id
func (h *DeliveryZoneHandler) UpdateZone(c *fiber.Ctx) error {
	zoneID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid zone ID"})
	}

	var req model.DeliveryZone
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	zone, err := h.service.UpdateZone(zoneID, &req, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrDeliveryZoneNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Delivery zone not found"})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Delivery zone updated", "data": zone})
}

// DeleteZone removes a delivery zone
// DELETE /api/v1/delivery-zones/:id
func (h *DeliveryZoneHandler) DeleteZone(c *fiber.Ctx) error {
	zoneID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid zone ID"})
	}

	if err := h.service.DeleteZone(zoneID); err != nil {
		if errors.Is(err, service.ErrDeliveryZoneNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Delivery zone not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete delivery zone"})
	}

	return c.JSON(fiber.Map{"message": "Delivery zone deleted"})
}
