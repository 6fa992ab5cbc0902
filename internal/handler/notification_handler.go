package handler

import (
	"go-cafe-api/internal/model"
	"go-cafe-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	service service.NotificationService
}

func NewNotificationHandler(s service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: s}
}

func getUserRole(c *fiber.Ctx) string {
	role := c.Locals("user_role")
	if role == nil {
		return ""
	}
	return role.(string)
}

// GetNotifications returns the feed for the caller's role. Admins see
// admin-targeted messages, staff the staff queue.
// GET /api/v1/notifications?limit=50
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	role := getUserRole(c)
	if role == "" {
		role = model.RoleStaff
	}
	limit := c.QueryInt("limit", 50)

	notifications, err := h.service.GetForRole(role, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(notifications)
}

// GetCustomerNotifications returns the authenticated customer's feed
// GET /api/v1/customer/notifications?limit=20
func (h *NotificationHandler) GetCustomerNotifications(c *fiber.Ctx) error {
	customerID := getUserID(c)
	if customerID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	limit := c.QueryInt("limit", 20)

	notifications, err := h.service.GetForCustomer(customerID, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(notifications)
}

// GetUnread lists all unread notifications
// GET /api/v1/notifications/unread
func (h *NotificationHandler) GetUnread(c *fiber.Ctx) error {
	notifications, err := h.service.GetUnread()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(notifications)
}

// MarkRead flags one notification as read
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	notifID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid notification ID"})
	}

	if err := h.service.MarkRead(notifID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to mark notification as read"})
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}
