package repository

import (
	"go-cafe-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(n *model.Notification) error
	FindForRole(role string, limit int) ([]model.Notification, error)
	FindForCustomer(customerID string, limit int) ([]model.Notification, error)
	FindUnread() ([]model.Notification, error)
	CountUnread() (int64, error)
	MarkRead(id uuid.UUID) error
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db}
}

func (r *notificationRepo) Create(n *model.Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepo) FindForRole(role string, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.Where("target_role = ?", role).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// FindForCustomer returns notifications addressed to one customer,
// excluding staff-only messages.
func (r *notificationRepo) FindForCustomer(customerID string, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.Where("customer_id = ? AND target_role <> ?", customerID, model.RoleStaff).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepo) FindUnread() ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.Where("is_read = ?", false).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepo) CountUnread() (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

func (r *notificationRepo) MarkRead(id uuid.UUID) error {
	return r.db.Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}
