package service

import (
	"go-cafe-api/internal/model"
	"go-cafe-api/internal/repository"

	"github.com/google/uuid"
)

type NotificationService interface {
	GetForRole(role string, limit int) ([]model.Notification, error)
	GetForCustomer(customerID string, limit int) ([]model.Notification, error)
	GetUnread() ([]model.Notification, error)
	MarkRead(id uuid.UUID) error
}

type notificationService struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notifRepo: notifRepo}
}

func (s *notificationService) GetForRole(role string, limit int) ([]model.Notification, error) {
	return s.notifRepo.FindForRole(role, limit)
}

func (s *notificationService) GetForCustomer(customerID string, limit int) ([]model.Notification, error) {
	return s.notifRepo.FindForCustomer(customerID, limit)
}

func (s *notificationService) GetUnread() ([]model.Notification, error) {
	return s.notifRepo.FindUnread()
}

func (s *notificationService) MarkRead(id uuid.UUID) error {
	return s.notifRepo.MarkRead(id)
}
