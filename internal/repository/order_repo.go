package repository

import (
	"time"

	"go-cafe-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	FindByID(id uuid.UUID) (*model.Order, error)
	FindForStaff(limit int, statuses []string) ([]model.Order, error)
	FindByCustomer(customerID string, limit int, statuses []string) ([]model.Order, error)
	Update(order *model.Order) error
	FindBetween(start, end time.Time) ([]model.Order, error)
	CountAll() (int64, error)
	CountPending() (int64, error)
	SumRevenue() (float64, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

// Create inserts the order and its lines. Runs on the caller's tx so
// the insert commits or rolls back together with the stock deductions.
func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Lines").First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindForStaff(limit int, statuses []string) ([]model.Order, error) {
	q := r.db.Preload("Lines").Order("created_at DESC").Limit(limit)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var orders []model.Order
	err := q.Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByCustomer(customerID string, limit int, statuses []string) ([]model.Order, error) {
	q := r.db.Preload("Lines").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var orders []model.Order
	err := q.Find(&orders).Error
	return orders, err
}

func (r *orderRepo) Update(order *model.Order) error {
	return r.db.Save(order).Error
}

func (r *orderRepo) FindBetween(start, end time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Lines").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).Count(&count).Error
	return count, err
}

func (r *orderRepo) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).Where("is_completed = ?", false).Count(&count).Error
	return count, err
}

func (r *orderRepo) SumRevenue() (float64, error) {
	var total float64
	err := r.db.Model(&model.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}
