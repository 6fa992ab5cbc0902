package repository

import (
	"go-cafe-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(item *model.InventoryItem) error
	FindAll() ([]model.InventoryItem, error)
	FindByID(id uuid.UUID) (*model.InventoryItem, error)
	FindByName(name string) (*model.InventoryItem, error)
	Update(item *model.InventoryItem) error
	FindLowStock() ([]model.InventoryItem, error)
	CountLowStock() (int64, error)
	FindAutoReorderDue() ([]model.InventoryItem, error)
	Deduct(tx *gorm.DB, id uuid.UUID, qty float64) (bool, error)
	Replenish(id uuid.UUID, qty float64) error
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) Create(item *model.InventoryItem) error {
	return r.db.Create(item).Error
}

func (r *inventoryRepo) FindAll() ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Order("name ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepo) FindByID(id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) FindByName(name string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) Update(item *model.InventoryItem) error {
	return r.db.Save(item).Error
}

func (r *inventoryRepo) FindLowStock() ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Where("current_stock <= reorder_level").Order("name ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepo) CountLowStock() (int64, error) {
	var count int64
	err := r.db.Model(&model.InventoryItem{}).
		Where("current_stock <= reorder_level").
		Count(&count).Error
	return count, err
}

func (r *inventoryRepo) FindAutoReorderDue() ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Where("auto_reorder = ? AND current_stock <= reorder_level", true).Find(&items).Error
	return items, err
}

// Deduct decrements the ingredient stock only if enough remains. The
// RowsAffected outcome is the authoritative sufficiency check, not any
// earlier read.
func (r *inventoryRepo) Deduct(tx *gorm.DB, id uuid.UUID, qty float64) (bool, error) {
	res := tx.Model(&model.InventoryItem{}).
		Where("id = ? AND current_stock >= ?", id, qty).
		UpdateColumn("current_stock", gorm.Expr("current_stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *inventoryRepo) Replenish(id uuid.UUID, qty float64) error {
	return r.db.Model(&model.InventoryItem{}).
		Where("id = ?", id).
		UpdateColumn("current_stock", gorm.Expr("current_stock + ?", qty)).Error
}
