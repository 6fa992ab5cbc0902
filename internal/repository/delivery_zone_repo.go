package repository

import (
	"go-cafe-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryZoneRepository interface {
	Create(zone *model.DeliveryZone) error
	FindAll() ([]model.DeliveryZone, error)
	FindActive() ([]model.DeliveryZone, error)
	FindByID(id uuid.UUID) (*model.DeliveryZone, error)
	Update(zone *model.DeliveryZone) error
	Delete(id uuid.UUID) error
}

type deliveryZoneRepo struct {
	db *gorm.DB
}

func NewDeliveryZoneRepo(db *gorm.DB) DeliveryZoneRepository {
	return &deliveryZoneRepo{db}
}

func (r *deliveryZoneRepo) Create(zone *model.DeliveryZone) error {
	return r.db.Create(zone).Error
}

func (r *deliveryZoneRepo) FindAll() ([]model.DeliveryZone, error) {
	var zones []model.DeliveryZone
	err := r.db.Order("city_or_area ASC").Find(&zones).Error
	return zones, err
}

func (r *deliveryZoneRepo) FindActive() ([]model.DeliveryZone, error) {
	var zones []model.DeliveryZone
	err := r.db.Where("is_active = ?", true).Find(&zones).Error
	return zones, err
}

func (r *deliveryZoneRepo) FindByID(id uuid.UUID) (*model.DeliveryZone, error) {
	var zone model.DeliveryZone
	err := r.db.First(&zone, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *deliveryZoneRepo) Update(zone *model.DeliveryZone) error {
	return r.db.Save(zone).Error
}

func (r *deliveryZoneRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.DeliveryZone{}, "id = ?", id).Error
}
