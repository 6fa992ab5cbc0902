package service

import (
	"fmt"
	"strings"

	"go-cafe-api/internal/model"
	"go-cafe-api/internal/repository"
	"go-cafe-api/pkg/validator"

	"github.com/google/uuid"
)

// defaultOutOfCoverageFee applies when the address matches no active
// delivery zone.
const defaultOutOfCoverageFee = 80.00

type DeliveryService interface {
	FeeFor(address string) (float64, error)
	GetZones() ([]model.DeliveryZone, error)
	CreateZone(zone *model.DeliveryZone, userID string) error
	UpdateZone(id uuid.UUID, zone *model.DeliveryZone, userID string) (*model.DeliveryZone, error)
	DeleteZone(id uuid.UUID) error
}

type deliveryService struct {
	zoneRepo repository.DeliveryZoneRepository
}

func NewDeliveryService(zoneRepo repository.DeliveryZoneRepository) DeliveryService {
	return &deliveryService{zoneRepo: zoneRepo}
}

// FeeFor resolves the delivery fee for an address by case-insensitive
// substring match against active zones. An empty address means pickup:
// no fee.
func (s *deliveryService) FeeFor(address string) (float64, error) {
	if strings.TrimSpace(address) == "" {
		return 0, nil
	}

	zones, err := s.zoneRepo.FindActive()
	if err != nil {
		return 0, err
	}

	lowered := strings.ToLower(address)
	for _, zone := range zones {
		if strings.Contains(lowered, strings.ToLower(zone.CityOrArea)) {
			return zone.Fee, nil
		}
	}

	return defaultOutOfCoverageFee, nil
}

func (s *deliveryService) GetZones() ([]model.DeliveryZone, error) {
	return s.zoneRepo.FindAll()
}

func (s *deliveryService) CreateZone(zone *model.DeliveryZone, userID string) error {
	if errs := validator.ValidateStruct(zone); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	zone.CreatedBy = userID
	zone.UpdatedBy = userID

	return s.zoneRepo.Create(zone)
}

func (s *deliveryService) UpdateZone(id uuid.UUID, zone *model.DeliveryZone, userID string) (*model.DeliveryZone, error) {
	existing, err := s.zoneRepo.FindByID(id)
	if err != nil {
		return nil, ErrDeliveryZoneNotFound
	}

	if errs := validator.ValidateStruct(zone); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing.CityOrArea = zone.CityOrArea
	existing.Fee = zone.Fee
	existing.IsActive = zone.IsActive
	existing.UpdatedBy = userID

	if err := s.zoneRepo.Update(existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *deliveryService) DeleteZone(id uuid.UUID) error {
	if _, err := s.zoneRepo.FindByID(id); err != nil {
		return ErrDeliveryZoneNotFound
	}
	return s.zoneRepo.Delete(id)
}
