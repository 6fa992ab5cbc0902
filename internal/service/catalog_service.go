package service

import (
	"fmt"

	"go-cafe-api/internal/model"
	"go-cafe-api/internal/repository"
	"go-cafe-api/internal/ws"
	"go-cafe-api/pkg/validator"

	"github.com/google/uuid"
)

type CatalogService interface {
	CreateProduct(req *model.Product, userID string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetAllProducts() ([]model.Product, error)
	GetAvailableMenu() ([]MenuItemView, error)
	GetIngredients(productID uuid.UUID) ([]model.RecipeItem, error)
	UpdateIngredients(productID uuid.UUID, recipe []model.RecipeItem) error
}

// MenuItemView is the customer-facing menu entry with a computed
// availability verdict.
type MenuItemView struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Price             float64   `json:"price"`
	Category          string    `json:"category"`
	ImageURL          string    `json:"image_url,omitempty"`
	StockQuantity     int       `json:"stock_quantity"`
	HasSizes          bool      `json:"has_sizes"`
	Sizes             []string  `json:"sizes,omitempty"`
	HasMoods          bool      `json:"has_moods"`
	Moods             []string  `json:"moods,omitempty"`
	HasSugarLevels    bool      `json:"has_sugar_levels"`
	SugarLevels       []int64   `json:"sugar_levels,omitempty"`
	IsAvailable       bool      `json:"is_available"`
	UnavailableReason string    `json:"unavailable_reason,omitempty"`
}

type catalogService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	wsHub         *ws.Hub
}

func NewCatalogService(productRepo repository.ProductRepository, inventoryRepo repository.InventoryRepository, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		wsHub:         hub,
	}
}

func (s *catalogService) CreateProduct(req *model.Product, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if err := s.validateRecipe(req.Recipe); err != nil {
		return err
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	if s.wsHub != nil {
		go s.wsHub.BroadcastEvent("menu_item_created", map[string]interface{}{
			"id":    req.ID,
			"name":  req.Name,
			"price": req.Price,
		})
	}

	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing.Name = req.Name
	existing.Price = req.Price
	existing.StockQuantity = req.StockQuantity
	existing.LowStockThreshold = req.LowStockThreshold
	existing.Category = req.Category
	existing.IsAvailable = req.IsAvailable
	existing.ImageURL = req.ImageURL
	existing.HasSizes = req.HasSizes
	existing.Sizes = req.Sizes
	existing.HasMoods = req.HasMoods
	existing.Moods = req.Moods
	existing.HasSugarLevels = req.HasSugarLevels
	existing.SugarLevels = req.SugarLevels
	existing.UpdatedBy = userID

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

// GetAvailableMenu returns every product with a computed availability
// verdict: the manual override wins, then pre-made stock, then per-unit
// ingredient coverage. Untracked products are always available.
func (s *catalogService) GetAvailableMenu() ([]MenuItemView, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	stock := map[uuid.UUID]model.InventoryItem{}
	items, err := s.inventoryRepo.FindAll()
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		stock[item.ID] = item
	}

	views := make([]MenuItemView, 0, len(products))
	for _, p := range products {
		view := MenuItemView{
			ID:             p.ID,
			Name:           p.Name,
			Price:          p.Price,
			Category:       p.Category,
			ImageURL:       p.ImageURL,
			StockQuantity:  p.StockQuantity,
			HasSizes:       p.HasSizes,
			Sizes:          p.Sizes,
			HasMoods:       p.HasMoods,
			Moods:          p.Moods,
			HasSugarLevels: p.HasSugarLevels,
			SugarLevels:    p.SugarLevels,
			IsAvailable:    true,
		}

		switch {
		case !p.IsAvailable:
			view.IsAvailable = false
			view.UnavailableReason = "Temporarily unavailable"
		case p.StockQuantity > 0:
			// Served from pre-made stock.
		case p.HasRecipe():
			for _, ri := range p.Recipe {
				item, ok := stock[ri.InventoryItemID]
				if !ok {
					view.IsAvailable = false
					view.UnavailableReason = "Ingredient no longer stocked"
					break
				}
				if item.CurrentStock < ri.QuantityRequired {
					view.IsAvailable = false
					view.UnavailableReason = fmt.Sprintf("Out of %s", item.Name)
					break
				}
			}
		}

		views = append(views, view)
	}

	return views, nil
}

func (s *catalogService) GetIngredients(productID uuid.UUID) ([]model.RecipeItem, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product.Recipe, nil
}

// UpdateIngredients replaces a product's recipe after verifying every
// referenced ingredient exists.
func (s *catalogService) UpdateIngredients(productID uuid.UUID, recipe []model.RecipeItem) error {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return ErrProductNotFound
	}
	if err := s.validateRecipe(recipe); err != nil {
		return err
	}
	return s.productRepo.ReplaceRecipe(productID, recipe)
}

func (s *catalogService) validateRecipe(recipe []model.RecipeItem) error {
	for _, ri := range recipe {
		if ri.QuantityRequired <= 0 {
			return fmt.Errorf("recipe quantity for ingredient %s must be greater than 0", ri.InventoryItemID)
		}
		if _, err := s.inventoryRepo.FindByID(ri.InventoryItemID); err != nil {
			return fmt.Errorf("%w: recipe references %s", ErrInventoryItemNotFound, ri.InventoryItemID)
		}
	}
	return nil
}
