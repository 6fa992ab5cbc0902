package repository

import (
	"go-cafe-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	ReplaceRecipe(productID uuid.UUID, recipe []model.RecipeItem) error
	DeductStock(tx *gorm.DB, id uuid.UUID, qty int) (bool, error)
	CountLowStock() (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Recipe").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Recipe").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

// ReplaceRecipe swaps the product's ingredient list wholesale.
func (r *productRepo) ReplaceRecipe(productID uuid.UUID, recipe []model.RecipeItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.RecipeItem{}, "product_id = ?", productID).Error; err != nil {
			return err
		}
		for i := range recipe {
			recipe[i].ID = 0
			recipe[i].ProductID = productID
		}
		if len(recipe) == 0 {
			return nil
		}
		return tx.Create(&recipe).Error
	})
}

// DeductStock decrements pre-made stock only if enough remains. The
// guard in the WHERE clause makes the update atomic at the row level;
// a false return means the condition did not hold.
func (r *productRepo) DeductStock(tx *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *productRepo) CountLowStock() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("is_available = ? AND stock_quantity <= low_stock_threshold", true).
		Count(&count).Error
	return count, err
}
