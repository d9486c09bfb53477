package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nmdong/VietThanhProductions/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductService handles catalog persistence
type ProductService struct {
	db *gorm.DB
}

// NewProductService creates a new product service
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// ProductInput carries the writable product fields
type ProductInput struct {
	Code        string                 `json:"code" validate:"required,max=50"`
	Name        string                 `json:"name" validate:"required,max=255"`
	Category    string                 `json:"category" validate:"required,max=100"`
	Subcategory string                 `json:"subcategory,omitempty" validate:"max=100"`
	Price       *float64               `json:"price" validate:"required,gte=0"`
	Stock       *int                   `json:"stock" validate:"required,gte=0"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
}

// ProductUpdate carries a partial update; nil fields are left unchanged
type ProductUpdate struct {
	Name        *string                `json:"name,omitempty" validate:"omitempty,max=255"`
	Category    *string                `json:"category,omitempty" validate:"omitempty,max=100"`
	Subcategory *string                `json:"subcategory,omitempty" validate:"omitempty,max=100"`
	Price       *float64               `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock       *int                   `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
}

// List returns every product ordered by id
func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get returns a single product
func (s *ProductService) Get(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &product, nil
}

// Create inserts a product
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	product := model.Product{
		Code:        in.Code,
		Name:        in.Name,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		Price:       *in.Price,
		Stock:       *in.Stock,
	}
	if len(in.Attributes) > 0 {
		product.Attributes = datatypes.JSONMap(in.Attributes)
	}

	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrProductExists
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

// Update applies the non-nil fields of in to the product
func (s *ProductService) Update(ctx context.Context, id uint, in ProductUpdate) (*model.Product, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.Subcategory != nil {
		updates["subcategory"] = *in.Subcategory
	}
	if in.Price != nil {
		updates["price"] = *in.Price
	}
	if in.Stock != nil {
		updates["stock"] = *in.Stock
	}
	if in.Attributes != nil {
		updates["attributes"] = datatypes.JSONMap(in.Attributes)
	}

	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return product, nil
	}

	if err := s.db.WithContext(ctx).Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
