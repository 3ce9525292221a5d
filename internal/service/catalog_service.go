package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bazaar/internal/errors"
	"bazaar/internal/model"
	"bazaar/internal/repository"
)

// CreateProductInput carries a validated product creation payload. The
// category may be referenced by id or by name; a name is resolved with a
// get-or-create before the product record is built.
type CreateProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	CategoryID    uint
	CategoryName  string
	ImageURL      string
}

// UpdateProductInput carries a partial update; nil fields are untouched.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	StockQuantity *int
	CategoryID    *uint
	CategoryName  *string
	ImageURL      *string
}

// CatalogService handles category and product operations.
type CatalogService interface {
	ListSellerProducts(ctx context.Context, sellerID uint, filter repository.ProductFilter) ([]model.Product, error)
	ListAllProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)
	GetSellerProduct(ctx context.Context, productID, sellerID uint) (*model.Product, error)
	CreateProduct(ctx context.Context, sellerID uint, input CreateProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, sellerID, productID uint, input UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, sellerID, productID uint) error
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ListSellerProducts returns the seller's products matching the filter.
func (s *catalogService) ListSellerProducts(ctx context.Context, sellerID uint, filter repository.ProductFilter) ([]model.Product, error) {
	return s.productRepo.ListBySeller(ctx, sellerID, filter)
}

// ListAllProducts returns every product matching the filter.
func (s *catalogService) ListAllProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	return s.productRepo.ListAll(ctx, filter)
}

// GetSellerProduct returns the product only when the seller owns it; a
// foreign product is reported as not found, never as forbidden.
func (s *catalogService) GetSellerProduct(ctx context.Context, productID, sellerID uint) (*model.Product, error) {
	product, err := s.productRepo.FindByIDAndSeller(ctx, productID, sellerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}

// CreateProduct validates the payload, resolves the category, and stores
// the product for the seller.
func (s *catalogService) CreateProduct(ctx context.Context, sellerID uint, input CreateProductInput) (*model.Product, error) {
	if input.Price.LessThanOrEqual(decimal.Zero) {
		return nil, errors.NewValidationError("price", "must be a positive number")
	}
	if input.StockQuantity < 0 {
		return nil, errors.NewValidationError("stock_quantity", "cannot be negative")
	}

	category, err := s.resolveCategory(ctx, input.CategoryID, input.CategoryName)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: uint(input.StockQuantity),
		SellerID:      sellerID,
		CategoryID:    category.ID,
		ImageURL:      input.ImageURL,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	// Reload with category and seller for the nested representation.
	created, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("reload product: %w", err)
	}
	return created, nil
}

// UpdateProduct applies a partial update to the seller's product.
func (s *catalogService) UpdateProduct(ctx context.Context, sellerID, productID uint, input UpdateProductInput) (*model.Product, error) {
	product, err := s.GetSellerProduct(ctx, productID, sellerID)
	if err != nil {
		return nil, err
	}

	if input.Price != nil {
		if input.Price.LessThanOrEqual(decimal.Zero) {
			return nil, errors.NewValidationError("price", "must be a positive number")
		}
		product.Price = *input.Price
	}
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, errors.NewValidationError("stock_quantity", "cannot be negative")
		}
		product.StockQuantity = uint(*input.StockQuantity)
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.CategoryID != nil || input.CategoryName != nil {
		var id uint
		var name string
		if input.CategoryID != nil {
			id = *input.CategoryID
		}
		if input.CategoryName != nil {
			name = *input.CategoryName
		}
		category, err := s.resolveCategory(ctx, id, name)
		if err != nil {
			return nil, err
		}
		product.CategoryID = category.ID
		product.Category = *category
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// DeleteProduct hard-deletes the seller's product.
func (s *catalogService) DeleteProduct(ctx context.Context, sellerID, productID uint) error {
	rows, err := s.productRepo.DeleteByIDAndSeller(ctx, productID, sellerID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if rows == 0 {
		return errors.ErrProductNotFound
	}
	return nil
}

func (s *catalogService) resolveCategory(ctx context.Context, id uint, name string) (*model.Category, error) {
	if id != 0 {
		category, err := s.categoryRepo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.NewValidationError("category", "does not exist")
			}
			return nil, fmt.Errorf("find category: %w", err)
		}
		return category, nil
	}
	if name != "" {
		category, err := s.categoryRepo.FindOrCreateByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("resolve category: %w", err)
		}
		return category, nil
	}
	return nil, errors.NewValidationError("category", "is required")
}
