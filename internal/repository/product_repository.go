package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"bazaar/internal/model"
)

// ProductFilter carries the optional listing predicates. Pointer fields
// distinguish "absent" from zero; all present predicates compose with AND.
type ProductFilter struct {
	Category string
	Price    *float64
	MinPrice *float64
	MaxPrice *float64
}

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Save(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindByIDAndSeller(ctx context.Context, id, sellerID uint) (*model.Product, error)
	ListBySeller(ctx context.Context, sellerID uint, filter ProductFilter) ([]model.Product, error)
	ListAll(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	DeleteByIDAndSeller(ctx context.Context, id, sellerID uint) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) Save(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Seller").
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDAndSeller scopes the lookup to the seller, so a foreign product
// behaves exactly like a missing one.
func (r *productRepository) FindByIDAndSeller(ctx context.Context, id, sellerID uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Seller").
		Where("products.id = ? AND products.seller_id = ?", id, sellerID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListBySeller(ctx context.Context, sellerID uint, filter ProductFilter) ([]model.Product, error) {
	q := r.applyFilter(r.db.WithContext(ctx), filter).
		Where("products.seller_id = ?", sellerID)

	var products []model.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) ListAll(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	var products []model.Product
	if err := r.applyFilter(r.db.WithContext(ctx), filter).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// DeleteByIDAndSeller hard-deletes the seller's product and returns the
// number of rows removed, zero meaning not found (or not owned).
func (r *productRepository) DeleteByIDAndSeller(ctx context.Context, id, sellerID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND seller_id = ?", id, sellerID).
		Delete(&model.Product{})
	return res.RowsAffected, res.Error
}

func (r *productRepository) applyFilter(q *gorm.DB, filter ProductFilter) *gorm.DB {
	q = q.Model(&model.Product{}).Preload("Category").Preload("Seller")

	if filter.Category != "" {
		pattern := "%" + strings.ToLower(filter.Category) + "%"
		q = q.Joins("JOIN categories ON categories.id = products.category_id").
			Where("LOWER(categories.name) LIKE ?", pattern)
	}
	if filter.Price != nil {
		q = q.Where("products.price = ?", *filter.Price)
	}
	if filter.MinPrice != nil {
		q = q.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("products.price <= ?", *filter.MaxPrice)
	}
	return q
}
