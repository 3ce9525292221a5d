package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bazaar/internal/model"
)

// CartRepository defines cart and cart item persistence operations.
type CartRepository interface {
	FindActiveByUser(ctx context.Context, userID uint) (*model.Cart, error)
	GetOrCreateActive(ctx context.Context, userID uint) (*model.Cart, error)
	UpsertItem(ctx context.Context, item *model.CartItem) error
	FindItemInActiveCart(ctx context.Context, itemID, userID uint) (*model.CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity uint) error
	DeleteItem(ctx context.Context, itemID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// FindActiveByUser returns the user's active cart with items and their
// products loaded.
func (r *cartRepository) FindActiveByUser(ctx context.Context, userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateActive returns the user's active cart, creating one if none
// exists. The select-then-insert runs inside a transaction so a lost race
// is limited to concurrent first requests.
func (r *cartRepository) GetOrCreateActive(ctx context.Context, userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where(model.Cart{UserID: userID, IsActive: true}).
			Attrs(model.Cart{UserID: userID, IsActive: true}).
			FirstOrCreate(&cart).Error
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpsertItem inserts the item or, when a row for (cart_id, product_id)
// already exists, atomically increments its quantity by the requested
// amount. The merge happens in the database, not in application code.
func (r *cartRepository) UpsertItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + VALUES(quantity)"),
		}),
	}).Create(item).Error
}

// FindItemInActiveCart resolves a cart item only when it belongs to the
// caller's active cart. A foreign or inactive-cart item is a not-found.
func (r *cartRepository) FindItemInActiveCart(ctx context.Context, itemID, userID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ? AND carts.is_active = ?", itemID, userID, true).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity uint) error {
	return r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

func (r *cartRepository) DeleteItem(ctx context.Context, itemID uint) error {
	return r.db.WithContext(ctx).Delete(&model.CartItem{}, itemID).Error
}
