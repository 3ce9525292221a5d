package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"bazaar/internal/errors"
	"bazaar/internal/model"
	"bazaar/internal/repository"
)

// CartService handles cart retrieval and item mutation for a user's
// single active cart.
type CartService interface {
	GetActiveCart(ctx context.Context, userID uint) (*model.Cart, error)
	AddItem(ctx context.Context, userID, productID uint, quantity uint) (*model.CartItem, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID uint, quantity uint) error
	RemoveItem(ctx context.Context, userID, itemID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetActiveCart returns the user's active cart with items and products
// loaded, or ErrCartNotFound when none exists.
func (s *cartService) GetActiveCart(ctx context.Context, userID uint) (*model.Cart, error) {
	cart, err := s.cartRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCartNotFound
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return cart, nil
}

// AddItem puts a product into the user's active cart, creating the cart on
// demand. Re-adding a product increments the existing row's quantity by
// the requested amount instead of creating a second row. A failed add
// after the cart was created leaves the cart in place.
func (s *cartService) AddItem(ctx context.Context, userID, productID uint, quantity uint) (*model.CartItem, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	cart, err := s.cartRepo.GetOrCreateActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}

	item := &model.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.UpsertItem(ctx, item); err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}
	return item, nil
}

// UpdateItemQuantity overwrites the quantity of an item in the caller's
// active cart. A foreign or missing item is reported as not found.
func (s *cartService) UpdateItemQuantity(ctx context.Context, userID, itemID uint, quantity uint) error {
	if _, err := s.cartRepo.FindItemInActiveCart(ctx, itemID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrCartItemNotFound
		}
		return fmt.Errorf("find cart item: %w", err)
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

// RemoveItem hard-deletes an item from the caller's active cart.
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	if _, err := s.cartRepo.FindItemInActiveCart(ctx, itemID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrCartItemNotFound
		}
		return fmt.Errorf("find cart item: %w", err)
	}

	if err := s.cartRepo.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}
