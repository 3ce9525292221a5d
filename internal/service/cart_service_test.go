package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"bazaar/internal/errors"
	"bazaar/internal/model"
)

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindActiveByUser(ctx context.Context, userID uint) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartRepository) GetOrCreateActive(ctx context.Context, userID uint) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartRepository) UpsertItem(ctx context.Context, item *model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) FindItemInActiveCart(ctx context.Context, itemID, userID uint) (*model.CartItem, error) {
	args := m.Called(ctx, itemID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func (m *MockCartRepository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity uint) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteItem(ctx context.Context, itemID uint) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func TestCartService_GetActiveCart(t *testing.T) {
	tests := []struct {
		name          string
		userID        uint
		setupMock     func(*MockCartRepository)
		expectedError error
	}{
		{
			name:   "cart found with items",
			userID: 3,
			setupMock: func(m *MockCartRepository) {
				m.On("FindActiveByUser", mock.Anything, uint(3)).Return(&model.Cart{
					ID:       10,
					UserID:   3,
					IsActive: true,
					Items: []model.CartItem{
						{ID: 1, CartID: 10, ProductID: 5, Quantity: 2},
					},
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:   "no active cart",
			userID: 4,
			setupMock: func(m *MockCartRepository) {
				m.On("FindActiveByUser", mock.Anything, uint(4)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrCartNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCartRepo := new(MockCartRepository)
			tt.setupMock(mockCartRepo)

			service := NewCartService(mockCartRepo, new(MockProductRepository))
			cart, err := service.GetActiveCart(context.Background(), tt.userID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, cart)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.userID, cart.UserID)
			}

			mockCartRepo.AssertExpectations(t)
		})
	}
}

func TestCartService_AddItem(t *testing.T) {
	tests := []struct {
		name          string
		productID     uint
		quantity      uint
		setupMock     func(*MockCartRepository, *MockProductRepository)
		expectedError error
	}{
		{
			name:      "adds item to freshly created cart",
			productID: 5,
			quantity:  2,
			setupMock: func(mCart *MockCartRepository, mProduct *MockProductRepository) {
				mProduct.On("FindByID", mock.Anything, uint(5)).Return(&model.Product{ID: 5, Name: "Laptop"}, nil)
				mCart.On("GetOrCreateActive", mock.Anything, uint(3)).Return(&model.Cart{ID: 10, UserID: 3, IsActive: true}, nil)
				mCart.On("UpsertItem", mock.Anything, &model.CartItem{CartID: 10, ProductID: 5, Quantity: 2}).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:      "zero quantity is accepted",
			productID: 5,
			quantity:  0,
			setupMock: func(mCart *MockCartRepository, mProduct *MockProductRepository) {
				mProduct.On("FindByID", mock.Anything, uint(5)).Return(&model.Product{ID: 5}, nil)
				mCart.On("GetOrCreateActive", mock.Anything, uint(3)).Return(&model.Cart{ID: 10, UserID: 3, IsActive: true}, nil)
				mCart.On("UpsertItem", mock.Anything, &model.CartItem{CartID: 10, ProductID: 5, Quantity: 0}).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:      "unknown product",
			productID: 99,
			quantity:  1,
			setupMock: func(mCart *MockCartRepository, mProduct *MockProductRepository) {
				mProduct.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCartRepo := new(MockCartRepository)
			mockProductRepo := new(MockProductRepository)
			tt.setupMock(mockCartRepo, mockProductRepo)

			service := NewCartService(mockCartRepo, mockProductRepo)
			item, err := service.AddItem(context.Background(), 3, tt.productID, tt.quantity)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, item)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.productID, item.ProductID)
				assert.Equal(t, tt.quantity, item.Quantity)
			}

			mockCartRepo.AssertExpectations(t)
			mockProductRepo.AssertExpectations(t)
		})
	}
}

func TestCartService_UpdateItemQuantity(t *testing.T) {
	tests := []struct {
		name          string
		itemID        uint
		quantity      uint
		setupMock     func(*MockCartRepository)
		expectedError error
	}{
		{
			name:     "overwrites quantity",
			itemID:   1,
			quantity: 7,
			setupMock: func(m *MockCartRepository) {
				m.On("FindItemInActiveCart", mock.Anything, uint(1), uint(3)).Return(&model.CartItem{ID: 1, CartID: 10, ProductID: 5, Quantity: 2}, nil)
				m.On("UpdateItemQuantity", mock.Anything, uint(1), uint(7)).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "item in another user's cart",
			itemID:   2,
			quantity: 1,
			setupMock: func(m *MockCartRepository) {
				m.On("FindItemInActiveCart", mock.Anything, uint(2), uint(3)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrCartItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCartRepo := new(MockCartRepository)
			tt.setupMock(mockCartRepo)

			service := NewCartService(mockCartRepo, new(MockProductRepository))
			err := service.UpdateItemQuantity(context.Background(), 3, tt.itemID, tt.quantity)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockCartRepo.AssertExpectations(t)
		})
	}
}

func TestCartService_RemoveItem(t *testing.T) {
	tests := []struct {
		name          string
		itemID        uint
		setupMock     func(*MockCartRepository)
		expectedError error
	}{
		{
			name:   "removes item",
			itemID: 1,
			setupMock: func(m *MockCartRepository) {
				m.On("FindItemInActiveCart", mock.Anything, uint(1), uint(3)).Return(&model.CartItem{ID: 1, CartID: 10}, nil)
				m.On("DeleteItem", mock.Anything, uint(1)).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:   "missing item",
			itemID: 42,
			setupMock: func(m *MockCartRepository) {
				m.On("FindItemInActiveCart", mock.Anything, uint(42), uint(3)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrCartItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCartRepo := new(MockCartRepository)
			tt.setupMock(mockCartRepo)

			service := NewCartService(mockCartRepo, new(MockProductRepository))
			err := service.RemoveItem(context.Background(), 3, tt.itemID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockCartRepo.AssertExpectations(t)
		})
	}
}

func TestCartTotals(t *testing.T) {
	cart := model.Cart{
		Items: []model.CartItem{
			{Quantity: 2, Product: model.Product{Price: decimal.NewFromFloat(10.00)}},
			{Quantity: 1, Product: model.Product{Price: decimal.NewFromFloat(5.50)}},
		},
	}

	assert.True(t, decimal.NewFromFloat(25.50).Equal(cart.TotalPrice()))
	assert.Equal(t, 2, cart.ItemCount())
}
