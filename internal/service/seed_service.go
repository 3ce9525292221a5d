package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bazaar/internal/model"
	"bazaar/internal/repository"
)

// SeedResult reports how many demo records were created.
type SeedResult struct {
	Users      int `json:"users"`
	Categories int `json:"categories"`
	Products   int `json:"products"`
}

// SeedService loads demo users, categories, and products. Seeding is
// idempotent: records already present are left untouched.
type SeedService interface {
	SeedCatalog(ctx context.Context) (*SeedResult, error)
}

type seedService struct {
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewSeedService creates a new seed service.
func NewSeedService(
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) SeedService {
	return &seedService{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

type seedProduct struct {
	name        string
	description string
	price       string
	stock       int
	category    string
}

var seedUsers = []model.User{
	{Username: "demo_seller", Email: "seller@example.com", Role: "user"},
	{Username: "demo_guest", Email: "guest@example.com", Role: "guest"},
}

var seedProducts = []seedProduct{
	{"Laptop", "15-inch developer laptop", "1299.99", 10, "Electronics"},
	{"Headphones", "Noise cancelling over-ear", "199.90", 25, "Electronics"},
	{"Go in Practice", "Field-tested Go patterns", "39.50", 40, "Books"},
	{"Rain Jacket", "Waterproof shell", "89.00", 15, "Clothing"},
}

const seedPassword = "password123"

// SeedCatalog inserts the demo dataset, skipping anything already present.
func (s *seedService) SeedCatalog(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	var seller *model.User
	for _, u := range seedUsers {
		existing, err := s.userRepo.FindByUsername(ctx, u.Username)
		if err == nil {
			if existing.Role == "user" && seller == nil {
				seller = existing
			}
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check seed user %s: %w", u.Username, err)
		}

		user := u
		user.PasswordHash = string(hash)
		if err := s.userRepo.Create(ctx, &user); err != nil {
			return nil, fmt.Errorf("create seed user %s: %w", u.Username, err)
		}
		if user.Role == "user" && seller == nil {
			seller = &user
		}
		result.Users++
	}
	if seller == nil {
		// All users pre-existed but none with the seller role.
		existing, err := s.userRepo.FindByUsername(ctx, seedUsers[0].Username)
		if err != nil {
			return nil, fmt.Errorf("resolve seed seller: %w", err)
		}
		seller = existing
	}

	for _, p := range seedProducts {
		category, err := s.categoryRepo.FindOrCreateByName(ctx, p.category)
		if err != nil {
			return nil, fmt.Errorf("resolve seed category %s: %w", p.category, err)
		}

		existing, err := s.productRepo.ListBySeller(ctx, seller.ID, repository.ProductFilter{})
		if err != nil {
			return nil, fmt.Errorf("list seed products: %w", err)
		}
		if containsProduct(existing, p.name) {
			continue
		}

		price, err := decimal.NewFromString(p.price)
		if err != nil {
			return nil, fmt.Errorf("parse seed price for %s: %w", p.name, err)
		}

		product := &model.Product{
			Name:          p.name,
			Description:   p.description,
			Price:         price,
			StockQuantity: uint(p.stock),
			SellerID:      seller.ID,
			CategoryID:    category.ID,
		}
		if err := s.productRepo.Create(ctx, product); err != nil {
			return nil, fmt.Errorf("create seed product %s: %w", p.name, err)
		}
		result.Products++
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	result.Categories = len(categories)

	return result, nil
}

func containsProduct(products []model.Product, name string) bool {
	for i := range products {
		if products[i].Name == name {
			return true
		}
	}
	return false
}
