package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item owned by its seller.
type Product struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"size:255;not null"`
	Description   string          `json:"description" gorm:"type:text;not null"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	StockQuantity uint            `json:"stock_quantity" gorm:"not null"`
	SellerID      uint            `json:"seller_id" gorm:"not null;index"`
	CategoryID    uint            `json:"category_id" gorm:"not null;index"`
	ImageURL      string          `json:"image,omitempty" gorm:"size:512"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relations
	Seller   User     `json:"-" gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE"`
	Category Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// InStock reports whether any stock remains.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}
