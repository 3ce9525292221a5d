package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart holds a user's in-progress items. One active cart per user; the
// repository enforces this with a get-or-create inside a transaction.
type Cart struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	IsActive  bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User  User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Items []CartItem `json:"items" gorm:"foreignKey:CartID"`
}

// TotalPrice sums product price times quantity over all loaded items.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].TotalPrice())
	}
	return total
}

// ItemCount is the number of item rows, not the sum of quantities.
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

// CartItem references a product inside a cart. The (cart_id, product_id)
// pair is unique: re-adding a product upserts into the existing row by
// incrementing its quantity. Quantity carries no column default: a zero
// would otherwise be dropped from the insert and silently become the
// default instead of the requested amount.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CartID    uint      `json:"cart_id" gorm:"not null;uniqueIndex:idx_cart_product"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_product"`
	Quantity  uint      `json:"quantity" gorm:"not null"`
	AddedAt   time.Time `json:"added_at" gorm:"autoCreateTime"`

	// Relations
	Cart    Cart    `json:"-" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	Product Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TotalPrice is product price times quantity for this row.
func (i *CartItem) TotalPrice() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
