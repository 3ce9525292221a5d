package model

import "time"

// User represents an authenticated user in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;not null;default:'guest';index"`
	Phone        string    `json:"phone,omitempty" gorm:"size:15"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Products []Product `json:"-" gorm:"foreignKey:SellerID"`
	Carts    []Cart    `json:"-" gorm:"foreignKey:UserID"`
	Blogs    []Blog    `json:"-" gorm:"foreignKey:AuthorID"`
}
