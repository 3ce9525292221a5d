package model

import "time"

// Category groups products. Names are not unique: the catalog resolves
// categories by name with a get-or-create, so two sellers racing on the
// same new name can produce duplicates.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Products []Product `json:"-" gorm:"foreignKey:CategoryID"`
}
