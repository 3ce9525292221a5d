package model

import "time"

// BlogStatus represents the publication state of a blog.
type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
	BlogStatusArchived  BlogStatus = "archived"
)

// Blog is an authored post with a publication lifecycle. Category is free
// text, unlike product categories.
type Blog struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Content     string     `json:"content" gorm:"type:text;not null"`
	AuthorID    uint       `json:"author_id" gorm:"not null;index"`
	Status      BlogStatus `json:"status" gorm:"type:varchar(10);not null;default:'draft';index"`
	Category    string     `json:"category" gorm:"size:100"`
	ImageURL    string     `json:"image,omitempty" gorm:"size:512"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Author   User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"foreignKey:BlogID"`
}

// Excerpt returns a short preview of the content.
func (b *Blog) Excerpt() string {
	if len(b.Content) > 100 {
		return b.Content[:100] + "..."
	}
	return b.Content
}

// Comment is a reader's note on a blog.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BlogID    uint      `json:"blog_id" gorm:"not null;index"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Blog   Blog `json:"-" gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE"`
	Author User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
