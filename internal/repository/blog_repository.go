package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"bazaar/internal/model"
)

// BlogFilter carries the optional blog listing predicates: exact status
// match and case-insensitive category substring.
type BlogFilter struct {
	Status   string
	Category string
}

// CategoryCount is one row of the per-category blog aggregate.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// BlogRepository defines blog persistence operations.
type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	Save(ctx context.Context, blog *model.Blog) error
	FindByID(ctx context.Context, id uint) (*model.Blog, error)
	FindByIDAndAuthor(ctx context.Context, id, authorID uint) (*model.Blog, error)
	ListByAuthor(ctx context.Context, authorID uint, filter BlogFilter) ([]model.Blog, error)
	ListAll(ctx context.Context, filter BlogFilter) ([]model.Blog, error)
	DeleteByIDAndAuthor(ctx context.Context, id, authorID uint) (int64, error)
	CountByCategory(ctx context.Context, filter BlogFilter) (int64, []CategoryCount, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *model.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

func (r *blogRepository) Save(ctx context.Context, blog *model.Blog) error {
	return r.db.WithContext(ctx).Save(blog).Error
}

func (r *blogRepository) FindByID(ctx context.Context, id uint) (*model.Blog, error) {
	var blog model.Blog
	if err := r.db.WithContext(ctx).Preload("Author").First(&blog, id).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// FindByIDAndAuthor scopes the lookup to the author, so a foreign blog
// behaves exactly like a missing one.
func (r *blogRepository) FindByIDAndAuthor(ctx context.Context, id, authorID uint) (*model.Blog, error) {
	var blog model.Blog
	err := r.db.WithContext(ctx).Preload("Author").
		Where("id = ? AND author_id = ?", id, authorID).
		First(&blog).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) ListByAuthor(ctx context.Context, authorID uint, filter BlogFilter) ([]model.Blog, error) {
	q := r.applyFilter(r.db.WithContext(ctx), filter).Where("author_id = ?", authorID)

	var blogs []model.Blog
	if err := q.Order("created_at DESC").Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepository) ListAll(ctx context.Context, filter BlogFilter) ([]model.Blog, error) {
	var blogs []model.Blog
	err := r.applyFilter(r.db.WithContext(ctx), filter).
		Order("created_at DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

// DeleteByIDAndAuthor hard-deletes the author's blog and returns the number
// of rows removed, zero meaning not found (or not owned).
func (r *blogRepository) DeleteByIDAndAuthor(ctx context.Context, id, authorID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		Delete(&model.Blog{})
	return res.RowsAffected, res.Error
}

// CountByCategory returns the total blog count and a per-category
// breakdown, honoring the same filters as the listings.
func (r *blogRepository) CountByCategory(ctx context.Context, filter BlogFilter) (int64, []CategoryCount, error) {
	base := r.applyFilter(r.db.WithContext(ctx), filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var counts []CategoryCount
	err := base.Session(&gorm.Session{}).
		Select("category, COUNT(id) AS count").
		Group("category").
		Order("category").
		Scan(&counts).Error
	if err != nil {
		return 0, nil, err
	}
	return total, counts, nil
}

func (r *blogRepository) applyFilter(q *gorm.DB, filter BlogFilter) *gorm.DB {
	q = q.Model(&model.Blog{}).Preload("Author")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(filter.Category)+"%")
	}
	return q
}

// CommentRepository defines comment persistence operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByBlog(ctx context.Context, blogID uint) ([]model.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListByBlog returns a blog's comments newest first.
func (r *commentRepository) ListByBlog(ctx context.Context, blogID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).Preload("Author").
		Where("blog_id = ?", blogID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
