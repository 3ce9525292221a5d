package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"bazaar/internal/errors"
	"bazaar/internal/model"
	"bazaar/internal/repository"
)

// CreateBlogInput carries a validated blog creation payload.
type CreateBlogInput struct {
	Title    string
	Content  string
	Status   model.BlogStatus
	Category string
	ImageURL string
}

// UpdateBlogInput carries a partial update; nil fields are untouched.
type UpdateBlogInput struct {
	Title    *string
	Content  *string
	Status   *model.BlogStatus
	Category *string
	ImageURL *string
}

// BlogService handles blog and comment operations.
type BlogService interface {
	ListAuthorBlogs(ctx context.Context, authorID uint, filter repository.BlogFilter) ([]model.Blog, error)
	ListAllBlogs(ctx context.Context, filter repository.BlogFilter) ([]model.Blog, error)
	GetBlog(ctx context.Context, blogID uint) (*model.Blog, error)
	CreateBlog(ctx context.Context, authorID uint, input CreateBlogInput) (*model.Blog, error)
	UpdateBlog(ctx context.Context, authorID, blogID uint, input UpdateBlogInput) (*model.Blog, error)
	DeleteBlog(ctx context.Context, authorID, blogID uint) error
	CountBlogs(ctx context.Context, filter repository.BlogFilter) (int64, []repository.CategoryCount, error)
	ListComments(ctx context.Context, blogID uint) ([]model.Comment, error)
	CreateComment(ctx context.Context, blogID, authorID uint, content string) (*model.Comment, error)
}

type blogService struct {
	blogRepo    repository.BlogRepository
	commentRepo repository.CommentRepository
}

// NewBlogService creates a new blog service.
func NewBlogService(blogRepo repository.BlogRepository, commentRepo repository.CommentRepository) BlogService {
	return &blogService{
		blogRepo:    blogRepo,
		commentRepo: commentRepo,
	}
}

// ListAuthorBlogs returns the author's blogs matching the filter, newest
// first.
func (s *blogService) ListAuthorBlogs(ctx context.Context, authorID uint, filter repository.BlogFilter) ([]model.Blog, error) {
	return s.blogRepo.ListByAuthor(ctx, authorID, filter)
}

// ListAllBlogs returns every blog matching the filter, newest first.
func (s *blogService) ListAllBlogs(ctx context.Context, filter repository.BlogFilter) ([]model.Blog, error) {
	return s.blogRepo.ListAll(ctx, filter)
}

// GetBlog returns a single blog by id.
func (s *blogService) GetBlog(ctx context.Context, blogID uint) (*model.Blog, error) {
	blog, err := s.blogRepo.FindByID(ctx, blogID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBlogNotFound
		}
		return nil, fmt.Errorf("find blog: %w", err)
	}
	return blog, nil
}

// CreateBlog stores a new blog for the author. Publishing stamps
// published_at.
func (s *blogService) CreateBlog(ctx context.Context, authorID uint, input CreateBlogInput) (*model.Blog, error) {
	status := input.Status
	if status == "" {
		status = model.BlogStatusDraft
	}

	blog := &model.Blog{
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: authorID,
		Status:   status,
		Category: input.Category,
		ImageURL: input.ImageURL,
	}
	if status == model.BlogStatusPublished {
		now := time.Now()
		blog.PublishedAt = &now
	}

	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}

	created, err := s.blogRepo.FindByID(ctx, blog.ID)
	if err != nil {
		return nil, fmt.Errorf("reload blog: %w", err)
	}
	return created, nil
}

// UpdateBlog applies a partial update to the author's blog. A foreign blog
// is reported as not found, never as forbidden.
func (s *blogService) UpdateBlog(ctx context.Context, authorID, blogID uint, input UpdateBlogInput) (*model.Blog, error) {
	blog, err := s.blogRepo.FindByIDAndAuthor(ctx, blogID, authorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBlogNotFound
		}
		return nil, fmt.Errorf("find blog: %w", err)
	}

	if input.Title != nil {
		blog.Title = *input.Title
	}
	if input.Content != nil {
		blog.Content = *input.Content
	}
	if input.Category != nil {
		blog.Category = *input.Category
	}
	if input.ImageURL != nil {
		blog.ImageURL = *input.ImageURL
	}
	if input.Status != nil {
		if *input.Status == model.BlogStatusPublished && blog.Status != model.BlogStatusPublished {
			now := time.Now()
			blog.PublishedAt = &now
		}
		blog.Status = *input.Status
	}

	if err := s.blogRepo.Save(ctx, blog); err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return blog, nil
}

// DeleteBlog hard-deletes the author's blog.
func (s *blogService) DeleteBlog(ctx context.Context, authorID, blogID uint) error {
	rows, err := s.blogRepo.DeleteByIDAndAuthor(ctx, blogID, authorID)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if rows == 0 {
		return errors.ErrBlogNotFound
	}
	return nil
}

// CountBlogs returns the total blog count and a per-category breakdown.
func (s *blogService) CountBlogs(ctx context.Context, filter repository.BlogFilter) (int64, []repository.CategoryCount, error) {
	return s.blogRepo.CountByCategory(ctx, filter)
}

// ListComments returns a blog's comments newest first, failing when the
// blog itself does not exist.
func (s *blogService) ListComments(ctx context.Context, blogID uint) ([]model.Comment, error) {
	if _, err := s.GetBlog(ctx, blogID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByBlog(ctx, blogID)
}

// CreateComment posts a comment on a blog.
func (s *blogService) CreateComment(ctx context.Context, blogID, authorID uint, content string) (*model.Comment, error) {
	if _, err := s.GetBlog(ctx, blogID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		BlogID:   blogID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}
