package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"bazaar/internal/errors"
	"bazaar/internal/model"
	"bazaar/internal/repository"
)

// MockBlogRepository is a mock implementation of BlogRepository.
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) Create(ctx context.Context, blog *model.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) Save(ctx context.Context, blog *model.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) FindByID(ctx context.Context, id uint) (*model.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Blog), args.Error(1)
}

func (m *MockBlogRepository) FindByIDAndAuthor(ctx context.Context, id, authorID uint) (*model.Blog, error) {
	args := m.Called(ctx, id, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Blog), args.Error(1)
}

func (m *MockBlogRepository) ListByAuthor(ctx context.Context, authorID uint, filter repository.BlogFilter) ([]model.Blog, error) {
	args := m.Called(ctx, authorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Blog), args.Error(1)
}

func (m *MockBlogRepository) ListAll(ctx context.Context, filter repository.BlogFilter) ([]model.Blog, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Blog), args.Error(1)
}

func (m *MockBlogRepository) DeleteByIDAndAuthor(ctx context.Context, id, authorID uint) (int64, error) {
	args := m.Called(ctx, id, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlogRepository) CountByCategory(ctx context.Context, filter repository.BlogFilter) (int64, []repository.CategoryCount, error) {
	args := m.Called(ctx, filter)
	if args.Get(1) == nil {
		return args.Get(0).(int64), nil, args.Error(2)
	}
	return args.Get(0).(int64), args.Get(1).([]repository.CategoryCount), args.Error(2)
}

// MockCommentRepository is a mock implementation of CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByBlog(ctx context.Context, blogID uint) ([]model.Comment, error) {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func TestBlogService_CreateBlog(t *testing.T) {
	tests := []struct {
		name            string
		input           CreateBlogInput
		expectStatus    model.BlogStatus
		expectPublished bool
	}{
		{
			name:         "defaults to draft without a published stamp",
			input:        CreateBlogInput{Title: "Hello Bazaar", Content: "A long enough piece of content."},
			expectStatus: model.BlogStatusDraft,
		},
		{
			name: "publishing stamps published_at",
			input: CreateBlogInput{
				Title:   "Hello Bazaar",
				Content: "A long enough piece of content.",
				Status:  model.BlogStatusPublished,
			},
			expectStatus:    model.BlogStatusPublished,
			expectPublished: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBlogRepo := new(MockBlogRepository)
			var stored *model.Blog
			mockBlogRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Blog")).Run(func(args mock.Arguments) {
				stored = args.Get(1).(*model.Blog)
				stored.ID = 12
			}).Return(nil)
			mockBlogRepo.On("FindByID", mock.Anything, uint(12)).Return(&model.Blog{ID: 12, Title: tt.input.Title}, nil)

			service := NewBlogService(mockBlogRepo, new(MockCommentRepository))
			blog, err := service.CreateBlog(context.Background(), 5, tt.input)

			assert.NoError(t, err)
			assert.Equal(t, uint(12), blog.ID)
			assert.Equal(t, tt.expectStatus, stored.Status)
			assert.Equal(t, uint(5), stored.AuthorID)
			if tt.expectPublished {
				assert.NotNil(t, stored.PublishedAt)
			} else {
				assert.Nil(t, stored.PublishedAt)
			}
			mockBlogRepo.AssertExpectations(t)
		})
	}
}

func TestBlogService_UpdateBlog(t *testing.T) {
	t.Run("transition to published stamps published_at once", func(t *testing.T) {
		existing := &model.Blog{ID: 12, AuthorID: 5, Title: "Draft post", Status: model.BlogStatusDraft}
		mockBlogRepo := new(MockBlogRepository)
		mockBlogRepo.On("FindByIDAndAuthor", mock.Anything, uint(12), uint(5)).Return(existing, nil)
		mockBlogRepo.On("Save", mock.Anything, existing).Return(nil)

		published := model.BlogStatusPublished
		service := NewBlogService(mockBlogRepo, new(MockCommentRepository))
		blog, err := service.UpdateBlog(context.Background(), 5, 12, UpdateBlogInput{Status: &published})

		assert.NoError(t, err)
		assert.Equal(t, model.BlogStatusPublished, blog.Status)
		assert.NotNil(t, blog.PublishedAt)
	})

	t.Run("re-publishing keeps the original stamp", func(t *testing.T) {
		stamp := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		existing := &model.Blog{ID: 12, AuthorID: 5, Status: model.BlogStatusPublished, PublishedAt: &stamp}
		mockBlogRepo := new(MockBlogRepository)
		mockBlogRepo.On("FindByIDAndAuthor", mock.Anything, uint(12), uint(5)).Return(existing, nil)
		mockBlogRepo.On("Save", mock.Anything, existing).Return(nil)

		published := model.BlogStatusPublished
		service := NewBlogService(mockBlogRepo, new(MockCommentRepository))
		blog, err := service.UpdateBlog(context.Background(), 5, 12, UpdateBlogInput{Status: &published})

		assert.NoError(t, err)
		assert.Equal(t, stamp, *blog.PublishedAt)
	})

	t.Run("another author's blog reads as not found", func(t *testing.T) {
		mockBlogRepo := new(MockBlogRepository)
		mockBlogRepo.On("FindByIDAndAuthor", mock.Anything, uint(12), uint(6)).Return(nil, gorm.ErrRecordNotFound)

		title := "Takeover"
		service := NewBlogService(mockBlogRepo, new(MockCommentRepository))
		_, err := service.UpdateBlog(context.Background(), 6, 12, UpdateBlogInput{Title: &title})

		assert.Equal(t, errors.ErrBlogNotFound, err)
	})
}

func TestBlogService_DeleteBlog(t *testing.T) {
	tests := []struct {
		name          string
		authorID      uint
		rows          int64
		expectedError error
	}{
		{name: "own blog is deleted", authorID: 5, rows: 1, expectedError: nil},
		{name: "foreign blog reads as not found", authorID: 6, rows: 0, expectedError: errors.ErrBlogNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBlogRepo := new(MockBlogRepository)
			mockBlogRepo.On("DeleteByIDAndAuthor", mock.Anything, uint(12), tt.authorID).Return(tt.rows, nil)

			service := NewBlogService(mockBlogRepo, new(MockCommentRepository))
			err := service.DeleteBlog(context.Background(), tt.authorID, 12)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
			mockBlogRepo.AssertExpectations(t)
		})
	}
}

func TestBlogService_CountBlogs(t *testing.T) {
	mockBlogRepo := new(MockBlogRepository)
	mockBlogRepo.On("CountByCategory", mock.Anything, repository.BlogFilter{}).Return(int64(5), []repository.CategoryCount{
		{Category: "go", Count: 3},
		{Category: "life", Count: 2},
	}, nil)

	service := NewBlogService(mockBlogRepo, new(MockCommentRepository))
	total, counts, err := service.CountBlogs(context.Background(), repository.BlogFilter{})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, counts, 2)
	assert.Equal(t, int64(3), counts[0].Count)
}

func TestBlogService_Comments(t *testing.T) {
	t.Run("lists comments for an existing blog", func(t *testing.T) {
		mockBlogRepo := new(MockBlogRepository)
		mockBlogRepo.On("FindByID", mock.Anything, uint(12)).Return(&model.Blog{ID: 12}, nil)
		mockCommentRepo := new(MockCommentRepository)
		mockCommentRepo.On("ListByBlog", mock.Anything, uint(12)).Return([]model.Comment{
			{ID: 2, BlogID: 12, Content: "Newer"},
			{ID: 1, BlogID: 12, Content: "Older"},
		}, nil)

		service := NewBlogService(mockBlogRepo, mockCommentRepo)
		comments, err := service.ListComments(context.Background(), 12)

		assert.NoError(t, err)
		assert.Len(t, comments, 2)
		assert.Equal(t, "Newer", comments[0].Content)
	})

	t.Run("listing comments on a missing blog fails", func(t *testing.T) {
		mockBlogRepo := new(MockBlogRepository)
		mockBlogRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewBlogService(mockBlogRepo, new(MockCommentRepository))
		_, err := service.ListComments(context.Background(), 99)

		assert.Equal(t, errors.ErrBlogNotFound, err)
	})

	t.Run("creates a comment", func(t *testing.T) {
		mockBlogRepo := new(MockBlogRepository)
		mockBlogRepo.On("FindByID", mock.Anything, uint(12)).Return(&model.Blog{ID: 12}, nil)
		mockCommentRepo := new(MockCommentRepository)
		mockCommentRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)

		service := NewBlogService(mockBlogRepo, mockCommentRepo)
		comment, err := service.CreateComment(context.Background(), 12, 5, "Nice read")

		assert.NoError(t, err)
		assert.Equal(t, uint(12), comment.BlogID)
		assert.Equal(t, uint(5), comment.AuthorID)
		assert.Equal(t, "Nice read", comment.Content)
	})
}
