package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"bazaar/internal/model"
	"bazaar/internal/repository"
	"bazaar/internal/service"
)

// BlogHandler handles blog and comment endpoints.
type BlogHandler struct {
	blogService service.BlogService
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// CreateBlogRequest represents a blog creation request.
type CreateBlogRequest struct {
	Title    string `json:"title" validate:"required,min=5"`
	Content  string `json:"content" validate:"required,min=20"`
	Status   string `json:"status" validate:"omitempty,oneof=draft published archived"`
	Category string `json:"category"`
	ImageURL string `json:"image"`
}

// UpdateBlogRequest represents a partial blog update.
type UpdateBlogRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=5"`
	Content  *string `json:"content" validate:"omitempty,min=20"`
	Status   *string `json:"status" validate:"omitempty,oneof=draft published archived"`
	Category *string `json:"category"`
	ImageURL *string `json:"image"`
}

// CreateCommentRequest represents a comment creation request.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// BlogResponse is the full wire representation of a blog.
type BlogResponse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Author      string     `json:"author"`
	Status      string     `json:"status"`
	Category    string     `json:"category"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BlogListItemResponse is the compact listing representation, without the
// content body.
type BlogListItemResponse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Author      string     `json:"author"`
	Status      string     `json:"status"`
	Category    string     `json:"category"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CommentResponse is the wire representation of a comment.
type CommentResponse struct {
	ID        uint      `json:"id"`
	BlogID    uint      `json:"blog"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlogCountResponse aggregates blog counts overall and per category.
type BlogCountResponse struct {
	TotalCount int64            `json:"total_count"`
	Categories map[string]int64 `json:"categories"`
}

func newBlogResponse(b *model.Blog) BlogResponse {
	return BlogResponse{
		ID:          b.ID,
		Title:       b.Title,
		Content:     b.Content,
		Author:      b.Author.Username,
		Status:      string(b.Status),
		Category:    b.Category,
		PublishedAt: b.PublishedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func newBlogListResponse(blogs []model.Blog) []BlogListItemResponse {
	out := make([]BlogListItemResponse, 0, len(blogs))
	for i := range blogs {
		b := &blogs[i]
		out = append(out, BlogListItemResponse{
			ID:          b.ID,
			Title:       b.Title,
			Excerpt:     b.Excerpt(),
			Author:      b.Author.Username,
			Status:      string(b.Status),
			Category:    b.Category,
			PublishedAt: b.PublishedAt,
			CreatedAt:   b.CreatedAt,
		})
	}
	return out
}

func newCommentListResponse(comments []model.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		cm := &comments[i]
		out = append(out, CommentResponse{
			ID:        cm.ID,
			BlogID:    cm.BlogID,
			Author:    cm.Author.Username,
			Content:   cm.Content,
			CreatedAt: cm.CreatedAt,
			UpdatedAt: cm.UpdatedAt,
		})
	}
	return out
}

func parseBlogFilter(c echo.Context) repository.BlogFilter {
	return repository.BlogFilter{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
	}
}

// ListUserBlogs godoc
// @Summary List the authenticated author's blogs with optional filters
// @Tags blogs
// @Produce json
// @Param status query string false "Exact status"
// @Param category query string false "Category substring"
// @Success 200 {array} BlogListItemResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /user-blogs [get]
func (h *BlogHandler) ListUserBlogs(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	blogs, err := h.blogService.ListAuthorBlogs(c.Request().Context(), claims.UserID, parseBlogFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	if len(blogs) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{
			"message": "No blogs found for this user with the given filters.",
		})
	}

	return c.JSON(http.StatusOK, newBlogListResponse(blogs))
}

// CreateBlog godoc
// @Summary Create a blog authored by the authenticated user
// @Tags blogs
// @Accept json
// @Produce json
// @Param request body CreateBlogRequest true "Blog data"
// @Success 201 {object} BlogResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user-blogs [post]
func (h *BlogHandler) CreateBlog(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	blog, err := h.blogService.CreateBlog(c.Request().Context(), claims.UserID, service.CreateBlogInput{
		Title:    req.Title,
		Content:  req.Content,
		Status:   model.BlogStatus(req.Status),
		Category: req.Category,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, newBlogResponse(blog))
}

// UpdateBlog godoc
// @Summary Update a blog the authenticated user authored
// @Tags blogs
// @Accept json
// @Produce json
// @Param id path int true "Blog ID"
// @Param request body UpdateBlogRequest true "Fields to update"
// @Success 200 {object} BlogResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user-blogs/{id} [put]
func (h *BlogHandler) UpdateBlog(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	blogID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var status *model.BlogStatus
	if req.Status != nil {
		s := model.BlogStatus(*req.Status)
		status = &s
	}

	blog, err := h.blogService.UpdateBlog(c.Request().Context(), claims.UserID, blogID, service.UpdateBlogInput{
		Title:    req.Title,
		Content:  req.Content,
		Status:   status,
		Category: req.Category,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newBlogResponse(blog))
}

// DeleteBlog godoc
// @Summary Delete a blog the authenticated user authored
// @Tags blogs
// @Param id path int true "Blog ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user-blogs/{id} [delete]
func (h *BlogHandler) DeleteBlog(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	blogID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.blogService.DeleteBlog(c.Request().Context(), claims.UserID, blogID); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetBlogDetail godoc
// @Summary Fetch a single blog
// @Tags blogs
// @Produce json
// @Param id path int true "Blog ID"
// @Success 200 {object} BlogResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /blogs-detail/{id} [get]
func (h *BlogHandler) GetBlogDetail(c echo.Context) error {
	blogID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	blog, err := h.blogService.GetBlog(c.Request().Context(), blogID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newBlogResponse(blog))
}

// ListGuestBlogs godoc
// @Summary List all blogs with optional filters
// @Tags blogs
// @Produce json
// @Param status query string false "Exact status"
// @Param category query string false "Category substring"
// @Success 200 {array} BlogListItemResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /guest-blogs [get]
func (h *BlogHandler) ListGuestBlogs(c echo.Context) error {
	blogs, err := h.blogService.ListAllBlogs(c.Request().Context(), parseBlogFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	if len(blogs) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{
			"message": "No blogs found with the given filters.",
		})
	}

	return c.JSON(http.StatusOK, newBlogListResponse(blogs))
}

// CountBlogs godoc
// @Summary Count blogs overall and per category
// @Tags blogs
// @Produce json
// @Param status query string false "Exact status"
// @Param category query string false "Category substring"
// @Success 200 {object} BlogCountResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /blogs-count [get]
func (h *BlogHandler) CountBlogs(c echo.Context) error {
	total, counts, err := h.blogService.CountBlogs(c.Request().Context(), parseBlogFilter(c))
	if err != nil {
		return respondError(c, err)
	}

	categories := make(map[string]int64, len(counts))
	for _, cc := range counts {
		categories[cc.Category] = cc.Count
	}

	return c.JSON(http.StatusOK, BlogCountResponse{
		TotalCount: total,
		Categories: categories,
	})
}

// ListComments godoc
// @Summary List comments on a blog, newest first
// @Tags comments
// @Produce json
// @Param id path int true "Blog ID"
// @Success 200 {array} CommentResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /blogs/{id}/comments [get]
func (h *BlogHandler) ListComments(c echo.Context) error {
	blogID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	comments, err := h.blogService.ListComments(c.Request().Context(), blogID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newCommentListResponse(comments))
}

// CreateComment godoc
// @Summary Post a comment on a blog
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Blog ID"
// @Param request body CreateCommentRequest true "Comment data"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /blogs/{id}/comments [post]
func (h *BlogHandler) CreateComment(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	blogID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.blogService.CreateComment(c.Request().Context(), blogID, claims.UserID, req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, CommentResponse{
		ID:        comment.ID,
		BlogID:    comment.BlogID,
		Author:    claims.Username,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	})
}
