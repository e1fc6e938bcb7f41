package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gogreen-admin/internal/http/response"
	"github.com/gogreen-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// PostRequest 创建/更新文章请求
type PostRequest struct {
	Slug      string   `json:"slug"`
	Title     string   `json:"title" binding:"required"`
	Summary   string   `json:"summary"`
	Content   string   `json:"content"`
	Thumbnail string   `json:"thumbnail"`
	Tags      []string `json:"tags"`
	Status    string   `json:"status"`
}

func (r PostRequest) toServiceInput() service.PostInput {
	return service.PostInput{
		Slug:      r.Slug,
		Title:     r.Title,
		Summary:   r.Summary,
		Content:   r.Content,
		Thumbnail: r.Thumbnail,
		Tags:      r.Tags,
		Status:    r.Status,
	}
}

// GetAdminPosts 获取文章列表 (Admin)
func (h *Handler) GetAdminPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	status := strings.TrimSpace(c.Query("status"))
	search := strings.TrimSpace(c.Query("search"))

	posts, total, err := h.PostService.ListAdmin(status, search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, posts, pagination)
}

// GetAdminPost 获取文章详情 (Admin)
func (h *Handler) GetAdminPost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	post, err := h.PostService.GetAdminByID(id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, response.CodeNotFound, "error.post_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, post)
}

// CreatePost 创建文章
func (h *Handler) CreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	post, err := h.PostService.Create(currentActor(c), req.toServiceInput())
	if err != nil {
		respondPostWriteError(c, err)
		return
	}

	response.Success(c, post)
}

// UpdatePost 更新文章
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	post, err := h.PostService.Update(id, req.toServiceInput())
	if err != nil {
		respondPostWriteError(c, err)
		return
	}

	response.Success(c, post)
}

// DeletePost 删除文章
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.PostService.Delete(id); err != nil {
		respondPostWriteError(c, err)
		return
	}

	response.Success(c, nil)
}

func respondPostWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostInvalid):
		respondError(c, response.CodeBadRequest, "error.post_invalid", nil)
	case errors.Is(err, service.ErrPostSlugTaken):
		respondError(c, response.CodeConflict, "error.post_slug_taken", nil)
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, response.CodeNotFound, "error.post_not_found", nil)
	default:
		respondError(c, response.CodeInternal, "error.save_failed", err)
	}
}
