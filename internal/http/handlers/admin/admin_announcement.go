package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gogreen-admin/internal/http/response"
	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/repository"
	"github.com/gogreen-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// AnnouncementRequest 创建/更新公告请求
type AnnouncementRequest struct {
	Type           string                     `json:"type" binding:"required"`
	Title          string                     `json:"title" binding:"required"`
	Message        string                     `json:"message"`
	Icon           string                     `json:"icon"`
	LinkURL        string                     `json:"link_url"`
	LinkText       string                     `json:"link_text"`
	Details        models.AnnouncementDetails `json:"details"`
	StartDate      string                     `json:"start_date" binding:"required"`
	EndDate        string                     `json:"end_date" binding:"required"`
	ShowOnHomepage bool                       `json:"show_on_homepage"`
	Dismissible    *bool                      `json:"dismissible"`
	Priority       int                        `json:"priority"`
	IsActive       *bool                      `json:"is_active"`
}

func (r AnnouncementRequest) toServiceInput() (service.AnnouncementInput, error) {
	startDate, err := parseTimeNullable(r.StartDate)
	if err != nil {
		return service.AnnouncementInput{}, err
	}
	endDate, err := parseTimeNullable(r.EndDate)
	if err != nil {
		return service.AnnouncementInput{}, err
	}
	input := service.AnnouncementInput{
		Type:           r.Type,
		Title:          r.Title,
		Message:        r.Message,
		Icon:           r.Icon,
		LinkURL:        r.LinkURL,
		LinkText:       r.LinkText,
		Details:        r.Details,
		ShowOnHomepage: r.ShowOnHomepage,
		Dismissible:    r.Dismissible,
		Priority:       r.Priority,
		IsActive:       r.IsActive,
	}
	if startDate != nil {
		input.StartDate = *startDate
	}
	if endDate != nil {
		input.EndDate = *endDate
	}
	return input, nil
}

// GetAdminAnnouncements 获取公告列表 (Admin)
func (h *Handler) GetAdminAnnouncements(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.AnnouncementListFilter{
		Page:     page,
		PageSize: pageSize,
		Type:     strings.TrimSpace(c.Query("type")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			filter.IsActive = &parsed
		}
	}

	announcements, total, err := h.AnnouncementService.List(filter)
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
	response.SuccessWithPage(c, announcements, pagination)
}

// GetAdminAnnouncement 获取公告详情 (Admin)
func (h *Handler) GetAdminAnnouncement(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	announcement, err := h.AnnouncementService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			respondError(c, response.CodeNotFound, "error.announcement_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, announcement)
}

// CreateAnnouncement 创建公告
func (h *Handler) CreateAnnouncement(c *gin.Context) {
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	announcement, err := h.AnnouncementService.Create(currentActor(c), input)
	if err != nil {
		respondAnnouncementWriteError(c, err)
		return
	}

	response.Success(c, announcement)
}

// UpdateAnnouncement 更新公告
func (h *Handler) UpdateAnnouncement(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	announcement, err := h.AnnouncementService.Update(currentActor(c), id, input)
	if err != nil {
		respondAnnouncementWriteError(c, err)
		return
	}

	response.Success(c, announcement)
}

// ToggleAnnouncementRequest 启停公告请求
type ToggleAnnouncementRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ToggleAnnouncement 启停公告
func (h *Handler) ToggleAnnouncement(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ToggleAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AnnouncementService.ToggleActive(currentActor(c), id, *req.IsActive); err != nil {
		respondAnnouncementWriteError(c, err)
		return
	}

	response.Success(c, nil)
}

// DeleteAnnouncement 删除公告
func (h *Handler) DeleteAnnouncement(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.AnnouncementService.Delete(currentActor(c), id); err != nil {
		respondAnnouncementWriteError(c, err)
		return
	}

	response.Success(c, nil)
}

func respondAnnouncementWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAnnouncementInvalid):
		respondError(c, response.CodeBadRequest, "error.announcement_invalid", nil)
	case errors.Is(err, service.ErrAnnouncementTypeImmutable):
		respondError(c, response.CodeBadRequest, "error.announcement_type_immutable", nil)
	case errors.Is(err, service.ErrAnnouncementNotFound):
		respondError(c, response.CodeNotFound, "error.announcement_not_found", nil)
	case errors.Is(err, service.ErrContentNotFoundOrForbidden):
		respondError(c, response.CodeNotFound, "error.content_not_found_or_forbidden", nil)
	case errors.Is(err, service.ErrPermissionDenied):
		respondError(c, response.CodeForbidden, "error.forbidden", nil)
	default:
		respondError(c, response.CodeInternal, "error.save_failed", err)
	}
}
