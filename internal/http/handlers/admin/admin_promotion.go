package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gogreen-admin/internal/http/response"
	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/repository"
	"github.com/gogreen-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// PromotionRequest 创建/更新优惠活动请求
type PromotionRequest struct {
	Title             string       `json:"title" binding:"required"`
	Description       string       `json:"description"`
	DiscountType      string       `json:"discount_type" binding:"required"`
	DiscountValue     models.Money `json:"discount_value"`
	BuyQuantity       int          `json:"buy_quantity"`
	GetQuantity       int          `json:"get_quantity"`
	Code              string       `json:"code"`
	MinPurchaseAmount models.Money `json:"min_purchase_amount"`
	MaxDiscountAmount models.Money `json:"max_discount_amount"`
	UsageLimit        int          `json:"usage_limit"`
	ProductID         *uint        `json:"product_id"`
	StartDate         string       `json:"start_date" binding:"required"`
	EndDate           string       `json:"end_date" binding:"required"`
	ShowOnHomepage    bool         `json:"show_on_homepage"`
	Priority          int          `json:"priority"`
	IsActive          *bool        `json:"is_active"`
}

func (r PromotionRequest) toServiceInput() (service.PromotionInput, error) {
	startDate, err := parseTimeNullable(r.StartDate)
	if err != nil {
		return service.PromotionInput{}, err
	}
	endDate, err := parseTimeNullable(r.EndDate)
	if err != nil {
		return service.PromotionInput{}, err
	}
	input := service.PromotionInput{
		Title:             r.Title,
		Description:       r.Description,
		DiscountType:      r.DiscountType,
		DiscountValue:     r.DiscountValue,
		BuyQuantity:       r.BuyQuantity,
		GetQuantity:       r.GetQuantity,
		Code:              r.Code,
		MinPurchaseAmount: r.MinPurchaseAmount,
		MaxDiscountAmount: r.MaxDiscountAmount,
		UsageLimit:        r.UsageLimit,
		ProductID:         r.ProductID,
		ShowOnHomepage:    r.ShowOnHomepage,
		Priority:          r.Priority,
		IsActive:          r.IsActive,
	}
	if startDate != nil {
		input.StartDate = *startDate
	}
	if endDate != nil {
		input.EndDate = *endDate
	}
	return input, nil
}

// GetAdminPromotions 获取优惠活动列表 (Admin)
func (h *Handler) GetAdminPromotions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.PromotionListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			filter.IsActive = &parsed
		}
	}

	promotions, total, err := h.PromotionService.List(filter)
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
	response.SuccessWithPage(c, promotions, pagination)
}

// GetAdminPromotion 获取优惠活动详情 (Admin)
func (h *Handler) GetAdminPromotion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	promotion, err := h.PromotionService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrPromotionNotFound) {
			respondError(c, response.CodeNotFound, "error.promotion_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, promotion)
}

// CreatePromotion 创建优惠活动
func (h *Handler) CreatePromotion(c *gin.Context) {
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	promotion, err := h.PromotionService.Create(currentActor(c), input)
	if err != nil {
		respondPromotionWriteError(c, err)
		return
	}

	response.Success(c, promotion)
}

// UpdatePromotion 更新优惠活动
func (h *Handler) UpdatePromotion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	promotion, err := h.PromotionService.Update(currentActor(c), id, input)
	if err != nil {
		respondPromotionWriteError(c, err)
		return
	}

	response.Success(c, promotion)
}

// TogglePromotionRequest 启停优惠活动请求
type TogglePromotionRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// TogglePromotion 启停优惠活动
func (h *Handler) TogglePromotion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req TogglePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.PromotionService.ToggleActive(currentActor(c), id, *req.IsActive); err != nil {
		respondPromotionWriteError(c, err)
		return
	}

	response.Success(c, nil)
}

// DeletePromotion 删除优惠活动
func (h *Handler) DeletePromotion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.PromotionService.Delete(currentActor(c), id); err != nil {
		respondPromotionWriteError(c, err)
		return
	}

	response.Success(c, nil)
}

func respondPromotionWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPromotionInvalid):
		respondError(c, response.CodeBadRequest, "error.promotion_invalid", nil)
	case errors.Is(err, service.ErrPromotionCodeTaken):
		respondError(c, response.CodeConflict, "error.promotion_code_taken", nil)
	case errors.Is(err, service.ErrPromotionNotFound):
		respondError(c, response.CodeNotFound, "error.promotion_not_found", nil)
	case errors.Is(err, service.ErrContentNotFoundOrForbidden):
		respondError(c, response.CodeNotFound, "error.content_not_found_or_forbidden", nil)
	case errors.Is(err, service.ErrPermissionDenied):
		respondError(c, response.CodeForbidden, "error.forbidden", nil)
	default:
		respondError(c, response.CodeInternal, "error.save_failed", err)
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
