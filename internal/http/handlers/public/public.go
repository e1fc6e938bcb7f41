package public

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gogreen-admin/internal/cache"
	"github.com/gogreen-admin/internal/http/response"
	"github.com/gogreen-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// GetHomepageContent 获取首页展示内容（优惠活动 + 公告合并）
func (h *Handler) GetHomepageContent(c *gin.Context) {
	var cached service.HomepageContent
	if hit, err := cache.GetHomepageContent(c.Request.Context(), &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	maxSlots := 0
	ttl := time.Duration(0)
	if h.Config != nil {
		maxSlots = h.Config.Homepage.MaxSlots
		ttl = time.Duration(h.Config.Homepage.CacheTTLSeconds) * time.Second
	}

	content, err := h.ContentService.GetHomepageContent(time.Now(), maxSlots)
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	if cache.Enabled() && ttl > 0 {
		_ = cache.SetHomepageContent(c.Request.Context(), content, ttl)
	}
	response.Success(c, content)
}

// GetAnnouncements 获取当前生效的公告
func (h *Handler) GetAnnouncements(c *gin.Context) {
	announcements, err := h.AnnouncementService.ListActive(time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, announcements)
}

// ValidatePromotion 校验优惠码是否可用
func (h *Handler) ValidatePromotion(c *gin.Context) {
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	promotion, err := h.PromotionService.ValidateByCode(code, time.Now())
	if err != nil {
		respondPromotionValidateError(c, err)
		return
	}

	response.Success(c, promotion)
}

func respondPromotionValidateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPromotionNotFound):
		respondError(c, response.CodeNotFound, "error.promotion_not_found", nil)
	case errors.Is(err, service.ErrPromotionInactive):
		respondError(c, response.CodeBadRequest, "error.promotion_inactive", nil)
	case errors.Is(err, service.ErrPromotionNotStarted):
		respondError(c, response.CodeBadRequest, "error.promotion_not_started", nil)
	case errors.Is(err, service.ErrPromotionExpired):
		respondError(c, response.CodeBadRequest, "error.promotion_expired", nil)
	case errors.Is(err, service.ErrPromotionUsageExhausted):
		respondError(c, response.CodeBadRequest, "error.promotion_usage_exhausted", nil)
	default:
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
	}
}

// GetProducts 获取公开商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	category := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))

	products, total, err := h.ProductService.ListPublic(category, search, page, pageSize)
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
	response.SuccessWithPage(c, products, pagination)
}

// GetProductBySlug 获取公开商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	product, err := h.ProductService.GetPublicBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, product)
}

// GetPosts 获取公开文章列表
func (h *Handler) GetPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	posts, total, err := h.PostService.ListPublic(page, pageSize)
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

// GetPostBySlug 获取公开文章详情
func (h *Handler) GetPostBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	post, err := h.PostService.GetPublicBySlug(slug)
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
