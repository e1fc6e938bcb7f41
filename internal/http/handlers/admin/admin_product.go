package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gogreen-admin/internal/http/response"
	"github.com/gogreen-admin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	Slug          string                 `json:"slug"`
	Name          string                 `json:"name" binding:"required"`
	Category      string                 `json:"category" binding:"required"`
	Description   string                 `json:"description"`
	PriceAmount   decimal.Decimal        `json:"price_amount"`
	Unit          string                 `json:"unit"`
	StockQuantity *int                   `json:"stock_quantity"`
	IsOrganic     bool                   `json:"is_organic"`
	Origin        string                 `json:"origin"`
	Images        []string               `json:"images"`
	Tags          []string               `json:"tags"`
	SeoMeta       map[string]interface{} `json:"seo_meta"`
	IsActive      *bool                  `json:"is_active"`
	SortOrder     int                    `json:"sort_order"`
}

func (r ProductRequest) toServiceInput() service.ProductInput {
	return service.ProductInput{
		Slug:          r.Slug,
		Name:          r.Name,
		Category:      r.Category,
		Description:   r.Description,
		PriceAmount:   r.PriceAmount,
		Unit:          r.Unit,
		StockQuantity: r.StockQuantity,
		IsOrganic:     r.IsOrganic,
		Origin:        r.Origin,
		Images:        r.Images,
		Tags:          r.Tags,
		SeoMeta:       r.SeoMeta,
		IsActive:      r.IsActive,
		SortOrder:     r.SortOrder,
	}
}

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	category := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))

	products, total, err := h.ProductService.ListAdmin(category, search, page, pageSize)
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

// SearchAdminProducts 搜索可关联商品（供创建向导选择，最多返回 10 条精简记录）
func (h *Handler) SearchAdminProducts(c *gin.Context) {
	options, err := h.ProductService.SearchForLinking(strings.TrimSpace(c.Query("q")))
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.Success(c, options)
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.ProductService.GetAdminByID(id)
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

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Create(currentActor(c), req.toServiceInput())
	if err != nil {
		respondProductWriteError(c, err)
		return
	}

	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Update(id, req.toServiceInput())
	if err != nil {
		respondProductWriteError(c, err)
		return
	}

	response.Success(c, product)
}

// AdjustProductStockRequest 调整库存请求
type AdjustProductStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// AdjustProductStock 调整商品库存（增量）
func (h *Handler) AdjustProductStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req AdjustProductStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.ProductService.AdjustStock(id, req.Delta); err != nil {
		respondProductWriteError(c, err)
		return
	}

	response.Success(c, nil)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.ProductService.Delete(id); err != nil {
		respondProductWriteError(c, err)
		return
	}

	response.Success(c, nil)
}

func respondProductWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductInvalid):
		respondError(c, response.CodeBadRequest, "error.product_invalid", nil)
	case errors.Is(err, service.ErrProductSlugTaken):
		respondError(c, response.CodeConflict, "error.product_slug_taken", nil)
	case errors.Is(err, service.ErrProductStockShortage):
		respondError(c, response.CodeBadRequest, "error.product_stock_shortage", nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
	default:
		respondError(c, response.CodeInternal, "error.save_failed", err)
	}
}
