package service

import (
	"strings"

	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品业务服务
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	Slug          string
	Name          string
	Category      string
	Description   string
	PriceAmount   decimal.Decimal
	Unit          string
	StockQuantity *int
	IsOrganic     bool
	Origin        string
	Images        []string
	Tags          []string
	SeoMeta       map[string]interface{}
	IsActive      *bool
	SortOrder     int
}

var allowedProductUnits = map[string]struct{}{
	"lb":    {},
	"bunch": {},
	"each":  {},
	"dozen": {},
}

// ListPublic 获取公开商品列表
func (s *ProductService) ListPublic(category, search string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Category:   category,
		Search:     search,
		OnlyActive: true,
	}
	return s.repo.List(filter)
}

// GetPublicBySlug 获取公开商品详情
func (s *ProductService) GetPublicBySlug(slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListAdmin 获取后台商品列表
func (s *ProductService) ListAdmin(category, search string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: category,
		Search:   search,
	}
	return s.repo.List(filter)
}

// ProductLinkOption 供优惠活动向导选择关联商品的精简投影
type ProductLinkOption struct {
	ID       uint         `json:"id"`
	Name     string       `json:"name"`
	Image    string       `json:"image"`
	Price    models.Money `json:"price"`
	Category string       `json:"category"`
}

// productLinkSearchLimit 关联商品搜索最多返回的条数
const productLinkSearchLimit = 10

// SearchForLinking 搜索可关联的上架商品，返回精简记录
func (s *ProductService) SearchForLinking(search string) ([]ProductLinkOption, error) {
	products, err := s.repo.SearchLinkable(strings.TrimSpace(search), productLinkSearchLimit)
	if err != nil {
		return nil, err
	}

	options := make([]ProductLinkOption, 0, len(products))
	for _, product := range products {
		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		options = append(options, ProductLinkOption{
			ID:       product.ID,
			Name:     product.Name,
			Image:    image,
			Price:    product.PriceAmount,
			Category: product.Category,
		})
	}
	return options, nil
}

// GetAdminByID 获取后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(actor Actor, input ProductInput) (*models.Product, error) {
	normalized, err := s.normalizeInput(input, nil)
	if err != nil {
		return nil, err
	}

	stockQuantity := 0
	if input.StockQuantity != nil {
		stockQuantity = *input.StockQuantity
	}
	if stockQuantity < 0 {
		return nil, ErrProductInvalid
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	product := models.Product{
		Slug:          normalized.slug,
		Name:          normalized.name,
		Category:      normalized.category,
		Description:   strings.TrimSpace(input.Description),
		PriceAmount:   models.NewMoneyFromDecimal(normalized.priceAmount),
		Unit:          normalized.unit,
		StockQuantity: stockQuantity,
		IsOrganic:     input.IsOrganic,
		Origin:        strings.TrimSpace(input.Origin),
		Images:        models.StringArray(input.Images),
		Tags:          models.StringArray(input.Tags),
		SeoMetaJSON:   models.JSON(input.SeoMeta),
		IsActive:      isActive,
		SortOrder:     input.SortOrder,
		CreatedByID:   actor.ID,
	}

	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	normalized, err := s.normalizeInput(input, &id)
	if err != nil {
		return nil, err
	}

	product.Slug = normalized.slug
	product.Name = normalized.name
	product.Category = normalized.category
	product.Description = strings.TrimSpace(input.Description)
	product.PriceAmount = models.NewMoneyFromDecimal(normalized.priceAmount)
	product.Unit = normalized.unit
	product.IsOrganic = input.IsOrganic
	product.Origin = strings.TrimSpace(input.Origin)
	product.Images = models.StringArray(input.Images)
	product.Tags = models.StringArray(input.Tags)
	product.SeoMetaJSON = models.JSON(input.SeoMeta)
	product.SortOrder = input.SortOrder
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, ErrProductInvalid
		}
		product.StockQuantity = *input.StockQuantity
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// AdjustStock 调整库存（正数补货，负数扣减）
func (s *ProductService) AdjustStock(id uint, delta int) error {
	if delta == 0 {
		return nil
	}
	affected, err := s.repo.AdjustStock(id, delta)
	if err != nil {
		return err
	}
	if affected == 0 {
		if delta < 0 {
			return ErrProductStockShortage
		}
		return ErrProductNotFound
	}
	return nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.repo.Delete(id)
}

type normalizedProductInput struct {
	slug        string
	name        string
	category    string
	unit        string
	priceAmount decimal.Decimal
}

func (s *ProductService) normalizeInput(input ProductInput, excludeID *uint) (normalizedProductInput, error) {
	var out normalizedProductInput

	out.slug = strings.ToLower(strings.TrimSpace(input.Slug))
	out.name = strings.TrimSpace(input.Name)
	out.category = strings.ToLower(strings.TrimSpace(input.Category))
	if out.slug == "" || out.name == "" || out.category == "" {
		return out, ErrProductInvalid
	}

	out.unit = strings.ToLower(strings.TrimSpace(input.Unit))
	if out.unit == "" {
		out.unit = "each"
	}
	if _, ok := allowedProductUnits[out.unit]; !ok {
		return out, ErrProductInvalid
	}

	out.priceAmount = input.PriceAmount.Round(2)
	if out.priceAmount.LessThanOrEqual(decimal.Zero) {
		return out, ErrProductInvalid
	}

	existing, err := s.repo.GetBySlug(out.slug)
	if err != nil {
		return out, err
	}
	if existing != nil && (excludeID == nil || existing.ID != *excludeID) {
		return out, ErrProductSlugTaken
	}

	return out, nil
}
