package repository

import (
	"errors"

	"github.com/gogreen-admin/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	List(filter ProductListFilter) ([]models.Product, int64, error)
	SearchLinkable(search string, limit int) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	AdjustStock(id uint, delta int) (int64, error)
	WithTx(tx *gorm.DB) *GormProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// GetByID 根据ID获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug 根据 slug 获取商品
func (r *GormProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// List 获取商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	products := make([]models.Product, 0)
	query := r.db.Model(&models.Product{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		condition, argCount := buildSearchLikeCondition(r.db, []string{"name", "description", "origin"})
		if condition != "" {
			like := "%" + filter.Search + "%"
			query = query.Where(condition, repeatLikeArgs(like, argCount)...)
		}
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Organic != nil {
		query = query.Where("is_organic = ?", *filter.Organic)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("sort_order DESC, id DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// SearchLinkable 搜索可关联的上架商品（名称/分类模糊匹配，限量返回）
func (r *GormProductRepository) SearchLinkable(search string, limit int) ([]models.Product, error) {
	products := make([]models.Product, 0)
	query := r.db.Model(&models.Product{}).Where("is_active = ?", true)

	if search != "" {
		condition, argCount := buildSearchLikeCondition(r.db, []string{"name", "category"})
		if condition != "" {
			like := "%" + search + "%"
			query = query.Where(condition, repeatLikeArgs(like, argCount)...)
		}
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Order("sort_order DESC, id DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品（软删除）
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// AdjustStock 调整库存，扣减不允许为负（不命中任何行表示库存不足）
func (r *GormProductRepository) AdjustStock(id uint, delta int) (int64, error) {
	query := r.db.Model(&models.Product{}).Where("id = ?", id)
	if delta < 0 {
		query = query.Where("stock_quantity >= ?", -delta)
	}
	result := query.UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	return result.RowsAffected, result.Error
}
