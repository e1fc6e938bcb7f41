package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/gogreen-admin/internal/models"

	"gorm.io/gorm"
)

// PromotionRepository 优惠活动数据访问接口
type PromotionRepository interface {
	GetByID(id uint) (*models.Promotion, error)
	GetByCode(code string) (*models.Promotion, error)
	CodeInUse(code string, excludeID uint) (bool, error)
	List(filter PromotionListFilter) ([]models.Promotion, int64, error)
	ListActive(now time.Time) ([]models.Promotion, error)
	ListHomepage(now time.Time, limit int) ([]models.Promotion, error)
	Create(promotion *models.Promotion) error
	Update(promotion *models.Promotion) error
	UpdateFields(id uint, updates map[string]interface{}) (int64, error)
	Delete(id uint) (int64, error)
	IncrementUsageCount(id uint) (int64, error)
	WithTx(tx *gorm.DB) *GormPromotionRepository
}

// GormPromotionRepository GORM 实现
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository 创建优惠活动仓库
func NewPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromotionRepository) WithTx(tx *gorm.DB) *GormPromotionRepository {
	if tx == nil {
		return r
	}
	return &GormPromotionRepository{db: tx}
}

// GetByID 根据ID获取优惠活动
func (r *GormPromotionRepository) GetByID(id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// GetByCode 根据优惠码获取优惠活动（入参统一转大写后精确匹配）
func (r *GormPromotionRepository) GetByCode(code string) (*models.Promotion, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, nil
	}
	var promotion models.Promotion
	if err := r.db.Where("code = ?", normalized).First(&promotion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// CodeInUse 优惠码是否已被其它活动占用
func (r *GormPromotionRepository) CodeInUse(code string, excludeID uint) (bool, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return false, nil
	}
	query := r.db.Model(&models.Promotion{}).Where("code = ?", normalized)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 获取优惠活动列表（优先级降序，其次创建时间降序）
func (r *GormPromotionRepository) List(filter PromotionListFilter) ([]models.Promotion, int64, error) {
	promotions := make([]models.Promotion, 0)
	query := r.db.Model(&models.Promotion{})

	if filter.Search != "" {
		condition, argCount := buildSearchLikeCondition(r.db, []string{"title", "description", "code"})
		if condition != "" {
			like := "%" + filter.Search + "%"
			query = query.Where(condition, repeatLikeArgs(like, argCount)...)
		}
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.ShowOnHomepage != nil {
		query = query.Where("show_on_homepage = ?", *filter.ShowOnHomepage)
	}
	if filter.CreatedByID > 0 {
		query = query.Where("created_by_id = ?", filter.CreatedByID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("priority DESC, created_at DESC").Find(&promotions).Error; err != nil {
		return nil, 0, err
	}
	return promotions, total, nil
}

// ListActive 获取当前时间窗口内启用的优惠活动
func (r *GormPromotionRepository) ListActive(now time.Time) ([]models.Promotion, error) {
	promotions := make([]models.Promotion, 0)
	err := r.db.
		Where("is_active = ?", true).
		Where("start_date <= ?", now).
		Where("end_date >= ?", now).
		Order("priority DESC, created_at DESC").
		Find(&promotions).Error
	if err != nil {
		return nil, err
	}
	return promotions, nil
}

// ListHomepage 获取首页展示的优惠活动（窗口内启用 + 首页开关，按优先级截断）
func (r *GormPromotionRepository) ListHomepage(now time.Time, limit int) ([]models.Promotion, error) {
	promotions := make([]models.Promotion, 0)
	query := r.db.
		Where("is_active = ?", true).
		Where("show_on_homepage = ?", true).
		Where("start_date <= ?", now).
		Where("end_date >= ?", now).
		Order("priority DESC, created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}

// Create 创建优惠活动
func (r *GormPromotionRepository) Create(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

// Update 更新优惠活动
func (r *GormPromotionRepository) Update(promotion *models.Promotion) error {
	return r.db.Save(promotion).Error
}

// UpdateFields 部分更新，返回命中行数（0 行表示不存在）
func (r *GormPromotionRepository) UpdateFields(id uint, updates map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.Promotion{}).Where("id = ?", id).Updates(updates)
	return result.RowsAffected, result.Error
}

// Delete 删除优惠活动（物理删除，返回命中行数）
func (r *GormPromotionRepository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&models.Promotion{}, id)
	return result.RowsAffected, result.Error
}

// IncrementUsageCount 累加使用次数，使用上限耗尽时不命中任何行
func (r *GormPromotionRepository) IncrementUsageCount(id uint) (int64, error) {
	result := r.db.Model(&models.Promotion{}).
		Where("id = ?", id).
		Where("usage_limit = 0 OR usage_count < usage_limit").
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	return result.RowsAffected, result.Error
}
