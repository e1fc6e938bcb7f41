package repository

import (
	"errors"
	"time"

	"github.com/gogreen-admin/internal/models"

	"gorm.io/gorm"
)

// AnnouncementRepository 公告数据访问接口
type AnnouncementRepository interface {
	GetByID(id uint) (*models.Announcement, error)
	List(filter AnnouncementListFilter) ([]models.Announcement, int64, error)
	ListActive(now time.Time) ([]models.Announcement, error)
	ListHomepage(now time.Time, limit int) ([]models.Announcement, error)
	Create(announcement *models.Announcement) error
	Update(announcement *models.Announcement) error
	UpdateFields(id uint, updates map[string]interface{}) (int64, error)
	Delete(id uint) (int64, error)
	WithTx(tx *gorm.DB) *GormAnnouncementRepository
}

// GormAnnouncementRepository GORM 实现
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository 创建公告仓库
func NewAnnouncementRepository(db *gorm.DB) *GormAnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAnnouncementRepository) WithTx(tx *gorm.DB) *GormAnnouncementRepository {
	if tx == nil {
		return r
	}
	return &GormAnnouncementRepository{db: tx}
}

// GetByID 根据ID获取公告
func (r *GormAnnouncementRepository) GetByID(id uint) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := r.db.First(&announcement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &announcement, nil
}

// List 获取公告列表（优先级降序，其次创建时间降序）
func (r *GormAnnouncementRepository) List(filter AnnouncementListFilter) ([]models.Announcement, int64, error) {
	announcements := make([]models.Announcement, 0)
	query := r.db.Model(&models.Announcement{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		condition, argCount := buildSearchLikeCondition(r.db, []string{"title", "message"})
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

	if err := query.Order("priority DESC, created_at DESC").Find(&announcements).Error; err != nil {
		return nil, 0, err
	}
	return announcements, total, nil
}

// ListActive 获取当前时间窗口内启用的公告
func (r *GormAnnouncementRepository) ListActive(now time.Time) ([]models.Announcement, error) {
	announcements := make([]models.Announcement, 0)
	err := r.db.
		Where("is_active = ?", true).
		Where("start_date <= ?", now).
		Where("end_date >= ?", now).
		Order("priority DESC, created_at DESC").
		Find(&announcements).Error
	if err != nil {
		return nil, err
	}
	return announcements, nil
}

// ListHomepage 获取首页展示的公告（窗口内启用 + 首页开关，按优先级截断）
func (r *GormAnnouncementRepository) ListHomepage(now time.Time, limit int) ([]models.Announcement, error) {
	announcements := make([]models.Announcement, 0)
	query := r.db.
		Where("is_active = ?", true).
		Where("show_on_homepage = ?", true).
		Where("start_date <= ?", now).
		Where("end_date >= ?", now).
		Order("priority DESC, created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}

// Create 创建公告
func (r *GormAnnouncementRepository) Create(announcement *models.Announcement) error {
	return r.db.Create(announcement).Error
}

// Update 更新公告
func (r *GormAnnouncementRepository) Update(announcement *models.Announcement) error {
	return r.db.Save(announcement).Error
}

// UpdateFields 部分更新，返回命中行数（0 行表示不存在）
func (r *GormAnnouncementRepository) UpdateFields(id uint, updates map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.Announcement{}).Where("id = ?", id).Updates(updates)
	return result.RowsAffected, result.Error
}

// Delete 删除公告（物理删除，返回命中行数）
func (r *GormAnnouncementRepository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&models.Announcement{}, id)
	return result.RowsAffected, result.Error
}
