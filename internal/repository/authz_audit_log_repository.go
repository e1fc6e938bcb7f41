package repository

import (
	"github.com/gogreen-admin/internal/models"

	"gorm.io/gorm"
)

// AuthzAuditLogRepository 权限审计日志存取
type AuthzAuditLogRepository interface {
	Create(log *models.AuthzAuditLog) error
	ListAdmin(filter AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error)
}

// GormAuthzAuditLogRepository GORM 实现
type GormAuthzAuditLogRepository struct {
	db *gorm.DB
}

// NewAuthzAuditLogRepository 创建权限审计日志仓库
func NewAuthzAuditLogRepository(db *gorm.DB) *GormAuthzAuditLogRepository {
	return &GormAuthzAuditLogRepository{db: db}
}

func (r *GormAuthzAuditLogRepository) Create(log *models.AuthzAuditLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

// ListAdmin 按筛选条件分页查询，新记录在前
func (r *GormAuthzAuditLogRepository) ListAdmin(filter AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error) {
	query := r.db.Model(&models.AuthzAuditLog{})

	equalFilters := map[string]interface{}{}
	if filter.OperatorAdminID != 0 {
		equalFilters["operator_admin_id"] = filter.OperatorAdminID
	}
	if filter.TargetAdminID != 0 {
		equalFilters["target_admin_id"] = filter.TargetAdminID
	}
	if filter.Action != "" {
		equalFilters["action"] = filter.Action
	}
	if filter.Role != "" {
		equalFilters["role"] = filter.Role
	}
	if filter.Object != "" {
		equalFilters["object"] = filter.Object
	}
	if filter.Method != "" {
		equalFilters["method"] = filter.Method
	}
	if len(equalFilters) > 0 {
		query = query.Where(equalFilters)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]models.AuthzAuditLog, 0)
	if err := applyPagination(query, filter.Page, filter.PageSize).Order("id DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
