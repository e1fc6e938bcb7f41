package repository

import (
	"errors"

	"github.com/gogreen-admin/internal/models"

	"gorm.io/gorm"
)

// HubMemberRepository Hub 会员数据访问接口
type HubMemberRepository interface {
	GetByID(id uint) (*models.HubMember, error)
	GetByEmail(email string) (*models.HubMember, error)
	List(filter HubMemberListFilter) ([]models.HubMember, int64, error)
	Create(member *models.HubMember) error
	Update(member *models.HubMember) error
	Delete(id uint) error
	AdjustPoints(id uint, delta int) (int64, error)
	CountByTier() (map[string]int64, error)
}

// GormHubMemberRepository GORM 实现
type GormHubMemberRepository struct {
	db *gorm.DB
}

// NewHubMemberRepository 创建 Hub 会员仓库
func NewHubMemberRepository(db *gorm.DB) *GormHubMemberRepository {
	return &GormHubMemberRepository{db: db}
}

// GetByID 根据ID获取会员
func (r *GormHubMemberRepository) GetByID(id uint) (*models.HubMember, error) {
	var member models.HubMember
	if err := r.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// GetByEmail 根据邮箱获取会员
func (r *GormHubMemberRepository) GetByEmail(email string) (*models.HubMember, error) {
	var member models.HubMember
	if err := r.db.Where("email = ?", email).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// List 获取会员列表
func (r *GormHubMemberRepository) List(filter HubMemberListFilter) ([]models.HubMember, int64, error) {
	members := make([]models.HubMember, 0)
	query := r.db.Model(&models.HubMember{})

	if filter.Keyword != "" {
		condition, argCount := buildSearchLikeCondition(r.db, []string{"email", "display_name"})
		if condition != "" {
			like := "%" + filter.Keyword + "%"
			query = query.Where(condition, repeatLikeArgs(like, argCount)...)
		}
	}
	if filter.Tier != "" {
		query = query.Where("tier = ?", filter.Tier)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.JoinedFrom != nil {
		query = query.Where("joined_at >= ?", *filter.JoinedFrom)
	}
	if filter.JoinedTo != nil {
		query = query.Where("joined_at <= ?", *filter.JoinedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id DESC").Find(&members).Error; err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// Create 创建会员
func (r *GormHubMemberRepository) Create(member *models.HubMember) error {
	return r.db.Create(member).Error
}

// Update 更新会员
func (r *GormHubMemberRepository) Update(member *models.HubMember) error {
	return r.db.Save(member).Error
}

// Delete 删除会员（软删除）
func (r *GormHubMemberRepository) Delete(id uint) error {
	return r.db.Delete(&models.HubMember{}, id).Error
}

// AdjustPoints 调整积分，扣减不允许为负（不命中任何行表示余额不足）
func (r *GormHubMemberRepository) AdjustPoints(id uint, delta int) (int64, error) {
	query := r.db.Model(&models.HubMember{}).Where("id = ?", id)
	if delta < 0 {
		query = query.Where("points_balance >= ?", -delta)
	}
	result := query.UpdateColumn("points_balance", gorm.Expr("points_balance + ?", delta))
	return result.RowsAffected, result.Error
}

// CountByTier 按等级统计会员数量
func (r *GormHubMemberRepository) CountByTier() (map[string]int64, error) {
	type tierCountRow struct {
		Tier  string
		Count int64
	}
	rows := make([]tierCountRow, 0)
	err := r.db.Model(&models.HubMember{}).
		Select("tier, COUNT(*) AS count").
		Group("tier").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Tier] = row.Count
	}
	return counts, nil
}
