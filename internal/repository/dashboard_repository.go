package repository

import (
	"time"

	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 内容看板聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetContentOverview(now time.Time) (DashboardContentOverviewRow, error)
	GetCatalogStats(lowStockThreshold int) (DashboardCatalogStatsRow, error)
	GetMemberStats(newSince time.Time) (DashboardMemberStatsRow, error)
	GetTopPromotions(limit int) ([]DashboardPromotionRankingRow, error)
}

// DashboardContentOverviewRow 内容总览原始统计结果
type DashboardContentOverviewRow struct {
	PromotionsTotal       int64
	PromotionsActive      int64
	PromotionsUpcoming    int64
	PromotionsExpired     int64
	PromotionsInactive    int64
	AnnouncementsTotal    int64
	AnnouncementsActive   int64
	AnnouncementsUpcoming int64
	AnnouncementsExpired  int64
	AnnouncementsInactive int64
	HomepagePromotions    int64
	HomepageAnnouncements int64
}

// DashboardCatalogStatsRow 商品与文章统计
type DashboardCatalogStatsRow struct {
	ActiveProducts     int64
	OutOfStockProducts int64
	LowStockProducts   int64
	OrganicProducts    int64
	PublishedPosts     int64
	DraftPosts         int64
}

// DashboardMemberStatsRow Hub 会员统计
type DashboardMemberStatsRow struct {
	TotalMembers  int64
	ActiveMembers int64
	NewMembers    int64
	TierCounts    map[string]int64
}

// DashboardPromotionRankingRow 优惠活动使用排行原始行
type DashboardPromotionRankingRow struct {
	PromotionID uint
	Title       string
	Code        string
	UsageCount  int
	UsageLimit  int
}

// GormDashboardRepository GORM 内容看板聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建内容看板仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetContentOverview 获取内容状态分布统计
func (r *GormDashboardRepository) GetContentOverview(now time.Time) (DashboardContentOverviewRow, error) {
	result := DashboardContentOverviewRow{}

	promotionBase := func() *gorm.DB {
		return r.db.Model(&models.Promotion{})
	}
	announcementBase := func() *gorm.DB {
		return r.db.Model(&models.Announcement{})
	}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&result.PromotionsTotal, promotionBase()},
		{&result.PromotionsActive, statusBucket(promotionBase(), constants.ContentStatusActive, now)},
		{&result.PromotionsUpcoming, statusBucket(promotionBase(), constants.ContentStatusUpcoming, now)},
		{&result.PromotionsExpired, statusBucket(promotionBase(), constants.ContentStatusExpired, now)},
		{&result.PromotionsInactive, statusBucket(promotionBase(), constants.ContentStatusInactive, now)},
		{&result.AnnouncementsTotal, announcementBase()},
		{&result.AnnouncementsActive, statusBucket(announcementBase(), constants.ContentStatusActive, now)},
		{&result.AnnouncementsUpcoming, statusBucket(announcementBase(), constants.ContentStatusUpcoming, now)},
		{&result.AnnouncementsExpired, statusBucket(announcementBase(), constants.ContentStatusExpired, now)},
		{&result.AnnouncementsInactive, statusBucket(announcementBase(), constants.ContentStatusInactive, now)},
		{&result.HomepagePromotions, homepageWindow(promotionBase(), now)},
		{&result.HomepageAnnouncements, homepageWindow(announcementBase(), now)},
	}
	for _, item := range counts {
		if err := item.query.Count(item.dest).Error; err != nil {
			return result, err
		}
	}
	return result, nil
}

// statusBucket 将推导状态映射为 SQL 条件（与 models.DeriveContentStatus 一致）
func statusBucket(query *gorm.DB, status string, now time.Time) *gorm.DB {
	switch status {
	case constants.ContentStatusExpired:
		return query.Where("end_date < ?", now)
	case constants.ContentStatusInactive:
		return query.Where("end_date >= ?", now).Where("is_active = ?", false)
	case constants.ContentStatusUpcoming:
		return query.Where("end_date >= ?", now).Where("is_active = ?", true).Where("start_date > ?", now)
	default:
		return query.Where("end_date >= ?", now).Where("is_active = ?", true).Where("start_date <= ?", now)
	}
}

func homepageWindow(query *gorm.DB, now time.Time) *gorm.DB {
	return query.
		Where("show_on_homepage = ?", true).
		Where("is_active = ?", true).
		Where("start_date <= ?", now).
		Where("end_date >= ?", now)
}

// GetCatalogStats 获取商品/文章统计
func (r *GormDashboardRepository) GetCatalogStats(lowStockThreshold int) (DashboardCatalogStatsRow, error) {
	result := DashboardCatalogStatsRow{}

	productBase := func() *gorm.DB {
		return r.db.Model(&models.Product{})
	}

	if err := productBase().Where("is_active = ?", true).Count(&result.ActiveProducts).Error; err != nil {
		return result, err
	}
	if err := productBase().Where("is_active = ? AND stock_quantity <= 0", true).Count(&result.OutOfStockProducts).Error; err != nil {
		return result, err
	}
	if lowStockThreshold > 0 {
		err := productBase().
			Where("is_active = ? AND stock_quantity > 0 AND stock_quantity <= ?", true, lowStockThreshold).
			Count(&result.LowStockProducts).Error
		if err != nil {
			return result, err
		}
	}
	if err := productBase().Where("is_active = ? AND is_organic = ?", true, true).Count(&result.OrganicProducts).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Post{}).Where("status = ?", constants.PostStatusPublished).Count(&result.PublishedPosts).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Post{}).Where("status = ?", constants.PostStatusDraft).Count(&result.DraftPosts).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetMemberStats 获取会员统计
func (r *GormDashboardRepository) GetMemberStats(newSince time.Time) (DashboardMemberStatsRow, error) {
	result := DashboardMemberStatsRow{TierCounts: make(map[string]int64)}

	memberBase := func() *gorm.DB {
		return r.db.Model(&models.HubMember{})
	}

	if err := memberBase().Count(&result.TotalMembers).Error; err != nil {
		return result, err
	}
	if err := memberBase().Where("status = ?", "active").Count(&result.ActiveMembers).Error; err != nil {
		return result, err
	}
	if err := memberBase().Where("joined_at >= ?", newSince).Count(&result.NewMembers).Error; err != nil {
		return result, err
	}

	type tierCountRow struct {
		Tier  string
		Count int64
	}
	rows := make([]tierCountRow, 0)
	if err := memberBase().Select("tier, COUNT(*) AS count").Group("tier").Scan(&rows).Error; err != nil {
		return result, err
	}
	for _, row := range rows {
		result.TierCounts[row.Tier] = row.Count
	}
	return result, nil
}

// GetTopPromotions 获取使用次数最多的优惠活动
func (r *GormDashboardRepository) GetTopPromotions(limit int) ([]DashboardPromotionRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]DashboardPromotionRankingRow, 0)
	err := r.db.Model(&models.Promotion{}).
		Select("id AS promotion_id, title, code, usage_count, usage_limit").
		Where("usage_count > 0").
		Order("usage_count DESC, id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
