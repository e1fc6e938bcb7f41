package service

import (
	"context"
	"time"

	"github.com/gogreen-admin/internal/cache"
	"github.com/gogreen-admin/internal/repository"
)

const (
	dashboardCacheTTL        = 45 * time.Second
	dashboardNewMemberWindow = 30 * 24 * time.Hour
	dashboardLowStockDefault = 10
)

// DashboardService 内容看板服务
// 说明：聚合后台首页的内容与会员统计快照。
type DashboardService struct {
	repo repository.DashboardRepository
}

// NewDashboardService 创建内容看板服务
func NewDashboardService(repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// DashboardOverviewResponse 内容看板总览响应
type DashboardOverviewResponse struct {
	GeneratedAt string                 `json:"generated_at"`
	Content     DashboardContentStats  `json:"content"`
	Catalog     DashboardCatalogStats  `json:"catalog"`
	Members     DashboardMemberStats   `json:"members"`
	TopCodes    []DashboardCodeRanking `json:"top_codes"`
	Alerts      []DashboardAlertItem   `json:"alerts"`
}

// DashboardContentStats 内容状态分布
type DashboardContentStats struct {
	PromotionsTotal       int64 `json:"promotions_total"`
	PromotionsActive      int64 `json:"promotions_active"`
	PromotionsUpcoming    int64 `json:"promotions_upcoming"`
	PromotionsExpired     int64 `json:"promotions_expired"`
	PromotionsInactive    int64 `json:"promotions_inactive"`
	AnnouncementsTotal    int64 `json:"announcements_total"`
	AnnouncementsActive   int64 `json:"announcements_active"`
	AnnouncementsUpcoming int64 `json:"announcements_upcoming"`
	AnnouncementsExpired  int64 `json:"announcements_expired"`
	AnnouncementsInactive int64 `json:"announcements_inactive"`
	HomepagePromotions    int64 `json:"homepage_promotions"`
	HomepageAnnouncements int64 `json:"homepage_announcements"`
}

// DashboardCatalogStats 商品与文章统计
type DashboardCatalogStats struct {
	ActiveProducts     int64 `json:"active_products"`
	OutOfStockProducts int64 `json:"out_of_stock_products"`
	LowStockProducts   int64 `json:"low_stock_products"`
	OrganicProducts    int64 `json:"organic_products"`
	PublishedPosts     int64 `json:"published_posts"`
	DraftPosts         int64 `json:"draft_posts"`
}

// DashboardMemberStats Hub 会员统计
type DashboardMemberStats struct {
	TotalMembers  int64            `json:"total_members"`
	ActiveMembers int64            `json:"active_members"`
	NewMembers    int64            `json:"new_members"`
	TierCounts    map[string]int64 `json:"tier_counts"`
}

// DashboardCodeRanking 优惠码使用排行项
type DashboardCodeRanking struct {
	PromotionID uint   `json:"promotion_id"`
	Title       string `json:"title"`
	Code        string `json:"code"`
	UsageCount  int    `json:"usage_count"`
	UsageLimit  int    `json:"usage_limit"`
}

// DashboardAlertItem 看板告警项
type DashboardAlertItem struct {
	Type  string `json:"type"`
	Level string `json:"level"`
	Value int64  `json:"value"`
}

// GetOverview 获取内容看板总览（带短 TTL 缓存）
func (s *DashboardService) GetOverview(ctx context.Context, forceRefresh bool) (*DashboardOverviewResponse, error) {
	if s == nil || s.repo == nil {
		return &DashboardOverviewResponse{}, nil
	}

	now := time.Now()
	cacheKey := "dashboard:overview"
	if !forceRefresh {
		var cached DashboardOverviewResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	overview, err := s.repo.GetContentOverview(now)
	if err != nil {
		return nil, err
	}
	catalog, err := s.repo.GetCatalogStats(dashboardLowStockDefault)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.GetMemberStats(now.Add(-dashboardNewMemberWindow))
	if err != nil {
		return nil, err
	}
	topPromotions, err := s.repo.GetTopPromotions(5)
	if err != nil {
		return nil, err
	}

	response := &DashboardOverviewResponse{
		GeneratedAt: now.Format(time.RFC3339),
		Content: DashboardContentStats{
			PromotionsTotal:       overview.PromotionsTotal,
			PromotionsActive:      overview.PromotionsActive,
			PromotionsUpcoming:    overview.PromotionsUpcoming,
			PromotionsExpired:     overview.PromotionsExpired,
			PromotionsInactive:    overview.PromotionsInactive,
			AnnouncementsTotal:    overview.AnnouncementsTotal,
			AnnouncementsActive:   overview.AnnouncementsActive,
			AnnouncementsUpcoming: overview.AnnouncementsUpcoming,
			AnnouncementsExpired:  overview.AnnouncementsExpired,
			AnnouncementsInactive: overview.AnnouncementsInactive,
			HomepagePromotions:    overview.HomepagePromotions,
			HomepageAnnouncements: overview.HomepageAnnouncements,
		},
		Catalog: DashboardCatalogStats{
			ActiveProducts:     catalog.ActiveProducts,
			OutOfStockProducts: catalog.OutOfStockProducts,
			LowStockProducts:   catalog.LowStockProducts,
			OrganicProducts:    catalog.OrganicProducts,
			PublishedPosts:     catalog.PublishedPosts,
			DraftPosts:         catalog.DraftPosts,
		},
		Members: DashboardMemberStats{
			TotalMembers:  members.TotalMembers,
			ActiveMembers: members.ActiveMembers,
			NewMembers:    members.NewMembers,
			TierCounts:    members.TierCounts,
		},
	}

	for _, row := range topPromotions {
		response.TopCodes = append(response.TopCodes, DashboardCodeRanking{
			PromotionID: row.PromotionID,
			Title:       row.Title,
			Code:        row.Code,
			UsageCount:  row.UsageCount,
			UsageLimit:  row.UsageLimit,
		})
	}

	response.Alerts = buildDashboardAlerts(response)

	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

// InvalidateOverview 内容变化后使看板缓存失效
func (s *DashboardService) InvalidateOverview(ctx context.Context) {
	_ = cache.Del(ctx, "dashboard:overview")
}

func buildDashboardAlerts(response *DashboardOverviewResponse) []DashboardAlertItem {
	alerts := make([]DashboardAlertItem, 0, 3)
	if response.Catalog.OutOfStockProducts > 0 {
		alerts = append(alerts, DashboardAlertItem{
			Type:  "out_of_stock_products",
			Level: "warning",
			Value: response.Catalog.OutOfStockProducts,
		})
	}
	if response.Catalog.LowStockProducts > 0 {
		alerts = append(alerts, DashboardAlertItem{
			Type:  "low_stock_products",
			Level: "info",
			Value: response.Catalog.LowStockProducts,
		})
	}
	if response.Content.PromotionsExpired > 0 {
		alerts = append(alerts, DashboardAlertItem{
			Type:  "expired_promotions",
			Level: "info",
			Value: response.Content.PromotionsExpired,
		})
	}
	return alerts
}
