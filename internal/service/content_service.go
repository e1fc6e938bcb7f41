package service

import (
	"sort"
	"strings"
	"time"

	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/repository"
)

// ContentService 聚合优惠活动与公告的统一内容视图
type ContentService struct {
	promotionRepo    repository.PromotionRepository
	announcementRepo repository.AnnouncementRepository
	permission       *PermissionService
}

// NewContentService 创建内容聚合服务
func NewContentService(
	promotionRepo repository.PromotionRepository,
	announcementRepo repository.AnnouncementRepository,
	permission *PermissionService,
) *ContentService {
	return &ContentService{
		promotionRepo:    promotionRepo,
		announcementRepo: announcementRepo,
		permission:       permission,
	}
}

// ContentItem 统一内容列表行
type ContentItem struct {
	Kind           string    `json:"kind"`               // promotion / announcement
	ID             uint      `json:"id"`                 // 内容ID
	Title          string    `json:"title"`              // 标题
	Summary        string    `json:"summary"`            // 描述或正文
	Code           string    `json:"code,omitempty"`     // 优惠码（仅优惠活动）
	SubType        string    `json:"sub_type,omitempty"` // 公告子类型
	Status         string    `json:"status"`             // 推导状态
	Priority       int       `json:"priority"`           // 展示优先级
	ShowOnHomepage bool      `json:"show_on_homepage"`
	IsActive       bool      `json:"is_active"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	CreatedByID    uint      `json:"created_by_id"`
	CreatedAt      time.Time `json:"created_at"`
	CanEdit        bool      `json:"can_edit"` // 当前操作者是否可编辑
}

// ContentQuery 统一内容列表查询条件
type ContentQuery struct {
	Search string // 标题/描述/优惠码模糊匹配（大小写不敏感）
	Status string // all / active / inactive / expired / upcoming
}

// ContentListResult 统一内容列表结果
type ContentListResult struct {
	Items        []ContentItem    `json:"items"`
	StatusCounts map[string]int64 `json:"status_counts"`
	Total        int64            `json:"total"`
}

// ListContent 加载全部内容并按查询条件过滤，附带状态分布统计
func (s *ContentService) ListContent(actor Actor, query ContentQuery, now time.Time) (*ContentListResult, error) {
	promotions, _, err := s.promotionRepo.List(repository.PromotionListFilter{})
	if err != nil {
		return nil, err
	}
	announcements, _, err := s.announcementRepo.List(repository.AnnouncementListFilter{})
	if err != nil {
		return nil, err
	}

	items := make([]ContentItem, 0, len(promotions)+len(announcements))
	for i := range promotions {
		items = append(items, s.promotionItem(&promotions[i], actor, now))
	}
	for i := range announcements {
		items = append(items, s.announcementItem(&announcements[i], actor, now))
	}

	sortContentItems(items)

	counts := map[string]int64{
		constants.ContentStatusActive:   0,
		constants.ContentStatusInactive: 0,
		constants.ContentStatusUpcoming: 0,
		constants.ContentStatusExpired:  0,
	}
	for _, item := range items {
		counts[item.Status]++
	}

	filtered := filterContentItems(items, query)

	return &ContentListResult{
		Items:        filtered,
		StatusCounts: counts,
		Total:        int64(len(filtered)),
	}, nil
}

// HomepageContent 首页展示内容（两类合并后按优先级截断）
type HomepageContent struct {
	Promotions    []models.Promotion    `json:"promotions"`
	Announcements []models.Announcement `json:"announcements"`
}

// GetHomepageContent 获取首页内容，合并后总量不超过 limit
func (s *ContentService) GetHomepageContent(now time.Time, limit int) (*HomepageContent, error) {
	if limit <= 0 {
		limit = constants.HomepageMaxSlots
	}

	promotions, err := s.promotionRepo.ListHomepage(now, limit)
	if err != nil {
		return nil, err
	}
	announcements, err := s.announcementRepo.ListHomepage(now, limit)
	if err != nil {
		return nil, err
	}

	// 合并排序后整体截断，保证首页总槽位不超限
	type slot struct {
		priority  int
		createdAt time.Time
		promotion *models.Promotion
		announce  *models.Announcement
	}
	slots := make([]slot, 0, len(promotions)+len(announcements))
	for i := range promotions {
		slots = append(slots, slot{
			priority:  promotions[i].Priority,
			createdAt: promotions[i].CreatedAt,
			promotion: &promotions[i],
		})
	}
	for i := range announcements {
		slots = append(slots, slot{
			priority:  announcements[i].Priority,
			createdAt: announcements[i].CreatedAt,
			announce:  &announcements[i],
		})
	}
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].priority != slots[j].priority {
			return slots[i].priority > slots[j].priority
		}
		return slots[i].createdAt.After(slots[j].createdAt)
	})
	if len(slots) > limit {
		slots = slots[:limit]
	}

	result := &HomepageContent{
		Promotions:    make([]models.Promotion, 0, limit),
		Announcements: make([]models.Announcement, 0, limit),
	}
	for _, item := range slots {
		if item.promotion != nil {
			result.Promotions = append(result.Promotions, *item.promotion)
		} else if item.announce != nil {
			result.Announcements = append(result.Announcements, *item.announce)
		}
	}
	return result, nil
}

func (s *ContentService) promotionItem(promotion *models.Promotion, actor Actor, now time.Time) ContentItem {
	return ContentItem{
		Kind:           constants.ContentKindPromotion,
		ID:             promotion.ID,
		Title:          promotion.Title,
		Summary:        promotion.Description,
		Code:           promotion.Code,
		Status:         promotion.Status(now),
		Priority:       promotion.Priority,
		ShowOnHomepage: promotion.ShowOnHomepage,
		IsActive:       promotion.IsActive,
		StartDate:      promotion.StartDate,
		EndDate:        promotion.EndDate,
		CreatedByID:    promotion.CreatedByID,
		CreatedAt:      promotion.CreatedAt,
		CanEdit:        actor.IsSuper || actor.ID == promotion.CreatedByID,
	}
}

func (s *ContentService) announcementItem(announcement *models.Announcement, actor Actor, now time.Time) ContentItem {
	return ContentItem{
		Kind:           constants.ContentKindAnnouncement,
		ID:             announcement.ID,
		Title:          announcement.Title,
		Summary:        announcement.Message,
		SubType:        announcement.Type,
		Status:         announcement.Status(now),
		Priority:       announcement.Priority,
		ShowOnHomepage: announcement.ShowOnHomepage,
		IsActive:       announcement.IsActive,
		StartDate:      announcement.StartDate,
		EndDate:        announcement.EndDate,
		CreatedByID:    announcement.CreatedByID,
		CreatedAt:      announcement.CreatedAt,
		CanEdit:        actor.IsSuper || actor.ID == announcement.CreatedByID,
	}
}

func sortContentItems(items []ContentItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority != items[j].Priority {
			return items[i].Priority > items[j].Priority
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func filterContentItems(items []ContentItem, query ContentQuery) []ContentItem {
	search := strings.ToLower(strings.TrimSpace(query.Search))
	status := strings.ToLower(strings.TrimSpace(query.Status))
	if status == "" || status == "all" {
		status = ""
	}

	filtered := make([]ContentItem, 0, len(items))
	for _, item := range items {
		if status != "" && item.Status != status {
			continue
		}
		if search != "" && !contentItemMatches(item, search) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

func contentItemMatches(item ContentItem, search string) bool {
	return strings.Contains(strings.ToLower(item.Title), search) ||
		strings.Contains(strings.ToLower(item.Summary), search) ||
		strings.Contains(strings.ToLower(item.Code), search)
}
