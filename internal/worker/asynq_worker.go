package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gogreen-admin/internal/cache"
	"github.com/gogreen-admin/internal/logger"
	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/provider"
	"github.com/gogreen-admin/internal/queue"
	"github.com/gogreen-admin/internal/repository"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskHomepageCacheRebuild, c.handleHomepageCacheRebuild)
	mux.HandleFunc(queue.TaskContentExpirySweep, c.handleContentExpirySweep)
}

func (c *Consumer) handleHomepageCacheRebuild(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_homepage_rebuild_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.HomepageCacheRebuildPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_homepage_rebuild_unmarshal_failed", "error", err)
		return err
	}
	if err := cache.DelHomepageContent(ctx); err != nil {
		logger.Warnw("worker_homepage_rebuild_invalidate_failed", "kind", payload.Kind, "content_id", payload.ContentID, "error", err)
	}
	if c.ContentService == nil {
		logger.Warnw("worker_homepage_rebuild_skip_content_service_nil", "kind", payload.Kind, "content_id", payload.ContentID)
		return nil
	}

	maxSlots := 0
	ttl := time.Duration(0)
	if c.Config != nil {
		maxSlots = c.Config.Homepage.MaxSlots
		ttl = time.Duration(c.Config.Homepage.CacheTTLSeconds) * time.Second
	}
	content, err := c.ContentService.GetHomepageContent(time.Now(), maxSlots)
	if err != nil {
		logger.Warnw("worker_homepage_rebuild_fetch_failed", "kind", payload.Kind, "content_id", payload.ContentID, "error", err)
		return err
	}
	if cache.Enabled() && ttl > 0 {
		if err := cache.SetHomepageContent(ctx, content, ttl); err != nil {
			logger.Warnw("worker_homepage_rebuild_cache_failed", "kind", payload.Kind, "content_id", payload.ContentID, "error", err)
			return err
		}
	}
	if c.DashboardService != nil {
		c.DashboardService.InvalidateOverview(ctx)
	}
	return nil
}

func (c *Consumer) handleContentExpirySweep(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_expiry_sweep_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ContentExpirySweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_expiry_sweep_unmarshal_failed", "error", err)
		return err
	}
	now := time.Now()
	if payload.TriggeredAtUnix > 0 {
		now = time.Unix(payload.TriggeredAtUnix, 0)
	}
	return c.sweepExpiredContent(ctx, now)
}

// sweepExpiredContent 清扫已过期但仍标记首页展示的内容并刷新缓存
func (c *Consumer) sweepExpiredContent(ctx context.Context, now time.Time) error {
	if c == nil {
		return nil
	}

	swept := 0
	onHomepage := true
	var promotions []models.Promotion
	var announcements []models.Announcement
	if c.PromotionRepo != nil {
		var err error
		promotions, _, err = c.PromotionRepo.List(repository.PromotionListFilter{ShowOnHomepage: &onHomepage})
		if err != nil {
			logger.Warnw("worker_expiry_sweep_list_promotions_failed", "error", err)
			return err
		}
		for _, promotion := range promotions {
			if !isHomepageLeftover(promotion.ShowOnHomepage, promotion.EndDate, now) {
				continue
			}
			if _, err := c.PromotionRepo.UpdateFields(promotion.ID, map[string]interface{}{"show_on_homepage": false}); err != nil {
				logger.Warnw("worker_expiry_sweep_update_promotion_failed", "promotion_id", promotion.ID, "error", err)
				return err
			}
			swept++
		}
	}
	if c.AnnouncementRepo != nil {
		var err error
		announcements, _, err = c.AnnouncementRepo.List(repository.AnnouncementListFilter{ShowOnHomepage: &onHomepage})
		if err != nil {
			logger.Warnw("worker_expiry_sweep_list_announcements_failed", "error", err)
			return err
		}
		for _, announcement := range announcements {
			if !isHomepageLeftover(announcement.ShowOnHomepage, announcement.EndDate, now) {
				continue
			}
			if _, err := c.AnnouncementRepo.UpdateFields(announcement.ID, map[string]interface{}{"show_on_homepage": false}); err != nil {
				logger.Warnw("worker_expiry_sweep_update_announcement_failed", "announcement_id", announcement.ID, "error", err)
				return err
			}
			swept++
		}
	}

	if swept == 0 {
		logger.Debugw("worker_expiry_sweep_nothing_to_do", "now", now)
		return nil
	}
	logger.Infow("worker_expiry_sweep_done", "swept", swept, "titles", expiredHomepageLeftovers(promotions, announcements, now), "now", now)

	if err := cache.DelHomepageContent(ctx); err != nil {
		logger.Warnw("worker_expiry_sweep_invalidate_failed", "error", err)
	}
	if c.DashboardService != nil {
		c.DashboardService.InvalidateOverview(ctx)
	}
	return nil
}

// isHomepageLeftover 判断首页展示位是否已被过期内容占用
func isHomepageLeftover(showOnHomepage bool, endDate time.Time, now time.Time) bool {
	if !showOnHomepage {
		return false
	}
	if endDate.IsZero() {
		return false
	}
	return endDate.Before(now)
}

// expiredHomepageLeftovers 统计占用首页展示位的过期内容标题
func expiredHomepageLeftovers(promotions []models.Promotion, announcements []models.Announcement, now time.Time) []string {
	titles := make([]string, 0)
	for _, promotion := range promotions {
		if isHomepageLeftover(promotion.ShowOnHomepage, promotion.EndDate, now) {
			titles = append(titles, promotion.Title)
		}
	}
	for _, announcement := range announcements {
		if isHomepageLeftover(announcement.ShowOnHomepage, announcement.EndDate, now) {
			titles = append(titles, announcement.Title)
		}
	}
	return titles
}
