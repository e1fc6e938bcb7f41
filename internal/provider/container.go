package provider

import (
	"context"
	"time"

	"github.com/gogreen-admin/internal/authz"
	"github.com/gogreen-admin/internal/cache"
	"github.com/gogreen-admin/internal/config"
	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/events"
	"github.com/gogreen-admin/internal/logger"
	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/queue"
	"github.com/gogreen-admin/internal/repository"
	"github.com/gogreen-admin/internal/service"
	"github.com/gogreen-admin/internal/wizard"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	Bus         *events.Bus
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	PromotionRepo     repository.PromotionRepository
	AnnouncementRepo  repository.AnnouncementRepository
	ProductRepo       repository.ProductRepository
	PostRepo          repository.PostRepository
	HubMemberRepo     repository.HubMemberRepository
	AuthzAuditLogRepo repository.AuthzAuditLogRepository
	DashboardRepo     repository.DashboardRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	CaptchaService      *service.CaptchaService
	AdminService        *service.AdminService
	PermissionService   *service.PermissionService
	PromotionService    *service.PromotionService
	AnnouncementService *service.AnnouncementService
	ContentService      *service.ContentService
	WizardService       *service.WizardService
	ProductService      *service.ProductService
	PostService         *service.PostService
	HubMemberService    *service.HubMemberService
	AuthzAuditService   *service.AuthzAuditService
	DashboardService    *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		Bus:         events.NewBus(),
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	// 3. 订阅内容变更事件
	c.subscribeContentEvents()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.PromotionRepo = repository.NewPromotionRepository(db)
	c.AnnouncementRepo = repository.NewAnnouncementRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.HubMemberRepo = repository.NewHubMemberRepository(db)
	c.AuthzAuditLogRepo = repository.NewAuthzAuditLogRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.AdminService = service.NewAdminService(c.AdminRepo, c.AuthService)
	c.PermissionService = service.NewPermissionService(c.PromotionRepo, c.AnnouncementRepo)
	c.PromotionService = service.NewPromotionService(c.PromotionRepo, c.PermissionService, c.Bus)
	c.AnnouncementService = service.NewAnnouncementService(c.AnnouncementRepo, c.PermissionService, c.Bus)
	c.ContentService = service.NewContentService(c.PromotionRepo, c.AnnouncementRepo, c.PermissionService)

	sessionTTL := time.Duration(c.Config.Wizard.SessionTTLMinutes) * time.Minute
	c.WizardService = service.NewWizardService(wizard.NewManager(sessionTTL), c.PromotionService, c.AnnouncementService)

	c.ProductService = service.NewProductService(c.ProductRepo)
	c.PostService = service.NewPostService(c.PostRepo)
	c.HubMemberService = service.NewHubMemberService(c.HubMemberRepo)
	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditLogRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
}

// subscribeContentEvents 内容变更后失效缓存并触发异步重建
func (c *Container) subscribeContentEvents() {
	c.Bus.Subscribe(constants.EventHomepageContentChanged, func(event events.ContentEvent) {
		ctx := context.Background()
		if err := cache.DelHomepageContent(ctx); err != nil {
			logger.Warnw("provider_homepage_cache_invalidate_failed", "error", err)
		}
		c.DashboardService.InvalidateOverview(ctx)

		if c.QueueClient != nil && c.QueueClient.Enabled() {
			payload := queue.HomepageCacheRebuildPayload{Kind: event.Kind, ContentID: event.ID}
			if err := c.QueueClient.EnqueueHomepageCacheRebuild(payload); err != nil {
				logger.Warnw("provider_enqueue_homepage_rebuild_failed", "error", err)
			}
		}
	})

	c.Bus.Subscribe(constants.EventContentListChanged, func(event events.ContentEvent) {
		c.DashboardService.InvalidateOverview(context.Background())
	})
}
