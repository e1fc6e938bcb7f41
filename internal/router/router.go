package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gogreen-admin/internal/authz"
	"github.com/gogreen-admin/internal/cache"
	"github.com/gogreen-admin/internal/config"
	adminhandlers "github.com/gogreen-admin/internal/http/handlers/admin"
	publichandlers "github.com/gogreen-admin/internal/http/handlers/public"
	"github.com/gogreen-admin/internal/http/response"
	"github.com/gogreen-admin/internal/logger"
	"github.com/gogreen-admin/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "gg"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口（店面）
		public := apiV1.Group("/public")
		{
			public.GET("/homepage", publicHandler.GetHomepageContent)
			public.GET("/announcements", publicHandler.GetAnnouncements)
			public.GET("/promotions/validate", publicHandler.ValidatePromotion)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
			public.GET("/posts", publicHandler.GetPosts)
			public.GET("/posts/:slug", publicHandler.GetPostBySlug)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				// 仪表盘
				authorized.GET("/dashboard/overview", adminHandler.GetDashboardOverview)

				// 统一内容列表
				authorized.GET("/content", adminHandler.GetAdminContent)

				// 优惠活动管理
				authorized.GET("/promotions", adminHandler.GetAdminPromotions)
				authorized.GET("/promotions/:id", adminHandler.GetAdminPromotion)
				authorized.POST("/promotions", adminHandler.CreatePromotion)
				authorized.PUT("/promotions/:id", adminHandler.UpdatePromotion)
				authorized.PATCH("/promotions/:id/toggle", adminHandler.TogglePromotion)
				authorized.DELETE("/promotions/:id", adminHandler.DeletePromotion)

				// 公告管理
				authorized.GET("/announcements", adminHandler.GetAdminAnnouncements)
				authorized.GET("/announcements/:id", adminHandler.GetAdminAnnouncement)
				authorized.POST("/announcements", adminHandler.CreateAnnouncement)
				authorized.PUT("/announcements/:id", adminHandler.UpdateAnnouncement)
				authorized.PATCH("/announcements/:id/toggle", adminHandler.ToggleAnnouncement)
				authorized.DELETE("/announcements/:id", adminHandler.DeleteAnnouncement)

				// 创建向导
				authorized.POST("/wizard", adminHandler.StartWizard)
				authorized.GET("/wizard/:id", adminHandler.GetWizardSession)
				authorized.PUT("/wizard/:id", adminHandler.SaveWizardSession)
				authorized.POST("/wizard/:id/next", adminHandler.WizardNext)
				authorized.POST("/wizard/:id/previous", adminHandler.WizardPrevious)
				authorized.POST("/wizard/:id/goto", adminHandler.WizardGoto)
				authorized.POST("/wizard/:id/submit", adminHandler.SubmitWizard)
				authorized.DELETE("/wizard/:id", adminHandler.DiscardWizard)

				// 商品管理
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.GET("/products/search", adminHandler.SearchAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.PATCH("/products/:id/stock", adminHandler.AdjustProductStock)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				// 文章管理
				authorized.GET("/posts", adminHandler.GetAdminPosts)
				authorized.GET("/posts/:id", adminHandler.GetAdminPost)
				authorized.POST("/posts", adminHandler.CreatePost)
				authorized.PUT("/posts/:id", adminHandler.UpdatePost)
				authorized.DELETE("/posts/:id", adminHandler.DeletePost)

				// Hub 会员管理
				authorized.GET("/hub-members", adminHandler.GetHubMembers)
				authorized.GET("/hub-members/tiers", adminHandler.GetHubTierOverview)
				authorized.GET("/hub-members/:id", adminHandler.GetHubMember)
				authorized.POST("/hub-members", adminHandler.CreateHubMember)
				authorized.PUT("/hub-members/:id", adminHandler.UpdateHubMember)
				authorized.PATCH("/hub-members/:id/points", adminHandler.AdjustHubMemberPoints)
				authorized.DELETE("/hub-members/:id", adminHandler.DeleteHubMember)

				// 管理员账号管理
				authorized.GET("/admins", adminHandler.GetAdmins)
				authorized.GET("/admins/:id", adminHandler.GetAdmin)
				authorized.POST("/admins", adminHandler.CreateAdmin)
				authorized.PUT("/admins/:id", adminHandler.UpdateAdmin)
				authorized.POST("/admins/:id/reset-password", adminHandler.ResetAdminPassword)
				authorized.DELETE("/admins/:id", adminHandler.DeleteAdmin)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword) // 修改密码

				// 权限管理
				authorized.GET("/authz/me", adminHandler.GetAuthzMe)
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.GET("/authz/audit-logs", adminHandler.ListAuthzAuditLogs)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
