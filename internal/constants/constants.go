package constants

// 优惠活动折扣类型常量
const (
	DiscountTypePercentage  = "percentage"
	DiscountTypeFixedAmount = "fixed_amount"
	DiscountTypeBuyXGetY    = "buy_x_get_y"
)

// 公告类型常量
const (
	AnnouncementTypeSeasonal = "seasonal"
	AnnouncementTypeInfo     = "info"
	AnnouncementTypeAlert    = "alert"
)

// 预警紧急程度常量
const (
	AlertUrgencyInfo     = "info"
	AlertUrgencyWarning  = "warning"
	AlertUrgencyCritical = "critical"
)

// 预警类别常量
const (
	AlertCategoryService     = "service"
	AlertCategorySecurity    = "security"
	AlertCategoryMaintenance = "maintenance"
	AlertCategoryPolicy      = "policy"
)

// 内容生命周期状态常量（由时间窗口与启用开关推导）
const (
	ContentStatusActive   = "active"
	ContentStatusInactive = "inactive"
	ContentStatusUpcoming = "upcoming"
	ContentStatusExpired  = "expired"
)

// 内容种类常量
const (
	ContentKindPromotion    = "promotion"
	ContentKindAnnouncement = "announcement"
)

// 公告文案长度上限（按类型区分）
const (
	SeasonalMessageMaxLen = 200
	InfoMessageMaxLen     = 300
	AlertMessageMaxLen    = 250
)

// TitleMaxLen 内容标题长度上限
const TitleMaxLen = 60

// 首页展示优先级与容量
const (
	HomepagePriorityMin = 0
	HomepagePriorityMax = 10
	HomepageMaxSlots    = 5
)

// 创建向导种类常量
const (
	WizardKindPromotion = "promotion"
	WizardKindSeasonal  = "seasonal"
	WizardKindInfo      = "info"
	WizardKindAlert     = "alert"
)

// 创建向导步骤边界
const (
	WizardStepFirst = 1
	WizardStepLast  = 4
)

// 博客文章状态常量
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// Hub 会员等级常量
const (
	HubTierSprout  = "sprout"
	HubTierBloom   = "bloom"
	HubTierHarvest = "harvest"
)

// 管理员状态常量
const (
	AdminStatusActive   = "active"
	AdminStatusDisabled = "disabled"
)

// 异步队列与任务名称常量
const (
	QueueDefault             = "default"
	TaskHomepageCacheRebuild = "content:homepage_cache_rebuild"
	TaskContentExpirySweep   = "content:expiry_sweep"
)

// 内容变更事件常量
const (
	EventContentListChanged     = "content-list-changed"
	EventHomepageContentChanged = "homepage-content-changed"
)

// SeasonalBackgroundPalette 季节公告可选背景色
var SeasonalBackgroundPalette = []string{
	"green",
	"amber",
	"orange",
	"red",
	"teal",
	"violet",
}

// DefaultCurrency 平台默认结算币种
const DefaultCurrency = "USD"
