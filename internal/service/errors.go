package service

import (
	"errors"

	"github.com/gogreen-admin/internal/wizard"
)

// 优惠活动相关错误
var (
	ErrPromotionInvalid        = errors.New("优惠活动数据无效")
	ErrPromotionNotFound       = errors.New("优惠活动不存在")
	ErrPromotionCodeTaken      = errors.New("优惠码已被占用")
	ErrPromotionInactive       = errors.New("优惠活动未启用")
	ErrPromotionNotStarted     = errors.New("优惠活动尚未开始")
	ErrPromotionExpired        = errors.New("优惠活动已过期")
	ErrPromotionUsageExhausted = errors.New("优惠活动使用次数已达上限")
)

// 公告相关错误
var (
	ErrAnnouncementInvalid       = errors.New("公告数据无效")
	ErrAnnouncementNotFound      = errors.New("公告不存在")
	ErrAnnouncementTypeImmutable = errors.New("公告类型创建后不可修改")
)

// 内容通用错误
var (
	ErrContentKindInvalid         = errors.New("内容类型无效")
	ErrContentNotFoundOrForbidden = errors.New("内容不存在或无权操作")
	ErrPermissionDenied           = errors.New("无权执行该操作")
)

// 创建向导相关错误（状态机错误由 wizard 包定义，这里复用）
var (
	ErrWizardSessionNotFound = wizard.ErrSessionNotFound
	ErrWizardStepBlocked     = wizard.ErrStepBlocked
	ErrWizardNotSubmittable  = wizard.ErrNotSubmittable
	ErrWizardKindInvalid     = wizard.ErrKindInvalid
)

// 商品相关错误
var (
	ErrProductInvalid       = errors.New("商品数据无效")
	ErrProductNotFound      = errors.New("商品不存在")
	ErrProductSlugTaken     = errors.New("商品标识已被占用")
	ErrProductStockShortage = errors.New("商品库存不足")
)

// 文章相关错误
var (
	ErrPostInvalid   = errors.New("文章数据无效")
	ErrPostNotFound  = errors.New("文章不存在")
	ErrPostSlugTaken = errors.New("文章标识已被占用")
)

// Hub 会员相关错误
var (
	ErrHubMemberInvalid     = errors.New("会员数据无效")
	ErrHubMemberNotFound    = errors.New("会员不存在")
	ErrHubMemberEmailTaken  = errors.New("会员邮箱已被占用")
	ErrHubMemberPointsShort = errors.New("会员积分不足")
)

// 管理员相关错误
var (
	ErrAdminInvalid      = errors.New("管理员数据无效")
	ErrAdminNotFound     = errors.New("管理员不存在")
	ErrAdminNameTaken    = errors.New("管理员账号已被占用")
	ErrAdminDisabled     = errors.New("管理员账号已停用")
	ErrInvalidCredential = errors.New("用户名或密码错误")
	ErrInvalidPassword   = errors.New("原密码不正确")
	ErrWeakPassword      = errors.New("密码不满足安全策略")
	ErrCaptchaRequired   = errors.New("请先完成验证码")
	ErrCaptchaInvalid    = errors.New("验证码不正确")
	ErrCaptchaDisabled   = errors.New("验证码功能未开启")
)
