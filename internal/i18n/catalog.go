package i18n

var catalogs = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":            "invalid request",
		"error.internal":               "internal server error",
		"error.not_found":              "resource not found",
		"error.unauthorized":           "unauthorized",
		"error.forbidden":              "permission denied",
		"error.rate_limited":           "too many requests, try again later",
		"error.rate_limit_unavailable": "rate limiter is unavailable",
		"error.login_too_many":         "too many login attempts, try again in %d seconds",
		"error.jwt_secret_missing":     "jwt secret is not configured",
		"error.auth_header_missing":    "authorization header is missing",
		"error.auth_header_invalid":    "authorization header is malformed",
		"error.token_invalid":          "token is invalid or expired",
		"error.token_revoked":          "token has been revoked",
		"error.admin_disabled":         "account is disabled",

		"error.invalid_credentials":     "invalid username or password",
		"error.invalid_password":        "current password is incorrect",
		"error.login_failed":            "login failed, try again later",
		"error.password_weak":           "password does not meet the security policy",
		"error.captcha_required":        "captcha is required",
		"error.captcha_invalid":         "captcha is incorrect",
		"error.captcha_disabled":        "captcha is not enabled",
		"error.captcha_unavailable":     "captcha is unavailable",
		"error.captcha_generate_failed": "failed to generate captcha",
		"error.captcha_verify_failed":   "failed to verify captcha",

		"error.fetch_failed": "failed to load data",
		"error.save_failed":  "failed to save data",

		"error.admin_id_invalid":      "admin identity is missing",
		"error.admin_id_type_invalid": "admin identity is malformed",

		"error.password_min_length":      "password must be at least %d characters",
		"error.password_require_upper":   "password must contain an uppercase letter",
		"error.password_require_lower":   "password must contain a lowercase letter",
		"error.password_require_number":  "password must contain a digit",
		"error.password_require_special": "password must contain a special character",

		"error.promotion_invalid":         "promotion data is invalid",
		"error.promotion_not_found":       "promotion not found",
		"error.promotion_code_taken":      "promotion code is already in use",
		"error.promotion_inactive":        "promotion is not active",
		"error.promotion_not_started":     "promotion has not started yet",
		"error.promotion_expired":         "promotion has expired",
		"error.promotion_usage_exhausted": "promotion usage limit reached",

		"error.announcement_invalid":        "announcement data is invalid",
		"error.announcement_not_found":      "announcement not found",
		"error.announcement_type_immutable": "announcement type cannot be changed",

		"error.content_kind_invalid":           "content kind is invalid",
		"error.content_not_found_or_forbidden": "content not found or you are not allowed to modify it",

		"error.wizard_session_not_found": "wizard session not found or expired",
		"error.wizard_step_blocked":      "current step is incomplete",
		"error.wizard_not_submittable":   "wizard is not ready to submit",
		"error.wizard_kind_invalid":      "wizard kind is invalid",

		"error.product_invalid":        "product data is invalid",
		"error.product_not_found":      "product not found",
		"error.product_slug_taken":     "product slug is already in use",
		"error.product_stock_shortage": "insufficient stock",

		"error.post_invalid":    "post data is invalid",
		"error.post_not_found":  "post not found",
		"error.post_slug_taken": "post slug is already in use",

		"error.member_invalid":      "member data is invalid",
		"error.member_not_found":    "member not found",
		"error.member_email_taken":  "member email is already registered",
		"error.member_points_short": "member points balance is insufficient",

		"error.admin_invalid":    "admin data is invalid",
		"error.admin_not_found":  "admin not found",
		"error.admin_name_taken": "username or email is already in use",
	},
	LocaleZH: {
		"error.bad_request":            "请求参数无效",
		"error.internal":               "服务器内部错误",
		"error.not_found":              "资源不存在",
		"error.unauthorized":           "未登录或登录已失效",
		"error.forbidden":              "无权执行该操作",
		"error.rate_limited":           "请求过于频繁，请稍后再试",
		"error.rate_limit_unavailable": "限流服务暂不可用",
		"error.login_too_many":         "登录尝试过于频繁，请在 %d 秒后重试",
		"error.jwt_secret_missing":     "JWT 密钥未配置",
		"error.auth_header_missing":    "缺少认证头",
		"error.auth_header_invalid":    "认证头格式错误",
		"error.token_invalid":          "登录凭证无效或已过期",
		"error.token_revoked":          "登录凭证已被吊销",
		"error.admin_disabled":         "账号已停用",

		"error.invalid_credentials":     "用户名或密码错误",
		"error.invalid_password":        "原密码不正确",
		"error.login_failed":            "登录失败，请稍后重试",
		"error.password_weak":           "密码不满足安全策略",
		"error.captcha_required":        "请先完成验证码",
		"error.captcha_invalid":         "验证码不正确",
		"error.captcha_disabled":        "验证码功能未开启",
		"error.captcha_unavailable":     "验证码服务不可用",
		"error.captcha_generate_failed": "验证码生成失败",
		"error.captcha_verify_failed":   "验证码校验失败",

		"error.fetch_failed": "数据加载失败",
		"error.save_failed":  "数据保存失败",

		"error.admin_id_invalid":      "缺少管理员身份",
		"error.admin_id_type_invalid": "管理员身份格式错误",

		"error.password_min_length":      "密码长度不能少于 %d 位",
		"error.password_require_upper":   "密码需要包含大写字母",
		"error.password_require_lower":   "密码需要包含小写字母",
		"error.password_require_number":  "密码需要包含数字",
		"error.password_require_special": "密码需要包含特殊字符",

		"error.promotion_invalid":         "优惠活动数据无效",
		"error.promotion_not_found":       "优惠活动不存在",
		"error.promotion_code_taken":      "优惠码已被占用",
		"error.promotion_inactive":        "优惠活动未启用",
		"error.promotion_not_started":     "优惠活动尚未开始",
		"error.promotion_expired":         "优惠活动已过期",
		"error.promotion_usage_exhausted": "优惠活动使用次数已达上限",

		"error.announcement_invalid":        "公告数据无效",
		"error.announcement_not_found":      "公告不存在",
		"error.announcement_type_immutable": "公告类型创建后不可修改",

		"error.content_kind_invalid":           "内容类型无效",
		"error.content_not_found_or_forbidden": "内容不存在或无权操作",

		"error.wizard_session_not_found": "向导会话不存在或已过期",
		"error.wizard_step_blocked":      "当前步骤校验未通过",
		"error.wizard_not_submittable":   "向导尚未完成，不能提交",
		"error.wizard_kind_invalid":      "向导类型无效",

		"error.product_invalid":        "商品数据无效",
		"error.product_not_found":      "商品不存在",
		"error.product_slug_taken":     "商品标识已被占用",
		"error.product_stock_shortage": "商品库存不足",

		"error.post_invalid":    "文章数据无效",
		"error.post_not_found":  "文章不存在",
		"error.post_slug_taken": "文章标识已被占用",

		"error.member_invalid":      "会员数据无效",
		"error.member_not_found":    "会员不存在",
		"error.member_email_taken":  "会员邮箱已被占用",
		"error.member_points_short": "会员积分不足",

		"error.admin_invalid":    "管理员数据无效",
		"error.admin_not_found":  "管理员不存在",
		"error.admin_name_taken": "账号或邮箱已被占用",
	},
}
