package admin

import (
	"errors"

	"github.com/gogreen-admin/internal/http/response"
	"github.com/gogreen-admin/internal/i18n"
	"github.com/gogreen-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username       string                `json:"username" binding:"required"`
	Password       string                `json:"password" binding:"required"`
	RememberMe     bool                  `json:"remember_me"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string                 `json:"token"`
	User      map[string]interface{} `json:"user"`
	ExpiresAt string                 `json:"expires_at"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if h.CaptchaService != nil && h.CaptchaService.Enabled() {
		if captchaErr := h.CaptchaService.Verify(req.CaptchaPayload.toServicePayload()); captchaErr != nil {
			switch {
			case errors.Is(captchaErr, service.ErrCaptchaRequired):
				respondError(c, response.CodeBadRequest, "error.captcha_required", nil)
				return
			case errors.Is(captchaErr, service.ErrCaptchaInvalid):
				respondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
				return
			default:
				respondError(c, response.CodeInternal, "error.captcha_verify_failed", captchaErr)
				return
			}
		}
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password, req.RememberMe)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredential):
			respondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
		case errors.Is(err, service.ErrAdminDisabled):
			respondError(c, response.CodeUnauthorized, "error.admin_disabled", nil)
		default:
			respondError(c, response.CodeInternal, "error.login_failed", err)
		}
		return
	}
	response.Success(c, LoginResponse{
		Token: token,
		User: map[string]interface{}{
			"id":           admin.ID,
			"username":     admin.Username,
			"display_name": admin.DisplayName,
			"is_super":     admin.IsSuper,
		},
		ExpiresAt: expiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword 修改管理员密码
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthService.ChangePassword(id, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			respondError(c, response.CodeBadRequest, "error.invalid_password", nil)
			return
		}
		if errors.Is(err, service.ErrWeakPassword) {
			respondWeakPasswordError(c, err)
			return
		}
		if errors.Is(err, service.ErrAdminNotFound) {
			respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, nil)
}

// respondWeakPasswordError 输出密码策略失败的具体原因
func respondWeakPasswordError(c *gin.Context, err error) {
	locale := i18n.ResolveLocale(c)
	if perr, ok := err.(interface {
		Key() string
		Args() []interface{}
	}); ok {
		msg := i18n.Sprintf(locale, perr.Key(), perr.Args()...)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	respondError(c, response.CodeBadRequest, "error.password_weak", nil)
}
