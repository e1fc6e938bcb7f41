package admin

import (
	"errors"

	"github.com/gogreen-admin/internal/http/response"
	"github.com/gogreen-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminAccountRequest 创建/更新管理员请求
type AdminAccountRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
	IsSuper     *bool  `json:"is_super"`
	Status      string `json:"status"`
}

func (r AdminAccountRequest) toServiceInput() service.AdminInput {
	return service.AdminInput{
		Username:    r.Username,
		Email:       r.Email,
		DisplayName: r.DisplayName,
		Password:    r.Password,
		IsSuper:     r.IsSuper,
		Status:      r.Status,
	}
}

// GetAdmins 获取管理员列表
func (h *Handler) GetAdmins(c *gin.Context) {
	admins, err := h.AdminService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, admins)
}

// GetAdmin 获取管理员详情
func (h *Handler) GetAdmin(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	admin, err := h.AdminService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, admin)
}

// CreateAdmin 创建管理员
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req AdminAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	admin, err := h.AdminService.Create(req.toServiceInput())
	if err != nil {
		respondAdminAccountWriteError(c, err)
		return
	}

	response.Success(c, admin)
}

// UpdateAdmin 更新管理员资料与状态
func (h *Handler) UpdateAdmin(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req AdminAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	admin, err := h.AdminService.Update(id, req.toServiceInput())
	if err != nil {
		respondAdminAccountWriteError(c, err)
		return
	}

	response.Success(c, admin)
}

// ResetAdminPasswordRequest 重置密码请求
type ResetAdminPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetAdminPassword 重置管理员密码并失效旧 Token
func (h *Handler) ResetAdminPassword(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ResetAdminPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AdminService.ResetPassword(id, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWeakPassword) {
			respondWeakPasswordError(c, err)
			return
		}
		respondAdminAccountWriteError(c, err)
		return
	}

	response.Success(c, nil)
}

// DeleteAdmin 删除管理员
func (h *Handler) DeleteAdmin(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.AdminService.Delete(id); err != nil {
		respondAdminAccountWriteError(c, err)
		return
	}

	response.Success(c, nil)
}

func respondAdminAccountWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAdminInvalid):
		respondError(c, response.CodeBadRequest, "error.admin_invalid", nil)
	case errors.Is(err, service.ErrAdminNameTaken):
		respondError(c, response.CodeConflict, "error.admin_name_taken", nil)
	case errors.Is(err, service.ErrWeakPassword):
		respondWeakPasswordError(c, err)
	case errors.Is(err, service.ErrAdminNotFound):
		respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
	default:
		respondError(c, response.CodeInternal, "error.save_failed", err)
	}
}
