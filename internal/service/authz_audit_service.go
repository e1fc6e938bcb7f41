package service

import (
	"strings"
	"time"

	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/repository"
)

// AuthzAuditRecordInput 一条权限变更审计记录
type AuthzAuditRecordInput struct {
	OperatorAdminID  uint
	OperatorUsername string
	TargetAdminID    *uint
	TargetUsername   string
	Action           string
	Role             string
	Object           string
	Method           string
	RequestID        string
	Detail           models.JSON
}

// AuthzAuditService 权限变更审计
// 审计失败不应阻断业务操作，缺少必填项时静默跳过。
type AuthzAuditService struct {
	repo repository.AuthzAuditLogRepository
}

// NewAuthzAuditService 创建权限审计服务
func NewAuthzAuditService(repo repository.AuthzAuditLogRepository) *AuthzAuditService {
	return &AuthzAuditService{repo: repo}
}

// Record 落一条审计日志
func (s *AuthzAuditService) Record(input AuthzAuditRecordInput) error {
	if s == nil || s.repo == nil {
		return nil
	}
	action := strings.TrimSpace(input.Action)
	if input.OperatorAdminID == 0 || action == "" {
		return nil
	}

	return s.repo.Create(&models.AuthzAuditLog{
		OperatorAdminID:  input.OperatorAdminID,
		OperatorUsername: strings.TrimSpace(input.OperatorUsername),
		TargetAdminID:    input.TargetAdminID,
		TargetUsername:   strings.TrimSpace(input.TargetUsername),
		Action:           action,
		Role:             strings.TrimSpace(input.Role),
		Object:           strings.TrimSpace(input.Object),
		Method:           strings.ToUpper(strings.TrimSpace(input.Method)),
		RequestID:        strings.TrimSpace(input.RequestID),
		DetailJSON:       input.Detail,
		CreatedAt:        time.Now(),
	})
}

// ListForAdmin 管理端按条件分页查询审计日志
func (s *AuthzAuditService) ListForAdmin(filter repository.AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.AuthzAuditLog{}, 0, nil
	}
	return s.repo.ListAdmin(filter)
}
