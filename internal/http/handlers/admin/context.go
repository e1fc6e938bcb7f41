package admin

import (
	"strings"

	handlershared "github.com/gogreen-admin/internal/http/handlers/shared"
	"github.com/gogreen-admin/internal/service"

	"github.com/gin-gonic/gin"
)

func getContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, key, invalidKey, typeInvalidKey)
}

func getAdminID(c *gin.Context) (uint, bool) {
	return getContextUintWithKeys(c, "admin_id", "error.admin_id_invalid", "error.admin_id_type_invalid")
}

// currentActor 组装当前操作者（内容编辑权限判定使用）
func currentActor(c *gin.Context) service.Actor {
	return service.Actor{
		ID:       currentAdminID(c),
		Username: currentUsername(c),
		IsSuper:  currentIsSuper(c),
	}
}

func currentAdminID(c *gin.Context) uint {
	value, exists := c.Get("admin_id")
	if !exists {
		return 0
	}
	switch adminID := value.(type) {
	case uint:
		return adminID
	case int:
		if adminID > 0 {
			return uint(adminID)
		}
	case float64:
		if adminID > 0 {
			return uint(adminID)
		}
	}
	return 0
}

func currentUsername(c *gin.Context) string {
	value, exists := c.Get("username")
	if !exists {
		return ""
	}
	if username, ok := value.(string); ok {
		return strings.TrimSpace(username)
	}
	return ""
}

func currentIsSuper(c *gin.Context) bool {
	value, exists := c.Get("admin_is_super")
	if !exists {
		return false
	}
	if isSuper, ok := value.(bool); ok {
		return isSuper
	}
	return false
}

func currentRequestID(c *gin.Context) string {
	value, exists := c.Get("request_id")
	if !exists {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return strings.TrimSpace(requestID)
	}
	return ""
}
