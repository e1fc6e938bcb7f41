package admin

import (
	"strings"
	"time"

	"github.com/gogreen-admin/internal/http/response"
	"github.com/gogreen-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminContent 获取统一内容列表（优惠活动 + 公告）
func (h *Handler) GetAdminContent(c *gin.Context) {
	query := service.ContentQuery{
		Search: strings.TrimSpace(c.Query("search")),
		Status: strings.TrimSpace(c.Query("status")),
	}

	result, err := h.ContentService.ListContent(currentActor(c), query, time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, result)
}
