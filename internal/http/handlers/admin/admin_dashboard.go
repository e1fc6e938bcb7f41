package admin

import (
	"strconv"
	"strings"

	"github.com/gogreen-admin/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview 获取仪表盘概览
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	forceRefresh := false
	if raw := strings.TrimSpace(c.Query("force_refresh")); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			forceRefresh = parsed
		}
	}

	overview, err := h.DashboardService.GetOverview(c.Request.Context(), forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, overview)
}
