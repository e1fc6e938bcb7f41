package shared

import (
	"github.com/gogreen-admin/internal/http/response"
	"github.com/gogreen-admin/internal/i18n"
	"github.com/gogreen-admin/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 返回携带 request_id 的日志实例
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 按 i18n key 返回错误响应，有底层错误时记一条日志
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondErrorWithMsg(c, code, i18n.T(i18n.ResolveLocale(c), key), err)
}

// RespondErrorWithMsg 按已解析文案返回错误响应
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}
