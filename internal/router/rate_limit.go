package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gogreen-admin/internal/http/response"
	"github.com/gogreen-admin/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	BlockSeconds  int
	MessageKey    string
}

// 固定窗口计数，首次写入附带过期时间，计数与剩余 TTL 一次返回。
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware 基于 Redis 的请求频率限制
// Redis 不可用时直接拒绝请求而不是放行，登录口宁可误杀不可漏放。
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = fmt.Sprintf("%s:%s", rule.Prefix, key)
		}

		result, err := rateLimitScript.Run(c.Request.Context(), client, []string{key}, rule.WindowSeconds).Result()
		if err != nil {
			rejectLimiterUnavailable(c)
			return
		}

		values, ok := result.([]interface{})
		if !ok || len(values) < 2 {
			rejectLimiterUnavailable(c)
			return
		}
		count, ok := toInt64(values[0])
		if !ok {
			rejectLimiterUnavailable(c)
			return
		}
		ttlSeconds, _ := toInt64(values[1])

		if count <= int64(rule.MaxRequests) {
			c.Next()
			return
		}

		waitSeconds := int(ttlSeconds)
		// 首次越限时把窗口延长到封禁时长
		if rule.BlockSeconds > waitSeconds {
			if err := client.Expire(c.Request.Context(), key, time.Duration(rule.BlockSeconds)*time.Second).Err(); err == nil {
				waitSeconds = rule.BlockSeconds
			}
		}
		if waitSeconds < 1 {
			waitSeconds = rule.WindowSeconds
		}
		if waitSeconds < 1 {
			waitSeconds = 1
		}

		msgKey := strings.TrimSpace(rule.MessageKey)
		if msgKey == "" {
			msgKey = "error.rate_limited"
		}
		response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(i18n.ResolveLocale(c), msgKey, waitSeconds))
		c.Abort()
	}
}

func rejectLimiterUnavailable(c *gin.Context) {
	msg := i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable")
	response.Error(c, response.CodeInternal, msg)
	c.Abort()
}

// KeyByIP 使用客户端 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 使用请求体 JSON 字段 + IP 作为限流 key
// 字段缺失或请求体不是 JSON 时退回纯 IP。
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(strings.TrimSpace(readJSONField(c, field)))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}

// readJSONField 窥探请求体字段后恢复 Body 供后续绑定使用
func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return ""
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if text, ok := payload[field].(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uint32:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
