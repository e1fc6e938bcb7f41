package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// LocaleEN 英文
	LocaleEN = "en-US"
	// LocaleZH 中文
	LocaleZH = "zh-CN"

	defaultLocale = LocaleEN
)

// ResolveLocale 解析请求语言
// 优先级：lang 查询参数 > X-Locale 头 > Accept-Language 头
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return defaultLocale
	}
	if lang := normalizeLocale(c.Query("lang")); lang != "" {
		return lang
	}
	if lang := normalizeLocale(c.GetHeader("X-Locale")); lang != "" {
		return lang
	}
	accept := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(accept, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if lang := normalizeLocale(tag); lang != "" {
			return lang
		}
	}
	return defaultLocale
}

// T 取指定语言的文案，缺失时退回英文，再退回 key 本身
func T(locale, key string) string {
	if catalog, ok := catalogs[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[defaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 取文案并执行格式化
func Sprintf(locale, key string, args ...interface{}) string {
	template := T(locale, key)
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}

func normalizeLocale(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case value == "":
		return ""
	case strings.HasPrefix(value, "zh"):
		return LocaleZH
	case strings.HasPrefix(value, "en"):
		return LocaleEN
	}
	return ""
}
