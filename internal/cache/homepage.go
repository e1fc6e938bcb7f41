package cache

import (
	"context"
	"time"
)

const homepageContentKey = "content:homepage"

// GetHomepageContent 获取首页内容缓存
func GetHomepageContent(ctx context.Context, dest interface{}) (bool, error) {
	return GetJSON(ctx, homepageContentKey, dest)
}

// SetHomepageContent 写入首页内容缓存
func SetHomepageContent(ctx context.Context, value interface{}, ttl time.Duration) error {
	return SetJSON(ctx, homepageContentKey, value, ttl)
}

// DelHomepageContent 失效首页内容缓存
func DelHomepageContent(ctx context.Context) error {
	return Del(ctx, homepageContentKey)
}
