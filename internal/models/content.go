package models

import (
	"time"

	"github.com/gogreen-admin/internal/constants"
)

// DeriveContentStatus 按时间窗口与启用开关推导内容展示状态。
// 过期判定优先于其它状态；未过期但停用判定为 inactive；
// 边界时刻（恰好等于起止时间）判定为 active。
func DeriveContentStatus(isActive bool, start, end time.Time, now time.Time) string {
	if end.Before(now) {
		return constants.ContentStatusExpired
	}
	if !isActive {
		return constants.ContentStatusInactive
	}
	if start.After(now) {
		return constants.ContentStatusUpcoming
	}
	return constants.ContentStatusActive
}

// InWindow 当前时间是否落在 [start, end] 窗口内
func InWindow(start, end time.Time, now time.Time) bool {
	return !start.After(now) && !end.Before(now)
}
