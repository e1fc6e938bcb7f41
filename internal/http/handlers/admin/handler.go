package admin

import "github.com/gogreen-admin/internal/provider"

// Handler 管理端 API 处理器
// 直接内嵌容器，按需取各层服务与仓库。
type Handler struct {
	*provider.Container
}

// New 创建管理端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
