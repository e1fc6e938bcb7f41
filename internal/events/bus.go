package events

import (
	"sync"
	"time"

	"github.com/gogreen-admin/internal/logger"
)

// ContentEvent 内容变更事件
type ContentEvent struct {
	Name string    // 事件名（content-list-changed / homepage-content-changed）
	Kind string    // 内容种类（promotion / announcement）
	ID   uint      // 内容ID（0 表示整体刷新）
	At   time.Time // 事件发生时间
}

// Handler 事件处理函数
type Handler func(event ContentEvent)

// Bus 进程内事件总线
// 说明：同步派发，订阅方自行决定是否转异步；单个订阅方 panic 不影响其它订阅方。
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe 订阅指定事件
func (b *Bus) Subscribe(name string, handler Handler) {
	if b == nil || name == "" || handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], handler)
}

// Publish 派发事件给所有订阅方
func (b *Bus) Publish(event ContentEvent) {
	if b == nil || event.Name == "" {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}

	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Name]))
	copy(handlers, b.handlers[event.Name])
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.dispatch(event, handler)
	}
}

func (b *Bus) dispatch(event ContentEvent, handler Handler) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorw("event_handler_panic",
				"event", event.Name,
				"kind", event.Kind,
				"id", event.ID,
				"panic", r,
			)
		}
	}()
	handler(event)
}
