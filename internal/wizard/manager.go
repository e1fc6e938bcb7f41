package wizard

import (
	"errors"
	"sync"
	"time"

	"github.com/gogreen-admin/internal/constants"

	"github.com/google/uuid"
)

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = errors.New("向导会话不存在或已过期")

// Session 向导会话
// 每个会话对应一次创建/编辑流程，步骤在 1-4 之间线性推进
type Session struct {
	ID        string     `json:"id"`
	Kind      string     `json:"kind"`
	AdminID   uint       `json:"admin_id"`
	TargetID  *uint      `json:"target_id,omitempty"` // 编辑中的优惠活动ID（公告不支持通过向导编辑）
	Step      int        `json:"step"`
	Data      FormData   `json:"data"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	expiresAt time.Time
}

// Manager 向导会话管理器
// 会话仅存活于内存，超时后按需清理
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewManager 创建会话管理器
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Start 开启新会话
// 类型一经选择不可更换，只能丢弃会话重新选择
func (m *Manager) Start(kind string, adminID uint, targetID *uint, initial FormData) (Session, error) {
	if !ValidKind(kind) {
		return Session{}, ErrKindInvalid
	}
	if targetID != nil && kind != constants.WizardKindPromotion {
		return Session{}, ErrKindInvalid
	}

	now := time.Now()
	session := &Session{
		ID:        uuid.NewString(),
		Kind:      kind,
		AdminID:   adminID,
		TargetID:  targetID,
		Step:      constants.WizardStepFirst,
		Data:      initial,
		CreatedAt: now,
		UpdatedAt: now,
		expiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	m.pruneLocked(now)
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return *session, nil
}

// Get 读取会话快照
func (m *Manager) Get(id string) (Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok || time.Now().After(session.expiresAt) {
		return Session{}, ErrSessionNotFound
	}
	return *session, nil
}

// Save 覆盖保存表单数据并续期
func (m *Manager) Save(id string, data FormData) (Session, error) {
	return m.mutate(id, func(session *Session) error {
		session.Data = data
		return nil
	})
}

// Next 在当前步骤校验通过后推进一步
func (m *Manager) Next(id string) (Session, error) {
	return m.mutate(id, func(session *Session) error {
		if err := StepGate(session.Kind, session.Step, session.Data); err != nil {
			return err
		}
		if session.Step < constants.WizardStepLast {
			session.Step++
		}
		return nil
	})
}

// Previous 回退一步
// 从第一步回退等同于放弃会话，回到类型选择
func (m *Manager) Previous(id string) (Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok || time.Now().After(session.expiresAt) {
		return Session{}, false, ErrSessionNotFound
	}
	if session.Step <= constants.WizardStepFirst {
		delete(m.sessions, id)
		return Session{}, true, nil
	}
	session.Step--
	session.UpdatedAt = time.Now()
	session.expiresAt = session.UpdatedAt.Add(m.ttl)
	return *session, false, nil
}

// Goto 直接跳转到指定步骤
// 步骤指示器允许越过 Next 的准入校验直接跳转，这里保留该行为
func (m *Manager) Goto(id string, step int) (Session, error) {
	if step < constants.WizardStepFirst || step > constants.WizardStepLast {
		return Session{}, ErrStepBlocked
	}
	return m.mutate(id, func(session *Session) error {
		session.Step = step
		return nil
	})
}

// Discard 丢弃会话
func (m *Manager) Discard(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len 当前存活会话数
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked(time.Now())
	return len(m.sessions)
}

func (m *Manager) mutate(id string, fn func(*Session) error) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok || time.Now().After(session.expiresAt) {
		return Session{}, ErrSessionNotFound
	}
	if err := fn(session); err != nil {
		return Session{}, err
	}
	session.UpdatedAt = time.Now()
	session.expiresAt = session.UpdatedAt.Add(m.ttl)
	return *session, nil
}

func (m *Manager) pruneLocked(now time.Time) {
	for id, session := range m.sessions {
		if now.After(session.expiresAt) {
			delete(m.sessions, id)
		}
	}
}
