package service

import (
	"strings"
	"sync"
	"time"

	"github.com/gogreen-admin/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaVerifyPayload 验证码校验请求载荷
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService 图片验证码服务
// 负责生成登录挑战并校验提交的答案
// 外部仅需调用 GenerateImageChallenge 与 Verify
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu                  sync.Mutex
	imageStore          base64Captcha.Store
	imageStoreMaxStore  int
	imageStoreExpireSec int
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: normalizeCaptchaConfig(cfg)}
}

// Enabled 验证码是否开启
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	if !s.Enabled() {
		return nil, ErrCaptchaDisabled
	}

	store := s.ensureImageStore()
	driver := base64Captcha.NewDriverString(
		s.cfg.Image.Height,
		s.cfg.Image.Width,
		s.cfg.Image.NoiseCount,
		s.cfg.Image.ShowLine,
		s.cfg.Image.Length,
		"0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, store)
	id, b64s, _, genErr := captcha.Generate()
	if genErr != nil {
		return nil, genErr
	}

	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify 校验验证码
// 未开启时直接放行
func (s *CaptchaService) Verify(payload CaptchaVerifyPayload) error {
	if !s.Enabled() {
		return nil
	}

	captchaID := strings.TrimSpace(payload.CaptchaID)
	captchaCode := strings.TrimSpace(payload.CaptchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaRequired
	}

	store := s.ensureImageStore()
	if !store.Verify(captchaID, captchaCode, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func (s *CaptchaService) ensureImageStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.imageStore != nil && s.imageStoreMaxStore == s.cfg.Image.MaxStore && s.imageStoreExpireSec == s.cfg.Image.ExpireSeconds {
		return s.imageStore
	}
	s.imageStore = base64Captcha.NewMemoryStore(s.cfg.Image.MaxStore, time.Duration(s.cfg.Image.ExpireSeconds)*time.Second)
	s.imageStoreMaxStore = s.cfg.Image.MaxStore
	s.imageStoreExpireSec = s.cfg.Image.ExpireSeconds
	return s.imageStore
}

func normalizeCaptchaConfig(cfg config.CaptchaConfig) config.CaptchaConfig {
	if cfg.Image.Length <= 0 {
		cfg.Image.Length = 4
	}
	if cfg.Image.Width <= 0 {
		cfg.Image.Width = 160
	}
	if cfg.Image.Height <= 0 {
		cfg.Image.Height = 60
	}
	if cfg.Image.NoiseCount < 0 {
		cfg.Image.NoiseCount = 0
	}
	if cfg.Image.ExpireSeconds <= 0 {
		cfg.Image.ExpireSeconds = 300
	}
	if cfg.Image.MaxStore <= 0 {
		cfg.Image.MaxStore = 10240
	}
	return cfg
}
