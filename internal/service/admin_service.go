package service

import (
	"context"
	"strings"
	"time"

	"github.com/gogreen-admin/internal/cache"
	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/repository"
)

// AdminService 管理员账号管理服务
type AdminService struct {
	repo repository.AdminRepository
	auth *AuthService
}

// NewAdminService 创建管理员管理服务
func NewAdminService(repo repository.AdminRepository, auth *AuthService) *AdminService {
	return &AdminService{repo: repo, auth: auth}
}

// AdminInput 创建/更新管理员输入
type AdminInput struct {
	Username    string
	Email       string
	DisplayName string
	Password    string
	IsSuper     *bool
	Status      string
}

// List 获取管理员列表
func (s *AdminService) List() ([]models.Admin, error) {
	return s.repo.List()
}

// GetByID 获取管理员详情
func (s *AdminService) GetByID(id uint) (*models.Admin, error) {
	admin, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}

// Create 创建管理员
func (s *AdminService) Create(input AdminInput) (*models.Admin, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" || email == "" || !strings.Contains(email, "@") {
		return nil, ErrAdminInvalid
	}

	existing, err := s.repo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAdminNameTaken
	}
	existing, err = s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAdminNameTaken
	}

	if err := s.auth.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	passwordHash, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status == "" {
		status = constants.AdminStatusActive
	}
	if status != constants.AdminStatusActive && status != constants.AdminStatusDisabled {
		return nil, ErrAdminInvalid
	}

	isSuper := false
	if input.IsSuper != nil {
		isSuper = *input.IsSuper
	}

	admin := models.Admin{
		Username:     username,
		Email:        email,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: passwordHash,
		IsSuper:      isSuper,
		Status:       status,
	}
	if err := s.repo.Create(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// Update 更新管理员资料与状态
func (s *AdminService) Update(id uint, input AdminInput) (*models.Admin, error) {
	admin, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}

	if email := strings.ToLower(strings.TrimSpace(input.Email)); email != "" && email != admin.Email {
		if !strings.Contains(email, "@") {
			return nil, ErrAdminInvalid
		}
		existing, lookupErr := s.repo.GetByEmail(email)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if existing != nil && existing.ID != id {
			return nil, ErrAdminNameTaken
		}
		admin.Email = email
	}
	if displayName := strings.TrimSpace(input.DisplayName); displayName != "" {
		admin.DisplayName = displayName
	}
	if input.IsSuper != nil {
		admin.IsSuper = *input.IsSuper
	}

	if status := strings.ToLower(strings.TrimSpace(input.Status)); status != "" {
		if status != constants.AdminStatusActive && status != constants.AdminStatusDisabled {
			return nil, ErrAdminInvalid
		}
		// 停用时顺带失效已签发的 Token
		if status == constants.AdminStatusDisabled && admin.Status != constants.AdminStatusDisabled {
			now := time.Now()
			admin.TokenVersion++
			admin.TokenInvalidBefore = &now
		}
		admin.Status = status
	}

	if err := s.repo.Update(admin); err != nil {
		return nil, err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	return admin, nil
}

// ResetPassword 重置管理员密码并失效旧 Token
func (s *AdminService) ResetPassword(id uint, newPassword string) error {
	admin, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}

	if err := s.auth.ValidatePassword(newPassword); err != nil {
		return err
	}
	passwordHash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	admin.PasswordHash = passwordHash
	admin.TokenVersion++
	admin.TokenInvalidBefore = &now
	if err := s.repo.Update(admin); err != nil {
		return err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	return nil
}

// Delete 删除管理员
// 不允许删除最后一名超级管理员
func (s *AdminService) Delete(id uint) error {
	admin, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}
	if admin.IsSuper {
		admins, listErr := s.repo.List()
		if listErr != nil {
			return listErr
		}
		superCount := 0
		for _, item := range admins {
			if item.IsSuper {
				superCount++
			}
		}
		if superCount <= 1 {
			return ErrAdminInvalid
		}
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	_ = cache.DelAdminAuthState(context.Background(), id)
	return nil
}
