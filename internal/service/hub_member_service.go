package service

import (
	"strings"
	"time"

	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/repository"
)

// HubMemberService Hub 会员业务服务
type HubMemberService struct {
	repo repository.HubMemberRepository
}

// NewHubMemberService 创建 Hub 会员服务
func NewHubMemberService(repo repository.HubMemberRepository) *HubMemberService {
	return &HubMemberService{repo: repo}
}

// HubMemberInput 创建/更新会员输入
type HubMemberInput struct {
	Email       string
	DisplayName string
	Tier        string
	Status      string
}

var allowedHubTiers = map[string]struct{}{
	constants.HubTierSprout:  {},
	constants.HubTierBloom:   {},
	constants.HubTierHarvest: {},
}

// List 获取会员列表
func (s *HubMemberService) List(filter repository.HubMemberListFilter) ([]models.HubMember, int64, error) {
	return s.repo.List(filter)
}

// GetByID 获取会员详情
func (s *HubMemberService) GetByID(id uint) (*models.HubMember, error) {
	member, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrHubMemberNotFound
	}
	return member, nil
}

// Create 创建会员
func (s *HubMemberService) Create(input HubMemberInput) (*models.HubMember, error) {
	email, tier, status, err := s.normalizeInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrHubMemberEmailTaken
	}

	member := models.HubMember{
		Email:       email,
		DisplayName: strings.TrimSpace(input.DisplayName),
		Tier:        tier,
		Status:      status,
		JoinedAt:    time.Now(),
	}
	if err := s.repo.Create(&member); err != nil {
		return nil, err
	}
	return &member, nil
}

// Update 更新会员
func (s *HubMemberService) Update(id uint, input HubMemberInput) (*models.HubMember, error) {
	member, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrHubMemberNotFound
	}

	email, tier, status, err := s.normalizeInput(input)
	if err != nil {
		return nil, err
	}

	if email != member.Email {
		existing, lookupErr := s.repo.GetByEmail(email)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if existing != nil && existing.ID != id {
			return nil, ErrHubMemberEmailTaken
		}
	}

	member.Email = email
	member.DisplayName = strings.TrimSpace(input.DisplayName)
	member.Tier = tier
	member.Status = status

	if err := s.repo.Update(member); err != nil {
		return nil, err
	}
	return member, nil
}

// AdjustPoints 调整积分（正数发放，负数扣减）
func (s *HubMemberService) AdjustPoints(id uint, delta int) (*models.HubMember, error) {
	member, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrHubMemberNotFound
	}
	if delta != 0 {
		affected, adjErr := s.repo.AdjustPoints(id, delta)
		if adjErr != nil {
			return nil, adjErr
		}
		if affected == 0 {
			return nil, ErrHubMemberPointsShort
		}
	}

	now := time.Now()
	member.LastActivityAt = &now
	if err := s.repo.Update(member); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// Delete 删除会员
func (s *HubMemberService) Delete(id uint) error {
	member, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrHubMemberNotFound
	}
	return s.repo.Delete(id)
}

// TierOverview 各等级人数统计
func (s *HubMemberService) TierOverview() (map[string]int64, error) {
	return s.repo.CountByTier()
}

func (s *HubMemberService) normalizeInput(input HubMemberInput) (email, tier, status string, err error) {
	email = strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return "", "", "", ErrHubMemberInvalid
	}

	tier = strings.ToLower(strings.TrimSpace(input.Tier))
	if tier == "" {
		tier = constants.HubTierSprout
	}
	if _, ok := allowedHubTiers[tier]; !ok {
		return "", "", "", ErrHubMemberInvalid
	}

	status = strings.ToLower(strings.TrimSpace(input.Status))
	if status == "" {
		status = constants.AdminStatusActive
	}
	if status != constants.AdminStatusActive && status != constants.AdminStatusDisabled {
		return "", "", "", ErrHubMemberInvalid
	}

	return email, tier, status, nil
}
