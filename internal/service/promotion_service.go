package service

import (
	"errors"
	"strings"
	"time"

	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/events"
	"github.com/gogreen-admin/internal/logger"
	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PromotionService 优惠活动服务
type PromotionService struct {
	repo       repository.PromotionRepository
	permission *PermissionService
	bus        *events.Bus
}

// NewPromotionService 创建优惠活动服务
func NewPromotionService(
	repo repository.PromotionRepository,
	permission *PermissionService,
	bus *events.Bus,
) *PromotionService {
	return &PromotionService{
		repo:       repo,
		permission: permission,
		bus:        bus,
	}
}

// PromotionInput 创建/更新优惠活动输入
type PromotionInput struct {
	Title             string
	Description       string
	DiscountType      string
	DiscountValue     models.Money
	BuyQuantity       int
	GetQuantity       int
	Code              string
	MinPurchaseAmount models.Money
	MaxDiscountAmount models.Money
	UsageLimit        int
	ProductID         *uint
	StartDate         time.Time
	EndDate           time.Time
	ShowOnHomepage    bool
	Priority          int
	IsActive          *bool
}

// List 获取优惠活动列表
func (s *PromotionService) List(filter repository.PromotionListFilter) ([]models.Promotion, int64, error) {
	return s.repo.List(filter)
}

// ListActive 获取当前窗口内启用的优惠活动
func (s *PromotionService) ListActive(now time.Time) ([]models.Promotion, error) {
	return s.repo.ListActive(now)
}

// ListHomepage 获取首页展示的优惠活动
func (s *PromotionService) ListHomepage(now time.Time, limit int) ([]models.Promotion, error) {
	return s.repo.ListHomepage(now, limit)
}

// GetByID 根据ID获取优惠活动
func (s *PromotionService) GetByID(id uint) (*models.Promotion, error) {
	if id == 0 {
		return nil, ErrPromotionInvalid
	}
	promotion, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	return promotion, nil
}

// ValidateByCode 校验优惠码可用性（限当前窗口内启用的活动，区分使用耗尽）
func (s *PromotionService) ValidateByCode(code string, now time.Time) (*models.Promotion, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, ErrPromotionInvalid
	}

	promotion, err := s.repo.GetByCode(trimmed)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	if !promotion.IsActive {
		return promotion, ErrPromotionInactive
	}
	if promotion.StartDate.After(now) {
		return promotion, ErrPromotionNotStarted
	}
	if promotion.EndDate.Before(now) {
		return promotion, ErrPromotionExpired
	}
	if promotion.UsageExhausted() {
		return promotion, ErrPromotionUsageExhausted
	}
	return promotion, nil
}

// Redeem 核销优惠码（使用次数 +1，耗尽时报错）
func (s *PromotionService) Redeem(code string, now time.Time) (*models.Promotion, error) {
	promotion, err := s.ValidateByCode(code, now)
	if err != nil {
		return promotion, err
	}
	affected, err := s.repo.IncrementUsageCount(promotion.ID)
	if err != nil {
		return promotion, err
	}
	if affected == 0 {
		return promotion, ErrPromotionUsageExhausted
	}
	promotion.UsageCount++
	return promotion, nil
}

// Create 创建优惠活动
func (s *PromotionService) Create(actor Actor, input PromotionInput) (*models.Promotion, error) {
	if actor.ID == 0 {
		return nil, ErrPermissionDenied
	}
	normalized, err := s.validateInput(input, 0)
	if err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	promotion := &models.Promotion{
		Title:             normalized.Title,
		Description:       normalized.Description,
		DiscountType:      normalized.DiscountType,
		DiscountValue:     input.DiscountValue,
		BuyQuantity:       input.BuyQuantity,
		GetQuantity:       input.GetQuantity,
		Code:              normalized.Code,
		MinPurchaseAmount: input.MinPurchaseAmount,
		MaxDiscountAmount: normalized.MaxDiscountAmount,
		UsageLimit:        input.UsageLimit,
		UsageCount:        0,
		ProductID:         input.ProductID,
		StartDate:         input.StartDate,
		EndDate:           input.EndDate,
		ShowOnHomepage:    input.ShowOnHomepage,
		Priority:          input.Priority,
		IsActive:          isActive,
		CreatedByID:       actor.ID,
		UpdatedByID:       actor.ID,
	}

	if err := s.repo.Create(promotion); err != nil {
		// 并发创建竞争到同一优惠码时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPromotionCodeTaken
		}
		return nil, err
	}

	logger.Infow("promotion_created",
		"promotion_id", promotion.ID,
		"code", promotion.Code,
		"actor_id", actor.ID,
	)
	s.publishChanged(promotion.ID, promotion.ShowOnHomepage)
	return promotion, nil
}

// Update 更新优惠活动（仅创建者或超级管理员）
func (s *PromotionService) Update(actor Actor, id uint, input PromotionInput) (*models.Promotion, error) {
	if id == 0 {
		return nil, ErrPromotionInvalid
	}
	if !s.permission.CanEdit(constants.ContentKindPromotion, id, actor) {
		return nil, ErrContentNotFoundOrForbidden
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrContentNotFoundOrForbidden
	}

	normalized, err := s.validateInput(input, id)
	if err != nil {
		return nil, err
	}

	wasOnHomepage := existing.ShowOnHomepage

	existing.Title = normalized.Title
	existing.Description = normalized.Description
	existing.DiscountType = normalized.DiscountType
	existing.DiscountValue = input.DiscountValue
	existing.BuyQuantity = input.BuyQuantity
	existing.GetQuantity = input.GetQuantity
	existing.Code = normalized.Code
	existing.MinPurchaseAmount = input.MinPurchaseAmount
	existing.MaxDiscountAmount = normalized.MaxDiscountAmount
	existing.UsageLimit = input.UsageLimit
	existing.ProductID = input.ProductID
	existing.StartDate = input.StartDate
	existing.EndDate = input.EndDate
	existing.ShowOnHomepage = input.ShowOnHomepage
	existing.Priority = input.Priority
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}
	existing.UpdatedByID = actor.ID

	if err := s.repo.Update(existing); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPromotionCodeTaken
		}
		return nil, err
	}

	logger.Infow("promotion_updated", "promotion_id", id, "actor_id", actor.ID)
	s.publishChanged(id, wasOnHomepage || existing.ShowOnHomepage)
	return existing, nil
}

// ToggleActive 切换启用状态（仅创建者或超级管理员）
func (s *PromotionService) ToggleActive(actor Actor, id uint, newValue bool) error {
	if id == 0 {
		return ErrPromotionInvalid
	}
	if !s.permission.CanEdit(constants.ContentKindPromotion, id, actor) {
		return ErrContentNotFoundOrForbidden
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrContentNotFoundOrForbidden
	}

	affected, err := s.repo.UpdateFields(id, map[string]interface{}{
		"is_active":     newValue,
		"updated_by_id": actor.ID,
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrContentNotFoundOrForbidden
	}

	s.publishChanged(id, existing.ShowOnHomepage)
	return nil
}

// Delete 删除优惠活动（仅创建者或超级管理员；重复删除视为成功）
func (s *PromotionService) Delete(actor Actor, id uint) error {
	if id == 0 {
		return ErrPromotionInvalid
	}
	if !s.permission.CanEdit(constants.ContentKindPromotion, id, actor) {
		return ErrContentNotFoundOrForbidden
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		// 目标行已不存在，对调用方等价于删除成功
		logger.Debugw("promotion_delete_noop", "promotion_id", id, "actor_id", actor.ID)
		return nil
	}

	logger.Infow("promotion_deleted", "promotion_id", id, "actor_id", actor.ID)
	s.publishChanged(id, existing != nil && existing.ShowOnHomepage)
	return nil
}

type normalizedPromotionInput struct {
	Title             string
	Description       string
	DiscountType      string
	Code              string
	MaxDiscountAmount models.Money
}

func (s *PromotionService) validateInput(input PromotionInput, selfID uint) (normalizedPromotionInput, error) {
	result := normalizedPromotionInput{}

	title := strings.TrimSpace(input.Title)
	if title == "" || len([]rune(title)) > constants.TitleMaxLen {
		return result, ErrPromotionInvalid
	}
	result.Title = title
	result.Description = strings.TrimSpace(input.Description)

	discountType := strings.ToLower(strings.TrimSpace(input.DiscountType))
	switch discountType {
	case constants.DiscountTypePercentage:
		if input.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) ||
			input.DiscountValue.Decimal.GreaterThan(decimal.NewFromInt(100)) {
			return result, ErrPromotionInvalid
		}
		result.MaxDiscountAmount = input.MaxDiscountAmount
	case constants.DiscountTypeFixedAmount:
		if input.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) {
			return result, ErrPromotionInvalid
		}
	case constants.DiscountTypeBuyXGetY:
		if input.BuyQuantity <= 0 || input.GetQuantity <= 0 {
			return result, ErrPromotionInvalid
		}
	default:
		return result, ErrPromotionInvalid
	}
	result.DiscountType = discountType

	if input.MinPurchaseAmount.Decimal.IsNegative() {
		return result, ErrPromotionInvalid
	}
	if input.UsageLimit < 0 {
		return result, ErrPromotionInvalid
	}
	if input.Priority < constants.HomepagePriorityMin || input.Priority > constants.HomepagePriorityMax {
		return result, ErrPromotionInvalid
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() || input.EndDate.Before(input.StartDate) {
		return result, ErrPromotionInvalid
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code != "" {
		inUse, err := s.repo.CodeInUse(code, selfID)
		if err != nil {
			return result, err
		}
		if inUse {
			return result, ErrPromotionCodeTaken
		}
	}
	result.Code = code

	return result, nil
}

func (s *PromotionService) publishChanged(id uint, homepage bool) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.ContentEvent{
		Name: constants.EventContentListChanged,
		Kind: constants.ContentKindPromotion,
		ID:   id,
	})
	if homepage {
		s.bus.Publish(events.ContentEvent{
			Name: constants.EventHomepageContentChanged,
			Kind: constants.ContentKindPromotion,
			ID:   id,
		})
	}
}
