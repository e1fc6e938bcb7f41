package service

import (
	"strings"
	"time"

	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/wizard"
)

// WizardService 内容创建向导服务
// 管理向导会话的推进，并在提交时转交给对应的内容服务落库
type WizardService struct {
	manager       *wizard.Manager
	promotions    *PromotionService
	announcements *AnnouncementService
}

// NewWizardService 创建向导服务
func NewWizardService(manager *wizard.Manager, promotions *PromotionService, announcements *AnnouncementService) *WizardService {
	return &WizardService{
		manager:       manager,
		promotions:    promotions,
		announcements: announcements,
	}
}

// WizardSubmitResult 向导提交结果
type WizardSubmitResult struct {
	Kind         string               `json:"kind"`
	Promotion    *models.Promotion    `json:"promotion,omitempty"`
	Announcement *models.Announcement `json:"announcement,omitempty"`
}

// Start 开启创建会话
func (s *WizardService) Start(actor Actor, kind string) (wizard.Session, error) {
	return s.manager.Start(kind, actor.ID, nil, wizard.FormData{})
}

// StartEdit 开启优惠活动编辑会话
// 公告不支持通过向导再编辑，类型固定为 promotion
func (s *WizardService) StartEdit(actor Actor, promotionID uint) (wizard.Session, error) {
	promotion, err := s.promotions.GetByID(promotionID)
	if err != nil {
		return wizard.Session{}, err
	}
	if !s.promotions.permission.CanEdit(constants.ContentKindPromotion, promotionID, actor) {
		return wizard.Session{}, ErrContentNotFoundOrForbidden
	}

	isActive := promotion.IsActive
	startDate := promotion.StartDate
	endDate := promotion.EndDate
	initial := wizard.FormData{
		Title:             promotion.Title,
		Description:       promotion.Description,
		StartDate:         &startDate,
		EndDate:           &endDate,
		ShowOnHomepage:    promotion.ShowOnHomepage,
		Priority:          promotion.Priority,
		IsActive:          &isActive,
		DiscountType:      promotion.DiscountType,
		DiscountValue:     promotion.DiscountValue,
		BuyQuantity:       promotion.BuyQuantity,
		GetQuantity:       promotion.GetQuantity,
		Code:              promotion.Code,
		MinPurchaseAmount: promotion.MinPurchaseAmount,
		MaxDiscountAmount: promotion.MaxDiscountAmount,
		UsageLimit:        promotion.UsageLimit,
		ProductID:         promotion.ProductID,
	}
	return s.manager.Start(constants.WizardKindPromotion, actor.ID, &promotionID, initial)
}

// Get 读取会话
func (s *WizardService) Get(actor Actor, sessionID string) (wizard.Session, error) {
	session, err := s.manager.Get(sessionID)
	if err != nil {
		return wizard.Session{}, err
	}
	if session.AdminID != actor.ID {
		return wizard.Session{}, ErrWizardSessionNotFound
	}
	return session, nil
}

// Save 保存表单数据
func (s *WizardService) Save(actor Actor, sessionID string, data wizard.FormData) (wizard.Session, error) {
	if _, err := s.Get(actor, sessionID); err != nil {
		return wizard.Session{}, err
	}
	return s.manager.Save(sessionID, data)
}

// Next 推进到下一步
func (s *WizardService) Next(actor Actor, sessionID string) (wizard.Session, error) {
	if _, err := s.Get(actor, sessionID); err != nil {
		return wizard.Session{}, err
	}
	return s.manager.Next(sessionID)
}

// Previous 回退一步，第一步回退将丢弃会话
func (s *WizardService) Previous(actor Actor, sessionID string) (wizard.Session, bool, error) {
	if _, err := s.Get(actor, sessionID); err != nil {
		return wizard.Session{}, false, err
	}
	return s.manager.Previous(sessionID)
}

// Goto 直接跳转到指定步骤
func (s *WizardService) Goto(actor Actor, sessionID string, step int) (wizard.Session, error) {
	if _, err := s.Get(actor, sessionID); err != nil {
		return wizard.Session{}, err
	}
	return s.manager.Goto(sessionID, step)
}

// Discard 放弃会话
func (s *WizardService) Discard(actor Actor, sessionID string) error {
	if _, err := s.Get(actor, sessionID); err != nil {
		return err
	}
	s.manager.Discard(sessionID)
	return nil
}

// Submit 提交向导
// 提交前整体复核，校验失败不落库；成功后丢弃会话
func (s *WizardService) Submit(actor Actor, sessionID string) (*WizardSubmitResult, error) {
	session, err := s.Get(actor, sessionID)
	if err != nil {
		return nil, err
	}
	if err := wizard.ValidateSubmit(session.Kind, session.Data); err != nil {
		return nil, err
	}

	result := &WizardSubmitResult{Kind: session.Kind}
	switch session.Kind {
	case constants.WizardKindPromotion:
		input := promotionInputFromForm(session.Data)
		var promotion *models.Promotion
		if session.TargetID != nil {
			promotion, err = s.promotions.Update(actor, *session.TargetID, input)
		} else {
			promotion, err = s.promotions.Create(actor, input)
		}
		if err != nil {
			return nil, err
		}
		result.Promotion = promotion
	default:
		input := announcementInputFromForm(session.Kind, session.Data)
		announcement, createErr := s.announcements.Create(actor, input)
		if createErr != nil {
			return nil, createErr
		}
		result.Announcement = announcement
	}

	s.manager.Discard(sessionID)
	return result, nil
}

func promotionInputFromForm(data wizard.FormData) PromotionInput {
	var startDate, endDate time.Time
	if data.StartDate != nil {
		startDate = *data.StartDate
	}
	if data.EndDate != nil {
		endDate = *data.EndDate
	}
	return PromotionInput{
		Title:             data.Title,
		Description:       data.Description,
		DiscountType:      data.DiscountType,
		DiscountValue:     data.DiscountValue,
		BuyQuantity:       data.BuyQuantity,
		GetQuantity:       data.GetQuantity,
		Code:              data.Code,
		MinPurchaseAmount: data.MinPurchaseAmount,
		MaxDiscountAmount: data.MaxDiscountAmount,
		UsageLimit:        data.UsageLimit,
		ProductID:         data.ProductID,
		StartDate:         startDate,
		EndDate:           endDate,
		ShowOnHomepage:    data.ShowOnHomepage,
		Priority:          data.Priority,
		IsActive:          data.IsActive,
	}
}

func announcementInputFromForm(kind string, data wizard.FormData) AnnouncementInput {
	var startDate, endDate time.Time
	if data.StartDate != nil {
		startDate = *data.StartDate
	}
	if data.EndDate != nil {
		endDate = *data.EndDate
	}

	input := AnnouncementInput{
		Type:           kind,
		Title:          data.Title,
		Message:        data.Message,
		Icon:           data.Icon,
		LinkURL:        data.LinkURL,
		LinkText:       data.LinkText,
		StartDate:      startDate,
		EndDate:        endDate,
		ShowOnHomepage: data.ShowOnHomepage,
		Dismissible:    data.Dismissible,
		Priority:       data.Priority,
		IsActive:       data.IsActive,
	}

	switch kind {
	case constants.WizardKindSeasonal:
		input.Details.Seasonal = &models.SeasonalDetails{
			Subtitle:        strings.TrimSpace(data.Subtitle),
			BackgroundColor: strings.TrimSpace(data.BackgroundColor),
		}
	case constants.WizardKindInfo:
		input.Details.Info = &models.InfoDetails{
			Category:          strings.TrimSpace(data.Category),
			Importance:        strings.TrimSpace(data.Importance),
			AdditionalDetails: strings.TrimSpace(data.AdditionalDetails),
			ContactInfo:       strings.TrimSpace(data.ContactInfo),
		}
	case constants.WizardKindAlert:
		input.Details.Alert = &models.AlertDetails{
			Urgency:            strings.TrimSpace(data.Urgency),
			AlertCategory:      strings.TrimSpace(data.AlertCategory),
			ActionRequired:     strings.TrimSpace(data.ActionRequired),
			AffectedAreas:      strings.TrimSpace(data.AffectedAreas),
			AlternativeOptions: strings.TrimSpace(data.AlternativeOptions),
		}
	}

	return input
}
