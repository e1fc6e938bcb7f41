package service

import (
	"strings"
	"time"

	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/events"
	"github.com/gogreen-admin/internal/logger"
	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/repository"
)

// AnnouncementService 公告服务
type AnnouncementService struct {
	repo       repository.AnnouncementRepository
	permission *PermissionService
	bus        *events.Bus
}

// NewAnnouncementService 创建公告服务
func NewAnnouncementService(
	repo repository.AnnouncementRepository,
	permission *PermissionService,
	bus *events.Bus,
) *AnnouncementService {
	return &AnnouncementService{
		repo:       repo,
		permission: permission,
		bus:        bus,
	}
}

// AnnouncementInput 创建/更新公告输入
type AnnouncementInput struct {
	Type           string
	Title          string
	Message        string
	Icon           string
	LinkURL        string
	LinkText       string
	Details        models.AnnouncementDetails
	StartDate      time.Time
	EndDate        time.Time
	ShowOnHomepage bool
	Dismissible    *bool
	Priority       int
	IsActive       *bool
}

// List 获取公告列表
func (s *AnnouncementService) List(filter repository.AnnouncementListFilter) ([]models.Announcement, int64, error) {
	return s.repo.List(filter)
}

// ListActive 获取当前窗口内启用的公告
func (s *AnnouncementService) ListActive(now time.Time) ([]models.Announcement, error) {
	return s.repo.ListActive(now)
}

// ListHomepage 获取首页展示的公告
func (s *AnnouncementService) ListHomepage(now time.Time, limit int) ([]models.Announcement, error) {
	return s.repo.ListHomepage(now, limit)
}

// GetByID 根据ID获取公告
func (s *AnnouncementService) GetByID(id uint) (*models.Announcement, error) {
	if id == 0 {
		return nil, ErrAnnouncementInvalid
	}
	announcement, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if announcement == nil {
		return nil, ErrAnnouncementNotFound
	}
	return announcement, nil
}

// Create 创建公告
func (s *AnnouncementService) Create(actor Actor, input AnnouncementInput) (*models.Announcement, error) {
	if actor.ID == 0 {
		return nil, ErrPermissionDenied
	}
	announcementType := strings.ToLower(strings.TrimSpace(input.Type))
	if err := validateAnnouncementInput(announcementType, input); err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	announcement := &models.Announcement{
		Type:           announcementType,
		Title:          strings.TrimSpace(input.Title),
		Message:        strings.TrimSpace(input.Message),
		Icon:           strings.TrimSpace(input.Icon),
		LinkURL:        strings.TrimSpace(input.LinkURL),
		LinkText:       strings.TrimSpace(input.LinkText),
		Details:        pruneDetails(announcementType, input.Details),
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		ShowOnHomepage: input.ShowOnHomepage,
		Dismissible:    resolveDismissible(announcementType, input),
		Priority:       input.Priority,
		IsActive:       isActive,
		CreatedByID:    actor.ID,
		UpdatedByID:    actor.ID,
	}

	if err := s.repo.Create(announcement); err != nil {
		return nil, err
	}

	logger.Infow("announcement_created",
		"announcement_id", announcement.ID,
		"type", announcement.Type,
		"actor_id", actor.ID,
	)
	s.publishChanged(announcement.ID, announcement.ShowOnHomepage)
	return announcement, nil
}

// Update 更新公告（仅创建者或超级管理员；类型不可变）
func (s *AnnouncementService) Update(actor Actor, id uint, input AnnouncementInput) (*models.Announcement, error) {
	if id == 0 {
		return nil, ErrAnnouncementInvalid
	}
	if !s.permission.CanEdit(constants.ContentKindAnnouncement, id, actor) {
		return nil, ErrContentNotFoundOrForbidden
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrContentNotFoundOrForbidden
	}

	inputType := strings.ToLower(strings.TrimSpace(input.Type))
	if inputType != "" && inputType != existing.Type {
		return nil, ErrAnnouncementTypeImmutable
	}
	if err := validateAnnouncementInput(existing.Type, input); err != nil {
		return nil, err
	}

	wasOnHomepage := existing.ShowOnHomepage

	existing.Title = strings.TrimSpace(input.Title)
	existing.Message = strings.TrimSpace(input.Message)
	existing.Icon = strings.TrimSpace(input.Icon)
	existing.LinkURL = strings.TrimSpace(input.LinkURL)
	existing.LinkText = strings.TrimSpace(input.LinkText)
	existing.Details = pruneDetails(existing.Type, input.Details)
	existing.StartDate = input.StartDate
	existing.EndDate = input.EndDate
	existing.ShowOnHomepage = input.ShowOnHomepage
	existing.Dismissible = resolveDismissible(existing.Type, input)
	existing.Priority = input.Priority
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}
	existing.UpdatedByID = actor.ID

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}

	logger.Infow("announcement_updated", "announcement_id", id, "actor_id", actor.ID)
	s.publishChanged(id, wasOnHomepage || existing.ShowOnHomepage)
	return existing, nil
}

// ToggleActive 切换启用状态（仅创建者或超级管理员）
func (s *AnnouncementService) ToggleActive(actor Actor, id uint, newValue bool) error {
	if id == 0 {
		return ErrAnnouncementInvalid
	}
	if !s.permission.CanEdit(constants.ContentKindAnnouncement, id, actor) {
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

// Delete 删除公告（仅创建者或超级管理员；重复删除视为成功）
func (s *AnnouncementService) Delete(actor Actor, id uint) error {
	if id == 0 {
		return ErrAnnouncementInvalid
	}
	if !s.permission.CanEdit(constants.ContentKindAnnouncement, id, actor) {
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
		logger.Debugw("announcement_delete_noop", "announcement_id", id, "actor_id", actor.ID)
		return nil
	}

	logger.Infow("announcement_deleted", "announcement_id", id, "actor_id", actor.ID)
	s.publishChanged(id, existing != nil && existing.ShowOnHomepage)
	return nil
}

// messageMaxLen 各公告类型的正文长度上限
func messageMaxLen(announcementType string) int {
	switch announcementType {
	case constants.AnnouncementTypeSeasonal:
		return constants.SeasonalMessageMaxLen
	case constants.AnnouncementTypeAlert:
		return constants.AlertMessageMaxLen
	default:
		return constants.InfoMessageMaxLen
	}
}

func validateAnnouncementInput(announcementType string, input AnnouncementInput) error {
	switch announcementType {
	case constants.AnnouncementTypeSeasonal, constants.AnnouncementTypeInfo, constants.AnnouncementTypeAlert:
	default:
		return ErrAnnouncementInvalid
	}

	title := strings.TrimSpace(input.Title)
	if title == "" || len([]rune(title)) > constants.TitleMaxLen {
		return ErrAnnouncementInvalid
	}
	message := strings.TrimSpace(input.Message)
	if message == "" || len([]rune(message)) > messageMaxLen(announcementType) {
		return ErrAnnouncementInvalid
	}

	// 链接文案与链接必须成对出现
	linkURL := strings.TrimSpace(input.LinkURL)
	linkText := strings.TrimSpace(input.LinkText)
	if (linkURL == "") != (linkText == "") {
		return ErrAnnouncementInvalid
	}

	if input.Priority < constants.HomepagePriorityMin || input.Priority > constants.HomepagePriorityMax {
		return ErrAnnouncementInvalid
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() || input.EndDate.Before(input.StartDate) {
		return ErrAnnouncementInvalid
	}

	switch announcementType {
	case constants.AnnouncementTypeSeasonal:
		if details := input.Details.Seasonal; details != nil && details.BackgroundColor != "" {
			if !paletteContains(details.BackgroundColor) {
				return ErrAnnouncementInvalid
			}
		}
	case constants.AnnouncementTypeAlert:
		details := input.Details.Alert
		if details == nil {
			return ErrAnnouncementInvalid
		}
		switch details.Urgency {
		case constants.AlertUrgencyInfo, constants.AlertUrgencyWarning, constants.AlertUrgencyCritical:
		default:
			return ErrAnnouncementInvalid
		}
		switch details.AlertCategory {
		case constants.AlertCategoryService, constants.AlertCategorySecurity,
			constants.AlertCategoryMaintenance, constants.AlertCategoryPolicy:
		default:
			return ErrAnnouncementInvalid
		}
	}
	return nil
}

// pruneDetails 只保留与公告类型匹配的分支
func pruneDetails(announcementType string, details models.AnnouncementDetails) models.AnnouncementDetails {
	switch announcementType {
	case constants.AnnouncementTypeSeasonal:
		return models.AnnouncementDetails{Seasonal: details.Seasonal}
	case constants.AnnouncementTypeInfo:
		return models.AnnouncementDetails{Info: details.Info}
	case constants.AnnouncementTypeAlert:
		return models.AnnouncementDetails{Alert: details.Alert}
	default:
		return models.AnnouncementDetails{}
	}
}

// resolveDismissible critical 预警默认不可关闭
func resolveDismissible(announcementType string, input AnnouncementInput) bool {
	if input.Dismissible != nil {
		return *input.Dismissible
	}
	if announcementType == constants.AnnouncementTypeAlert &&
		input.Details.Alert != nil &&
		input.Details.Alert.Urgency == constants.AlertUrgencyCritical {
		return false
	}
	return true
}

func paletteContains(color string) bool {
	for _, candidate := range constants.SeasonalBackgroundPalette {
		if candidate == color {
			return true
		}
	}
	return false
}

func (s *AnnouncementService) publishChanged(id uint, homepage bool) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.ContentEvent{
		Name: constants.EventContentListChanged,
		Kind: constants.ContentKindAnnouncement,
		ID:   id,
	})
	if homepage {
		s.bus.Publish(events.ContentEvent{
			Name: constants.EventHomepageContentChanged,
			Kind: constants.ContentKindAnnouncement,
			ID:   id,
		})
	}
}
