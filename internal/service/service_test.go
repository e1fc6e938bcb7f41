package service

import (
	"testing"
	"time"

	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/events"
	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/repository"
	"github.com/gogreen-admin/internal/wizard"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db               *gorm.DB
	bus              *events.Bus
	promotionRepo    repository.PromotionRepository
	announcementRepo repository.AnnouncementRepository
	permission       *PermissionService
	promotions       *PromotionService
	announcements    *AnnouncementService
	content          *ContentService
	wizards          *WizardService
}

func setupServiceTest(t *testing.T) *serviceTestEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Promotion{}, &models.Announcement{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	promotionRepo := repository.NewPromotionRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	permission := NewPermissionService(promotionRepo, announcementRepo)
	bus := events.NewBus()
	promotions := NewPromotionService(promotionRepo, permission, bus)
	announcements := NewAnnouncementService(announcementRepo, permission, bus)

	return &serviceTestEnv{
		db:               db,
		bus:              bus,
		promotionRepo:    promotionRepo,
		announcementRepo: announcementRepo,
		permission:       permission,
		promotions:       promotions,
		announcements:    announcements,
		content:          NewContentService(promotionRepo, announcementRepo, permission),
		wizards:          NewWizardService(wizard.NewManager(time.Minute), promotions, announcements),
	}
}

func validPromotionInput() PromotionInput {
	now := time.Now()
	return PromotionInput{
		Title:         "Fresh Picks Sale",
		Description:   "Seasonal produce discounts",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromFloat(15),
		StartDate:     now.Add(-time.Hour),
		EndDate:       now.Add(24 * time.Hour),
		Priority:      5,
	}
}

func validAnnouncementInput(announcementType string) AnnouncementInput {
	now := time.Now()
	input := AnnouncementInput{
		Type:      announcementType,
		Title:     "Store Update",
		Message:   "We have news for you",
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(24 * time.Hour),
		Priority:  3,
	}
	switch announcementType {
	case constants.AnnouncementTypeSeasonal:
		input.Details.Seasonal = &models.SeasonalDetails{
			Subtitle:        "Autumn harvest",
			BackgroundColor: "amber",
		}
	case constants.AnnouncementTypeAlert:
		input.Details.Alert = &models.AlertDetails{
			Urgency:       constants.AlertUrgencyWarning,
			AlertCategory: constants.AlertCategoryService,
		}
	}
	return input
}

// collectEvents 订阅事件并返回已收到事件的切片指针
func collectEvents(bus *events.Bus, name string) *[]events.ContentEvent {
	var received []events.ContentEvent
	bus.Subscribe(name, func(event events.ContentEvent) {
		received = append(received, event)
	})
	return &received
}
