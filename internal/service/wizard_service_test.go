package service

import (
	"errors"
	"testing"
	"time"

	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/repository"
	"github.com/gogreen-admin/internal/wizard"
)

func TestWizardPromotionFullFlow(t *testing.T) {
	env := setupServiceTest(t)
	actor := Actor{ID: 1, IsSuper: true}
	listEvents := collectEvents(env.bus, constants.EventContentListChanged)

	session, err := env.wizards.Start(actor, constants.WizardKindPromotion)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	now := time.Now()
	start := now.Add(-time.Hour)
	end := now.Add(48 * time.Hour)
	data := wizard.FormData{
		Title:         "Session Sale",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromFloat(20),
		StartDate:     &start,
		EndDate:       &end,
		Priority:      4,
	}
	if _, err := env.wizards.Save(actor, session.ID, data); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	for step := 0; step < 3; step++ {
		if _, err := env.wizards.Next(actor, session.ID); err != nil {
			t.Fatalf("Next() at step %d error = %v", step+1, err)
		}
	}

	result, err := env.wizards.Submit(actor, session.ID)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if result.Promotion == nil || result.Promotion.Title != "Session Sale" {
		t.Fatalf("Submit() result = %+v, want created promotion", result)
	}
	if len(*listEvents) != 1 {
		t.Fatalf("list events = %d, want 1 after submit", len(*listEvents))
	}

	// 提交成功后会话被丢弃
	if _, err := env.wizards.Get(actor, session.ID); !errors.Is(err, ErrWizardSessionNotFound) {
		t.Fatalf("Get() after submit error = %v, want ErrWizardSessionNotFound", err)
	}
}

func TestWizardSubmitValidationDoesNotPersist(t *testing.T) {
	env := setupServiceTest(t)
	actor := Actor{ID: 1, IsSuper: true}

	session, err := env.wizards.Start(actor, constants.WizardKindInfo)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	// 越过校验直接跳到最后一步，提交时仍需整体复核
	if _, err := env.wizards.Goto(actor, session.ID, 4); err != nil {
		t.Fatalf("Goto() error = %v", err)
	}
	if _, err := env.wizards.Submit(actor, session.ID); !errors.Is(err, ErrWizardNotSubmittable) {
		t.Fatalf("Submit() incomplete error = %v, want ErrWizardNotSubmittable", err)
	}

	_, total, err := env.announcementRepo.List(repository.AnnouncementListFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 0 {
		t.Fatalf("announcements persisted = %d, want 0 after failed submit", total)
	}
}

func TestWizardAnnouncementCreateOnly(t *testing.T) {
	env := setupServiceTest(t)
	actor := Actor{ID: 1, IsSuper: true}

	session, err := env.wizards.Start(actor, constants.WizardKindAlert)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	now := time.Now()
	start := now.Add(-time.Hour)
	end := now.Add(24 * time.Hour)
	data := wizard.FormData{
		Title:         "Delivery Delay",
		Message:       "Routes north of the river run late today",
		Urgency:       constants.AlertUrgencyWarning,
		AlertCategory: constants.AlertCategoryService,
		StartDate:     &start,
		EndDate:       &end,
	}
	if _, err := env.wizards.Save(actor, session.ID, data); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	result, err := env.wizards.Submit(actor, session.ID)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if result.Announcement == nil || result.Announcement.Type != constants.AnnouncementTypeAlert {
		t.Fatalf("Submit() result = %+v, want alert announcement", result)
	}
	if result.Announcement.Details.Alert == nil {
		t.Fatal("alert details missing after wizard submit")
	}
}

func TestWizardEditSessionPrefillsAndUpdates(t *testing.T) {
	env := setupServiceTest(t)
	creator := Actor{ID: 1}
	other := Actor{ID: 2}

	input := validPromotionInput()
	input.Code = "EDITME"
	created, err := env.promotions.Create(creator, input)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// 非创建者不能开启编辑会话
	if _, err := env.wizards.StartEdit(other, created.ID); !errors.Is(err, ErrContentNotFoundOrForbidden) {
		t.Fatalf("StartEdit() by non-creator error = %v, want ErrContentNotFoundOrForbidden", err)
	}

	session, err := env.wizards.StartEdit(creator, created.ID)
	if err != nil {
		t.Fatalf("StartEdit() error = %v", err)
	}
	if session.Data.Title != created.Title || session.Data.Code != "EDITME" {
		t.Fatalf("session data = %+v, want prefilled from promotion", session.Data)
	}

	data := session.Data
	data.Title = "Edited Sale"
	if _, err := env.wizards.Save(creator, session.ID, data); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	result, err := env.wizards.Submit(creator, session.ID)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if result.Promotion.ID != created.ID {
		t.Fatalf("Submit() updated ID = %d, want %d", result.Promotion.ID, created.ID)
	}
	if result.Promotion.Title != "Edited Sale" {
		t.Fatalf("Title = %q, want Edited Sale", result.Promotion.Title)
	}
}

func TestWizardSessionOwnership(t *testing.T) {
	env := setupServiceTest(t)
	owner := Actor{ID: 1}
	stranger := Actor{ID: 2}

	session, err := env.wizards.Start(owner, constants.WizardKindSeasonal)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := env.wizards.Get(stranger, session.ID); !errors.Is(err, ErrWizardSessionNotFound) {
		t.Fatalf("Get() by stranger error = %v, want ErrWizardSessionNotFound", err)
	}
}
