package wizard

import (
	"errors"
	"testing"
	"time"

	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/models"
)

func TestNextBlockedUntilStepGatePasses(t *testing.T) {
	m := NewManager(time.Minute)
	session, err := m.Start(constants.WizardKindPromotion, 1, nil, FormData{})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if _, err := m.Next(session.ID); !errors.Is(err, ErrStepBlocked) {
		t.Fatalf("Next() with empty title error = %v, want ErrStepBlocked", err)
	}

	if _, err := m.Save(session.ID, FormData{Title: "Sale"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	session, err = m.Next(session.ID)
	if err != nil {
		t.Fatalf("Next() after title set error = %v", err)
	}
	if session.Step != 2 {
		t.Fatalf("Step = %d, want 2", session.Step)
	}

	// 第二步要求折扣值大于 0
	if _, err := m.Next(session.ID); !errors.Is(err, ErrStepBlocked) {
		t.Fatalf("Next() with zero discount error = %v, want ErrStepBlocked", err)
	}
	if _, err := m.Save(session.ID, FormData{Title: "Sale", DiscountValue: models.NewMoneyFromFloat(10)}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	session, err = m.Next(session.ID)
	if err != nil {
		t.Fatalf("Next() after discount set error = %v", err)
	}
	if session.Step != 3 {
		t.Fatalf("Step = %d, want 3", session.Step)
	}
}

func TestAlertStepGates(t *testing.T) {
	m := NewManager(time.Minute)
	session, err := m.Start(constants.WizardKindAlert, 1, nil, FormData{Title: "Outage"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// 预警第一步先选紧急程度和类别，标题在第二步才校验
	if _, err := m.Next(session.ID); !errors.Is(err, ErrStepBlocked) {
		t.Fatalf("Next() without urgency error = %v, want ErrStepBlocked", err)
	}
	data := FormData{
		Title:         "Outage",
		Urgency:       constants.AlertUrgencyCritical,
		AlertCategory: constants.AlertCategoryService,
	}
	if _, err := m.Save(session.ID, data); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := m.Next(session.ID); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if _, err := m.Next(session.ID); !errors.Is(err, ErrStepBlocked) {
		t.Fatalf("Next() without message error = %v, want ErrStepBlocked", err)
	}
	data.Message = "Deliveries delayed in the north region"
	if _, err := m.Save(session.ID, data); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	session, err = m.Next(session.ID)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if session.Step != 3 {
		t.Fatalf("Step = %d, want 3", session.Step)
	}
}

func TestGotoSkipsGate(t *testing.T) {
	m := NewManager(time.Minute)
	session, err := m.Start(constants.WizardKindSeasonal, 1, nil, FormData{})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// 步骤指示器允许直接跳转，不做准入校验
	session, err = m.Goto(session.ID, 4)
	if err != nil {
		t.Fatalf("Goto(4) error = %v", err)
	}
	if session.Step != 4 {
		t.Fatalf("Step = %d, want 4", session.Step)
	}

	if _, err := m.Goto(session.ID, 5); !errors.Is(err, ErrStepBlocked) {
		t.Fatalf("Goto(5) error = %v, want ErrStepBlocked", err)
	}
}

func TestPreviousFromFirstStepDiscards(t *testing.T) {
	m := NewManager(time.Minute)
	session, err := m.Start(constants.WizardKindInfo, 1, nil, FormData{})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	_, discarded, err := m.Previous(session.ID)
	if err != nil {
		t.Fatalf("Previous() error = %v", err)
	}
	if !discarded {
		t.Fatal("Previous() from step 1 should discard the session")
	}
	if _, err := m.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Get() after discard error = %v, want ErrSessionNotFound", err)
	}
}

func TestStartRejectsUnknownKindAndAnnouncementEdit(t *testing.T) {
	m := NewManager(time.Minute)
	if _, err := m.Start("coupon", 1, nil, FormData{}); !errors.Is(err, ErrKindInvalid) {
		t.Fatalf("Start(coupon) error = %v, want ErrKindInvalid", err)
	}

	targetID := uint(9)
	if _, err := m.Start(constants.WizardKindAlert, 1, &targetID, FormData{}); !errors.Is(err, ErrKindInvalid) {
		t.Fatalf("Start(alert, edit) error = %v, want ErrKindInvalid", err)
	}
}

func TestSessionExpires(t *testing.T) {
	m := NewManager(10 * time.Millisecond)
	session, err := m.Start(constants.WizardKindPromotion, 1, nil, FormData{})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	time.Sleep(25 * time.Millisecond)
	if _, err := m.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Get() after ttl error = %v, want ErrSessionNotFound", err)
	}
	if got := m.Len(); got != 0 {
		t.Fatalf("Len() = %d, want 0", got)
	}
}

func TestValidateSubmit(t *testing.T) {
	start := time.Now()
	end := start.Add(24 * time.Hour)
	before := start.Add(-time.Hour)

	valid := FormData{
		Title:         "Summer Sale",
		DiscountValue: models.NewMoneyFromFloat(15),
		StartDate:     &start,
		EndDate:       &end,
	}
	if err := ValidateSubmit(constants.WizardKindPromotion, valid); err != nil {
		t.Fatalf("ValidateSubmit(valid promotion) error = %v", err)
	}

	missingMessage := FormData{Title: "Hello", StartDate: &start, EndDate: &end}
	if err := ValidateSubmit(constants.WizardKindInfo, missingMessage); !errors.Is(err, ErrNotSubmittable) {
		t.Fatalf("ValidateSubmit(info without message) error = %v, want ErrNotSubmittable", err)
	}

	reversed := valid
	reversed.EndDate = &before
	if err := ValidateSubmit(constants.WizardKindPromotion, reversed); !errors.Is(err, ErrNotSubmittable) {
		t.Fatalf("ValidateSubmit(end before start) error = %v, want ErrNotSubmittable", err)
	}
}
