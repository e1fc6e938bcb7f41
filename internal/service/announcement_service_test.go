package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/models"
)

func TestAnnouncementCreateValidation(t *testing.T) {
	env := setupServiceTest(t)
	actor := Actor{ID: 1, IsSuper: true}

	cases := []struct {
		name  string
		build func() AnnouncementInput
		want  error
	}{
		{"unknown type", func() AnnouncementInput {
			return validAnnouncementInput("broadcast")
		}, ErrAnnouncementInvalid},
		{"empty title", func() AnnouncementInput {
			input := validAnnouncementInput(constants.AnnouncementTypeInfo)
			input.Title = "  "
			return input
		}, ErrAnnouncementInvalid},
		{"message over seasonal cap", func() AnnouncementInput {
			input := validAnnouncementInput(constants.AnnouncementTypeSeasonal)
			input.Message = strings.Repeat("a", constants.SeasonalMessageMaxLen+1)
			return input
		}, ErrAnnouncementInvalid},
		{"link text without url", func() AnnouncementInput {
			input := validAnnouncementInput(constants.AnnouncementTypeInfo)
			input.LinkText = "See more"
			return input
		}, ErrAnnouncementInvalid},
		{"seasonal background outside palette", func() AnnouncementInput {
			input := validAnnouncementInput(constants.AnnouncementTypeSeasonal)
			input.Details.Seasonal.BackgroundColor = "magenta"
			return input
		}, ErrAnnouncementInvalid},
		{"alert without urgency", func() AnnouncementInput {
			input := validAnnouncementInput(constants.AnnouncementTypeAlert)
			input.Details.Alert.Urgency = ""
			return input
		}, ErrAnnouncementInvalid},
		{"alert with unknown category", func() AnnouncementInput {
			input := validAnnouncementInput(constants.AnnouncementTypeAlert)
			input.Details.Alert.AlertCategory = "weather"
			return input
		}, ErrAnnouncementInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := env.announcements.Create(actor, tc.build()); !errors.Is(err, tc.want) {
				t.Fatalf("Create() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestAnnouncementTypeImmutable(t *testing.T) {
	env := setupServiceTest(t)
	actor := Actor{ID: 1, IsSuper: true}

	created, err := env.announcements.Create(actor, validAnnouncementInput(constants.AnnouncementTypeInfo))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	change := validAnnouncementInput(constants.AnnouncementTypeAlert)
	if _, err := env.announcements.Update(actor, created.ID, change); !errors.Is(err, ErrAnnouncementTypeImmutable) {
		t.Fatalf("Update() with changed type error = %v, want ErrAnnouncementTypeImmutable", err)
	}

	// 类型留空视为保持原类型
	keep := validAnnouncementInput(constants.AnnouncementTypeInfo)
	keep.Type = ""
	keep.Title = "Renamed Update"
	updated, err := env.announcements.Update(actor, created.ID, keep)
	if err != nil {
		t.Fatalf("Update() without type error = %v", err)
	}
	if updated.Type != constants.AnnouncementTypeInfo {
		t.Fatalf("Type = %q, want info", updated.Type)
	}
	if updated.Title != "Renamed Update" {
		t.Fatalf("Title = %q, want Renamed Update", updated.Title)
	}
}

func TestAnnouncementDetailsPrunedToMatchingBranch(t *testing.T) {
	env := setupServiceTest(t)
	actor := Actor{ID: 1, IsSuper: true}

	input := validAnnouncementInput(constants.AnnouncementTypeSeasonal)
	input.Details.Alert = &models.AlertDetails{
		Urgency:       constants.AlertUrgencyInfo,
		AlertCategory: constants.AlertCategoryPolicy,
	}
	created, err := env.announcements.Create(actor, input)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.Details.Seasonal == nil {
		t.Fatal("seasonal details missing after create")
	}
	if created.Details.Alert != nil || created.Details.Info != nil {
		t.Fatal("non-matching detail branches should be pruned")
	}
}

func TestAnnouncementDismissibleDefaults(t *testing.T) {
	env := setupServiceTest(t)
	actor := Actor{ID: 1, IsSuper: true}

	// critical 预警默认不可关闭
	critical := validAnnouncementInput(constants.AnnouncementTypeAlert)
	critical.Details.Alert.Urgency = constants.AlertUrgencyCritical
	created, err := env.announcements.Create(actor, critical)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Dismissible {
		t.Fatal("critical alert should default to non-dismissible")
	}

	// 显式设置优先于默认值
	explicit := validAnnouncementInput(constants.AnnouncementTypeAlert)
	explicit.Details.Alert.Urgency = constants.AlertUrgencyCritical
	dismissible := true
	explicit.Dismissible = &dismissible
	created, err = env.announcements.Create(actor, explicit)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !created.Dismissible {
		t.Fatal("explicit dismissible should win over critical default")
	}

	// 其他类型默认可关闭
	info, err := env.announcements.Create(actor, validAnnouncementInput(constants.AnnouncementTypeInfo))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !info.Dismissible {
		t.Fatal("info announcement should default to dismissible")
	}
}

func TestAnnouncementPermissionGuard(t *testing.T) {
	env := setupServiceTest(t)
	creator := Actor{ID: 5}
	other := Actor{ID: 6}

	created, err := env.announcements.Create(creator, validAnnouncementInput(constants.AnnouncementTypeInfo))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := env.announcements.ToggleActive(other, created.ID, false); !errors.Is(err, ErrContentNotFoundOrForbidden) {
		t.Fatalf("ToggleActive() by non-creator error = %v, want ErrContentNotFoundOrForbidden", err)
	}
	if err := env.announcements.Delete(creator, created.ID); err != nil {
		t.Fatalf("Delete() by creator error = %v", err)
	}
	if err := env.announcements.Delete(creator, created.ID); err != nil {
		t.Fatalf("Delete() repeated by creator error = %v, want nil", err)
	}
}

func TestAnnouncementEventsOnMutation(t *testing.T) {
	env := setupServiceTest(t)
	actor := Actor{ID: 1, IsSuper: true}
	homeEvents := collectEvents(env.bus, constants.EventHomepageContentChanged)

	input := validAnnouncementInput(constants.AnnouncementTypeSeasonal)
	input.ShowOnHomepage = true
	created, err := env.announcements.Create(actor, input)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(*homeEvents) != 1 {
		t.Fatalf("homepage events = %d, want 1", len(*homeEvents))
	}
	if (*homeEvents)[0].Kind != constants.ContentKindAnnouncement || (*homeEvents)[0].ID != created.ID {
		t.Fatalf("event payload = %+v, want announcement %d", (*homeEvents)[0], created.ID)
	}
}

func TestAnnouncementToggleOffHomepageSkipsHomepageEvent(t *testing.T) {
	env := setupServiceTest(t)
	actor := Actor{ID: 1, IsSuper: true}

	created, err := env.announcements.Create(actor, validAnnouncementInput(constants.AnnouncementTypeInfo))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	homeEvents := collectEvents(env.bus, constants.EventHomepageContentChanged)
	listEvents := collectEvents(env.bus, constants.EventContentListChanged)

	if err := env.announcements.ToggleActive(actor, created.ID, false); err != nil {
		t.Fatalf("ToggleActive() error = %v", err)
	}
	if len(*homeEvents) != 0 {
		t.Fatalf("homepage events = %d, want 0 for non-homepage announcement", len(*homeEvents))
	}
	if len(*listEvents) != 1 {
		t.Fatalf("list events = %d, want 1", len(*listEvents))
	}
}
