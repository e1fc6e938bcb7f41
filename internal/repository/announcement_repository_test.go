package repository

import (
	"testing"
	"time"

	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAnnouncementRepositoryTest(t *testing.T) *GormAnnouncementRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Announcement{}); err != nil {
		t.Fatalf("migrate announcement failed: %v", err)
	}
	return NewAnnouncementRepository(db)
}

func createAnnouncement(t *testing.T, repo *GormAnnouncementRepository, title string, mutate func(*models.Announcement)) *models.Announcement {
	t.Helper()
	now := time.Now()
	announcement := &models.Announcement{
		Type:        constants.AnnouncementTypeInfo,
		Title:       title,
		Message:     "store update",
		StartDate:   now.Add(-time.Hour),
		EndDate:     now.Add(24 * time.Hour),
		IsActive:    true,
		CreatedByID: 1,
		UpdatedByID: 1,
		Details: models.AnnouncementDetails{
			Info: &models.InfoDetails{Category: "store"},
		},
	}
	if mutate != nil {
		mutate(announcement)
	}
	if err := repo.Create(announcement); err != nil {
		t.Fatalf("create announcement failed: %v", err)
	}
	return announcement
}

func TestAnnouncementDetailsRoundTripByType(t *testing.T) {
	repo := setupAnnouncementRepositoryTest(t)
	created := createAnnouncement(t, repo, "Frost Warning", func(a *models.Announcement) {
		a.Type = constants.AnnouncementTypeAlert
		a.Message = "hard frost expected this weekend"
		a.Details = models.AnnouncementDetails{
			Alert: &models.AlertDetails{
				Urgency:       constants.AlertUrgencyCritical,
				AlertCategory: constants.AlertCategoryService,
				ActionRequired: "pick up orders before saturday",
			},
		}
		a.Dismissible = false
	})

	got, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get announcement failed: %v", err)
	}
	if got == nil {
		t.Fatalf("expected announcement, got nil")
	}
	if got.Details.Alert == nil {
		t.Fatalf("expected alert details to survive round trip")
	}
	if got.Details.Alert.Urgency != constants.AlertUrgencyCritical {
		t.Fatalf("urgency want critical got %s", got.Details.Alert.Urgency)
	}
	if got.Details.Seasonal != nil || got.Details.Info != nil {
		t.Fatalf("expected only alert branch to be populated")
	}
	if got.Dismissible {
		t.Fatalf("critical alert should stay non-dismissible")
	}
}

func TestAnnouncementListFiltersByTypeAndSearch(t *testing.T) {
	repo := setupAnnouncementRepositoryTest(t)
	createAnnouncement(t, repo, "Summer Peaches", func(a *models.Announcement) {
		a.Type = constants.AnnouncementTypeSeasonal
		a.Message = "peach season has started"
		a.Details = models.AnnouncementDetails{
			Seasonal: &models.SeasonalDetails{Subtitle: "stone fruit", BackgroundColor: "amber"},
		}
	})
	createAnnouncement(t, repo, "Holiday Hours", nil)

	rows, total, err := repo.List(AnnouncementListFilter{Type: constants.AnnouncementTypeSeasonal})
	if err != nil {
		t.Fatalf("list seasonal failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("seasonal filter want 1 got total=%d rows=%d", total, len(rows))
	}
	if rows[0].Title != "Summer Peaches" {
		t.Fatalf("unexpected title %s", rows[0].Title)
	}

	rows, total, err = repo.List(AnnouncementListFilter{Search: "PEACH"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("case-insensitive search want 1 got %d", total)
	}
	_ = rows
}

func TestAnnouncementActiveWindowExcludesUpcomingAndExpired(t *testing.T) {
	repo := setupAnnouncementRepositoryTest(t)
	now := time.Now()

	createAnnouncement(t, repo, "Current", nil)
	createAnnouncement(t, repo, "Upcoming", func(a *models.Announcement) {
		a.StartDate = now.Add(time.Hour)
		a.EndDate = now.Add(48 * time.Hour)
	})
	createAnnouncement(t, repo, "Expired", func(a *models.Announcement) {
		a.StartDate = now.Add(-48 * time.Hour)
		a.EndDate = now.Add(-time.Hour)
	})
	createAnnouncement(t, repo, "Disabled", func(a *models.Announcement) {
		a.IsActive = false
	})

	rows, err := repo.ListActive(now)
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("active rows want 1 got %d", len(rows))
	}
	if rows[0].Title != "Current" {
		t.Fatalf("unexpected active row %s", rows[0].Title)
	}
}
