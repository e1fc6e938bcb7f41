package worker

import (
	"testing"
	"time"

	"github.com/gogreen-admin/internal/models"
)

func TestIsHomepageLeftover(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if isHomepageLeftover(false, now.Add(-time.Hour), now) {
		t.Fatalf("off-homepage content should never be a leftover")
	}
	if isHomepageLeftover(true, time.Time{}, now) {
		t.Fatalf("zero end date should not be treated as expired")
	}
	if isHomepageLeftover(true, now.Add(time.Hour), now) {
		t.Fatalf("content still inside its window is not a leftover")
	}
	if !isHomepageLeftover(true, now.Add(-time.Minute), now) {
		t.Fatalf("expired homepage content should be a leftover")
	}
}

func TestExpiredHomepageLeftovers(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	promotions := []models.Promotion{
		{Title: "Spring Citrus Sale", ShowOnHomepage: true, EndDate: now.Add(-time.Hour)},
		{Title: "Weekly Greens", ShowOnHomepage: true, EndDate: now.Add(48 * time.Hour)},
		{Title: "Archived Deal", ShowOnHomepage: false, EndDate: now.Add(-time.Hour)},
	}
	announcements := []models.Announcement{
		{Title: "Winter Hours", ShowOnHomepage: true, EndDate: now.Add(-24 * time.Hour)},
		{Title: "Farm Stand Opening", ShowOnHomepage: true, EndDate: now.Add(time.Hour)},
	}

	got := expiredHomepageLeftovers(promotions, announcements, now)
	want := []string{"Spring Citrus Sale", "Winter Hours"}
	if len(got) != len(want) {
		t.Fatalf("leftovers want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("leftovers want %v, got %v", want, got)
		}
	}
}
