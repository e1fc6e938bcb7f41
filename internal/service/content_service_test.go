package service

import (
	"testing"
	"time"

	"github.com/gogreen-admin/internal/constants"
)

func seedMixedContent(t *testing.T, env *serviceTestEnv) {
	t.Helper()
	creator := Actor{ID: 1}
	now := time.Now()

	active := validPromotionInput()
	active.Title = "Active Apples"
	active.Code = "APPLES"
	active.Priority = 8
	if _, err := env.promotions.Create(creator, active); err != nil {
		t.Fatalf("seed active promotion: %v", err)
	}

	expired := validPromotionInput()
	expired.Title = "Expired Pears"
	expired.StartDate = now.Add(-72 * time.Hour)
	expired.EndDate = now.Add(-24 * time.Hour)
	expired.Priority = 9
	if _, err := env.promotions.Create(creator, expired); err != nil {
		t.Fatalf("seed expired promotion: %v", err)
	}

	inactive := validAnnouncementInput(constants.AnnouncementTypeInfo)
	inactive.Title = "Paused Notice"
	off := false
	inactive.IsActive = &off
	inactive.Priority = 2
	if _, err := env.announcements.Create(creator, inactive); err != nil {
		t.Fatalf("seed inactive announcement: %v", err)
	}

	upcoming := validAnnouncementInput(constants.AnnouncementTypeSeasonal)
	upcoming.Title = "Winter Preview"
	upcoming.StartDate = now.Add(24 * time.Hour)
	upcoming.EndDate = now.Add(72 * time.Hour)
	upcoming.Priority = 6
	if _, err := env.announcements.Create(creator, upcoming); err != nil {
		t.Fatalf("seed upcoming announcement: %v", err)
	}
}

func TestListContentCountsAndOrdering(t *testing.T) {
	env := setupServiceTest(t)
	seedMixedContent(t, env)
	now := time.Now()

	result, err := env.content.ListContent(Actor{ID: 1}, ContentQuery{}, now)
	if err != nil {
		t.Fatalf("ListContent() error = %v", err)
	}
	if result.Total != 4 {
		t.Fatalf("Total = %d, want 4", result.Total)
	}

	wantCounts := map[string]int64{
		constants.ContentStatusActive:   1,
		constants.ContentStatusInactive: 1,
		constants.ContentStatusUpcoming: 1,
		constants.ContentStatusExpired:  1,
	}
	for status, want := range wantCounts {
		if got := result.StatusCounts[status]; got != want {
			t.Fatalf("StatusCounts[%s] = %d, want %d", status, got, want)
		}
	}

	// 优先级高者在前，两类内容混排
	for i := 1; i < len(result.Items); i++ {
		if result.Items[i-1].Priority < result.Items[i].Priority {
			t.Fatalf("items not sorted by priority: %d before %d",
				result.Items[i-1].Priority, result.Items[i].Priority)
		}
	}
}

func TestListContentStatusFilterKeepsCounts(t *testing.T) {
	env := setupServiceTest(t)
	seedMixedContent(t, env)
	now := time.Now()

	result, err := env.content.ListContent(Actor{ID: 1}, ContentQuery{Status: constants.ContentStatusExpired}, now)
	if err != nil {
		t.Fatalf("ListContent() error = %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("Total = %d, want 1 expired row", result.Total)
	}
	if result.Items[0].Title != "Expired Pears" {
		t.Fatalf("Items[0].Title = %q, want Expired Pears", result.Items[0].Title)
	}

	// 统计口径是过滤前的全集
	if got := result.StatusCounts[constants.ContentStatusActive]; got != 1 {
		t.Fatalf("StatusCounts[active] = %d, want 1 despite expired filter", got)
	}
}

func TestListContentSearchMatchesAcrossFields(t *testing.T) {
	env := setupServiceTest(t)
	seedMixedContent(t, env)
	now := time.Now()

	byCode, err := env.content.ListContent(Actor{ID: 1}, ContentQuery{Search: "apples"}, now)
	if err != nil {
		t.Fatalf("ListContent() error = %v", err)
	}
	if byCode.Total != 1 || byCode.Items[0].Kind != constants.ContentKindPromotion {
		t.Fatalf("search by code returned %d rows, want the promotion", byCode.Total)
	}

	byTitle, err := env.content.ListContent(Actor{ID: 1}, ContentQuery{Search: "WINTER"}, now)
	if err != nil {
		t.Fatalf("ListContent() error = %v", err)
	}
	if byTitle.Total != 1 || byTitle.Items[0].Kind != constants.ContentKindAnnouncement {
		t.Fatalf("case-insensitive title search returned %d rows, want the announcement", byTitle.Total)
	}
}

func TestListContentCanEditFlag(t *testing.T) {
	env := setupServiceTest(t)
	seedMixedContent(t, env)
	now := time.Now()

	asOther, err := env.content.ListContent(Actor{ID: 99}, ContentQuery{}, now)
	if err != nil {
		t.Fatalf("ListContent() error = %v", err)
	}
	for _, item := range asOther.Items {
		if item.CanEdit {
			t.Fatalf("item %q editable by non-creator", item.Title)
		}
	}

	asSuper, err := env.content.ListContent(Actor{ID: 99, IsSuper: true}, ContentQuery{}, now)
	if err != nil {
		t.Fatalf("ListContent() error = %v", err)
	}
	for _, item := range asSuper.Items {
		if !item.CanEdit {
			t.Fatalf("item %q not editable by super admin", item.Title)
		}
	}
}

func TestHomepageContentCombinedCap(t *testing.T) {
	env := setupServiceTest(t)
	actor := Actor{ID: 1, IsSuper: true}

	// 4 个优惠 + 3 个公告都请求首页位，合并上限 5
	for i := 0; i < 4; i++ {
		input := validPromotionInput()
		input.Title = "Homepage Promo"
		input.ShowOnHomepage = true
		input.Priority = 10 - i
		if _, err := env.promotions.Create(actor, input); err != nil {
			t.Fatalf("seed homepage promotion: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		input := validAnnouncementInput(constants.AnnouncementTypeInfo)
		input.Title = "Homepage Notice"
		input.ShowOnHomepage = true
		input.Priority = 5 - i
		if _, err := env.announcements.Create(actor, input); err != nil {
			t.Fatalf("seed homepage announcement: %v", err)
		}
	}

	content, err := env.content.GetHomepageContent(time.Now(), constants.HomepageMaxSlots)
	if err != nil {
		t.Fatalf("GetHomepageContent() error = %v", err)
	}
	total := len(content.Promotions) + len(content.Announcements)
	if total != constants.HomepageMaxSlots {
		t.Fatalf("homepage slots = %d, want %d", total, constants.HomepageMaxSlots)
	}
	// 高优先级的优惠应占满前列，公告只剩一个槽位
	if len(content.Promotions) != 4 || len(content.Announcements) != 1 {
		t.Fatalf("slot split = %d promotions / %d announcements, want 4/1",
			len(content.Promotions), len(content.Announcements))
	}
}
