package service

import (
	"testing"

	"github.com/gogreen-admin/internal/constants"
)

func TestCanEditCreatorAndSuper(t *testing.T) {
	env := setupServiceTest(t)
	creator := Actor{ID: 7}

	promotion, err := env.promotions.Create(creator, validPromotionInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	announcement, err := env.announcements.Create(creator, validAnnouncementInput(constants.AnnouncementTypeInfo))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	cases := []struct {
		name  string
		kind  string
		id    uint
		actor Actor
		want  bool
	}{
		{"creator edits own promotion", constants.ContentKindPromotion, promotion.ID, creator, true},
		{"creator edits own announcement", constants.ContentKindAnnouncement, announcement.ID, creator, true},
		{"other admin denied", constants.ContentKindPromotion, promotion.ID, Actor{ID: 8}, false},
		{"super admin allowed", constants.ContentKindAnnouncement, announcement.ID, Actor{ID: 9, IsSuper: true}, true},
		{"anonymous denied", constants.ContentKindPromotion, promotion.ID, Actor{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := env.permission.CanEdit(tc.kind, tc.id, tc.actor); got != tc.want {
				t.Fatalf("CanEdit() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanEditFailsClosed(t *testing.T) {
	env := setupServiceTest(t)

	// 不存在的内容对普通管理员一律拒绝
	if env.permission.CanEdit(constants.ContentKindPromotion, 404, Actor{ID: 1}) {
		t.Fatal("CanEdit() on missing promotion should be false")
	}
	if env.permission.CanEdit(constants.ContentKindAnnouncement, 404, Actor{ID: 1}) {
		t.Fatal("CanEdit() on missing announcement should be false")
	}
	// 未知内容类型同样拒绝
	if env.permission.CanEdit("recipe", 1, Actor{ID: 1}) {
		t.Fatal("CanEdit() on unknown kind should be false")
	}
	// 超级管理员不依赖行查找
	if !env.permission.CanEdit(constants.ContentKindPromotion, 404, Actor{ID: 1, IsSuper: true}) {
		t.Fatal("CanEdit() for super admin should be true without a row lookup")
	}
}
