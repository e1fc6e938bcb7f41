package service

import (
	"errors"
	"testing"
	"time"

	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/repository"
)

func TestPromotionCreateValidation(t *testing.T) {
	env := setupServiceTest(t)
	actor := Actor{ID: 1, Username: "root", IsSuper: true}

	cases := []struct {
		name   string
		mutate func(*PromotionInput)
		want   error
	}{
		{"empty title", func(in *PromotionInput) { in.Title = "   " }, ErrPromotionInvalid},
		{"percentage above 100", func(in *PromotionInput) { in.DiscountValue = models.NewMoneyFromFloat(120) }, ErrPromotionInvalid},
		{"zero discount", func(in *PromotionInput) { in.DiscountValue = models.Money{} }, ErrPromotionInvalid},
		{"unknown type", func(in *PromotionInput) { in.DiscountType = "bogo" }, ErrPromotionInvalid},
		{"buy x get y without quantities", func(in *PromotionInput) {
			in.DiscountType = constants.DiscountTypeBuyXGetY
			in.BuyQuantity = 0
		}, ErrPromotionInvalid},
		{"priority out of range", func(in *PromotionInput) { in.Priority = 11 }, ErrPromotionInvalid},
		{"end before start", func(in *PromotionInput) {
			in.EndDate = in.StartDate.Add(-time.Hour)
		}, ErrPromotionInvalid},
		{"missing dates", func(in *PromotionInput) {
			in.StartDate = time.Time{}
			in.EndDate = time.Time{}
		}, ErrPromotionInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validPromotionInput()
			tc.mutate(&input)
			if _, err := env.promotions.Create(actor, input); !errors.Is(err, tc.want) {
				t.Fatalf("Create() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestPromotionCodeUniqueAcrossCreates(t *testing.T) {
	env := setupServiceTest(t)
	actor := Actor{ID: 1, IsSuper: true}

	input := validPromotionInput()
	input.Code = "harvest20"
	created, err := env.promotions.Create(actor, input)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Code != "HARVEST20" {
		t.Fatalf("Code = %q, want uppercased HARVEST20", created.Code)
	}

	dup := validPromotionInput()
	dup.Title = "Another Sale"
	dup.Code = "  HARVEST20 "
	if _, err := env.promotions.Create(actor, dup); !errors.Is(err, ErrPromotionCodeTaken) {
		t.Fatalf("Create() duplicate code error = %v, want ErrPromotionCodeTaken", err)
	}

	// 自身更新时不应和自己的码冲突
	update := validPromotionInput()
	update.Code = "harvest20"
	if _, err := env.promotions.Update(actor, created.ID, update); err != nil {
		t.Fatalf("Update() with own code error = %v", err)
	}

	// 空码不受唯一性约束
	blankA := validPromotionInput()
	blankB := validPromotionInput()
	blankB.Title = "No Code Either"
	if _, err := env.promotions.Create(actor, blankA); err != nil {
		t.Fatalf("Create() first blank-code error = %v", err)
	}
	if _, err := env.promotions.Create(actor, blankB); err != nil {
		t.Fatalf("Create() second blank-code error = %v", err)
	}
}

func TestPromotionPermissionGuard(t *testing.T) {
	env := setupServiceTest(t)
	creator := Actor{ID: 1}
	other := Actor{ID: 2}
	super := Actor{ID: 3, IsSuper: true}

	created, err := env.promotions.Create(creator, validPromotionInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := env.promotions.Update(other, created.ID, validPromotionInput()); !errors.Is(err, ErrContentNotFoundOrForbidden) {
		t.Fatalf("Update() by non-creator error = %v, want ErrContentNotFoundOrForbidden", err)
	}
	if err := env.promotions.ToggleActive(other, created.ID, false); !errors.Is(err, ErrContentNotFoundOrForbidden) {
		t.Fatalf("ToggleActive() by non-creator error = %v, want ErrContentNotFoundOrForbidden", err)
	}
	if err := env.promotions.Delete(other, created.ID); !errors.Is(err, ErrContentNotFoundOrForbidden) {
		t.Fatalf("Delete() by non-creator error = %v, want ErrContentNotFoundOrForbidden", err)
	}

	if _, err := env.promotions.Update(super, created.ID, validPromotionInput()); err != nil {
		t.Fatalf("Update() by super error = %v", err)
	}
	if err := env.promotions.Delete(creator, created.ID); err != nil {
		t.Fatalf("Delete() by creator error = %v", err)
	}

	// 已删除的目标再次删除对超级管理员等价成功
	if err := env.promotions.Delete(super, created.ID); err != nil {
		t.Fatalf("Delete() repeated by super error = %v, want nil", err)
	}
	// 非超管访问不存在的目标拿到合并错误，不泄露存在性
	if err := env.promotions.Delete(other, created.ID); !errors.Is(err, ErrContentNotFoundOrForbidden) {
		t.Fatalf("Delete() missing by non-super error = %v, want ErrContentNotFoundOrForbidden", err)
	}
}

func TestPromotionEventsOnMutation(t *testing.T) {
	env := setupServiceTest(t)
	actor := Actor{ID: 1, IsSuper: true}
	listEvents := collectEvents(env.bus, constants.EventContentListChanged)
	homeEvents := collectEvents(env.bus, constants.EventHomepageContentChanged)

	offHome := validPromotionInput()
	if _, err := env.promotions.Create(actor, offHome); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(*listEvents) != 1 {
		t.Fatalf("list events = %d, want 1", len(*listEvents))
	}
	if len(*homeEvents) != 0 {
		t.Fatalf("homepage events = %d, want 0 for off-homepage create", len(*homeEvents))
	}

	onHome := validPromotionInput()
	onHome.Title = "Homepage Deal"
	onHome.ShowOnHomepage = true
	created, err := env.promotions.Create(actor, onHome)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(*homeEvents) != 1 {
		t.Fatalf("homepage events = %d, want 1 for homepage create", len(*homeEvents))
	}

	if err := env.promotions.ToggleActive(actor, created.ID, false); err != nil {
		t.Fatalf("ToggleActive() error = %v", err)
	}
	if len(*listEvents) != 3 {
		t.Fatalf("list events = %d, want 3 after toggle", len(*listEvents))
	}
}

func TestPromotionValidateByCodeLifecycle(t *testing.T) {
	env := setupServiceTest(t)
	actor := Actor{ID: 1, IsSuper: true}
	now := time.Now()

	upcoming := validPromotionInput()
	upcoming.Code = "SOON"
	upcoming.StartDate = now.Add(time.Hour)
	upcoming.EndDate = now.Add(48 * time.Hour)
	if _, err := env.promotions.Create(actor, upcoming); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := env.promotions.ValidateByCode("SOON", now); !errors.Is(err, ErrPromotionNotStarted) {
		t.Fatalf("ValidateByCode(upcoming) error = %v, want ErrPromotionNotStarted", err)
	}

	limited := validPromotionInput()
	limited.Title = "Limited Deal"
	limited.Code = "LIMIT1"
	limited.UsageLimit = 1
	if _, err := env.promotions.Create(actor, limited); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := env.promotions.Redeem("limit1", now); err != nil {
		t.Fatalf("Redeem() first use error = %v", err)
	}
	if _, err := env.promotions.Redeem("LIMIT1", now); !errors.Is(err, ErrPromotionUsageExhausted) {
		t.Fatalf("Redeem() second use error = %v, want ErrPromotionUsageExhausted", err)
	}

	if _, err := env.promotions.ValidateByCode("NOPE", now); !errors.Is(err, ErrPromotionNotFound) {
		t.Fatalf("ValidateByCode(unknown) error = %v, want ErrPromotionNotFound", err)
	}
}

func TestPromotionCreateRequiresActor(t *testing.T) {
	env := setupServiceTest(t)
	if _, err := env.promotions.Create(Actor{}, validPromotionInput()); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("Create() without actor error = %v, want ErrPermissionDenied", err)
	}
}

// blindCodeCheckRepo 模拟并发窗口：预检查看不到已占用的优惠码，写入时靠唯一索引兜底
type blindCodeCheckRepo struct {
	repository.PromotionRepository
}

func (r blindCodeCheckRepo) CodeInUse(string, uint) (bool, error) {
	return false, nil
}

func TestPromotionCodeRaceFallsBackToUniqueIndex(t *testing.T) {
	env := setupServiceTest(t)
	actor := Actor{ID: 1, IsSuper: true}

	input := validPromotionInput()
	input.Code = "SAVE10"
	if _, err := env.promotions.Create(actor, input); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	racing := NewPromotionService(blindCodeCheckRepo{env.promotionRepo}, env.permission, env.bus)
	if _, err := racing.Create(Actor{ID: 2}, input); !errors.Is(err, ErrPromotionCodeTaken) {
		t.Fatalf("racing Create() error = %v, want ErrPromotionCodeTaken", err)
	}
}

func TestPromotionToggleOffHomepageSkipsHomepageEvent(t *testing.T) {
	env := setupServiceTest(t)
	actor := Actor{ID: 1, IsSuper: true}

	created, err := env.promotions.Create(actor, validPromotionInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	homepageEvents := collectEvents(env.bus, constants.EventHomepageContentChanged)
	listEvents := collectEvents(env.bus, constants.EventContentListChanged)

	if err := env.promotions.ToggleActive(actor, created.ID, false); err != nil {
		t.Fatalf("ToggleActive() error = %v", err)
	}
	if len(*homepageEvents) != 0 {
		t.Fatalf("homepage events = %d, want 0 for non-homepage promotion", len(*homepageEvents))
	}
	if len(*listEvents) != 1 {
		t.Fatalf("list events = %d, want 1", len(*listEvents))
	}
}

func TestPromotionDeleteHomepageEntryPublishesHomepageEvent(t *testing.T) {
	env := setupServiceTest(t)
	actor := Actor{ID: 1, IsSuper: true}

	input := validPromotionInput()
	input.ShowOnHomepage = true
	created, err := env.promotions.Create(actor, input)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	homepageEvents := collectEvents(env.bus, constants.EventHomepageContentChanged)
	if err := env.promotions.Delete(actor, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(*homepageEvents) != 1 {
		t.Fatalf("homepage events = %d, want 1 for homepage promotion delete", len(*homepageEvents))
	}

	offHomepage, err := env.promotions.Create(actor, validPromotionInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := env.promotions.Delete(actor, offHomepage.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(*homepageEvents) != 1 {
		t.Fatalf("homepage events = %d, want unchanged after non-homepage delete", len(*homepageEvents))
	}
}
