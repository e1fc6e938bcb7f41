package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupPromotionRepositoryTest(t *testing.T) (*GormPromotionRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Promotion{}); err != nil {
		t.Fatalf("migrate promotion failed: %v", err)
	}
	return NewPromotionRepository(db), db
}

func createPromotion(t *testing.T, repo *GormPromotionRepository, title string, mutate func(*models.Promotion)) *models.Promotion {
	t.Helper()
	now := time.Now()
	promotion := &models.Promotion{
		Title:         title,
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		StartDate:     now.Add(-time.Hour),
		EndDate:       now.Add(24 * time.Hour),
		IsActive:      true,
		CreatedByID:   1,
		UpdatedByID:   1,
	}
	if mutate != nil {
		mutate(promotion)
	}
	if err := repo.Create(promotion); err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}
	return promotion
}

func TestPromotionCodeLookupNormalizesCase(t *testing.T) {
	repo, _ := setupPromotionRepositoryTest(t)
	createPromotion(t, repo, "Spring Sale", func(p *models.Promotion) {
		p.Code = "SPRING10"
	})

	got, err := repo.GetByCode("  spring10 ")
	if err != nil {
		t.Fatalf("get by code failed: %v", err)
	}
	if got == nil {
		t.Fatalf("expected promotion for lowercased code, got nil")
	}
	if got.Code != "SPRING10" {
		t.Fatalf("code want SPRING10 got %s", got.Code)
	}

	missing, err := repo.GetByCode("NOPE")
	if err != nil {
		t.Fatalf("get by missing code failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown code, got %+v", missing)
	}
}

func TestPromotionCodeInUseExcludesSelf(t *testing.T) {
	repo, _ := setupPromotionRepositoryTest(t)
	existing := createPromotion(t, repo, "Harvest Deal", func(p *models.Promotion) {
		p.Code = "HARVEST5"
	})

	inUse, err := repo.CodeInUse("harvest5", 0)
	if err != nil {
		t.Fatalf("code in use failed: %v", err)
	}
	if !inUse {
		t.Fatalf("expected code to be in use")
	}

	inUse, err = repo.CodeInUse("HARVEST5", existing.ID)
	if err != nil {
		t.Fatalf("code in use with exclude failed: %v", err)
	}
	if inUse {
		t.Fatalf("expected code free when excluding owner")
	}
}

func TestPromotionUsageIncrementStopsAtLimit(t *testing.T) {
	repo, db := setupPromotionRepositoryTest(t)
	promotion := createPromotion(t, repo, "Limited Coupon", func(p *models.Promotion) {
		p.Code = "LIMIT2"
		p.UsageLimit = 2
	})

	for i := 0; i < 2; i++ {
		affected, err := repo.IncrementUsageCount(promotion.ID)
		if err != nil {
			t.Fatalf("increment %d failed: %v", i, err)
		}
		if affected != 1 {
			t.Fatalf("increment %d affected want 1 got %d", i, affected)
		}
	}

	affected, err := repo.IncrementUsageCount(promotion.ID)
	if err != nil {
		t.Fatalf("increment over limit failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("increment over limit affected want 0 got %d", affected)
	}

	var got models.Promotion
	if err := db.First(&got, promotion.ID).Error; err != nil {
		t.Fatalf("reload promotion failed: %v", err)
	}
	if got.UsageCount != 2 {
		t.Fatalf("usage count want 2 got %d", got.UsageCount)
	}
}

func TestPromotionHomepageWindowOrderingAndCap(t *testing.T) {
	repo, _ := setupPromotionRepositoryTest(t)
	now := time.Now()

	for _, priority := range []int{3, 9, 5, 7, 1, 8} {
		priority := priority
		createPromotion(t, repo, "Homepage Deal", func(p *models.Promotion) {
			p.Priority = priority
			p.ShowOnHomepage = true
		})
	}
	// 窗口外与停用的不应出现
	createPromotion(t, repo, "Expired Deal", func(p *models.Promotion) {
		p.Priority = 10
		p.ShowOnHomepage = true
		p.StartDate = now.Add(-48 * time.Hour)
		p.EndDate = now.Add(-24 * time.Hour)
	})
	createPromotion(t, repo, "Disabled Deal", func(p *models.Promotion) {
		p.Priority = 10
		p.ShowOnHomepage = true
		p.IsActive = false
	})
	createPromotion(t, repo, "Hidden Deal", func(p *models.Promotion) {
		p.Priority = 10
		p.ShowOnHomepage = false
	})

	got, err := repo.ListHomepage(now, constants.HomepageMaxSlots)
	if err != nil {
		t.Fatalf("list homepage failed: %v", err)
	}
	if len(got) != constants.HomepageMaxSlots {
		t.Fatalf("homepage rows want %d got %d", constants.HomepageMaxSlots, len(got))
	}
	wantPriorities := []int{9, 8, 7, 5, 3}
	for i, row := range got {
		if row.Priority != wantPriorities[i] {
			t.Fatalf("row %d priority want %d got %d", i, wantPriorities[i], row.Priority)
		}
		if row.Title != "Homepage Deal" {
			t.Fatalf("row %d unexpected title %s", i, row.Title)
		}
	}
}

func TestPromotionDeleteIsIdempotentAtRowLevel(t *testing.T) {
	repo, _ := setupPromotionRepositoryTest(t)
	promotion := createPromotion(t, repo, "To Delete", nil)

	affected, err := repo.Delete(promotion.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("first delete affected want 1 got %d", affected)
	}

	affected, err = repo.Delete(promotion.ID)
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("second delete affected want 0 got %d", affected)
	}
}

func TestPromotionListSearchMatchesTitleDescriptionCode(t *testing.T) {
	repo, _ := setupPromotionRepositoryTest(t)
	createPromotion(t, repo, "Citrus Week", func(p *models.Promotion) {
		p.Description = "fresh oranges"
		p.Code = "CITRUS"
	})
	createPromotion(t, repo, "Berry Week", func(p *models.Promotion) {
		p.Description = "blueberries and more"
	})

	rows, total, err := repo.List(PromotionListFilter{Search: "orange"})
	if err != nil {
		t.Fatalf("list by description failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("description search want 1 row got total=%d rows=%d", total, len(rows))
	}
	if rows[0].Title != "Citrus Week" {
		t.Fatalf("unexpected row %s", rows[0].Title)
	}

	rows, total, err = repo.List(PromotionListFilter{Search: "citrus"})
	if err != nil {
		t.Fatalf("list by code failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("code search want 1 got %d", total)
	}
	_ = rows
}

func TestPromotionCodeUniqueIndexRejectsDuplicate(t *testing.T) {
	repo, db := setupPromotionRepositoryTest(t)
	createPromotion(t, repo, "Spring Sale", func(p *models.Promotion) {
		p.Code = "SAVE10"
	})

	now := time.Now()
	duplicate := &models.Promotion{
		Title:         "Spring Sale Encore",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Code:          "SAVE10",
		StartDate:     now.Add(-time.Hour),
		EndDate:       now.Add(24 * time.Hour),
		IsActive:      true,
		CreatedByID:   2,
		UpdatedByID:   2,
	}
	if err := repo.Create(duplicate); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate code create error = %v, want gorm.ErrDuplicatedKey", err)
	}

	var count int64
	if err := db.Model(&models.Promotion{}).Where("code = ?", "SAVE10").Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("rows with code SAVE10 = %d, want 1", count)
	}
}

func TestPromotionCodelessRowsDoNotCollide(t *testing.T) {
	repo, _ := setupPromotionRepositoryTest(t)

	// 空优惠码不参与唯一约束
	createPromotion(t, repo, "First Codeless", nil)
	createPromotion(t, repo, "Second Codeless", nil)
}
