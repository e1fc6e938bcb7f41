package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/events"
	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/provider"
	"github.com/gogreen-admin/internal/repository"
	"github.com/gogreen-admin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupAdminPromotionHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:admin_promotion_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Promotion{},
		&models.Announcement{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	promotionRepo := repository.NewPromotionRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	permission := service.NewPermissionService(promotionRepo, announcementRepo)
	promotionService := service.NewPromotionService(promotionRepo, permission, events.NewBus())

	h := &Handler{Container: &provider.Container{
		PromotionService: promotionService,
	}}
	return h, db
}

func setTestActor(c *gin.Context, adminID uint, isSuper bool) {
	c.Set("admin_id", adminID)
	c.Set("username", fmt.Sprintf("admin%d", adminID))
	c.Set("admin_is_super", isSuper)
}

func seedHandlerPromotion(t *testing.T, db *gorm.DB, title, code string, createdBy uint) models.Promotion {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	promotion := models.Promotion{
		Title:         title,
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Code:          code,
		StartDate:     now.Add(-time.Hour),
		EndDate:       now.Add(24 * time.Hour),
		IsActive:      true,
		CreatedByID:   createdBy,
		UpdatedByID:   createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.Create(&promotion).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}
	return promotion
}

func TestCreatePromotionHandler(t *testing.T) {
	h, db := setupAdminPromotionHandlerTest(t)

	start := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	end := time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339)
	body := fmt.Sprintf(`{
		"title": "Spring Greens Sale",
		"discount_type": "percentage",
		"discount_value": "15",
		"code": "spring15",
		"start_date": %q,
		"end_date": %q,
		"show_on_homepage": true,
		"priority": 8
	}`, start, end)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/promotions", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	setTestActor(c, 7, false)

	h.CreatePromotion(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int             `json:"status_code"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d, body %s", resp.StatusCode, w.Body.String())
	}

	var saved models.Promotion
	if err := db.Where("title = ?", "Spring Greens Sale").First(&saved).Error; err != nil {
		t.Fatalf("load created promotion failed: %v", err)
	}
	if saved.Code != "SPRING15" {
		t.Fatalf("code want SPRING15 got %s", saved.Code)
	}
	if saved.CreatedByID != 7 {
		t.Fatalf("created_by_id want 7 got %d", saved.CreatedByID)
	}
}

func TestCreatePromotionHandlerRejectsPercentageOverLimit(t *testing.T) {
	h, _ := setupAdminPromotionHandlerTest(t)

	start := time.Now().UTC().Format(time.RFC3339)
	end := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)
	body := fmt.Sprintf(`{
		"title": "Bad Percentage",
		"discount_type": "percentage",
		"discount_value": "120",
		"start_date": %q,
		"end_date": %q
	}`, start, end)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/promotions", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	setTestActor(c, 7, false)

	h.CreatePromotion(c)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
}

func TestTogglePromotionHandlerHidesOthersContent(t *testing.T) {
	h, db := setupAdminPromotionHandlerTest(t)
	promotion := seedHandlerPromotion(t, db, "Owner Only", "OWNER1", 1)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/admin/promotions/toggle", strings.NewReader(`{"is_active": false}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", promotion.ID)}}
	setTestActor(c, 2, false)

	h.TogglePromotion(c)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("status_code want 404 got %d", resp.StatusCode)
	}

	var reloaded models.Promotion
	if err := db.First(&reloaded, promotion.ID).Error; err != nil {
		t.Fatalf("reload promotion failed: %v", err)
	}
	if !reloaded.IsActive {
		t.Fatalf("promotion should stay active for non-creator toggle")
	}
}

func TestGetAdminPromotionsSearch(t *testing.T) {
	h, db := setupAdminPromotionHandlerTest(t)
	seedHandlerPromotion(t, db, "Berry Bundle", "BERRY1", 1)
	seedHandlerPromotion(t, db, "Citrus Crate", "CITRUS1", 1)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/promotions?search=berry", nil)
	setTestActor(c, 1, true)

	h.GetAdminPromotions(c)

	var resp struct {
		StatusCode int `json:"status_code"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Pagination.Total != 1 || len(resp.Data) != 1 {
		t.Fatalf("want exactly one match, got total %d len %d", resp.Pagination.Total, len(resp.Data))
	}
	if title, _ := resp.Data[0]["title"].(string); title != "Berry Bundle" {
		t.Fatalf("title want Berry Bundle got %v", resp.Data[0]["title"])
	}
}
