package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/provider"
	"github.com/gogreen-admin/internal/repository"
	"github.com/gogreen-admin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupAdminProductHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:admin_product_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	productService := service.NewProductService(repository.NewProductRepository(db))
	h := &Handler{Container: &provider.Container{
		ProductService: productService,
	}}
	return h, db
}

func seedHandlerProduct(t *testing.T, db *gorm.DB, slug, name, category string, active bool) models.Product {
	t.Helper()
	product := models.Product{
		Slug:        slug,
		Name:        name,
		Category:    category,
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(3.50)),
		Unit:        "each",
		Images:      models.StringArray{"/img/" + slug + ".jpg"},
		IsActive:    active,
		CreatedByID: 1,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestSearchAdminProductsCapsAndProjects(t *testing.T) {
	h, db := setupAdminProductHandlerTest(t)

	for i := 0; i < 12; i++ {
		seedHandlerProduct(t, db, fmt.Sprintf("heirloom-tomato-%d", i), fmt.Sprintf("Heirloom Tomato %d", i), "vegetables", true)
	}
	seedHandlerProduct(t, db, "heirloom-tomato-hidden", "Heirloom Tomato Hidden", "vegetables", false)
	seedHandlerProduct(t, db, "navel-orange", "Navel Orange", "fruits", true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/products/search?q=tomato", nil)
	setTestActor(c, 1, false)

	h.SearchAdminProducts(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int                          `json:"status_code"`
		Data       []map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d, body %s", resp.StatusCode, w.Body.String())
	}
	if len(resp.Data) != 10 {
		t.Fatalf("rows want 10 got %d", len(resp.Data))
	}

	first := resp.Data[0]
	for _, key := range []string{"id", "name", "image", "price", "category"} {
		if _, ok := first[key]; !ok {
			t.Fatalf("missing key %q in %v", key, first)
		}
	}
	if _, ok := first["stock_quantity"]; ok {
		t.Fatalf("projection leaked full product row: %v", first)
	}
	for _, row := range resp.Data {
		var name string
		if err := json.Unmarshal(row["name"], &name); err != nil {
			t.Fatalf("unmarshal name failed: %v", err)
		}
		if name == "Heirloom Tomato Hidden" {
			t.Fatalf("inactive product returned")
		}
		if name == "Navel Orange" {
			t.Fatalf("non-matching product returned")
		}
	}
}

func TestSearchAdminProductsEmptyQueryReturnsActive(t *testing.T) {
	h, db := setupAdminProductHandlerTest(t)

	seedHandlerProduct(t, db, "rainbow-chard", "Rainbow Chard", "vegetables", true)
	seedHandlerProduct(t, db, "retired-item", "Retired Item", "pantry", false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/products/search", nil)
	setTestActor(c, 1, false)

	h.SearchAdminProducts(c)

	var resp struct {
		StatusCode int               `json:"status_code"`
		Data       []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("rows want 1 got %d", len(resp.Data))
	}
}
