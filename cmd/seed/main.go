package main

import (
	"time"

	"github.com/gogreen-admin/internal/config"
	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/logger"
	"github.com/gogreen-admin/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员作为示例数据的创建人
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Fatalf("Failed to init default admin: %v", err)
	}
	var admin models.Admin
	if err := models.DB.Where("username = ?", "admin").First(&admin).Error; err != nil {
		stdLog.Fatalf("Failed to load default admin: %v", err)
	}

	now := time.Now()

	// 商品
	products := []models.Product{
		{
			Slug:          "rainbow-chard",
			Name:          "Rainbow Chard",
			Category:      "vegetables",
			Description:   "Crisp, colorful chard bunches cut the same morning they ship.",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(3.49)),
			Unit:          "bunch",
			StockQuantity: 120,
			IsOrganic:     true,
			Origin:        "Willow Creek Farm",
			Tags:          models.StringArray{"leafy", "seasonal"},
			IsActive:      true,
			SortOrder:     10,
			CreatedByID:   admin.ID,
		},
		{
			Slug:          "honeycrisp-apples",
			Name:          "Honeycrisp Apples",
			Category:      "fruits",
			Description:   "Sweet-tart apples picked at peak crunch.",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(2.99)),
			Unit:          "lb",
			StockQuantity: 300,
			IsOrganic:     false,
			Origin:        "Two Rivers Orchard",
			Tags:          models.StringArray{"orchard"},
			IsActive:      true,
			SortOrder:     20,
			CreatedByID:   admin.ID,
		},
		{
			Slug:          "pasture-eggs",
			Name:          "Pasture-Raised Eggs",
			Category:      "dairy",
			Description:   "One dozen eggs from hens on rotating pasture.",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(6.50)),
			Unit:          "dozen",
			StockQuantity: 80,
			IsOrganic:     true,
			Origin:        "Meadowlark Homestead",
			Tags:          models.StringArray{"protein"},
			IsActive:      true,
			SortOrder:     30,
			CreatedByID:   admin.ID,
		},
	}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	// 优惠活动
	promotions := []models.Promotion{
		{
			Title:          "Spring Greens Week",
			Description:    "15% off all leafy vegetables while the spring harvest lasts.",
			DiscountType:   constants.DiscountTypePercentage,
			DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(15)),
			Code:           "SPRING15",
			UsageLimit:     500,
			StartDate:      now.AddDate(0, 0, -3),
			EndDate:        now.AddDate(0, 0, 11),
			ShowOnHomepage: true,
			Priority:       8,
			IsActive:       true,
			CreatedByID:    admin.ID,
			UpdatedByID:    admin.ID,
		},
		{
			Title:             "Farm Box Five Off",
			Description:       "$5 off orders over $40.",
			DiscountType:      constants.DiscountTypeFixedAmount,
			DiscountValue:     models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
			Code:              "FARMBOX5",
			MinPurchaseAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(40)),
			UsageLimit:        200,
			StartDate:         now.AddDate(0, 0, -1),
			EndDate:           now.AddDate(0, 1, 0),
			ShowOnHomepage:    false,
			Priority:          4,
			IsActive:          true,
			CreatedByID:       admin.ID,
			UpdatedByID:       admin.ID,
		},
	}
	for _, promotion := range promotions {
		var existing models.Promotion
		if err := models.DB.Where("code = ?", promotion.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&promotion).Error; err != nil {
				stdLog.Printf("Failed to create promotion %s: %v", promotion.Code, err)
			} else {
				stdLog.Printf("Created promotion: %s", promotion.Code)
			}
		} else {
			stdLog.Printf("Promotion already exists: %s", promotion.Code)
		}
	}

	// 公告
	announcements := []models.Announcement{
		{
			Type:    constants.AnnouncementTypeSeasonal,
			Title:   "Strawberry Season Opens",
			Message: "First flats of the year arrive this weekend.",
			Details: models.AnnouncementDetails{
				Seasonal: &models.SeasonalDetails{
					Subtitle:        "U-pick fields open Saturday",
					BackgroundColor: "#e8f5e9",
				},
			},
			StartDate:      now.AddDate(0, 0, -2),
			EndDate:        now.AddDate(0, 0, 19),
			ShowOnHomepage: true,
			Dismissible:    true,
			Priority:       7,
			IsActive:       true,
			CreatedByID:    admin.ID,
			UpdatedByID:    admin.ID,
		},
		{
			Type:    constants.AnnouncementTypeAlert,
			Title:   "Saturday Delivery Delay",
			Message: "Storm damage on Route 9 pushes Saturday deliveries to the afternoon.",
			Details: models.AnnouncementDetails{
				Alert: &models.AlertDetails{
					Urgency:            "high",
					AlertCategory:      "delivery",
					ActionRequired:     "Plan for afternoon drop-offs",
					AffectedAreas:      "North Valley routes",
					AlternativeOptions: "Pickup at the farm stand remains open all day",
				},
			},
			StartDate:      now.AddDate(0, 0, -1),
			EndDate:        now.AddDate(0, 0, 2),
			ShowOnHomepage: true,
			Dismissible:    false,
			Priority:       9,
			IsActive:       true,
			CreatedByID:    admin.ID,
			UpdatedByID:    admin.ID,
		},
	}
	for _, announcement := range announcements {
		var existing models.Announcement
		if err := models.DB.Where("title = ?", announcement.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&announcement).Error; err != nil {
				stdLog.Printf("Failed to create announcement %s: %v", announcement.Title, err)
			} else {
				stdLog.Printf("Created announcement: %s", announcement.Title)
			}
		} else {
			stdLog.Printf("Announcement already exists: %s", announcement.Title)
		}
	}

	// 博客文章
	posts := []models.Post{
		{
			Slug:        "meet-willow-creek-farm",
			Title:       "Meet Willow Creek Farm",
			Summary:     "A visit with the growers behind our leafy greens.",
			Content:     "## Willow Creek\n\nThe chard you see every spring starts here...",
			Tags:        models.StringArray{"farms", "profiles"},
			Status:      constants.PostStatusPublished,
			PublishedAt: &now,
			AuthorID:    admin.ID,
		},
		{
			Slug:     "storing-spring-greens",
			Title:    "Storing Spring Greens",
			Summary:  "Keep chard and spinach crisp for a full week.",
			Content:  "Draft notes on damp towels and crisper drawers.",
			Tags:     models.StringArray{"kitchen"},
			Status:   constants.PostStatusDraft,
			AuthorID: admin.ID,
		},
	}
	for _, post := range posts {
		var existing models.Post
		if err := models.DB.Where("slug = ?", post.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&post).Error; err != nil {
				stdLog.Printf("Failed to create post %s: %v", post.Slug, err)
			} else {
				stdLog.Printf("Created post: %s", post.Slug)
			}
		} else {
			stdLog.Printf("Post already exists: %s", post.Slug)
		}
	}

	// Hub 会员
	members := []models.HubMember{
		{
			Email:         "ivy@example.com",
			DisplayName:   "Ivy",
			Tier:          constants.HubTierHarvest,
			PointsBalance: 1280,
			Status:        "active",
			JoinedAt:      now.AddDate(-1, -2, 0),
		},
		{
			Email:         "marcus@example.com",
			DisplayName:   "Marcus",
			Tier:          constants.HubTierBloom,
			PointsBalance: 410,
			Status:        "active",
			JoinedAt:      now.AddDate(0, -5, 0),
		},
		{
			Email:         "dana@example.com",
			DisplayName:   "Dana",
			Tier:          constants.HubTierSprout,
			PointsBalance: 35,
			Status:        "active",
			JoinedAt:      now.AddDate(0, 0, -12),
		},
	}
	for _, member := range members {
		var existing models.HubMember
		if err := models.DB.Where("email = ?", member.Email).First(&existing).Error; err != nil {
			if err := models.DB.Create(&member).Error; err != nil {
				stdLog.Printf("Failed to create hub member %s: %v", member.Email, err)
			} else {
				stdLog.Printf("Created hub member: %s", member.Email)
			}
		} else {
			stdLog.Printf("Hub member already exists: %s", member.Email)
		}
	}

	stdLog.Printf("Seed finished")
}
