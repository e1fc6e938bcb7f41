package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表（生鲜农产品）
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`                          // 唯一标识
	Name          string         `gorm:"type:varchar(120);not null" json:"name"`                    // 商品名称
	Category      string         `gorm:"type:varchar(60);not null;index" json:"category"`           // 分类（vegetables/fruits/dairy/pantry 等）
	Description   string         `gorm:"type:text" json:"description"`                              // 商品描述
	PriceAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 价格金额
	Unit          string         `gorm:"type:varchar(20);not null;default:'each'" json:"unit"`      // 计价单位（lb/bunch/each/dozen）
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`                  // 库存数量
	IsOrganic     bool           `gorm:"not null;default:false" json:"is_organic"`                  // 是否有机
	Origin        string         `gorm:"type:varchar(120)" json:"origin"`                           // 产地
	Images        StringArray    `gorm:"type:json" json:"images"`                                   // 图片数组
	Tags          StringArray    `gorm:"type:json" json:"tags"`                                     // 标签数组
	SeoMetaJSON   JSON           `gorm:"type:json" json:"seo_meta"`                                 // SEO 元数据
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	SortOrder     int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedByID   uint           `gorm:"index;not null" json:"created_by_id"`                       // 创建人管理员ID
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
