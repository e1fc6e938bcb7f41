package models

import (
	"time"
)

// Promotion 优惠活动表
type Promotion struct {
	ID                uint       `gorm:"primarykey" json:"id"`                                             // 主键
	Title             string     `gorm:"type:varchar(60);not null" json:"title"`                           // 活动标题
	Description       string     `gorm:"type:text" json:"description"`                                     // 活动描述
	DiscountType      string     `gorm:"type:varchar(20);not null" json:"discount_type"`                   // 折扣类型（percentage/fixed_amount/buy_x_get_y）
	DiscountValue     Money      `gorm:"type:decimal(20,2);not null;default:0" json:"discount_value"`      // 折扣数值（百分比或固定金额）
	BuyQuantity       int        `gorm:"not null;default:0" json:"buy_quantity"`                           // 买 X（仅 buy_x_get_y）
	GetQuantity       int        `gorm:"not null;default:0" json:"get_quantity"`                           // 赠 Y（仅 buy_x_get_y）
	Code              string     `gorm:"type:varchar(40);uniqueIndex:,where:code <> ''" json:"code"`       // 优惠码（可选，统一大写，空串不占用唯一索引）
	MinPurchaseAmount Money      `gorm:"type:decimal(20,2);not null;default:0" json:"min_purchase_amount"` // 使用门槛金额
	MaxDiscountAmount Money      `gorm:"type:decimal(20,2);not null;default:0" json:"max_discount_amount"` // 最大优惠金额（仅百分比类型）
	UsageLimit        int        `gorm:"not null;default:0" json:"usage_limit"`                            // 总使用上限（0 表示不限制）
	UsageCount        int        `gorm:"not null;default:0" json:"usage_count"`                            // 已使用次数
	ProductID         *uint      `gorm:"index" json:"product_id"`                                          // 关联商品（可选）
	StartDate         time.Time  `gorm:"index;not null" json:"start_date"`                                 // 生效时间
	EndDate           time.Time  `gorm:"index;not null" json:"end_date"`                                   // 失效时间
	ShowOnHomepage    bool       `gorm:"not null;default:false;index" json:"show_on_homepage"`             // 是否首页展示
	Priority          int        `gorm:"not null;default:0;index" json:"priority"`                         // 展示优先级（0-10，越大越靠前）
	IsActive          bool       `gorm:"not null;default:true;index" json:"is_active"`                     // 是否启用
	CreatedByID       uint       `gorm:"index;not null" json:"created_by_id"`                              // 创建人管理员ID
	UpdatedByID       uint       `gorm:"not null" json:"updated_by_id"`                                    // 最近修改人管理员ID
	CreatedAt         time.Time  `gorm:"index" json:"created_at"`                                          // 创建时间
	UpdatedAt         time.Time  `gorm:"index" json:"updated_at"`                                          // 更新时间

	// 关联
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品信息
}

// TableName 指定表名
func (Promotion) TableName() string {
	return "promotions"
}

// Status 推导展示状态（expired 优先于 upcoming，inactive 仅对未过期内容生效）
func (p *Promotion) Status(now time.Time) string {
	return DeriveContentStatus(p.IsActive, p.StartDate, p.EndDate, now)
}

// UsageExhausted 使用次数是否已耗尽
func (p *Promotion) UsageExhausted() bool {
	return p.UsageLimit > 0 && p.UsageCount >= p.UsageLimit
}
