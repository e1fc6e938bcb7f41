package wizard

import (
	"time"

	"github.com/gogreen-admin/internal/models"
)

// FormData 向导表单数据
// 四种内容类型共用一个载荷，按类型只读取各自关心的字段
type FormData struct {
	// 共用字段
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Message        string     `json:"message"`
	Icon           string     `json:"icon"`
	LinkURL        string     `json:"link_url"`
	LinkText       string     `json:"link_text"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	ShowOnHomepage bool       `json:"show_on_homepage"`
	Priority       int        `json:"priority"`
	IsActive       *bool      `json:"is_active"`

	// 优惠活动字段
	DiscountType      string       `json:"discount_type"`
	DiscountValue     models.Money `json:"discount_value"`
	BuyQuantity       int          `json:"buy_quantity"`
	GetQuantity       int          `json:"get_quantity"`
	Code              string       `json:"code"`
	MinPurchaseAmount models.Money `json:"min_purchase_amount"`
	MaxDiscountAmount models.Money `json:"max_discount_amount"`
	UsageLimit        int          `json:"usage_limit"`
	ProductID         *uint        `json:"product_id"`

	// 季节公告字段
	Subtitle        string `json:"subtitle"`
	BackgroundColor string `json:"background_color"`

	// 资讯公告字段
	Category          string `json:"category"`
	Importance        string `json:"importance"`
	AdditionalDetails string `json:"additional_details"`
	ContactInfo       string `json:"contact_info"`

	// 预警公告字段
	Urgency            string `json:"urgency"`
	AlertCategory      string `json:"alert_category"`
	ActionRequired     string `json:"action_required"`
	AffectedAreas      string `json:"affected_areas"`
	AlternativeOptions string `json:"alternative_options"`
	Dismissible        *bool  `json:"dismissible"`
}
