package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// SeasonalDetails 季节公告专属字段
type SeasonalDetails struct {
	Subtitle        string `json:"subtitle"`         // 副标题
	BackgroundColor string `json:"background_color"` // 背景色（固定调色板取值）
}

// InfoDetails 资讯公告专属字段
type InfoDetails struct {
	Category          string `json:"category"`           // 资讯类别
	Importance        string `json:"importance"`         // 重要程度
	AdditionalDetails string `json:"additional_details"` // 补充说明
	ContactInfo       string `json:"contact_info"`       // 联系方式
}

// AlertDetails 预警公告专属字段
type AlertDetails struct {
	Urgency            string `json:"urgency"`             // 紧急程度（info/warning/critical）
	AlertCategory      string `json:"alert_category"`      // 预警类别（service/security/maintenance/policy）
	ActionRequired     string `json:"action_required"`     // 需要用户采取的动作
	AffectedAreas      string `json:"affected_areas"`      // 受影响范围
	AlternativeOptions string `json:"alternative_options"` // 替代方案
}

// AnnouncementDetails 公告子类型专属字段（按类型仅一个分支有值）
type AnnouncementDetails struct {
	Seasonal *SeasonalDetails `json:"seasonal,omitempty"`
	Info     *InfoDetails     `json:"info,omitempty"`
	Alert    *AlertDetails    `json:"alert,omitempty"`
}

// Value 实现 driver.Valuer 接口
func (d AnnouncementDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan 实现 sql.Scanner 接口
func (d *AnnouncementDetails) Scan(value interface{}) error {
	if value == nil {
		*d = AnnouncementDetails{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, d)
}

// Announcement 站点公告表
type Announcement struct {
	ID             uint                `gorm:"primarykey" json:"id"`                                 // 主键
	Type           string              `gorm:"type:varchar(20);not null;index" json:"type"`          // 公告类型（seasonal/info/alert，创建后不可变）
	Title          string              `gorm:"type:varchar(60);not null" json:"title"`               // 标题
	Message        string              `gorm:"type:text;not null" json:"message"`                    // 正文（长度上限按类型区分）
	Icon           string              `gorm:"type:varchar(20)" json:"icon"`                         // 图标（emoji 等）
	LinkURL        string              `gorm:"type:varchar(1000)" json:"link_url"`                   // 跳转链接
	LinkText       string              `gorm:"type:varchar(60)" json:"link_text"`                    // 跳转文案（与链接成对出现）
	Details        AnnouncementDetails `gorm:"type:json" json:"details"`                             // 子类型专属字段
	StartDate      time.Time           `gorm:"index;not null" json:"start_date"`                     // 生效时间
	EndDate        time.Time           `gorm:"index;not null" json:"end_date"`                       // 失效时间
	ShowOnHomepage bool                `gorm:"not null;default:false;index" json:"show_on_homepage"` // 是否首页展示
	Dismissible    bool                `gorm:"not null;default:true" json:"dismissible"`             // 是否可关闭（critical 预警默认不可关闭）
	Priority       int                 `gorm:"not null;default:0;index" json:"priority"`             // 展示优先级（0-10，越大越靠前）
	IsActive       bool                `gorm:"not null;default:true;index" json:"is_active"`         // 是否启用
	CreatedByID    uint                `gorm:"index;not null" json:"created_by_id"`                  // 创建人管理员ID
	UpdatedByID    uint                `gorm:"not null" json:"updated_by_id"`                        // 最近修改人管理员ID
	CreatedAt      time.Time           `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt      time.Time           `gorm:"index" json:"updated_at"`                              // 更新时间
}

// TableName 指定表名
func (Announcement) TableName() string {
	return "announcements"
}

// Status 推导展示状态（expired 优先于 upcoming，inactive 仅对未过期内容生效）
func (a *Announcement) Status(now time.Time) string {
	return DeriveContentStatus(a.IsActive, a.StartDate, a.EndDate, now)
}
