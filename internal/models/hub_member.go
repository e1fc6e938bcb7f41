package models

import (
	"time"

	"gorm.io/gorm"
)

// HubMember 会员中心（Hub）成员表
type HubMember struct {
	ID             uint           `gorm:"primarykey" json:"id"`                           // 主键
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`              // 邮箱
	DisplayName    string         `gorm:"default:''" json:"display_name"`                 // 昵称
	Tier           string         `gorm:"type:varchar(20);not null;default:'sprout';index" json:"tier"` // 会员等级（sprout/bloom/harvest）
	PointsBalance  int            `gorm:"not null;default:0" json:"points_balance"`       // 积分余额
	Status         string         `gorm:"default:'active';index" json:"status"`           // 账号状态
	JoinedAt       time.Time      `gorm:"index" json:"joined_at"`                         // 加入时间
	LastActivityAt *time.Time     `json:"last_activity_at"`                               // 最近活跃时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                        // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                     // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                 // 软删除时间
}

// TableName 指定表名
func (HubMember) TableName() string {
	return "hub_members"
}
