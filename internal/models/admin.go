package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin 后台管理员账号
type Admin struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Username           string         `gorm:"uniqueIndex;not null" json:"username"`
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName        string         `gorm:"default:''" json:"display_name"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                  // 改密/禁用时自增，旧 Token 全部失效
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                               // 该时间点前签发的 Token 不再接受
	IsSuper            bool           `gorm:"not null;default:false;index" json:"is_super"` // 超级管理员跳过 RBAC 判定
	Status             string         `gorm:"default:'active';index" json:"status"`         // active / disabled
	LastLoginAt        *time.Time     `json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Admin) TableName() string {
	return "admins"
}
