package models

import (
	"time"

	"gorm.io/gorm"
)

// Post 博客文章表
type Post struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                // 主键
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                    // 唯一标识
	Title       string         `gorm:"type:varchar(200);not null" json:"title"`             // 标题
	Summary     string         `gorm:"type:text" json:"summary"`                            // 摘要
	Content     string         `gorm:"type:text" json:"content"`                            // 正文（Markdown）
	Thumbnail   string         `gorm:"type:varchar(500)" json:"thumbnail"`                  // 缩略图
	Tags        StringArray    `gorm:"type:json" json:"tags"`                               // 标签数组
	Status      string         `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"` // 状态（draft/published/archived）
	PublishedAt *time.Time     `gorm:"index" json:"published_at"`                           // 发布时间
	AuthorID    uint           `gorm:"index;not null" json:"author_id"`                     // 作者管理员ID
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                          // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}
