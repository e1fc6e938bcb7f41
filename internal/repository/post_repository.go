package repository

import (
	"errors"

	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/models"

	"gorm.io/gorm"
)

// PostRepository 文章数据访问接口
type PostRepository interface {
	GetByID(id uint) (*models.Post, error)
	GetBySlug(slug string) (*models.Post, error)
	List(filter PostListFilter) ([]models.Post, int64, error)
	ListPublished(page, pageSize int) ([]models.Post, int64, error)
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(id uint) error
}

// GormPostRepository GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// GetByID 根据ID获取文章
func (r *GormPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug 根据 slug 获取文章
func (r *GormPostRepository) GetBySlug(slug string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// List 获取文章列表
func (r *GormPostRepository) List(filter PostListFilter) ([]models.Post, int64, error) {
	posts := make([]models.Post, 0)
	query := r.db.Model(&models.Post{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		condition, argCount := buildSearchLikeCondition(r.db, []string{"title", "summary"})
		if condition != "" {
			like := "%" + filter.Search + "%"
			query = query.Where(condition, repeatLikeArgs(like, argCount)...)
		}
	}
	if filter.AuthorID > 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id DESC").Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListPublished 获取已发布文章列表（发布时间降序）
func (r *GormPostRepository) ListPublished(page, pageSize int) ([]models.Post, int64, error) {
	posts := make([]models.Post, 0)
	query := r.db.Model(&models.Post{}).
		Where("status = ?", constants.PostStatusPublished).
		Where("published_at IS NOT NULL")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	if err := query.Order("published_at DESC").Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Create 创建文章
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update 更新文章
func (r *GormPostRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete 删除文章（软删除）
func (r *GormPostRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}
