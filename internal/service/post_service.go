package service

import (
	"strings"
	"time"

	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/models"
	"github.com/gogreen-admin/internal/repository"
)

// PostService 文章业务服务
type PostService struct {
	repo repository.PostRepository
}

// NewPostService 创建文章服务
func NewPostService(repo repository.PostRepository) *PostService {
	return &PostService{repo: repo}
}

// PostInput 创建/更新文章输入
type PostInput struct {
	Slug      string
	Title     string
	Summary   string
	Content   string
	Thumbnail string
	Tags      []string
	Status    string
}

var allowedPostStatuses = map[string]struct{}{
	constants.PostStatusDraft:     {},
	constants.PostStatusPublished: {},
	constants.PostStatusArchived:  {},
}

// ListPublic 获取公开文章列表
func (s *PostService) ListPublic(page, pageSize int) ([]models.Post, int64, error) {
	return s.repo.ListPublished(page, pageSize)
}

// GetPublicBySlug 获取公开文章详情
func (s *PostService) GetPublicBySlug(slug string) (*models.Post, error) {
	post, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if post == nil || post.Status != constants.PostStatusPublished {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// ListAdmin 获取后台文章列表
func (s *PostService) ListAdmin(status, search string, page, pageSize int) ([]models.Post, int64, error) {
	filter := repository.PostListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   status,
		Search:   search,
	}
	return s.repo.List(filter)
}

// GetAdminByID 获取后台文章详情
func (s *PostService) GetAdminByID(id uint) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Create 创建文章
func (s *PostService) Create(actor Actor, input PostInput) (*models.Post, error) {
	slug, title, status, err := s.normalizeInput(input, nil)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		Slug:      slug,
		Title:     title,
		Summary:   strings.TrimSpace(input.Summary),
		Content:   input.Content,
		Thumbnail: strings.TrimSpace(input.Thumbnail),
		Tags:      models.StringArray(input.Tags),
		Status:    status,
		AuthorID:  actor.ID,
	}
	if status == constants.PostStatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.repo.Create(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update 更新文章
func (s *PostService) Update(id uint, input PostInput) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	slug, title, status, err := s.normalizeInput(input, &id)
	if err != nil {
		return nil, err
	}

	post.Slug = slug
	post.Title = title
	post.Summary = strings.TrimSpace(input.Summary)
	post.Content = input.Content
	post.Thumbnail = strings.TrimSpace(input.Thumbnail)
	post.Tags = models.StringArray(input.Tags)
	// 首次发布时落发布时间，之后保持不变
	if status == constants.PostStatusPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	post.Status = status

	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete 删除文章
func (s *PostService) Delete(id uint) error {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return s.repo.Delete(id)
}

func (s *PostService) normalizeInput(input PostInput, excludeID *uint) (slug, title, status string, err error) {
	slug = strings.ToLower(strings.TrimSpace(input.Slug))
	title = strings.TrimSpace(input.Title)
	if slug == "" || title == "" {
		return "", "", "", ErrPostInvalid
	}

	status = strings.ToLower(strings.TrimSpace(input.Status))
	if status == "" {
		status = constants.PostStatusDraft
	}
	if _, ok := allowedPostStatuses[status]; !ok {
		return "", "", "", ErrPostInvalid
	}

	existing, lookupErr := s.repo.GetBySlug(slug)
	if lookupErr != nil {
		return "", "", "", lookupErr
	}
	if existing != nil && (excludeID == nil || existing.ID != *excludeID) {
		return "", "", "", ErrPostSlugTaken
	}

	return slug, title, status, nil
}
