package service

import (
	"github.com/gogreen-admin/internal/constants"
	"github.com/gogreen-admin/internal/logger"
	"github.com/gogreen-admin/internal/repository"
)

// Actor 当前操作者
type Actor struct {
	ID       uint
	Username string
	IsSuper  bool
}

// PermissionService 内容编辑权限判定
// 规则：超级管理员放行，其他人仅能操作自己创建的内容；查询失败一律判否。
type PermissionService struct {
	promotionRepo    repository.PromotionRepository
	announcementRepo repository.AnnouncementRepository
}

// NewPermissionService 创建权限判定服务
func NewPermissionService(
	promotionRepo repository.PromotionRepository,
	announcementRepo repository.AnnouncementRepository,
) *PermissionService {
	return &PermissionService{
		promotionRepo:    promotionRepo,
		announcementRepo: announcementRepo,
	}
}

// CanEdit 操作者是否可修改/删除指定内容
func (s *PermissionService) CanEdit(kind string, id uint, actor Actor) bool {
	if actor.ID == 0 {
		return false
	}
	if actor.IsSuper {
		return true
	}

	creatorID, err := s.creatorID(kind, id)
	if err != nil {
		logger.Warnw("permission_lookup_failed",
			"kind", kind,
			"content_id", id,
			"actor_id", actor.ID,
			"error", err,
		)
		return false
	}
	if creatorID == 0 {
		return false
	}
	return creatorID == actor.ID
}

func (s *PermissionService) creatorID(kind string, id uint) (uint, error) {
	switch kind {
	case constants.ContentKindPromotion:
		promotion, err := s.promotionRepo.GetByID(id)
		if err != nil {
			return 0, err
		}
		if promotion == nil {
			return 0, nil
		}
		return promotion.CreatedByID, nil
	case constants.ContentKindAnnouncement:
		announcement, err := s.announcementRepo.GetByID(id)
		if err != nil {
			return 0, err
		}
		if announcement == nil {
			return 0, nil
		}
		return announcement.CreatedByID, nil
	default:
		return 0, ErrContentKindInvalid
	}
}
