package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gogreen-admin/internal/http/response"
	"github.com/gogreen-admin/internal/repository"
	"github.com/gogreen-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// HubMemberRequest 创建/更新会员请求
type HubMemberRequest struct {
	Email       string `json:"email" binding:"required"`
	DisplayName string `json:"display_name"`
	Tier        string `json:"tier"`
	Status      string `json:"status"`
}

func (r HubMemberRequest) toServiceInput() service.HubMemberInput {
	return service.HubMemberInput{
		Email:       r.Email,
		DisplayName: r.DisplayName,
		Tier:        r.Tier,
		Status:      r.Status,
	}
}

// GetHubMembers 获取会员列表
func (h *Handler) GetHubMembers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.HubMemberListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Tier:     strings.TrimSpace(c.Query("tier")),
		Status:   strings.TrimSpace(c.Query("status")),
	}
	if from, err := parseTimeNullable(strings.TrimSpace(c.Query("joined_from"))); err == nil {
		filter.JoinedFrom = from
	}
	if to, err := parseTimeNullable(strings.TrimSpace(c.Query("joined_to"))); err == nil {
		filter.JoinedTo = to
	}

	members, total, err := h.HubMemberService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, members, pagination)
}

// GetHubMember 获取会员详情
func (h *Handler) GetHubMember(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	member, err := h.HubMemberService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrHubMemberNotFound) {
			respondError(c, response.CodeNotFound, "error.member_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, member)
}

// CreateHubMember 创建会员
func (h *Handler) CreateHubMember(c *gin.Context) {
	var req HubMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	member, err := h.HubMemberService.Create(req.toServiceInput())
	if err != nil {
		respondHubMemberWriteError(c, err)
		return
	}

	response.Success(c, member)
}

// UpdateHubMember 更新会员
func (h *Handler) UpdateHubMember(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req HubMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	member, err := h.HubMemberService.Update(id, req.toServiceInput())
	if err != nil {
		respondHubMemberWriteError(c, err)
		return
	}

	response.Success(c, member)
}

// AdjustHubMemberPointsRequest 调整积分请求
type AdjustHubMemberPointsRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// AdjustHubMemberPoints 调整会员积分（增量），可能触发等级变动
func (h *Handler) AdjustHubMemberPoints(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req AdjustHubMemberPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	member, err := h.HubMemberService.AdjustPoints(id, req.Delta)
	if err != nil {
		respondHubMemberWriteError(c, err)
		return
	}

	response.Success(c, member)
}

// DeleteHubMember 删除会员
func (h *Handler) DeleteHubMember(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.HubMemberService.Delete(id); err != nil {
		respondHubMemberWriteError(c, err)
		return
	}

	response.Success(c, nil)
}

// GetHubTierOverview 获取会员等级分布
func (h *Handler) GetHubTierOverview(c *gin.Context) {
	overview, err := h.HubMemberService.TierOverview()
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, overview)
}

func respondHubMemberWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHubMemberInvalid):
		respondError(c, response.CodeBadRequest, "error.member_invalid", nil)
	case errors.Is(err, service.ErrHubMemberEmailTaken):
		respondError(c, response.CodeConflict, "error.member_email_taken", nil)
	case errors.Is(err, service.ErrHubMemberPointsShort):
		respondError(c, response.CodeBadRequest, "error.member_points_short", nil)
	case errors.Is(err, service.ErrHubMemberNotFound):
		respondError(c, response.CodeNotFound, "error.member_not_found", nil)
	default:
		respondError(c, response.CodeInternal, "error.save_failed", err)
	}
}
