package admin

import (
	"errors"
	"strings"

	"github.com/gogreen-admin/internal/http/response"
	"github.com/gogreen-admin/internal/service"
	"github.com/gogreen-admin/internal/wizard"

	"github.com/gin-gonic/gin"
)

// StartWizardRequest 开启向导会话请求
// target_id 仅对 promotion 编辑有效
type StartWizardRequest struct {
	Kind     string `json:"kind" binding:"required"`
	TargetID *uint  `json:"target_id"`
}

// StartWizard 开启向导会话
func (h *Handler) StartWizard(c *gin.Context) {
	var req StartWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	var (
		session wizard.Session
		err     error
	)
	if req.TargetID != nil {
		session, err = h.WizardService.StartEdit(currentActor(c), *req.TargetID)
	} else {
		session, err = h.WizardService.Start(currentActor(c), req.Kind)
	}
	if err != nil {
		respondWizardError(c, err)
		return
	}

	response.Success(c, session)
}

// GetWizardSession 获取向导会话
func (h *Handler) GetWizardSession(c *gin.Context) {
	session, err := h.WizardService.Get(currentActor(c), wizardSessionID(c))
	if err != nil {
		respondWizardError(c, err)
		return
	}

	response.Success(c, session)
}

// SaveWizardSession 保存当前步骤表单
func (h *Handler) SaveWizardSession(c *gin.Context) {
	var data wizard.FormData
	if err := c.ShouldBindJSON(&data); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	session, err := h.WizardService.Save(currentActor(c), wizardSessionID(c), data)
	if err != nil {
		respondWizardError(c, err)
		return
	}

	response.Success(c, session)
}

// WizardNext 推进到下一步
func (h *Handler) WizardNext(c *gin.Context) {
	session, err := h.WizardService.Next(currentActor(c), wizardSessionID(c))
	if err != nil {
		respondWizardError(c, err)
		return
	}

	response.Success(c, session)
}

// WizardPrevious 回退一步，第一步回退将丢弃会话
func (h *Handler) WizardPrevious(c *gin.Context) {
	session, discarded, err := h.WizardService.Previous(currentActor(c), wizardSessionID(c))
	if err != nil {
		respondWizardError(c, err)
		return
	}
	if discarded {
		response.Success(c, gin.H{"discarded": true})
		return
	}

	response.Success(c, session)
}

// WizardGotoRequest 跳转步骤请求
type WizardGotoRequest struct {
	Step int `json:"step" binding:"required"`
}

// WizardGoto 跳转到指定步骤
func (h *Handler) WizardGoto(c *gin.Context) {
	var req WizardGotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	session, err := h.WizardService.Goto(currentActor(c), wizardSessionID(c), req.Step)
	if err != nil {
		respondWizardError(c, err)
		return
	}

	response.Success(c, session)
}

// SubmitWizard 提交向导，成功后落库并结束会话
func (h *Handler) SubmitWizard(c *gin.Context) {
	result, err := h.WizardService.Submit(currentActor(c), wizardSessionID(c))
	if err != nil {
		respondWizardError(c, err)
		return
	}

	response.Success(c, result)
}

// DiscardWizard 放弃向导会话
func (h *Handler) DiscardWizard(c *gin.Context) {
	if err := h.WizardService.Discard(currentActor(c), wizardSessionID(c)); err != nil {
		respondWizardError(c, err)
		return
	}

	response.Success(c, nil)
}

func wizardSessionID(c *gin.Context) string {
	return strings.TrimSpace(c.Param("id"))
}

func respondWizardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWizardSessionNotFound):
		respondError(c, response.CodeNotFound, "error.wizard_session_not_found", nil)
	case errors.Is(err, service.ErrWizardKindInvalid):
		respondError(c, response.CodeBadRequest, "error.wizard_kind_invalid", nil)
	case errors.Is(err, service.ErrWizardStepBlocked):
		respondError(c, response.CodeBadRequest, "error.wizard_step_blocked", nil)
	case errors.Is(err, service.ErrWizardNotSubmittable):
		respondError(c, response.CodeBadRequest, "error.wizard_not_submittable", nil)
	case errors.Is(err, service.ErrPromotionCodeTaken):
		respondError(c, response.CodeConflict, "error.promotion_code_taken", nil)
	case errors.Is(err, service.ErrPromotionInvalid):
		respondError(c, response.CodeBadRequest, "error.promotion_invalid", nil)
	case errors.Is(err, service.ErrAnnouncementInvalid):
		respondError(c, response.CodeBadRequest, "error.announcement_invalid", nil)
	case errors.Is(err, service.ErrPromotionNotFound):
		respondError(c, response.CodeNotFound, "error.promotion_not_found", nil)
	case errors.Is(err, service.ErrContentNotFoundOrForbidden):
		respondError(c, response.CodeNotFound, "error.content_not_found_or_forbidden", nil)
	default:
		respondError(c, response.CodeInternal, "error.save_failed", err)
	}
}
