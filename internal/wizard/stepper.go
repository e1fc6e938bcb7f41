package wizard

import (
	"errors"
	"strings"

	"github.com/gogreen-admin/internal/constants"
)

// 向导状态机错误
var (
	ErrKindInvalid    = errors.New("向导类型无效")
	ErrStepBlocked    = errors.New("当前步骤校验未通过")
	ErrNotSubmittable = errors.New("向导尚未完成，不能提交")
)

// ValidKind 判断向导类型是否合法
func ValidKind(kind string) bool {
	switch kind {
	case constants.WizardKindPromotion,
		constants.WizardKindSeasonal,
		constants.WizardKindInfo,
		constants.WizardKindAlert:
		return true
	}
	return false
}

// StepGate 返回指定步骤的准入校验结果
// 第 3、4 步没有阻塞条件，所有字段均可选
func StepGate(kind string, step int, data FormData) error {
	switch step {
	case 1:
		return stepOneGate(kind, data)
	case 2:
		return stepTwoGate(kind, data)
	default:
		return nil
	}
}

func stepOneGate(kind string, data FormData) error {
	switch kind {
	case constants.WizardKindPromotion, constants.WizardKindSeasonal, constants.WizardKindInfo:
		if strings.TrimSpace(data.Title) == "" {
			return ErrStepBlocked
		}
	case constants.WizardKindAlert:
		if strings.TrimSpace(data.Urgency) == "" || strings.TrimSpace(data.AlertCategory) == "" {
			return ErrStepBlocked
		}
	default:
		return ErrKindInvalid
	}
	return nil
}

func stepTwoGate(kind string, data FormData) error {
	switch kind {
	case constants.WizardKindPromotion:
		if !data.DiscountValue.IsPositive() {
			return ErrStepBlocked
		}
	case constants.WizardKindSeasonal, constants.WizardKindInfo:
		if strings.TrimSpace(data.Message) == "" {
			return ErrStepBlocked
		}
	case constants.WizardKindAlert:
		if strings.TrimSpace(data.Title) == "" || strings.TrimSpace(data.Message) == "" {
			return ErrStepBlocked
		}
	default:
		return ErrKindInvalid
	}
	return nil
}

// ValidateSubmit 提交前的整体校验
// 任一项不满足时不得落库
func ValidateSubmit(kind string, data FormData) error {
	if !ValidKind(kind) {
		return ErrKindInvalid
	}
	if strings.TrimSpace(data.Title) == "" {
		return ErrNotSubmittable
	}
	if kind == constants.WizardKindPromotion {
		if !data.DiscountValue.IsPositive() {
			return ErrNotSubmittable
		}
	} else {
		if strings.TrimSpace(data.Message) == "" {
			return ErrNotSubmittable
		}
	}
	if data.StartDate == nil || data.EndDate == nil {
		return ErrNotSubmittable
	}
	if data.EndDate.Before(*data.StartDate) {
		return ErrNotSubmittable
	}
	return nil
}
