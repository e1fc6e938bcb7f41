package service

import (
	"unicode"
	"unicode/utf8"

	"github.com/gogreen-admin/internal/config"
)

// passwordPolicyError 携带 i18n key 与格式化参数，errors.Is 归于 ErrWeakPassword
type passwordPolicyError struct {
	key  string
	args []interface{}
}

func (e passwordPolicyError) Error() string {
	return e.key
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func (e passwordPolicyError) Key() string {
	return e.key
}

func (e passwordPolicyError) Args() []interface{} {
	return e.args
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 && utf8.RuneCountInString(password) < policy.MinLength {
		return passwordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}

	switch {
	case policy.RequireUpper && !hasUpper:
		return passwordPolicyError{key: "error.password_require_upper"}
	case policy.RequireLower && !hasLower:
		return passwordPolicyError{key: "error.password_require_lower"}
	case policy.RequireNumber && !hasNumber:
		return passwordPolicyError{key: "error.password_require_number"}
	case policy.RequireSpecial && !hasSpecial:
		return passwordPolicyError{key: "error.password_require_special"}
	}
	return nil
}
