package util

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = fmt.Errorf("%w: 用户不存在", ErrNotFound)
	ErrRoleNotFound       = fmt.Errorf("%w: 岗位不存在", ErrNotFound)
	ErrSkillNotFound      = fmt.Errorf("%w: 技能不存在", ErrNotFound)
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidRole        = errors.New("invalid role: no ideal skills")
	ErrPersistence        = errors.New("persistence error")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrPermissionDenied   = errors.New("permission denied")
)

// InvalidInputf 构造带上下文的参数错误，可用 errors.Is(err, ErrInvalidInput) 判断
func InvalidInputf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// PersistenceErr 包装存储层错误
func PersistenceErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
