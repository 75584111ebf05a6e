package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuizExists         = errors.New("quiz version already exists")
	ErrAttemptNotFound    = errors.New("attempt not found")
	ErrAttemptLinked      = errors.New("attempt already linked to another user")
	ErrTestNotFound       = errors.New("screening test not found")
)
