package controller

import (
	"errors"
	"risk_screening_backend/internal/risk"
	"risk_screening_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const (
	noAttemptMessage    = "No lifestyle quiz attempt found. Please complete the quiz first."
	quizNotFoundMessage = "Quiz data not found"
	testNotFoundMessage = "Test information not found"
)

// respondError 将服务层错误映射为响应码，未知错误记录日志后返回 500
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrAttemptNotFound):
		util.NotFound(ctx, noAttemptMessage)
	case errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(ctx, quizNotFoundMessage)
	case errors.Is(err, util.ErrTestNotFound):
		util.NotFound(ctx, testNotFoundMessage)
	case risk.IsNotFound(err),
		errors.Is(err, risk.ErrDuplicateAnswer),
		errors.Is(err, risk.ErrNotModifiable):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
