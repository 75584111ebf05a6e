package controller

import (
	"errors"
	"risk_screening_backend/internal/risk"
	"risk_screening_backend/internal/service"
	"risk_screening_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LifestyleQuizController struct {
	QuizService *service.LifestyleQuizService
}

func NewLifestyleQuizController(quizService *service.LifestyleQuizService) *LifestyleQuizController {
	return &LifestyleQuizController{QuizService: quizService}
}

// SubmitQuizRequest 提交问卷答案
// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	QuizID  string        `json:"quizId" binding:"required"`
	Answers []risk.Answer `json:"answers" binding:"required,min=1,dive"`
}

// GetActiveQuiz godoc
// @Summary 获取当前问卷
// @Description 返回最新启用的生活方式问卷，不包含选项分值
// @Tags 生活方式问卷
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.PublicQuiz} "成功"
// @Failure 404 {object} util.Response "问卷不存在"
// @Router /api/lifestyle-quiz/active [get]
func (c *LifestyleQuizController) GetActiveQuiz(ctx *gin.Context) {
	quiz, err := c.QuizService.ActiveQuiz(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Submit godoc
// @Summary 提交问卷
// @Description 计算风险分数并保存本次作答
// @Tags 生活方式问卷
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body SubmitQuizRequest true "问卷答案"
// @Success 201 {object} util.Response{data=service.SubmitResult} "成功"
// @Failure 400 {object} util.Response "答案无效"
// @Failure 404 {object} util.Response "问卷不存在"
// @Router /api/lifestyle-quiz/submit [post]
func (c *LifestyleQuizController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.Submit(ctx.Request.Context(), user.UserID, req.QuizID, req.Answers)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// ListAttempts godoc
// @Summary 作答历史
// @Description 最近 10 次作答，不含答案明细
// @Tags 生活方式问卷
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.AttemptSummary} "成功"
// @Router /api/lifestyle-quiz/attempts [get]
func (c *LifestyleQuizController) ListAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.QuizService.RecentAttempts(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// CreateQuiz godoc
// @Summary 发布问卷版本
// @Description 校验并保存新版本问卷，已存在的 ID 不能覆盖
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body risk.Definition true "问卷定义"
// @Success 201 {object} util.Response{data=model.LifestyleQuiz} "创建成功"
// @Failure 400 {object} util.Response "问卷定义无效"
// @Failure 409 {object} util.Response "版本已存在"
// @Router /api/admin/lifestyle-quiz [post]
func (c *LifestyleQuizController) CreateQuiz(ctx *gin.Context) {
	var def risk.Definition
	if err := ctx.ShouldBindJSON(&def); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if def.ID == "" {
		util.BadRequest(ctx, "quiz id is required")
		return
	}

	quiz, err := c.QuizService.CreateQuiz(ctx.Request.Context(), &def)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizExists):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, risk.ErrInvalidDefinition),
			errors.Is(err, risk.ErrInvalidRange),
			errors.Is(err, risk.ErrNoRiskLevels):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, quiz)
}
