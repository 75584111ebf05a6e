package controller

import (
	"errors"
	"risk_screening_backend/internal/knowledge"
	"risk_screening_backend/internal/service"
	"risk_screening_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

const knowledgeAttemptNotFoundMessage = "Quiz attempt not found"

type KnowledgeQuizController struct {
	QuizService *service.KnowledgeQuizService
}

func NewKnowledgeQuizController(quizService *service.KnowledgeQuizService) *KnowledgeQuizController {
	return &KnowledgeQuizController{QuizService: quizService}
}

// swagger:model SubmitKnowledgeQuizRequest
type SubmitKnowledgeQuizRequest struct {
	QuizID  string             `json:"quizId" binding:"required"`
	Answers []knowledge.Answer `json:"answers" binding:"required,min=1,dive"`
}

// swagger:model LinkAttemptRequest
type LinkAttemptRequest struct {
	AttemptID string `json:"attemptId" binding:"required"`
}

// GetActiveQuiz godoc
// @Summary 获取知识测验
// @Description 从启用的题库随机抽取 10 道题，不含答案
// @Tags 知识测验
// @Produce  json
// @Success 200 {object} util.Response{data=service.PublicKnowledgeQuiz} "成功"
// @Failure 404 {object} util.Response "题库不存在"
// @Router /api/quiz/active [get]
func (c *KnowledgeQuizController) GetActiveQuiz(ctx *gin.Context) {
	quiz, err := c.QuizService.ActiveQuiz(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, "No active quiz found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Submit godoc
// @Summary 提交知识测验
// @Description 游客也可提交；登录用户的作答直接关联账号
// @Tags 知识测验
// @Accept  json
// @Produce  json
// @Param   body body SubmitKnowledgeQuizRequest true "答案"
// @Success 201 {object} util.Response{data=service.KnowledgeSubmitResult} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "题库不存在"
// @Router /api/quiz/submit [post]
func (c *KnowledgeQuizController) Submit(ctx *gin.Context) {
	var req SubmitKnowledgeQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var userID uint
	if user := util.GetUserFromContext(ctx); user != nil {
		userID = user.UserID
	}
	client := service.ClientInfo{
		IPAddress: ctx.ClientIP(),
		UserAgent: ctx.Request.UserAgent(),
	}

	result, err := c.QuizService.Submit(ctx.Request.Context(), userID, req.QuizID, req.Answers, client)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, "Quiz not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// LinkAttempt godoc
// @Summary 关联作答到账号
// @Description 注册或登录后认领之前以游客身份提交的作答
// @Tags 知识测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body LinkAttemptRequest true "作答 ID"
// @Success 200 {object} util.Response{data=service.LinkResult} "成功"
// @Failure 404 {object} util.Response "作答不存在"
// @Failure 409 {object} util.Response "作答已属于其他用户"
// @Router /api/quiz/link-attempt [post]
func (c *KnowledgeQuizController) LinkAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req LinkAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	linked, err := c.QuizService.LinkAttempt(ctx.Request.Context(), user.UserID, req.AttemptID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx, knowledgeAttemptNotFoundMessage)
		case errors.Is(err, util.ErrAttemptLinked):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.SuccessWithMessage(ctx, "Quiz linked to user successfully", linked)
}

// parseDateRange startDate/endDate 为 YYYY-MM-DD，endDate 包含当天
func parseDateRange(ctx *gin.Context) (from, to *time.Time, err error) {
	if v := ctx.Query("startDate"); v != "" {
		t, err := time.Parse(util.DateFormat, v)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if v := ctx.Query("endDate"); v != "" {
		t, err := time.Parse(util.DateFormat, v)
		if err != nil {
			return nil, nil, err
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}

// GetAnalytics godoc
// @Summary 知识测验统计
// @Description 作答量、注册转化率、等级分布、分数统计和每日趋势
// @Tags 管理
// @Produce  json
// @Security BearerAuth
// @Param   quizId path string true "题库 ID"
// @Param   startDate query string false "开始日期 YYYY-MM-DD"
// @Param   endDate query string false "结束日期 YYYY-MM-DD（含当天）"
// @Success 200 {object} util.Response{data=knowledge.Analytics} "成功"
// @Failure 400 {object} util.Response "日期格式错误"
// @Failure 404 {object} util.Response "题库不存在"
// @Router /api/quiz/{quizId}/analytics [get]
func (c *KnowledgeQuizController) GetAnalytics(ctx *gin.Context) {
	from, to, err := parseDateRange(ctx)
	if err != nil {
		util.BadRequest(ctx, "dates must use the YYYY-MM-DD format")
		return
	}

	stats, err := c.QuizService.Analytics(ctx.Request.Context(), ctx.Param("quizId"), from, to)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, "Quiz not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// CreateQuiz godoc
// @Summary 发布知识题库
// @Description 校验后写入新题库，并停用其他题库
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body knowledge.Quiz true "题库"
// @Success 201 {object} util.Response{data=model.KnowledgeQuiz} "创建成功"
// @Failure 400 {object} util.Response "题库无效"
// @Failure 409 {object} util.Response "题库 ID 已存在"
// @Router /api/quiz/create [post]
func (c *KnowledgeQuizController) CreateQuiz(ctx *gin.Context) {
	var quiz knowledge.Quiz
	if err := ctx.ShouldBindJSON(&quiz); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var author string
	if user := util.GetUserFromContext(ctx); user != nil {
		author = user.Email
	}

	created, err := c.QuizService.CreateQuiz(ctx.Request.Context(), &quiz, author)
	if err != nil {
		switch {
		case errors.Is(err, knowledge.ErrInvalidQuiz):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrQuizExists):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, created)
}
