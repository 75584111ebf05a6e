package controller

import (
	"risk_screening_backend/internal/service"
	"risk_screening_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScreeningController struct {
	ScreeningService *service.ScreeningService
}

func NewScreeningController(screeningService *service.ScreeningService) *ScreeningController {
	return &ScreeningController{ScreeningService: screeningService}
}

// @Summary 个性化筛查推荐
// @Description 根据最近一次作答生成筛查项目推荐，并附带机构套餐
// @Tags 筛查
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.RecommendationsResult}
// @Failure 404 {object} util.Response "尚未作答"
// @Router /api/screening/recommendations [get]
func (c *ScreeningController) GetRecommendations(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	res, err := c.ScreeningService.Recommendations(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary 筛查清单
// @Description 清单格式的推荐结果，每项附带推荐套餐
// @Tags 筛查
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Checklist}
// @Failure 404 {object} util.Response "尚未作答"
// @Router /api/screening/checklist [get]
func (c *ScreeningController) GetChecklist(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	res, err := c.ScreeningService.Checklist(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary 全部筛查项目
// @Description 所有启用的筛查项目及套餐，顺序随机
// @Tags 筛查
// @Produce json
// @Success 200 {object} util.Response{data=object}
// @Router /api/screening/all [get]
func (c *ScreeningController) GetAll(ctx *gin.Context) {
	listings, err := c.ScreeningService.All(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"screeningTests": listings})
}

// @Summary 筛查项目详情
// @Tags 筛查
// @Produce json
// @Param testCode path string true "项目代码，如 COLONOSCOPY"
// @Success 200 {object} util.Response{data=service.TestInfo}
// @Failure 404 {object} util.Response "项目不存在"
// @Router /api/screening/test-info/{testCode} [get]
func (c *ScreeningController) GetTestInfo(ctx *gin.Context) {
	info, err := c.ScreeningService.TestInfo(ctx.Request.Context(), ctx.Param("testCode"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, info)
}

// @Summary 项目的机构套餐
// @Description 登录且已作答的用户会得到适合人群标签和推荐套餐
// @Tags 筛查
// @Produce json
// @Param testCode path string true "项目代码"
// @Success 200 {object} util.Response{data=service.TestProviders}
// @Failure 404 {object} util.Response "项目不存在"
// @Router /api/screening/test-providers/{testCode} [get]
func (c *ScreeningController) GetTestProviders(ctx *gin.Context) {
	var userID uint
	if user := util.GetUserFromContext(ctx); user != nil {
		userID = user.UserID
	}

	res, err := c.ScreeningService.TestProviders(ctx.Request.Context(), userID, ctx.Param("testCode"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
