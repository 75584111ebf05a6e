package controller

import (
	"risk_screening_backend/internal/service"
	"risk_screening_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// SimulateRequest 题目 ID -> 假设选择的选项 ID
// swagger:model SimulateRequest
type SimulateRequest struct {
	Changes map[string]string `json:"changes" binding:"required,min=1"`
}

// @Summary 获取风险看板数据
// @Description 最近一次作答的风险分数、风险因素拆解和界面文案；未作答时 hasQuizData 为 false
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.DashboardData}
// @Router /api/dashboard/risk-data [get]
func (c *DashboardController) GetRiskData(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	data, err := c.DashboardService.RiskData(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !data.HasQuizData {
		util.SuccessWithMessage(ctx, service.NoQuizDataMessage, data)
		return
	}
	util.Success(ctx, data)
}

// @Summary 风险模拟
// @Description 用假设的可改变因素选项重新计算风险，不保存结果
// @Tags 仪表盘
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SimulateRequest true "假设的选项"
// @Success 200 {object} util.Response{data=risk.Simulation}
// @Failure 400 {object} util.Response "题目不可修改或选项无效"
// @Failure 404 {object} util.Response "尚未作答"
// @Router /api/dashboard/simulate [post]
func (c *DashboardController) Simulate(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SimulateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sim, err := c.DashboardService.Simulate(ctx.Request.Context(), user.UserID, req.Changes)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, sim)
}
