package service

import (
	"context"
	"errors"
	"risk_screening_backend/internal/risk"
	"risk_screening_backend/internal/util"
	"risk_screening_backend/pkg/logger"
	"risk_screening_backend/pkg/tracing"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	NoQuizDataMessage = "Complete your lifestyle assessment to see your personalized risk data"
	unknownValue      = "Unknown"
)

type UIText struct {
	Title              string `json:"title"`
	RiskBreakdownTitle string `json:"riskBreakdownTitle"`
	PrimaryButton      string `json:"primaryButton"`
	SecondaryButton    string `json:"secondaryButton"`
	UrgencyMessage     string `json:"urgencyMessage,omitempty"`
}

var DashboardText = UIText{
	Title:              "MY CANCER RISK",
	RiskBreakdownTitle: "Risk Breakdown:",
	PrimaryButton:      "Try Risk Simulator",
	SecondaryButton:    "Book Screening",
}

type RiskColors struct {
	Primary string `json:"primary"`
	Light   string `json:"light"`
	Border  string `json:"border"`
	Hover   string `json:"hover"`
}

type ColorPalette struct {
	HighRisk     RiskColors `json:"highRisk"`
	ModerateRisk RiskColors `json:"moderateRisk"`
	LowRisk      RiskColors `json:"lowRisk"`
}

var Palette = ColorPalette{
	LowRisk:      RiskColors{Primary: "#059669", Light: "#ECFDF5", Border: "#A7F3D0", Hover: "#047857"},
	ModerateRisk: RiskColors{Primary: "#D97706", Light: "#FFF7ED", Border: "#FED7AA", Hover: "#B45309"},
	HighRisk:     RiskColors{Primary: "#DC2626", Light: "#FEF2F2", Border: "#FECACA", Hover: "#B91C1C"},
}

// UrgencyMessage 未知等级按高风险处理
func UrgencyMessage(riskLevel string) string {
	switch riskLevel {
	case "LOW_RISK":
		return "Maintain healthy habits and do regular screening."
	case "MODERATE_RISK":
		return "Clean up a few habits and keep screening; early catch is half the battle."
	default:
		return "Book a screening ASAP. Early catch means easier treatment."
	}
}

type DashboardProfile struct {
	Name   string `json:"name"`
	Age    string `json:"age"`
	Gender string `json:"gender"`
}

type RiskScore struct {
	Current    int    `json:"current"`
	Maximum    int    `json:"maximum"`
	Level      string `json:"level"`
	Percentage int    `json:"percentage"`
}

type DashboardData struct {
	HasQuizData          bool              `json:"hasQuizData"`
	UserProfile          *DashboardProfile `json:"userProfile,omitempty"`
	RiskScore            *RiskScore        `json:"riskScore,omitempty"`
	RiskBreakdown        []risk.RiskFactor `json:"riskBreakdown,omitempty"`
	ModifiableFactors    []risk.RiskFactor `json:"modifiableFactors,omitempty"`
	NonModifiableFactors []risk.RiskFactor `json:"nonModifiableFactors,omitempty"`
	Colors               *ColorPalette     `json:"colors,omitempty"`
	UIText               UIText            `json:"uiText"`
	LastUpdated          *time.Time        `json:"lastUpdated,omitempty"`
}

type DashboardService struct {
	QuizRepo    QuizStore
	AttemptRepo AttemptStore
	UserRepo    UserStore
}

func NewDashboardService(quizRepo QuizStore, attemptRepo AttemptStore, userRepo UserStore) *DashboardService {
	return &DashboardService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
		UserRepo:    userRepo,
	}
}

// RiskData 看板数据；没有作答记录时 HasQuizData 为 false，只返回界面文案
func (s *DashboardService) RiskData(ctx context.Context, userID uint) (data *DashboardData, err error) {
	ctx, span := tracing.StartSpan(ctx, "DashboardService.RiskData", attribute.Int64("user.id", int64(userID)))
	defer func() { tracing.EndSpan(span, err) }()

	a, err := latestAssessment(ctx, s.QuizRepo, s.AttemptRepo, userID)
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			return &DashboardData{HasQuizData: false, UIText: DashboardText}, nil
		}
		return nil, err
	}

	profile := a.Profile()
	breakdown := risk.BuildBreakdown(a.Definition, a.Attempt.Answers)

	dp := &DashboardProfile{Age: unknownValue, Gender: unknownValue}
	if user, err := s.UserRepo.FindByID(ctx, userID); err == nil {
		dp.Name = user.Name
	} else {
		logger.Log.Warn("Dashboard user lookup failed", zap.Uint("userId", userID), zap.Error(err))
	}
	if profile.AgeGroup != nil {
		dp.Age = *profile.AgeGroup
	}
	if profile.Gender != nil {
		dp.Gender = *profile.Gender
	}

	text := DashboardText
	text.UrgencyMessage = UrgencyMessage(a.Attempt.RiskLevel)
	palette := Palette
	updated := a.Attempt.CreatedAt

	logger.Log.Debug("Dashboard risk data built",
		zap.Uint("userId", userID),
		zap.String("attemptId", a.Attempt.ID),
		zap.Int("contributing", len(breakdown.Contributing)),
	)

	return &DashboardData{
		HasQuizData: true,
		UserProfile: dp,
		RiskScore: &RiskScore{
			Current:    a.Attempt.TotalScore,
			Maximum:    a.Attempt.MaxPossibleScore,
			Level:      strings.ToUpper(a.Attempt.RiskData.Data().Label),
			Percentage: a.Attempt.PercentageScore,
		},
		RiskBreakdown:        breakdown.Contributing,
		ModifiableFactors:    breakdown.Modifiable,
		NonModifiableFactors: breakdown.NonModifiable,
		Colors:               &palette,
		UIText:               text,
		LastUpdated:          &updated,
	}, nil
}

// Simulate 用假设的可改变因素选项重新计分，不保存
func (s *DashboardService) Simulate(ctx context.Context, userID uint, changes map[string]string) (sim *risk.Simulation, err error) {
	ctx, span := tracing.StartSpan(ctx, "DashboardService.Simulate", attribute.Int("changes", len(changes)))
	defer func() { tracing.EndSpan(span, err) }()

	a, err := latestAssessment(ctx, s.QuizRepo, s.AttemptRepo, userID)
	if err != nil {
		return nil, err
	}
	return risk.Simulate(a.Definition, a.Answers, changes)
}
