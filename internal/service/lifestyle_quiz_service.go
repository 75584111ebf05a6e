package service

import (
	"context"
	"errors"
	"fmt"
	"risk_screening_backend/internal/model"
	"risk_screening_backend/internal/risk"
	"risk_screening_backend/internal/util"
	"risk_screening_backend/pkg/logger"
	"risk_screening_backend/pkg/monitoring"
	"risk_screening_backend/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LifestyleQuizService struct {
	QuizRepo    QuizStore
	AttemptRepo AttemptStore
}

func NewLifestyleQuizService(quizRepo QuizStore, attemptRepo AttemptStore) *LifestyleQuizService {
	return &LifestyleQuizService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
	}
}

// PublicOption 返回给答题页的选项，不包含分值
type PublicOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type PublicQuestion struct {
	ID             string          `json:"id"`
	QuestionNumber int             `json:"questionNumber"`
	Text           string          `json:"text"`
	Type           string          `json:"type"`
	SubText        string          `json:"subText,omitempty"`
	Icon           string          `json:"icon,omitempty"`
	IsRequired     bool            `json:"isRequired"`
	Category       risk.Category   `json:"category"`
	FactorType     risk.FactorType `json:"factorType,omitempty"`
	Options        []PublicOption  `json:"options"`
}

type PublicQuiz struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Version     int              `json:"version"`
	Questions   []PublicQuestion `json:"questions"`
}

type CategoryResult struct {
	Score      int `json:"score"`
	MaxScore   int `json:"maxScore"`
	Percentage int `json:"percentage"`
}

type SubmitResults struct {
	TotalScore        int                       `json:"totalScore"`
	MaxPossibleScore  int                       `json:"maxPossibleScore"`
	PercentageScore   int                       `json:"percentageScore"`
	RiskLevel         string                    `json:"riskLevel"`
	RiskLabel         string                    `json:"riskLabel"`
	RiskDescription   string                    `json:"riskDescription"`
	RiskColor         string                    `json:"riskColor"`
	CategoryBreakdown map[string]CategoryResult `json:"categoryBreakdown"`
}

type SubmitResult struct {
	AttemptID string        `json:"attemptId"`
	Results   SubmitResults `json:"results"`
}

// AttemptSummary 历史记录列表项
type AttemptSummary struct {
	ID               string    `json:"id"`
	QuizID           string    `json:"quizId"`
	TotalScore       int       `json:"totalScore"`
	MaxPossibleScore int       `json:"maxPossibleScore"`
	PercentageScore  int       `json:"percentageScore"`
	RiskLevel        string    `json:"riskLevel"`
	RiskLabel        string    `json:"riskLabel"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (s *LifestyleQuizService) ActiveQuiz(ctx context.Context) (*PublicQuiz, error) {
	quiz, err := s.QuizRepo.FindLatestActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	out := &PublicQuiz{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Version:     quiz.Version,
		Questions:   make([]PublicQuestion, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		pq := PublicQuestion{
			ID:             q.ID,
			QuestionNumber: q.QuestionNumber,
			Text:           q.Text,
			Type:           q.Type,
			SubText:        q.SubText,
			Icon:           q.Icon,
			IsRequired:     q.IsRequired,
			Category:       q.Category,
			FactorType:     q.FactorType,
			Options:        make([]PublicOption, len(q.Options)),
		}
		for i, o := range q.Options {
			pq.Options[i] = PublicOption{ID: o.ID, Text: o.Text}
		}
		out.Questions = append(out.Questions, pq)
	}
	return out, nil
}

// Submit 计分并保存一次作答。引用不存在的题目/选项或重复作答时返回 risk 包的错误。
func (s *LifestyleQuizService) Submit(ctx context.Context, userID uint, quizID string, answers []risk.Answer) (res *SubmitResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "LifestyleQuizService.Submit",
		attribute.String("quiz.id", quizID),
		attribute.Int("answers", len(answers)),
	)
	defer func() { tracing.EndSpan(span, err) }()

	quiz, err := s.QuizRepo.FindByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	def, err := quiz.Definition()
	if err != nil {
		return nil, err
	}

	result, err := risk.Score(def, answers)
	if err != nil {
		return nil, err
	}

	attempt := model.NewAttempt(userID, quiz.ID, result)
	if err := s.AttemptRepo.Create(ctx, attempt); err != nil {
		return nil, err
	}

	monitoring.QuizSubmissions.WithLabelValues(result.RiskLevel).Inc()
	monitoring.RiskPercentage.Observe(float64(result.PercentageScore))
	logger.Log.Debug("Lifestyle quiz scored",
		zap.Uint("userId", userID),
		zap.String("quizId", quiz.ID),
		zap.String("attemptId", attempt.ID),
		zap.Int("totalScore", result.TotalScore),
		zap.Int("percentage", result.PercentageScore),
		zap.String("riskLevel", result.RiskLevel),
	)

	return &SubmitResult{
		AttemptID: attempt.ID,
		Results: SubmitResults{
			TotalScore:        result.TotalScore,
			MaxPossibleScore:  result.MaxPossibleScore,
			PercentageScore:   result.PercentageScore,
			RiskLevel:         result.RiskLevel,
			RiskLabel:         result.RiskData.Label,
			RiskDescription:   result.RiskData.Description,
			RiskColor:         result.RiskData.Color,
			CategoryBreakdown: categoryResults(result.CategoryBreakdown),
		},
	}, nil
}

func categoryResults(cb risk.CategoryBreakdown) map[string]CategoryResult {
	out := make(map[string]CategoryResult, 3)
	for name, c := range map[risk.Category]risk.CategoryScore{
		risk.CategoryPrimary:   cb.Primary,
		risk.CategorySecondary: cb.Secondary,
		risk.CategoryTertiary:  cb.Tertiary,
	} {
		out[string(name)] = CategoryResult{
			Score:      c.Score,
			MaxScore:   c.MaxScore,
			Percentage: c.Percentage(),
		}
	}
	return out
}

func (s *LifestyleQuizService) RecentAttempts(ctx context.Context, userID uint) ([]AttemptSummary, error) {
	attempts, err := s.AttemptRepo.ListByUser(ctx, userID, util.RecentAttemptsLimit)
	if err != nil {
		return nil, err
	}

	out := make([]AttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, AttemptSummary{
			ID:               a.ID,
			QuizID:           a.QuizID,
			TotalScore:       a.TotalScore,
			MaxPossibleScore: a.MaxPossibleScore,
			PercentageScore:  a.PercentageScore,
			RiskLevel:        a.RiskLevel,
			RiskLabel:        a.RiskData.Data().Label,
			CreatedAt:        a.CreatedAt,
		})
	}
	return out, nil
}

// CreateQuiz 发布新版本问卷；已存在的 ID 不允许覆盖
func (s *LifestyleQuizService) CreateQuiz(ctx context.Context, def *risk.Definition) (*model.LifestyleQuiz, error) {
	validated, err := risk.NewDefinition(def.ID, def.Title, def.Description, def.Version, def.Questions, def.Scoring)
	if err != nil {
		return nil, err
	}

	if _, err := s.QuizRepo.FindByID(ctx, validated.ID); err == nil {
		return nil, fmt.Errorf("%w: %s", util.ErrQuizExists, validated.ID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	quiz := model.NewLifestyleQuiz(validated)
	if err := s.QuizRepo.Create(ctx, quiz); err != nil {
		return nil, err
	}
	logger.Log.Info("Lifestyle quiz published",
		zap.String("quizId", quiz.ID),
		zap.Int("version", quiz.Version),
		zap.Int("questions", len(quiz.Questions)),
	)
	return quiz, nil
}
