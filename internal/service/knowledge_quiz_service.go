package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"risk_screening_backend/internal/knowledge"
	"risk_screening_backend/internal/model"
	"risk_screening_backend/internal/util"
	"risk_screening_backend/pkg/logger"
	"risk_screening_backend/pkg/monitoring"
	"risk_screening_backend/pkg/tracing"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultQuizAuthor = "Admin"

type KnowledgeQuizService struct {
	QuizRepo    KnowledgeQuizStore
	AttemptRepo KnowledgeAttemptStore
	SampleSize  int
	// Shuffle 抽题用，测试中可替换为固定顺序
	Shuffle func(n int, swap func(i, j int))
	Now     func() time.Time
}

func NewKnowledgeQuizService(quizRepo KnowledgeQuizStore, attemptRepo KnowledgeAttemptStore) *KnowledgeQuizService {
	return &KnowledgeQuizService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
		SampleSize:  util.KnowledgeQuizSampleSize,
		Shuffle:     rand.Shuffle,
		Now:         time.Now,
	}
}

type PublicKnowledgeQuestion struct {
	ID      string         `json:"id"`
	Text    string         `json:"text"`
	Options []PublicOption `json:"options"`
}

// PublicKnowledgeQuiz 不含正确答案和分值
type PublicKnowledgeQuiz struct {
	ID        string                    `json:"id"`
	Title     string                    `json:"title"`
	Version   int                       `json:"version"`
	Questions []PublicKnowledgeQuestion `json:"questions"`
}

// ClientInfo 作答来源，用于统计
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

type KnowledgeSubmitResult struct {
	AttemptID string            `json:"attemptId"`
	Results   *knowledge.Result `json:"results"`
}

type LinkResult struct {
	AttemptID      string          `json:"attemptId"`
	Score          int             `json:"score"`
	KnowledgeLevel knowledge.Level `json:"knowledgeLevel"`
}

// ActiveQuiz 从启用的题库中随机抽题
func (s *KnowledgeQuizService) ActiveQuiz(ctx context.Context) (*PublicKnowledgeQuiz, error) {
	quiz, err := s.QuizRepo.FindActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	picked := knowledge.Sample(quiz.Questions, s.SampleSize, s.Shuffle)
	out := &PublicKnowledgeQuiz{
		ID:        quiz.ID,
		Title:     quiz.Title,
		Version:   quiz.Version,
		Questions: make([]PublicKnowledgeQuestion, len(picked)),
	}
	for i, q := range picked {
		pq := PublicKnowledgeQuestion{ID: q.ID, Text: q.Text, Options: make([]PublicOption, len(q.Options))}
		for j, o := range q.Options {
			pq.Options[j] = PublicOption{ID: o.ID, Text: o.Text}
		}
		out.Questions[i] = pq
	}
	return out, nil
}

// Submit 计分并保存作答；userID 为 0 表示游客
func (s *KnowledgeQuizService) Submit(ctx context.Context, userID uint, quizID string, answers []knowledge.Answer, client ClientInfo) (res *KnowledgeSubmitResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "KnowledgeQuizService.Submit",
		attribute.String("quiz.id", quizID),
		attribute.Bool("anonymous", userID == 0),
	)
	defer func() { tracing.EndSpan(span, err) }()

	quiz, err := s.QuizRepo.FindByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	result := knowledge.Score(quiz.Quiz(), answers)

	attempt := &model.KnowledgeQuizAttempt{
		QuizID:         quiz.ID,
		Answers:        datatypes.NewJSONSlice(answers),
		Score:          result.Score,
		CorrectAnswers: result.CorrectAnswers,
		KnowledgeLevel: result.KnowledgeLevel,
		IPAddress:      client.IPAddress,
		UserAgent:      client.UserAgent,
	}
	if attempt.UserAgent == "" {
		attempt.UserAgent = "Unknown"
	}
	if userID != 0 {
		attempt.UserID = &userID
	}
	if err := s.AttemptRepo.Create(ctx, attempt); err != nil {
		return nil, err
	}

	monitoring.KnowledgeSubmissions.WithLabelValues(string(result.KnowledgeLevel), strconv.FormatBool(userID == 0)).Inc()
	logger.Log.Debug("Knowledge quiz scored",
		zap.String("quizId", quiz.ID),
		zap.String("attemptId", attempt.ID),
		zap.Uint("userId", userID),
		zap.Int("score", result.Score),
		zap.String("knowledgeLevel", string(result.KnowledgeLevel)),
	)

	return &KnowledgeSubmitResult{AttemptID: attempt.ID, Results: result}, nil
}

// LinkAttempt 注册后认领游客作答；已属于其他用户的作答不能再认领
func (s *KnowledgeQuizService) LinkAttempt(ctx context.Context, userID uint, attemptID string) (*LinkResult, error) {
	attempt, err := s.AttemptRepo.FindByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.UserID != nil && *attempt.UserID != userID {
		return nil, util.ErrAttemptLinked
	}

	if err := s.AttemptRepo.LinkUser(ctx, attempt.ID, userID, s.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	logger.Log.Info("Knowledge quiz attempt linked", zap.String("attemptId", attempt.ID), zap.Uint("userId", userID))

	return &LinkResult{
		AttemptID:      attempt.ID,
		Score:          attempt.Score,
		KnowledgeLevel: attempt.KnowledgeLevel,
	}, nil
}

// Analytics 统计某个题库在时间范围内的作答，from/to 为空表示不限
func (s *KnowledgeQuizService) Analytics(ctx context.Context, quizID string, from, to *time.Time) (*knowledge.Analytics, error) {
	if _, err := s.QuizRepo.FindByID(ctx, quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	attempts, err := s.AttemptRepo.ListForAnalytics(ctx, quizID, from, to)
	if err != nil {
		return nil, err
	}
	stats := make([]knowledge.AttemptStat, len(attempts))
	for i := range attempts {
		stats[i] = attempts[i].Stat()
	}
	return knowledge.Analyze(stats), nil
}

// CreateQuiz 发布新题库并停用旧题库
func (s *KnowledgeQuizService) CreateQuiz(ctx context.Context, quiz *knowledge.Quiz, createdBy string) (*model.KnowledgeQuiz, error) {
	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.QuizRepo.FindByID(ctx, quiz.ID); err == nil {
		return nil, fmt.Errorf("%w: %s", util.ErrQuizExists, quiz.ID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if createdBy == "" {
		createdBy = defaultQuizAuthor
	}
	row := model.NewKnowledgeQuiz(quiz, createdBy)
	if err := s.QuizRepo.CreateActive(ctx, row); err != nil {
		return nil, err
	}
	logger.Log.Info("Knowledge quiz published",
		zap.String("quizId", row.ID),
		zap.Int("questions", len(row.Questions)),
		zap.String("createdBy", createdBy),
	)
	return row, nil
}
