package service

import (
	"context"
	"errors"
	"risk_screening_backend/internal/model"
	"risk_screening_backend/internal/risk"
	"risk_screening_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// 以下接口由 repository 包实现，测试中使用内存实现替换

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error
}

type QuizStore interface {
	Create(ctx context.Context, quiz *model.LifestyleQuiz) error
	FindByID(ctx context.Context, id string) (*model.LifestyleQuiz, error)
	FindLatestActive(ctx context.Context) (*model.LifestyleQuiz, error)
}

type AttemptStore interface {
	Create(ctx context.Context, attempt *model.LifestyleQuizAttempt) error
	FindLatestByUser(ctx context.Context, userID uint) (*model.LifestyleQuizAttempt, error)
	ListByUser(ctx context.Context, userID uint, limit int) ([]model.LifestyleQuizAttempt, error)
}

type ScreeningStore interface {
	FindActiveTestByCode(ctx context.Context, code string) (*model.ScreeningTest, error)
	ListActiveTests(ctx context.Context) ([]model.ScreeningTest, error)
	FindActiveTestsByCodes(ctx context.Context, codes []string) ([]model.ScreeningTest, error)
	ListActivePackagesByTestCode(ctx context.Context, code string) ([]model.ProviderTestPackage, error)
	AvailableTestCodes(ctx context.Context) ([]string, error)
}

type KnowledgeQuizStore interface {
	FindByID(ctx context.Context, id string) (*model.KnowledgeQuiz, error)
	FindActive(ctx context.Context) (*model.KnowledgeQuiz, error)
	CreateActive(ctx context.Context, quiz *model.KnowledgeQuiz) error
}

type KnowledgeAttemptStore interface {
	Create(ctx context.Context, attempt *model.KnowledgeQuizAttempt) error
	FindByID(ctx context.Context, id string) (*model.KnowledgeQuizAttempt, error)
	LinkUser(ctx context.Context, id string, userID uint, at time.Time) error
	ListForAnalytics(ctx context.Context, quizID string, from, to *time.Time) ([]model.KnowledgeQuizAttempt, error)
}

// Assessment 用户最近一次作答以及作答时使用的问卷版本
type Assessment struct {
	Attempt    *model.LifestyleQuizAttempt
	Definition *risk.Definition
	Answers    []risk.Answer
}

// Profile 从作答中提取画像
func (a *Assessment) Profile() *risk.UserProfile {
	return risk.ExtractProfile(a.Definition, a.Answers)
}

// latestAssessment 读取最近一次作答；没有作答时返回 util.ErrAttemptNotFound
func latestAssessment(ctx context.Context, quizzes QuizStore, attempts AttemptStore, userID uint) (*Assessment, error) {
	attempt, err := attempts.FindLatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}

	quiz, err := quizzes.FindByID(ctx, attempt.QuizID)
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

	return &Assessment{
		Attempt:    attempt,
		Definition: def,
		Answers:    attempt.RawAnswers(),
	}, nil
}
