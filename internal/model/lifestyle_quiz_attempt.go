package model

import (
	"risk_screening_backend/internal/risk"

	"gorm.io/datatypes"
)

// LifestyleQuizAttempt 一次提交的完整计分结果，只追加不修改
// swagger:model LifestyleQuizAttempt
type LifestyleQuizAttempt struct {
	UUIDBase
	UserID            uint                                       `gorm:"not null;index:idx_attempt_user_created,priority:1" json:"userId"`
	QuizID            string                                     `gorm:"type:varchar(64);not null;index" json:"quizId"`
	Answers           datatypes.JSONSlice[risk.ScoredAnswer]     `gorm:"type:json;not null" json:"answers"`
	TotalScore        int                                        `gorm:"not null" json:"totalScore"`
	MaxPossibleScore  int                                        `gorm:"not null" json:"maxPossibleScore"`
	PercentageScore   int                                        `gorm:"not null" json:"percentageScore"`
	RiskLevel         string                                     `gorm:"size:32;not null" json:"riskLevel"`
	RiskData          datatypes.JSONType[risk.RiskBand]          `gorm:"type:json" json:"riskData"`
	CategoryBreakdown datatypes.JSONType[risk.CategoryBreakdown] `gorm:"type:json" json:"categoryBreakdown"`
}

func (LifestyleQuizAttempt) TableName() string {
	return "lifestyle_quiz_attempts"
}

// NewAttempt 将计分结果原样转换为待持久化的记录
func NewAttempt(userID uint, quizID string, res *risk.Result) *LifestyleQuizAttempt {
	return &LifestyleQuizAttempt{
		UserID:            userID,
		QuizID:            quizID,
		Answers:           datatypes.NewJSONSlice(res.ScoredAnswers),
		TotalScore:        res.TotalScore,
		MaxPossibleScore:  res.MaxPossibleScore,
		PercentageScore:   res.PercentageScore,
		RiskLevel:         res.RiskLevel,
		RiskData:          datatypes.NewJSONType(res.RiskData),
		CategoryBreakdown: datatypes.NewJSONType(res.CategoryBreakdown),
	}
}

func (a *LifestyleQuizAttempt) RawAnswers() []risk.Answer {
	return risk.AnswersOf(a.Answers)
}
