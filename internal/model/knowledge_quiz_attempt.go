package model

import (
	"time"

	"risk_screening_backend/internal/knowledge"

	"gorm.io/datatypes"
)

// KnowledgeQuizAttempt 知识测验作答，游客作答时 UserID 为空，注册后可关联到账号
// swagger:model KnowledgeQuizAttempt
type KnowledgeQuizAttempt struct {
	UUIDBase
	QuizID         string                                `gorm:"type:varchar(64);not null;index:idx_knowledge_attempt_quiz_created,priority:1" json:"quizId"`
	UserID         *uint                                 `gorm:"index" json:"userId"`
	Answers        datatypes.JSONSlice[knowledge.Answer] `gorm:"type:json;not null" json:"answers"`
	Score          int                                   `gorm:"not null" json:"score"`
	CorrectAnswers int                                   `gorm:"not null" json:"correctAnswers"`
	KnowledgeLevel knowledge.Level                       `gorm:"type:varchar(16);not null" json:"knowledgeLevel"`
	IPAddress      string                                `gorm:"size:64;not null" json:"ipAddress"`
	UserAgent      string                                `gorm:"size:512;not null" json:"userAgent"`
	HasSignedUp    bool                                  `gorm:"default:false;index" json:"hasSignedUp"`
	SignUpDate     *time.Time                            `json:"signUpDate"`
}

func (KnowledgeQuizAttempt) TableName() string {
	return "knowledge_quiz_attempts"
}

func (a *KnowledgeQuizAttempt) Stat() knowledge.AttemptStat {
	return knowledge.AttemptStat{
		Score:       a.Score,
		Level:       a.KnowledgeLevel,
		HasSignedUp: a.HasSignedUp,
		CreatedAt:   a.CreatedAt,
	}
}
