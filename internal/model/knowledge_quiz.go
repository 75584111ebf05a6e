package model

import (
	"time"

	"risk_screening_backend/internal/knowledge"

	"gorm.io/datatypes"
)

// KnowledgeQuiz 癌症知识测验题库，同一时间只有一个启用
// swagger:model KnowledgeQuiz
type KnowledgeQuiz struct {
	ID        string                                  `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title     string                                  `gorm:"size:200;not null" json:"title"`
	Version   int                                     `gorm:"not null;default:1" json:"version"`
	IsActive  bool                                    `gorm:"default:true;index" json:"isActive"`
	Questions datatypes.JSONSlice[knowledge.Question] `gorm:"type:json;not null" json:"questions"`
	CreatedBy string                                  `gorm:"size:100" json:"createdBy"`
	CreatedAt time.Time                               `json:"createdAt"`
	UpdatedAt time.Time                               `json:"updatedAt"`
}

func (KnowledgeQuiz) TableName() string {
	return "knowledge_quizzes"
}

func NewKnowledgeQuiz(q *knowledge.Quiz, createdBy string) *KnowledgeQuiz {
	return &KnowledgeQuiz{
		ID:        q.ID,
		Title:     q.Title,
		Version:   q.Version,
		IsActive:  true,
		Questions: datatypes.NewJSONSlice(q.Questions),
		CreatedBy: createdBy,
	}
}

func (q *KnowledgeQuiz) Quiz() *knowledge.Quiz {
	questions := make([]knowledge.Question, len(q.Questions))
	copy(questions, q.Questions)
	return &knowledge.Quiz{ID: q.ID, Title: q.Title, Version: q.Version, Questions: questions}
}
