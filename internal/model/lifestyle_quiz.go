package model

import (
	"time"

	"risk_screening_backend/internal/risk"

	"gorm.io/datatypes"
)

// LifestyleQuiz 问卷的一个版本，写入后不再修改；新版本使用新的 ID
// swagger:model LifestyleQuiz
type LifestyleQuiz struct {
	ID          string                                 `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title       string                                 `gorm:"size:200;not null" json:"title"`
	Description string                                 `gorm:"type:text" json:"description"`
	Version     int                                    `gorm:"not null;index" json:"version"`
	IsActive    bool                                   `gorm:"default:true;index" json:"isActive"`
	Questions   datatypes.JSONSlice[risk.Question]     `gorm:"type:json;not null" json:"questions"`
	Scoring     datatypes.JSONType[risk.ScoringConfig] `gorm:"type:json;not null" json:"scoring"`
	CreatedAt   time.Time                              `json:"createdAt"`
	UpdatedAt   time.Time                              `json:"updatedAt"`
}

func (LifestyleQuiz) TableName() string {
	return "lifestyle_quizzes"
}

// Definition 校验并转换为计分用的问卷定义
func (q *LifestyleQuiz) Definition() (*risk.Definition, error) {
	questions := make([]risk.Question, len(q.Questions))
	copy(questions, q.Questions)
	return risk.NewDefinition(q.ID, q.Title, q.Description, q.Version, questions, q.Scoring.Data())
}

func NewLifestyleQuiz(def *risk.Definition) *LifestyleQuiz {
	return &LifestyleQuiz{
		ID:          def.ID,
		Title:       def.Title,
		Description: def.Description,
		Version:     def.Version,
		IsActive:    true,
		Questions:   datatypes.NewJSONSlice(def.Questions),
		Scoring:     datatypes.NewJSONType(def.Scoring),
	}
}
