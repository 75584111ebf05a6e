package repository

import (
	"context"
	"risk_screening_backend/internal/model"

	"gorm.io/gorm"
)

type KnowledgeQuizRepository struct {
	DB *gorm.DB
}

func NewKnowledgeQuizRepository(db *gorm.DB) *KnowledgeQuizRepository {
	return &KnowledgeQuizRepository{DB: db}
}

func (r *KnowledgeQuizRepository) FindByID(ctx context.Context, id string) (*model.KnowledgeQuiz, error) {
	var quiz model.KnowledgeQuiz
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

// FindActive 启用的题库中最新创建的一个
func (r *KnowledgeQuizRepository) FindActive(ctx context.Context) (*model.KnowledgeQuiz, error) {
	var quiz model.KnowledgeQuiz
	err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// CreateActive 停用其他题库并写入新题库，两步在同一事务内
func (r *KnowledgeQuizRepository) CreateActive(ctx context.Context, quiz *model.KnowledgeQuiz) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.KnowledgeQuiz{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		quiz.IsActive = true
		return tx.Create(quiz).Error
	})
}
