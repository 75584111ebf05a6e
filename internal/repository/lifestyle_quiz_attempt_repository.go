package repository

import (
	"context"
	"risk_screening_backend/internal/model"

	"gorm.io/gorm"
)

type LifestyleQuizAttemptRepository struct {
	DB *gorm.DB
}

func NewLifestyleQuizAttemptRepository(db *gorm.DB) *LifestyleQuizAttemptRepository {
	return &LifestyleQuizAttemptRepository{DB: db}
}

func (r *LifestyleQuizAttemptRepository) Create(ctx context.Context, attempt *model.LifestyleQuizAttempt) error {
	return r.DB.WithContext(ctx).Create(attempt).Error
}

// FindLatestByUser 按创建时间取最新一次提交
func (r *LifestyleQuizAttemptRepository) FindLatestByUser(ctx context.Context, userID uint) (*model.LifestyleQuizAttempt, error) {
	var attempt model.LifestyleQuizAttempt
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// ListByUser 历史列表不返回答案明细
func (r *LifestyleQuizAttemptRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]model.LifestyleQuizAttempt, error) {
	var attempts []model.LifestyleQuizAttempt
	err := r.DB.WithContext(ctx).
		Omit("answers").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}
