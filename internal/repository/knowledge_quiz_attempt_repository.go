package repository

import (
	"context"
	"risk_screening_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type KnowledgeQuizAttemptRepository struct {
	DB *gorm.DB
}

func NewKnowledgeQuizAttemptRepository(db *gorm.DB) *KnowledgeQuizAttemptRepository {
	return &KnowledgeQuizAttemptRepository{DB: db}
}

func (r *KnowledgeQuizAttemptRepository) Create(ctx context.Context, attempt *model.KnowledgeQuizAttempt) error {
	return r.DB.WithContext(ctx).Create(attempt).Error
}

func (r *KnowledgeQuizAttemptRepository) FindByID(ctx context.Context, id string) (*model.KnowledgeQuizAttempt, error) {
	var attempt model.KnowledgeQuizAttempt
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// LinkUser 注册后把游客作答关联到账号
func (r *KnowledgeQuizAttemptRepository) LinkUser(ctx context.Context, id string, userID uint, at time.Time) error {
	res := r.DB.WithContext(ctx).
		Model(&model.KnowledgeQuizAttempt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"user_id":       userID,
			"has_signed_up": true,
			"sign_up_date":  at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForAnalytics 统计用，只取分数、等级、注册标记和时间；from/to 为空表示不限
func (r *KnowledgeQuizAttemptRepository) ListForAnalytics(ctx context.Context, quizID string, from, to *time.Time) ([]model.KnowledgeQuizAttempt, error) {
	query := r.DB.WithContext(ctx).
		Select("id", "score", "knowledge_level", "has_signed_up", "created_at").
		Where("quiz_id = ?", quizID)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}

	var attempts []model.KnowledgeQuizAttempt
	err := query.Order("created_at ASC").Find(&attempts).Error
	return attempts, err
}
