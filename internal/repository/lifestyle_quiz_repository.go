package repository

import (
	"context"
	"encoding/json"
	"risk_screening_backend/internal/model"
	"risk_screening_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	quizCacheKeyPrefix = "quiz:def:"
	quizLatestKey      = "quiz:latest"
	// 问卷版本不可变，定义缓存只需要一个较长的过期时间用于回收
	quizDefTTL = 24 * time.Hour
)

// LifestyleQuizRepository 问卷读取走 Redis 缓存，Redis 不可用时直接查库
type LifestyleQuizRepository struct {
	DB        *gorm.DB
	Redis     *redis.Client
	LatestTTL time.Duration
}

func NewLifestyleQuizRepository(db *gorm.DB, rdb *redis.Client, latestTTL time.Duration) *LifestyleQuizRepository {
	return &LifestyleQuizRepository{
		DB:        db,
		Redis:     rdb,
		LatestTTL: latestTTL,
	}
}

func (r *LifestyleQuizRepository) Create(ctx context.Context, quiz *model.LifestyleQuiz) error {
	if err := r.DB.WithContext(ctx).Create(quiz).Error; err != nil {
		return err
	}
	if r.Redis != nil {
		if err := r.Redis.Del(ctx, quizLatestKey).Err(); err != nil {
			logger.Log.Warn("Failed to invalidate latest quiz cache", zap.Error(err))
		}
	}
	return nil
}

func (r *LifestyleQuizRepository) FindByID(ctx context.Context, id string) (*model.LifestyleQuiz, error) {
	if quiz, ok := r.cachedQuiz(ctx, id); ok {
		return quiz, nil
	}

	var quiz model.LifestyleQuiz
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&quiz).Error; err != nil {
		return nil, err
	}
	r.cacheQuiz(ctx, &quiz)
	return &quiz, nil
}

// FindLatestActive 返回版本号最高的启用问卷
func (r *LifestyleQuizRepository) FindLatestActive(ctx context.Context) (*model.LifestyleQuiz, error) {
	if r.Redis != nil {
		id, err := r.Redis.Get(ctx, quizLatestKey).Result()
		if err == nil && id != "" {
			return r.FindByID(ctx, id)
		}
		if err != nil && err != redis.Nil {
			logger.Log.Warn("Redis get latest quiz failed", zap.Error(err))
		}
	}

	var quiz model.LifestyleQuiz
	err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("version DESC, created_at DESC").
		First(&quiz).Error
	if err != nil {
		return nil, err
	}

	r.cacheQuiz(ctx, &quiz)
	if r.Redis != nil {
		if err := r.Redis.Set(ctx, quizLatestKey, quiz.ID, r.LatestTTL).Err(); err != nil {
			logger.Log.Warn("Redis set latest quiz failed", zap.Error(err))
		}
	}
	return &quiz, nil
}

func (r *LifestyleQuizRepository) cachedQuiz(ctx context.Context, id string) (*model.LifestyleQuiz, bool) {
	if r.Redis == nil {
		return nil, false
	}
	val, err := r.Redis.Get(ctx, quizCacheKeyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("Redis get quiz failed", zap.String("quizId", id), zap.Error(err))
		}
		return nil, false
	}
	var quiz model.LifestyleQuiz
	if err := json.Unmarshal(val, &quiz); err != nil {
		logger.Log.Warn("Cached quiz is corrupt", zap.String("quizId", id), zap.Error(err))
		return nil, false
	}
	return &quiz, true
}

func (r *LifestyleQuizRepository) cacheQuiz(ctx context.Context, quiz *model.LifestyleQuiz) {
	if r.Redis == nil {
		return
	}
	data, err := json.Marshal(quiz)
	if err != nil {
		return
	}
	if err := r.Redis.Set(ctx, quizCacheKeyPrefix+quiz.ID, data, quizDefTTL).Err(); err != nil {
		logger.Log.Warn("Redis set quiz failed", zap.String("quizId", quiz.ID), zap.Error(err))
	}
}
