package database

import (
	"context"
	"fmt"
	"risk_screening_backend/internal/model"
	"risk_screening_backend/internal/seed"
	"risk_screening_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seed 表为空时写入默认问卷和机构/项目/套餐；force 时先清空参考数据再写入。
// 已有的问卷版本不会被覆盖。
func Seed(ctx context.Context, db *gorm.DB, force bool) error {
	if err := seedQuiz(ctx, db); err != nil {
		return fmt.Errorf("seed quiz: %w", err)
	}
	if err := seedKnowledgeQuiz(ctx, db); err != nil {
		return fmt.Errorf("seed knowledge quiz: %w", err)
	}
	if err := seedProviders(ctx, db, force); err != nil {
		return fmt.Errorf("seed providers: %w", err)
	}
	return nil
}

func seedQuiz(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.LifestyleQuiz{}).Where("id = ?", seed.LifestyleQuizID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	def, err := seed.LifestyleQuiz()
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(model.NewLifestyleQuiz(def)).Error; err != nil {
		return err
	}
	logger.Log.Info("Seeded lifestyle quiz",
		zap.String("quizId", def.ID),
		zap.Int("questions", len(def.Questions)),
		zap.Int("maxTotalPoints", def.Scoring.MaxTotalPoints),
	)
	return nil
}

// seedKnowledgeQuiz 没有任何知识题库时写入默认题库
func seedKnowledgeQuiz(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.KnowledgeQuiz{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	quiz := seed.KnowledgeQuiz()
	if err := quiz.Validate(); err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(model.NewKnowledgeQuiz(quiz, "SCS Admin")).Error; err != nil {
		return err
	}
	logger.Log.Info("Seeded knowledge quiz",
		zap.String("quizId", quiz.ID),
		zap.Int("questions", len(quiz.Questions)),
	)
	return nil
}

func seedProviders(ctx context.Context, db *gorm.DB, force bool) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !force {
			var count int64
			if err := tx.Model(&model.ScreeningTest{}).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return nil
			}
		} else {
			// 清空参考数据，套餐先删以满足外键
			for _, m := range []interface{}{&model.ProviderTestPackage{}, &model.HealthcareProvider{}, &model.ScreeningTest{}} {
				if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error; err != nil {
					return err
				}
			}
		}

		providerIDs := make(map[string]uint, len(seed.Providers))
		for _, p := range seed.Providers {
			row := &model.HealthcareProvider{
				Code:        p.Code,
				Name:        p.Name,
				Description: p.Description,
				Website:     p.Website,
				Phone:       p.Phone,
				Email:       p.Email,
				Address:     p.Address,
				IsActive:    true,
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
			providerIDs[p.Code] = row.ID
		}

		testIDs := make(map[string]uint, len(seed.Tests))
		for _, t := range seed.Tests {
			row := &model.ScreeningTest{
				Code:        t.Code,
				Name:        t.Name,
				Category:    t.Category,
				Description: t.Description,
				Preparation: t.Preparation,
				Duration:    t.Duration,
				Frequency:   t.Frequency,
				IsActive:    true,
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
			testIDs[t.Code] = row.ID
		}

		for _, p := range seed.Packages {
			providerID, ok := providerIDs[p.ProviderCode]
			if !ok {
				return fmt.Errorf("package %q references unknown provider %q", p.Name, p.ProviderCode)
			}
			testID, ok := testIDs[p.TestCode]
			if !ok {
				return fmt.Errorf("package %q references unknown test %q", p.Name, p.TestCode)
			}
			row := &model.ProviderTestPackage{
				ProviderID:      providerID,
				TestID:          testID,
				PackageName:     p.Name,
				PackageURL:      p.URL,
				Price:           datatypes.NewJSONType(p.Price),
				Availability:    datatypes.NewJSONType(p.Availability),
				Specializations: p.Specializations,
				Priority:        p.Priority,
				IsActive:        true,
				AdditionalInfo:  datatypes.NewJSONType(p.AdditionalInfo),
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}

		logger.Log.Info("Seeded screening reference data",
			zap.Int("providers", len(seed.Providers)),
			zap.Int("tests", len(seed.Tests)),
			zap.Int("packages", len(seed.Packages)),
		)
		return nil
	})
}
