package repository

import (
	"context"
	"risk_screening_backend/internal/model"

	"gorm.io/gorm"
)

type ScreeningRepository struct {
	DB *gorm.DB
}

func NewScreeningRepository(db *gorm.DB) *ScreeningRepository {
	return &ScreeningRepository{DB: db}
}

func (r *ScreeningRepository) FindActiveTestByCode(ctx context.Context, code string) (*model.ScreeningTest, error) {
	var test model.ScreeningTest
	err := r.DB.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&test).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *ScreeningRepository) ListActiveTests(ctx context.Context) ([]model.ScreeningTest, error) {
	var tests []model.ScreeningTest
	err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&tests).Error
	return tests, err
}

func (r *ScreeningRepository) FindActiveTestsByCodes(ctx context.Context, codes []string) ([]model.ScreeningTest, error) {
	var tests []model.ScreeningTest
	if len(codes) == 0 {
		return tests, nil
	}
	err := r.DB.WithContext(ctx).
		Where("code IN ? AND is_active = ?", codes, true).
		Find(&tests).Error
	return tests, err
}

// ListActivePackagesByTestCode 按 priority 降序，同优先级按创建顺序
func (r *ScreeningRepository) ListActivePackagesByTestCode(ctx context.Context, code string) ([]model.ProviderTestPackage, error) {
	var packages []model.ProviderTestPackage
	err := r.DB.WithContext(ctx).
		Joins("JOIN screening_tests ON screening_tests.id = provider_test_packages.test_id").
		Where("screening_tests.code = ? AND screening_tests.is_active = ? AND provider_test_packages.is_active = ?", code, true, true).
		Preload("Provider").
		Order("provider_test_packages.priority DESC, provider_test_packages.id ASC").
		Find(&packages).Error
	return packages, err
}

// AvailableTestCodes 启用且至少有一个有效套餐的项目代码
func (r *ScreeningRepository) AvailableTestCodes(ctx context.Context) ([]string, error) {
	var codes []string
	err := r.DB.WithContext(ctx).
		Model(&model.ScreeningTest{}).
		Distinct("screening_tests.code").
		Joins("JOIN provider_test_packages ON provider_test_packages.test_id = screening_tests.id").
		Where("screening_tests.is_active = ? AND provider_test_packages.is_active = ? AND provider_test_packages.deleted_at IS NULL", true, true).
		Pluck("screening_tests.code", &codes).Error
	return codes, err
}
