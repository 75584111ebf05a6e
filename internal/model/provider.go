package model

import "risk_screening_backend/internal/risk"

// swagger:model HealthcareProvider
type HealthcareProvider struct {
	BaseModel
	Code        string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
	Website     string `gorm:"size:255;not null" json:"website"`
	Phone       string `gorm:"size:50" json:"phone"`
	Email       string `gorm:"size:100" json:"email"`
	Address     string `gorm:"size:255" json:"address"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}

func (HealthcareProvider) TableName() string {
	return "healthcare_providers"
}

func (p *HealthcareProvider) Info() risk.ProviderInfo {
	return risk.ProviderInfo{
		Code:    p.Code,
		Name:    p.Name,
		Website: p.Website,
		Phone:   p.Phone,
		Email:   p.Email,
	}
}
