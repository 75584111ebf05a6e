package model

import (
	"risk_screening_backend/internal/risk"

	"gorm.io/datatypes"
)

// ProviderTestPackage 同一机构同一项目可以有多个套餐
// swagger:model ProviderTestPackage
type ProviderTestPackage struct {
	BaseModel
	ProviderID      uint                                    `gorm:"not null;index:idx_pkg_provider_test,priority:1" json:"providerId"`
	Provider        HealthcareProvider                      `gorm:"foreignKey:ProviderID" json:"provider"`
	TestID          uint                                    `gorm:"not null;index:idx_pkg_provider_test,priority:2;index:idx_pkg_test_priority,priority:1" json:"testId"`
	Test            ScreeningTest                           `gorm:"foreignKey:TestID" json:"-"`
	PackageName     string                                  `gorm:"size:200;not null" json:"packageName"`
	PackageURL      string                                  `gorm:"size:500;not null" json:"packageUrl"`
	Price           datatypes.JSONType[risk.Price]          `gorm:"type:json" json:"price"`
	Availability    datatypes.JSONType[risk.Availability]   `gorm:"type:json" json:"availability"`
	Specializations risk.Specializations                    `gorm:"embedded;embeddedPrefix:spec_" json:"specializations"`
	Priority        int                                     `gorm:"default:1;index:idx_pkg_test_priority,priority:2,sort:desc" json:"priority"`
	IsActive        bool                                    `gorm:"default:true" json:"isActive"`
	AdditionalInfo  datatypes.JSONType[risk.AdditionalInfo] `gorm:"type:json" json:"additionalInfo"`
}

func (ProviderTestPackage) TableName() string {
	return "provider_test_packages"
}

// ToPackage 需要预加载 Provider
func (p *ProviderTestPackage) ToPackage() risk.Package {
	return risk.Package{
		Name:            p.PackageName,
		URL:             p.PackageURL,
		Provider:        p.Provider.Info(),
		Price:           p.Price.Data(),
		Availability:    p.Availability.Data(),
		Specializations: p.Specializations,
		AdditionalInfo:  p.AdditionalInfo.Data(),
		Priority:        p.Priority,
	}
}
