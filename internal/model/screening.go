package model

// swagger:model ScreeningTest
type ScreeningTest struct {
	BaseModel
	Code        string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name        string `gorm:"size:200;not null" json:"name"`
	Category    string `gorm:"type:enum('CANCER_SCREENING','GENERAL_HEALTH','SPECIALIZED');not null" json:"category"`
	Description string `gorm:"type:text;not null" json:"description"`
	Preparation string `gorm:"type:text" json:"preparation"`
	Duration    string `gorm:"size:100" json:"duration"`
	Frequency   string `gorm:"size:255" json:"frequency"`
	IsActive    bool   `gorm:"default:true;index" json:"isActive"`
}

func (ScreeningTest) TableName() string {
	return "screening_tests"
}
