package seed

import (
	"sort"

	"risk_screening_backend/internal/risk"
)

type Provider struct {
	Code        string
	Name        string
	Description string
	Website     string
	Phone       string
	Email       string
	Address     string
}

type Test struct {
	Code        string
	Name        string
	Category    string
	Description string
	Preparation string
	Duration    string
	Frequency   string
}

// Package 以机构代码和项目代码引用，写库时再解析为外键
type Package struct {
	ProviderCode    string
	TestCode        string
	Name            string
	URL             string
	Price           risk.Price
	Availability    risk.Availability
	Specializations risk.Specializations
	Priority        int
	AdditionalInfo  risk.AdditionalInfo
}

const (
	TestCategoryCancer  = "CANCER_SCREENING"
	TestCategoryGeneral = "GENERAL_HEALTH"
	TestCategorySpecial = "SPECIALIZED"
)

func sgd(amount, subsidized float64, eligibility string) risk.Price {
	return risk.Price{
		Amount:   &amount,
		Currency: "SGD",
		Subsidized: &risk.Subsidy{
			Amount:      &subsidized,
			Eligibility: eligibility,
		},
	}
}

var Providers = []Provider{
	{
		Code:        "NCCS",
		Name:        "National Cancer Centre Singapore",
		Description: "Leading cancer treatment and screening centre in Singapore",
		Website:     "https://www.nccs.com.sg",
		Phone:       "+65 6436 8000",
		Email:       "enquiry@nccs.com.sg",
		Address:     "11 Hospital Crescent, Singapore 169610",
	},
	{
		Code:        "SCS",
		Name:        "Singapore Cancer Society",
		Description: "Non-profit organization providing cancer screening and support services",
		Website:     "https://www.singaporecancersociety.org.sg",
		Phone:       "+65 6221 9578",
		Email:       "info@singaporecancersociety.org.sg",
		Address:     "15 Enggor Street, #04-01, Realty Centre, Singapore 079716",
	},
	{
		Code:        "HEALTHHUB",
		Name:        "HealthHub",
		Description: "Government health screening and wellness platform",
		Website:     "https://www.healthhub.sg",
		Phone:       "+65 1800 223 1313",
		Email:       "info@healthhub.sg",
		Address:     "Multiple locations across Singapore",
	},
	{
		Code:        "POLYCLINIC",
		Name:        "Polyclinic",
		Description: "Primary healthcare clinics under SingHealth and NHG",
		Website:     "https://www.singhealth.com.sg/polyclinics",
		Phone:       "+65 6643 6969",
		Email:       "feedback@polyclinic.sg",
		Address:     "Multiple locations across Singapore",
	},
	{
		Code:        "GP",
		Name:        "General Practitioner",
		Description: "Private family medicine clinics",
		Website:     "https://www.healthhub.sg/directory",
		Phone:       "Varies by clinic",
		Email:       "Varies by clinic",
		Address:     "Island-wide locations",
	},
}

var Tests = []Test{
	{
		Code:        risk.TestColonoscopy,
		Name:        "Colonoscopy",
		Category:    TestCategoryCancer,
		Description: "A procedure to examine the inside of the colon and rectum using a flexible tube with a camera",
		Preparation: "Bowel preparation required 1-2 days before procedure. Follow specific dietary restrictions.",
		Duration:    "30-60 minutes",
		Frequency:   "Every 10 years for average risk, more frequent for high risk patients",
	},
	{
		Code:        risk.TestMammogram,
		Name:        "Mammogram",
		Category:    TestCategoryCancer,
		Description: "X-ray examination of the breasts to detect early signs of breast cancer",
		Preparation: "Avoid deodorants, powders, and creams on test day. Schedule for week after menstrual period.",
		Duration:    "15-20 minutes",
		Frequency:   "Every 2 years for women 50-69, annually for high risk women",
	},
	{
		Code:        risk.TestPapSmear,
		Name:        "Pap Smear",
		Category:    TestCategoryCancer,
		Description: "Test to screen for cervical cancer by collecting cells from the cervix",
		Preparation: "Avoid sexual activity, douching, and vaginal medications 24 hours before test",
		Duration:    "5-10 minutes",
		Frequency:   "Every 3 years for women aged 25-29",
	},
	{
		Code:        risk.TestHPV,
		Name:        "HPV Test",
		Category:    TestCategoryCancer,
		Description: "Test for human papillomavirus, which can cause cervical cancer",
		Preparation: "Avoid sexual activity, douching, and vaginal medications 24 hours before test",
		Duration:    "5-10 minutes",
		Frequency:   "Every 5 years for women aged 30 and above",
	},
	{
		Code:        risk.TestFIT,
		Name:        "FIT Test (Faecal Immunochemical Test)",
		Category:    TestCategoryCancer,
		Description: "Stool test that detects hidden blood, which may indicate colorectal cancer",
		Preparation: "Follow dietary restrictions if specified. No medication restrictions needed.",
		Duration:    "Home collection kit - 5 minutes",
		Frequency:   "Annually for people aged 50 and above",
	},
	{
		Code:        risk.TestPSA,
		Name:        "PSA Test",
		Category:    TestCategoryCancer,
		Description: "Blood test to measure prostate-specific antigen levels",
		Preparation: "Avoid sexual activity 48 hours before test. No special dietary restrictions.",
		Duration:    "5 minutes (blood draw)",
		Frequency:   "Discuss with doctor - typically annually for men 50-70",
	},
	{
		Code:        risk.TestAFP,
		Name:        "Alpha-Fetoprotein (AFP)",
		Category:    TestCategoryCancer,
		Description: "Blood test to screen for liver cancer in high-risk individuals",
		Preparation: "No special preparation required",
		Duration:    "5 minutes (blood draw)",
		Frequency:   "Every 6 months for high-risk individuals (Hepatitis B carriers, cirrhosis)",
	},
	{
		Code:        risk.TestLiverUltrasound,
		Name:        "Liver Ultrasound",
		Category:    TestCategoryCancer,
		Description: "Imaging test to examine the liver for abnormalities",
		Preparation: "Fasting for 8-12 hours before the test",
		Duration:    "15-30 minutes",
		Frequency:   "Every 6 months for high-risk individuals",
	},
	{
		Code:        risk.TestLowDoseCT,
		Name:        "Low-Dose CT Scan",
		Category:    TestCategoryCancer,
		Description: "Specialized CT scan to screen for lung cancer in high-risk smokers",
		Preparation: "No special preparation required. Wear comfortable clothing without metal",
		Duration:    "10-15 minutes",
		Frequency:   "Annually for heavy smokers aged 55-74",
	},
	{
		Code:        risk.TestBloodPressure,
		Name:        "Blood Pressure Check",
		Category:    TestCategoryGeneral,
		Description: "Measurement of blood pressure to assess cardiovascular health",
		Preparation: "Avoid caffeine and exercise 30 minutes before test",
		Duration:    "5 minutes",
		Frequency:   "At least once every 2 years, more frequently if elevated",
	},
	{
		Code:        risk.TestCholesterol,
		Name:        "Cholesterol Test",
		Category:    TestCategoryGeneral,
		Description: "Blood test to measure cholesterol and triglyceride levels",
		Preparation: "Fasting for 9-12 hours before test",
		Duration:    "5 minutes (blood draw)",
		Frequency:   "Every 5 years for adults, more frequently if abnormal",
	},
	{
		Code:        risk.TestDiabetesScreening,
		Name:        "Diabetes Screening",
		Category:    TestCategoryGeneral,
		Description: "Blood test to check glucose levels and diagnose diabetes",
		Preparation: "Fasting for 8-12 hours for fasting glucose test",
		Duration:    "5 minutes (blood draw)",
		Frequency:   "Every 3 years for adults over 45, more frequently for high-risk individuals",
	},
}

// 只有部分项目有套餐，其余项目不会出现在推荐里
var Packages = []Package{
	{
		ProviderCode: "NCCS",
		TestCode:     risk.TestColonoscopy,
		Name:         "Comprehensive Colonoscopy Screening",
		URL:          "https://www.nccs.com.sg/patient-care/specialties-services/oncologic-imaging",
		Price:        sgd(800, 400, "Singapore Citizens and PRs with subsidies"),
		Availability: risk.Availability{
			Locations:     []string{"NCCS Main Campus", "Novena Specialist Center"},
			OnlineBooking: true,
		},
		Specializations: risk.Specializations{HighRisk: true, FamilyHistory: true, FastTrack: true},
		Priority:        5,
		AdditionalInfo: risk.AdditionalInfo{
			WaitTime:     "2-3 weeks for routine, 1 week for urgent cases",
			Requirements: []string{"Referral letter preferred but not mandatory", "Bowel preparation kit provided"},
			Includes:     []string{"Pre-procedure consultation", "Procedure", "Pathology if needed", "Follow-up consultation"},
		},
	},
	{
		ProviderCode: "NCCS",
		TestCode:     risk.TestMammogram,
		Name:         "Digital Mammography Screening",
		URL:          "https://www.nccs.com.sg/patient-care/cancer-types/pages/cancer-screening.aspx",
		Price:        sgd(200, 100, "Singapore Citizens and PRs"),
		Availability: risk.Availability{
			Locations:     []string{"NCCS Main Campus", "NCCS Specialist Outpatient Clinics"},
			OnlineBooking: true,
		},
		Specializations: risk.Specializations{HighRisk: true, FamilyHistory: true},
		Priority:        4,
		AdditionalInfo: risk.AdditionalInfo{
			WaitTime:     "1-2 weeks",
			Requirements: []string{"Appointment required"},
			Includes:     []string{"Digital mammography", "Radiologist review", "Results consultation"},
		},
	},
	{
		ProviderCode: "SCS",
		TestCode:     risk.TestFIT,
		Name:         "FIT Kit Programme",
		URL:          "https://www.singaporecancersociety.org.sg/get-screened/colorectal-cancer/fit-kit.html",
		Price:        sgd(0, 0, "Singapore Citizens and PRs aged 50-75"),
		Availability: risk.Availability{
			Locations:     []string{"Home collection kit", "SCS Medical Centre"},
			OnlineBooking: true,
		},
		Priority: 3,
		AdditionalInfo: risk.AdditionalInfo{
			WaitTime:     "Kit delivered within 1 week",
			Requirements: []string{"No bleeding conditions", "Age 50-75 years"},
			Includes:     []string{"2 FIT kits", "Instructions", "Business reply envelope", "Results by post"},
		},
	},
	{
		ProviderCode: "SCS",
		TestCode:     risk.TestMammogram,
		Name:         "Mammogram Screening Programme",
		URL:          "https://www.singaporecancersociety.org.sg/get-screened/breast-cancer/mammogram.html",
		Price:        sgd(120, 80, "Income-based subsidies available"),
		Availability: risk.Availability{
			Locations:     []string{"SCS Clinic @ Bishan", "Community Mammobus"},
			OnlineBooking: true,
		},
		Priority: 3,
		AdditionalInfo: risk.AdditionalInfo{
			WaitTime:     "2-3 weeks",
			Requirements: []string{"Age 40 and above", "No pregnancy"},
			Includes:     []string{"Digital mammography", "Results notification", "Follow-up consultation if needed"},
		},
	},
	{
		ProviderCode: "HEALTHHUB",
		TestCode:     risk.TestFIT,
		Name:         "Healthier SG Colorectal Screening",
		URL:          "https://www.healthhub.sg/programmes/healthiersg-screening",
		Price:        sgd(0, 0, "Healthier SG enrolled citizens"),
		Availability: risk.Availability{
			Locations:     []string{"Enrolled Healthier SG clinics", "CHAS GP clinics"},
			OnlineBooking: true,
			WalkIn:        true,
		},
		Priority: 2,
		AdditionalInfo: risk.AdditionalInfo{
			WaitTime:     "Same day if available",
			Requirements: []string{"Healthier SG enrollment preferred", "Age-based eligibility"},
			Includes:     []string{"FIT test", "Follow-up consultation if needed"},
		},
	},
	{
		ProviderCode: "HEALTHHUB",
		TestCode:     risk.TestMammogram,
		Name:         "Healthier SG Breast Screening",
		URL:          "https://www.healthhub.sg/programmes/healthiersg-screening",
		Price:        sgd(50, 0, "Healthier SG enrolled citizens get free screening"),
		Availability: risk.Availability{
			Locations:     []string{"Selected polyclinics only"},
			OnlineBooking: true,
		},
		Priority: 2,
		AdditionalInfo: risk.AdditionalInfo{
			WaitTime:     "1-2 weeks",
			Requirements: []string{"Age 50+ (2 yearly) or 40-49 (yearly)", "Available at selected polyclinics only"},
			Includes:     []string{"Digital mammography", "Results notification", "Referral if needed"},
		},
	},
	{
		ProviderCode: "POLYCLINIC",
		TestCode:     risk.TestFIT,
		Name:         "Polyclinic Colorectal Screening",
		URL:          "https://www.healthhub.sg/programmes/healthiersg-screening",
		Price:        sgd(5, 0, "Citizens and PRs under Healthier SG"),
		Availability: risk.Availability{
			Locations:     []string{"All Polyclinic branches"},
			OnlineBooking: true,
			WalkIn:        true,
		},
		Priority: 1,
		AdditionalInfo: risk.AdditionalInfo{
			WaitTime:     "Same day collection",
			Requirements: []string{"Make appointment through HealthHub app or hotline"},
			Includes:     []string{"FIT kit and instructions", "Lab analysis", "Results notification"},
		},
	},
	{
		ProviderCode: "POLYCLINIC",
		TestCode:     risk.TestPapSmear,
		Name:         "Cervical Cancer Screening",
		URL:          "https://www.healthhub.sg/programmes/healthiersg-screening",
		Price:        sgd(5, 0, "Citizens and PRs under Healthier SG"),
		Availability: risk.Availability{
			Locations:     []string{"All Polyclinic branches"},
			OnlineBooking: true,
			WalkIn:        true,
		},
		Priority: 1,
		AdditionalInfo: risk.AdditionalInfo{
			WaitTime:     "1 week",
			Requirements: []string{"Make appointment through HealthHub app or hotline"},
			Includes:     []string{"Pap smear test", "Results notification", "Follow-up if abnormal"},
		},
	},
	{
		ProviderCode: "POLYCLINIC",
		TestCode:     risk.TestHPV,
		Name:         "HPV Screening Test",
		URL:          "https://www.healthhub.sg/programmes/healthiersg-screening",
		Price:        sgd(5, 0, "Citizens and PRs under Healthier SG"),
		Availability: risk.Availability{
			Locations:     []string{"All Polyclinic branches"},
			OnlineBooking: true,
			WalkIn:        true,
		},
		Priority: 1,
		AdditionalInfo: risk.AdditionalInfo{
			WaitTime:     "1 week",
			Requirements: []string{"Make appointment through HealthHub app or hotline"},
			Includes:     []string{"HPV test", "Results notification", "Follow-up consultation if positive"},
		},
	},
	{
		ProviderCode: "GP",
		TestCode:     risk.TestPSA,
		Name:         "Prostate Cancer Screening",
		URL:          "https://www.healthhub.sg/directory",
		Price:        sgd(80, 5, "CHAS GP clinics"),
		Availability: risk.Availability{
			Locations: []string{"Island-wide CHAS GP clinics"},
			WalkIn:    true,
		},
		Priority: 1,
		AdditionalInfo: risk.AdditionalInfo{
			WaitTime:     "Usually same day",
			Requirements: []string{"Bring NRIC", "Some clinics may require appointment"},
			Includes:     []string{"PSA blood test", "Results explanation", "Referral if needed"},
		},
	},
}

func providerInfo(code string) risk.ProviderInfo {
	for _, p := range Providers {
		if p.Code == code {
			return risk.ProviderInfo{Code: p.Code, Name: p.Name, Website: p.Website, Phone: p.Phone, Email: p.Email}
		}
	}
	return risk.ProviderInfo{Code: code}
}

// PackagesFor 某个项目的全部种子套餐，按 Priority 降序
func PackagesFor(testCode string) []risk.Package {
	var out []risk.Package
	for _, p := range Packages {
		if p.TestCode != testCode {
			continue
		}
		out = append(out, risk.Package{
			Name:            p.Name,
			URL:             p.URL,
			Provider:        providerInfo(p.ProviderCode),
			Price:           p.Price,
			Availability:    p.Availability,
			Specializations: p.Specializations,
			AdditionalInfo:  p.AdditionalInfo,
			Priority:        p.Priority,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}

// AvailableTestCodes 至少有一个种子套餐的项目代码
func AvailableTestCodes() risk.CodeSet {
	set := risk.NewCodeSet()
	for _, p := range Packages {
		set[p.TestCode] = true
	}
	return set
}
