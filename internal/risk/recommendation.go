package risk

import "sort"

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// 筛查项目代码
const (
	TestColonoscopy       = "COLONOSCOPY"
	TestMammogram         = "MAMMOGRAM"
	TestHPV               = "HPV_TEST"
	TestPapSmear          = "PAP_SMEAR"
	TestFIT               = "FIT_TEST"
	TestPSA               = "PSA"
	TestAFP               = "AFP"
	TestLiverUltrasound   = "LIVER_ULTRASOUND"
	TestLowDoseCT         = "LOW_DOSE_CT"
	TestBloodPressure     = "BLOOD_PRESSURE"
	TestCholesterol       = "CHOLESTEROL"
	TestDiabetesScreening = "DIABETES_SCREENING"
)

const (
	moderateRiskPct = 31
	highRiskPct     = 61
)

type Recommendation struct {
	TestCode string   `json:"testCode"`
	TestName string   `json:"testName"`
	Priority Priority `json:"priority"`
	Reasons  []string `json:"reasons"`
}

// Signals 规则引擎使用的判定输入，由画像和风险百分比一次性算出
type Signals struct {
	Age              int
	Risk             int
	Gender           Gender
	FamilyColorectal bool
	FamilyBreast     bool
	FamilyProstate   bool
	PreviousCancer   bool
	PreviousBreast   bool
	HighMeatDiet     bool
	DrinksAlcohol    bool
	Alcohol          AlcoholFrequency
	Smoking          SmokingLevel
}

func SignalsOf(p *UserProfile, riskPercentage int) Signals {
	return Signals{
		Age:              p.AgeOrZero(),
		Risk:             riskPercentage,
		Gender:           p.GenderKind(),
		FamilyColorectal: p.FamilyHistoryOf(SiteColorectal),
		FamilyBreast:     p.FamilyHistoryOf(SiteBreast),
		FamilyProstate:   p.FamilyHistoryOf(SiteProstate),
		PreviousCancer:   p.HasPreviousCancer(),
		PreviousBreast:   p.HasPreviousBreastCancer(),
		HighMeatDiet:     p.HighProcessedMeat(),
		DrinksAlcohol:    p.DrinksAlcohol(),
		Alcohol:          p.AlcoholTier(),
		Smoking:          p.SmokingTier(),
	}
}

// Target 规则命中后要推荐的一个具体项目
type Target struct {
	Code    string
	Name    string
	Reasons []string
}

// Rule 一条筛查规则。Gender 非空时只对该性别生效。
type Rule struct {
	Name     string
	Gender   Gender
	Eligible func(s Signals) bool
	Priority func(s Signals) Priority
	Targets  func(s Signals) []Target
}

// CodeSet 当前至少有一个有效套餐的项目代码集合
type CodeSet map[string]bool

func NewCodeSet(codes ...string) CodeSet {
	set := make(CodeSet, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}

func (s CodeSet) Has(code string) bool { return s[code] }

type reason struct {
	when bool
	text string
}

func reasons(rs ...reason) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		if r.when {
			out = append(out, r.text)
		}
	}
	return out
}

func single(code, name string, rs ...string) []Target {
	return []Target{{Code: code, Name: name, Reasons: rs}}
}

func fixed(p Priority) func(Signals) Priority {
	return func(Signals) Priority { return p }
}

// DefaultRules 按评估顺序排列；同优先级的推荐保持这里的先后顺序
var DefaultRules = []Rule{
	{
		Name: "colonoscopy",
		Eligible: func(s Signals) bool {
			return s.FamilyColorectal || (s.Age >= 45 && s.Risk >= highRiskPct) || s.Age >= 50 || s.PreviousCancer
		},
		Priority: func(s Signals) Priority {
			switch {
			case s.FamilyColorectal || s.PreviousCancer || (s.Age >= 45 && s.Risk >= highRiskPct):
				return PriorityHigh
			case s.Age >= 50 || s.Risk >= moderateRiskPct:
				return PriorityMedium
			}
			return PriorityLow
		},
		Targets: func(s Signals) []Target {
			return single(TestColonoscopy, "Colonoscopy", reasons(
				reason{s.FamilyColorectal, "Family history of colorectal cancer"},
				reason{s.Age >= 45 && s.Risk >= highRiskPct, "Age 45+ with high risk factors"},
				reason{s.Age >= 50, "Standard screening age (50+)"},
				reason{s.PreviousCancer, "Previous cancer history"},
			)...)
		},
	},
	{
		Name:   "mammogram",
		Gender: GenderFemale,
		Eligible: func(s Signals) bool {
			return s.Age >= 50 || (s.Age >= 40 && s.Risk >= highRiskPct) || s.FamilyBreast || s.PreviousBreast
		},
		Priority: func(s Signals) Priority {
			switch {
			case s.FamilyBreast || s.PreviousBreast || (s.Age >= 40 && s.Risk >= highRiskPct):
				return PriorityHigh
			case s.Age >= 50:
				return PriorityMedium
			}
			return PriorityLow
		},
		Targets: func(s Signals) []Target {
			return single(TestMammogram, "Mammogram", reasons(
				reason{s.FamilyBreast, "Family history of breast cancer"},
				reason{s.Age >= 40 && s.Risk >= highRiskPct, "Age 40+ with high risk factors"},
				reason{s.Age >= 50, "Standard screening age (50+)"},
				reason{s.PreviousBreast, "Previous breast cancer history"},
			)...)
		},
	},
	{
		Name:     "cervical",
		Gender:   GenderFemale,
		Eligible: func(s Signals) bool { return s.Age >= 25 },
		Priority: func(s Signals) Priority {
			if s.Risk >= moderateRiskPct {
				return PriorityMedium
			}
			return PriorityLow
		},
		Targets: func(s Signals) []Target {
			if s.Age >= 30 {
				return single(TestHPV, "HPV Test", "Women 30+ should undergo regular cervical cancer screening")
			}
			return single(TestPapSmear, "Pap Smear", "Women 25-29 should undergo regular cervical cancer screening")
		},
	},
	{
		Name: "fit",
		Eligible: func(s Signals) bool {
			return s.Age >= 50 || s.FamilyColorectal || s.HighMeatDiet || s.DrinksAlcohol
		},
		Priority: func(s Signals) Priority {
			switch {
			case s.FamilyColorectal || (s.Age >= 50 && s.Risk >= highRiskPct):
				return PriorityHigh
			case s.Age >= 50 || s.Risk >= moderateRiskPct:
				return PriorityMedium
			}
			return PriorityLow
		},
		Targets: func(s Signals) []Target {
			return single(TestFIT, "FIT Test (Stool Analysis)", reasons(
				reason{s.Age >= 50, "Standard colorectal screening age"},
				reason{s.FamilyColorectal, "Family history of colorectal cancer"},
				reason{s.HighMeatDiet, "High dietary risk factors"},
				reason{s.DrinksAlcohol, "Alcohol consumption increases risk"},
			)...)
		},
	},
	{
		Name:   "psa",
		Gender: GenderMale,
		Eligible: func(s Signals) bool {
			return (s.Age >= 50 && s.Age <= 70) || s.FamilyProstate
		},
		Priority: func(s Signals) Priority {
			switch {
			case s.FamilyProstate:
				return PriorityHigh
			case s.Age >= 50 && s.Risk >= highRiskPct:
				return PriorityMedium
			}
			return PriorityLow
		},
		Targets: func(s Signals) []Target {
			return single(TestPSA, "PSA Test", reasons(
				reason{s.Age >= 50, "Men 50-70 should discuss PSA screening"},
				reason{s.FamilyProstate, "Family history of prostate cancer"},
			)...)
		},
	},
	{
		// AFP 与肝脏超声成对推荐，各自独立检查是否有套餐
		Name: "liver",
		Eligible: func(s Signals) bool {
			return s.Alcohol == AlcoholModerate || s.Alcohol == AlcoholHeavy
		},
		Priority: func(s Signals) Priority {
			if s.Alcohol == AlcoholHeavy {
				return PriorityHigh
			}
			return PriorityMedium
		},
		Targets: func(Signals) []Target {
			return []Target{
				{Code: TestAFP, Name: "Alpha-Fetoprotein (AFP)", Reasons: []string{"High alcohol consumption increases liver cancer risk"}},
				{Code: TestLiverUltrasound, Name: "Liver Ultrasound", Reasons: []string{"High alcohol consumption requires liver monitoring"}},
			}
		},
	},
	{
		Name: "lung",
		Eligible: func(s Signals) bool {
			return s.Age >= 55 && s.Age <= 74 && s.Smoking == SmokingHeavyDaily
		},
		Priority: fixed(PriorityHigh),
		Targets: func(Signals) []Target {
			return single(TestLowDoseCT, "Low-Dose CT Scan", "Heavy smoking history significantly increases lung cancer risk")
		},
	},
	{
		Name:     "basic",
		Eligible: func(s Signals) bool { return s.Risk >= moderateRiskPct },
		Priority: fixed(PriorityMedium),
		Targets: func(Signals) []Target {
			return []Target{
				{Code: TestBloodPressure, Name: "Blood Pressure Test", Reasons: []string{"Regular monitoring for cardiovascular health"}},
				{Code: TestCholesterol, Name: "Cholesterol Test", Reasons: []string{"Dietary factors may affect cholesterol levels"}},
				{Code: TestDiabetesScreening, Name: "Diabetes Screening", Reasons: []string{"BMI and lifestyle factors increase diabetes risk"}},
			}
		},
	},
}

// Recommend 使用默认规则表生成推荐列表
func Recommend(p *UserProfile, riskPercentage int, available CodeSet) []Recommendation {
	return Evaluate(DefaultRules, SignalsOf(p, riskPercentage), available)
}

// Evaluate 依次评估规则，丢弃没有可用套餐的项目，再按优先级稳定排序
func Evaluate(rules []Rule, s Signals, available CodeSet) []Recommendation {
	recs := make([]Recommendation, 0)
	for _, r := range rules {
		if r.Gender != GenderUnknown && r.Gender != s.Gender {
			continue
		}
		if !r.Eligible(s) {
			continue
		}
		priority := r.Priority(s)
		for _, t := range r.Targets(s) {
			if !available.Has(t.Code) {
				continue
			}
			recs = append(recs, Recommendation{
				TestCode: t.Code,
				TestName: t.Name,
				Priority: priority,
				Reasons:  t.Reasons,
			})
		}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() > recs[j].Priority.Rank()
	})
	return recs
}
