package seed

import (
	"strconv"

	"risk_screening_backend/internal/risk"
)

const (
	LifestyleQuizID      = "lifestyle_quiz-v1"
	LifestyleQuizVersion = 1
	singleChoice         = "single_choice"
)

func opts(pairs ...interface{}) []risk.Option {
	out := make([]risk.Option, 0, len(pairs)/3)
	for i := 0; i+2 < len(pairs); i += 3 {
		out = append(out, risk.Option{
			ID:     pairs[i].(string),
			Text:   pairs[i+1].(string),
			Points: pairs[i+2].(int),
		})
	}
	return out
}

func question(n int, text string, c risk.Category, ft risk.FactorType, dd *risk.DisplayData, rationale string, options []risk.Option) risk.Question {
	return risk.Question{
		ID:             "q" + strconv.Itoa(n),
		QuestionNumber: n,
		Text:           text,
		Type:           singleChoice,
		IsRequired:     true,
		Category:       c,
		Multiplier:     c.Multiplier(),
		FactorType:     ft,
		DisplayData:    dd,
		Options:        options,
		Rationale:      rationale,
	}
}

func fixedFactor(shortName, icon string) *risk.DisplayData {
	return &risk.DisplayData{ShortName: shortName, Icon: icon}
}

func habit(shortName, icon, left, right string) *risk.DisplayData {
	return &risk.DisplayData{
		ShortName:       shortName,
		Icon:            icon,
		SimulatorConfig: &risk.SimulatorConfig{LeftLabel: left, RightLabel: right},
	}
}

// LifestyleQuestions 生活方式问卷 v1 的全部题目
func LifestyleQuestions() []risk.Question {
	const (
		primary   = risk.CategoryPrimary
		secondary = risk.CategorySecondary
		tertiary  = risk.CategoryTertiary
		mod       = risk.FactorModifiable
		nonMod    = risk.FactorNonModifiable
	)

	bmi := question(4, "What is your Body Mass Index (BMI) category?", primary, mod,
		habit("BMI", "⚖️", "Normal", "Obese"),
		"High BMI contributes to several cancers.",
		opts("a", "Underweight (<18.5)", 4, "b", "Normal (18.5-24.9)", 0, "c", "Overweight (25-29.9)", 6, "d", "Obese (≥30)", 10))
	bmi.SubText = "Provide height and weight to calculate BMI"

	return []risk.Question{
		// primary ×4
		question(1, "What is your age group?", primary, nonMod,
			fixedFactor("Age", "👤"),
			"Age is the strongest non-modifiable risk factor.",
			opts("a", "Under 25", 0, "b", "25-34", 2, "c", "35-44", 4, "d", "45-54", 6, "e", "55-64", 8, "f", "65+", 10)),
		question(2, "Have you personally had cancer before?", primary, nonMod,
			fixedFactor("Previous Cancer", "🏥"),
			"Past cancer significantly raises future risk.",
			opts("a", "No previous cancer", 0, "b", "Yes, treated successfully >5 yr ago", 6, "c", "Yes, treated successfully <5 yr ago", 8, "d", "Yes, currently receiving treatment", 10)),
		question(3, "Do you currently smoke cigarettes or use tobacco products?", primary, mod,
			habit("Smoking", "🚬", "Never", "Heavy Daily"),
			"Smoking is the top modifiable cancer risk.",
			opts("a", "Never smoked", 0, "b", "Former smoker (>1 yr)", 3, "c", "Occasional smoker", 5, "d", "Daily (1-10/day)", 7, "e", "Daily (11-20/day)", 8, "f", "Daily (21+/day)", 10)),
		bmi,
		question(5, "Has anyone in your immediate family had cancer?", primary, nonMod,
			fixedFactor("Family History", "🧬"),
			"Genetic predisposition affects risk.",
			opts("a", "No family history", 0, "b", "Yes breast cancer", 10, "c", "Yes colorectal cancer", 10, "d", "Yes lung cancer", 8, "e", "Yes other cancer", 6, "f", "Not sure", 4, "g", "Yes prostate cancer", 10)),

		// secondary ×2
		question(6, "How often do you consume alcoholic beverages?", secondary, mod,
			habit("Alcohol", "🍺", "Never", "Regular"),
			"Frequent drinking elevates several cancer risks.",
			opts("a", "Never/Rarely", 0, "b", "1-2 days/wk", 3, "c", "3-4 days/wk", 7, "d", "5+ days/wk", 10)),
		question(7, "How many days per week are you active ≥30 min?", secondary, mod,
			habit("Exercise", "🏃", "Daily", "Never"),
			"Inactivity raises cancer risk.",
			opts("a", "0 days", 10, "b", "1-2 days", 6, "c", "3-5 days", 3, "d", "6+ days", 0)),
		question(8, "How often do you eat fruits and vegetables?", secondary, mod,
			habit("Fruits/Veg", "🥗", "5+ daily", "Rarely"),
			"Not enough fibre raises cancer risk.",
			opts("a", "Rarely (<1/day)", 10, "b", "1-2 servings", 6, "c", "3-4 servings", 3, "d", "5+ servings", 0)),
		question(9, "How often do you eat processed or red meat?", secondary, mod,
			habit("Processed Meat", "🍖", "Never", "Daily"),
			"High intake boosts colorectal cancer risk.",
			opts("a", "Daily", 10, "b", "4-6×/wk", 6, "c", "1-3×/wk", 3, "d", "Rarely/Never", 0)),

		// tertiary ×1
		question(10, "What is your gender?", tertiary, nonMod,
			fixedFactor("Gender", "⚧️"),
			"Collected for demographic analysis only.",
			opts("a", "Male", 0, "b", "Female", 0, "c", "Prefer not to say", 0)),
		question(11, "When did you last have recommended cancer screening?", tertiary, nonMod,
			fixedFactor("Screening", "🩺"),
			"Screening enables early detection.",
			opts("a", "Never", 10, "b", "Overdue", 6, "c", "Up to date", 0, "d", "Not applicable", 0)),
		question(12, "How often do you protect yourself from sun exposure?", tertiary, mod,
			habit("Sun Protection", "☀️", "Always", "Never"),
			"UV exposure is a major cause of skin cancer.",
			opts("a", "Always", 0, "b", "Sometimes", 3, "c", "Rarely", 6, "d", "Never", 10)),
		question(13, "How would you describe your sleep quality?", tertiary, mod,
			habit("Sleep", "😴", "Good", "Chronic issues"),
			"Poor sleep affects immune function.",
			opts("a", "Good (7-8 h)", 0, "b", "Occasionally poor", 3, "c", "Frequently poor", 6, "d", "Chronic problems", 10)),
		question(14, "How would you rate your stress levels?", tertiary, mod,
			habit("Stress", "😰", "Low", "Chronic"),
			"Chronic stress promotes inflammation.",
			opts("a", "Low", 0, "b", "Moderate", 3, "c", "High", 6, "d", "Chronic high", 10)),
	}
}

// LifestyleScoring 5×(10×4) + 4×(10×2) + 4×(10×1)，性别题不计分
func LifestyleScoring() risk.ScoringConfig {
	return risk.ScoringConfig{
		MaxBasePoints:  10,
		MaxTotalPoints: 320,
		RiskLevels: []risk.RiskBand{
			{
				Level:           "LOW_RISK",
				Label:           "Low Risk",
				PercentageRange: "0-30%",
				Color:           "#059669",
				Description:     "Your lifestyle supports good health.",
			},
			{
				Level:           "MODERATE_RISK",
				Label:           "Moderate Risk",
				PercentageRange: "31-60%",
				Color:           "#D97706",
				Description:     "Consider improving some lifestyle factors.",
			},
			{
				Level:           "HIGH_RISK",
				Label:           "High Risk",
				PercentageRange: "61-100%",
				Color:           "#DC2626",
				Description:     "Multiple factors raise your cancer risk. Consult a healthcare provider.",
			},
		},
	}
}

// LifestyleQuiz 返回已校验的 v1 问卷定义
func LifestyleQuiz() (*risk.Definition, error) {
	return risk.NewDefinition(
		LifestyleQuizID,
		"Cancer Risk Assessment - Lifestyle Quiz",
		"Comprehensive lifestyle assessment to calculate personalized cancer risk scores using a weighted multiplier system",
		LifestyleQuizVersion,
		LifestyleQuestions(),
		LifestyleScoring(),
	)
}
