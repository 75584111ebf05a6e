package risk

import "sort"

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// 阈值按当前权重方案设定：7-10 分 ×4 为 high，6 分 ×2 或 3-6 分 ×4 为 medium
const (
	highSeverityPoints   = 28
	mediumSeverityPoints = 12
)

const notSpecified = "Not specified"

func SeverityOf(points int) Severity {
	switch {
	case points >= highSeverityPoints:
		return SeverityHigh
	case points >= mediumSeverityPoints:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// RiskFactor 看板展示用的单个风险因素，每次读取时从 Attempt + 问卷重新推导
type RiskFactor struct {
	ID              string           `json:"id"`
	Icon            string           `json:"icon"`
	Name            string           `json:"name"`
	Points          int              `json:"points"`
	Percentage      int              `json:"percentage"`
	Description     string           `json:"description"`
	Severity        Severity         `json:"severity,omitempty"`
	Rationale       string           `json:"rationale"`
	IsModifiable    bool             `json:"isModifiable"`
	SimulatorConfig *SimulatorConfig `json:"simulatorConfig,omitempty"`
	BasePoints      int              `json:"basePoints"`
	Multiplier      int              `json:"multiplier"`
	Options         []Option         `json:"options,omitempty"`
}

type Breakdown struct {
	Contributing  []RiskFactor `json:"riskBreakdown"`
	Modifiable    []RiskFactor `json:"modifiableFactors"`
	NonModifiable []RiskFactor `json:"nonModifiableFactors"`
}

func BuildBreakdown(def *Definition, answers []ScoredAnswer) Breakdown {
	return Breakdown{
		Contributing:  ContributingFactors(def, answers),
		Modifiable:    FactorsOfType(def, answers, FactorModifiable),
		NonModifiable: FactorsOfType(def, answers, FactorNonModifiable),
	}
}

// ContributingFactors 仅包含得分大于 0 的答案，按分值降序，同分保持作答顺序。
// 缺少 displayData 的题目直接跳过。
func ContributingFactors(def *Definition, answers []ScoredAnswer) []RiskFactor {
	factors := make([]RiskFactor, 0, len(answers))
	for _, a := range answers {
		q, ok := def.Question(a.QuestionID)
		if !ok || q.DisplayData == nil {
			continue
		}
		opt, ok := q.Option(a.OptionID)
		if !ok || a.CategoryScore <= 0 {
			continue
		}
		factors = append(factors, RiskFactor{
			ID:           q.ID,
			Icon:         q.DisplayData.Icon,
			Name:         q.DisplayData.ShortName,
			Points:       a.CategoryScore,
			Percentage:   RoundPercent(a.CategoryScore, def.Scoring.MaxTotalPoints),
			Description:  opt.Text,
			Severity:     SeverityOf(a.CategoryScore),
			Rationale:    q.Rationale,
			IsModifiable: q.FactorType == FactorModifiable,
			BasePoints:   a.Points,
			Multiplier:   a.Multiplier,
		})
	}
	sortByPoints(factors)
	return factors
}

// FactorsOfType 列出某一类的全部题目（包括未作答的），按当前分值降序
func FactorsOfType(def *Definition, answers []ScoredAnswer, ft FactorType) []RiskFactor {
	byQuestion := make(map[string]ScoredAnswer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	factors := make([]RiskFactor, 0)
	for i := range def.Questions {
		q := &def.Questions[i]
		if q.FactorType != ft || q.DisplayData == nil {
			continue
		}

		f := RiskFactor{
			ID:           q.ID,
			Icon:         q.DisplayData.Icon,
			Name:         q.DisplayData.ShortName,
			Description:  notSpecified,
			Rationale:    q.Rationale,
			IsModifiable: ft == FactorModifiable,
			Multiplier:   q.Multiplier,
		}
		if a, answered := byQuestion[q.ID]; answered {
			if opt, ok := q.Option(a.OptionID); ok {
				f.Points = a.CategoryScore
				f.BasePoints = opt.Points
				f.Description = opt.Text
			}
		}
		f.Percentage = RoundPercent(f.Points, def.Scoring.MaxTotalPoints)

		if ft == FactorModifiable {
			f.SimulatorConfig = q.DisplayData.SimulatorConfig
			f.Options = q.Options
		}
		factors = append(factors, f)
	}
	sortByPoints(factors)
	return factors
}

func sortByPoints(factors []RiskFactor) {
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Points > factors[j].Points
	})
}
