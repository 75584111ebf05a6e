package risk

import "fmt"

// Answer 用户提交的原始答案
type Answer struct {
	QuestionID string `json:"qid" binding:"required"`
	OptionID   string `json:"optionId" binding:"required"`
}

// ScoredAnswer 计分后的答案，随 Attempt 一起持久化
type ScoredAnswer struct {
	QuestionID    string `json:"qid"`
	OptionID      string `json:"optionId"`
	Points        int    `json:"points"`
	Multiplier    int    `json:"multiplier"`
	CategoryScore int    `json:"categoryScore"`
}

type CategoryScore struct {
	Score    int `json:"score"`
	MaxScore int `json:"maxScore"`
}

// Percentage 类别内得分率，满分为 0 时返回 0
func (c CategoryScore) Percentage() int {
	return RoundPercent(c.Score, c.MaxScore)
}

type CategoryBreakdown struct {
	Primary   CategoryScore `json:"primary"`
	Secondary CategoryScore `json:"secondary"`
	Tertiary  CategoryScore `json:"tertiary"`
}

func (cb *CategoryBreakdown) bucket(c Category) *CategoryScore {
	switch c {
	case CategoryPrimary:
		return &cb.Primary
	case CategorySecondary:
		return &cb.Secondary
	case CategoryTertiary:
		return &cb.Tertiary
	}
	return nil
}

func (cb *CategoryBreakdown) addScore(c Category, n int) {
	if b := cb.bucket(c); b != nil {
		b.Score += n
	}
}

func (cb *CategoryBreakdown) addMax(c Category, n int) {
	if b := cb.bucket(c); b != nil {
		b.MaxScore += n
	}
}

func (cb CategoryBreakdown) Total() int {
	return cb.Primary.Score + cb.Secondary.Score + cb.Tertiary.Score
}

// Result 一次提交的计分结果，由调用方原样持久化
type Result struct {
	ScoredAnswers     []ScoredAnswer    `json:"scoredAnswers"`
	TotalScore        int               `json:"totalScore"`
	MaxPossibleScore  int               `json:"maxPossibleScore"`
	PercentageScore   int               `json:"percentageScore"`
	RiskLevel         string            `json:"riskLevel"`
	RiskData          RiskBand          `json:"riskData"`
	CategoryBreakdown CategoryBreakdown `json:"categoryBreakdown"`
}

// Score 按问卷定义为答案计分。未作答的题目计 0 分，但满分始终使用问卷常量。
func Score(def *Definition, answers []Answer) (*Result, error) {
	res := &Result{
		ScoredAnswers:     make([]ScoredAnswer, 0, len(answers)),
		MaxPossibleScore:  def.Scoring.MaxTotalPoints,
		CategoryBreakdown: def.MaxByCategory(),
	}

	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		q, ok := def.Question(a.QuestionID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, a.QuestionID)
		}
		if seen[a.QuestionID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAnswer, a.QuestionID)
		}
		seen[a.QuestionID] = true

		opt, ok := q.Option(a.OptionID)
		if !ok {
			return nil, fmt.Errorf("%w: %s for question %s", ErrOptionNotFound, a.OptionID, a.QuestionID)
		}

		categoryScore := opt.Points * q.Multiplier
		res.TotalScore += categoryScore
		res.CategoryBreakdown.addScore(q.Category, categoryScore)
		res.ScoredAnswers = append(res.ScoredAnswers, ScoredAnswer{
			QuestionID:    q.ID,
			OptionID:      opt.ID,
			Points:        opt.Points,
			Multiplier:    q.Multiplier,
			CategoryScore: categoryScore,
		})
	}

	res.PercentageScore = RoundPercent(res.TotalScore, res.MaxPossibleScore)
	band, err := def.RiskBandFor(res.PercentageScore)
	if err != nil {
		return nil, err
	}
	res.RiskLevel = band.Level
	res.RiskData = band
	return res, nil
}

// RiskBandFor 返回第一个包含该百分比的区间；都不匹配时退回第一个区间
func (d *Definition) RiskBandFor(percentage int) (RiskBand, error) {
	if len(d.Scoring.RiskLevels) == 0 {
		return RiskBand{}, ErrNoRiskLevels
	}
	for _, b := range d.Scoring.RiskLevels {
		if b.Contains(percentage) {
			return b, nil
		}
	}
	return d.Scoring.RiskLevels[0], nil
}

// RoundPercent round(part/whole*100)，四舍五入（half-up），仅用于非负整数
func RoundPercent(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}

// AnswersOf 将已计分答案还原为原始答案
func AnswersOf(scored []ScoredAnswer) []Answer {
	out := make([]Answer, len(scored))
	for i, s := range scored {
		out[i] = Answer{QuestionID: s.QuestionID, OptionID: s.OptionID}
	}
	return out
}
