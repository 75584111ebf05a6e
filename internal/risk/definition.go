package risk

import (
	"fmt"
	"strconv"
	"strings"
)

type Category string

const (
	CategoryPrimary   Category = "primary"
	CategorySecondary Category = "secondary"
	CategoryTertiary  Category = "tertiary"
)

// Multiplier 返回类别对应的权重（primary=4, secondary=2, tertiary=1）
func (c Category) Multiplier() int {
	switch c {
	case CategoryPrimary:
		return 4
	case CategorySecondary:
		return 2
	case CategoryTertiary:
		return 1
	}
	return 0
}

// FactorType 标记题目是否属于可改变的生活习惯
type FactorType string

const (
	FactorModifiable    FactorType = "modifiable"
	FactorNonModifiable FactorType = "non_modifiable"
)

const (
	MinOptionPoints = 0
	MaxOptionPoints = 10
)

type Option struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Points int    `json:"points"`
}

type SimulatorConfig struct {
	LeftLabel  string `json:"leftLabel"`
	RightLabel string `json:"rightLabel"`
}

type DisplayData struct {
	ShortName       string           `json:"shortName"`
	Icon            string           `json:"icon"`
	SimulatorConfig *SimulatorConfig `json:"simulatorConfig,omitempty"`
}

type Question struct {
	ID             string       `json:"id"`
	QuestionNumber int          `json:"questionNumber"`
	Text           string       `json:"text"`
	Type           string       `json:"type"`
	SubText        string       `json:"subText,omitempty"`
	Icon           string       `json:"icon,omitempty"`
	IsRequired     bool         `json:"isRequired"`
	Category       Category     `json:"category"`
	Multiplier     int          `json:"multiplier"`
	FactorType     FactorType   `json:"factorType,omitempty"`
	DisplayData    *DisplayData `json:"displayData,omitempty"`
	Options        []Option     `json:"options"`
	Rationale      string       `json:"rationale"`
}

func (q *Question) Option(id string) (*Option, bool) {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i], true
		}
	}
	return nil, false
}

// MaxPoints 该题选项中的最高基础分
func (q *Question) MaxPoints() int {
	max := 0
	for _, o := range q.Options {
		if o.Points > max {
			max = o.Points
		}
	}
	return max
}

func (q *Question) MaxScore() int {
	return q.MaxPoints() * q.Multiplier
}

// RiskBand 风险等级区间，PercentageRange 为持久化格式（如 "31-60%"）
type RiskBand struct {
	Level           string `json:"level"`
	Label           string `json:"label"`
	PercentageRange string `json:"percentageRange"`
	Color           string `json:"color"`
	Description     string `json:"description"`

	Min int `json:"-"`
	Max int `json:"-"`
}

func (b RiskBand) Contains(percentage int) bool {
	return percentage >= b.Min && percentage <= b.Max
}

type ScoringConfig struct {
	MaxBasePoints  int        `json:"maxBasePoints"`
	MaxTotalPoints int        `json:"maxTotalPoints"`
	RiskLevels     []RiskBand `json:"riskLevels"`
}

// Definition 一个版本的生活方式问卷，加载后只读
type Definition struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Version     int           `json:"version"`
	Questions   []Question    `json:"questions"`
	Scoring     ScoringConfig `json:"scoring"`

	index map[string]int
}

// NewDefinition 校验问卷并解析风险区间，返回可用于计分的定义
func NewDefinition(id, title, description string, version int, questions []Question, scoring ScoringConfig) (*Definition, error) {
	d := &Definition{
		ID:          id,
		Title:       title,
		Description: description,
		Version:     version,
		Questions:   questions,
		Scoring:     scoring,
	}
	if err := d.prepare(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Definition) prepare() error {
	d.index = make(map[string]int, len(d.Questions))
	computedMax := 0

	for i := range d.Questions {
		q := &d.Questions[i]
		if q.ID == "" {
			return fmt.Errorf("%w: question #%d has no id", ErrInvalidDefinition, i+1)
		}
		if _, dup := d.index[q.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %q", ErrInvalidDefinition, q.ID)
		}
		d.index[q.ID] = i

		if len(q.Options) == 0 {
			return fmt.Errorf("%w: question %q has no options", ErrInvalidDefinition, q.ID)
		}
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if seen[o.ID] {
				return fmt.Errorf("%w: question %q has duplicate option %q", ErrInvalidDefinition, q.ID, o.ID)
			}
			seen[o.ID] = true
			if o.Points < MinOptionPoints || o.Points > MaxOptionPoints {
				return fmt.Errorf("%w: question %q option %q points %d out of range [0,10]", ErrInvalidDefinition, q.ID, o.ID, o.Points)
			}
		}

		want := q.Category.Multiplier()
		if want == 0 {
			return fmt.Errorf("%w: question %q has unknown category %q", ErrInvalidDefinition, q.ID, q.Category)
		}
		if q.Multiplier != want {
			return fmt.Errorf("%w: question %q multiplier %d does not match category %s (%d)", ErrInvalidDefinition, q.ID, q.Multiplier, q.Category, want)
		}

		// 展示在看板上的题目必须归入可改变/不可改变其中之一
		if q.DisplayData != nil && q.FactorType != FactorModifiable && q.FactorType != FactorNonModifiable {
			return fmt.Errorf("%w: question %q has no factor type", ErrInvalidDefinition, q.ID)
		}

		computedMax += q.MaxScore()
	}

	if d.Scoring.MaxTotalPoints <= 0 {
		return fmt.Errorf("%w: maxTotalPoints must be positive", ErrInvalidDefinition)
	}
	if d.Scoring.MaxTotalPoints != computedMax {
		return fmt.Errorf("%w: maxTotalPoints %d does not match questions (%d)", ErrInvalidDefinition, d.Scoring.MaxTotalPoints, computedMax)
	}

	if len(d.Scoring.RiskLevels) == 0 {
		return ErrNoRiskLevels
	}
	for i := range d.Scoring.RiskLevels {
		b := &d.Scoring.RiskLevels[i]
		min, max, err := ParseRange(b.PercentageRange)
		if err != nil {
			return fmt.Errorf("risk level %q: %w", b.Level, err)
		}
		b.Min, b.Max = min, max
	}
	return nil
}

func (d *Definition) Question(id string) (*Question, bool) {
	i, ok := d.index[id]
	if !ok {
		return nil, false
	}
	return &d.Questions[i], true
}

// MaxByCategory 每个类别的理论最高分
func (d *Definition) MaxByCategory() CategoryBreakdown {
	var cb CategoryBreakdown
	for i := range d.Questions {
		cb.addMax(d.Questions[i].Category, d.Questions[i].MaxScore())
	}
	return cb
}

// ParseRange 解析 "31-60%" 形式的区间（闭区间）
func ParseRange(s string) (int, int, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	min, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(parts[0], "%", "")))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	max, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(parts[1], "%", "")))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	if min > max {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	return min, max, nil
}
