package risk

import "strings"

type Gender string

const (
	GenderUnknown Gender = ""
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderOther   Gender = "Other"
)

type AlcoholFrequency int

const (
	AlcoholUnknown AlcoholFrequency = iota
	AlcoholNever
	AlcoholLight    // 1-2 天/周
	AlcoholModerate // 3-4 天/周
	AlcoholHeavy    // 5+ 天/周
)

type SmokingLevel int

const (
	SmokingUnknown SmokingLevel = iota
	SmokingNever
	SmokingFormer
	SmokingOccasional
	SmokingLightDaily // 1-10 支/天
	SmokingHeavyDaily // 11 支以上/天
)

// 问卷题号到画像字段的固定映射
const (
	qAge            = "q1"
	qPreviousCancer = "q2"
	qSmoking        = "q3"
	qBMI            = "q4"
	qFamilyHistory  = "q5"
	qAlcohol        = "q6"
	qExercise       = "q7"
	qDiet           = "q8"
	qProcessedMeat  = "q9"
	qGender         = "q10"
)

const defaultAge = 30

var ageByGroup = map[string]int{
	"Under 25": 22,
	"25-34":    30,
	"35-44":    40,
	"45-54":    50,
	"55-64":    60,
	"65+":      70,
}

// UserProfile 从一次作答中提取的语义属性，未作答的字段为 nil
type UserProfile struct {
	Age            *int    `json:"age"`
	AgeGroup       *string `json:"ageGroup"`
	Gender         *string `json:"gender"`
	PreviousCancer *string `json:"previousCancer"`
	Smoking        *string `json:"smoking"`
	BMI            *string `json:"bmi"`
	FamilyHistory  *string `json:"familyHistory"`
	Alcohol        *string `json:"alcohol"`
	Exercise       *string `json:"exercise"`
	Diet           *string `json:"diet"`
	ProcessedMeat  *string `json:"processedMeat"`

	gender        Gender
	alcohol       AlcoholFrequency
	smoking       SmokingLevel
	familyHistory map[string]bool
	hasFamily     bool
	prevCancer    bool
	prevBreast    bool
	highMeat      bool
}

// ExtractProfile 按固定题号表把答案文本映射到画像字段，未映射的题目忽略
func ExtractProfile(def *Definition, answers []Answer) *UserProfile {
	p := &UserProfile{}
	for _, a := range answers {
		q, ok := def.Question(a.QuestionID)
		if !ok {
			continue
		}
		opt, ok := q.Option(a.OptionID)
		if !ok {
			continue
		}
		text := opt.Text

		switch a.QuestionID {
		case qAge:
			age := AgeFromGroup(text)
			p.AgeGroup = &text
			p.Age = &age
		case qPreviousCancer:
			p.PreviousCancer = &text
			p.prevCancer = !strings.Contains(text, "No")
			p.prevBreast = strings.Contains(strings.ToLower(text), "breast")
		case qSmoking:
			p.Smoking = &text
			p.smoking = parseSmoking(text)
		case qBMI:
			p.BMI = &text
		case qFamilyHistory:
			p.FamilyHistory = &text
			p.hasFamily = !strings.Contains(text, "No")
			p.familyHistory = parseCancerSites(text)
		case qAlcohol:
			p.Alcohol = &text
			p.alcohol = parseAlcohol(text)
		case qExercise:
			p.Exercise = &text
		case qDiet:
			p.Diet = &text
		case qProcessedMeat:
			p.ProcessedMeat = &text
			p.highMeat = text == "Daily" || strings.HasPrefix(text, "4-6")
		case qGender:
			p.Gender = &text
			p.gender = parseGender(text)
		}
	}
	return p
}

func AgeFromGroup(group string) int {
	if age, ok := ageByGroup[group]; ok {
		return age
	}
	return defaultAge
}

// AgeOrZero 未作答时返回 0，使所有年龄阈值判断都不成立
func (p *UserProfile) AgeOrZero() int {
	if p.Age == nil {
		return 0
	}
	return *p.Age
}

func (p *UserProfile) GenderKind() Gender            { return p.gender }
func (p *UserProfile) AlcoholTier() AlcoholFrequency { return p.alcohol }
func (p *UserProfile) SmokingTier() SmokingLevel     { return p.smoking }

// HasFamilyHistory 已作答且不是 "No ..." / "Not sure"
func (p *UserProfile) HasFamilyHistory() bool { return p.hasFamily }

func (p *UserProfile) FamilyHistoryOf(site string) bool {
	return p.familyHistory[site]
}

func (p *UserProfile) HasPreviousCancer() bool       { return p.prevCancer }
func (p *UserProfile) HasPreviousBreastCancer() bool { return p.prevBreast }
func (p *UserProfile) HighProcessedMeat() bool       { return p.highMeat }

// DrinksAlcohol 任何非"从不"的饮酒频率
func (p *UserProfile) DrinksAlcohol() bool {
	return p.Alcohol != nil && p.alcohol != AlcoholNever
}

const (
	SiteBreast     = "breast"
	SiteColorectal = "colorectal"
	SiteProstate   = "prostate"
	SiteLung       = "lung"
)

func parseCancerSites(text string) map[string]bool {
	lower := strings.ToLower(text)
	sites := make(map[string]bool)
	for _, s := range []string{SiteBreast, SiteColorectal, SiteProstate, SiteLung} {
		if strings.Contains(lower, s) {
			sites[s] = true
		}
	}
	return sites
}

func parseAlcohol(text string) AlcoholFrequency {
	switch {
	case strings.Contains(text, "Never"):
		return AlcoholNever
	case strings.Contains(text, "5+"):
		return AlcoholHeavy
	case strings.Contains(text, "3-4"):
		return AlcoholModerate
	case strings.Contains(text, "1-2"):
		return AlcoholLight
	}
	return AlcoholUnknown
}

func parseSmoking(text string) SmokingLevel {
	switch {
	case strings.Contains(text, "11-20"), strings.Contains(text, "21+"):
		return SmokingHeavyDaily
	case strings.Contains(text, "Daily"):
		return SmokingLightDaily
	case strings.Contains(text, "Occasional"):
		return SmokingOccasional
	case strings.Contains(text, "Former"):
		return SmokingFormer
	case strings.Contains(text, "Never"):
		return SmokingNever
	}
	return SmokingUnknown
}

func parseGender(text string) Gender {
	switch text {
	case "Male":
		return GenderMale
	case "Female":
		return GenderFemale
	}
	return GenderOther
}
