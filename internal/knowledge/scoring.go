package knowledge

type Level string

const (
	LevelHigh    Level = "High"
	LevelMedium  Level = "Medium"
	LevelLow     Level = "Low"
	LevelVeryLow Level = "Very Low"
)

// Levels 从高到低
var Levels = []Level{LevelHigh, LevelMedium, LevelLow, LevelVeryLow}

// LevelFor 总分分档：80 / 60 / 40
func LevelFor(score int) Level {
	switch {
	case score >= 80:
		return LevelHigh
	case score >= 60:
		return LevelMedium
	case score >= 40:
		return LevelLow
	default:
		return LevelVeryLow
	}
}

type Answer struct {
	QuestionID string `json:"qid" binding:"required"`
	OptionID   string `json:"optionId" binding:"required"`
}

type Explanation struct {
	QuestionID     string `json:"questionId"`
	QuestionText   string `json:"questionText"`
	SelectedAnswer string `json:"selectedAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	Explanation    string `json:"explanation"`
}

type Result struct {
	Score          int           `json:"score"`
	CorrectAnswers int           `json:"correctAnswers"`
	TotalQuestions int           `json:"totalQuestions"`
	KnowledgeLevel Level         `json:"knowledgeLevel"`
	Explanations   []Explanation `json:"explanations"`
}

// Score 只累计答对选项的分值。题库外的题目会被忽略，同一题多次作答只取第一次。
// 解析按题库顺序列出已作答的题目。
func Score(q *Quiz, answers []Answer) *Result {
	picked := make(map[string]string, len(answers))
	for _, a := range answers {
		if _, dup := picked[a.QuestionID]; !dup {
			picked[a.QuestionID] = a.OptionID
		}
	}

	res := &Result{
		TotalQuestions: len(q.Questions),
		Explanations:   make([]Explanation, 0, len(picked)),
	}
	for _, question := range q.Questions {
		optionID, answered := picked[question.ID]
		if !answered {
			continue
		}

		e := Explanation{
			QuestionID:     question.ID,
			QuestionText:   question.Text,
			SelectedAnswer: "Not answered",
			Explanation:    question.Explanation,
		}
		if o, ok := question.Option(optionID); ok {
			e.SelectedAnswer = o.Text
			e.IsCorrect = o.IsCorrect
			if o.IsCorrect {
				res.Score += o.Weight
				res.CorrectAnswers++
			}
		}
		res.Explanations = append(res.Explanations, e)
	}
	res.KnowledgeLevel = LevelFor(res.Score)
	return res
}
