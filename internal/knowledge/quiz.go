package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultWeight 选项未给出 weight 时的分值
const DefaultWeight = 10

var ErrInvalidQuiz = errors.New("invalid knowledge quiz")

type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
	Weight    int    `json:"weight"`
}

// UnmarshalJSON 缺省 weight 按 DefaultWeight 处理，显式 0 保留
func (o *Option) UnmarshalJSON(b []byte) error {
	type plain Option
	p := plain{Weight: DefaultWeight}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*o = Option(p)
	return nil
}

type Question struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Options     []Option `json:"options"`
	Explanation string   `json:"explanation"`
}

func (q *Question) Option(id string) (*Option, bool) {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i], true
		}
	}
	return nil, false
}

// Quiz 知识测验。题目按 ID 查找，顺序即解析列表的顺序
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Version   int        `json:"version"`
	Questions []Question `json:"questions"`
}

func (q *Quiz) Question(id string) (*Question, bool) {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i], true
		}
	}
	return nil, false
}

// Validate 发布前校验：题目 ID 唯一，每题有解析且至少一个正确选项，分值非负。
// 未设置版本时记为 1。
func (q *Quiz) Validate() error {
	if q.ID == "" || q.Title == "" {
		return fmt.Errorf("%w: id and title are required", ErrInvalidQuiz)
	}
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidQuiz)
	}
	if q.Version <= 0 {
		q.Version = 1
	}

	seen := make(map[string]bool, len(q.Questions))
	for _, question := range q.Questions {
		if question.ID == "" || question.Text == "" {
			return fmt.Errorf("%w: question id and text are required", ErrInvalidQuiz)
		}
		if seen[question.ID] {
			return fmt.Errorf("%w: duplicate question %s", ErrInvalidQuiz, question.ID)
		}
		seen[question.ID] = true

		if question.Explanation == "" {
			return fmt.Errorf("%w: question %s has no explanation", ErrInvalidQuiz, question.ID)
		}
		if len(question.Options) == 0 {
			return fmt.Errorf("%w: question %s has no options", ErrInvalidQuiz, question.ID)
		}

		options := make(map[string]bool, len(question.Options))
		correct := 0
		for _, o := range question.Options {
			if o.ID == "" || options[o.ID] {
				return fmt.Errorf("%w: question %s has a missing or duplicate option id", ErrInvalidQuiz, question.ID)
			}
			options[o.ID] = true
			if o.Weight < 0 {
				return fmt.Errorf("%w: option %s.%s has negative weight", ErrInvalidQuiz, question.ID, o.ID)
			}
			if o.IsCorrect {
				correct++
			}
		}
		if correct == 0 {
			return fmt.Errorf("%w: question %s has no correct option", ErrInvalidQuiz, question.ID)
		}
	}
	return nil
}

// Sample 随机抽取至多 n 道题，不修改原切片；n<=0 时返回全部
func Sample(questions []Question, n int, shuffle func(n int, swap func(i, j int))) []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
