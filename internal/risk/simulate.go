package risk

import (
	"fmt"
	"sort"
)

type ScorePoint struct {
	TotalScore      int      `json:"totalScore"`
	PercentageScore int      `json:"percentageScore"`
	RiskLevel       string   `json:"riskLevel"`
	RiskData        RiskBand `json:"riskData"`
}

func pointOf(r *Result) ScorePoint {
	return ScorePoint{
		TotalScore:      r.TotalScore,
		PercentageScore: r.PercentageScore,
		RiskLevel:       r.RiskLevel,
		RiskData:        r.RiskData,
	}
}

type Simulation struct {
	Current   ScorePoint     `json:"current"`
	Simulated ScorePoint     `json:"simulated"`
	Delta     int            `json:"delta"`
	Answers   []ScoredAnswer `json:"answers"`
}

// Simulate 把可改变因素换成假设的选项后重新计分；不可改变因素不能被替换。
// 未作答的可改变题目会按原题目顺序追加到答案末尾。
func Simulate(def *Definition, answers []Answer, changes map[string]string) (*Simulation, error) {
	current, err := Score(def, answers)
	if err != nil {
		return nil, err
	}

	// 按题目顺序校验，多处错误时总是报告同一个；未知题号排在最后
	qids := make([]string, 0, len(changes))
	for qid := range changes {
		qids = append(qids, qid)
	}
	sort.Slice(qids, func(i, j int) bool {
		ii, iok := def.index[qids[i]]
		ji, jok := def.index[qids[j]]
		if iok != jok {
			return iok
		}
		if ii != ji {
			return ii < ji
		}
		return qids[i] < qids[j]
	})
	for _, qid := range qids {
		q, ok := def.Question(qid)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, qid)
		}
		if q.FactorType != FactorModifiable {
			return nil, fmt.Errorf("%w: %s", ErrNotModifiable, qid)
		}
		if _, ok := q.Option(changes[qid]); !ok {
			return nil, fmt.Errorf("%w: %s for question %s", ErrOptionNotFound, changes[qid], qid)
		}
	}

	hypothetical := make([]Answer, 0, len(answers)+len(changes))
	applied := make(map[string]bool, len(changes))
	for _, a := range answers {
		if optID, ok := changes[a.QuestionID]; ok {
			a.OptionID = optID
			applied[a.QuestionID] = true
		}
		hypothetical = append(hypothetical, a)
	}

	for _, qid := range qids {
		if !applied[qid] {
			hypothetical = append(hypothetical, Answer{QuestionID: qid, OptionID: changes[qid]})
		}
	}

	simulated, err := Score(def, hypothetical)
	if err != nil {
		return nil, err
	}

	return &Simulation{
		Current:   pointOf(current),
		Simulated: pointOf(simulated),
		Delta:     simulated.PercentageScore - current.PercentageScore,
		Answers:   simulated.ScoredAnswers,
	}, nil
}
