package risk_test

import (
	"errors"
	"testing"

	"risk_screening_backend/internal/risk"
	"risk_screening_backend/internal/seed"
)

func lifestyleQuiz(t *testing.T) *risk.Definition {
	t.Helper()
	def, err := seed.LifestyleQuiz()
	if err != nil {
		t.Fatalf("seed quiz invalid: %v", err)
	}
	return def
}

func answers(pairs ...string) []risk.Answer {
	out := make([]risk.Answer, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, risk.Answer{QuestionID: pairs[i], OptionID: pairs[i+1]})
	}
	return out
}

func extremeAnswers(def *risk.Definition, highest bool) []risk.Answer {
	out := make([]risk.Answer, 0, len(def.Questions))
	for _, q := range def.Questions {
		pick := q.Options[0]
		for _, o := range q.Options {
			if (highest && o.Points > pick.Points) || (!highest && o.Points < pick.Points) {
				pick = o
			}
		}
		out = append(out, risk.Answer{QuestionID: q.ID, OptionID: pick.ID})
	}
	return out
}

func TestScoreScenarios(t *testing.T) {
	def := lifestyleQuiz(t)
	cases := []struct {
		name    string
		answers []risk.Answer
		total   int
		pct     int
		level   string
	}{
		{"senior non-smoker", answers("q1", "f", "q3", "a", "q10", "a"), 40, 13, "LOW_RISK"},
		{"senior heavy smoker obese", answers("q1", "f", "q3", "f", "q4", "d", "q10", "a"), 120, 38, "MODERATE_RISK"},
		{"no answers", nil, 0, 0, "LOW_RISK"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := risk.Score(def, c.answers)
			if err != nil {
				t.Fatalf("Score: %v", err)
			}
			if res.TotalScore != c.total || res.PercentageScore != c.pct || res.RiskLevel != c.level {
				t.Fatalf("got %d/%d%%/%s, want %d/%d%%/%s",
					res.TotalScore, res.PercentageScore, res.RiskLevel, c.total, c.pct, c.level)
			}
			if res.MaxPossibleScore != 320 {
				t.Fatalf("max=%d, want 320", res.MaxPossibleScore)
			}
			if res.RiskData.Level != res.RiskLevel {
				t.Fatalf("riskData %s does not match riskLevel %s", res.RiskData.Level, res.RiskLevel)
			}
		})
	}
}

func TestScoreBounds(t *testing.T) {
	def := lifestyleQuiz(t)

	high, err := risk.Score(def, extremeAnswers(def, true))
	if err != nil {
		t.Fatalf("Score(max): %v", err)
	}
	if high.TotalScore != 320 || high.PercentageScore != 100 || high.RiskLevel != "HIGH_RISK" {
		t.Fatalf("max answers: got %d/%d%%/%s", high.TotalScore, high.PercentageScore, high.RiskLevel)
	}

	low, err := risk.Score(def, extremeAnswers(def, false))
	if err != nil {
		t.Fatalf("Score(min): %v", err)
	}
	if low.TotalScore != 0 || low.PercentageScore != 0 || low.RiskLevel != "LOW_RISK" {
		t.Fatalf("min answers: got %d/%d%%/%s", low.TotalScore, low.PercentageScore, low.RiskLevel)
	}
}

func TestScoreAdditive(t *testing.T) {
	def := lifestyleQuiz(t)
	res, err := risk.Score(def, answers("q1", "d", "q3", "c", "q6", "b", "q8", "a", "q12", "c", "q14", "d"))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	sum := 0
	for _, a := range res.ScoredAnswers {
		if a.CategoryScore != a.Points*a.Multiplier {
			t.Fatalf("%s: categoryScore %d != %d×%d", a.QuestionID, a.CategoryScore, a.Points, a.Multiplier)
		}
		sum += a.CategoryScore
	}
	if sum != res.TotalScore || res.CategoryBreakdown.Total() != res.TotalScore {
		t.Fatalf("total %d, sum %d, breakdown %d", res.TotalScore, sum, res.CategoryBreakdown.Total())
	}
	// q1 d=6×4, q3 c=5×4 / q6 b=3×2, q8 a=10×2 / q12 c=6, q14 d=10
	cb := res.CategoryBreakdown
	if cb.Primary.Score != 44 || cb.Secondary.Score != 26 || cb.Tertiary.Score != 16 {
		t.Fatalf("breakdown = %+v", cb)
	}
	if cb.Primary.MaxScore != 200 || cb.Secondary.MaxScore != 80 || cb.Tertiary.MaxScore != 40 {
		t.Fatalf("category max = %+v", cb)
	}
}

func TestScoreIdempotent(t *testing.T) {
	def := lifestyleQuiz(t)
	in := answers("q1", "c", "q5", "b", "q7", "a", "q13", "b")
	first, err := risk.Score(def, in)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	again, err := risk.Score(def, risk.AnswersOf(first.ScoredAnswers))
	if err != nil {
		t.Fatalf("rescore: %v", err)
	}
	if first.TotalScore != again.TotalScore || first.PercentageScore != again.PercentageScore || first.RiskLevel != again.RiskLevel {
		t.Fatalf("rescore differs: %+v vs %+v", first, again)
	}
}

func TestScoreRejectsBadAnswers(t *testing.T) {
	def := lifestyleQuiz(t)
	cases := []struct {
		name    string
		answers []risk.Answer
		want    error
	}{
		{"unknown question", answers("q99", "a"), risk.ErrQuestionNotFound},
		{"unknown option", answers("q1", "z"), risk.ErrOptionNotFound},
		{"duplicate question", answers("q1", "a", "q1", "b"), risk.ErrDuplicateAnswer},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := risk.Score(def, c.answers)
			if !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
		})
	}
	if _, err := risk.Score(def, answers("q99", "a")); !risk.IsNotFound(err) {
		t.Fatalf("IsNotFound(%v) = false", err)
	}
}

func TestRiskBandCoversEveryPercentage(t *testing.T) {
	def := lifestyleQuiz(t)
	for pct := 0; pct <= 100; pct++ {
		band, err := def.RiskBandFor(pct)
		if err != nil {
			t.Fatalf("RiskBandFor(%d): %v", pct, err)
		}
		if !band.Contains(pct) {
			t.Fatalf("RiskBandFor(%d) = %s [%d,%d]", pct, band.Level, band.Min, band.Max)
		}
	}
	for pct, want := range map[int]string{30: "LOW_RISK", 31: "MODERATE_RISK", 60: "MODERATE_RISK", 61: "HIGH_RISK"} {
		band, _ := def.RiskBandFor(pct)
		if band.Level != want {
			t.Fatalf("RiskBandFor(%d) = %s, want %s", pct, band.Level, want)
		}
	}
}

func TestRiskBandFallsBackToFirst(t *testing.T) {
	def := &risk.Definition{Scoring: risk.ScoringConfig{RiskLevels: []risk.RiskBand{
		{Level: "LOW", Min: 10, Max: 20},
		{Level: "HIGH", Min: 21, Max: 30},
	}}}
	band, err := def.RiskBandFor(95)
	if err != nil || band.Level != "LOW" {
		t.Fatalf("got %s, %v", band.Level, err)
	}

	empty := &risk.Definition{}
	if _, err := empty.RiskBandFor(10); !errors.Is(err, risk.ErrNoRiskLevels) {
		t.Fatalf("err = %v, want ErrNoRiskLevels", err)
	}
}

func TestRoundPercent(t *testing.T) {
	cases := []struct {
		part, whole, want int
	}{
		{0, 320, 0},
		{40, 320, 13},
		{120, 320, 38},
		{1, 200, 1},
		{1, 201, 0},
		{320, 320, 100},
		{5, 0, 0},
		{-5, 10, 0},
	}
	for _, c := range cases {
		if got := risk.RoundPercent(c.part, c.whole); got != c.want {
			t.Fatalf("RoundPercent(%d,%d)=%d, want %d", c.part, c.whole, got, c.want)
		}
	}
}

func TestCategoryPercentage(t *testing.T) {
	if got := (risk.CategoryScore{Score: 10, MaxScore: 0}).Percentage(); got != 0 {
		t.Fatalf("zero max percentage = %d", got)
	}
	if got := (risk.CategoryScore{Score: 30, MaxScore: 40}).Percentage(); got != 75 {
		t.Fatalf("percentage = %d, want 75", got)
	}
}
