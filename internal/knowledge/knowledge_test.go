package knowledge

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func sampleQuiz() *Quiz {
	return &Quiz{
		ID:    "knowledge-test",
		Title: "Cancer facts",
		Questions: []Question{
			{ID: "q1", Text: "Leading preventable cause?", Explanation: "Tobacco.", Options: []Option{
				{ID: "a", Text: "Smoking", IsCorrect: true, Weight: 40},
				{ID: "b", Text: "Stress", Weight: 0},
			}},
			{ID: "q2", Text: "Screening age?", Explanation: "Fifty.", Options: []Option{
				{ID: "a", Text: "30"},
				{ID: "b", Text: "50", IsCorrect: true, Weight: 30},
			}},
			{ID: "q3", Text: "HPV causes?", Explanation: "Cervical cancer.", Options: []Option{
				{ID: "a", Text: "Cervical cancer", IsCorrect: true, Weight: 20},
				{ID: "b", Text: "Skin cancer"},
			}},
		},
	}
}

func TestLevelFor(t *testing.T) {
	cases := []struct {
		score int
		want  Level
	}{
		{100, LevelHigh},
		{80, LevelHigh},
		{79, LevelMedium},
		{60, LevelMedium},
		{59, LevelLow},
		{40, LevelLow},
		{39, LevelVeryLow},
		{0, LevelVeryLow},
	}
	for _, c := range cases {
		if got := LevelFor(c.score); got != c.want {
			t.Fatalf("LevelFor(%d) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestScore(t *testing.T) {
	cases := []struct {
		name    string
		answers []Answer
		score   int
		correct int
		level   Level
		explain []string
	}{
		{"all correct", []Answer{{"q1", "a"}, {"q2", "b"}, {"q3", "a"}}, 90, 3, LevelHigh, []string{"q1", "q2", "q3"}},
		{"one wrong", []Answer{{"q1", "a"}, {"q2", "a"}, {"q3", "a"}}, 60, 2, LevelMedium, []string{"q1", "q2", "q3"}},
		{"partial", []Answer{{"q2", "b"}}, 30, 1, LevelVeryLow, []string{"q2"}},
		{"explanations follow quiz order", []Answer{{"q3", "a"}, {"q1", "a"}}, 60, 2, LevelMedium, []string{"q1", "q3"}},
		{"unknown question ignored", []Answer{{"q9", "a"}, {"q1", "a"}}, 40, 1, LevelLow, []string{"q1"}},
		{"first answer wins", []Answer{{"q1", "b"}, {"q1", "a"}}, 0, 0, LevelVeryLow, []string{"q1"}},
		{"none", nil, 0, 0, LevelVeryLow, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := Score(sampleQuiz(), c.answers)
			if res.Score != c.score || res.CorrectAnswers != c.correct || res.KnowledgeLevel != c.level {
				t.Fatalf("result = %+v", res)
			}
			if res.TotalQuestions != 3 {
				t.Fatalf("total questions = %d", res.TotalQuestions)
			}
			if len(res.Explanations) != len(c.explain) {
				t.Fatalf("explanations = %+v", res.Explanations)
			}
			for i, id := range c.explain {
				if res.Explanations[i].QuestionID != id {
					t.Fatalf("explanation %d = %s, want %s", i, res.Explanations[i].QuestionID, id)
				}
			}
		})
	}
}

func TestScoreUnknownOption(t *testing.T) {
	res := Score(sampleQuiz(), []Answer{{"q1", "z"}})
	if len(res.Explanations) != 1 {
		t.Fatalf("explanations = %+v", res.Explanations)
	}
	e := res.Explanations[0]
	if e.SelectedAnswer != "Not answered" || e.IsCorrect || e.Explanation != "Tobacco." {
		t.Fatalf("explanation = %+v", e)
	}
}

func TestOptionDefaultWeight(t *testing.T) {
	var opts []Option
	if err := json.Unmarshal([]byte(`[{"id":"a","text":"x","isCorrect":true},{"id":"b","text":"y","weight":0}]`), &opts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if opts[0].Weight != DefaultWeight || opts[1].Weight != 0 {
		t.Fatalf("weights = %d, %d", opts[0].Weight, opts[1].Weight)
	}
}

func TestValidate(t *testing.T) {
	if err := sampleQuiz().Validate(); err != nil {
		t.Fatalf("valid quiz rejected: %v", err)
	}
	q := sampleQuiz()
	_ = q.Validate()
	if q.Version != 1 {
		t.Fatalf("version default = %d", q.Version)
	}

	cases := []struct {
		name   string
		mutate func(q *Quiz)
	}{
		{"no id", func(q *Quiz) { q.ID = "" }},
		{"no questions", func(q *Quiz) { q.Questions = nil }},
		{"duplicate question", func(q *Quiz) { q.Questions[1].ID = "q1" }},
		{"no explanation", func(q *Quiz) { q.Questions[0].Explanation = "" }},
		{"no options", func(q *Quiz) { q.Questions[0].Options = nil }},
		{"duplicate option", func(q *Quiz) { q.Questions[0].Options[1].ID = "a" }},
		{"no correct option", func(q *Quiz) { q.Questions[2].Options[0].IsCorrect = false }},
		{"negative weight", func(q *Quiz) { q.Questions[0].Options[1].Weight = -1 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q := sampleQuiz()
			c.mutate(q)
			if err := q.Validate(); !errors.Is(err, ErrInvalidQuiz) {
				t.Fatalf("err = %v", err)
			}
		})
	}
}

func reverse(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func TestSample(t *testing.T) {
	qs := sampleQuiz().Questions

	got := Sample(qs, 2, reverse)
	if len(got) != 2 || got[0].ID != "q3" || got[1].ID != "q2" {
		t.Fatalf("sample = %v", got)
	}
	if qs[0].ID != "q1" {
		t.Fatalf("source slice reordered")
	}
	if all := Sample(qs, 10, reverse); len(all) != 3 {
		t.Fatalf("oversized sample = %d", len(all))
	}
	if all := Sample(qs, 0, reverse); len(all) != 3 {
		t.Fatalf("zero sample = %d", len(all))
	}
}

func TestAnalyze(t *testing.T) {
	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)
	stats := []AttemptStat{
		{Score: 90, Level: LevelHigh, HasSignedUp: true, CreatedAt: day2},
		{Score: 50, Level: LevelLow, CreatedAt: day1},
		{Score: 20, Level: LevelVeryLow, CreatedAt: day1.Add(time.Hour)},
	}

	a := Analyze(stats)
	if a.TotalAttempts != 3 || a.SignedUpUsers != 1 || a.ConversionRate != 33.33 {
		t.Fatalf("totals = %+v", a)
	}
	if a.ScoreStatistics != (ScoreStatistics{AvgScore: 53.33, MinScore: 20, MaxScore: 90}) {
		t.Fatalf("score statistics = %+v", a.ScoreStatistics)
	}
	wantLevels := []LevelCount{{LevelHigh, 1}, {LevelLow, 1}, {LevelVeryLow, 1}}
	if len(a.PersonaDistribution) != len(wantLevels) {
		t.Fatalf("distribution = %+v", a.PersonaDistribution)
	}
	for i, w := range wantLevels {
		if a.PersonaDistribution[i] != w {
			t.Fatalf("distribution[%d] = %+v, want %+v", i, a.PersonaDistribution[i], w)
		}
	}
	wantDays := []DailyStat{{"2026-03-01", 2, 0}, {"2026-03-02", 1, 1}}
	if len(a.DailyStats) != 2 || a.DailyStats[0] != wantDays[0] || a.DailyStats[1] != wantDays[1] {
		t.Fatalf("daily = %+v", a.DailyStats)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	a := Analyze(nil)
	if a.TotalAttempts != 0 || a.ConversionRate != 0 || a.PersonaDistribution == nil || a.DailyStats == nil {
		t.Fatalf("empty analytics = %+v", a)
	}
}
