package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"risk_screening_backend/internal/knowledge"
	"risk_screening_backend/internal/seed"
	"risk_screening_backend/internal/util"
)

var linkTime = time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

func newKnowledgeService() (*KnowledgeQuizService, *memKnowledgeQuizzes, *memKnowledgeAttempts) {
	quizzes := newMemKnowledgeQuizzes()
	attempts := newMemKnowledgeAttempts()
	svc := NewKnowledgeQuizService(quizzes, attempts)
	svc.Shuffle = func(int, func(i, j int)) {}
	svc.Now = func() time.Time { return linkTime }
	return svc, quizzes, attempts
}

func knowledgeAnswers(pairs ...string) []knowledge.Answer {
	out := make([]knowledge.Answer, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, knowledge.Answer{QuestionID: pairs[i], OptionID: pairs[i+1]})
	}
	return out
}

func TestKnowledgeActiveQuiz(t *testing.T) {
	svc, quizzes, _ := newKnowledgeService()
	ctx := context.Background()

	quiz, err := svc.ActiveQuiz(ctx)
	if err != nil {
		t.Fatalf("ActiveQuiz: %v", err)
	}
	if quiz.ID != seed.KnowledgeQuizID || len(quiz.Questions) != util.KnowledgeQuizSampleSize {
		t.Fatalf("quiz = %s with %d questions", quiz.ID, len(quiz.Questions))
	}
	if quiz.Questions[0].ID != "q1" || len(quiz.Questions[0].Options) != 4 {
		t.Fatalf("first question = %+v", quiz.Questions[0])
	}

	quizzes.rows[0].IsActive = false
	if _, err := svc.ActiveQuiz(ctx); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestKnowledgeSubmit(t *testing.T) {
	cases := []struct {
		name    string
		answers []knowledge.Answer
		score   int
		correct int
		level   knowledge.Level
	}{
		{"eight correct", knowledgeAnswers("q1", "a", "q2", "b", "q3", "c", "q4", "c", "q5", "c", "q6", "a", "q7", "b", "q8", "b"), 80, 8, knowledge.LevelHigh},
		{"six correct", knowledgeAnswers("q1", "a", "q2", "b", "q3", "c", "q4", "c", "q5", "c", "q6", "a", "q7", "a", "q8", "a"), 60, 6, knowledge.LevelMedium},
		{"four correct", knowledgeAnswers("q1", "a", "q2", "b", "q3", "c", "q4", "c", "q5", "a"), 40, 4, knowledge.LevelLow},
		{"one correct", knowledgeAnswers("q1", "a", "q2", "a", "q3", "a"), 10, 1, knowledge.LevelVeryLow},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc, _, attempts := newKnowledgeService()
			res, err := svc.Submit(context.Background(), 0, seed.KnowledgeQuizID, c.answers, ClientInfo{IPAddress: "10.0.0.1"})
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			r := res.Results
			if r.Score != c.score || r.CorrectAnswers != c.correct || r.KnowledgeLevel != c.level {
				t.Fatalf("results = %+v", r)
			}
			if r.TotalQuestions != len(seed.KnowledgeQuiz().Questions) || len(r.Explanations) != len(c.answers) {
				t.Fatalf("totals = %d questions, %d explanations", r.TotalQuestions, len(r.Explanations))
			}

			stored := attempts.rows[res.AttemptID]
			if stored == nil || stored.UserID != nil || stored.Score != c.score || stored.KnowledgeLevel != c.level {
				t.Fatalf("stored = %+v", stored)
			}
			if stored.IPAddress != "10.0.0.1" || stored.UserAgent != "Unknown" || len(stored.Answers) != len(c.answers) {
				t.Fatalf("stored client info = %+v", stored)
			}
		})
	}
}

func TestKnowledgeSubmitSignedIn(t *testing.T) {
	svc, _, attempts := newKnowledgeService()
	res, err := svc.Submit(context.Background(), 5, seed.KnowledgeQuizID, knowledgeAnswers("q1", "a"), ClientInfo{UserAgent: "curl"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	stored := attempts.rows[res.AttemptID]
	if stored.UserID == nil || *stored.UserID != 5 || stored.UserAgent != "curl" || stored.HasSignedUp {
		t.Fatalf("stored = %+v", stored)
	}

	if _, err := svc.Submit(context.Background(), 0, "missing", knowledgeAnswers("q1", "a"), ClientInfo{}); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("unknown quiz err = %v", err)
	}
}

func TestLinkAttempt(t *testing.T) {
	svc, _, attempts := newKnowledgeService()
	ctx := context.Background()
	res, err := svc.Submit(ctx, 0, seed.KnowledgeQuizID, knowledgeAnswers("q1", "a", "q2", "b"), ClientInfo{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	linked, err := svc.LinkAttempt(ctx, 7, res.AttemptID)
	if err != nil {
		t.Fatalf("LinkAttempt: %v", err)
	}
	if linked.Score != 20 || linked.KnowledgeLevel != knowledge.LevelVeryLow {
		t.Fatalf("linked = %+v", linked)
	}
	stored := attempts.rows[res.AttemptID]
	if stored.UserID == nil || *stored.UserID != 7 || !stored.HasSignedUp || !stored.SignUpDate.Equal(linkTime) {
		t.Fatalf("stored = %+v", stored)
	}

	cases := []struct {
		name   string
		userID uint
		id     string
		want   error
	}{
		{"same user again", 7, res.AttemptID, nil},
		{"other user", 8, res.AttemptID, util.ErrAttemptLinked},
		{"unknown attempt", 7, "nope", util.ErrAttemptNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.LinkAttempt(ctx, c.userID, c.id)
			if !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
		})
	}
	if *attempts.rows[res.AttemptID].UserID != 7 {
		t.Fatalf("attempt was reassigned")
	}
}

func TestKnowledgeAnalytics(t *testing.T) {
	svc, _, _ := newKnowledgeService()
	ctx := context.Background()

	var first string
	for i, pairs := range [][]string{
		{"q1", "a", "q2", "b", "q3", "c", "q4", "c", "q5", "c", "q6", "a", "q7", "b", "q8", "b"},
		{"q1", "a", "q2", "b", "q3", "c", "q4", "c"},
		{"q1", "b"},
	} {
		res, err := svc.Submit(ctx, 0, seed.KnowledgeQuizID, knowledgeAnswers(pairs...), ClientInfo{})
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if i == 0 {
			first = res.AttemptID
		}
	}
	if _, err := svc.LinkAttempt(ctx, 3, first); err != nil {
		t.Fatalf("LinkAttempt: %v", err)
	}

	all, err := svc.Analytics(ctx, seed.KnowledgeQuizID, nil, nil)
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if all.TotalAttempts != 3 || all.SignedUpUsers != 1 || all.ConversionRate != 33.33 {
		t.Fatalf("analytics = %+v", all)
	}
	if all.ScoreStatistics.MinScore != 0 || all.ScoreStatistics.MaxScore != 80 || all.ScoreStatistics.AvgScore != 40 {
		t.Fatalf("score statistics = %+v", all.ScoreStatistics)
	}
	if len(all.PersonaDistribution) != 3 || all.PersonaDistribution[0].Level != knowledge.LevelHigh || len(all.DailyStats) != 3 {
		t.Fatalf("distribution = %+v daily = %+v", all.PersonaDistribution, all.DailyStats)
	}

	from := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	ranged, err := svc.Analytics(ctx, seed.KnowledgeQuizID, &from, nil)
	if err != nil {
		t.Fatalf("Analytics range: %v", err)
	}
	if ranged.TotalAttempts != 2 || ranged.SignedUpUsers != 0 || ranged.DailyStats[0].Date != "2026-01-02" {
		t.Fatalf("ranged = %+v", ranged)
	}

	if _, err := svc.Analytics(ctx, "missing", nil, nil); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("unknown quiz err = %v", err)
	}
}

func TestCreateKnowledgeQuiz(t *testing.T) {
	svc, quizzes, _ := newKnowledgeService()
	ctx := context.Background()

	invalid := &knowledge.Quiz{ID: "knowledge_quiz-v2", Title: "Empty"}
	if _, err := svc.CreateQuiz(ctx, invalid, ""); !errors.Is(err, knowledge.ErrInvalidQuiz) {
		t.Fatalf("invalid quiz err = %v", err)
	}
	if _, err := svc.CreateQuiz(ctx, seed.KnowledgeQuiz(), ""); !errors.Is(err, util.ErrQuizExists) {
		t.Fatalf("duplicate quiz err = %v", err)
	}

	next := seed.KnowledgeQuiz()
	next.ID = "knowledge_quiz-v2"
	next.Version = 0
	next.Questions = next.Questions[:3]
	row, err := svc.CreateQuiz(ctx, next, "")
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	if row.CreatedBy != "Admin" || row.Version != 1 || !row.IsActive {
		t.Fatalf("row = %+v", row)
	}
	if quizzes.rows[0].IsActive {
		t.Fatalf("previous quiz still active")
	}

	active, err := svc.ActiveQuiz(ctx)
	if err != nil || active.ID != "knowledge_quiz-v2" || len(active.Questions) != 3 {
		t.Fatalf("active = %+v, %v", active, err)
	}
}
