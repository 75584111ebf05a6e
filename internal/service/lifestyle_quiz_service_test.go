package service

import (
	"context"
	"errors"
	"testing"

	"risk_screening_backend/internal/risk"
	"risk_screening_backend/internal/seed"
	"risk_screening_backend/internal/util"
)

func TestActiveQuizHidesPoints(t *testing.T) {
	svc := NewLifestyleQuizService(newMemQuizzes(t), &memAttempts{})
	quiz, err := svc.ActiveQuiz(context.Background())
	if err != nil {
		t.Fatalf("ActiveQuiz: %v", err)
	}
	if quiz.ID != seed.LifestyleQuizID || len(quiz.Questions) != 14 {
		t.Fatalf("quiz = %s with %d questions", quiz.ID, len(quiz.Questions))
	}
	if q := quiz.Questions[3]; q.ID != "q4" || q.SubText == "" || len(q.Options) != 4 {
		t.Fatalf("q4 = %+v", q)
	}
}

func TestActiveQuizMissing(t *testing.T) {
	svc := NewLifestyleQuizService(&memQuizzes{byID: nil}, &memAttempts{})
	if _, err := svc.ActiveQuiz(context.Background()); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestSubmitScoresAndStores(t *testing.T) {
	attempts := &memAttempts{}
	svc := NewLifestyleQuizService(newMemQuizzes(t), attempts)

	res, err := svc.Submit(context.Background(), 7, seed.LifestyleQuizID, []risk.Answer{
		{QuestionID: "q1", OptionID: "f"},
		{QuestionID: "q3", OptionID: "f"},
		{QuestionID: "q4", OptionID: "d"},
		{QuestionID: "q10", OptionID: "a"},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	r := res.Results
	if r.TotalScore != 120 || r.MaxPossibleScore != 320 || r.PercentageScore != 38 {
		t.Fatalf("results = %+v", r)
	}
	if r.RiskLevel != "MODERATE_RISK" || r.RiskLabel != "Moderate Risk" || r.RiskColor != "#D97706" {
		t.Fatalf("band = %s/%s/%s", r.RiskLevel, r.RiskLabel, r.RiskColor)
	}
	if p := r.CategoryBreakdown["primary"]; p.Score != 120 || p.MaxScore != 200 || p.Percentage != 60 {
		t.Fatalf("primary = %+v", p)
	}
	if len(r.CategoryBreakdown) != 3 {
		t.Fatalf("breakdown has %d categories", len(r.CategoryBreakdown))
	}

	stored, err := attempts.FindLatestByUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("attempt not stored: %v", err)
	}
	if stored.ID != res.AttemptID || stored.TotalScore != 120 || len(stored.Answers) != 4 {
		t.Fatalf("stored attempt = %+v", stored)
	}
	if stored.RiskData.Data().Label != "Moderate Risk" {
		t.Fatalf("stored band = %+v", stored.RiskData.Data())
	}
}

func TestSubmitErrors(t *testing.T) {
	cases := []struct {
		name    string
		quizID  string
		answers []risk.Answer
		want    error
	}{
		{"unknown quiz", "nope", []risk.Answer{{QuestionID: "q1", OptionID: "a"}}, util.ErrQuizNotFound},
		{"unknown question", seed.LifestyleQuizID, []risk.Answer{{QuestionID: "q99", OptionID: "a"}}, risk.ErrQuestionNotFound},
		{"unknown option", seed.LifestyleQuizID, []risk.Answer{{QuestionID: "q1", OptionID: "z"}}, risk.ErrOptionNotFound},
		{"duplicate", seed.LifestyleQuizID, []risk.Answer{{QuestionID: "q1", OptionID: "a"}, {QuestionID: "q1", OptionID: "b"}}, risk.ErrDuplicateAnswer},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			attempts := &memAttempts{}
			svc := NewLifestyleQuizService(newMemQuizzes(t), attempts)
			if _, err := svc.Submit(context.Background(), 1, c.quizID, c.answers); !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
			if len(attempts.rows) != 0 {
				t.Fatalf("failed submission was stored")
			}
		})
	}
}

func TestRecentAttempts(t *testing.T) {
	attempts := &memAttempts{}
	svc := NewLifestyleQuizService(newMemQuizzes(t), attempts)
	for i := 0; i < util.RecentAttemptsLimit+2; i++ {
		if _, err := svc.Submit(context.Background(), 3, seed.LifestyleQuizID, []risk.Answer{{QuestionID: "q1", OptionID: "a"}}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	_ = attempts.Create(context.Background(), scoredAttempt(t, 4, "q1", "f"))

	list, err := svc.RecentAttempts(context.Background(), 3)
	if err != nil {
		t.Fatalf("RecentAttempts: %v", err)
	}
	if len(list) != util.RecentAttemptsLimit {
		t.Fatalf("got %d attempts, want %d", len(list), util.RecentAttemptsLimit)
	}
	if !list[0].CreatedAt.After(list[1].CreatedAt) {
		t.Fatalf("attempts not newest first")
	}
	if list[0].RiskLabel != "Low Risk" {
		t.Fatalf("label = %q", list[0].RiskLabel)
	}
}

func TestCreateQuiz(t *testing.T) {
	quizzes := newMemQuizzes(t)
	svc := NewLifestyleQuizService(quizzes, &memAttempts{})

	def, err := seed.LifestyleQuiz()
	if err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	if _, err := svc.CreateQuiz(context.Background(), def); !errors.Is(err, util.ErrQuizExists) {
		t.Fatalf("err = %v, want ErrQuizExists", err)
	}

	next := *def
	next.ID = "lifestyle_quiz-v2"
	next.Version = 2
	created, err := svc.CreateQuiz(context.Background(), &next)
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	if created.Version != 2 {
		t.Fatalf("version = %d", created.Version)
	}
	latest, err := svc.ActiveQuiz(context.Background())
	if err != nil || latest.ID != "lifestyle_quiz-v2" {
		t.Fatalf("latest = %v, %v", latest, err)
	}

	broken := next
	broken.ID = "lifestyle_quiz-v3"
	broken.Scoring.MaxTotalPoints = 100
	if _, err := svc.CreateQuiz(context.Background(), &broken); !errors.Is(err, risk.ErrInvalidDefinition) {
		t.Fatalf("err = %v, want ErrInvalidDefinition", err)
	}
}
