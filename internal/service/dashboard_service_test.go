package service

import (
	"context"
	"errors"
	"testing"

	"risk_screening_backend/internal/model"
	"risk_screening_backend/internal/risk"
	"risk_screening_backend/internal/util"
)

func TestRiskDataWithoutAttempt(t *testing.T) {
	svc := NewDashboardService(newMemQuizzes(t), &memAttempts{}, newMemUsers())
	data, err := svc.RiskData(context.Background(), 1)
	if err != nil {
		t.Fatalf("RiskData: %v", err)
	}
	if data.HasQuizData || data.RiskScore != nil || data.UserProfile != nil {
		t.Fatalf("expected empty dashboard, got %+v", data)
	}
	if data.UIText.Title != "MY CANCER RISK" || data.UIText.UrgencyMessage != "" {
		t.Fatalf("uiText = %+v", data.UIText)
	}
}

func TestRiskData(t *testing.T) {
	users := newMemUsers()
	user := &model.User{Name: "Alex", Email: "alex@example.com"}
	_ = users.Create(context.Background(), user)

	attempts := &memAttempts{}
	_ = attempts.Create(context.Background(), scoredAttempt(t, user.ID, "q1", "f", "q3", "f", "q4", "d", "q10", "b"))

	svc := NewDashboardService(newMemQuizzes(t), attempts, users)
	data, err := svc.RiskData(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("RiskData: %v", err)
	}
	if !data.HasQuizData {
		t.Fatalf("hasQuizData = false")
	}
	if data.UserProfile.Name != "Alex" || data.UserProfile.Age != "65+" || data.UserProfile.Gender != "Female" {
		t.Fatalf("profile = %+v", data.UserProfile)
	}
	want := RiskScore{Current: 120, Maximum: 320, Level: "MODERATE RISK", Percentage: 38}
	if *data.RiskScore != want {
		t.Fatalf("riskScore = %+v, want %+v", *data.RiskScore, want)
	}
	if len(data.RiskBreakdown) != 3 {
		t.Fatalf("riskBreakdown = %d factors", len(data.RiskBreakdown))
	}
	if len(data.ModifiableFactors)+len(data.NonModifiableFactors) != 14 {
		t.Fatalf("factor lists cover %d questions", len(data.ModifiableFactors)+len(data.NonModifiableFactors))
	}
	if data.UIText.UrgencyMessage != UrgencyMessage("MODERATE_RISK") {
		t.Fatalf("urgency = %q", data.UIText.UrgencyMessage)
	}
	if data.Colors == nil || data.Colors.HighRisk.Primary != "#DC2626" || data.LastUpdated == nil {
		t.Fatalf("colors/lastUpdated missing")
	}
}

func TestRiskDataUnknownUserAndProfile(t *testing.T) {
	attempts := &memAttempts{}
	_ = attempts.Create(context.Background(), scoredAttempt(t, 9, "q3", "a"))

	svc := NewDashboardService(newMemQuizzes(t), attempts, newMemUsers())
	data, err := svc.RiskData(context.Background(), 9)
	if err != nil {
		t.Fatalf("RiskData: %v", err)
	}
	if data.UserProfile.Name != "" || data.UserProfile.Age != "Unknown" || data.UserProfile.Gender != "Unknown" {
		t.Fatalf("profile = %+v", data.UserProfile)
	}
	if len(data.RiskBreakdown) != 0 {
		t.Fatalf("zero-point answers should not contribute")
	}
}

func TestRiskDataMissingQuizVersion(t *testing.T) {
	attempts := &memAttempts{}
	a := scoredAttempt(t, 2, "q1", "a")
	a.QuizID = "retired"
	_ = attempts.Create(context.Background(), a)

	svc := NewDashboardService(newMemQuizzes(t), attempts, newMemUsers())
	if _, err := svc.RiskData(context.Background(), 2); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestUrgencyMessage(t *testing.T) {
	if UrgencyMessage("LOW_RISK") == UrgencyMessage("MODERATE_RISK") {
		t.Fatalf("low and moderate share a message")
	}
	if UrgencyMessage("SOMETHING_ELSE") != UrgencyMessage("HIGH_RISK") {
		t.Fatalf("unknown level should fall back to the high risk message")
	}
}

func TestDashboardSimulate(t *testing.T) {
	attempts := &memAttempts{}
	_ = attempts.Create(context.Background(), scoredAttempt(t, 5, "q1", "f", "q3", "f", "q4", "d"))
	svc := NewDashboardService(newMemQuizzes(t), attempts, newMemUsers())

	sim, err := svc.Simulate(context.Background(), 5, map[string]string{"q3": "a"})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if sim.Current.PercentageScore != 38 || sim.Simulated.PercentageScore != 25 || sim.Delta != -13 {
		t.Fatalf("simulation = %+v", sim)
	}

	if _, err := svc.Simulate(context.Background(), 5, map[string]string{"q1": "a"}); !errors.Is(err, risk.ErrNotModifiable) {
		t.Fatalf("err = %v, want ErrNotModifiable", err)
	}
	if _, err := svc.Simulate(context.Background(), 6, map[string]string{"q3": "a"}); !errors.Is(err, util.ErrAttemptNotFound) {
		t.Fatalf("err = %v, want ErrAttemptNotFound", err)
	}
}
