package app

import (
	"testing"

	"risk_screening_backend/internal/config"
	"risk_screening_backend/internal/controller"

	"github.com/gin-gonic/gin"
)

func registeredRoutes(t *testing.T) map[string]string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	c := &controllers{
		auth:      &controller.AuthController{},
		quiz:      &controller.LifestyleQuizController{},
		dashboard: &controller.DashboardController{},
		screening: &controller.ScreeningController{},
		knowledge: &controller.KnowledgeQuizController{},
		health:    &controller.HealthController{},
	}
	(&App{}).registerRoutes(router, c, &config.Config{})

	routes := make(map[string]string)
	for _, r := range router.Routes() {
		routes[r.Method+" "+r.Path] = r.Handler
	}
	return routes
}

func TestRegisterRoutes(t *testing.T) {
	routes := registeredRoutes(t)

	for _, key := range []string{
		"GET /api/screening/all",
		"GET /api/screening/all-available",
		"GET /api/screening/test-info/:testCode",
		"GET /api/screening/test-providers/:testCode",
		"GET /api/screening/recommendations",
		"GET /api/screening/checklist",
		"GET /api/lifestyle-quiz/active",
		"POST /api/lifestyle-quiz/submit",
		"GET /api/dashboard/risk-data",
		"POST /api/dashboard/simulate",
		"GET /api/quiz/active",
		"POST /api/quiz/submit",
		"POST /api/quiz/link-attempt",
		"GET /api/quiz/:quizId/analytics",
		"POST /api/quiz/create",
	} {
		if _, ok := routes[key]; !ok {
			t.Fatalf("route %s not registered", key)
		}
	}

	if all, alias := routes["GET /api/screening/all"], routes["GET /api/screening/all-available"]; all != alias {
		t.Fatalf("all-available handler = %s, want %s", alias, all)
	}
}
