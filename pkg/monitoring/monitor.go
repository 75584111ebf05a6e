package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// QuizSubmissions 按风险等级统计问卷提交数
	QuizSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_quiz_submissions_total",
			Help: "Lifestyle quiz submissions by resulting risk level",
		},
		[]string{"risk_level"},
	)

	RiskPercentage = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "risk_percentage_score",
			Help:    "Distribution of submitted risk percentage scores",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	KnowledgeSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "knowledge_quiz_submissions_total",
			Help: "Knowledge quiz submissions by knowledge level and whether the user was signed in",
		},
		[]string{"knowledge_level", "anonymous"},
	)

	Recommendations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screening_recommendations_total",
			Help: "Screening recommendations produced by test code and priority",
		},
		[]string{"test_code", "priority"},
	)

	PackageLookupFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screening_package_lookup_failures_total",
			Help: "Package lookups that failed and degraded to an empty list",
		},
		[]string{"test_code"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(QuizSubmissions)
	prometheus.MustRegister(RiskPercentage)
	prometheus.MustRegister(KnowledgeSubmissions)
	prometheus.MustRegister(Recommendations)
	prometheus.MustRegister(PackageLookupFailures)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
