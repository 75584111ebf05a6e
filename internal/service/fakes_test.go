package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"risk_screening_backend/internal/model"
	"risk_screening_backend/internal/risk"
	"risk_screening_backend/internal/seed"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type memUsers struct {
	mu        sync.Mutex
	byID      map[uint]*model.User
	nextID    uint
	lastLogin map[uint]time.Time
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uint]*model.User{}, lastLogin: map[uint]time.Time{}}
}

func (s *memUsers) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	u.ID = s.nextID
	copy := *u
	s.byID[u.ID] = &copy
	return nil
}

func (s *memUsers) FindByID(_ context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byID[id]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memUsers) UpdateLastLogin(_ context.Context, id uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLogin[id] = at
	return nil
}

type memQuizzes struct {
	byID map[string]*model.LifestyleQuiz
}

func newMemQuizzes(t *testing.T) *memQuizzes {
	t.Helper()
	def, err := seed.LifestyleQuiz()
	if err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	q := model.NewLifestyleQuiz(def)
	return &memQuizzes{byID: map[string]*model.LifestyleQuiz{q.ID: q}}
}

func (s *memQuizzes) Create(_ context.Context, q *model.LifestyleQuiz) error {
	s.byID[q.ID] = q
	return nil
}

func (s *memQuizzes) FindByID(_ context.Context, id string) (*model.LifestyleQuiz, error) {
	if q, ok := s.byID[id]; ok {
		return q, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memQuizzes) FindLatestActive(_ context.Context) (*model.LifestyleQuiz, error) {
	var latest *model.LifestyleQuiz
	for _, q := range s.byID {
		if q.IsActive && (latest == nil || q.Version > latest.Version) {
			latest = q
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

type memAttempts struct {
	mu   sync.Mutex
	rows []*model.LifestyleQuizAttempt
	seq  int
}

func (s *memAttempts) Create(_ context.Context, a *model.LifestyleQuizAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if a.ID == "" {
		a.ID = model.GenerateUUID()
	}
	a.CreatedAt = time.Date(2026, 1, 1, 0, 0, s.seq, 0, time.UTC)
	s.rows = append(s.rows, a)
	return nil
}

func (s *memAttempts) FindLatestByUser(_ context.Context, userID uint) (*model.LifestyleQuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.rows) - 1; i >= 0; i-- {
		if s.rows[i].UserID == userID {
			return s.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memAttempts) ListByUser(_ context.Context, userID uint, limit int) ([]model.LifestyleQuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.LifestyleQuizAttempt
	for i := len(s.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if s.rows[i].UserID == userID {
			out = append(out, *s.rows[i])
		}
	}
	return out, nil
}

// memScreening 由种子数据构建，failFor 中的项目查询套餐时返回错误
type memScreening struct {
	tests    map[string]model.ScreeningTest
	packages map[string][]model.ProviderTestPackage
	failFor  map[string]error
}

func newMemScreening() *memScreening {
	s := &memScreening{
		tests:    map[string]model.ScreeningTest{},
		packages: map[string][]model.ProviderTestPackage{},
		failFor:  map[string]error{},
	}
	providers := map[string]model.HealthcareProvider{}
	for i, p := range seed.Providers {
		providers[p.Code] = model.HealthcareProvider{
			BaseModel:   model.BaseModel{ID: uint(i + 1)},
			Code:        p.Code,
			Name:        p.Name,
			Description: p.Description,
			Website:     p.Website,
			Phone:       p.Phone,
			Email:       p.Email,
			IsActive:    true,
		}
	}
	for i, t := range seed.Tests {
		s.tests[t.Code] = model.ScreeningTest{
			BaseModel:   model.BaseModel{ID: uint(i + 1)},
			Code:        t.Code,
			Name:        t.Name,
			Category:    t.Category,
			Description: t.Description,
			Preparation: t.Preparation,
			Duration:    t.Duration,
			Frequency:   t.Frequency,
			IsActive:    true,
		}
	}
	for _, p := range seed.Packages {
		s.packages[p.TestCode] = append(s.packages[p.TestCode], model.ProviderTestPackage{
			Provider:        providers[p.ProviderCode],
			PackageName:     p.Name,
			PackageURL:      p.URL,
			Price:           datatypes.NewJSONType(p.Price),
			Availability:    datatypes.NewJSONType(p.Availability),
			Specializations: p.Specializations,
			Priority:        p.Priority,
			IsActive:        true,
			AdditionalInfo:  datatypes.NewJSONType(p.AdditionalInfo),
		})
	}
	for code := range s.packages {
		rows := s.packages[code]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Priority > rows[j].Priority })
	}
	return s
}

func (s *memScreening) FindActiveTestByCode(_ context.Context, code string) (*model.ScreeningTest, error) {
	if t, ok := s.tests[code]; ok {
		return &t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memScreening) ListActiveTests(_ context.Context) ([]model.ScreeningTest, error) {
	out := make([]model.ScreeningTest, 0, len(s.tests))
	for _, t := range seed.Tests {
		out = append(out, s.tests[t.Code])
	}
	return out, nil
}

func (s *memScreening) FindActiveTestsByCodes(_ context.Context, codes []string) ([]model.ScreeningTest, error) {
	var out []model.ScreeningTest
	for _, c := range codes {
		if t, ok := s.tests[c]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memScreening) ListActivePackagesByTestCode(_ context.Context, code string) ([]model.ProviderTestPackage, error) {
	if err := s.failFor[code]; err != nil {
		return nil, err
	}
	return s.packages[code], nil
}

func (s *memScreening) AvailableTestCodes(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(s.packages))
	for code := range s.packages {
		out = append(out, code)
	}
	sort.Strings(out)
	return out, nil
}

type memKnowledgeQuizzes struct {
	rows []*model.KnowledgeQuiz
}

func newMemKnowledgeQuizzes() *memKnowledgeQuizzes {
	return &memKnowledgeQuizzes{rows: []*model.KnowledgeQuiz{model.NewKnowledgeQuiz(seed.KnowledgeQuiz(), "SCS Admin")}}
}

func (s *memKnowledgeQuizzes) FindByID(_ context.Context, id string) (*model.KnowledgeQuiz, error) {
	for _, q := range s.rows {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memKnowledgeQuizzes) FindActive(_ context.Context) (*model.KnowledgeQuiz, error) {
	for i := len(s.rows) - 1; i >= 0; i-- {
		if s.rows[i].IsActive {
			return s.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memKnowledgeQuizzes) CreateActive(_ context.Context, q *model.KnowledgeQuiz) error {
	for _, row := range s.rows {
		row.IsActive = false
	}
	q.IsActive = true
	s.rows = append(s.rows, q)
	return nil
}

type memKnowledgeAttempts struct {
	rows map[string]*model.KnowledgeQuizAttempt
	seq  int
}

func newMemKnowledgeAttempts() *memKnowledgeAttempts {
	return &memKnowledgeAttempts{rows: map[string]*model.KnowledgeQuizAttempt{}}
}

func (s *memKnowledgeAttempts) Create(_ context.Context, a *model.KnowledgeQuizAttempt) error {
	s.seq++
	if a.ID == "" {
		a.ID = model.GenerateUUID()
	}
	a.CreatedAt = time.Date(2026, 1, s.seq, 12, 0, 0, 0, time.UTC)
	s.rows[a.ID] = a
	return nil
}

func (s *memKnowledgeAttempts) FindByID(_ context.Context, id string) (*model.KnowledgeQuizAttempt, error) {
	if a, ok := s.rows[id]; ok {
		row := *a
		return &row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memKnowledgeAttempts) LinkUser(_ context.Context, id string, userID uint, at time.Time) error {
	a, ok := s.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.UserID = &userID
	a.HasSignedUp = true
	a.SignUpDate = &at
	return nil
}

func (s *memKnowledgeAttempts) ListForAnalytics(_ context.Context, quizID string, from, to *time.Time) ([]model.KnowledgeQuizAttempt, error) {
	var out []model.KnowledgeQuizAttempt
	for _, a := range s.rows {
		if a.QuizID != quizID {
			continue
		}
		if (from != nil && a.CreatedAt.Before(*from)) || (to != nil && a.CreatedAt.After(*to)) {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func scoredAttempt(t *testing.T, userID uint, in ...string) *model.LifestyleQuizAttempt {
	t.Helper()
	def, err := seed.LifestyleQuiz()
	if err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	answers := make([]risk.Answer, 0, len(in)/2)
	for i := 0; i+1 < len(in); i += 2 {
		answers = append(answers, risk.Answer{QuestionID: in[i], OptionID: in[i+1]})
	}
	res, err := risk.Score(def, answers)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	return model.NewAttempt(userID, def.ID, res)
}
