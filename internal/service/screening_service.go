package service

import (
	"context"
	"errors"
	"math/rand"
	"risk_screening_backend/internal/model"
	"risk_screening_backend/internal/risk"
	"risk_screening_backend/internal/util"
	"risk_screening_backend/pkg/logger"
	"risk_screening_backend/pkg/monitoring"
	"risk_screening_backend/pkg/tracing"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const defaultLookupConcurrency = 4

type ScreeningService struct {
	QuizRepo      QuizStore
	AttemptRepo   AttemptStore
	ScreeningRepo ScreeningStore
	// Concurrency 同时进行的套餐查询数
	Concurrency int
	// Shuffle 打乱 "全部筛查" 列表，测试中可替换为固定顺序
	Shuffle func(n int, swap func(i, j int))
}

func NewScreeningService(quizRepo QuizStore, attemptRepo AttemptStore, screeningRepo ScreeningStore, concurrency int) *ScreeningService {
	if concurrency <= 0 {
		concurrency = defaultLookupConcurrency
	}
	return &ScreeningService{
		QuizRepo:      quizRepo,
		AttemptRepo:   attemptRepo,
		ScreeningRepo: screeningRepo,
		Concurrency:   concurrency,
		Shuffle:       rand.Shuffle,
	}
}

type PackageDetail struct {
	Name          string          `json:"name"`
	URL           string          `json:"url"`
	Price         risk.Price      `json:"price"`
	WaitTime      string          `json:"waitTime,omitempty"`
	OnlineBooking bool            `json:"onlineBooking"`
	Locations     []string        `json:"locations"`
	Includes      []string        `json:"includes,omitempty"`
	Requirements  []string        `json:"requirements,omitempty"`
	QuickInfo     *risk.QuickInfo `json:"quickInfo,omitempty"`
}

type Suitability struct {
	HighRisk      bool    `json:"highRisk"`
	FamilyHistory bool    `json:"familyHistory"`
	FastTrack     bool    `json:"fastTrack"`
	BestFor       *string `json:"bestFor,omitempty"`
}

// PackageView 套餐对外展示格式
type PackageView struct {
	Provider    risk.ProviderInfo `json:"provider"`
	Package     PackageDetail     `json:"package"`
	Suitability Suitability       `json:"suitability"`
}

func packageView(p risk.Package) PackageView {
	return PackageView{
		Provider: p.Provider,
		Package: PackageDetail{
			Name:          p.Name,
			URL:           p.URL,
			Price:         p.Price,
			WaitTime:      p.AdditionalInfo.WaitTime,
			OnlineBooking: p.Availability.OnlineBooking,
			Locations:     p.Availability.Locations,
			Includes:      p.AdditionalInfo.Includes,
			Requirements:  p.AdditionalInfo.Requirements,
		},
		Suitability: Suitability{
			HighRisk:      p.Specializations.HighRisk,
			FamilyHistory: p.Specializations.FamilyHistory,
			FastTrack:     p.Specializations.FastTrack,
		},
	}
}

func quickPackageView(p risk.Package, profile *risk.UserProfile, priority risk.Priority) PackageView {
	v := packageView(p)
	qi := risk.QuickInfoOf(p, profile, priority)
	v.Package.QuickInfo = &qi
	return v
}

type EnrichedRecommendation struct {
	Test            string        `json:"test"`
	TestName        string        `json:"testName"`
	TestDescription string        `json:"testDescription"`
	Priority        risk.Priority `json:"priority"`
	Reasons         []string      `json:"reasons"`
	WhyText         string        `json:"whyText"`
	Packages        []PackageView `json:"packages"`

	ranked []risk.Package
}

type RecommendationProfile struct {
	Age             *int    `json:"age"`
	AgeGroup        *string `json:"ageGroup"`
	Gender          *string `json:"gender"`
	RiskScore       int     `json:"riskScore"`
	RiskLevel       string  `json:"riskLevel"`
	RiskLabel       string  `json:"riskLabel"`
	RiskDescription string  `json:"riskDescription"`
}

type RecommendationSummary struct {
	TotalRecommendations int `json:"totalRecommendations"`
	HighPriority         int `json:"highPriority"`
	MediumPriority       int `json:"mediumPriority"`
	LowPriority          int `json:"lowPriority"`
	TotalPackages        int `json:"totalPackages"`
}

type RecommendationsResult struct {
	UserProfile     RecommendationProfile    `json:"userProfile"`
	Recommendations []EnrichedRecommendation `json:"recommendations"`
	Summary         RecommendationSummary    `json:"summary"`
	LastUpdated     time.Time                `json:"lastUpdated"`
}

type RecommendedPackage struct {
	Provider      risk.ProviderInfo `json:"provider"`
	PackageName   string            `json:"packageName"`
	PackageURL    string            `json:"packageUrl"`
	Price         string            `json:"price"`
	WaitTime      string            `json:"waitTime"`
	CanBookOnline bool              `json:"canBookOnline"`
	BestFor       string            `json:"bestFor"`
}

type ChecklistPackageDetail struct {
	Name          string   `json:"name"`
	URL           string   `json:"url"`
	Price         string   `json:"price"`
	WaitTime      string   `json:"waitTime,omitempty"`
	OnlineBooking bool     `json:"onlineBooking"`
	Locations     []string `json:"locations"`
	BestFor       string   `json:"bestFor"`
}

type ChecklistPackage struct {
	Provider risk.ProviderInfo      `json:"provider"`
	Package  ChecklistPackageDetail `json:"package"`
}

type ProviderLink struct {
	Code string `json:"code"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type ChecklistItem struct {
	TestName           string              `json:"testName"`
	Priority           risk.Priority       `json:"priority"`
	Reasons            []string            `json:"reasons"`
	WhyText            string              `json:"whyText"`
	RecommendedPackage *RecommendedPackage `json:"recommendedPackage"`
	AllPackages        []ChecklistPackage  `json:"allPackages"`
	Providers          []ProviderLink      `json:"providers"`
	NearestProvider    string              `json:"nearestProvider,omitempty"`
}

type ChecklistUserInfo struct {
	Gender    *string `json:"gender"`
	Age       *int    `json:"age"`
	RiskLevel string  `json:"riskLevel"`
	RiskScore string  `json:"riskScore"`
}

type Checklist struct {
	UserInfo       ChecklistUserInfo `json:"userInfo"`
	ScreeningItems []ChecklistItem   `json:"screeningItems"`
}

type ProviderRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type PackageRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type FeaturedPackage struct {
	Provider   ProviderRef `json:"provider"`
	PackageURL string      `json:"packageUrl"`
}

type PackageLink struct {
	Provider ProviderRef `json:"provider"`
	Package  PackageRef  `json:"package"`
}

type ScreeningListing struct {
	TestName           string           `json:"testName"`
	WhyText            string           `json:"whyText"`
	Providers          []ProviderLink   `json:"providers"`
	RecommendedPackage *FeaturedPackage `json:"recommendedPackage"`
	AllPackages        []PackageLink    `json:"allPackages"`
}

type TestInfo struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Preparation string `json:"preparation"`
	Duration    string `json:"duration"`
	Frequency   string `json:"frequency"`
}

type TestRef struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UserPackageRecommendation struct {
	RecommendedPackage *PackageView `json:"recommendedPackage"`
	TotalOptions       int          `json:"totalOptions"`
}

type TestProviders struct {
	Test               TestRef                    `json:"test"`
	Packages           []PackageView              `json:"packages"`
	UserRecommendation *UserPackageRecommendation `json:"userRecommendation"`
}

type plan struct {
	assessment *Assessment
	profile    *risk.UserProfile
	items      []EnrichedRecommendation
}

// personalize 完整的推荐流程：最近作答 -> 画像 -> 规则 -> 套餐
func (s *ScreeningService) personalize(ctx context.Context, userID uint) (*plan, error) {
	a, err := latestAssessment(ctx, s.QuizRepo, s.AttemptRepo, userID)
	if err != nil {
		return nil, err
	}
	profile := a.Profile()

	codes, err := s.ScreeningRepo.AvailableTestCodes(ctx)
	if err != nil {
		return nil, err
	}

	recs := risk.Recommend(profile, a.Attempt.PercentageScore, risk.NewCodeSet(codes...))
	for _, r := range recs {
		monitoring.Recommendations.WithLabelValues(r.TestCode, string(r.Priority)).Inc()
	}
	logger.Log.Debug("Screening recommendations evaluated",
		zap.Uint("userId", userID),
		zap.String("attemptId", a.Attempt.ID),
		zap.Int("percentage", a.Attempt.PercentageScore),
		zap.Int("available", len(codes)),
		zap.Int("recommendations", len(recs)),
	)

	items, err := s.enrich(ctx, recs, profile)
	if err != nil {
		return nil, err
	}
	return &plan{assessment: a, profile: profile, items: items}, nil
}

// enrich 并发查询每个推荐项目的套餐；单个项目查询失败时该项目的套餐列表为空
func (s *ScreeningService) enrich(ctx context.Context, recs []risk.Recommendation, profile *risk.UserProfile) (items []EnrichedRecommendation, err error) {
	items = make([]EnrichedRecommendation, 0, len(recs))
	if len(recs) == 0 {
		return items, nil
	}

	ctx, span := tracing.StartSpan(ctx, "ScreeningService.enrich", attribute.Int("recommendations", len(recs)))
	defer func() { tracing.EndSpan(span, err) }()

	codes := make([]string, len(recs))
	for i, r := range recs {
		codes[i] = r.TestCode
	}
	tests, err := s.ScreeningRepo.FindActiveTestsByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	descriptions := make(map[string]string, len(tests))
	for _, t := range tests {
		descriptions[t.Code] = t.Description
	}

	packages := make([][]risk.Package, len(recs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)
	for i, r := range recs {
		i, r := i, r
		g.Go(func() error {
			rows, err := s.ScreeningRepo.ListActivePackagesByTestCode(gctx, r.TestCode)
			if err != nil {
				logger.Log.Warn("Package lookup failed, continuing without packages",
					zap.String("testCode", r.TestCode),
					zap.Error(err),
				)
				monitoring.PackageLookupFailures.WithLabelValues(r.TestCode).Inc()
				return nil
			}
			packages[i] = risk.RankPackages(toPackages(rows), r.Priority)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, r := range recs {
		description, ok := descriptions[r.TestCode]
		if !ok || description == "" {
			description = r.TestName + " screening"
		}
		views := make([]PackageView, 0, len(packages[i]))
		for _, p := range packages[i] {
			views = append(views, quickPackageView(p, profile, r.Priority))
		}
		items = append(items, EnrichedRecommendation{
			Test:            r.TestCode,
			TestName:        r.TestName,
			TestDescription: description,
			Priority:        r.Priority,
			Reasons:         r.Reasons,
			WhyText:         description,
			Packages:        views,
			ranked:          packages[i],
		})
	}
	return items, nil
}

func toPackages(rows []model.ProviderTestPackage) []risk.Package {
	out := make([]risk.Package, len(rows))
	for i := range rows {
		out[i] = rows[i].ToPackage()
	}
	return out
}

func (s *ScreeningService) Recommendations(ctx context.Context, userID uint) (res *RecommendationsResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "ScreeningService.Recommendations")
	defer func() { tracing.EndSpan(span, err) }()

	p, err := s.personalize(ctx, userID)
	if err != nil {
		return nil, err
	}

	attempt := p.assessment.Attempt
	band := attempt.RiskData.Data()
	res = &RecommendationsResult{
		UserProfile: RecommendationProfile{
			Age:             p.profile.Age,
			AgeGroup:        p.profile.AgeGroup,
			Gender:          p.profile.Gender,
			RiskScore:       attempt.PercentageScore,
			RiskLevel:       attempt.RiskLevel,
			RiskLabel:       band.Label,
			RiskDescription: band.Description,
		},
		Recommendations: p.items,
		LastUpdated:     attempt.CreatedAt,
	}

	res.Summary.TotalRecommendations = len(p.items)
	for _, item := range p.items {
		switch item.Priority {
		case risk.PriorityHigh:
			res.Summary.HighPriority++
		case risk.PriorityMedium:
			res.Summary.MediumPriority++
		case risk.PriorityLow:
			res.Summary.LowPriority++
		}
		res.Summary.TotalPackages += len(item.Packages)
	}
	return res, nil
}

// ChecklistRiskLevel "Moderate Risk" -> "MODERATE_RISK"
func ChecklistRiskLevel(label string) string {
	return strings.Replace(strings.ToUpper(label), " ", "_", 1)
}

func (s *ScreeningService) Checklist(ctx context.Context, userID uint) (res *Checklist, err error) {
	ctx, span := tracing.StartSpan(ctx, "ScreeningService.Checklist")
	defer func() { tracing.EndSpan(span, err) }()

	p, err := s.personalize(ctx, userID)
	if err != nil {
		return nil, err
	}

	attempt := p.assessment.Attempt
	res = &Checklist{
		UserInfo: ChecklistUserInfo{
			Gender:    p.profile.Gender,
			Age:       p.profile.Age,
			RiskLevel: ChecklistRiskLevel(attempt.RiskData.Data().Label),
			RiskScore: "(" + strconv.Itoa(attempt.PercentageScore) + ")",
		},
		ScreeningItems: make([]ChecklistItem, 0, len(p.items)),
	}

	for _, item := range p.items {
		res.ScreeningItems = append(res.ScreeningItems, checklistItem(item, p.profile))
	}
	return res, nil
}

func checklistItem(item EnrichedRecommendation, profile *risk.UserProfile) ChecklistItem {
	ci := ChecklistItem{
		TestName:    item.TestName,
		Priority:    item.Priority,
		Reasons:     item.Reasons,
		WhyText:     item.TestDescription,
		AllPackages: make([]ChecklistPackage, 0, len(item.ranked)),
		Providers:   make([]ProviderLink, 0, len(item.ranked)),
	}

	for _, pkg := range item.ranked {
		qi := risk.QuickInfoOf(pkg, profile, item.Priority)
		ci.AllPackages = append(ci.AllPackages, ChecklistPackage{
			Provider: pkg.Provider,
			Package: ChecklistPackageDetail{
				Name:          pkg.Name,
				URL:           pkg.URL,
				Price:         qi.Price,
				WaitTime:      pkg.AdditionalInfo.WaitTime,
				OnlineBooking: pkg.Availability.OnlineBooking,
				Locations:     pkg.Availability.Locations,
				BestFor:       qi.BestFor,
			},
		})
		ci.Providers = append(ci.Providers, ProviderLink{
			Code: pkg.Provider.Code,
			Name: pkg.Provider.Name,
			URL:  pkg.URL,
		})
	}

	if best, ok := risk.BestPackage(item.ranked, item.Priority); ok {
		qi := risk.QuickInfoOf(best, profile, item.Priority)
		ci.RecommendedPackage = &RecommendedPackage{
			Provider:      best.Provider,
			PackageName:   best.Name,
			PackageURL:    best.URL,
			Price:         qi.Price,
			WaitTime:      qi.WaitTime,
			CanBookOnline: qi.CanBookOnline,
			BestFor:       qi.BestFor,
		}
		ci.NearestProvider = best.Provider.Code
	}
	return ci
}

// All 所有启用项目及其套餐，不做个性化，顺序随机
func (s *ScreeningService) All(ctx context.Context) (listings []ScreeningListing, err error) {
	ctx, span := tracing.StartSpan(ctx, "ScreeningService.All")
	defer func() { tracing.EndSpan(span, err) }()

	tests, err := s.ScreeningRepo.ListActiveTests(ctx)
	if err != nil {
		return nil, err
	}

	listings = make([]ScreeningListing, len(tests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)
	for i, t := range tests {
		i, t := i, t
		g.Go(func() error {
			rows, err := s.ScreeningRepo.ListActivePackagesByTestCode(gctx, t.Code)
			if err != nil {
				logger.Log.Warn("Package lookup failed, continuing without packages",
					zap.String("testCode", t.Code),
					zap.Error(err),
				)
				monitoring.PackageLookupFailures.WithLabelValues(t.Code).Inc()
			}
			listings[i] = listingOf(t, toPackages(rows))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.Shuffle(len(listings), func(i, j int) {
		listings[i], listings[j] = listings[j], listings[i]
	})
	return listings, nil
}

func listingOf(t model.ScreeningTest, pkgs []risk.Package) ScreeningListing {
	why := t.Description
	if why == "" {
		why = "General screening for " + strings.ToLower(t.Name)
	}
	l := ScreeningListing{
		TestName:    t.Name,
		WhyText:     why,
		Providers:   make([]ProviderLink, 0, len(pkgs)),
		AllPackages: make([]PackageLink, 0, len(pkgs)),
	}
	for _, p := range pkgs {
		ref := ProviderRef{Code: p.Provider.Code, Name: p.Provider.Name}
		l.Providers = append(l.Providers, ProviderLink{Code: ref.Code, Name: ref.Name, URL: p.URL})
		l.AllPackages = append(l.AllPackages, PackageLink{
			Provider: ref,
			Package:  PackageRef{Name: p.Name, URL: p.URL},
		})
	}
	if len(pkgs) > 0 {
		l.RecommendedPackage = &FeaturedPackage{
			Provider:   ProviderRef{Code: pkgs[0].Provider.Code, Name: pkgs[0].Provider.Name},
			PackageURL: pkgs[0].URL,
		}
	}
	return l
}

func (s *ScreeningService) findTest(ctx context.Context, code string) (*model.ScreeningTest, error) {
	test, err := s.ScreeningRepo.FindActiveTestByCode(ctx, strings.ToUpper(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	return test, nil
}

func (s *ScreeningService) TestInfo(ctx context.Context, code string) (*TestInfo, error) {
	test, err := s.findTest(ctx, code)
	if err != nil {
		return nil, err
	}
	return &TestInfo{
		Code:        test.Code,
		Name:        test.Name,
		Category:    test.Category,
		Description: test.Description,
		Preparation: test.Preparation,
		Duration:    test.Duration,
		Frequency:   test.Frequency,
	}, nil
}

// TestProviders 某个项目的全部套餐。userID 为 0 或用户没有作答时不做个性化。
func (s *ScreeningService) TestProviders(ctx context.Context, userID uint, code string) (res *TestProviders, err error) {
	ctx, span := tracing.StartSpan(ctx, "ScreeningService.TestProviders", attribute.String("test.code", code))
	defer func() { tracing.EndSpan(span, err) }()

	var profile *risk.UserProfile
	if userID != 0 {
		a, err := latestAssessment(ctx, s.QuizRepo, s.AttemptRepo, userID)
		switch {
		case err == nil:
			profile = a.Profile()
		case errors.Is(err, util.ErrAttemptNotFound):
		default:
			return nil, err
		}
	}

	test, err := s.findTest(ctx, code)
	if err != nil {
		return nil, err
	}
	rows, err := s.ScreeningRepo.ListActivePackagesByTestCode(ctx, test.Code)
	if err != nil {
		return nil, err
	}
	pkgs := toPackages(rows)

	res = &TestProviders{
		Test:     TestRef{Code: test.Code, Name: test.Name, Description: test.Description},
		Packages: make([]PackageView, 0, len(pkgs)),
	}
	for _, p := range pkgs {
		v := packageView(p)
		if profile != nil {
			label := risk.BestForLabel(p.Specializations, profile, risk.PriorityMedium)
			v.Suitability.BestFor = &label
		}
		res.Packages = append(res.Packages, v)
	}

	if profile != nil {
		rec := &UserPackageRecommendation{TotalOptions: len(pkgs)}
		if best, ok := risk.BestPackage(pkgs, risk.PriorityMedium); ok {
			v := packageView(best)
			label := risk.BestForLabel(best.Specializations, profile, risk.PriorityMedium)
			v.Suitability.BestFor = &label
			rec.RecommendedPackage = &v
		}
		res.UserRecommendation = rec
	}
	return res, nil
}
