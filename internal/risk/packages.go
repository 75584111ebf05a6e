package risk

import (
	"strconv"
	"strings"
)

// MaxPackagesPerTest 每个推荐最多展示的套餐数
const MaxPackagesPerTest = 3

const (
	contactForPricing  = "Contact for pricing"
	contactProvider    = "Contact provider"
	generalScreening   = "General Screening"
	labelHighRisk      = "High Risk Patients"
	labelFamilyHistory = "Family History"
	labelFastTrack     = "Fast Track Available"
)

type Subsidy struct {
	Amount      *float64 `json:"amount,omitempty"`
	Eligibility string   `json:"eligibility,omitempty"`
}

type Price struct {
	Amount     *float64 `json:"amount,omitempty"`
	Currency   string   `json:"currency"`
	Subsidized *Subsidy `json:"subsidized,omitempty"`
}

type Availability struct {
	Locations     []string `json:"locations"`
	OnlineBooking bool     `json:"onlineBooking"`
	WalkIn        bool     `json:"walkIn"`
}

type Specializations struct {
	HighRisk      bool `json:"highRisk"`
	FamilyHistory bool `json:"familyHistory"`
	FastTrack     bool `json:"fastTrack"`
}

func (s Specializations) Any() bool {
	return s.HighRisk || s.FamilyHistory || s.FastTrack
}

type AdditionalInfo struct {
	WaitTime     string   `json:"waitTime,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
	Includes     []string `json:"includes,omitempty"`
}

type ProviderInfo struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Package 某个机构针对某个项目的一个套餐，Priority 越大越靠前
type Package struct {
	Name            string          `json:"name"`
	URL             string          `json:"url"`
	Provider        ProviderInfo    `json:"provider"`
	Price           Price           `json:"price"`
	Availability    Availability    `json:"availability"`
	Specializations Specializations `json:"specializations"`
	AdditionalInfo  AdditionalInfo  `json:"additionalInfo"`
	Priority        int             `json:"priority"`
}

// RankPackages 高优先级推荐把专科套餐排在前面，两组内部保持原有顺序；最多返回 3 个。
// 入参须已按 Priority 降序排列。
func RankPackages(pkgs []Package, priority Priority) []Package {
	ranked := make([]Package, 0, len(pkgs))
	if priority == PriorityHigh {
		for _, p := range pkgs {
			if p.Specializations.Any() {
				ranked = append(ranked, p)
			}
		}
		for _, p := range pkgs {
			if !p.Specializations.Any() {
				ranked = append(ranked, p)
			}
		}
	} else {
		ranked = append(ranked, pkgs...)
	}
	if len(ranked) > MaxPackagesPerTest {
		ranked = ranked[:MaxPackagesPerTest]
	}
	return ranked
}

// BestPackage 依次尝试：高优先级时第一个专科套餐、第一个支持在线预约的套餐、第一个套餐
func BestPackage(pkgs []Package, priority Priority) (Package, bool) {
	if len(pkgs) == 0 {
		return Package{}, false
	}
	if priority == PriorityHigh {
		for _, p := range pkgs {
			if p.Specializations.Any() {
				return p, true
			}
		}
	}
	for _, p := range pkgs {
		if p.Availability.OnlineBooking {
			return p, true
		}
	}
	return pkgs[0], true
}

// BestForLabel 根据套餐特长和用户情况生成 "适合人群" 文案，profile 可为 nil
func BestForLabel(spec Specializations, profile *UserProfile, priority Priority) string {
	var labels []string
	if spec.HighRisk && priority == PriorityHigh {
		labels = append(labels, labelHighRisk)
	}
	if spec.FamilyHistory && profile != nil && profile.HasFamilyHistory() {
		labels = append(labels, labelFamilyHistory)
	}
	if spec.FastTrack && priority == PriorityHigh {
		labels = append(labels, labelFastTrack)
	}
	if len(labels) == 0 {
		return generalScreening
	}
	return strings.Join(labels, ", ")
}

func FormatPrice(p Price) string {
	if p.Amount == nil {
		return contactForPricing
	}
	s := "$" + formatAmount(*p.Amount)
	if p.Subsidized != nil && p.Subsidized.Amount != nil {
		s += " (Subsidized: $" + formatAmount(*p.Subsidized.Amount) + ")"
	}
	return s
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// QuickInfo 列表卡片上的摘要信息
type QuickInfo struct {
	Price         string `json:"price"`
	WaitTime      string `json:"waitTime"`
	CanBookOnline bool   `json:"canBookOnline"`
	BestFor       string `json:"bestFor"`
}

func QuickInfoOf(p Package, profile *UserProfile, priority Priority) QuickInfo {
	wait := p.AdditionalInfo.WaitTime
	if wait == "" {
		wait = contactProvider
	}
	return QuickInfo{
		Price:         FormatPrice(p.Price),
		WaitTime:      wait,
		CanBookOnline: p.Availability.OnlineBooking,
		BestFor:       BestForLabel(p.Specializations, profile, priority),
	}
}
