package risk_test

import (
	"reflect"
	"testing"

	"risk_screening_backend/internal/risk"
)

func amount(v float64) *float64 { return &v }

func pkg(name string, spec risk.Specializations, online bool) risk.Package {
	return risk.Package{
		Name:            name,
		Specializations: spec,
		Availability:    risk.Availability{OnlineBooking: online},
	}
}

func names(pkgs []risk.Package) []string {
	out := make([]string, len(pkgs))
	for i, p := range pkgs {
		out[i] = p.Name
	}
	return out
}

func TestRankPackages(t *testing.T) {
	in := []risk.Package{
		pkg("plain-1", risk.Specializations{}, false),
		pkg("special-1", risk.Specializations{HighRisk: true}, false),
		pkg("plain-2", risk.Specializations{}, true),
		pkg("special-2", risk.Specializations{FastTrack: true}, true),
	}
	cases := []struct {
		priority risk.Priority
		want     []string
	}{
		{risk.PriorityHigh, []string{"special-1", "special-2", "plain-1"}},
		{risk.PriorityMedium, []string{"plain-1", "special-1", "plain-2"}},
		{risk.PriorityLow, []string{"plain-1", "special-1", "plain-2"}},
	}
	for _, c := range cases {
		if got := names(risk.RankPackages(in, c.priority)); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("RankPackages(%s) = %v, want %v", c.priority, got, c.want)
		}
	}
	if got := risk.RankPackages(nil, risk.PriorityHigh); len(got) != 0 {
		t.Fatalf("RankPackages(nil) = %v", got)
	}
}

func TestBestPackage(t *testing.T) {
	mixed := []risk.Package{
		pkg("walk-in", risk.Specializations{}, false),
		pkg("online", risk.Specializations{}, true),
		pkg("specialist", risk.Specializations{FamilyHistory: true}, false),
	}
	cases := []struct {
		name     string
		pkgs     []risk.Package
		priority risk.Priority
		want     string
	}{
		{"high prefers specialist", mixed, risk.PriorityHigh, "specialist"},
		{"medium prefers online", mixed, risk.PriorityMedium, "online"},
		{"falls back to first", mixed[:1], risk.PriorityHigh, "walk-in"},
	}
	for _, c := range cases {
		got, ok := risk.BestPackage(c.pkgs, c.priority)
		if !ok || got.Name != c.want {
			t.Fatalf("%s: got %q (%v), want %q", c.name, got.Name, ok, c.want)
		}
	}
	if _, ok := risk.BestPackage(nil, risk.PriorityHigh); ok {
		t.Fatalf("BestPackage(nil) reported a package")
	}
}

func TestBestForLabel(t *testing.T) {
	def := lifestyleQuiz(t)
	withFamily := risk.ExtractProfile(def, answers("q5", "b"))
	noFamily := risk.ExtractProfile(def, answers("q5", "a"))
	all := risk.Specializations{HighRisk: true, FamilyHistory: true, FastTrack: true}

	cases := []struct {
		name     string
		spec     risk.Specializations
		profile  *risk.UserProfile
		priority risk.Priority
		want     string
	}{
		{"all labels", all, withFamily, risk.PriorityHigh, "High Risk Patients, Family History, Fast Track Available"},
		{"medium only family", all, withFamily, risk.PriorityMedium, "Family History"},
		{"no family answer", all, noFamily, risk.PriorityMedium, "General Screening"},
		{"anonymous", all, nil, risk.PriorityHigh, "High Risk Patients, Fast Track Available"},
		{"plain package", risk.Specializations{}, withFamily, risk.PriorityHigh, "General Screening"},
	}
	for _, c := range cases {
		if got := risk.BestForLabel(c.spec, c.profile, c.priority); got != c.want {
			t.Fatalf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		price risk.Price
		want  string
	}{
		{risk.Price{}, "Contact for pricing"},
		{risk.Price{Amount: amount(200)}, "$200"},
		{risk.Price{Amount: amount(0)}, "$0"},
		{risk.Price{Amount: amount(12.5)}, "$12.5"},
		{risk.Price{Amount: amount(800), Subsidized: &risk.Subsidy{Amount: amount(400)}}, "$800 (Subsidized: $400)"},
		{risk.Price{Amount: amount(50), Subsidized: &risk.Subsidy{Eligibility: "citizens"}}, "$50"},
	}
	for _, c := range cases {
		if got := risk.FormatPrice(c.price); got != c.want {
			t.Fatalf("FormatPrice = %q, want %q", got, c.want)
		}
	}
}

func TestQuickInfoOf(t *testing.T) {
	p := risk.Package{
		Price:           risk.Price{Amount: amount(80), Subsidized: &risk.Subsidy{Amount: amount(5)}},
		Availability:    risk.Availability{WalkIn: true},
		Specializations: risk.Specializations{HighRisk: true},
	}
	got := risk.QuickInfoOf(p, nil, risk.PriorityHigh)
	want := risk.QuickInfo{
		Price:         "$80 (Subsidized: $5)",
		WaitTime:      "Contact provider",
		CanBookOnline: false,
		BestFor:       "High Risk Patients",
	}
	if got != want {
		t.Fatalf("QuickInfoOf = %+v, want %+v", got, want)
	}

	p.AdditionalInfo.WaitTime = "1 week"
	if got := risk.QuickInfoOf(p, nil, risk.PriorityLow); got.WaitTime != "1 week" || got.BestFor != "General Screening" {
		t.Fatalf("QuickInfoOf = %+v", got)
	}
}
