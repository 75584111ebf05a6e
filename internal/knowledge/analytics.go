package knowledge

import (
	"math"
	"sort"
	"time"
)

// AttemptStat 统计所需的作答字段
type AttemptStat struct {
	Score       int
	Level       Level
	HasSignedUp bool
	CreatedAt   time.Time
}

type LevelCount struct {
	Level Level `json:"level"`
	Count int   `json:"count"`
}

type ScoreStatistics struct {
	AvgScore float64 `json:"avgScore"`
	MinScore int     `json:"minScore"`
	MaxScore int     `json:"maxScore"`
}

type DailyStat struct {
	Date     string `json:"date"`
	Attempts int    `json:"attempts"`
	Signups  int    `json:"signups"`
}

type Analytics struct {
	TotalAttempts       int             `json:"totalAttempts"`
	SignedUpUsers       int             `json:"signedUpUsers"`
	ConversionRate      float64         `json:"conversionRate"`
	PersonaDistribution []LevelCount    `json:"personaDistribution"`
	ScoreStatistics     ScoreStatistics `json:"scoreStatistics"`
	DailyStats          []DailyStat     `json:"dailyStats"`
}

// Analyze 汇总作答：转化率保留两位小数，等级分布按从高到低排列且只含出现过的等级，
// 每日统计按 UTC 日期升序。
func Analyze(stats []AttemptStat) *Analytics {
	out := &Analytics{
		TotalAttempts:       len(stats),
		PersonaDistribution: []LevelCount{},
		DailyStats:          []DailyStat{},
	}
	if len(stats) == 0 {
		return out
	}

	levels := make(map[Level]int)
	days := make(map[string]*DailyStat)
	sum := 0
	out.ScoreStatistics.MinScore = stats[0].Score
	out.ScoreStatistics.MaxScore = stats[0].Score
	for _, s := range stats {
		if s.HasSignedUp {
			out.SignedUpUsers++
		}
		levels[s.Level]++

		sum += s.Score
		if s.Score < out.ScoreStatistics.MinScore {
			out.ScoreStatistics.MinScore = s.Score
		}
		if s.Score > out.ScoreStatistics.MaxScore {
			out.ScoreStatistics.MaxScore = s.Score
		}

		key := s.CreatedAt.UTC().Format("2006-01-02")
		d, ok := days[key]
		if !ok {
			d = &DailyStat{Date: key}
			days[key] = d
		}
		d.Attempts++
		if s.HasSignedUp {
			d.Signups++
		}
	}

	out.ConversionRate = round2(float64(out.SignedUpUsers) * 100 / float64(out.TotalAttempts))
	out.ScoreStatistics.AvgScore = round2(float64(sum) / float64(len(stats)))

	for _, l := range Levels {
		if n := levels[l]; n > 0 {
			out.PersonaDistribution = append(out.PersonaDistribution, LevelCount{Level: l, Count: n})
		}
	}
	for _, d := range days {
		out.DailyStats = append(out.DailyStats, *d)
	}
	sort.Slice(out.DailyStats, func(i, j int) bool { return out.DailyStats[i].Date < out.DailyStats[j].Date })
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
