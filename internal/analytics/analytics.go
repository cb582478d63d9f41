// Package analytics derives dashboard aggregates from application records
// and job postings. Every function is pure; time-dependent windows take
// the reference time explicitly.
package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"recruitai/internal/domain/application"
	"recruitai/internal/domain/job"
)

const (
	GeneralApplication = "General Application"

	MonthWindow   = 6
	TrendWindow   = 30
	TrendStep     = 5
	TopJobsLimit  = 5
	dayDateFormat = "2006-01-02"
)

type MonthCount struct {
	Month        string `json:"month"`
	Year         int    `json:"year"`
	Applications int    `json:"applications"`
}

type StatusCount struct {
	Status application.Status `json:"status"`
	Count  int                `json:"count"`
}

type JobCount struct {
	JobTitle     string `json:"job_title"`
	Applications int    `json:"applications"`
}

type ScoreBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// ScoreDistribution is real data unless Synthetic is set. Synthetic
// covers both the fixed illustrative fallback and a histogram built only
// from scores fabricated at ingestion. SyntheticScores counts the
// fabricated scores that went into the buckets.
type ScoreDistribution struct {
	Buckets         []ScoreBucket `json:"buckets"`
	Synthetic       bool          `json:"synthetic"`
	SyntheticScores int           `json:"synthetic_scores"`
}

type TrendPoint struct {
	Date         string `json:"date"`
	Applications int    `json:"applications"`
	Cumulative   int    `json:"cumulative"`
}

type Summary struct {
	TotalApplications int `json:"total_applications"`
	NewApplications   int `json:"new_applications"`
	AverageScore      int `json:"average_score"`
	// AverageScoreSynthetic is set when every score behind AverageScore
	// was fabricated at ingestion.
	AverageScoreSynthetic bool              `json:"average_score_synthetic"`
	ActiveJobs            int               `json:"active_jobs"`
	Monthly               []MonthCount      `json:"monthly"`
	Statuses              []StatusCount     `json:"statuses"`
	TopJobs               []JobCount        `json:"top_jobs"`
	Scores                ScoreDistribution `json:"scores"`
	Trend                 []TrendPoint      `json:"trend"`
}

func Summarize(apps []application.Application, jobs []job.Job, now time.Time) Summary {
	s := Summary{
		TotalApplications:     len(apps),
		AverageScore:          AverageScore(apps),
		AverageScoreSynthetic: AverageScoreSynthetic(apps),
		Monthly:               []MonthCount{},
		Statuses:              StatusDistribution(apps),
		TopJobs:               TopJobs(apps),
		Scores:                ScoreDistributionOf(apps),
		Trend:                 []TrendPoint{},
	}
	for _, a := range apps {
		if a.Status == application.StatusNew {
			s.NewApplications++
		}
	}
	for _, j := range jobs {
		if j.Status == job.StatusActive {
			s.ActiveJobs++
		}
	}
	if len(apps) > 0 {
		s.Monthly = MonthlyCounts(apps, now)
		s.Trend = DailyTrend(apps, now)
	}
	return s
}

// MonthlyCounts counts records per calendar month over the trailing six
// months including the current one, oldest first.
func MonthlyCounts(apps []application.Application, now time.Time) []MonthCount {
	loc := now.Location()
	out := make([]MonthCount, 0, MonthWindow)
	idx := make(map[[2]int]int, MonthWindow)
	for i := MonthWindow - 1; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, loc)
		idx[[2]int{m.Year(), int(m.Month())}] = len(out)
		out = append(out, MonthCount{Month: m.Format("Jan"), Year: m.Year()})
	}
	for _, a := range apps {
		if a.SubmittedAt.IsZero() {
			continue
		}
		t := a.SubmittedAt.In(loc)
		if i, ok := idx[[2]int{t.Year(), int(t.Month())}]; ok {
			out[i].Applications++
		}
	}
	return out
}

// StatusDistribution counts records per status in display order. Statuses
// with no records are omitted.
func StatusDistribution(apps []application.Application) []StatusCount {
	counts := make(map[application.Status]int, len(application.Statuses))
	for _, a := range apps {
		counts[a.Status]++
	}
	out := []StatusCount{}
	for _, st := range application.Statuses {
		if n := counts[st]; n > 0 {
			out = append(out, StatusCount{Status: st, Count: n})
		}
	}
	return out
}

// TopJobs ranks job titles by volume. Ties keep first-encounter order.
func TopJobs(apps []application.Application) []JobCount {
	out := []JobCount{}
	pos := make(map[string]int)
	for _, a := range apps {
		title := strings.TrimSpace(a.JobTitle)
		if title == "" {
			title = GeneralApplication
		}
		i, ok := pos[title]
		if !ok {
			i = len(out)
			pos[title] = i
			out = append(out, JobCount{JobTitle: title})
		}
		out[i].Applications++
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Applications > out[j].Applications
	})
	if len(out) > TopJobsLimit {
		out = out[:TopJobsLimit]
	}
	return out
}

type bucketDef struct {
	label    string
	min, max int
	fallback int
}

var scoreBuckets = []bucketDef{
	{"90-100", 90, 100, 15},
	{"80-89", 80, 89, 25},
	{"70-79", 70, 79, 30},
	{"60-69", 60, 69, 20},
	{"Below 60", math.MinInt, 59, 10},
}

// BucketOf returns the label of the bucket a score falls in.
func BucketOf(score int) string {
	for _, b := range scoreBuckets {
		if score >= b.min && score <= b.max {
			return b.label
		}
	}
	return scoreBuckets[0].label
}

// SyntheticScoreDistribution is the fixed illustrative distribution shown
// when there is no score data.
func SyntheticScoreDistribution() ScoreDistribution {
	out := ScoreDistribution{Buckets: make([]ScoreBucket, 0, len(scoreBuckets)), Synthetic: true}
	for _, b := range scoreBuckets {
		out.Buckets = append(out.Buckets, ScoreBucket{Range: b.label, Count: b.fallback})
	}
	return out
}

// ScoreDistributionOf buckets scores; a missing score counts as 0.
func ScoreDistributionOf(apps []application.Application) ScoreDistribution {
	scored := false
	for _, a := range apps {
		if a.Score != nil {
			scored = true
			break
		}
	}
	if !scored {
		return SyntheticScoreDistribution()
	}

	out := ScoreDistribution{Buckets: make([]ScoreBucket, len(scoreBuckets))}
	pos := make(map[string]int, len(scoreBuckets))
	for i, b := range scoreBuckets {
		out.Buckets[i] = ScoreBucket{Range: b.label}
		pos[b.label] = i
	}
	for _, a := range apps {
		out.Buckets[pos[BucketOf(a.ScoreOrZero())]].Count++
		if a.Score != nil && a.ScoreSynthetic {
			out.SyntheticScores++
		}
	}
	out.Synthetic = out.SyntheticScores == len(apps)
	return out
}

// DailyTrend counts records per day over the trailing 30 days (the last
// day being today), accumulates over the whole window and then keeps every
// fifth day starting with the oldest.
func DailyTrend(apps []application.Application, now time.Time) []TrendPoint {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	start := today.AddDate(0, 0, -(TrendWindow - 1))

	daily := make([]int, TrendWindow)
	idx := make(map[string]int, TrendWindow)
	for k := 0; k < TrendWindow; k++ {
		idx[start.AddDate(0, 0, k).Format(dayDateFormat)] = k
	}
	for _, a := range apps {
		if a.SubmittedAt.IsZero() {
			continue
		}
		if k, ok := idx[a.SubmittedAt.In(loc).Format(dayDateFormat)]; ok {
			daily[k]++
		}
	}

	out := make([]TrendPoint, 0, TrendWindow/TrendStep)
	cum := 0
	for k := 0; k < TrendWindow; k++ {
		cum += daily[k]
		if k%TrendStep == 0 {
			out = append(out, TrendPoint{
				Date:         start.AddDate(0, 0, k).Format(dayDateFormat),
				Applications: daily[k],
				Cumulative:   cum,
			})
		}
	}
	return out
}

// AverageScore averages the records that carry a score, rounded to the
// nearest integer. No scored records yields 0.
func AverageScore(apps []application.Application) int {
	sum, n := 0, 0
	for _, a := range apps {
		if a.Score == nil {
			continue
		}
		sum += *a.Score
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// AverageScoreSynthetic reports whether every score AverageScore would
// use was fabricated at ingestion. No scored records yields false.
func AverageScoreSynthetic(apps []application.Application) bool {
	n := 0
	for _, a := range apps {
		if a.Score == nil {
			continue
		}
		if !a.ScoreSynthetic {
			return false
		}
		n++
	}
	return n > 0
}

// CountByJob returns the number of records associated with each job id.
func CountByJob(apps []application.Application, jobs []job.Job) map[string]int {
	out := make(map[string]int, len(jobs))
	for _, j := range jobs {
		n := 0
		for _, a := range apps {
			if a.BelongsTo(j.ID, j.Title) {
				n++
			}
		}
		out[j.ID] = n
	}
	return out
}
