package jotform

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"recruitai/internal/domain/application"
)

const UnknownApplicant = "Unknown Applicant"

// Synthetic scores are drawn uniformly from this range, inclusive.
const (
	syntheticScoreMin = 70
	syntheticScoreMax = 100
)

// ScoreFunc produces a placeholder score for records without one.
type ScoreFunc func() int

func RandomScore() int {
	return syntheticScoreMin + rand.IntN(syntheticScoreMax-syntheticScoreMin+1)
}

var submittedAtLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// ParseSubmittedAt accepts the provider's timestamp layout and RFC 3339.
// Unparseable input yields the zero time.
func ParseSubmittedAt(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range submittedAtLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Normalizer maps raw submissions into application records.
type Normalizer struct {
	Probes Probes
	Score  ScoreFunc
}

func NewNormalizer(p Probes, score ScoreFunc) Normalizer {
	if score == nil {
		score = RandomScore
	}
	return Normalizer{Probes: p, Score: score}
}

// Normalize converts one submission. Missing fields become empty strings
// and the name falls back to "Unknown Applicant".
func (n Normalizer) Normalize(s Submission) application.Application {
	answers := s.Answers
	if answers == nil {
		answers = map[string]any{}
	}

	first, last, name := n.resolveName(answers)

	app := application.Application{
		ID:          strings.TrimSpace(s.ID),
		Name:        name,
		FirstName:   first,
		LastName:    last,
		Email:       n.probeText(answers, n.Probes.Email),
		ResumeURL:   n.probeFileURL(answers, n.Probes.Resume),
		SubmittedAt: ParseSubmittedAt(s.CreatedAt),
		FormID:      strings.TrimSpace(s.FormID),
		Status:      application.StatusReviewed,
		JobID:       n.probeText(answers, n.Probes.JobID),
		JobTitle:    n.probeText(answers, n.Probes.JobTitle),
		RawAnswers:  answers,
	}
	if truthy(s.New) {
		app.Status = application.StatusNew
	}

	if v, ok := n.probeScore(answers); ok {
		app.Score = application.IntPtr(v)
	} else {
		app.Score = application.IntPtr(application.ClampScore(n.Score()))
		app.ScoreSynthetic = true
	}
	return app
}

func (n Normalizer) resolveName(answers map[string]any) (first, last, name string) {
	if full := strings.Join(strings.Fields(n.probeText(answers, n.Probes.FullName)), " "); full != "" {
		first, last = splitFullName(full)
		return first, last, full
	}
	first = n.probeText(answers, n.Probes.FirstName)
	last = n.probeText(answers, n.Probes.LastName)
	if joined := strings.TrimSpace(first + " " + last); joined != "" {
		return first, last, joined
	}
	return "", "", UnknownApplicant
}

// splitFullName splits on the first run of whitespace.
func splitFullName(full string) (string, string) {
	full = strings.TrimSpace(full)
	i := strings.IndexFunc(full, unicode.IsSpace)
	if i < 0 {
		return full, ""
	}
	return full[:i], strings.TrimLeftFunc(full[i:], unicode.IsSpace)
}

func (n Normalizer) probeText(answers map[string]any, p FieldProbe) string {
	for _, v := range lookup(answers, p) {
		if s := answerText(v); s != "" {
			return s
		}
	}
	return ""
}

func (n Normalizer) probeFileURL(answers map[string]any, p FieldProbe) string {
	for _, v := range lookup(answers, p) {
		if u := fileURL(v); u != "" {
			return u
		}
	}
	return ""
}

func (n Normalizer) probeScore(answers map[string]any) (int, bool) {
	for _, v := range lookup(answers, n.Probes.Score) {
		raw := v
		if m, ok := v.(map[string]any); ok {
			raw = m["answer"]
		}
		switch x := raw.(type) {
		case float64:
			if !math.IsNaN(x) && !math.IsInf(x, 0) {
				return application.ClampScore(int(math.Round(x))), true
			}
		case json.Number:
			if f, err := x.Float64(); err == nil {
				return application.ClampScore(int(math.Round(f))), true
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
				return application.ClampScore(int(math.Round(f))), true
			}
		}
	}
	return 0, false
}

// lookup returns candidate answer values in probe order: exact map keys and
// answer names first, then answer types.
func lookup(answers map[string]any, p FieldProbe) []any {
	keys := orderedKeys(answers)
	var out []any
	seen := make(map[string]bool)
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			out = append(out, answers[k])
		}
	}
	for _, cand := range p.Keys {
		if _, ok := answers[cand]; ok {
			add(cand)
		}
		for _, k := range keys {
			if strings.EqualFold(fieldString(answers[k], "name"), cand) {
				add(k)
			}
		}
	}
	for _, typ := range p.Types {
		for _, k := range keys {
			if strings.EqualFold(fieldString(answers[k], "type"), typ) {
				add(k)
			}
		}
	}
	return out
}

// orderedKeys sorts question ids numerically where possible.
func orderedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return keys[i] < keys[j]
	})
	return keys
}

func fieldString(v any, field string) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m[field].(string)
	return s
}

// answerText extracts a display value. The question label ("text") is never
// used as a value.
func answerText(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64, json.Number:
		return strings.TrimSpace(fmt.Sprint(x))
	case map[string]any:
		if s := nameParts(x); s != "" {
			return s
		}
		switch a := x["answer"].(type) {
		case string:
			if s := strings.TrimSpace(a); s != "" {
				return s
			}
		case map[string]any:
			if s := nameParts(a); s != "" {
				return s
			}
		}
		if s, ok := x["prettyFormat"].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
		if s, ok := x["value"].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func nameParts(m map[string]any) string {
	first, _ := m["first"].(string)
	last, _ := m["last"].(string)
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

func isHTTPURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// fileURL accepts an http(s) string or a list whose first element is one.
// For full answer objects the first http(s) link in prettyFormat is used
// when the answer itself has no usable URL.
func fileURL(v any) string {
	switch x := v.(type) {
	case string:
		if isHTTPURL(x) {
			return strings.TrimSpace(x)
		}
	case []any:
		if len(x) > 0 {
			if s, ok := x[0].(string); ok && isHTTPURL(s) {
				return strings.TrimSpace(s)
			}
		}
	case map[string]any:
		if u := fileURL(x["answer"]); u != "" {
			return u
		}
		if html, ok := x["prettyFormat"].(string); ok {
			return firstHref(html)
		}
	}
	return ""
}

func firstHref(html string) string {
	if !strings.Contains(html, "<") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	var out string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if isHTTPURL(href) {
			out = strings.TrimSpace(href)
			return false
		}
		return true
	})
	return out
}

func truthy(v any) bool {
	switch x := v.(type) {
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		return s == "1" || s == "true"
	case bool:
		return x
	case float64:
		return x == 1
	case json.Number:
		return x.String() == "1"
	}
	return false
}
