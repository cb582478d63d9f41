// Package jotform fetches form submissions from the JotForm REST API and
// normalizes them into application records.
//
// Fetching never fails from the caller's point of view. While the provider
// is throttling us, or when a call fails, the client serves a fresh cached
// batch if it has one and the demo data set otherwise.
package jotform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"recruitai/internal/domain/application"
	"recruitai/internal/domain/job"
	"recruitai/internal/infrastructure/cache"
	"recruitai/internal/infrastructure/ratelimit"
)

const (
	DefaultBaseURL        = "https://api.jotform.com"
	DefaultPageSize       = 50
	DefaultSpacing        = 2 * time.Second
	DefaultCooldownPeriod = 60 * time.Second

	apiLimitMessage = "API-Limit exceeded"
)

var (
	ErrRateLimited = errors.New("jotform rate limited")
	ErrNoAPIKey    = errors.New("jotform api key not configured")
)

type Config struct {
	BaseURL        string
	APIKey         string
	DefaultFormID  string
	PageSize       int
	Spacing        time.Duration
	CooldownPeriod time.Duration
	// StatusSync enables pushing review decisions back to the provider.
	StatusSync bool
}

type Client struct {
	cfg      Config
	http     *http.Client
	cache    *cache.SubmissionCache
	cooldown ratelimit.Cooldown
	spacer   *ratelimit.Spacer
	norm     Normalizer
	now      func() time.Time
	logger   *log.Logger

	group singleflight.Group
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithCache(sc *cache.SubmissionCache) Option {
	return func(c *Client) { c.cache = sc }
}

func WithCooldown(cd ratelimit.Cooldown) Option {
	return func(c *Client) { c.cooldown = cd }
}

func WithSpacer(s *ratelimit.Spacer) Option {
	return func(c *Client) { c.spacer = s }
}

func WithProbes(p Probes) Option {
	return func(c *Client) { c.norm.Probes = p }
}

func WithScoreFunc(f ScoreFunc) Option {
	return func(c *Client) {
		if f != nil {
			c.norm.Score = f
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(cfg Config, opts ...Option) *Client {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.CooldownPeriod <= 0 {
		cfg.CooldownPeriod = DefaultCooldownPeriod
	}

	c := &Client{
		cfg:  cfg,
		norm: NewNormalizer(DefaultProbes(), RandomScore),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 15 * time.Second}
	}
	if c.cache == nil {
		c.cache = cache.NewSubmissionCache(cache.NewMemory(c.now), cache.DefaultSubmissionTTL, c.now, c.logger)
	}
	if c.cooldown == nil {
		c.cooldown = ratelimit.NewMemoryCooldown(c.now)
	}
	if c.spacer == nil {
		c.spacer = ratelimit.NewSpacer(cfg.Spacing, c.now)
	}
	return c
}

func (c *Client) DefaultFormID() string {
	return c.cfg.DefaultFormID
}

func (c *Client) formID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return c.cfg.DefaultFormID
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// FetchSubmissions returns the submissions of formID (the default form when
// empty) together with where they came from.
func (c *Client) FetchSubmissions(ctx context.Context, formID string) application.FetchResult {
	formID = c.formID(formID)
	key := cache.SubmissionKey(formID)

	if limited, resetAt := c.cooldown.Active(ctx); limited {
		c.logf("[JotForm] rate limited, serving cached or mock data form_id=%s reset_at=%s", formID, resetAt.Format(time.RFC3339))
		if data, ok := c.cache.Get(ctx, key); ok {
			return c.result(data, application.SourceCache, true)
		}
		return c.mock(formID, true)
	}

	if data, ok := c.cache.Get(ctx, key); ok {
		return c.result(data, application.SourceCache, false)
	}

	// Concurrent misses for one form share a single provider call. The call
	// outlives any one caller's cancellation so its result can be cached.
	v, _, _ := c.group.Do(key, func() (any, error) {
		return c.fetchLive(context.WithoutCancel(ctx), formID, key), nil
	})
	return v.(application.FetchResult)
}

func (c *Client) fetchLive(ctx context.Context, formID, key string) application.FetchResult {
	if data, ok := c.cache.Get(ctx, key); ok {
		return c.result(data, application.SourceCache, false)
	}

	apps, err := c.getSubmissions(ctx, formID)
	if errors.Is(err, ErrRateLimited) {
		c.cooldown.Trip(ctx, c.cfg.CooldownPeriod)
		c.logf("[JotForm] rate limited by provider, using fallback data form_id=%s cooldown=%s", formID, c.cfg.CooldownPeriod)
		return c.mock(formID, true)
	}
	if err != nil {
		c.logf("[JotForm] fetch submissions error form_id=%s err=%v", formID, err)
		if data, ok := c.cache.Get(ctx, key); ok {
			return c.result(data, application.SourceCache, false)
		}
		return c.mock(formID, false)
	}

	c.cache.Set(ctx, key, apps)
	c.logf("[JotForm] fetched submissions form_id=%s count=%d", formID, len(apps))
	return c.result(apps, application.SourceLive, false)
}

func (c *Client) result(apps []application.Application, src application.Source, limited bool) application.FetchResult {
	return application.FetchResult{
		Applications: apps,
		Source:       src,
		RateLimited:  limited,
		FetchedAt:    c.now(),
	}
}

func (c *Client) mock(formID string, limited bool) application.FetchResult {
	return c.result(MockApplications(c.now(), formID), application.SourceMock, limited)
}

func (c *Client) getSubmissions(ctx context.Context, formID string) ([]application.Application, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(c.cfg.PageSize))
	q.Set("orderby", "created_at")

	content, err := c.do(ctx, http.MethodGet, "/form/"+url.PathEscape(formID)+"/submissions", q, nil)
	if err != nil {
		return nil, err
	}

	var subs []Submission
	if len(content) > 0 && string(content) != "null" {
		if err := json.Unmarshal(content, &subs); err != nil {
			return nil, fmt.Errorf("decode submissions: %w", err)
		}
	}

	out := make([]application.Application, 0, len(subs))
	seen := make(map[string]bool, len(subs))
	for i, s := range subs {
		app := c.norm.Normalize(s)
		if app.ID == "" {
			app.ID = fmt.Sprintf("%s-%d", formID, i)
		}
		if seen[app.ID] {
			continue
		}
		seen[app.ID] = true
		if app.FormID == "" {
			app.FormID = formID
		}
		out = append(out, app)
	}
	return out, nil
}

// do performs one spaced provider call and returns the response content.
// Throttling by the provider is reported as ErrRateLimited.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, form url.Values) (json.RawMessage, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if err := c.spacer.Wait(ctx); err != nil {
		return nil, err
	}

	if q == nil {
		q = url.Values{}
	}
	q.Set("apiKey", c.cfg.APIKey)
	endpoint := c.cfg.BaseURL + path + "?" + q.Encode()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if strings.Contains(string(rb), apiLimitMessage) {
			return nil, ErrRateLimited
		}
		return nil, fmt.Errorf("jotform api error: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(rb)))
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode jotform response: %w", err)
	}
	if out.ResponseCode != http.StatusOK {
		if strings.Contains(out.Message, apiLimitMessage) {
			return nil, ErrRateLimited
		}
		return nil, fmt.Errorf("jotform api error: %s", out.Message)
	}
	return out.Content, nil
}

// FetchSubmissionsByJob returns the records submitted for j. A job with a
// form of its own owns every submission of that form; otherwise records are
// matched on the job id or title found in the answers.
func (c *Client) FetchSubmissionsByJob(ctx context.Context, j job.Job) application.FetchResult {
	formID := c.formID(j.FormID)
	res := c.FetchSubmissions(ctx, formID)

	dedicated := strings.TrimSpace(j.FormID) != "" && j.FormID != c.cfg.DefaultFormID && res.Source != application.SourceMock
	out := make([]application.Application, 0, len(res.Applications))
	for _, a := range res.Applications {
		if dedicated {
			a.JobID, a.JobTitle = j.ID, j.Title
			out = append(out, a)
			continue
		}
		if a.BelongsTo(j.ID, j.Title) {
			out = append(out, a)
		}
	}
	res.Applications = out
	return res
}

// FormDetails returns the provider's description of a form. It is skipped
// while the cool-down is active.
func (c *Client) FormDetails(ctx context.Context, formID string) (map[string]any, error) {
	formID = c.formID(formID)
	if limited, _ := c.cooldown.Active(ctx); limited {
		c.logf("[JotForm] rate limited, skipping form details form_id=%s", formID)
		return nil, ErrRateLimited
	}

	content, err := c.do(ctx, http.MethodGet, "/form/"+url.PathEscape(formID), nil, nil)
	if errors.Is(err, ErrRateLimited) {
		c.cooldown.Trip(ctx, c.cfg.CooldownPeriod)
	}
	if err != nil {
		c.logf("[JotForm] form details error form_id=%s err=%v", formID, err)
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal(content, &out); err != nil {
		return nil, fmt.Errorf("decode form details: %w", err)
	}
	return out, nil
}

type StatusUpdate struct {
	SubmissionID string             `json:"submission_id"`
	Status       application.Status `json:"status"`
	// Remote is true when the provider acknowledged the change.
	Remote bool `json:"remote"`
}

// UpdateStatus tells the provider about a review decision when status sync
// is enabled. Failures are logged and reported through Remote only.
func (c *Client) UpdateStatus(ctx context.Context, submissionID string, status application.Status) StatusUpdate {
	out := StatusUpdate{SubmissionID: submissionID, Status: status}
	if !c.cfg.StatusSync {
		c.logf("[JotForm] status update recorded locally submission_id=%s status=%s", submissionID, status)
		return out
	}
	if limited, _ := c.cooldown.Active(ctx); limited {
		c.logf("[JotForm] rate limited, skipping status update submission_id=%s", submissionID)
		return out
	}

	form := url.Values{}
	form.Set("submission[new]", "0")
	if status == application.StatusNew {
		form.Set("submission[new]", "1")
	}
	form.Set("submission[flag]", "0")
	if status == application.StatusSelected {
		form.Set("submission[flag]", "1")
	}

	_, err := c.do(ctx, http.MethodPost, "/submission/"+url.PathEscape(submissionID), nil, form)
	if errors.Is(err, ErrRateLimited) {
		c.cooldown.Trip(ctx, c.cfg.CooldownPeriod)
	}
	if err != nil {
		c.logf("[JotForm] status update error submission_id=%s status=%s err=%v", submissionID, status, err)
		return out
	}
	out.Remote = true
	return out
}

// Normalize maps a raw submission with this client's probes and scorer.
func (c *Client) Normalize(s Submission) application.Application {
	return c.norm.Normalize(s)
}

// InvalidateForm drops the cached batch of one form.
func (c *Client) InvalidateForm(ctx context.Context, formID string) {
	c.cache.Delete(ctx, cache.SubmissionKey(c.formID(formID)))
}

func (c *Client) ClearCache(ctx context.Context) {
	c.cache.Clear(ctx)
	c.logf("[JotForm] cache cleared")
}

// Reset clears the cache and the cool-down.
func (c *Client) Reset(ctx context.Context) {
	c.cache.Clear(ctx)
	c.cooldown.Reset(ctx)
}

type CacheStatus struct {
	RateLimited      bool       `json:"rate_limited"`
	RateLimitResetAt *time.Time `json:"rate_limit_reset_at,omitempty"`
	CacheEntries     int        `json:"cache_entries"`
	CacheKeys        []string   `json:"cache_keys"`
	CacheHits        int64      `json:"cache_hits"`
	CacheMisses      int64      `json:"cache_misses"`
	CacheTTLSeconds  int        `json:"cache_ttl_seconds"`
	LastRequestAt    *time.Time `json:"last_request_at,omitempty"`
}

func (c *Client) CacheStatus(ctx context.Context) CacheStatus {
	st := c.cache.Stats()
	out := CacheStatus{
		CacheEntries:    st.Entries,
		CacheKeys:       c.cache.Keys(),
		CacheHits:       st.Hits,
		CacheMisses:     st.Misses,
		CacheTTLSeconds: int(c.cache.TTL() / time.Second),
	}
	if limited, resetAt := c.cooldown.Active(ctx); limited {
		out.RateLimited = true
		out.RateLimitResetAt = &resetAt
	}
	if last := c.spacer.LastCall(); !last.IsZero() {
		out.LastRequestAt = &last
	}
	return out
}
