// Package jobstore keeps job postings in process memory and notifies
// subscribers after every mutation.
//
// Listeners run synchronously on the mutating goroutine, in registration
// order, after the registry lock has been released. A listener may call back
// into the registry, including mutating it; the nested mutation notifies
// every listener again before the outer notification continues. The listener
// set is snapshotted when a notification starts, so a listener added or
// removed during a notification takes effect from the next one.
package jobstore

import (
	"sort"
	"strings"
	"sync"
	"time"

	"recruitai/internal/domain/job"

	"github.com/google/uuid"
)

type ListenerID uint64

type listener struct {
	id ListenerID
	fn func()
}

type entry struct {
	job job.Job
	seq uint64
}

type Registry struct {
	mu   sync.RWMutex
	jobs map[string]entry
	seq  uint64

	lmu          sync.Mutex
	listeners    []listener
	nextListener ListenerID

	now   func() time.Time
	newID func() string
}

type Option func(*Registry)

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

func WithIDFunc(fn func() string) Option {
	return func(r *Registry) {
		if fn != nil {
			r.newID = fn
		}
	}
}

func New(opts ...Option) *Registry {
	r := &Registry{
		jobs:  make(map[string]entry),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Create stores a new Active posting and returns its id.
func (r *Registry) Create(d job.Draft) string {
	status := d.Status
	if status == "" {
		status = job.StatusActive
	}

	r.mu.Lock()
	id := r.uniqueIDLocked()
	formID := strings.TrimSpace(d.FormID)
	if formID == "" && d.FormIDFor != nil {
		formID = d.FormIDFor(id)
	}
	r.seq++
	r.jobs[id] = entry{
		seq: r.seq,
		job: job.Job{
			ID:             id,
			Title:          strings.TrimSpace(d.Title),
			Company:        strings.TrimSpace(d.Company),
			Experience:     d.Experience,
			Skills:         job.NormalizeSkills(d.Skills),
			Description:    d.Description,
			FormID:         formID,
			CreatedAt:      r.now(),
			Status:         status,
			ApplicantCount: 0,
		},
	}
	r.mu.Unlock()

	r.notify()
	return id
}

func (r *Registry) uniqueIDLocked() string {
	for i := 0; i < 8; i++ {
		id := r.newID()
		if id == "" {
			continue
		}
		if _, exists := r.jobs[id]; !exists {
			return id
		}
	}
	return uuid.NewString()
}

func (r *Registry) Get(id string) (job.Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.jobs[id]
	if !ok {
		return job.Job{}, false
	}
	return e.job.Clone(), true
}

// List returns every posting, most recently created first.
func (r *Registry) List() []job.Job {
	r.mu.RLock()
	entries := make([]entry, 0, len(r.jobs))
	for _, e := range r.jobs {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		ti, tj := entries[i].job.CreatedAt, entries[j].job.CreatedAt
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return entries[i].seq > entries[j].seq
	})

	out := make([]job.Job, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.job.Clone())
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}

// Update merges patch into the posting. It returns false when id is unknown.
func (r *Registry) Update(id string, patch job.Patch) bool {
	r.mu.Lock()
	e, ok := r.jobs[id]
	if !ok {
		r.mu.Unlock()
		return false
	}
	e.job = patch.Apply(e.job)
	r.jobs[id] = e
	r.mu.Unlock()

	r.notify()
	return true
}

// SetApplicantCount overwrites the applicant count. Negative counts and
// unknown ids are rejected.
func (r *Registry) SetApplicantCount(id string, count int) bool {
	if count < 0 {
		return false
	}
	r.mu.Lock()
	e, ok := r.jobs[id]
	if !ok {
		r.mu.Unlock()
		return false
	}
	e.job.ApplicantCount = count
	r.jobs[id] = e
	r.mu.Unlock()

	r.notify()
	return true
}

func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	_, ok := r.jobs[id]
	if ok {
		delete(r.jobs, id)
	}
	r.mu.Unlock()

	if ok {
		r.notify()
	}
	return ok
}

// Reset drops every posting without notifying listeners.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.jobs = make(map[string]entry)
	r.seq = 0
	r.mu.Unlock()
}

func (r *Registry) AddListener(fn func()) ListenerID {
	if fn == nil {
		return 0
	}
	r.lmu.Lock()
	defer r.lmu.Unlock()
	r.nextListener++
	id := r.nextListener
	r.listeners = append(r.listeners, listener{id: id, fn: fn})
	return id
}

func (r *Registry) RemoveListener(id ListenerID) bool {
	r.lmu.Lock()
	defer r.lmu.Unlock()
	for i, l := range r.listeners {
		if l.id == id {
			r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Registry) notify() {
	r.lmu.Lock()
	snapshot := make([]listener, len(r.listeners))
	copy(snapshot, r.listeners)
	r.lmu.Unlock()

	for _, l := range snapshot {
		l.fn()
	}
}
