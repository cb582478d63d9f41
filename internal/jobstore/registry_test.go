package jobstore

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"recruitai/internal/domain/job"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("job-%d", n)
	}
}

func newTestRegistry() (*Registry, *fakeClock) {
	clk := &fakeClock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	return New(WithClock(clk.Now), WithIDFunc(sequentialIDs())), clk
}

func TestRegistry_CreateDefaults(t *testing.T) {
	r, clk := newTestRegistry()

	id := r.Create(job.Draft{Title: " Backend Engineer ", Experience: 3, Skills: []string{"Go", "go", "SQL"}})
	got, ok := r.Get(id)
	if !ok {
		t.Fatalf("expected job %s to exist", id)
	}
	if got.Status != job.StatusActive {
		t.Fatalf("status = %q, want Active", got.Status)
	}
	if got.ApplicantCount != 0 {
		t.Fatalf("applicant count = %d, want 0", got.ApplicantCount)
	}
	if !got.CreatedAt.Equal(clk.Now()) {
		t.Fatalf("created at = %v, want %v", got.CreatedAt, clk.Now())
	}
	if got.Title != "Backend Engineer" {
		t.Fatalf("title = %q", got.Title)
	}
	if !reflect.DeepEqual(got.Skills, []string{"Go", "SQL"}) {
		t.Fatalf("skills = %v", got.Skills)
	}
}

func TestRegistry_CreateWithStatusNotifiesOnce(t *testing.T) {
	r, _ := newTestRegistry()
	var seen []job.Job
	r.AddListener(func() { seen = append(seen, r.List()...) })

	id := r.Create(job.Draft{
		Title:     "Designer",
		Status:    job.StatusDraft,
		FormIDFor: func(id string) string { return "form-" + id },
	})
	if len(seen) != 1 {
		t.Fatalf("listener saw %d snapshots, want 1", len(seen))
	}
	if seen[0].Status != job.StatusDraft || seen[0].FormID != "form-"+id {
		t.Fatalf("listener saw %+v", seen[0])
	}

	explicit := r.Create(job.Draft{Title: "PM", FormID: "f-9", FormIDFor: func(string) string { return "unused" }})
	if got, _ := r.Get(explicit); got.FormID != "f-9" {
		t.Fatalf("form id = %q, want f-9", got.FormID)
	}
}

func TestRegistry_UniqueIDsOnCollision(t *testing.T) {
	r := New(WithIDFunc(func() string { return "same" }))
	a := r.Create(job.Draft{Title: "A"})
	b := r.Create(job.Draft{Title: "B"})
	if a == b {
		t.Fatalf("expected distinct ids, got %q twice", a)
	}
	if r.Len() != 2 {
		t.Fatalf("len = %d, want 2", r.Len())
	}
}

func TestRegistry_ListNewestFirst(t *testing.T) {
	r, clk := newTestRegistry()
	first := r.Create(job.Draft{Title: "first"})
	clk.Advance(time.Minute)
	second := r.Create(job.Draft{Title: "second"})
	third := r.Create(job.Draft{Title: "third"})

	list := r.List()
	var ids []string
	for _, j := range list {
		ids = append(ids, j.ID)
	}
	want := []string{third, second, first}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("order = %v, want %v", ids, want)
	}
}

func TestRegistry_UpdateAndDelete(t *testing.T) {
	r, _ := newTestRegistry()
	id := r.Create(job.Draft{Title: "Designer"})

	closed := job.StatusClosed
	if !r.Update(id, job.Patch{Status: &closed}) {
		t.Fatalf("update should succeed")
	}
	if got, _ := r.Get(id); got.Status != job.StatusClosed || got.Title != "Designer" {
		t.Fatalf("unexpected job after update: %+v", got)
	}
	if r.Update("missing", job.Patch{Status: &closed}) {
		t.Fatalf("update of missing id should fail")
	}

	if !r.Delete(id) {
		t.Fatalf("delete should succeed")
	}
	if r.Delete(id) {
		t.Fatalf("second delete should fail")
	}
	if _, ok := r.Get(id); ok {
		t.Fatalf("job should be gone")
	}
}

func TestRegistry_SetApplicantCountOverwrites(t *testing.T) {
	r, _ := newTestRegistry()
	id := r.Create(job.Draft{Title: "PM"})

	r.SetApplicantCount(id, 7)
	r.SetApplicantCount(id, 3)
	if got, _ := r.Get(id); got.ApplicantCount != 3 {
		t.Fatalf("count = %d, want 3", got.ApplicantCount)
	}
	if r.SetApplicantCount(id, -1) {
		t.Fatalf("negative count must be rejected")
	}
	if got, _ := r.Get(id); got.ApplicantCount != 3 {
		t.Fatalf("count changed after rejected write: %d", got.ApplicantCount)
	}
}

func TestRegistry_ListenersFIFOAfterMutation(t *testing.T) {
	r, _ := newTestRegistry()

	var calls []string
	var seenLen int
	r.AddListener(func() {
		calls = append(calls, "a")
		seenLen = r.Len()
	})
	idB := r.AddListener(func() { calls = append(calls, "b") })
	r.AddListener(func() { calls = append(calls, "c") })

	r.Create(job.Draft{Title: "x"})
	if !reflect.DeepEqual(calls, []string{"a", "b", "c"}) {
		t.Fatalf("calls = %v", calls)
	}
	if seenLen != 1 {
		t.Fatalf("listener saw len %d, want 1", seenLen)
	}

	calls = nil
	if !r.RemoveListener(idB) {
		t.Fatalf("remove should succeed")
	}
	r.Create(job.Draft{Title: "y"})
	if !reflect.DeepEqual(calls, []string{"a", "c"}) {
		t.Fatalf("calls after removal = %v", calls)
	}
}

func TestRegistry_FailedMutationsDoNotNotify(t *testing.T) {
	r, _ := newTestRegistry()
	n := 0
	r.AddListener(func() { n++ })

	r.Delete("missing")
	r.SetApplicantCount("missing", 1)
	r.Update("missing", job.Patch{})
	if n != 0 {
		t.Fatalf("listener called %d times, want 0", n)
	}
}

func TestRegistry_ReentrantListener(t *testing.T) {
	r, _ := newTestRegistry()

	var order []string
	var once bool
	r.AddListener(func() {
		order = append(order, fmt.Sprintf("a:%d", r.Len()))
		if !once {
			once = true
			r.Create(job.Draft{Title: "nested"})
		}
	})
	r.AddListener(func() { order = append(order, fmt.Sprintf("b:%d", r.Len())) })

	r.Create(job.Draft{Title: "outer"})

	want := []string{"a:1", "a:2", "b:2", "b:2"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
}

func TestRegistry_GetReturnsCopy(t *testing.T) {
	r, _ := newTestRegistry()
	id := r.Create(job.Draft{Title: "x", Skills: []string{"Go"}})

	got, _ := r.Get(id)
	got.Skills[0] = "Rust"

	again, _ := r.Get(id)
	if again.Skills[0] != "Go" {
		t.Fatalf("stored skills mutated through returned copy")
	}
}
