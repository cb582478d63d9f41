package jotform

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"recruitai/internal/domain/application"
)

func fixedScore() int { return 80 }

func newTestNormalizer() Normalizer {
	return NewNormalizer(DefaultProbes(), fixedScore)
}

func TestNormalize_FullNameSplitsOnFirstWhitespace(t *testing.T) {
	n := newTestNormalizer()
	app := n.Normalize(Submission{
		ID: "1",
		Answers: map[string]any{
			"3": map[string]any{"name": "fullName", "type": "control_textbox", "text": "Full Name", "answer": " Mary \t Jane  Watson "},
		},
	})
	if app.FirstName != "Mary" || app.LastName != "Jane Watson" {
		t.Fatalf("first=%q last=%q", app.FirstName, app.LastName)
	}
	if app.Name != "Mary Jane Watson" {
		t.Fatalf("name=%q", app.Name)
	}
}

func TestNormalize_FullNameObjectAnswer(t *testing.T) {
	n := newTestNormalizer()
	app := n.Normalize(Submission{
		Answers: map[string]any{
			"3": map[string]any{
				"name":   "name",
				"type":   "control_fullname",
				"text":   "Name",
				"answer": map[string]any{"first": "John", "last": "Smith"},
			},
		},
	})
	if app.Name != "John Smith" || app.FirstName != "John" || app.LastName != "Smith" {
		t.Fatalf("unexpected name fields: %+v", app)
	}
}

func TestNormalize_FirstAndLastJoined(t *testing.T) {
	n := newTestNormalizer()
	app := n.Normalize(Submission{
		Answers: map[string]any{
			"first_name": "Ada",
			"last_name":  "Lovelace",
		},
	})
	if app.Name != "Ada Lovelace" || app.FirstName != "Ada" || app.LastName != "Lovelace" {
		t.Fatalf("unexpected name fields: %+v", app)
	}
}

func TestNormalize_UnknownApplicant(t *testing.T) {
	n := newTestNormalizer()
	app := n.Normalize(Submission{ID: "x"})
	if app.Name != UnknownApplicant {
		t.Fatalf("name=%q, want %q", app.Name, UnknownApplicant)
	}
	if app.Email != "" || app.ResumeURL != "" {
		t.Fatalf("expected empty email and resume, got %+v", app)
	}
}

func TestNormalize_QuestionLabelIsNotAValue(t *testing.T) {
	n := newTestNormalizer()
	app := n.Normalize(Submission{
		Answers: map[string]any{
			"4": map[string]any{"name": "email", "type": "control_email", "text": "E-mail"},
		},
	})
	if app.Email != "" {
		t.Fatalf("email=%q, want empty", app.Email)
	}
}

func TestNormalize_EmailByType(t *testing.T) {
	n := newTestNormalizer()
	app := n.Normalize(Submission{
		Answers: map[string]any{
			"7": map[string]any{"name": "contact", "type": "control_email", "answer": " ada@example.com "},
		},
	})
	if app.Email != "ada@example.com" {
		t.Fatalf("email=%q", app.Email)
	}
}

func TestNormalize_ResumeURL(t *testing.T) {
	n := newTestNormalizer()

	cases := []struct {
		name   string
		answer any
		want   string
	}{
		{"string", map[string]any{"answer": "https://files.example.com/cv.pdf"}, "https://files.example.com/cv.pdf"},
		{"list", map[string]any{"answer": []any{"https://files.example.com/a.pdf", "https://files.example.com/b.pdf"}}, "https://files.example.com/a.pdf"},
		{"non-http string", map[string]any{"answer": "cv.pdf"}, ""},
		{"non-http list", map[string]any{"answer": []any{"ftp://x/cv.pdf"}}, ""},
		{"pretty format", map[string]any{"prettyFormat": `<a href="/local">x</a><a href="https://files.example.com/c.pdf">cv</a>`}, "https://files.example.com/c.pdf"},
		{"raw list", []any{"https://files.example.com/d.pdf"}, "https://files.example.com/d.pdf"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := n.Normalize(Submission{Answers: map[string]any{"resume": tc.answer}})
			if app.ResumeURL != tc.want {
				t.Fatalf("resume=%q, want %q", app.ResumeURL, tc.want)
			}
		})
	}
}

func TestNormalize_StatusFromNewFlag(t *testing.T) {
	n := newTestNormalizer()
	for _, v := range []any{"1", "true", true, float64(1)} {
		if got := n.Normalize(Submission{New: v}).Status; got != application.StatusNew {
			t.Fatalf("new=%v status=%q, want new", v, got)
		}
	}
	for _, v := range []any{"0", "", nil, false} {
		if got := n.Normalize(Submission{New: v}).Status; got != application.StatusReviewed {
			t.Fatalf("new=%v status=%q, want reviewed", v, got)
		}
	}
}

func TestNormalize_Score(t *testing.T) {
	n := newTestNormalizer()

	provided := n.Normalize(Submission{Answers: map[string]any{"score": map[string]any{"answer": "130"}}})
	if provided.Score == nil || *provided.Score != 100 || provided.ScoreSynthetic {
		t.Fatalf("expected clamped provider score, got %+v", provided)
	}

	synthetic := n.Normalize(Submission{})
	if synthetic.Score == nil || *synthetic.Score != 80 || !synthetic.ScoreSynthetic {
		t.Fatalf("expected synthetic score 80, got %+v", synthetic)
	}
}

func TestRandomScore_Range(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := RandomScore()
		if v < 70 || v > 100 {
			t.Fatalf("score %d out of range", v)
		}
	}
}

func TestNormalize_JobAssociation(t *testing.T) {
	n := newTestNormalizer()
	app := n.Normalize(Submission{Answers: map[string]any{
		"9":  map[string]any{"name": "job_id", "answer": "job-7"},
		"10": map[string]any{"name": "job_title", "answer": "DevOps Engineer"},
	}})
	if app.JobID != "job-7" || app.JobTitle != "DevOps Engineer" {
		t.Fatalf("job fields = %q/%q", app.JobID, app.JobTitle)
	}
}

func TestParseSubmittedAt(t *testing.T) {
	want := time.Date(2024, 1, 15, 10, 22, 33, 0, time.UTC)
	if got := ParseSubmittedAt("2024-01-15 10:22:33"); !got.Equal(want) {
		t.Fatalf("provider layout = %s", got)
	}
	if got := ParseSubmittedAt("2024-01-15T10:22:33Z"); !got.Equal(want) {
		t.Fatalf("rfc3339 = %s", got)
	}
	if got := ParseSubmittedAt("yesterday"); !got.IsZero() {
		t.Fatalf("expected zero time, got %s", got)
	}
}

func TestLoadProbes(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "probes.yaml")
	if err := os.WriteFile(yml, []byte("email:\n  keys: [work_email]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := LoadProbes(yml)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if len(p.Email.Keys) != 1 || p.Email.Keys[0] != "work_email" {
		t.Fatalf("email keys = %v", p.Email.Keys)
	}
	if len(p.FullName.Keys) != len(DefaultProbes().FullName.Keys) {
		t.Fatalf("full name probes should keep defaults")
	}

	tml := filepath.Join(dir, "probes.toml")
	if err := os.WriteFile(tml, []byte("[resume]\ntypes = [\"control_upload\"]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err = LoadProbes(tml)
	if err != nil {
		t.Fatalf("toml: %v", err)
	}
	if len(p.Resume.Keys) != 0 || len(p.Resume.Types) != 1 || p.Resume.Types[0] != "control_upload" {
		t.Fatalf("resume probe = %+v", p.Resume)
	}

	if _, err := LoadProbes(filepath.Join(dir, "probes.ini")); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestWebhookPayload_Submission(t *testing.T) {
	p := WebhookPayload{
		SubmissionID: "555",
		FormID:       "form-1",
		RawRequest:   `{"q3_name":{"first":"Grace","last":"Hopper"},"q4_email":"grace@example.com"}`,
	}
	app := newTestNormalizer().Normalize(p.Submission())
	if app.ID != "555" || app.Name != "Grace Hopper" || app.Email != "grace@example.com" {
		t.Fatalf("unexpected record: %+v", app)
	}
	if app.Status != application.StatusNew {
		t.Fatalf("status=%q, want new", app.Status)
	}
}

func TestMockApplications(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	apps := MockApplications(now, "form-1")
	if len(apps) != 12 {
		t.Fatalf("len=%d, want 12", len(apps))
	}
	if apps[0].Name != "John Smith" || *apps[0].Score != 92 || !apps[0].SubmittedAt.Equal(now) {
		t.Fatalf("first record = %+v", apps[0])
	}
	if got := apps[11].SubmittedAt; !got.Equal(now.Add(-11 * 24 * time.Hour)) {
		t.Fatalf("last submitted_at = %s", got)
	}
	for _, a := range apps {
		if !a.Synthetic || a.FormID != "form-1" {
			t.Fatalf("record not marked synthetic: %+v", a)
		}
	}
}
