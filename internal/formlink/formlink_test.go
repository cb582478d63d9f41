package formlink

import (
	"net/url"
	"strings"
	"testing"

	"recruitai/internal/config"
	"recruitai/internal/domain/job"
)

func TestJotFormURL(t *testing.T) {
	got := JotFormURL("251661567356060", "Senior Go Engineer", "Acme & Co")
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.Host != "form.jotform.com" || u.Path != "/251661567356060" {
		t.Fatalf("url = %s", got)
	}
	q := u.Query()
	if q.Get("job_title") != "Senior Go Engineer" || q.Get("company") != "Acme & Co" || q.Get("source") != "recruitai_platform" {
		t.Fatalf("query = %s", u.RawQuery)
	}

	bare, _ := url.Parse(JotFormURL("f1", "", ""))
	if bare.Query().Has("job_title") || bare.Query().Has("company") {
		t.Fatalf("empty params should be omitted: %s", bare.RawQuery)
	}
}

func TestJotFormEmbedCode(t *testing.T) {
	code := JotFormEmbedCode("f1", 0)
	if !strings.Contains(code, `id="JotFormIFrame-f1"`) || !strings.Contains(code, "height:600px") {
		t.Fatalf("embed code = %s", code)
	}
	if !strings.Contains(code, "https://form.jotform.com/f1?source=recruitai_platform") {
		t.Fatalf("embed src missing: %s", code)
	}
}

func TestTypeformEmbedURL(t *testing.T) {
	u, _ := url.Parse(TypeformEmbedURL("demo-j1-form", "Designer", "RecruitAI"))
	if u.Host != "form.typeform.com" || u.Path != "/to/demo-j1-form" {
		t.Fatalf("url = %s", u)
	}
	q := u.Query()
	for k, want := range map[string]string{
		"embed_type":   "popup",
		"hide_headers": "true",
		"hide_footer":  "true",
		"job_title":    "Designer",
	} {
		if q.Get(k) != want {
			t.Fatalf("%s = %q, want %q", k, q.Get(k), want)
		}
	}
}

func TestDemoFormID(t *testing.T) {
	id := DemoFormID("job-7")
	if id != "demo-job-7-form" || !IsDemoForm(id) {
		t.Fatalf("demo id = %q", id)
	}
	if IsDemoForm("251661567356060") {
		t.Fatalf("real form reported as demo")
	}
}

func TestBuilder(t *testing.T) {
	jf := NewBuilder(config.FormsConfig{Provider: "JotForm"}, "form-1")
	link := jf.Link(job.Job{ID: "j1", Title: "Engineer"})
	if link.Provider != ProviderJotForm || link.FormID != "form-1" || link.EmbedCode == "" {
		t.Fatalf("jotform link = %+v", link)
	}
	if !strings.Contains(link.URL, "company=RecruitAI") {
		t.Fatalf("default company missing: %s", link.URL)
	}

	own := jf.Link(job.Job{ID: "j2", Title: "QA", Company: "Initech", FormID: "form-9"})
	if own.FormID != "form-9" || !strings.Contains(own.URL, "company=Initech") {
		t.Fatalf("own form link = %+v", own)
	}

	tf := NewBuilder(config.FormsConfig{Provider: "typeform", CompanyName: "Acme"}, "form-1")
	if got := tf.FormIDFor("j3"); got != "demo-j3-form" {
		t.Fatalf("typeform id = %q", got)
	}
	tl := tf.Link(job.Job{ID: "j3", Title: "PM"})
	if !tl.Demo || !strings.Contains(tl.EmbedURL, "embed_type=popup") {
		t.Fatalf("typeform link = %+v", tl)
	}
}
