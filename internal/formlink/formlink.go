// Package formlink builds the hosted application-form URLs handed to
// candidates, for JotForm and Typeform.
package formlink

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"recruitai/internal/config"
	"recruitai/internal/domain/job"
)

type Provider string

const (
	ProviderJotForm  Provider = "jotform"
	ProviderTypeform Provider = "typeform"
)

const (
	jotFormBase     = "https://form.jotform.com"
	jotFormAppBase  = "https://www.jotform.com"
	typeformBase    = "https://form.typeform.com/to"
	sourceParam     = "recruitai_platform"
	defaultCompany  = "RecruitAI"
	demoFormPrefix  = "demo-"
	defaultEmbedPix = 600
)

func contextParams(jobTitle, company string) url.Values {
	q := url.Values{}
	if t := strings.TrimSpace(jobTitle); t != "" {
		q.Set("job_title", t)
	}
	if c := strings.TrimSpace(company); c != "" {
		q.Set("company", c)
	}
	q.Set("source", sourceParam)
	return q
}

// JotFormURL links to the hosted form with the job context as query
// parameters. Empty title or company are left out.
func JotFormURL(formID, jobTitle, company string) string {
	return jotFormBase + "/" + url.PathEscape(formID) + "?" + contextParams(jobTitle, company).Encode()
}

// JotFormEmbedURL is the iframe source for the form. JotForm serves the same
// page for both uses.
func JotFormEmbedURL(formID, jobTitle, company string) string {
	return JotFormURL(formID, jobTitle, company)
}

func JotFormEmbedCode(formID string, height int) string {
	if height <= 0 {
		height = defaultEmbedPix
	}
	src := html.EscapeString(JotFormEmbedURL(formID, "", ""))
	id := html.EscapeString(formID)
	return fmt.Sprintf(`<iframe id="JotFormIFrame-%s" title="Application Form" onload="window.parent.scrollTo(0,0)" allowtransparency="true" allowfullscreen="true" allow="geolocation; microphone; camera" src="%s" frameborder="0" style="min-width:100%%;max-width:100%%;height:%dpx;border:none;" scrolling="no"></iframe>`, id, src, height)
}

func JotFormAnalyticsURL(formID string) string {
	return jotFormAppBase + "/analytics/" + url.PathEscape(formID)
}

func JotFormSubmissionsURL(formID string) string {
	return jotFormAppBase + "/tables/" + url.PathEscape(formID)
}

func TypeformURL(formID, jobTitle, company string) string {
	return typeformBase + "/" + url.PathEscape(formID) + "?" + contextParams(jobTitle, company).Encode()
}

// TypeformEmbedURL adds the popup presentation flags.
func TypeformEmbedURL(formID, jobTitle, company string) string {
	q := contextParams(jobTitle, company)
	q.Set("embed_type", "popup")
	q.Set("hide_headers", "true")
	q.Set("hide_footer", "true")
	return typeformBase + "/" + url.PathEscape(formID) + "?" + q.Encode()
}

// DemoFormID is the stable placeholder form id used for a job until a real
// Typeform form exists.
func DemoFormID(jobID string) string {
	return demoFormPrefix + jobID + "-form"
}

func IsDemoForm(formID string) bool {
	return strings.HasPrefix(formID, demoFormPrefix)
}

type Field struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Accept      string `json:"accept,omitempty"`
	Description string `json:"description,omitempty"`
}

// ApplicationFields describes the fields of the default application form.
func ApplicationFields() []Field {
	return []Field{
		{ID: "first_name", Label: "First Name", Type: "text", Required: true},
		{ID: "last_name", Label: "Last Name", Type: "text", Required: true},
		{ID: "email", Label: "Email", Type: "email", Required: true},
		{ID: "resume", Label: "Resume", Type: "file", Required: true, Accept: ".pdf,.doc,.docx", Description: "Upload your resume (PDF, DOC, or DOCX)"},
	}
}

type Link struct {
	Provider  Provider `json:"provider"`
	FormID    string   `json:"form_id"`
	URL       string   `json:"url"`
	EmbedURL  string   `json:"embed_url"`
	EmbedCode string   `json:"embed_code,omitempty"`
	Demo      bool     `json:"demo"`
}

// Builder picks the provider and default form from configuration.
type Builder struct {
	provider      Provider
	defaultFormID string
	company       string
}

func NewBuilder(cfg config.FormsConfig, defaultFormID string) *Builder {
	p := Provider(strings.ToLower(strings.TrimSpace(cfg.Provider)))
	if p != ProviderTypeform {
		p = ProviderJotForm
	}
	company := strings.TrimSpace(cfg.CompanyName)
	if company == "" {
		company = defaultCompany
	}
	return &Builder{provider: p, defaultFormID: strings.TrimSpace(defaultFormID), company: company}
}

func (b *Builder) Provider() Provider {
	return b.provider
}

// FormIDFor returns the form a new job should collect applications on.
func (b *Builder) FormIDFor(jobID string) string {
	if b.provider == ProviderTypeform {
		return DemoFormID(jobID)
	}
	return b.defaultFormID
}

// Link returns the candidate-facing links for j. A job without a form id
// uses the provider default.
func (b *Builder) Link(j job.Job) Link {
	formID := strings.TrimSpace(j.FormID)
	if formID == "" {
		formID = b.FormIDFor(j.ID)
	}
	company := strings.TrimSpace(j.Company)
	if company == "" {
		company = b.company
	}

	if b.provider == ProviderTypeform {
		return Link{
			Provider: ProviderTypeform,
			FormID:   formID,
			URL:      TypeformURL(formID, j.Title, company),
			EmbedURL: TypeformEmbedURL(formID, j.Title, company),
			Demo:     IsDemoForm(formID),
		}
	}
	return Link{
		Provider:  ProviderJotForm,
		FormID:    formID,
		URL:       JotFormURL(formID, j.Title, company),
		EmbedURL:  JotFormEmbedURL(formID, j.Title, company),
		EmbedCode: JotFormEmbedCode(formID, defaultEmbedPix),
	}
}
