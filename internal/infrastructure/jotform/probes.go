package jotform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FieldProbe lists where a value may live in a submission. Keys are matched
// against the answer map key and the answer's "name"; Types against the
// answer's "type". Keys are tried before Types, each in order.
type FieldProbe struct {
	Keys  []string `yaml:"keys" toml:"keys"`
	Types []string `yaml:"types" toml:"types"`
}

func (p FieldProbe) empty() bool {
	return len(p.Keys) == 0 && len(p.Types) == 0
}

// Probes configures field extraction for one form layout family.
type Probes struct {
	FullName  FieldProbe `yaml:"full_name" toml:"full_name"`
	FirstName FieldProbe `yaml:"first_name" toml:"first_name"`
	LastName  FieldProbe `yaml:"last_name" toml:"last_name"`
	Email     FieldProbe `yaml:"email" toml:"email"`
	Resume    FieldProbe `yaml:"resume" toml:"resume"`
	JobID     FieldProbe `yaml:"job_id" toml:"job_id"`
	JobTitle  FieldProbe `yaml:"job_title" toml:"job_title"`
	Score     FieldProbe `yaml:"score" toml:"score"`
}

func DefaultProbes() Probes {
	return Probes{
		FullName: FieldProbe{
			Keys: []string{
				"name", "fullName", "full_name", "applicant_name",
				"q3_name", "q4_name", "q5_name",
				"fullName3", "fullName4", "fullName5",
				"name3", "name4", "name5",
			},
			Types: []string{"control_fullname"},
		},
		FirstName: FieldProbe{
			Keys: []string{"first", "firstName", "first_name", "name_first"},
		},
		LastName: FieldProbe{
			Keys: []string{"last", "lastName", "last_name", "name_last"},
		},
		Email: FieldProbe{
			Keys: []string{
				"email", "email_address", "emailAddress", "e_mail",
				"q3_email", "q4_email", "q5_email", "q6_email", "q7_email", "q8_email",
				"email3", "email4", "email5", "email6", "email7", "email8",
				"typeA3", "typeA4", "typeA5", "typeA6", "typeA7", "typeA8",
			},
			Types: []string{"control_email"},
		},
		Resume: FieldProbe{
			Keys: []string{
				"resume", "file", "upload", "cv", "document",
				"q6_resume", "q7_resume", "q8_resume", "q9_resume",
			},
			Types: []string{"control_fileupload"},
		},
		JobID: FieldProbe{
			Keys: []string{"job_id", "jobId", "jobid"},
		},
		JobTitle: FieldProbe{
			Keys: []string{"job_title", "jobTitle", "position"},
		},
		Score: FieldProbe{
			Keys: []string{"score", "ai_score"},
		},
	}
}

// LoadProbes reads overrides from a YAML (.yaml, .yml) or TOML (.toml) file.
// A field present in the file replaces the default for that field only.
func LoadProbes(path string) (Probes, error) {
	p := DefaultProbes()
	path = strings.TrimSpace(path)
	if path == "" {
		return p, nil
	}

	var override Probes
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return p, err
		}
		if err := yaml.Unmarshal(b, &override); err != nil {
			return p, fmt.Errorf("parse probes %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.DecodeFile(path, &override); err != nil {
			return p, fmt.Errorf("parse probes %s: %w", path, err)
		}
	default:
		return p, fmt.Errorf("unsupported probes file extension: %s", path)
	}

	merge := func(dst *FieldProbe, src FieldProbe) {
		if !src.empty() {
			*dst = src
		}
	}
	merge(&p.FullName, override.FullName)
	merge(&p.FirstName, override.FirstName)
	merge(&p.LastName, override.LastName)
	merge(&p.Email, override.Email)
	merge(&p.Resume, override.Resume)
	merge(&p.JobID, override.JobID)
	merge(&p.JobTitle, override.JobTitle)
	merge(&p.Score, override.Score)
	return p, nil
}
