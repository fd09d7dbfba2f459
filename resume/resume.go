// Package resume serves the static resume document bundled with the binary.
package resume

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed resume.yaml
var bundled []byte

type Resume struct {
	Name       string       `yaml:"name" json:"name"`
	Headline   string       `yaml:"headline" json:"headline"`
	Location   string       `yaml:"location" json:"location,omitempty"`
	Summary    string       `yaml:"summary" json:"summary"`
	Links      []Link       `yaml:"links" json:"links,omitempty"`
	Experience []Experience `yaml:"experience" json:"experience"`
	Education  []Education  `yaml:"education" json:"education,omitempty"`
	Skills     []string     `yaml:"skills" json:"skills,omitempty"`
}

type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

type Experience struct {
	Company    string   `yaml:"company" json:"company"`
	Role       string   `yaml:"role" json:"role"`
	Start      string   `yaml:"start" json:"start"`
	End        string   `yaml:"end" json:"end,omitempty"`
	Highlights []string `yaml:"highlights" json:"highlights,omitempty"`

	// Current is set for positions without an end date.
	Current bool `yaml:"-" json:"current"`
}

type Education struct {
	School string `yaml:"school" json:"school"`
	Degree string `yaml:"degree" json:"degree"`
	Year   int    `yaml:"year" json:"year,omitempty"`
}

var (
	loadOnce sync.Once
	loaded   Resume
	loadErr  error
)

// Load returns the bundled resume, decoding it on first use.
func Load() (Resume, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(bundled)
	})
	return loaded, loadErr
}

// Parse decodes a resume document and checks the required fields.
func Parse(data []byte) (Resume, error) {
	var r Resume
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Resume{}, fmt.Errorf("failed to decode resume: %w", err)
	}
	if r.Name == "" {
		return Resume{}, errors.New("resume has no name")
	}
	for i, e := range r.Experience {
		if e.Company == "" || e.Role == "" {
			return Resume{}, fmt.Errorf("experience %d needs a company and a role", i)
		}
		r.Experience[i].Current = e.End == ""
	}
	return r, nil
}
