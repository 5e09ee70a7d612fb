// Package profile holds the static CV records shown on the home page.
package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultProfile []byte

// Profile is the site owner's CV.
type Profile struct {
	Name        string `yaml:"name" json:"name"`
	OtherName   string `yaml:"other_name,omitempty" json:"other_name,omitempty"`
	Title       string `yaml:"title" json:"title"`
	Institution string `yaml:"institution" json:"institution"`
	// RawEmail is stored obfuscated ("jl (at) math.ku.dk"); see Email.
	RawEmail string `yaml:"email" json:"email"`
	GitHub   string `yaml:"github,omitempty" json:"github,omitempty"`
	LinkedIn string `yaml:"linkedin,omitempty" json:"linkedin,omitempty"`
	ImageURL string `yaml:"image_url,omitempty" json:"image_url,omitempty"`
	About    string `yaml:"about" json:"about"`

	Education []EducationItem `yaml:"education" json:"education"`
	Research  []ResearchItem  `yaml:"research" json:"research"`
	Skills    []SkillGroup    `yaml:"skills" json:"skills"`
}

type EducationItem struct {
	Degree      string `yaml:"degree" json:"degree"`
	Institution string `yaml:"institution" json:"institution"`
	Dates       string `yaml:"dates" json:"dates"`
	Details     string `yaml:"details" json:"details"`
}

type ResearchItem struct {
	Title   string `yaml:"title" json:"title"`
	Authors string `yaml:"authors" json:"authors"`
	Journal string `yaml:"journal" json:"journal"`
	Year    string `yaml:"year" json:"year"`
	Summary string `yaml:"summary" json:"summary"`
	Links   []Link `yaml:"links" json:"links"`
}

// Link is a labelled external reference such as "arXiv" or "Code".
type Link struct {
	Type string `yaml:"type" json:"type"`
	URL  string `yaml:"url" json:"url"`
}

// SkillGroup is one row of the technical skills section.
type SkillGroup struct {
	Category string   `yaml:"category" json:"category"`
	Items    []string `yaml:"items" json:"items"`
}

// Email returns the address with " (at) " replaced by "@".
func (p *Profile) Email() string {
	return strings.Replace(p.RawEmail, " (at) ", "@", 1)
}

// Validate checks the fields every page relies on.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("profile: name is required")
	}
	for i, r := range p.Research {
		if r.Title == "" {
			return fmt.Errorf("profile: research[%d] has no title", i)
		}
	}
	return nil
}

// Parse decodes a YAML profile.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Default returns the built-in profile.
func Default() *Profile {
	p, err := Parse(defaultProfile)
	if err != nil {
		panic(fmt.Sprintf("embedded profile: %v", err))
	}
	return p
}

// Load reads the profile at path. A missing file yields the built-in profile.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	return Parse(data)
}
