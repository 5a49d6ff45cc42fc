// Package content loads debate plans from YAML files.
//
// A plan file holds one or more scripted debates and, optionally, the phase
// catalog they run against:
//
//	catalog:
//	  phases:
//	    - {id: research, label: Research}
//	    - {id: opening, label: Opening}
//	    - {id: judging, label: Judging}
//	plans:
//	  - topic: "Should cities ban cars?"
//	    turns:
//	      - {side: pro, phase: opening, text: "..."}
//
// When the catalog section is omitted the default debate catalog is used.
// The binary embeds a demo plan that is served when no file is configured.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/debatemebro/internal/debate"
	"github.com/Iron-Ham/debatemebro/internal/errors"
)

//go:embed demo.yaml
var demoFS embed.FS

// File is the decoded form of a plan file. Suggestions are extra topics
// offered on the topic screen; they play the first plan.
type File struct {
	Catalog     *CatalogSpec   `yaml:"catalog,omitempty"`
	Suggestions []string       `yaml:"suggestions,omitempty"`
	Plans       []*debate.Plan `yaml:"plans"`
}

// CatalogSpec is the optional catalog section of a plan file.
type CatalogSpec struct {
	Phases      []debate.Phase      `yaml:"phases"`
	Evaluations []debate.Evaluation `yaml:"evaluations,omitempty"`
}

// Parse decodes a plan file. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("decode plan file: %w", err)
	}
	return &f, nil
}

// Library is a validated set of plans sharing one catalog. It implements
// debate.ContentSource.
type Library struct {
	catalog     *debate.Catalog
	plans       []*debate.Plan
	suggestions []string
}

// NewLibrary builds the catalog described by f and validates every plan
// against it. Problems in all plans are reported together.
func NewLibrary(f *File) (*Library, error) {
	catalog := debate.DefaultCatalog()
	if f.Catalog != nil {
		c, err := debate.NewCatalog(f.Catalog.Phases, f.Catalog.Evaluations)
		if err != nil {
			return nil, err
		}
		catalog = c
	}

	if len(f.Plans) == 0 {
		return nil, fmt.Errorf("plan file has no plans: %w", errors.ErrContentNotFound)
	}

	var errs []error
	plans := make([]*debate.Plan, 0, len(f.Plans))
	for i, p := range f.Plans {
		if p == nil {
			errs = append(errs, fmt.Errorf("plan %d is empty: %w", i, errors.ErrPlanInvalid))
			continue
		}
		if err := p.Validate(catalog); err != nil {
			errs = append(errs, fmt.Errorf("plan %d (%q): %w", i, p.Topic, err))
			continue
		}
		plans = append(plans, p.Clone())
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &Library{catalog: catalog, plans: plans, suggestions: f.Suggestions}, nil
}

// Load reads and validates the plan file at path.
func Load(path string) (*Library, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("plan file %s: %w", path, errors.ErrUnknownFormat)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	lib, err := NewLibrary(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

// Demo returns the library built from the embedded demo plan.
func Demo() *Library {
	data, err := demoFS.ReadFile("demo.yaml")
	if err != nil {
		panic(fmt.Sprintf("content: embedded demo missing: %v", err))
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		panic(fmt.Sprintf("content: embedded demo invalid: %v", err))
	}
	lib, err := NewLibrary(f)
	if err != nil {
		panic(fmt.Sprintf("content: embedded demo invalid: %v", err))
	}
	return lib
}

// Catalog returns the catalog the library's plans were validated against.
func (l *Library) Catalog() *debate.Catalog {
	return l.catalog
}

// Topics lists the scripted topics in file order.
func (l *Library) Topics() []string {
	topics := make([]string, len(l.plans))
	for i, p := range l.plans {
		topics[i] = p.Topic
	}
	return topics
}

// Suggestions lists the scripted topics followed by the file's extra
// suggestions, skipping blanks and case-insensitive repeats.
func (l *Library) Suggestions() []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range append(l.Topics(), l.suggestions...) {
		key := strings.ToLower(strings.TrimSpace(t))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(t))
	}
	return out
}

// Plan returns a copy of the plan whose topic matches the request,
// ignoring case and surrounding space. Unscripted topics fall back to the
// first plan, relabeled with the requested topic.
func (l *Library) Plan(topic string) (*debate.Plan, error) {
	if len(l.plans) == 0 {
		return nil, errors.ErrContentNotFound
	}
	want := strings.TrimSpace(topic)
	for _, p := range l.plans {
		if strings.EqualFold(strings.TrimSpace(p.Topic), want) {
			return p.Clone(), nil
		}
	}
	p := l.plans[0].Clone()
	if want != "" {
		p.Topic = want
	}
	return p, nil
}
