package prompts

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var catalogFS embed.FS

const catalogFile = "prompts.yaml"

type Spec struct {
	Name     PromptName `yaml:"name"`
	Version  int        `yaml:"version"`
	Template string     `yaml:"template"`
}

type catalog struct {
	Prompts []Spec `yaml:"prompts"`
}

// Registry renders the course-generation prompts. It is immutable after Load
// and safe for concurrent use.
type Registry struct {
	specs map[PromptName]Spec
	tmpl  *template.Template
}

// Load parses the embedded catalog, or the file at overridePath when set.
func Load(overridePath string) (*Registry, error) {
	var (
		data []byte
		err  error
	)
	if p := strings.TrimSpace(overridePath); p != "" {
		data, err = os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read prompt catalog %s: %w", p, err)
		}
	} else {
		data, err = catalogFS.ReadFile(catalogFile)
		if err != nil {
			return nil, fmt.Errorf("read embedded prompt catalog: %w", err)
		}
	}
	return Parse(data)
}

// Parse builds a Registry from catalog YAML. Every required prompt must be
// present, and each template is rendered once against a sample Input so that
// later renders cannot fail.
func Parse(data []byte) (*Registry, error) {
	var cat catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse prompt catalog: %w", err)
	}

	r := &Registry{
		specs: make(map[PromptName]Spec, len(cat.Prompts)),
		tmpl:  template.New("prompts").Option("missingkey=zero"),
	}
	for _, spec := range cat.Prompts {
		name := PromptName(strings.TrimSpace(string(spec.Name)))
		if name == "" {
			return nil, fmt.Errorf("prompt catalog: entry without name")
		}
		if _, dup := r.specs[name]; dup {
			return nil, fmt.Errorf("prompt catalog: duplicate prompt %q", name)
		}
		if strings.TrimSpace(spec.Template) == "" {
			return nil, fmt.Errorf("prompt %q: empty template", name)
		}
		if _, err := r.tmpl.New(string(name)).Parse(spec.Template); err != nil {
			return nil, fmt.Errorf("prompt %q: %w", name, err)
		}
		spec.Name = name
		r.specs[name] = spec
	}

	sample := Input{Topic: "t", CourseTitle: "c", ModuleTitle: "m", LessonTitle: "l", LessonPosition: 1, Text: "x", PartialTopic: "p"}
	for _, name := range required {
		if _, ok := r.specs[name]; !ok {
			return nil, fmt.Errorf("prompt catalog: missing prompt %q", name)
		}
		var b strings.Builder
		if err := r.tmpl.ExecuteTemplate(&b, string(name), sample); err != nil {
			return nil, fmt.Errorf("prompt %q: %w", name, err)
		}
	}
	return r, nil
}

func (r *Registry) Version(name PromptName) int {
	return r.specs[name].Version
}

func (r *Registry) render(name PromptName, in Input) string {
	var b strings.Builder
	// Parse already executed every required template against Input.
	_ = r.tmpl.ExecuteTemplate(&b, string(name), in)
	return b.String()
}

func (r *Registry) Course(topic string) string {
	return r.render(PromptCourseOutline, Input{Topic: topic})
}

// Lesson builds the lesson prompt; lessonIndex is 0-based.
func (r *Registry) Lesson(courseTitle, moduleTitle, lessonTitle string, lessonIndex int) string {
	return r.render(PromptLessonContent, Input{
		CourseTitle:    courseTitle,
		ModuleTitle:    moduleTitle,
		LessonTitle:    lessonTitle,
		LessonPosition: lessonIndex + 1,
	})
}

func (r *Registry) Translate(text string) string {
	return r.render(PromptHinglishTranslate, Input{Text: text})
}

func (r *Registry) Suggestions(partialTopic string) string {
	return r.render(PromptCourseSuggestions, Input{PartialTopic: partialTopic})
}
