package domain

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// CourseOutline is the generated top-level course exactly as the model
// returned it. Keys the renderer does not know about and values of an
// unexpected JSON type are kept; the accessors below read the known fields
// and report zero values for anything absent or mistyped.
type CourseOutline map[string]any

// Module is one entry of a course's "modules" array.
type Module map[string]any

// LessonStub is one entry of a module's "lessons" array.
type LessonStub map[string]any

func (c CourseOutline) Title() string       { return str(c, "title") }
func (c CourseOutline) Description() string { return str(c, "description") }

func (c CourseOutline) Difficulty() Difficulty { return Difficulty(str(c, "difficulty")) }

// EstimatedHours reports false when the field is absent or not a number.
func (c CourseOutline) EstimatedHours() (float64, bool) { return num(c, "estimatedHours") }

func (c CourseOutline) Tags() []string { return strs(c, "tags") }

// Modules returns the object entries of "modules". Non-object entries are
// skipped by the view but stay in the outline.
func (c CourseOutline) Modules() []Module {
	objs := objects(c, "modules")
	out := make([]Module, len(objs))
	for i, o := range objs {
		out[i] = Module(o)
	}
	return out
}

// LessonCount sums the lesson stubs across all modules.
func (c CourseOutline) LessonCount() int {
	n := 0
	for _, m := range c.Modules() {
		n += len(m.Lessons())
	}
	return n
}

func (m Module) Title() string       { return str(m, "title") }
func (m Module) Description() string { return str(m, "description") }

func (m Module) Order() (float64, bool) { return num(m, "order") }

func (m Module) Lessons() []LessonStub {
	objs := objects(m, "lessons")
	out := make([]LessonStub, len(objs))
	for i, o := range objs {
		out[i] = LessonStub(o)
	}
	return out
}

func (l LessonStub) Title() string { return str(l, "title") }

func (l LessonStub) Order() (float64, bool) { return num(l, "order") }

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func num(m map[string]any, key string) (float64, bool) {
	f, ok := m[key].(float64)
	return f, ok
}

func strs(m map[string]any, key string) []string {
	items, _ := m[key].([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func objects(m map[string]any, key string) []map[string]any {
	items, _ := m[key].([]any)
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if o, ok := it.(map[string]any); ok {
			out = append(out, o)
		}
	}
	return out
}
