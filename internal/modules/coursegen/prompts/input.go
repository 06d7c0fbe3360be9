package prompts

// Input is the superset of fields the prompt templates read.
// Missing fields render empty strings (templates use missingkey=zero).
// Values are embedded verbatim; nothing is escaped.
type Input struct {
	// Course outline
	Topic string
	// Lesson content
	CourseTitle string
	ModuleTitle string
	LessonTitle string
	// LessonPosition is 1-based (lesson index + 1).
	LessonPosition int
	// Translation
	Text string
	// Suggestions
	PartialTopic string
}
