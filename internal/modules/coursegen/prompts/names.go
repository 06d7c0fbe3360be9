package prompts

type PromptName string

const (
	PromptCourseOutline     PromptName = "course_outline"
	PromptLessonContent     PromptName = "lesson_content"
	PromptHinglishTranslate PromptName = "hinglish_translate"
	PromptCourseSuggestions PromptName = "course_suggestions"
)

// required lists every prompt a catalog must define.
var required = []PromptName{
	PromptCourseOutline,
	PromptLessonContent,
	PromptHinglishTranslate,
	PromptCourseSuggestions,
}
