package coursegen

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrModelUnavailable       = errors.New("model unavailable")
	ErrMalformedModelOutput   = errors.New("malformed model output")
	ErrInvalidCourseStructure = errors.New("invalid course structure")
	ErrInvalidLessonStructure = errors.New("invalid lesson structure")
	ErrCourseGenerationFailed = errors.New("course generation failed")
	ErrLessonGenerationFailed = errors.New("lesson generation failed")
)

// ModelUnavailableError wraps a transport, auth, quota or deadline failure
// reaching the model.
type ModelUnavailableError struct {
	Err error
}

func (e *ModelUnavailableError) Error() string {
	if e.Err == nil {
		return ErrModelUnavailable.Error()
	}
	return e.Err.Error()
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }

func (e *ModelUnavailableError) Is(target error) bool { return target == ErrModelUnavailable }

// Timeout reports whether the call ran out of time.
func (e *ModelUnavailableError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// MalformedOutputError keeps the raw model text for diagnostics.
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string { return "AI returned invalid JSON format" }

func (e *MalformedOutputError) Unwrap() error { return e.Err }

func (e *MalformedOutputError) Is(target error) bool { return target == ErrMalformedModelOutput }

type StructureKind int

const (
	CourseStructure StructureKind = iota
	LessonStructure
)

// StructureError is a failed shape check. Message is user facing.
type StructureError struct {
	Kind    StructureKind
	Message string
}

func (e *StructureError) Error() string { return e.Message }

func (e *StructureError) Is(target error) bool {
	switch e.Kind {
	case CourseStructure:
		return target == ErrInvalidCourseStructure
	case LessonStructure:
		return target == ErrInvalidLessonStructure
	}
	return false
}

func courseStructureErrorf(format string, args ...any) error {
	return &StructureError{Kind: CourseStructure, Message: fmt.Sprintf(format, args...)}
}

func lessonStructureErrorf(format string, args ...any) error {
	return &StructureError{Kind: LessonStructure, Message: fmt.Sprintf(format, args...)}
}

type GenerationKind int

const (
	CourseGeneration GenerationKind = iota
	LessonGeneration
)

// GenerationError is the envelope returned by GenerateCourse and
// GenerateLesson. The stage error stays reachable through errors.Is/As.
type GenerationError struct {
	Kind GenerationKind
	Err  error
}

func (e *GenerationError) Error() string {
	cause := "unknown error"
	if e.Err != nil {
		cause = e.Err.Error()
	}
	if e.Kind == LessonGeneration {
		return "Failed to generate lesson: " + cause
	}
	return "Failed to generate course: " + cause
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool {
	switch e.Kind {
	case CourseGeneration:
		return target == ErrCourseGenerationFailed
	case LessonGeneration:
		return target == ErrLessonGenerationFailed
	}
	return false
}
