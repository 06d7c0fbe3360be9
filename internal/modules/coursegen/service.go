package coursegen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/coursegen-backend/internal/domain"
	"github.com/yungbote/coursegen-backend/internal/modules/coursegen/prompts"
	"github.com/yungbote/coursegen-backend/internal/observability"
	"github.com/yungbote/coursegen-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursegen-backend/internal/platform/llm"
	"github.com/yungbote/coursegen-backend/internal/platform/logger"
)

const (
	OpGenerateCourse      = "generate_course"
	OpGenerateLesson      = "generate_lesson"
	OpTranslateHinglish   = "translate_hinglish"
	OpGenerateSuggestions = "course_suggestions"
)

const (
	DefaultTimeout = 30 * time.Second

	translateTemperature   = 0.5
	suggestionsTemperature = 0.8
)

var tracer = otel.Tracer("coursegen")

type Config struct {
	// Timeout bounds each model call. Zero means DefaultTimeout.
	Timeout time.Duration
	// Sampling is the base sampling config. Zero means llm.DefaultSampling.
	Sampling llm.Sampling
}

// LessonRequest identifies a lesson stub inside a generated course.
// LessonIndex is 0-based.
type LessonRequest struct {
	CourseTitle string
	ModuleTitle string
	LessonTitle string
	LessonIndex int
}

type Status struct {
	Provider string       `json:"provider"`
	Model    string       `json:"model"`
	Sampling llm.Sampling `json:"sampling"`
}

// Service runs the stateless generation pipelines. It holds no per-call state
// and is safe for concurrent use.
type Service struct {
	log     *logger.Logger
	client  llm.Client
	prompts *prompts.Registry
	metrics *observability.Metrics
	cfg     Config
}

func New(log *logger.Logger, client llm.Client, registry *prompts.Registry, metrics *observability.Metrics, cfg Config) (*Service, error) {
	if client == nil {
		return nil, errors.New("coursegen: nil model client")
	}
	if registry == nil {
		return nil, errors.New("coursegen: nil prompt registry")
	}
	if log == nil {
		log = logger.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Sampling == (llm.Sampling{}) {
		cfg.Sampling = llm.DefaultSampling()
	}
	if err := cfg.Sampling.Validate(); err != nil {
		return nil, fmt.Errorf("coursegen: %w", err)
	}
	return &Service{
		log:     log.With("service", "CourseGenService"),
		client:  client,
		prompts: registry,
		metrics: metrics,
		cfg:     cfg,
	}, nil
}

func (s *Service) Status() Status {
	return Status{
		Provider: s.client.Provider(),
		Model:    s.client.Model(),
		Sampling: s.cfg.Sampling,
	}
}

// GenerateCourse builds a course outline for topic. Any stage failure is
// returned inside a *GenerationError matching ErrCourseGenerationFailed.
func (s *Service) GenerateCourse(ctx context.Context, topic string) (domain.CourseOutline, error) {
	ctx, span := s.startSpan(ctx, OpGenerateCourse)
	defer span.End()

	course, err := s.generateCourse(ctx, topic)
	if err != nil {
		s.fail(ctx, span, OpGenerateCourse, err)
		return nil, &GenerationError{Kind: CourseGeneration, Err: err}
	}
	span.SetAttributes(
		attribute.Int("coursegen.modules", len(course.Modules())),
		attribute.Int("coursegen.lessons", course.LessonCount()),
	)
	s.succeed(OpGenerateCourse)
	return course, nil
}

func (s *Service) generateCourse(ctx context.Context, topic string) (domain.CourseOutline, error) {
	raw, err := s.call(ctx, OpGenerateCourse, s.prompts.Course(topic), s.cfg.Sampling)
	if err != nil {
		return nil, err
	}
	v, err := ParseJSON(raw)
	if err != nil {
		return nil, err
	}
	if err := ValidateCourse(v); err != nil {
		return nil, err
	}
	// ValidateCourse rejects anything that is not an object.
	return domain.CourseOutline(v.(map[string]any)), nil
}

// GenerateLesson builds the content for one lesson. Any stage failure is
// returned inside a *GenerationError matching ErrLessonGenerationFailed.
func (s *Service) GenerateLesson(ctx context.Context, req LessonRequest) (domain.LessonContent, error) {
	ctx, span := s.startSpan(ctx, OpGenerateLesson)
	defer span.End()

	lesson, err := s.generateLesson(ctx, req)
	if err != nil {
		s.fail(ctx, span, OpGenerateLesson, err)
		return nil, &GenerationError{Kind: LessonGeneration, Err: err}
	}
	span.SetAttributes(attribute.Int("coursegen.blocks", len(lesson.Content())))
	s.succeed(OpGenerateLesson)
	return lesson, nil
}

func (s *Service) generateLesson(ctx context.Context, req LessonRequest) (domain.LessonContent, error) {
	prompt := s.prompts.Lesson(req.CourseTitle, req.ModuleTitle, req.LessonTitle, req.LessonIndex)
	raw, err := s.call(ctx, OpGenerateLesson, prompt, s.cfg.Sampling)
	if err != nil {
		return nil, err
	}
	v, err := ParseJSON(raw)
	if err != nil {
		return nil, err
	}
	if err := ValidateLesson(v); err != nil {
		return nil, err
	}
	return domain.LessonContent(v.(map[string]any)), nil
}

// TranslateToHinglish returns the model's translation trimmed of surrounding
// whitespace. Model failures are returned as *ModelUnavailableError without
// an envelope.
func (s *Service) TranslateToHinglish(ctx context.Context, text string) (string, error) {
	ctx, span := s.startSpan(ctx, OpTranslateHinglish)
	defer span.End()

	raw, err := s.call(ctx, OpTranslateHinglish, s.prompts.Translate(text), s.cfg.Sampling.WithTemperature(translateTemperature))
	if err != nil {
		s.fail(ctx, span, OpTranslateHinglish, err)
		return "", err
	}
	s.succeed(OpTranslateHinglish)
	return strings.TrimSpace(raw), nil
}

// GenerateCourseSuggestions is best effort: every failure is logged and
// yields an empty, non-nil slice. It never returns an error.
func (s *Service) GenerateCourseSuggestions(ctx context.Context, partialTopic string) []string {
	ctx, span := s.startSpan(ctx, OpGenerateSuggestions)
	defer span.End()

	out, err := s.generateSuggestions(ctx, partialTopic)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.IncGeneration(OpGenerateSuggestions, "degraded")
		fields := append([]interface{}{"operation", OpGenerateSuggestions, "error", err}, ctxutil.LogFields(ctx)...)
		s.log.Warn("course suggestions unavailable, returning none", fields...)
		return []string{}
	}
	s.succeed(OpGenerateSuggestions)
	return out
}

func (s *Service) generateSuggestions(ctx context.Context, partialTopic string) ([]string, error) {
	raw, err := s.call(ctx, OpGenerateSuggestions, s.prompts.Suggestions(partialTopic), s.cfg.Sampling.WithTemperature(suggestionsTemperature))
	if err != nil {
		return nil, err
	}
	v, err := ParseJSON(raw)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, errors.New("suggestions are not a JSON array")
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("suggestion %d is not a string", i)
		}
		out = append(out, str)
	}
	return out, nil
}

// call performs exactly one model request under the configured timeout.
func (s *Service) call(ctx context.Context, op, prompt string, sampling llm.Sampling) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	text, err := s.client.Generate(ctx, prompt, sampling)
	dur := time.Since(start)

	status := "ok"
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		status = "timeout"
	case err != nil:
		status = "error"
	}
	s.metrics.ObserveLLMRequest(s.client.Provider(), s.client.Model(), op, status, dur)
	if err != nil {
		return "", &ModelUnavailableError{Err: err}
	}
	fields := append([]interface{}{
		"operation", op,
		"duration_ms", dur.Milliseconds(),
		"response_chars", len(text),
	}, ctxutil.LogFields(ctx)...)
	s.log.Debug("model call complete", fields...)
	return text, nil
}

func (s *Service) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("llm.provider", s.client.Provider()),
		attribute.String("llm.model", s.client.Model()),
	}
	if id := ctxutil.RequestID(ctx); id != "" {
		attrs = append(attrs, attribute.String("coursegen.request_id", id))
	}
	return tracer.Start(ctx, "coursegen."+op, trace.WithAttributes(attrs...))
}

func (s *Service) fail(ctx context.Context, span trace.Span, op string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.metrics.IncGeneration(op, outcome(err))

	fields := []interface{}{"operation", op, "error", err}
	var malformed *MalformedOutputError
	if errors.As(err, &malformed) {
		fields = append(fields, "raw_chars", len(malformed.Raw))
	}
	fields = append(fields, ctxutil.LogFields(ctx)...)
	s.log.Error("generation failed", fields...)
}

func (s *Service) succeed(op string) {
	s.metrics.IncGeneration(op, "success")
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrModelUnavailable):
		return "model_unavailable"
	case errors.Is(err, ErrMalformedModelOutput):
		return "malformed_output"
	case errors.Is(err, ErrInvalidCourseStructure), errors.Is(err, ErrInvalidLessonStructure):
		return "invalid_structure"
	default:
		return "error"
	}
}
