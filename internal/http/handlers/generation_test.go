package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/coursegen-backend/internal/domain"
	"github.com/yungbote/coursegen-backend/internal/modules/coursegen"
	"github.com/yungbote/coursegen-backend/internal/platform/llm"
	"github.com/yungbote/coursegen-backend/internal/platform/logger"
)

type fakeGenerator struct {
	course      domain.CourseOutline
	lesson      domain.LessonContent
	translated  string
	suggestions []string
	err         error

	lastTopic   string
	lastLesson  coursegen.LessonRequest
	lastPartial string
}

func (f *fakeGenerator) GenerateCourse(_ context.Context, topic string) (domain.CourseOutline, error) {
	f.lastTopic = topic
	if f.err != nil {
		return nil, f.err
	}
	return f.course, nil
}

func (f *fakeGenerator) GenerateLesson(_ context.Context, req coursegen.LessonRequest) (domain.LessonContent, error) {
	f.lastLesson = req
	if f.err != nil {
		return nil, f.err
	}
	return f.lesson, nil
}

func (f *fakeGenerator) TranslateToHinglish(_ context.Context, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.translated, nil
}

func (f *fakeGenerator) GenerateCourseSuggestions(_ context.Context, partial string) []string {
	f.lastPartial = partial
	if f.suggestions == nil {
		return []string{}
	}
	return f.suggestions
}

func (f *fakeGenerator) Status() coursegen.Status {
	return coursegen.Status{Provider: "fake", Model: "fake-model", Sampling: llm.DefaultSampling()}
}

type fakeCallRepo struct {
	mu      sync.Mutex
	rows    []*domain.AICallLog
	failErr error
}

func (r *fakeCallRepo) Create(_ context.Context, _ *gorm.DB, logs []*domain.AICallLog) ([]*domain.AICallLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return nil, r.failErr
	}
	r.rows = append(r.rows, logs...)
	return logs, nil
}

func (r *fakeCallRepo) ListRecent(_ context.Context, _ *gorm.DB, callType string, limit int) ([]*domain.AICallLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.AICallLog
	for i := len(r.rows) - 1; i >= 0; i-- {
		if callType != "" && r.rows[i].CallType != callType {
			continue
		}
		out = append(out, r.rows[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newTestRouter(gen Generator, calls *fakeCallRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	var h *GenerationHandler
	if calls == nil {
		h = NewGenerationHandler(logger.NewNop(), gen, nil)
	} else {
		h = NewGenerationHandler(logger.NewNop(), gen, calls)
	}
	r := gin.New()
	r.GET("/api/ai/status", h.Status)
	r.GET("/api/ai/calls", h.ListCalls)
	r.POST("/api/ai/generate-course", h.GenerateCourse)
	r.POST("/api/ai/generate-lesson", h.GenerateLesson)
	r.POST("/api/ai/translate-hinglish", h.TranslateHinglish)
	r.POST("/api/ai/course-suggestions", h.CourseSuggestions)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var out map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func errorMessage(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	msg, _ := e["message"].(string)
	return msg
}

func TestGenerateCourseHandler(t *testing.T) {
	gen := &fakeGenerator{course: domain.CourseOutline{
		"title":   "Go",
		"level":   "any",
		"modules": []any{map[string]any{"title": "Basics", "order": 1, "lessons": []any{map[string]any{"title": "Hello"}}}},
	}}
	calls := &fakeCallRepo{}
	r := newTestRouter(gen, calls)

	rec, body := doJSON(t, r, http.MethodPost, "/api/ai/generate-course", `{"topic":"  Go  "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	course, _ := body["course"].(map[string]any)
	if course["title"] != "Go" {
		t.Fatalf("unexpected course: %#v", body)
	}
	if course["level"] != "any" {
		t.Fatalf("extra field dropped: %#v", course)
	}
	if _, ok := course["estimatedHours"]; ok {
		t.Fatalf("absent field invented: %#v", course)
	}
	if gen.lastTopic != "Go" {
		t.Fatalf("topic not trimmed: %q", gen.lastTopic)
	}
	if len(calls.rows) != 1 || !calls.rows[0].Success || calls.rows[0].CallType != domain.CallTypeGenerateCourse {
		t.Fatalf("unexpected call log: %#v", calls.rows)
	}
	if calls.rows[0].Provider != "fake" || len(calls.rows[0].Response) == 0 {
		t.Fatalf("call log missing provider/response: %#v", calls.rows[0])
	}
}

func TestGenerateCourseHandlerRejectsBadInput(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, nil)
	for _, body := range []string{``, `{"topic":""}`, `{"topic":"   "}`, `{"topic":5}`} {
		rec, out := doJSON(t, r, http.MethodPost, "/api/ai/generate-course", body)
		if rec.Code != http.StatusBadRequest || errorCode(out) != "invalid_request" {
			t.Fatalf("body %q: got status=%d code=%q", body, rec.Code, errorCode(out))
		}
	}
}

func TestGenerationErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "model unavailable",
			err:    &coursegen.GenerationError{Kind: coursegen.CourseGeneration, Err: &coursegen.ModelUnavailableError{Err: errors.New("quota")}},
			status: http.StatusBadGateway,
			code:   "model_unavailable",
		},
		{
			name:   "model timeout",
			err:    &coursegen.GenerationError{Kind: coursegen.CourseGeneration, Err: &coursegen.ModelUnavailableError{Err: fmt.Errorf("wrapped: %w", context.DeadlineExceeded)}},
			status: http.StatusGatewayTimeout,
			code:   "model_timeout",
		},
		{
			name:   "invalid structure",
			err:    &coursegen.GenerationError{Kind: coursegen.CourseGeneration, Err: &coursegen.StructureError{Kind: coursegen.CourseStructure, Message: "Course must have at least one module"}},
			status: http.StatusBadGateway,
			code:   "course_generation_failed",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calls := &fakeCallRepo{}
			r := newTestRouter(&fakeGenerator{err: tc.err}, calls)
			rec, body := doJSON(t, r, http.MethodPost, "/api/ai/generate-course", `{"topic":"Go"}`)
			if rec.Code != tc.status || errorCode(body) != tc.code {
				t.Fatalf("got status=%d code=%q, want %d %q", rec.Code, errorCode(body), tc.status, tc.code)
			}
			if errorMessage(body) != tc.err.Error() {
				t.Fatalf("message: got=%q want=%q", errorMessage(body), tc.err.Error())
			}
			if len(calls.rows) != 1 || calls.rows[0].Success || calls.rows[0].Error == "" {
				t.Fatalf("failed call not logged: %#v", calls.rows)
			}
		})
	}
}

func TestGenerateLessonHandler(t *testing.T) {
	gen := &fakeGenerator{lesson: domain.LessonContent{
		"title":   "Variables",
		"content": []any{map[string]any{"type": "paragraph", "text": "hi"}},
	}}
	r := newTestRouter(gen, nil)

	rec, body := doJSON(t, r, http.MethodPost, "/api/ai/generate-lesson",
		`{"courseTitle":"Intro to Python","moduleTitle":"Basics","lessonTitle":"Variables","lessonIndex":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	want := coursegen.LessonRequest{CourseTitle: "Intro to Python", ModuleTitle: "Basics", LessonTitle: "Variables", LessonIndex: 2}
	if gen.lastLesson != want {
		t.Fatalf("request: got=%#v want=%#v", gen.lastLesson, want)
	}
	lesson, _ := body["lesson"].(map[string]any)
	blocks, _ := lesson["content"].([]any)
	if len(blocks) != 1 || blocks[0].(map[string]any)["type"] != "paragraph" {
		t.Fatalf("unexpected lesson: %#v", lesson)
	}

	rec, body = doJSON(t, r, http.MethodPost, "/api/ai/generate-lesson", `{"courseTitle":"C","moduleTitle":"M"}`)
	if rec.Code != http.StatusBadRequest || errorCode(body) != "invalid_request" {
		t.Fatalf("missing lessonTitle: got status=%d", rec.Code)
	}
	rec, _ = doJSON(t, r, http.MethodPost, "/api/ai/generate-lesson", `{"courseTitle":"C","moduleTitle":"M","lessonTitle":"L","lessonIndex":-1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("negative index: got status=%d", rec.Code)
	}
}

func TestGenerateLessonFailure(t *testing.T) {
	err := &coursegen.GenerationError{Kind: coursegen.LessonGeneration, Err: &coursegen.StructureError{Kind: coursegen.LessonStructure, Message: "Invalid content block type: bogus"}}
	r := newTestRouter(&fakeGenerator{err: err}, nil)

	rec, body := doJSON(t, r, http.MethodPost, "/api/ai/generate-lesson", `{"courseTitle":"C","moduleTitle":"M","lessonTitle":"L"}`)
	if rec.Code != http.StatusBadGateway || errorCode(body) != "lesson_generation_failed" {
		t.Fatalf("got status=%d code=%q", rec.Code, errorCode(body))
	}
	if errorMessage(body) != "Failed to generate lesson: Invalid content block type: bogus" {
		t.Fatalf("message: %q", errorMessage(body))
	}
}

func TestTranslateHinglishHandler(t *testing.T) {
	r := newTestRouter(&fakeGenerator{translated: "Namaste duniya"}, nil)
	rec, body := doJSON(t, r, http.MethodPost, "/api/ai/translate-hinglish", `{"text":"Hello world"}`)
	if rec.Code != http.StatusOK || body["translatedText"] != "Namaste duniya" {
		t.Fatalf("got status=%d body=%#v", rec.Code, body)
	}

	r = newTestRouter(&fakeGenerator{err: &coursegen.ModelUnavailableError{Err: errors.New("auth failed")}}, nil)
	rec, body = doJSON(t, r, http.MethodPost, "/api/ai/translate-hinglish", `{"text":"Hello"}`)
	if rec.Code != http.StatusBadGateway || errorCode(body) != "model_unavailable" {
		t.Fatalf("got status=%d code=%q", rec.Code, errorCode(body))
	}
	if errorMessage(body) != "Failed to translate text: auth failed" {
		t.Fatalf("message: %q", errorMessage(body))
	}
}

func TestCourseSuggestionsHandler(t *testing.T) {
	gen := &fakeGenerator{suggestions: []string{"Python Basics", "Python for Data"}}
	calls := &fakeCallRepo{failErr: errors.New("db down")}
	r := newTestRouter(gen, calls)

	rec, body := doJSON(t, r, http.MethodPost, "/api/ai/course-suggestions", `{"partialTopic":"pyth"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d", rec.Code)
	}
	list, _ := body["suggestions"].([]any)
	if len(list) != 2 || gen.lastPartial != "pyth" {
		t.Fatalf("unexpected suggestions: %#v", body)
	}

	gen.lastPartial = ""
	rec, body = doJSON(t, r, http.MethodPost, "/api/ai/course-suggestions", `{"partialTopic":"  "}`)
	list, ok := body["suggestions"].([]any)
	if rec.Code != http.StatusOK || !ok || len(list) != 0 {
		t.Fatalf("empty partial topic: got status=%d body=%#v", rec.Code, body)
	}
	if gen.lastPartial != "" {
		t.Fatalf("model should not be called for an empty partial topic")
	}
}

func TestStatusAndCalls(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, nil)
	rec, body := doJSON(t, r, http.MethodGet, "/api/ai/status", "")
	if rec.Code != http.StatusOK || body["provider"] != "fake" || body["configured"] != true || body["callLog"] != false {
		t.Fatalf("unexpected status: %d %#v", rec.Code, body)
	}
	sampling, _ := body["sampling"].(map[string]any)
	if sampling["temperature"] != 0.7 {
		t.Fatalf("unexpected sampling: %#v", sampling)
	}

	rec, body = doJSON(t, r, http.MethodGet, "/api/ai/calls", "")
	if rec.Code != http.StatusNotFound || errorCode(body) != "call_log_disabled" {
		t.Fatalf("calls without log: got status=%d code=%q", rec.Code, errorCode(body))
	}

	calls := &fakeCallRepo{}
	r = newTestRouter(&fakeGenerator{suggestions: []string{"a"}}, calls)
	doJSON(t, r, http.MethodPost, "/api/ai/course-suggestions", `{"partialTopic":"a"}`)
	doJSON(t, r, http.MethodPost, "/api/ai/translate-hinglish", `{"text":"b"}`)

	rec, body = doJSON(t, r, http.MethodGet, "/api/ai/calls?type=course_suggestions&limit=5", "")
	list, _ := body["calls"].([]any)
	if rec.Code != http.StatusOK || len(list) != 1 {
		t.Fatalf("filtered calls: got status=%d body=%#v", rec.Code, body)
	}

	rec, _ = doJSON(t, r, http.MethodGet, "/api/ai/calls?limit=zero", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad limit: got status=%d", rec.Code)
	}
}
