package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/yungbote/coursegen-backend/internal/domain"
	"github.com/yungbote/coursegen-backend/internal/http/response"
	"github.com/yungbote/coursegen-backend/internal/modules/coursegen"
	"github.com/yungbote/coursegen-backend/internal/platform/apierr"
	"github.com/yungbote/coursegen-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursegen-backend/internal/platform/logger"
	"github.com/yungbote/coursegen-backend/internal/repos"
)

// Generator is the generation surface the handler serves.
type Generator interface {
	GenerateCourse(ctx context.Context, topic string) (domain.CourseOutline, error)
	GenerateLesson(ctx context.Context, req coursegen.LessonRequest) (domain.LessonContent, error)
	TranslateToHinglish(ctx context.Context, text string) (string, error)
	GenerateCourseSuggestions(ctx context.Context, partialTopic string) []string
	Status() coursegen.Status
}

type GenerationHandler struct {
	log   *logger.Logger
	gen   Generator
	calls repos.AICallLogRepo
}

// NewGenerationHandler builds the AI handler. calls may be nil, which
// disables the call log.
func NewGenerationHandler(log *logger.Logger, gen Generator, calls repos.AICallLogRepo) *GenerationHandler {
	return &GenerationHandler{
		log:   log.With("handler", "GenerationHandler"),
		gen:   gen,
		calls: calls,
	}
}

type generateCourseRequest struct {
	Topic string `json:"topic"`
}

type generateLessonRequest struct {
	CourseTitle string `json:"courseTitle"`
	ModuleTitle string `json:"moduleTitle"`
	LessonTitle string `json:"lessonTitle"`
	LessonIndex int    `json:"lessonIndex"`
}

type translateRequest struct {
	Text string `json:"text"`
}

type suggestionsRequest struct {
	PartialTopic string `json:"partialTopic"`
}

func (h *GenerationHandler) GenerateCourse(c *gin.Context) {
	var req generateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("topic is required"))
		return
	}

	start := time.Now()
	course, err := h.gen.GenerateCourse(c.Request.Context(), topic)
	h.record(c.Request.Context(), domain.CallTypeGenerateCourse, req, course, err, time.Since(start))
	if err != nil {
		response.RespondAPIError(c, generationAPIError(err, "course_generation_failed"))
		return
	}
	response.RespondOK(c, gin.H{"course": course})
}

func (h *GenerationHandler) GenerateLesson(c *gin.Context) {
	var req generateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	req.CourseTitle = strings.TrimSpace(req.CourseTitle)
	req.ModuleTitle = strings.TrimSpace(req.ModuleTitle)
	req.LessonTitle = strings.TrimSpace(req.LessonTitle)
	if req.CourseTitle == "" || req.ModuleTitle == "" || req.LessonTitle == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("courseTitle, moduleTitle and lessonTitle are required"))
		return
	}
	if req.LessonIndex < 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("lessonIndex must not be negative"))
		return
	}

	start := time.Now()
	lesson, err := h.gen.GenerateLesson(c.Request.Context(), coursegen.LessonRequest{
		CourseTitle: req.CourseTitle,
		ModuleTitle: req.ModuleTitle,
		LessonTitle: req.LessonTitle,
		LessonIndex: req.LessonIndex,
	})
	h.record(c.Request.Context(), domain.CallTypeGenerateLesson, req, lesson, err, time.Since(start))
	if err != nil {
		response.RespondAPIError(c, generationAPIError(err, "lesson_generation_failed"))
		return
	}
	response.RespondOK(c, gin.H{"lesson": lesson})
}

func (h *GenerationHandler) TranslateHinglish(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("text is required"))
		return
	}

	start := time.Now()
	translated, err := h.gen.TranslateToHinglish(c.Request.Context(), req.Text)
	var out any
	if err == nil {
		out = translated
	}
	h.record(c.Request.Context(), domain.CallTypeTranslateHinglish, req, out, err, time.Since(start))
	if err != nil {
		response.RespondAPIError(c, generationAPIError(fmt.Errorf("Failed to translate text: %w", err), "translation_failed"))
		return
	}
	response.RespondOK(c, gin.H{"translatedText": translated})
}

// CourseSuggestions always answers 200; an empty partial topic yields no
// suggestions without calling the model.
func (h *GenerationHandler) CourseSuggestions(c *gin.Context) {
	var req suggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	partial := strings.TrimSpace(req.PartialTopic)
	if partial == "" {
		response.RespondOK(c, gin.H{"suggestions": []string{}})
		return
	}

	start := time.Now()
	suggestions := h.gen.GenerateCourseSuggestions(c.Request.Context(), partial)
	h.record(c.Request.Context(), domain.CallTypeCourseSuggestions, req, suggestions, nil, time.Since(start))
	response.RespondOK(c, gin.H{"suggestions": suggestions})
}

func (h *GenerationHandler) Status(c *gin.Context) {
	st := h.gen.Status()
	response.RespondOK(c, gin.H{
		"provider":   st.Provider,
		"model":      st.Model,
		"sampling":   st.Sampling,
		"configured": true,
		"callLog":    h.calls != nil,
	})
}

func (h *GenerationHandler) ListCalls(c *gin.Context) {
	if h.calls == nil {
		response.RespondError(c, http.StatusNotFound, "call_log_disabled", errors.New("call log is not enabled"))
		return
	}
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}
	calls, err := h.calls.ListRecent(c.Request.Context(), nil, c.Query("type"), limit)
	if err != nil {
		h.log.Error("ListCalls failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "load_calls_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"calls": calls})
}

// record writes one call log row. The write outlives a cancelled request and
// its failure never changes the response.
func (h *GenerationHandler) record(ctx context.Context, callType string, input any, output any, callErr error, dur time.Duration) {
	if h.calls == nil {
		return
	}
	st := h.gen.Status()
	row := &domain.AICallLog{
		CallType:   callType,
		Provider:   st.Provider,
		Model:      st.Model,
		Input:      toJSON(input),
		Success:    callErr == nil,
		DurationMS: dur.Milliseconds(),
		RequestID:  ctxutil.RequestID(ctx),
		TraceID:    ctxutil.TraceID(ctx),
	}
	if callErr != nil {
		row.Error = callErr.Error()
	} else {
		row.Response = toJSON(output)
	}
	if _, err := h.calls.Create(context.WithoutCancel(ctx), nil, []*domain.AICallLog{row}); err != nil {
		h.log.Warn("ai call log write failed", "error", err, "call_type", callType)
	}
}

func toJSON(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func generationAPIError(err error, fallbackCode string) *apierr.Error {
	var unavailable *coursegen.ModelUnavailableError
	if errors.As(err, &unavailable) {
		if unavailable.Timeout() {
			return apierr.New(http.StatusGatewayTimeout, "model_timeout", err)
		}
		return apierr.New(http.StatusBadGateway, "model_unavailable", err)
	}
	return apierr.New(http.StatusBadGateway, fallbackCode, err)
}
