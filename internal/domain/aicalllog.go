package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CallTypeGenerateCourse    = "generate_course"
	CallTypeGenerateLesson    = "generate_lesson"
	CallTypeTranslateHinglish = "translate_hinglish"
	CallTypeCourseSuggestions = "course_suggestions"
)

// AICallLog records one API-triggered generation call. It is written by the
// HTTP layer after the generation pipeline returns.
type AICallLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CallType   string         `gorm:"column:call_type;not null;index" json:"call_type"`
	Provider   string         `gorm:"column:provider;not null" json:"provider"`
	Model      string         `gorm:"column:model;not null" json:"model"`
	Input      datatypes.JSON `gorm:"column:input" json:"input"`
	Response   datatypes.JSON `gorm:"column:response" json:"response,omitempty"`
	Success    bool           `gorm:"column:success;not null" json:"success"`
	Error      string         `gorm:"column:error" json:"error,omitempty"`
	DurationMS int64          `gorm:"column:duration_ms;not null" json:"duration_ms"`
	RequestID  string         `gorm:"column:request_id;index" json:"request_id,omitempty"`
	TraceID    string         `gorm:"column:trace_id" json:"trace_id,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"created_at"`
}

func (AICallLog) TableName() string {
	return "ai_call_log"
}

func (l *AICallLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
