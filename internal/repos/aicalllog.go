package repos

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/coursegen-backend/internal/domain"
	"github.com/yungbote/coursegen-backend/internal/platform/logger"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

type AICallLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, logs []*domain.AICallLog) ([]*domain.AICallLog, error)
	ListRecent(ctx context.Context, tx *gorm.DB, callType string, limit int) ([]*domain.AICallLog, error)
}

type aiCallLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAICallLogRepo(db *gorm.DB, baseLog *logger.Logger) AICallLogRepo {
	repoLog := baseLog.With("repo", "AICallLogRepo")
	return &aiCallLogRepo{db: db, log: repoLog}
}

func (r *aiCallLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*domain.AICallLog) ([]*domain.AICallLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(logs) == 0 {
		return []*domain.AICallLog{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListRecent returns the newest rows first, optionally filtered by call type.
// limit is clamped to [1, MaxListLimit]; zero or less means DefaultListLimit.
func (r *aiCallLogRepo) ListRecent(ctx context.Context, tx *gorm.DB, callType string, limit int) ([]*domain.AICallLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	q := transaction.WithContext(ctx).Model(&domain.AICallLog{})
	if ct := strings.TrimSpace(callType); ct != "" {
		q = q.Where("call_type = ?", ct)
	}
	var out []*domain.AICallLog
	if err := q.Order("created_at DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
