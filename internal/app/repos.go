package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/coursegen-backend/internal/platform/logger"
	"github.com/yungbote/coursegen-backend/internal/repos"
)

type Repos struct {
	// AICallLog is nil when no database is configured.
	AICallLog repos.AICallLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	if db == nil {
		log.Info("No database configured, AI call log disabled")
		return Repos{}
	}
	log.Info("Wiring repos...")
	return Repos{
		AICallLog: repos.NewAICallLogRepo(db, log),
	}
}
