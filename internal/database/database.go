package database

import (
	"log"
	"os"
	"time"

	"workspace-service/internal/config"
	"workspace-service/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Server.Env == "dev" || cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Auto migrate
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Workspace{},
		&domain.WorkspaceMember{},
		&domain.Survey{},
		&domain.SurveyResponse{},
		&domain.Notification{},
	); err != nil {
		return nil, err
	}

	createIndexes(db)

	return db, nil
}

func createIndexes(db *gorm.DB) {
	// Notification list query
	db.Exec(`CREATE INDEX IF NOT EXISTS idx_notifications_user_created
		ON notifications (user_id, created_at DESC)`)

	// Unread count query
	db.Exec(`CREATE INDEX IF NOT EXISTS idx_notifications_user_read
		ON notifications (user_id, is_read) WHERE is_archived = false`)

	// Leave-time cleanup of workspace-scoped unread notifications
	db.Exec(`CREATE INDEX IF NOT EXISTS idx_notifications_workspace
		ON notifications (related_workspace_id)`)

	// Retention cleanup
	db.Exec(`CREATE INDEX IF NOT EXISTS idx_notifications_created
		ON notifications (created_at)`)

	// Successor selection scans members by workspace ordered by tenure
	db.Exec(`CREATE INDEX IF NOT EXISTS idx_members_workspace_joined
		ON workspace_members (workspace_id, joined_at ASC)`)
}
