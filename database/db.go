package database

import (
	"context"
	"fmt"
	"time"

	"novelhub/internal/config"
	"novelhub/internal/microservices/http-api/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Genres is the catalogue seeded into a fresh database.
var Genres = []string{
	"แฟนตาซี",
	"โรแมนติก",
	"แอ็คชั่น",
	"สืบสวน",
	"สยองขวัญ",
	"คอมเมดี้",
	"ดราม่า",
	"ไซไฟ",
	"ย้อนยุค",
	"วาย",
	"ยูริ",
	"สไลซ์ออฟไลฟ์",
	"ผจญภัย",
	"กีฬา",
}

// Connect opens the Postgres pool, applies the configured limits and verifies the connection.
func Connect(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsDevelopment() && cfg.LogLevel == "debug" {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(zerologWriter{}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.SetupJoinTable(&models.Novel{}, "Genres", &models.NovelGenre{}); err != nil {
		return nil, fmt.Errorf("setup novel_genres join table: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		// close the pool if ping fails to avoid resource leak
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info().Int("max_open", cfg.DBMaxOpenConns).Msg("connected to the database")
	return db, nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or updates every table, index and constraint from the models.
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Genre{},
		&models.Novel{},
		&models.NovelGenre{},
		&models.Tag{},
		&models.Chapter{},
		&models.Bookmark{},
		&models.Follow{},
		&models.Comment{},
		&models.ReadingHistory{},
	)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	log.Info().Msg("database migrations applied successfully")
	return nil
}

// zerologWriter routes gorm's logger through the global zerolog logger.
type zerologWriter struct{}

func (zerologWriter) Printf(format string, args ...interface{}) {
	log.WithLevel(zerolog.InfoLevel).Str("component", "gorm").Msgf(format, args...)
}
