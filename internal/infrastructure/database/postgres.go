package database

import (
	"fmt"

	"doctor-directory/config"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds the libpq style connection string for cfg.
func DSN(cfg config.DBConfig) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode, cfg.TimeZone,
	)
}

func NewPostgresConnection(cfg config.DBConfig, logLevel logger.LogLevel) (*gorm.DB, error) {
	return Open(DSN(cfg), logLevel, cfg.MaxIdleConns, cfg.MaxOpenConns)
}

// Open connects to dsn and applies pool limits; zero limits keep the
// database/sql defaults.
func Open(dsn string, logLevel logger.LogLevel, maxIdle, maxOpen int) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if maxIdle > 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}

	logrus.Info("Successfully connected to PostgreSQL database")

	return db, nil
}

// LogLevelFor picks the gorm logger verbosity for an environment.
func LogLevelFor(env string) logger.LogLevel {
	switch env {
	case "production":
		return logger.Error
	case "test":
		return logger.Silent
	default:
		return logger.Info
	}
}
