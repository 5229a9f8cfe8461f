package db

import (
	"fmt"
	"log/slog"
	"time"

	"yaportal/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to PostgreSQL and runs the schema migration.
func Open(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	slog.Info("database connection established")

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.News{},
		&models.Comment{},
		&models.Note{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	slog.Info("database migration completed")
	return nil
}

// SeedNews creates count sample news, one day apart, unless news already exist.
func SeedNews(conn *gorm.DB, count int) error {
	var existing int64
	if err := conn.Model(&models.News{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("count news: %w", err)
	}
	if existing > 0 {
		slog.Info("news already seeded, skipping", "count", existing)
		return nil
	}

	today := time.Now()
	all := make([]models.News, 0, count)
	for i := 0; i < count; i++ {
		all = append(all, models.News{
			Title: fmt.Sprintf("Новость %d", i),
			Text:  "Просто текст.",
			Date:  today.AddDate(0, 0, -i),
		})
	}
	if err := conn.Create(&all).Error; err != nil {
		return fmt.Errorf("seed news: %w", err)
	}
	slog.Info("initial news created", "count", count)
	return nil
}
