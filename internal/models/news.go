package models

import (
	"time"

	"gorm.io/gorm"
)

// News is read-only on the site; records come from the seed command.
type News struct {
	ID    uint      `gorm:"primaryKey" json:"id"`
	Title string    `gorm:"size:200;not null" json:"title"`
	Text  string    `gorm:"type:text;not null" json:"text"`
	Date  time.Time `gorm:"not null;index" json:"date"`

	// Not persisted, filled in by the home page query.
	CommentCount int `gorm:"-" json:"comment_count"`
}

func (n *News) BeforeCreate(tx *gorm.DB) error {
	if n.Date.IsZero() {
		n.Date = time.Now()
	}
	return nil
}
