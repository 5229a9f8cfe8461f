package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	NewsID   uint      `gorm:"not null;index" json:"news_id"`
	News     News      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Created  time.Time `gorm:"not null;index" json:"created"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.Created.IsZero() {
		c.Created = time.Now()
	}
	return nil
}
