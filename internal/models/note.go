package models

const (
	NoteTitleMaxLength = 100
	NoteSlugMaxLength  = 100
)

// Note slugs are unique across all authors, not per author.
type Note struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:100;not null" json:"title"`
	Text     string `gorm:"type:text;not null" json:"text"`
	Slug     string `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
