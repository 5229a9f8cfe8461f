// Package notes is a personal notes manager: every note is visible only to its author.
package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"yaportal/internal/access"
	"yaportal/internal/forms"
	"yaportal/internal/models"
	"yaportal/internal/slugs"

	"gorm.io/gorm"
)

// SlugTakenWarning follows the conflicting slug in the field error.
const SlugTakenWarning = " - такой slug уже существует, придумайте уникальное значение!"

const slugUnderivable = "Не удалось сформировать адрес из заголовка, укажите его вручную."

type Input struct {
	Title string
	Text  string
	Slug  string
}

// clean trims the fields and reports blank title or text.
func (in Input) clean() (Input, error) {
	errs := forms.Errors{}
	in.Title = errs.Required("title", in.Title)
	in.Text = errs.Required("text", in.Text)
	in.Slug = strings.TrimSpace(in.Slug)
	if len(errs) > 0 {
		return in, errs
	}
	return in, nil
}

type Service struct {
	db     *gorm.DB
	policy access.Policy
	log    *slog.Logger
}

func NewService(db *gorm.DB, policy access.Policy, log *slog.Logger) *Service {
	return &Service{db: db, policy: policy, log: log}
}

// List returns the author's notes in creation order.
func (s *Service) List(ctx context.Context, authorID uint) ([]models.Note, error) {
	var list []models.Note
	if err := s.db.WithContext(ctx).Where("author_id = ?", authorID).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return list, nil
}

// Get loads a note by slug for its author.
func (s *Service) Get(ctx context.Context, slug string, userID uint) (*models.Note, error) {
	return s.findOwned(s.db.WithContext(ctx), slug, userID)
}

func (s *Service) Create(ctx context.Context, authorID uint, in Input) (*models.Note, error) {
	in, err := in.clean()
	if err != nil {
		return nil, err
	}

	note := models.Note{Title: in.Title, Text: in.Text, AuthorID: authorID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := s.resolveSlug(tx, in, 0)
		if err != nil {
			return err
		}
		note.Slug = slug
		return tx.Create(&note).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	s.log.Info("note created", "note_id", note.ID, "slug", note.Slug, "author_id", authorID)
	return &note, nil
}

// Update rewrites a note. A blank slug is derived again from the new title.
func (s *Service) Update(ctx context.Context, slug string, userID uint, in Input) (*models.Note, error) {
	var note *models.Note
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		note, err = s.findOwned(tx, slug, userID)
		if err != nil {
			return err
		}
		cleaned, err := in.clean()
		if err != nil {
			return err
		}
		newSlug, err := s.resolveSlug(tx, cleaned, note.ID)
		if err != nil {
			return err
		}
		note.Title = cleaned.Title
		note.Text = cleaned.Text
		note.Slug = newSlug
		return tx.Model(note).Updates(map[string]interface{}{
			"title": note.Title,
			"text":  note.Text,
			"slug":  note.Slug,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update note %q: %w", slug, err)
	}

	s.log.Info("note updated", "note_id", note.ID, "slug", note.Slug, "author_id", userID)
	return note, nil
}

func (s *Service) Delete(ctx context.Context, slug string, userID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		note, err := s.findOwned(tx, slug, userID)
		if err != nil {
			return err
		}
		return tx.Delete(&models.Note{}, note.ID).Error
	})
	if err != nil {
		return fmt.Errorf("delete note %q: %w", slug, err)
	}

	s.log.Info("note deleted", "slug", slug, "author_id", userID)
	return nil
}

// resolveSlug picks the supplied slug or derives one from the title, then
// checks it against every author's notes except excludeID.
func (s *Service) resolveSlug(tx *gorm.DB, in Input, excludeID uint) (string, error) {
	slug := in.Slug
	if slug == "" {
		slug = slugs.Make(in.Title, models.NoteSlugMaxLength)
		if slug == "" {
			return "", forms.FieldError("slug", slugUnderivable)
		}
	}

	q := tx.Model(&models.Note{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return "", fmt.Errorf("check slug: %w", err)
	}
	if count > 0 {
		return "", forms.FieldError("slug", slug+SlugTakenWarning)
	}
	return slug, nil
}

func (s *Service) findOwned(tx *gorm.DB, slug string, userID uint) (*models.Note, error) {
	var note models.Note
	err := tx.Scopes(s.policy.Scope(userID)).Where("slug = ?", slug).First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrNotFound
		}
		return nil, err
	}
	if err := s.policy.Check(note.AuthorID, userID); err != nil {
		return nil, err
	}
	return &note, nil
}
