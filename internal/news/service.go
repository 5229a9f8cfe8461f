// Package news serves the news feed and the comments under each news item.
package news

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"yaportal/internal/access"
	"yaportal/internal/forms"
	"yaportal/internal/models"
	"yaportal/internal/moderation"
	"yaportal/internal/utils"

	"gorm.io/gorm"
)

// NewsCountOnHomePage caps the home page list.
const NewsCountOnHomePage = 10

const (
	homeCacheKey = "news:home"
	homeCacheTTL = time.Minute
)

// HomeCache holds the home page list between comment changes.
type HomeCache = utils.TTLCache[[]models.News]

func NewHomeCache(size int) (*HomeCache, error) {
	return utils.NewTTLCache[[]models.News](size, homeCacheTTL)
}

type Service struct {
	db     *gorm.DB
	policy access.Policy
	cache  *HomeCache
	log    *slog.Logger
}

func NewService(db *gorm.DB, policy access.Policy, cache *HomeCache, log *slog.Logger) *Service {
	return &Service{db: db, policy: policy, cache: cache, log: log}
}

// Home returns the newest news first, with comment counts filled in.
func (s *Service) Home(ctx context.Context) ([]models.News, error) {
	if cached, ok := s.cache.Get(homeCacheKey); ok {
		return cached, nil
	}

	var list []models.News
	err := s.db.WithContext(ctx).
		Order("date DESC").Order("id DESC").
		Limit(NewsCountOnHomePage).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}

	if err := s.fillCommentCounts(ctx, list); err != nil {
		return nil, err
	}

	s.cache.Set(homeCacheKey, list)
	return list, nil
}

func (s *Service) fillCommentCounts(ctx context.Context, list []models.News) error {
	if len(list) == 0 {
		return nil
	}

	ids := make([]uint, len(list))
	for i, n := range list {
		ids[i] = n.ID
	}

	type countResult struct {
		NewsID uint
		Count  int
	}
	var results []countResult
	err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Select("news_id, COUNT(*) as count").
		Where("news_id IN ?", ids).
		Group("news_id").
		Scan(&results).Error
	if err != nil {
		return fmt.Errorf("count comments: %w", err)
	}

	counts := make(map[uint]int, len(results))
	for _, r := range results {
		counts[r.NewsID] = r.Count
	}
	for i := range list {
		list[i].CommentCount = counts[list[i].ID]
	}
	return nil
}

// Detail returns a news item and its comments, oldest comment first.
func (s *Service) Detail(ctx context.Context, id uint) (*models.News, []models.Comment, error) {
	var item models.News
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, nil, s.policy.Resolve(err)
	}

	var comments []models.Comment
	err := s.db.WithContext(ctx).Preload("Author").
		Where("news_id = ?", item.ID).
		Order("created ASC").Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, nil, fmt.Errorf("list comments: %w", err)
	}
	return &item, comments, nil
}

// cleanText trims the comment and rejects blank or abusive text.
func cleanText(text string) (string, error) {
	errs := forms.Errors{}
	text = errs.Required("text", text)
	if len(errs) > 0 {
		return "", errs
	}
	if err := moderation.Check(text); err != nil {
		return "", err
	}
	return text, nil
}

func (s *Service) CreateComment(ctx context.Context, newsID, authorID uint, text string) (*models.Comment, error) {
	text, err := cleanText(text)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{NewsID: newsID, AuthorID: authorID, Text: text}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.News
		if err := tx.Select("id").First(&item, newsID).Error; err != nil {
			return s.policy.Resolve(err)
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.invalidateHome()
	s.log.Info("comment created", "comment_id", comment.ID, "news_id", newsID, "author_id", authorID)
	return &comment, nil
}

// Comment loads a comment for its author. Other users get access.ErrNotFound
// under the default policy.
func (s *Service) Comment(ctx context.Context, id, userID uint) (*models.Comment, error) {
	return s.findOwned(s.db.WithContext(ctx).Preload("News"), id, userID)
}

func (s *Service) UpdateComment(ctx context.Context, id, userID uint, text string) (*models.Comment, error) {
	var comment *models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		comment, err = s.findOwned(tx, id, userID)
		if err != nil {
			return err
		}
		cleaned, err := cleanText(text)
		if err != nil {
			return err
		}
		comment.Text = cleaned
		return tx.Model(comment).Update("text", cleaned).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update comment %d: %w", id, err)
	}

	s.log.Info("comment updated", "comment_id", id, "author_id", userID)
	return comment, nil
}

// DeleteComment removes the comment and returns it so callers know its news.
func (s *Service) DeleteComment(ctx context.Context, id, userID uint) (*models.Comment, error) {
	var comment *models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		comment, err = s.findOwned(tx, id, userID)
		if err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, comment.ID).Error
	})
	if err != nil {
		return nil, fmt.Errorf("delete comment %d: %w", id, err)
	}

	s.invalidateHome()
	s.log.Info("comment deleted", "comment_id", id, "author_id", userID)
	return comment, nil
}

func (s *Service) findOwned(tx *gorm.DB, id, userID uint) (*models.Comment, error) {
	var comment models.Comment
	if err := tx.Scopes(s.policy.Scope(userID)).First(&comment, id).Error; err != nil {
		return nil, s.policy.Resolve(err)
	}
	if err := s.policy.Check(comment.AuthorID, userID); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *Service) invalidateHome() {
	s.cache.Delete(homeCacheKey)
}
