// Package access decides how records owned by another user are reported.
package access

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// Policy controls ownership checks for author-only records.
//
// With HideForeign set, lookups are filtered by author so a record owned by
// someone else looks exactly like a missing one. Without it the record is
// loaded unfiltered and Check reports ErrForbidden.
type Policy struct {
	HideForeign bool
}

var DefaultPolicy = Policy{HideForeign: true}

// Scope restricts a query to rows authored by userID when hiding foreign records.
func (p Policy) Scope(userID uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if !p.HideForeign {
			return tx
		}
		return tx.Where("author_id = ?", userID)
	}
}

// Check validates ownership of an already loaded record.
func (p Policy) Check(authorID, userID uint) error {
	if authorID == userID {
		return nil
	}
	if p.HideForeign {
		return ErrNotFound
	}
	return ErrForbidden
}

// Resolve maps a lookup error onto the package errors.
func (p Policy) Resolve(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// StatusFor returns the HTTP status for an access error, or 0 if err is not one.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return 0
	}
}
