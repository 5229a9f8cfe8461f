package access

import (
	"fmt"
	"net/http"
	"testing"

	"yaportal/internal/models"
	"yaportal/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCheck(t *testing.T) {
	assert.NoError(t, DefaultPolicy.Check(1, 1))
	assert.ErrorIs(t, DefaultPolicy.Check(1, 2), ErrNotFound)
	assert.ErrorIs(t, Policy{HideForeign: false}.Check(1, 2), ErrForbidden)
}

func TestResolve(t *testing.T) {
	assert.ErrorIs(t, DefaultPolicy.Resolve(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, DefaultPolicy.Resolve(fmt.Errorf("wrapped: %w", gorm.ErrRecordNotFound)), ErrNotFound)
	assert.Nil(t, DefaultPolicy.Resolve(nil))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(ErrNotFound))
	assert.Equal(t, http.StatusForbidden, StatusFor(fmt.Errorf("edit: %w", ErrForbidden)))
	assert.Equal(t, 0, StatusFor(fmt.Errorf("other")))
}

func TestScope(t *testing.T) {
	conn := testutil.NewDB(t)
	author := testutil.CreateUser(t, conn, "author")
	other := testutil.CreateUser(t, conn, "other")
	note := models.Note{Title: "t", Text: "x", Slug: "s", AuthorID: author.ID}
	require.NoError(t, conn.Create(&note).Error)

	var found models.Note
	require.NoError(t, conn.Scopes(DefaultPolicy.Scope(author.ID)).First(&found, note.ID).Error)

	err := conn.Scopes(DefaultPolicy.Scope(other.ID)).First(&found, note.ID).Error
	assert.ErrorIs(t, DefaultPolicy.Resolve(err), ErrNotFound)

	open := Policy{HideForeign: false}
	require.NoError(t, conn.Scopes(open.Scope(other.ID)).First(&found, note.ID).Error)
	assert.ErrorIs(t, open.Check(found.AuthorID, other.ID), ErrForbidden)
}
