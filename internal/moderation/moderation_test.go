package moderation

import (
	"testing"

	"yaportal/internal/forms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsBadWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"clean", "Обычный комментарий", false},
		{"standalone word", "Какой-то текст, редиска, еще текст", true},
		{"inside longer word", "суперредискаmax", true},
		{"second word", "ты негодяй", true},
		{"case sensitive", "Редиска", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsBadWords(tt.text, BadWords))
		})
	}
}

func TestContainsBadWordsIgnoresEmptyWord(t *testing.T) {
	assert.False(t, ContainsBadWords("anything", []string{""}))
	assert.False(t, ContainsBadWords("anything", nil))
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check("всё хорошо"))

	err := Check("привет, " + BadWords[0])
	require.Error(t, err)
	fe, ok := forms.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, Warning, fe.Get("text"))
}
