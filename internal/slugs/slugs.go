// Package slugs derives URL-safe identifiers from titles.
package slugs

import (
	"github.com/gosimple/slug"
)

// Make transliterates and slugifies title, then cuts the result to maxLen.
// The output is ASCII, so a byte cut never splits a character.
func Make(title string, maxLen int) string {
	s := slug.Make(title)
	if maxLen > 0 && len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}
