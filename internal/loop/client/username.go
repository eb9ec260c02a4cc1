package client

import (
	"strings"
	"unicode"

	"github.com/tomz197/spaceship/internal/loop/config"
)

// DefaultUsername is used when a session has no usable name.
const DefaultUsername = "player"

// SanitizeUsername makes a login name safe to draw and store: control and
// non-printable runes are dropped and the result is cut to the leaderboard
// column width.
func SanitizeUsername(name string) string {
	var b strings.Builder
	n := 0
	for _, r := range strings.TrimSpace(name) {
		if !unicode.IsPrint(r) {
			continue
		}
		if n == config.MaxUsernameLength {
			break
		}
		b.WriteRune(r)
		n++
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		return s
	}
	return DefaultUsername
}
