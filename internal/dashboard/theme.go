package dashboard

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/session"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Theme is the validated pair of page colors, ready for the style block.
type Theme struct {
	Background template.CSS
	Text       template.CSS
}

// ValidColor reports whether s is a #rrggbb color.
func ValidColor(s string) bool { return hexColor.MatchString(strings.TrimSpace(s)) }

// NormalizeColor returns s in upper case when valid, else fallback.
func NormalizeColor(s, fallback string) string {
	s = strings.TrimSpace(s)
	if !ValidColor(s) {
		return fallback
	}
	return strings.ToUpper(s)
}

// ResolveTheme validates the session's colors against the defaults. Only
// values matching #rrggbb reach the page.
func ResolveTheme(t, defaults session.Theme) Theme {
	bg := NormalizeColor(t.Background, NormalizeColor(defaults.Background, "#FFFFFF"))
	fg := NormalizeColor(t.Text, NormalizeColor(defaults.Text, "#000000"))
	return Theme{Background: template.CSS(bg), Text: template.CSS(fg)}
}
