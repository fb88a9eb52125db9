package render

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// MessageColorToken is the theme token holding the feedback label colour.
const MessageColorToken = "message"

// MessageColor returns the feedback colour of a theme configuration built
// with theme.Selection.RendererTheme, or "".
func MessageColor(cfg *theme.RendererConfig) string {
	if cfg == nil {
		return ""
	}
	return strings.TrimSpace(cfg.Tokens[MessageColorToken])
}
