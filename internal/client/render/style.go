package render

import (
	"github.com/dmitrijs2005/ragdesk/internal/client/models"
	"github.com/mitchellh/colorstring"
)

type palette struct {
	success, failure, accent, muted string
}

var palettes = map[models.Theme]palette{
	models.ThemeDark:  {success: "[light_green]", failure: "[light_red]", accent: "[light_cyan]", muted: "[light_gray]"},
	models.ThemeLight: {success: "[green]", failure: "[red]", accent: "[blue]", muted: "[dark_gray]"},
}

// Style colours terminal output for the current theme. Only colour codes go
// through colorstring; text is appended verbatim so brackets in server
// messages are never taken for codes.
type Style struct {
	theme models.Theme
	c     colorstring.Colorize
}

// NewStyle returns a Style for theme. With noColor every code is dropped.
func NewStyle(theme models.Theme, noColor bool) *Style {
	if _, ok := palettes[theme]; !ok {
		theme = models.ThemeDark
	}
	return &Style{
		theme: theme,
		c:     colorstring.Colorize{Colors: colorstring.DefaultColors, Disable: noColor, Reset: false},
	}
}

func (s *Style) Theme() models.Theme { return s.theme }

// WithTheme returns a copy of s for another theme.
func (s *Style) WithTheme(theme models.Theme) *Style {
	return NewStyle(theme, s.c.Disable)
}

func (s *Style) code(c string) string {
	return s.c.Color(c)
}

func (s *Style) wrap(c, text string) string {
	if s.c.Disable {
		return text
	}
	return s.code(c) + text + s.code("[reset]")
}

func (s *Style) Success(text string) string { return s.wrap(palettes[s.theme].success, text) }
func (s *Style) Error(text string) string   { return s.wrap(palettes[s.theme].failure, text) }
func (s *Style) Accent(text string) string  { return s.wrap(palettes[s.theme].accent, text) }
func (s *Style) Muted(text string) string   { return s.wrap(palettes[s.theme].muted, text) }
func (s *Style) Bold(text string) string    { return s.wrap("[bold]", text) }
