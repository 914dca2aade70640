// Package models defines the client-side data shapes exchanged with the
// backend and held as application state.
package models

// Session identifies the signed-in user. Token is empty when the backend
// speaks the legacy, path-scoped API.
type Session struct {
	Username string
	Token    string
}

// Theme is the persisted colour preference of the terminal output.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
