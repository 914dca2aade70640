// Package common contains constants and small helpers shared by the ragdesk
// client packages.
package common

// Keys under which the session store persists client state.
const (
	KeyUsername = "username"
	KeyToken    = "token"
	KeyTheme    = "theme"
)

// Outbound HTTP header names.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
)

// APIURL is the backend every request goes to.
const APIURL = "http://localhost:8000"
