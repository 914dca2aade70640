package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ragdesk/internal/client/client"
	"github.com/dmitrijs2005/ragdesk/internal/client/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

const (
	msgConnection      = "Connection error. Please try again."
	msgResetConnection = "Connection error"
	msgUnsupported     = "Data analysis is not available with the legacy API"
)

func (a *App) println(text string) { printlnFn(text) }
func (a *App) success(text string) { printlnFn(a.style.Success(text)) }
func (a *App) fail(text string)    { printlnFn(a.style.Error(text)) }
func (a *App) info(text string)    { printlnFn(a.style.Accent(text)) }

// startBusy shows what is in progress; the returned func clears it and must
// be deferred so every outcome re-enables the command.
func (a *App) startBusy(what string) func() {
	a.busy = what
	printlnFn(a.style.Muted(what))
	return func() { a.busy = "" }
}

// failureText picks what the user sees for err. Validation errors carry
// their own text and server failures show the server's message (or
// fallback). Anything else, transport failures included, goes through
// transport.
func failureText(err error, fallback string, transport func(error) string) string {
	var se *client.ServerError
	switch {
	case services.IsValidation(err):
		return err.Error()
	case errors.Is(err, client.ErrUnsupported):
		return msgUnsupported
	case errors.As(err, &se):
		return client.ServerMessage(err, fallback)
	default:
		return transport(err)
	}
}

func fixed(msg string) func(error) string {
	return func(error) string { return msg }
}

func prefixed(prefix string) func(error) string {
	return func(err error) string { return prefix + err.Error() }
}
