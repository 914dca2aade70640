// Package cli provides the interactive ragdesk terminal client.
//
// It wires configuration, the local session database, the API client and
// services, and an interactive REPL. The REPL has two pages: the auth page
// (login, signup, password reset) and the dashboard (documents, questions,
// history, profile, data analysis). Each input line is parsed by a cobra
// command tree built for the current page.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, navigate and runREPL for details.
package cli
