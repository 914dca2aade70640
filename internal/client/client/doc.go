// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
// The package provides:
//  1. The backend API contract (see the Client interface): authentication,
//     documents, question answering, history, profile and data analysis.
//  2. A concrete HTTP implementation (see HTTPClient). One implementation
//     serves both backend shapes, selected by Contract:
//     ContractBearer sends "Authorization: Bearer <token>" and expects the
//     {success, message, data} envelope; ContractLegacy scopes requests by
//     username in the path, body or form and reads bare payloads.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens the
//     SQLite session database and applies the embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable, undecodable responses wrap
// ErrBadResponse (see IsConnectionError), and a backend answer with
// success=false is returned as *ServerError carrying the server's message.
// Features the legacy API lacks return ErrUnsupported.
//
// No request is retried and no client-side timeout is applied; callers
// cancel through the context.
package client
