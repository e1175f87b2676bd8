// Package client contains the transport building blocks of scanboard.
//
// # Overview
//
// The package provides:
//  1. The Client contract used by the services: a generic Do plus
//     Get/Post/Patch/Delete verbs that take a path, optional query values
//     and body, and decode the JSON answer.
//  2. HTTPClient, the one concrete implementation. It is created once with
//     a fixed base URL and shared by every service. Credentials are given per
//     call: a non-empty token becomes "Authorization: Bearer <token>", an
//     empty one means no Authorization header. Every JSON body has its
//     object keys camelized (see package casing) before decoding.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     SQLite database and the embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses are returned as *HTTPError (status code and body).
// HTTPError unwraps to ErrUnauthorized (401/403), ErrNotFound (404) or
// ErrUnavailable (5xx); transport failures wrap ErrUnavailable too. Nothing
// is retried and a 401 does not trigger a token refresh.
package client
