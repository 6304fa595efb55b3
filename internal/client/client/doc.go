// Package client talks to the auth API and bootstraps the local store.
//
// # Overview
//
//  1. Client is the transport contract the services depend on: Login,
//     Register, ResendVerification, Me and Logout.
//  2. HTTPClient implements it with JSON over net/http against a single
//     base URL. Every request carries a User-Agent and a fresh X-Request-ID.
//  3. InitDatabase / RunMigrations open the SQLite session store and apply
//     the embedded goose migrations.
//
// # Error Handling
//
// Transport conditions are reported as sentinel errors matched with
// errors.Is: ErrUnavailable (connection refused, DNS, timeout),
// ErrUnauthorized (401/403 on bearer-authenticated calls) and
// ErrInvalidResponse (a body that is not the expected JSON). Non-2xx answers
// that carry an error body are returned as *APIError. A cancelled context is
// returned as the context's own error.
package client
