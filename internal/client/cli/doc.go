// Package cli provides the interactive authdemo command-line client.
//
// It wires configuration, the local token store, the HTTP API client and the
// session container, restores a previous session, and then hands control to
// one of two views: a line-oriented REPL or the full-screen TUI.
//
// REPL commands while signed out:
//   - login, register, resend
//
// and while signed in:
//   - whoami, logout
//
// help and exit are always available. The REPL is started via App.Run(ctx),
// which blocks until the user exits. See App and runREPL for details.
package cli
