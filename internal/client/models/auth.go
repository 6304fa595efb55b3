package models

import (
	"bytes"
	"encoding/json"
)

// Credentials is the body of login and register requests.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Tokens are the credentials issued on a successful login. Access is the
// session token; both are opaque to the client.
type Tokens struct {
	Access  string
	Refresh string
}

// LoginResponse is the decoded body of POST /api/auth/login/. The server
// answers with one of three shapes: tokens + user, an MFA request, or an
// error body.
type LoginResponse struct {
	Access  string          `json:"access"`
	Refresh string          `json:"refresh"`
	User    *User           `json:"user"`
	MFA     json.RawMessage `json:"mfa_required"`
	Methods []string        `json:"methods"`
	Detail  string          `json:"detail"`
}

// MFARequired reports whether mfa_required carried a truthy value.
func (r *LoginResponse) MFARequired() bool {
	return truthy(r.MFA)
}

// RegisterResponse is the body of POST /api/auth/register/. Raw keeps the
// undecoded body for failure diagnostics.
type RegisterResponse struct {
	ID  json.RawMessage `json:"id"`
	Raw []byte          `json:"-"`
}

// HasID reports whether the body carried a non-empty id.
func (r *RegisterResponse) HasID() bool {
	return truthy(r.ID)
}

// LoginKind is the branch a login response falls into.
type LoginKind int

const (
	LoginRejected LoginKind = iota
	LoginSucceeded
	LoginMFARequired
)

func (k LoginKind) String() string {
	switch k {
	case LoginSucceeded:
		return "succeeded"
	case LoginMFARequired:
		return "mfa_required"
	default:
		return "rejected"
	}
}

// LoginResult is a classified login response.
type LoginResult struct {
	Kind    LoginKind
	Tokens  Tokens
	User    *User
	Methods []string
	Detail  string
}

// RegisterResult is a classified registration response.
type RegisterResult struct {
	Created bool
	Body    string
}

// truthy treats null, false, 0, "" and an absent value as false.
func truthy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return false
	}
	switch string(v) {
	case "null", "false", "0", `""`:
		return false
	}
	return true
}
