// Package models holds the data the client receives from the auth API.
package models

import (
	"encoding/json"
)

// User is the account returned by login and /me. Only Email is relied on by
// the views; the other known fields are decoded for convenience and anything
// else the server sends is kept verbatim in Extra.
type User struct {
	ID                 json.RawMessage `json:"id,omitempty"`
	Email              string          `json:"email"`
	IsEmailVerified    bool            `json:"is_email_verified"`
	PhoneNumber        string          `json:"phone_number,omitempty"`
	IsPhoneVerified    bool            `json:"is_phone_verified"`
	MustChangePassword bool            `json:"must_change_password"`

	Extra map[string]json.RawMessage `json:"-"`
}

var knownUserFields = map[string]struct{}{
	"id":                   {},
	"email":                {},
	"is_email_verified":    {},
	"phone_number":         {},
	"is_phone_verified":    {},
	"must_change_password": {},
}

// UnmarshalJSON decodes the known fields and collects the rest into Extra.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	for k, v := range all {
		if _, ok := knownUserFields[k]; ok {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]json.RawMessage)
		}
		p.Extra[k] = v
	}

	*u = User(p)
	return nil
}
