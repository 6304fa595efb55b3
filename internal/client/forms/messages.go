package forms

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/authdemo/internal/client/client"
)

const (
	MsgLoginFailed          = "Login failed"
	MsgMFARequiredPrefix    = "MFA required: "
	MsgRegistered           = "Registered! Please check email to verify."
	MsgRegisterFailedPrefix = "Registration failed: "
	MsgResent               = "Verification email resent! Check your inbox."
	MsgResendFailed         = "Could not resend email"
	MsgNetworkError         = "Network error, please try again."
	MsgUnexpectedResponse   = "Unexpected response from server."

	LabelResend  = "Resend"
	LabelSending = "Sending..."
)

// ErrBusy is returned when a submission is attempted while the previous one
// is still in flight.
var ErrBusy = errors.New("submission already in progress")

func canceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// transportMessage maps the transport failures every form shares to their
// message. ok is false for anything else.
func transportMessage(err error) (msg string, ok bool) {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return MsgNetworkError, true
	case errors.Is(err, client.ErrInvalidResponse):
		return MsgUnexpectedResponse, true
	}
	return "", false
}
