package forms

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/authdemo/internal/client/client"
	"github.com/dmitrijs2005/authdemo/internal/client/services"
	"github.com/dmitrijs2005/authdemo/internal/logging"
)

// ResendState is a point-in-time copy of the resend form.
type ResendState struct {
	Email   string
	Message string
	Loading bool
}

// Label is the text of the submit control.
func (s ResendState) Label() string {
	if s.Loading {
		return LabelSending
	}
	return LabelResend
}

// ResendForm asks the server to send the verification email again.
type ResendForm struct {
	mu    sync.Mutex
	state ResendState

	auth    services.AuthService
	log     logging.Logger
	tracker Tracker
}

func NewResendForm(auth services.AuthService, log logging.Logger) *ResendForm {
	return &ResendForm{
		auth: auth,
		log:  log.With("component", "resend_form"),
	}
}

func (f *ResendForm) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Email = email
}

func (f *ResendForm) State() ResendState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *ResendForm) Loading() bool {
	return f.State().Loading
}

func (f *ResendForm) Message() string {
	return f.State().Message
}

// Reset drops any in-flight submission and clears the form.
func (f *ResendForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tracker.Reset()
	f.state = ResendState{}
}

// Submit sends the request and records the outcome in Message. It returns
// ErrBusy while a previous submission is in flight; every other outcome is
// reported through Message only.
func (f *ResendForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state.Loading {
		f.mu.Unlock()
		return ErrBusy
	}
	f.state.Loading = true
	f.state.Message = ""
	email := f.state.Email
	ticket := f.tracker.Start(ctx)
	f.mu.Unlock()

	defer ticket.Done()
	defer f.finish(ticket)

	err := f.auth.ResendVerification(ticket.Context(), email)
	if err != nil && canceled(err) {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if !ticket.Current() {
		return nil
	}
	f.state.Message = f.message(ctx, err)
	return nil
}

func (f *ResendForm) finish(ticket *Ticket) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ticket.Current() {
		f.state.Loading = false
	}
}

func (f *ResendForm) message(ctx context.Context, err error) string {
	if err == nil {
		return MsgResent
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return MsgResendFailed
	}

	if errors.Is(err, client.ErrUnavailable) {
		f.log.Warn(ctx, "resend failed", "error", err)
		return MsgNetworkError
	}

	f.log.Error(ctx, "resend failed", "error", err)
	return MsgResendFailed
}
