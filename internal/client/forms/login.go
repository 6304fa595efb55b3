package forms

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/client/services"
	"github.com/dmitrijs2005/authdemo/internal/logging"
)

// SignInFunc receives the tokens and user of a successful login.
type SignInFunc func(ctx context.Context, tokens models.Tokens, user *models.User) error

// LoginState is a point-in-time copy of the login form.
type LoginState struct {
	Email      string
	Password   string
	Notice     string
	Submitting bool
}

// LoginForm collects email and password and submits them either as a login
// or as a registration.
type LoginForm struct {
	mu    sync.Mutex
	state LoginState

	auth    services.AuthService
	signIn  SignInFunc
	log     logging.Logger
	tracker Tracker
}

// NewLoginForm returns a form that hands successful logins to signIn.
// signIn runs while the form is locked and must not call back into it.
func NewLoginForm(auth services.AuthService, signIn SignInFunc, log logging.Logger) *LoginForm {
	return &LoginForm{
		auth:   auth,
		signIn: signIn,
		log:    log.With("component", "login_form"),
	}
}

func (f *LoginForm) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Email = email
}

func (f *LoginForm) SetPassword(password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Password = password
}

func (f *LoginForm) State() LoginState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *LoginForm) Notice() string {
	return f.State().Notice
}

// Reset drops any in-flight submission and clears the form.
func (f *LoginForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tracker.Reset()
	f.state = LoginState{}
}

func (f *LoginForm) begin(ctx context.Context) (*Ticket, string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Submitting = true
	return f.tracker.Start(ctx), f.state.Email, f.state.Password
}

// settle runs apply under the form lock if the ticket is still current.
func (f *LoginForm) settle(ticket *Ticket, apply func()) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !ticket.Current() {
		return false
	}
	f.state.Submitting = false
	apply()
	return true
}

// Login submits the form to the login endpoint. It reports whether the
// result was applied; false means the submission was superseded or
// cancelled and left the form untouched.
func (f *LoginForm) Login(ctx context.Context) bool {
	ticket, email, password := f.begin(ctx)
	defer ticket.Done()

	res, err := f.auth.Login(ticket.Context(), email, password)
	if err != nil && canceled(err) {
		f.settle(ticket, func() {})
		return false
	}

	return f.settle(ticket, func() {
		if err != nil {
			f.state.Notice = f.failureNotice(ctx, err, MsgLoginFailed)
			return
		}

		switch res.Kind {
		case models.LoginSucceeded:
			if err := f.signIn(ticket.Context(), res.Tokens, res.User); err != nil {
				f.log.Error(ctx, "could not start session", "error", err)
				f.state.Notice = MsgLoginFailed
				return
			}
			f.state.Notice = ""
		case models.LoginMFARequired:
			f.state.Notice = MsgMFARequiredPrefix + strings.Join(res.Methods, ", ")
		default:
			f.state.Notice = MsgLoginFailed
		}
	})
}

// Register submits the form to the registration endpoint. The fields are
// left as they are whatever the outcome.
func (f *LoginForm) Register(ctx context.Context) bool {
	ticket, email, password := f.begin(ctx)
	defer ticket.Done()

	res, err := f.auth.Register(ticket.Context(), email, password)
	if err != nil && canceled(err) {
		f.settle(ticket, func() {})
		return false
	}

	return f.settle(ticket, func() {
		switch {
		case err != nil:
			f.state.Notice = f.failureNotice(ctx, err, MsgRegisterFailedPrefix+err.Error())
		case res.Created:
			f.state.Notice = MsgRegistered
		default:
			f.state.Notice = MsgRegisterFailedPrefix + res.Body
		}
	})
}

func (f *LoginForm) failureNotice(ctx context.Context, err error, fallback string) string {
	if msg, ok := transportMessage(err); ok {
		f.log.Warn(ctx, "request failed", "error", err)
		return msg
	}
	f.log.Error(ctx, "request failed", "error", err)
	return fallback
}
