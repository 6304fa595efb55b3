package forms

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/authdemo/internal/client/client"
	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoginForm(fa *fakeAuth, rec *signInRecorder) *LoginForm {
	f := NewLoginForm(fa, rec.SignIn, logging.Discard())
	f.SetEmail("a@b.com")
	f.SetPassword("x")
	return f
}

func loginReturning(res *models.LoginResult, err error) *fakeAuth {
	return &fakeAuth{LoginFn: func(context.Context, string, string) (*models.LoginResult, error) {
		return res, err
	}}
}

func TestLogin_Succeeded(t *testing.T) {
	var gotEmail, gotPassword string
	fa := &fakeAuth{LoginFn: func(_ context.Context, email, password string) (*models.LoginResult, error) {
		gotEmail, gotPassword = email, password
		return &models.LoginResult{
			Kind:   models.LoginSucceeded,
			Tokens: models.Tokens{Access: "tok1"},
			User:   &models.User{Email: "a@b.com"},
		}, nil
	}}
	rec := &signInRecorder{}
	f := newLoginForm(fa, rec)

	require.True(t, f.Login(context.Background()))

	assert.Equal(t, "a@b.com", gotEmail)
	assert.Equal(t, "x", gotPassword)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, "tok1", rec.tokens.Access)
	assert.Equal(t, "a@b.com", rec.user.Email)

	st := f.State()
	assert.Empty(t, st.Notice)
	assert.False(t, st.Submitting)
}

func TestLogin_Outcomes(t *testing.T) {
	tests := []struct {
		name   string
		res    *models.LoginResult
		err    error
		notice string
	}{
		{
			name:   "mfa required",
			res:    &models.LoginResult{Kind: models.LoginMFARequired, Methods: []string{"totp", "sms"}},
			notice: "MFA required: totp, sms",
		},
		{
			name:   "rejected",
			res:    &models.LoginResult{Kind: models.LoginRejected, Detail: "Email verification required"},
			notice: "Login failed",
		},
		{
			name:   "network error",
			err:    fmt.Errorf("login error: %w", client.ErrUnavailable),
			notice: "Network error, please try again.",
		},
		{
			name:   "non-json body",
			err:    fmt.Errorf("login error: %w", client.ErrInvalidResponse),
			notice: "Unexpected response from server.",
		},
		{
			name:   "other error",
			err:    errors.New("boom"),
			notice: "Login failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &signInRecorder{}
			f := newLoginForm(loginReturning(tt.res, tt.err), rec)

			require.True(t, f.Login(context.Background()))

			assert.Equal(t, tt.notice, f.Notice())
			assert.Zero(t, rec.calls)
			assert.False(t, f.State().Submitting)
		})
	}
}

func TestLogin_SignInFailure(t *testing.T) {
	rec := &signInRecorder{err: errors.New("disk full")}
	f := newLoginForm(loginReturning(&models.LoginResult{
		Kind:   models.LoginSucceeded,
		Tokens: models.Tokens{Access: "tok1"},
		User:   &models.User{Email: "a@b.com"},
	}, nil), rec)

	require.True(t, f.Login(context.Background()))
	assert.Equal(t, MsgLoginFailed, f.Notice())
}

func TestLogin_StaleResultDiscarded(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	var firstCtx context.Context

	fa := &fakeAuth{LoginFn: func(ctx context.Context, _, _ string) (*models.LoginResult, error) {
		calls++
		if calls == 1 {
			firstCtx = ctx
			close(entered)
			<-release
			// the answer arrives even though the request was cancelled
			return &models.LoginResult{
				Kind:   models.LoginSucceeded,
				Tokens: models.Tokens{Access: "old"},
				User:   &models.User{Email: "a@b.com"},
			}, nil
		}
		return &models.LoginResult{Kind: models.LoginMFARequired, Methods: []string{"totp"}}, nil
	}}
	rec := &signInRecorder{}
	f := newLoginForm(fa, rec)

	done := make(chan bool)
	go func() {
		done <- f.Login(context.Background())
	}()
	<-entered

	require.True(t, f.Login(context.Background()))
	assert.ErrorIs(t, firstCtx.Err(), context.Canceled)

	close(release)
	assert.False(t, <-done)

	assert.Equal(t, "MFA required: totp", f.Notice())
	assert.Zero(t, rec.calls)
	assert.False(t, f.State().Submitting)
}

func TestLogin_CancelledByCaller(t *testing.T) {
	fa := &fakeAuth{LoginFn: func(ctx context.Context, _, _ string) (*models.LoginResult, error) {
		<-ctx.Done()
		return nil, fmt.Errorf("login error: %w", ctx.Err())
	}}
	f := newLoginForm(fa, &signInRecorder{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, f.Login(ctx))
	assert.Empty(t, f.Notice())
	assert.False(t, f.State().Submitting)
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name   string
		res    *models.RegisterResult
		err    error
		notice string
	}{
		{
			name:   "created",
			res:    &models.RegisterResult{Created: true, Body: `{"id":1}`},
			notice: "Registered! Please check email to verify.",
		},
		{
			name:   "refused",
			res:    &models.RegisterResult{Body: `{"email":["already exists"]}`},
			notice: `Registration failed: {"email":["already exists"]}`,
		},
		{
			name:   "network error",
			err:    fmt.Errorf("register error: %w", client.ErrUnavailable),
			notice: "Network error, please try again.",
		},
		{
			name:   "non-json body",
			err:    fmt.Errorf("register error: %w", client.ErrInvalidResponse),
			notice: "Unexpected response from server.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := &fakeAuth{RegisterFn: func(context.Context, string, string) (*models.RegisterResult, error) {
				return tt.res, tt.err
			}}
			f := newLoginForm(fa, &signInRecorder{})

			require.True(t, f.Register(context.Background()))

			st := f.State()
			assert.Equal(t, tt.notice, st.Notice)
			assert.Equal(t, "a@b.com", st.Email)
			assert.Equal(t, "x", st.Password)
		})
	}
}

func TestLoginForm_Reset(t *testing.T) {
	f := newLoginForm(loginReturning(&models.LoginResult{Kind: models.LoginRejected}, nil), &signInRecorder{})
	require.True(t, f.Login(context.Background()))

	f.Reset()
	assert.Equal(t, LoginState{}, f.State())
}
