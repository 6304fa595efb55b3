package forms

import (
	"context"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/client/services"
)

// fakeAuth implements services.AuthService with per-call hooks.
type fakeAuth struct {
	services.AuthService

	LoginFn    func(ctx context.Context, email, password string) (*models.LoginResult, error)
	RegisterFn func(ctx context.Context, email, password string) (*models.RegisterResult, error)
	ResendFn   func(ctx context.Context, email string) error
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	return f.LoginFn(ctx, email, password)
}

func (f *fakeAuth) Register(ctx context.Context, email, password string) (*models.RegisterResult, error) {
	return f.RegisterFn(ctx, email, password)
}

func (f *fakeAuth) ResendVerification(ctx context.Context, email string) error {
	return f.ResendFn(ctx, email)
}

type signInRecorder struct {
	calls  int
	tokens models.Tokens
	user   *models.User
	err    error
}

func (r *signInRecorder) SignIn(_ context.Context, tokens models.Tokens, user *models.User) error {
	r.calls++
	r.tokens = tokens
	r.user = user
	return r.err
}
