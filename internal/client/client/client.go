package client

import (
	"context"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
)

// API paths, relative to the configured base URL.
const (
	LoginPath              = "/api/auth/login/"
	RegisterPath           = "/api/auth/register/"
	ResendVerificationPath = "/api/auth/resend-verification/"
	MePath                 = "/api/auth/me/"
	LogoutPath             = "/api/auth/logout/"
)

type Client interface {
	Close() error
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error)
	Register(ctx context.Context, creds models.Credentials) (*models.RegisterResponse, error)
	ResendVerification(ctx context.Context, email string) error
	Me(ctx context.Context, accessToken string) (*models.User, error)
	Logout(ctx context.Context, accessToken string) error
}
