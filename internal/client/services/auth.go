// Package services contains the client's application services: the auth
// API service, which turns raw API answers into classified results, and the
// token store that plays the role of browser local storage.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authdemo/internal/client/client"
	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/logging"
)

// AuthService defines the authentication operations the forms and the
// session container use.
//
// Contract:
//   - Login: classify the login answer into succeeded / MFA required / rejected.
//   - Register: report whether an account was created, with the raw body.
//   - ResendVerification: nil on 2xx, *client.APIError otherwise.
//   - CurrentUser: resolve an access token into its user.
//   - Logout: end the server-side session of an access token.
//   - Close: release transport resources.
//
// Transport failures come back wrapped around the client package's sentinel
// errors. All methods honor context cancellation.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.LoginResult, error)
	Register(ctx context.Context, email, password string) (*models.RegisterResult, error)
	ResendVerification(ctx context.Context, email string) error
	CurrentUser(ctx context.Context, accessToken string) (*models.User, error)
	Logout(ctx context.Context, accessToken string) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	log    logging.Logger
}

func NewAuthService(client client.Client, log logging.Logger) AuthService {
	return &authService{client: client, log: log.With("component", "auth")}
}

// Login branches on the shape of the body: a non-empty access token wins,
// then mfa_required, and anything else is a rejection. When the server
// issues tokens without embedding the user, the user is fetched with the
// new access token.
func (a *authService) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	resp, err := a.client.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	switch {
	case resp.Access != "":
		user := resp.User
		if user == nil {
			user, err = a.client.Me(ctx, resp.Access)
			if err != nil {
				return nil, fmt.Errorf("login error: fetch user: %w", err)
			}
		}
		a.log.Info(ctx, "login succeeded", "email", user.Email)
		return &models.LoginResult{
			Kind:   models.LoginSucceeded,
			Tokens: models.Tokens{Access: resp.Access, Refresh: resp.Refresh},
			User:   user,
		}, nil

	case resp.MFARequired():
		a.log.Info(ctx, "login needs mfa", "email", email, "methods", resp.Methods)
		return &models.LoginResult{Kind: models.LoginMFARequired, Methods: resp.Methods}, nil

	default:
		a.log.Info(ctx, "login rejected", "email", email, "detail", resp.Detail)
		return &models.LoginResult{Kind: models.LoginRejected, Detail: resp.Detail}, nil
	}
}

func (a *authService) Register(ctx context.Context, email, password string) (*models.RegisterResult, error) {
	resp, err := a.client.Register(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}

	if !resp.HasID() {
		a.log.Info(ctx, "registration refused", "email", email)
	}
	return &models.RegisterResult{Created: resp.HasID(), Body: string(resp.Raw)}, nil
}

func (a *authService) ResendVerification(ctx context.Context, email string) error {
	if err := a.client.ResendVerification(ctx, email); err != nil {
		return fmt.Errorf("resend verification error: %w", err)
	}
	return nil
}

func (a *authService) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	u, err := a.client.Me(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("current user error: %w", err)
	}
	return u, nil
}

func (a *authService) Logout(ctx context.Context, accessToken string) error {
	if err := a.client.Logout(ctx, accessToken); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
