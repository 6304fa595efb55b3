// Package session holds the client's authentication state: the current user
// (or none) and the stored access token. The views render from it and call
// into it on login and logout.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/client/auth"
	"github.com/dmitrijs2005/authdemo/internal/client/client"
	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/client/services"
	"github.com/dmitrijs2005/authdemo/internal/logging"
)

// Listener is called with the new user (nil when signed out) after every
// state change.
type Listener func(user *models.User)

type Container struct {
	mu        sync.RWMutex
	user      *models.User
	listeners []Listener

	auth   services.AuthService
	tokens services.TokenStore
	log    logging.Logger
	now    func() time.Time
}

func NewContainer(auth services.AuthService, tokens services.TokenStore, log logging.Logger) *Container {
	return &Container{
		auth:   auth,
		tokens: tokens,
		log:    log.With("component", "session"),
		now:    time.Now,
	}
}

// Subscribe registers fn to be called after every sign in and sign out.
func (c *Container) Subscribe(fn Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// User returns the signed-in user or nil.
func (c *Container) User() *models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

func (c *Container) IsAuthenticated() bool {
	return c.User() != nil
}

// Greeting is the headline of the authenticated view. It is empty when no
// user is signed in.
func (c *Container) Greeting() string {
	u := c.User()
	if u == nil {
		return ""
	}
	return "Welcome, " + u.Email
}

// Bootstrap restores the session from a stored token. A token whose exp
// claim has passed is dropped without asking the server. A token the server
// rejects is dropped as well. When the server cannot be reached the token
// is kept for the next run and the session starts signed out.
func (c *Container) Bootstrap(ctx context.Context) error {
	tokens, err := c.tokens.Load(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	if tokens.Access == "" {
		c.log.Debug(ctx, "no stored session")
		return nil
	}

	if auth.Expired(tokens.Access, c.now()) {
		c.log.Info(ctx, "stored token expired, discarding")
		if err := c.tokens.Clear(ctx); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
		return nil
	}

	user, err := c.auth.CurrentUser(ctx, tokens.Access)
	switch {
	case err == nil:
		c.setUser(user)
		c.log.Info(ctx, "session restored", "email", user.Email)
		return nil

	case errors.Is(err, client.ErrUnauthorized):
		c.log.Info(ctx, "stored token rejected, discarding")
		if err := c.tokens.Clear(ctx); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
		return nil

	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return err

	default:
		c.log.Warn(ctx, "could not verify stored session", "error", err)
		return nil
	}
}

// SignIn persists tokens and makes user the current user.
func (c *Container) SignIn(ctx context.Context, tokens models.Tokens, user *models.User) error {
	if tokens.Access == "" {
		return errors.New("sign in: empty access token")
	}
	if user == nil {
		return errors.New("sign in: no user")
	}

	if err := c.tokens.Save(ctx, tokens); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	c.setUser(user)
	return nil
}

// Logout ends the session. The server is told on a best-effort basis; the
// stored tokens and the in-memory user are removed whatever it answers.
// Only a failure to clear local storage is returned.
func (c *Container) Logout(ctx context.Context) error {
	tokens, err := c.tokens.Load(ctx)
	if err != nil {
		c.log.Warn(ctx, "could not read stored token", "error", err)
	}

	if tokens.Access != "" {
		if err := c.auth.Logout(ctx, tokens.Access); err != nil {
			c.log.Warn(ctx, "server logout failed", "error", err)
		}
	}

	clearErr := c.tokens.Clear(ctx)
	c.setUser(nil)

	if clearErr != nil {
		return fmt.Errorf("logout: %w", clearErr)
	}
	c.log.Info(ctx, "logged out")
	return nil
}

func (c *Container) setUser(user *models.User) {
	c.mu.Lock()
	c.user = user
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(user)
	}
}
