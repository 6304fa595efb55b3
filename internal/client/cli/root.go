package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
)

// getStatus is shown in the prompt: the signed-in email, or nothing.
func (a *App) getStatus() string {
	u := a.container.User()
	if u == nil {
		return ""
	}
	return fmt.Sprintf("(%s) ", u.Email)
}

// render prints the view that matches the session state.
func (a *App) render(u *models.User) {
	if u == nil {
		printlnFn("Logged out.")
		return
	}
	printlnFn(a.container.Greeting())
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to authdemo CLI (type 'help' for commands)")

	if a.isLoggedIn() {
		a.render(a.container.User())
	}
	a.container.Subscribe(a.render)

	runREPL(ctx, a, a.getStatus, a.reader)
}
