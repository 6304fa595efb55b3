package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Resend(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the authdemo CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The same reader feeds the prompts of the
// commands, so no input is buffered away from them. The loop exits on EOF,
// when ctx ends, or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - login          authenticate
//	  - register       create an account
//	  - resend         resend the verification email
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - help           show available commands
//	  - whoami         show the current user
//	  - logout         log out
//	  - exit | quit    leave the program
//
// Commands only valid in the other state are reported as unavailable.
// Errors returned by command handlers are ignored here; handlers print
// their own outcome.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("auth %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		loggedIn := a.isLoggedIn()

		switch cmd {
		case "help":
			if loggedIn {
				printlnFn("Available commands: whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, register, resend, exit")
			}

		case "login", "register", "resend":
			if loggedIn {
				printlnFn("Already logged in; logout first.")
				continue
			}
			switch cmd {
			case "login":
				_ = a.Login(ctx)
			case "register":
				_ = a.Register(ctx)
			default:
				_ = a.Resend(ctx)
			}

		case "whoami", "logout":
			if !loggedIn {
				printlnFn("Not logged in.")
				continue
			}
			if cmd == "whoami" {
				_ = a.WhoAmI(ctx)
			} else {
				_ = a.Logout(ctx)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
