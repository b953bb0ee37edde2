package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the loop dispatches to. *App satisfies
// it; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Home(ctx context.Context) error
	Courses(ctx context.Context) error
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Profile(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads lines from the scanner, takes the first token as the
// command, and dispatches to a. It exits on EOF or "exit"/"quit".
//
// Errors from command handlers are ignored here; the handlers report to
// the user themselves, which keeps the loop resilient.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("learnex> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: home, courses, profile, update, logout, exit")
			} else {
				printlnFn("Available commands: home, courses, login, register, exit")
			}

		case "home":
			_ = a.Home(ctx)

		case "courses":
			_ = a.Courses(ctx)

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "update":
			_ = a.UpdateProfile(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", parts[0])
		}
	}
}
