// Package cli implements the interactive terminal client. Every page the
// user can visit is guarded by the session route guard, mirroring how the
// web frontend gates its routes.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/greatochuko/fobeworkLMS/internal/client/api"
	"github.com/greatochuko/fobeworkLMS/internal/client/session"
	"github.com/greatochuko/fobeworkLMS/internal/domain"
)

// apiClient is the server surface the CLI needs. *api.Client satisfies it;
// tests provide a stub.
type apiClient interface {
	Register(ctx context.Context, req api.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req api.LoginRequest) (*domain.User, error)
	Session(ctx context.Context) (*domain.User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*domain.User, error)
}

// App wires the API client and session store to the interactive loop.
type App struct {
	client apiClient
	store  *session.Store
	reader *bufio.Reader
	out    io.Writer
	logger *slog.Logger
}

// NewApp builds the CLI application around an API client.
func NewApp(client apiClient, store *session.Store, logger *slog.Logger) *App {
	return &App{
		client: client,
		store:  store,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		logger: logger,
	}
}

func (a *App) isLoggedIn() bool {
	state, _ := a.store.Current()
	return state == session.StatePresent
}

func (a *App) status() string {
	state, user := a.store.Current()
	switch state {
	case session.StatePresent:
		return user.Email
	case session.StateUnresolved:
		return "..."
	default:
		return "guest"
	}
}

// authorize runs the route guard for a page. While the session is still
// unresolved it bootstraps the store and evaluates again, so the user sees
// a loading line instead of a wrong redirect.
func (a *App) authorize(ctx context.Context, policy session.Policy) bool {
	state, _ := a.store.Current()
	decision := session.Evaluate(policy, state)

	if decision.Action == session.Wait {
		fmt.Fprintln(a.out, "Loading session...")
		state = a.store.Bootstrap(ctx)
		decision = session.Evaluate(policy, state)
	}

	if decision.Action == session.Redirect {
		fmt.Fprintf(a.out, "Redirecting to %s\n", decision.Target)
		return false
	}
	return true
}

// Home is the public landing page.
func (a *App) Home(ctx context.Context) error {
	if !a.authorize(ctx, session.PublicRoute) {
		return nil
	}
	if state, user := a.store.Current(); state == session.StatePresent {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", user.FullName())
	} else {
		fmt.Fprintln(a.out, "Welcome to Learnex. Log in or register to get started.")
	}
	return nil
}

// Courses is the public course catalog page.
func (a *App) Courses(ctx context.Context) error {
	if !a.authorize(ctx, session.PublicRoute) {
		return nil
	}
	fmt.Fprintln(a.out, "Browse the course catalog at /courses — open to everyone.")
	return nil
}

// Login authenticates with email and password. Guest-only: a logged-in
// user is sent back home.
func (a *App) Login(ctx context.Context) error {
	if !a.authorize(ctx, session.GuestOnly) {
		return nil
	}

	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	user, err := a.client.Login(ctx, api.LoginRequest{Email: email, Password: string(password)})
	if err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return err
	}

	a.store.SetIdentity(user)
	fmt.Fprintf(a.out, "Logged in as %s\n", user.Email)
	return nil
}

// Register creates an account and logs the new user in.
func (a *App) Register(ctx context.Context) error {
	if !a.authorize(ctx, session.GuestOnly) {
		return nil
	}

	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	firstName, err := GetSimpleText(a.reader, "First name", a.out)
	if err != nil {
		return err
	}
	lastName, err := GetSimpleText(a.reader, "Last name", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	user, err := a.client.Register(ctx, api.RegisterRequest{
		Email:     email,
		Password:  string(password),
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		fmt.Fprintln(a.out, "Registration failed:", err)
		return err
	}

	a.store.SetIdentity(user)
	fmt.Fprintf(a.out, "Account created. Logged in as %s\n", user.Email)
	return nil
}

// Profile shows the logged-in user's details.
func (a *App) Profile(ctx context.Context) error {
	if !a.authorize(ctx, session.MemberOnly) {
		return nil
	}

	_, user := a.store.Current()
	fmt.Fprintf(a.out, "Name:  %s\n", user.FullName())
	fmt.Fprintf(a.out, "Email: %s\n", user.Email)
	if user.ProfilePicture != "" {
		fmt.Fprintf(a.out, "Photo: %s\n", user.ProfilePicture)
	}
	return nil
}

// UpdateProfile edits the logged-in user's name and photo. Empty input
// keeps the current value.
func (a *App) UpdateProfile(ctx context.Context) error {
	if !a.authorize(ctx, session.MemberOnly) {
		return nil
	}

	firstName, err := GetSimpleText(a.reader, "First name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	lastName, err := GetSimpleText(a.reader, "Last name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	picture, err := GetSimpleText(a.reader, "Profile picture URL (empty to keep)", a.out)
	if err != nil {
		return err
	}

	var req api.UpdateProfileRequest
	if firstName != "" {
		req.FirstName = &firstName
	}
	if lastName != "" {
		req.LastName = &lastName
	}
	if picture != "" {
		req.ProfilePicture = &picture
	}

	user, err := a.client.UpdateProfile(ctx, req)
	if err != nil {
		fmt.Fprintln(a.out, "Update failed:", err)
		return err
	}

	a.store.SetIdentity(user)
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}

// Logout ends the session. If the server call fails the local session is
// left as it was: the cookie is still set, so the user is still logged in
// and can retry.
func (a *App) Logout(ctx context.Context) error {
	if !a.authorize(ctx, session.MemberOnly) {
		return nil
	}

	if err := a.client.Logout(ctx); err != nil {
		a.logger.DebugContext(ctx, "logout request failed", slog.String("error", err.Error()))
		fmt.Fprintln(a.out, "Logout failed:", err)
		return err
	}
	a.store.Clear()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Root resolves the session and hands control to the interactive loop.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the Learnex CLI (type 'help' for commands)")
	a.store.Bootstrap(ctx)
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
