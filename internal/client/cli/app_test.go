package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greatochuko/fobeworkLMS/internal/client/api"
	"github.com/greatochuko/fobeworkLMS/internal/client/session"
	"github.com/greatochuko/fobeworkLMS/internal/domain"
)

type fakeAPI struct {
	user       *domain.User
	sessionErr error
	loginErr   error
	logoutErr  error

	lastLogin    api.LoginRequest
	lastRegister api.RegisterRequest
	lastUpdate   api.UpdateProfileRequest
	logoutCalls  int
}

func (f *fakeAPI) Register(ctx context.Context, req api.RegisterRequest) (*domain.User, error) {
	f.lastRegister = req
	return f.user, nil
}

func (f *fakeAPI) Login(ctx context.Context, req api.LoginRequest) (*domain.User, error) {
	f.lastLogin = req
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.user, nil
}

func (f *fakeAPI) Session(ctx context.Context) (*domain.User, error) {
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	return f.user, nil
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*domain.User, error) {
	f.lastUpdate = req
	return f.user, nil
}

func sampleUser() *domain.User {
	return &domain.User{
		ID:        "0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func newTestApp(t *testing.T, client *fakeAPI, input string) (*App, *bytes.Buffer) {
	t.Helper()

	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("SecurePass123"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	app := &App{
		client: client,
		store:  session.NewStore(client.Session, slog.New(slog.NewTextHandler(io.Discard, nil))),
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    &out,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return app, &out
}

func TestAppLogin_SetsIdentity(t *testing.T) {
	client := &fakeAPI{user: sampleUser(), sessionErr: errors.New("no session")}
	app, out := newTestApp(t, client, "jane@example.com\n")
	app.store.Bootstrap(context.Background())

	err := app.Login(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", client.lastLogin.Email)
	assert.Equal(t, "SecurePass123", client.lastLogin.Password)
	assert.Contains(t, out.String(), "Logged in as jane@example.com")

	state, user := app.store.Current()
	assert.Equal(t, session.StatePresent, state)
	assert.Equal(t, "Jane", user.FirstName)
}

func TestAppLogin_RedirectsWhenAlreadyLoggedIn(t *testing.T) {
	client := &fakeAPI{user: sampleUser()}
	app, out := newTestApp(t, client, "")
	app.store.SetIdentity(sampleUser())

	err := app.Login(context.Background())

	require.NoError(t, err)
	assert.Empty(t, client.lastLogin.Email)
	assert.Contains(t, out.String(), "Redirecting to /")
}

func TestAppLogin_FailureKeepsGuestState(t *testing.T) {
	client := &fakeAPI{
		sessionErr: errors.New("no session"),
		loginErr:   errors.New("invalid email or password"),
	}
	app, out := newTestApp(t, client, "jane@example.com\n")
	app.store.Bootstrap(context.Background())

	err := app.Login(context.Background())

	require.Error(t, err)
	assert.Contains(t, out.String(), "Login failed")

	state, _ := app.store.Current()
	assert.Equal(t, session.StateAbsent, state)
}

func TestAppRegister_SendsAllFields(t *testing.T) {
	client := &fakeAPI{user: sampleUser(), sessionErr: errors.New("no session")}
	app, _ := newTestApp(t, client, "jane@example.com\nJane\nDoe\n")
	app.store.Bootstrap(context.Background())

	err := app.Register(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", client.lastRegister.Email)
	assert.Equal(t, "Jane", client.lastRegister.FirstName)
	assert.Equal(t, "Doe", client.lastRegister.LastName)
	assert.Equal(t, "SecurePass123", client.lastRegister.Password)

	state, _ := app.store.Current()
	assert.Equal(t, session.StatePresent, state)
}

func TestAppProfile_RedirectsToLoginWhenAbsent(t *testing.T) {
	client := &fakeAPI{sessionErr: errors.New("no session")}
	app, out := newTestApp(t, client, "")
	app.store.Bootstrap(context.Background())

	err := app.Profile(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Redirecting to /login")
}

func TestAppProfile_BootstrapsWhenUnresolved(t *testing.T) {
	client := &fakeAPI{user: sampleUser()}
	app, out := newTestApp(t, client, "")

	err := app.Profile(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Loading session...")
	assert.Contains(t, out.String(), "Jane Doe")
	assert.Contains(t, out.String(), "jane@example.com")
}

func TestAppUpdateProfile_EmptyInputKeepsFields(t *testing.T) {
	client := &fakeAPI{user: sampleUser()}
	app, _ := newTestApp(t, client, "Janet\n\n\n")
	app.store.SetIdentity(sampleUser())

	err := app.UpdateProfile(context.Background())

	require.NoError(t, err)
	require.NotNil(t, client.lastUpdate.FirstName)
	assert.Equal(t, "Janet", *client.lastUpdate.FirstName)
	assert.Nil(t, client.lastUpdate.LastName)
	assert.Nil(t, client.lastUpdate.ProfilePicture)
}

func TestAppLogout_ClearsStoreOnSuccess(t *testing.T) {
	client := &fakeAPI{user: sampleUser()}
	app, out := newTestApp(t, client, "")
	app.store.SetIdentity(sampleUser())

	err := app.Logout(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, client.logoutCalls)
	assert.Contains(t, out.String(), "Logged out.")

	state, _ := app.store.Current()
	assert.Equal(t, session.StateAbsent, state)
}

func TestAppLogout_FailureKeepsSession(t *testing.T) {
	client := &fakeAPI{user: sampleUser(), logoutErr: errors.New("server unavailable")}
	app, out := newTestApp(t, client, "")
	app.store.SetIdentity(sampleUser())

	err := app.Logout(context.Background())

	require.Error(t, err)
	assert.Equal(t, 1, client.logoutCalls)
	assert.Contains(t, out.String(), "Logout failed")

	// The cookie was never evicted server-side, so the user stays logged in.
	state, user := app.store.Current()
	assert.Equal(t, session.StatePresent, state)
	require.NotNil(t, user)
	assert.Equal(t, "jane@example.com", user.Email)
}
