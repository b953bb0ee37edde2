package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Home(ctx context.Context) error {
	f.calls = append(f.calls, "home")
	return nil
}
func (f *fakeExec) Courses(ctx context.Context) error {
	f.calls = append(f.calls, "courses")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Profile(ctx context.Context) error {
	f.calls = append(f.calls, "profile")
	return nil
}
func (f *fakeExec) UpdateProfile(ctx context.Context) error {
	f.calls = append(f.calls, "update")
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func muteOutput(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"home",
		"courses",
		"login",
		"profile",
		"update",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "guest" }, bufio.NewScanner(input))

	assert.Equal(t, []string{"home", "courses", "login", "profile", "update", "logout"}, exec.calls)
}

func TestRunREPL_UnknownAndBlankLinesIgnored(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader("\n   \nfoobar\nquit\n")
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "guest" }, bufio.NewScanner(input))

	assert.Empty(t, exec.calls)
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader("home\n")
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "guest" }, bufio.NewScanner(input))

	assert.Equal(t, []string{"home"}, exec.calls)
}
