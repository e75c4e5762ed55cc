package cli

import (
	"bufio"
	"bytes"
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
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) WhoAmI(ctx context.Context) error { f.calls = append(f.calls, "whoami"); return nil }
func (f *fakeExec) Decks(ctx context.Context) error  { f.calls = append(f.calls, "decks"); return nil }
func (f *fakeExec) Streak(ctx context.Context) error { f.calls = append(f.calls, "streak"); return nil }

func scannerOf(lines ...string) *bufio.Scanner {
	return bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	f := &fakeExec{}
	var out bytes.Buffer

	runREPL(context.Background(), f, func() string { return "(ann online)" },
		scannerOf("", "help", "register", "login", "help", "whoami", "decks", "streak", "logout", "bogus", "exit", "decks"), &out)

	assert.Equal(t, []string{"register", "login", "whoami", "decks", "streak", "logout"}, f.calls)

	s := out.String()
	assert.Contains(t, s, "studydeck (ann online)> ")
	assert.Contains(t, s, "Available commands: register, login, exit")
	assert.Contains(t, s, "Available commands: whoami, decks, streak, logout, exit")
	assert.Contains(t, s, "Unknown command: bogus")
	assert.Contains(t, s, "Bye!")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	f := &fakeExec{}
	var out bytes.Buffer

	runREPL(context.Background(), f, func() string { return "" }, scannerOf("decks"), &out)

	assert.Equal(t, []string{"decks"}, f.calls)
	assert.NotContains(t, out.String(), "Bye!")
}

func TestRunREPL_QuitAlias(t *testing.T) {
	f := &fakeExec{}
	var out bytes.Buffer

	runREPL(context.Background(), f, func() string { return "" }, scannerOf("quit", "login"), &out)

	assert.Empty(t, f.calls)
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_StopsWhenContextCancelled(t *testing.T) {
	f := &fakeExec{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runREPL(ctx, f, func() string { return "" }, scannerOf("decks", "streak"), &bytes.Buffer{})

	assert.Equal(t, []string{"decks"}, f.calls)
}
