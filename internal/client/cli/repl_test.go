package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	failOn   string
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	if call == f.failOn {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Household(_ context.Context, args []string) error {
	return f.record("household " + strings.Join(args, " "))
}
func (f *fakeExec) Chores(context.Context) error   { return f.record("chores") }
func (f *fakeExec) AddChore(context.Context) error { return f.record("addchore") }
func (f *fakeExec) Complete(_ context.Context, id string) error {
	return f.record("complete " + id)
}
func (f *fakeExec) Reopen(_ context.Context, id string) error {
	return f.record("reopen " + id)
}
func (f *fakeExec) DeleteChore(_ context.Context, id string) error {
	return f.record("delchore " + id)
}
func (f *fakeExec) Notes(context.Context) error   { return f.record("notes") }
func (f *fakeExec) AddNote(context.Context) error { return f.record("addnote") }
func (f *fakeExec) DeleteNote(_ context.Context, id string) error {
	return f.record("delnote " + id)
}
func (f *fakeExec) Sync(context.Context) error   { return f.record("sync") }
func (f *fakeExec) Status(context.Context) error { return f.record("status") }
func (f *fakeExec) Avatar(_ context.Context, path string) error {
	return f.record("avatar " + path)
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	captureOutput(t)

	input := strings.Join([]string{
		"login",
		"household create",
		"household join ABC123",
		"chores",
		"addchore",
		"complete 1a2b",
		"reopen 1a2b",
		"delchore 1a2b",
		"notes",
		"addnote",
		"delnote 9f",
		"sync",
		"status",
		"avatar me.png",
		"logout",
		"register",
		"exit",
		"chores",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login",
		"household create",
		"household join ABC123",
		"chores",
		"addchore",
		"complete 1a2b",
		"reopen 1a2b",
		"delchore 1a2b",
		"notes",
		"addnote",
		"delnote 9f",
		"sync",
		"status",
		"avatar me.png",
		"logout",
		"register",
	}, exec.calls)
}

func TestRunREPL_UsageHelpAndErrors(t *testing.T) {
	out := captureOutput(t)

	input := "help\ncomplete\ndelnote\navatar\nfoobar\n\nsync\nlogin\nhelp\nquit\n"
	exec := &fakeExec{failOn: "sync"}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader(input)))

	all := strings.Join(*out, "")
	assert.Contains(t, all, helpLoggedOut)
	assert.Contains(t, all, helpLoggedIn)
	assert.Contains(t, all, "Usage: complete <id>")
	assert.Contains(t, all, "Usage: delnote <id>")
	assert.Contains(t, all, "Usage: avatar <file>")
	assert.Contains(t, all, "Unknown command: foobar")
	assert.Contains(t, all, "Error: boom")
	assert.Contains(t, all, "Bye!")
	assert.Equal(t, []string{"sync", "login"}, exec.calls)
}

func TestRunREPL_StopsOnCanceledContext(t *testing.T) {
	captureOutput(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("login\n")))
	assert.Empty(t, exec.calls)
}
