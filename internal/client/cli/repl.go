package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Household(ctx context.Context, args []string) error
	Chores(ctx context.Context) error
	AddChore(ctx context.Context) error
	Complete(ctx context.Context, id string) error
	Reopen(ctx context.Context, id string) error
	DeleteChore(ctx context.Context, id string) error
	Notes(ctx context.Context) error
	AddNote(ctx context.Context) error
	DeleteNote(ctx context.Context, id string) error
	Sync(ctx context.Context) error
	Status(ctx context.Context) error
	Avatar(ctx context.Context, path string) error
}

const (
	helpLoggedOut = "Available commands: register, login, status, exit"
	helpLoggedIn  = "Available commands: household create|join <code>|show, chores, addchore, complete <id>, reopen <id>, delchore <id>, notes, addnote, delnote <id>, sync, status, avatar <file>, logout, exit"
)

// runREPL reads commands from scanner until EOF, "exit" or "quit", or until
// ctx is done. Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	// withArg runs f with the first argument or prints usage.
	withArg := func(args []string, usage string, f func(string) error) error {
		if len(args) == 0 {
			printlnFn(usage)
			return nil
		}
		return f(args[0])
	}

	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("hk %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "household":
			err = a.Household(ctx, args)
		case "chores":
			err = a.Chores(ctx)
		case "addchore":
			err = a.AddChore(ctx)
		case "complete":
			err = withArg(args, "Usage: complete <id>", func(id string) error { return a.Complete(ctx, id) })
		case "reopen":
			err = withArg(args, "Usage: reopen <id>", func(id string) error { return a.Reopen(ctx, id) })
		case "delchore":
			err = withArg(args, "Usage: delchore <id>", func(id string) error { return a.DeleteChore(ctx, id) })
		case "notes":
			err = a.Notes(ctx)
		case "addnote":
			err = a.AddNote(ctx)
		case "delnote":
			err = withArg(args, "Usage: delnote <id>", func(id string) error { return a.DeleteNote(ctx, id) })
		case "sync":
			err = a.Sync(ctx)
		case "status":
			err = a.Status(ctx)
		case "avatar":
			err = withArg(args, "Usage: avatar <file>", func(path string) error { return a.Avatar(ctx, path) })

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
