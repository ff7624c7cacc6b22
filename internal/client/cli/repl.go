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
	isSignedIn() bool
	SignUp(ctx context.Context, args []string) error
	SignIn(ctx context.Context, args []string) error
	Guest(ctx context.Context) error
	SignOut(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Accounts(ctx context.Context) error
	Avatar(ctx context.Context, args []string) error
	UploadAvatar(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Show(ctx context.Context, topic string) error
	Calendar(ctx context.Context, args []string) error
}

const (
	helpSignedOut = "Available commands: signup, signin, guest, accounts, problems, solutions, benefits, invest, tokenomics, roadmap, calendar, info, exit"
	helpSignedIn  = "Available commands: whoami, avatar <uri>, upload-avatar <path>, delete [id], signout, accounts, problems, solutions, benefits, invest, tokenomics, roadmap, calendar [year [month]], info, exit"
)

// runREPL starts a simple read–eval–print loop for the BMIC CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command and passes the rest as arguments. The loop exits on scanner EOF
// or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bmic %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isSignedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "signup", "register":
			err = a.SignUp(ctx, args)

		case "signin", "login":
			err = a.SignIn(ctx, args)

		case "guest":
			err = a.Guest(ctx)

		case "signout", "logout":
			err = a.SignOut(ctx)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "accounts":
			err = a.Accounts(ctx)

		case "avatar":
			err = a.Avatar(ctx, args)

		case "upload-avatar":
			err = a.UploadAvatar(ctx, args)

		case "delete":
			err = a.Delete(ctx, args)

		case "problems", "solutions", "benefits", "invest", "tokenomics", "roadmap", "info":
			err = a.Show(ctx, cmd)

		case "calendar":
			err = a.Calendar(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn(errorStyle.Render("error: " + err.Error()))
		}
	}
}
