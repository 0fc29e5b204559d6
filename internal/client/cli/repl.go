package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/itcontroller/internal/client/gateway"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	takeExpired() bool

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Whoami(ctx context.Context, args []string) error

	Tasks(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	AddTask(ctx context.Context, args []string) error
	Move(ctx context.Context, args []string) error
	Drop(ctx context.Context, args []string) error
	EditTask(ctx context.Context, args []string) error
	DeleteTask(ctx context.Context, args []string) error
	Board(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error

	Notes(ctx context.Context, args []string) error
	AddNote(ctx context.Context, args []string) error
	ShowNote(ctx context.Context, args []string) error
	EditNote(ctx context.Context, args []string) error
	DeleteNote(ctx context.Context, args []string) error

	Vault(ctx context.Context, args []string) error
	AddCredential(ctx context.Context, args []string) error
	ShowCredential(ctx context.Context, args []string) error
	CopyCredential(ctx context.Context, args []string) error
	DeleteCredential(ctx context.Context, args []string) error

	Feed(ctx context.Context, args []string) error
	DeleteActivity(ctx context.Context, args []string) error
	ClearFeed(ctx context.Context, args []string) error

	Products(ctx context.Context, args []string) error
	AddProduct(ctx context.Context, args []string) error
	EditProduct(ctx context.Context, args []string) error
	DeleteProduct(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = `Available commands:
  tasks [search]   filter <category|all> <priority|all>   addtask <title>
  move <id> <status>   drop <payload> <column>   edittask [id]   deltask <id>
  board   stats
  notes   addnote   shownote <id>   editnote [id]   delnote <id>
  vault   addcred   showcred <id> [reveal]   copycred <id>   delcred <id>
  feed   delact <id>   clearfeed
  products   addproduct   editproduct [id]   delproduct <id>
  profile   whoami   logout   exit`
)

// runREPL starts a simple read–eval–print loop for the IT Controller CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Unknown commands are reported back to the user. The loop exits on EOF or
// when the user types "exit" or "quit". Prompts issued by the commands read
// from the same reader.
//
// Errors returned by command handlers are printed and the loop goes on. A
// rejected session is announced before the next prompt, which is then the
// logged-out one.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if a.takeExpired() {
			printlnFn("Session expired, please log in again")
		}
		printlnFn(fmt.Sprintf("itc %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "register":
			printErr(a.Register(ctx, args))
			continue

		case "login":
			printErr(a.Login(ctx, args))
			continue
		}

		handler := loggedInCommand(a, cmd)
		if handler == nil {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}
		printErr(handler(ctx, args))
	}
}

func loggedInCommand(a execIface, cmd string) func(context.Context, []string) error {
	switch cmd {
	case "logout":
		return a.Logout
	case "profile":
		return a.Profile
	case "whoami":
		return a.Whoami
	case "tasks", "l":
		return a.Tasks
	case "filter":
		return a.Filter
	case "addtask":
		return a.AddTask
	case "move":
		return a.Move
	case "drop":
		return a.Drop
	case "edittask":
		return a.EditTask
	case "deltask":
		return a.DeleteTask
	case "board":
		return a.Board
	case "stats":
		return a.Stats
	case "notes":
		return a.Notes
	case "addnote":
		return a.AddNote
	case "shownote":
		return a.ShowNote
	case "editnote":
		return a.EditNote
	case "delnote":
		return a.DeleteNote
	case "vault":
		return a.Vault
	case "addcred":
		return a.AddCredential
	case "showcred":
		return a.ShowCredential
	case "copycred":
		return a.CopyCredential
	case "delcred":
		return a.DeleteCredential
	case "feed":
		return a.Feed
	case "delact":
		return a.DeleteActivity
	case "clearfeed":
		return a.ClearFeed
	case "products":
		return a.Products
	case "addproduct":
		return a.AddProduct
	case "editproduct":
		return a.EditProduct
	case "delproduct":
		return a.DeleteProduct
	}
	return nil
}

func printErr(err error) {
	switch {
	case err == nil:
	case errors.Is(err, gateway.ErrAuthExpired):
		// announced by the loop before the next prompt
	case errors.Is(err, gateway.ErrNetwork):
		printlnFn("Server unavailable:", err.Error())
	default:
		printlnFn("Error:", err.Error())
	}
}
