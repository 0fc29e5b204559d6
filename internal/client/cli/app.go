package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/dmitrijs2005/itcontroller/internal/client/mutation"
	"github.com/dmitrijs2005/itcontroller/internal/client/services"
	"github.com/dmitrijs2005/itcontroller/internal/client/session"
	"github.com/dmitrijs2005/itcontroller/internal/client/tui"
	"github.com/dmitrijs2005/itcontroller/internal/logging"
)

// Services bundles what the App drives.
type Services struct {
	Auth      services.AuthService
	Board     services.BoardService
	Notes     services.NotesService
	Vault     services.VaultService
	Feed      services.FeedService
	Inventory services.InventoryService
}

type App struct {
	svc Services

	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	// runBoard shows the full-screen board; replaced in tests.
	runBoard func(ctx context.Context, board services.BoardService, filter models.TaskFilter) error

	filter  models.TaskFilter
	expired atomic.Bool
}

func NewApp(s Services, logger logging.Logger) *App {
	return &App{
		svc:      s,
		logger:   logger.With("component", "cli"),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		now:      time.Now,
		runBoard: tui.Run,
	}
}

// Run restores the previous session, if any, and blocks in the REPL until
// the user leaves.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to IT Controller CLI (type 'help' for commands)")

	if c, err := a.svc.Auth.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "cannot restore session", "error", err)
	} else if !c.IsZero() {
		fmt.Fprintf(a.out, "Logged in as %s\n", c.Username)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// SessionExpired is the gateway's 401 hook: the token is dropped and the
// next prompt is the login view.
func (a *App) SessionExpired(ctx context.Context) {
	if err := a.svc.Auth.Expire(ctx); err != nil {
		a.logger.Error(ctx, "cannot drop expired session", "error", err)
	}
	a.resetViews()
	a.expired.Store(true)
}

// resetViews forgets everything loaded for the previous user.
func (a *App) resetViews() {
	a.svc.Board.Reset()
	a.svc.Notes.Reset()
	a.svc.Vault.Reset()
	a.svc.Feed.Reset()
	a.svc.Inventory.Reset()
	a.filter = models.TaskFilter{}
}

// ensure returns the entity with id, loading its view first when the cached
// copy does not have it.
func ensure[E any](ctx context.Context, id int64, what string, get func(int64) (E, bool), load func(context.Context) error) (E, error) {
	if e, ok := get(id); ok {
		return e, nil
	}
	if err := load(ctx); err != nil {
		var zero E
		return zero, err
	}
	e, ok := get(id)
	if !ok {
		return e, fmt.Errorf("%s %d not found", what, id)
	}
	return e, nil
}

// takeExpired reports, once, that the session expired since the last call.
func (a *App) takeExpired() bool {
	return a.expired.Swap(false)
}

func (a *App) isLoggedIn() bool {
	return !a.svc.Auth.Current().IsZero()
}

func (a *App) getStatus() string {
	if c := a.svc.Auth.Current(); !c.IsZero() && c.Username != "" {
		return fmt.Sprintf("(%s)", c.Username)
	}
	return ""
}

// authed attaches the current credentials to ctx.
func (a *App) authed(ctx context.Context) context.Context {
	return session.WithCredentials(ctx, a.svc.Auth.Current())
}

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

// report prints the result of an optimistic change. Anything but a
// confirmation is returned as an error.
func (a *App) report(out mutation.Outcome, success string) error {
	if !out.OK() {
		return fmt.Errorf("%s: %w", out.State, out.Err)
	}
	fmt.Fprintln(a.out, success)
	if out.RefreshErr != nil {
		fmt.Fprintf(a.out, "Warning: could not reload: %v\n", out.RefreshErr)
	}
	return nil
}

var errUsage = errors.New("usage")

func usage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// idArg parses args[0] as an id, or asks for one when absent.
func (a *App) idArg(args []string, prompt string) (int64, error) {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	} else {
		var err error
		if raw, err = a.ask(prompt); err != nil {
			return 0, err
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
