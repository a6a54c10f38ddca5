package rollback

import (
	"context"
	"os"
	"sync"

	"github.com/TheShiveshNetwork/create-express-app/internal/output"
)

// Guard converts an external termination request into a best-effort rollback
// followed by a non-zero process exit.
//
// The guard watches a cancellation context rather than installing its own
// OS signal handler; main wires the context to SIGINT/SIGTERM via
// signal.NotifyContext, while tests cancel the context directly.
type Guard struct {
	once     sync.Once
	stopOnce sync.Once
	stop     chan struct{}
	exit     func(code int)
}

// NewGuard creates a guard that exits the process via os.Exit.
func NewGuard() *Guard {
	return newGuard(os.Exit)
}

// NewGuardWithExit creates a guard with an injectable exit function,
// for tests.
func NewGuardWithExit(exit func(code int)) *Guard {
	return newGuard(exit)
}

func newGuard(exit func(code int)) *Guard {
	return &Guard{
		stop: make(chan struct{}),
		exit: exit,
	}
}

// Arm starts watching ctx. On cancellation the ledger is rolled back to
// completion, then the process exits with status 1. Arming is idempotent:
// repeated calls never stack watchers.
func (g *Guard) Arm(ctx context.Context, ledger *Ledger) {
	g.once.Do(func() {
		go func() {
			select {
			case <-g.stop:
				return
			case <-ctx.Done():
				// A disarm that raced the signal wins: the run already
				// reached a terminal state.
				select {
				case <-g.stop:
					return
				default:
				}
			}
			output.Error("interrupted, rolling back")
			ledger.Rollback()
			g.exit(1)
		}()
	})
}

// Disarm stands the guard down. The pipeline calls this once it reaches a
// terminal state, so a late signal cannot undo a finished project.
func (g *Guard) Disarm() {
	g.stopOnce.Do(func() {
		close(g.stop)
	})
}
