// Package rollback implements the compensating-action machinery that makes
// scaffolding runs safe to interrupt or fail.
//
// Every mutation a run performs registers its inverse with a Ledger. When
// something goes wrong the ledger replays the inverses in reverse order,
// leaving the file system as the run found it.
package rollback

import (
	"sync"

	"github.com/TheShiveshNetwork/create-express-app/internal/output"
)

// Ledger is an ordered record of compensating actions. Actions run in
// strict reverse-of-registration order, exactly once.
type Ledger struct {
	mu      sync.Mutex
	actions []action
	spent   bool
}

type action struct {
	label string
	undo  func() error
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Register appends a compensating action. The label describes the mutation
// being compensated and appears in verbose and failure output. Register has
// no side effects of its own.
func (l *Ledger) Register(label string, undo func() error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.actions = append(l.actions, action{label: label, undo: undo})
}

// Len reports the number of registered actions.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.actions)
}

// Rollback runs every registered action in reverse order. A failing action
// is logged and skipped, never blocking the remaining ones. A second call
// is a no-op, so triggering rollback from both an error path and a signal
// handler cannot double-undo a mutation.
func (l *Ledger) Rollback() {
	l.mu.Lock()
	if l.spent {
		l.mu.Unlock()
		return
	}
	l.spent = true
	actions := l.actions
	l.mu.Unlock()

	for i := len(actions) - 1; i >= 0; i-- {
		a := actions[i]
		output.Verbose("rollback: " + a.label)
		if err := a.undo(); err != nil {
			output.Warning("rollback step failed (" + a.label + "): " + err.Error())
		}
	}
}
