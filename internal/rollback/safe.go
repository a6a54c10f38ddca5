package rollback

import (
	"context"
	"sync"
)

// Safe wraps mutating operations so that any failure triggers a full ledger
// rollback before the original error is returned unchanged. Cleanup is
// transparent to the caller: the error they observe is the one the
// operation produced, never a rollback artifact.
type Safe struct {
	ledger *Ledger
	guard  *Guard
	arm    sync.Once
}

// NewSafe creates a Safe executor bound to a ledger. guard may be nil when
// no interrupt handling is wanted (tests, library use).
func NewSafe(ledger *Ledger, guard *Guard) *Safe {
	return &Safe{ledger: ledger, guard: guard}
}

// Do executes op. On the first call it arms the interrupt guard, so a
// termination signal arriving at any later point also drains the ledger.
// On failure the ledger is rolled back and op's error is returned as-is.
func (s *Safe) Do(ctx context.Context, op func(context.Context) error) error {
	if s.guard != nil {
		s.arm.Do(func() {
			s.guard.Arm(ctx, s.ledger)
		})
	}

	if err := op(ctx); err != nil {
		s.ledger.Rollback()
		return err
	}
	return nil
}
