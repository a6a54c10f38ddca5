package rollback

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLedger_ReverseOrder(t *testing.T) {
	ledger := NewLedger()

	var order []string
	for _, label := range []string{"A", "B", "C"} {
		label := label
		ledger.Register(label, func() error {
			order = append(order, label)
			return nil
		})
	}

	ledger.Rollback()

	want := []string{"C", "B", "A"}
	if len(order) != len(want) {
		t.Fatalf("expected %d actions, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, order[i], want[i])
		}
	}
}

func TestLedger_Idempotent(t *testing.T) {
	ledger := NewLedger()

	calls := 0
	ledger.Register("count", func() error {
		calls++
		return nil
	})

	ledger.Rollback()
	ledger.Rollback()

	if calls != 1 {
		t.Errorf("expected action to run once, ran %d times", calls)
	}
}

func TestLedger_FailingActionDoesNotBlockRest(t *testing.T) {
	ledger := NewLedger()

	var ran []string
	ledger.Register("first", func() error {
		ran = append(ran, "first")
		return nil
	})
	ledger.Register("broken", func() error {
		return errors.New("cannot undo")
	})
	ledger.Register("last", func() error {
		ran = append(ran, "last")
		return nil
	})

	ledger.Rollback()

	if len(ran) != 2 || ran[0] != "last" || ran[1] != "first" {
		t.Errorf("expected surviving actions [last first], got %v", ran)
	}
}

func TestLedger_UndoesFileMutations(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "app.js")

	if err := os.WriteFile(path, []byte("console.log('hi')\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	ledger := NewLedger()
	ledger.Register("remove app.js", func() error {
		return os.Remove(path)
	})

	ledger.Rollback()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("app.js should have been removed by rollback")
	}

	// A second rollback must not fail on the already-removed path.
	ledger.Rollback()
}

func TestLedger_Len(t *testing.T) {
	ledger := NewLedger()
	if ledger.Len() != 0 {
		t.Errorf("new ledger should be empty, got %d", ledger.Len())
	}
	ledger.Register("noop", func() error { return nil })
	if ledger.Len() != 1 {
		t.Errorf("expected 1 action, got %d", ledger.Len())
	}
}
