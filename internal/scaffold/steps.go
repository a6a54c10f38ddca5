package scaffold

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/TheShiveshNetwork/create-express-app/internal/output"
	"github.com/TheShiveshNetwork/create-express-app/internal/shell"
)

// GitInitStep returns a custom step that initializes a git repository in the
// project and removes .git again on rollback. Skips silently when git is not
// on PATH.
func GitInitStep(p *Pipeline) func(context.Context) error {
	return func(ctx context.Context) error {
		if _, err := exec.LookPath("git"); err != nil {
			output.Warning("git not found, skipping repository init")
			return nil
		}

		gitDir := filepath.Join(p.Target(), ".git")
		execr := shell.NewExecutor(&shell.Options{Dir: p.Target(), Stdout: io.Discard, Stderr: io.Discard})
		if err := execr.Run(ctx, "git", "init"); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
		p.ledger.Register("remove .git", func() error {
			return os.RemoveAll(gitDir)
		})
		return nil
	}
}
