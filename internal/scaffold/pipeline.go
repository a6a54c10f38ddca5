// Package scaffold drives project generation as an ordered sequence of
// stages. Every mutation registers its inverse with a rollback ledger, so a
// failure or interrupt at any point leaves the target location as the run
// found it.
package scaffold

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	cea "github.com/TheShiveshNetwork/create-express-app"
	"github.com/TheShiveshNetwork/create-express-app/internal/config"
	"github.com/TheShiveshNetwork/create-express-app/internal/manifest"
	"github.com/TheShiveshNetwork/create-express-app/internal/output"
	"github.com/TheShiveshNetwork/create-express-app/internal/prompt"
	"github.com/TheShiveshNetwork/create-express-app/internal/registry"
	"github.com/TheShiveshNetwork/create-express-app/internal/rollback"
	"github.com/TheShiveshNetwork/create-express-app/internal/templates"
)

// Options configures a pipeline run.
type Options struct {
	ProjectName string
	Dir         string // parent directory for the project; default "."

	Config   *config.Resolver
	Registry *registry.Resolver

	// Asker confirms scaffolding into an existing directory. When nil the
	// pipeline declines on the user's behalf.
	Asker prompt.Asker

	// Overwrite skips the existing-directory confirmation.
	Overwrite bool

	PackageManager manifest.PackageManager
}

type customStep struct {
	name string
	run  func(context.Context) error
}

// Pipeline is the staged execution engine. Construct with New, enqueue any
// custom steps, then either call Run or drive the stages individually.
// Pipelines are single-use.
type Pipeline struct {
	opts  Options
	state State
	steps []customStep

	ledger *rollback.Ledger
	guard  *rollback.Guard
	safe   *rollback.Safe

	runID      string
	target     string
	prevDir    string
	cfg        config.Config
	resolution *registry.Resolution
	pkg        *manifest.PackageJSON
}

// New creates a pipeline in the Created state.
func New(opts Options) *Pipeline {
	return newPipeline(opts, rollback.NewGuard())
}

// newPipeline lets tests inject a guard with a fake exit func.
func newPipeline(opts Options, guard *rollback.Guard) *Pipeline {
	ledger := rollback.NewLedger()
	return &Pipeline{
		opts:   opts,
		state:  StateCreated,
		ledger: ledger,
		guard:  guard,
		safe:   rollback.NewSafe(ledger, guard),
		runID:  uuid.NewString(),
	}
}

// AddStep enqueues a custom step. Steps run after all baseline source
// writing, in enqueue order, each inside its own safe wrapper.
func (p *Pipeline) AddStep(name string, run func(context.Context) error) {
	p.steps = append(p.steps, customStep{name: name, run: run})
}

// State returns the pipeline's current state.
func (p *Pipeline) State() State { return p.state }

// RunID identifies this run in the scaffold marker and verbose output.
func (p *Pipeline) RunID() string { return p.runID }

// Target returns the absolute project location, set by Init.
func (p *Pipeline) Target() string { return p.target }

// Config returns the resolved configuration, set by ResolveConfig.
func (p *Pipeline) Config() config.Config { return p.cfg }

// Run drives all baseline stages in order.
func (p *Pipeline) Run(ctx context.Context) error {
	for _, stage := range []func(context.Context) error{
		p.Init,
		p.ResolveConfig,
		p.MapDependencies,
		p.WriteSources,
		p.RunSteps,
		p.Finalize,
	} {
		if err := stage(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Init establishes the project identity and target location, creating the
// directory if needed and making it the working directory. Declining to
// reuse an existing directory aborts with ErrUserAbort before any mutation.
func (p *Pipeline) Init(ctx context.Context) error {
	if err := p.require(StateCreated, "Init"); err != nil {
		return err
	}
	return p.advance(ctx, StateInitialized, p.initialize)
}

func (p *Pipeline) initialize(ctx context.Context) error {
	name := p.opts.ProjectName
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("invalid project name %q", name)
	}

	parent := p.opts.Dir
	if parent == "" {
		parent = "."
	}
	target, err := filepath.Abs(filepath.Join(parent, name))
	if err != nil {
		return fmt.Errorf("resolving target location: %w", err)
	}
	p.target = target

	output.Verbose(fmt.Sprintf("run %s: target %s", p.runID, target))

	info, statErr := os.Stat(target)
	switch {
	case statErr == nil && !info.IsDir():
		return fmt.Errorf("target %s exists and is not a directory", target)

	case statErr == nil:
		if !p.opts.Overwrite {
			ok, err := p.confirmOverwrite(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return ErrUserAbort
			}
		}

	case os.IsNotExist(statErr):
		if err := os.MkdirAll(target, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", target, err)
		}
		p.ledger.Register("remove "+target, func() error {
			return os.RemoveAll(target)
		})

	default:
		return fmt.Errorf("inspecting %s: %w", target, statErr)
	}

	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("reading working directory: %w", err)
	}
	if err := os.Chdir(target); err != nil {
		return fmt.Errorf("entering %s: %w", target, err)
	}
	p.prevDir = prev
	// Registered after the removal action so that reverse-order rollback
	// leaves the target before attempting to remove it.
	p.ledger.Register("restore working directory", func() error {
		return os.Chdir(prev)
	})

	return nil
}

func (p *Pipeline) confirmOverwrite(ctx context.Context) (bool, error) {
	if p.opts.Asker == nil {
		return false, nil
	}

	answers, err := p.opts.Asker.Ask(ctx, []prompt.Question{{
		Kind:    prompt.Confirm,
		Name:    "overwrite",
		Message: fmt.Sprintf("Directory %s already exists. Scaffold into it anyway?", p.target),
		Default: false,
	}})
	if err != nil {
		if err == prompt.ErrAborted {
			return false, nil
		}
		return false, err
	}
	return answers.Bool("overwrite"), nil
}

// ResolveConfig delegates to the configuration resolver. The configuration
// is total before any later stage runs.
func (p *Pipeline) ResolveConfig(ctx context.Context) error {
	if err := p.require(StateInitialized, "ResolveConfig"); err != nil {
		return err
	}
	return p.advance(ctx, StateConfigResolved, func(ctx context.Context) error {
		cfg, err := p.opts.Config.Resolve(ctx)
		if err != nil {
			return err
		}
		p.cfg = cfg
		output.Verbose(fmt.Sprintf("configuration: %s variant, features %v", cfg.Variant, cfg.FeatureNames()))
		return nil
	})
}

// MapDependencies maps the selected features to package references and
// resolves their latest versions concurrently. All-or-nothing: any lookup
// failure aborts the run and rolls back everything done so far.
func (p *Pipeline) MapDependencies(ctx context.Context) error {
	if err := p.require(StateConfigResolved, "MapDependencies"); err != nil {
		return err
	}
	return p.advance(ctx, StateDependenciesMapped, func(ctx context.Context) error {
		res, err := p.opts.Registry.Resolve(ctx, manifest.RefsFor(p.cfg))
		if err != nil {
			return err
		}
		p.resolution = res
		return nil
	})
}

// WriteSources creates the directory skeleton and populates it from the
// template generator, plus the manifest skeleton. Every created path
// registers its removal before the next one is written.
func (p *Pipeline) WriteSources(ctx context.Context) error {
	if err := p.require(StateDependenciesMapped, "WriteSources"); err != nil {
		return err
	}
	return p.advance(ctx, StateSourcesWritten, func(ctx context.Context) error {
		for _, dir := range templates.Dirs(p.cfg) {
			if err := p.makeDir(dir); err != nil {
				return err
			}
		}

		for _, spec := range templates.Files(p.cfg) {
			content, err := templates.Render(spec.Artifact, p.opts.ProjectName, p.cfg)
			if err != nil {
				return err
			}
			if err := p.writeFile(spec.Path, content, spec.Mode); err != nil {
				return err
			}
		}

		p.pkg = manifest.Skeleton(p.opts.ProjectName, p.cfg)
		data, err := p.pkg.Encode()
		if err != nil {
			return err
		}
		return p.writeFile("package.json", data, 0644)
	})
}

// RunSteps executes the queued custom steps in enqueue order. A failing
// step rolls back everything completed so far, baseline stages included.
func (p *Pipeline) RunSteps(ctx context.Context) error {
	if err := p.require(StateSourcesWritten, "RunSteps"); err != nil {
		return err
	}

	for _, step := range p.steps {
		output.Verbose("custom step: " + step.name)
		if err := p.safe.Do(ctx, step.run); err != nil {
			p.abort()
			return fmt.Errorf("custom step %s: %w", step.name, err)
		}
	}

	p.state = StateCustomStepsRun
	return nil
}

// Finalize merges the resolved versions into the project's manifest and
// stamps the scaffold marker. Terminal: no further mutation afterwards.
func (p *Pipeline) Finalize(ctx context.Context) error {
	if err := p.require(StateCustomStepsRun, "Finalize"); err != nil {
		return err
	}
	return p.advance(ctx, StateFinalized, func(ctx context.Context) error {
		p.pkg.MergeResolution(p.resolution)
		data, err := p.pkg.Encode()
		if err != nil {
			return err
		}
		// package.json already has a removal registered from WriteSources.
		if err := os.WriteFile(filepath.Join(p.target, "package.json"), data, 0644); err != nil {
			return fmt.Errorf("writing package.json: %w", err)
		}

		marker := Marker{
			Version:        cea.Version,
			RunID:          p.runID,
			Variant:        string(p.cfg.Variant),
			Features:       p.cfg.FeatureNames(),
			PackageManager: p.opts.PackageManager.Name,
			CreatedAt:      time.Now().UTC(),
		}
		markerData, err := marker.Encode()
		if err != nil {
			return err
		}
		return p.writeFile(MarkerFile, markerData, 0644)
	})
}

// require gates an operation on its predecessor state.
func (p *Pipeline) require(want State, op string) error {
	if p.state != want {
		return &SequenceError{Op: op, Have: p.state, Want: want}
	}
	return nil
}

// advance runs op inside the safe wrapper and moves to next on success.
// Failure rolls back (via the wrapper), lands in Aborted, and surfaces op's
// error unchanged.
func (p *Pipeline) advance(ctx context.Context, next State, op func(context.Context) error) error {
	if err := p.safe.Do(ctx, op); err != nil {
		p.abort()
		return err
	}

	p.state = next
	if next == StateFinalized {
		p.guard.Disarm()
	}
	return nil
}

func (p *Pipeline) abort() {
	p.state = StateAborted
	p.guard.Disarm()
}

// makeDir creates one skeleton directory under the target, registering its
// removal unless it pre-existed.
func (p *Pipeline) makeDir(rel string) error {
	path := filepath.Join(p.target, rel)
	if _, err := os.Stat(path); err == nil {
		return nil // pre-existing, not this run's to remove
	}
	if err := os.Mkdir(path, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", rel, err)
	}
	p.ledger.Register("remove directory "+rel, func() error {
		return os.Remove(path)
	})
	return nil
}

// writeFile writes one file under the target, registering its removal
// unless it pre-existed. Overwritten pre-existing content is not
// snapshotted: rollback undoes only what this run added.
func (p *Pipeline) writeFile(rel string, content []byte, mode fs.FileMode) error {
	path := filepath.Join(p.target, rel)
	_, statErr := os.Stat(path)
	existed := statErr == nil

	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}

	if !existed {
		p.ledger.Register("remove "+rel, func() error {
			return os.Remove(path)
		})
	}
	return nil
}
