package scaffold

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/TheShiveshNetwork/create-express-app/internal/config"
	"github.com/TheShiveshNetwork/create-express-app/internal/manifest"
	"github.com/TheShiveshNetwork/create-express-app/internal/prompt"
	"github.com/TheShiveshNetwork/create-express-app/internal/registry"
	"github.com/TheShiveshNetwork/create-express-app/internal/rollback"
)

// fakeRegistry serves a fixed version for every package, or a server error
// for names listed in failing.
func fakeRegistry(t *testing.T, failing ...string) *httptest.Server {
	t.Helper()

	bad := make(map[string]bool, len(failing))
	for _, name := range failing {
		bad[name] = true
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Dir(r.URL.Path)[1:] // strip leading "/" and trailing "/latest"
		if bad[name] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"version": "1.2.3"})
	}))
	t.Cleanup(server.Close)
	return server
}

// keepWorkingDir restores the test's working directory, since a successful
// pipeline leaves the process inside the generated project.
func keepWorkingDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(wd))
	})
}

func testPipeline(t *testing.T, opts Options) *Pipeline {
	t.Helper()
	if opts.PackageManager.Name == "" {
		opts.PackageManager = manifest.Detect()
	}
	return newPipeline(opts, rollback.NewGuardWithExit(func(int) {}))
}

func staticConfig(variant config.Variant, features ...config.Feature) *config.Resolver {
	if features == nil {
		features = []config.Feature{}
	}
	return config.NewStaticResolver(config.Partial{Variant: &variant, Features: features})
}

func TestPipelineRun(t *testing.T) {
	keepWorkingDir(t)

	server := fakeRegistry(t)
	parent := t.TempDir()

	p := testPipeline(t, Options{
		ProjectName: "demo",
		Dir:         parent,
		Config:      staticConfig(config.TypeScript, config.FeatureTesting),
		Registry:    registry.NewResolver(registry.NewClient(registry.WithBaseURL(server.URL))),
	})

	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, StateFinalized, p.State())

	target := filepath.Join(parent, "demo")
	for _, dir := range []string{"src", "src/routes", "src/controllers", "src/types"} {
		assert.DirExists(t, filepath.Join(target, dir))
	}
	assert.FileExists(t, filepath.Join(target, "src/index.ts"))
	assert.FileExists(t, filepath.Join(target, "tsconfig.json"))

	data, err := os.ReadFile(filepath.Join(target, "package.json"))
	require.NoError(t, err)
	var pkg manifest.PackageJSON
	require.NoError(t, json.Unmarshal(data, &pkg))

	assert.Equal(t, "demo", pkg.Name)
	assert.Equal(t, "module", pkg.Type)
	assert.Equal(t, "^1.2.3", pkg.Dependencies["express"])
	assert.Equal(t, "^1.2.3", pkg.DevDependencies["typescript"])
	assert.Contains(t, pkg.DevDependencies, "jest")
	assert.Equal(t, "tsc", pkg.Scripts["build"])
	assert.Equal(t, "jest", pkg.Scripts["test"])

	markerData, err := os.ReadFile(filepath.Join(target, MarkerFile))
	require.NoError(t, err)
	var marker Marker
	require.NoError(t, yaml.Unmarshal(markerData, &marker))
	assert.Equal(t, p.RunID(), marker.RunID)
	assert.Equal(t, "typescript", marker.Variant)
	assert.Equal(t, []string{"testing"}, marker.Features)

	// The run ends inside the generated project.
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, target, wd)
}

func TestPipelineRegistryFailureRollsBack(t *testing.T) {
	keepWorkingDir(t)

	server := fakeRegistry(t, "express")
	parent := t.TempDir()
	startWD, err := os.Getwd()
	require.NoError(t, err)

	p := testPipeline(t, Options{
		ProjectName: "demo",
		Dir:         parent,
		Config:      staticConfig(config.JavaScript),
		Registry:    registry.NewResolver(registry.NewClient(registry.WithBaseURL(server.URL))),
	})

	err = p.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateAborted, p.State())

	assert.NoDirExists(t, filepath.Join(parent, "demo"))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, startWD, wd, "rollback restores the working directory")
}

func TestPipelineCustomStepFailureRollsBack(t *testing.T) {
	keepWorkingDir(t)

	server := fakeRegistry(t)
	parent := t.TempDir()

	p := testPipeline(t, Options{
		ProjectName: "demo",
		Dir:         parent,
		Config:      staticConfig(config.JavaScript),
		Registry:    registry.NewResolver(registry.NewClient(registry.WithBaseURL(server.URL))),
	})

	stepErr := assert.AnError
	p.AddStep("explode", func(context.Context) error { return stepErr })

	err := p.Run(context.Background())
	require.ErrorIs(t, err, stepErr)
	assert.Contains(t, err.Error(), "explode")
	assert.Equal(t, StateAborted, p.State())
	assert.NoDirExists(t, filepath.Join(parent, "demo"))
}

func TestPipelineCustomStepsRunInOrder(t *testing.T) {
	keepWorkingDir(t)

	server := fakeRegistry(t)
	parent := t.TempDir()

	p := testPipeline(t, Options{
		ProjectName: "demo",
		Dir:         parent,
		Config:      staticConfig(config.JavaScript),
		Registry:    registry.NewResolver(registry.NewClient(registry.WithBaseURL(server.URL))),
	})

	var order []string
	p.AddStep("first", func(context.Context) error {
		order = append(order, "first")
		return nil
	})
	p.AddStep("second", func(context.Context) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestPipelineOutOfOrderOperation(t *testing.T) {
	p := testPipeline(t, Options{ProjectName: "demo"})

	err := p.WriteSources(context.Background())
	var seqErr *SequenceError
	require.ErrorAs(t, err, &seqErr)
	assert.Equal(t, "WriteSources", seqErr.Op)
	assert.Equal(t, StateCreated, seqErr.Have)
	assert.Equal(t, StateDependenciesMapped, seqErr.Want)
	assert.Equal(t, StateCreated, p.State(), "failed gate does not change state")
}

func TestPipelineFinalizeTwice(t *testing.T) {
	keepWorkingDir(t)

	server := fakeRegistry(t)
	p := testPipeline(t, Options{
		ProjectName: "demo",
		Dir:         t.TempDir(),
		Config:      staticConfig(config.JavaScript),
		Registry:    registry.NewResolver(registry.NewClient(registry.WithBaseURL(server.URL))),
	})
	require.NoError(t, p.Run(context.Background()))

	var seqErr *SequenceError
	require.ErrorAs(t, p.Finalize(context.Background()), &seqErr)
}

func TestPipelineExistingDirDeclined(t *testing.T) {
	keepWorkingDir(t)

	parent := t.TempDir()
	target := filepath.Join(parent, "demo")
	require.NoError(t, os.Mkdir(target, 0755))
	keep := filepath.Join(target, "keep.txt")
	require.NoError(t, os.WriteFile(keep, []byte("precious"), 0644))

	p := testPipeline(t, Options{
		ProjectName: "demo",
		Dir:         parent,
		Config:      staticConfig(config.JavaScript),
		Asker:       &prompt.ScriptAsker{Responses: prompt.Answers{"overwrite": false}},
	})

	require.ErrorIs(t, p.Init(context.Background()), ErrUserAbort)
	assert.Equal(t, StateAborted, p.State())

	data, err := os.ReadFile(keep)
	require.NoError(t, err)
	assert.Equal(t, "precious", string(data), "declining leaves the directory untouched")
}

func TestPipelineExistingDirConfirmed(t *testing.T) {
	keepWorkingDir(t)

	server := fakeRegistry(t)
	parent := t.TempDir()
	target := filepath.Join(parent, "demo")
	require.NoError(t, os.Mkdir(target, 0755))
	keep := filepath.Join(target, "keep.txt")
	require.NoError(t, os.WriteFile(keep, []byte("precious"), 0644))

	p := testPipeline(t, Options{
		ProjectName: "demo",
		Dir:         parent,
		Config:      staticConfig(config.JavaScript),
		Registry:    registry.NewResolver(registry.NewClient(registry.WithBaseURL(server.URL))),
		Asker:       &prompt.ScriptAsker{Responses: prompt.Answers{"overwrite": true}},
	})

	require.NoError(t, p.Run(context.Background()))
	assert.FileExists(t, keep, "pre-existing content survives scaffolding")
	assert.FileExists(t, filepath.Join(target, "package.json"))
}

func TestPipelineExistingDirRollbackSparesIt(t *testing.T) {
	keepWorkingDir(t)

	server := fakeRegistry(t, "express")
	parent := t.TempDir()
	target := filepath.Join(parent, "demo")
	require.NoError(t, os.Mkdir(target, 0755))
	keep := filepath.Join(target, "keep.txt")
	require.NoError(t, os.WriteFile(keep, []byte("precious"), 0644))

	p := testPipeline(t, Options{
		ProjectName: "demo",
		Dir:         parent,
		Config:      staticConfig(config.JavaScript),
		Registry:    registry.NewResolver(registry.NewClient(registry.WithBaseURL(server.URL))),
		Overwrite:   true,
	})

	require.Error(t, p.Run(context.Background()))
	assert.DirExists(t, target, "a directory the run did not create survives rollback")
	assert.FileExists(t, keep)
	assert.NoFileExists(t, filepath.Join(target, "package.json"))
	assert.NoDirExists(t, filepath.Join(target, "src"))
}

func TestPipelineNilAskerDeclines(t *testing.T) {
	keepWorkingDir(t)

	parent := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(parent, "demo"), 0755))

	p := testPipeline(t, Options{
		ProjectName: "demo",
		Dir:         parent,
		Config:      staticConfig(config.JavaScript),
	})

	require.ErrorIs(t, p.Init(context.Background()), ErrUserAbort)
}

func TestPipelineInvalidProjectName(t *testing.T) {
	for _, name := range []string{"", ".", "..", "nested/path"} {
		p := testPipeline(t, Options{ProjectName: name, Dir: t.TempDir()})
		err := p.Init(context.Background())
		require.Error(t, err, "name %q", name)
		assert.Equal(t, StateAborted, p.State())
	}
}

func TestPipelineConfigIncompleteRollsBack(t *testing.T) {
	keepWorkingDir(t)

	parent := t.TempDir()

	p := testPipeline(t, Options{
		ProjectName: "demo",
		Dir:         parent,
		Config:      config.NewResolver(&prompt.ScriptAsker{AbortOn: "variant"}),
	})

	require.NoError(t, p.Init(context.Background()))
	require.ErrorIs(t, p.ResolveConfig(context.Background()), config.ErrIncomplete)
	assert.Equal(t, StateAborted, p.State())
	assert.NoDirExists(t, filepath.Join(parent, "demo"), "the directory created by Init is rolled back")
}
