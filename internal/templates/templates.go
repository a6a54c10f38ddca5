// Package templates is the source-file generator: a pure function from the
// resolved configuration to literal file content. It knows nothing about
// the pipeline and performs no file-system writes.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/TheShiveshNetwork/create-express-app/internal/config"
)

//go:embed files
var templateFS embed.FS

var defaultRenderer = newRenderer()

// Artifact identifies one generatable file.
type Artifact string

const (
	ArtifactEntry      Artifact = "entry"      // process entry point
	ArtifactApp        Artifact = "app"        // application assembly
	ArtifactRouter     Artifact = "router"     // route registration
	ArtifactController Artifact = "controller" // request handlers
	ArtifactMiddleware Artifact = "middleware" // error handling middleware
	ArtifactSchema     Artifact = "schema"     // request schemas
	ArtifactTypes      Artifact = "types"      // shared type declarations (typescript)
	ArtifactTSConfig   Artifact = "tsconfig"   // compiler configuration (typescript)
	ArtifactTest       Artifact = "test"       // sample supertest spec (testing)
	ArtifactESLint     Artifact = "eslint"     // flat ESLint config (lint)
	ArtifactGitignore  Artifact = "gitignore"
	ArtifactEnv        Artifact = "env"
)

// FileSpec names one file the scaffold writes: its path relative to the
// project root and the artifact that produces its content.
type FileSpec struct {
	Path     string
	Artifact Artifact
	Mode     fs.FileMode
}

// Data is the rendering context handed to every template.
type Data struct {
	ProjectName string
	TypeScript  bool
	Lint        bool
	Validation  bool
	Testing     bool
}

func dataFor(projectName string, cfg config.Config) Data {
	return Data{
		ProjectName: projectName,
		TypeScript:  cfg.TypeScript(),
		Lint:        cfg.Has(config.FeatureLint),
		Validation:  cfg.Has(config.FeatureValidation),
		Testing:     cfg.Has(config.FeatureTesting),
	}
}

// Dirs lists the directory skeleton for a configuration, parents first.
func Dirs(cfg config.Config) []string {
	dirs := []string{
		"src",
		"src/routes",
		"src/middlewares",
		"src/controllers",
		"src/schemas",
	}
	if cfg.TypeScript() {
		dirs = append(dirs, "src/types")
	}
	return dirs
}

// Files lists every source file the configuration calls for, in write
// order. package.json is assembled by the manifest package and is not part
// of this list.
func Files(cfg config.Config) []FileSpec {
	ext := ".js"
	if cfg.TypeScript() {
		ext = ".ts"
	}

	specs := []FileSpec{
		{Path: "src/index" + ext, Artifact: ArtifactEntry, Mode: 0644},
		{Path: "src/app" + ext, Artifact: ArtifactApp, Mode: 0644},
		{Path: "src/routes/index" + ext, Artifact: ArtifactRouter, Mode: 0644},
		{Path: "src/controllers/index" + ext, Artifact: ArtifactController, Mode: 0644},
		{Path: "src/middlewares/errorHandler" + ext, Artifact: ArtifactMiddleware, Mode: 0644},
		{Path: "src/schemas/index" + ext, Artifact: ArtifactSchema, Mode: 0644},
	}

	if cfg.TypeScript() {
		specs = append(specs,
			FileSpec{Path: "src/types/index.ts", Artifact: ArtifactTypes, Mode: 0644},
			FileSpec{Path: "tsconfig.json", Artifact: ArtifactTSConfig, Mode: 0644},
		)
	}
	if cfg.Has(config.FeatureTesting) {
		specs = append(specs, FileSpec{Path: "src/app.test" + ext, Artifact: ArtifactTest, Mode: 0644})
	}
	if cfg.Has(config.FeatureLint) {
		specs = append(specs, FileSpec{Path: "eslint.config.js", Artifact: ArtifactESLint, Mode: 0644})
	}

	specs = append(specs,
		FileSpec{Path: ".gitignore", Artifact: ArtifactGitignore, Mode: 0644},
		FileSpec{Path: ".env", Artifact: ArtifactEnv, Mode: 0644},
	)

	return specs
}

// Render produces the literal content for one artifact. Pure: the same
// inputs always yield the same bytes.
func Render(artifact Artifact, projectName string, cfg config.Config) ([]byte, error) {
	name, err := templateName(artifact, cfg)
	if err != nil {
		return nil, err
	}
	return defaultRenderer.renderFS(templateFS, path.Join("files", name), dataFor(projectName, cfg))
}

// templateName picks the template file for an artifact, honoring the
// language variant.
func templateName(artifact Artifact, cfg config.Config) (string, error) {
	ext := "js"
	if cfg.TypeScript() {
		ext = "ts"
	}

	switch artifact {
	case ArtifactEntry:
		return "index." + ext + ".tmpl", nil
	case ArtifactApp:
		return "app." + ext + ".tmpl", nil
	case ArtifactRouter:
		return "routes." + ext + ".tmpl", nil
	case ArtifactController:
		return "controller." + ext + ".tmpl", nil
	case ArtifactMiddleware:
		return "middleware." + ext + ".tmpl", nil
	case ArtifactSchema:
		return "schema." + ext + ".tmpl", nil
	case ArtifactTest:
		return "test." + ext + ".tmpl", nil
	case ArtifactTypes:
		return "types.ts.tmpl", nil
	case ArtifactTSConfig:
		return "tsconfig.json.tmpl", nil
	case ArtifactESLint:
		return "eslint.config.js.tmpl", nil
	case ArtifactGitignore:
		return "gitignore.tmpl", nil
	case ArtifactEnv:
		return "env.tmpl", nil
	default:
		return "", fmt.Errorf("unknown artifact %q", artifact)
	}
}
