// Package manifest assembles the generated project's package.json: the
// dependency references implied by the resolved configuration, their
// resolved version constraints, and the named scripts.
package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/TheShiveshNetwork/create-express-app/internal/config"
	"github.com/TheShiveshNetwork/create-express-app/internal/registry"
)

// PackageJSON is the metadata document written into generated projects.
type PackageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Type            string            `json:"type"`
	Main            string            `json:"main"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// RefsFor maps the resolved configuration onto the registry references the
// project needs. Lists are ordered and duplicate-free: fixed baseline
// references first, then feature-selected ones.
func RefsFor(cfg config.Config) registry.Refs {
	runtime := []string{"express", "cors", "dotenv", "helmet", "morgan"}

	var dev []string
	if cfg.TypeScript() {
		dev = []string{"typescript", "tsx", "@types/express", "@types/node"}
	} else {
		dev = []string{"nodemon"}
	}

	if cfg.Has(config.FeatureValidation) {
		runtime = append(runtime, "celebrate")
	}
	if cfg.Has(config.FeatureLint) {
		dev = append(dev, "eslint")
	}
	if cfg.Has(config.FeatureTesting) {
		dev = append(dev, "jest", "supertest")
		if cfg.TypeScript() {
			dev = append(dev, "ts-jest", "@types/jest", "@types/supertest")
		}
	}

	return registry.Refs{Runtime: runtime, Development: dev}
}

// ScriptsFor selects the named commands for the configuration.
func ScriptsFor(cfg config.Config) map[string]string {
	scripts := make(map[string]string)

	if cfg.TypeScript() {
		scripts["build"] = "tsc"
		scripts["start"] = "node dist/index.js"
		scripts["dev"] = "tsx watch src/index.ts"
	} else {
		scripts["start"] = "node src/index.js"
		scripts["dev"] = "nodemon src/index.js"
	}

	if cfg.Has(config.FeatureLint) {
		scripts["lint"] = "eslint ."
	}
	if cfg.Has(config.FeatureTesting) {
		scripts["test"] = "jest"
	}

	return scripts
}

// Skeleton assembles the document without any resolved versions. The
// pipeline writes this at the source-writing stage and merges versions in
// at finalization.
func Skeleton(projectName string, cfg config.Config) *PackageJSON {
	main := "src/index.js"
	if cfg.TypeScript() {
		main = "dist/index.js"
	}

	return &PackageJSON{
		Name:            projectName,
		Version:         "1.0.0",
		Description:     "Express server scaffolded by create-express-app",
		Type:            "module",
		Main:            main,
		Scripts:         ScriptsFor(cfg),
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
	}
}

// MergeResolution fills in the resolved version constraints.
func (p *PackageJSON) MergeResolution(res *registry.Resolution) {
	p.Dependencies = res.Runtime
	p.DevDependencies = res.Development
}

// Build assembles the complete document from the configuration and the
// resolved versions.
func Build(projectName string, cfg config.Config, res *registry.Resolution) *PackageJSON {
	pkg := Skeleton(projectName, cfg)
	pkg.MergeResolution(res)
	return pkg
}

// Encode renders the document as indented JSON with a trailing newline,
// matching what package managers themselves write.
func (p *PackageJSON) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding package.json: %w", err)
	}
	return append(data, '\n'), nil
}
