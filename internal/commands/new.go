package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TheShiveshNetwork/create-express-app/internal/config"
	"github.com/TheShiveshNetwork/create-express-app/internal/manifest"
	"github.com/TheShiveshNetwork/create-express-app/internal/output"
	"github.com/TheShiveshNetwork/create-express-app/internal/prompt"
	"github.com/TheShiveshNetwork/create-express-app/internal/registry"
	"github.com/TheShiveshNetwork/create-express-app/internal/scaffold"
	"github.com/TheShiveshNetwork/create-express-app/internal/shell"
	"github.com/TheShiveshNetwork/create-express-app/internal/templates"
)

// NewCmd creates and returns the 'new' command for scaffolding projects.
func NewCmd() *cobra.Command {
	var (
		variant     string
		features    []string
		presetPath  string
		yes         bool
		force       bool
		dryRun      bool
		skipInstall bool
		noGit       bool
	)

	cmd := &cobra.Command{
		Use:   "new [project-name]",
		Short: "Create a new Express project",
		Long: `Creates a new Express project with:
• src/ layout (routes, middlewares, controllers, schemas)
• package.json with the latest dependency versions
• Your package manager detected and used for install

Example:
  create-express-app new my-api --variant typescript --features lint,testing`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			projectName := args[0]
			ctx := cmd.Context()

			resolver, err := buildResolver(cmd, variant, features, presetPath, yes)
			if err != nil {
				return err
			}

			if dryRun {
				return printPlan(cmd, projectName, resolver)
			}

			pm := manifest.Detect()
			p := scaffold.New(scaffold.Options{
				ProjectName:    projectName,
				Config:         resolver,
				Registry:       registry.NewResolver(registry.NewClient()),
				Asker:          prompt.NewSurveyAsker(),
				Overwrite:      force,
				PackageManager: pm,
			})
			if !noGit {
				p.AddStep("git init", scaffold.GitInitStep(p))
			}

			if err := p.Run(ctx); err != nil {
				if errors.Is(err, scaffold.ErrUserAbort) || errors.Is(err, config.ErrIncomplete) {
					output.Info("Nothing was created.")
				}
				return err
			}

			output.Success(fmt.Sprintf("Created %s", projectName))

			if !skipInstall {
				installDependencies(ctx, p, pm)
			}

			output.Info("Next steps:")
			output.Step(fmt.Sprintf("cd %s", projectName))
			if skipInstall {
				output.Step(fmt.Sprintf("%s  # install dependencies", joinArgv(pm.InstallCmd)))
			}
			output.Step(pm.RunCommand("dev"))
			return nil
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "Language variant: javascript or typescript")
	cmd.Flags().StringSliceVar(&features, "features", nil, "Features to enable: lint, validation, testing")
	cmd.Flags().StringVar(&presetPath, "preset", "", "Path to a YAML preset file")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip prompts and accept all defaults")
	cmd.Flags().BoolVar(&force, "force", false, "Scaffold into an existing directory without asking")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be created without writing anything")
	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, "Do not install dependencies after scaffolding")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "Do not initialize a git repository")

	return cmd
}

// buildResolver picks the configuration source. Precedence: explicit flags
// over preset values; --yes or any static value suppresses prompting for
// the rest.
func buildResolver(cmd *cobra.Command, variant string, features []string, presetPath string, yes bool) (*config.Resolver, error) {
	var partial config.Partial

	if presetPath != "" {
		loaded, err := config.LoadPreset(presetPath)
		if err != nil {
			return nil, err
		}
		partial = loaded
	}

	if variant != "" {
		v, err := config.ParseVariant(variant)
		if err != nil {
			return nil, err
		}
		partial.Variant = &v
	}
	if cmd.Flags().Changed("features") {
		parsed := make([]config.Feature, 0, len(features))
		for _, name := range features {
			f, err := config.ParseFeature(name)
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, f)
		}
		partial.Features = parsed
	}

	static := yes || presetPath != "" || partial.Variant != nil || partial.Features != nil
	if static {
		return config.NewStaticResolver(partial), nil
	}
	return config.NewResolver(prompt.NewSurveyAsker()), nil
}

// printPlan resolves the configuration and lists what a real run would
// create, without touching the file system or the registry.
func printPlan(cmd *cobra.Command, projectName string, resolver *config.Resolver) error {
	cfg, err := resolver.Resolve(cmd.Context())
	if err != nil {
		return err
	}

	output.Info(fmt.Sprintf("Would create %s (%s variant, features %v)", projectName, cfg.Variant, cfg.FeatureNames()))
	for _, dir := range templates.Dirs(cfg) {
		output.Step(dir + "/")
	}
	for _, spec := range templates.Files(cfg) {
		output.Step(spec.Path)
	}
	output.Step("package.json")
	output.Step(scaffold.MarkerFile)

	refs := manifest.RefsFor(cfg)
	output.Info(fmt.Sprintf("Would resolve %d runtime and %d development dependencies", len(refs.Runtime), len(refs.Development)))
	return nil
}

// installDependencies runs the package manager inside the finalized
// project. The project is complete at this point, so a failed install only
// warns instead of rolling anything back.
func installDependencies(ctx context.Context, p *scaffold.Pipeline, pm manifest.PackageManager) {
	execr := shell.NewExecutor(&shell.Options{Dir: p.Target()})
	name, args := pm.InstallCmd[0], pm.InstallCmd[1:]
	message := fmt.Sprintf("Installing dependencies with %s", pm.Name)
	if err := execr.RunWithSpinner(ctx, message, name, args...); err != nil {
		output.Warning(fmt.Sprintf("dependency install failed: %v", err))
		output.Warning(fmt.Sprintf("run %q inside the project to retry", joinArgv(pm.InstallCmd)))
	}
}

func joinArgv(argv []string) string {
	return strings.Join(argv, " ")
}
