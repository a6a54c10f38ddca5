package manifest

import (
	"fmt"
	"os"
	"strings"
)

// PackageManager describes the command templates of one known package
// manager.
type PackageManager struct {
	Name       string
	InstallCmd []string // argv for installing all manifest dependencies
	runFormat  string   // format with one %s for the script name
}

// RunCommand returns the shell command that runs a named script.
func (pm PackageManager) RunCommand(script string) string {
	return fmt.Sprintf(pm.runFormat, script)
}

var (
	npm  = PackageManager{Name: "npm", InstallCmd: []string{"npm", "install"}, runFormat: "npm run %s"}
	yarn = PackageManager{Name: "yarn", InstallCmd: []string{"yarn"}, runFormat: "yarn %s"}
	pnpm = PackageManager{Name: "pnpm", InstallCmd: []string{"pnpm", "install"}, runFormat: "pnpm %s"}
	bun  = PackageManager{Name: "bun", InstallCmd: []string{"bun", "install"}, runFormat: "bun run %s"}
)

var managers = map[string]PackageManager{
	"npm":  npm,
	"yarn": yarn,
	"pnpm": pnpm,
	"bun":  bun,
}

// Detect picks a package manager from the environment.
//
// CEA_PACKAGE_MANAGER wins when set to a known name. Otherwise the
// npm_config_user_agent hint set by every major package manager is
// inspected (e.g. "pnpm/9.1.0 npm/? node/v22.1.0"). npm is the fallback.
func Detect() PackageManager {
	if name := os.Getenv("CEA_PACKAGE_MANAGER"); name != "" {
		if pm, ok := managers[strings.ToLower(name)]; ok {
			return pm
		}
	}

	agent := os.Getenv("npm_config_user_agent")
	for _, name := range []string{"bun", "pnpm", "yarn", "npm"} {
		if strings.HasPrefix(agent, name+"/") {
			return managers[name]
		}
	}

	return npm
}
