package manifest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheShiveshNetwork/create-express-app/internal/config"
	"github.com/TheShiveshNetwork/create-express-app/internal/registry"
)

func TestRefsFor_JavaScriptBaseline(t *testing.T) {
	refs := RefsFor(config.Config{Variant: config.JavaScript})

	assert.Equal(t, []string{"express", "cors", "dotenv", "helmet", "morgan"}, refs.Runtime)
	assert.Equal(t, []string{"nodemon"}, refs.Development)
}

func TestRefsFor_TypeScriptWithFeatures(t *testing.T) {
	cfg := config.Config{
		Variant:  config.TypeScript,
		Features: []config.Feature{config.FeatureLint, config.FeatureTesting, config.FeatureValidation},
	}
	refs := RefsFor(cfg)

	assert.Contains(t, refs.Runtime, "celebrate")
	assert.Contains(t, refs.Development, "typescript")
	assert.Contains(t, refs.Development, "@types/express")
	assert.Contains(t, refs.Development, "eslint")
	assert.Contains(t, refs.Development, "jest")
	assert.Contains(t, refs.Development, "ts-jest")

	// duplicate-free
	seen := map[string]bool{}
	for _, name := range append(refs.Runtime, refs.Development...) {
		require.False(t, seen[name], "duplicate reference %s", name)
		seen[name] = true
	}
}

func TestScriptsFor(t *testing.T) {
	js := ScriptsFor(config.Config{Variant: config.JavaScript})
	assert.Equal(t, "node src/index.js", js["start"])
	assert.Equal(t, "nodemon src/index.js", js["dev"])
	assert.NotContains(t, js, "build")
	assert.NotContains(t, js, "test")

	ts := ScriptsFor(config.Config{
		Variant:  config.TypeScript,
		Features: []config.Feature{config.FeatureTesting, config.FeatureLint},
	})
	assert.Equal(t, "tsc", ts["build"])
	assert.Equal(t, "jest", ts["test"])
	assert.Equal(t, "eslint .", ts["lint"])
}

func TestBuildAndEncode(t *testing.T) {
	cfg := config.Config{Variant: config.TypeScript}
	res := &registry.Resolution{
		Runtime:     map[string]string{"express": "^4.19.2"},
		Development: map[string]string{"typescript": "^5.4.5"},
	}

	pkg := Build("demo", cfg, res)
	assert.Equal(t, "demo", pkg.Name)
	assert.Equal(t, "module", pkg.Type)
	assert.Equal(t, "dist/index.js", pkg.Main)

	data, err := pkg.Encode()
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), data[len(data)-1])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	deps := decoded["dependencies"].(map[string]any)
	assert.Equal(t, "^4.19.2", deps["express"])
}

func TestDetect_UserAgentHint(t *testing.T) {
	t.Setenv("CEA_PACKAGE_MANAGER", "")
	t.Setenv("npm_config_user_agent", "pnpm/9.1.0 npm/? node/v22.1.0 linux x64")

	assert.Equal(t, "pnpm", Detect().Name)
}

func TestDetect_ExplicitOverrideWins(t *testing.T) {
	t.Setenv("npm_config_user_agent", "pnpm/9.1.0 npm/? node/v22.1.0 linux x64")
	t.Setenv("CEA_PACKAGE_MANAGER", "bun")

	assert.Equal(t, "bun", Detect().Name)
}

func TestDetect_DefaultsToNpm(t *testing.T) {
	t.Setenv("CEA_PACKAGE_MANAGER", "")
	t.Setenv("npm_config_user_agent", "")

	pm := Detect()
	assert.Equal(t, "npm", pm.Name)
	assert.Equal(t, "npm run dev", pm.RunCommand("dev"))
}
