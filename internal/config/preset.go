package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// LoadPreset reads a partial static configuration from a YAML preset file.
//
// Preset shape:
//
//	variant: typescript
//	features:
//	  - lint
//	  - testing
//
// Environment variables prefixed CEA_ override file values
// (CEA_VARIANT=typescript). Unset keys stay nil in the returned Partial so
// they fall back to declared defaults during the merge.
func LoadPreset(path string) (Partial, error) {
	if _, err := os.Stat(path); err != nil {
		return Partial{}, fmt.Errorf("preset file %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("CEA")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Partial{}, fmt.Errorf("reading preset %s: %w", path, err)
	}

	var partial Partial

	if name := v.GetString("variant"); name != "" {
		variant, err := ParseVariant(name)
		if err != nil {
			return Partial{}, err
		}
		partial.Variant = &variant
	}

	if v.IsSet("features") {
		names := v.GetStringSlice("features")
		features := make([]Feature, 0, len(names))
		for _, name := range names {
			f, err := ParseFeature(name)
			if err != nil {
				return Partial{}, err
			}
			features = append(features, f)
		}
		partial.Features = features
	}

	return partial, nil
}
