// Package config resolves the scaffold configuration exactly once, from
// interactive answers, a static preset, or declared defaults.
package config

import (
	"fmt"
	"sort"
)

// Variant selects the language flavor of the generated project.
type Variant string

const (
	// JavaScript generates a plain ESM JavaScript project.
	JavaScript Variant = "javascript"
	// TypeScript generates a TypeScript project with a build step.
	TypeScript Variant = "typescript"
)

// ParseVariant validates a variant name.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case JavaScript, TypeScript:
		return Variant(s), nil
	default:
		return "", fmt.Errorf("unknown language variant %q (expected %q or %q)", s, JavaScript, TypeScript)
	}
}

// Feature is an optional capability bundle the caller can select. Features
// drive dependency-set membership and generated scripts.
type Feature string

const (
	// FeatureLint adds ESLint tooling and a lint script.
	FeatureLint Feature = "lint"
	// FeatureValidation adds celebrate request-schema validation.
	FeatureValidation Feature = "validation"
	// FeatureTesting adds Jest and Supertest with a test script.
	FeatureTesting Feature = "testing"
)

// AllFeatures lists the selectable features in presentation order.
func AllFeatures() []Feature {
	return []Feature{FeatureLint, FeatureValidation, FeatureTesting}
}

// ParseFeature validates a feature name.
func ParseFeature(s string) (Feature, error) {
	switch Feature(s) {
	case FeatureLint, FeatureValidation, FeatureTesting:
		return Feature(s), nil
	default:
		return "", fmt.Errorf("unknown feature %q", s)
	}
}

// Config is the fully resolved scaffold configuration. It is populated once
// by a Resolver and never mutated afterwards; every later stage reads it.
type Config struct {
	Variant  Variant
	Features []Feature // sorted, duplicate-free
}

// Has reports whether a feature was selected.
func (c Config) Has(f Feature) bool {
	for _, have := range c.Features {
		if have == f {
			return true
		}
	}
	return false
}

// TypeScript reports whether the statically-typed variant was selected.
func (c Config) TypeScript() bool {
	return c.Variant == TypeScript
}

// FeatureNames returns the selected features as strings, for display and
// for the scaffold marker.
func (c Config) FeatureNames() []string {
	names := make([]string, len(c.Features))
	for i, f := range c.Features {
		names[i] = string(f)
	}
	return names
}

// normalizeFeatures sorts and de-duplicates a feature list.
func normalizeFeatures(features []Feature) []Feature {
	seen := make(map[Feature]struct{}, len(features))
	out := make([]Feature, 0, len(features))
	for _, f := range features {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
