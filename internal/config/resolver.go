package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/TheShiveshNetwork/create-express-app/internal/prompt"
)

// ErrIncomplete is returned when interactive collection is abandoned before
// every required field is populated. No file-system mutation happens on this
// path.
var ErrIncomplete = errors.New("configuration collection abandoned")

// Partial is a caller-supplied static configuration. Nil fields fall back to
// the defaults declared by the question spec.
type Partial struct {
	Variant  *Variant
	Features []Feature // nil means unset; empty slice means explicitly none
}

// Resolver produces the immutable Config for a run. Construct it with
// exactly one of the three sources: default questions, an override question
// spec, or a static partial configuration.
type Resolver struct {
	asker     prompt.Asker
	questions []Question
	static    *Partial

	resolved *Config
}

// NewResolver collects the configuration interactively using the default
// question specification.
func NewResolver(asker prompt.Asker) *Resolver {
	return &Resolver{asker: asker, questions: DefaultQuestions()}
}

// NewResolverWithQuestions collects the configuration interactively using a
// caller-supplied question specification.
func NewResolverWithQuestions(asker prompt.Asker, questions []Question) *Resolver {
	return &Resolver{asker: asker, questions: questions}
}

// NewStaticResolver skips prompting entirely: the partial is merged over the
// defaults declared by the default question specification, explicit values
// winning.
func NewStaticResolver(partial Partial) *Resolver {
	return &Resolver{questions: DefaultQuestions(), static: &partial}
}

// Resolve returns the configuration, computing it on first call and serving
// the cached value afterwards. It never re-prompts or re-merges.
func (r *Resolver) Resolve(ctx context.Context) (Config, error) {
	if r.resolved != nil {
		return *r.resolved, nil
	}

	defaults := extractDefaults(r.questions)

	var cfg Config
	var err error
	if r.static != nil {
		cfg, err = mergeStatic(*r.static, defaults)
	} else {
		cfg, err = r.collect(ctx, defaults)
	}
	if err != nil {
		return Config{}, err
	}

	r.resolved = &cfg
	return cfg, nil
}

// collect runs the interactive flow and adopts its full response.
func (r *Resolver) collect(ctx context.Context, defaults prompt.Answers) (Config, error) {
	answers, err := r.asker.Ask(ctx, toPrompts(r.questions, defaults))
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return Config{}, ErrIncomplete
		}
		return Config{}, err
	}

	if proceed, ok := answers[keyProceed].(bool); ok && !proceed {
		return Config{}, ErrIncomplete
	}

	return fromAnswers(answers)
}

// mergeStatic merges explicit partial values over extracted defaults.
func mergeStatic(partial Partial, defaults prompt.Answers) (Config, error) {
	answers := make(prompt.Answers, len(defaults))
	for k, v := range defaults {
		answers[k] = v
	}

	if partial.Variant != nil {
		answers[keyVariant] = string(*partial.Variant)
	}
	if partial.Features != nil {
		names := make([]string, len(partial.Features))
		for i, f := range partial.Features {
			names[i] = string(f)
		}
		answers[keyFeatures] = names
	}

	return fromAnswers(answers)
}

// fromAnswers builds a total Config from an answer mapping, rejecting any
// mapping that leaves a field unpopulated.
func fromAnswers(answers prompt.Answers) (Config, error) {
	variantName := answers.String(keyVariant)
	if variantName == "" {
		return Config{}, fmt.Errorf("%w: no language variant selected", ErrIncomplete)
	}
	variant, err := ParseVariant(variantName)
	if err != nil {
		return Config{}, err
	}

	var features []Feature
	for _, name := range answers.Strings(keyFeatures) {
		f, err := ParseFeature(name)
		if err != nil {
			return Config{}, err
		}
		features = append(features, f)
	}

	return Config{
		Variant:  variant,
		Features: normalizeFeatures(features),
	}, nil
}
