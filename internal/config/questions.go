package config

import (
	"github.com/TheShiveshNetwork/create-express-app/internal/prompt"
)

// Answer keys used by the question specs.
const (
	keyVariant  = "variant"
	keyFeatures = "features"
	keyProceed  = "proceed"
)

// Question is a prompt descriptor extended with a computed default.
//
// DefaultFrom, when set, derives this question's default from the defaults
// of earlier questions. It must be pure: defaults extraction evaluates the
// schema once, with no side effects, independent of prompt rendering.
type Question struct {
	prompt.Question
	DefaultFrom func(known prompt.Answers) any
}

// DefaultQuestions is the declarative question specification used when the
// caller supplies neither an override spec nor a static configuration.
func DefaultQuestions() []Question {
	variants := []string{string(JavaScript), string(TypeScript)}

	features := make([]string, 0, len(AllFeatures()))
	for _, f := range AllFeatures() {
		features = append(features, string(f))
	}

	return []Question{
		{
			Question: prompt.Question{
				Kind:    prompt.Select,
				Name:    keyVariant,
				Message: "Which language variant?",
				Options: variants,
				Default: string(JavaScript),
			},
		},
		{
			Question: prompt.Question{
				Kind:    prompt.MultiSelect,
				Name:    keyFeatures,
				Message: "Select optional features",
				Help:    "space to toggle, enter to accept",
				Options: features,
				Default: []string{},
			},
		},
		{
			Question: prompt.Question{
				Kind:    prompt.Confirm,
				Name:    keyProceed,
				Message: "Scaffold the project with these settings?",
				Default: true,
			},
		},
	}
}

// extractDefaults evaluates the declared defaults of a question spec in
// order. Computed defaults see the defaults already extracted for earlier
// questions. The result feeds both the static-merge path and the defaults
// shown by interactive prompts.
func extractDefaults(questions []Question) prompt.Answers {
	known := make(prompt.Answers, len(questions))
	for _, q := range questions {
		value := q.Default
		if q.DefaultFrom != nil {
			value = q.DefaultFrom(known)
		}
		if value != nil {
			known[q.Name] = value
		}
	}
	return known
}

// toPrompts lowers the schema to plain prompt descriptors, substituting the
// already-evaluated defaults so renderers never run schema logic.
func toPrompts(questions []Question, defaults prompt.Answers) []prompt.Question {
	out := make([]prompt.Question, len(questions))
	for i, q := range questions {
		p := q.Question
		if v, ok := defaults[q.Name]; ok {
			p.Default = v
		}
		out[i] = p
	}
	return out
}
