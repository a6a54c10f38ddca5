// Package prompt abstracts interactive question/answer collection.
//
// Callers describe an ordered list of questions and receive a mapping of
// question name to answer. The concrete renderer is pluggable so the
// scaffolder can be driven by a real terminal or by a scripted asker in
// tests.
package prompt

import (
	"context"
	"errors"
)

// ErrAborted is returned when the user abandons the prompt flow
// (Ctrl+C or EOF) before answering every question.
var ErrAborted = errors.New("prompt aborted")

// Kind selects the widget used to render a question.
type Kind int

const (
	// Input asks for free-form text.
	Input Kind = iota
	// Confirm asks a yes/no question.
	Confirm
	// Select asks the user to pick one of Options.
	Select
	// MultiSelect asks the user to pick any subset of Options.
	MultiSelect
)

// Question describes a single prompt.
type Question struct {
	Kind    Kind
	Name    string   // answer key, unique within one flow
	Message string   // prompt text shown to the user
	Help    string   // optional help line
	Options []string // choice set for Select/MultiSelect

	// Default is the pre-filled answer: string for Input/Select,
	// bool for Confirm, []string for MultiSelect. May be nil.
	Default any
}

// Answers maps question names to the collected values. Value types mirror
// Question.Default: string, bool, or []string.
type Answers map[string]any

// String returns the answer for name as a string, or "" when absent.
func (a Answers) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Bool returns the answer for name as a bool, or false when absent.
func (a Answers) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Strings returns the answer for name as a string slice, or nil when absent.
func (a Answers) Strings(name string) []string {
	s, _ := a[name].([]string)
	return s
}

// Asker collects answers for an ordered list of questions.
type Asker interface {
	Ask(ctx context.Context, questions []Question) (Answers, error)
}
