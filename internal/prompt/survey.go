package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// SurveyAsker renders questions on a real terminal using survey.
type SurveyAsker struct{}

// NewSurveyAsker creates the terminal-backed asker.
func NewSurveyAsker() *SurveyAsker {
	return &SurveyAsker{}
}

// Ask renders every question in order and collects the answers. A terminal
// interrupt at any point returns ErrAborted; answers gathered so far are
// discarded.
func (s *SurveyAsker) Ask(ctx context.Context, questions []Question) (Answers, error) {
	answers := make(Answers, len(questions))

	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, ErrAborted
		}

		value, err := s.askOne(q)
		if err != nil {
			return nil, translateErr(err)
		}
		answers[q.Name] = value
	}

	return answers, nil
}

func (s *SurveyAsker) askOne(q Question) (any, error) {
	switch q.Kind {
	case Input:
		var out string
		p := &survey.Input{Message: q.Message, Help: q.Help}
		if d, ok := q.Default.(string); ok {
			p.Default = d
		}
		err := survey.AskOne(p, &out)
		return out, err

	case Confirm:
		var out bool
		p := &survey.Confirm{Message: q.Message, Help: q.Help}
		if d, ok := q.Default.(bool); ok {
			p.Default = d
		}
		err := survey.AskOne(p, &out)
		return out, err

	case Select:
		var out string
		p := &survey.Select{Message: q.Message, Help: q.Help, Options: q.Options}
		if d, ok := q.Default.(string); ok && d != "" {
			p.Default = d
		}
		err := survey.AskOne(p, &out)
		return out, err

	case MultiSelect:
		var out []string
		p := &survey.MultiSelect{Message: q.Message, Help: q.Help, Options: q.Options}
		if d, ok := q.Default.([]string); ok && len(d) > 0 {
			p.Default = d
		}
		err := survey.AskOne(p, &out)
		return out, err

	default:
		return nil, fmt.Errorf("unknown question kind %d for %q", q.Kind, q.Name)
	}
}

func translateErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
