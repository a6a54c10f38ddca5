package prompt

import "context"

// ScriptAsker replays canned answers without touching a terminal. Questions
// with no scripted answer fall back to their declared default. It exists for
// tests and for non-interactive (--yes) runs.
type ScriptAsker struct {
	// Responses maps question names to answers.
	Responses Answers

	// AbortOn, when non-empty, simulates the user interrupting the flow
	// at the named question.
	AbortOn string

	// Asked records question names in the order they were presented.
	Asked []string
}

// Ask resolves each question from Responses, falling back to the question's
// default. Hitting AbortOn returns ErrAborted with no partial answers.
func (s *ScriptAsker) Ask(ctx context.Context, questions []Question) (Answers, error) {
	answers := make(Answers, len(questions))

	for _, q := range questions {
		s.Asked = append(s.Asked, q.Name)
		if q.Name == s.AbortOn {
			return nil, ErrAborted
		}

		if v, ok := s.Responses[q.Name]; ok {
			answers[q.Name] = v
			continue
		}
		if q.Default != nil {
			answers[q.Name] = q.Default
			continue
		}
		switch q.Kind {
		case Confirm:
			answers[q.Name] = false
		case MultiSelect:
			answers[q.Name] = []string{}
		default:
			answers[q.Name] = ""
		}
	}

	return answers, nil
}
