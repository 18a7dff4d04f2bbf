package prompt

import (
	"context"
	"errors"
	"fmt"

	"rulegen/internal/mapping"
	"rulegen/internal/rules"
)

// Completer is a text-completion collaborator.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CollaboratorError reports an opaque failure of the completion step.
type CollaboratorError struct {
	Message string
	Err     error
}

func (e *CollaboratorError) Error() string {
	return "completion failed: " + e.Message
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

func collaboratorError(err error) *CollaboratorError {
	return &CollaboratorError{Message: err.Error(), Err: err}
}

// Generate builds the prompt, asks the completer, and decodes its answer.
// Every failure after the prompt is built is a *CollaboratorError.
func Generate(
	ctx context.Context,
	completer Completer,
	op *mapping.Operation,
	summary *rules.RuleNode,
	source string,
	opts ...Option,
) (*rules.RuleSet, error) {
	if completer == nil {
		return nil, errors.New("no completer configured")
	}

	p, err := Build(op, summary, source, opts...)
	if err != nil {
		return nil, err
	}

	response, err := completer.Complete(ctx, p)
	if err != nil {
		return nil, collaboratorError(err)
	}

	raw, err := ExtractJSON(response)
	if err != nil {
		return nil, collaboratorError(err)
	}

	set, err := rules.UnmarshalSet([]byte(raw))
	if err != nil {
		return nil, collaboratorError(err)
	}

	if len(set.ConversionRules) == 0 {
		return nil, collaboratorError(errors.New("response holds no conversion rules"))
	}

	for i, root := range set.ConversionRules {
		if err := root.ValidateRoot(); err != nil {
			return nil, collaboratorError(fmt.Errorf("conversion rule %d: %w", i, err))
		}
	}

	return set, nil
}
