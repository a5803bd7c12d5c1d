package prompter

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// HuhPrompter renders prompts as terminal forms.
type HuhPrompter struct{}

func NewHuh() *HuhPrompter {
	return &HuhPrompter{}
}

func (*HuhPrompter) Confirm(q string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(q).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, translate(err)
}

func (*HuhPrompter) Prompt(q, def string) (string, error) {
	answer := def
	err := huh.NewInput().
		Title(q).
		Value(&answer).
		Run()
	if err != nil {
		return "", translate(err)
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func (*HuhPrompter) Select(q string, options []Option) (string, error) {
	var choice string
	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.Label, o.Value))
	}

	err := huh.NewSelect[string]().
		Title(q).
		Options(opts...).
		Value(&choice).
		Run()
	return choice, translate(err)
}

func translate(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}
