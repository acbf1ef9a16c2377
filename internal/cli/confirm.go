package cli

import "github.com/charmbracelet/huh"

// ConfirmFunc asks a yes/no question.
type ConfirmFunc func(title, description string) (bool, error)

// PromptConfirm asks on the terminal with a huh confirm field.
func PromptConfirm(title, description string) (bool, error) {
	ok := false
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Confirm returns true when skip is set, otherwise it prompts.
func (c *Context) Confirm(skip bool, title, description string) (bool, error) {
	if skip {
		return true, nil
	}
	ask := c.Ask
	if ask == nil {
		ask = PromptConfirm
	}
	return ask(title, description)
}
