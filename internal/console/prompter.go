package console

import (
	"errors"

	"github.com/SscSPs/internet_banking/internal/utils"
	"github.com/charmbracelet/huh"
)

// FormPrompter asks through interactive huh forms.
type FormPrompter struct{}

// NewFormPrompter creates a FormPrompter.
func NewFormPrompter() *FormPrompter {
	return &FormPrompter{}
}

func (p *FormPrompter) SelectAction() (Action, error) {
	var action Action
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[Action]().
			Title("Choose an action").
			Options(
				huh.NewOption("Withdraw", ActionWithdraw),
				huh.NewOption("Deposit", ActionDeposit),
				huh.NewOption("Statement", ActionStatement),
				huh.NewOption("Quit", ActionQuit),
			).
			Value(&action),
	))
	if err := form.Run(); err != nil {
		return "", mapFormError(err)
	}
	return action, nil
}

func (p *FormPrompter) AskAmount(action Action) (string, error) {
	title := "Amount to withdraw (R$)"
	if action == ActionDeposit {
		title = "Amount to deposit (R$)"
	}

	var raw string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Placeholder("0.00").
			Validate(func(s string) error {
				_, err := utils.ParseAmount(s)
				return err
			}).
			Value(&raw),
	))
	if err := form.Run(); err != nil {
		return "", mapFormError(err)
	}
	return raw, nil
}

func mapFormError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrQuit
	}
	return err
}
