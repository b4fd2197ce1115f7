// Package console runs the banking form in a terminal.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/internet_banking/internal/core/domain"
	portssvc "github.com/SscSPs/internet_banking/internal/core/ports/services"
	"github.com/SscSPs/internet_banking/internal/dto"
	"github.com/SscSPs/internet_banking/internal/utils"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

// Action is one entry of the terminal menu.
type Action string

const (
	ActionWithdraw  Action = "withdraw"
	ActionDeposit   Action = "deposit"
	ActionStatement Action = "statement"
	ActionQuit      Action = "quit"
)

// ErrQuit is returned by a Prompter when the user leaves the form.
var ErrQuit = errors.New("user quit")

// Prompter collects input from the user.
type Prompter interface {
	SelectAction() (Action, error)
	// AskAmount returns raw input for action; validation happens in the App.
	AskAmount(action Action) (string, error)
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// App drives one session's account from the terminal.
type App struct {
	ledger    portssvc.LedgerSvcFacade
	sessionID string
	prompter  Prompter
	out       io.Writer
	location  *time.Location
	logger    *slog.Logger
}

// NewApp creates an App for sessionID writing to out.
func NewApp(ledger portssvc.LedgerSvcFacade, sessionID string, prompter Prompter, out io.Writer, loc *time.Location, logger *slog.Logger) *App {
	return &App{
		ledger:    ledger,
		sessionID: sessionID,
		prompter:  prompter,
		out:       out,
		location:  loc,
		logger:    logger,
	}
}

// Run loops over the menu until the user quits.
func (a *App) Run(ctx context.Context) error {
	if _, err := a.ledger.OpenSession(ctx, a.sessionID); err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		action, err := a.prompter.SelectAction()
		if errors.Is(err, ErrQuit) || action == ActionQuit {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read action: %w", err)
		}

		switch action {
		case ActionWithdraw:
			err = a.operate(ctx, action, a.ledger.Withdraw)
		case ActionDeposit:
			err = a.operate(ctx, action, a.ledger.Deposit)
		case ActionStatement:
			err = a.statement(ctx)
		default:
			a.logger.Warn("Ignoring unknown action", slog.String("action", string(action)))
		}
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

type operation func(ctx context.Context, sessionID string, amount decimal.Decimal) *domain.OperationResult

func (a *App) operate(ctx context.Context, action Action, op operation) error {
	raw, err := a.prompter.AskAmount(action)
	if err != nil {
		return err
	}

	amount, err := utils.ParseAmount(raw)
	if err != nil {
		a.println(errorStyle, "Please enter a valid numeric amount.")
		return nil
	}

	result := op(ctx, a.sessionID, amount)
	if result.Success {
		a.println(successStyle, result.Message)
	} else {
		a.println(errorStyle, result.Message)
	}
	a.logger.Debug("Operation finished",
		slog.String("action", string(action)),
		slog.Bool("success", result.Success),
		slog.String("kind", string(result.Kind())))
	return nil
}

func (a *App) statement(ctx context.Context) error {
	stmt, err := a.ledger.Statement(ctx, a.sessionID)
	if err != nil {
		return fmt.Errorf("failed to build statement: %w", err)
	}

	res := dto.ToStatementResponse(stmt, a.location)
	a.println(headerStyle, "Current balance: "+res.BalanceFormatted)
	if len(res.Transactions) == 0 {
		a.println(infoStyle, "You have no registered transactions")
		return nil
	}
	fmt.Fprintln(a.out, RenderStatementTable(res))
	return nil
}

// RenderStatementTable renders the statement rows as a bordered table.
func RenderStatementTable(res dto.StatementResponse) string {
	rows := make([][]string, len(res.Transactions))
	for i, txn := range res.Transactions {
		rows[i] = []string{
			txn.TimestampFormatted,
			txn.KindLabel,
			txn.AmountFormatted,
			txn.BalanceBeforeFormatted,
			txn.BalanceAfterFormatted,
		}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Date", "Type", "Amount", "Balance before", "Balance after").
		Rows(rows...).
		String()
}

func (a *App) println(style lipgloss.Style, msg string) {
	fmt.Fprintln(a.out, style.Render(msg))
}
