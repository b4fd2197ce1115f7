package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/internet_banking/internal/core/domain"
	"github.com/SscSPs/internet_banking/internal/utils"
)

// AmountRequest is the JSON body of a deposit or withdrawal.
// Amount accepts either a JSON number or a numeric string and is checked with
// utils.ParseAmount before use.
type AmountRequest struct {
	Amount json.Number `json:"amount" binding:"required" swaggertype:"string" example:"100.00"`
}

// AmountForm is the HTML form body of a deposit or withdrawal.
type AmountForm struct {
	Amount string `form:"amount"`
}

// StatementQuery pages the statement endpoint. A zero Limit returns every transaction.
type StatementQuery struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// TransactionResponse is a transaction with both raw and display values.
type TransactionResponse struct {
	TransactionID          string    `json:"transactionID"`
	Kind                   string    `json:"kind"`
	KindLabel              string    `json:"kindLabel"`
	Timestamp              time.Time `json:"timestamp"`
	TimestampFormatted     string    `json:"timestampFormatted"`
	Amount                 string    `json:"amount"`
	AmountFormatted        string    `json:"amountFormatted"`
	BalanceBefore          string    `json:"balanceBefore"`
	BalanceBeforeFormatted string    `json:"balanceBeforeFormatted"`
	BalanceAfter           string    `json:"balanceAfter"`
	BalanceAfterFormatted  string    `json:"balanceAfterFormatted"`
}

// OperationResponse is returned by the deposit and withdrawal endpoints.
type OperationResponse struct {
	Success          bool                 `json:"success"`
	Message          string               `json:"message"`
	Kind             string               `json:"kind,omitempty"`
	Balance          string               `json:"balance"`
	BalanceFormatted string               `json:"balanceFormatted"`
	Transaction      *TransactionResponse `json:"transaction,omitempty"`
}

// StatementResponse is returned by the statement endpoint.
type StatementResponse struct {
	Balance          string                `json:"balance"`
	BalanceFormatted string                `json:"balanceFormatted"`
	GeneratedAt      time.Time             `json:"generatedAt"`
	Transactions     []TransactionResponse `json:"transactions"`
	NextToken        string                `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction, rendering times in loc.
func ToTransactionResponse(txn domain.Transaction, loc *time.Location) TransactionResponse {
	return TransactionResponse{
		TransactionID:          txn.TransactionID,
		Kind:                   string(txn.Kind),
		KindLabel:              kindLabel(txn.Kind),
		Timestamp:              txn.Timestamp.In(loc),
		TimestampFormatted:     utils.FormatTimestamp(txn.Timestamp, loc),
		Amount:                 utils.FormatWithPrecision(txn.Amount, 2),
		AmountFormatted:        utils.FormatCurrency(txn.Amount),
		BalanceBefore:          utils.FormatWithPrecision(txn.BalanceBefore, 2),
		BalanceBeforeFormatted: utils.FormatCurrency(txn.BalanceBefore),
		BalanceAfter:           utils.FormatWithPrecision(txn.BalanceAfter, 2),
		BalanceAfterFormatted:  utils.FormatCurrency(txn.BalanceAfter),
	}
}

func kindLabel(kind domain.TransactionKind) string {
	switch kind {
	case domain.Deposit:
		return "Deposit"
	case domain.Withdrawal:
		return "Withdrawal"
	default:
		return string(kind)
	}
}

// ToOperationResponse converts a domain.OperationResult
func ToOperationResponse(result *domain.OperationResult, loc *time.Location) OperationResponse {
	res := OperationResponse{
		Success:          result.Success,
		Message:          result.Message,
		Kind:             string(result.Kind()),
		Balance:          utils.FormatWithPrecision(result.Balance, 2),
		BalanceFormatted: utils.FormatCurrency(result.Balance),
	}
	if result.Transaction != nil {
		txn := ToTransactionResponse(*result.Transaction, loc)
		res.Transaction = &txn
	}
	return res
}

// ToStatementResponse converts a domain.Statement
func ToStatementResponse(stmt *domain.Statement, loc *time.Location) StatementResponse {
	txns := make([]TransactionResponse, len(stmt.Transactions))
	for i, txn := range stmt.Transactions {
		txns[i] = ToTransactionResponse(txn, loc)
	}
	return StatementResponse{
		Balance:          utils.FormatWithPrecision(stmt.Balance, 2),
		BalanceFormatted: utils.FormatCurrency(stmt.Balance),
		GeneratedAt:      stmt.GeneratedAt.In(loc),
		Transactions:     txns,
	}
}

// BankingPage is the view model of the HTML banking page.
type BankingPage struct {
	Action    string
	Actions   []ActionOption
	Banner    *Banner
	Amount    string
	Statement *StatementResponse
}

// ActionOption is one entry of the action selector.
type ActionOption struct {
	Value    string
	Label    string
	Selected bool
}

// Banner is a success, error or info message shown above the form.
type Banner struct {
	Style   string
	Message string
}
