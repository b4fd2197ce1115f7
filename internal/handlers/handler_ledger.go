package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/internet_banking/internal/apperrors"
	"github.com/SscSPs/internet_banking/internal/core/domain"
	portssvc "github.com/SscSPs/internet_banking/internal/core/ports/services"
	"github.com/SscSPs/internet_banking/internal/dto"
	"github.com/SscSPs/internet_banking/internal/middleware"
	"github.com/SscSPs/internet_banking/internal/utils"
	"github.com/SscSPs/internet_banking/internal/utils/pagination"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ledgerOperation func(ctx context.Context, sessionID string, amount decimal.Decimal) *domain.OperationResult

// statusForResult maps an operation outcome to an HTTP status.
func statusForResult(result *domain.OperationResult) int {
	switch {
	case result.Success:
		return http.StatusOK
	case result.Kind() == apperrors.KindInternalFault:
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

// ledgerHandler handles the JSON ledger API.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	location      *time.Location
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade, loc *time.Location) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
		location:      loc,
	}
}

// registerLedgerRoutes registers the JSON ledger routes. mutating wraps the POST routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, loc *time.Location, mutating ...gin.HandlerFunc) {
	h := newLedgerHandler(ledgerService, loc)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/statement", h.getStatement)

		writes := ledger.Group("", mutating...)
		writes.POST("/deposits", h.deposit)
		writes.POST("/withdrawals", h.withdraw)
	}
}

// deposit godoc
// @Summary Deposit into the session's account
// @Description Adds the amount to the balance. Amounts must be positive and at most R$ 2000.00.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   deposit body dto.AmountRequest true "Amount to deposit"
// @Success 200 {object} dto.OperationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} dto.OperationResponse "Deposit rejected"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} dto.OperationResponse "Internal fault"
// @Router /ledger/deposits [post]
func (h *ledgerHandler) deposit(c *gin.Context) {
	h.apply(c, "deposit", h.ledgerService.Deposit)
}

// withdraw godoc
// @Summary Withdraw from the session's account
// @Description Removes the amount from the balance. At most 3 withdrawals per day of at most R$ 500.00 each.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   withdrawal body dto.AmountRequest true "Amount to withdraw"
// @Success 200 {object} dto.OperationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} dto.OperationResponse "Withdrawal rejected"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} dto.OperationResponse "Internal fault"
// @Router /ledger/withdrawals [post]
func (h *ledgerHandler) withdraw(c *gin.Context) {
	h.apply(c, "withdrawal", h.ledgerService.Withdraw)
}

func (h *ledgerHandler) apply(c *gin.Context, name string, operate ledgerOperation) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sessionID, ok := middleware.GetSessionIDFromContext(c)
	if !ok {
		logger.Error("Session ID not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session unavailable"})
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for "+name, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	amount, err := utils.ParseAmount(req.Amount.String())
	if err != nil {
		logger.Warn("Rejected "+name+" amount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount: must be a plain decimal number"})
		return
	}

	logger.Info("Received "+name+" request", slog.String("amount", amount.String()))

	result := operate(c.Request.Context(), sessionID, amount)
	c.JSON(statusForResult(result), dto.ToOperationResponse(result, h.location))
}

// getStatement godoc
// @Summary Get the session's statement
// @Description Returns the balance and the transactions in the order performed, with raw and formatted values.
// @Tags ledger
// @Produce  json
// @Param   limit query int false "Page size (1-100); omit for every transaction"
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid query or pagination token"
// @Failure 500 {object} map[string]string "Failed to build statement"
// @Router /ledger/statement [get]
func (h *ledgerHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sessionID, ok := middleware.GetSessionIDFromContext(c)
	if !ok {
		logger.Error("Session ID not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session unavailable"})
		return
	}

	var query dto.StatementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid statement query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	stmt, err := h.ledgerService.Statement(c.Request.Context(), sessionID)
	if err != nil {
		logger.Error("Failed to get statement from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build statement"})
		return
	}

	res := dto.ToStatementResponse(stmt, h.location)
	start, end, next, err := pagination.Window(len(res.Transactions), query.Limit, query.NextToken, func(i int) string {
		return res.Transactions[i].TransactionID
	})
	if err != nil {
		logger.Warn("Rejected pagination token", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination token"})
		return
	}
	res.Transactions = res.Transactions[start:end]
	res.NextToken = next

	c.JSON(http.StatusOK, res)
}
