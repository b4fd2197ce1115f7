package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/internet_banking/internal/core/ports/services"
	"github.com/SscSPs/internet_banking/internal/dto"
	"github.com/SscSPs/internet_banking/internal/middleware"
	"github.com/SscSPs/internet_banking/internal/utils"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const bankingTemplate = "banking.tmpl"

const (
	actionWithdraw  = "withdraw"
	actionDeposit   = "deposit"
	actionStatement = "statement"
)

// actionLabels lists the selector entries in display order.
var actionLabels = []struct{ value, label string }{
	{actionWithdraw, "Withdraw"},
	{actionDeposit, "Deposit"},
	{actionStatement, "Statement"},
}

const noTransactionsMessage = "You have no registered transactions"

// loadTemplates parses the embedded page templates.
func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"actionLabel": actionLabel,
	}).ParseFS(templatesFS, "templates/*.tmpl"))
}

func actionLabel(action string) string {
	for _, a := range actionLabels {
		if a.value == action {
			return a.label
		}
	}
	return action
}

// bankingHandler serves the server-rendered banking form.
type bankingHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	location      *time.Location
}

func newBankingHandler(ls portssvc.LedgerSvcFacade, loc *time.Location) *bankingHandler {
	return &bankingHandler{
		ledgerService: ls,
		location:      loc,
	}
}

// registerBankingRoutes registers the HTML form routes. mutating wraps the POST routes.
func registerBankingRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, loc *time.Location, mutating ...gin.HandlerFunc) {
	h := newBankingHandler(ledgerService, loc)

	rg.GET("", h.showPage)

	forms := rg.Group("", mutating...)
	{
		forms.POST("/withdraw", h.submitWithdraw)
		forms.POST("/deposit", h.submitDeposit)
	}
}

func newPage(action string) dto.BankingPage {
	page := dto.BankingPage{Action: action}
	for _, a := range actionLabels {
		page.Actions = append(page.Actions, dto.ActionOption{
			Value:    a.value,
			Label:    a.label,
			Selected: a.value == action,
		})
	}
	return page
}

func normalizeAction(raw string) string {
	switch raw {
	case actionDeposit, actionStatement:
		return raw
	default:
		return actionWithdraw
	}
}

func (h *bankingHandler) showPage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := middleware.GetSessionIDFromContext(c)
	if !ok {
		logger.Error("Session ID not found in context")
		c.String(http.StatusInternalServerError, "Session unavailable")
		return
	}

	page := newPage(normalizeAction(c.Query("action")))

	if page.Action != actionStatement {
		if _, err := h.ledgerService.OpenSession(c.Request.Context(), sessionID); err != nil {
			logger.Error("Failed to open session", slog.String("error", err.Error()))
			page.Banner = &dto.Banner{Style: "error", Message: "Could not load your account. Please try again."}
			c.HTML(http.StatusInternalServerError, bankingTemplate, page)
			return
		}
		c.HTML(http.StatusOK, bankingTemplate, page)
		return
	}

	stmt, err := h.ledgerService.Statement(c.Request.Context(), sessionID)
	if err != nil {
		logger.Error("Failed to build statement", slog.String("error", err.Error()))
		page.Banner = &dto.Banner{Style: "error", Message: "Could not load your statement. Please try again."}
		c.HTML(http.StatusInternalServerError, bankingTemplate, page)
		return
	}

	res := dto.ToStatementResponse(stmt, h.location)
	page.Statement = &res
	if len(res.Transactions) == 0 {
		page.Banner = &dto.Banner{Style: "info", Message: noTransactionsMessage}
	}
	c.HTML(http.StatusOK, bankingTemplate, page)
}

func (h *bankingHandler) submitWithdraw(c *gin.Context) {
	h.submit(c, actionWithdraw, h.ledgerService.Withdraw)
}

func (h *bankingHandler) submitDeposit(c *gin.Context) {
	h.submit(c, actionDeposit, h.ledgerService.Deposit)
}

func (h *bankingHandler) submit(c *gin.Context, action string, operate ledgerOperation) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	page := newPage(action)

	sessionID, ok := middleware.GetSessionIDFromContext(c)
	if !ok {
		logger.Error("Session ID not found in context")
		c.String(http.StatusInternalServerError, "Session unavailable")
		return
	}

	var form dto.AmountForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Warn("Failed to bind amount form", slog.String("error", err.Error()))
	}
	page.Amount = form.Amount

	amount, err := utils.ParseAmount(form.Amount)
	if err != nil {
		logger.Warn("Rejected non-numeric amount", slog.String("amount", form.Amount), slog.String("error", err.Error()))
		page.Banner = &dto.Banner{Style: "error", Message: "Please enter a valid numeric amount."}
		c.HTML(http.StatusBadRequest, bankingTemplate, page)
		return
	}

	result := operate(c.Request.Context(), sessionID, amount)
	style := "error"
	if result.Success {
		style = "success"
		page.Amount = ""
	}
	page.Banner = &dto.Banner{Style: style, Message: result.Message}
	c.HTML(statusForResult(result), bankingTemplate, page)
}
