package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"numbers/internal/config"
	"numbers/internal/models"
	"numbers/internal/money"
	"numbers/internal/services"
)

// AccountHandler serves payment-method listings and the widget-facing
// outstanding-balance query.
type AccountHandler struct {
	ledger  services.LedgerServicer
	summary services.SummaryServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(ledger services.LedgerServicer, summary services.SummaryServicer) *AccountHandler {
	return &AccountHandler{ledger: ledger, summary: summary}
}

// AccountResponse is one payment method with its signed balance and
// transaction list attached.
type AccountResponse struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Balance        decimal.Decimal      `json:"balance"`
	BalanceDisplay string               `json:"balance_display"`
	Transactions   []models.Transaction `json:"transactions"`
}

// ListAccounts returns every payment method alphabetically, each with its
// transactions and the signed balance the pending-dues widget shows.
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.ledger.ListAccounts()
	if err != nil {
		respondWithError(c, err)
		return
	}

	symbol := config.Get().CurrencySymbol
	resp := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		transactions := accounts[i].Transactions()
		balance := money.Balance(transactions, accounts[i].ID)
		resp = append(resp, AccountResponse{
			ID:             accounts[i].ID,
			Title:          accounts[i].Title,
			Balance:        balance,
			BalanceDisplay: money.FormatSigned(balance, symbol),
			Transactions:   transactions,
		})
	}

	c.JSON(http.StatusOK, gin.H{"accounts": resp})
}

// GetOutstanding returns the amount currently owed on one account: its due
// bill plus transaction activity since the given date (default: all time).
func (h *AccountHandler) GetOutstanding(c *gin.Context) {
	title := c.Param("title")

	since := time.Time{}
	if s := c.Query("since"); s != "" {
		parsed, err := parseDate(s)
		if err != nil {
			respondWithError(c, err)
			return
		}
		since = parsed
	}

	total, err := h.summary.TotalOutstanding(title, since)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account":     title,
		"outstanding": total,
		"display":     money.Format(total, config.Get().CurrencySymbol),
	})
}
