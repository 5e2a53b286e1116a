package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "numbers/internal/errors"
	"numbers/internal/models"
	"numbers/internal/pagination"
	"numbers/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	ledger services.LedgerServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledger services.LedgerServicer) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// CreateTransactionRequest represents the request payload for saving a transaction.
// Supplying the id of an existing transaction replaces it (keeping the id).
type CreateTransactionRequest struct {
	ID            *string `json:"id"`
	Date          *string `json:"date"`
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description" binding:"max=500"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Category      string  `json:"category" binding:"required,category"`
	Subcategory   string  `json:"subcategory" binding:"required"`
	DebitAccount  string  `json:"debit_account"`
	CreditAccount string  `json:"credit_account"`
}

// draft converts the request into a ledger draft.
func (r CreateTransactionRequest) draft() (models.TransactionDraft, error) {
	amount := decimal.NewFromFloat(r.Amount)
	category := models.Category(r.Category)
	subcategory := models.Subcategory(r.Subcategory)

	draft := models.TransactionDraft{
		ID:          r.ID,
		Title:       &r.Title,
		Amount:      &amount,
		Category:    &category,
		Subcategory: &subcategory,
	}
	if r.Description != "" {
		draft.Description = &r.Description
	}
	if r.Date != nil && *r.Date != "" {
		parsed, err := parseDate(*r.Date)
		if err != nil {
			return models.TransactionDraft{}, err
		}
		draft.Date = &parsed
	}
	if r.DebitAccount != "" {
		draft.DebitAccountTitle = &r.DebitAccount
	}
	if r.CreditAccount != "" {
		draft.CreditAccountTitle = &r.CreditAccount
	}
	return draft, nil
}

// CreateTransaction handles saving a transaction draft.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	draft, err := req.draft()
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.ledger.SaveTransaction(draft)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactions returns a page of transactions, newest first, optionally
// filtered by a lower date bound and an account title.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	var filter services.TransactionFilter
	if since := c.Query("since"); since != "" {
		parsed, err := parseDate(since)
		if err != nil {
			respondWithError(c, err)
			return
		}
		filter.Since = &parsed
	}
	if account := c.Query("account"); account != "" {
		filter.AccountTitle = &account
	}

	result, err := h.ledger.ListTransactionsPage(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID returns one transaction.
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	transaction, err := h.ledger.GetTransactionByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction removes a transaction. Deleting an unknown id reports
// deleted=false rather than an error.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	deleted, err := h.ledger.DeleteTransaction(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
