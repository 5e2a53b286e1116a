package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "numbers/internal/errors"
	"numbers/internal/models"
	"numbers/internal/services"
)

// BillHandler handles credit-card-bill requests.
type BillHandler struct {
	bills services.BillServicer
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(bills services.BillServicer) *BillHandler {
	return &BillHandler{bills: bills}
}

// SaveBillRequest represents the request payload for creating or replacing a
// bill. Supplying an existing id replaces every field of that bill,
// including payment status.
type SaveBillRequest struct {
	ID            *string `json:"id"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       string  `json:"end_date" binding:"required"`
	DueDate       string  `json:"due_date" binding:"required"`
	Title         string  `json:"title" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentStatus string  `json:"payment_status" binding:"omitempty,payment_status"`
}

func (r SaveBillRequest) draft() (models.CreditCardBillDraft, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return models.CreditCardBillDraft{}, err
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return models.CreditCardBillDraft{}, err
	}
	due, err := parseDate(r.DueDate)
	if err != nil {
		return models.CreditCardBillDraft{}, err
	}

	amount := decimal.NewFromFloat(r.Amount)
	draft := models.CreditCardBillDraft{
		ID:        r.ID,
		StartDate: &start,
		EndDate:   &end,
		DueDate:   &due,
		Title:     &r.Title,
		Amount:    &amount,
	}
	if r.PaymentStatus != "" {
		status := models.BillPaymentStatus(r.PaymentStatus)
		draft.PaymentStatus = &status
	}
	return draft, nil
}

// SaveBill handles creating or replacing a bill.
func (h *BillHandler) SaveBill(c *gin.Context) {
	var req SaveBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	draft, err := req.draft()
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.bills.SaveBill(draft)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bill": bill})
}

// ListBills returns every bill, most recent due date first.
func (h *BillHandler) ListBills(c *gin.Context) {
	bills, err := h.bills.ListBills()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

// GetBillByID returns one bill.
func (h *BillHandler) GetBillByID(c *gin.Context) {
	bill, err := h.bills.GetBillByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// DeleteBill removes a bill. Deleting an unknown id reports deleted=false.
func (h *BillHandler) DeleteBill(c *gin.Context) {
	deleted, err := h.bills.DeleteBill(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
