package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "numbers/internal/errors"
)

// BillPaymentStatus marks whether a credit card bill has been settled.
type BillPaymentStatus string

const (
	BillStatusDue  BillPaymentStatus = "due"
	BillStatusPaid BillPaymentStatus = "paid"
)

// Valid reports whether s is a known payment status.
func (s BillPaymentStatus) Valid() bool {
	return s == BillStatusDue || s == BillStatusPaid
}

// CreditCardBill is one statement cycle of a card. Title matches the payment
// method the bill belongs to.
type CreditCardBill struct {
	Base
	StartDate     time.Time         `gorm:"not null" json:"start_date"`
	EndDate       time.Time         `gorm:"not null" json:"end_date"`
	DueDate       time.Time         `gorm:"not null;index" json:"due_date"`
	Title         string            `gorm:"not null" json:"title"`
	Amount        decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentStatus BillPaymentStatus `gorm:"not null;default:'due'" json:"payment_status"`
}

// CreditCardBillDraft mirrors TransactionDraft for bills: all fields
// optional, converted through Bill() before any write.
type CreditCardBillDraft struct {
	ID            *string            `json:"id,omitempty"`
	StartDate     *time.Time         `json:"start_date,omitempty"`
	EndDate       *time.Time         `json:"end_date,omitempty"`
	DueDate       *time.Time         `json:"due_date,omitempty"`
	Title         *string            `json:"title,omitempty"`
	Amount        *decimal.Decimal   `json:"amount,omitempty"`
	PaymentStatus *BillPaymentStatus `json:"payment_status,omitempty"`
}

// Validate checks required fields and the statement-cycle date ordering
// (start <= end <= due). The ordering was historically unenforced; rejecting
// inverted cycles here is deliberate.
func (d CreditCardBillDraft) Validate() error {
	if d.Title == nil || strings.TrimSpace(*d.Title) == "" {
		return apperrors.WithMessage(apperrors.ErrValidation, "title is required")
	}
	if d.StartDate == nil || d.EndDate == nil || d.DueDate == nil {
		return apperrors.WithMessage(apperrors.ErrValidation, "start, end and due dates are required")
	}
	if d.EndDate.Before(*d.StartDate) {
		return apperrors.WithMessage(apperrors.ErrValidation, "end date precedes start date")
	}
	if d.DueDate.Before(*d.EndDate) {
		return apperrors.WithMessage(apperrors.ErrValidation, "due date precedes end date")
	}
	if d.Amount == nil {
		return apperrors.WithMessage(apperrors.ErrValidation, "amount is required")
	}
	if !d.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrValidation, "amount must be greater than zero")
	}
	if d.PaymentStatus != nil && !d.PaymentStatus.Valid() {
		return apperrors.WithMessage(apperrors.ErrValidation, "unknown payment status "+string(*d.PaymentStatus))
	}
	return nil
}

// Bill converts the draft into an entity. Payment status defaults to due.
func (d CreditCardBillDraft) Bill() (*CreditCardBill, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	b := &CreditCardBill{
		StartDate:     *d.StartDate,
		EndDate:       *d.EndDate,
		DueDate:       *d.DueDate,
		Title:         strings.TrimSpace(*d.Title),
		Amount:        *d.Amount,
		PaymentStatus: BillStatusDue,
	}
	if d.ID != nil {
		b.ID = *d.ID
	}
	if d.PaymentStatus != nil {
		b.PaymentStatus = *d.PaymentStatus
	}
	return b, nil
}

// DraftFromBill rebuilds an editable draft from a persisted bill.
func DraftFromBill(b *CreditCardBill) CreditCardBillDraft {
	return CreditCardBillDraft{
		ID:            &b.ID,
		StartDate:     &b.StartDate,
		EndDate:       &b.EndDate,
		DueDate:       &b.DueDate,
		Title:         &b.Title,
		Amount:        &b.Amount,
		PaymentStatus: &b.PaymentStatus,
	}
}
