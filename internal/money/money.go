// Package money derives signed, display-ready amounts from the ledger's
// stored magnitudes. A transaction stores a non-negative amount; its sign
// only exists relative to one account's point of view: money leaves the
// debit account and enters the credit account.
package money

import (
	"github.com/shopspring/decimal"

	apperrors "numbers/internal/errors"
	"numbers/internal/models"
)

// SignedAmount returns the transaction's amount from the given account's
// point of view: negative when the account is the debit party, positive when
// it is the credit party. For a self-transfer both roles apply and the
// contributions cancel to zero. Asking about an unrelated account is a usage
// error, never a silent zero.
func SignedAmount(t *models.Transaction, accountID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	related := false
	if t.DebitAccountID != nil && *t.DebitAccountID == accountID {
		sum = sum.Sub(t.Amount)
		related = true
	}
	if t.CreditAccountID != nil && *t.CreditAccountID == accountID {
		sum = sum.Add(t.Amount)
		related = true
	}
	if !related {
		return decimal.Zero, apperrors.ErrUnrelatedAccount
	}
	return sum, nil
}

// Balance folds SignedAmount over every transaction that references the
// account in either role. Unrelated transactions are skipped rather than
// treated as errors, so a mixed listing can be folded directly.
func Balance(transactions []models.Transaction, accountID string) decimal.Decimal {
	sum := decimal.Zero
	for i := range transactions {
		signed, err := SignedAmount(&transactions[i], accountID)
		if err != nil {
			continue
		}
		sum = sum.Add(signed)
	}
	return sum
}

// Format renders a stored magnitude for display: two decimal places with the
// currency glyph prefixed and no sign.
func Format(amount decimal.Decimal, symbol string) string {
	return symbol + amount.Abs().StringFixed(2)
}

// FormatSigned renders a signed (credit/debit point-of-view) amount. A
// leading "+" is shown only for positive, credit-side values.
func FormatSigned(amount decimal.Decimal, symbol string) string {
	switch {
	case amount.IsNegative():
		return "-" + symbol + amount.Abs().StringFixed(2)
	case amount.IsPositive():
		return "+" + symbol + amount.StringFixed(2)
	default:
		return symbol + "0.00"
	}
}
