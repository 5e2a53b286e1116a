package services

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "numbers/internal/errors"
	"numbers/internal/models"
)

// summaryService computes widget and dashboard aggregates from bulk ledger
// listings. An earlier revision of the dues view issued one query per
// account; this implementation fetches once and folds in memory.
type summaryService struct {
	ledger LedgerServicer
	bills  BillServicer
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(ledger LedgerServicer, bills BillServicer) SummaryServicer {
	return &summaryService{ledger: ledger, bills: bills}
}

// TotalOutstanding computes the amount currently owed on the account: the
// latest bill's amount when that bill is still due, plus the amount of every
// transaction referencing the account since the given date. Bills and
// transactions both add positively here; this is the "how much is owed on
// this card" convention, not the signed per-account view.
func (s *summaryService) TotalOutstanding(accountTitle string, since time.Time) (decimal.Decimal, error) {
	total := decimal.Zero

	bills, err := s.bills.ListBills()
	if err != nil {
		return decimal.Zero, err
	}
	for i := range bills {
		if bills[i].Title != accountTitle {
			continue
		}
		// ListBills is ordered by due date descending, so the first match
		// is the account's latest statement cycle.
		if bills[i].PaymentStatus == models.BillStatusDue {
			total = total.Add(bills[i].Amount)
		}
		break
	}

	transactions, err := s.ledger.ListTransactions(TransactionFilter{Since: &since, AccountTitle: &accountTitle})
	if err != nil {
		return decimal.Zero, err
	}
	for i := range transactions {
		total = total.Add(transactions[i].Amount)
	}
	return total, nil
}

// PeriodSummary folds every transaction dated on or after the period's
// start boundary into a net outflow: debit-side amounts add, credit-side
// amounts subtract, so a self-transfer contributes nothing.
func (s *summaryService) PeriodSummary(period SummaryPeriod, now time.Time) (decimal.Decimal, error) {
	start, err := periodStart(period, now)
	if err != nil {
		return decimal.Zero, err
	}

	transactions, err := s.ledger.ListTransactions(TransactionFilter{Since: &start})
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i := range transactions {
		t := &transactions[i]
		if t.DebitAccountID != nil {
			total = total.Add(t.Amount)
		}
		if t.CreditAccountID != nil {
			total = total.Sub(t.Amount)
		}
	}
	return total, nil
}

// periodStart returns the period's lower boundary in now's location:
// local midnight, the start of the week (Monday), or the first of the month.
func periodStart(period SummaryPeriod, now time.Time) (time.Time, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case PeriodToday:
		return midnight, nil
	case PeriodWeekly:
		offset := (int(midnight.Weekday()) + 6) % 7 // days since Monday
		return midnight.AddDate(0, 0, -offset), nil
	case PeriodMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	default:
		return time.Time{}, apperrors.WithMessage(apperrors.ErrValidation, "unknown summary period "+string(period))
	}
}
