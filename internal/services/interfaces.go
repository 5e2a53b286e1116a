package services

import (
	"io"
	"time"

	"github.com/shopspring/decimal"

	"numbers/internal/models"
	"numbers/internal/pagination"
)

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	// Since keeps only transactions dated on or after this instant.
	Since *time.Time
	// AccountTitle keeps only transactions where the named account is the
	// debit or the credit party.
	AccountTitle *string
}

// LedgerServicer is the sole writer and reader of persisted transaction and
// payment-method state.
type LedgerServicer interface {
	// SaveTransaction validates the draft and persists it, resolving each
	// named account by exact title and creating unseen ones. Saving a draft
	// that carries an id deletes the old row and re-creates it (the
	// historical update semantic); the supplied id is kept, a draft without
	// one gets a fresh id.
	SaveTransaction(draft models.TransactionDraft) (*models.Transaction, error)
	// SaveBatch persists many drafts in one atomic write. Account titles
	// first seen inside the batch resolve to a single new account.
	SaveBatch(drafts []models.TransactionDraft) ([]models.Transaction, error)
	// DeleteTransaction removes a transaction. The boolean reports whether a
	// row matched; deleting an unknown id is a no-op, not an error.
	DeleteTransaction(id string) (bool, error)
	GetTransactionByID(id string) (*models.Transaction, error)
	// ListTransactions returns transactions newest date first.
	ListTransactions(filter TransactionFilter) ([]models.Transaction, error)
	// ListTransactionsPage is the paginated variant used by the UI listing.
	ListTransactionsPage(filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	// ListAccounts returns every payment method alphabetically by title with
	// its transactions attached.
	ListAccounts() ([]models.PaymentMethod, error)
}

// BillServicer manages credit card bills.
type BillServicer interface {
	// SaveBill creates the bill, or replaces every field of an existing one
	// when the draft carries its id.
	SaveBill(draft models.CreditCardBillDraft) (*models.CreditCardBill, error)
	// SaveBillBatch persists many bill drafts in one atomic write.
	SaveBillBatch(drafts []models.CreditCardBillDraft) ([]models.CreditCardBill, error)
	GetBillByID(id string) (*models.CreditCardBill, error)
	// ListBills returns bills ordered by due date, most recent first.
	ListBills() ([]models.CreditCardBill, error)
	// DeleteBill removes a bill; the boolean reports whether a row matched.
	DeleteBill(id string) (bool, error)
}

// ImportResult summarizes one statement import.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportedAny reports whether at least one row parsed and was persisted.
func (r *ImportResult) ImportedAny() bool { return r.Imported > 0 }

// ImportServicer turns statement files into batches of ledger writes.
type ImportServicer interface {
	ImportTransactions(r io.Reader) (*ImportResult, error)
	ImportBills(r io.Reader) (*ImportResult, error)
	// File variants open the path themselves; open/read failures surface as
	// import-source errors, distinct from row-level skips.
	ImportTransactionFile(path string) (*ImportResult, error)
	ImportBillFile(path string) (*ImportResult, error)
}

// SummaryPeriod selects the boundary for a period summary.
type SummaryPeriod string

const (
	PeriodToday   SummaryPeriod = "today"
	PeriodWeekly  SummaryPeriod = "weekly"
	PeriodMonthly SummaryPeriod = "monthly"
)

// Valid reports whether p is a known period.
func (p SummaryPeriod) Valid() bool {
	return p == PeriodToday || p == PeriodWeekly || p == PeriodMonthly
}

// SummaryServicer computes the read-side aggregates used by widgets and
// dashboard views. Pure projections; never mutates ledger state.
type SummaryServicer interface {
	// TotalOutstanding is the amount currently owed on an account: the
	// latest bill's amount when that bill is due, plus every transaction
	// referencing the account since the given date (positive addition).
	TotalOutstanding(accountTitle string, since time.Time) (decimal.Decimal, error)
	// PeriodSummary is the net outflow for the period containing now: each
	// transaction adds its amount when a debit account is set and subtracts
	// it when a credit account is set.
	PeriodSummary(period SummaryPeriod, now time.Time) (decimal.Decimal, error)
}
