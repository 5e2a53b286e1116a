// Package importer parses bank and card statement CSV exports into ledger
// drafts. Parsing is deliberately lenient: a malformed row is skipped, never
// fatal, because real exports are messy. Only the whole-file read can fail.
package importer

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"numbers/internal/logger"
	"numbers/internal/models"
)

// DateFormat is the day-first date layout used by statement exports.
const DateFormat = "02/01/2006"

// Transaction rows carry their fields in reverse reading order: the date is
// the last real field and the description, if any, is whatever is left at
// the front. Positions below are offsets from the end of the row.
const (
	txFieldDate = 1 + iota
	txFieldTitle
	txFieldAmount
	txFieldCreditAccount
	txFieldDebitAccount
	txFieldSubcategory
	txFieldCategory

	txMinFields = txFieldCategory
)

// Bill rows are fixed order: startDate, endDate, dueDate, title, amount and
// an optional paid-amount column.
const (
	billColStart = iota
	billColEnd
	billColDue
	billColTitle
	billColAmount
	billColPaid

	billMinFields = billColAmount + 1
)

// ParseTransactions reads a transaction statement and returns one draft per
// usable row plus the number of rows skipped. Skips cover unparseable dates,
// non-numeric amounts, and drafts failing ledger validation.
func ParseTransactions(r io.Reader) ([]models.TransactionDraft, int, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, 0, err
	}

	var drafts []models.TransactionDraft
	skipped := 0
	for i, rec := range records {
		draft, ok := parseTransactionRow(rec)
		if !ok {
			logger.Get().Debugw("skipping statement row", "row", i+1)
			skipped++
			continue
		}
		drafts = append(drafts, draft)
	}
	return drafts, skipped, nil
}

// ParseBills reads a credit-card-bill statement and returns one draft per
// usable row plus the number of rows skipped.
func ParseBills(r io.Reader) ([]models.CreditCardBillDraft, int, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, 0, err
	}

	var drafts []models.CreditCardBillDraft
	skipped := 0
	for i, rec := range records {
		draft, ok := parseBillRow(rec)
		if !ok {
			logger.Get().Debugw("skipping bill row", "row", i+1)
			skipped++
			continue
		}
		drafts = append(drafts, draft)
	}
	return drafts, skipped, nil
}

// readRecords reads every comma-separated row, tolerating ragged field
// counts and stray quotes. Only reader-level failures propagate.
func readRecords(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var records [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				// Row-level malformation, same leniency as a failed parse.
				continue
			}
			return nil, err
		}
		records = append(records, rec)
	}
}

func parseTransactionRow(fields []string) (models.TransactionDraft, bool) {
	// Exports terminate each row with a separator, leaving a trailing blank
	// field before the line break.
	if n := len(fields); n > 0 && strings.TrimSpace(fields[n-1]) == "" {
		fields = fields[:n-1]
	}
	if len(fields) < txMinFields {
		return models.TransactionDraft{}, false
	}

	n := len(fields)
	date, err := time.Parse(DateFormat, strings.TrimSpace(fields[n-txFieldDate]))
	if err != nil {
		return models.TransactionDraft{}, false
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(fields[n-txFieldAmount]))
	if err != nil {
		return models.TransactionDraft{}, false
	}

	title := strings.TrimSpace(fields[n-txFieldTitle])
	subcategory := models.Subcategory(strings.TrimSpace(fields[n-txFieldSubcategory]))
	category, known := MapCategory(fields[n-txFieldCategory])
	if !known {
		logger.Get().Infow("unrecognized category, defaulting to want",
			"label", strings.TrimSpace(fields[n-txFieldCategory]), "title", title)
	}

	draft := models.TransactionDraft{
		Date:        &date,
		Title:       &title,
		Amount:      &amount,
		Category:    &category,
		Subcategory: &subcategory,
	}
	if s := strings.TrimSpace(fields[n-txFieldDebitAccount]); s != "" {
		draft.DebitAccountTitle = &s
	}
	if s := strings.TrimSpace(fields[n-txFieldCreditAccount]); s != "" {
		draft.CreditAccountTitle = &s
	}
	// Any leading fields are the description; commas inside it were split by
	// the reader, so join them back.
	if n > txMinFields {
		desc := strings.TrimSpace(strings.Join(fields[:n-txMinFields], ","))
		if desc != "" {
			draft.Description = &desc
		}
	}

	if err := draft.Validate(); err != nil {
		return models.TransactionDraft{}, false
	}
	return draft, true
}

func parseBillRow(fields []string) (models.CreditCardBillDraft, bool) {
	if n := len(fields); n > 0 && strings.TrimSpace(fields[n-1]) == "" {
		fields = fields[:n-1]
	}
	if len(fields) < billMinFields {
		return models.CreditCardBillDraft{}, false
	}

	start, err := time.Parse(DateFormat, strings.TrimSpace(fields[billColStart]))
	if err != nil {
		return models.CreditCardBillDraft{}, false
	}
	end, err := time.Parse(DateFormat, strings.TrimSpace(fields[billColEnd]))
	if err != nil {
		return models.CreditCardBillDraft{}, false
	}
	due, err := time.Parse(DateFormat, strings.TrimSpace(fields[billColDue]))
	if err != nil {
		return models.CreditCardBillDraft{}, false
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(fields[billColAmount]))
	if err != nil {
		return models.CreditCardBillDraft{}, false
	}

	title := strings.TrimSpace(fields[billColTitle])
	status := models.BillStatusDue
	if len(fields) > billColPaid {
		if paid, err := decimal.NewFromString(strings.TrimSpace(fields[billColPaid])); err == nil && paid.Equal(amount) {
			status = models.BillStatusPaid
		}
	}

	draft := models.CreditCardBillDraft{
		StartDate:     &start,
		EndDate:       &end,
		DueDate:       &due,
		Title:         &title,
		Amount:        &amount,
		PaymentStatus: &status,
	}
	if err := draft.Validate(); err != nil {
		return models.CreditCardBillDraft{}, false
	}
	return draft, true
}
