package services

import (
	"context"
	"io"
	"os"

	apperrors "numbers/internal/errors"
	"numbers/internal/events"
	"numbers/internal/importer"
	"numbers/internal/logger"
)

// importService converts statement files into atomic ledger batch writes.
type importService struct {
	ledger    LedgerServicer
	bills     BillServicer
	publisher events.Publisher
}

// NewImportService creates a new ImportServicer.
func NewImportService(ledger LedgerServicer, bills BillServicer, publisher events.Publisher) ImportServicer {
	return &importService{ledger: ledger, bills: bills, publisher: publisher}
}

// ImportTransactions parses the statement and submits every usable row as
// one batch. Malformed rows were already skipped by the parser; a failure
// here means the source could not be read or the batch write failed, in
// which case nothing was persisted.
func (s *importService) ImportTransactions(r io.Reader) (*ImportResult, error) {
	drafts, skipped, err := importer.ParseTransactions(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImportSource, err)
	}

	if len(drafts) > 0 {
		if _, err := s.ledger.SaveBatch(drafts); err != nil {
			return nil, err
		}
	}

	result := &ImportResult{Imported: len(drafts), Skipped: skipped}
	s.completed("transactions", result)
	return result, nil
}

// ImportBills parses a bill statement and submits it as one batch.
func (s *importService) ImportBills(r io.Reader) (*ImportResult, error) {
	drafts, skipped, err := importer.ParseBills(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImportSource, err)
	}

	if len(drafts) > 0 {
		if _, err := s.bills.SaveBillBatch(drafts); err != nil {
			return nil, err
		}
	}

	result := &ImportResult{Imported: len(drafts), Skipped: skipped}
	s.completed("bills", result)
	return result, nil
}

// ImportTransactionFile opens path and imports it. Open failures are
// import-source errors, distinct from row-level skips.
func (s *importService) ImportTransactionFile(path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImportSource, err)
	}
	defer f.Close()
	return s.ImportTransactions(f)
}

// ImportBillFile opens path and imports it as a bill statement.
func (s *importService) ImportBillFile(path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImportSource, err)
	}
	defer f.Close()
	return s.ImportBills(f)
}

func (s *importService) completed(kind string, result *ImportResult) {
	event := events.Event{
		Name: events.ImportCompleted,
		Detail: map[string]any{
			"kind":     kind,
			"imported": result.Imported,
			"skipped":  result.Skipped,
		},
	}
	if err := s.publisher.Publish(context.Background(), event); err != nil {
		logger.Get().Warnw("event publish failed", "event", event.Name, "error", err)
	}
}
