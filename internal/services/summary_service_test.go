package services

import (
	"testing"
	"time"

	"numbers/internal/events"
	"numbers/internal/models"
	"numbers/internal/testutil"
)

func TestTotalOutstanding(t *testing.T) {
	t.Run("due_bill_plus_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(NewLedgerService(db, events.Noop{}), NewBillService(db, events.Noop{}))

		card := testutil.CreateTestAccountWithTitle(t, db, "Amex")
		testutil.CreateTestBill(t, db, "Amex", "650", models.BillStatusDue)

		since := time.Now().AddDate(0, 0, -7)
		testutil.CreateTestTransactionAt(t, db, time.Now().AddDate(0, 0, -2), "100", card.ID, "")
		testutil.CreateTestTransactionAt(t, db, time.Now().AddDate(0, 0, -1), "50", card.ID, "")

		total, err := svc.TotalOutstanding("Amex", since)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, total, "800")
	})

	t.Run("paid_bill_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(NewLedgerService(db, events.Noop{}), NewBillService(db, events.Noop{}))

		card := testutil.CreateTestAccountWithTitle(t, db, "Amex")
		testutil.CreateTestBill(t, db, "Amex", "650", models.BillStatusPaid)

		since := time.Now().AddDate(0, 0, -7)
		testutil.CreateTestTransactionAt(t, db, time.Now().AddDate(0, 0, -1), "150", card.ID, "")

		total, err := svc.TotalOutstanding("Amex", since)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, total, "150")
	})

	t.Run("only_latest_cycle_counts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(NewLedgerService(db, events.Noop{}), NewBillService(db, events.Noop{}))

		testutil.CreateTestBillWithCycle(t, db, "Amex", "650", models.BillStatusDue,
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestBillWithCycle(t, db, "Amex", "900", models.BillStatusDue,
			time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))

		total, err := svc.TotalOutstanding("Amex", time.Now())
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, total, "900")
	})

	t.Run("other_accounts_ignored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(NewLedgerService(db, events.Noop{}), NewBillService(db, events.Noop{}))

		testutil.CreateTestBill(t, db, "HDFC", "5000", models.BillStatusDue)
		other := testutil.CreateTestAccountWithTitle(t, db, "Savings")
		testutil.CreateTestTransaction(t, db, "300", other.ID, "")

		total, err := svc.TotalOutstanding("Amex", time.Now().AddDate(0, 0, -7))
		testutil.AssertNoError(t, err)
		if !total.IsZero() {
			t.Errorf("expected zero outstanding, got %s", total)
		}
	})

	t.Run("transactions_before_since_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(NewLedgerService(db, events.Noop{}), NewBillService(db, events.Noop{}))

		card := testutil.CreateTestAccountWithTitle(t, db, "Amex")
		testutil.CreateTestTransactionAt(t, db, time.Now().AddDate(0, 0, -30), "1000", card.ID, "")
		testutil.CreateTestTransactionAt(t, db, time.Now(), "150", card.ID, "")

		total, err := svc.TotalOutstanding("Amex", time.Now().AddDate(0, 0, -7))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, total, "150")
	})
}

func TestPeriodSummary(t *testing.T) {
	// Wednesday noon; the weekly boundary is Monday 00:00.
	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

	t.Run("today", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(NewLedgerService(db, events.Noop{}), NewBillService(db, events.Noop{}))
		account := testutil.CreateTestAccount(t, db)

		testutil.CreateTestTransactionAt(t, db, now.Add(-2*time.Hour), "120", account.ID, "")
		testutil.CreateTestTransactionAt(t, db, now.AddDate(0, 0, -1), "999", account.ID, "")

		total, err := svc.PeriodSummary(PeriodToday, now)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, total, "120")
	})

	t.Run("weekly_starts_monday", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(NewLedgerService(db, events.Noop{}), NewBillService(db, events.Noop{}))
		account := testutil.CreateTestAccount(t, db)

		// Tuesday, inside the week.
		testutil.CreateTestTransactionAt(t, db, time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC), "200", account.ID, "")
		// Previous Sunday, outside.
		testutil.CreateTestTransactionAt(t, db, time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), "500", account.ID, "")

		total, err := svc.PeriodSummary(PeriodWeekly, now)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, total, "200")
	})

	t.Run("monthly_starts_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(NewLedgerService(db, events.Noop{}), NewBillService(db, events.Noop{}))
		account := testutil.CreateTestAccount(t, db)

		testutil.CreateTestTransactionAt(t, db, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "300", account.ID, "")
		testutil.CreateTestTransactionAt(t, db, time.Date(2026, 2, 28, 23, 59, 0, 0, time.UTC), "400", account.ID, "")

		total, err := svc.PeriodSummary(PeriodMonthly, now)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, total, "300")
	})

	t.Run("credit_side_subtracts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(NewLedgerService(db, events.Noop{}), NewBillService(db, events.Noop{}))
		debit := testutil.CreateTestAccountWithTitle(t, db, "Wallet")
		credit := testutil.CreateTestAccountWithTitle(t, db, "Savings")

		testutil.CreateTestTransactionAt(t, db, now.Add(-time.Hour), "500", debit.ID, "")
		testutil.CreateTestTransactionAt(t, db, now.Add(-time.Hour), "200", "", credit.ID)
		// Self-transfer, nets to zero.
		testutil.CreateTestTransactionAt(t, db, now.Add(-time.Hour), "1000", debit.ID, credit.ID)

		total, err := svc.PeriodSummary(PeriodToday, now)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, total, "300")
	})

	t.Run("unknown_period_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(NewLedgerService(db, events.Noop{}), NewBillService(db, events.Noop{}))

		_, err := svc.PeriodSummary(SummaryPeriod("yearly"), now)
		testutil.AssertAppError(t, err, "VALIDATION_FAILED")
	})
}
