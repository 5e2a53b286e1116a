package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"numbers/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Ptr returns a pointer to v, for filling draft fields inline.
func Ptr[T any](v T) *T {
	return &v
}

// CreateTestAccount creates a payment method with a unique title.
func CreateTestAccount(t *testing.T, db *gorm.DB) *models.PaymentMethod {
	t.Helper()
	return CreateTestAccountWithTitle(t, db, fmt.Sprintf("Test Account %d", nextID()))
}

// CreateTestAccountWithTitle creates a payment method with the given title.
func CreateTestAccountWithTitle(t *testing.T, db *gorm.DB, title string) *models.PaymentMethod {
	t.Helper()

	account := &models.PaymentMethod{Title: title}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestTransaction creates a transaction dated now with the given amount
// and account roles. Either account id may be empty.
func CreateTestTransaction(t *testing.T, db *gorm.DB, amount string, debitAccountID, creditAccountID string) *models.Transaction {
	t.Helper()
	return CreateTestTransactionAt(t, db, time.Now(), amount, debitAccountID, creditAccountID)
}

// CreateTestTransactionAt creates a transaction with an explicit date.
func CreateTestTransactionAt(t *testing.T, db *gorm.DB, date time.Time, amount string, debitAccountID, creditAccountID string) *models.Transaction {
	t.Helper()

	value, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("invalid fixture amount %q: %v", amount, err)
	}

	tx := &models.Transaction{
		Date:        date,
		Title:       fmt.Sprintf("Test Transaction %d", nextID()),
		Amount:      value,
		Category:    models.CategoryWant,
		Subcategory: models.SubcategoryOthers,
	}
	if debitAccountID != "" {
		tx.DebitAccountID = &debitAccountID
	}
	if creditAccountID != "" {
		tx.CreditAccountID = &creditAccountID
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// TransactionDraft builds a valid draft debiting the given account title.
func TransactionDraft(title, amount, debitAccountTitle string) models.TransactionDraft {
	value := decimal.RequireFromString(amount)
	return models.TransactionDraft{
		Title:             Ptr(title),
		Amount:            Ptr(value),
		Category:          Ptr(models.CategoryWant),
		Subcategory:       Ptr(models.SubcategoryOthers),
		DebitAccountTitle: Ptr(debitAccountTitle),
	}
}

// CreateTestBill creates a bill with a one-month statement cycle ending today
// and due in a week.
func CreateTestBill(t *testing.T, db *gorm.DB, title, amount string, status models.BillPaymentStatus) *models.CreditCardBill {
	t.Helper()

	end := time.Now().Truncate(24 * time.Hour)
	return CreateTestBillWithCycle(t, db, title, amount, status, end.AddDate(0, -1, 0), end, end.AddDate(0, 0, 7))
}

// CreateTestBillWithCycle creates a bill with explicit cycle dates.
func CreateTestBillWithCycle(t *testing.T, db *gorm.DB, title, amount string, status models.BillPaymentStatus, start, end, due time.Time) *models.CreditCardBill {
	t.Helper()

	value, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("invalid fixture amount %q: %v", amount, err)
	}

	bill := &models.CreditCardBill{
		StartDate:     start,
		EndDate:       end,
		DueDate:       due,
		Title:         title,
		Amount:        value,
		PaymentStatus: status,
	}
	if err := db.Create(bill).Error; err != nil {
		t.Fatalf("failed to create test bill: %v", err)
	}
	return bill
}
