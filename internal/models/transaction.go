package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "numbers/internal/errors"
)

// Category is the coarse spending category of a transaction.
type Category string

const (
	CategoryNeed        Category = "need"
	CategoryWant        Category = "want"
	CategoryCulture     Category = "culture"
	CategoryBillPayment Category = "billPayment"
	CategoryUnplanned   Category = "unplanned"
)

// Categories lists every valid category value.
var Categories = []Category{CategoryNeed, CategoryWant, CategoryCulture, CategoryBillPayment, CategoryUnplanned}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryNeed, CategoryWant, CategoryCulture, CategoryBillPayment, CategoryUnplanned:
		return true
	}
	return false
}

// Subcategory is the finer-grained spending label. Imported statements carry
// these as free text, so the set below is the known vocabulary rather than a
// closed enum; unknown values are stored as-is.
type Subcategory string

const (
	SubcategoryBike          Subcategory = "bike"
	SubcategoryCar           Subcategory = "car"
	SubcategoryClothing      Subcategory = "clothing"
	SubcategoryEducation     Subcategory = "education"
	SubcategoryEntertainment Subcategory = "entertainment"
	SubcategoryFoodAndDrinks Subcategory = "Food & Drinks"
	SubcategoryGifts         Subcategory = "gifts"
	SubcategoryHealth        Subcategory = "Health & Fitness"
	SubcategoryMetro         Subcategory = "metro"
	SubcategoryOthers        Subcategory = "others"
	SubcategoryRickshaw      Subcategory = "rickshaw"
	SubcategorySelfCare      Subcategory = "Self Care"
	SubcategoryUtilities     Subcategory = "utilities"
)

// Transaction is a persisted ledger entry. Amount is always a non-negative
// magnitude; direction is derived from which account plays the debit or
// credit role (see the money package). At least one of the two account
// references is always set.
type Transaction struct {
	Base
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Category    Category        `gorm:"not null" json:"category"`
	Subcategory Subcategory     `gorm:"not null" json:"subcategory"`

	DebitAccountID  *string `gorm:"type:uuid;index" json:"debit_account_id,omitempty"`
	CreditAccountID *string `gorm:"type:uuid;index" json:"credit_account_id,omitempty"`

	// Relationships
	DebitAccount  *PaymentMethod `gorm:"foreignKey:DebitAccountID" json:"debit_account,omitempty"`
	CreditAccount *PaymentMethod `gorm:"foreignKey:CreditAccountID" json:"credit_account,omitempty"`
}

// TransactionDraft is the mutable staging value a caller fills in before a
// transaction is persisted. All fields are optional; Transaction() is the
// validation gate that converts a complete draft into an immutable entity.
// Account parties are named by title here because identity resolution
// (reuse-or-create) happens at write time in the ledger service.
type TransactionDraft struct {
	ID                 *string          `json:"id,omitempty"`
	Date               *time.Time       `json:"date,omitempty"`
	Title              *string          `json:"title,omitempty"`
	Description        *string          `json:"description,omitempty"`
	Amount             *decimal.Decimal `json:"amount,omitempty"`
	Category           *Category        `json:"category,omitempty"`
	Subcategory        *Subcategory     `json:"subcategory,omitempty"`
	DebitAccountTitle  *string          `json:"debit_account_title,omitempty"`
	CreditAccountTitle *string          `json:"credit_account_title,omitempty"`
}

// Validate checks the draft against the invariants a persisted transaction
// must satisfy. It never touches storage.
func (d TransactionDraft) Validate() error {
	if d.Title == nil || strings.TrimSpace(*d.Title) == "" {
		return apperrors.WithMessage(apperrors.ErrValidation, "title is required")
	}
	if d.Category == nil {
		return apperrors.WithMessage(apperrors.ErrValidation, "category is required")
	}
	if !d.Category.Valid() {
		return apperrors.WithMessage(apperrors.ErrValidation, "unknown category "+string(*d.Category))
	}
	if d.Subcategory == nil || strings.TrimSpace(string(*d.Subcategory)) == "" {
		return apperrors.WithMessage(apperrors.ErrValidation, "subcategory is required")
	}
	if d.Amount == nil {
		return apperrors.WithMessage(apperrors.ErrValidation, "amount is required")
	}
	if !d.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrValidation, "amount must be greater than zero")
	}
	if !d.hasAccount() {
		return apperrors.WithMessage(apperrors.ErrValidation, "at least one of debit or credit account is required")
	}
	return nil
}

func (d TransactionDraft) hasAccount() bool {
	debit := d.DebitAccountTitle != nil && strings.TrimSpace(*d.DebitAccountTitle) != ""
	credit := d.CreditAccountTitle != nil && strings.TrimSpace(*d.CreditAccountTitle) != ""
	return debit || credit
}

// Transaction converts the draft into an entity, failing when required
// fields are missing. The date defaults to now, matching the entry screen's
// behavior. Account references are left unresolved; the ledger service
// attaches them during the write.
func (d TransactionDraft) Transaction() (*Transaction, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	t := &Transaction{
		Date:     time.Now(),
		Title:    strings.TrimSpace(*d.Title),
		Amount:   *d.Amount,
		Category: *d.Category,
	}
	if d.ID != nil {
		t.ID = *d.ID
	}
	if d.Date != nil {
		t.Date = *d.Date
	}
	if d.Description != nil {
		t.Description = *d.Description
	}
	if d.Subcategory != nil {
		t.Subcategory = *d.Subcategory
	}
	return t, nil
}

// DraftFromTransaction rebuilds an editable draft from a persisted entity,
// carrying the original id so a subsequent save keeps it stable. Account
// titles are taken from the loaded relations.
func DraftFromTransaction(t *Transaction) TransactionDraft {
	d := TransactionDraft{
		ID:          &t.ID,
		Date:        &t.Date,
		Title:       &t.Title,
		Amount:      &t.Amount,
		Category:    &t.Category,
		Subcategory: &t.Subcategory,
	}
	if t.Description != "" {
		d.Description = &t.Description
	}
	if t.DebitAccount != nil {
		d.DebitAccountTitle = &t.DebitAccount.Title
	}
	if t.CreditAccount != nil {
		d.CreditAccountTitle = &t.CreditAccount.Title
	}
	return d
}
