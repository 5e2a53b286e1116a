package importer

import (
	"strings"

	"numbers/internal/models"
)

// categorySynonyms maps lowercased statement labels to coarse categories.
// Historical exports used the old per-merchant category and expense-type
// vocabularies, so both are represented here.
var categorySynonyms = map[string]models.Category{
	// need
	"need":             models.CategoryNeed,
	"needs":            models.CategoryNeed,
	"home":             models.CategoryNeed,
	"mummy":            models.CategoryNeed,
	"papa":             models.CategoryNeed,
	"utilities":        models.CategoryNeed,
	"education":        models.CategoryNeed,
	"health & fitness": models.CategoryNeed,
	"groceries":        models.CategoryNeed,
	"grocery":          models.CategoryNeed,
	"metro":            models.CategoryNeed,
	"rickshaw":         models.CategoryNeed,
	"fuel":             models.CategoryNeed,
	"medical":          models.CategoryNeed,

	// want
	"want":          models.CategoryWant,
	"wants":         models.CategoryWant,
	"food & drinks": models.CategoryWant,
	"entertainment": models.CategoryWant,
	"clothing":      models.CategoryWant,
	"self care":     models.CategoryWant,
	"shopping":      models.CategoryWant,
	"personal":      models.CategoryWant,

	// culture
	"culture": models.CategoryCulture,
	"friends": models.CategoryCulture,
	"gifts":   models.CategoryCulture,
	"love":    models.CategoryCulture,
	"office":  models.CategoryCulture,

	// billPayment
	"billpayment":      models.CategoryBillPayment,
	"bill payment":     models.CategoryBillPayment,
	"bill":             models.CategoryBillPayment,
	"credit card bill": models.CategoryBillPayment,
	"cc bill":          models.CategoryBillPayment,
	"emi":              models.CategoryBillPayment,

	// unplanned
	"unplanned":  models.CategoryUnplanned,
	"emergency":  models.CategoryUnplanned,
	"unexpected": models.CategoryUnplanned,
}

// MapCategory resolves free statement text to a category, case-insensitively.
// Unrecognized labels fall back to want rather than failing the row; messy
// historical exports carry labels nobody curates anymore. The second return
// reports whether the label was recognized so callers can log the fallback.
func MapCategory(raw string) (models.Category, bool) {
	label := strings.ToLower(strings.TrimSpace(raw))
	if c, ok := categorySynonyms[label]; ok {
		return c, true
	}
	return models.CategoryWant, false
}
