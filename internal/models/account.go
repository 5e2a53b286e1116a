package models

import "sort"

// PaymentMethod is an account money moves in or out of: a card, a bank
// account, cash. The title is the natural key the import pipeline resolves
// against, so it is unique. Payment methods are created implicitly the first
// time a transaction or bill names an unseen title and are never deleted by
// the ledger, even when all their transactions are removed.
type PaymentMethod struct {
	Base
	Title string `gorm:"not null;uniqueIndex" json:"title"`

	// Relationships. A transaction references this account as the debit
	// party, the credit party, or (for a self-transfer) both.
	DebitTransactions  []Transaction `gorm:"foreignKey:DebitAccountID" json:"-"`
	CreditTransactions []Transaction `gorm:"foreignKey:CreditAccountID" json:"-"`
}

// Transactions merges both role lists into one sequence, newest date first.
// A self-transfer appears in both relations but is returned once.
func (p *PaymentMethod) Transactions() []Transaction {
	seen := make(map[string]struct{}, len(p.DebitTransactions)+len(p.CreditTransactions))
	merged := make([]Transaction, 0, len(p.DebitTransactions)+len(p.CreditTransactions))
	for _, list := range [][]Transaction{p.DebitTransactions, p.CreditTransactions} {
		for _, t := range list {
			if _, ok := seen[t.ID]; ok {
				continue
			}
			seen[t.ID] = struct{}{}
			merged = append(merged, t)
		}
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})
	return merged
}
