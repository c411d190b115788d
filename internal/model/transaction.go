package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction represents a single financial transaction from any source.
// Amount is signed: negative values are expenses, positive values income.
type Transaction struct {
	Date      time.Time
	ID        string
	Name      string // Raw transaction description / merchant label
	AccountID string
	Hash      string
	Amount    float64
	Type      string // Transaction type (e.g., DEBIT, CREDIT, PAYMENT)

	// Optional category metadata that may be available depending on source
	CategoryID     *int
	CategoryName   string
	ParentCategory string
}

// IsExpense reports whether the transaction is an expense under the
// signed-amount convention.
func (t *Transaction) IsExpense() bool {
	return t.Amount < 0
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Name,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
