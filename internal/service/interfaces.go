// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/cadencefin/cadence/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error)
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	GetExpensesByPeriod(ctx context.Context, start, end time.Time) ([]model.Transaction, error)

	// Category operations
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	CreateCategory(ctx context.Context, name, parentName string, categoryType model.CategoryType) (*model.Category, error)
	GetMonthlyCategoryTotals(ctx context.Context, start, end time.Time) ([]CategoryMonthlyTotal, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// CategoryMonthlyTotal is one category's summed expense amount for one
// calendar month, as supplied by the storage layer.
type CategoryMonthlyTotal struct {
	Category string
	Month    string // YYYY-MM
	Total    float64
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
