package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cadencefin/cadence/internal/model"
	"github.com/cadencefin/cadence/internal/service"
)

const transactionColumns = `id, hash, date, name, amount, account_id,
	transaction_type, category_id, category_name, parent_category`

// SaveTransactions saves multiple transactions, skipping rows whose hash is
// already present. Returns the number of rows actually inserted.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateTransactions(transactions); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", mapSQLiteError(err))
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			id, hash, date, name, amount, account_id,
			transaction_type, category_id, category_name, parent_category
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, txn := range transactions {
		res, err := stmt.ExecContext(ctx,
			txn.ID,
			txn.Hash,
			txn.Date,
			txn.Name,
			txn.Amount,
			txn.AccountID,
			txn.Type,
			txn.CategoryID,
			txn.CategoryName,
			txn.ParentCategory,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert transaction %s: %w", txn.ID, mapSQLiteError(err))
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to count inserted rows: %w", err)
		}
		inserted += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transactions: %w", mapSQLiteError(err))
	}
	return inserted, nil
}

// GetTransactions returns transactions matching the filter, ordered by
// date ascending.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var conditions []string
	var args []any

	if filter.StartDate != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, *filter.EndDate)
	}

	query := "SELECT " + transactionColumns + " FROM transactions"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date, id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	return s.queryTransactions(ctx, query, args...)
}

// GetExpensesByPeriod returns the expense (negative-amount) transactions in
// [start, end], ordered by date ascending. This is the projection the
// detection engine consumes.
func (s *SQLiteStorage) GetExpensesByPeriod(ctx context.Context, start, end time.Time) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	query := "SELECT " + transactionColumns + ` FROM transactions
		WHERE date >= ? AND date <= ? AND amount < 0
		ORDER BY date, id`
	return s.queryTransactions(ctx, query, start, end)
}

// GetMonthlyCategoryTotals sums expense magnitudes per category per
// calendar month over [start, end].
func (s *SQLiteStorage) GetMonthlyCategoryTotals(ctx context.Context, start, end time.Time) ([]service.CategoryMonthlyTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(NULLIF(category_name, ''), parent_category) AS category,
			strftime('%Y-%m', date) AS month,
			SUM(-amount) AS total
		FROM transactions
		WHERE date >= ? AND date <= ? AND amount < 0
			AND COALESCE(NULLIF(category_name, ''), parent_category) != ''
		GROUP BY category, month
		ORDER BY category, month
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var totals []service.CategoryMonthlyTotal
	for rows.Next() {
		var t service.CategoryMonthlyTotal
		if err := rows.Scan(&t.Category, &t.Month, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read monthly totals: %w", err)
	}
	return totals, nil
}

func (s *SQLiteStorage) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return transactions, nil
}

func scanTransaction(rows *sql.Rows) (*model.Transaction, error) {
	var txn model.Transaction
	var accountID, txnType, categoryName, parentCategory sql.NullString
	var categoryID sql.NullInt64

	if err := rows.Scan(
		&txn.ID,
		&txn.Hash,
		&txn.Date,
		&txn.Name,
		&txn.Amount,
		&accountID,
		&txnType,
		&categoryID,
		&categoryName,
		&parentCategory,
	); err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txn.AccountID = accountID.String
	txn.Type = txnType.String
	txn.CategoryName = categoryName.String
	txn.ParentCategory = parentCategory.String
	if categoryID.Valid {
		id := int(categoryID.Int64)
		txn.CategoryID = &id
	}
	return &txn, nil
}
