package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cadencefin/cadence/internal/common"
	"github.com/cadencefin/cadence/internal/model"
)

// GetCategories returns all active categories ordered by name.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(local_name, ''), COALESCE(parent_name, ''),
			type, is_active, created_at
		FROM categories
		WHERE is_active = 1
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.LocalName, &c.ParentName,
			&c.Type, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	return categories, nil
}

// GetCategoryByName returns one category or common.ErrNotFound.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	var c model.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(local_name, ''), COALESCE(parent_name, ''),
			type, is_active, created_at
		FROM categories WHERE name = ?
	`, name).Scan(&c.ID, &c.Name, &c.LocalName, &c.ParentName, &c.Type, &c.IsActive, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return &c, nil
}

// CreateCategory inserts a new category and returns it.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, name, parentName string, categoryType model.CategoryType) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	switch categoryType {
	case model.CategoryTypeIncome, model.CategoryTypeExpense, model.CategoryTypeSystem:
	default:
		return nil, fmt.Errorf("%w: unknown category type %q", ErrInvalidCategory, categoryType)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (name, parent_name, type) VALUES (?, ?, ?)
	`, name, parentName, categoryType)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", mapSQLiteError(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category id: %w", err)
	}

	return &model.Category{
		ID:         int(id),
		Name:       name,
		ParentName: parentName,
		Type:       categoryType,
		IsActive:   true,
	}, nil
}
