package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"lumbertrace/internal/core/apperror"
	"lumbertrace/internal/domain"
	"lumbertrace/internal/domain/filter"
)

// baseRepo provides CRUD over one table. T is the domain entity, R the row
// struct scanned by pgxscan.
type baseRepo[T domain.Entity, R any] struct {
	txm       *TxManager
	tableName string
	entity    string
	cols      []string

	// searchCols are matched with ILIKE by ListFilter.Search
	searchCols []string

	// filterCols maps json field names accepted in AdvancedFilters to columns
	filterCols map[string]string

	toRow   func(T) R
	fromRow func(R) T
}

// Builder returns a squirrel builder with PostgreSQL placeholders.
func (r *baseRepo[T, R]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *baseRepo[T, R]) querier(ctx context.Context) Querier {
	return r.txm.GetQuerier(ctx)
}

// Create inserts a new row.
func (r *baseRepo[T, R]) Create(ctx context.Context, e T) error {
	sql, args, err := r.insertQuery(e).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewConflict(r.entity+" already exists").
				WithDetail("id", e.Meta().ID).
				WithCause(err)
		}
		return apperror.NewStorage("insert "+r.tableName, err)
	}
	return nil
}

func (r *baseRepo[T, R]) insertQuery(e T) squirrel.InsertBuilder {
	data := StructToMap(r.toRow(e))
	return r.Builder().Insert(r.tableName).SetMap(data)
}

// Update replaces every column except id and created_at.
func (r *baseRepo[T, R]) Update(ctx context.Context, e T) error {
	sql, args, err := r.updateQuery(e).ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewStorage("update "+r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entity, e.Meta().ID)
	}
	return nil
}

func (r *baseRepo[T, R]) updateQuery(e T) squirrel.UpdateBuilder {
	data := StructToMap(r.toRow(e))
	delete(data, "id")
	delete(data, "created_at")

	return r.Builder().
		Update(r.tableName).
		SetMap(data).
		Where(squirrel.Eq{"id": e.Meta().ID})
}

// GetByID retrieves a row by id.
func (r *baseRepo[T, R]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T

	sql, args, err := r.Builder().
		Select(r.cols...).
		From(r.tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return zero, fmt.Errorf("build query: %w", err)
	}

	var row R
	if err := pgxscan.Get(ctx, r.querier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return zero, apperror.NewNotFound(r.entity, id)
		}
		return zero, apperror.NewStorage("get "+r.tableName, err)
	}
	return r.fromRow(row), nil
}

// Exists checks if a row with id exists.
func (r *baseRepo[T, R]) Exists(ctx context.Context, id string) (bool, error) {
	sql, args, err := r.Builder().
		Select("1").
		From(r.tableName).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperror.NewStorage("exists "+r.tableName, err)
	}
	return true, nil
}

// Delete removes a row physically.
func (r *baseRepo[T, R]) Delete(ctx context.Context, id string) error {
	sql, args, err := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewStorage("delete "+r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entity, id)
	}
	return nil
}

// List selects rows matching f, newest first.
func (r *baseRepo[T, R]) List(ctx context.Context, f domain.ListFilter) ([]T, error) {
	q, err := r.listQuery(f)
	if err != nil {
		return nil, err
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []R
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, apperror.NewStorage("list "+r.tableName, err)
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.fromRow(row))
	}
	return out, nil
}

func (r *baseRepo[T, R]) listQuery(f domain.ListFilter) (squirrel.SelectBuilder, error) {
	q := r.Builder().Select(r.cols...).From(r.tableName)

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		or := squirrel.Or{squirrel.ILike{"id": pattern}}
		for _, col := range r.searchCols {
			or = append(or, squirrel.ILike{col: pattern})
		}
		q = q.Where(or)
	}
	if f.CreatedFrom != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *f.CreatedFrom})
	}
	if f.CreatedTo != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *f.CreatedTo})
	}

	q, err := r.applyAdvancedFilters(q, f.AdvancedFilters)
	if err != nil {
		return q, err
	}

	return q.OrderBy("created_at DESC", "id DESC"), nil
}

// applyAdvancedFilters translates filter items. Only whitelisted fields are
// accepted, which keeps column names out of user control.
func (r *baseRepo[T, R]) applyAdvancedFilters(q squirrel.SelectBuilder, items []filter.Item) (squirrel.SelectBuilder, error) {
	for _, item := range items {
		col, ok := r.filterCols[item.Field]
		if !ok {
			return q, apperror.NewValidation("invalid filter field").WithDetail("field", item.Field)
		}

		switch item.Operator {
		case filter.Equal, "":
			q = q.Where(squirrel.Eq{col: item.Value})
		case filter.NotEqual:
			q = q.Where(squirrel.NotEq{col: item.Value})
		case filter.InList:
			q = q.Where(squirrel.Eq{col: item.Value})
		case filter.Contains:
			q = q.Where(squirrel.ILike{col: fmt.Sprintf("%%%v%%", item.Value)})
		case filter.NotContains:
			q = q.Where(squirrel.NotILike{col: fmt.Sprintf("%%%v%%", item.Value)})
		case filter.IsNull:
			q = q.Where(squirrel.Or{squirrel.Eq{col: nil}, squirrel.Eq{col: ""}})
		case filter.IsNotNull:
			q = q.Where(squirrel.And{squirrel.NotEq{col: nil}, squirrel.NotEq{col: ""}})
		default:
			return q, apperror.NewValidation("unsupported filter operator").WithDetail("operator", item.Operator)
		}
	}
	return q, nil
}

// Count returns the number of rows.
func (r *baseRepo[T, R]) Count(ctx context.Context) (int, error) {
	sql, args, err := r.Builder().Select("COUNT(*)").From(r.tableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var n int
	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, apperror.NewStorage("count "+r.tableName, err)
	}
	return n, nil
}
