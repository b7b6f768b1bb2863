package badgerkv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"lumbertrace/internal/core/apperror"
	"lumbertrace/internal/domain"
	"lumbertrace/internal/domain/filter"
)

// collection stores one record type as JSON under "<prefix>/<id>".
type collection[T domain.Entity] struct {
	db     *DB
	prefix string
	entity string
	newFn  func() T

	// searchText returns the values Search matches against.
	searchText func(T) []string
}

func (c *collection[T]) key(id string) []byte {
	return []byte(c.prefix + "/" + id)
}

func (c *collection[T]) keyPrefix() []byte {
	return []byte(c.prefix + "/")
}

func (c *collection[T]) put(txn *badger.Txn, e T) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.entity, err)
	}
	return txn.Set(c.key(e.Meta().ID), raw)
}

func (c *collection[T]) decode(raw []byte) (T, error) {
	e := c.newFn()
	if err := json.Unmarshal(raw, e); err != nil {
		return e, fmt.Errorf("decode %s: %w", c.entity, err)
	}
	return e, nil
}

func (c *collection[T]) get(txn *badger.Txn, id string) (T, error) {
	var zero T
	item, err := txn.Get(c.key(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return zero, apperror.NewNotFound(c.entity, id)
	}
	if err != nil {
		return zero, apperror.NewStorage("get "+c.entity, err)
	}

	var e T
	err = item.Value(func(val []byte) error {
		var derr error
		e, derr = c.decode(val)
		return derr
	})
	return e, err
}

// Create inserts a new record. An existing id is a conflict.
func (c *collection[T]) Create(ctx context.Context, e T) error {
	return c.db.update(ctx, func(txn *badger.Txn) error {
		_, err := txn.Get(c.key(e.Meta().ID))
		switch {
		case err == nil:
			return apperror.NewConflict(c.entity+" already exists").WithDetail("id", e.Meta().ID)
		case !errors.Is(err, badger.ErrKeyNotFound):
			return apperror.NewStorage("create "+c.entity, err)
		}
		return c.put(txn, e)
	})
}

// Update replaces a stored record.
func (c *collection[T]) Update(ctx context.Context, e T) error {
	return c.db.update(ctx, func(txn *badger.Txn) error {
		if _, err := c.get(txn, e.Meta().ID); err != nil {
			return err
		}
		return c.put(txn, e)
	})
}

// GetByID retrieves a record by id.
func (c *collection[T]) GetByID(ctx context.Context, id string) (T, error) {
	var e T
	err := c.db.view(ctx, func(txn *badger.Txn) error {
		var err error
		e, err = c.get(txn, id)
		return err
	})
	return e, err
}

// Exists checks if a record with id exists.
func (c *collection[T]) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := c.db.view(ctx, func(txn *badger.Txn) error {
		_, err := txn.Get(c.key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return apperror.NewStorage("exists "+c.entity, err)
		}
		exists = true
		return nil
	})
	return exists, err
}

// Delete removes a record.
func (c *collection[T]) Delete(ctx context.Context, id string) error {
	return c.db.update(ctx, func(txn *badger.Txn) error {
		if _, err := c.get(txn, id); err != nil {
			return err
		}
		return txn.Delete(c.key(id))
	})
}

// List scans the collection and applies f, newest first.
func (c *collection[T]) List(ctx context.Context, f domain.ListFilter) ([]T, error) {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := []T{}

	err := c.db.view(ctx, func(txn *badger.Txn) error {
		return c.each(txn, func(e T) error {
			if search != "" && !c.matchesSearch(e, search) {
				return nil
			}
			if !f.InRange(e.Meta().CreatedAt) {
				return nil
			}
			if len(f.AdvancedFilters) > 0 {
				ok, err := filter.Match(f.AdvancedFilters, domain.Fields(e))
				if err != nil {
					return apperror.NewValidation(err.Error())
				}
				if !ok {
					return nil
				}
			}
			out = append(out, e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Meta(), out[j].Meta()
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID > b.ID
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return out, nil
}

// each decodes every record under the prefix.
func (c *collection[T]) each(txn *badger.Txn, fn func(T) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = c.keyPrefix()
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		var e T
		err := it.Item().Value(func(val []byte) error {
			var derr error
			e, derr = c.decode(val)
			return derr
		})
		if err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func (c *collection[T]) matchesSearch(e T, search string) bool {
	if strings.Contains(strings.ToLower(e.Meta().ID), search) {
		return true
	}
	if c.searchText == nil {
		return false
	}
	for _, text := range c.searchText(e) {
		if strings.Contains(strings.ToLower(text), search) {
			return true
		}
	}
	return false
}

// Count returns the number of records.
func (c *collection[T]) Count(ctx context.Context) (int, error) {
	n := 0
	err := c.db.view(ctx, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = c.keyPrefix()
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
