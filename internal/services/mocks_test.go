package services

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// fakeDB implements DBConn with overridable function fields.
type fakeDB struct {
	QueryRowFunc func(ctx context.Context, sql string, args ...any) Row
	QueryFunc    func(ctx context.Context, sql string, args ...any) (Rows, error)
	ExecFunc     func(ctx context.Context, sql string, args ...any) (CommandTag, error)
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	if db.QueryRowFunc != nil {
		return db.QueryRowFunc(ctx, sql, args...)
	}
	return rowFromValues()
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if db.QueryFunc != nil {
		return db.QueryFunc(ctx, sql, args...)
	}
	return &fakeRows{}, nil
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	if db.ExecFunc != nil {
		return db.ExecFunc(ctx, sql, args...)
	}
	return fakeCommandTag{rowsAffected: 1}, nil
}

type fakeRow struct {
	values []any
	err    error
}

func rowFromValues(values ...any) Row {
	return &fakeRow{values: values}
}

func rowWithError(err error) Row {
	return &fakeRow{err: err}
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: expected %d destinations, got %d", len(r.values), len(dest))
	}
	for i, v := range r.values {
		if err := assignValue(dest[i], v); err != nil {
			return err
		}
	}
	return nil
}

type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (r *fakeRows) Close() {}

func (r *fakeRows) Next() bool {
	return r.idx < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.idx]
	r.idx++
	if len(dest) != len(row) {
		return fmt.Errorf("scan: expected %d destinations, got %d", len(row), len(dest))
	}
	for i, v := range row {
		if err := assignValue(dest[i], v); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRows) Err() error {
	return r.err
}

type fakeCommandTag struct {
	rowsAffected int64
}

func (t fakeCommandTag) RowsAffected() int64 {
	return t.rowsAffected
}

func assignValue(dest, value any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return fmt.Errorf("scan destination must be a non-nil pointer, got %T", dest)
	}
	elem := dv.Elem()
	if value == nil {
		elem.Set(reflect.Zero(elem.Type()))
		return nil
	}
	sv := reflect.ValueOf(value)
	if !sv.Type().ConvertibleTo(elem.Type()) {
		return fmt.Errorf("cannot scan %T into %T", value, dest)
	}
	elem.Set(sv.Convert(elem.Type()))
	return nil
}

// fakeRedis implements RedisConn with an in-memory map.
type fakeRedis struct {
	values  map[string]string
	deleted []string
	setKeys []string

	GetErr error
	SetErr error
	DelErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string)}
}

func (r *fakeRedis) Get(ctx context.Context, key string) (string, error) {
	if r.GetErr != nil {
		return "", r.GetErr
	}
	val, ok := r.values[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return val, nil
}

func (r *fakeRedis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if r.SetErr != nil {
		return r.SetErr
	}
	r.values[key] = value
	r.setKeys = append(r.setKeys, key)
	return nil
}

func (r *fakeRedis) Del(ctx context.Context, keys ...string) error {
	if r.DelErr != nil {
		return r.DelErr
	}
	for _, key := range keys {
		delete(r.values, key)
		r.deleted = append(r.deleted, key)
	}
	return nil
}

func (r *fakeRedis) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return nil
}

func (r *fakeRedis) wasDeleted(key string) bool {
	for _, k := range r.deleted {
		if k == key {
			return true
		}
	}
	return false
}
