package handlers

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type sqlCall struct {
	query string
	args  []any
}

// fakeSQL implements infra.SQLExecutor for handler tests. Each method records
// its call and delegates to the optional hook; without a hook QueryRow scans
// as no rows and Query fails.
type fakeSQL struct {
	execCalls     []sqlCall
	queryRowCalls []sqlCall
	queryCalls    []sqlCall

	execFn     func(query string, args []any) (pgconn.CommandTag, error)
	queryRowFn func(query string, args []any) pgx.Row
	queryFn    func(query string, args []any) (pgx.Rows, error)
}

func (f *fakeSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.execCalls = append(f.execCalls, sqlCall{query: query, args: args})
	if f.execFn != nil {
		return f.execFn(query, args)
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeSQL) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	f.queryRowCalls = append(f.queryRowCalls, sqlCall{query: query, args: args})
	if f.queryRowFn != nil {
		return f.queryRowFn(query, args)
	}
	return simpleRow{}
}

func (f *fakeSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	f.queryCalls = append(f.queryCalls, sqlCall{query: query, args: args})
	if f.queryFn != nil {
		return f.queryFn(query, args)
	}
	return nil, fmt.Errorf("unexpected query: %s", query)
}

// simpleRow adapts a scan func to pgx.Row. The zero value scans as no rows.
type simpleRow struct {
	scan func(dest ...any) error
}

func (r simpleRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

// scanTuple builds a row whose columns come from the given tuple, in order.
func scanTuple(tuple []any) simpleRow {
	return simpleRow{scan: func(dest ...any) error {
		if len(dest) != len(tuple) {
			return fmt.Errorf("unexpected scan args: got %d, want %d", len(dest), len(tuple))
		}
		for i := range dest {
			if err := assignValue(dest[i], tuple[i]); err != nil {
				return err
			}
		}
		return nil
	}}
}

func scanID(id string) simpleRow {
	return scanTuple([]any{id})
}

// sliceRows replays fixed row tuples as pgx.Rows.
type sliceRows struct {
	rows [][]any
	idx  int
}

func (s *sliceRows) Next() bool {
	if s.idx >= len(s.rows) {
		return false
	}
	s.idx++
	return true
}

func (s *sliceRows) Scan(dest ...any) error {
	if s.idx == 0 || s.idx > len(s.rows) {
		return pgx.ErrNoRows
	}
	return scanTuple(s.rows[s.idx-1]).Scan(dest...)
}

func (s *sliceRows) Err() error { return nil }

func (s *sliceRows) Close() {}

func (s *sliceRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (s *sliceRows) Conn() *pgx.Conn { return nil }

func (s *sliceRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (s *sliceRows) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

func (s *sliceRows) RawValues() [][]byte { return nil }

// assignValue writes val into the pointer dest, allocating through one level
// of indirection for nullable columns. A nil val leaves dest zeroed.
func assignValue(dest, val any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return fmt.Errorf("scan destination must be a non-nil pointer, got %T", dest)
	}
	elem := dv.Elem()
	if val == nil {
		elem.Set(reflect.Zero(elem.Type()))
		return nil
	}
	sv := reflect.ValueOf(val)
	switch {
	case sv.Type().AssignableTo(elem.Type()):
		elem.Set(sv)
	case elem.Kind() == reflect.Pointer && sv.Type().AssignableTo(elem.Type().Elem()):
		p := reflect.New(elem.Type().Elem())
		p.Elem().Set(sv)
		elem.Set(p)
	case sv.Kind() == reflect.String && sv.Type().ConvertibleTo(elem.Type()):
		elem.Set(sv.Convert(elem.Type()))
	default:
		return fmt.Errorf("cannot scan %T into %T", val, dest)
	}
	return nil
}
