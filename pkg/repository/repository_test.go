package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/storefront/pkg/query"
	"github.com/JaimeStill/storefront/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

type item struct {
	ID   int
	Name string
}

func scanItem(s repository.Scanner) (item, error) {
	var i item
	err := s.Scan(&i.ID, &i.Name)
	return i, err
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestMapError(t *testing.T) {
	other := errors.New("some other error")
	otherPg := &pgconn.PgError{Code: "12345"}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, errNotFound},
		{"wrapped no rows", fmt.Errorf("find: %w", sql.ErrNoRows), errNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"other pg error", otherPg, otherPg},
		{"other error", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, errNotFound, errDuplicate)
			if got != tt.want {
				t.Errorf("MapError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !repository.IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("IsForeignKeyViolation(23503) = false, want true")
	}
	if repository.IsForeignKeyViolation(errors.New("x")) {
		t.Error("IsForeignKeyViolation(plain) = true, want false")
	}
}

func TestQueryMany(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("SELECT id, name FROM items").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "first").
			AddRow(2, "second"))

	items, err := repository.QueryMany(context.Background(), db, "SELECT id, name FROM items", nil, scanItem)
	if err != nil {
		t.Fatalf("QueryMany() error = %v", err)
	}
	if len(items) != 2 || items[1].Name != "second" {
		t.Errorf("QueryMany() = %v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestQueryMany_Empty(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("SELECT id, name FROM items").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	items, err := repository.QueryMany(context.Background(), db, "SELECT id, name FROM items", nil, scanItem)
	if err != nil {
		t.Fatalf("QueryMany() error = %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("QueryMany() = %#v, want empty non-nil slice", items)
	}
}

func TestQueryOne_NoRows(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("SELECT id, name FROM items WHERE id").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := repository.QueryOne(context.Background(), db, "SELECT id, name FROM items WHERE id = $1", []any{9}, scanItem)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("QueryOne() error = %v, want sql.ErrNoRows", err)
	}
}

func TestWithTx_Commit(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM items").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := repository.WithTx(context.Background(), db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(context.Background(), tx, "DELETE FROM items WHERE id = $1", 1)
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM items").WithArgs(1, 2).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	_, err := repository.WithTx(context.Background(), db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectCount(context.Background(), tx, 2, "DELETE FROM items WHERE id IN ($1, $2)", 1, 2)
	})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("WithTx() error = %v, want sql.ErrNoRows", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteMany(t *testing.T) {
	projection := query.NewProjectionMap("public", "brands", "b").Project("id", "ID")

	t.Run("all matched", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM public.brands b WHERE b.id IN ($1, $2)")).
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		n, err := repository.DeleteMany(context.Background(), db, projection, "ID", []int{1, 2})
		if err != nil {
			t.Fatalf("DeleteMany() error = %v", err)
		}
		if n != 2 {
			t.Errorf("DeleteMany() = %d, want 2", n)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("partial match rolls back", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM public.brands").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		_, err := repository.DeleteMany(context.Background(), db, projection, "ID", []int{1, 2})
		if !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("DeleteMany() error = %v, want sql.ErrNoRows", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("no ids", func(t *testing.T) {
		db, _ := newMock(t)
		n, err := repository.DeleteMany[int](context.Background(), db, projection, "ID", nil)
		if n != 0 || err != nil {
			t.Errorf("DeleteMany() = %d, %v", n, err)
		}
	})
}
