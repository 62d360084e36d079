package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

var errAbort = errors.New("abort")

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A single connection keeps the in-memory database shared across calls.
	conn.SetMaxOpenConns(1)

	_, err = conn.Exec(`CREATE TABLE slides (id TEXT PRIMARY KEY, title TEXT)`)
	if err != nil {
		t.Fatalf("Failed to create test table: %v", err)
	}

	return conn
}

func countSlides(t *testing.T, conn *sql.DB) int {
	t.Helper()
	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM slides").Scan(&count); err != nil {
		t.Fatalf("Failed to query: %v", err)
	}
	return count
}

func insertSlide(ctx context.Context, conn *sql.DB, id string) error {
	_, err := GetExecutor(ctx, conn).ExecContext(ctx, "INSERT INTO slides (id, title) VALUES (?, ?)", id, "title-"+id)
	return err
}

func TestRunInTransaction_Commit(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	err := RunInTransaction(context.Background(), conn, func(txCtx context.Context) error {
		if _, ok := GetTx(txCtx); !ok {
			t.Error("Expected transaction in context")
		}
		return insertSlide(txCtx, conn, "a")
	})
	if err != nil {
		t.Fatalf("RunInTransaction failed: %v", err)
	}

	if got := countSlides(t, conn); got != 1 {
		t.Errorf("Expected 1 row, got %d", got)
	}
}

func TestRunInTransaction_Rollback(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	err := RunInTransaction(context.Background(), conn, func(txCtx context.Context) error {
		if err := insertSlide(txCtx, conn, "a"); err != nil {
			return err
		}
		return errAbort
	})
	if !errors.Is(err, errAbort) {
		t.Fatalf("RunInTransaction error = %v, want %v", err, errAbort)
	}

	if got := countSlides(t, conn); got != 0 {
		t.Errorf("Expected 0 rows after rollback, got %d", got)
	}
}

func TestRunInTransaction_NestedReusesOuter(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	err := RunInTransaction(context.Background(), conn, func(outerCtx context.Context) error {
		if err := insertSlide(outerCtx, conn, "outer"); err != nil {
			return err
		}

		return RunInTransaction(outerCtx, conn, func(innerCtx context.Context) error {
			outerTx, _ := GetTx(outerCtx)
			innerTx, _ := GetTx(innerCtx)
			if outerTx != innerTx {
				t.Error("Expected nested call to reuse outer transaction")
			}
			return insertSlide(innerCtx, conn, "inner")
		})
	})
	if err != nil {
		t.Fatalf("RunInTransaction failed: %v", err)
	}

	if got := countSlides(t, conn); got != 2 {
		t.Errorf("Expected 2 rows, got %d", got)
	}
}

func TestRunInTransaction_NestedFailureRollsBackOuter(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	err := RunInTransaction(context.Background(), conn, func(outerCtx context.Context) error {
		if err := insertSlide(outerCtx, conn, "outer"); err != nil {
			return err
		}
		return RunInTransaction(outerCtx, conn, func(innerCtx context.Context) error {
			if err := insertSlide(innerCtx, conn, "inner"); err != nil {
				return err
			}
			return errAbort
		})
	})
	if err == nil {
		t.Fatal("Expected error from RunInTransaction")
	}

	if got := countSlides(t, conn); got != 0 {
		t.Errorf("Expected 0 rows after complete rollback, got %d", got)
	}
}

func TestGetExecutor(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	ctx := context.Background()
	if executor := GetExecutor(ctx, conn); executor != conn {
		t.Error("Expected executor to be the database without a transaction")
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if executor := GetExecutor(WithTx(ctx, tx), conn); executor != tx {
		t.Error("Expected executor to be the transaction")
	}
}
