package postgres

import (
	"context"
	"testing"
)

func TestIsBindParameterMismatch(t *testing.T) {
	t.Run("matches bind mismatch error", func(t *testing.T) {
		err := fakeErr("pq: bind message supplies 2 parameters, but prepared statement \"\" requires 1 (08P01)")
		if !isBindParameterMismatch(err) {
			t.Fatalf("expected true for bind mismatch error")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		err := fakeErr("pq: relation predictions does not exist")
		if isBindParameterMismatch(err) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestIsUnnamedPreparedStatementMissing(t *testing.T) {
	t.Run("matches statement missing message", func(t *testing.T) {
		err := fakeErr("pq: unnamed prepared statement does not exist (26000)")
		if !isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected true for statement missing error")
		}
	})

	t.Run("matches by 26000 code", func(t *testing.T) {
		err := fakeErr("pq: prepared statement missing (26000)")
		if !isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected true for 26000 prepared statement error")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		err := fakeErr("pq: relation predictions does not exist")
		if isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestWithStatementRetry(t *testing.T) {
	t.Run("retries once on lost statement", func(t *testing.T) {
		calls := 0
		err := withStatementRetry(context.Background(), func(context.Context) error {
			calls++
			if calls == 1 {
				return fakeErr("pq: unnamed prepared statement does not exist (26000)")
			}
			return nil
		})
		if err != nil || calls != 2 {
			t.Fatalf("expected success on second call, got err=%v calls=%d", err, calls)
		}
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		calls := 0
		err := withStatementRetry(context.Background(), func(context.Context) error {
			calls++
			return fakeErr("pq: duplicate key value violates unique constraint")
		})
		if err == nil || calls != 1 {
			t.Fatalf("expected single failing call, got err=%v calls=%d", err, calls)
		}
	})
}

func TestOptionalString(t *testing.T) {
	if got := optionalString("   "); got != nil {
		t.Fatalf("expected nil for blank value, got %q", *got)
	}
	if got := optionalString(" https://img.example/a.png "); got == nil || *got != "https://img.example/a.png" {
		t.Fatalf("unexpected optional string: %v", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
