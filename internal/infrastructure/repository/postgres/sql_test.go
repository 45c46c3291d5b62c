package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestPQErrorClassification(t *testing.T) {
	t.Run("unique violation through wrapping", func(t *testing.T) {
		err := fmt.Errorf("insert standing: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected unique violation")
		}
		if isForeignKeyViolation(err) {
			t.Fatalf("unique violation must not look like a foreign key violation")
		}
	})

	t.Run("foreign key violation", func(t *testing.T) {
		if !isForeignKeyViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected foreign key violation")
		}
	})

	t.Run("ignores non pq errors", func(t *testing.T) {
		err := fakeErr("pq: relation groups does not exist")
		if isUniqueViolation(err) || isForeignKeyViolation(err) {
			t.Fatalf("expected plain error to be unclassified")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get team: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("boom")) {
		t.Fatalf("expected unrelated error to be found")
	}
}

func TestNullableHelpers(t *testing.T) {
	if got := nullableString(""); got.Valid {
		t.Fatalf("expected empty string to be null")
	}
	if got := intFromNull(nullableInt(nil)); got != nil {
		t.Fatalf("expected nil int round trip, got %v", *got)
	}

	three := 3
	if got := intFromNull(nullableInt(&three)); got == nil || *got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}

	at := time.Date(2026, 4, 1, 18, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	got := timeFromNull(nullableTime(&at))
	if got == nil || !got.Equal(at) || got.Location() != time.UTC {
		t.Fatalf("expected UTC time equal to input, got %v", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
