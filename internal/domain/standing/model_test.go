package standing

import (
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestPatch(t *testing.T) {
	base := Standing{ID: "s1", GroupID: "g1", TeamID: "t1", Wins: 1, Points: 3}

	patch := Patch{Points: intPtr(6), GamesPlayed: intPtr(2)}
	if patch.Empty() {
		t.Fatalf("expected non-empty patch")
	}
	if err := patch.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	got := patch.Apply(base)
	if got.Points != 6 || got.GamesPlayed != 2 || got.Wins != 1 {
		t.Fatalf("unexpected patched standing: %+v", got)
	}

	if !(Patch{}).Empty() {
		t.Fatalf("expected zero patch to be empty")
	}
	if err := (Patch{Losses: intPtr(-1)}).Validate(); !errors.Is(err, ErrNegativeValue) {
		t.Fatalf("expected ErrNegativeValue, got %v", err)
	}
}
