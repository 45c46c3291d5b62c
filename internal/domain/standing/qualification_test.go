package standing

import (
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
)

func groupRows(points ...int) []Row {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]Row, 0, len(points))
	for i, p := range points {
		rows = append(rows, Row{
			Standing: Standing{
				ID:        fmt.Sprintf("s%d", i+1),
				GroupID:   "g1",
				TeamID:    fmt.Sprintf("t%d", i+1),
				Points:    p,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			},
			TeamName: fmt.Sprintf("Team %d", i+1),
		})
	}
	return rows
}

func teamIDs(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.TeamID)
	}
	return out
}

func TestComputeQualificationScenario(t *testing.T) {
	rows := groupRows(10, 8, 8, 5)

	for _, tb := range []TieBreak{TieBreakStats, TieBreakInsertion} {
		t.Run(string(tb), func(t *testing.T) {
			got := ComputeQualification(rows, 2, tb)
			if len(got.Qualified) != 2 {
				t.Fatalf("expected 2 qualified, got %d", len(got.Qualified))
			}
			if got.Qualified[0].TeamID != "t1" {
				t.Fatalf("expected leader t1 to qualify first, got %s", got.Qualified[0].TeamID)
			}
			if got.Qualified[1].Points != 8 {
				t.Fatalf("expected second qualifier on 8 points, got %d", got.Qualified[1].Points)
			}
			if len(got.Eliminated) != 2 {
				t.Fatalf("expected 2 eliminated, got %d", len(got.Eliminated))
			}

			again := ComputeQualification(rows, 2, tb)
			if diff := cmp.Diff(teamIDs(got.Qualified), teamIDs(again.Qualified)); diff != "" {
				t.Fatalf("qualification is not deterministic (-first +second):\n%s", diff)
			}
		})
	}
}

func TestComputeQualificationStatsTieBreak(t *testing.T) {
	rows := groupRows(6, 6, 6, 6)
	rows[0].Wins, rows[0].Losses = 1, 2
	rows[1].Wins, rows[1].Losses = 2, 1
	rows[2].Wins, rows[2].Losses = 2, 0
	rows[3].Wins, rows[3].Losses = 2, 0
	rows[2].TeamName = "zeta"
	rows[3].TeamName = "Alpha"

	got := ComputeQualification(rows, 3, TieBreakStats)
	want := []string{"t4", "t3", "t2"}
	if diff := cmp.Diff(want, teamIDs(got.Qualified)); diff != "" {
		t.Fatalf("unexpected qualified order (-want +got):\n%s", diff)
	}
}

func TestComputeQualificationInsertionTieBreak(t *testing.T) {
	rows := groupRows(3, 3, 3)
	rows[0].CreatedAt = rows[2].CreatedAt.Add(time.Hour)

	got := ComputeQualification(rows, 1, TieBreakInsertion)
	if got.Qualified[0].TeamID != "t2" {
		t.Fatalf("expected earliest inserted t2 to win tie, got %s", got.Qualified[0].TeamID)
	}
}

func TestComputeQualificationBounds(t *testing.T) {
	t.Run("defaults non-positive advance to two", func(t *testing.T) {
		got := ComputeQualification(groupRows(1, 2, 3, 4), 0, TieBreakStats)
		if len(got.Qualified) != DefaultAdvance {
			t.Fatalf("expected %d qualified, got %d", DefaultAdvance, len(got.Qualified))
		}
	})

	t.Run("everyone qualifies in a small group", func(t *testing.T) {
		got := ComputeQualification(groupRows(1, 2), 4, TieBreakStats)
		if len(got.Qualified) != 2 || len(got.Eliminated) != 0 {
			t.Fatalf("expected all qualified, got %d/%d", len(got.Qualified), len(got.Eliminated))
		}
	})

	t.Run("empty group", func(t *testing.T) {
		got := ComputeQualification(nil, 2, TieBreakStats)
		if len(got.Qualified) != 0 || len(got.Eliminated) != 0 {
			t.Fatalf("expected empty result, got %+v", got)
		}
	})
}

func TestComputeQualificationDoesNotMutateInput(t *testing.T) {
	rows := groupRows(1, 9, 4)
	before := teamIDs(rows)

	_ = ComputeQualification(rows, 2, TieBreakStats)
	if diff := cmp.Diff(before, teamIDs(rows)); diff != "" {
		t.Fatalf("input was reordered (-before +after):\n%s", diff)
	}
}

func TestComputeQualificationMonotonicity(t *testing.T) {
	rows := groupRows(10, 8, 6, 5)
	before := ComputeQualification(rows, 2, TieBreakStats)

	rows[3].Points = 9
	after := ComputeQualification(rows, 2, TieBreakStats)

	if _, ok := after.QualifiedTeamIDs()["t4"]; !ok {
		t.Fatalf("expected t4 to enter qualified set")
	}
	dropped := 0
	afterSet := after.QualifiedTeamIDs()
	for id := range before.QualifiedTeamIDs() {
		if _, ok := afterSet[id]; !ok {
			dropped++
			if id != "t2" {
				t.Fatalf("expected t2 to drop out, got %s", id)
			}
		}
	}
	if dropped != 1 {
		t.Fatalf("expected exactly one team to drop out, got %d", dropped)
	}
}

func TestComputeQualificationChanged(t *testing.T) {
	rows := groupRows(10, 8, 6)
	rows[2].IsQualified = true

	got := ComputeQualification(rows, 2, TieBreakStats)
	changed := teamIDs(got.Changed())
	if diff := cmp.Diff([]string{"t1", "t2", "t3"}, changed); diff != "" {
		t.Fatalf("unexpected changed rows (-want +got):\n%s", diff)
	}
}

func TestComputeQualificationRandomGroups(t *testing.T) {
	faker := gofakeit.New(42)

	for round := 0; round < 200; round++ {
		size := faker.Number(0, 12)
		advance := faker.Number(1, 6)
		points := make([]int, size)
		for i := range points {
			points[i] = faker.Number(0, 9)
		}
		rows := groupRows(points...)
		for i := range rows {
			rows[i].Wins = faker.Number(0, 3)
			rows[i].TeamName = faker.Company()
		}

		got := ComputeQualification(rows, advance, TieBreakStats)

		wantQualified := advance
		if wantQualified > size {
			wantQualified = size
		}
		if len(got.Qualified) != wantQualified {
			t.Fatalf("round %d: expected %d qualified, got %d", round, wantQualified, len(got.Qualified))
		}
		if len(got.Qualified)+len(got.Eliminated) != size {
			t.Fatalf("round %d: partition lost rows", round)
		}
		for _, q := range got.Qualified {
			for _, e := range got.Eliminated {
				if q.Points < e.Points {
					t.Fatalf("round %d: qualified %s has fewer points than eliminated %s", round, q.TeamID, e.TeamID)
				}
			}
		}

		again := ComputeQualification(got.Ranked, advance, TieBreakStats)
		if diff := cmp.Diff(teamIDs(got.Qualified), teamIDs(again.Qualified)); diff != "" {
			t.Fatalf("round %d: ranking is not idempotent:\n%s", round, diff)
		}
	}
}

func TestParseTieBreak(t *testing.T) {
	if tb, err := ParseTieBreak(""); err != nil || tb != TieBreakStats {
		t.Fatalf("expected default stats tie break, got %s err=%v", tb, err)
	}
	if tb, err := ParseTieBreak(" Insertion "); err != nil || tb != TieBreakInsertion {
		t.Fatalf("expected insertion tie break, got %s err=%v", tb, err)
	}
	if _, err := ParseTieBreak("coin-flip"); err == nil {
		t.Fatalf("expected error for unknown tie break")
	}
}
