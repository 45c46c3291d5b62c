package standing

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultAdvance is used when a non-positive advance count is given.
const DefaultAdvance = 2

// TieBreak selects how equal points are ordered.
type TieBreak string

const (
	// TieBreakStats orders equal points by wins desc, losses asc, team name, team id.
	TieBreakStats TieBreak = "stats"
	// TieBreakInsertion orders equal points by creation time then standing id.
	TieBreakInsertion TieBreak = "insertion"
)

// ParseTieBreak reads a config value; empty means stats.
func ParseTieBreak(raw string) (TieBreak, error) {
	switch TieBreak(strings.ToLower(strings.TrimSpace(raw))) {
	case "", TieBreakStats:
		return TieBreakStats, nil
	case TieBreakInsertion:
		return TieBreakInsertion, nil
	default:
		return "", fmt.Errorf("unknown tie break %q", raw)
	}
}

// Row is a standing joined with the team name used for ordering.
type Row struct {
	Standing
	TeamName string
}

// Qualification is the outcome of ranking one group.
type Qualification struct {
	Ranked     []Row
	Qualified  []Row
	Eliminated []Row
}

// QualifiedTeamIDs is the set of teams that advance.
func (q Qualification) QualifiedTeamIDs() map[string]struct{} {
	out := make(map[string]struct{}, len(q.Qualified))
	for _, row := range q.Qualified {
		out[row.TeamID] = struct{}{}
	}
	return out
}

// QualifiedStandingIDs lists the standing rows to flag is_qualified=true.
func (q Qualification) QualifiedStandingIDs() []string {
	return standingIDs(q.Qualified)
}

// EliminatedStandingIDs lists the standing rows to flag is_qualified=false.
func (q Qualification) EliminatedStandingIDs() []string {
	return standingIDs(q.Eliminated)
}

// Changed lists rows whose stored flag differs from the computed outcome.
func (q Qualification) Changed() []Row {
	qualified := q.QualifiedTeamIDs()
	out := make([]Row, 0)
	for _, row := range q.Ranked {
		_, want := qualified[row.TeamID]
		if row.IsQualified != want {
			out = append(out, row)
		}
	}
	return out
}

// ComputeQualification ranks rows and splits them into the top advance and the rest.
// It does not mutate its input and returns the same result for the same input.
func ComputeQualification(rows []Row, advance int, tieBreak TieBreak) Qualification {
	if advance <= 0 {
		advance = DefaultAdvance
	}

	ranked := Rank(rows, tieBreak)
	cut := advance
	if cut > len(ranked) {
		cut = len(ranked)
	}

	return Qualification{
		Ranked:     ranked,
		Qualified:  ranked[:cut:cut],
		Eliminated: ranked[cut:],
	}
}

// Rank returns a sorted copy of rows, points descending then the tie-break chain.
func Rank(rows []Row, tieBreak TieBreak) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)

	less := statsLess
	if tieBreak == TieBreakInsertion {
		less = insertionLess
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return less(out[i], out[j])
	})
	return out
}

func statsLess(a, b Row) bool {
	if a.Wins != b.Wins {
		return a.Wins > b.Wins
	}
	if a.Losses != b.Losses {
		return a.Losses < b.Losses
	}
	an, bn := strings.ToLower(a.TeamName), strings.ToLower(b.TeamName)
	if an != bn {
		return an < bn
	}
	return a.TeamID < b.TeamID
}

func insertionLess(a, b Row) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func standingIDs(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ID)
	}
	return out
}
