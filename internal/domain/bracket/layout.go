// Package bracket turns knockout matches into a column-per-round layout.
package bracket

import (
	"sort"
	"strconv"
)

// DefaultSlotHeight is the pixel height of one first-round match slot.
const DefaultSlotHeight = 80

// Slot is a knockout match as rendered in the bracket.
type Slot struct {
	MatchID     string
	Round       int
	Position    int
	Team1ID     string
	Team1Name   string
	Team1Score  int
	Team2ID     string
	Team2Name   string
	Team2Score  int
	WinnerID    string
	IsCompleted bool
}

// Round is one bracket column.
type Round struct {
	Number     int
	Name       string
	SlotHeight int
	Slots      []Slot
}

var namesFromFinal = []string{"Final", "Semifinal", "Quarterfinal", "Round of 16"}

// RoundName labels round number out of totalRounds, counting back from the final.
func RoundName(round, totalRounds int) string {
	fromFinal := totalRounds - round
	if fromFinal >= 0 && fromFinal < len(namesFromFinal) {
		return namesFromFinal[fromFinal]
	}
	return "Round " + strconv.Itoa(round)
}

// Layout groups slots into totalRounds columns. Column r is 2^(totalRounds-r) slot
// heights tall so each match lines up with the two matches feeding it.
func Layout(slots []Slot, totalRounds, slotHeight int) []Round {
	if totalRounds <= 0 {
		return nil
	}
	if slotHeight <= 0 {
		slotHeight = DefaultSlotHeight
	}

	byRound := make(map[int][]Slot, totalRounds)
	for _, s := range slots {
		byRound[s.Round] = append(byRound[s.Round], s)
	}

	out := make([]Round, 0, totalRounds)
	for r := 1; r <= totalRounds; r++ {
		items := byRound[r]
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Position < items[j].Position
		})
		if items == nil {
			items = []Slot{}
		}
		out = append(out, Round{
			Number:     r,
			Name:       RoundName(r, totalRounds),
			SlotHeight: (1 << (totalRounds - r)) * slotHeight,
			Slots:      items,
		})
	}
	return out
}

// TotalRounds is the highest round present in slots.
func TotalRounds(slots []Slot) int {
	total := 0
	for _, s := range slots {
		if s.Round > total {
			total = s.Round
		}
	}
	return total
}
