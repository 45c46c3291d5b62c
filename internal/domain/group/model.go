package group

import (
	"fmt"
	"strings"
	"time"
)

// Group partitions a tournament's teams for the round-robin stage.
type Group struct {
	ID           string
	TournamentID string
	Name         string
	CreatedAt    time.Time
}

func (g Group) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("group id is required")
	}
	if strings.TrimSpace(g.TournamentID) == "" {
		return fmt.Errorf("group tournament id is required")
	}
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("group name is required")
	}
	return nil
}

// Names returns "Group A", "Group B", ... for count groups.
func Names(count int) []string {
	if count <= 0 {
		return nil
	}
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, "Group "+string(rune('A'+i)))
	}
	return out
}
