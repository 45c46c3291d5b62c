package memory

import (
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/team"
	"github.com/riskibarqy/tournament-hub/internal/domain/tournament"
)

const (
	TournamentIDSpringCup = "spring-cup-2026"
	seedCaptainID         = "seed-captain"
)

func SeedTournaments() []tournament.Tournament {
	advance := 2
	groups := 2
	return []tournament.Tournament{
		{
			ID:                   TournamentIDSpringCup,
			Name:                 "Spring Cup 2026",
			Description:          "Open 5v5 cup with a group stage and a knockout bracket.",
			StartDate:            time.Date(2026, 4, 1, 16, 0, 0, 0, time.UTC),
			MaxTeams:             8,
			TeamSize:             5,
			EntryFee:             25,
			Type:                 tournament.TypeGroupKnockout,
			MatchType:            tournament.MatchTypeBO3,
			Status:               tournament.StatusRegistrationOpen,
			NumGroups:            &groups,
			TeamsPerGroupQualify: &advance,
			PrizePool:            1000,
			PrizeDistribution:    tournament.DefaultPrizeDistribution(),
		},
	}
}

func SeedTeams() []team.Team {
	names := []string{"Night Owls", "Iron Wolves", "Crimson Tide", "Silent Storm"}
	out := make([]team.Team, 0, len(names))
	for i, name := range names {
		out = append(out, team.Team{
			ID:           "seed-team-" + string(rune('a'+i)),
			TournamentID: TournamentIDSpringCup,
			Name:         name,
			CaptainID:    seedCaptainID,
			Status:       team.StatusRegistered,
		})
	}
	return out
}
