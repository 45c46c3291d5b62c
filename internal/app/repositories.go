package app

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-hub/internal/domain/group"
	"github.com/riskibarqy/tournament-hub/internal/domain/joinrequest"
	"github.com/riskibarqy/tournament-hub/internal/domain/match"
	"github.com/riskibarqy/tournament-hub/internal/domain/payment"
	"github.com/riskibarqy/tournament-hub/internal/domain/profile"
	"github.com/riskibarqy/tournament-hub/internal/domain/standing"
	"github.com/riskibarqy/tournament-hub/internal/domain/team"
	"github.com/riskibarqy/tournament-hub/internal/domain/tournament"
	"github.com/riskibarqy/tournament-hub/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/tournament-hub/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-hub/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/tournament-hub/internal/platform/cache"
)

type repositories struct {
	tournaments  tournament.Repository
	groups       group.Repository
	standings    standing.Repository
	teams        team.Repository
	matches      match.Repository
	payments     payment.Repository
	profiles     profile.Repository
	joinRequests joinrequest.Repository
}

// memoryRepositories starts from the seeded demo tournament.
func memoryRepositories() repositories {
	tournaments := memory.NewTournamentRepository(memory.SeedTournaments())
	teams := memory.NewTeamRepository(memory.SeedTeams())
	return repositories{
		tournaments:  tournaments,
		groups:       memory.NewGroupRepository(tournaments),
		standings:    memory.NewStandingRepository(teams),
		teams:        teams,
		matches:      memory.NewMatchRepository(),
		payments:     memory.NewPaymentRepository(),
		profiles:     memory.NewProfileRepository(),
		joinRequests: memory.NewJoinRequestRepository(),
	}
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		tournaments:  postgres.NewTournamentRepository(db),
		groups:       postgres.NewGroupRepository(db),
		standings:    postgres.NewStandingRepository(db),
		teams:        postgres.NewTeamRepository(db),
		matches:      postgres.NewMatchRepository(db),
		payments:     postgres.NewPaymentRepository(db),
		profiles:     postgres.NewProfileRepository(db),
		joinRequests: postgres.NewJoinRequestRepository(db),
	}
}

// cached puts the read-heavy repositories behind one shared TTL store. Every
// write through a decorator drops the keys it can affect.
func (r repositories) cached(ttl time.Duration) repositories {
	store := basecache.NewStore(ttl)
	r.tournaments = cache.NewTournamentRepository(r.tournaments, store)
	r.groups = cache.NewGroupRepository(r.groups, store)
	r.standings = cache.NewStandingRepository(r.standings, store)
	r.teams = cache.NewTeamRepository(r.teams, store)
	return r
}
