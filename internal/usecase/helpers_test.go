package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/event"
	"github.com/riskibarqy/tournament-hub/internal/domain/group"
	"github.com/riskibarqy/tournament-hub/internal/domain/standing"
	"github.com/riskibarqy/tournament-hub/internal/domain/team"
	"github.com/riskibarqy/tournament-hub/internal/domain/tournament"
	"github.com/riskibarqy/tournament-hub/internal/infrastructure/repository/memory"
)

type sequenceIDs struct {
	prefix string
	next   atomic.Int64
}

func (g *sequenceIDs) NewID() (string, error) {
	return fmt.Sprintf("%s-%d", g.prefix, g.next.Add(1)), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.StandingUpdated
}

func (p *recordingPublisher) PublishStandingUpdated(_ context.Context, evt event.StandingUpdated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

type fakeFileStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	signErr error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{objects: make(map[string][]byte)}
}

func (s *fakeFileStore) Put(_ context.Context, key, _ string, body io.Reader) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = buf.Bytes()
	return nil
}

func (s *fakeFileStore) SignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}
	return fmt.Sprintf("https://files.test/private/%s?expires=%d", key, int(ttl.Seconds())), nil
}

func (s *fakeFileStore) PublicURL(key string) string {
	return "https://files.test/public/" + key
}

// tournamentFixture wires the memory store with one tournament.
type tournamentFixture struct {
	tournaments *memory.TournamentRepository
	groups      *memory.GroupRepository
	teams       *memory.TeamRepository
	standings   *memory.StandingRepository
	ids         *sequenceIDs
	created     time.Time
}

func newTournamentFixture(t *testing.T, advance *int) *tournamentFixture {
	t.Helper()

	tournaments := memory.NewTournamentRepository([]tournament.Tournament{{
		ID:                   "cup",
		Name:                 "Cup",
		StartDate:            time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		MaxTeams:             16,
		TeamSize:             5,
		Type:                 tournament.TypeGroupKnockout,
		MatchType:            tournament.MatchTypeBO3,
		Status:               tournament.StatusInProgress,
		TeamsPerGroupQualify: advance,
	}})
	teams := memory.NewTeamRepository(nil)
	return &tournamentFixture{
		tournaments: tournaments,
		groups:      memory.NewGroupRepository(tournaments),
		teams:       teams,
		standings:   memory.NewStandingRepository(teams),
		ids:         &sequenceIDs{prefix: "id"},
		created:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// addGroup creates a group with one registered team per points entry and returns standing ids in order.
func (f *tournamentFixture) addGroup(t *testing.T, groupID string, points ...int) []string {
	t.Helper()
	ctx := context.Background()

	if err := f.groups.CreateBatch(ctx, []group.Group{{ID: groupID, TournamentID: "cup", Name: "Group " + groupID}}); err != nil {
		t.Fatalf("create group: %v", err)
	}

	ids := make([]string, 0, len(points))
	for i, p := range points {
		teamID := fmt.Sprintf("%s-t%d", groupID, i+1)
		if err := f.teams.Create(ctx, team.Team{
			ID:           teamID,
			TournamentID: "cup",
			Name:         fmt.Sprintf("Team %s%d", groupID, i+1),
			CaptainID:    "captain-" + teamID,
			Status:       team.StatusRegistered,
		}); err != nil {
			t.Fatalf("create team: %v", err)
		}

		row := standing.Zeroed(fmt.Sprintf("%s-s%d", groupID, i+1), groupID, teamID, f.created.Add(time.Duration(i)*time.Second))
		row.Points = p
		if err := f.standings.Create(ctx, row); err != nil {
			t.Fatalf("create standing: %v", err)
		}
		ids = append(ids, row.ID)
	}
	return ids
}

func (f *tournamentFixture) qualificationService(cfg QualificationConfig) *QualificationService {
	return NewQualificationService(f.tournaments, f.groups, f.standings, f.teams, cfg, nil, nil)
}

func (f *tournamentFixture) qualifiedTeams(t *testing.T, groupID string) map[string]bool {
	t.Helper()

	rows, err := f.standings.ListByGroup(context.Background(), groupID)
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	out := make(map[string]bool, len(rows))
	for _, row := range rows {
		if row.IsQualified {
			out[row.TeamID] = true
		}
	}
	return out
}

func (f *tournamentFixture) teamStatus(t *testing.T, teamID string) team.Status {
	t.Helper()

	item, ok, err := f.teams.GetByID(context.Background(), teamID)
	if err != nil || !ok {
		t.Fatalf("get team %s: ok=%t err=%v", teamID, ok, err)
	}
	return item.Status
}

func intPtr(v int) *int { return &v }
