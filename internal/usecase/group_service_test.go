package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/tournament-hub/internal/domain/standing"
	"github.com/riskibarqy/tournament-hub/internal/domain/team"
)

func newGroupServiceFixture(t *testing.T) (*tournamentFixture, *GroupService) {
	t.Helper()

	fx := newTournamentFixture(t, intPtr(1))
	svc := NewGroupService(fx.tournaments, fx.groups, fx.standings, fx.teams, standing.TieBreakStats, fx.ids, nil)
	return fx, svc
}

func TestGroupService_CreateGroups_NamesInOrder(t *testing.T) {
	t.Parallel()

	fx, svc := newGroupServiceFixture(t)
	groups, err := svc.CreateGroups(context.Background(), "cup", 3)
	if err != nil {
		t.Fatalf("create groups: %v", err)
	}

	want := []string{"Group A", "Group B", "Group C"}
	for i, grp := range groups {
		if grp.Name != want[i] || grp.TournamentID != "cup" {
			t.Fatalf("unexpected group %d: %+v", i, grp)
		}
	}

	stored, err := fx.groups.ListByTournament(context.Background(), "cup")
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected 3 stored groups, got %d", len(stored))
	}
}

func TestGroupService_CreateGroups_SecondCallAddsAnotherSet(t *testing.T) {
	t.Parallel()

	fx, svc := newGroupServiceFixture(t)
	ctx := context.Background()
	if _, err := svc.CreateGroups(ctx, "cup", 2); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateGroups(ctx, "cup", 2); err != nil {
		t.Fatalf("second create: %v", err)
	}

	stored, err := fx.groups.ListByTournament(ctx, "cup")
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(stored) != 4 {
		t.Fatalf("expected duplicate names to be stored, got %d groups", len(stored))
	}
}

func TestGroupService_CreateGroups_Validation(t *testing.T) {
	t.Parallel()

	_, svc := newGroupServiceFixture(t)
	tests := []struct {
		name         string
		tournamentID string
		count        int
	}{
		{name: "zero count", tournamentID: "cup", count: 0},
		{name: "too many", tournamentID: "cup", count: 27},
		{name: "missing tournament id", tournamentID: " ", count: 2},
		{name: "unknown tournament", tournamentID: "ghost", count: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateGroups(context.Background(), tt.tournamentID, tt.count); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestGroupService_AssignTeam(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx, svc := newGroupServiceFixture(t)
	groups, err := svc.CreateGroups(ctx, "cup", 1)
	if err != nil {
		t.Fatalf("create groups: %v", err)
	}
	if err := fx.teams.Create(ctx, team.Team{ID: "t1", TournamentID: "cup", Name: "Night Owls", Status: team.StatusRegistered}); err != nil {
		t.Fatalf("create team: %v", err)
	}

	row, err := svc.AssignTeam(ctx, AssignTeamInput{TeamID: "t1", GroupID: groups[0].ID})
	if err != nil {
		t.Fatalf("assign team: %v", err)
	}
	if row.Points != 0 || row.GamesPlayed != 0 || row.IsQualified {
		t.Fatalf("expected zeroed standing, got %+v", row)
	}

	item, _, err := fx.teams.GetByID(ctx, "t1")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if item.GroupName != "Group A" {
		t.Fatalf("expected group name to sync, got %q", item.GroupName)
	}

	// Assignment alone never evaluates qualification.
	if item.Status != team.StatusRegistered {
		t.Fatalf("expected status unchanged, got %s", item.Status)
	}

	_, err = svc.AssignTeam(ctx, AssignTeamInput{TeamID: "t1", GroupID: groups[0].ID, GroupName: "Group A"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for second assignment, got %v", err)
	}
}

func TestGroupService_AssignTeam_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx, svc := newGroupServiceFixture(t)
	fx.addGroup(t, "A")
	if err := fx.teams.Create(ctx, team.Team{ID: "other", TournamentID: "another-cup", Name: "Strangers"}); err != nil {
		t.Fatalf("create team: %v", err)
	}

	if _, err := svc.AssignTeam(ctx, AssignTeamInput{TeamID: "ghost", GroupID: "A"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing team, got %v", err)
	}
	if _, err := svc.AssignTeam(ctx, AssignTeamInput{TeamID: "other", GroupID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing group, got %v", err)
	}
	if _, err := svc.AssignTeam(ctx, AssignTeamInput{TeamID: "other", GroupID: "A"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for cross-tournament team, got %v", err)
	}
}

func TestGroupService_ListTables(t *testing.T) {
	t.Parallel()

	fx, svc := newGroupServiceFixture(t)
	fx.addGroup(t, "A", 1, 4)
	fx.addGroup(t, "B", 7)

	tables, err := svc.ListTables(context.Background(), "cup")
	if err != nil {
		t.Fatalf("list tables: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	for _, table := range tables {
		if table.Group.ID == "A" && table.Standings[0].TeamID != "A-t2" {
			t.Fatalf("expected group A leader A-t2, got %s", table.Standings[0].TeamID)
		}
	}
}
