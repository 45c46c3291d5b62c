package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/tournament-hub/internal/domain/match"
	"github.com/riskibarqy/tournament-hub/internal/infrastructure/repository/memory"
)

func newMatchFixture(t *testing.T) (*tournamentFixture, *MatchService) {
	t.Helper()

	fx := newTournamentFixture(t, intPtr(2))
	fx.addGroup(t, "A", 0, 0, 0, 0)
	svc := NewMatchService(fx.tournaments, memory.NewMatchRepository(), fx.teams, fx.ids, nil)
	return fx, svc
}

func TestMatchService_CreateAndRecordResult(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, svc := newMatchFixture(t)

	item, err := svc.Create(ctx, CreateMatchInput{
		TournamentID: "cup",
		GroupID:      "A",
		Team1ID:      "A-t1",
		Team2ID:      "A-t2",
		Stage:        match.StageGroup,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if item.MatchType != "bo3" {
		t.Fatalf("expected tournament match type, got %s", item.MatchType)
	}

	updated, err := svc.RecordResult(ctx, RecordResultInput{
		MatchID: item.ID,
		Result:  match.Result{Team1Score: 2, Team2Score: 1, WinnerID: " A-t1 "},
	})
	if err != nil {
		t.Fatalf("record result: %v", err)
	}
	if !updated.IsCompleted || updated.WinnerID != "A-t1" || updated.PlayedAt == nil {
		t.Fatalf("unexpected match after result: %+v", updated)
	}

	_, err = svc.RecordResult(ctx, RecordResultInput{MatchID: item.ID, Result: match.Result{WinnerID: "A-t3"}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for foreign winner, got %v", err)
	}
	_, err = svc.RecordResult(ctx, RecordResultInput{MatchID: "ghost", Result: match.Result{}})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchService_Create_Validation(t *testing.T) {
	t.Parallel()

	_, svc := newMatchFixture(t)
	tests := []struct {
		name  string
		input CreateMatchInput
		want  error
	}{
		{name: "unknown tournament", input: CreateMatchInput{TournamentID: "ghost", Stage: match.StageGroup, GroupID: "A"}, want: ErrNotFound},
		{name: "same teams", input: CreateMatchInput{TournamentID: "cup", Stage: match.StageGroup, GroupID: "A", Team1ID: "A-t1", Team2ID: "A-t1"}, want: ErrInvalidInput},
		{name: "knockout without slot", input: CreateMatchInput{TournamentID: "cup", Stage: match.StageKnockout}, want: ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestMatchService_Bracket(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, svc := newMatchFixture(t)

	knockout := []struct {
		round, position int
		team1, team2    string
	}{
		{round: 1, position: 1, team1: "A-t1", team2: "A-t2"},
		{round: 1, position: 2, team1: "A-t3", team2: "A-t4"},
		{round: 2, position: 1},
	}
	for _, km := range knockout {
		round, position := km.round, km.position
		if _, err := svc.Create(ctx, CreateMatchInput{
			TournamentID:    "cup",
			Team1ID:         km.team1,
			Team2ID:         km.team2,
			Stage:           match.StageKnockout,
			BracketRound:    &round,
			BracketPosition: &position,
		}); err != nil {
			t.Fatalf("create knockout match: %v", err)
		}
	}
	if _, err := svc.Create(ctx, CreateMatchInput{TournamentID: "cup", GroupID: "A", Team1ID: "A-t1", Team2ID: "A-t3", Stage: match.StageGroup}); err != nil {
		t.Fatalf("create group match: %v", err)
	}

	rounds, err := svc.Bracket(ctx, "cup")
	if err != nil {
		t.Fatalf("bracket: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(rounds))
	}
	if rounds[0].Name != "Semifinal" || rounds[1].Name != "Final" {
		t.Fatalf("unexpected round names: %s, %s", rounds[0].Name, rounds[1].Name)
	}
	if len(rounds[0].Slots) != 2 || rounds[0].Slots[0].Team1Name != "Team A1" {
		t.Fatalf("unexpected first round: %+v", rounds[0].Slots)
	}
	if rounds[0].SlotHeight != 2*rounds[1].SlotHeight {
		t.Fatalf("expected first round column to be twice the final, got %d and %d", rounds[0].SlotHeight, rounds[1].SlotHeight)
	}
}
