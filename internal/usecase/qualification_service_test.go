package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/event"
	"github.com/riskibarqy/tournament-hub/internal/domain/standing"
	"github.com/riskibarqy/tournament-hub/internal/domain/team"
)

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *recordingMetrics) ObserveRecompute(outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func TestQualificationService_RecomputeGroup_TopTwoAdvance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newTournamentFixture(t, intPtr(2))
	fx.addGroup(t, "A", 10, 8, 8, 5)
	svc := fx.qualificationService(QualificationConfig{})

	result, err := svc.RecomputeGroup(ctx, "A")
	if err != nil {
		t.Fatalf("recompute group: %v", err)
	}
	if result.Advance != 2 || result.StandingCount != 4 {
		t.Fatalf("unexpected result: %+v", result)
	}

	qualified := fx.qualifiedTeams(t, "A")
	if len(qualified) != 2 || !qualified["A-t1"] || !qualified["A-t2"] {
		t.Fatalf("unexpected qualified set: %v", qualified)
	}
	if got := fx.teamStatus(t, "A-t1"); got != team.StatusQualified {
		t.Fatalf("expected A-t1 qualified, got %s", got)
	}
	if got := fx.teamStatus(t, "A-t3"); got != team.StatusRegistered {
		t.Fatalf("expected A-t3 registered, got %s", got)
	}
	if len(result.PromotedTeamIDs) != 2 {
		t.Fatalf("expected two promotions, got %v", result.PromotedTeamIDs)
	}
}

func TestQualificationService_RecomputeGroup_UsesConfiguredDefaultAdvance(t *testing.T) {
	t.Parallel()

	fx := newTournamentFixture(t, nil)
	fx.addGroup(t, "A", 9, 7, 5, 3)
	svc := fx.qualificationService(QualificationConfig{DefaultAdvance: 3})

	result, err := svc.RecomputeGroup(context.Background(), "A")
	if err != nil {
		t.Fatalf("recompute group: %v", err)
	}
	if result.Advance != 3 {
		t.Fatalf("expected advance 3, got %d", result.Advance)
	}
	if got := len(fx.qualifiedTeams(t, "A")); got != 3 {
		t.Fatalf("expected 3 qualified standings, got %d", got)
	}
}

func TestQualificationService_RecomputeGroup_IsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newTournamentFixture(t, intPtr(2))
	fx.addGroup(t, "A", 10, 8, 8, 5)
	svc := fx.qualificationService(QualificationConfig{})

	if _, err := svc.RecomputeGroup(ctx, "A"); err != nil {
		t.Fatalf("first recompute: %v", err)
	}
	second, err := svc.RecomputeGroup(ctx, "A")
	if err != nil {
		t.Fatalf("second recompute: %v", err)
	}
	if len(second.PromotedTeamIDs) != 0 || len(second.RevertedTeamIDs) != 0 {
		t.Fatalf("expected no status writes on rerun, got promoted=%v reverted=%v", second.PromotedTeamIDs, second.RevertedTeamIDs)
	}
	qualified := fx.qualifiedTeams(t, "A")
	if len(qualified) != 2 || !qualified["A-t1"] || !qualified["A-t2"] {
		t.Fatalf("unexpected qualified set after rerun: %v", qualified)
	}
}

func TestQualificationService_RecomputeGroup_RevertsTeamThatDropsOut(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newTournamentFixture(t, intPtr(2))
	ids := fx.addGroup(t, "A", 10, 8, 8, 5)
	svc := fx.qualificationService(QualificationConfig{})

	if _, err := svc.RecomputeGroup(ctx, "A"); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	points := 20
	if _, _, err := fx.standings.Update(ctx, ids[3], standing.Patch{Points: &points}); err != nil {
		t.Fatalf("update standing: %v", err)
	}
	result, err := svc.RecomputeGroup(ctx, "A")
	if err != nil {
		t.Fatalf("recompute after update: %v", err)
	}

	qualified := fx.qualifiedTeams(t, "A")
	if len(qualified) != 2 || !qualified["A-t4"] || !qualified["A-t1"] {
		t.Fatalf("unexpected qualified set: %v", qualified)
	}
	if got := fx.teamStatus(t, "A-t2"); got != team.StatusRegistered {
		t.Fatalf("expected A-t2 reverted to registered, got %s", got)
	}
	if got := fx.teamStatus(t, "A-t4"); got != team.StatusQualified {
		t.Fatalf("expected A-t4 qualified, got %s", got)
	}
	if len(result.RevertedTeamIDs) != 1 || result.RevertedTeamIDs[0] != "A-t2" {
		t.Fatalf("unexpected reverted teams: %v", result.RevertedTeamIDs)
	}
}

func TestQualificationService_RecomputeGroup_QualifiesUnpaidTopTeamsButNotEliminated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newTournamentFixture(t, intPtr(2))
	fx.addGroup(t, "A", 10, 8, 8, 5)
	if err := fx.teams.UpdateStatus(ctx, "A-t1", team.StatusPendingPayment); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if err := fx.teams.UpdateStatus(ctx, "A-t2", team.StatusEliminated); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if err := fx.teams.UpdateStatus(ctx, "A-t4", team.StatusIncomplete); err != nil {
		t.Fatalf("set status: %v", err)
	}
	svc := fx.qualificationService(QualificationConfig{})

	result, err := svc.RecomputeGroup(ctx, "A")
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}

	qualified := fx.qualifiedTeams(t, "A")
	if !qualified["A-t1"] || !qualified["A-t2"] {
		t.Fatalf("standing flags should follow the ranking, got %v", qualified)
	}
	if len(result.PromotedTeamIDs) != 1 || result.PromotedTeamIDs[0] != "A-t1" {
		t.Fatalf("unexpected promoted teams: %v", result.PromotedTeamIDs)
	}
	want := map[string]team.Status{
		"A-t1": team.StatusQualified,
		"A-t2": team.StatusEliminated,
		"A-t3": team.StatusRegistered,
		"A-t4": team.StatusIncomplete,
	}
	for teamID, status := range want {
		if got := fx.teamStatus(t, teamID); got != status {
			t.Fatalf("team %s: got=%s want=%s", teamID, got, status)
		}
	}
}

func TestQualificationService_RecomputeGroup_Validation(t *testing.T) {
	t.Parallel()

	fx := newTournamentFixture(t, intPtr(2))
	svc := fx.qualificationService(QualificationConfig{})

	if _, err := svc.RecomputeGroup(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.RecomputeGroup(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestQualificationService_RecomputeGroup_EmptyGroup(t *testing.T) {
	t.Parallel()

	fx := newTournamentFixture(t, intPtr(2))
	fx.addGroup(t, "A")
	svc := fx.qualificationService(QualificationConfig{})

	result, err := svc.RecomputeGroup(context.Background(), "A")
	if err != nil {
		t.Fatalf("recompute empty group: %v", err)
	}
	if result.StandingCount != 0 || len(result.QualifiedTeamIDs) != 0 {
		t.Fatalf("unexpected result for empty group: %+v", result)
	}
}

func TestQualificationService_HandleStandingUpdated(t *testing.T) {
	t.Parallel()

	fx := newTournamentFixture(t, intPtr(1))
	fx.addGroup(t, "A", 1, 3)
	metrics := &recordingMetrics{}
	svc := NewQualificationService(fx.tournaments, fx.groups, fx.standings, fx.teams, QualificationConfig{}, metrics, nil)

	err := svc.HandleStandingUpdated(context.Background(), event.StandingUpdated{StandingID: "A-s2", GroupID: "A"})
	if err != nil {
		t.Fatalf("handle standing updated: %v", err)
	}
	qualified := fx.qualifiedTeams(t, "A")
	if len(qualified) != 1 || !qualified["A-t2"] {
		t.Fatalf("unexpected qualified set: %v", qualified)
	}
	if len(metrics.outcomes) != 1 || metrics.outcomes[0] != recomputeOutcomeSuccess {
		t.Fatalf("unexpected metric outcomes: %v", metrics.outcomes)
	}
}

func TestQualificationService_RecomputeTournament_AllGroups(t *testing.T) {
	t.Parallel()

	fx := newTournamentFixture(t, intPtr(2))
	fx.addGroup(t, "B", 4, 6, 2)
	fx.addGroup(t, "A", 10, 8, 8, 5)
	svc := fx.qualificationService(QualificationConfig{Workers: 4})

	result, err := svc.RecomputeTournament(context.Background(), "cup")
	if err != nil {
		t.Fatalf("recompute tournament: %v", err)
	}
	if result.GroupCount != 2 || result.FailedCount != 0 || result.WorkerCount != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.Groups) != 2 || result.Groups[0].GroupID != "A" || result.Groups[1].GroupID != "B" {
		t.Fatalf("unexpected group order: %+v", result.Groups)
	}

	qualifiedB := fx.qualifiedTeams(t, "B")
	if len(qualifiedB) != 2 || !qualifiedB["B-t1"] || !qualifiedB["B-t2"] {
		t.Fatalf("unexpected group B qualified set: %v", qualifiedB)
	}
}

func TestQualificationService_RecomputeTournament_NotFound(t *testing.T) {
	t.Parallel()

	fx := newTournamentFixture(t, intPtr(2))
	svc := fx.qualificationService(QualificationConfig{})

	if _, err := svc.RecomputeTournament(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNormalizeRecomputeWorkerCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value, tasks, want int
	}{
		{value: 0, tasks: 3, want: 1},
		{value: 4, tasks: 3, want: 3},
		{value: 32, tasks: 20, want: maxRecomputeWorkers},
		{value: 2, tasks: 0, want: 1},
	}
	for _, tt := range tests {
		if got := normalizeRecomputeWorkerCount(tt.value, tt.tasks); got != tt.want {
			t.Fatalf("normalize(%d, %d): got=%d want=%d", tt.value, tt.tasks, got, tt.want)
		}
	}
}
