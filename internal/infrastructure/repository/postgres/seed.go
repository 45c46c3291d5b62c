package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-hub/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo tournament into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM tournaments`); err != nil {
		return fmt.Errorf("count tournaments for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range memory.SeedTournaments() {
		distribution, err := marshalPrizeDistribution(t.PrizeDistribution)
		if err != nil {
			return fmt.Errorf("encode seed tournament %s prize distribution: %w", t.ID, err)
		}
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO tournaments (id, name, description, start_date, max_teams, team_size, entry_fee,
    tournament_type, match_type, status, num_groups, teams_per_group_qualify, prize_pool, prize_distribution)
VALUES (:id, :name, :description, :start_date, :max_teams, :team_size, :entry_fee,
    :tournament_type, :match_type, :status, :num_groups, :teams_per_group_qualify, :prize_pool, :prize_distribution)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":                      t.ID,
			"name":                    t.Name,
			"description":             t.Description,
			"start_date":              t.StartDate.UTC(),
			"max_teams":               t.MaxTeams,
			"team_size":               t.TeamSize,
			"entry_fee":               t.EntryFee,
			"tournament_type":         string(t.Type),
			"match_type":              string(t.MatchType),
			"status":                  string(t.Status),
			"num_groups":              nullableInt(t.NumGroups),
			"teams_per_group_qualify": nullableInt(t.TeamsPerGroupQualify),
			"prize_pool":              t.PrizePool,
			"prize_distribution":      distribution,
		})
		if err != nil {
			return fmt.Errorf("bind seed tournament %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed tournament %s: %w", t.ID, err)
		}
	}

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (id, tournament_id, name, captain_id, status)
VALUES (:id, :tournament_id, :name, :captain_id, :status)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":            t.ID,
			"tournament_id": t.TournamentID,
			"name":          t.Name,
			"captain_id":    t.CaptainID,
			"status":        string(t.Status),
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
