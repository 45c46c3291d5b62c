package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-hub/internal/domain/tournament"
	qb "github.com/riskibarqy/tournament-hub/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) error {
	distribution, err := marshalPrizeDistribution(item.PrizeDistribution)
	if err != nil {
		return fmt.Errorf("encode prize distribution tournament=%s: %w", item.ID, err)
	}

	insertModel := tournamentInsertModel{
		ID:                    item.ID,
		Name:                  item.Name,
		Description:           nullableString(strings.TrimSpace(item.Description)),
		StartDate:             item.StartDate.UTC(),
		EndDate:               nullableTime(item.EndDate),
		MaxTeams:              item.MaxTeams,
		TeamSize:              item.TeamSize,
		EntryFee:              item.EntryFee,
		PlatformFeePercentage: item.PlatformFeePercentage,
		Type:                  string(item.Type),
		MatchType:             string(item.MatchType),
		Status:                string(item.Status),
		NumGroups:             nullableInt(item.NumGroups),
		TeamsPerGroupQualify:  nullableInt(item.TeamsPerGroupQualify),
		PrizePool:             item.PrizePool,
		PrizeDistribution:     distribution,
		IsLocked:              item.IsLocked,
		BannerURL:             nullableString(item.BannerURL),
	}
	query, args, err := qb.InsertModel("tournaments", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert tournament query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert tournament=%s: %w", item.ID, err)
	}
	return nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select("*").From("tournaments").
		Where(qb.Eq("id", tournamentID)).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get tournament by id query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament by id: %w", err)
	}

	item, err := tournamentFromRow(row)
	if err != nil {
		return tournament.Tournament{}, false, err
	}
	return item, true, nil
}

func (r *TournamentRepository) List(ctx context.Context, filter tournament.ListFilter) ([]tournament.Tournament, error) {
	builder := qb.Select("*").From("tournaments").OrderBy("start_date DESC", "id")
	if filter.Status != "" {
		builder.Where(qb.Eq("status", string(filter.Status)))
	}
	if filter.Limit > 0 {
		builder.Limit(filter.Limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournaments query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		item, err := tournamentFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *TournamentRepository) UpdateStatus(ctx context.Context, tournamentID string, status tournament.Status) error {
	query, args, err := qb.Update("tournaments").
		Set("status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", tournamentID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update tournament status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update tournament status: %w", err)
	}
	ok, err := rowsAffected(result)
	if err != nil {
		return fmt.Errorf("rows affected update tournament status: %w", err)
	}
	if !ok {
		return fmt.Errorf("update tournament status: tournament=%s not found", tournamentID)
	}
	return nil
}

func tournamentFromRow(row tournamentTableModel) (tournament.Tournament, error) {
	distribution, err := unmarshalPrizeDistribution(row.PrizeDistribution)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("decode prize distribution tournament=%s: %w", row.ID, err)
	}

	return tournament.Tournament{
		ID:                    row.ID,
		Name:                  row.Name,
		Description:           row.Description.String,
		StartDate:             row.StartDate.UTC(),
		EndDate:               timeFromNull(row.EndDate),
		MaxTeams:              row.MaxTeams,
		TeamSize:              row.TeamSize,
		EntryFee:              row.EntryFee,
		PlatformFeePercentage: row.PlatformFeePercentage,
		Type:                  tournament.Type(row.Type),
		MatchType:             tournament.MatchType(row.MatchType),
		Status:                tournament.Status(row.Status),
		NumGroups:             intFromNull(row.NumGroups),
		TeamsPerGroupQualify:  intFromNull(row.TeamsPerGroupQualify),
		PrizePool:             row.PrizePool,
		PrizeDistribution:     distribution,
		IsLocked:              row.IsLocked,
		BannerURL:             row.BannerURL.String,
		CreatedAt:             row.CreatedAt.UTC(),
		UpdatedAt:             row.UpdatedAt.UTC(),
	}, nil
}

func marshalPrizeDistribution(distribution tournament.PrizeDistribution) (string, error) {
	if len(distribution) == 0 {
		return "{}", nil
	}
	return sonic.MarshalString(distribution)
}

func unmarshalPrizeDistribution(raw []byte) (tournament.PrizeDistribution, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out tournament.PrizeDistribution
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
