package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/tournament-hub/internal/domain/team"
	qb "github.com/riskibarqy/tournament-hub/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	insertModel := teamInsertModel{
		ID:           item.ID,
		TournamentID: item.TournamentID,
		Name:         item.Name,
		LogoURL:      nullableString(item.LogoURL),
		CaptainID:    nullableString(item.CaptainID),
		Status:       string(item.Status),
		GroupName:    nullableString(item.GroupName),
		IsLocked:     item.IsLocked,
	}
	query, args, err := qb.InsertModel("teams", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team=%s: %w", item.ID, err)
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) ListByIDs(ctx context.Context, teamIDs []string) ([]team.Team, error) {
	if len(teamIDs) == 0 {
		return []team.Team{}, nil
	}

	query, args, err := qb.Select("*").From("teams").
		Where(qb.Any("id", pq.Array(teamIDs))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams by ids query: %w", err)
	}
	return r.selectTeams(ctx, query, args)
}

func (r *TeamRepository) ListByTournament(ctx context.Context, tournamentID string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("created_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams by tournament query: %w", err)
	}
	return r.selectTeams(ctx, query, args)
}

func (r *TeamRepository) UpdateStatus(ctx context.Context, teamID string, status team.Status) error {
	return r.updateColumn(ctx, teamID, "status", string(status))
}

func (r *TeamRepository) UpdateGroupName(ctx context.Context, teamID, groupName string) error {
	return r.updateColumn(ctx, teamID, "group_name", nullableString(groupName))
}

func (r *TeamRepository) AddMember(ctx context.Context, member team.Member) error {
	insertModel := teamMemberTableModel{
		ID:       member.ID,
		TeamID:   member.TeamID,
		UserID:   member.UserID,
		RiotID:   nullableString(member.RiotID),
		Role:     string(member.Role),
		JoinedAt: member.JoinedAt.UTC(),
	}
	query, args, err := qb.InsertModel("team_members", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert team member query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: team=%s user=%s", team.ErrDuplicateMember, member.TeamID, member.UserID)
		}
		return fmt.Errorf("insert team member team=%s user=%s: %w", member.TeamID, member.UserID, err)
	}
	return nil
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID string) (bool, error) {
	query, args, err := qb.DeleteFrom("team_members").
		Where(qb.Eq("team_id", teamID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete team member query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete team member team=%s user=%s: %w", teamID, userID, err)
	}
	removed, err := rowsAffected(result)
	if err != nil {
		return false, fmt.Errorf("rows affected delete team member: %w", err)
	}
	return removed, nil
}

func (r *TeamRepository) ListMembers(ctx context.Context, teamID string) ([]team.Member, error) {
	query, args, err := qb.Select("*").From("team_members").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("joined_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team members query: %w", err)
	}

	var rows []teamMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team members: %w", err)
	}

	out := make([]team.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Member{
			ID:       row.ID,
			TeamID:   row.TeamID,
			UserID:   row.UserID,
			RiotID:   row.RiotID.String,
			Role:     team.MemberRole(row.Role),
			JoinedAt: row.JoinedAt.UTC(),
		})
	}
	return out, nil
}

func (r *TeamRepository) selectTeams(ctx context.Context, query string, args []any) ([]team.Team, error) {
	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) updateColumn(ctx context.Context, teamID, column string, value any) error {
	query, args, err := qb.Update("teams").
		Set(column, value).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team %s query: %w", column, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team %s: %w", column, err)
	}
	ok, err := rowsAffected(result)
	if err != nil {
		return fmt.Errorf("rows affected update team %s: %w", column, err)
	}
	if !ok {
		return fmt.Errorf("update team %s: team=%s not found", column, teamID)
	}
	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:           row.ID,
		TournamentID: row.TournamentID,
		Name:         row.Name,
		LogoURL:      row.LogoURL.String,
		CaptainID:    row.CaptainID.String,
		Status:       team.Status(row.Status),
		GroupName:    row.GroupName.String,
		IsLocked:     row.IsLocked,
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
}
