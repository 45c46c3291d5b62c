package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-hub/internal/domain/profile"
	qb "github.com/riskibarqy/tournament-hub/internal/platform/querybuilder"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Upsert(ctx context.Context, item profile.Profile) error {
	insertModel := profileTableModel{
		ID:        item.ID,
		UserID:    item.UserID,
		Username:  item.Username,
		RiotID:    nullableString(item.RiotID),
		Rank:      nullableString(item.Rank),
		AvatarURL: nullableString(item.AvatarURL),
		IsBanned:  item.IsBanned,
		CreatedAt: item.CreatedAt.UTC(),
		UpdatedAt: item.UpdatedAt.UTC(),
	}
	query, args, err := qb.InsertModel("profiles", insertModel, `ON CONFLICT (user_id)
DO UPDATE SET
    username = EXCLUDED.username,
    riot_id = EXCLUDED.riot_id,
    rank = EXCLUDED.rank,
    avatar_url = EXCLUDED.avatar_url,
    is_banned = EXCLUDED.is_banned,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert profile query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert profile user=%s: %w", item.UserID, err)
	}
	return nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	query, args, err := qb.Select("*").From("profiles").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("build get profile by user query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("get profile by user: %w", err)
	}
	return profileFromRow(row), true, nil
}

func (r *ProfileRepository) Update(ctx context.Context, userID string, update profile.Update) (profile.Profile, bool, error) {
	builder := qb.Update("profiles")
	if update.Username != nil {
		builder.Set("username", *update.Username)
	}
	if update.RiotID != nil {
		builder.Set("riot_id", nullableString(*update.RiotID))
	}
	if update.Rank != nil {
		builder.Set("rank", nullableString(*update.Rank))
	}
	if update.AvatarURL != nil {
		builder.Set("avatar_url", nullableString(*update.AvatarURL))
	}
	query, args, err := builder.
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("user_id", userID)).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("build update profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("update profile user=%s: %w", userID, err)
	}
	return profileFromRow(row), true, nil
}

// SetBanned is a no-op for users without a profile row.
func (r *ProfileRepository) SetBanned(ctx context.Context, userID string, banned bool) error {
	query, args, err := qb.Update("profiles").
		Set("is_banned", banned).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set banned query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set banned=%t user=%s: %w", banned, userID, err)
	}
	return nil
}

func (r *ProfileRepository) ListRoles(ctx context.Context, userID string) ([]profile.Role, error) {
	query, args, err := qb.Select("role").From("user_roles").
		Where(qb.Eq("user_id", userID)).
		OrderBy("role").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list user roles query: %w", err)
	}

	var rows []string
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select user roles: %w", err)
	}

	out := make([]profile.Role, 0, len(rows))
	for _, role := range rows {
		out = append(out, profile.Role(role))
	}
	return out, nil
}

// GrantRole is idempotent per (user_id, role).
func (r *ProfileRepository) GrantRole(ctx context.Context, userID string, role profile.Role) error {
	query, args, err := qb.InsertModel("user_roles", userRoleTableModel{
		UserID: userID,
		Role:   string(role),
	}, "ON CONFLICT (user_id, role) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build grant role query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("grant role=%s user=%s: %w", role, userID, err)
	}
	return nil
}

func profileFromRow(row profileTableModel) profile.Profile {
	return profile.Profile{
		ID:        row.ID,
		UserID:    row.UserID,
		Username:  row.Username,
		RiotID:    row.RiotID.String,
		Rank:      row.Rank.String,
		AvatarURL: row.AvatarURL.String,
		IsBanned:  row.IsBanned,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}
