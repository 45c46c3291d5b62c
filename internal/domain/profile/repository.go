package profile

import "context"

type Repository interface {
	Upsert(ctx context.Context, item Profile) error
	GetByUserID(ctx context.Context, userID string) (Profile, bool, error)
	Update(ctx context.Context, userID string, update Update) (Profile, bool, error)
	SetBanned(ctx context.Context, userID string, banned bool) error
	ListRoles(ctx context.Context, userID string) ([]Role, error)
	GrantRole(ctx context.Context, userID string, role Role) error
}
