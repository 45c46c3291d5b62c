package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/profile"
	"github.com/riskibarqy/tournament-hub/internal/infrastructure/repository/memory"
)

func newProfileFixture(t *testing.T) (*memory.ProfileRepository, *fakeFileStore, *ProfileService) {
	t.Helper()

	repo := memory.NewProfileRepository()
	files := newFakeFileStore()
	svc := NewProfileService(repo, files, &sequenceIDs{prefix: "profile"}, nil)
	svc.now = func() time.Time { return time.UnixMilli(1767225600000).UTC() }
	return repo, files, svc
}

func TestProfileService_CheckSignIn(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, _, svc := newProfileFixture(t)
	if err := repo.Upsert(ctx, profile.Profile{ID: "p1", UserID: "banned-user", Username: "cheater", IsBanned: true}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	if err := repo.Upsert(ctx, profile.Profile{ID: "p2", UserID: "good-user", Username: "fair"}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	err := svc.CheckSignIn(ctx, "banned-user")
	if !errors.Is(err, ErrAccountBanned) || !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected banned error, got %v", err)
	}
	if err := svc.CheckSignIn(ctx, "good-user"); err != nil {
		t.Fatalf("expected sign-in to pass, got %v", err)
	}
	if err := svc.CheckSignIn(ctx, "brand-new-user"); err != nil {
		t.Fatalf("expected user without profile to pass, got %v", err)
	}
}

func TestProfileService_EnsureCreatesOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, _, svc := newProfileFixture(t)

	first, err := svc.Ensure(ctx, "3f2c9a10-aaaa-bbbb", "")
	if err != nil {
		t.Fatalf("ensure profile: %v", err)
	}
	if first.Username != "player-3f2c9a10" {
		t.Fatalf("unexpected default username: %s", first.Username)
	}

	second, err := svc.Ensure(ctx, "3f2c9a10-aaaa-bbbb", "ignored")
	if err != nil {
		t.Fatalf("ensure profile again: %v", err)
	}
	if second.ID != first.ID || second.Username != first.Username {
		t.Fatalf("expected stored profile to be returned, got %+v", second)
	}
}

func TestProfileService_RolesAlwaysIncludeUser(t *testing.T) {
	t.Parallel()

	repo, _, svc := newProfileFixture(t)
	_ = repo.GrantRole(context.Background(), "boss", profile.RoleAdmin)

	roles, err := svc.Roles(context.Background(), "boss")
	if err != nil {
		t.Fatalf("roles: %v", err)
	}
	if len(roles) != 2 || roles[0] != profile.RoleAdmin || roles[1] != profile.RoleUser {
		t.Fatalf("unexpected roles: %v", roles)
	}
}

func TestProfileService_GrantAdmins(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, _, svc := newProfileFixture(t)
	if err := svc.GrantAdmins(ctx, []string{"ops-1", " ", "ops-1"}); err != nil {
		t.Fatalf("grant admins: %v", err)
	}

	roles, err := svc.Roles(ctx, "ops-1")
	if err != nil {
		t.Fatalf("roles: %v", err)
	}
	if len(roles) != 2 || roles[0] != profile.RoleAdmin {
		t.Fatalf("expected a single admin grant plus user role, got %v", roles)
	}
}

func TestProfileService_UpdateAndAvatar(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, files, svc := newProfileFixture(t)
	if err := repo.Upsert(ctx, profile.Profile{ID: "p1", UserID: "u1", Username: "old"}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	name, riot := "  newname ", "Owl#EUW"
	updated, err := svc.Update(ctx, UpdateProfileInput{UserID: "u1", Username: &name, RiotID: &riot})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Username != "newname" || updated.RiotID != "Owl#EUW" {
		t.Fatalf("unexpected profile: %+v", updated)
	}

	blank := " "
	if _, err := svc.Update(ctx, UpdateProfileInput{UserID: "u1", Username: &blank}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank username, got %v", err)
	}

	withAvatar, err := svc.UploadAvatar(ctx, "u1", "face", "image/png", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("upload avatar: %v", err)
	}
	if withAvatar.AvatarURL != "https://files.test/public/u1/1767225600000.png" {
		t.Fatalf("unexpected avatar url: %s", withAvatar.AvatarURL)
	}
	if _, ok := files.objects["u1/1767225600000.png"]; !ok {
		t.Fatalf("expected avatar object to be stored")
	}
}

func TestProfileService_SetBanned(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, _, svc := newProfileFixture(t)
	if err := repo.Upsert(ctx, profile.Profile{ID: "p1", UserID: "u1", Username: "owl", IsBanned: true}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	if err := svc.SetBanned(ctx, "u1", false); err != nil {
		t.Fatalf("unban: %v", err)
	}
	if err := svc.CheckSignIn(ctx, "u1"); err != nil {
		t.Fatalf("expected unbanned user to sign in, got %v", err)
	}
	if err := svc.SetBanned(ctx, "ghost", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
