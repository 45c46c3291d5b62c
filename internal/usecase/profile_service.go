package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/profile"
	idgen "github.com/riskibarqy/tournament-hub/internal/platform/id"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
)

type UpdateProfileInput struct {
	UserID   string
	Username *string
	RiotID   *string
	Rank     *string
}

type ProfileService struct {
	profileRepo profile.Repository
	avatars     FileStore
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewProfileService(profileRepo profile.Repository, avatars FileStore, idGen idgen.Generator, logger *logging.Logger) *ProfileService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ProfileService{
		profileRepo: profileRepo,
		avatars:     avatars,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// CheckSignIn rejects banned users. A user without a profile yet may sign in.
func (s *ProfileService) CheckSignIn(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	item, exists, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	if exists && item.IsBanned {
		s.logger.WarnContext(ctx, "banned user sign-in rejected", "user_id", userID)
		return ErrAccountBanned
	}
	return nil
}

// Roles returns the app roles of a user; everyone has at least the user role.
func (s *ProfileService) Roles(ctx context.Context, userID string) ([]profile.Role, error) {
	roles, err := s.profileRepo.ListRoles(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, fmt.Errorf("list user roles: %w", err)
	}
	for _, role := range roles {
		if role == profile.RoleUser {
			return roles, nil
		}
	}
	return append(roles, profile.RoleUser), nil
}

// GrantAdmins gives the admin role to every listed user id. Blank ids are skipped.
func (s *ProfileService) GrantAdmins(ctx context.Context, userIDs []string) error {
	for _, userID := range userIDs {
		userID = strings.TrimSpace(userID)
		if userID == "" {
			continue
		}
		if err := s.profileRepo.GrantRole(ctx, userID, profile.RoleAdmin); err != nil {
			return fmt.Errorf("grant admin user=%s: %w", userID, err)
		}
		s.logger.InfoContext(ctx, "admin role granted", "user_id", userID)
	}
	return nil
}

// Ensure creates the profile on first sign-in and returns the stored one afterwards.
func (s *ProfileService) Ensure(ctx context.Context, userID, username string) (profile.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	item, exists, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if exists {
		return item, nil
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username = "player-" + shortUserID(userID)
	}
	id, err := s.idGen.NewID()
	if err != nil {
		return profile.Profile{}, fmt.Errorf("generate profile id: %w", err)
	}
	now := s.now().UTC()
	item = profile.Profile{
		ID:        id,
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.profileRepo.Upsert(ctx, item); err != nil {
		return profile.Profile{}, fmt.Errorf("create profile: %w", err)
	}
	return item, nil
}

func (s *ProfileService) Get(ctx context.Context, userID string) (profile.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	item, exists, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: profile user=%s", ErrNotFound, userID)
	}
	return item, nil
}

func (s *ProfileService) Update(ctx context.Context, input UpdateProfileInput) (profile.Profile, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if input.Username != nil && strings.TrimSpace(*input.Username) == "" {
		return profile.Profile{}, fmt.Errorf("%w: username must not be empty", ErrInvalidInput)
	}

	item, exists, err := s.profileRepo.Update(ctx, input.UserID, profile.Update{
		Username: trimmedPtr(input.Username),
		RiotID:   trimmedPtr(input.RiotID),
		Rank:     trimmedPtr(input.Rank),
	})
	if err != nil {
		return profile.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: profile user=%s", ErrNotFound, input.UserID)
	}
	return item, nil
}

// UploadAvatar stores the image in the public bucket and saves its URL on the profile.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID, filename, contentType string, body io.Reader) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.UploadAvatar")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if body == nil {
		return profile.Profile{}, fmt.Errorf("%w: avatar file is required", ErrInvalidInput)
	}
	if s.avatars == nil {
		return profile.Profile{}, fmt.Errorf("%w: avatar storage is not configured", ErrDependencyUnavailable)
	}

	key := objectKey(userID, filename, s.now())
	if err := s.avatars.Put(ctx, key, contentType, body); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: upload avatar: %v", ErrDependencyUnavailable, err)
	}

	url := s.avatars.PublicURL(key)
	item, exists, err := s.profileRepo.Update(ctx, userID, profile.Update{AvatarURL: &url})
	if err != nil {
		return profile.Profile{}, fmt.Errorf("save avatar url: %w", err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: profile user=%s", ErrNotFound, userID)
	}
	return item, nil
}

// SetBanned is the admin ban toggle.
func (s *ProfileService) SetBanned(ctx context.Context, userID string, banned bool) error {
	item, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.profileRepo.SetBanned(ctx, item.UserID, banned); err != nil {
		return fmt.Errorf("set banned: %w", err)
	}

	s.logger.InfoContext(ctx, "profile ban updated", "user_id", item.UserID, "banned", banned)
	return nil
}

func trimmedPtr(v *string) *string {
	if v == nil {
		return nil
	}
	out := strings.TrimSpace(*v)
	return &out
}

func shortUserID(userID string) string {
	userID = strings.ReplaceAll(userID, "-", "")
	if len(userID) > 8 {
		return userID[:8]
	}
	return userID
}
