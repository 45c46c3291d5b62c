package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/tournament-hub/internal/domain/group"
	"github.com/riskibarqy/tournament-hub/internal/domain/joinrequest"
	"github.com/riskibarqy/tournament-hub/internal/domain/standing"
	"github.com/riskibarqy/tournament-hub/internal/domain/team"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("resource already exists")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// ErrAccountBanned rejects sign-in for banned users. It matches ErrUnauthorized.
var ErrAccountBanned = fmt.Errorf("%w: account is banned, contact the tournament admins", ErrUnauthorized)

// mapStoreError turns repository sentinels into use case errors.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, standing.ErrDuplicate),
		errors.Is(err, team.ErrDuplicateMember),
		errors.Is(err, joinrequest.ErrDuplicate):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, group.ErrUnknownTournament):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return err
	}
}
