package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

// ProfileService serves and mutates user-facing profile data. Reads go
// through the snapshot cache; writes invalidate it.
type ProfileService struct {
	users    ports.UserRepository
	identity ports.IdentityService
	cache    ports.SnapshotCache
	log      zerolog.Logger
}

func NewProfileService(users ports.UserRepository, identity ports.IdentityService, cache ports.SnapshotCache, log zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, identity: identity, cache: cache, log: log}
}

// Get returns the cached display view of a user.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Snapshot, error) {
	return s.identity.Snapshot(ctx, userID)
}

// Update changes display fields and drops the stale snapshot.
func (s *ProfileService) Update(ctx context.Context, userID string, in ports.UpdateProfileInput) error {
	if err := s.users.UpdateProfile(ctx, userID, in.DisplayName, in.AvatarURL); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("snapshot invalidation failed after profile update")
	}
	return nil
}
