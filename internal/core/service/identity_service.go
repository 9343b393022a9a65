package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/api/metrics"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

// IdentityService is the access gate core: it resolves session credentials
// to application identities and serves the cached authorization snapshot.
type IdentityService struct {
	sessions ports.SessionValidator
	users    ports.UserRepository
	cache    ports.SnapshotCache
	log      zerolog.Logger
}

func NewIdentityService(sessions ports.SessionValidator, users ports.UserRepository, cache ports.SnapshotCache, log zerolog.Logger) *IdentityService {
	return &IdentityService{sessions: sessions, users: users, cache: cache, log: log}
}

// Resolve validates the credential with the identity provider, then loads
// the authoritative role and verification status from the user store. The
// credential payload is never trusted for anything beyond the subject id
// and email.
func (s *IdentityService) Resolve(ctx context.Context, credential string) (*domain.Identity, error) {
	provider, err := s.sessions.Validate(ctx, credential)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	user, err := s.users.GetByID(ctx, provider.ID)
	if err != nil {
		// Provider accepted the credential but no application record exists:
		// distinct from an invalid credential.
		return nil, err
	}

	return &domain.Identity{
		UserID:             user.ID,
		Email:              user.Email,
		Role:               user.Role,
		VerificationStatus: user.VerificationStatus,
	}, nil
}

// Snapshot returns the read-through cached display view of a user. A stale
// snapshot is tolerable here; authorization decisions always use the
// identity the gate resolved from the store.
func (s *IdentityService) Snapshot(ctx context.Context, userID string) (*domain.Snapshot, error) {
	snap, err := s.cache.Get(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("snapshot cache read failed, falling back to store")
	}
	if snap != nil {
		metrics.SnapshotCacheTotal.WithLabelValues("hit").Inc()
		return snap, nil
	}
	metrics.SnapshotCacheTotal.WithLabelValues("miss").Inc()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap = domain.SnapshotOf(user)
	if err := s.cache.Set(ctx, snap); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("snapshot cache write failed")
	}
	return snap, nil
}

// Register exchanges a provider credential for a new application account.
// The account id is the provider's subject id, so identity lookups have a
// single key.
func (s *IdentityService) Register(ctx context.Context, credential string, in ports.RegisterInput) (*domain.User, error) {
	if in.Role != domain.RoleClient && in.Role != domain.RoleDeveloper {
		return nil, fmt.Errorf("%w: role must be client or developer", domain.ErrForbidden)
	}

	provider, err := s.sessions.Validate(ctx, credential)
	if err != nil {
		return nil, err
	}

	displayName := in.DisplayName
	if displayName == "" {
		displayName = provider.Email
	}

	user, err := s.users.Create(ctx, &domain.User{
		ID:                 provider.ID,
		Email:              provider.Email,
		DisplayName:        displayName,
		Role:               in.Role,
		VerificationStatus: domain.VerificationUnverified,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user registered")
	return user, nil
}
