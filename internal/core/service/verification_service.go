package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

// VerificationService drives the user trust-tier workflow. Every status
// change invalidates the cached snapshot, since the snapshot mirrors it.
type VerificationService struct {
	users ports.UserRepository
	cache ports.SnapshotCache
	log   zerolog.Logger
}

func NewVerificationService(users ports.UserRepository, cache ports.SnapshotCache, log zerolog.Logger) *VerificationService {
	return &VerificationService{users: users, cache: cache, log: log}
}

// Request moves the caller from unverified to requested.
func (s *VerificationService) Request(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.VerificationStatus.CanTransitionTo(domain.VerificationRequested) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, user.VerificationStatus, domain.VerificationRequested)
	}

	if err := s.users.UpdateVerificationStatus(ctx, userID, user.VerificationStatus, domain.VerificationRequested); err != nil {
		return err
	}
	s.invalidate(ctx, userID)

	s.log.Info().Str("user_id", userID).Msg("verification requested")
	return nil
}

// Decide approves (requested → verified) or rejects (requested →
// unverified) a pending request.
func (s *VerificationService) Decide(ctx context.Context, userID string, approve bool) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	target := domain.VerificationUnverified
	if approve {
		target = domain.VerificationVerified
	}
	if !user.VerificationStatus.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, user.VerificationStatus, target)
	}

	if err := s.users.UpdateVerificationStatus(ctx, userID, user.VerificationStatus, target); err != nil {
		return err
	}
	s.invalidate(ctx, userID)

	s.log.Info().
		Str("user_id", userID).
		Bool("approved", approve).
		Msg("verification decided")
	return nil
}

func (s *VerificationService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("snapshot invalidation failed after verification change")
	}
}
