package ports

import (
	"context"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
)

// ProviderIdentity is the external identity resolved from a session
// credential. The provider knows nothing about application roles; only the
// subject id and email are trusted from it.
type ProviderIdentity struct {
	ID    string
	Email string
}

// SessionValidator resolves an opaque session credential against the
// identity provider. Rejected, absent, or malformed credentials yield
// domain.ErrUnauthenticated.
type SessionValidator interface {
	Validate(ctx context.Context, credential string) (*ProviderIdentity, error)
}

// IdentityService is the access gate core: it turns a request credential
// into an authenticated application identity and serves the cached
// authorization snapshot.
type IdentityService interface {
	// Resolve validates the credential with the provider and looks up the
	// authoritative account record. Provider rejection maps to
	// domain.ErrUnauthenticated; a valid provider identity without an
	// application record maps to domain.ErrUserNotFound.
	Resolve(ctx context.Context, credential string) (*domain.Identity, error)

	// Snapshot returns the read-through cached display view of a user.
	Snapshot(ctx context.Context, userID string) (*domain.Snapshot, error)

	// Register exchanges a provider credential for a new application
	// account with the given role and display name.
	Register(ctx context.Context, credential string, in RegisterInput) (*domain.User, error)
}

// RegisterInput carries account creation attributes.
type RegisterInput struct {
	Role        string
	DisplayName string
}
