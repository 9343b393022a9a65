package domain

import "time"

const (
	RoleClient    = "client"
	RoleDeveloper = "developer"
	RoleAdmin     = "admin"
)

// VerificationStatus represents the trust tier of a marketplace user.
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationRequested  VerificationStatus = "requested"
	VerificationVerified   VerificationStatus = "verified"
)

// verificationTransitions defines the allowed status changes.
// unverified → requested is a self-service step; requested → verified and
// requested → unverified (rejection) are admin decisions.
var verificationTransitions = map[VerificationStatus][]VerificationStatus{
	VerificationUnverified: {VerificationRequested},
	VerificationRequested:  {VerificationVerified, VerificationUnverified},
}

// CanTransitionTo reports whether a status change from s to next is valid.
func (s VerificationStatus) CanTransitionTo(next VerificationStatus) bool {
	for _, allowed := range verificationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// BalanceKind selects which token pool an operation affects.
type BalanceKind string

const (
	BalanceBid     BalanceKind = "bid"
	BalanceProject BalanceKind = "project"
)

// Column returns the users table column backing this balance.
func (k BalanceKind) Column() string {
	if k == BalanceProject {
		return "project_tokens"
	}
	return "bid_tokens"
}

// Valid reports whether k names a known token pool.
func (k BalanceKind) Valid() bool {
	return k == BalanceBid || k == BalanceProject
}

// User is an application account. The ID is the identity provider's stable
// subject identifier; role is fixed at registration. Email is a display and
// contact attribute only and is never used as an authorization key.
type User struct {
	ID                 string             `json:"id"`
	Email              string             `json:"email"`
	DisplayName        string             `json:"display_name"`
	AvatarURL          string             `json:"avatar_url,omitempty"`
	Role               string             `json:"role"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	BidTokens          int                `json:"bid_tokens"`
	ProjectTokens      int                `json:"project_tokens"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// Balance returns the current balance for the given kind.
func (u *User) Balance(kind BalanceKind) int {
	if kind == BalanceProject {
		return u.ProjectTokens
	}
	return u.BidTokens
}

// Identity is the authenticated caller attached to a request by the access
// gate. It is built from the authoritative user store, never from
// client-supplied claims, and it never crosses a process boundary.
type Identity struct {
	UserID             string
	Email              string
	Role               string
	VerificationStatus VerificationStatus
}

// Snapshot is the cached, denormalized authorization view of a user, used
// for display purposes. It mirrors User fields and must be invalidated on
// any write to them.
type Snapshot struct {
	UserID             string             `json:"user_id"`
	Role               string             `json:"role"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	DisplayName        string             `json:"display_name"`
	AvatarURL          string             `json:"avatar_url,omitempty"`
	BidTokens          int                `json:"bid_tokens"`
	ProjectTokens      int                `json:"project_tokens"`
}

// SnapshotOf builds the cacheable view of a user.
func SnapshotOf(u *User) *Snapshot {
	return &Snapshot{
		UserID:             u.ID,
		Role:               u.Role,
		VerificationStatus: u.VerificationStatus,
		DisplayName:        u.DisplayName,
		AvatarURL:          u.AvatarURL,
		BidTokens:          u.BidTokens,
		ProjectTokens:      u.ProjectTokens,
	}
}
