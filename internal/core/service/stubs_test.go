package service

import (
	"context"
	"sync"
	"time"

	"github.com/uptrace/bun"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs mirroring the Postgres/Redis/Mongo semantics
// ---------------------------------------------------------------------------

// stubLedgerStore reproduces the conditional-update semantics of the real
// store: the whole debit (check, action, decrement) runs under one lock, and
// an action error rolls the decrement back.
type stubLedgerStore struct {
	mu       sync.Mutex
	balances map[string]map[domain.BalanceKind]int
	orders   map[string]*domain.TokenOrder
}

func newStubLedgerStore() *stubLedgerStore {
	return &stubLedgerStore{
		balances: make(map[string]map[domain.BalanceKind]int),
		orders:   make(map[string]*domain.TokenOrder),
	}
}

func (s *stubLedgerStore) setBalance(userID string, kind domain.BalanceKind, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.balances[userID] == nil {
		s.balances[userID] = make(map[domain.BalanceKind]int)
	}
	s.balances[userID][kind] = n
}

func (s *stubLedgerStore) balance(userID string, kind domain.BalanceKind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[userID][kind]
}

func (s *stubLedgerStore) addOrder(o *domain.TokenOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *o
	s.orders[o.OrderRef] = &clone
}

func (s *stubLedgerStore) DebitForAction(ctx context.Context, userID string, kind domain.BalanceKind, cost int, action func(ctx context.Context, tx bun.IDB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, ok := s.balances[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if wallet[kind] < cost {
		return domain.ErrInsufficientTokens
	}
	if err := action(ctx, nil); err != nil {
		return err
	}
	wallet[kind] -= cost
	return nil
}

func (s *stubLedgerStore) CreditFromOrder(_ context.Context, orderRef, paymentRef string) (*domain.TokenOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderRef]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if order.Status != domain.OrderCreated {
		return nil, domain.ErrDuplicatePayment
	}

	now := time.Now().UTC()
	order.Status = domain.OrderCaptured
	order.PaymentRef = paymentRef
	order.CapturedAt = &now

	if s.balances[order.UserID] == nil {
		s.balances[order.UserID] = make(map[domain.BalanceKind]int)
	}
	s.balances[order.UserID][order.Kind] += order.Quantity

	clone := *order
	return &clone, nil
}

type stubSnapshotCache struct {
	mu            sync.Mutex
	entries       map[string]*domain.Snapshot
	invalidations []string
	getErr        error
}

func newStubSnapshotCache() *stubSnapshotCache {
	return &stubSnapshotCache{entries: make(map[string]*domain.Snapshot)}
}

func (c *stubSnapshotCache) Get(_ context.Context, userID string) (*domain.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	snap, ok := c.entries[userID]
	if !ok {
		return nil, nil
	}
	clone := *snap
	return &clone, nil
}

func (c *stubSnapshotCache) Set(_ context.Context, snap *domain.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	clone := *snap
	c.entries[snap.UserID] = &clone
	return nil
}

func (c *stubSnapshotCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	c.invalidations = append(c.invalidations, userID)
	return nil
}

func (c *stubSnapshotCache) invalidatedCount(userID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, id := range c.invalidations {
		if id == userID {
			n++
		}
	}
	return n
}

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		clone := *u
		r.users[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		return nil, domain.ErrUserExists
	}
	clone := *user
	clone.CreatedAt = time.Now().UTC()
	clone.UpdatedAt = clone.CreatedAt
	r.users[user.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id, displayName, avatarURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.DisplayName = displayName
	u.AvatarURL = avatarURL
	return nil
}

func (r *stubUserRepo) UpdateVerificationStatus(_ context.Context, id string, from, to domain.VerificationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.VerificationStatus != from {
		return domain.ErrInvalidTransition
	}
	u.VerificationStatus = to
	return nil
}

type stubProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*domain.Project
}

func newStubProjectRepo(projects ...*domain.Project) *stubProjectRepo {
	r := &stubProjectRepo{projects: make(map[string]*domain.Project)}
	for _, p := range projects {
		clone := *p
		r.projects[p.ID] = &clone
	}
	return r
}

func (r *stubProjectRepo) Create(_ context.Context, _ bun.IDB, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *p
	r.projects[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) List(_ context.Context, filter ports.ListProjectsFilter) ([]*domain.Project, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Project
	for _, p := range r.projects {
		if filter.OwnerID != "" && p.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && string(p.Status) != filter.Status {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *stubProjectRepo) Close(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	if p.Status != domain.ProjectOpen {
		return domain.ErrProjectClosed
	}
	p.Status = domain.ProjectClosed
	return nil
}

type stubBidRepo struct {
	mu        sync.Mutex
	bids      map[string]*domain.Bid
	createErr error
}

func newStubBidRepo() *stubBidRepo {
	return &stubBidRepo{bids: make(map[string]*domain.Bid)}
}

// Create enforces the one-open-bid-per-(developer, project) unique index the
// real table carries, so racing inserts fail the same way they do in Postgres.
func (r *stubBidRepo) Create(_ context.Context, _ bun.IDB, b *domain.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if b.Status == domain.BidOpen {
		for _, existing := range r.bids {
			if existing.ProjectID == b.ProjectID && existing.DeveloperID == b.DeveloperID && existing.Status == domain.BidOpen {
				return domain.ErrDuplicateAction
			}
		}
	}
	clone := *b
	r.bids[b.ID] = &clone
	return nil
}

func (r *stubBidRepo) FindByID(_ context.Context, id string) (*domain.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bids[id]
	if !ok {
		return nil, domain.ErrBidNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBidRepo) HasOpenBid(_ context.Context, projectID, developerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bids {
		if b.ProjectID == projectID && b.DeveloperID == developerID && b.Status == domain.BidOpen {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubBidRepo) ListByProject(_ context.Context, projectID string) ([]*domain.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Bid
	for _, b := range r.bids {
		if b.ProjectID == projectID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBidRepo) UpdateStatus(_ context.Context, id string, status domain.BidStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bids[id]
	if !ok || b.Status != domain.BidOpen {
		return domain.ErrBidNotFound
	}
	b.Status = status
	return nil
}

type stubOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.TokenOrder
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.TokenOrder)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.TokenOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *o
	r.orders[o.OrderRef] = &clone
	return nil
}

func (r *stubOrderRepo) FindByOrderRef(_ context.Context, orderRef string) (*domain.TokenOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderRef]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

type stubDedup struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) Seen(_ context.Context, paymentRef string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seen[paymentRef], nil
}

func (d *stubDedup) Mark(_ context.Context, paymentRef string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen[paymentRef] = true
	return nil
}

// stubSessionValidator maps credentials to provider identities.
type stubSessionValidator struct {
	identities map[string]*ports.ProviderIdentity
}

func (v *stubSessionValidator) Validate(_ context.Context, credential string) (*ports.ProviderIdentity, error) {
	id, ok := v.identities[credential]
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return id, nil
}

type stubGateway struct {
	nextRef string
	err     error
	calls   int
}

func (g *stubGateway) CreateOrder(_ context.Context, _ int, _, _ string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.nextRef, nil
}

type stubConversationRepo struct {
	mu            sync.Mutex
	conversations map[string]*domain.Conversation
	messages      map[string][]*domain.Message
}

func newStubConversationRepo() *stubConversationRepo {
	return &stubConversationRepo{
		conversations: make(map[string]*domain.Conversation),
		messages:      make(map[string][]*domain.Message),
	}
}

func (r *stubConversationRepo) Create(_ context.Context, conv *domain.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *conv
	r.conversations[conv.ID] = &clone
	return nil
}

func (r *stubConversationRepo) FindByID(_ context.Context, id string) (*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubConversationRepo) FindOpen(_ context.Context, projectID, clientID, developerID string) (*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conversations {
		if c.ProjectID == projectID && c.ClientID == clientID && c.DeveloperID == developerID {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrConversationNotFound
}

func (r *stubConversationRepo) ListForUser(_ context.Context, userID string) ([]*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Conversation
	for _, c := range r.conversations {
		if c.Participant(userID) {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubConversationRepo) AppendMessage(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conversations[msg.ConversationID]; !ok {
		return domain.ErrConversationNotFound
	}
	clone := *msg
	r.messages[msg.ConversationID] = append(r.messages[msg.ConversationID], &clone)
	return nil
}

func (r *stubConversationRepo) ListMessages(_ context.Context, conversationID string) ([]*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.messages[conversationID], nil
}
