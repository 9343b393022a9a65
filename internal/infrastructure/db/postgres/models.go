package postgres

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
)

// Row types map domain entities onto their tables. Kept separate from the
// domain structs so storage tags never leak into the core.

type userRow struct {
	bun.BaseModel `bun:"table:users"`

	ID                 string    `bun:"id,pk"`
	Email              string    `bun:"email,notnull,unique"`
	DisplayName        string    `bun:"display_name,notnull"`
	AvatarURL          string    `bun:"avatar_url"`
	Role               string    `bun:"role,notnull"`
	VerificationStatus string    `bun:"verification_status,notnull"`
	BidTokens          int       `bun:"bid_tokens,notnull,default:0"`
	ProjectTokens      int       `bun:"project_tokens,notnull,default:0"`
	CreatedAt          time.Time `bun:"created_at,notnull"`
	UpdatedAt          time.Time `bun:"updated_at,notnull"`
}

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:                 r.ID,
		Email:              r.Email,
		DisplayName:        r.DisplayName,
		AvatarURL:          r.AvatarURL,
		Role:               r.Role,
		VerificationStatus: domain.VerificationStatus(r.VerificationStatus),
		BidTokens:          r.BidTokens,
		ProjectTokens:      r.ProjectTokens,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

type projectRow struct {
	bun.BaseModel `bun:"table:projects"`

	ID          string    `bun:"id,pk"`
	OwnerID     string    `bun:"owner_id,notnull"`
	Title       string    `bun:"title,notnull"`
	Description string    `bun:"description"`
	BudgetUSD   int       `bun:"budget_usd,notnull"`
	Status      string    `bun:"status,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

func (r *projectRow) toDomain() *domain.Project {
	return &domain.Project{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Title:       r.Title,
		Description: r.Description,
		BudgetUSD:   r.BudgetUSD,
		Status:      domain.ProjectStatus(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type bidRow struct {
	bun.BaseModel `bun:"table:bids"`

	ID          string    `bun:"id,pk"`
	ProjectID   string    `bun:"project_id,notnull"`
	DeveloperID string    `bun:"developer_id,notnull"`
	AmountUSD   int       `bun:"amount_usd,notnull"`
	Pitch       string    `bun:"pitch"`
	Status      string    `bun:"status,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
}

func (r *bidRow) toDomain() *domain.Bid {
	return &domain.Bid{
		ID:          r.ID,
		ProjectID:   r.ProjectID,
		DeveloperID: r.DeveloperID,
		AmountUSD:   r.AmountUSD,
		Pitch:       r.Pitch,
		Status:      domain.BidStatus(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

type orderRow struct {
	bun.BaseModel `bun:"table:token_orders"`

	ID          string     `bun:"id,pk"`
	UserID      string     `bun:"user_id,notnull"`
	Kind        string     `bun:"kind,notnull"`
	Quantity    int        `bun:"quantity,notnull"`
	AmountPaise int        `bun:"amount_paise,notnull"`
	OrderRef    string     `bun:"order_ref,notnull,unique"`
	PaymentRef  string     `bun:"payment_ref"`
	Status      string     `bun:"status,notnull"`
	CreatedAt   time.Time  `bun:"created_at,notnull"`
	CapturedAt  *time.Time `bun:"captured_at"`
}

func (r *orderRow) toDomain() *domain.TokenOrder {
	return &domain.TokenOrder{
		ID:          r.ID,
		UserID:      r.UserID,
		Kind:        domain.BalanceKind(r.Kind),
		Quantity:    r.Quantity,
		AmountPaise: r.AmountPaise,
		OrderRef:    r.OrderRef,
		PaymentRef:  r.PaymentRef,
		Status:      domain.OrderStatus(r.Status),
		CreatedAt:   r.CreatedAt,
		CapturedAt:  r.CapturedAt,
	}
}
