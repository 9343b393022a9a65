package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
)

// UserRepository persists application accounts in Postgres.
type UserRepository struct {
	db *bun.DB
}

func NewUserRepository(db *bun.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	row := &userRow{
		ID:                 user.ID,
		Email:              user.Email,
		DisplayName:        user.DisplayName,
		AvatarURL:          user.AvatarURL,
		Role:               user.Role,
		VerificationStatus: string(user.VerificationStatus),
		BidTokens:          user.BidTokens,
		ProjectTokens:      user.ProjectTokens,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := new(userRow)
	err := r.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id, displayName, avatarURL string) error {
	res, err := r.db.NewUpdate().
		Model((*userRow)(nil)).
		Set("display_name = ?", displayName).
		Set("avatar_url = ?", avatarURL).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateVerificationStatus applies the transition only when the stored
// status still equals from, so concurrent admin decisions cannot clobber
// each other.
func (r *UserRepository) UpdateVerificationStatus(ctx context.Context, id string, from, to domain.VerificationStatus) error {
	res, err := r.db.NewUpdate().
		Model((*userRow)(nil)).
		Set("verification_status = ?", string(to)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Where("verification_status = ?", string(from)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update verification status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}
