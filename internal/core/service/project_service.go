package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

const maxPageLimit = 100

// ProjectService implements project listing use-cases. Posting a project is
// gated by the owner's project token balance.
type ProjectService struct {
	projects ports.ProjectRepository
	ledger   ports.LedgerService
	cost     int
	log      zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, ledger ports.LedgerService, cost int, log zerolog.Logger) *ProjectService {
	if cost <= 0 {
		cost = 1
	}
	return &ProjectService{projects: projects, ledger: ledger, cost: cost, log: log}
}

// Create posts a new listing. The insert runs inside the debit transaction:
// the project exists if and only if the tokens were spent.
func (s *ProjectService) Create(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	now := time.Now().UTC()
	project := &domain.Project{
		ID:          uuid.NewString(),
		OwnerID:     in.OwnerID,
		Title:       in.Title,
		Description: in.Description,
		BudgetUSD:   in.BudgetUSD,
		Status:      domain.ProjectOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.ledger.DebitForAction(ctx, in.OwnerID, domain.BalanceProject, s.cost, func(ctx context.Context, tx bun.IDB) error {
		return s.projects.Create(ctx, tx, project)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", project.ID).Str("owner_id", in.OwnerID).Msg("project created")
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.FindByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, in ports.ListProjectsInput) (*ports.ListProjectsResult, error) {
	page := in.Page
	if page <= 0 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.projects.List(ctx, ports.ListProjectsFilter{
		OwnerID: in.OwnerID,
		Status:  in.Status,
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &ports.ListProjectsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Close marks the project closed. The owner may close their own listing;
// admins may close any.
func (s *ProjectService) Close(ctx context.Context, id string, caller *domain.Identity) error {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if project.OwnerID != caller.UserID && caller.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.projects.Close(ctx, id)
}
