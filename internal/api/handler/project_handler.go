package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/api/middleware"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project listings.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=140"`
	Description string `json:"description" validate:"required,min=10"`
	BudgetUSD   int    `json:"budget_usd" validate:"gt=0"`
}

type projectResponse struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	BudgetUSD   int    `json:"budget_usd"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type projectListResponse struct {
	Items      []projectResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// Create handles POST /v1/projects. Posting costs project tokens; the
// listing and the debit commit together.
func (h *ProjectHandler) Create(c echo.Context) error {
	identity, err := middleware.Identity(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.Create(c.Request().Context(), ports.CreateProjectInput{
		OwnerID:     identity.UserID,
		Title:       req.Title,
		Description: req.Description,
		BudgetUSD:   req.BudgetUSD,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toProjectResponse(project))
}

// Get handles GET /v1/projects/:id.
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// List handles GET /v1/projects with owner_id, status, page, limit filters.
func (h *ProjectHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListProjectsInput{
		OwnerID: c.QueryParam("owner_id"),
		Status:  c.QueryParam("status"),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return err
	}

	items := make([]projectResponse, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, toProjectResponse(p))
	}
	return c.JSON(http.StatusOK, projectListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Close handles POST /v1/projects/:id/close.
func (h *ProjectHandler) Close(c echo.Context) error {
	identity, err := middleware.Identity(c)
	if err != nil {
		return err
	}
	if err := h.service.Close(c.Request().Context(), c.Param("id"), identity); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Description: p.Description,
		BudgetUSD:   p.BudgetUSD,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}
