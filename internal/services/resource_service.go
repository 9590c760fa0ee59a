package services

import (
	"context"
	"errors"

	"github.com/baharkarakas/ong-backend/internal/apperr"
	"github.com/baharkarakas/ong-backend/internal/auth"
	"github.com/baharkarakas/ong-backend/internal/metrics"
	"github.com/baharkarakas/ong-backend/internal/models"
	repo "github.com/baharkarakas/ong-backend/internal/repository"
)

type ResourceService struct {
	users     repo.Users
	resources repo.Resources
}

func NewResourceService(users repo.Users, resources repo.Resources) *ResourceService {
	return &ResourceService{users: users, resources: resources}
}

func (s *ResourceService) List(ctx context.Context) ([]models.ResourceView, error) {
	rs, err := s.resources.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.ResourceView, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.View())
	}
	return out, nil
}

func (s *ResourceService) GetByID(ctx context.Context, id string) (models.ResourceView, error) {
	r, err := s.find(ctx, id)
	if err != nil {
		return models.ResourceView{}, err
	}
	return r.View(), nil
}

func (s *ResourceService) Create(ctx context.Context, ownerID string, in models.ResourceInput) (models.ResourceView, error) {
	owner, err := s.users.GetByID(ctx, ownerID)
	if errors.Is(err, repo.ErrNotFound) {
		return s.opFailed("create", "unknown_user", apperr.ErrUnknownUser)
	}
	if err != nil {
		return s.opFailed("create", "error", err)
	}

	r, err := s.resources.Create(ctx, models.Resource{
		Name:        in.Name,
		Description: in.Description,
		CreatedYear: in.CreatedYear,
		Owner:       owner,
	})
	if errors.Is(err, repo.ErrNotFound) {
		// owner removed between lookup and insert
		return s.opFailed("create", "unknown_user", apperr.ErrUnknownUser)
	}
	if err != nil {
		return s.opFailed("create", "error", err)
	}
	metrics.ResourceOpsTotal.WithLabelValues("create", "ok").Inc()
	return r.View(), nil
}

func (s *ResourceService) Update(ctx context.Context, userID, id string, patch models.ResourcePatch) (models.ResourceView, error) {
	if _, err := s.owned(ctx, "update", userID, id); err != nil {
		return models.ResourceView{}, err
	}

	updated, err := s.resources.Update(ctx, id, patch)
	if errors.Is(err, repo.ErrNotFound) {
		return s.opFailed("update", "not_found", apperr.ErrOngNotFound)
	}
	if err != nil {
		return s.opFailed("update", "error", err)
	}
	metrics.ResourceOpsTotal.WithLabelValues("update", "ok").Inc()
	return updated.View(), nil
}

// Delete returns the record as it was just before removal.
func (s *ResourceService) Delete(ctx context.Context, userID, id string) (models.ResourceView, error) {
	r, err := s.owned(ctx, "delete", userID, id)
	if err != nil {
		return models.ResourceView{}, err
	}

	err = s.resources.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return s.opFailed("delete", "not_found", apperr.ErrOngNotFound)
	}
	if err != nil {
		return s.opFailed("delete", "error", err)
	}
	metrics.ResourceOpsTotal.WithLabelValues("delete", "ok").Inc()
	return r.View(), nil
}

func (s *ResourceService) find(ctx context.Context, id string) (models.Resource, error) {
	r, err := s.resources.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Resource{}, apperr.ErrOngNotFound
	}
	return r, err
}

// owned loads id and checks that userID owns it. Existence is checked first.
func (s *ResourceService) owned(ctx context.Context, op, userID, id string) (models.Resource, error) {
	r, err := s.find(ctx, id)
	if err != nil {
		result := "error"
		if errors.Is(err, apperr.ErrOngNotFound) {
			result = "not_found"
		}
		metrics.ResourceOpsTotal.WithLabelValues(op, result).Inc()
		return models.Resource{}, err
	}
	if err := auth.CheckOwnership(r.Owner.ID, userID); err != nil {
		metrics.ResourceOpsTotal.WithLabelValues(op, "forbidden").Inc()
		return models.Resource{}, err
	}
	return r, nil
}

func (s *ResourceService) opFailed(op, result string, err error) (models.ResourceView, error) {
	metrics.ResourceOpsTotal.WithLabelValues(op, result).Inc()
	return models.ResourceView{}, err
}
