package service

import (
	"context"
	"fmt"
	"net/http"

	"rental-frontend/internal/config"
	"rental-frontend/internal/domain"
	"rental-frontend/internal/upstream"
)

type catalogService struct {
	upstream Upstream
}

// NewCatalogService creates a new catalog service
func NewCatalogService(up Upstream) CatalogService {
	return &catalogService{upstream: up}
}

func (s *catalogService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return listCatalog[domain.Client](ctx, s.upstream, config.CatalogClients)
}

func (s *catalogService) ListAvailableVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return listCatalog[domain.Vehicle](ctx, s.upstream, config.CatalogVehicles)
}

func (s *catalogService) ListExtras(ctx context.Context) ([]domain.Extra, error) {
	return listCatalog[domain.Extra](ctx, s.upstream, config.CatalogExtras)
}

func (s *catalogService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return listCatalog[domain.User](ctx, s.upstream, config.CatalogUsers)
}

func (s *catalogService) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return listCatalog[domain.Branch](ctx, s.upstream, config.CatalogBranches)
}

func (s *catalogService) ListContractStates(ctx context.Context) ([]domain.ContractState, error) {
	return listCatalog[domain.ContractState](ctx, s.upstream, config.CatalogContractStates)
}

// listCatalog fetches one catalog; an empty payload is an empty list.
func listCatalog[T any](ctx context.Context, up Upstream, resource config.CatalogResource) ([]T, error) {
	ep, ok := config.GetCatalogEndpoint(resource)
	if !ok {
		return nil, fmt.Errorf("unknown catalog %q", resource)
	}
	var items []T
	err := up.Do(ctx, ep.API, http.MethodGet, ep.Path, nil, nil, &items)
	if err != nil && !upstream.IsEmptyBody(err) {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
