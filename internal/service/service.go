package service

import (
	"context"
	"net/url"

	"rental-frontend/internal/domain"
)

// Upstream is the authenticated transport the services call through.
type Upstream interface {
	Do(ctx context.Context, api domain.APIIdentity, method, path string, query url.Values, body, out any) error
}

// ContractService is the contract lifecycle surface. Each method is a single
// upstream call; the Contracts API owns atomicity and business rules.
type ContractService interface {
	ListContracts(ctx context.Context, filter domain.ContractFilter) ([]domain.Contract, error)
	GetContract(ctx context.Context, id int) (*domain.Contract, bool, error)
	GetContractDetail(ctx context.Context, id int) (*domain.ContractDetail, bool, error)
	CreateContract(ctx context.Context, contract domain.Contract) (*domain.Contract, error)
	UpdateContract(ctx context.Context, id int, contract domain.Contract) (*domain.Contract, error)
	AttachVehicle(ctx context.Context, contractID int, line domain.VehicleLineInput) (*domain.VehicleLine, error)
	AttachExtra(ctx context.Context, contractID int, line domain.ExtraLineInput) (*domain.ExtraLine, error)
	MarkInspected(ctx context.Context, vehicleLineID, userID int) error
	Confirm(ctx context.Context, contractID, userID int) error
	Start(ctx context.Context, contractID, userID int) error
}

// CatalogService lists the active/available reference data the contract
// screens pick from.
type CatalogService interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	ListAvailableVehicles(ctx context.Context) ([]domain.Vehicle, error)
	ListExtras(ctx context.Context) ([]domain.Extra, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
	ListContractStates(ctx context.Context) ([]domain.ContractState, error)
}
