package http

import (
	"context"

	"rental-frontend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockContractService
type MockContractService struct {
	mock.Mock
}

func (m *MockContractService) ListContracts(ctx context.Context, filter domain.ContractFilter) ([]domain.Contract, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contract), args.Error(1)
}
func (m *MockContractService) GetContract(ctx context.Context, id int) (*domain.Contract, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Contract), args.Bool(1), args.Error(2)
}
func (m *MockContractService) GetContractDetail(ctx context.Context, id int) (*domain.ContractDetail, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.ContractDetail), args.Bool(1), args.Error(2)
}
func (m *MockContractService) CreateContract(ctx context.Context, contract domain.Contract) (*domain.Contract, error) {
	args := m.Called(ctx, contract)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractService) UpdateContract(ctx context.Context, id int, contract domain.Contract) (*domain.Contract, error) {
	args := m.Called(ctx, id, contract)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractService) AttachVehicle(ctx context.Context, contractID int, line domain.VehicleLineInput) (*domain.VehicleLine, error) {
	args := m.Called(ctx, contractID, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleLine), args.Error(1)
}
func (m *MockContractService) AttachExtra(ctx context.Context, contractID int, line domain.ExtraLineInput) (*domain.ExtraLine, error) {
	args := m.Called(ctx, contractID, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtraLine), args.Error(1)
}
func (m *MockContractService) MarkInspected(ctx context.Context, vehicleLineID, userID int) error {
	args := m.Called(ctx, vehicleLineID, userID)
	return args.Error(0)
}
func (m *MockContractService) Confirm(ctx context.Context, contractID, userID int) error {
	args := m.Called(ctx, contractID, userID)
	return args.Error(0)
}
func (m *MockContractService) Start(ctx context.Context, contractID, userID int) error {
	args := m.Called(ctx, contractID, userID)
	return args.Error(0)
}

// MockCatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}
func (m *MockCatalogService) ListAvailableVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockCatalogService) ListExtras(ctx context.Context) ([]domain.Extra, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Extra), args.Error(1)
}
func (m *MockCatalogService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockCatalogService) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}
func (m *MockCatalogService) ListContractStates(ctx context.Context) ([]domain.ContractState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContractState), args.Error(1)
}

// MockTokenSource
type MockTokenSource struct {
	mock.Mock
}

func (m *MockTokenSource) Token(ctx context.Context, api domain.APIIdentity) (string, error) {
	args := m.Called(ctx, api)
	return args.String(0), args.Error(1)
}
