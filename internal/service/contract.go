package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"rental-frontend/internal/domain"
	"rental-frontend/internal/upstream"
)

const contractsPath = "/api/Contratos"

type contractService struct {
	upstream Upstream
}

// NewContractService creates a new contract service
func NewContractService(up Upstream) ContractService {
	return &contractService{upstream: up}
}

func (s *contractService) ListContracts(ctx context.Context, filter domain.ContractFilter) ([]domain.Contract, error) {
	var contracts []domain.Contract
	err := s.upstream.Do(ctx, domain.ContractsAPI, http.MethodGet, contractsPath, filterQuery(filter), nil, &contracts)
	if err != nil && !upstream.IsEmptyBody(err) {
		return nil, err
	}
	if contracts == nil {
		contracts = []domain.Contract{}
	}
	return contracts, nil
}

// filterQuery encodes only the filters that are set.
func filterQuery(filter domain.ContractFilter) url.Values {
	q := url.Values{}
	if filter.ClientID != nil {
		q.Set("idCliente", strconv.Itoa(*filter.ClientID))
	}
	if filter.StateID != nil {
		q.Set("idEstado", strconv.Itoa(*filter.StateID))
	}
	if filter.DateFrom != nil {
		q.Set("fechaInicio", filter.DateFrom.Format(domain.DateLayout))
	}
	if filter.DateTo != nil {
		q.Set("fechaFin", filter.DateTo.Format(domain.DateLayout))
	}
	return q
}

func (s *contractService) GetContract(ctx context.Context, id int) (*domain.Contract, bool, error) {
	var contract domain.Contract
	err := s.upstream.Do(ctx, domain.ContractsAPI, http.MethodGet, contractPath(id), nil, nil, &contract)
	if upstream.IsNotFound(err) || upstream.IsEmptyBody(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &contract, true, nil
}

func (s *contractService) GetContractDetail(ctx context.Context, id int) (*domain.ContractDetail, bool, error) {
	var detail domain.ContractDetail
	err := s.upstream.Do(ctx, domain.ContractsAPI, http.MethodGet, contractPath(id)+"/detalle", nil, nil, &detail)
	if upstream.IsNotFound(err) || upstream.IsEmptyBody(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	detail.Normalize()
	return &detail, true, nil
}

func (s *contractService) CreateContract(ctx context.Context, contract domain.Contract) (*domain.Contract, error) {
	input := contract.Input()
	input.ID = 0

	var created domain.Contract
	if err := s.upstream.Do(ctx, domain.ContractsAPI, http.MethodPost, contractsPath, nil, input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *contractService) UpdateContract(ctx context.Context, id int, contract domain.Contract) (*domain.Contract, error) {
	if contract.ID != 0 && contract.ID != id {
		return nil, fmt.Errorf("%w: body %d, path %d", domain.ErrIDMismatch, contract.ID, id)
	}
	input := contract.Input()
	input.ID = id

	var updated domain.Contract
	if err := s.upstream.Do(ctx, domain.ContractsAPI, http.MethodPut, contractPath(id), nil, input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *contractService) AttachVehicle(ctx context.Context, contractID int, line domain.VehicleLineInput) (*domain.VehicleLine, error) {
	line.ContractID = contractID

	var created domain.VehicleLine
	if err := s.upstream.Do(ctx, domain.ContractsAPI, http.MethodPost, contractPath(contractID)+"/vehiculos", nil, line, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *contractService) AttachExtra(ctx context.Context, contractID int, line domain.ExtraLineInput) (*domain.ExtraLine, error) {
	line.ContractID = contractID

	var created domain.ExtraLine
	if err := s.upstream.Do(ctx, domain.ContractsAPI, http.MethodPost, contractPath(contractID)+"/extras", nil, line, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *contractService) MarkInspected(ctx context.Context, vehicleLineID, userID int) error {
	path := contractsPath + "/vehiculos/" + strconv.Itoa(vehicleLineID) + "/marcar-inspeccionado"
	return s.upstream.Do(ctx, domain.ContractsAPI, http.MethodPost, path, nil, domain.UserAction{UserID: userID}, nil)
}

func (s *contractService) Confirm(ctx context.Context, contractID, userID int) error {
	return s.upstream.Do(ctx, domain.ContractsAPI, http.MethodPost, contractPath(contractID)+"/confirmar", nil, domain.UserAction{UserID: userID}, nil)
}

func (s *contractService) Start(ctx context.Context, contractID, userID int) error {
	return s.upstream.Do(ctx, domain.ContractsAPI, http.MethodPost, contractPath(contractID)+"/iniciar", nil, domain.UserAction{UserID: userID}, nil)
}

func contractPath(id int) string {
	return contractsPath + "/" + strconv.Itoa(id)
}
