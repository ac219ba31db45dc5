package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"rental-frontend/internal/domain"
	"rental-frontend/internal/logger"
	"rental-frontend/internal/metrics"
	"rental-frontend/internal/service"
	"rental-frontend/internal/utils"
)

const msgContractNotFound = "Contrato no encontrado"

var errContractNotFound = errors.New(msgContractNotFound)

// ContractHandler serves the contract screens' AJAX actions
type ContractHandler struct {
	contracts service.ContractService
}

// NewContractHandler creates a new contract handler
func NewContractHandler(contracts service.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// List handles GET /Contratos/Listar
func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.ContractFilter
	var err error
	if filter.ClientID, err = optionalInt(r, "idCliente"); err != nil {
		badRequest(w, r, "list_contracts", err)
		return
	}
	if filter.StateID, err = optionalInt(r, "idEstado"); err != nil {
		badRequest(w, r, "list_contracts", err)
		return
	}
	if filter.DateFrom, err = optionalDate(r, "fechaInicio"); err != nil {
		badRequest(w, r, "list_contracts", err)
		return
	}
	if filter.DateTo, err = optionalDate(r, "fechaFin"); err != nil {
		badRequest(w, r, "list_contracts", err)
		return
	}

	contracts, err := h.contracts.ListContracts(r.Context(), filter)
	if err != nil {
		fail(w, r, "list_contracts", "Error al cargar contratos", err)
		return
	}
	writeOK(w, contracts)
}

// Get handles GET /Contratos/Obtener?id=
func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := requiredInt(r, "id")
	if err != nil {
		badRequest(w, r, "get_contract", err)
		return
	}

	contract, found, err := h.contracts.GetContract(r.Context(), id)
	if err != nil {
		fail(w, r, "get_contract", "Error al obtener contrato", err)
		return
	}
	if !found {
		writeFailure(w, http.StatusOK, msgContractNotFound)
		return
	}
	writeOK(w, contract)
}

// GetDetail handles GET /Contratos/ObtenerDetalle?id=
func (h *ContractHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	id, err := requiredInt(r, "id")
	if err != nil {
		badRequest(w, r, "get_contract_detail", err)
		return
	}

	detail, found, err := h.contracts.GetContractDetail(r.Context(), id)
	if err != nil {
		fail(w, r, "get_contract_detail", "Error al obtener detalle", err)
		return
	}
	if !found {
		writeFailure(w, http.StatusOK, msgContractNotFound)
		return
	}
	writeOK(w, detail)
}

// Actions handles GET /Contratos/Acciones?id=
func (h *ContractHandler) Actions(w http.ResponseWriter, r *http.Request) {
	id, err := requiredInt(r, "id")
	if err != nil {
		badRequest(w, r, "contract_actions", err)
		return
	}

	detail, found, err := h.contracts.GetContractDetail(r.Context(), id)
	if err != nil {
		fail(w, r, "contract_actions", "Error al obtener acciones", err)
		return
	}
	if !found {
		writeFailure(w, http.StatusOK, msgContractNotFound)
		return
	}
	writeOK(w, service.ActionsFor(*detail))
}

// Create handles POST /Contratos/Crear
func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	var contract domain.Contract
	if err := json.NewDecoder(r.Body).Decode(&contract); err != nil {
		badRequest(w, r, "create_contract", err)
		return
	}

	created, err := h.contracts.CreateContract(r.Context(), contract)
	if err != nil {
		fail(w, r, "create_contract", "Error al crear contrato", err)
		return
	}
	logger.InfoContext(r.Context(), "contract created", "contract_id", created.ID)
	writeOK(w, created)
}

// Update handles PUT /Contratos/Actualizar?id=
func (h *ContractHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := requiredInt(r, "id")
	if err != nil {
		badRequest(w, r, "update_contract", err)
		return
	}
	var contract domain.Contract
	if err := json.NewDecoder(r.Body).Decode(&contract); err != nil {
		badRequest(w, r, "update_contract", err)
		return
	}

	updated, err := h.contracts.UpdateContract(r.Context(), id, contract)
	if err != nil {
		fail(w, r, "update_contract", "Error al actualizar contrato", err)
		return
	}
	writeOK(w, updated)
}

// AttachVehicle handles POST /Contratos/AgregarVehiculo
func (h *ContractHandler) AttachVehicle(w http.ResponseWriter, r *http.Request) {
	ids, err := intParams(r, "idContrato", "idVehiculo")
	if err != nil {
		badRequest(w, r, "attach_vehicle", err)
		return
	}
	rate, err := requiredFloat(r, "costoDiario")
	if err != nil {
		badRequest(w, r, "attach_vehicle", err)
		return
	}
	days, err := h.daysOfUse(r, ids[0])
	if err != nil {
		fail(w, r, "attach_vehicle", "Error al agregar vehículo", err)
		return
	}

	line, err := h.contracts.AttachVehicle(r.Context(), ids[0], domain.VehicleLineInput{
		VehicleID:   ids[1],
		Description: queryValue(r, "descripcionVehiculo"),
		DaysOfUse:   days,
		DailyRate:   rate,
	})
	if err != nil {
		fail(w, r, "attach_vehicle", "Error al agregar vehículo", err)
		return
	}
	checkSubtotal(r, line.ID, days, rate, line.Subtotal)
	writeOK(w, line)
}

// AttachExtra handles POST /Contratos/AgregarExtra
func (h *ContractHandler) AttachExtra(w http.ResponseWriter, r *http.Request) {
	ids, err := intParams(r, "idContrato", "idExtra")
	if err != nil {
		badRequest(w, r, "attach_extra", err)
		return
	}
	rate, err := requiredFloat(r, "costoDiario")
	if err != nil {
		badRequest(w, r, "attach_extra", err)
		return
	}
	days, err := h.daysOfUse(r, ids[0])
	if err != nil {
		fail(w, r, "attach_extra", "Error al agregar extra", err)
		return
	}

	line, err := h.contracts.AttachExtra(r.Context(), ids[0], domain.ExtraLineInput{
		ExtraID:     ids[1],
		Description: queryValue(r, "descripcionExtra"),
		DaysOfUse:   days,
		DailyRate:   rate,
	})
	if err != nil {
		fail(w, r, "attach_extra", "Error al agregar extra", err)
		return
	}
	checkSubtotal(r, line.ID, days, rate, line.Subtotal)
	writeOK(w, line)
}

// daysOfUse takes diasDeUso from the request, or derives it from the
// contract's pickup/return window when the caller left it out.
func (h *ContractHandler) daysOfUse(r *http.Request, contractID int) (int, error) {
	days, err := optionalInt(r, "diasDeUso")
	if err != nil {
		return 0, err
	}
	if days != nil {
		return *days, nil
	}
	return h.deriveDays(r.Context(), contractID)
}

func (h *ContractHandler) deriveDays(ctx context.Context, contractID int) (int, error) {
	contract, found, err := h.contracts.GetContract(ctx, contractID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, errContractNotFound
	}
	return utils.RentalDays(contract.PickupAt.Time, contract.ReturnAt.Time), nil
}

func checkSubtotal(r *http.Request, lineID, days int, rate, got float64) {
	if want := utils.LineSubtotal(days, rate); want != got {
		logger.WarnContext(r.Context(), "line subtotal differs from days x rate",
			"line_id", lineID, "days", days, "daily_rate", rate, "expected", want, "subtotal", got)
	}
}

// MarkInspected handles PUT /Contratos/MarcarVehiculoInspeccionado
func (h *ContractHandler) MarkInspected(w http.ResponseWriter, r *http.Request) {
	ids, err := intParams(r, "idVehiculoContrato", "idUsuario")
	if err != nil {
		badRequest(w, r, "mark_inspected", err)
		return
	}

	if err := h.contracts.MarkInspected(r.Context(), ids[0], ids[1]); err != nil {
		fail(w, r, "mark_inspected", "Error al marcar vehículo como inspeccionado", err)
		return
	}
	writeOK(w, nil)
}

// Confirm handles PUT /Contratos/Confirmar
func (h *ContractHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	ids, err := intParams(r, "id", "idUsuario")
	if err != nil {
		badRequest(w, r, "confirm_contract", err)
		return
	}

	if err := h.contracts.Confirm(r.Context(), ids[0], ids[1]); err != nil {
		fail(w, r, "confirm_contract", "Error al confirmar contrato", err)
		return
	}
	logger.InfoContext(r.Context(), "contract confirmed", "contract_id", ids[0], "user_id", ids[1])
	writeOK(w, nil)
}

// Start handles PUT /Contratos/Iniciar
func (h *ContractHandler) Start(w http.ResponseWriter, r *http.Request) {
	ids, err := intParams(r, "id", "idUsuario")
	if err != nil {
		badRequest(w, r, "start_contract", err)
		return
	}

	if err := h.contracts.Start(r.Context(), ids[0], ids[1]); err != nil {
		fail(w, r, "start_contract", "Error al iniciar contrato", err)
		return
	}
	logger.InfoContext(r.Context(), "contract started", "contract_id", ids[0], "user_id", ids[1])
	writeOK(w, nil)
}

// fail is the single place where an error becomes the envelope's message.
func fail(w http.ResponseWriter, r *http.Request, action, prefix string, err error) {
	var pErr *paramError
	if errors.As(err, &pErr) {
		badRequest(w, r, action, err)
		return
	}
	logger.ErrorContext(r.Context(), "action failed", "action", action, "error", err)
	metrics.ActionFailuresTotal.WithLabelValues(action).Inc()
	writeFailure(w, http.StatusOK, prefix+": "+err.Error())
}

func badRequest(w http.ResponseWriter, r *http.Request, action string, err error) {
	logger.WarnContext(r.Context(), "rejected request", "action", action, "error", err)
	metrics.ActionFailuresTotal.WithLabelValues(action).Inc()
	writeFailure(w, http.StatusBadRequest, err.Error())
}
