package domain

import "time"

// PreStartStateID is the contract state in which a confirmed contract may be started.
const PreStartStateID = 1

// Contract mirrors the Contracts API contract resource. The Name/Description
// fields are denormalized projections filled in by the upstream on reads; they
// are never sent back on create or update.
type Contract struct {
	ID               int      `json:"idContrato"`
	ClientID         int      `json:"idCliente"`
	ClientName       string   `json:"nombreCliente,omitempty"`
	PickupAt         DateTime `json:"fechaRecogida"`
	ReturnAt         DateTime `json:"fechaDevolucion"`
	BranchID         int      `json:"idSucursal"`
	BranchName       string   `json:"nombreSucursal,omitempty"`
	StateID          int      `json:"idEstado"`
	StateDescription string   `json:"descripcionEstado,omitempty"`
	UserID           int      `json:"idUsuario"`
	UserName         string   `json:"nombreUsuario,omitempty"`
	TotalAmount      float64  `json:"montoTotal"`
	Confirmed        bool     `json:"confirmado"`
	WarrantyApproved bool     `json:"garantiaAprobada"`
	Balance          float64  `json:"saldo"`
}

// ContractInput is the write payload for create and update. It carries only
// the authoritative fields of a Contract.
type ContractInput struct {
	ID               int      `json:"idContrato"`
	ClientID         int      `json:"idCliente"`
	PickupAt         DateTime `json:"fechaRecogida"`
	ReturnAt         DateTime `json:"fechaDevolucion"`
	BranchID         int      `json:"idSucursal"`
	StateID          int      `json:"idEstado"`
	UserID           int      `json:"idUsuario"`
	TotalAmount      float64  `json:"montoTotal"`
	Confirmed        bool     `json:"confirmado"`
	WarrantyApproved bool     `json:"garantiaAprobada"`
	Balance          float64  `json:"saldo"`
}

// Input strips the denormalized display fields.
func (c Contract) Input() ContractInput {
	return ContractInput{
		ID:               c.ID,
		ClientID:         c.ClientID,
		PickupAt:         c.PickupAt,
		ReturnAt:         c.ReturnAt,
		BranchID:         c.BranchID,
		StateID:          c.StateID,
		UserID:           c.UserID,
		TotalAmount:      c.TotalAmount,
		Confirmed:        c.Confirmed,
		WarrantyApproved: c.WarrantyApproved,
		Balance:          c.Balance,
	}
}

type VehicleLine struct {
	ID          int     `json:"idVehiculoContrato"`
	ContractID  int     `json:"idContrato"`
	VehicleID   int     `json:"idVehiculo"`
	Description string  `json:"descripcionVehiculo"`
	DaysOfUse   int     `json:"diasDeUso"`
	DailyRate   float64 `json:"costoDiario"`
	Subtotal    float64 `json:"subtotal"`
	Inspected   bool    `json:"inspeccionado"`
}

type ExtraLine struct {
	ID          int     `json:"idExtraContrato"`
	ContractID  int     `json:"idContrato"`
	ExtraID     int     `json:"idExtra"`
	Description string  `json:"descripcionExtra"`
	DaysOfUse   int     `json:"diasDeUso"`
	DailyRate   float64 `json:"costoDiario"`
	Subtotal    float64 `json:"subtotal"`
}

// VehicleLineInput is the body sent when attaching a vehicle to a contract.
type VehicleLineInput struct {
	ContractID  int     `json:"idContrato"`
	VehicleID   int     `json:"idVehiculo"`
	Description string  `json:"descripcionVehiculo"`
	DaysOfUse   int     `json:"diasDeUso"`
	DailyRate   float64 `json:"costoDiario"`
}

// ExtraLineInput is the body sent when attaching an extra to a contract.
type ExtraLineInput struct {
	ContractID  int     `json:"idContrato"`
	ExtraID     int     `json:"idExtra"`
	Description string  `json:"descripcionExtra"`
	DaysOfUse   int     `json:"diasDeUso"`
	DailyRate   float64 `json:"costoDiario"`
}

// ContractDetail is the read-only aggregate returned by the detail endpoint.
type ContractDetail struct {
	Contract Contract      `json:"contrato"`
	Vehicles []VehicleLine `json:"vehiculos"`
	Extras   []ExtraLine   `json:"extras"`
}

// Normalize replaces nil line collections with empty ones.
func (d *ContractDetail) Normalize() {
	if d.Vehicles == nil {
		d.Vehicles = []VehicleLine{}
	}
	if d.Extras == nil {
		d.Extras = []ExtraLine{}
	}
}

// ContractFilter holds the optional list filters. Nil fields are not sent.
type ContractFilter struct {
	ClientID *int
	StateID  *int
	DateFrom *time.Time
	DateTo   *time.Time
}

// ContractActions describes which lifecycle actions the UI may offer for a
// contract. It is advisory; the Contracts API has the final word.
type ContractActions struct {
	CanAddLines bool `json:"puedeAgregarLineas"`
	CanConfirm  bool `json:"puedeConfirmar"`
	CanStart    bool `json:"puedeIniciar"`
}

// UserAction is the body of one-shot transitions (inspect, confirm, start).
type UserAction struct {
	UserID int `json:"idUsuario"`
}
