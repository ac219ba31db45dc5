package http

import (
	"context"
	"net/http"

	"rental-frontend/internal/service"
)

// CatalogHandler serves the reference lists used to fill the contract forms
type CatalogHandler struct {
	catalogs service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogs service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs}
}

// Clients handles GET /Contratos/ObtenerClientes
func (h *CatalogHandler) Clients(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, "list_clients", "Error al cargar clientes", h.catalogs.ListClients)
}

// Vehicles handles GET /Contratos/ObtenerVehiculos
func (h *CatalogHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, "list_vehicles", "Error al cargar vehículos", h.catalogs.ListAvailableVehicles)
}

// Extras handles GET /Contratos/ObtenerExtras
func (h *CatalogHandler) Extras(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, "list_extras", "Error al cargar extras", h.catalogs.ListExtras)
}

// Users handles GET /Contratos/ObtenerUsuarios
func (h *CatalogHandler) Users(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, "list_users", "Error al cargar usuarios", h.catalogs.ListUsers)
}

// Branches handles GET /Contratos/ObtenerSucursales
func (h *CatalogHandler) Branches(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, "list_branches", "Error al cargar sucursales", h.catalogs.ListBranches)
}

// ContractStates handles GET /Contratos/ObtenerEstados
func (h *CatalogHandler) ContractStates(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, "list_contract_states", "Error al cargar estados", h.catalogs.ListContractStates)
}

func serveList[T any](w http.ResponseWriter, r *http.Request, action, prefix string, list func(context.Context) ([]T, error)) {
	items, err := list(r.Context())
	if err != nil {
		fail(w, r, action, prefix, err)
		return
	}
	writeOK(w, items)
}
