package config

import "rental-frontend/internal/domain"

// CatalogResource names a read-only reference list offered to the UI
type CatalogResource string

const (
	CatalogClients        CatalogResource = "clients"
	CatalogVehicles       CatalogResource = "vehicles"
	CatalogExtras         CatalogResource = "extras"
	CatalogUsers          CatalogResource = "users"
	CatalogBranches       CatalogResource = "branches"
	CatalogContractStates CatalogResource = "contract_states"
)

// Endpoint is an upstream API identity plus the path of a list operation
type Endpoint struct {
	API  domain.APIIdentity
	Path string
}

// CatalogEndpoints maps each catalog to the upstream that owns it. Contract
// states live with the Contracts API; everything else is reference data
// served by the Catalogs API.
var CatalogEndpoints = map[CatalogResource]Endpoint{
	CatalogClients:        {API: domain.CatalogsAPI, Path: "/api/Clientes"},
	CatalogVehicles:       {API: domain.CatalogsAPI, Path: "/api/Vehiculos/disponibles"},
	CatalogExtras:         {API: domain.CatalogsAPI, Path: "/api/Extras"},
	CatalogUsers:          {API: domain.CatalogsAPI, Path: "/api/Usuarios"},
	CatalogBranches:       {API: domain.CatalogsAPI, Path: "/api/Sucursales"},
	CatalogContractStates: {API: domain.ContractsAPI, Path: "/api/EstadosContrato"},
}

// GetCatalogEndpoint returns the endpoint for a catalog resource
func GetCatalogEndpoint(resource CatalogResource) (Endpoint, bool) {
	ep, ok := CatalogEndpoints[resource]
	return ep, ok
}

// Upstreams returns the per-identity upstream settings
func (c *Config) Upstreams() map[domain.APIIdentity]UpstreamConfig {
	return map[domain.APIIdentity]UpstreamConfig{
		domain.ContractsAPI: c.ContractsAPI,
		domain.CatalogsAPI:  c.CatalogsAPI,
	}
}
