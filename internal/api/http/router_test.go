package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rental-frontend/internal/domain"
	"rental-frontend/internal/security"
	"rental-frontend/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type fixture struct {
	contracts *MockContractService
	catalogs  *MockCatalogService
	tokens    *MockTokenSource
	router    http.Handler
}

func newFixture() *fixture {
	f := &fixture{
		contracts: new(MockContractService),
		catalogs:  new(MockCatalogService),
		tokens:    new(MockTokenSource),
	}
	f.router = NewRouter(NewContractHandler(f.contracts), NewCatalogHandler(f.catalogs), NewStatusHandler(f.tokens))
	return f
}

func (f *fixture) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestContracts_List(t *testing.T) {
	f := newFixture()
	f.contracts.On("ListContracts", mock.Anything, mock.MatchedBy(func(filter domain.ContractFilter) bool {
		return filter.StateID != nil && *filter.StateID == 3 && filter.ClientID == nil &&
			filter.DateFrom != nil && filter.DateFrom.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) && filter.DateTo == nil
	})).Return([]domain.Contract{{ID: 1, StateID: 3}}, nil)

	rec, env := f.do(t, http.MethodGet, "/Contratos/Listar?idEstado=3&fechaInicio=2024-03-01", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Empty(t, env.Message)

	var contracts []domain.Contract
	require.NoError(t, json.Unmarshal(env.Data, &contracts))
	require.Len(t, contracts, 1)
	assert.Equal(t, 3, contracts[0].StateID)
	f.contracts.AssertExpectations(t)
}

func TestContracts_List_EmptyIsAnArray(t *testing.T) {
	f := newFixture()
	f.contracts.On("ListContracts", mock.Anything, domain.ContractFilter{}).Return([]domain.Contract{}, nil)

	rec, _ := f.do(t, http.MethodGet, "/Contratos/Listar", "")
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
}

func TestContracts_BadParameters(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		param  string
	}{
		{"non-numeric filter", http.MethodGet, "/Contratos/Listar?idEstado=abc", "idEstado"},
		{"unparseable date", http.MethodGet, "/Contratos/Listar?fechaFin=31/03/2024", "fechaFin"},
		{"missing id", http.MethodGet, "/Contratos/Obtener", "id"},
		{"missing rate", http.MethodPost, "/Contratos/AgregarVehiculo?idContrato=1&idVehiculo=2", "costoDiario"},
		{"missing user", http.MethodPut, "/Contratos/Confirmar?id=1", "idUsuario"},
		{"bad line id", http.MethodPut, "/Contratos/MarcarVehiculoInspeccionado?idVehiculoContrato=x&idUsuario=1", "idVehiculoContrato"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			rec, env := f.do(t, tt.method, tt.target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, env.Success)
			assert.Contains(t, env.Message, tt.param)
			f.contracts.AssertNotCalled(t, "ListContracts", mock.Anything, mock.Anything)
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		f := newFixture()
		rec, env := f.do(t, http.MethodPost, "/Contratos/Crear", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, env.Success)
	})
}

func TestContracts_GetNotFound(t *testing.T) {
	f := newFixture()
	f.contracts.On("GetContract", mock.Anything, 77).Return(nil, false, nil)
	f.contracts.On("GetContractDetail", mock.Anything, 77).Return(nil, false, nil)

	for _, target := range []string{"/Contratos/Obtener?id=77", "/Contratos/ObtenerDetalle?id=77", "/Contratos/Acciones?id=77"} {
		rec, _ := f.do(t, http.MethodGet, target, "")
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.JSONEq(t, `{"success":false,"message":"Contrato no encontrado"}`, rec.Body.String(), target)
	}
}

func TestContracts_GetDetailAndActions(t *testing.T) {
	f := newFixture()
	detail := &domain.ContractDetail{
		Contract: domain.Contract{ID: 5, StateID: domain.PreStartStateID},
		Vehicles: []domain.VehicleLine{{ID: 50, Inspected: true}},
		Extras:   []domain.ExtraLine{},
	}
	f.contracts.On("GetContractDetail", mock.Anything, 5).Return(detail, true, nil)

	_, env := f.do(t, http.MethodGet, "/Contratos/ObtenerDetalle?id=5", "")
	require.True(t, env.Success)
	var got domain.ContractDetail
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 50, got.Vehicles[0].ID)

	_, env = f.do(t, http.MethodGet, "/Contratos/Acciones?id=5", "")
	require.True(t, env.Success)
	assert.JSONEq(t, `{"puedeAgregarLineas":true,"puedeConfirmar":true,"puedeIniciar":false}`, string(env.Data))
}

func TestContracts_CreateAndUpdate(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		f := newFixture()
		f.contracts.On("CreateContract", mock.Anything, mock.MatchedBy(func(c domain.Contract) bool {
			return c.ClientID == 9 && c.PickupAt.Equal(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
		})).Return(&domain.Contract{ID: 41, ClientID: 9}, nil)

		_, env := f.do(t, http.MethodPost, "/Contratos/Crear", `{"idCliente":9,"fechaRecogida":"2024-05-01T09:00:00","fechaDevolucion":"2024-05-04T09:00:00"}`)
		require.True(t, env.Success)
		var c domain.Contract
		require.NoError(t, json.Unmarshal(env.Data, &c))
		assert.Equal(t, 41, c.ID)
	})

	t.Run("create rejected upstream", func(t *testing.T) {
		f := newFixture()
		f.contracts.On("CreateContract", mock.Anything, mock.Anything).
			Return(nil, &domain.UpstreamError{Method: http.MethodPost, Path: "/api/Contratos", StatusCode: http.StatusBadRequest, Body: "cliente inactivo"})

		rec, env := f.do(t, http.MethodPost, "/Contratos/Crear", `{"idCliente":9}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, env.Success)
		assert.True(t, strings.HasPrefix(env.Message, "Error al crear contrato: "), env.Message)
		assert.Contains(t, env.Message, "400")
		assert.Contains(t, env.Message, "cliente inactivo")
	})

	t.Run("update id mismatch", func(t *testing.T) {
		f := newFixture()
		f.contracts.On("UpdateContract", mock.Anything, 5, mock.Anything).Return(nil, domain.ErrIDMismatch)

		rec, env := f.do(t, http.MethodPut, "/Contratos/Actualizar?id=5", `{"idContrato":6}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, env.Success)
		assert.Contains(t, env.Message, "Error al actualizar contrato")
	})
}

func TestContracts_AttachVehicle(t *testing.T) {
	t.Run("explicit days", func(t *testing.T) {
		f := newFixture()
		f.contracts.On("AttachVehicle", mock.Anything, 8, domain.VehicleLineInput{VehicleID: 3, Description: "Hilux", DaysOfUse: 2, DailyRate: 60}).
			Return(&domain.VehicleLine{ID: 70, ContractID: 8, Subtotal: 120}, nil)

		_, env := f.do(t, http.MethodPost, "/Contratos/AgregarVehiculo?idContrato=8&idVehiculo=3&descripcionVehiculo=Hilux&diasDeUso=2&costoDiario=60", "")
		require.True(t, env.Success, env.Message)
		f.contracts.AssertNotCalled(t, "GetContract", mock.Anything, mock.Anything)
	})

	t.Run("days derived from contract window", func(t *testing.T) {
		f := newFixture()
		pickup := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		f.contracts.On("GetContract", mock.Anything, 8).Return(&domain.Contract{
			ID:       8,
			PickupAt: domain.NewDateTime(pickup),
			ReturnAt: domain.NewDateTime(pickup.Add(60 * time.Hour)),
		}, true, nil)
		f.contracts.On("AttachVehicle", mock.Anything, 8, domain.VehicleLineInput{VehicleID: 3, DaysOfUse: 3, DailyRate: 60}).
			Return(&domain.VehicleLine{ID: 70}, nil)

		_, env := f.do(t, http.MethodPost, "/Contratos/AgregarVehiculo?idContrato=8&idVehiculo=3&costoDiario=60", "")
		require.True(t, env.Success, env.Message)
		f.contracts.AssertExpectations(t)
	})

	t.Run("contract to derive from is gone", func(t *testing.T) {
		f := newFixture()
		f.contracts.On("GetContract", mock.Anything, 8).Return(nil, false, nil)

		_, env := f.do(t, http.MethodPost, "/Contratos/AgregarExtra?idContrato=8&idExtra=2&costoDiario=5", "")
		assert.False(t, env.Success)
		assert.Equal(t, "Error al agregar extra: Contrato no encontrado", env.Message)
	})
}

func TestContracts_Transitions(t *testing.T) {
	t.Run("mark inspected", func(t *testing.T) {
		f := newFixture()
		f.contracts.On("MarkInspected", mock.Anything, 70, 4).Return(nil)

		rec, _ := f.do(t, http.MethodPut, "/Contratos/MarcarVehiculoInspeccionado?idVehiculoContrato=70&idUsuario=4", "")
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	})

	t.Run("confirm rejected", func(t *testing.T) {
		f := newFixture()
		f.contracts.On("Confirm", mock.Anything, 8, 4).
			Return(&domain.UpstreamError{Method: http.MethodPost, Path: "/api/Contratos/8/confirmar", StatusCode: http.StatusConflict, Body: "hay vehículos sin inspeccionar"})

		rec, env := f.do(t, http.MethodPut, "/Contratos/Confirmar?id=8&idUsuario=4", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, env.Success)
		assert.True(t, strings.HasPrefix(env.Message, "Error al confirmar contrato: "))
		assert.Contains(t, env.Message, "hay vehículos sin inspeccionar")
	})

	t.Run("start", func(t *testing.T) {
		f := newFixture()
		f.contracts.On("Start", mock.Anything, 8, 4).Return(nil)

		_, env := f.do(t, http.MethodPut, "/Contratos/Iniciar?id=8&idUsuario=4", "")
		assert.True(t, env.Success)
	})

	t.Run("authentication failure", func(t *testing.T) {
		f := newFixture()
		f.contracts.On("Start", mock.Anything, 8, 4).Return(&domain.AuthError{API: domain.ContractsAPI, StatusCode: http.StatusUnauthorized})

		_, env := f.do(t, http.MethodPut, "/Contratos/Iniciar?id=8&idUsuario=4", "")
		assert.False(t, env.Success)
		assert.Contains(t, env.Message, "contracts api token request failed")
	})
}

func TestCatalogs(t *testing.T) {
	f := newFixture()
	f.catalogs.On("ListClients", mock.Anything).Return([]domain.Client{}, nil)
	f.catalogs.On("ListAvailableVehicles", mock.Anything).Return([]domain.Vehicle{{ID: 3, Description: "Hilux"}}, nil)
	f.catalogs.On("ListExtras", mock.Anything).Return(nil, errors.New("connection refused"))
	f.catalogs.On("ListUsers", mock.Anything).Return([]domain.User{{ID: 4}}, nil)
	f.catalogs.On("ListBranches", mock.Anything).Return([]domain.Branch{{ID: 1}}, nil)
	f.catalogs.On("ListContractStates", mock.Anything).Return([]domain.ContractState{{ID: 1, Description: "Pendiente"}}, nil)

	rec, _ := f.do(t, http.MethodGet, "/Contratos/ObtenerClientes", "")
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())

	_, env := f.do(t, http.MethodGet, "/Contratos/ObtenerVehiculos", "")
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), "Hilux")

	rec, env = f.do(t, http.MethodGet, "/Contratos/ObtenerExtras", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Error al cargar extras: connection refused", env.Message)

	for _, target := range []string{"/Contratos/ObtenerUsuarios", "/Contratos/ObtenerSucursales", "/Contratos/ObtenerEstados"} {
		_, env = f.do(t, http.MethodGet, target, "")
		assert.True(t, env.Success, target)
	}
	f.catalogs.AssertExpectations(t)
}

func TestRouter_Middleware(t *testing.T) {
	t.Run("request id is echoed", func(t *testing.T) {
		f := newFixture()
		f.catalogs.On("ListBranches", mock.Anything).Return([]domain.Branch{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/Contratos/ObtenerSucursales", nil)
		req.Header.Set(upstream.RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", rec.Header().Get(upstream.RequestIDHeader))

		rec, _ = f.do(t, http.MethodGet, "/Contratos/ObtenerSucursales", "")
		assert.NotEmpty(t, rec.Header().Get(upstream.RequestIDHeader))
	})

	t.Run("panic becomes a 500 envelope", func(t *testing.T) {
		f := newFixture()
		f.catalogs.On("ListUsers", mock.Anything).Run(func(mock.Arguments) { panic("boom") })

		rec, env := f.do(t, http.MethodGet, "/Contratos/ObtenerUsuarios", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.False(t, env.Success)
	})

	t.Run("wrong method", func(t *testing.T) {
		f := newFixture()
		rec, env := f.do(t, http.MethodGet, "/Contratos/Crear", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "Método GET no permitido", env.Message)
		assert.NotEmpty(t, rec.Header().Get(upstream.RequestIDHeader))
		f.contracts.AssertNotCalled(t, "CreateContract", mock.Anything, mock.Anything)
	})

	t.Run("unknown path", func(t *testing.T) {
		f := newFixture()
		rec, env := f.do(t, http.MethodGet, "/Contratos/NoExiste", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "Recurso no encontrado", env.Message)
		assert.NotEmpty(t, rec.Header().Get(upstream.RequestIDHeader))
	})
}

func TestStatus(t *testing.T) {
	t.Run("live", func(t *testing.T) {
		f := newFixture()
		rec, _ := f.do(t, http.MethodGet, "/health/live", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		f.tokens.AssertNotCalled(t, "Token", mock.Anything, mock.Anything)
	})

	t.Run("ready", func(t *testing.T) {
		f := newFixture()
		f.tokens.On("Token", mock.Anything, domain.ContractsAPI).Return("c", nil)
		f.tokens.On("Token", mock.Anything, domain.CatalogsAPI).Return("k", nil)

		rec, _ := f.do(t, http.MethodGet, "/health/ready", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ready")
	})

	t.Run("not ready", func(t *testing.T) {
		f := newFixture()
		f.tokens.On("Token", mock.Anything, domain.ContractsAPI).Return("c", nil)
		f.tokens.On("Token", mock.Anything, domain.CatalogsAPI).Return("", &domain.AuthError{API: domain.CatalogsAPI})

		rec, _ := f.do(t, http.MethodGet, "/health/ready", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "catalogs")
	})

	t.Run("hung auth endpoint fails within the readiness timeout", func(t *testing.T) {
		release := make(chan struct{})
		auth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer auth.Close()
		defer close(release)

		tokens := security.NewTokenCache(map[domain.APIIdentity]security.Upstream{
			domain.ContractsAPI: {BaseURL: auth.URL, AuthCode: "c"},
			domain.CatalogsAPI:  {BaseURL: auth.URL, AuthCode: "k"},
		})
		status := NewStatusHandler(tokens)
		status.timeout = 100 * time.Millisecond

		rec := httptest.NewRecorder()
		start := time.Now()
		status.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "contracts")
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("metrics", func(t *testing.T) {
		f := newFixture()
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
