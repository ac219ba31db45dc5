package http

import (
	"net/http"
	"time"

	"rental-frontend/internal/logger"
	"rental-frontend/internal/upstream"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter registers the contract screen actions, the catalog lists and the
// operational endpoints. Unknown paths and wrong methods answer with the
// failure envelope.
func NewRouter(contracts *ContractHandler, catalogs *CatalogHandler, status *StatusHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestIDMiddleware, loggingMiddleware, recoverMiddleware)

	router.HandleFunc("/Contratos/Listar", contracts.List).Methods(http.MethodGet)
	router.HandleFunc("/Contratos/Obtener", contracts.Get).Methods(http.MethodGet)
	router.HandleFunc("/Contratos/ObtenerDetalle", contracts.GetDetail).Methods(http.MethodGet)
	router.HandleFunc("/Contratos/Acciones", contracts.Actions).Methods(http.MethodGet)
	router.HandleFunc("/Contratos/Crear", contracts.Create).Methods(http.MethodPost)
	router.HandleFunc("/Contratos/Actualizar", contracts.Update).Methods(http.MethodPut)
	router.HandleFunc("/Contratos/AgregarVehiculo", contracts.AttachVehicle).Methods(http.MethodPost)
	router.HandleFunc("/Contratos/AgregarExtra", contracts.AttachExtra).Methods(http.MethodPost)
	router.HandleFunc("/Contratos/MarcarVehiculoInspeccionado", contracts.MarkInspected).Methods(http.MethodPut)
	router.HandleFunc("/Contratos/Confirmar", contracts.Confirm).Methods(http.MethodPut)
	router.HandleFunc("/Contratos/Iniciar", contracts.Start).Methods(http.MethodPut)

	router.HandleFunc("/Contratos/ObtenerClientes", catalogs.Clients).Methods(http.MethodGet)
	router.HandleFunc("/Contratos/ObtenerVehiculos", catalogs.Vehicles).Methods(http.MethodGet)
	router.HandleFunc("/Contratos/ObtenerExtras", catalogs.Extras).Methods(http.MethodGet)
	router.HandleFunc("/Contratos/ObtenerUsuarios", catalogs.Users).Methods(http.MethodGet)
	router.HandleFunc("/Contratos/ObtenerSucursales", catalogs.Branches).Methods(http.MethodGet)
	router.HandleFunc("/Contratos/ObtenerEstados", catalogs.ContractStates).Methods(http.MethodGet)

	router.HandleFunc("/health/live", status.Live).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", status.Ready).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// mux skips router middleware for these two, so they are wrapped here
	router.NotFoundHandler = requestIDMiddleware(loggingMiddleware(http.HandlerFunc(notFound)))
	router.MethodNotAllowedHandler = requestIDMiddleware(loggingMiddleware(http.HandlerFunc(methodNotAllowed)))

	return router
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeFailure(w, http.StatusNotFound, "Recurso no encontrado")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeFailure(w, http.StatusMethodNotAllowed, "Método "+r.Method+" no permitido")
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(upstream.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(upstream.RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.DebugContext(r.Context(), "request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic while handling request", "panic", rec, "path", r.URL.Path)
				writeFailure(w, http.StatusInternalServerError, "Error interno")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
