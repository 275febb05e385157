package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"sabrosa/internal/repositories"
	"sabrosa/internal/service"
	"sabrosa/pkg/logger"
)

// CatalogHandler serves the fixed product and add-on catalog.
type CatalogHandler struct {
	catalogService service.CatalogServiceInterface
	sessions       repositories.SessionRepositoryInterface
	logger         *logger.Logger
}

func NewCatalogHandler(catalogService service.CatalogServiceInterface, sessions repositories.SessionRepositoryInterface, logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		sessions:       sessions,
		logger:         logger.WithComponent("catalog_handler"),
	}
}

// GetCatalog handles GET /api/v1/catalog
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	reqCtx := &logger.RequestContext{
		Method:     r.Method,
		Path:       r.URL.Path,
		RemoteAddr: r.RemoteAddr,
		StartTime:  time.Now(),
	}
	h.logger.LogRequest(reqCtx)

	catalog, err := h.catalogService.GetCatalog()
	if err != nil {
		h.logger.Error("Failed to get catalog", "error", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch catalog")
		reqCtx.StatusCode = http.StatusInternalServerError
		h.logger.LogResponse(reqCtx)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, catalog)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// GetCustomization handles GET /api/v1/customization — the catalog annotated
// with the visitor's draft state and the per-add-on display shares.
func (h *CatalogHandler) GetCustomization(w http.ResponseWriter, r *http.Request) {
	reqCtx := &logger.RequestContext{
		Method:     r.Method,
		Path:       r.URL.Path,
		RemoteAddr: r.RemoteAddr,
		StartTime:  time.Now(),
	}
	h.logger.LogRequest(reqCtx)

	session := resolveSession(w, r, h.sessions)

	view, err := h.catalogService.GetCustomizationView(session)
	if err != nil {
		h.logger.Error("Failed to build customization view", "error", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch customization view")
		reqCtx.StatusCode = http.StatusInternalServerError
		h.logger.LogResponse(reqCtx)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, view)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// writeJSONResponse writes JSON response with given status code and data
func (h *CatalogHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.Error("Failed to encode JSON response", "error", err)
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// writeErrorResponse writes an error response with given status code and message
func (h *CatalogHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}
