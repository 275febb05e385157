package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"sabrosa/internal/repositories"
	"sabrosa/internal/service"
	"sabrosa/pkg/logger"
)

// OrderHandler serves the order handoff endpoint. There is no server-side
// order record: the response is the final message and the deep link the
// client opens, and that is the whole handoff.
type OrderHandler struct {
	orderService service.OrderServiceInterface
	sessions     repositories.SessionRepositoryInterface
	logger       *logger.Logger
}

func NewOrderHandler(orderService service.OrderServiceInterface, sessions repositories.SessionRepositoryInterface, logger *logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		sessions:     sessions,
		logger:       logger.WithComponent("order_handler"),
	}
}

// GetHandoff handles GET /api/v1/order/link
func (h *OrderHandler) GetHandoff(w http.ResponseWriter, r *http.Request) {
	reqCtx := &logger.RequestContext{
		Method:     r.Method,
		Path:       r.URL.Path,
		RemoteAddr: r.RemoteAddr,
		StartTime:  time.Now(),
	}
	h.logger.LogRequest(reqCtx)

	session := resolveSession(w, r, h.sessions)
	handoff := h.orderService.BuildHandoff(session)

	h.writeJSONResponse(w, http.StatusOK, handoff)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// writeJSONResponse writes JSON response with given status code and data
func (h *OrderHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.Error("Failed to encode JSON response", "error", err)
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}
