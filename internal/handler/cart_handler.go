package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"sabrosa/internal/repositories"
	"sabrosa/internal/service"
	"sabrosa/pkg/logger"
)

// CartHandler serves the cart and customization endpoints.
type CartHandler struct {
	cartService service.CartServiceInterface
	sessions    repositories.SessionRepositoryInterface
	logger      *logger.Logger
}

func NewCartHandler(cartService service.CartServiceInterface, sessions repositories.SessionRepositoryInterface, logger *logger.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		sessions:    sessions,
		logger:      logger.WithComponent("cart_handler"),
	}
}

// AddItemRequest is the body of POST /api/v1/cart/items.
type AddItemRequest struct {
	ProductID int      `json:"product_id"`
	AddOns    []string `json:"add_ons"`
}

// UpdateQuantityRequest is the body of PATCH /api/v1/cart/items/{id}/quantity.
type UpdateQuantityRequest struct {
	Delta int `json:"delta"`
}

// BeginCustomizationRequest is the body of POST /api/v1/customization.
// Exactly one of ProductID (new draft) or LineID (edit draft) is expected.
type BeginCustomizationRequest struct {
	ProductID int    `json:"product_id,omitempty"`
	LineID    string `json:"line_id,omitempty"`
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.newRequestContext(r)
	h.logger.LogRequest(reqCtx)

	session := resolveSession(w, r, h.sessions)
	cart := h.cartService.GetCart(session)

	h.writeJSONResponse(w, http.StatusOK, cart)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.newRequestContext(r)
	h.logger.LogRequest(reqCtx)

	var addReq AddItemRequest
	if err := h.parseRequestBody(r, &addReq); err != nil {
		h.logger.Warn("Invalid request body for add item", "error", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	session := resolveSession(w, r, h.sessions)
	line, err := h.cartService.AddToCart(session, addReq.ProductID, addReq.AddOns)
	if err != nil {
		statusCode := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") {
			statusCode = http.StatusNotFound
		}
		h.writeErrorResponse(w, statusCode, err.Error())
		reqCtx.StatusCode = statusCode
		h.logger.LogResponse(reqCtx)
		return
	}

	h.writeJSONResponse(w, http.StatusCreated, line)
	reqCtx.StatusCode = http.StatusCreated
	h.logger.LogResponse(reqCtx)
}

// UpdateQuantity handles PATCH /api/v1/cart/items/{id}/quantity
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.newRequestContext(r)
	h.logger.LogRequest(reqCtx)

	lineID := r.PathValue("id")
	if lineID == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Line ID cannot be empty")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	var updateReq UpdateQuantityRequest
	if err := h.parseRequestBody(r, &updateReq); err != nil {
		h.logger.Warn("Invalid request body for quantity update", "line_id", lineID, "error", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	session := resolveSession(w, r, h.sessions)
	line, err := h.cartService.UpdateQuantity(session, lineID, updateReq.Delta)
	if err != nil {
		h.logger.Warn("Failed to update quantity", "line_id", lineID, "error", err)
		h.writeErrorResponse(w, http.StatusNotFound, err.Error())
		reqCtx.StatusCode = http.StatusNotFound
		h.logger.LogResponse(reqCtx)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, line)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// RemoveItem handles DELETE /api/v1/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.newRequestContext(r)
	h.logger.LogRequest(reqCtx)

	lineID := r.PathValue("id")
	session := resolveSession(w, r, h.sessions)

	if err := h.cartService.RemoveLine(session, lineID); err != nil {
		h.logger.Warn("Failed to remove line", "line_id", lineID, "error", err)
		h.writeErrorResponse(w, http.StatusNotFound, err.Error())
		reqCtx.StatusCode = http.StatusNotFound
		h.logger.LogResponse(reqCtx)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]string{"line_id": lineID, "message": "Line removed"})
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// BeginCustomization handles POST /api/v1/customization
func (h *CartHandler) BeginCustomization(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.newRequestContext(r)
	h.logger.LogRequest(reqCtx)

	var beginReq BeginCustomizationRequest
	if err := h.parseRequestBody(r, &beginReq); err != nil {
		h.logger.Warn("Invalid request body for customization", "error", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	session := resolveSession(w, r, h.sessions)

	var draft interface{}
	var err error
	switch {
	case beginReq.LineID != "":
		draft, err = h.cartService.BeginEdit(session, beginReq.LineID)
	case beginReq.ProductID != 0:
		draft, err = h.cartService.BeginCustomization(session, beginReq.ProductID)
	default:
		h.writeErrorResponse(w, http.StatusBadRequest, "Either product_id or line_id is required")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	if err != nil {
		h.writeErrorResponse(w, http.StatusNotFound, err.Error())
		reqCtx.StatusCode = http.StatusNotFound
		h.logger.LogResponse(reqCtx)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, draft)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// ToggleAddOn handles POST /api/v1/customization/addons/{id}
func (h *CartHandler) ToggleAddOn(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.newRequestContext(r)
	h.logger.LogRequest(reqCtx)

	addOnID := r.PathValue("id")
	session := resolveSession(w, r, h.sessions)

	draft, err := h.cartService.ToggleAddOn(session, addOnID)
	if err != nil {
		statusCode := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") {
			statusCode = http.StatusNotFound
		}
		h.writeErrorResponse(w, statusCode, err.Error())
		reqCtx.StatusCode = statusCode
		h.logger.LogResponse(reqCtx)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, draft)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// ConfirmCustomization handles POST /api/v1/customization/confirm
func (h *CartHandler) ConfirmCustomization(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.newRequestContext(r)
	h.logger.LogRequest(reqCtx)

	session := resolveSession(w, r, h.sessions)

	line, err := h.cartService.ConfirmCustomization(session)
	if err != nil {
		statusCode := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") {
			statusCode = http.StatusNotFound
		}
		h.writeErrorResponse(w, statusCode, err.Error())
		reqCtx.StatusCode = statusCode
		h.logger.LogResponse(reqCtx)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, line)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// CancelCustomization handles DELETE /api/v1/customization
func (h *CartHandler) CancelCustomization(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.newRequestContext(r)
	h.logger.LogRequest(reqCtx)

	session := resolveSession(w, r, h.sessions)
	h.cartService.CancelCustomization(session)

	h.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Customization discarded"})
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// Private helper methods

func (h *CartHandler) newRequestContext(r *http.Request) *logger.RequestContext {
	return &logger.RequestContext{
		Method:     r.Method,
		Path:       r.URL.Path,
		RemoteAddr: r.RemoteAddr,
		StartTime:  time.Now(),
	}
}

// writeJSONResponse writes JSON response with given status code and data
func (h *CartHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
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
func (h *CartHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}

// parseRequestBody parses JSON request body into the target struct
func (h *CartHandler) parseRequestBody(r *http.Request, target interface{}) error {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}
