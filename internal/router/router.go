package router

import (
	"encoding/json"
	"net/http"

	"sabrosa/internal/handler"
)

// NewRouter wires all storefront endpoints onto a ServeMux.
func NewRouter(cartHandler *handler.CartHandler, catalogHandler *handler.CatalogHandler, orderHandler *handler.OrderHandler) *http.ServeMux {
	mux := http.NewServeMux()

	// Catalog
	mux.HandleFunc("GET /api/v1/catalog", catalogHandler.GetCatalog)

	// Cart
	mux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart)
	mux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem)
	mux.HandleFunc("PATCH /api/v1/cart/items/{id}/quantity", cartHandler.UpdateQuantity)
	mux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem)

	// Customization draft
	mux.HandleFunc("GET /api/v1/customization", catalogHandler.GetCustomization)
	mux.HandleFunc("POST /api/v1/customization", cartHandler.BeginCustomization)
	mux.HandleFunc("POST /api/v1/customization/addons/{id}", cartHandler.ToggleAddOn)
	mux.HandleFunc("POST /api/v1/customization/confirm", cartHandler.ConfirmCustomization)
	mux.HandleFunc("DELETE /api/v1/customization", cartHandler.CancelCustomization)

	// Order handoff
	mux.HandleFunc("GET /api/v1/order/link", orderHandler.GetHandoff)

	// Health
	mux.HandleFunc("GET /api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	return mux
}
