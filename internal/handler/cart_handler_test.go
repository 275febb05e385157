package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sabrosa/internal/handler"
	"sabrosa/internal/repositories"
	"sabrosa/internal/router"
	"sabrosa/internal/service"
	"sabrosa/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient drives the storefront API through the full handler/router stack,
// carrying the session cookie between requests like a browser would.
type testClient struct {
	t      *testing.T
	mux    http.Handler
	cookie *http.Cookie
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()
	log := logger.New(logger.Config{Level: logger.LevelError, Format: "text", Output: "stderr"})
	catalogRepo := repositories.NewDefaultCatalogRepository(log)
	sessionRepo := repositories.NewSessionRepository(log)

	cartHandler := handler.NewCartHandler(service.NewCartService(catalogRepo, log), sessionRepo, log)
	catalogHandler := handler.NewCatalogHandler(service.NewCatalogService(catalogRepo, log), sessionRepo, log)
	orderHandler := handler.NewOrderHandler(service.NewOrderService(catalogRepo, log), sessionRepo, log)

	// The exact mux the server runs, so route patterns are covered too.
	mux := router.NewRouter(cartHandler, catalogHandler, orderHandler)

	return &testClient{t: t, mux: mux}
}

func (c *testClient) do(method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	c.t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(c.t, err)
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	rec := httptest.NewRecorder()
	c.mux.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == handler.SessionCookieName {
			c.cookie = cookie
		}
	}

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestCartAPI(t *testing.T) {
	t.Run("AddItemCreatesLineAndSetsSessionCookie", func(t *testing.T) {
		client := newTestClient(t)

		rec, line := client.do("POST", "/api/v1/cart/items", map[string]interface{}{
			"product_id": 1,
			"add_ons":    []string{"walnuts"},
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, client.cookie)
		assert.Equal(t, "35", line["total_price"])
		assert.Equal(t, float64(1), line["quantity"])
	})

	t.Run("SameConfigurationMergesAcrossRequests", func(t *testing.T) {
		client := newTestClient(t)

		body := map[string]interface{}{"product_id": 1, "add_ons": []string{"walnuts", "olives"}}
		_, first := client.do("POST", "/api/v1/cart/items", body)

		reordered := map[string]interface{}{"product_id": 1, "add_ons": []string{"olives", "walnuts"}}
		_, second := client.do("POST", "/api/v1/cart/items", reordered)

		assert.Equal(t, first["line_id"], second["line_id"])

		_, cart := client.do("GET", "/api/v1/cart", nil)
		lines := cart["lines"].([]interface{})
		assert.Len(t, lines, 1)
		assert.Equal(t, float64(2), cart["total_items"])
		assert.Equal(t, "70", cart["total_price"])
	})

	t.Run("UnknownProductIsNotFound", func(t *testing.T) {
		client := newTestClient(t)

		rec, _ := client.do("POST", "/api/v1/cart/items", map[string]interface{}{"product_id": 99})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("MalformedBodyIsBadRequest", func(t *testing.T) {
		client := newTestClient(t)

		req := httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewBufferString(`{"product_id": "one"}`))
		rec := httptest.NewRecorder()
		client.mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("QuantityPatchClampsAtOne", func(t *testing.T) {
		client := newTestClient(t)

		_, line := client.do("POST", "/api/v1/cart/items", map[string]interface{}{"product_id": 2})
		lineID := line["line_id"].(string)

		rec, updated := client.do("PATCH", "/api/v1/cart/items/"+lineID+"/quantity", map[string]interface{}{"delta": -3})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(1), updated["quantity"])
		assert.Equal(t, "30", updated["total_price"])
	})

	t.Run("RemoveThenFetchYieldsEmptyCart", func(t *testing.T) {
		client := newTestClient(t)

		_, line := client.do("POST", "/api/v1/cart/items", map[string]interface{}{"product_id": 3})
		lineID := line["line_id"].(string)

		rec, _ := client.do("DELETE", "/api/v1/cart/items/"+lineID, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec, _ = client.do("DELETE", "/api/v1/cart/items/"+lineID, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		_, cart := client.do("GET", "/api/v1/cart", nil)
		assert.Equal(t, float64(0), cart["total_items"])
		assert.Equal(t, "0", cart["total_price"])
	})

	t.Run("CustomizationFlowAddsConfiguredLine", func(t *testing.T) {
		client := newTestClient(t)

		rec, draft := client.do("POST", "/api/v1/customization", map[string]interface{}{"product_id": 3})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "new", draft["mode"])

		rec, draft = client.do("POST", "/api/v1/customization/addons/walnuts", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		addOns := draft["add_ons"].([]interface{})
		assert.Equal(t, []interface{}{"walnuts"}, addOns)

		rec, view := client.do("GET", "/api/v1/customization", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, view["has_draft"])
		assert.Equal(t, "43", view["draft_total"])

		rec, line := client.do("POST", "/api/v1/customization/confirm", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "43", line["total_price"])

		// Confirming again without a draft fails.
		rec, _ = client.do("POST", "/api/v1/customization/confirm", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("CancelDiscardsDraft", func(t *testing.T) {
		client := newTestClient(t)

		client.do("POST", "/api/v1/customization", map[string]interface{}{"product_id": 1})
		rec, _ := client.do("DELETE", "/api/v1/customization", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		_, cart := client.do("GET", "/api/v1/cart", nil)
		assert.Equal(t, float64(0), cart["total_items"])
		assert.Nil(t, cart["draft"])
	})

	t.Run("EditFlowPreservesQuantity", func(t *testing.T) {
		client := newTestClient(t)

		_, line := client.do("POST", "/api/v1/cart/items", map[string]interface{}{"product_id": 1})
		lineID := line["line_id"].(string)
		client.do("PATCH", "/api/v1/cart/items/"+lineID+"/quantity", map[string]interface{}{"delta": 2})

		rec, draft := client.do("POST", "/api/v1/customization", map[string]interface{}{"line_id": lineID})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "edit", draft["mode"])

		client.do("POST", "/api/v1/customization/addons/seeds", nil)
		rec, updated := client.do("POST", "/api/v1/customization/confirm", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, lineID, updated["line_id"])
		assert.Equal(t, float64(3), updated["quantity"])
		assert.Equal(t, "105", updated["total_price"])
	})

	t.Run("OrderLinkReflectsCart", func(t *testing.T) {
		client := newTestClient(t)

		client.do("POST", "/api/v1/cart/items", map[string]interface{}{"product_id": 1})
		rec, handoff := client.do("GET", "/api/v1/order/link", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, handoff["link"], "https://wa.me/")
		assert.Contains(t, handoff["message"], "מחמצת כוסמין קלאסית")
	})

	t.Run("SessionsDoNotShareCarts", func(t *testing.T) {
		clientA := newTestClient(t)
		clientA.do("POST", "/api/v1/cart/items", map[string]interface{}{"product_id": 1})

		// A second visitor against the same stack sees an empty cart.
		other := &testClient{t: t, mux: clientA.mux}
		_, cart := other.do("GET", "/api/v1/cart", nil)
		assert.Equal(t, float64(0), cart["total_items"])
	})

	t.Run("HealthEndpointIsRouted", func(t *testing.T) {
		client := newTestClient(t)

		rec, body := client.do("GET", "/api/v1/health", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("CatalogIsServedWithoutSession", func(t *testing.T) {
		client := newTestClient(t)

		rec, catalog := client.do("GET", "/api/v1/catalog", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, catalog["products"].([]interface{}), 3)
		assert.Len(t, catalog["add_ons"].([]interface{}), 4)
		assert.Equal(t, "5", catalog["add_on_fee"])
	})
}
