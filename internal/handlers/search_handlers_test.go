package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The handlers below carry a nil DB: these cases must be rejected before any
// query runs, or the test panics.

func TestSearchOrdersRejectsBlankInput(t *testing.T) {
	h := &Handlers{}
	r := newTestRouter(http.MethodPost, "/order/search-orders", h.SearchOrders)

	for _, search := range []string{"", "   ", "\t\n"} {
		w := postJSON(t, r, "/order/search-orders", map[string]interface{}{
			"searchResult": search,
			"status":       "processing",
		})
		assert.Equalf(t, http.StatusBadRequest, w.Code, "searchResult: %q", search)
		assert.Contains(t, w.Body.String(), "Invalid search input")
	}
}

func TestSearchOrdersRejectsNonNumericInput(t *testing.T) {
	h := &Handlers{}
	r := newTestRouter(http.MethodPost, "/order/search-orders", h.SearchOrders)

	w := postJSON(t, r, "/order/search-orders", map[string]interface{}{
		"searchResult": "not-an-id",
		"status":       "processing",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No matching orders found")
}

func TestSearchSellerOrdersRejectsBlankInput(t *testing.T) {
	h := &Handlers{}
	r := newTestRouter(http.MethodPost, "/order/search-seller-orders", h.SearchSellerOrders)

	w := postJSON(t, r, "/order/search-seller-orders", map[string]interface{}{
		"searchResult": "  ",
		"status":       "shipped",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid search input")
}

func TestSearchSellerOrdersRejectsNonNumericInput(t *testing.T) {
	h := &Handlers{}
	r := newTestRouter(http.MethodPost, "/order/search-seller-orders", h.SearchSellerOrders)

	w := postJSON(t, r, "/order/search-seller-orders", map[string]interface{}{
		"searchResult": "ORD-12",
		"status":       "shipped",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
