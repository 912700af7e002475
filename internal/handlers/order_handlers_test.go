package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenkart/zenkart-golang/internal/models"
)

// newTestRouter wires a handler behind a stub auth context. The Handlers
// struct carries a nil DB, so any path that touches the database would panic;
// these tests only exercise the validation paths that reject first.
func newTestRouter(method, path string, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	withIdentity := func(c *gin.Context) {
		c.Set("userID", int64(1))
		c.Set("userRole", "user")
		c.Next()
	}
	r.Handle(method, path, withIdentity, handler)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// newMockDB builds Handlers over a sqlmock connection. Expectations are
// matched in order, so tests double as a trace of the queries a handler runs.
func newMockDB(t *testing.T) (*Handlers, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &Handlers{DB: db}, mock
}

// orderRow builds one result row in orderColumns shape.
func orderRow(id, userID int64, status models.OrderStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "total_price", "shipping_address",
		"order_status", "payment_status", "return_status", "return_approval_status",
		"created_at", "updated_at",
	}).AddRow(id, userID, 100.0, "12 Main St", string(status), "pending", "eligible", "pending", now, now)
}

func TestCreateOrderRejectsMissingFields(t *testing.T) {
	h := &Handlers{}
	r := newTestRouter(http.MethodPost, "/order/create-orders", h.CreateOrder)

	cases := []map[string]interface{}{
		{}, // everything missing
		{"totalPrice": 100.0, "shippingAddress": "12 Main St"},                        // no products
		{"products": []map[string]interface{}{{"productId": 1, "quantity": 2}}},       // no total, no address
		{"products": []map[string]interface{}{}, "totalPrice": 50.0, "shippingAddress": "12 Main St"}, // empty products
		{"products": []map[string]interface{}{{"productId": 1, "quantity": 2}}, "totalPrice": 0, "shippingAddress": "12 Main St"},
		{"products": []map[string]interface{}{{"productId": 1, "quantity": 2}}, "totalPrice": 50.0, "shippingAddress": ""},
	}

	for _, body := range cases {
		w := postJSON(t, r, "/order/create-orders", body)
		assert.Equalf(t, http.StatusBadRequest, w.Code, "body: %v", body)
	}
}

func TestCreateOrderRejectsInvalidLineItems(t *testing.T) {
	h := &Handlers{}
	r := newTestRouter(http.MethodPost, "/order/create-orders", h.CreateOrder)

	w := postJSON(t, r, "/order/create-orders", map[string]interface{}{
		"products":        []map[string]interface{}{{"productId": 1, "quantity": 0}},
		"totalPrice":      50.0,
		"shippingAddress": "12 Main St",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/order/create-orders", map[string]interface{}{
		"products":        []map[string]interface{}{{"quantity": 3}},
		"totalPrice":      50.0,
		"shippingAddress": "12 Main St",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangeOrderStatusRejectsMissingFields(t *testing.T) {
	h := &Handlers{}
	r := newTestRouter(http.MethodPost, "/order/change-order-status", h.ChangeOrderStatus)

	w := postJSON(t, r, "/order/change-order-status", map[string]interface{}{"orderId": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Provide status")

	w = postJSON(t, r, "/order/change-order-status", map[string]interface{}{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Provide orderId")
}

func TestChangeOrderStatusRejectsUnknownStatus(t *testing.T) {
	h := &Handlers{}
	r := newTestRouter(http.MethodPost, "/order/change-order-status", h.ChangeOrderStatus)

	w := postJSON(t, r, "/order/change-order-status", map[string]interface{}{
		"orderId": 5,
		"status":  "vanished",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFilterOrdersByStatus(t *testing.T) {
	orders := []*models.Order{
		{ID: 1, OrderStatus: models.OrderProcessing},
		{ID: 2, OrderStatus: models.OrderShipped},
		{ID: 3, OrderStatus: models.OrderProcessing},
		{ID: 4, OrderStatus: models.OrderDelivered},
	}

	filtered := filterOrdersByStatus(orders, models.OrderProcessing)
	require.Len(t, filtered, 2)
	assert.Equal(t, int64(1), filtered[0].ID)
	assert.Equal(t, int64(3), filtered[1].ID)

	// Every returned order carries the requested status and nothing else.
	for _, o := range filtered {
		assert.Equal(t, models.OrderProcessing, o.OrderStatus)
	}

	assert.Empty(t, filterOrdersByStatus(orders, models.OrderCancelled))
	assert.Empty(t, filterOrdersByStatus(nil, models.OrderProcessing))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?", placeholders(2))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}

func TestChangeOrderStatusUnknownOrderID(t *testing.T) {
	h, mock := newMockDB(t)
	r := newTestRouter(http.MethodPost, "/order/change-order-status", h.ChangeOrderStatus)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT order_status FROM orders WHERE id = ?")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	w := postJSON(t, r, "/order/change-order-status", map[string]interface{}{
		"orderId": 99,
		"status":  "shipped",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Order not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChangeOrderStatusRejectsDisallowedTransition(t *testing.T) {
	h, mock := newMockDB(t)
	r := newTestRouter(http.MethodPost, "/order/change-order-status", h.ChangeOrderStatus)

	// Delivered is terminal; no UPDATE may follow.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT order_status FROM orders WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"order_status"}).AddRow("delivered"))

	w := postJSON(t, r, "/order/change-order-status", map[string]interface{}{
		"orderId": 5,
		"status":  "shipped",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "delivered -> shipped")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChangeOrderStatusAppliesAllowedTransition(t *testing.T) {
	h, mock := newMockDB(t)
	r := newTestRouter(http.MethodPost, "/order/change-order-status", h.ChangeOrderStatus)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT order_status FROM orders WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"order_status"}).AddRow("processing"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET order_status = ?, updated_at = ? WHERE id = ?")).
		WithArgs("shipped", sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnRows(orderRow(5, 1, models.OrderShipped))

	w := postJSON(t, r, "/order/change-order-status", map[string]interface{}{
		"orderId": 5,
		"status":  "shipped",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"shipped"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSellerOrdersScopedToOwnProducts(t *testing.T) {
	h, mock := newMockDB(t)
	r := newTestRouter(http.MethodGet, "/order/get-seller-orders", h.GetSellerOrders)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM products WHERE seller_id = ?")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11).AddRow(12))
	// The order query may only carry the seller's own product identifiers.
	mock.ExpectQuery(regexp.QuoteMeta("WHERE oi.product_id IN (?, ?)")).
		WithArgs(int64(11), int64(12)).
		WillReturnRows(orderRow(40, 2, models.OrderProcessing))
	mock.ExpectQuery(regexp.QuoteMeta("JOIN products p ON oi.product_id = p.id")).
		WithArgs(int64(40)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "order_id", "product_id", "quantity", "unit_price", "title", "image", "price",
		}).AddRow(1, 40, 11, 2, 19.9, "Mug", "mug.png", 21.5))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/order/get-seller-orders", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mug")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSellerOrdersWithoutProducts(t *testing.T) {
	h, mock := newMockDB(t)
	r := newTestRouter(http.MethodGet, "/order/get-seller-orders", h.GetSellerOrders)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM products WHERE seller_id = ?")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/order/get-seller-orders", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No products found for this seller")
	assert.NoError(t, mock.ExpectationsWereMet())
}
