package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zenkart/zenkart-golang/internal/models"
)

//
// --- Order Handlers ---
//

const orderColumns = `id, user_id, total_price, shipping_address,
	order_status, payment_status, return_status, return_approval_status,
	created_at, updated_at`

// scanOrder scans one row produced with orderColumns.
func scanOrder(scan func(dest ...interface{}) error) (*models.Order, error) {
	var o models.Order
	err := scan(
		&o.ID, &o.UserID, &o.TotalPrice, &o.ShippingAddress,
		&o.OrderStatus, &o.PaymentStatus, &o.ReturnStatus, &o.ReturnApprovalStatus,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// collectOrders drains an order result set.
func collectOrders(rows *sql.Rows) ([]*models.Order, error) {
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// placeholders builds a "?, ?, ?" list for IN clauses.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// attachItems populates each order's line items, joined with the referenced
// product's title/image/current price.
func (h *Handlers) attachItems(orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Order, len(orders))
	args := make([]interface{}, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		args = append(args, o.ID)
	}

	query := fmt.Sprintf(`
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price,
		       p.title, p.image, p.price
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id IN (%s)
		ORDER BY oi.id`, placeholders(len(orders)))

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice,
			&item.ProductTitle, &item.ProductImage, &item.ProductPrice,
		); err != nil {
			return err
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

// sellerProductIDs resolves the product identifiers owned by a seller.
func (h *Handlers) sellerProductIDs(q Querier, sellerID int64) ([]int64, error) {
	rows, err := q.Query("SELECT id FROM products WHERE seller_id = ?", sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// filterOrdersByStatus filters an already-fetched order list in memory.
func filterOrdersByStatus(orders []*models.Order, status models.OrderStatus) []*models.Order {
	filtered := make([]*models.Order, 0, len(orders))
	for _, o := range orders {
		if o.OrderStatus == status {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

//
// --- Order Creation ---
//

// OrderItemInput is one line item of an incoming order.
type OrderItemInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderInput defines the JSON input for creating an order.
// Status-like fields sent by the caller are simply not bound; the four status
// dimensions always start at their defaults.
type CreateOrderInput struct {
	Products        []OrderItemInput `json:"products"`
	TotalPrice      float64          `json:"totalPrice"`
	ShippingAddress string           `json:"shippingAddress"`
}

// CreateOrder is the handler for POST /v1/order/create-orders (user).
// Each line item's unit price is snapshotted from the catalog inside the
// creation transaction, so later catalog price changes never re-price history.
func (h *Handlers) CreateOrder(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	// All three fields are required and must be non-empty/non-zero.
	if len(input.Products) == 0 || input.TotalPrice == 0 || input.ShippingAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Please provide all required fields (products, totalPrice, shippingAddress)",
		})
		return
	}
	for _, item := range input.Products {
		if item.ProductID == 0 || item.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Each product needs a productId and a positive quantity"})
			return
		}
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	// Snapshot the current catalog price for every referenced product.
	prices := make(map[int64]float64, len(input.Products))
	for _, item := range input.Products {
		if _, ok := prices[item.ProductID]; ok {
			continue
		}
		var price float64
		err := tx.QueryRow("SELECT price FROM products WHERE id = ?", item.ProductID).Scan(&price)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Product %d not found", item.ProductID)})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching product"})
			return
		}
		prices[item.ProductID] = price
	}

	now := time.Now()
	order := &models.Order{
		UserID:               userID,
		TotalPrice:           input.TotalPrice,
		ShippingAddress:      input.ShippingAddress,
		OrderStatus:          models.OrderProcessing,
		PaymentStatus:        models.PaymentPending,
		ReturnStatus:         models.ReturnEligible,
		ReturnApprovalStatus: models.ApprovalPending,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	orderQuery := `
		INSERT INTO orders
		(user_id, total_price, shipping_address, order_status, payment_status,
		 return_status, return_approval_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.Exec(orderQuery,
		order.UserID, order.TotalPrice, order.ShippingAddress,
		order.OrderStatus, order.PaymentStatus, order.ReturnStatus, order.ReturnApprovalStatus,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order"})
		return
	}
	order.ID, err = result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get new order ID"})
		return
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES (?, ?, ?, ?)`

	for _, item := range input.Products {
		unitPrice := prices[item.ProductID]
		if _, err := tx.Exec(itemQuery, order.ID, item.ProductID, item.Quantity, unitPrice); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save order item"})
			return
		}
		order.Items = append(order.Items, models.OrderItem{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
		})
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to commit order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully!", "data": order})
}

//
// --- Status Transitions ---
//

// ChangeStatusInput defines the JSON input for all status-change endpoints.
type ChangeStatusInput struct {
	OrderID int64  `json:"orderId"`
	Status  string `json:"status"`
}

// ChangeOrderStatus is the handler for POST /v1/order/change-order-status (seller).
// The target status must be a known enum value and the move must be present in
// the transition table; anything else is rejected instead of overwritten.
func (h *Handlers) ChangeOrderStatus(c *gin.Context) {
	var input ChangeStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if input.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide status"})
		return
	}
	if input.OrderID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide orderId"})
		return
	}

	target, err := models.ParseOrderStatus(input.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var current models.OrderStatus
	err = h.DB.QueryRow("SELECT order_status FROM orders WHERE id = ?", input.OrderID).Scan(&current)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching order"})
		return
	}

	if !current.CanTransition(target) {
		c.JSON(http.StatusConflict, gin.H{
			"message": fmt.Sprintf("%v: %s -> %s", models.ErrInvalidTransition, current, target),
		})
		return
	}

	_, err = h.DB.Exec(
		"UPDATE orders SET order_status = ?, updated_at = ? WHERE id = ?",
		target, time.Now(), input.OrderID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order status"})
		return
	}

	row := h.DB.QueryRow("SELECT "+orderColumns+" FROM orders WHERE id = ?", input.OrderID)
	order, err := scanOrder(row.Scan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch updated order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "data": order})
}

// ChangePaymentStatus is the handler for POST /v1/order/change-payment-status (seller)
func (h *Handlers) ChangePaymentStatus(c *gin.Context) {
	var input ChangeStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if input.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide status"})
		return
	}
	if input.OrderID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide orderId"})
		return
	}

	target, err := models.ParsePaymentStatus(input.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var current models.PaymentStatus
	err = h.DB.QueryRow("SELECT payment_status FROM orders WHERE id = ?", input.OrderID).Scan(&current)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching order"})
		return
	}

	if !current.CanTransition(target) {
		c.JSON(http.StatusConflict, gin.H{
			"message": fmt.Sprintf("%v: %s -> %s", models.ErrInvalidTransition, current, target),
		})
		return
	}

	_, err = h.DB.Exec(
		"UPDATE orders SET payment_status = ?, updated_at = ? WHERE id = ?",
		target, time.Now(), input.OrderID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update payment status"})
		return
	}

	row := h.DB.QueryRow("SELECT "+orderColumns+" FROM orders WHERE id = ?", input.OrderID)
	order, err := scanOrder(row.Scan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch updated order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment status updated", "data": order})
}

// RequestReturnInput defines the JSON input for requesting a return.
type RequestReturnInput struct {
	OrderID int64 `json:"orderId"`
}

// RequestReturn is the handler for POST /v1/order/request-return (user).
// Marks the caller's own order as returned; approval stays pending until an
// admin rules on it.
func (h *Handlers) RequestReturn(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	var input RequestReturnInput
	if err := c.ShouldBindJSON(&input); err != nil || input.OrderID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide orderId"})
		return
	}

	var current models.ReturnStatus
	err := h.DB.QueryRow(
		"SELECT return_status FROM orders WHERE id = ? AND user_id = ?",
		input.OrderID, userID,
	).Scan(&current)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching order"})
		return
	}

	if !current.CanTransition(models.Returned) {
		c.JSON(http.StatusConflict, gin.H{
			"message": fmt.Sprintf("%v: %s -> %s", models.ErrInvalidTransition, current, models.Returned),
		})
		return
	}

	_, err = h.DB.Exec(
		"UPDATE orders SET return_status = ?, return_approval_status = ?, updated_at = ? WHERE id = ?",
		models.Returned, models.ApprovalPending, time.Now(), input.OrderID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update return status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Return requested"})
}

// ChangeReturnApproval is the handler for POST /v1/order/change-return-approval (admin)
func (h *Handlers) ChangeReturnApproval(c *gin.Context) {
	var input ChangeStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if input.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide status"})
		return
	}
	if input.OrderID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide orderId"})
		return
	}

	target, err := models.ParseReturnApprovalStatus(input.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var current models.ReturnApprovalStatus
	err = h.DB.QueryRow("SELECT return_approval_status FROM orders WHERE id = ?", input.OrderID).Scan(&current)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching order"})
		return
	}

	if !current.CanTransition(target) {
		c.JSON(http.StatusConflict, gin.H{
			"message": fmt.Sprintf("%v: %s -> %s", models.ErrInvalidTransition, current, target),
		})
		return
	}

	_, err = h.DB.Exec(
		"UPDATE orders SET return_approval_status = ?, updated_at = ? WHERE id = ?",
		target, time.Now(), input.OrderID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update return approval"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Return approval updated"})
}

//
// --- Order Retrieval ---
//

// GetOrders is the handler for GET /v1/order/get-orders (admin)
func (h *Handlers) GetOrders(c *gin.Context) {
	rows, err := h.DB.Query("SELECT " + orderColumns + " FROM orders ORDER BY created_at DESC")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}

	orders, err := collectOrders(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan order data"})
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No orders found!"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Orders fetched successfully!", "data": orders})
}

// StatusFilterInput defines the JSON input for status-filtered listings.
type StatusFilterInput struct {
	Status string `json:"status"`
}

// GetOrdersByStatus is the handler for POST /v1/order/get-orders-by-status (seller).
// The status here is a filter, not a transition, so any string is accepted; an
// unknown value just matches nothing.
func (h *Handlers) GetOrdersByStatus(c *gin.Context) {
	var input StatusFilterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	rows, err := h.DB.Query(
		"SELECT "+orderColumns+" FROM orders WHERE order_status = ? ORDER BY created_at DESC",
		input.Status,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}

	orders, err := collectOrders(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan order data"})
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No orders found!"})
		return
	}

	if err := h.attachItems(orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Orders by status fetched successfully!", "data": orders})
}

// sellerOrders fetches every order containing at least one of the given
// product identifiers.
func (h *Handlers) sellerOrders(productIDs []int64) ([]*models.Order, error) {
	args := make([]interface{}, len(productIDs))
	for i, id := range productIDs {
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT o.id, o.user_id, o.total_price, o.shipping_address,
		       o.order_status, o.payment_status, o.return_status, o.return_approval_status,
		       o.created_at, o.updated_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE oi.product_id IN (%s)
		ORDER BY o.created_at DESC`, placeholders(len(productIDs)))

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

// GetSellerOrders is the handler for GET /v1/order/get-seller-orders (seller)
func (h *Handlers) GetSellerOrders(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	sellerID := userIDRaw.(int64)

	productIDs, err := h.sellerProductIDs(h.DB, sellerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch seller products"})
		return
	}
	if len(productIDs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No products found for this seller"})
		return
	}

	orders, err := h.sellerOrders(productIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No orders found for this seller"})
		return
	}

	if err := h.attachItems(orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Orders fetched successfully", "data": orders})
}

// GetSellerOrdersByStatus is the handler for POST /v1/order/get-seller-orders-by-status (seller).
// The status filter is applied in memory after the fetch; only the unfiltered
// set being empty is a not-found condition.
func (h *Handlers) GetSellerOrdersByStatus(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	sellerID := userIDRaw.(int64)

	var input StatusFilterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	productIDs, err := h.sellerProductIDs(h.DB, sellerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch seller products"})
		return
	}
	if len(productIDs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No products found for this seller"})
		return
	}

	orders, err := h.sellerOrders(productIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No orders found for this seller"})
		return
	}

	if err := h.attachItems(orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order items"})
		return
	}

	if input.Status != "" {
		orders = filterOrdersByStatus(orders, models.OrderStatus(input.Status))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Orders fetched successfully", "data": orders})
}

// GetOrderDetails is the handler for GET /v1/order/get-order-details/:orderId (seller)
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	orderID := c.Param("orderId")

	row := h.DB.QueryRow("SELECT "+orderColumns+" FROM orders WHERE id = ?", orderID)
	order, err := scanOrder(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "No order details found!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order"})
		return
	}

	if err := h.attachItems([]*models.Order{order}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order details fetched successfully!", "data": order})
}

// GetUserOrders is the handler for GET /v1/order/get-user-orders (user)
func (h *Handlers) GetUserOrders(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	rows, err := h.DB.Query(
		"SELECT "+orderColumns+" FROM orders WHERE user_id = ? ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}

	orders, err := collectOrders(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan order data"})
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No order found"})
		return
	}

	if err := h.attachItems(orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User order fetched successfully", "data": orders})
}
