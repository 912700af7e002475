package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

//
// --- Order Search ---
//
// Despite the name this is an exact identifier lookup: the search string is
// treated as an order ID, combined with an exact status match.
//

// SearchOrdersInput defines the JSON input for both search endpoints.
type SearchOrdersInput struct {
	SearchResult string `json:"searchResult"`
	Status       string `json:"status"`
}

// SearchOrders is the handler for POST /v1/order/search-orders (admin)
func (h *Handlers) SearchOrders(c *gin.Context) {
	var input SearchOrdersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	// Blank input is rejected before any query runs.
	search := strings.TrimSpace(input.SearchResult)
	if search == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid search input"})
		return
	}

	// A non-numeric identifier can never match an order.
	orderID, err := strconv.ParseInt(search, 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No matching orders found"})
		return
	}

	rows, err := h.DB.Query(
		"SELECT "+orderColumns+" FROM orders WHERE id = ? AND order_status = ?",
		orderID, input.Status,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to search orders"})
		return
	}

	orders, err := collectOrders(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan order data"})
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No matching orders found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Orders fetched successfully", "data": orders})
}

// SearchSellerOrders is the handler for POST /v1/order/search-seller-orders (seller).
// Same lookup, restricted to orders that touch the seller's own products.
func (h *Handlers) SearchSellerOrders(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	sellerID := userIDRaw.(int64)

	var input SearchOrdersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	search := strings.TrimSpace(input.SearchResult)
	if search == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid search input"})
		return
	}

	orderID, err := strconv.ParseInt(search, 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No matching orders found"})
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

	args := []interface{}{orderID, input.Status}
	for _, id := range productIDs {
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT o.id, o.user_id, o.total_price, o.shipping_address,
		       o.order_status, o.payment_status, o.return_status, o.return_approval_status,
		       o.created_at, o.updated_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE o.id = ? AND o.order_status = ? AND oi.product_id IN (%s)`,
		placeholders(len(productIDs)))

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to search orders"})
		return
	}

	orders, err := collectOrders(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan order data"})
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No matching orders found"})
		return
	}

	if err := h.attachItems(orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Orders fetched successfully", "data": orders})
}
