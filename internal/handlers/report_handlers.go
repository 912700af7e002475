package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/zenkart/zenkart-golang/internal/models"
)

//
// --- Category Revenue Reports ---
//

// categoryLine is one ordered line item with its product's category and the
// unit price snapshotted at order time.
type categoryLine struct {
	Category  string
	UnitPrice float64
	Quantity  int
}

// totalPriceByCategory folds line items into per-category revenue totals.
// Categories with no matching lines are simply absent. The result is sorted
// by category name for stable responses.
func totalPriceByCategory(lines []categoryLine) []models.CategoryTotal {
	byCategory := make(map[string]float64)
	for _, line := range lines {
		byCategory[line.Category] += line.UnitPrice * float64(line.Quantity)
	}

	totals := make([]models.CategoryTotal, 0, len(byCategory))
	for category, total := range byCategory {
		totals = append(totals, models.CategoryTotal{Category: category, TotalPrice: total})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Category < totals[j].Category })
	return totals
}

// fetchCategoryLines runs a line-item query and scans (category, unit_price,
// quantity) rows.
func (h *Handlers) fetchCategoryLines(query string, args ...interface{}) ([]categoryLine, error) {
	rows, err := h.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []categoryLine
	for rows.Next() {
		var line categoryLine
		if err := rows.Scan(&line.Category, &line.UnitPrice, &line.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// GetOrderTotalPriceByCategory is the handler for
// GET /v1/order/orders-total-price-by-category (admin)
func (h *Handlers) GetOrderTotalPriceByCategory(c *gin.Context) {
	// No products means nothing can have been ordered.
	var productCount int
	if err := h.DB.QueryRow("SELECT COUNT(*) FROM products").Scan(&productCount); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database query failed"})
		return
	}
	if productCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No products found"})
		return
	}

	lines, err := h.fetchCategoryLines(`
		SELECT p.category, oi.unit_price, oi.quantity
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order items"})
		return
	}
	if len(lines) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No orders found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Total price by category fetched successfully",
		"data":    totalPriceByCategory(lines),
	})
}

// GetSellerOrderTotalPriceByCategory is the handler for
// GET /v1/order/seller-orders-total-price-by-category (seller)
func (h *Handlers) GetSellerOrderTotalPriceByCategory(c *gin.Context) {
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

	lines, err := h.fetchCategoryLines(`
		SELECT p.category, oi.unit_price, oi.quantity
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE p.seller_id = ?`, sellerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order items"})
		return
	}
	if len(lines) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No orders found for this seller"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Seller orders by category total price fetched successfully",
		"data":    totalPriceByCategory(lines),
	})
}
