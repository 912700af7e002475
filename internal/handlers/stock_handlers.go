package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

//
// --- Stock Synchronization ---
//

// maxStockSyncAttempts bounds the retry loop when the transaction loses a
// lock race (MySQL deadlock 1213 / lock wait timeout 1205).
const maxStockSyncAttempts = 3

// isRetryableTxError reports whether the whole stock-sync batch should be
// retried from scratch.
func isRetryableTxError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}

// syncOrderStock decrements stock for every line item of one order inside a
// single transaction. Each product row is locked before its decrement, so the
// batch is all-or-nothing: a failure on any item rolls back every decrement.
// The stored value is clamped at zero rather than rejecting oversold orders.
func (h *Handlers) syncOrderStock(orderID int64) error {
	tx, err := h.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rows, err := tx.Query("SELECT product_id, quantity FROM order_items WHERE order_id = ?", orderID)
	if err != nil {
		return err
	}

	type itemQty struct {
		productID int64
		quantity  int
	}
	var items []itemQty
	for rows.Next() {
		var it itemQty
		if err := rows.Scan(&it.productID, &it.quantity); err != nil {
			rows.Close()
			return err
		}
		items = append(items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, it := range items {
		// Lock the product row for the duration of the batch.
		var stock int
		if err := tx.QueryRow("SELECT stock FROM products WHERE id = ? FOR UPDATE", it.productID).Scan(&stock); err != nil {
			if err == sql.ErrNoRows {
				continue // product was deleted since the order was placed
			}
			return err
		}

		_, err := tx.Exec(
			"UPDATE products SET stock = GREATEST(stock - ?, 0), updated_at = NOW() WHERE id = ?",
			it.quantity, it.productID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// UpdateStock is the handler for GET /v1/order/update-stock (user).
// It locates the caller's most recently created order and decrements the
// referenced products' stock by the ordered quantities. The operation is
// atomic per invocation but NOT idempotent: calling it twice for the same
// order decrements twice.
func (h *Handlers) UpdateStock(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	// 1. --- Find the Most Recent Order ---
	var orderID int64
	err := h.DB.QueryRow(
		"SELECT id FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1",
		userID,
	).Scan(&orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "No orders found for this user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order"})
		return
	}

	// 2. --- Run the Batch (bounded retry on lock races) ---
	for attempt := 1; ; attempt++ {
		err = h.syncOrderStock(orderID)
		if err == nil || !isRetryableTxError(err) || attempt >= maxStockSyncAttempts {
			break
		}
	}
	if err != nil {
		if isRetryableTxError(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "Stock update conflicted with another request, please retry"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update stock"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stock updated successfully"})
}
