package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

//
// --- Cart Handlers (User-Only) ---
//

// getOrCreateCartID finds a user's active cart or creates one.
// This is a helper function to be used within a transaction.
func (h *Handlers) getOrCreateCartID(tx *sql.Tx, userID int64) (int64, error) {
	var cartID int64

	// 1. Try to find an existing cart
	err := tx.QueryRow("SELECT id FROM carts WHERE user_id = ?", userID).Scan(&cartID)
	if err == nil {
		return cartID, nil
	}

	// 2. If no cart exists, create one
	if err == sql.ErrNoRows {
		now := time.Now()
		result, err := tx.Exec("INSERT INTO carts (user_id, created_at, updated_at) VALUES (?, ?, ?)", userID, now, now)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	}

	// 3. A real database error occurred
	return 0, err
}

// AddToCartInput defines the JSON for adding an item to the cart.
type AddToCartInput struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// AddToCart is the handler for POST /v1/cart/add
func (h *Handlers) AddToCart(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	cartID, err := h.getOrCreateCartID(tx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cart initialization failed"})
		return
	}

	// The product must exist and have stock to cover the requested quantity.
	var stock int
	err = tx.QueryRow("SELECT stock FROM products WHERE id = ?", input.ProductID).Scan(&stock)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if stock < input.Quantity {
		c.JSON(http.StatusConflict, gin.H{"message": "Insufficient stock"})
		return
	}

	// Insert or Update logic (Upsert)
	_, err = tx.Exec(`
		INSERT INTO cart_items (cart_id, product_id, quantity, updated_at)
		VALUES (?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			quantity = quantity + VALUES(quantity),
			updated_at = NOW()`,
		cartID, input.ProductID, input.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Commit failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart"})
}

// CartItemResponse is a helper struct for the GetCart handler
type CartItemResponse struct {
	ProductID int64   `json:"productId"`
	Title     string  `json:"title"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// GetCart is the handler for GET /v1/cart
func (h *Handlers) GetCart(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	query := `
		SELECT ci.product_id, p.title, p.image, p.price, ci.quantity
		FROM cart_items ci
		JOIN carts ca ON ci.cart_id = ca.id
		JOIN products p ON ci.product_id = p.id
		WHERE ca.user_id = ?
		ORDER BY ci.updated_at DESC`

	rows, err := h.DB.Query(query, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch cart"})
		return
	}
	defer rows.Close()

	var items []CartItemResponse
	var total float64
	for rows.Next() {
		var item CartItemResponse
		if err := rows.Scan(&item.ProductID, &item.Title, &item.Image, &item.Price, &item.Quantity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan cart item"})
			return
		}
		item.Subtotal = item.Price * float64(item.Quantity)
		total += item.Subtotal
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error iterating cart rows"})
		return
	}

	if items == nil {
		items = []CartItemResponse{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart fetched successfully",
		"data":    gin.H{"items": items, "totalPrice": total},
	})
}

// UpdateCartItemInput defines the JSON for setting an item quantity.
type UpdateCartItemInput struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// UpdateCartItem is the handler for PUT /v1/cart/update
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	var input UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
		return
	}

	result, err := h.DB.Exec(`
		UPDATE cart_items ci
		JOIN carts ca ON ci.cart_id = ca.id
		SET ci.quantity = ?, ci.updated_at = NOW()
		WHERE ca.user_id = ? AND ci.product_id = ?`,
		input.Quantity, userID, input.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart item"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found in cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart item updated"})
}

// RemoveFromCart is the handler for DELETE /v1/cart/remove/:productId
func (h *Handlers) RemoveFromCart(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)
	productID := c.Param("productId")

	result, err := h.DB.Exec(`
		DELETE ci FROM cart_items ci
		JOIN carts ca ON ci.cart_id = ca.id
		WHERE ca.user_id = ? AND ci.product_id = ?`,
		userID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to remove cart item"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found in cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

// ClearCart is the handler for DELETE /v1/cart/clear
func (h *Handlers) ClearCart(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	_, err := h.DB.Exec(`
		DELETE ci FROM cart_items ci
		JOIN carts ca ON ci.cart_id = ca.id
		WHERE ca.user_id = ?`,
		userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
