package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// --- Wishlist Handlers (User-Only) ---
//

// AddToWishlistInput defines the JSON for adding a product to the wishlist.
type AddToWishlistInput struct {
	ProductID int64 `json:"productId" binding:"required"`
}

// AddToWishlist is the handler for POST /v1/wishlist/add
func (h *Handlers) AddToWishlist(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	var input AddToWishlistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
		return
	}

	// Adding the same product twice is a no-op (unique key on user/product).
	_, err := h.DB.Exec(`
		INSERT INTO wishlist_items (user_id, product_id, created_at)
		VALUES (?, ?, NOW())
		ON DUPLICATE KEY UPDATE product_id = product_id`,
		userID, input.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add to wishlist"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product added to wishlist"})
}

// WishlistItemResponse is a helper struct for the GetWishlist handler
type WishlistItemResponse struct {
	ProductID int64   `json:"productId"`
	Title     string  `json:"title"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
}

// GetWishlist is the handler for GET /v1/wishlist
func (h *Handlers) GetWishlist(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	query := `
		SELECT wi.product_id, p.title, p.image, p.price, p.stock
		FROM wishlist_items wi
		JOIN products p ON wi.product_id = p.id
		WHERE wi.user_id = ?
		ORDER BY wi.created_at DESC`

	rows, err := h.DB.Query(query, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch wishlist"})
		return
	}
	defer rows.Close()

	var items []WishlistItemResponse
	for rows.Next() {
		var item WishlistItemResponse
		if err := rows.Scan(&item.ProductID, &item.Title, &item.Image, &item.Price, &item.Stock); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan wishlist item"})
			return
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error iterating wishlist rows"})
		return
	}

	if items == nil {
		items = []WishlistItemResponse{}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Wishlist fetched successfully", "data": items})
}

// RemoveFromWishlist is the handler for DELETE /v1/wishlist/remove/:productId
func (h *Handlers) RemoveFromWishlist(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)
	productID := c.Param("productId")

	result, err := h.DB.Exec(
		"DELETE FROM wishlist_items WHERE user_id = ? AND product_id = ?",
		userID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to remove from wishlist"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found in wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product removed from wishlist"})
}
