package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zenkart/zenkart-golang/internal/models"
)

//
// --- Review Handlers ---
//

// AddReviewInput defines the JSON for submitting a review.
type AddReviewInput struct {
	ProductID int64  `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// AddReview is the handler for POST /v1/review/add (user).
// A second submission for the same product overwrites the first.
func (h *Handlers) AddReview(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	var input AddReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
		return
	}

	// The product must exist before it can be reviewed.
	var productID int64
	err := h.DB.QueryRow("SELECT id FROM products WHERE id = ?", input.ProductID).Scan(&productID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	_, err = h.DB.Exec(`
		INSERT INTO reviews (user_id, product_id, rating, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
		ON DUPLICATE KEY UPDATE
			rating = VALUES(rating),
			comment = VALUES(comment),
			updated_at = NOW()`,
		userID, input.ProductID, input.Rating, input.Comment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review saved successfully"})
}

// GetProductReviews is the handler for GET /v1/review/product/:productId (public)
func (h *Handlers) GetProductReviews(c *gin.Context) {
	productID := c.Param("productId")

	query := `
		SELECT r.id, r.user_id, r.product_id, r.rating, r.comment, r.created_at, r.updated_at, u.name
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.product_id = ?
		ORDER BY r.created_at DESC`

	rows, err := h.DB.Query(query, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch reviews"})
		return
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.UserID, &r.ProductID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt, &r.UserName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan review row"})
			return
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error iterating review rows"})
		return
	}

	if len(reviews) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No reviews found for this product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reviews fetched successfully", "data": reviews})
}

// GetAverageRating is the handler for GET /v1/review/average/:productId (public)
func (h *Handlers) GetAverageRating(c *gin.Context) {
	productID := c.Param("productId")

	// COALESCE so a product with no reviews reports 0 instead of NULL
	var average float64
	var count int
	err := h.DB.QueryRow(
		"SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE product_id = ?",
		productID,
	).Scan(&average, &count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to compute average rating"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Average rating fetched",
		"data":    gin.H{"averageRating": average, "reviewCount": count},
	})
}

// DeleteReview is the handler for DELETE /v1/review/delete/:productId (user).
// A user can only delete their own review.
func (h *Handlers) DeleteReview(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)
	productID := c.Param("productId")

	result, err := h.DB.Exec(
		"DELETE FROM reviews WHERE user_id = ? AND product_id = ?",
		userID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete review"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
