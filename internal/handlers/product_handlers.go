package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/zenkart/zenkart-golang/internal/models"
)

//
// --- Product Handlers ---
//

const productColumns = `id, seller_id, title, slug, description, price, stock, category, image, created_at, updated_at`

// scanProduct scans one row produced with productColumns.
func scanProduct(scan func(dest ...interface{}) error) (*models.Product, error) {
	var p models.Product
	err := scan(
		&p.ID, &p.SellerID, &p.Title, &p.Slug, &p.Description,
		&p.Price, &p.Stock, &p.Category, &p.Image, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// collectProducts drains a product result set.
func collectProducts(rows *sql.Rows) ([]*models.Product, error) {
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// CreateProduct is the handler for POST /v1/product/create (seller).
// Multipart form: title, description, price, stock, category + image file.
func (h *Handlers) CreateProduct(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	sellerID := userIDRaw.(int64)

	title := c.PostForm("title")
	description := c.PostForm("description")
	category := c.PostForm("category")
	priceStr := c.PostForm("price")
	stockStr := c.PostForm("stock")

	if title == "" || category == "" || priceStr == "" || stockStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title, price, stock, and category are required"})
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "price must be a positive number"})
		return
	}

	stock, err := strconv.Atoi(stockStr)
	if err != nil || stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "stock must be a non-negative integer"})
		return
	}

	// Product image is required, same as the profile picture at signup.
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product image required!"})
		return
	}
	imageURL, err := saveUploadedImage(c, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save product image"})
		return
	}

	now := time.Now()
	product := &models.Product{
		SellerID:    sellerID,
		Title:       title,
		Slug:        slug.Make(title),
		Description: description,
		Price:       price,
		Stock:       stock,
		Category:    category,
		Image:       imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query := `
		INSERT INTO products
		(seller_id, title, slug, description, price, stock, category, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := h.DB.Exec(query,
		product.SellerID, product.Title, product.Slug, product.Description,
		product.Price, product.Stock, product.Category, product.Image,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create product"})
		return
	}

	product.ID, err = result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get new product ID"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "data": product})
}

// GetProducts is the handler for GET /v1/product/all (public)
func (h *Handlers) GetProducts(c *gin.Context) {
	rows, err := h.DB.Query("SELECT " + productColumns + " FROM products ORDER BY created_at DESC")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database query failed"})
		return
	}

	products, err := collectProducts(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan product row"})
		return
	}
	if len(products) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No products found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Products fetched successfully", "data": products})
}

// GetProduct is the handler for GET /v1/product/details/:productId (public)
func (h *Handlers) GetProduct(c *gin.Context) {
	productID := c.Param("productId")

	row := h.DB.QueryRow("SELECT "+productColumns+" FROM products WHERE id = ?", productID)
	product, err := scanProduct(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product details fetched", "data": product})
}

// GetMyProducts is the handler for GET /v1/product/seller-products (seller)
func (h *Handlers) GetMyProducts(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	sellerID := userIDRaw.(int64)

	rows, err := h.DB.Query(
		"SELECT "+productColumns+" FROM products WHERE seller_id = ? ORDER BY created_at DESC",
		sellerID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database query failed"})
		return
	}

	products, err := collectProducts(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan product row"})
		return
	}
	if len(products) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No products found for this seller"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Seller products fetched successfully", "data": products})
}

// UpdateProductInput defines the JSON input for updating a product.
type UpdateProductInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	Category    string  `json:"category" binding:"required"`
}

// UpdateProduct is the handler for PUT /v1/product/update/:productId (seller).
// Only the owning seller may update; the WHERE clause enforces ownership.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	sellerID := userIDRaw.(int64)
	productID := c.Param("productId")

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	query := `
		UPDATE products
		SET title = ?, slug = ?, description = ?, price = ?, stock = ?, category = ?, updated_at = ?
		WHERE id = ? AND seller_id = ?`

	result, err := h.DB.Exec(query,
		input.Title, slug.Make(input.Title), input.Description,
		input.Price, input.Stock, input.Category, time.Now(),
		productID, sellerID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found or not owned by this seller"})
		return
	}

	row := h.DB.QueryRow("SELECT "+productColumns+" FROM products WHERE id = ?", productID)
	product, err := scanProduct(row.Scan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch updated product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "data": product})
}

// DeleteProduct is the handler for DELETE /v1/product/delete/:productId (seller)
func (h *Handlers) DeleteProduct(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	sellerID := userIDRaw.(int64)
	productID := c.Param("productId")

	result, err := h.DB.Exec("DELETE FROM products WHERE id = ? AND seller_id = ?", productID, sellerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product"})
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found or not owned by this seller"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// SearchProducts is the handler for GET /v1/product/search (public).
// Supports q (title/description LIKE) and category filters.
func (h *Handlers) SearchProducts(c *gin.Context) {
	q := c.Query("q")
	category := c.Query("category")

	var queryBuilder strings.Builder
	var args []interface{}

	queryBuilder.WriteString("SELECT " + productColumns + " FROM products WHERE 1=1")

	if q != "" {
		queryBuilder.WriteString(" AND (title LIKE ? OR description LIKE ?)")
		searchTerm := "%" + q + "%"
		args = append(args, searchTerm, searchTerm)
	}
	if category != "" {
		queryBuilder.WriteString(" AND category = ?")
		args = append(args, category)
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC")

	rows, err := h.DB.Query(queryBuilder.String(), args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database query failed"})
		return
	}

	products, err := collectProducts(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan product row"})
		return
	}
	if products == nil {
		products = []*models.Product{}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Products fetched successfully", "data": products})
}
