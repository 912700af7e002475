package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zenkart/zenkart-golang/internal/models"
)

//
// --- Admin: User Management Handlers ---
//

// AdminLogin is the handler for POST /v1/admin/login
func (h *Handlers) AdminLogin(c *gin.Context) {
	h.loginAs(c, "admin")
}

// listUsers runs a user query and scans the rows. The password hash is never
// selected here.
func (h *Handlers) listUsers(c *gin.Context, query string, args ...interface{}) ([]models.User, bool) {
	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database query failed"})
		return nil, false
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Role, &u.Name, &u.Email, &u.Mobile,
			&u.ProfilePicture, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan user row"})
			return nil, false
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error iterating user rows"})
		return nil, false
	}

	return users, true
}

const adminUserColumns = `id, role, name, email, mobile, profile_picture, is_active, created_at, updated_at`

// GetUsers is the handler for GET /v1/admin/users
func (h *Handlers) GetUsers(c *gin.Context) {
	users, ok := h.listUsers(c, "SELECT "+adminUserColumns+" FROM users ORDER BY created_at DESC")
	if !ok {
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No users found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All users fetched successfully", "data": users})
}

// GetActiveUsers is the handler for GET /v1/admin/active-users
func (h *Handlers) GetActiveUsers(c *gin.Context) {
	users, ok := h.listUsers(c, "SELECT "+adminUserColumns+" FROM users WHERE is_active = ? ORDER BY created_at DESC", true)
	if !ok {
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No active users found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Active Users fetched", "data": users})
}

// GetInactiveUsers is the handler for GET /v1/admin/inactive-users
func (h *Handlers) GetInactiveUsers(c *gin.Context) {
	users, ok := h.listUsers(c, "SELECT "+adminUserColumns+" FROM users WHERE is_active = ? ORDER BY created_at DESC", false)
	if !ok {
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No inactive user found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inactive users fetched", "data": users})
}

// UserIDInput defines the JSON input for activate/deactivate/delete calls.
type UserIDInput struct {
	UserID int64 `json:"userId" binding:"required"`
}

// setUserActive flips the is_active flag for one user.
func (h *Handlers) setUserActive(c *gin.Context, active bool, successMessage string) {
	var input UserIDInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide userId"})
		return
	}

	result, err := h.DB.Exec(
		"UPDATE users SET is_active = ?, updated_at = ? WHERE id = ?",
		active, time.Now(), input.UserID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user"})
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No such user found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": successMessage})
}

// ActivateUser is the handler for PUT /v1/admin/activate-user
func (h *Handlers) ActivateUser(c *gin.Context) {
	h.setUserActive(c, true, "User activated")
}

// DeactivateUser is the handler for PUT /v1/admin/deactivate-user
func (h *Handlers) DeactivateUser(c *gin.Context) {
	h.setUserActive(c, false, "User deactivated")
}

// DeleteUser is the handler for DELETE /v1/admin/delete-user (hard delete)
func (h *Handlers) DeleteUser(c *gin.Context) {
	var input UserIDInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide userId"})
		return
	}

	// Fetch the record first so the response can echo what was removed.
	row := h.DB.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", input.UserID)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "No such user found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching user"})
		return
	}

	if _, err := h.DB.Exec("DELETE FROM users WHERE id = ?", input.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted", "data": user})
}
