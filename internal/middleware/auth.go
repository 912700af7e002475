package middleware

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zenkart/zenkart-golang/internal/auth"
)

// AuthMiddleware validates the Bearer token and attaches the caller's
// identity (userID) and capability (userRole) to the context. The role stored
// in the users table is authoritative; the token's role claim is only a hint,
// so we re-read it here along with the active flag.
func AuthMiddleware(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Get Authorization Header ---
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token format (must be Bearer)"})
			c.Abort()
			return
		}
		tokenString := parts[1]

		// 2. --- Validate Token ---
		userID, _, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			c.Abort()
			return
		}

		// 3. --- Load Role & Active Flag ---
		var role string
		var isActive bool
		err = db.QueryRow("SELECT role, is_active FROM users WHERE id = ?", userID).Scan(&role, &isActive)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid user"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error checking user"})
			}
			c.Abort()
			return
		}

		if !isActive {
			c.JSON(http.StatusForbidden, gin.H{"message": "User profile deactivated"})
			c.Abort()
			return
		}

		// 4. --- Success ---
		c.Set("userID", userID)
		c.Set("userRole", role)
		c.Next()
	}
}

// requireRole returns a middleware that checks the capability attached by
// AuthMiddleware. These must be mounted AFTER AuthMiddleware.
func requireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleRaw, exists := c.Get("userRole")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User role not found in context (AuthMiddleware must run first)"})
			c.Abort()
			return
		}
		role := roleRaw.(string)

		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied: insufficient role"})
		c.Abort()
	}
}

// UserMiddleware allows any authenticated shopper.
func UserMiddleware() gin.HandlerFunc {
	return requireRole("user")
}

// SellerMiddleware allows sellers (admins can act on seller routes too).
func SellerMiddleware() gin.HandlerFunc {
	return requireRole("seller", "admin")
}

// AdminMiddleware allows admins only.
func AdminMiddleware() gin.HandlerFunc {
	return requireRole("admin")
}
