package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zenkart/zenkart-golang/internal/auth"
	"github.com/zenkart/zenkart-golang/internal/models"
)

//
// --- User Account Handlers ---
//

// userColumns is the canonical select list for scanning a full user row.
const userColumns = `id, role, name, email, mobile, password_hash, profile_picture,
	is_active, reset_token, reset_token_expires, created_at, updated_at`

// scanUser scans a row produced with userColumns into a models.User.
func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Role,
		&u.Name,
		&u.Email,
		&u.Mobile,
		&u.PasswordHash,
		&u.ProfilePicture,
		&u.IsActive,
		&u.ResetToken,
		&u.ResetTokenExpires,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// signupUser is the shared registration flow for shoppers and sellers.
// Signup is a multipart form because a profile picture upload is required.
func (h *Handlers) signupUser(c *gin.Context, role string) {
	// 1. --- Get Form Fields ---
	name := c.PostForm("name")
	email := c.PostForm("email")
	mobile := c.PostForm("mobile")
	password := c.PostForm("password")
	confirmPassword := c.PostForm("confirmPassword")

	// 2. --- Validate ---
	if name == "" || email == "" || mobile == "" || password == "" || confirmPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields required"})
		return
	}

	if password != confirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password and Confirm password not match"})
		return
	}

	// 3. --- Uniqueness Checks (email, then mobile) ---
	var existingID int64
	err := h.DB.QueryRow("SELECT id FROM users WHERE email = ?", email).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exist"})
		return
	}
	if err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error checking email"})
		return
	}

	err = h.DB.QueryRow("SELECT id FROM users WHERE mobile = ?", mobile).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Mobile number already exist!"})
		return
	}
	if err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error checking mobile"})
		return
	}

	// 4. --- Profile Picture (required) ---
	file, err := c.FormFile("profilePicture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Profile picture required!"})
		return
	}
	pictureURL, err := saveUploadedImage(c, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save profile picture"})
		return
	}

	// 5. --- Hash the Password ---
	var pw models.Password
	if err := pw.Set(password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}

	// 6. --- Save to Database ---
	now := time.Now()
	query := `
		INSERT INTO users
		(role, name, email, mobile, password_hash, profile_picture, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := h.DB.Exec(query, role, name, email, mobile, pw.Hash, pictureURL, true, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}
	id, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get new user ID"})
		return
	}

	user := &models.User{
		ID:             id,
		Role:           role,
		Name:           name,
		Email:          email,
		Mobile:         mobile,
		ProfilePicture: pictureURL,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// 7. --- Send Success Response ---
	// The password hash carries json:"-" so it never leaves the server.
	c.JSON(http.StatusOK, gin.H{
		"message": "User created successfully",
		"data":    user,
	})
}

// UserSignup is the handler for POST /v1/users/signup
func (h *Handlers) UserSignup(c *gin.Context) {
	h.signupUser(c, "user")
}

// LoginInput defines the JSON input for all login endpoints.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// loginAs is the shared login flow; each role-gated router mounts its own
// endpoint so a seller token can never be minted through the user login.
func (h *Handlers) loginAs(c *gin.Context, role string) {
	// 1. --- Bind & Validate JSON ---
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	// 2. --- Find the User ---
	row := h.DB.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ? AND role = ?", input.Email, role)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching user"})
		return
	}

	// 3. --- Check Password ---
	pw := models.Password{Hash: user.PasswordHash}
	matched, err := pw.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to verify password"})
		return
	}
	if !matched {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Incorrect password"})
		return
	}

	// 4. --- Check Active Flag ---
	if !user.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User profile deactivated"})
		return
	}

	// 5. --- Generate Token ---
	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    user,
		"token":   token,
	})
}

// UserLogin is the handler for POST /v1/users/login
func (h *Handlers) UserLogin(c *gin.Context) {
	h.loginAs(c, "user")
}

// UserProfile is the handler for GET /v1/users/profile
func (h *Handlers) UserProfile(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	row := h.DB.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", userID)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user profile details fetched", "data": user})
}

// UpdateUserProfile is the handler for PUT /v1/users/update-profile
// Multipart form: name/email/mobile required, profilePicture optional.
func (h *Handlers) UpdateUserProfile(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	name := c.PostForm("name")
	email := c.PostForm("email")
	mobile := c.PostForm("mobile")

	if name == "" || email == "" || mobile == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email, and mobile are required"})
		return
	}

	// Optional new profile picture
	var pictureURL string
	if file, err := c.FormFile("profilePicture"); err == nil {
		pictureURL, err = saveUploadedImage(c, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save profile picture"})
			return
		}
	}

	query := "UPDATE users SET name = ?, email = ?, mobile = ?, updated_at = ?"
	args := []interface{}{name, email, mobile, time.Now()}
	if pictureURL != "" {
		query += ", profile_picture = ?"
		args = append(args, pictureURL)
	}
	query += " WHERE id = ?"
	args = append(args, userID)

	if _, err := h.DB.Exec(query, args...); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
		return
	}

	row := h.DB.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", userID)
	user, err := scanUser(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch updated profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user profile details updated", "data": user})
}

// UserDetails is the handler for GET /v1/users/details/:userId
func (h *Handlers) UserDetails(c *gin.Context) {
	userID := c.Param("userId")

	row := h.DB.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", userID)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User details fetched", "data": user})
}

// CheckUser is the handler for GET /v1/users/check-user.
// Reaching it at all means the auth middleware accepted the caller.
func (h *Handlers) CheckUser(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Authorized user"})
}

// UserLogout is the handler for POST /v1/users/logout.
// Tokens are stateless, so logout is a client-side discard.
func (h *Handlers) UserLogout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "User logout success"})
}

//
// --- Password Reset ---
//

// ForgotPasswordInput defines the JSON input for requesting a reset token.
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword is the handler for POST /v1/users/forgot-password
// It issues a short-lived reset token. Email delivery is out of scope, so the
// token is returned in the response body.
func (h *Handlers) ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	var userID int64
	err := h.DB.QueryRow("SELECT id FROM users WHERE email = ?", input.Email).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching user"})
		return
	}

	token := uuid.New().String()
	expires := time.Now().Add(15 * time.Minute)

	_, err = h.DB.Exec(
		"UPDATE users SET reset_token = ?, reset_token_expires = ?, updated_at = ? WHERE id = ?",
		token, expires, time.Now(), userID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create reset token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset token created",
		"data":    gin.H{"resetToken": token},
	})
}

// ResetPasswordInput defines the JSON input for resetting the password.
type ResetPasswordInput struct {
	Password string `json:"password" binding:"required,min=8"`
}

// ResetPassword is the handler for POST /v1/users/reset-password/:token
func (h *Handlers) ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password is required (min 8 characters)"})
		return
	}

	// The token must exist and must not be expired.
	var userID int64
	err := h.DB.QueryRow(
		"SELECT id FROM users WHERE reset_token = ? AND reset_token_expires > ?",
		token, time.Now(),
	).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid token or token expired!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error checking token"})
		return
	}

	var pw models.Password
	if err := pw.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}

	_, err = h.DB.Exec(
		"UPDATE users SET password_hash = ?, reset_token = NULL, reset_token_expires = NULL, updated_at = ? WHERE id = ?",
		pw.Hash, time.Now(), userID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful!"})
}
