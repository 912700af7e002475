package handlers

import "github.com/gin-gonic/gin"

//
// --- Seller Account Handlers ---
//
// Sellers share the users table with shoppers; the role column is what the
// capability middleware keys on.
//

// SellerSignup is the handler for POST /v1/seller/signup
func (h *Handlers) SellerSignup(c *gin.Context) {
	h.signupUser(c, "seller")
}

// SellerLogin is the handler for POST /v1/seller/login
func (h *Handlers) SellerLogin(c *gin.Context) {
	h.loginAs(c, "seller")
}
