package routes

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/zenkart/zenkart-golang/internal/handlers"
	"github.com/zenkart/zenkart-golang/internal/middleware"
)

// allowedOrigin is the frontend origin permitted to send credentialed
// cross-origin requests.
func allowedOrigin() string {
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		return origin
	}
	return "http://localhost:5173"
}

// CORSMiddleware tells the browser it is safe for the frontend to send
// credentialed requests to us.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin())
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight OPTIONS requests get an empty 204.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware())

	// Uploaded images are served as static assets.
	router.Static("/uploads", "./uploads")

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		authRequired := middleware.AuthMiddleware(h.DB)
		userOnly := middleware.UserMiddleware()
		sellerOnly := middleware.SellerMiddleware()
		adminOnly := middleware.AdminMiddleware()

		// --- User Routes ---
		users := v1.Group("/users")
		{
			users.POST("/signup", h.UserSignup)
			users.POST("/login", h.UserLogin)
			users.POST("/forgot-password", h.ForgotPassword)
			users.POST("/reset-password/:token", h.ResetPassword)

			users.POST("/logout", authRequired, h.UserLogout)
			users.GET("/profile", authRequired, h.UserProfile)
			users.GET("/details/:userId", authRequired, h.UserDetails)
			users.PUT("/update-profile", authRequired, h.UpdateUserProfile)
			users.GET("/check-user", authRequired, h.CheckUser)
		}

		// --- Seller Routes ---
		seller := v1.Group("/seller")
		{
			seller.POST("/signup", h.SellerSignup)
			seller.POST("/login", h.SellerLogin)
		}

		// --- Admin Routes ---
		admin := v1.Group("/admin")
		{
			admin.POST("/login", h.AdminLogin)

			protected := admin.Group("/", authRequired, adminOnly)
			{
				protected.GET("/users", h.GetUsers)
				protected.GET("/active-users", h.GetActiveUsers)
				protected.GET("/inactive-users", h.GetInactiveUsers)
				protected.PUT("/activate-user", h.ActivateUser)
				protected.PUT("/deactivate-user", h.DeactivateUser)
				protected.DELETE("/delete-user", h.DeleteUser)
			}
		}

		// --- Product Routes ---
		product := v1.Group("/product")
		{
			product.GET("/all", h.GetProducts)
			product.GET("/details/:productId", h.GetProduct)
			product.GET("/search", h.SearchProducts)

			product.POST("/create", authRequired, sellerOnly, h.CreateProduct)
			product.GET("/seller-products", authRequired, sellerOnly, h.GetMyProducts)
			product.PUT("/update/:productId", authRequired, sellerOnly, h.UpdateProduct)
			product.DELETE("/delete/:productId", authRequired, sellerOnly, h.DeleteProduct)
		}

		// --- Cart Routes ---
		cart := v1.Group("/cart", authRequired, userOnly)
		{
			cart.POST("/add", h.AddToCart)
			cart.GET("", h.GetCart)
			cart.PUT("/update", h.UpdateCartItem)
			cart.DELETE("/remove/:productId", h.RemoveFromCart)
			cart.DELETE("/clear", h.ClearCart)
		}

		// --- Wishlist Routes ---
		wishlist := v1.Group("/wishlist", authRequired, userOnly)
		{
			wishlist.POST("/add", h.AddToWishlist)
			wishlist.GET("", h.GetWishlist)
			wishlist.DELETE("/remove/:productId", h.RemoveFromWishlist)
		}

		// --- Review Routes ---
		review := v1.Group("/review")
		{
			review.GET("/product/:productId", h.GetProductReviews)
			review.GET("/average/:productId", h.GetAverageRating)

			review.POST("/add", authRequired, userOnly, h.AddReview)
			review.DELETE("/delete/:productId", authRequired, userOnly, h.DeleteReview)
		}

		// --- Order Routes ---
		order := v1.Group("/order", authRequired)
		{
			order.POST("/create-orders", userOnly, h.CreateOrder)
			order.GET("/get-user-orders", userOnly, h.GetUserOrders)
			order.GET("/update-stock", userOnly, h.UpdateStock)
			order.POST("/request-return", userOnly, h.RequestReturn)

			order.GET("/get-seller-orders", sellerOnly, h.GetSellerOrders)
			order.POST("/get-orders-by-status", sellerOnly, h.GetOrdersByStatus)
			order.POST("/get-seller-orders-by-status", sellerOnly, h.GetSellerOrdersByStatus)
			order.GET("/get-order-details/:orderId", sellerOnly, h.GetOrderDetails)
			order.POST("/change-order-status", sellerOnly, h.ChangeOrderStatus)
			order.POST("/change-payment-status", sellerOnly, h.ChangePaymentStatus)
			order.GET("/seller-orders-total-price-by-category", sellerOnly, h.GetSellerOrderTotalPriceByCategory)
			order.POST("/search-seller-orders", sellerOnly, h.SearchSellerOrders)

			order.GET("/get-orders", adminOnly, h.GetOrders)
			order.GET("/orders-total-price-by-category", adminOnly, h.GetOrderTotalPriceByCategory)
			order.POST("/search-orders", adminOnly, h.SearchOrders)
			order.POST("/change-return-approval", adminOnly, h.ChangeReturnApproval)
		}
	}

	return router
}
