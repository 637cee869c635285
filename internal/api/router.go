package api

import (
	"net/http" // HTTP status codes

	"artisan_market/internal/app"        // Application context
	"artisan_market/internal/domain"     // Roles
	"artisan_market/internal/middleware" // Session and role guards

	"github.com/gin-gonic/gin" // Gin web framework
)

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r *gin.Engine, a *app.App) {
	RegisterValidators()

	session := middleware.SessionMiddleware(a.Config.JWTSecret)      // Any signed-in user
	artistOnly := middleware.RequireRole(a.Users, domain.RoleArtist) // Stored role must be artist

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Public routes
	api.GET("/auth/status", AuthStatusHandler(a.Config.JWTSecret)) // Session probe
	api.GET("/art", ListArtHandler(a.Art))                         // All listings
	api.GET("/art/:id", GetArtHandler(a.Art))                      // Listing detail

	// Session routes
	authed := api.Group("")
	authed.Use(session)

	authed.GET("/profile", GetProfileHandler(a.Profile))                              // Me
	authed.PATCH("/profile", UpdateProfileHandler(a.Profile))                         // Update me
	authed.GET("/profile/artist-stats", artistOnly, ArtistStatsHandler(a.Orders))     // Artist dashboard
	authed.GET("/profile/buyer-stats", BuyerStatsHandler(a.Orders))                   // Buyer dashboard
	authed.POST("/art", artistOnly, CreateArtHandler(a.Art))                          // Create listing
	authed.PUT("/art/:id", UpdateArtHandler(a.Art))                                   // Owner only
	authed.DELETE("/art/:id", DeleteArtHandler(a.Art))                                // Owner only
	authed.POST("/upload-image", UploadImageHandler(a.Uploader))                      // Image upload
	authed.GET("/cart", GetCartHandler(a.Cart))                                       // Cart snapshot
	authed.POST("/cart", AddToCartHandler(a.Cart))                                    // Add one unit
	authed.DELETE("/cart", ClearCartHandler(a.Cart))                                  // Clear cart
	authed.PATCH("/cart/:artId", UpdateCartItemHandler(a.Cart))                       // Set quantity
	authed.DELETE("/cart/:artId", RemoveCartItemHandler(a.Cart))                      // Remove line
	authed.GET("/wishlist", GetWishlistHandler(a.Wishlist))                           // Wishlist snapshot
	authed.POST("/wishlist", AddToWishlistHandler(a.Wishlist))                        // Save listing
	authed.DELETE("/wishlist", ClearWishlistHandler(a.Wishlist))                      // Clear wishlist
	authed.DELETE("/wishlist/:artId", RemoveWishlistItemHandler(a.Wishlist))          // Forget listing
	authed.POST("/checkout", CheckoutHandler(a.Checkout))                             // Cash on delivery
	authed.POST("/payment/create-order", CreatePaymentOrderHandler(a.Checkout))       // Gateway intent
	authed.POST("/payment/verify-payment", VerifyPaymentHandler(a.Checkout))          // Verified online order
	authed.GET("/orders", GetOrdersHandler(a.Orders))                                 // Buyer orders
	authed.PATCH("/orders/:id/shipping", artistOnly, UpdateShippingHandler(a.Orders)) // Selling artist only
}
