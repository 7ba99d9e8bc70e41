package router

import (
	"github.com/gin-gonic/gin"
	"github.com/Manulynx/kitaluro/config"
	"github.com/Manulynx/kitaluro/internal/app/controller"
	"github.com/Manulynx/kitaluro/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	catalogController  *controller.CatalogController
	ratingController   *controller.RatingController
	productController  *controller.ProductController
	taxonomyController *controller.TaxonomyController
	uploadController   *controller.UploadController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	catalogController *controller.CatalogController,
	ratingController *controller.RatingController,
	productController *controller.ProductController,
	taxonomyController *controller.TaxonomyController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		catalogController:  catalogController,
		ratingController:   ratingController,
		productController:  productController,
		taxonomyController: taxonomyController,
		uploadController:   uploadController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "KITALURO API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		// Public storefront: visible products only.
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/products", r.catalogController.ListProducts)
			catalog.GET("/products/:slug", r.catalogController.GetProductDetail)
			catalog.GET("/search", r.catalogController.QuickSearch)
			catalog.GET("/categories", r.catalogController.GetNavigation)
			catalog.GET("/filters", r.catalogController.GetFilters)

			catalog.GET("/ratings", r.ratingController.GetRatings)
			catalog.POST("/ratings",
				r.authMiddleware.OptionalAuthenticate(),
				r.ratingController.CreateRating,
			)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate())
		{
			products := admin.Group("/products")
			products.Use(r.authMiddleware.RequireRole("admin", "editor"))
			{
				products.GET("", r.productController.ListProducts)
				products.GET("/export", r.productController.ExportProducts)
				products.GET("/:id", r.productController.GetProduct)
				products.POST("", r.productController.CreateProduct)
				products.PUT("/:id", r.productController.UpdateProduct)
				products.DELETE("/:id", r.productController.DeleteProduct)
				products.POST("/:id/media", r.productController.AddMedia)
				products.DELETE("/:id/media", r.productController.RemoveMedia)
			}

			uploads := admin.Group("/uploads")
			uploads.Use(r.authMiddleware.RequireRole("admin", "editor"))
			{
				uploads.POST("/presign", r.uploadController.PresignUpload)
			}

			// Taxonomy and accounts are admin only.
			taxonomy := admin.Group("")
			taxonomy.Use(r.authMiddleware.RequireRole("admin"))
			{
				taxonomy.GET("/categories", r.taxonomyController.ListCategories)
				taxonomy.POST("/categories", r.taxonomyController.CreateCategory)
				taxonomy.PUT("/categories/:id", r.taxonomyController.UpdateCategory)
				taxonomy.DELETE("/categories/:id", r.taxonomyController.DeleteCategory)

				taxonomy.GET("/subcategories", r.taxonomyController.ListSubcategories)
				taxonomy.POST("/subcategories", r.taxonomyController.CreateSubcategory)
				taxonomy.PUT("/subcategories/:id", r.taxonomyController.UpdateSubcategory)
				taxonomy.DELETE("/subcategories/:id", r.taxonomyController.DeleteSubcategory)

				taxonomy.GET("/brands", r.taxonomyController.ListBrands)
				taxonomy.POST("/brands", r.taxonomyController.CreateBrand)
				taxonomy.PUT("/brands/:id", r.taxonomyController.UpdateBrand)
				taxonomy.DELETE("/brands/:id", r.taxonomyController.DeleteBrand)

				taxonomy.GET("/suppliers", r.taxonomyController.ListSuppliers)
				taxonomy.POST("/suppliers", r.taxonomyController.CreateSupplier)
				taxonomy.PUT("/suppliers/:id", r.taxonomyController.UpdateSupplier)
				taxonomy.DELETE("/suppliers/:id", r.taxonomyController.DeleteSupplier)

				taxonomy.GET("/statuses", r.taxonomyController.ListStatuses)
				taxonomy.POST("/statuses", r.taxonomyController.CreateStatus)
				taxonomy.PUT("/statuses/:id", r.taxonomyController.UpdateStatus)
				taxonomy.DELETE("/statuses/:id", r.taxonomyController.DeleteStatus)

				taxonomy.POST("/users", r.authController.CreateUser)
			}
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
