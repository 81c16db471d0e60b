package routes

import (
	"net/http"

	"github.com/01moynul/containerhub-golang/internal/handlers"
	"github.com/01moynul/containerhub-golang/internal/middleware"
	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CORSMiddleware tells the browser that the configured frontend origin
// may call the API.
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Options are the router settings that do not live on Handlers.
type Options struct {
	CORSOrigin string
	// UploadDir is served read-only under /uploads when set.
	UploadDir string
	// DeciderRole may approve or reject collaborations.
	DeciderRole string
}

// SetupRouter builds the API engine. Decimal values (prices, price
// limits, totals) are rendered as JSON numbers for every response.
func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	decimal.MarshalJSONWithoutQuotes = true

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(CORSMiddleware(opts.CORSOrigin))

	if opts.UploadDir != "" {
		router.Static("/uploads", opts.UploadDir)
	}

	v1 := router.Group("/v1")
	{
		// --- Public ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})
		v1.POST("/auth/register", h.Register)
		v1.POST("/auth/login", h.Login)
		v1.GET("/categories", h.GetAllCategories)

		// --- Protected Routes (Login Required) ---
		authed := v1.Group("/")
		authed.Use(middleware.AuthMiddleware(h.Tokens))
		{
			authed.POST("/auth/logout", h.Logout)
			authed.GET("/collaborations", h.GetCollaborations)
			authed.GET("/notifications", h.GetMyNotifications)
			authed.PATCH("/notifications/:id/read", h.MarkNotificationAsRead)
			authed.GET("/dashboard", h.GetDashboardStats)

			// --- Admin ---
			admin := authed.Group("/")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/categories", h.CreateCategory)
				admin.DELETE("/categories/:id", h.DeleteCategory)
				admin.POST("/ai/chat", h.ChatAI)
			}

			authed.GET("/products", middleware.RequireRole(models.RoleAdmin, models.RoleSupplier), h.GetProducts)

			// --- Supplier ---
			supplier := authed.Group("/")
			supplier.Use(middleware.RequireRole(models.RoleSupplier))
			{
				supplier.POST("/products", h.CreateProduct)
				supplier.PATCH("/products/:id", h.UpdateProduct)
				supplier.DELETE("/products/:id", h.DeleteProduct)
				supplier.POST("/uploads", h.UploadFile)
				supplier.GET("/collaborations/importers", h.GetImporters)
				supplier.POST("/collaborations/request", h.RequestCollaboration)
			}

			// --- Collaboration decisions (importer or admin, per policy) ---
			decider := authed.Group("/collaborations")
			decider.Use(middleware.RequireRole(opts.DeciderRole))
			{
				decider.PATCH("/:id/approve", h.ApproveCollaboration)
				decider.PATCH("/:id/reject", h.RejectCollaboration)
			}

			// --- Importer ---
			importer := authed.Group("/")
			importer.Use(middleware.RequireRole(models.RoleImporter))
			{
				importer.GET("/importer/products", h.GetImporterProducts)
				importer.GET("/compare", h.CompareProducts)
				importer.GET("/containers", h.GetContainers)
				importer.POST("/containers", h.CreateContainer)
				importer.GET("/containers/:id", h.GetContainer)
				importer.DELETE("/containers/:id", h.DeleteContainer)
				importer.POST("/containers/:id/items", h.AddItemToContainer)
				importer.DELETE("/containers/:id/items/:itemId", h.RemoveContainerItem)
			}
		}
	}

	return router
}
