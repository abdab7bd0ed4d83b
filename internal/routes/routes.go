package routes

import (
	"github.com/gin-gonic/gin"

	"storefront_backend/internal/auth"
	"storefront_backend/internal/handlers"
	"storefront_backend/internal/middleware"
)

// RegisterRoutes registers every HTTP route of the application.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	tokens *auth.TokenManager,
) {
	requireAuth := middleware.AuthMiddleware(tokens)

	// Public listing and discovery.
	ginRouter.GET("/", appHandlers.StoreHandler.List)
	ginRouter.GET("/stores", appHandlers.StoreHandler.List)
	ginRouter.GET("/stores/page/:page", appHandlers.StoreHandler.List)
	ginRouter.GET("/store/:slug", appHandlers.StoreHandler.GetBySlug)
	ginRouter.GET("/tags", appHandlers.StoreHandler.Tags)
	ginRouter.GET("/tags/:tag", appHandlers.StoreHandler.Tags)
	ginRouter.GET("/top", appHandlers.StoreHandler.Top)
	ginRouter.GET("/map", appHandlers.StoreHandler.Map)

	// Account lifecycle.
	ginRouter.POST("/register", appHandlers.AuthHandler.Register)
	ginRouter.POST("/login", appHandlers.AuthHandler.Login)
	ginRouter.GET("/logout", requireAuth, appHandlers.AuthHandler.Logout)
	ginRouter.POST("/account/forgot", appHandlers.AuthHandler.Forgot)
	ginRouter.GET("/account/reset/:token", appHandlers.AuthHandler.ResetForm)
	ginRouter.POST("/account/reset/:token", appHandlers.AuthHandler.Reset)
	ginRouter.GET("/account", requireAuth, appHandlers.UserHandler.Account)
	ginRouter.POST("/account", requireAuth, appHandlers.UserHandler.UpdateAccount)

	// Store authoring.
	ginRouter.GET("/add", requireAuth, appHandlers.StoreHandler.AddForm)
	ginRouter.POST("/add", requireAuth, appHandlers.StoreHandler.Create)
	ginRouter.GET("/add/:id", requireAuth, appHandlers.StoreHandler.EditForm)
	ginRouter.POST("/add/:id", requireAuth, appHandlers.StoreHandler.Update)

	// Favorites and reviews.
	ginRouter.GET("/hearts", requireAuth, appHandlers.StoreHandler.Hearts)
	ginRouter.GET("/reviews/:id", appHandlers.ReviewHandler.ListForStore)
	ginRouter.POST("/reviews/:id", requireAuth, appHandlers.ReviewHandler.Add)

	// JSON API consumed by the frontend widgets.
	api := ginRouter.Group("/api")
	{
		api.GET("/search", appHandlers.StoreHandler.Search)
		api.GET("/stores/near", appHandlers.StoreHandler.Near)
		api.POST("/stores/:id/heart", requireAuth, appHandlers.UserHandler.ToggleHeart)
	}
}
