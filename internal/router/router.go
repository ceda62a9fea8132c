// Package router builds the echo instance: middleware chain, system routes
// and the /api/v1 route table.
package router

import (
	"net/http"

	"github.com/deppfellow/go-cms/internal/handler"
	"github.com/deppfellow/go-cms/internal/middleware"
	"github.com/deppfellow/go-cms/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the tracing transaction and request id must exist
	// before the context logger is built from them.
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)
	registerV1Routes(router.Group("/api/v1"), h)

	return router
}

func registerV1Routes(v1 *echo.Group, h *handler.Handlers) {
	articles := v1.Group("/articles")
	articles.GET("", handler.Handle(h.Articles.Handler, h.Articles.ListArticles, http.StatusOK))
	articles.GET("/search", handler.Handle(h.Articles.Handler, h.Articles.SearchArticles, http.StatusOK))
	articles.GET("/:id", handler.Handle(h.Articles.Handler, h.Articles.GetArticle, http.StatusOK))
	articles.POST("", handler.Handle(h.Articles.Handler, h.Articles.CreateArticle, http.StatusCreated))
	articles.DELETE("/:id", handler.Handle(h.Articles.Handler, h.Articles.DeleteArticle, http.StatusOK))

	tags := v1.Group("/tags")
	tags.GET("", handler.Handle(h.Tags.Handler, h.Tags.ListTags, http.StatusOK))
	tags.GET("/:id", handler.Handle(h.Tags.Handler, h.Tags.GetTag, http.StatusOK))
	tags.POST("", handler.Handle(h.Tags.Handler, h.Tags.CreateTag, http.StatusCreated))
	tags.DELETE("/:id", handler.Handle(h.Tags.Handler, h.Tags.DeleteTag, http.StatusOK))

	categories := v1.Group("/categories")
	categories.GET("", handler.Handle(h.Categories.Handler, h.Categories.ListCategories, http.StatusOK))
	categories.GET("/:id", handler.Handle(h.Categories.Handler, h.Categories.GetCategory, http.StatusOK))
	categories.POST("", handler.Handle(h.Categories.Handler, h.Categories.CreateCategory, http.StatusCreated))
	categories.DELETE("/:id", handler.Handle(h.Categories.Handler, h.Categories.DeleteCategory, http.StatusOK))

	users := v1.Group("/users")
	users.GET("", handler.Handle(h.Users.Handler, h.Users.ListUsers, http.StatusOK))
	users.GET("/:id", handler.Handle(h.Users.Handler, h.Users.GetUser, http.StatusOK))
	users.POST("", handler.Handle(h.Users.Handler, h.Users.CreateUser, http.StatusCreated))
	users.DELETE("/:id", handler.Handle(h.Users.Handler, h.Users.DeleteUser, http.StatusOK))

	announcements := v1.Group("/announcements")
	announcements.GET("", handler.Handle(h.Announcements.Handler, h.Announcements.ListAnnouncements, http.StatusOK))
	announcements.GET("/:id", handler.Handle(h.Announcements.Handler, h.Announcements.GetAnnouncement, http.StatusOK))
	announcements.POST("", handler.Handle(h.Announcements.Handler, h.Announcements.CreateAnnouncement, http.StatusCreated))
	announcements.PATCH("/:id", handler.Handle(h.Announcements.Handler, h.Announcements.UpdateAnnouncement, http.StatusOK))
	announcements.DELETE("/:id", handler.Handle(h.Announcements.Handler, h.Announcements.DeleteAnnouncement, http.StatusOK))
}
