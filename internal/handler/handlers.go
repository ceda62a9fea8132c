// Package handler is the HTTP layer. It binds and validates requests, calls
// the service layer and writes JSON responses.
package handler

import (
	"github.com/deppfellow/go-cms/internal/server"
	"github.com/deppfellow/go-cms/internal/service"
)

type Handlers struct {
	Health        *HealthHandler
	Articles      *ArticleHandler
	Tags          *TagHandler
	Categories    *CategoryHandler
	Users         *UserHandler
	Announcements *AnnouncementHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(s),
		Articles:      NewArticleHandler(s, services.Articles),
		Tags:          NewTagHandler(s, services.Tags),
		Categories:    NewCategoryHandler(s, services.Categories),
		Users:         NewUserHandler(s, services.Users),
		Announcements: NewAnnouncementHandler(s, services.Announcements),
	}
}
