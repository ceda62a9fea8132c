package handler

import (
	"github.com/deppfellow/go-cms/internal/model"
	"github.com/deppfellow/go-cms/internal/server"
	"github.com/deppfellow/go-cms/internal/service"
	"github.com/deppfellow/go-cms/internal/validation"
	"github.com/labstack/echo/v4"
)

type AnnouncementHandler struct {
	Handler
	announcements *service.AnnouncementService
}

func NewAnnouncementHandler(s *server.Server, announcements *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{Handler: NewHandler(s), announcements: announcements}
}

type ListAnnouncementsRequest struct {
	PageRequest
}

func (r *ListAnnouncementsRequest) Bind(c echo.Context) error {
	b := echo.QueryParamsBinder(c)
	r.bindPage(c, b)
	return b.BindError()
}

func (r *ListAnnouncementsRequest) Validate() error {
	return nil
}

type CreateAnnouncementRequest struct {
	Title      string `json:"title" validate:"required,max=255"`
	ContentURL string `json:"content_url" validate:"required,url"`
}

func (r *CreateAnnouncementRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateAnnouncementRequest struct {
	ID    int64  `param:"id" validate:"gt=0"`
	Title string `json:"title" validate:"required,max=255"`
}

func (r *UpdateAnnouncementRequest) Validate() error {
	return validation.Struct(r)
}

func (h *AnnouncementHandler) ListAnnouncements(c echo.Context, req *ListAnnouncementsRequest) ([]model.Announcement, error) {
	return h.announcements.List(c.Request().Context(), req.Limit, req.Offset)
}

func (h *AnnouncementHandler) GetAnnouncement(c echo.Context, req *IDRequest) (*model.Announcement, error) {
	return h.announcements.GetByID(c.Request().Context(), req.ID)
}

func (h *AnnouncementHandler) CreateAnnouncement(c echo.Context, req *CreateAnnouncementRequest) (*model.Announcement, error) {
	return h.announcements.Create(c.Request().Context(), req.Title, req.ContentURL)
}

func (h *AnnouncementHandler) UpdateAnnouncement(c echo.Context, req *UpdateAnnouncementRequest) (*model.Announcement, error) {
	return h.announcements.UpdateTitle(c.Request().Context(), req.ID, req.Title)
}

func (h *AnnouncementHandler) DeleteAnnouncement(c echo.Context, req *IDRequest) (*model.Announcement, error) {
	return h.announcements.Delete(c.Request().Context(), req.ID)
}
