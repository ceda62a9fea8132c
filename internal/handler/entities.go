package handler

import (
	"github.com/deppfellow/go-cms/internal/model"
	"github.com/deppfellow/go-cms/internal/server"
	"github.com/deppfellow/go-cms/internal/service"
	"github.com/deppfellow/go-cms/internal/validation"
	"github.com/labstack/echo/v4"
)

type IDRequest struct {
	ID int64 `param:"id" validate:"gt=0"`
}

func (r *IDRequest) Validate() error {
	return validation.Struct(r)
}

type NameRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (r *NameRequest) Validate() error {
	return validation.Struct(r)
}

type TagHandler struct {
	Handler
	tags *service.TagService
}

func NewTagHandler(s *server.Server, tags *service.TagService) *TagHandler {
	return &TagHandler{Handler: NewHandler(s), tags: tags}
}

// ListTagsRequest filters by exact name when ?name= is given.
type ListTagsRequest struct {
	Name string `query:"name" validate:"max=255"`
}

func (r *ListTagsRequest) Validate() error {
	return validation.Struct(r)
}

type CreateTagRequest struct {
	Name string `json:"tag_name" validate:"required,max=255"`
}

func (r *CreateTagRequest) Validate() error {
	return validation.Struct(r)
}

func (h *TagHandler) ListTags(c echo.Context, req *ListTagsRequest) ([]model.Tag, error) {
	ctx := c.Request().Context()
	if req.Name == "" {
		return h.tags.List(ctx)
	}

	tag, err := h.tags.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	return []model.Tag{*tag}, nil
}

func (h *TagHandler) GetTag(c echo.Context, req *IDRequest) (*model.Tag, error) {
	return h.tags.GetByID(c.Request().Context(), req.ID)
}

func (h *TagHandler) CreateTag(c echo.Context, req *CreateTagRequest) (*model.Tag, error) {
	return h.tags.Create(c.Request().Context(), req.Name)
}

func (h *TagHandler) DeleteTag(c echo.Context, req *IDRequest) (*model.Tag, error) {
	return h.tags.Delete(c.Request().Context(), req.ID)
}

type CategoryHandler struct {
	Handler
	categories *service.CategoryService
}

func NewCategoryHandler(s *server.Server, categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{Handler: NewHandler(s), categories: categories}
}

// EmptyRequest is used by endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

func (h *CategoryHandler) ListCategories(c echo.Context, _ *EmptyRequest) ([]model.Category, error) {
	return h.categories.List(c.Request().Context())
}

func (h *CategoryHandler) GetCategory(c echo.Context, req *IDRequest) (*model.Category, error) {
	return h.categories.GetByID(c.Request().Context(), req.ID)
}

func (h *CategoryHandler) CreateCategory(c echo.Context, req *NameRequest) (*model.Category, error) {
	return h.categories.Create(c.Request().Context(), req.Name)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context, req *IDRequest) (*model.Category, error) {
	return h.categories.Delete(c.Request().Context(), req.ID)
}

type UserHandler struct {
	Handler
	users *service.UserService
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{Handler: NewHandler(s), users: users}
}

func (h *UserHandler) ListUsers(c echo.Context, _ *EmptyRequest) ([]model.User, error) {
	return h.users.List(c.Request().Context())
}

func (h *UserHandler) GetUser(c echo.Context, req *IDRequest) (*model.User, error) {
	return h.users.GetByID(c.Request().Context(), req.ID)
}

func (h *UserHandler) CreateUser(c echo.Context, req *NameRequest) (*model.User, error) {
	return h.users.Create(c.Request().Context(), req.Name)
}

func (h *UserHandler) DeleteUser(c echo.Context, req *IDRequest) (*model.User, error) {
	return h.users.Delete(c.Request().Context(), req.ID)
}
