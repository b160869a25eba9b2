package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"postboard/internal/domain"
	"postboard/internal/service"
	"postboard/internal/transport/http/ez"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Priority() int { return 10 }

type createUserIn struct {
	Name  string `json:"name"  binding:"required,max=128"`
	Email string `json:"email" binding:"required,max=191"`
}

func userNotFound() error { return domain.NotFound("User not found", domain.ErrUserNotFound) }

func (h *UserHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[struct{}, []domain.User]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.User, error) {
			return h.svc.ListUsers(c.Request.Context())
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			id, ok := ez.ParamID(c, "id")
			if !ok {
				return nil, userNotFound()
			}
			u, err := h.svc.GetUser(c.Request.Context(), id)
			if err == nil && u == nil {
				err = userNotFound()
			}
			return u, err
		},
	})

	ez.RegisterAction(e, ez.Action[createUserIn, *domain.User]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *createUserIn) (*domain.User, error) {
			return h.svc.CreateUser(c.Request.Context(), in.Name, in.Email)
		},
	})

	ez.RegisterAction(e, ez.Action[domain.UserPatch, *domain.User]{
		Method: http.MethodPut,
		Path:   "/users/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *domain.UserPatch) (*domain.User, error) {
			id, ok := ez.ParamID(c, "id")
			if !ok {
				return nil, userNotFound()
			}
			u, err := h.svc.UpdateUser(c.Request.Context(), id, *in)
			if err == nil && u == nil {
				err = userNotFound()
			}
			return u, err
		},
	})

	// 删除不存在的 id 同样 204
	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			id, ok := ez.ParamID(c, "id")
			if !ok {
				return struct{}{}, nil
			}
			return struct{}{}, h.svc.DeleteUser(c.Request.Context(), id)
		},
	})
}
