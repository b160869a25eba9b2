package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"postboard/internal/domain"
	"postboard/internal/service"
	"postboard/internal/transport/http/ez"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler { return &PostHandler{svc: svc} }

func (h *PostHandler) Priority() int { return 20 }

// createPostIn userId 是旧客户端使用的字段名
type createPostIn struct {
	Title   string  `json:"title" binding:"required,max=255"`
	Content string  `json:"content"`
	OwnerID *uint64 `json:"ownerId"`
	UserID  *uint64 `json:"userId"`
}

func (in createPostIn) owner() (uint64, error) {
	switch {
	case in.OwnerID != nil:
		return *in.OwnerID, nil
	case in.UserID != nil:
		return *in.UserID, nil
	}
	return 0, domain.Validation("ownerId is required", nil)
}

func postNotFound() error { return domain.NotFound("Post not found", domain.ErrPostNotFound) }

func (h *PostHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[struct{}, []domain.Post]{
		Method: http.MethodGet,
		Path:   "/posts",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Post, error) {
			return h.svc.ListPosts(c.Request.Context())
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Post]{
		Method: http.MethodGet,
		Path:   "/posts/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Post, error) {
			id, ok := ez.ParamID(c, "id")
			if !ok {
				return nil, postNotFound()
			}
			p, err := h.svc.GetPost(c.Request.Context(), id)
			if err == nil && p == nil {
				err = postNotFound()
			}
			return p, err
		},
	})

	ez.RegisterAction(e, ez.Action[createPostIn, *domain.Post]{
		Method: http.MethodPost,
		Path:   "/posts",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *createPostIn) (*domain.Post, error) {
			ownerID, err := in.owner()
			if err != nil {
				return nil, err
			}
			return h.svc.CreatePost(c.Request.Context(), in.Title, in.Content, ownerID)
		},
	})

	ez.RegisterAction(e, ez.Action[domain.PostPatch, *domain.Post]{
		Method: http.MethodPut,
		Path:   "/posts/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *domain.PostPatch) (*domain.Post, error) {
			id, ok := ez.ParamID(c, "id")
			if !ok {
				return nil, postNotFound()
			}
			p, err := h.svc.UpdatePost(c.Request.Context(), id, *in)
			if err == nil && p == nil {
				err = postNotFound()
			}
			return p, err
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/posts/:id",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			id, ok := ez.ParamID(c, "id")
			if !ok {
				return struct{}{}, nil
			}
			return struct{}{}, h.svc.DeletePost(c.Request.Context(), id)
		},
	})

	// 关系查询，/posts/user/... 为旧路径
	for _, base := range []string{"/users/:id/posts", "/posts/user/:id/posts"} {
		h.mountOwned(e, base)
	}
}

func (h *PostHandler) mountOwned(e ez.EZ, base string) {
	ez.RegisterAction(e, ez.Action[struct{}, []domain.Post]{
		Method: http.MethodGet,
		Path:   base,
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Post, error) {
			uid, ok := ez.ParamID(c, "id")
			if !ok {
				return nil, userNotFound()
			}
			return h.svc.ListPostsOfUser(c.Request.Context(), uid)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Post]{
		Method: http.MethodGet,
		Path:   base + "/:postId",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Post, error) {
			uid, ok := ez.ParamID(c, "id")
			if !ok {
				return nil, userNotFound()
			}
			pid, ok := ez.ParamID(c, "postId")
			if !ok {
				return nil, postNotFound()
			}
			p, err := h.svc.GetPostOfUser(c.Request.Context(), uid, pid)
			if err == nil && p == nil {
				err = postNotFound()
			}
			return p, err
		},
	})
}
