package ez_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"postboard/internal/domain"
	"postboard/internal/transport/http/ez"
	mdw "postboard/internal/transport/http/middleware"
)

func init() { gin.SetMode(gin.TestMode) }

type echoIn struct {
	Name string `json:"name" binding:"required"`
}

func newEngine(handlerErr error) *gin.Engine {
	r := gin.New()
	e := ez.New(r.Group(""))
	ez.RegisterAction(e, ez.Action[echoIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/echo",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *echoIn) (gin.H, error) {
			if handlerErr != nil {
				return nil, handlerErr
			}
			return gin.H{"name": in.Name}, nil
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/things/:id",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			if _, ok := ez.ParamID(c, "id"); !ok {
				return struct{}{}, domain.NotFound("thing not found", nil)
			}
			return struct{}{}, nil
		},
	})
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterActionStatuses(t *testing.T) {
	tests := []struct {
		name       string
		handlerErr error
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{name: "created", method: http.MethodPost, path: "/echo", body: `{"name":"a"}`, wantStatus: http.StatusCreated, wantBody: `"name":"a"`},
		{name: "bind failure", method: http.MethodPost, path: "/echo", body: `{}`, wantStatus: http.StatusBadRequest, wantBody: `"code":400`},
		{name: "empty body still validated", method: http.MethodPost, path: "/echo", body: "", wantStatus: http.StatusBadRequest, wantBody: `"code":400`},
		{name: "malformed json", method: http.MethodPost, path: "/echo", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "not found", handlerErr: domain.NotFound("gone", nil), method: http.MethodPost, path: "/echo", body: `{"name":"a"}`, wantStatus: http.StatusNotFound, wantBody: `"msg":"gone"`},
		{name: "conflict", handlerErr: domain.Conflict("email taken", domain.ErrEmailTaken), method: http.MethodPost, path: "/echo", body: `{"name":"a"}`, wantStatus: http.StatusInternalServerError, wantBody: `"msg":"email taken"`},
		{name: "raw error hidden", handlerErr: errors.New("dial tcp: refused"), method: http.MethodPost, path: "/echo", body: `{"name":"a"}`, wantStatus: http.StatusInternalServerError, wantBody: `"msg":"internal error"`},
		{name: "no content", method: http.MethodDelete, path: "/things/3", wantStatus: http.StatusNoContent},
		{name: "bad id", method: http.MethodDelete, path: "/things/abc", wantStatus: http.StatusNotFound},
		{name: "id beyond int64", method: http.MethodDelete, path: "/things/9223372036854775808", wantStatus: http.StatusNotFound},
		{name: "max int64 id", method: http.MethodDelete, path: "/things/9223372036854775807", wantStatus: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newEngine(tt.handlerErr), tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
			if tt.wantStatus == http.StatusNoContent {
				assert.Empty(t, w.Body.String())
			}
		})
	}
}

func TestBodyTooLarge(t *testing.T) {
	r := gin.New()
	r.Use(mdw.MaxBodyBytes(8))
	e := ez.New(r.Group(""))
	ez.RegisterAction(e, ez.Action[echoIn, gin.H]{
		Method:  http.MethodPost,
		Path:    "/echo",
		Binder:  ez.BindJSON,
		Handler: func(c *gin.Context, in *echoIn) (gin.H, error) { return gin.H{}, nil },
	})
	w := do(r, http.MethodPost, "/echo", `{"name":"this body is longer than eight bytes"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRegisterActionUnknownMethod(t *testing.T) {
	e := ez.New(gin.New().Group(""))
	assert.Panics(t, func() {
		ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
			Method:  "GTE",
			Path:    "/typo",
			Binder:  ez.BindNone,
			Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) { return struct{}{}, nil },
		})
	})
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ez.StatusOf(domain.NotFound("", domain.ErrPostNotFound)))
	assert.Equal(t, http.StatusBadRequest, ez.StatusOf(domain.Validation("bad", nil)))
	assert.Equal(t, http.StatusInternalServerError, ez.StatusOf(domain.Internal("x", domain.NotFound("", domain.ErrUserNotFound))))
}
