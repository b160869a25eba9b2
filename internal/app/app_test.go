package app_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"postboard/internal/app"
	"postboard/internal/core/config"
)

func init() { gin.SetMode(gin.TestMode) }

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type userView struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	DeletedAt *string `json:"deletedAt"`
}

type postView struct {
	ID      uint64    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	OwnerID uint64    `json:"ownerId"`
	User    *userView `json:"user"`
}

type client struct {
	t *testing.T
	h http.Handler
}

func (c client) do(method, path, body string) (int, envelope) {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func testConfig(driver string) *config.Config {
	return &config.Config{
		App: config.App{Name: "postboard", Env: "test"},
		DB: config.DB{
			Driver:       driver,
			DSN:          ":memory:",
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			AutoMigrate:  true,
			LogLevel:     "silent",
		},
	}
}

// eachDriver 同一组 HTTP 用例分别跑在内存 store 和 sqlite 上
func eachDriver(t *testing.T, fn func(t *testing.T, c client)) {
	for _, driver := range []string{app.DriverMemory, "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			a, err := app.New(testConfig(driver), zaptest.NewLogger(t))
			require.NoError(t, err)
			t.Cleanup(func() { _ = a.Close() })
			fn(t, client{t: t, h: a.Engine})
		})
	}
}

func TestScenario(t *testing.T) {
	eachDriver(t, func(t *testing.T, c client) {
		code, env := c.do(http.MethodPost, "/users", `{"name":"A","email":"a@x"}`)
		require.Equal(t, http.StatusCreated, code)
		u := decode[userView](t, env)
		assert.EqualValues(t, 1, u.ID)

		code, env = c.do(http.MethodPost, "/posts", `{"title":"T","ownerId":1}`)
		require.Equal(t, http.StatusCreated, code)
		p := decode[postView](t, env)
		assert.EqualValues(t, 1, p.ID)
		assert.EqualValues(t, 1, p.OwnerID)
		require.NotNil(t, p.User)
		assert.Equal(t, "a@x", p.User.Email)

		code, env = c.do(http.MethodGet, "/users/1/posts", "")
		require.Equal(t, http.StatusOK, code)
		posts := decode[[]postView](t, env)
		require.Len(t, posts, 1)
		assert.EqualValues(t, 1, posts[0].ID)

		code, _ = c.do(http.MethodDelete, "/users/1", "")
		require.Equal(t, http.StatusNoContent, code)

		code, env = c.do(http.MethodGet, "/users/1/posts", "")
		require.Equal(t, http.StatusOK, code)
		assert.Empty(t, decode[[]postView](t, env))

		code, _ = c.do(http.MethodGet, "/users/1/posts/1", "")
		assert.Equal(t, http.StatusNotFound, code)

		code, env = c.do(http.MethodGet, "/posts/1", "")
		require.Equal(t, http.StatusOK, code)
		p = decode[postView](t, env)
		assert.EqualValues(t, 1, p.OwnerID)
		require.NotNil(t, p.User)
		assert.NotNil(t, p.User.DeletedAt)

		code, env = c.do(http.MethodGet, "/users/1", "")
		require.Equal(t, http.StatusOK, code)
		assert.NotNil(t, decode[userView](t, env).DeletedAt)
	})
}

func TestUserEndpoints(t *testing.T) {
	eachDriver(t, func(t *testing.T, c client) {
		code, _ := c.do(http.MethodPost, "/users", `{"name":"A","email":"a@x"}`)
		require.Equal(t, http.StatusCreated, code)

		code, env := c.do(http.MethodPost, "/users", `{"name":"B","email":"a@x"}`)
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Contains(t, env.Msg, "already exists")

		code, env = c.do(http.MethodGet, "/users", "")
		require.Equal(t, http.StatusOK, code)
		users := decode[[]userView](t, env)
		require.Len(t, users, 1)
		assert.Equal(t, "A", users[0].Name)

		code, env = c.do(http.MethodPut, "/users/1", `{"name":"A2"}`)
		require.Equal(t, http.StatusOK, code)
		u := decode[userView](t, env)
		assert.Equal(t, "A2", u.Name)
		assert.Equal(t, "a@x", u.Email)

		code, _ = c.do(http.MethodPut, "/users/99", `{"name":"Z"}`)
		assert.Equal(t, http.StatusNotFound, code)
		code, env = c.do(http.MethodGet, "/users/99", "")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "User not found", env.Msg)
		code, _ = c.do(http.MethodGet, "/users/abc", "")
		assert.Equal(t, http.StatusNotFound, code)

		code, _ = c.do(http.MethodDelete, "/users/99", "")
		assert.Equal(t, http.StatusNoContent, code)
		code, _ = c.do(http.MethodDelete, "/users/1", "")
		assert.Equal(t, http.StatusNoContent, code)
		code, _ = c.do(http.MethodDelete, "/users/1", "")
		assert.Equal(t, http.StatusNoContent, code)

		// 软删后 email 仍被占用
		code, _ = c.do(http.MethodPost, "/users", `{"name":"C","email":"a@x"}`)
		assert.Equal(t, http.StatusInternalServerError, code)
	})
}

func TestPostEndpoints(t *testing.T) {
	eachDriver(t, func(t *testing.T, c client) {
		c.do(http.MethodPost, "/users", `{"name":"A","email":"a@x"}`)
		c.do(http.MethodPost, "/users", `{"name":"B","email":"b@x"}`)

		code, _ := c.do(http.MethodPost, "/posts", `{"title":"ghost","ownerId":42}`)
		assert.Equal(t, http.StatusInternalServerError, code)
		code, env := c.do(http.MethodGet, "/posts", "")
		require.Equal(t, http.StatusOK, code)
		assert.Empty(t, decode[[]postView](t, env))

		code, env = c.do(http.MethodPost, "/posts", `{"title":"A","content":"B","userId":1}`)
		require.Equal(t, http.StatusCreated, code)
		p := decode[postView](t, env)
		assert.EqualValues(t, 1, p.OwnerID)

		code, env = c.do(http.MethodPut, "/posts/1", `{"title":"C","ownerId":2}`)
		require.Equal(t, http.StatusOK, code)
		p = decode[postView](t, env)
		assert.Equal(t, "C", p.Title)
		assert.Equal(t, "B", p.Content)
		assert.EqualValues(t, 1, p.OwnerID)

		c.do(http.MethodPost, "/posts", `{"title":"other","ownerId":2}`)
		code, _ = c.do(http.MethodGet, "/users/1/posts/2", "")
		assert.Equal(t, http.StatusNotFound, code)
		code, _ = c.do(http.MethodGet, "/users/42/posts", "")
		assert.Equal(t, http.StatusNotFound, code)

		code, _ = c.do(http.MethodDelete, "/posts/1", "")
		assert.Equal(t, http.StatusNoContent, code)
		code, _ = c.do(http.MethodDelete, "/posts/77", "")
		assert.Equal(t, http.StatusNoContent, code)

		// 帖子软删不影响可见性
		code, _ = c.do(http.MethodGet, "/posts/1", "")
		assert.Equal(t, http.StatusOK, code)
		code, env = c.do(http.MethodGet, "/posts/user/1/posts", "")
		require.Equal(t, http.StatusOK, code)
		assert.Len(t, decode[[]postView](t, env), 1)
		code, _ = c.do(http.MethodGet, "/posts/user/1/posts/1", "")
		assert.Equal(t, http.StatusOK, code)

		code, _ = c.do(http.MethodPut, "/posts/77", `{"title":"x"}`)
		assert.Equal(t, http.StatusNotFound, code)
		code, _ = c.do(http.MethodGet, "/posts/77", "")
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestBadRequests(t *testing.T) {
	eachDriver(t, func(t *testing.T, c client) {
		tests := []struct {
			name string
			path string
			body string
		}{
			{name: "malformed json", path: "/users", body: `{"name":`},
			{name: "missing email", path: "/users", body: `{"name":"A"}`},
			{name: "missing title", path: "/posts", body: `{"ownerId":1}`},
			{name: "missing owner", path: "/posts", body: `{"title":"T"}`},
		}
		for _, tt := range tests {
			code, env := c.do(http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, code, tt.name)
			assert.Equal(t, http.StatusBadRequest, env.Code, tt.name)
		}
	})
}

func TestHealthAndMetrics(t *testing.T) {
	a, err := app.New(testConfig(app.DriverMemory), zaptest.NewLogger(t))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	a.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	a.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := app.New(testConfig("oracle"), zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestIDBeyondInt64(t *testing.T) {
	eachDriver(t, func(t *testing.T, c client) {
		c.do(http.MethodPost, "/users", `{"name":"A","email":"a@x"}`)
		const huge = "9223372036854775808"

		tests := []struct {
			method string
			path   string
			body   string
			want   int
		}{
			{http.MethodGet, "/users/" + huge, "", http.StatusNotFound},
			{http.MethodPut, "/users/" + huge, `{"name":"Z"}`, http.StatusNotFound},
			{http.MethodDelete, "/users/" + huge, "", http.StatusNoContent},
			{http.MethodGet, "/posts/" + huge, "", http.StatusNotFound},
			{http.MethodPut, "/posts/" + huge, `{"title":"Z"}`, http.StatusNotFound},
			{http.MethodDelete, "/posts/" + huge, "", http.StatusNoContent},
			{http.MethodGet, "/users/" + huge + "/posts", "", http.StatusNotFound},
			{http.MethodGet, "/users/1/posts/" + huge, "", http.StatusNotFound},
		}
		for _, tt := range tests {
			code, _ := c.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, code, "%s %s", tt.method, tt.path)
		}
	})
}

func TestUpdateValidation(t *testing.T) {
	eachDriver(t, func(t *testing.T, c client) {
		c.do(http.MethodPost, "/users", `{"name":"A","email":"a@x"}`)
		c.do(http.MethodPost, "/posts", `{"title":"T","content":"B","ownerId":1}`)

		tests := []struct {
			name string
			path string
			body string
		}{
			{"empty name", "/users/1", `{"name":""}`},
			{"empty email", "/users/1", `{"email":""}`},
			{"name too long", "/users/1", `{"name":"` + strings.Repeat("n", 129) + `"}`},
			{"email too long", "/users/1", `{"email":"` + strings.Repeat("e", 192) + `"}`},
			{"empty title", "/posts/1", `{"title":""}`},
			{"title too long", "/posts/1", `{"title":"` + strings.Repeat("t", 256) + `"}`},
		}
		for _, tt := range tests {
			code, _ := c.do(http.MethodPut, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, code, tt.name)
		}

		code, env := c.do(http.MethodGet, "/users/1", "")
		require.Equal(t, http.StatusOK, code)
		u := decode[userView](t, env)
		assert.Equal(t, "A", u.Name)
		assert.Equal(t, "a@x", u.Email)

		// content 可以清空
		code, env = c.do(http.MethodPut, "/posts/1", `{"content":""}`)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "T", decode[postView](t, env).Title)
	})
}

func TestUpdateWithEmptyBody(t *testing.T) {
	eachDriver(t, func(t *testing.T, c client) {
		c.do(http.MethodPost, "/users", `{"name":"A","email":"a@x"}`)

		code, _ := c.do(http.MethodPut, "/users/99", "")
		assert.Equal(t, http.StatusNotFound, code)
		code, _ = c.do(http.MethodPut, "/posts/99", "")
		assert.Equal(t, http.StatusNotFound, code)

		code, env := c.do(http.MethodPut, "/users/1", "")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "A", decode[userView](t, env).Name)

		code, _ = c.do(http.MethodPost, "/users", "")
		assert.Equal(t, http.StatusBadRequest, code)
	})
}
