// Package ez 把 "绑定入参 → 调用 → 统一错误映射 → 输出" 收敛成一行注册。
package ez

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"postboard/internal/domain"
	resp "postboard/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

type Binder string

const (
	BindJSON Binder = "json" // 从 JSON body 绑定
	BindNone Binder = "none" // 不绑定，自己从 c.Param 取
)

// Action I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // GET / POST / PUT / DELETE
	Path    string // 例："/users/:id/posts"
	Binder  Binder
	Status  int // 成功状态码，默认 200；204 不写 body
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		if a.Binder == BindJSON {
			bindErr = c.ShouldBindJSON(&in)
			// 空 body 视为空对象，仍走字段校验
			if errors.Is(bindErr, io.EOF) {
				bindErr = binding.Validator.ValidateStruct(&in)
			}
		}
		var tooLarge *http.MaxBytesError
		if errors.As(bindErr, &tooLarge) {
			_ = c.Error(bindErr)
			resp.Abort(c, resp.CodeTooLarge, "")
			return
		}
		if bindErr != nil {
			WriteError(c, domain.Validation("invalid request: "+bindErr.Error(), bindErr))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			WriteError(c, err)
			return
		}
		if status == http.StatusNoContent {
			c.Status(status)
			return
		}
		c.JSON(status, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	case http.MethodPost:
		e.g.POST(a.Path, h)
	default:
		panic(fmt.Sprintf("ez: unsupported method %q for %s", a.Method, a.Path))
	}
}

// StatusOf 约束冲突按既有约定返回 500，而不是 409
func StatusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError 根因挂到 c.Errors 供访问日志输出，响应只带对外文案
func WriteError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := StatusOf(err)
	resp.Abort(c, status, domain.MessageOf(err))
}

// ParamID 路径参数必须是正整数，且不超过 SQL 驱动可绑定的 int64 上限
func ParamID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 63)
	return id, err == nil && id > 0
}
