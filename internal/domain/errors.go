package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")
	ErrEmailTaken   = errors.New("email already exists")
)

// Kind 错误分类，由传输层映射为 HTTP 状态
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// Error 统一错误对象：Kind 决定对外语义，Err 保留根因供 errors.Is 匹配
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string, err error) error   { return &Error{Kind: KindNotFound, Msg: msg, Err: err} }
func Conflict(msg string, err error) error   { return &Error{Kind: KindConflict, Msg: msg, Err: err} }
func Validation(msg string, err error) error { return &Error{Kind: KindValidation, Msg: msg, Err: err} }
func Internal(msg string, err error) error   { return &Error{Kind: KindInternal, Msg: msg, Err: err} }

// KindOf 返回 err 链上第一个 *Error 的分类；普通错误视为 Internal
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// MessageOf 对外文案：取最外层 *Error 的 Msg，不暴露根因；非 *Error 返回通用文案
func MessageOf(err error) string {
	var de *Error
	if !errors.As(err, &de) {
		return "internal error"
	}
	if de.Msg != "" {
		return de.Msg
	}
	if de.Err != nil {
		return de.Err.Error()
	}
	return de.Kind.String()
}
