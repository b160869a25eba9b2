package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// 各驱动唯一约束冲突的报错文本
var uniqueViolations = []string{
	"unique constraint failed",                       // sqlite
	"error 1062",                                     // mysql
	"duplicate entry",                                // mysql
	"duplicate key value violates unique constraint", // postgres
	"sqlstate 23505",                                 // postgres
}

// isDupKey NewGorm 开启了 TranslateError；文本匹配用于未翻译的驱动
func isDupKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range uniqueViolations {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
