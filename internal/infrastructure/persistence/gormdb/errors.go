package gormdb

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/book"
)

// isDuplicateError 判断是否为唯一索引冲突
//   - TranslateError开启时sqlite/mysql驱动都会返回gorm.ErrDuplicatedKey
//   - 兼容检查驱动原始错误信息
//     MySQL 1062: Duplicate entry 'xxx' for key 'yyy'
//     SQLite: UNIQUE constraint failed: books.isbn
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern 构造title_key上的LIKE子串匹配模式，转义用户输入里的通配符
// 配合 ESCAPE '!' 使用
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(book.TitleKey(s)) + "%"
}
