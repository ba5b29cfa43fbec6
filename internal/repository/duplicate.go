package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// IsDuplicateError 判断是否为唯一索引冲突
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}

	// sqlite（测试环境）
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
