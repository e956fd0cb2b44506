package database

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

func asMySQL(err error, target **mysql.MySQLError) bool {
	return err != nil && errors.As(err, target)
}
