package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = host + ":" + port
	cfg.DBName = name
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.MultiStatements = false
	cfg.Params = map[string]string{"charset": "utf8mb4"}

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// IsDuplicate reports whether err is a MySQL unique-key violation.
func IsDuplicate(err error) bool {
	var me *mysql.MySQLError
	return asMySQL(err, &me) && me.Number == 1062
}

// IsForeignKey reports whether err is a MySQL foreign-key violation
// (1451 on delete/update of a parent row, 1452 on insert of a child row).
func IsForeignKey(err error) bool {
	var me *mysql.MySQLError
	return asMySQL(err, &me) && (me.Number == 1451 || me.Number == 1452)
}
